//go:build linux

package main

import "os"

func main() {
	if guiRequested(os.Args[1:]) {
		startGUI()
	} else {
		run()
	}
	os.Exit(exitCode)
}
