//go:build !linux

package main

import (
	"os"
	"runtime"

	"golang.design/x/hotkey/mainthread"
)

// The macOS event tap and keystroke injection expect the main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	if guiRequested(os.Args[1:]) {
		// The window's event loop takes the main thread instead.
		startGUI()
	} else {
		mainthread.Init(run)
	}
	os.Exit(exitCode)
}
