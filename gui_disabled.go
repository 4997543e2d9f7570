//go:build !gui

package main

import "context"

func startGUI() {
	logErrf("Error: %v\n", errNoGUI)
	exitCode = 1
}

func runGUI(context.Context, AppConfig) error {
	return errNoGUI
}
