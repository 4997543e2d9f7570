//go:build gui

package main

import (
	"context"
	"runtime"

	"autotyper/gui"
	"autotyper/log"
)

var guiApp *gui.App

var _ Display = (*gui.App)(nil)

// startGUI gives the main thread to the window's event loop and runs the CLI
// on a goroutine. It returns once both have finished.
func startGUI() {
	runtime.LockOSThread()

	guiApp = gui.New()
	done := make(chan struct{})
	gui.Run(guiApp, func() {
		defer close(done)
		run()
		guiApp.Quit()
	})
	<-done
}

// runGUI runs the app with the desktop window as its display. Closing the
// window from the tray stops the app.
func runGUI(ctx context.Context, cfg AppConfig) error {
	if guiApp == nil {
		return errNoGUI
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg.Display = guiApp
	app := NewApp(cfg)
	guiApp.Attach(app)
	go func() {
		select {
		case <-guiApp.Closed():
			cancel()
		case <-ctx.Done():
		}
	}()

	log.Info("running with desktop window")
	return app.Run(ctx)
}
