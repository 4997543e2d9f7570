//go:build gui

package gui

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"autotyper/engine"
	"autotyper/settings"
)

// App is the desktop window and tray icon. Its Display methods may be
// called from any goroutine.
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	panel   *panel

	mu  sync.Mutex
	ctl Controller

	closed    chan struct{}
	closeOnce sync.Once
}

func New() *App {
	return &App{closed: make(chan struct{})}
}

// Run builds the window on the calling goroutine, which must be the main
// thread, starts onReady on its own goroutine and runs the event loop until
// Quit or the last window closes.
func Run(a *App, onReady func()) {
	defer a.closeOnce.Do(func() { close(a.closed) })

	a.fyneApp = app.NewWithID("io.autotyper.gui")
	a.fyneApp.Settings().SetTheme(&darkTheme{})

	a.panel = newPanel(a.controller)
	a.window = a.fyneApp.NewWindow("autotyper")
	a.window.SetContent(a.panel.content())
	a.window.Resize(fyne.NewSize(440, 0))

	if desk, ok := a.fyneApp.(desktop.App); ok {
		quit := fyne.NewMenuItem("Quit", a.Quit)
		quit.IsQuit = true
		desk.SetSystemTrayMenu(fyne.NewMenu("autotyper",
			fyne.NewMenuItem("Show window", a.window.Show),
			fyne.NewMenuItem("Cancel typing", a.cancelTyping),
			fyne.NewMenuItemSeparator(),
			quit,
		))
		desk.SetSystemTrayIcon(trayIcon)
		// With a tray icon the window only hides; Quit lives in the menu.
		a.window.SetCloseIntercept(a.window.Hide)
	}

	a.window.Show()
	go onReady()
	a.fyneApp.Run()
}

// Attach routes window actions to ctl.
func (a *App) Attach(ctl Controller) {
	a.mu.Lock()
	a.ctl = ctl
	a.mu.Unlock()
}

func (a *App) controller() Controller {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ctl
}

func (a *App) cancelTyping() {
	if c := a.controller(); c != nil {
		c.Cancel()
	}
}

// Closed is closed once the event loop has returned.
func (a *App) Closed() <-chan struct{} { return a.closed }

func (a *App) Quit() {
	if a.fyneApp != nil {
		a.fyneApp.Quit()
	}
}

func (a *App) Status(s engine.Status) {
	fyne.Do(func() { a.panel.setStatus(s) })
}

func (a *App) Settings(st settings.Settings) {
	fyne.Do(func() { a.panel.setSettings(st) })
}

func (a *App) Error(msg string) {
	fyne.Do(func() {
		a.panel.showError(msg)
		a.window.Show()
	})
}

func (a *App) Info(msg string) {
	fyne.Do(func() { a.panel.showInfo(msg) })
}

func (a *App) Session(rep engine.Report) {
	fyne.Do(func() { a.panel.showSession(rep) })
}
