package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"autotyper/clipboard"
	"autotyper/cue"
	"autotyper/doctor"
	"autotyper/engine"
	"autotyper/history"
	"autotyper/hotkey"
	"autotyper/keyboard"
	"autotyper/log"
	"autotyper/settings"
)

// clipboardTaker is implemented by injectors that may overwrite the
// clipboard to paste characters they cannot type.
type clipboardTaker interface {
	TookClipboard() bool
}

// AppConfig wires an App. Store, History and Probe may be nil.
type AppConfig struct {
	Settings  settings.Settings
	Store     *settings.Store
	Clipboard clipboard.ReadWriter
	Injector  keyboard.Injector
	Source    hotkey.Source
	History   *history.Store
	Display   Display
	Probe     func() bool
	Engine    []engine.Option
}

// App connects the hotkey listener, the clipboard, the typing engine and
// the display. Hotkey callbacks only enqueue work or set the cancel flag;
// the dispatcher goroutine started by Run does the rest.
type App struct {
	cfg      AppConfig
	engine   *engine.Engine
	listener *hotkey.Listener

	settings   atomic.Pointer[settings.Settings]
	settingsMu sync.Mutex

	activations chan struct{}
	pending     chan settings.Settings
	workers     sync.WaitGroup
}

func NewApp(cfg AppConfig) *App {
	a := &App{
		cfg:         cfg,
		activations: make(chan struct{}, 1),
		pending:     make(chan settings.Settings, 1),
	}
	st := cfg.Settings
	a.settings.Store(&st)
	a.engine = engine.New(cfg.Injector, st, a.onStatus, cfg.Engine...)
	a.listener = hotkey.NewListener(cfg.Source, a.onActivate, a.Cancel)
	return a
}

// Settings returns the current snapshot.
func (a *App) Settings() settings.Settings {
	return *a.settings.Load()
}

// Run starts the hotkey listener and serves activations and settings
// changes until ctx is done. A listener that cannot start leaves the app
// running without global hotkeys.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.Probe != nil && !a.cfg.Probe() {
		log.Warn("keyboard access probe failed")
	}
	a.startListener()
	a.cfg.Display.Settings(a.Settings())
	a.cfg.Display.Status(engine.StatusIdle)

	for {
		select {
		case <-ctx.Done():
			return a.shutdown()
		case <-a.activations:
			a.activate()
		case st := <-a.pending:
			a.ApplySettings(st)
		}
	}
}

func (a *App) startListener() {
	a.settingsMu.Lock()
	defer a.settingsMu.Unlock()

	st := a.Settings()
	err := a.listener.Start(st.ActivateChord(), st.CancelChord())
	if errors.Is(err, hotkey.ErrChordFormat) {
		log.Warnf("invalid hotkey in settings: %v", err)
		a.cfg.Display.Error(fmt.Sprintf("Invalid hotkey in settings: %v\nUsing the default hotkeys.", err))
		def := settings.Default()
		st = st.WithChords(def.ActivateChord(), def.CancelChord())
		a.settings.Store(&st)
		err = a.listener.Start(st.ActivateChord(), st.CancelChord())
	}
	if err == nil {
		log.Infof("hotkeys active: activate %s, cancel %s", st.ActivateChord(), st.CancelChord())
		return
	}
	log.Errorf("hotkey listener: %v", err)
	if errors.Is(err, hotkey.ErrSubscribe) {
		a.cfg.Display.Error(doctor.PermissionHelp())
		if oerr := doctor.OpenSettings(); oerr != nil {
			log.Warnf("open accessibility settings: %v", oerr)
		}
		return
	}
	a.cfg.Display.Error(fmt.Sprintf("Global hotkeys unavailable: %v", err))
}

func (a *App) shutdown() error {
	a.engine.Cancel()
	err := a.listener.Stop()
	a.workers.Wait()
	return err
}

// onActivate runs on the listener's dispatch goroutine.
func (a *App) onActivate() {
	select {
	case a.activations <- struct{}{}:
	default:
	}
}

// Activate requests a session as if the activate chord was pressed.
func (a *App) Activate() { a.onActivate() }

// Cancel stops the running session, if any. It never blocks.
func (a *App) Cancel() {
	a.engine.Cancel()
}

func (a *App) activate() {
	if a.engine.Busy() {
		log.Info("activation dropped: typing in progress")
		return
	}
	text, err := a.cfg.Clipboard.Read()
	if err != nil {
		log.Warnf("clipboard: %v", err)
		a.cfg.Display.Error(clipboardMessage(err))
		cue.Play(cue.Error)
		return
	}
	a.workers.Add(1)
	go func() {
		defer a.workers.Done()
		a.typeText(text)
	}()
}

func clipboardMessage(err error) string {
	if errors.Is(err, clipboard.ErrEmpty) {
		return "Clipboard is empty. Copy some text first."
	}
	return fmt.Sprintf("Cannot read clipboard: %v", err)
}

func (a *App) typeText(text string) {
	st := a.Settings()
	log.SessionStart(len([]rune(text)))

	rep, err := a.engine.Run(text)
	if rep.Outcome == engine.OutcomeDropped {
		log.Info("activation dropped: typing in progress")
		return
	}

	if tc, ok := a.cfg.Injector.(clipboardTaker); ok && tc.TookClipboard() {
		if werr := a.cfg.Clipboard.Write(text); werr != nil {
			log.Warnf("restore clipboard: %v", werr)
		}
	}

	log.SessionEnd(log.Session{
		ID:      rep.ID,
		Outcome: string(rep.Outcome),
		Length:  rep.Length,
		Typed:   rep.Typed,
		Typos:   rep.Typos,
		TotalMs: float64(rep.Duration().Microseconds()) / 1000,
	})
	if err != nil {
		log.Errorf("typing: %v", err)
		a.cfg.Display.Error(fmt.Sprintf("Typing stopped: %v", err))
		cue.Play(cue.Error)
	}
	a.cfg.Display.Session(rep)
	a.record(rep, st, err)
}

func (a *App) record(rep engine.Report, st settings.Settings, err error) {
	if a.cfg.History == nil {
		return
	}
	sess := history.Session{
		ID:        rep.ID,
		StartedAt: rep.StartedAt,
		EndedAt:   rep.EndedAt,
		Outcome:   string(rep.Outcome),
		Length:    rep.Length,
		Typed:     rep.Typed,
		Typos:     rep.Typos,
		Speed:     st.Speed(),
		Variance:  st.Variance(),
		TypoRate:  st.TypoRate(),
	}
	if err != nil {
		sess.Error = err.Error()
	}
	if herr := a.cfg.History.Insert(context.Background(), sess); herr != nil {
		log.Warnf("history: %v", herr)
	}
}

// onStatus runs on the session goroutine.
func (a *App) onStatus(s engine.Status) {
	a.cfg.Display.Status(s)
	switch s {
	case engine.StatusTyping:
		cue.Play(cue.Start)
	case engine.StatusIdle:
		cue.Play(cue.Finish)
	case engine.StatusCancelled:
		cue.Play(cue.Cancel)
	}
}

// SubmitSettings queues a settings change for the dispatcher and returns
// immediately. Only the newest queued snapshot is applied.
func (a *App) SubmitSettings(st settings.Settings) {
	for {
		select {
		case a.pending <- st:
			return
		default:
		}
		select {
		case <-a.pending:
		default:
		}
	}
}

// ApplySettings makes st current. Chords are rebound only when they
// changed; if the new chords are rejected the previous ones stay bound and
// the snapshot keeps them.
func (a *App) ApplySettings(st settings.Settings) {
	a.settingsMu.Lock()
	defer a.settingsMu.Unlock()

	prev := a.Settings()
	if !st.ChordsEqual(prev) {
		err := a.listener.Rebind(st.ActivateChord(), st.CancelChord())
		log.HotkeyRebind(st.ActivateChord(), st.CancelChord(), err)
		if err != nil {
			a.cfg.Display.Error(rebindMessage(err, prev))
			st = st.WithChords(prev.ActivateChord(), prev.CancelChord())
		} else {
			a.cfg.Display.Info(fmt.Sprintf("Hotkeys: activate %s, cancel %s", st.ActivateChord(), st.CancelChord()))
		}
	}

	a.settings.Store(&st)
	a.engine.UpdateSettings(st)
	log.SettingsChanged(st.Speed(), st.Variance(), st.TypoRate())

	if a.cfg.Store != nil {
		if err := a.cfg.Store.Save(st); err != nil {
			log.Errorf("save settings: %v", err)
			a.cfg.Display.Error(fmt.Sprintf("Could not save settings: %v", err))
		}
	}
	a.cfg.Display.Settings(st)
}

func rebindMessage(err error, prev settings.Settings) string {
	return fmt.Sprintf("Invalid hotkey format: %v\n%s\nHotkeys reverted to %s and %s.",
		err, hotkey.FormatHelp, prev.ActivateChord(), prev.CancelChord())
}
