package hotkey

import (
	"errors"
	"sync"
	"time"
)

// StopTimeout bounds how long Stop waits for event delivery to wind down.
var StopTimeout = 2 * time.Second

var (
	ErrRunning     = errors.New("hotkey: listener already running")
	ErrStopped     = errors.New("hotkey: listener stopped")
	ErrStopTimeout = errors.New("hotkey: timed out stopping listener")
)

type listenerState int

const (
	stateIdle listenerState = iota
	stateRunning
	stateStopped
)

// Listener matches an activate and a cancel chord against the events of
// one Source. Callbacks run on the Listener's dispatch goroutine, never
// with its lock held, and must return quickly.
type Listener struct {
	src        Source
	onActivate func()
	onCancel   func()

	mu       sync.Mutex
	state    listenerState
	activate *Matcher
	cancel   *Matcher
	quit     chan struct{}
	done     chan struct{}
}

// NewListener creates a stopped Listener. nil callbacks are ignored.
func NewListener(src Source, onActivate, onCancel func()) *Listener {
	noop := func() {}
	if onActivate == nil {
		onActivate = noop
	}
	if onCancel == nil {
		onCancel = noop
	}
	return &Listener{src: src, onActivate: onActivate, onCancel: onCancel}
}

func parsePair(activate, cancel string) (*Matcher, *Matcher, error) {
	a, err := ParseChord(activate)
	if err != nil {
		return nil, nil, err
	}
	c, err := ParseChord(cancel)
	if err != nil {
		return nil, nil, err
	}
	return NewMatcher(a), NewMatcher(c), nil
}

// Start parses both chords and then registers the Source. A malformed chord
// returns a *FormatError without touching the Source; a registration
// failure returns a *SubscribeError. A Listener runs at most once.
func (l *Listener) Start(activate, cancel string) error {
	a, c, err := parsePair(activate, cancel)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	switch l.state {
	case stateRunning:
		return ErrRunning
	case stateStopped:
		return ErrStopped
	}
	if err := l.src.Register(); err != nil {
		return &SubscribeError{Err: err}
	}
	l.activate, l.cancel = a, c
	l.quit = make(chan struct{})
	l.done = make(chan struct{})
	l.state = stateRunning
	go l.dispatch(l.src.Events(), l.quit, l.done)
	return nil
}

// Stop unregisters the Source and waits up to StopTimeout for the dispatch
// goroutine to exit. Stopping a Listener that is not running succeeds.
func (l *Listener) Stop() error {
	l.mu.Lock()
	if l.state != stateRunning {
		l.state = stateStopped
		l.mu.Unlock()
		return nil
	}
	l.state = stateStopped
	close(l.quit)
	done := l.done
	l.mu.Unlock()

	l.src.Unregister()
	select {
	case <-done:
		return nil
	case <-time.After(StopTimeout):
		return ErrStopTimeout
	}
}

// Rebind replaces both chords together. On a format error the current
// chords stay bound.
func (l *Listener) Rebind(activate, cancel string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, c, err := parsePair(activate, cancel)
	if err != nil {
		return err
	}
	l.activate, l.cancel = a, c
	return nil
}

// Chords returns the bound chords. Both are zero before Start.
func (l *Listener) Chords() (activate, cancel Chord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.activate == nil {
		return Chord{}, Chord{}
	}
	return l.activate.Chord(), l.cancel.Chord()
}

func (l *Listener) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state == stateRunning
}

func (l *Listener) dispatch(events <-chan KeyEvent, quit, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-quit:
			return
		case ev := <-events:
			for _, fn := range l.handle(ev) {
				fn()
			}
		}
	}
}

// handle feeds ev to both matchers and returns the callbacks to run.
func (l *Listener) handle(ev KeyEvent) []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !ev.Down {
		l.activate.ReleaseCode(ev.Key, ev.Code)
		l.cancel.ReleaseCode(ev.Key, ev.Code)
		return nil
	}
	var fired []func()
	if l.activate.PressCode(ev.Key, ev.Code) {
		fired = append(fired, l.onActivate)
	}
	if l.cancel.PressCode(ev.Key, ev.Code) {
		fired = append(fired, l.onCancel)
	}
	return fired
}
