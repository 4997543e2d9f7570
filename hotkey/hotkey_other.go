//go:build !linux

package hotkey

import (
	"errors"
	"sync"
	"time"

	hook "github.com/robotn/gohook"
)

// hookStartTimeout bounds the wait for libuiohook to report that its hook
// is installed. Without the accessibility permission on macOS it never is.
const hookStartTimeout = time.Second

var errHookNotEnabled = errors.New("keyboard hook did not start (is input monitoring allowed?)")

// vcExtended holds the libuiohook VC_* codes outside the set-1 main block.
var vcExtended = map[uint16]Key{
	0x0E1C: KeyEnter, // keypad enter
	0x0E1D: KeyCtrl,
	0x0E38: KeyAlt,
	0x0E47: KeyHome,
	0x0E49: KeyPageUp,
	0x0E4F: KeyEnd,
	0x0E51: KeyPageDown,
	0x0E52: KeyInsert,
	0x0E53: KeyDelete,
	0x0E5B: KeyCmd,
	0x0E5C: KeyCmd,
	0xE048: KeyUp,
	0xE04B: KeyLeft,
	0xE04D: KeyRight,
	0xE050: KeyDown,
}

type hookSource struct {
	events chan KeyEvent
	stop   chan struct{}
	once   sync.Once
}

// New returns a Source backed by a global libuiohook keyboard hook.
func New() Source {
	return &hookSource{
		events: make(chan KeyEvent, 64),
		stop:   make(chan struct{}),
	}
}

func (s *hookSource) Register() error {
	raw := hook.Start()
	timer := time.NewTimer(hookStartTimeout)
	defer timer.Stop()
	for {
		select {
		case e, ok := <-raw:
			if !ok {
				return errHookNotEnabled
			}
			if e.Kind != hook.HookEnabled {
				continue
			}
			go s.readEvents(raw)
			return nil
		case <-timer.C:
			hook.End()
			return errHookNotEnabled
		}
	}
}

func (s *hookSource) readEvents(raw chan hook.Event) {
	for {
		select {
		case <-s.stop:
			return
		case e, ok := <-raw:
			if !ok {
				return
			}
			ev, ok := decodeEvent(e)
			if !ok {
				continue
			}
			select {
			case s.events <- ev:
			case <-s.stop:
				return
			}
		}
	}
}

// decodeEvent converts a hook event into a KeyEvent. KeyHold is the
// physical press (repeated while held) and KeyUp the release; KeyDown
// carries typed characters and is skipped.
func decodeEvent(e hook.Event) (KeyEvent, bool) {
	var down bool
	switch e.Kind {
	case hook.KeyHold:
		down = true
	case hook.KeyUp:
	default:
		return KeyEvent{}, false
	}
	k, ok := canonical(vcExtended, e.Keycode)
	if !ok {
		return KeyEvent{}, false
	}
	return KeyEvent{Key: k, Down: down, Code: e.Keycode}, true
}

func (s *hookSource) Unregister() {
	s.once.Do(func() {
		close(s.stop)
		hook.End()
	})
}

func (s *hookSource) Events() <-chan KeyEvent {
	return s.events
}

// Diagnose reports how global keys are captured on this platform.
func Diagnose() (string, error) {
	return "global keyboard hook via libuiohook", nil
}
