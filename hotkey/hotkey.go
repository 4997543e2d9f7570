// Package hotkey recognizes global key chords.
//
// A Source owns the single OS-level key subscription and delivers canonical
// KeyEvents. A Listener feeds those events to two Matchers, one for the
// activate chord and one for the cancel chord, and calls the bound callback
// when a chord is fully held. Changing the chords swaps the Matchers; the
// Source is never torn down and recreated.
package hotkey

import (
	"errors"
	"fmt"
)

// Key is a canonical key identity. Left and right variants of a modifier
// share one identity. Printable keys are their unshifted character ("k",
// "1", ";"); other keys have a name ("ctrl", "esc", "f5").
type Key string

const (
	KeyCtrl  Key = "ctrl"
	KeyShift Key = "shift"
	KeyAlt   Key = "alt"
	KeyCmd   Key = "cmd"

	KeyEsc       Key = "esc"
	KeyEnter     Key = "enter"
	KeyTab       Key = "tab"
	KeySpace     Key = "space"
	KeyBackspace Key = "backspace"
	KeyDelete    Key = "delete"
	KeyInsert    Key = "insert"
	KeyHome      Key = "home"
	KeyEnd       Key = "end"
	KeyPageUp    Key = "page_up"
	KeyPageDown  Key = "page_down"
	KeyUp        Key = "up"
	KeyDown      Key = "down"
	KeyLeft      Key = "left"
	KeyRight     Key = "right"
	KeyCapsLock  Key = "caps_lock"
)

// String returns the key in chord syntax.
func (k Key) String() string {
	if len(k) == 1 {
		return string(k)
	}
	return "<" + string(k) + ">"
}

// KeyEvent is one press or release of a physical key. Auto-repeat arrives
// as repeated presses. Code is the source's scancode; it tells apart the
// physical keys, such as left and right Ctrl, that share one Key.
type KeyEvent struct {
	Key  Key
	Down bool
	Code uint16
}

// Source is an OS-level key event subscription. Register starts delivery on
// Events; Unregister ends it and is safe to call more than once. Events is
// never closed.
type Source interface {
	Register() error
	Unregister()
	Events() <-chan KeyEvent
}

var (
	// ErrChordFormat matches every *FormatError.
	ErrChordFormat = errors.New("hotkey: invalid chord")
	// ErrSubscribe matches every *SubscribeError.
	ErrSubscribe = errors.New("hotkey: cannot subscribe to key events")
)

// FormatHelp describes the chord syntax for error messages.
const FormatHelp = "Chords are keys joined by '+', with special keys in angle brackets, e.g. <ctrl>+<shift>+k or <esc>."

// FormatError reports a malformed chord string.
type FormatError struct {
	Chord  string
	Token  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid chord %q: %s", e.Chord, e.Reason)
	}
	return fmt.Sprintf("invalid chord %q: %s %q", e.Chord, e.Reason, e.Token)
}

func (e *FormatError) Is(target error) bool { return target == ErrChordFormat }

// SubscribeError reports that the OS refused the key event subscription,
// usually for lack of an input-monitoring permission.
type SubscribeError struct {
	Err error
}

func (e *SubscribeError) Error() string {
	return "cannot subscribe to key events: " + e.Err.Error()
}

func (e *SubscribeError) Unwrap() error { return e.Err }

func (e *SubscribeError) Is(target error) bool { return target == ErrSubscribe }
