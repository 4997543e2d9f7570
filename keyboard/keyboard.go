// Package keyboard injects key presses at the OS input layer.
package keyboard

import (
	"errors"
	"sync/atomic"
)

// Key names a non-printing key the typing loop needs.
type Key int

const (
	Enter Key = iota + 1
	Tab
	Backspace
)

func (k Key) String() string {
	switch k {
	case Enter:
		return "enter"
	case Tab:
		return "tab"
	case Backspace:
		return "backspace"
	}
	return "unknown"
}

// Injector presses and releases keys as if typed by the user.
// Errors returned are fatal for the typing session in progress.
type Injector interface {
	TypeRune(r rune) error
	Tap(k Key) error
}

// ErrUnknownKey is returned by Tap for keys without a mapping.
var ErrUnknownKey = errors.New("keyboard: unknown key")

// clipboardUse records whether runes were injected through the clipboard,
// which overwrites its contents.
type clipboardUse struct {
	used atomic.Bool
}

// TookClipboard reports whether the clipboard was overwritten since the
// last call, and resets the flag.
func (c *clipboardUse) TookClipboard() bool {
	return c.used.Swap(false)
}
