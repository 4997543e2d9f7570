//go:build !linux

package keyboard

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/micmonay/keybd_event"

	"autotyper/clipboard"
)

// Device injects keys through keybd_event (Win32 SendInput / Quartz events).
type Device struct {
	clipboardUse
	mu sync.Mutex
	kb keybd_event.KeyBonding
}

func New() (*Device, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("keybd_event: %w", err)
	}
	return &Device{kb: kb}, nil
}

func (d *Device) Close() error { return nil }

var letterKeys = [26]int{
	keybd_event.VK_A, keybd_event.VK_B, keybd_event.VK_C, keybd_event.VK_D,
	keybd_event.VK_E, keybd_event.VK_F, keybd_event.VK_G, keybd_event.VK_H,
	keybd_event.VK_I, keybd_event.VK_J, keybd_event.VK_K, keybd_event.VK_L,
	keybd_event.VK_M, keybd_event.VK_N, keybd_event.VK_O, keybd_event.VK_P,
	keybd_event.VK_Q, keybd_event.VK_R, keybd_event.VK_S, keybd_event.VK_T,
	keybd_event.VK_U, keybd_event.VK_V, keybd_event.VK_W, keybd_event.VK_X,
	keybd_event.VK_Y, keybd_event.VK_Z,
}

var digitKeys = [10]int{
	keybd_event.VK_0, keybd_event.VK_1, keybd_event.VK_2, keybd_event.VK_3,
	keybd_event.VK_4, keybd_event.VK_5, keybd_event.VK_6, keybd_event.VK_7,
	keybd_event.VK_8, keybd_event.VK_9,
}

func charToKey(c rune) (code int, shift bool, ok bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return letterKeys[c-'a'], false, true
	case c >= 'A' && c <= 'Z':
		return letterKeys[c-'A'], true, true
	case c >= '0' && c <= '9':
		return digitKeys[c-'0'], false, true
	case c == ' ':
		return keybd_event.VK_SPACE, false, true
	}
	return 0, false, false
}

func (d *Device) launch(code int, shift, paste bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.kb.Clear()
	d.kb.SetKeys(code)
	d.kb.HasSHIFT(shift)
	if paste {
		if runtime.GOOS == "darwin" {
			d.kb.HasSuper(true)
		} else {
			d.kb.HasCTRL(true)
		}
	}
	return d.kb.Launching()
}

func (d *Device) Tap(k Key) error {
	var code int
	switch k {
	case Enter:
		code = enterCode
	case Tab:
		code = tabCode
	case Backspace:
		code = backspaceCode
	default:
		return ErrUnknownKey
	}
	if err := d.launch(code, false, false); err != nil {
		return fmt.Errorf("keybd_event %s: %w", k, err)
	}
	return nil
}

func (d *Device) TypeRune(r rune) error {
	if code, shift, ok := charToKey(r); ok {
		if err := d.launch(code, shift, false); err != nil {
			return fmt.Errorf("keybd_event %q: %w", r, err)
		}
		return nil
	}
	// Punctuation and non-ASCII go through the clipboard, like Type on darwin.
	if err := clipboard.Copy(string(r)); err != nil {
		return fmt.Errorf("clipboard copy for %q: %w", r, err)
	}
	d.used.Store(true)
	time.Sleep(5 * time.Millisecond)
	if err := d.launch(keybd_event.VK_V, false, true); err != nil {
		return fmt.Errorf("paste %q: %w", r, err)
	}
	return nil
}
