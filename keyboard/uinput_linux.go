//go:build linux

package keyboard

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"autotyper/clipboard"
)

// ioctl constants from linux/uinput.h
const (
	uiSetEvbit   = 0x40045564 // UI_SET_EVBIT
	uiSetKeybit  = 0x40045565 // UI_SET_KEYBIT
	uiDevCreate  = 0x5501     // UI_DEV_CREATE
	uiDevDestroy = 0x5502     // UI_DEV_DESTROY
)

// input event types from linux/input-event-codes.h
const (
	evSyn = 0x00
	evKey = 0x01
)

const (
	keyEnter     = 28
	keyTab       = 15
	keyBackspace = 14
	keySpace     = 57
	keyLeftCtrl  = 29
	keyLeftShift = 42
	keyV         = 47
)

const busUSB = 0x03

// DeviceName is the name the virtual keyboard registers under.
const DeviceName = "autotyper-keyboard"

type inputEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

type uinputUserDev struct {
	Name         [80]byte
	ID           inputID
	FfEffectsMax uint32
	Absmax       [64]int32
	Absmin       [64]int32
	Absfuzz      [64]int32
	Absflat      [64]int32
}

// Device is a uinput virtual keyboard.
type Device struct {
	clipboardUse
	f *os.File
}

// New creates the virtual keyboard. The caller needs write access to
// /dev/uinput.
func New() (*Device, error) {
	path := "/dev/uinput"
	if _, err := os.Stat(path); err != nil {
		path = "/dev/input/uinput"
		if _, err := os.Stat(path); err != nil {
			return nil, errors.New("uinput device not found, try: sudo modprobe uinput")
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|syscall.O_NONBLOCK, os.ModeDevice)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := setup(f); err != nil {
		f.Close()
		return nil, err
	}
	// Give the compositor time to pick up the new input device
	time.Sleep(200 * time.Millisecond)
	return &Device{f: f}, nil
}

func ioctl(f *os.File, req, arg uintptr) error {
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, f.Fd(), req, arg); errno != 0 {
		return errno
	}
	return nil
}

func setup(f *os.File) error {
	if err := ioctl(f, uiSetEvbit, evKey); err != nil {
		return fmt.Errorf("UI_SET_EVBIT key: %w", err)
	}
	if err := ioctl(f, uiSetEvbit, evSyn); err != nil {
		return fmt.Errorf("UI_SET_EVBIT syn: %w", err)
	}
	// Register all standard keys so udev classifies this as a keyboard
	for i := uintptr(0); i < 256; i++ {
		if err := ioctl(f, uiSetKeybit, i); err != nil {
			return fmt.Errorf("UI_SET_KEYBIT %d: %w", i, err)
		}
	}
	dev := uinputUserDev{}
	copy(dev.Name[:], DeviceName)
	dev.ID.Bustype = busUSB
	dev.ID.Vendor = 0x1234
	dev.ID.Product = 0x5679
	dev.ID.Version = 1
	if err := binary.Write(f, binary.LittleEndian, &dev); err != nil {
		return fmt.Errorf("writing device descriptor: %w", err)
	}
	if err := ioctl(f, uiDevCreate, 0); err != nil {
		return fmt.Errorf("UI_DEV_CREATE: %w", err)
	}
	return nil
}

// Close destroys the virtual keyboard.
func (d *Device) Close() error {
	ioctl(d.f, uiDevDestroy, 0)
	return d.f.Close()
}

func (d *Device) writeEvent(typ, code uint16, value int32) error {
	ev := inputEvent{Type: typ, Code: code, Value: value}
	return binary.Write(d.f, binary.LittleEndian, &ev)
}

func (d *Device) key(code uint16, value int32) error {
	if err := d.writeEvent(evKey, code, value); err != nil {
		return err
	}
	return d.writeEvent(evSyn, 0, 0)
}

func (d *Device) keyTap(code uint16, shift bool) error {
	if shift {
		if err := d.key(keyLeftShift, 1); err != nil {
			return err
		}
	}
	if err := d.key(code, 1); err != nil {
		return err
	}
	if err := d.key(code, 0); err != nil {
		return err
	}
	if shift {
		return d.key(keyLeftShift, 0)
	}
	return nil
}

func (d *Device) Tap(k Key) error {
	var code uint16
	switch k {
	case Enter:
		code = keyEnter
	case Tab:
		code = keyTab
	case Backspace:
		code = keyBackspace
	default:
		return ErrUnknownKey
	}
	if err := d.keyTap(code, false); err != nil {
		return fmt.Errorf("uinput %s: %w", k, err)
	}
	return nil
}

func (d *Device) TypeRune(r rune) error {
	if code, shift, ok := charToKey(r); ok {
		if err := d.keyTap(code, shift); err != nil {
			return fmt.Errorf("uinput %q: %w", r, err)
		}
		return nil
	}
	return d.paste(r)
}

// paste injects r through the clipboard with Ctrl+V.
func (d *Device) paste(r rune) error {
	if err := clipboard.Copy(string(r)); err != nil {
		return fmt.Errorf("clipboard copy for %q: %w", r, err)
	}
	d.used.Store(true)
	if err := d.key(keyLeftCtrl, 1); err != nil {
		return err
	}
	// Let the compositor register modifier state
	time.Sleep(5 * time.Millisecond)
	if err := d.keyTap(keyV, false); err != nil {
		d.key(keyLeftCtrl, 0)
		return err
	}
	time.Sleep(5 * time.Millisecond)
	return d.key(keyLeftCtrl, 0)
}

// a=30, b=48, c=46, d=32, e=18, f=33, g=34, h=35, i=23, j=36,
// k=37, l=38, m=50, n=49, o=24, p=25, q=16, r=19, s=31, t=20,
// u=22, v=47, w=17, x=45, y=21, z=44
var letterKeys = [26]uint16{
	30, 48, 46, 32, 18, 33, 34, 35, 23, 36,
	37, 38, 50, 49, 24, 25, 16, 19, 31, 20,
	22, 47, 17, 45, 21, 44,
}

// 0=11, 1=2, 2=3, ..., 9=10
var digitKeys = [10]uint16{11, 2, 3, 4, 5, 6, 7, 8, 9, 10}

type shiftedKey struct {
	code  uint16
	shift bool
}

var punctKeys = map[rune]shiftedKey{
	'.': {52, false}, ',': {51, false}, '/': {53, false},
	';': {39, false}, '\'': {40, false}, '[': {26, false},
	']': {27, false}, '-': {12, false}, '=': {13, false},
	'\\': {43, false}, '`': {41, false},
	'!': {2, true}, '@': {3, true}, '#': {4, true},
	'$': {5, true}, '%': {6, true}, '^': {7, true},
	'&': {8, true}, '*': {9, true}, '(': {10, true},
	')': {11, true}, '_': {12, true}, '+': {13, true},
	'{': {26, true}, '}': {27, true}, '|': {43, true},
	':': {39, true}, '"': {40, true}, '<': {51, true},
	'>': {52, true}, '?': {53, true}, '~': {41, true},
}

// charToKey maps a rune to a US-layout key code.
func charToKey(c rune) (code uint16, shift bool, ok bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return letterKeys[c-'a'], false, true
	case c >= 'A' && c <= 'Z':
		return letterKeys[c-'A'], true, true
	case c >= '0' && c <= '9':
		return digitKeys[c-'0'], false, true
	case c == ' ':
		return keySpace, false, true
	}
	if k, ok := punctKeys[c]; ok {
		return k.code, k.shift, true
	}
	return 0, false, false
}
