//go:build linux

package hotkey

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	evKey      = 1
	keyRelease = 0
	keyPress   = 1
	keyRepeat  = 2
)

// input_event is 24 bytes on 64-bit Linux:
// timeval (16 bytes) + type (2) + code (2) + value (4)
const inputEventSize = 24

// evdevExtended holds the evdev codes outside the set-1 main block.
var evdevExtended = map[uint16]Key{
	96:  KeyEnter, // keypad enter
	97:  KeyCtrl,
	100: KeyAlt,
	102: KeyHome,
	103: KeyUp,
	104: KeyPageUp,
	105: KeyLeft,
	106: KeyRight,
	107: KeyEnd,
	108: KeyDown,
	109: KeyPageDown,
	110: KeyInsert,
	111: KeyDelete,
	125: KeyCmd,
	126: KeyCmd,
}

var errNoKeyboards = errors.New("no keyboard devices found (is user in 'input' group?)")

type evdevSource struct {
	events chan KeyEvent
	files  []*os.File
	stop   chan struct{}
	once   sync.Once
}

// New returns a Source reading every keyboard under /dev/input directly.
// The user must be able to read the event devices, usually through the
// 'input' group.
func New() Source {
	return &evdevSource{
		events: make(chan KeyEvent, 64),
		stop:   make(chan struct{}),
	}
}

func (s *evdevSource) Register() error {
	keyboards, err := findKeyboards()
	if err != nil {
		return fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return errNoKeyboards
	}

	for _, path := range keyboards {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		s.files = append(s.files, f)
	}
	if len(s.files) == 0 {
		return fmt.Errorf("could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)")
	}

	for _, f := range s.files {
		go s.readEvents(f)
	}
	return nil
}

func (s *evdevSource) readEvents(f *os.File) {
	buf := make([]byte, inputEventSize*16)

	for {
		n, err := f.Read(buf)
		if err != nil {
			return
		}

		for i := 0; i+inputEventSize <= n; i += inputEventSize {
			ev, ok := decodeEvent(buf[i : i+inputEventSize])
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

// decodeEvent converts one raw input_event into a KeyEvent. Non-key events
// and keys without a canonical identity are skipped.
func decodeEvent(raw []byte) (KeyEvent, bool) {
	evType := binary.LittleEndian.Uint16(raw[16:])
	evCode := binary.LittleEndian.Uint16(raw[18:])
	evValue := int32(binary.LittleEndian.Uint32(raw[20:]))

	if evType != evKey {
		return KeyEvent{}, false
	}
	k, ok := canonical(evdevExtended, evCode)
	if !ok {
		return KeyEvent{}, false
	}
	switch evValue {
	case keyPress, keyRepeat:
		return KeyEvent{Key: k, Down: true, Code: evCode}, true
	case keyRelease:
		return KeyEvent{Key: k, Down: false, Code: evCode}, true
	}
	return KeyEvent{}, false
}

func (s *evdevSource) Unregister() {
	s.once.Do(func() {
		close(s.stop)
		for _, f := range s.files {
			f.Close()
		}
	})
}

func (s *evdevSource) Events() <-chan KeyEvent {
	return s.events
}

func findKeyboards() ([]string, error) {
	entries, err := os.ReadDir("/dev/input")
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "event") {
			continue
		}
		if isKeyboard(e.Name()) {
			keyboards = append(keyboards, filepath.Join("/dev/input", e.Name()))
		}
	}
	return keyboards, nil
}

// isKeyboard treats a device with a long key capability bitmap as a
// keyboard; mice and power buttons report only a few bits.
func isKeyboard(eventName string) bool {
	capsPath := filepath.Join("/sys/class/input", eventName, "device", "capabilities", "key")
	data, err := os.ReadFile(capsPath)
	if err != nil {
		return false
	}
	caps := strings.TrimSpace(string(data))
	return len(caps) > 10
}

// Diagnose checks that at least one keyboard can be opened.
func Diagnose() (string, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	if len(keyboards) == 0 {
		return "", errNoKeyboards
	}

	var opened string
	for _, path := range keyboards {
		f, err := os.Open(path)
		if err == nil {
			f.Close()
			opened = path
			break
		}
	}
	if opened == "" {
		return "", fmt.Errorf("found %d keyboard(s) but cannot open any (run: sudo usermod -aG input $USER)", len(keyboards))
	}

	return fmt.Sprintf("%d keyboard(s) found, opened %s", len(keyboards), opened), nil
}
