// Package clipboard reads and writes the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	cb "github.com/atotto/clipboard"
)

var (
	// ErrEmpty means the clipboard holds no text, or only whitespace.
	ErrEmpty = errors.New("clipboard is empty")
	// ErrUnreadable means the clipboard could not be read as text.
	ErrUnreadable = errors.New("clipboard is unreadable")
)

// Reader returns the clipboard's text.
type Reader interface {
	Read() (string, error)
}

// ReadWriter is a clipboard that can also be overwritten.
type ReadWriter interface {
	Reader
	Write(text string) error
}

// System is the OS clipboard.
type System struct{}

func (System) Read() (string, error)    { return Read() }
func (System) Write(text string) error { return Copy(text) }

// Read returns the clipboard text, or an error matching ErrEmpty or
// ErrUnreadable.
func Read() (string, error) {
	return classify(cb.ReadAll())
}

func classify(text string, err error) (string, error) {
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmpty
	}
	return text, nil
}

func Copy(text string) error {
	return cb.WriteAll(text)
}

// Unsupported reports whether no clipboard utility is available
// (xclip, xsel or wl-clipboard on Linux).
func Unsupported() bool {
	return cb.Unsupported
}

// Static is an in-memory clipboard for headless runs and tests.
type Static struct {
	mu   sync.Mutex
	text string
	err  error
}

func NewStatic(text string) *Static {
	return &Static{text: text}
}

// Set replaces the contents; a non-nil err makes Read fail as unreadable.
func (s *Static) Set(text string, err error) {
	s.mu.Lock()
	s.text, s.err = text, err
	s.mu.Unlock()
}

func (s *Static) Read() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return classify(s.text, s.err)
}

func (s *Static) Write(text string) error {
	s.Set(text, nil)
	return nil
}
