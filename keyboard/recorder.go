package keyboard

import (
	"fmt"
	"io"
	"sync"
)

// Recorder is an Injector that records what would have been typed.
// When Out is set every event is also written to it as one line.
type Recorder struct {
	Out io.Writer

	mu     sync.Mutex
	events []string
	failAt int
	err    error
}

func NewRecorder() *Recorder {
	return &Recorder{failAt: -1}
}

// FailAt makes the n-th event (0-based) and every later one return err.
func (r *Recorder) FailAt(n int, err error) {
	r.mu.Lock()
	r.failAt = n
	r.err = err
	r.mu.Unlock()
}

func (r *Recorder) TypeRune(c rune) error {
	return r.record(string(c))
}

func (r *Recorder) Tap(k Key) error {
	if k.String() == "unknown" {
		return ErrUnknownKey
	}
	return r.record("<" + k.String() + ">")
}

func (r *Recorder) record(ev string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAt >= 0 && len(r.events) >= r.failAt {
		return r.err
	}
	r.events = append(r.events, ev)
	if r.Out != nil {
		fmt.Fprintf(r.Out, "key %q\n", ev)
	}
	return nil
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}
