package main

import (
	"fmt"
	"io"
	"sync"

	"autotyper/engine"
	"autotyper/settings"
)

// Display abstracts the presentation layer so the TUI and the headless
// printer receive the same events. Implementations must not block; they
// are called from the dispatcher and session goroutines.
type Display interface {
	Status(s engine.Status)
	Settings(st settings.Settings)
	Error(msg string)
	Info(msg string)
	Session(rep engine.Report)
}

// lineDisplay writes events as plain lines through a printer goroutine that
// owns the writer. When the buffer is full, info lines are dropped and every
// other line waits for room, so no status transition is lost.
type lineDisplay struct {
	mu     sync.Mutex
	closed bool
	lines  chan string
	done   chan struct{}
}

func newLineDisplay(w io.Writer) *lineDisplay {
	d := &lineDisplay{
		lines: make(chan string, 64),
		done:  make(chan struct{}),
	}
	go func() {
		defer close(d.done)
		for line := range d.lines {
			fmt.Fprintln(w, line)
		}
	}()
	return d
}

func (d *lineDisplay) send(line string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.closed {
		d.lines <- line
	}
}

func (d *lineDisplay) trySend(line string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	select {
	case d.lines <- line:
	default:
	}
}

// Close flushes queued lines and stops the printer.
func (d *lineDisplay) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.lines)
	}
	d.mu.Unlock()
	<-d.done
}

func (d *lineDisplay) Status(s engine.Status) {
	d.send("status: " + string(s))
}

func (d *lineDisplay) Settings(st settings.Settings) {
	d.send(settingsLine(st))
}

func (d *lineDisplay) Error(msg string) { d.send("error: " + msg) }
func (d *lineDisplay) Info(msg string)  { d.trySend(msg) }

func (d *lineDisplay) Session(rep engine.Report) {
	d.send(sessionLine(rep))
}

func settingsLine(st settings.Settings) string {
	return fmt.Sprintf("speed %d wpm, variance %.2f, typos %.1f%%, activate %s, cancel %s",
		st.Speed(), st.Variance(), st.TypoRate()*100, st.ActivateChord(), st.CancelChord())
}

func sessionLine(rep engine.Report) string {
	return fmt.Sprintf("session %s: %d/%d chars, %d typos, %.1fs",
		rep.Outcome, rep.Typed, rep.Length, rep.Typos, rep.Duration().Seconds())
}
