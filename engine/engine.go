// Package engine turns text into a timed, human-like stream of keystrokes.
//
// An Engine runs at most one typing session at a time. A session types the
// text character by character, waiting a randomized delay between keys and
// occasionally hitting a neighboring key first and correcting it with
// backspace. Sessions are cancelled cooperatively: Cancel sets a flag that the
// loop checks before each character, so the latency is bounded by one
// character's injection plus its delay.
package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/google/uuid"

	"autotyper/keyboard"
	"autotyper/settings"
)

// Status is the engine state reported to the display.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusTyping    Status = "typing"
	StatusCancelled Status = "cancelled"
)

// Outcome describes how a call to Run ended.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
	// OutcomeDropped means another session was already running.
	OutcomeDropped Outcome = "dropped"
)

// Report summarizes one call to Run.
type Report struct {
	ID        string
	Outcome   Outcome
	Length    int // runes in the text
	Typed     int // characters completed, typos excluded
	Typos     int
	StartedAt time.Time
	EndedAt   time.Time
}

func (r Report) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// models is replaced as a unit so readers never see a delay model from one
// snapshot paired with a typo generator from another.
type models struct {
	delay DelayModel
	typo  TypoGenerator
}

// Engine types text through an Injector.
type Engine struct {
	inj      keyboard.Injector
	onStatus func(Status)

	runMu     sync.Mutex
	cancelled atomic.Bool
	models    atomic.Pointer[models]

	rng   Rand
	sleep func(time.Duration)
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand makes the delay and typo models draw from r. r must be safe for
// use from the session goroutine.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSleep replaces time.Sleep for the inter-key waits.
func WithSleep(fn func(time.Duration)) Option {
	return func(e *Engine) { e.sleep = fn }
}

// New creates an Engine. onStatus may be nil; it is called from the session
// goroutine and must not block.
func New(inj keyboard.Injector, s settings.Settings, onStatus func(Status), opts ...Option) *Engine {
	e := &Engine{
		inj:      inj,
		onStatus: onStatus,
		rng:      globalRand{},
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.UpdateSettings(s)
	return e
}

// UpdateSettings rebuilds the delay and typo models from s. It is safe to
// call while a session runs; the new models apply from the next delay or
// typo decision.
func (e *Engine) UpdateSettings(s settings.Settings) {
	m := &models{
		delay: NewDelayModel(s.Speed(), s.Variance(), s.MinDelayMs(), s.MaxDelayMs()).WithRand(e.rng),
		typo:  NewTypoGenerator(s.TypoRate()).WithRand(e.rng),
	}
	e.models.Store(m)
}

// DelayModel returns the current delay model.
func (e *Engine) DelayModel() DelayModel {
	return e.models.Load().delay
}

// Cancel asks the running session to stop before its next character.
// It never blocks and may be called from any goroutine.
func (e *Engine) Cancel() {
	e.cancelled.Store(true)
}

// Cancelling reports whether Cancel was called since the last session
// started.
func (e *Engine) Cancelling() bool {
	return e.cancelled.Load()
}

// Busy reports whether a session is running.
func (e *Engine) Busy() bool {
	if e.runMu.TryLock() {
		e.runMu.Unlock()
		return false
	}
	return true
}

func (e *Engine) emit(s Status) {
	if e.onStatus != nil {
		e.onStatus(s)
	}
}

func (e *Engine) wait(scale float64) {
	d := e.models.Load().delay.Next()
	e.sleep(time.Duration(float64(d) * scale))
}

// Run types text and blocks until it is done, cancelled or the injector
// fails. If a session is already running Run returns immediately with
// OutcomeDropped and a nil error. An injector error ends the session and is
// returned.
func (e *Engine) Run(text string) (Report, error) {
	if !e.runMu.TryLock() {
		return Report{Outcome: OutcomeDropped}, nil
	}
	defer e.runMu.Unlock()

	rep := Report{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}
	runes := []rune(text)
	rep.Length = len(runes)

	e.cancelled.Store(false)
	e.emit(StatusTyping)

	err := e.typeAll(runes, &rep)
	rep.EndedAt = time.Now()
	switch {
	case err != nil:
		rep.Outcome = OutcomeFailed
		e.emit(StatusIdle)
		return rep, err
	case rep.Outcome == OutcomeCancelled:
		e.emit(StatusCancelled)
	default:
		rep.Outcome = OutcomeCompleted
		e.emit(StatusIdle)
	}
	return rep, nil
}

func (e *Engine) typeAll(runes []rune, rep *Report) error {
	for _, r := range runes {
		if e.cancelled.Load() {
			rep.Outcome = OutcomeCancelled
			return nil
		}
		typo, err := e.typeChar(r)
		if err != nil {
			return fmt.Errorf("typing %q: %w", r, err)
		}
		if typo {
			rep.Typos++
		}
		rep.Typed++
		e.wait(1)
	}
	return nil
}

// typeChar injects r, possibly preceded by a corrected typo.
func (e *Engine) typeChar(r rune) (typo bool, err error) {
	switch r {
	case '\n':
		return false, e.inj.Tap(keyboard.Enter)
	case '\t':
		return false, e.inj.Tap(keyboard.Tab)
	}
	if unicode.IsLetter(r) {
		gen := e.models.Load().typo
		if gen.ShouldTypo() {
			if wrong, ok := gen.TypoChar(r); ok {
				if err := e.inj.TypeRune(wrong); err != nil {
					return true, err
				}
				e.wait(1)
				if err := e.inj.Tap(keyboard.Backspace); err != nil {
					return true, err
				}
				e.wait(0.5)
				typo = true
			}
		}
	}
	return typo, e.inj.TypeRune(r)
}
