// Package settings holds the typing and hotkey settings snapshot.
//
// A Settings value is immutable: it is only built by New, which clamps every
// numeric field into range, and a change is always a whole new value.
package settings

import (
	"math"
	"runtime"
	"strings"
	"time"
)

const (
	MinSpeed      = 30
	MaxSpeed      = 120
	MaxVariance   = 1.0
	MaxTypoRate   = 0.10
	MinDelayFloor = 1.0

	// MaxDelayCeiling is the longest delay a time.Duration can hold, in ms.
	MaxDelayCeiling = float64(math.MaxInt64 / int64(time.Millisecond))

	DefaultSpeed    = 70
	DefaultVariance = 0.3
	DefaultTypoRate = 0.015
	DefaultMinDelay = 20.0
	DefaultMaxDelay = 300.0

	DefaultCancelChord = "<esc>"
)

// DefaultActivateChord is Cmd+Shift+K on macOS and Ctrl+Shift+K elsewhere.
func DefaultActivateChord() string {
	if runtime.GOOS == "darwin" {
		return "<cmd>+<shift>+k"
	}
	return "<ctrl>+<shift>+k"
}

// Params is the raw, unvalidated form of a Settings value.
type Params struct {
	Speed         int
	Variance      float64
	TypoRate      float64
	ActivateChord string
	CancelChord   string
	MinDelayMs    float64
	MaxDelayMs    float64
}

// Settings is a validated snapshot. The zero value is not valid; use New or
// Default.
type Settings struct {
	speed         int
	variance      float64
	typoRate      float64
	activateChord string
	cancelChord   string
	minDelayMs    float64
	maxDelayMs    float64
}

func DefaultParams() Params {
	return Params{
		Speed:         DefaultSpeed,
		Variance:      DefaultVariance,
		TypoRate:      DefaultTypoRate,
		ActivateChord: DefaultActivateChord(),
		CancelChord:   DefaultCancelChord,
		MinDelayMs:    DefaultMinDelay,
		MaxDelayMs:    DefaultMaxDelay,
	}
}

func Default() Settings {
	return New(DefaultParams())
}

// New clamps p into range and substitutes default chords for blank ones.
// It never fails.
func New(p Params) Settings {
	s := Settings{
		speed:         clampInt(p.Speed, MinSpeed, MaxSpeed),
		variance:      clamp(p.Variance, 0, MaxVariance),
		typoRate:      clamp(p.TypoRate, 0, MaxTypoRate),
		activateChord: strings.TrimSpace(p.ActivateChord),
		cancelChord:   strings.TrimSpace(p.CancelChord),
	}
	s.minDelayMs = clamp(p.MinDelayMs, MinDelayFloor, MaxDelayCeiling)
	s.maxDelayMs = clamp(p.MaxDelayMs, s.minDelayMs, MaxDelayCeiling)
	if s.activateChord == "" {
		s.activateChord = DefaultActivateChord()
	}
	if s.cancelChord == "" {
		s.cancelChord = DefaultCancelChord
	}
	return s
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, nanToZero(v)))
}

func nanToZero(v float64) float64 {
	if v != v {
		return 0
	}
	return v
}

// Params returns the snapshot's fields for building a modified copy.
func (s Settings) Params() Params {
	return Params{
		Speed:         s.speed,
		Variance:      s.variance,
		TypoRate:      s.typoRate,
		ActivateChord: s.activateChord,
		CancelChord:   s.cancelChord,
		MinDelayMs:    s.minDelayMs,
		MaxDelayMs:    s.maxDelayMs,
	}
}

func (s Settings) Speed() int            { return s.speed }
func (s Settings) Variance() float64     { return s.variance }
func (s Settings) TypoRate() float64     { return s.typoRate }
func (s Settings) ActivateChord() string { return s.activateChord }
func (s Settings) CancelChord() string   { return s.cancelChord }
func (s Settings) MinDelayMs() float64   { return s.minDelayMs }
func (s Settings) MaxDelayMs() float64   { return s.maxDelayMs }

// ChordsEqual reports whether s and o bind the same chord strings.
func (s Settings) ChordsEqual(o Settings) bool {
	return s.activateChord == o.activateChord && s.cancelChord == o.cancelChord
}

// WithChords returns a copy of s with the given chord strings.
func (s Settings) WithChords(activate, cancel string) Settings {
	p := s.Params()
	p.ActivateChord = activate
	p.CancelChord = cancel
	return New(p)
}
