package engine

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	msPerMinute  = 60000.0
	charsPerWord = 5.0
)

// Rand is the random source used by the delay and typo models.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	NormFloat64() float64
	IntN(n int) int
}

// globalRand draws from math/rand/v2's top-level generator, which is safe
// for concurrent use.
type globalRand struct{}

func (globalRand) Float64() float64     { return rand.Float64() }
func (globalRand) NormFloat64() float64 { return rand.NormFloat64() }
func (globalRand) IntN(n int) int       { return rand.IntN(n) }

// DelayModel produces inter-keystroke delays drawn from a normal
// distribution and clamped to [MinMs, MaxMs].
type DelayModel struct {
	MeanMs   float64
	StddevMs float64
	MinMs    float64
	MaxMs    float64

	rng Rand
}

// MeanDelayMs converts a typing speed in words per minute to the mean delay
// between keystrokes, assuming five characters per word.
func MeanDelayMs(speed int) float64 {
	return (msPerMinute / float64(speed)) / charsPerWord
}

func NewDelayModel(speed int, variance, minMs, maxMs float64) DelayModel {
	mean := MeanDelayMs(speed)
	return DelayModel{
		MeanMs:   mean,
		StddevMs: mean * variance,
		MinMs:    minMs,
		MaxMs:    maxMs,
		rng:      globalRand{},
	}
}

// WithRand returns a copy of m drawing from r.
func (m DelayModel) WithRand(r Rand) DelayModel {
	m.rng = r
	return m
}

// NextMs returns one independent delay sample in milliseconds.
func (m DelayModel) NextMs() float64 {
	rng := m.rng
	if rng == nil {
		rng = globalRand{}
	}
	ms := m.MeanMs
	if m.StddevMs > 0 {
		ms += rng.NormFloat64() * m.StddevMs
	}
	return max(m.MinMs, min(m.MaxMs, ms))
}

// Next returns one independent delay sample. Samples too long for a
// time.Duration saturate at its maximum.
func (m DelayModel) Next() time.Duration {
	ns := m.NextMs() * float64(time.Millisecond)
	if ns >= math.MaxInt64 {
		return math.MaxInt64
	}
	return time.Duration(ns)
}
