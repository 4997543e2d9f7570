// Package cue plays short audible cues for typing session transitions.
package cue

import (
	"math"
	"sync/atomic"
)

// Kind selects a cue.
type Kind int

const (
	Start Kind = iota
	Finish
	Cancel
	Error
)

var disabled atomic.Bool

// Disable silences every later Play.
func Disable() { disabled.Store(true) }

func Enabled() bool { return !disabled.Load() }

// Play starts the cue in the background and returns immediately.
func Play(k Kind) {
	if disabled.Load() {
		return
	}
	play(k)
}

const (
	sampleRate = 44100

	// Start: high pitch, short
	startFreq   = 1200
	startVolume = 0.5
	startDecay  = 60

	// Finish: medium pitch, slightly longer
	finishFreq   = 900
	finishVolume = 0.5
	finishDecay  = 40

	// Cancel: mid-low double tick
	cancelFreq   = 600
	cancelVolume = 0.5
	cancelDecay  = 40

	// Error: low pitch double beep
	errorFreq   = 350
	errorVolume = 0.6
	errorDecay  = 30
)

// tone renders a decaying sine as mono samples.
func tone(freq, duration, volume, decay float64) []int16 {
	n := int(sampleRate * duration)
	samples := make([]int16, n)
	for i := range n {
		t := float64(i) / sampleRate
		envelope := math.Exp(-t * decay)
		samples[i] = int16(math.Sin(2*math.Pi*freq*t) * 32767 * volume * envelope)
	}
	return samples
}

// double plays beep twice with gap seconds of silence between.
func double(beep []int16, gap float64) []int16 {
	silence := make([]int16, int(sampleRate*gap))
	out := make([]int16, 0, len(beep)*2+len(silence))
	out = append(out, beep...)
	out = append(out, silence...)
	return append(out, beep...)
}

// samplesFor renders k with the given tick length in seconds.
func samplesFor(k Kind, tick float64) []int16 {
	switch k {
	case Start:
		return tone(startFreq, tick, startVolume, startDecay)
	case Finish:
		return tone(finishFreq, tick, finishVolume, finishDecay)
	case Cancel:
		return double(tone(cancelFreq, 0.06, cancelVolume, cancelDecay), 0.04)
	case Error:
		return double(tone(errorFreq, 0.08, errorVolume, errorDecay), 0.05)
	}
	return nil
}

// stereo duplicates each sample into interleaved left/right channels.
func stereo(mono []int16) []int16 {
	out := make([]int16, len(mono)*2)
	for i, s := range mono {
		out[i*2] = s
		out[i*2+1] = s
	}
	return out
}

// pcm16 encodes samples as little-endian signed 16-bit PCM.
func pcm16(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		buf[i*2] = byte(s)
		buf[i*2+1] = byte(s >> 8)
	}
	return buf
}
