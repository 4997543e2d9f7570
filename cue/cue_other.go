//go:build !linux && !darwin

package cue

// No audio playback here - cues are silent.

func Init()     {}
func play(Kind) {}
