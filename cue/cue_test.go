package cue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToneLengthAndDecay(t *testing.T) {
	s := tone(1000, 0.1, 0.5, 40)
	assert.Len(t, s, sampleRate/10)

	peak := func(xs []int16) int16 {
		var m int16
		for _, x := range xs {
			m = max(m, x, -x)
		}
		return m
	}
	head := peak(s[:len(s)/4])
	tail := peak(s[len(s)*3/4:])
	assert.Greater(t, head, tail, "envelope decays")
	assert.LessOrEqual(t, head, int16(32767/2+1))
}

func TestDoubleHasGap(t *testing.T) {
	beep := tone(350, 0.01, 0.6, 30)
	d := double(beep, 0.01)
	assert.Len(t, d, len(beep)*2+sampleRate/100)
	for _, x := range d[len(beep) : len(beep)+sampleRate/100] {
		assert.Zero(t, x)
	}
}

func TestStereoAndPCM(t *testing.T) {
	st := stereo([]int16{1, -2})
	assert.Equal(t, []int16{1, 1, -2, -2}, st)
	assert.Equal(t, []byte{0x01, 0x00, 0xfe, 0xff}, pcm16([]int16{1, -2}))
}

func TestSamplesForEveryKind(t *testing.T) {
	for _, k := range []Kind{Start, Finish, Cancel, Error} {
		assert.NotEmpty(t, samplesFor(k, 0.05), "kind %d", k)
	}
	assert.Nil(t, samplesFor(Kind(99), 0.05))
}

func TestDisable(t *testing.T) {
	assert.True(t, Enabled())
	Disable()
	t.Cleanup(func() { disabled.Store(false) })
	assert.False(t, Enabled())
	Play(Start) // no-op once disabled
}
