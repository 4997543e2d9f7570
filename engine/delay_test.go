package engine

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fixedRand returns the same draws every time.
type fixedRand struct {
	f    float64
	norm float64
	i    int
}

func (r fixedRand) Float64() float64     { return r.f }
func (r fixedRand) NormFloat64() float64 { return r.norm }
func (r fixedRand) IntN(n int) int       { return r.i % n }

func TestMeanDelayMs(t *testing.T) {
	tests := []struct {
		speed int
		want  float64
	}{
		{30, 400},
		{60, 200},
		{70, 171.43},
		{120, 100},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, MeanDelayMs(tt.speed), 0.01, "speed %d", tt.speed)
	}
}

func TestDelayWithinBounds(t *testing.T) {
	m := NewDelayModel(70, 1.0, 20, 300).WithRand(rand.New(rand.NewPCG(1, 2)))
	for range 10000 {
		ms := m.NextMs()
		if ms < 20 || ms > 300 {
			t.Fatalf("delay %v outside [20, 300]", ms)
		}
	}
}

func TestDelayZeroVarianceIsMean(t *testing.T) {
	m := NewDelayModel(60, 0, 20, 300)
	for range 100 {
		assert.Equal(t, 200.0, m.NextMs())
	}
	assert.Equal(t, 200*time.Millisecond, m.Next())
}

func TestDelayClampsExtremes(t *testing.T) {
	hi := NewDelayModel(30, 1, 20, 300).WithRand(fixedRand{norm: 5})
	assert.Equal(t, 300.0, hi.NextMs())

	lo := NewDelayModel(120, 1, 20, 300).WithRand(fixedRand{norm: -5})
	assert.Equal(t, 20.0, lo.NextMs())

	// Mean above the ceiling.
	slow := NewDelayModel(30, 0, 1, 50)
	assert.Equal(t, 50.0, slow.NextMs())
}

func TestDelayMeanConverges(t *testing.T) {
	m := NewDelayModel(60, 0.2, 1, 10000).WithRand(rand.New(rand.NewPCG(7, 7)))
	var sum float64
	const n = 20000
	for range n {
		sum += m.NextMs()
	}
	assert.InDelta(t, 200, sum/n, 3)
}

func TestDelayNextSaturates(t *testing.T) {
	m := NewDelayModel(60, 0, 1e13, 1e13)
	assert.Equal(t, time.Duration(math.MaxInt64), m.Next())

	inf := NewDelayModel(60, 0, math.Inf(1), math.Inf(1))
	assert.Positive(t, inf.Next())
}
