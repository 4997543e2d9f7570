package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldTypoRateBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	never := NewTypoGenerator(0).WithRand(rng)
	always := NewTypoGenerator(1).WithRand(rng)
	for range 1000 {
		require.False(t, never.ShouldTypo())
		require.True(t, always.ShouldTypo())
	}
}

func TestTypoCharIsNeighbor(t *testing.T) {
	g := NewTypoGenerator(1).WithRand(rand.New(rand.NewPCG(5, 6)))
	for range 200 {
		typo, ok := g.TypoChar('a')
		require.True(t, ok)
		assert.Contains(t, []rune{'s', 'q', 'z', 'w'}, typo)
	}
}

func TestTypoCharPreservesCase(t *testing.T) {
	g := NewTypoGenerator(1).WithRand(rand.New(rand.NewPCG(8, 9)))
	for range 200 {
		typo, ok := g.TypoChar('A')
		require.True(t, ok)
		assert.Contains(t, []rune{'S', 'Q', 'Z', 'W'}, typo)
	}
	// Digit neighbors have no upper case and stay as they are.
	typo, ok := NewTypoGenerator(1).WithRand(fixedRand{i: 4}).TypoChar('E')
	require.True(t, ok)
	assert.Equal(t, '3', typo)
}

func TestTypoCharWithoutNeighbors(t *testing.T) {
	g := NewTypoGenerator(1)
	for _, c := range []rune{'1', ' ', '!', '\n', 'é', 'ß', 'K'} {
		_, ok := g.TypoChar(c)
		assert.False(t, ok, "%q", c)
	}
}

func TestNeighborsTableCoversAlphabet(t *testing.T) {
	for c := 'a'; c <= 'z'; c++ {
		assert.NotEmpty(t, Neighbors(c), "%q", c)
		assert.Equal(t, Neighbors(c), Neighbors(c-'a'+'A'))
	}
}
