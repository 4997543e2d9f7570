package engine

import (
	"unicode"
	"unicode/utf8"
)

// adjacentKeys maps each letter to the keys physically next to it on a
// QWERTY layout.
var adjacentKeys = map[rune][]rune{
	'a': {'s', 'q', 'z', 'w'},
	'b': {'v', 'g', 'h', 'n'},
	'c': {'x', 'd', 'f', 'v'},
	'd': {'s', 'e', 'r', 'f', 'c', 'x'},
	'e': {'w', 's', 'd', 'r', '3', '4'},
	'f': {'d', 'r', 't', 'g', 'v', 'c'},
	'g': {'f', 't', 'y', 'h', 'b', 'v'},
	'h': {'g', 'y', 'u', 'j', 'n', 'b'},
	'i': {'u', 'j', 'k', 'o', '8', '9'},
	'j': {'h', 'u', 'i', 'k', 'n', 'm'},
	'k': {'j', 'i', 'o', 'l', 'm'},
	'l': {'k', 'o', 'p', ';'},
	'm': {'n', 'j', 'k', ','},
	'n': {'b', 'h', 'j', 'm'},
	'o': {'i', 'k', 'l', 'p', '9', '0'},
	'p': {'o', 'l', '[', '0', '-'},
	'q': {'w', 'a', '1', '2'},
	'r': {'e', 'd', 'f', 't', '4', '5'},
	's': {'a', 'w', 'e', 'd', 'x', 'z'},
	't': {'r', 'f', 'g', 'y', '5', '6'},
	'u': {'y', 'h', 'j', 'i', '7', '8'},
	'v': {'c', 'f', 'g', 'b'},
	'w': {'q', 'a', 's', 'e', '2', '3'},
	'x': {'z', 's', 'd', 'c'},
	'y': {'t', 'g', 'h', 'u', '6', '7'},
	'z': {'a', 's', 'x'},
}

// Neighbors returns the adjacency entry for c, or nil.
func Neighbors(c rune) []rune {
	if c >= utf8.RuneSelf {
		return nil
	}
	return adjacentKeys[unicode.ToLower(c)]
}

// TypoGenerator decides when to mistype and what to mistype with.
type TypoGenerator struct {
	Rate float64

	rng Rand
}

func NewTypoGenerator(rate float64) TypoGenerator {
	return TypoGenerator{Rate: rate, rng: globalRand{}}
}

// WithRand returns a copy of g drawing from r.
func (g TypoGenerator) WithRand(r Rand) TypoGenerator {
	g.rng = r
	return g
}

func (g TypoGenerator) rand() Rand {
	if g.rng == nil {
		return globalRand{}
	}
	return g.rng
}

// ShouldTypo reports true with probability Rate.
func (g TypoGenerator) ShouldTypo() bool {
	return g.rand().Float64() < g.Rate
}

// TypoChar picks a neighbor of c, cased like c. ok is false when c has no
// entry in the adjacency table (digits, punctuation, whitespace, non-ASCII).
func (g TypoGenerator) TypoChar(c rune) (typo rune, ok bool) {
	neighbors := Neighbors(c)
	if len(neighbors) == 0 {
		return 0, false
	}
	typo = neighbors[g.rand().IntN(len(neighbors))]
	if unicode.IsUpper(c) {
		typo = unicode.ToUpper(typo)
	}
	return typo, true
}
