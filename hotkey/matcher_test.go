package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcherFiresOnlyWhenAllHeld(t *testing.T) {
	m := NewMatcher(MustParseChord("<ctrl>+<shift>+k"))

	assert.False(t, m.Press(KeyCtrl))
	assert.False(t, m.Press(KeyShift))
	assert.True(t, m.Press("k"))
}

func TestMatcherOrderIndependent(t *testing.T) {
	m := NewMatcher(MustParseChord("<ctrl>+<shift>+k"))

	assert.False(t, m.Press("k"))
	assert.False(t, m.Press(KeyCtrl))
	assert.True(t, m.Press(KeyShift))
}

func TestMatcherNeverFiresOnSubset(t *testing.T) {
	m := NewMatcher(MustParseChord("<ctrl>+<shift>+k"))

	assert.False(t, m.Press(KeyCtrl))
	assert.False(t, m.Press("k"))
	m.Release("k")
	assert.False(t, m.Press("k"))
	assert.False(t, m.Press("j"))
}

func TestMatcherAutoRepeatDoesNotRefire(t *testing.T) {
	m := NewMatcher(MustParseChord("<ctrl>+<shift>+k"))
	m.Press(KeyCtrl)
	m.Press(KeyShift)
	assert.True(t, m.Press("k"))

	for range 5 {
		assert.False(t, m.Press("k"))
	}
}

func TestMatcherRefiresAfterRelease(t *testing.T) {
	m := NewMatcher(MustParseChord("<ctrl>+<shift>+k"))
	m.Press(KeyCtrl)
	m.Press(KeyShift)
	assert.True(t, m.Press("k"))

	m.Release("k")
	assert.True(t, m.Press("k"), "modifiers still held")

	m.Release("k")
	m.Release(KeyShift)
	m.Release(KeyCtrl)
	assert.False(t, m.Press(KeyCtrl))
	assert.False(t, m.Press(KeyShift))
	assert.True(t, m.Press("k"))
}

func TestMatcherSingleKey(t *testing.T) {
	m := NewMatcher(MustParseChord("<esc>"))
	assert.True(t, m.Press(KeyEsc))
	assert.False(t, m.Press(KeyEsc))
	m.Release(KeyEsc)
	assert.True(t, m.Press(KeyEsc))
}

func TestMatcherIgnoresUnrelatedRelease(t *testing.T) {
	m := NewMatcher(MustParseChord("<ctrl>+k"))
	m.Press(KeyCtrl)
	m.Release("x")
	assert.True(t, m.Press("k"))
}

func TestMatcherTwinModifiers(t *testing.T) {
	const leftCtrl, rightCtrl = 29, 97
	m := NewMatcher(MustParseChord("<ctrl>+k"))

	assert.False(t, m.PressCode(KeyCtrl, leftCtrl))
	assert.False(t, m.PressCode(KeyCtrl, rightCtrl))
	m.ReleaseCode(KeyCtrl, leftCtrl)
	assert.True(t, m.PressCode("k", 37), "right ctrl still held")

	m.ReleaseCode("k", 37)
	m.ReleaseCode(KeyCtrl, rightCtrl)
	assert.False(t, m.PressCode("k", 37))
}

func TestMatcherSecondTwinDoesNotRefire(t *testing.T) {
	m := NewMatcher(MustParseChord("<ctrl>+k"))
	m.PressCode("k", 37)
	assert.True(t, m.PressCode(KeyCtrl, 29))
	assert.False(t, m.PressCode(KeyCtrl, 97))
}
