package keyboard

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderEvents(t *testing.T) {
	var out bytes.Buffer
	r := NewRecorder()
	r.Out = &out

	require.NoError(t, r.TypeRune('a'))
	require.NoError(t, r.Tap(Enter))
	require.NoError(t, r.TypeRune('é'))

	assert.Equal(t, []string{"a", "<enter>", "é"}, r.Events())
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, "key \"a\"\nkey \"<enter>\"\nkey \"é\"\n", out.String())
}

func TestRecorderFailAt(t *testing.T) {
	boom := errors.New("boom")
	r := NewRecorder()
	r.FailAt(1, boom)

	require.NoError(t, r.TypeRune('a'))
	assert.ErrorIs(t, r.TypeRune('b'), boom)
	assert.ErrorIs(t, r.Tap(Tab), boom)
	assert.Equal(t, []string{"a"}, r.Events())
}

func TestRecorderUnknownKey(t *testing.T) {
	r := NewRecorder()
	assert.ErrorIs(t, r.Tap(Key(99)), ErrUnknownKey)
	assert.Zero(t, r.Len())
}

func TestTookClipboardResets(t *testing.T) {
	var c clipboardUse
	assert.False(t, c.TookClipboard())
	c.used.Store(true)
	assert.True(t, c.TookClipboard())
	assert.False(t, c.TookClipboard())
}
