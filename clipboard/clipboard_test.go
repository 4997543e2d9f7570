package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyText(t *testing.T) {
	text, err := classify("  hello\n", nil)
	require.NoError(t, err)
	assert.Equal(t, "  hello\n", text, "text is returned untrimmed")
}

func TestClassifyEmpty(t *testing.T) {
	for _, in := range []string{"", " ", "\n\t  "} {
		_, err := classify(in, nil)
		assert.ErrorIs(t, err, ErrEmpty, "input %q", in)
	}
}

func TestClassifyUnreadable(t *testing.T) {
	_, err := classify("", errors.New("exit status 1"))
	require.ErrorIs(t, err, ErrUnreadable)
	assert.NotErrorIs(t, err, ErrEmpty)
	assert.Contains(t, err.Error(), "exit status 1")
}

func TestStaticReader(t *testing.T) {
	s := NewStatic("abc")
	text, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, "abc", text)

	s.Set("", nil)
	_, err = s.Read()
	assert.ErrorIs(t, err, ErrEmpty)

	s.Set("abc", errors.New("no xclip"))
	_, err = s.Read()
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestStaticWrite(t *testing.T) {
	var rw ReadWriter = NewStatic("")
	require.NoError(t, rw.Write("restored"))
	text, err := rw.Read()
	require.NoError(t, err)
	assert.Equal(t, "restored", text)
}
