//go:build linux

package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharToKey(t *testing.T) {
	tests := []struct {
		in    rune
		code  uint16
		shift bool
		ok    bool
	}{
		{'a', 30, false, true},
		{'K', 37, true, true},
		{'0', 11, false, true},
		{'9', 10, false, true},
		{' ', keySpace, false, true},
		{';', 39, false, true},
		{':', 39, true, true},
		{'?', 53, true, true},
		{'é', 0, false, false},
		{'€', 0, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			code, shift, ok := charToKey(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.code, code)
				assert.Equal(t, tt.shift, shift)
			}
		})
	}
}
