package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTapCodesDarwin(t *testing.T) {
	assert.Equal(t, 0x33, backspaceCode, "backspace must be the Mac Delete key")
	assert.Equal(t, 0x24, enterCode)
	assert.Equal(t, 0x30, tabCode)
}
