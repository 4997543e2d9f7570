package doctor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionHelpPerPlatform(t *testing.T) {
	assert.Contains(t, permissionHelp("darwin"), "Accessibility")
	assert.Contains(t, permissionHelp("windows"), "Administrator")
	assert.Contains(t, permissionHelp("linux"), "input group")
	for _, goos := range []string{"darwin", "windows", "linux", "freebsd"} {
		assert.True(t, strings.HasPrefix(permissionHelp(goos), "Could not register global hotkeys."), goos)
	}
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "  a\n  b", indent("a\nb"))
}
