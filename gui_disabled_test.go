//go:build !gui

package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunGUIWithoutSupport(t *testing.T) {
	assert.ErrorIs(t, runGUI(context.Background(), AppConfig{}), errNoGUI)
}
