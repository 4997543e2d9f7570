package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGUIRequested(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"absent", []string{"--speed", "80"}, false},
		{"flag", []string{"--gui"}, true},
		{"explicit true", []string{"--gui=true"}, true},
		{"explicit false", []string{"--gui=false"}, false},
		{"last wins", []string{"--gui", "--gui=0"}, false},
		{"bad value", []string{"--gui=maybe"}, false},
		{"after terminator", []string{"script", "--", "--gui"}, false},
		{"single dash is not the flag", []string{"-gui"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, guiRequested(tt.args))
		})
	}
}
