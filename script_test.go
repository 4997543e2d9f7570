package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"autotyper/settings"
)

func scriptSettings() settings.Settings {
	p := settings.DefaultParams()
	p.TypoRate = 0
	return settings.New(p)
}

func TestScriptTypesClipboard(t *testing.T) {
	defer goleak.VerifyNone(t)
	script := fmt.Sprintf("# type two letters\nCLIP %q\nCHORD %s\nWAIT\nQUIT\n",
		"a\tb", settings.DefaultActivateChord())
	var out bytes.Buffer

	code := runScript(context.Background(), strings.NewReader(script), &out, scriptSettings())

	assert.Equal(t, 0, code, out.String())
	got := out.String()
	assert.Contains(t, got, "key \"a\"\nkey \"<tab>\"\nkey \"b\"\n")
	assert.Contains(t, got, "status: typing")
	assert.Contains(t, got, "session completed: 3/3 chars, 0 typos")
}

func TestScriptCancelWithPressRelease(t *testing.T) {
	defer goleak.VerifyNone(t)
	script := "CLIP \"\"\nPRESS <esc>\nRELEASE <esc>\nSLEEP 10\nQUIT\n"
	var out bytes.Buffer

	code := runScript(context.Background(), strings.NewReader(script), &out, scriptSettings())
	assert.Equal(t, 0, code, out.String())
	assert.NotContains(t, out.String(), "session")
}

func TestScriptErrors(t *testing.T) {
	defer goleak.VerifyNone(t)
	script := "FROB\nPRESS <nope>\nREBIND <alt>+x\nQUIT\n"
	var out bytes.Buffer

	code := runScript(context.Background(), strings.NewReader(script), &out, scriptSettings())
	assert.Equal(t, 1, code)
	got := out.String()
	assert.Contains(t, got, `unknown command "FROB"`)
	assert.Contains(t, got, "unknown key name")
	assert.Contains(t, got, "want two chords, got 1")
}
