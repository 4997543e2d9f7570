package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autotyper/engine"
	"autotyper/settings"
)

type fakeController struct {
	st        settings.Settings
	submitted []settings.Settings
	cancels   int
}

func (c *fakeController) Settings() settings.Settings { return c.st }
func (c *fakeController) SubmitSettings(st settings.Settings) {
	c.submitted = append(c.submitted, st)
}
func (c *fakeController) Cancel() { c.cancels++ }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m tuiModel, msg tea.Msg) (tuiModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	tm, ok := next.(tuiModel)
	require.True(t, ok)
	return tm, cmd
}

func TestTUIAdjustsSettings(t *testing.T) {
	ctl := &fakeController{st: settings.Default()}
	m := newTUIModel(ctl)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(t, m, runes("]"))

	require.Len(t, ctl.submitted, 3)
	last := ctl.submitted[2]
	assert.Equal(t, settings.DefaultSpeed+speedStep, last.Speed())
	assert.Equal(t, 0.25, last.Variance())
	assert.Equal(t, 0.02, last.TypoRate())
	assert.Equal(t, last, m.st)
}

func TestTUIClampedChangeNotSubmitted(t *testing.T) {
	p := settings.DefaultParams()
	p.Speed = settings.MaxSpeed
	ctl := &fakeController{st: settings.New(p)}
	m := newTUIModel(ctl)

	press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Empty(t, ctl.submitted)
}

func TestTUIResetAndCancel(t *testing.T) {
	p := settings.DefaultParams()
	p.Speed = 40
	ctl := &fakeController{st: settings.New(p)}
	m := newTUIModel(ctl)

	m, _ = press(t, m, runes("x"))
	assert.Equal(t, 1, ctl.cancels)

	press(t, m, runes("r"))
	require.Len(t, ctl.submitted, 1)
	assert.Equal(t, settings.Default(), ctl.submitted[0])
}

func TestTUIQuitCancelsTyping(t *testing.T) {
	ctl := &fakeController{st: settings.Default()}
	_, cmd := press(t, newTUIModel(ctl), runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 1, ctl.cancels)
}

func TestTUIChordEditor(t *testing.T) {
	ctl := &fakeController{st: settings.Default()}
	m := newTUIModel(ctl)

	m, _ = press(t, m, runes("e"))
	require.True(t, m.editing)
	assert.Equal(t, settings.DefaultActivateChord(), m.inputs[0].Value())
	assert.Equal(t, settings.DefaultCancelChord, m.inputs[1].Value())

	m.inputs[0].SetValue(" <alt>+x ")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.focus)
	m.inputs[1].SetValue("<ctrl>+q")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.editing)
	require.Len(t, ctl.submitted, 1)
	assert.Equal(t, "<alt>+x", ctl.submitted[0].ActivateChord())
	assert.Equal(t, "<ctrl>+q", ctl.submitted[0].CancelChord())
	assert.Equal(t, settings.DefaultSpeed, ctl.submitted[0].Speed())
}

func TestTUIChordEditorEscDiscards(t *testing.T) {
	ctl := &fakeController{st: settings.Default()}
	m := newTUIModel(ctl)

	m, _ = press(t, m, runes("e"))
	m.inputs[0].SetValue("<alt>+x")
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.editing)
	assert.Empty(t, ctl.submitted)
}

func TestTUIView(t *testing.T) {
	ctl := &fakeController{st: settings.Default()}
	m := newTUIModel(ctl)
	assert.Contains(t, m.View(), "STANDBY")

	m, _ = press(t, m, statusMsg{Status: engine.StatusTyping})
	assert.Contains(t, m.View(), "TYPING")

	m, _ = press(t, m, sessionMsg{Report: engine.Report{Outcome: engine.OutcomeCancelled, Length: 10, Typed: 4}})
	m, _ = press(t, m, errorMsg{Text: "Clipboard is empty. Copy some text first."})
	view := m.View()
	assert.Contains(t, view, "last session (#1)")
	assert.Contains(t, view, "4 / 10")
	assert.Contains(t, view, "Clipboard is empty.")
	assert.Contains(t, view, "70 wpm")
}

func TestWrapLines(t *testing.T) {
	got := wrapLines("one two three\nfour", 8)
	assert.Equal(t, []string{"one two", "three", "four"}, got)
	assert.Equal(t, []string{""}, wrapText("", 5))
	for _, line := range wrapLines(strings.Repeat("word ", 20), 12) {
		assert.LessOrEqual(t, len(line), 12)
	}
}
