//go:build gui

package gui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autotyper/engine"
	"autotyper/settings"
)

type fakeController struct {
	submitted []settings.Settings
	cancels   int
}

func (c *fakeController) Settings() settings.Settings { return settings.Default() }
func (c *fakeController) SubmitSettings(st settings.Settings) {
	c.submitted = append(c.submitted, st)
}
func (c *fakeController) Cancel() { c.cancels++ }

func newTestPanel(t *testing.T) (*panel, *fakeController) {
	t.Helper()
	test.NewTempApp(t)
	ctl := &fakeController{}
	return newPanel(func() Controller { return ctl }), ctl
}

func TestPanelShowsSettings(t *testing.T) {
	p, ctl := newTestPanel(t)

	prm := settings.DefaultParams()
	prm.Speed = 90
	prm.TypoRate = 0.05
	prm.ActivateChord = "<alt>+t"
	p.setSettings(settings.New(prm))

	assert.Equal(t, 90.0, p.speed.Value)
	assert.Equal(t, "90 wpm", p.speedVal.Text)
	assert.Equal(t, "5.0%", p.typoVal.Text)
	assert.Equal(t, "<alt>+t", p.activate.Text)
	assert.Empty(t, ctl.submitted, "showing settings must not submit them")
}

func TestPanelSliderSubmits(t *testing.T) {
	p, ctl := newTestPanel(t)

	p.speed.SetValue(85)
	p.speed.OnChangeEnded(85)
	p.variance.SetValue(0.55)
	p.variance.OnChangeEnded(0.5500000001)

	require.Len(t, ctl.submitted, 2)
	assert.Equal(t, 85, ctl.submitted[0].Speed())
	assert.Equal(t, 0.55, ctl.submitted[1].Variance())
	assert.Equal(t, 85, ctl.submitted[1].Speed())
}

func TestPanelUnchangedValueNotSubmitted(t *testing.T) {
	p, ctl := newTestPanel(t)

	p.speed.OnChangeEnded(float64(settings.DefaultSpeed))
	assert.Empty(t, ctl.submitted)
}

func TestPanelApplyChords(t *testing.T) {
	p, ctl := newTestPanel(t)

	p.activate.SetText("  <alt>+x ")
	p.cancel.SetText("<ctrl>+q")
	test.Tap(p.apply)

	require.Len(t, ctl.submitted, 1)
	assert.Equal(t, "<alt>+x", ctl.submitted[0].ActivateChord())
	assert.Equal(t, "<ctrl>+q", ctl.submitted[0].CancelChord())
	assert.Equal(t, settings.DefaultSpeed, ctl.submitted[0].Speed())
}

func TestPanelResetAndCancel(t *testing.T) {
	p, ctl := newTestPanel(t)
	prm := settings.DefaultParams()
	prm.Speed = 40
	p.setSettings(settings.New(prm))

	test.Tap(p.reset)
	require.Len(t, ctl.submitted, 1)
	assert.Equal(t, settings.Default(), ctl.submitted[0])

	p.setStatus(engine.StatusTyping)
	test.Tap(p.stop)
	assert.Equal(t, 1, ctl.cancels)
}

func TestPanelStatusAndSession(t *testing.T) {
	p, _ := newTestPanel(t)
	assert.Equal(t, "○ STANDBY", p.status.Text)
	assert.True(t, p.stop.Disabled())

	p.setStatus(engine.StatusTyping)
	assert.Equal(t, "● TYPING", p.status.Text)
	assert.False(t, p.stop.Disabled())

	start := time.Now()
	p.showSession(engine.Report{
		Outcome: engine.OutcomeCancelled, Length: 10, Typed: 4, Typos: 1,
		StartedAt: start, EndedAt: start.Add(1500 * time.Millisecond),
	})
	assert.Equal(t, "Last session (#1): cancelled, 4 / 10 chars, 1 typos, 1.5s", p.session.Text)

	p.showError("Clipboard is empty. Copy some text first.")
	assert.Equal(t, "Error: Clipboard is empty. Copy some text first.", p.message.Text)
}

func TestPanelWithoutController(t *testing.T) {
	test.NewTempApp(t)
	p := newPanel(func() Controller { return nil })

	p.speed.OnChangeEnded(100)
	assert.Equal(t, 100, p.st.Speed())
	test.Tap(p.reset)
	assert.Equal(t, settings.Default(), p.st)
}
