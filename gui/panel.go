//go:build gui

package gui

import (
	"fmt"
	"math"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"autotyper/engine"
	"autotyper/settings"
)

// Controller receives the changes made in the window. The orchestrator
// applies them and echoes the result back through the Display methods.
type Controller interface {
	Settings() settings.Settings
	SubmitSettings(st settings.Settings)
	Cancel()
}

const (
	speedStep    = 5
	varianceStep = 0.05
	typoStep     = 0.005
)

// panel holds the window's widgets. Its methods run on the fyne thread.
type panel struct {
	ctl func() Controller

	st       settings.Settings
	sessions int

	status      *widget.Label
	speed       *widget.Slider
	speedVal    *widget.Label
	variance    *widget.Slider
	varianceVal *widget.Label
	typo        *widget.Slider
	typoVal     *widget.Label
	activate    *widget.Entry
	cancel      *widget.Entry
	apply       *widget.Button
	reset       *widget.Button
	stop        *widget.Button
	session     *widget.Label
	message     *widget.Label
}

func newPanel(ctl func() Controller) *panel {
	p := &panel{ctl: ctl, st: settings.Default()}

	p.status = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	p.speedVal = widget.NewLabel("")
	p.varianceVal = widget.NewLabel("")
	p.typoVal = widget.NewLabel("")

	p.speed = newSlider(settings.MinSpeed, settings.MaxSpeed, speedStep, p.speedVal, func(v float64) string {
		return fmt.Sprintf("%d wpm", int(math.Round(v)))
	})
	p.speed.OnChangeEnded = func(v float64) {
		prm := p.st.Params()
		prm.Speed = int(math.Round(v))
		p.submit(settings.New(prm))
	}

	p.variance = newSlider(0, settings.MaxVariance, varianceStep, p.varianceVal, func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	})
	p.variance.OnChangeEnded = func(v float64) {
		prm := p.st.Params()
		prm.Variance = roundTo(v, 2)
		p.submit(settings.New(prm))
	}

	p.typo = newSlider(0, settings.MaxTypoRate, typoStep, p.typoVal, func(v float64) string {
		return fmt.Sprintf("%.1f%%", v*100)
	})
	p.typo.OnChangeEnded = func(v float64) {
		prm := p.st.Params()
		prm.TypoRate = roundTo(v, 3)
		p.submit(settings.New(prm))
	}

	p.activate = widget.NewEntry()
	p.activate.SetPlaceHolder(settings.DefaultActivateChord())
	p.cancel = widget.NewEntry()
	p.cancel.SetPlaceHolder(settings.DefaultCancelChord)
	p.apply = widget.NewButton("Apply hotkeys", p.applyChords)
	p.reset = widget.NewButton("Reset", func() { p.submit(settings.Default()) })
	p.stop = widget.NewButton("Cancel typing", func() {
		if c := p.ctl(); c != nil {
			c.Cancel()
		}
	})

	p.session = widget.NewLabel("No sessions yet.")
	p.message = widget.NewLabel("")
	p.message.Wrapping = fyne.TextWrapWord

	p.setSettings(p.st)
	p.setStatus(engine.StatusIdle)
	return p
}

func newSlider(lo, hi, step float64, value *widget.Label, format func(float64) string) *widget.Slider {
	s := widget.NewSlider(lo, hi)
	s.Step = step
	s.OnChanged = func(v float64) { value.SetText(format(v)) }
	return s
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

func (p *panel) content() fyne.CanvasObject {
	row := func(s *widget.Slider, value *widget.Label) fyne.CanvasObject {
		return container.NewBorder(nil, nil, nil, value, s)
	}
	typing := widget.NewForm(
		widget.NewFormItem("Speed", row(p.speed, p.speedVal)),
		widget.NewFormItem("Variance", row(p.variance, p.varianceVal)),
		widget.NewFormItem("Typos", row(p.typo, p.typoVal)),
	)
	hotkeys := widget.NewForm(
		widget.NewFormItem("Activate", p.activate),
		widget.NewFormItem("Cancel", p.cancel),
	)
	return container.NewVBox(
		p.status,
		widget.NewSeparator(),
		typing,
		hotkeys,
		container.NewHBox(p.apply, p.reset, p.stop),
		widget.NewSeparator(),
		p.session,
		p.message,
	)
}

// submit records st and hands it to the controller. A value equal to the
// current one, such as a change undone by clamping, is not sent.
func (p *panel) submit(st settings.Settings) {
	if st == p.st {
		p.setSettings(p.st)
		return
	}
	p.setSettings(st)
	if c := p.ctl(); c != nil {
		c.SubmitSettings(st)
	}
}

func (p *panel) applyChords() {
	activate := strings.TrimSpace(p.activate.Text)
	cancel := strings.TrimSpace(p.cancel.Text)
	p.submit(p.st.WithChords(activate, cancel))
}

func (p *panel) setSettings(st settings.Settings) {
	p.st = st
	p.speed.SetValue(float64(st.Speed()))
	p.variance.SetValue(st.Variance())
	p.typo.SetValue(st.TypoRate())
	p.activate.SetText(st.ActivateChord())
	p.cancel.SetText(st.CancelChord())
}

func (p *panel) setStatus(s engine.Status) {
	switch s {
	case engine.StatusTyping:
		p.status.SetText("● TYPING")
		p.stop.Enable()
	case engine.StatusCancelled:
		p.status.SetText("■ CANCELLED")
		p.stop.Disable()
	default:
		p.status.SetText("○ STANDBY")
		p.stop.Disable()
	}
}

func (p *panel) showSession(rep engine.Report) {
	p.sessions++
	p.session.SetText(fmt.Sprintf("Last session (#%d): %s, %d / %d chars, %d typos, %.1fs",
		p.sessions, rep.Outcome, rep.Typed, rep.Length, rep.Typos, rep.Duration().Seconds()))
}

func (p *panel) showError(msg string) { p.message.SetText("Error: " + msg) }
func (p *panel) showInfo(msg string)  { p.message.SetText(msg) }
