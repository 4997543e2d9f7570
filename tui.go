package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"autotyper/engine"
	"autotyper/settings"
)

// TUI message types
type statusMsg struct{ Status engine.Status }
type settingsMsg struct{ Settings settings.Settings }
type errorMsg struct{ Text string }
type infoMsg struct{ Text string }
type sessionMsg struct{ Report engine.Report }
type tickMsg time.Time

// Settings steps for the arrow keys.
const (
	speedStep    = 5
	varianceStep = 0.05
	typoStep     = 0.005
)

// controller is the part of App the TUI drives. Every method returns
// without waiting for the dispatcher.
type controller interface {
	Settings() settings.Settings
	SubmitSettings(st settings.Settings)
	Cancel()
}

type tuiModel struct {
	ctl    controller
	status engine.Status
	st     settings.Settings
	frame  int
	width  int

	editing  bool
	inputs   []textinput.Model
	focus    int
	message  string
	isError  bool
	sessions int
	last     *engine.Report
}

var (
	typingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cancelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	helpKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Bold(true)
	statsStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

func newTUIModel(ctl controller) tuiModel {
	return tuiModel{
		ctl:    ctl,
		status: engine.StatusIdle,
		st:     ctl.Settings(),
		inputs: []textinput.Model{
			newChordInput("activate: "),
			newChordInput("cancel:   "),
		},
	}
}

func newChordInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 64
	input.Placeholder = "<ctrl>+<shift>+k"
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func NewTUIProgram(ctl controller) *tea.Program {
	return tea.NewProgram(newTUIModel(ctl), tea.WithAltScreen())
}

func tuiTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Init() tea.Cmd {
	return tuiTick()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		m.frame++
		return m, tuiTick()

	case statusMsg:
		m.status = msg.Status

	case settingsMsg:
		m.st = msg.Settings

	case errorMsg:
		m.message, m.isError = msg.Text, true

	case infoMsg:
		m.message, m.isError = msg.Text, false

	case sessionMsg:
		m.sessions++
		rep := msg.Report
		m.last = &rep

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditor(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m tuiModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.st.Params()
	switch msg.String() {
	case "ctrl+c", "q":
		m.ctl.Cancel()
		return m, tea.Quit
	case "x":
		m.ctl.Cancel()
		return m, nil
	case "up", "k":
		p.Speed += speedStep
	case "down", "j":
		p.Speed -= speedStep
	case "right", "l":
		p.Variance = roundTo(p.Variance+varianceStep, 2)
	case "left", "h":
		p.Variance = roundTo(p.Variance-varianceStep, 2)
	case "]":
		p.TypoRate = roundTo(p.TypoRate+typoStep, 3)
	case "[":
		p.TypoRate = roundTo(p.TypoRate-typoStep, 3)
	case "r":
		p = settings.DefaultParams()
	case "e":
		return m.openEditor()
	default:
		return m, nil
	}
	next := settings.New(p)
	if next == m.st {
		return m, nil
	}
	m.st = next
	m.message = ""
	m.ctl.SubmitSettings(next)
	return m, nil
}

func (m tuiModel) openEditor() (tea.Model, tea.Cmd) {
	m.editing = true
	m.focus = 0
	m.inputs[0].SetValue(m.st.ActivateChord())
	m.inputs[1].SetValue(m.st.CancelChord())
	m.inputs[1].Blur()
	return m, m.inputs[0].Focus()
}

func (m tuiModel) closeEditor() tuiModel {
	m.editing = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m
}

func (m tuiModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.ctl.Cancel()
		return m, tea.Quit
	case "esc":
		return m.closeEditor(), nil
	case "tab", "shift+tab":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.inputs)
		return m, m.inputs[m.focus].Focus()
	case "enter":
		activate := strings.TrimSpace(m.inputs[0].Value())
		cancel := strings.TrimSpace(m.inputs[1].Value())
		m = m.closeEditor()
		next := m.st.WithChords(activate, cancel)
		if !next.ChordsEqual(m.st) {
			m.ctl.SubmitSettings(next)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

func (m tuiModel) View() string {
	var b strings.Builder

	b.WriteString(m.statusLine() + "\n\n")
	b.WriteString(settingRow("speed", fmt.Sprintf("%d wpm", m.st.Speed()), "↑/↓"))
	b.WriteString(settingRow("variance", fmt.Sprintf("%.2f", m.st.Variance()), "←/→"))
	b.WriteString(settingRow("typo rate", fmt.Sprintf("%.1f%%", m.st.TypoRate()*100), "[/]"))
	b.WriteString("\n")

	if m.editing {
		for _, in := range m.inputs {
			b.WriteString(in.View() + "\n")
		}
		b.WriteString(helpStyle.Render("tab switch  enter apply  esc discard") + "\n")
	} else {
		b.WriteString(settingRow("activate", m.st.ActivateChord(), "e"))
		b.WriteString(settingRow("cancel", m.st.CancelChord(), "e"))
	}

	if table := m.renderLastSession(); table != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(table, "\n") {
			b.WriteString(statsStyle.Render(line) + "\n")
		}
	}

	if m.message != "" {
		b.WriteString("\n")
		style := infoStyle
		if m.isError {
			style = errorStyle
		}
		for _, line := range wrapLines(m.message, m.wrapWidth()) {
			b.WriteString(style.Render(line) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpKeyStyle.Render(m.st.ActivateChord()) + helpStyle.Render(" types the clipboard, ") +
		helpKeyStyle.Render(m.st.CancelChord()) + helpStyle.Render(" stops") + "\n")
	b.WriteString(helpStyle.Render("x cancel  r reset  q quit") + "\n")
	b.WriteString(helpStyle.Render("autotyper " + version))
	return b.String()
}

func (m tuiModel) statusLine() string {
	switch m.status {
	case engine.StatusTyping:
		dots := strings.Repeat(".", m.frame%4)
		return typingStyle.Render("● TYPING" + dots)
	case engine.StatusCancelled:
		return cancelStyle.Render("■ CANCELLED")
	default:
		return idleStyle.Render("○ STANDBY")
	}
}

func settingRow(label, value, keys string) string {
	return labelStyle.Render(fmt.Sprintf("%-10s", label)) + valueStyle.Render(fmt.Sprintf("%-20s", value)) +
		helpStyle.Render(keys) + "\n"
}

func (m tuiModel) renderLastSession() string {
	if m.last == nil {
		return ""
	}
	r := m.last
	return fmt.Sprintf(
		"last session (#%d)  %s\n"+
			"chars   %5d / %d\n"+
			"typos   %5d\n"+
			"time    %5.1fs",
		m.sessions, r.Outcome,
		r.Typed, r.Length,
		r.Typos,
		r.Duration().Seconds(),
	)
}

func (m tuiModel) wrapWidth() int {
	if m.width < 20 {
		return 60
	}
	return m.width - 2
}

// wrapLines wraps each line of text at spaces to at most width bytes.
func wrapLines(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		out = append(out, wrapText(para, width)...)
	}
	return out
}

func wrapText(text string, width int) []string {
	if len(text) == 0 {
		return []string{""}
	}
	if width <= 0 {
		width = 1
	}

	var lines []string
	for len(text) > width {
		splitAt := width
		for i := width; i > 0; i-- {
			if text[i] == ' ' {
				splitAt = i
				break
			}
		}
		lines = append(lines, text[:splitAt])
		text = strings.TrimLeft(text[splitAt:], " ")
	}
	if len(text) > 0 {
		lines = append(lines, text)
	}
	return lines
}

// tuiDisplay forwards events into a running Bubble Tea program.
type tuiDisplay struct {
	p *tea.Program
}

func (d tuiDisplay) Status(s engine.Status)        { d.p.Send(statusMsg{Status: s}) }
func (d tuiDisplay) Settings(st settings.Settings) { d.p.Send(settingsMsg{Settings: st}) }
func (d tuiDisplay) Error(msg string)              { d.p.Send(errorMsg{Text: msg}) }
func (d tuiDisplay) Info(msg string)               { d.p.Send(infoMsg{Text: msg}) }
func (d tuiDisplay) Session(rep engine.Report)     { d.p.Send(sessionMsg{Report: rep}) }
