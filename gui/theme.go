//go:build gui

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// darkTheme forces the dark variant and tints the accent to match the
// terminal UI's typing colour.
type darkTheme struct{}

var (
	panelBackground = color.RGBA{24, 24, 28, 255}
	panelForeground = color.RGBA{210, 210, 210, 255}
	typingAccent    = color.RGBA{255, 0, 0, 255} // xterm 196
)

func (d *darkTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return panelBackground
	case theme.ColorNameForeground:
		return panelForeground
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return typingAccent
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
