//go:build gui

package gui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"fyne.io/fyne/v2"
)

const iconSize = 22

var trayIcon = fyne.NewStaticResource("tray.png", drawKeycap())

// drawKeycap renders a rounded key outline with a cursor bar in the middle.
func drawKeycap() []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	edge := color.RGBA{200, 200, 200, 255}
	face := color.RGBA{48, 48, 48, 255}
	cursor := color.RGBA{255, 0, 0, 255}

	for y := 2; y < iconSize-2; y++ {
		for x := 2; x < iconSize-2; x++ {
			corner := (x == 2 || x == iconSize-3) && (y == 2 || y == iconSize-3)
			switch {
			case corner:
			case x == 2 || x == iconSize-3 || y == 2 || y == iconSize-3:
				img.Set(x, y, edge)
			default:
				img.Set(x, y, face)
			}
		}
	}
	for y := 6; y < iconSize-6; y++ {
		img.Set(iconSize/2, y, cursor)
		img.Set(iconSize/2-1, y, cursor)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
