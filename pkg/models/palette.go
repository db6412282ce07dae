package models

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// goldenAngle spaces consecutive hues so neighbouring faces stay distinct
// however many colors are requested.
const goldenAngle = 137.50776405003785

// Palette returns n opaque face colors walking the hue wheel.
func Palette(n int) []color.RGBA {
	colors := make([]color.RGBA, n)
	for i := range colors {
		hue := float64(i) * goldenAngle
		for hue >= 360 {
			hue -= 360
		}
		// Alternate value so adjacent hues also differ in brightness.
		v := 0.95
		if i%2 == 1 {
			v = 0.75
		}
		r, g, b := colorful.Hsv(hue, 0.65, v).RGB255()
		colors[i] = color.RGBA{r, g, b, 255}
	}
	return colors
}
