// Package colorutil provides shared color math for the card compositor.
package colorutil

import (
	"image"
	"image/color"
	"math"
)

// Common overlay colors used by the preview renderer.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Red     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Orange  = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	Purple  = color.RGBA{R: 160, G: 32, B: 240, A: 255}
)

// Palette is the cycle of box-outline colors assigned to class ids.
var Palette = []color.RGBA{Red, Green, Blue, Yellow, Cyan, Magenta, Orange, Purple, White, Black}

// PaletteColor returns a stable outline color for a class id.
func PaletteColor(classID int) color.RGBA {
	if classID < 0 {
		return White
	}
	return Palette[classID%len(Palette)]
}

// Luma returns the ITU-R 601 luma of an 8-bit RGB triple, in [0, 255].
func Luma(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

// MeanLuma returns the average luma over all pixels of an NRGBA image,
// ignoring the alpha channel. Returns 0 for an empty image.
func MeanLuma(img *image.NRGBA) float64 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return 0
	}

	var sum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			sum += Luma(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
		}
	}
	return sum / float64(w*h)
}

// Clamp8 clamps a float to the 8-bit channel range and rounds it.
func Clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
