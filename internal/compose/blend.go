// Package compose places transformed sprites onto background canvases under
// area-based sizing and overlap constraints, alpha-blending accepted
// placements and reporting their canvas-space boxes.
package compose

import (
	"image"

	"card-synth/internal/sprite"
)

// Blend writes the sprite's color channels into the canvas at the given
// top-left offset, weighting each pixel by the sprite's alpha channel. The
// offset is clamped to keep it non-negative and the sprite is clipped at the
// canvas's bottom/right edge. Returns the sprite's boxes translated by the
// offset actually used; they are canvas-space but not yet clipped.
func Blend(canvas *image.NRGBA, s *sprite.Sprite, offsetX, offsetY int) []sprite.Box {
	bgW := canvas.Bounds().Dx()
	bgH := canvas.Bounds().Dy()
	w := s.Width()
	h := s.Height()

	if offsetX+w > bgW {
		offsetX = bgW - w
	}
	if offsetY+h > bgH {
		offsetY = bgH - h
	}
	if offsetX < 0 {
		offsetX = 0
	}
	if offsetY < 0 {
		offsetY = 0
	}

	clipW := w
	if offsetX+clipW > bgW {
		clipW = bgW - offsetX
	}
	clipH := h
	if offsetY+clipH > bgH {
		clipH = bgH - offsetY
	}

	src := s.Image
	srcMin := src.Bounds().Min
	dstMin := canvas.Bounds().Min

	for y := 0; y < clipH; y++ {
		for x := 0; x < clipW; x++ {
			si := src.PixOffset(srcMin.X+x, srcMin.Y+y)
			di := canvas.PixOffset(dstMin.X+offsetX+x, dstMin.Y+offsetY+y)

			alpha := float64(src.Pix[si+3]) / 255.0
			if alpha == 0 {
				continue
			}
			for c := 0; c < 3; c++ {
				bg := float64(canvas.Pix[di+c])
				fg := float64(src.Pix[si+c])
				canvas.Pix[di+c] = uint8(bg*(1-alpha) + fg*alpha + 0.5)
			}
		}
	}

	boxes := make([]sprite.Box, len(s.Boxes))
	for i, b := range s.Boxes {
		boxes[i] = b.Translate(float64(offsetX), float64(offsetY))
	}
	return boxes
}
