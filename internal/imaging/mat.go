// Package imaging bridges image.NRGBA pixel buffers and OpenCV Mats for the
// resampling and warping operations of the transform stage. Every function
// returns a freshly allocated buffer; inputs are never mutated.
package imaging

import (
	"fmt"
	"image"
	"image/draw"

	"gocv.io/x/gocv"
)

// ToNRGBA returns img as an *image.NRGBA with a zero-origin, tightly packed
// buffer, copying only when necessary.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		b := n.Bounds()
		if b.Min.X == 0 && b.Min.Y == 0 && n.Stride == 4*b.Dx() {
			return n
		}
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// matFromNRGBA wraps the pixel buffer in a 4-channel Mat. The caller owns the
// returned Mat and must Close it.
func matFromNRGBA(img *image.NRGBA) (gocv.Mat, error) {
	packed := ToNRGBA(img)
	b := packed.Bounds()
	mat, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC4, packed.Pix)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("creating mat from %dx%d buffer: %w", b.Dx(), b.Dy(), err)
	}
	return mat, nil
}

// nrgbaFromMat copies a 4-channel Mat back into a new NRGBA image.
func nrgbaFromMat(mat gocv.Mat) (*image.NRGBA, error) {
	data, err := mat.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("reading mat bytes: %w", err)
	}
	w, h := mat.Cols(), mat.Rows()
	if len(data) != w*h*4 {
		return nil, fmt.Errorf("unexpected mat layout: %d bytes for %dx%d", len(data), w, h)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, data)
	return img, nil
}
