package imaging

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"card-synth/pkg/geometry"
)

// ResizeLanczos resamples the buffer to width x height with the Lanczos
// filter. Used for sprite scaling, where quality matters more than speed.
func ResizeLanczos(img *image.NRGBA, width, height int) (*image.NRGBA, error) {
	return resize(img, width, height, gocv.InterpolationLanczos4)
}

// ResizeArea resamples the buffer to width x height with area averaging,
// the preferred filter when shrinking backgrounds to canvas size.
func ResizeArea(img *image.NRGBA, width, height int) (*image.NRGBA, error) {
	return resize(img, width, height, gocv.InterpolationArea)
}

func resize(img *image.NRGBA, width, height int, interp gocv.InterpolationFlags) (*image.NRGBA, error) {
	src, err := matFromNRGBA(img)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Resize(src, &dst, image.Pt(width, height), 0, 0, interp)

	return nrgbaFromMat(dst)
}

// WarpAffine applies an affine transform to the buffer, producing a
// width x height output. Uncovered regions are filled fully transparent, so
// the alpha channel stays authoritative after rotation with expansion.
func WarpAffine(img *image.NRGBA, t geometry.AffineTransform, width, height int) (*image.NRGBA, error) {
	src, err := matFromNRGBA(img)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	m := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV64F)
	defer m.Close()
	mtx := t.ToMatrix()
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			m.SetDoubleAt(row, col, mtx[row][col])
		}
	}

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.WarpAffineWithParams(src, &dst, m, image.Pt(width, height),
		gocv.InterpolationLinear, gocv.BorderConstant, color.RGBA{})

	return nrgbaFromMat(dst)
}

// WarpPerspective applies a projective transform to the buffer, producing a
// width x height output with transparent fill outside the warped content.
func WarpPerspective(img *image.NRGBA, t geometry.ProjectiveTransform, width, height int) (*image.NRGBA, error) {
	src, err := matFromNRGBA(img)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	m := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	defer m.Close()
	mtx := t.ToMatrix()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m.SetDoubleAt(row, col, mtx[row][col])
		}
	}

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.WarpPerspective(src, &dst, m, image.Pt(width, height))

	return nrgbaFromMat(dst)
}
