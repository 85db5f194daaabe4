package transform

import (
	"image"
	"math/rand"

	"card-synth/pkg/colorutil"
)

const (
	jitterNarrowLo = 0.9
	jitterNarrowHi = 1.1
	jitterWideLo   = 0.3
	jitterWideHi   = 1.8
	jitterWideProb = 0.5
)

// jitter perturbs brightness, contrast and saturation by independent
// multiplicative factors. Each factor is drawn from the narrow range and,
// with 50% probability, re-drawn from the wide one. Alpha is untouched.
func jitter(rng *rand.Rand, img *image.NRGBA) *image.NRGBA {
	brightness := jitterFactor(rng)
	contrast := jitterFactor(rng)
	saturation := jitterFactor(rng)

	out := adjustBrightness(img, brightness)
	out = adjustContrast(out, contrast)
	out = adjustSaturation(out, saturation)
	return out
}

func jitterFactor(rng *rand.Rand) float64 {
	f := jitterNarrowLo + rng.Float64()*(jitterNarrowHi-jitterNarrowLo)
	if rng.Float64() < jitterWideProb {
		f = jitterWideLo + rng.Float64()*(jitterWideHi-jitterWideLo)
	}
	return f
}

// adjustBrightness scales every color channel by factor.
func adjustBrightness(img *image.NRGBA, factor float64) *image.NRGBA {
	return mapPixels(img, func(r, g, b float64, _ float64) (float64, float64, float64) {
		return r * factor, g * factor, b * factor
	})
}

// adjustContrast blends every channel against the image's mean luma:
// factor 0 collapses the image to flat gray, 1 leaves it unchanged.
func adjustContrast(img *image.NRGBA, factor float64) *image.NRGBA {
	mean := colorutil.MeanLuma(img)
	return mapPixels(img, func(r, g, b float64, _ float64) (float64, float64, float64) {
		return mean + (r-mean)*factor, mean + (g-mean)*factor, mean + (b-mean)*factor
	})
}

// adjustSaturation blends every channel against the pixel's own luma:
// factor 0 yields grayscale, 1 leaves the image unchanged.
func adjustSaturation(img *image.NRGBA, factor float64) *image.NRGBA {
	return mapPixels(img, func(r, g, b float64, luma float64) (float64, float64, float64) {
		return luma + (r-luma)*factor, luma + (g-luma)*factor, luma + (b-luma)*factor
	})
}

// mapPixels applies fn to every pixel's color channels, handing it the
// pixel's luma, and returns a new buffer. Alpha is copied through.
func mapPixels(img *image.NRGBA, fn func(r, g, b, luma float64) (float64, float64, float64)) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			o := out.PixOffset(x-bounds.Min.X, y-bounds.Min.Y)

			r8, g8, b8 := img.Pix[i], img.Pix[i+1], img.Pix[i+2]
			luma := colorutil.Luma(r8, g8, b8)
			r, g, b := fn(float64(r8), float64(g8), float64(b8), luma)

			out.Pix[o] = colorutil.Clamp8(r)
			out.Pix[o+1] = colorutil.Clamp8(g)
			out.Pix[o+2] = colorutil.Clamp8(b)
			out.Pix[o+3] = img.Pix[i+3]
		}
	}
	return out
}
