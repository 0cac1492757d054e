package raster

import (
	"image"
	"image/color"
)

// ToGrayscale converts any image to a single-channel 8-bit grayscale image
// with no alpha.
func ToGrayscale(src image.Image) *image.Gray {
	bounds := src.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(src.At(x, y)))
		}
	}
	return gray
}

// AdjustContrast scales each pixel's distance from the midpoint by factor,
// pushing mid-tones toward the extremes. Operates in place.
func AdjustContrast(img *image.Gray, factor float64) {
	var lut [256]uint8
	for i := range lut {
		v := 128 + factor*(float64(i)-128)
		switch {
		case v < 0:
			lut[i] = 0
		case v > 255:
			lut[i] = 255
		default:
			lut[i] = uint8(v + 0.5)
		}
	}
	applyLUT(img, &lut)
}

// Quantize reduces the image to `levels` evenly spaced gray values spanning
// 0 to 255 inclusive, in place. The panel cannot address more shades;
// feeding it full 256-level grayscale produces banding on-device.
func Quantize(img *image.Gray, levels int) {
	var lut [256]uint8
	for i := range lut {
		// bucket index 0..levels-1, then spread buckets over 0..255 so the
		// darkest input maps to 0 and the lightest to 255
		idx := i * levels / 256
		lut[i] = uint8((idx*255 + (levels-1)/2) / (levels - 1))
	}
	applyLUT(img, &lut)
}

func applyLUT(img *image.Gray, lut *[256]uint8) {
	for i, v := range img.Pix {
		img.Pix[i] = lut[v]
	}
}
