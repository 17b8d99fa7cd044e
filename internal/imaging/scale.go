package imaging

import (
	"image"

	"golang.org/x/image/draw"
)

// Scale resamples img to the given dimensions using Catmull-Rom
// interpolation. Dimensions below 1 are clamped to 1.
func Scale(img image.Image, width, height int) image.Image {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
