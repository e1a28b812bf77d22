package screen

import (
	"context"
	"image"
	"image/color"
)

// SyntheticGrabber renders a deterministic gradient frame without touching
// the display.
type SyntheticGrabber struct {
	Width  int
	Height int
}

func (g *SyntheticGrabber) Grab(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w, h := g.Width, g.Height
	if w <= 0 {
		w = 1280
	}
	if h <= 0 {
		h = 800
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 120, G: uint8(x % 256), B: uint8(y % 256), A: 255})
		}
	}
	return img, nil
}
