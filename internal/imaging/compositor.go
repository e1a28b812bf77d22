package imaging

import (
	"image"
	"image/draw"
)

// Compose overlays the marker onto frame so the marker's anchor lands on
// pos, alpha-compositing where the marker is transparent. The frame is
// never mutated; a freshly allocated copy is returned. Positions outside
// the frame are clamped to the nearest valid pixel, since a click at the
// extreme screen edge may register slightly out of bounds.
func Compose(frame image.Image, pos image.Point, m *Marker) *image.RGBA {
	fb := frame.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, fb.Dx(), fb.Dy()))
	draw.Draw(out, out.Bounds(), frame, fb.Min, draw.Src)

	pos = clamp(pos, out.Bounds())
	mb := m.Image.Bounds()
	target := image.Rect(0, 0, mb.Dx(), mb.Dy()).
		Add(pos).
		Sub(image.Pt(m.AnchorX, m.AnchorY))
	draw.Draw(out, target, m.Image, mb.Min, draw.Over)
	return out
}

// clamp restricts p to valid pixel coordinates within bounds.
func clamp(p image.Point, bounds image.Rectangle) image.Point {
	if p.X < bounds.Min.X {
		p.X = bounds.Min.X
	}
	if p.X > bounds.Max.X-1 {
		p.X = bounds.Max.X - 1
	}
	if p.Y < bounds.Min.Y {
		p.Y = bounds.Min.Y
	}
	if p.Y > bounds.Max.Y-1 {
		p.Y = bounds.Max.Y - 1
	}
	return p
}
