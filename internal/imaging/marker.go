package imaging

import (
	"fmt"
	"image"
	"math"
	"os"

	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

// Marker is the cursor-overlay image pasted onto every capture. It is
// loaded once at startup and read-only afterwards, so compositing calls
// share it without locking.
type Marker struct {
	Image   image.Image
	AnchorX int
	AnchorY int
}

// LoadMarker reads the marker image at path and prepares it for
// compositing. The anchor designates the marker's visual tip in original
// image pixels; scale resizes both the image and the anchor. Errors here
// are configuration errors: the recorder refuses to start without a usable
// marker.
func LoadMarker(path string, scale float64, anchorX, anchorY int) (*Marker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open marker %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode marker %s: %w", path, err)
	}
	return newMarker(img, scale, anchorX, anchorY)
}

func newMarker(img image.Image, scale float64, anchorX, anchorY int) (*Marker, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("marker image is empty (%dx%d)", b.Dx(), b.Dy())
	}
	if scale != 1.0 {
		img = scaleImage(img, scale)
		anchorX = int(math.Round(float64(anchorX) * scale))
		anchorY = int(math.Round(float64(anchorY) * scale))
		b = img.Bounds()
	}
	if anchorX >= b.Dx() || anchorY >= b.Dy() {
		return nil, fmt.Errorf("marker anchor (%d, %d) outside marker bounds %dx%d", anchorX, anchorY, b.Dx(), b.Dy())
	}
	return &Marker{Image: img, AnchorX: anchorX, AnchorY: anchorY}, nil
}

// scaleImage resizes img by factor using Catmull-Rom interpolation,
// preserving transparency. Dimensions never drop below one pixel.
func scaleImage(img image.Image, factor float64) image.Image {
	b := img.Bounds()
	w := int(math.Round(float64(b.Dx()) * factor))
	h := int(math.Round(float64(b.Dy()) * factor))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
