package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
)

// Options selects the wire encoding for captured frames.
type Options struct {
	Format  string // "png" or "jpeg" ("jpg" accepted as an alias)
	Quality int    // JPEG only, clamped to 1..100
}

// Encode serializes frame per opts and returns the bytes with their MIME
// type. PNG is lossless and ignores quality. Out-of-range JPEG qualities
// are clamped rather than rejected; an event must not fail over a sloppy
// quality value.
func Encode(frame image.Image, opts Options) ([]byte, string, error) {
	var buf bytes.Buffer
	switch strings.ToLower(opts.Format) {
	case "png":
		if err := png.Encode(&buf, frame); err != nil {
			return nil, "", fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	case "jpg", "jpeg":
		q := clampQuality(opts.Quality)
		if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: q}); err != nil {
			return nil, "", fmt.Errorf("encode jpeg: %w", err)
		}
		return buf.Bytes(), "image/jpeg", nil
	default:
		return nil, "", fmt.Errorf("unknown image format %q", opts.Format)
	}
}

func clampQuality(q int) int {
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}
