package screen

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"
)

// ExecGrabber captures the screen by running a user-configured screenshot
// command, e.g. "screencapture -x {path}" or "scrot --overwrite {path}".
// The {path} placeholder is replaced with a temp file the grabber decodes
// and removes afterwards.
type ExecGrabber struct {
	Command string
	Timeout time.Duration
}

// Grab runs the screenshot command and decodes the resulting image. The
// call is bounded by the configured timeout so a stuck screenshot tool
// cannot block shutdown.
func (g *ExecGrabber) Grab(ctx context.Context) (image.Image, error) {
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	tmp, err := os.CreateTemp("", "xsr-grab-*.png")
	if err != nil {
		return nil, fmt.Errorf("create grab file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	command := strings.ReplaceAll(g.Command, "{path}", path)
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("grab command failed: %w\nOutput: %s", err, output)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grab output: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode grab output: %w", err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("grab produced an empty frame")
	}
	return img, nil
}
