package screen

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeFixturePNG writes a small PNG the grab command can copy into place.
func writeFixturePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 40, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "screen.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return path
}

func TestExecGrabber_Grab(t *testing.T) {
	fixture := writeFixturePNG(t, 32, 24)
	g := &ExecGrabber{Command: fmt.Sprintf("cp %s {path}", fixture), Timeout: 5 * time.Second}

	img, err := g.Grab(context.Background())
	if err != nil {
		t.Fatalf("Grab failed: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("expected 32x24 frame, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestExecGrabber_CommandFails(t *testing.T) {
	g := &ExecGrabber{Command: "exit 3", Timeout: 5 * time.Second}

	_, err := g.Grab(context.Background())
	if err == nil {
		t.Fatal("expected error for failing grab command, got nil")
	}
}

func TestExecGrabber_Timeout(t *testing.T) {
	g := &ExecGrabber{Command: "sleep 10", Timeout: 100 * time.Millisecond}

	start := time.Now()
	_, err := g.Grab(context.Background())
	elapsed := time.Since(start)
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if elapsed > 3*time.Second {
		t.Errorf("timeout took too long: %v", elapsed)
	}
}

func TestExecGrabber_UndecodableOutput(t *testing.T) {
	g := &ExecGrabber{Command: "echo not-an-image > {path}", Timeout: 5 * time.Second}

	_, err := g.Grab(context.Background())
	if err == nil {
		t.Fatal("expected decode error, got nil")
	}
}

func TestNewGrabber(t *testing.T) {
	g, err := NewGrabber("exec", "true", time.Second)
	if err != nil {
		t.Fatalf("NewGrabber(exec) failed: %v", err)
	}
	if _, ok := g.(*ExecGrabber); !ok {
		t.Errorf("expected *ExecGrabber, got %T", g)
	}

	g, err = NewGrabber("synthetic", "", 0)
	if err != nil {
		t.Fatalf("NewGrabber(synthetic) failed: %v", err)
	}
	if _, ok := g.(*SyntheticGrabber); !ok {
		t.Errorf("expected *SyntheticGrabber, got %T", g)
	}

	if _, err := NewGrabber("magic", "", 0); err == nil {
		t.Error("expected error for unknown grabber name")
	}
}
