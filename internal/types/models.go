// internal/types/models.go
package types

import (
	"fmt"
	"time"
)

// Button identifies which mouse button produced a click event.
type Button string

const (
	ButtonLeft   Button = "left"
	ButtonRight  Button = "right"
	ButtonMiddle Button = "middle"
)

// ParseButton converts a wire-format button name into a Button.
func ParseButton(s string) (Button, error) {
	switch Button(s) {
	case ButtonLeft, ButtonRight, ButtonMiddle:
		return Button(s), nil
	default:
		return "", fmt.Errorf("unknown button %q", s)
	}
}

// Description returns the human-readable action label used in the report.
func (b Button) Description() string {
	switch b {
	case ButtonLeft:
		return "Left-click"
	case ButtonRight:
		return "Right-click"
	case ButtonMiddle:
		return "Middle-click"
	default:
		return fmt.Sprintf("Clicked %s", string(b))
	}
}

// ClickEvent is a single mouse click reported by an event source.
// X and Y are screen pixels. Events are consumed immediately by the
// recorder and never stored.
type ClickEvent struct {
	Button Button
	X      int
	Y      int
	At     time.Time
}

// Step is one captured and encoded screenshot in the recording timeline.
// Steps are immutable once created; the store owns them until finalize.
type Step struct {
	Index       int
	Description string
	MimeType    string
	Image       []byte
	CapturedAt  time.Time
}
