// Package screen produces full-screen frames for the recorder. The real
// backend shells out to a platform screenshot tool; the synthetic backend
// renders frames in memory for demos and tests.
package screen

import (
	"fmt"
	"time"

	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

// Compile-time interface compliance checks.
var _ types.ScreenGrabber = (*ExecGrabber)(nil)
var _ types.ScreenGrabber = (*SyntheticGrabber)(nil)

// NewGrabber returns the screen grabber selected by name.
func NewGrabber(name, command string, timeout time.Duration) (types.ScreenGrabber, error) {
	switch name {
	case "exec":
		return &ExecGrabber{Command: command, Timeout: timeout}, nil
	case "synthetic":
		return &SyntheticGrabber{}, nil
	default:
		return nil, fmt.Errorf("unknown screen grabber %q", name)
	}
}
