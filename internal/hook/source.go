// Package hook delivers click events from the platform input boundary.
// Sources stream events to an emit callback until the context is canceled
// or the underlying feed ends; the recorder decides what each event means.
package hook

import (
	"fmt"

	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

// Compile-time interface compliance checks.
var _ types.EventSource = (*ExecSource)(nil)
var _ types.EventSource = (*ScriptSource)(nil)

// NewSource returns the click-event source selected by name.
func NewSource(name, command string) (types.EventSource, error) {
	switch name {
	case "exec":
		return &ExecSource{Command: command}, nil
	case "script":
		return &ScriptSource{}, nil
	default:
		return nil, fmt.Errorf("unknown event source %q", name)
	}
}
