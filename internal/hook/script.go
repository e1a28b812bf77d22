package hook

import (
	"context"
	"time"

	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

// defaultInterval paces scripted replays so captures do not pile up.
const defaultInterval = 500 * time.Millisecond

// ScriptSource replays a fixed click timeline, for demos and tests. The
// session ends naturally when the script runs out.
type ScriptSource struct {
	Events   []types.ClickEvent
	Interval time.Duration
}

// Stream emits the scripted events in order, one per interval. Events
// without a timestamp are stamped at emit time.
func (s *ScriptSource) Stream(ctx context.Context, emit func(types.ClickEvent) error) error {
	interval := s.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	events := s.Events
	if len(events) == 0 {
		events = demoScript()
	}

	for _, event := range events {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
		if event.At.IsZero() {
			event.At = time.Now().UTC()
		}
		if err := emit(event); err != nil {
			return err
		}
	}
	return nil
}

// demoScript walks a few clicks across a 1280x800 screen, matching the
// synthetic grabber's default frame.
func demoScript() []types.ClickEvent {
	return []types.ClickEvent{
		{Button: types.ButtonLeft, X: 160, Y: 120},
		{Button: types.ButtonRight, X: 640, Y: 400},
		{Button: types.ButtonMiddle, X: 900, Y: 250},
		{Button: types.ButtonLeft, X: 1279, Y: 799},
	}
}
