// internal/types/interfaces.go
package types

import (
	"context"
	"image"
)

// ScreenGrabber produces a full-screen bitmap of the current display.
// Implementations must honour ctx cancellation and bound their own work;
// the recorder lets an in-flight grab run to completion during shutdown.
type ScreenGrabber interface {
	Grab(ctx context.Context) (image.Image, error)
}

// EventSource delivers mouse click events to a handler. Stream blocks until
// the source is exhausted or ctx is cancelled; emit is invoked once per
// event from a single goroutine.
type EventSource interface {
	Stream(ctx context.Context, emit func(ClickEvent) error) error
}

// EventSourceFunc adapts a function literal to the EventSource interface.
type EventSourceFunc func(ctx context.Context, emit func(ClickEvent) error) error

// Stream calls the underlying function.
func (f EventSourceFunc) Stream(ctx context.Context, emit func(ClickEvent) error) error {
	return f(ctx, emit)
}
