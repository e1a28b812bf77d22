package recorder

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/SeqLaz/PyXStepRecorder/internal/imaging"
	"github.com/SeqLaz/PyXStepRecorder/internal/store"
	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

// State of the capture loop.
type State string

const (
	StateIdle      State = "idle"
	StateCapturing State = "capturing"
	StateStopped   State = "stopped"
)

// Recorder drives the capture pipeline: it subscribes to click events,
// grabs the screen for each qualifying click, composites the marker,
// encodes the frame, and appends the result to the step store. At most one
// capture is in flight at a time; one more click may wait in the pending
// buffer and anything beyond that is dropped, so fast repeated clicking
// cannot build an unbounded backlog.
type Recorder struct {
	grabber  types.ScreenGrabber
	source   types.EventSource
	marker   *imaging.Marker
	encoding imaging.Options
	buttons  map[types.Button]bool
	store    *store.StepStore

	pending  chan types.ClickEvent
	inflight *semaphore.Weighted

	dropped atomic.Int64
	failed  atomic.Int64

	mu         sync.Mutex
	state      State
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	sourceDone chan struct{}
	stopOnce   sync.Once
	frozen     []types.Step
}

// Options wires the recorder's collaborators.
type Options struct {
	Grabber  types.ScreenGrabber
	Source   types.EventSource
	Marker   *imaging.Marker
	Encoding imaging.Options
	Buttons  map[types.Button]bool
	Store    *store.StepStore
}

// New validates the options and constructs a recorder. An empty button set
// means all three buttons trigger captures.
func New(opts Options) (*Recorder, error) {
	if opts.Grabber == nil {
		return nil, errors.New("grabber must not be nil")
	}
	if opts.Source == nil {
		return nil, errors.New("event source must not be nil")
	}
	if opts.Marker == nil {
		return nil, errors.New("marker must not be nil")
	}
	if opts.Store == nil {
		return nil, errors.New("step store must not be nil")
	}
	buttons := opts.Buttons
	if len(buttons) == 0 {
		buttons = map[types.Button]bool{
			types.ButtonLeft:   true,
			types.ButtonRight:  true,
			types.ButtonMiddle: true,
		}
	}
	return &Recorder{
		grabber:    opts.Grabber,
		source:     opts.Source,
		marker:     opts.Marker,
		encoding:   opts.Encoding,
		buttons:    buttons,
		store:      opts.Store,
		pending:    make(chan types.ClickEvent, 1),
		inflight:   semaphore.NewWeighted(1),
		state:      StateIdle,
		sourceDone: make(chan struct{}),
	}, nil
}

// Start subscribes to the event source and begins processing clicks.
// Non-blocking; the session runs until Stop or until the source ends.
func (r *Recorder) Start(ctx context.Context) {
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.wg.Add(2)
	go r.worker()
	go r.stream()
}

// SourceDone is closed when the event source stops emitting, whether it
// ran out naturally or failed. Callers typically finalize at that point.
func (r *Recorder) SourceDone() <-chan struct{} {
	return r.sourceDone
}

// Stop finalizes the session: no further events are accepted, the
// in-flight capture (if any) completes and appends, then the store is
// frozen. Idempotent and safe to call concurrently with captures; every
// call returns the same frozen sequence.
func (r *Recorder) Stop() []types.Step {
	r.stopOnce.Do(func() {
		r.mu.Lock()
		r.state = StateStopped
		r.mu.Unlock()
		if r.cancel != nil {
			r.cancel()
		}
		// Drain: the in-flight capture holds the slot until its append
		// lands, so once acquired nothing can be mid-append.
		_ = r.inflight.Acquire(context.Background(), 1)
		r.frozen = r.store.Freeze()
		r.inflight.Release(1)
		r.wg.Wait()
	})
	return r.frozen
}

// WaitIdle blocks until no capture is pending or in flight, or the timeout
// expires. Returns true if idle, false if timed out.
func (r *Recorder) WaitIdle(timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		if len(r.pending) == 0 && r.State() != StateCapturing {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-time.After(50 * time.Millisecond):
		}
	}
}

// State returns the current lifecycle state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Dropped reports clicks discarded because the pending buffer was full.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Failed reports clicks whose capture pipeline failed.
func (r *Recorder) Failed() int64 {
	return r.failed.Load()
}

func (r *Recorder) stream() {
	defer r.wg.Done()
	defer close(r.sourceDone)
	err := r.source.Stream(r.ctx, r.handleEvent)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		slog.Error("event source failed", "error", err)
	}
}

// handleEvent is the emit callback. It never blocks: the pending buffer
// holds at most one click and overflow is dropped with a warning.
func (r *Recorder) handleEvent(event types.ClickEvent) error {
	if r.State() == StateStopped {
		slog.Debug("ignoring click after stop", "button", string(event.Button))
		return nil
	}
	if !r.buttons[event.Button] {
		slog.Debug("ignoring unconfigured button", "button", string(event.Button))
		return nil
	}
	select {
	case r.pending <- event:
	default:
		r.dropped.Add(1)
		slog.Warn("dropping click, capture already backed up",
			"button", string(event.Button), "x", event.X, "y", event.Y)
	}
	return nil
}

func (r *Recorder) worker() {
	defer r.wg.Done()
	for {
		select {
		case event := <-r.pending:
			if r.ctx.Err() != nil {
				return
			}
			if err := r.inflight.Acquire(r.ctx, 1); err != nil {
				return
			}
			if r.transition(StateIdle, StateCapturing) {
				r.capture(event)
				r.transition(StateCapturing, StateIdle)
			}
			r.inflight.Release(1)
		case <-r.ctx.Done():
			return
		}
	}
}

// capture runs one click through grab, compose, encode, and append. Any
// failure drops the event with a diagnostic; one bad capture must never
// end the session or lose earlier steps. The grab deliberately ignores the
// recorder's context: a capture already in flight when stop arrives runs
// to completion (the grabber's own timeout bounds it) so its step is not
// half-lost.
func (r *Recorder) capture(event types.ClickEvent) {
	frame, err := r.grabber.Grab(context.Background())
	if err != nil {
		r.failed.Add(1)
		slog.Error("screen grab failed, dropping click",
			"button", string(event.Button), "x", event.X, "y", event.Y, "error", err)
		return
	}

	annotated := imaging.Compose(frame, image.Pt(event.X, event.Y), r.marker)
	data, mime, err := imaging.Encode(annotated, r.encoding)
	if err != nil {
		r.failed.Add(1)
		slog.Error("encode failed, dropping click",
			"button", string(event.Button), "error", err)
		return
	}

	step, err := r.store.Append(event.Button.Description(), mime, data)
	if err != nil {
		if errors.Is(err, store.ErrFrozen) {
			slog.Debug("discarding capture that raced shutdown", "button", string(event.Button))
		} else {
			r.failed.Add(1)
			slog.Error("append failed, dropping click", "error", err)
		}
		return
	}
	slog.Info("captured step",
		"index", step.Index, "button", string(event.Button),
		"x", event.X, "y", event.Y, "bytes", len(data))
}

func (r *Recorder) transition(from, to State) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != from {
		return false
	}
	r.state = to
	return true
}
