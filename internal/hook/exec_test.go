package hook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

func collectEvents(t *testing.T, source types.EventSource) ([]types.ClickEvent, error) {
	t.Helper()
	var events []types.ClickEvent
	err := source.Stream(context.Background(), func(e types.ClickEvent) error {
		events = append(events, e)
		return nil
	})
	return events, err
}

func TestExecSource_ParsesEvents(t *testing.T) {
	s := &ExecSource{Command: `echo '{"button":"left","x":10,"y":20}'; echo '{"button":"middle","x":5,"y":6}'`}

	events, err := collectEvents(t, s)
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Button != types.ButtonLeft || events[0].X != 10 || events[0].Y != 20 {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[1].Button != types.ButtonMiddle || events[1].X != 5 || events[1].Y != 6 {
		t.Errorf("unexpected second event: %+v", events[1])
	}
	if events[0].At.IsZero() {
		t.Error("expected event timestamp to be stamped")
	}
}

func TestExecSource_SkipsMalformedLines(t *testing.T) {
	s := &ExecSource{Command: `echo 'not json'; echo '{"button":"side","x":1,"y":1}'; echo; echo '{"button":"right","x":3,"y":4}'`}

	events, err := collectEvents(t, s)
	if err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event (bad lines skipped), got %d", len(events))
	}
	if events[0].Button != types.ButtonRight {
		t.Errorf("unexpected event: %+v", events[0])
	}
}

func TestExecSource_CommandFails(t *testing.T) {
	s := &ExecSource{Command: "exit 3"}

	_, err := collectEvents(t, s)
	if err == nil {
		t.Fatal("expected error for failing hook command, got nil")
	}
}

func TestExecSource_ContextCancel(t *testing.T) {
	s := &ExecSource{Command: "sleep 10"}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Stream(ctx, func(types.ClickEvent) error { return nil })
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Stream did not return after cancel")
	}
}

func TestExecSource_EmitErrorStopsStream(t *testing.T) {
	s := &ExecSource{Command: `for i in 1 2 3 4 5; do echo '{"button":"left","x":1,"y":2}'; done`}

	wantErr := errors.New("stop now")
	count := 0
	err := s.Stream(context.Background(), func(types.ClickEvent) error {
		count++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected emit error to propagate, got %v", err)
	}
	if count != 1 {
		t.Errorf("expected stream to stop after first emit error, emitted %d", count)
	}
}

func TestNewSource(t *testing.T) {
	src, err := NewSource("exec", "true")
	if err != nil {
		t.Fatalf("NewSource(exec) failed: %v", err)
	}
	if _, ok := src.(*ExecSource); !ok {
		t.Errorf("expected *ExecSource, got %T", src)
	}

	src, err = NewSource("script", "")
	if err != nil {
		t.Fatalf("NewSource(script) failed: %v", err)
	}
	if _, ok := src.(*ScriptSource); !ok {
		t.Errorf("expected *ScriptSource, got %T", src)
	}

	if _, err := NewSource("psychic", ""); err == nil {
		t.Error("expected error for unknown source name")
	}
}
