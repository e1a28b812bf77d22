// internal/scheduler/scheduler_test.go
package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

func waitForFires(t *testing.T, fires *atomic.Int32, want int32, timeout time.Duration) {
	t.Helper()
	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			t.Fatalf("save did not fire within %v, fires=%d", timeout, fires.Load())
		case <-ticker.C:
			if fires.Load() >= want {
				return
			}
		}
	}
}

func TestAutosaveFires(t *testing.T) {
	steps := []types.Step{{Index: 0, Description: "Left-click"}}

	var fires atomic.Int32
	var got atomic.Int32
	a := New("* * * * * *",
		func() []types.Step { return steps },
		func(s []types.Step) error {
			fires.Add(1)
			got.Store(int32(len(s)))
			return nil
		})
	if err := a.Start(); err != nil {
		t.Fatal(err)
	}
	defer a.Stop()

	waitForFires(t, &fires, 1, 2500*time.Millisecond)
	if got.Load() != 1 {
		t.Errorf("save received %d steps, want 1", got.Load())
	}
}

func TestAutosaveSkipsEmptySnapshot(t *testing.T) {
	var fires atomic.Int32
	a := New("* * * * * *",
		func() []types.Step { return nil },
		func(s []types.Step) error {
			fires.Add(1)
			return nil
		})
	if err := a.Start(); err != nil {
		t.Fatal(err)
	}

	time.Sleep(1500 * time.Millisecond)
	a.Stop()

	if fires.Load() != 0 {
		t.Errorf("save fired %d times for empty snapshot, want 0", fires.Load())
	}
}

func TestAutosaveKeepsRunningAfterSaveError(t *testing.T) {
	steps := []types.Step{{Index: 0, Description: "Left-click"}}

	var fires atomic.Int32
	a := New("* * * * * *",
		func() []types.Step { return steps },
		func(s []types.Step) error {
			fires.Add(1)
			return errors.New("disk full")
		})
	if err := a.Start(); err != nil {
		t.Fatal(err)
	}
	defer a.Stop()

	waitForFires(t, &fires, 2, 4*time.Second)
}

func TestAutosaveInvalidSchedule(t *testing.T) {
	a := New("not a schedule",
		func() []types.Step { return nil },
		func(s []types.Step) error { return nil })
	if err := a.Start(); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestAutosaveDescriptorSchedule(t *testing.T) {
	var fires atomic.Int32
	a := New("@every 1s",
		func() []types.Step { return []types.Step{{}} },
		func(s []types.Step) error {
			fires.Add(1)
			return nil
		})
	if err := a.Start(); err != nil {
		t.Fatal(err)
	}
	defer a.Stop()

	waitForFires(t, &fires, 1, 2500*time.Millisecond)
}
