// internal/scheduler/scheduler.go
package scheduler

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/SeqLaz/PyXStepRecorder/internal/types"
)

// Snapshot returns the steps recorded so far without ending the session.
type Snapshot func() []types.Step

// Save persists an in-progress snapshot.
type Save func(steps []types.Step) error

// Autosave periodically saves the in-progress session so a crash never
// loses more than the last interval.
type Autosave struct {
	schedule string
	snapshot Snapshot
	save     Save
	cron     *cron.Cron
}

// cronParser accepts both standard 5-field cron expressions and 6-field
// expressions with an optional seconds field, plus descriptors such as
// "@every 30s".
var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// New creates an Autosave that fires on the given cron schedule.
func New(schedule string, snapshot Snapshot, save Save) *Autosave {
	return &Autosave{
		schedule: schedule,
		snapshot: snapshot,
		save:     save,
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start registers the schedule and starts the cron ticker.
func (a *Autosave) Start() error {
	if _, err := a.cron.AddFunc(a.schedule, a.run); err != nil {
		return fmt.Errorf("invalid autosave schedule %q: %w", a.schedule, err)
	}
	a.cron.Start()
	slog.Info("autosave enabled", "schedule", a.schedule)
	return nil
}

func (a *Autosave) run() {
	steps := a.snapshot()
	if len(steps) == 0 {
		return
	}
	if err := a.save(steps); err != nil {
		slog.Error("autosave failed", "error", err)
		return
	}
	slog.Info("autosaved session", "steps", len(steps))
}

// Stop halts the ticker and waits for any in-flight save to finish.
func (a *Autosave) Stop() {
	<-a.cron.Stop().Done()
}
