package deploy

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/logging"
	"github.com/imamik/akswiz/internal/util/naming"
)

// EventKind distinguishes runner events.
type EventKind int

const (
	// EventStarted is emitted once before the first step.
	EventStarted EventKind = iota
	// EventStep is emitted when a step begins.
	EventStep
	// EventStepDone is emitted when a step's timer elapses.
	EventStepDone
	// EventSucceeded is emitted after the last step.
	EventSucceeded
)

// Event is a progress notification. Line is the log line to show.
type Event struct {
	Kind  EventKind
	Index int
	Step  Step
	Line  string
}

// Runner walks Steps sequentially.
type Runner struct {
	// Speed divides every step duration. Values <= 0 mean 1.
	Speed float64

	// after is swapped in tests.
	after func(time.Duration) <-chan time.Time
}

// NewRunner creates a runner with the given speed factor.
func NewRunner(speed float64) *Runner {
	return &Runner{Speed: speed, after: time.After}
}

// Run emits a started event, then a step and step-done event per step, then
// a success event. It only reads the cluster name and region from cfg and
// returns ctx.Err() if cancelled between or during steps.
func (r *Runner) Run(ctx context.Context, cfg config.Config, emit func(Event)) error {
	if emit == nil {
		emit = func(Event) {}
	}
	log := logging.FromContext(ctx).WithName("deploy")
	cluster := naming.ClusterOrDefault(cfg)
	region := naming.Region(cfg)

	emit(Event{Kind: EventStarted, Index: -1, Line: fmt.Sprintf("Starting deployment of %s in %s", cluster, region)})

	for i, step := range Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		emit(Event{Kind: EventStep, Index: i, Step: step, Line: step.Label})
		log.V(1).Info("step started", "id", step.ID, "duration", r.scaled(step.Duration))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.wait(r.scaled(step.Duration)):
		}
		emit(Event{Kind: EventStepDone, Index: i, Step: step, Line: "done: " + step.ID})
	}

	emit(Event{
		Kind:  EventSucceeded,
		Index: len(Steps),
		Line:  fmt.Sprintf("Deployment succeeded: cluster %s is running in %s", cluster, region),
	})
	return nil
}

func (r *Runner) scaled(d time.Duration) time.Duration {
	if r.Speed <= 0 {
		return d
	}
	return time.Duration(float64(d) / r.Speed)
}

func (r *Runner) wait(d time.Duration) <-chan time.Time {
	if r.after == nil {
		return time.After(d)
	}
	return r.after(d)
}
