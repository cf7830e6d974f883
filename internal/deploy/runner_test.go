package deploy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/imamik/akswiz/internal/testing"
)

// instant returns a timer that fires immediately and records durations.
func instant(waits *[]time.Duration) func(time.Duration) <-chan time.Time {
	return func(d time.Duration) <-chan time.Time {
		*waits = append(*waits, d)
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return ch
	}
}

func TestSteps(t *testing.T) {
	t.Parallel()

	require.Len(t, Steps, 10)
	assert.Equal(t, "validate", Steps[0].ID)
	assert.Equal(t, "finalize", Steps[len(Steps)-1].ID)
	assert.Equal(t, 18200*time.Millisecond, TotalDuration())

	seen := map[string]bool{}
	for _, s := range Steps {
		assert.False(t, seen[s.ID], "duplicate step %s", s.ID)
		seen[s.ID] = true
	}
}

func TestRunner_EventSequence(t *testing.T) {
	t.Parallel()

	var waits []time.Duration
	r := NewRunner(1)
	r.after = instant(&waits)

	var events []Event
	err := r.Run(context.Background(), testutil.DemoConfig(), func(e Event) { events = append(events, e) })
	require.NoError(t, err)

	require.Len(t, events, 2+2*len(Steps))
	assert.Equal(t, EventStarted, events[0].Kind)
	assert.Equal(t, "Starting deployment of demo in eastus", events[0].Line)

	for i, step := range Steps {
		start, done := events[1+2*i], events[2+2*i]
		assert.Equal(t, EventStep, start.Kind)
		assert.Equal(t, step.Label, start.Line)
		assert.Equal(t, i, start.Index)
		assert.Equal(t, EventStepDone, done.Kind)
	}

	last := events[len(events)-1]
	assert.Equal(t, EventSucceeded, last.Kind)
	assert.Contains(t, last.Line, "demo")
	assert.Len(t, waits, len(Steps))
}

func TestRunner_Speed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		speed float64
		want  time.Duration
	}{
		{"unscaled", 1, 1200 * time.Millisecond},
		{"zero means unscaled", 0, 1200 * time.Millisecond},
		{"ten times faster", 10, 120 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var waits []time.Duration
			r := NewRunner(tt.speed)
			r.after = instant(&waits)
			require.NoError(t, r.Run(context.Background(), testutil.DemoConfig(), nil))
			assert.Equal(t, tt.want, waits[0])
		})
	}
}

func TestRunner_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunner(1)
	r.after = func(time.Duration) <-chan time.Time { return make(chan time.Time) }

	var events []Event
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := r.Run(ctx, testutil.DemoConfig(), func(e Event) { events = append(events, e) })

	assert.ErrorIs(t, err, context.Canceled)
	for _, e := range events {
		assert.NotEqual(t, EventSucceeded, e.Kind)
	}
}

func TestRunner_RealTimerFast(t *testing.T) {
	t.Parallel()

	start := time.Now()
	require.NoError(t, NewRunner(1000).Run(context.Background(), testutil.EmptyConfig(), nil))
	assert.Less(t, time.Since(start), 2*time.Second)
}
