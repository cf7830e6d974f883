// Package benchmarks provides timing estimates for the simulated rollout
// steps.
package benchmarks

import (
	"time"

	"github.com/imamik/akswiz/internal/deploy"
)

// Scaled divides d by speed. Speeds <= 0 leave d unchanged.
func Scaled(d time.Duration, speed float64) time.Duration {
	if speed <= 0 {
		return d
	}
	return time.Duration(float64(d) / speed)
}

// EstimateRemaining returns the time left when step current has been
// running for elapsed. A negative current means the rollout has not started.
func EstimateRemaining(current int, elapsed time.Duration, speed float64) time.Duration {
	if current >= len(deploy.Steps) {
		return 0
	}
	var remaining time.Duration
	next := 0
	if current >= 0 {
		expected := Scaled(deploy.Steps[current].Duration, speed)
		if expected > elapsed {
			remaining += expected - elapsed
		}
		next = current + 1
	}
	for i := next; i < len(deploy.Steps); i++ {
		remaining += Scaled(deploy.Steps[i].Duration, speed)
	}
	return remaining
}

// Progress is the duration-weighted fraction of the rollout covered by the
// first done steps.
func Progress(done int) float64 {
	total := deploy.TotalDuration()
	if total == 0 || done <= 0 {
		return 0
	}
	if done >= len(deploy.Steps) {
		return 1
	}
	var covered time.Duration
	for i := 0; i < done; i++ {
		covered += deploy.Steps[i].Duration
	}
	return float64(covered) / float64(total)
}

// TotalEstimate returns the scaled length of the rollout.
func TotalEstimate(speed float64) time.Duration {
	return Scaled(deploy.TotalDuration(), speed)
}
