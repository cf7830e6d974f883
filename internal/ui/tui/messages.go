// Package tui provides a Bubble Tea terminal UI for the simulated deployment.
package tui

import "github.com/imamik/akswiz/internal/deploy"

// EventMsg forwards a runner event to the model.
type EventMsg struct {
	Event deploy.Event
}

// TickMsg is sent periodically to refresh the ETA.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the operation is complete.
type DoneMsg struct{}
