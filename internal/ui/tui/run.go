package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/deploy"
	"github.com/imamik/akswiz/internal/util/naming"
)

// RunDeployTUI runs the simulated rollout behind the progress view. Quitting
// the view cancels the runner.
func RunDeployTUI(ctx context.Context, runner *deploy.Runner, cfg config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewDeployModel(naming.ClusterOrDefault(cfg), naming.Region(cfg), runner.Speed)
	p := tea.NewProgram(m)

	go func() {
		err := runner.Run(ctx, cfg, func(e deploy.Event) {
			p.Send(EventMsg{Event: e})
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			p.Send(ErrMsg{Err: err})
		}
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	fm := finalModel.(DeployModel)
	switch {
	case fm.Err != nil:
		return fm.Err
	case fm.Aborted:
		return ErrAborted
	}
	return nil
}

// RunPlain runs the rollout and writes one line per event to w. It is used
// when stdout is not a terminal.
func RunPlain(ctx context.Context, runner *deploy.Runner, cfg config.Config, w io.Writer) error {
	total := len(deploy.Steps)
	return runner.Run(ctx, cfg, func(e deploy.Event) {
		switch e.Kind {
		case deploy.EventStarted, deploy.EventSucceeded:
			fmt.Fprintln(w, e.Line)
		case deploy.EventStep:
			fmt.Fprintf(w, "[%2d/%d] %s\n", e.Index+1, total, e.Line)
		}
	})
}
