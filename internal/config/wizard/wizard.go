package wizard

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/logging"
	"github.com/imamik/akswiz/internal/prefs"
	"github.com/imamik/akswiz/internal/readiness"
	"github.com/imamik/akswiz/internal/session"
)

// Function variable for dependency injection in tests.
var runForm = func(ctx context.Context, _ session.Step, form *huh.Form, _ *Answers) error {
	return form.RunWithContext(ctx)
}

// Run walks the session from its current step, one form per step, and
// returns the edited configuration. The review step either saves, jumps
// back to an earlier step, or cancels with ErrCancelled.
// The context is used for cancellation support (e.g., Ctrl+C).
func Run(ctx context.Context, sess *session.Session, cfg config.Config) (config.Config, error) {
	log := logging.FromContext(ctx).WithName("wizard")
	a := FromConfig(cfg)
	theme := prefs.HuhTheme(sess.Theme())

	for {
		step := sess.Current()
		pos, total := sess.Progress()

		groups := groupsFor(step, a, cfg)
		if groups == nil {
			log.V(1).Info("skipping step", "step", step)
		} else {
			form := huh.NewForm(groups...).WithTheme(theme)
			if err := runForm(ctx, step, form, a); err != nil {
				return cfg, fmt.Errorf("%s: %w", step.Title(), err)
			}
			next, err := a.ApplyStep(cfg, step)
			if err != nil {
				return cfg, err
			}
			cfg = next
			log.V(1).Info("step complete", "step", step, "position", pos, "total", total)
		}

		if step == session.StepReview {
			switch a.Destination {
			case destinationSave, "":
				return cfg, nil
			case destinationCancel:
				return cfg, ErrCancelled
			default:
				if err := sess.GoToStep(session.Step(a.Destination)); err != nil {
					return cfg, err
				}
				continue
			}
		}
		if !sess.Next() {
			return cfg, nil
		}
	}
}

// RunAssessment asks only the readiness questions and returns the answers.
func RunAssessment(ctx context.Context, theme prefs.Theme) (readiness.Answers, error) {
	a := FromConfig(config.Default())
	form := huh.NewForm(assessmentGroups(a)...).WithTheme(prefs.HuhTheme(theme))
	if err := runForm(ctx, session.StepAssessment, form, a); err != nil {
		return nil, fmt.Errorf("%s: %w", session.StepAssessment.Title(), err)
	}
	return a.ReadinessAnswers(), nil
}
