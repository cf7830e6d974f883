package session

import (
	"fmt"

	"github.com/imamik/akswiz/internal/prefs"
)

// Step identifies one wizard screen.
type Step string

const (
	StepWelcome     Step = "welcome"
	StepAssessment  Step = "assessment"
	StepBasics      Step = "basics"
	StepNodes       Step = "nodes"
	StepNetworking  Step = "networking"
	StepSecurity    Step = "security"
	StepMonitoring  Step = "monitoring"
	StepWorkloads   Step = "workloads"
	StepPods        Step = "pods"
	StepStorage     Step = "storage"
	StepAddons      Step = "addons"
	StepMultiRegion Step = "multiregion"
	StepReview      Step = "review"
	StepTemplates   Step = "templates"
	StepDeploy      Step = "deploy"
	StepGitHub      Step = "github"
)

// Steps is the fixed wizard order.
var Steps = []Step{
	StepWelcome,
	StepAssessment,
	StepBasics,
	StepNodes,
	StepNetworking,
	StepSecurity,
	StepMonitoring,
	StepWorkloads,
	StepPods,
	StepStorage,
	StepAddons,
	StepMultiRegion,
	StepReview,
	StepTemplates,
	StepDeploy,
	StepGitHub,
}

var stepTitles = map[Step]string{
	StepWelcome:     "Welcome",
	StepAssessment:  "Readiness Assessment",
	StepBasics:      "Basics",
	StepNodes:       "Node Pools",
	StepNetworking:  "Networking",
	StepSecurity:    "Security",
	StepMonitoring:  "Monitoring",
	StepWorkloads:   "Workloads",
	StepPods:        "Pod Configuration",
	StepStorage:     "Storage",
	StepAddons:      "Add-ons",
	StepMultiRegion: "Multi-Region",
	StepReview:      "Review",
	StepTemplates:   "Templates",
	StepDeploy:      "Deploy",
	StepGitHub:      "Save to GitHub",
}

// Title returns the display title of the step.
func (s Step) Title() string {
	if t, ok := stepTitles[s]; ok {
		return t
	}
	return string(s)
}

// Session is the state of one wizard run: which step is showing and which
// theme is active. It is created when a wizard starts and dropped when it
// ends.
type Session struct {
	steps []Step
	index int
	theme prefs.Theme
}

// New starts a session on the first step. An invalid theme falls back to
// the default.
func New(theme prefs.Theme) *Session {
	if !theme.IsValid() {
		theme = prefs.DefaultTheme
	}
	return &Session{steps: append([]Step(nil), Steps...), theme: theme}
}

// Steps returns a copy of the step order.
func (s *Session) Steps() []Step { return append([]Step(nil), s.steps...) }

// Index returns the current step index.
func (s *Session) Index() int { return s.index }

// Current returns the current step.
func (s *Session) Current() Step { return s.steps[s.index] }

// Theme returns the active theme.
func (s *Session) Theme() prefs.Theme { return s.theme }

// IsFirst reports whether the session is on the first step.
func (s *Session) IsFirst() bool { return s.index == 0 }

// IsLast reports whether the session is on the last step.
func (s *Session) IsLast() bool { return s.index == len(s.steps)-1 }

// Next advances one step. It reports false when already on the last step.
func (s *Session) Next() bool {
	if s.IsLast() {
		return false
	}
	s.index++
	return true
}

// Back moves one step back. It reports false when already on the first step.
func (s *Session) Back() bool {
	if s.IsFirst() {
		return false
	}
	s.index--
	return true
}

// GoTo jumps to index, clamped to the valid range.
func (s *Session) GoTo(index int) {
	s.index = max(0, min(index, len(s.steps)-1))
}

// GoToStep jumps to the named step.
func (s *Session) GoToStep(step Step) error {
	for i, st := range s.steps {
		if st == step {
			s.index = i
			return nil
		}
	}
	return fmt.Errorf("unknown wizard step %q", step)
}

// SetTheme switches the active theme.
func (s *Session) SetTheme(theme prefs.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("%w: %q", prefs.ErrUnknownTheme, theme)
	}
	s.theme = theme
	return nil
}

// Progress returns the 1-based position and the total number of steps.
func (s *Session) Progress() (int, int) {
	return s.index + 1, len(s.steps)
}
