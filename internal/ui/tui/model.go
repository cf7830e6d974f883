package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/akswiz/internal/deploy"
	"github.com/imamik/akswiz/internal/ui/benchmarks"
)

// ErrAborted is returned when the user quits before the rollout finishes.
var ErrAborted = errors.New("deployment aborted")

// maxLogLines is how many log lines the view keeps.
const maxLogLines = 6

// StepState tracks one rollout step for display.
type StepState struct {
	Step   deploy.Step
	Done   bool
	Active bool
}

// DeployModel is the Bubble Tea model for the deploy progress view.
type DeployModel struct {
	ClusterName string
	Region      string

	Steps   []StepState
	Current int
	Log     []string

	// ETA
	Speed              float64
	StartTime          time.Time
	StepStartedAt      time.Time
	EstimatedRemaining time.Duration

	Spinner spinner.Model

	// UI state
	Width   int
	Err     error
	Done    bool
	Aborted bool

	now func() time.Time
}

// NewDeployModel creates a model for the given cluster.
func NewDeployModel(clusterName, region string, speed float64) DeployModel {
	steps := make([]StepState, len(deploy.Steps))
	for i, s := range deploy.Steps {
		steps[i] = StepState{Step: s}
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))
	return DeployModel{
		ClusterName:        clusterName,
		Region:             region,
		Steps:              steps,
		Current:            -1,
		Speed:              speed,
		StartTime:          time.Now(),
		EstimatedRemaining: benchmarks.TotalEstimate(speed),
		Spinner:            sp,
		now:                time.Now,
	}
}

// Init implements tea.Model.
func (m DeployModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, tickCmd())
}

// Update implements tea.Model.
func (m DeployModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if !m.Done {
				m.Aborted = true
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case EventMsg:
		m.applyEvent(msg.Event)
		if m.Done {
			return m, tea.Quit
		}

	case TickMsg:
		m.updateETA()
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *DeployModel) applyEvent(e deploy.Event) {
	if e.Line != "" && e.Kind != deploy.EventStepDone {
		m.appendLog(e.Line)
	}
	switch e.Kind {
	case deploy.EventStep:
		if e.Index < 0 || e.Index >= len(m.Steps) {
			return
		}
		// Earlier steps are complete once a later one starts.
		for i := 0; i < e.Index; i++ {
			m.Steps[i].Done = true
			m.Steps[i].Active = false
		}
		m.Steps[e.Index].Active = true
		m.Current = e.Index
		m.StepStartedAt = m.clock()
	case deploy.EventStepDone:
		if e.Index < 0 || e.Index >= len(m.Steps) {
			return
		}
		m.Steps[e.Index].Done = true
		m.Steps[e.Index].Active = false
	case deploy.EventSucceeded:
		for i := range m.Steps {
			m.Steps[i].Done = true
			m.Steps[i].Active = false
		}
		m.Current = len(m.Steps)
		m.Done = true
	}
	m.updateETA()
}

func (m *DeployModel) appendLog(line string) {
	m.Log = append(m.Log, line)
	if len(m.Log) > maxLogLines {
		m.Log = m.Log[len(m.Log)-maxLogLines:]
	}
}

func (m *DeployModel) updateETA() {
	if m.Done {
		m.EstimatedRemaining = 0
		return
	}
	var elapsed time.Duration
	if m.Current >= 0 && !m.StepStartedAt.IsZero() {
		elapsed = m.clock().Sub(m.StepStartedAt)
	}
	m.EstimatedRemaining = benchmarks.EstimateRemaining(m.Current, elapsed, m.Speed)
}

func (m DeployModel) completed() int {
	n := 0
	for _, s := range m.Steps {
		if s.Done {
			n++
		}
	}
	return n
}

func (m DeployModel) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m DeployModel) View() string {
	return renderView(m)
}
