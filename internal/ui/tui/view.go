package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/akswiz/internal/ui/benchmarks"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func renderView(m DeployModel) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderSteps(&b, m)
	if len(m.Log) > 0 {
		renderLog(&b, m)
	}
	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m DeployModel) {
	title := fmt.Sprintf("akswiz deploy: %s", m.ClusterName)
	if m.Region != "" {
		title += fmt.Sprintf(" (%s)", m.Region)
	}
	b.WriteString(titleStyle.Render(title))

	status := " "
	switch {
	case m.Done:
		status += readyStyle.Render("Succeeded")
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Aborted:
		status += warningStyle.Render("Aborted")
	case m.Current >= 0:
		status += m.Spinner.View() + " " + activeStyle.Render("Deploying")
	default:
		status += dimStyle.Render("Starting...")
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m DeployModel) {
	progress := calculateProgress(m)
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = max(m.Width-30, 10)
	}
	filled := min(int(float64(barWidth)*progress), barWidth)

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	pct := int(progress * 100)
	eta := ""
	if m.EstimatedRemaining > 0 {
		eta = fmt.Sprintf(" ETA %s", formatDuration(m.EstimatedRemaining))
	}
	if m.Speed > 0 && m.Speed != 1.0 {
		eta += fmt.Sprintf("  speed x%.1f", m.Speed)
	}

	fmt.Fprintf(b, "  %s %d%%%s\n", bar, pct, eta)
}

func renderSteps(b *strings.Builder, m DeployModel) {
	b.WriteString(sectionStyle.Render("  Steps"))
	b.WriteString("\n")

	for i, s := range m.Steps {
		var icon string
		var style styleFunc
		switch {
		case m.Err != nil && i == m.Current:
			icon = crossMark
			style = sf(failedStyle)
		case s.Done:
			icon = checkMark
			style = sf(readyStyle)
		case s.Active:
			icon = "[" + m.Spinner.View() + " ]"
			style = sf(activeStyle)
		default:
			icon = pending
			style = sf(dimStyle)
		}
		fmt.Fprintf(b, "    %s %s\n", style(icon), style(s.Step.Label))
	}
}

func renderLog(b *strings.Builder, m DeployModel) {
	b.WriteString(sectionStyle.Render("  Log"))
	b.WriteString("\n")
	for _, line := range m.Log {
		fmt.Fprintf(b, "    %s\n", dimStyle.Render(line))
	}
}

func renderFooter(b *strings.Builder, m DeployModel) {
	parts := []string{
		fmt.Sprintf("%d/%d steps", m.completed(), len(m.Steps)),
		"elapsed " + formatDuration(time.Since(m.StartTime)),
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  %s  |  q: quit", strings.Join(parts, "  |  "))))
	b.WriteString("\n")
}

func calculateProgress(m DeployModel) float64 {
	if m.Done {
		return 1.0
	}
	return benchmarks.Progress(m.completed())
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
