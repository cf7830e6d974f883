package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/akswiz/internal/config"
)

type reviewSummary struct {
	ClusterName string               `json:"clusterName"`
	Passed      bool                 `json:"passed"`
	Required    bool                 `json:"requiredPassed"`
	Checks      []config.CheckResult `json:"checks"`
}

// Review runs every validation rule and prints the results. It returns
// ErrValidationFailed when a required check fails.
func Review(_ context.Context, configPath string, sets []string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath, sets)
	if err != nil {
		return err
	}

	results := config.Checks(cfg)
	summary := reviewSummary{
		ClusterName: cfg.ClusterName,
		Passed:      config.Passed(results),
		Required:    config.RequiredPassed(results),
		Checks:      results,
	}

	if jsonOutput {
		b, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Println(string(b))
	} else {
		fmt.Print(renderReview(displayName(cfg), results))
	}

	if !summary.Required {
		return ErrValidationFailed
	}
	return nil
}

// renderReview produces a lipgloss-styled check table.
func renderReview(clusterName string, results []config.CheckResult) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  akswiz review: %s", clusterName)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n\n")

	for _, r := range results {
		b.WriteString("  ")
		b.WriteString(checkMark(r))
		fmt.Fprintf(&b, " %-26s", r.Label)
		if !r.OK {
			b.WriteString(dimStyle.Render(r.Message))
		}
		b.WriteString("\n")
	}

	required := config.Failures(results, config.SeverityRequired)
	advisory := config.Failures(results, config.SeverityAdvisory)

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Summary"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 35)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "    Passed:    %d/%d\n", len(results)-len(required)-len(advisory), len(results))
	fmt.Fprintf(&b, "    Required:  %s\n", countStyle(len(required), redStyle))
	fmt.Fprintf(&b, "    Advisory:  %s\n", countStyle(len(advisory), yellowStyle))
	b.WriteString("\n")
	return b.String()
}

// renderFailures lists only the failing required checks.
func renderFailures(results []config.CheckResult) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(redStyle.Render("  Required checks failed:"))
	b.WriteString("\n")
	for _, r := range config.Failures(results, config.SeverityRequired) {
		fmt.Fprintf(&b, "    %s %s: %s\n", redStyle.Render("✗"), r.Label, r.Message)
	}
	b.WriteString("\n")
	return b.String()
}

func checkMark(r config.CheckResult) string {
	switch {
	case r.OK:
		return greenStyle.Render("✓")
	case r.Severity == config.SeverityAdvisory:
		return yellowStyle.Render("!")
	default:
		return redStyle.Render("✗")
	}
}

func countStyle(n int, failing lipgloss.Style) string {
	s := fmt.Sprintf("%d failing", n)
	if n == 0 {
		return greenStyle.Render(s)
	}
	return failing.Render(s)
}
