package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/config/wizard"
	"github.com/imamik/akswiz/internal/prefs"
	"github.com/imamik/akswiz/internal/readiness"
)

// runAssessment asks the readiness questions - can be replaced in tests.
var runAssessment = wizard.RunAssessment

// Assess runs the readiness questionnaire and prints the recommended mode.
// With applyPath the mode is also written into that configuration file.
func Assess(ctx context.Context, applyPath string) error {
	theme := prefs.DefaultTheme
	if store, err := openPrefs(); err == nil {
		theme = store.Theme()
	}

	answers, err := runAssessment(ctx, theme)
	if err != nil {
		return fmt.Errorf("assessment canceled: %w", err)
	}

	mode, ok := readiness.Recommend(answers)
	if !ok {
		fmt.Printf("Answered %d of %d questions; no recommendation yet.\n", readiness.Answered(answers), len(readiness.Questions))
		return nil
	}

	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf("  Recommended mode: AKS %s", mode)))
	fmt.Printf("  Score: %d (Standard at %d or more)\n", readiness.Score(answers), readiness.Threshold)
	fmt.Println(dimStyle.Render("  " + readiness.Rationale(mode)))
	fmt.Println()

	if applyPath == "" {
		return nil
	}
	cfg, err := loadConfig(applyPath, nil)
	if err != nil {
		return err
	}
	cfg = config.Apply(cfg, config.Patch{Mode: &mode})
	if err := writeConfig(cfg, applyPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("Updated %s (mode: %s)\n", applyPath, mode)
	return nil
}
