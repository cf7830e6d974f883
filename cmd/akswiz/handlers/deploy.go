package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/akswiz/internal/deploy"
	"github.com/imamik/akswiz/internal/logging"
	"github.com/imamik/akswiz/internal/ui/benchmarks"
	"github.com/imamik/akswiz/internal/ui/tui"
)

// Factory function variables for deploy - can be replaced in tests.
var (
	runDeployTUI = tui.RunDeployTUI
	runPlain     = tui.RunPlain
)

// Deploy runs the simulated deployment. Interactive terminals get the
// progress view; other outputs get one line per step.
func Deploy(ctx context.Context, configPath string, sets []string, speed float64) error {
	if speed <= 0 {
		return errInvalidSpeed
	}
	cfg, err := loadConfig(configPath, sets)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).WithName("deploy").V(1).Info("simulating deployment",
		"cluster", cfg.ClusterName, "region", cfg.Region, "estimate", benchmarks.TotalEstimate(speed).String())

	runner := deploy.NewRunner(speed)
	if isInteractiveTTY() {
		err = runDeployTUI(ctx, runner, cfg)
	} else {
		err = runPlain(ctx, runner, cfg, os.Stdout)
	}
	if err != nil {
		return fmt.Errorf("deployment failed: %w", err)
	}
	return nil
}
