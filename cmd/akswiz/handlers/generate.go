package handlers

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/logging"
	"github.com/imamik/akswiz/internal/templates"
)

// writeBundle writes generated files - can be replaced in tests.
var writeBundle = templates.WriteBundle

// Generate renders the template bundle for the configuration and writes it
// under outDir. It refuses a configuration with failing required checks
// unless force is set. only restricts the bundle to the named files.
func Generate(ctx context.Context, configPath string, sets []string, outDir string, only []string, force bool) error {
	log := logging.FromContext(ctx).WithName("generate")

	cfg, err := loadConfig(configPath, sets)
	if err != nil {
		return err
	}

	results := config.Checks(cfg)
	if !config.RequiredPassed(results) {
		if !force {
			fmt.Print(renderFailures(results))
			return fmt.Errorf("%w (use --force to generate anyway)", ErrValidationFailed)
		}
		log.Info("generating despite failing required checks")
	}

	files, err := templates.Select(templates.Bundle(cfg), only...)
	if err != nil {
		return err
	}
	log.V(1).Info("generated", "files", len(files), "dir", outDir)

	if err := writeBundle(outDir, files); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf("  Generated %d files for %s", len(files), displayName(cfg))))
	for _, f := range files {
		fmt.Printf("    %s %s\n", greenStyle.Render("✓"), filepath.Join(outDir, f.Name))
	}
	fmt.Println()
	return nil
}

// displayName returns the cluster name, or a placeholder when unset.
func displayName(cfg config.Config) string {
	if cfg.ClusterName == "" {
		return "(unnamed cluster)"
	}
	return cfg.ClusterName
}
