package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/config/wizard"
	"github.com/imamik/akswiz/internal/logging"
	"github.com/imamik/akswiz/internal/prefs"
	"github.com/imamik/akswiz/internal/session"
)

// Factory function variables for init - can be replaced in tests.
var (
	confirmOverwrite = wizard.ConfirmOverwrite
	runWizard        = wizard.Run
	writeConfig      = wizard.WriteConfig
	openPrefs        = openDefaultPrefs
)

func openDefaultPrefs() (*prefs.Store, error) {
	path, err := prefs.DefaultPath()
	if err != nil {
		return nil, err
	}
	return prefs.Open(path)
}

// Init runs the configuration wizard and writes the result to outputPath.
// An existing file is offered for editing after confirmation.
func Init(ctx context.Context, outputPath string) error {
	log := logging.FromContext(ctx).WithName("init")
	base := config.Default()

	if fileExists(outputPath) {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("wizard canceled: %w", err)
		}
		if !ok {
			fmt.Println("Aborted; existing configuration left unchanged.")
			return nil
		}
		if existing, err := loadConfigFile(outputPath); err == nil {
			base = existing
			log.V(1).Info("editing existing configuration", "path", outputPath)
		} else {
			log.V(1).Info("existing configuration unreadable, starting from defaults", "path", outputPath, "error", err.Error())
		}
	}

	theme := prefs.DefaultTheme
	if store, err := openPrefs(); err == nil {
		theme = store.Theme()
	} else {
		log.V(1).Info("preferences unavailable", "error", err.Error())
	}

	printWelcome()

	cfg, err := runWizard(ctx, session.New(theme), base)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("akswiz - AKS Configuration Wizard")
	fmt.Println("=================================")
	fmt.Println()
	fmt.Println("This wizard builds an AKS cluster configuration step by step.")
	fmt.Println("Press ctrl+c at any time to quit without saving.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Cluster Summary")
	fmt.Println("---------------")
	fmt.Printf("  Name:        %s\n", cfg.ClusterName)
	fmt.Printf("  Region:      %s\n", config.RegionLabel(cfg.Region))
	fmt.Printf("  Mode:        %s\n", cfg.Mode)
	fmt.Printf("  Kubernetes:  %s\n", cfg.KubernetesVersion)
	fmt.Printf("  System pool: %d x %s\n", cfg.SystemNodePool.EffectiveNodeCount(), cfg.SystemNodePool.VMSize)
	for _, p := range cfg.UserNodePools {
		fmt.Printf("  User pool:   %s, %d x %s\n", p.Name, p.EffectiveNodeCount(), p.VMSize)
	}
	if regions := cfg.MultiRegion.ActiveSecondaryRegions(); len(regions) > 0 {
		fmt.Printf("  Secondaries: %v\n", regions)
	}
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Review the checks:     akswiz review -c %s\n", outputPath)
	fmt.Printf("  2. Estimate the cost:     akswiz cost -c %s\n", outputPath)
	fmt.Printf("  3. Generate the files:    akswiz generate -c %s -o ./out\n", outputPath)
	fmt.Println()
}
