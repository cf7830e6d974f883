package handlers

import (
	"fmt"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/config/wizard"
)

// DefaultConfigFile is the configuration file used when -c is not given.
const DefaultConfigFile = "akswiz.yaml"

// Factory function variables - can be replaced in tests.
var (
	loadConfigFile = config.LoadFile
	fileExists     = wizard.FileExists
)

// loadConfig reads the configuration at configPath and applies --set
// overrides. An empty path uses DefaultConfigFile when it exists and the
// defaults otherwise.
func loadConfig(configPath string, sets []string) (config.Config, error) {
	cfg := config.Default()

	path := configPath
	if path == "" && fileExists(DefaultConfigFile) {
		path = DefaultConfigFile
	}
	if path != "" {
		loaded, err := loadConfigFile(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(sets) == 0 {
		return cfg, nil
	}
	raw, err := config.ParseSetFlags(sets)
	if err != nil {
		return config.Config{}, err
	}
	patch, err := config.PatchFromMap(raw)
	if err != nil {
		return config.Config{}, err
	}
	return config.Apply(cfg, patch), nil
}
