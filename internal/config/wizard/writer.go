package wizard

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/imamik/akswiz/internal/config"
)

// Function variables for dependency injection in tests.
var (
	confirmOverwrite = defaultConfirmOverwrite
	now              = time.Now
)

// WriteConfig writes the full configuration to a YAML file with a
// descriptive header. The file is created with mode 0600 because it holds
// subscription and tenant identifiers.
func WriteConfig(cfg config.Config, outputPath string) error {
	body, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(outputPath))
	sb.WriteString("\n")
	sb.Write(body)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// generateHeader creates the YAML file header comment.
func generateHeader(outputPath string) string {
	return fmt.Sprintf(`# akswiz cluster configuration
# Generated by: akswiz init
# Generated at: %s
#
# Usage:
#   akswiz review -c %[2]s
#   akswiz generate -c %[2]s -o ./out
`, now().UTC().Format(time.RFC3339), outputPath)
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// ConfirmOverwrite asks whether an existing file may be replaced.
func ConfirmOverwrite(path string) (bool, error) {
	return confirmOverwrite(path)
}

func defaultConfirmOverwrite(path string) (bool, error) {
	var overwrite bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists. Overwrite?", path)).
				Value(&overwrite),
		),
	).Run()
	return overwrite, err
}
