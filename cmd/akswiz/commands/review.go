package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/akswiz/cmd/akswiz/handlers"
)

// Review returns the command that checks a configuration.
func Review() *cobra.Command {
	var (
		configPath string
		sets       []string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Check a configuration against the validation rules",
		Long: `Run every validation rule against a configuration.

Required checks must pass before templates are generated. Advisory
checks are recommendations only. The command exits non-zero when a
required check fails.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Review(cmd.Context(), configPath, sets, jsonOutput)
		},
	}

	addConfigFlags(cmd, &configPath, &sets)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
