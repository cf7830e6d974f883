package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/akswiz/cmd/akswiz/handlers"
)

// Assess returns the readiness assessment command.
func Assess() *cobra.Command {
	var applyPath string

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Recommend AKS Automatic or Standard from a short questionnaire",
		Long: `Answer six questions about your team and workloads to get a
recommendation between AKS Automatic and AKS Standard.

With --apply the recommended mode is written into the given
configuration file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Assess(cmd.Context(), applyPath)
		},
	}

	cmd.Flags().StringVar(&applyPath, "apply", "", "Write the recommended mode into this configuration file")

	return cmd
}
