package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/akswiz/cmd/akswiz/handlers"
)

// Cost returns the command for the monthly cost estimate.
func Cost() *cobra.Command {
	var (
		configPath string
		sets       []string
		jsonOutput bool
		pricesURL  string
	)

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Estimate the monthly cost of a configuration",
		Long: `Estimate the monthly and annual cost of a configuration.

The estimate covers node pools, monitoring, add-ons, storage and
multi-region routing. VM prices come from a built-in table unless
--prices-url points at a JSON price sheet.
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Cost(cmd.Context(), configPath, sets, jsonOutput, pricesURL)
		},
	}

	addConfigFlags(cmd, &configPath, &sets)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&pricesURL, "prices-url", "", "URL of a JSON VM price sheet")

	return cmd
}
