package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/akswiz/cmd/akswiz/handlers"
)

// Deploy returns the simulated deployment command.
func Deploy() *cobra.Command {
	var (
		configPath string
		sets       []string
		speed      float64
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Simulate a deployment of the configuration",
		Long: `Walk through the deployment steps of a configuration with timed
progress. Nothing is created in Azure.

--speed divides every step duration, so --speed 10 finishes ten times
faster.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), configPath, sets, speed)
		},
	}

	addConfigFlags(cmd, &configPath, &sets)
	cmd.Flags().Float64Var(&speed, "speed", 1, "Simulation speed multiplier")

	return cmd
}
