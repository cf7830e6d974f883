package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/akswiz/cmd/akswiz/handlers"
)

// Init returns the command for interactively creating a cluster configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "akswiz.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create an AKS cluster configuration",
		Long: `Interactively create an AKS cluster configuration file.

The wizard walks through each part of the cluster in order:

  - Readiness assessment (Automatic or Standard mode)
  - Basics (subscription, resource group, name, region, version)
  - Node pools
  - Networking and security
  - Monitoring, storage and workload sizing
  - Pod scheduling, add-ons and multi-region routing

A review step lists every check and the monthly cost estimate before
the file is written. Running init against an existing file edits it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", handlers.DefaultConfigFile, "Output file path")

	return cmd
}
