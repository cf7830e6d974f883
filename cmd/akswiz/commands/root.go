// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/imamik/akswiz/internal/logging"
)

// Root returns the root command for the akswiz CLI.
//
// The root command installs the logger every subcommand reads from its
// context; --verbose raises the log level once per repetition.
func Root() *cobra.Command {
	var verbosity int

	cmd := &cobra.Command{
		Use:          "akswiz",
		Short:        "Design AKS clusters and generate their infrastructure code",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logging.New(verbosity, os.Stderr)))
			return nil
		},
	}

	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (repeatable)")

	// Configuration
	cmd.AddCommand(Init())
	cmd.AddCommand(Review())
	cmd.AddCommand(Generate())
	cmd.AddCommand(Cost())

	// Guidance
	cmd.AddCommand(Recommend())
	cmd.AddCommand(Assess())

	// Delivery
	cmd.AddCommand(Deploy())
	cmd.AddCommand(Publish())

	// Utility commands
	cmd.AddCommand(Theme())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// addConfigFlags binds the flags shared by commands that read a configuration.
func addConfigFlags(cmd *cobra.Command, configPath *string, sets *[]string) {
	cmd.Flags().StringVarP(configPath, "config", "c", "", "Path to configuration file (default: akswiz.yaml)")
	cmd.Flags().StringArrayVar(sets, "set", nil, "Override a configuration value (key=value, repeatable)")
}
