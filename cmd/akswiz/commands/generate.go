package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/imamik/akswiz/cmd/akswiz/handlers"
	"github.com/imamik/akswiz/internal/templates"
)

// Generate returns the command that renders the template bundle.
func Generate() *cobra.Command {
	var (
		configPath string
		sets       []string
		outDir     string
		only       []string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Terraform, Bicep, ARM, workflow and manifest files",
		Long: `Render the infrastructure bundle for a configuration.

Files written under the output directory:

  ` + strings.Join(templates.Names(), "\n  ") + `

Generation is refused while a required check fails; use --force to
write the files anyway.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Generate(cmd.Context(), configPath, sets, outDir, only, force)
		},
	}

	addConfigFlags(cmd, &configPath, &sets)
	cmd.Flags().StringVarP(&outDir, "output", "o", "out", "Output directory")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Generate only the named files")
	cmd.Flags().BoolVar(&force, "force", false, "Generate even when required checks fail")

	_ = cmd.RegisterFlagCompletionFunc("only", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return templates.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
