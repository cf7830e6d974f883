package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/akswiz/cmd/akswiz/handlers"
	"github.com/imamik/akswiz/internal/publish"
	"github.com/imamik/akswiz/internal/templates"
)

// Publish returns the command that saves the bundle to GitHub.
func Publish() *cobra.Command {
	var o handlers.PublishOptions

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Save the generated files to a GitHub repository",
		Long: `Generate the bundle and commit each file to a GitHub repository.

Existing files are updated in place and missing ones are created, one
commit per file. The token is read from --token or the ` + handlers.TokenEnv + `
environment variable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Publish(cmd.Context(), o)
		},
	}

	addConfigFlags(cmd, &o.ConfigPath, &o.Sets)
	cmd.Flags().StringVar(&o.Owner, "owner", "", "Repository owner")
	cmd.Flags().StringVar(&o.Repo, "repo", "", "Repository name")
	cmd.Flags().StringVar(&o.Branch, "branch", publish.DefaultBranch, "Target branch")
	cmd.Flags().StringVar(&o.Folder, "folder", publish.DefaultFolder, "Folder inside the repository")
	cmd.Flags().StringVar(&o.Token, "token", "", "GitHub token (default: $"+handlers.TokenEnv+")")
	cmd.Flags().StringSliceVar(&o.Only, "only", nil, "Publish only the named files")

	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.RegisterFlagCompletionFunc("only", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return templates.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
