package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/akswiz/cmd/akswiz/handlers"
	"github.com/imamik/akswiz/internal/prefs"
)

// Theme returns the command that shows or stores the wizard theme.
func Theme() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [name]",
		Short: "Show or set the wizard color theme",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return enumCompletion(prefs.Themes())(nil, nil, "")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return handlers.Theme(cmd.Context(), name)
		},
	}
}
