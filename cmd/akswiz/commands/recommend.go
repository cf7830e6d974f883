package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/akswiz/cmd/akswiz/handlers"
	"github.com/imamik/akswiz/internal/config"
)

// Recommend returns the command that suggests VM sizes and resources.
func Recommend() *cobra.Command {
	var (
		workload   string
		traffic    string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest VM sizes and container resources for a workload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Recommend(cmd.Context(), workload, traffic, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&workload, "workload", string(config.WorkloadGeneral), "Workload type")
	cmd.Flags().StringVar(&traffic, "traffic", string(config.TrafficMedium), "Expected traffic level")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	_ = cmd.RegisterFlagCompletionFunc("workload", enumCompletion(config.WorkloadType("").Values()))
	_ = cmd.RegisterFlagCompletionFunc("traffic", enumCompletion(config.TrafficLevel("").Values()))

	return cmd
}

func enumCompletion[T ~string](values []T) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = string(v)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}
