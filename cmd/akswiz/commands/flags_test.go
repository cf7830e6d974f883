package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/akswiz/internal/publish"
)

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		name     string
		cmd      func() *cobra.Command
		defaults map[string]string
	}{
		{"init", Init, map[string]string{"output": "akswiz.yaml"}},
		{"review", Review, map[string]string{"config": "", "set": "[]", "json": "false"}},
		{"generate", Generate, map[string]string{"config": "", "output": "out", "only": "[]", "force": "false"}},
		{"cost", Cost, map[string]string{"json": "false", "prices-url": ""}},
		{"recommend", Recommend, map[string]string{"workload": "general", "traffic": "medium", "json": "false"}},
		{"assess", Assess, map[string]string{"apply": ""}},
		{"deploy", Deploy, map[string]string{"speed": "1", "config": ""}},
		{"publish", Publish, map[string]string{
			"branch": publish.DefaultBranch,
			"folder": publish.DefaultFolder,
			"token":  "",
			"owner":  "",
			"repo":   "",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := tt.cmd()
			require.NotNil(t, cmd.RunE)
			for name, want := range tt.defaults {
				f := cmd.Flags().Lookup(name)
				require.NotNil(t, f, "flag --%s", name)
				assert.Equal(t, want, f.DefValue, "flag --%s", name)
			}
		})
	}
}

func TestConfigFlagShorthand(t *testing.T) {
	for _, cmd := range []*cobra.Command{Review(), Generate(), Cost(), Deploy(), Publish()} {
		f := cmd.Flags().ShorthandLookup("c")
		require.NotNil(t, f, cmd.Name())
		assert.Equal(t, "config", f.Name)
	}
}

func TestGenerate_LongListsFiles(t *testing.T) {
	cmd := Generate()
	assert.Contains(t, cmd.Long, "main.tf")
	assert.Contains(t, cmd.Long, "--force")
}

func TestSetFlagRepeats(t *testing.T) {
	cmd := Review()
	require.NoError(t, cmd.ParseFlags([]string{"--set", "clusterName=a", "--set", "multiRegion.secondaryRegions=westus,northeurope"}))

	sets, err := cmd.Flags().GetStringArray("set")
	require.NoError(t, err)
	assert.Equal(t, []string{"clusterName=a", "multiRegion.secondaryRegions=westus,northeurope"}, sets)
}
