package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/akswiz/internal/config"
)

func TestEnumOptions(t *testing.T) {
	t.Parallel()

	opts := EnumOptions(config.Ingress("").Values())
	require.Len(t, opts, 4)
	assert.Equal(t, config.IngressNone, opts[0].Value)
	assert.Equal(t, "None", opts[0].Key)
	assert.Equal(t, "Application Gateway", opts[2].Key)

	// Equal strings of different enum types keep separate labels.
	lb := EnumOptions(config.LoadBalancerSKU("").Values())
	assert.Equal(t, "Standard", lb[0].Key)
	modes := EnumOptions(config.Mode("").Values())
	assert.Equal(t, "Standard (full control)", modes[1].Key)
}

func TestRegionOptions(t *testing.T) {
	t.Parallel()

	opts := RegionOptions()
	require.Len(t, opts, len(config.Regions))
	assert.Equal(t, "eastus", opts[0].Value)
	assert.Equal(t, "East US (eastus)", opts[0].Key)

	secondary := SecondaryRegionOptions("eastus")
	assert.Len(t, secondary, len(config.Regions)-1)
	for _, o := range secondary {
		assert.NotEqual(t, "eastus", o.Value)
	}
}

func TestVMSizeOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current string
		wantLen int
		first   string
	}{
		{"known size", "Standard_D4s_v3", len(config.VMSizes), config.VMSizes[0]},
		{"empty", "", len(config.VMSizes), config.VMSizes[0]},
		{"custom size kept", "Standard_NC6s_v3", len(config.VMSizes) + 1, "Standard_NC6s_v3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := VMSizeOptions(tt.current)
			assert.Len(t, opts, tt.wantLen)
			assert.Equal(t, tt.first, opts[0].Value)
		})
	}
}

func TestAddonOptions(t *testing.T) {
	t.Parallel()

	opts := AddonOptions()
	require.Len(t, opts, len(Addons))
	keys := make([]string, len(opts))
	for i, o := range opts {
		keys[i] = o.Value
	}
	assert.Equal(t, []string{AddonHTTPRouting, AddonAzurePolicy, AddonKeyVault, AddonKEDA, AddonDapr, AddonACR}, keys)
}
