package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PartialDocument(t *testing.T) {
	doc := `
clusterName: demo
region: westeurope
workload:
  trafficLevel: burst
userNodePools:
  - name: pool1
    vmSize: Standard_D4s_v3
    nodeCount: 3
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.ClusterName)
	assert.Equal(t, "westeurope", cfg.Region)
	assert.Equal(t, TrafficBurst, cfg.Workload.TrafficLevel)
	assert.Equal(t, WorkloadGeneral, cfg.Workload.WorkloadType)
	assert.Equal(t, DefaultKubernetesVersion, cfg.KubernetesVersion)
	require.Len(t, cfg.UserNodePools, 1)
	assert.Equal(t, "Standard_D4s_v3", cfg.UserNodePools[0].VMSize)
	assert.Equal(t, PoolModeUser, cfg.UserNodePools[0].Mode)
}

func TestParse_EmptyDocumentIsDefault(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"malformed yaml", "clusterName: [demo", "failed to unmarshal yaml"},
		{"unknown key", "clustername: demo", "clustername"},
		{"invalid enum", "networking:\n  ingress: traefik", "networking.ingress=traefik"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.SubscriptionID = "sub"
	cfg.ResourceGroupName = "rg"
	cfg.ClusterName = "demo"
	cfg.Security.EnableAzureAD = true
	cfg.Security.AzureADTenantID = "tenant"
	cfg.Pod.CPULimit = "1"
	cfg.MultiRegion.Enabled = true
	cfg.MultiRegion.SecondaryRegions = []string{"westus", "northeurope"}
	cfg = AddUserPool(cfg, NodePool{Name: "pool1", VMSize: "Standard_D4s_v3", NodeCount: 3})
	cfg = AddUserPool(cfg, NodePool{Name: "pool2", VMSize: "Standard_E4s_v3", EnableAutoScaling: true, MinNodes: 2, MaxNodes: 6})

	data, err := Marshal(cfg)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "akswiz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clusterName: from-file\n"), 0600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.ClusterName)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
