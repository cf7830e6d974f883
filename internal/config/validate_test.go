package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := Default()
	cfg.SubscriptionID = "sub-123"
	cfg.ResourceGroupName = "rg"
	cfg.ClusterName = "demo"
	return cfg
}

func resultByLabel(t *testing.T, results []CheckResult, label string) CheckResult {
	t.Helper()
	for _, r := range results {
		if r.Label == label {
			return r
		}
	}
	require.Failf(t, "missing check", "no check labelled %q", label)
	return CheckResult{}
}

func TestChecks_Order(t *testing.T) {
	results := Checks(validConfig())
	labels := make([]string, len(results))
	for i, r := range results {
		labels[i] = r.Label
	}
	assert.Equal(t, []string{
		"Subscription ID",
		"Resource Group Name",
		"Cluster Name",
		"Cluster name format",
		"RBAC enabled",
		"Azure AD integration",
		"Standard Load Balancer",
		"Container Insights",
		"Container registry",
		"Node pool sizing",
		"Kubernetes version",
		"Secondary regions",
		"HPA targets",
	}, labels)
}

func TestChecks_ValidConfigPasses(t *testing.T) {
	results := Checks(validConfig())
	assert.True(t, Passed(results))
	assert.True(t, RequiredPassed(results))
	assert.Empty(t, Failures(results, SeverityRequired))
	assert.Empty(t, Failures(results, SeverityAdvisory))
}

func TestChecks_DefaultConfigFailsIdentity(t *testing.T) {
	results := Checks(Default())
	assert.False(t, RequiredPassed(results))

	failed := Failures(results, SeverityRequired)
	require.Len(t, failed, 3)
	assert.Equal(t, "Subscription ID", failed[0].Label)
	assert.Equal(t, "Resource Group Name", failed[1].Label)
	assert.Equal(t, "Cluster Name", failed[2].Label)
}

func TestChecks_AdvisoryDoesNotBlock(t *testing.T) {
	cfg := validConfig()
	cfg.Security.EnableRBAC = false
	cfg.Networking.LoadBalancerSKU = LoadBalancerBasic
	cfg.Monitoring.EnableContainerInsights = false

	results := Checks(cfg)
	assert.False(t, Passed(results))
	assert.True(t, RequiredPassed(results))

	advisory := Failures(results, SeverityAdvisory)
	require.Len(t, advisory, 3)
	assert.Equal(t, "Basic SKU is not recommended for production", advisory[1].Message)
}

func TestChecks_ClusterNameBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		cluster    string
		wantFormat bool
		wantReq    bool
	}{
		{"single character", "a", true, true},
		{"63 characters", strings.Repeat("a", 63), true, true},
		{"64 characters", strings.Repeat("a", 64), false, true},
		{"underscore", "my_cluster", false, true},
		{"hyphen and digits", "my-cluster-01", true, true},
		{"empty", "", true, false},
		{"whitespace only", "   ", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.ClusterName = tt.cluster
			results := Checks(cfg)
			assert.Equal(t, tt.wantFormat, resultByLabel(t, results, "Cluster name format").OK)
			assert.Equal(t, tt.wantReq, resultByLabel(t, results, "Cluster Name").OK)
		})
	}
}

func TestChecks_ConditionalRequirements(t *testing.T) {
	tests := []struct {
		name  string
		label string
		edit  func(*Config)
		want  bool
	}{
		{"AD enabled without tenant", "Azure AD integration", func(c *Config) { c.Security.EnableAzureAD = true }, false},
		{"AD enabled with tenant", "Azure AD integration", func(c *Config) {
			c.Security.EnableAzureAD = true
			c.Security.AzureADTenantID = "tenant"
		}, true},
		{"tenant without AD", "Azure AD integration", func(c *Config) { c.Security.AzureADTenantID = "tenant" }, true},
		{"ACR without name", "Container registry", func(c *Config) { c.Addons.EnableACRIntegration = true }, false},
		{"ACR with name", "Container registry", func(c *Config) {
			c.Addons.EnableACRIntegration = true
			c.Addons.ContainerRegistryName = "myacr"
		}, true},
		{"secondary equals primary", "Secondary regions", func(c *Config) {
			c.MultiRegion.Enabled = true
			c.MultiRegion.SecondaryRegions = []string{"westus", c.Region}
		}, false},
		{"secondary distinct", "Secondary regions", func(c *Config) {
			c.MultiRegion.Enabled = true
			c.MultiRegion.SecondaryRegions = []string{"westus", "northeurope"}
		}, true},
		{"duplicate secondary", "Secondary regions", func(c *Config) {
			c.MultiRegion.Enabled = true
			c.MultiRegion.SecondaryRegions = []string{"westus", "westus"}
		}, false},
		{"secondaries share a name suffix", "Secondary regions", func(c *Config) {
			c.MultiRegion.Enabled = true
			c.MultiRegion.SecondaryRegions = []string{"west-us", "west_us"}
		}, false},
		{"blank secondary", "Secondary regions", func(c *Config) {
			c.MultiRegion.Enabled = true
			c.MultiRegion.SecondaryRegions = []string{"westus", " "}
		}, false},
		{"secondary ignored when disabled", "Secondary regions", func(c *Config) {
			c.MultiRegion.SecondaryRegions = []string{c.Region}
		}, true},
		{"HPA target off step", "HPA targets", func(c *Config) {
			c.Workload.EnableHPA = true
			c.Workload.TargetCPUUtilization = 72
		}, false},
		{"HPA target too high", "HPA targets", func(c *Config) {
			c.Workload.EnableHPA = true
			c.Workload.TargetMemoryUtilization = 95
		}, false},
		{"HPA bounds inclusive", "HPA targets", func(c *Config) {
			c.Workload.EnableHPA = true
			c.Workload.TargetCPUUtilization = 30
			c.Workload.TargetMemoryUtilization = 90
		}, true},
		{"HPA targets ignored when disabled", "HPA targets", func(c *Config) {
			c.Workload.TargetCPUUtilization = 7
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.edit(&cfg)
			assert.Equal(t, tt.want, resultByLabel(t, Checks(cfg), tt.label).OK)
		})
	}
}

func TestChecks_NodePoolSizing(t *testing.T) {
	tests := []struct {
		name string
		pool NodePool
		want bool
	}{
		{"fixed lower bound", NodePool{NodeCount: 1}, true},
		{"fixed upper bound", NodePool{NodeCount: 10}, true},
		{"fixed zero", NodePool{NodeCount: 0}, false},
		{"fixed eleven", NodePool{NodeCount: 11}, false},
		{"autoscale ignores count", NodePool{NodeCount: 50, EnableAutoScaling: true, MinNodes: 1, MaxNodes: 100}, true},
		{"autoscale min zero", NodePool{EnableAutoScaling: true, MinNodes: 0, MaxNodes: 3}, false},
		{"autoscale min above max", NodePool{EnableAutoScaling: true, MinNodes: 5, MaxNodes: 3}, false},
		{"autoscale max above limit", NodePool{EnableAutoScaling: true, MinNodes: 1, MaxNodes: 101}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg = AddUserPool(cfg, tt.pool)
			assert.Equal(t, tt.want, resultByLabel(t, Checks(cfg), "Node pool sizing").OK)
		})
	}
}

func TestValidKubernetesVersion(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"1.29.x", true},
		{"1.29", true},
		{"1.29.2", true},
		{"1.30.X", true},
		{"", false},
		{"latest", false},
		{"1", false},
		{"v1.29.0", false},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidKubernetesVersion(tt.version))
		})
	}
}

// Flipping one flag changes only the rules that read it.
func TestChecks_Independence(t *testing.T) {
	toggles := []struct {
		name     string
		flip     func(*Config)
		affected []string
	}{
		{"image scanning", func(c *Config) { c.Security.EnableImageScanning = !c.Security.EnableImageScanning }, nil},
		{"pod identity", func(c *Config) { c.Security.EnablePodIdentity = !c.Security.EnablePodIdentity }, nil},
		{"rbac", func(c *Config) { c.Security.EnableRBAC = !c.Security.EnableRBAC }, []string{"RBAC enabled"}},
		{"azure ad", func(c *Config) { c.Security.EnableAzureAD = !c.Security.EnableAzureAD }, []string{"Azure AD integration"}},
		{"insights", func(c *Config) {
			c.Monitoring.EnableContainerInsights = !c.Monitoring.EnableContainerInsights
		}, []string{"Container Insights"}},
		{"acr", func(c *Config) { c.Addons.EnableACRIntegration = !c.Addons.EnableACRIntegration }, []string{"Container registry"}},
		{"keda", func(c *Config) { c.Addons.EnableKEDA = !c.Addons.EnableKEDA }, nil},
		{"service mesh", func(c *Config) { c.Networking.EnableServiceMesh = !c.Networking.EnableServiceMesh }, nil},
		{"system autoscale", func(c *Config) {
			c.SystemNodePool.EnableAutoScaling = !c.SystemNodePool.EnableAutoScaling
		}, []string{"Node pool sizing"}},
		{"hpa", func(c *Config) { c.Workload.EnableHPA = !c.Workload.EnableHPA }, []string{"HPA targets"}},
		{"multi-region", func(c *Config) { c.MultiRegion.Enabled = !c.MultiRegion.Enabled }, []string{"Secondary regions"}},
	}

	bases := map[string]Config{
		"valid":   validConfig(),
		"default": Default(),
	}

	for baseName, base := range bases {
		before := Checks(base)
		for _, tt := range toggles {
			t.Run(baseName+"/"+tt.name, func(t *testing.T) {
				cfg := base.Clone()
				tt.flip(&cfg)
				after := Checks(cfg)
				require.Len(t, after, len(before))
				for i := range before {
					if containsLabel(tt.affected, before[i].Label) {
						continue
					}
					assert.Equal(t, before[i].OK, after[i].OK, "rule %q changed", before[i].Label)
				}
			})
		}
	}
}

func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
