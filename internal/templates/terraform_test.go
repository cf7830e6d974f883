package templates

import (
	"regexp"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/akswiz/internal/config"
	testutil "github.com/imamik/akswiz/internal/testing"
)

// requireHCL fails the test unless src parses as native HCL syntax.
func requireHCL(t *testing.T, src string) {
	t.Helper()
	_, diags := hclsyntax.ParseConfig([]byte(src), TerraformFile, hcl.InitialPos)
	require.False(t, diags.HasErrors(), "invalid HCL: %s\n%s", diags.Error(), src)
}

func TestTerraform_Parses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"empty", testutil.EmptyConfig()},
		{"demo", testutil.DemoConfig()},
		{"full", testutil.FullConfig()},
		{"zero", config.Config{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			requireHCL(t, Terraform(tt.cfg))
		})
	}
}

func TestTerraform_MultilineRegionComment(t *testing.T) {
	t.Parallel()

	cfg := testutil.NewConfigBuilder().
		WithMultiRegion("westus\nbogus {").
		WithFrontDoor(config.FrontDoorStandard, false).
		Build()
	out := Terraform(cfg)
	requireHCL(t, out)
	assert.Contains(t, out, "# Secondary AKS cluster: westus bogus {\n")
	assert.NotRegexp(t, regexp.MustCompile(`(?m)^bogus \{`), out)
}

func TestTerraform_Demo(t *testing.T) {
	t.Parallel()

	out := Terraform(testutil.DemoConfig())

	assert.Contains(t, out, `resource "azurerm_resource_group" "aks_rg"`)
	assert.Contains(t, out, `resource "azurerm_kubernetes_cluster" "aks"`)
	assert.Regexp(t, `name\s+=\s+"demo"`, out)
	assert.Regexp(t, `name\s+=\s+"demo-rg"`, out)
	assert.Regexp(t, `kubernetes_version\s+=\s+"1\.29"`, out)
	assert.Contains(t, out, `resource "azurerm_kubernetes_cluster_node_pool" "user_1"`)
	assert.Regexp(t, `vm_size\s+=\s+"Standard_D4s_v3"`, out)
	assert.Regexp(t, `node_count\s+=\s+3`, out)
	assert.Contains(t, out, `resource "azurerm_log_analytics_workspace" "aks_law"`)
	assert.Contains(t, out, "azurerm_log_analytics_workspace.aks_law.id")

	assert.NotContains(t, out, "azurerm_cdn_frontdoor_profile")
	assert.NotContains(t, out, "azurerm_api_management")
	assert.NotContains(t, out, "azure_active_directory_role_based_access_control")
}

func TestTerraform_Full(t *testing.T) {
	t.Parallel()

	out := Terraform(testutil.FullConfig())

	assert.Contains(t, out, "# Azure AD RBAC")
	assert.Contains(t, out, "azure_active_directory_role_based_access_control {")
	assert.Regexp(t, `tenant_id\s+=\s+"11111111-1111-1111-1111-111111111111"`, out)
	assert.Regexp(t, `network_policy\s+=\s+"calico"`, out)
	assert.Contains(t, out, "service_mesh_profile {")
	assert.Contains(t, out, "ingress_application_gateway {")
	assert.Contains(t, out, "key_vault_secrets_provider {")
	assert.Contains(t, out, `resource "azurerm_kubernetes_cluster_extension" "dapr"`)
	assert.Regexp(t, `keda_enabled\s+=\s+true`, out)
	assert.Regexp(t, `vertical_pod_autoscaler_enabled\s+=\s+true`, out)

	// Autoscaling user pool
	assert.Regexp(t, `min_count\s+=\s+2`, out)
	assert.Regexp(t, `max_count\s+=\s+8`, out)

	assert.Contains(t, out, `resource "azurerm_role_assignment" "acr_pull"`)
	assert.Contains(t, out, "/resourceGroups/prod-rg/providers/Microsoft.ContainerRegistry/registries/prodacr")

	assert.Contains(t, out, `resource "azurerm_cdn_frontdoor_firewall_policy" "waf"`)
	assert.Regexp(t, `name\s+=\s+"prodafdwaf"`, out)
	assert.Contains(t, out, "Microsoft_DefaultRuleSet")
	assert.Contains(t, out, "Microsoft_BotManagerRuleSet")

	assert.Contains(t, out, `resource "azurerm_kubernetes_cluster" "aks_westeurope"`)
	assert.Contains(t, out, `resource "azurerm_resource_group" "aks_rg_southeastasia"`)
	assert.Regexp(t, `name\s+=\s+"prod-rg-westeurope"`, out)
	assert.Contains(t, out, `output "cluster_endpoint_southeastasia"`)

	assert.Regexp(t, `sku_name\s+=\s+"Standard_1"`, out)
	assert.Regexp(t, `publisher_email\s+=\s+"ops@example.com"`, out)
}

func TestTerraform_OriginOrder(t *testing.T) {
	t.Parallel()

	out := Terraform(testutil.FullConfig())

	assert.True(t, testutil.IndexOrder(out,
		`"aks-origin-eastus"`, `"aks-origin-westeurope"`, `"aks-origin-southeastasia"`))

	priorities := regexp.MustCompile(`priority\s+=\s+(\d+)`).FindAllStringSubmatch(out, -1)
	require.Len(t, priorities, 3)
	for i, m := range priorities {
		assert.Equal(t, string(rune('1'+i)), m[1])
	}
	weights := regexp.MustCompile(`weight\s+=\s+(\d+)`).FindAllStringSubmatch(out, -1)
	require.Len(t, weights, 3)
	assert.Equal(t, "1000", weights[0][1])
	assert.Equal(t, "500", weights[1][1])
	assert.Equal(t, "500", weights[2][1])
}

func TestTerraform_Deterministic(t *testing.T) {
	t.Parallel()

	cfg := testutil.FullConfig()
	assert.Equal(t, Terraform(cfg), Terraform(cfg))
}

func TestTerraformFragments(t *testing.T) {
	t.Parallel()

	t.Run("workspace skipped with existing id", func(t *testing.T) {
		t.Parallel()
		cfg := config.Default()
		cfg.Monitoring.LogAnalyticsWorkspaceID = "/subscriptions/s/workspaces/w"
		assert.Empty(t, tfWorkspace(cfg))
		assert.Contains(t, tfCluster(cfg), `"/subscriptions/s/workspaces/w"`)
	})

	t.Run("front door requires multi-region", func(t *testing.T) {
		t.Parallel()
		cfg := testutil.FullConfig()
		cfg.MultiRegion.Enabled = false
		assert.Empty(t, tfFrontDoor(cfg))
		assert.Empty(t, tfAPIM(cfg))
		assert.Empty(t, tfSecondaryClusters(cfg))
	})

	t.Run("standard front door has no managed rules", func(t *testing.T) {
		t.Parallel()
		cfg := testutil.FullConfig()
		cfg.MultiRegion.FrontDoorSKU = config.FrontDoorStandard
		out := tfFrontDoor(cfg)
		assert.Contains(t, out, "azurerm_cdn_frontdoor_firewall_policy")
		assert.NotContains(t, out, "managed_rule")
	})

	t.Run("health probe toggle", func(t *testing.T) {
		t.Parallel()
		cfg := testutil.FullConfig()
		assert.Contains(t, tfFrontDoor(cfg), "health_probe")
		cfg.MultiRegion.EnableHealthProbes = false
		assert.NotContains(t, tfFrontDoor(cfg), "health_probe")
	})

	t.Run("no user pools", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, tfUserPools(config.Default()))
	})

	t.Run("web app routing", func(t *testing.T) {
		t.Parallel()
		cfg := config.Default()
		cfg.Networking.Ingress = config.IngressWebAppRouting
		assert.Contains(t, tfCluster(cfg), "web_app_routing {")
	})
}
