package templates

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/akswiz/internal/config"
	testutil "github.com/imamik/akswiz/internal/testing"
)

type parsedARM struct {
	Schema    string `json:"$schema"`
	Resources []struct {
		Type       string         `json:"type"`
		APIVersion string         `json:"apiVersion"`
		Name       string         `json:"name"`
		Location   string         `json:"location"`
		Scope      string         `json:"scope"`
		DependsOn  []string       `json:"dependsOn"`
		Properties map[string]any `json:"properties"`
		Tags       map[string]string
	} `json:"resources"`
	Outputs map[string]struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"outputs"`
}

func parseARM(t *testing.T, cfg config.Config) parsedARM {
	t.Helper()
	var tpl parsedARM
	require.NoError(t, json.Unmarshal([]byte(ARM(cfg)), &tpl))
	return tpl
}

func TestARM_Demo(t *testing.T) {
	t.Parallel()

	tpl := parseARM(t, testutil.DemoConfig())
	assert.Equal(t, armSchema, tpl.Schema)
	require.Len(t, tpl.Resources, 2)

	ws, aks := tpl.Resources[0], tpl.Resources[1]
	assert.Equal(t, "Microsoft.OperationalInsights/workspaces", ws.Type)
	assert.Equal(t, "demo-law", ws.Name)

	assert.Equal(t, "Microsoft.ContainerService/managedClusters", aks.Type)
	assert.Equal(t, "2023-01-01", aks.APIVersion)
	assert.Equal(t, "demo", aks.Name)
	assert.Equal(t, "eastus", aks.Location)
	assert.Len(t, aks.DependsOn, 1)
	assert.Equal(t, "Production", aks.Tags["Environment"])

	assert.Equal(t, "1.29", aks.Properties["kubernetesVersion"])
	assert.Equal(t, "demo", aks.Properties["dnsPrefix"])

	pools, ok := aks.Properties["agentPoolProfiles"].([]any)
	require.True(t, ok)
	require.Len(t, pools, 2)
	user := pools[1].(map[string]any)
	assert.Equal(t, "pool1", user["name"])
	assert.Equal(t, "Standard_D4s_v3", user["vmSize"])
	assert.Equal(t, "User", user["mode"])
	assert.InDelta(t, 3, user["count"], 0)

	addons := aks.Properties["addonProfiles"].(map[string]any)
	assert.Contains(t, addons, "omsagent")

	assert.Contains(t, tpl.Outputs, "controlPlaneFQDN")
}

func TestARM_Full(t *testing.T) {
	t.Parallel()

	tpl := parseARM(t, testutil.FullConfig())
	require.Len(t, tpl.Resources, 5)

	types := make([]string, len(tpl.Resources))
	for i, r := range tpl.Resources {
		types[i] = r.Type
	}
	assert.Equal(t, []string{
		"Microsoft.OperationalInsights/workspaces",
		"Microsoft.ContainerService/managedClusters",
		"Microsoft.Authorization/roleAssignments",
		"Microsoft.ContainerService/managedClusters",
		"Microsoft.ContainerService/managedClusters",
	}, types)

	aks := tpl.Resources[1]
	aad := aks.Properties["aadProfile"].(map[string]any)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", aad["tenantID"])
	network := aks.Properties["networkProfile"].(map[string]any)
	assert.Equal(t, "calico", network["networkPolicy"])
	assert.Equal(t, "standard", network["loadBalancerSku"])

	role := tpl.Resources[2]
	_, err := uuid.Parse(role.Name)
	assert.NoError(t, err)
	assert.Equal(t, "Microsoft.ContainerRegistry/registries/prodacr", role.Scope)

	west := tpl.Resources[3]
	assert.Equal(t, "prod-westeurope", west.Name)
	assert.Equal(t, "westeurope", west.Location)
	assert.Equal(t, "westeurope", west.Tags["Region"])
	assert.NotContains(t, west.Properties["networkProfile"].(map[string]any), "networkPolicy")

	assert.Equal(t, "prod-southeastasia", tpl.Outputs["clusterName_southeastasia"].Value)
}

func TestARM_RoleAssignmentNameStable(t *testing.T) {
	t.Parallel()

	a := armACR(testutil.FullConfig())
	b := armACR(testutil.FullConfig())
	assert.Equal(t, a.Name, b.Name)

	other := testutil.FullConfig()
	other.Addons.ContainerRegistryName = "otheracr"
	assert.NotEqual(t, a.Name, armACR(other).Name)
}

func TestARM_Deterministic(t *testing.T) {
	t.Parallel()

	cfg := testutil.FullConfig()
	assert.Equal(t, ARM(cfg), ARM(cfg))
}

func TestARM_Total(t *testing.T) {
	t.Parallel()

	tpl := parseARM(t, config.Config{})
	require.Len(t, tpl.Resources, 1)
	assert.Equal(t, "aks", tpl.Resources[0].Name)
}

type failingJSON struct{}

func (failingJSON) MarshalJSON() ([]byte, error) {
	return nil, errors.New("boom")
}

func TestRenderJSON_EncodeError(t *testing.T) {
	t.Parallel()

	_, err := encodeJSON(failingJSON{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	var doc map[string]string
	require.NoError(t, json.Unmarshal([]byte(renderJSON(failingJSON{})), &doc))
	assert.Contains(t, doc["error"], "boom")

	assert.Equal(t, "{\n  \"a\": 1\n}\n", renderJSON(map[string]int{"a": 1}))
}
