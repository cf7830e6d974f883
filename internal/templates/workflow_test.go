package templates

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	testutil "github.com/imamik/akswiz/internal/testing"
)

func TestWorkflow_Structure(t *testing.T) {
	t.Parallel()

	out := Workflow(testutil.DemoConfig())
	require.True(t, strings.HasPrefix(out, generatedHeader))

	var wf workflow
	require.NoError(t, yaml.Unmarshal([]byte(out), &wf))

	assert.Equal(t, "Deploy AKS (demo)", wf.Name)
	assert.Equal(t, []string{"main"}, wf.On.Push.Branches)
	assert.Equal(t, []string{TerraformFile, BicepFile, ARMFile, ManifestFile, WorkflowFile}, wf.On.Push.Paths)
	assert.Equal(t, "write", wf.Permissions["id-token"])
	assert.Equal(t, "demo", wf.Env.ClusterName)
	assert.Equal(t, "demo-rg", wf.Env.ResourceGroup)
	assert.Equal(t, "eastus", wf.Env.Location)

	assert.Equal(t, "terraform", wf.Jobs.Manifests.Needs)
	require.NotNil(t, wf.Jobs.Manifests.Strategy)
	assert.Equal(t, []matrixTarget{{Region: "eastus", Cluster: "demo", ResourceGroup: "demo-rg"}},
		wf.Jobs.Manifests.Strategy.Matrix.Include)

	runs := make([]string, 0, len(wf.Jobs.Terraform.Steps))
	for _, s := range wf.Jobs.Terraform.Steps {
		if s.Run != "" {
			runs = append(runs, s.Run)
		}
	}
	assert.Equal(t, []string{
		"terraform init",
		"terraform fmt -check",
		"terraform validate",
		"terraform plan -out=tfplan",
		"terraform apply -auto-approve tfplan",
	}, runs)
}

func TestWorkflow_TriggersDecodeAsMap(t *testing.T) {
	t.Parallel()

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(Workflow(testutil.DemoConfig())), &doc))

	on, ok := doc["on"].(map[string]any)
	require.True(t, ok, "on must decode as a mapping")
	assert.Contains(t, on, "push")
	assert.Contains(t, on, "workflow_dispatch")
}

func TestWorkflow_MultiRegionMatrix(t *testing.T) {
	t.Parallel()

	var wf workflow
	require.NoError(t, yaml.Unmarshal([]byte(Workflow(testutil.FullConfig())), &wf))

	assert.Equal(t, []matrixTarget{
		{Region: "eastus", Cluster: "prod", ResourceGroup: "prod-rg"},
		{Region: "westeurope", Cluster: "prod-westeurope", ResourceGroup: "prod-rg-westeurope"},
		{Region: "southeastasia", Cluster: "prod-southeastasia", ResourceGroup: "prod-rg-southeastasia"},
	}, wf.Jobs.Manifests.Strategy.Matrix.Include)
}

func TestWorkflow_Deterministic(t *testing.T) {
	t.Parallel()

	cfg := testutil.FullConfig()
	assert.Equal(t, Workflow(cfg), Workflow(cfg))
}

type failingYAML struct{}

func (failingYAML) MarshalYAML() (any, error) {
	return nil, errors.New("boom\nagain")
}

func TestMarshalYAML_EncodeError(t *testing.T) {
	t.Parallel()

	_, err := encodeYAML(failingYAML{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	out := marshalYAML(failingYAML{})
	assert.True(t, strings.HasPrefix(out, "# failed to render workflow: "))
	assert.Equal(t, 1, strings.Count(out, "\n"))

	assert.Equal(t, "a: 1\n", marshalYAML(map[string]int{"a": 1}))
}
