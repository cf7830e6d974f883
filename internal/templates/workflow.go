package templates

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/util/naming"
)

// WorkflowFile is the bundle file name of the CI workflow.
const WorkflowFile = ".github/workflows/deploy-aks.yml"

const generatedHeader = "# Generated by AKS Configuration Wizard\n"

type workflow struct {
	Name        string            `yaml:"name"`
	On          workflowTriggers  `yaml:"on"`
	Permissions map[string]string `yaml:"permissions"`
	Env         workflowEnv       `yaml:"env"`
	Jobs        workflowJobs      `yaml:"jobs"`
}

type workflowTriggers struct {
	Push             pushTrigger `yaml:"push"`
	WorkflowDispatch struct{}    `yaml:"workflow_dispatch"`
}

type pushTrigger struct {
	Branches []string `yaml:"branches"`
	Paths    []string `yaml:"paths"`
}

type workflowEnv struct {
	SubscriptionID string `yaml:"ARM_SUBSCRIPTION_ID"`
	ClusterName    string `yaml:"CLUSTER_NAME"`
	ResourceGroup  string `yaml:"RESOURCE_GROUP"`
	Location       string `yaml:"LOCATION"`
}

type workflowJobs struct {
	Terraform job `yaml:"terraform"`
	Bicep     job `yaml:"bicep"`
	Manifests job `yaml:"manifests"`
}

type job struct {
	Name     string            `yaml:"name"`
	RunsOn   string            `yaml:"runs-on"`
	Needs    string            `yaml:"needs,omitempty"`
	Strategy *strategy         `yaml:"strategy,omitempty"`
	Env      map[string]string `yaml:"env,omitempty"`
	Steps    []step            `yaml:"steps"`
}

type strategy struct {
	FailFast bool   `yaml:"fail-fast"`
	Matrix   matrix `yaml:"matrix"`
}

type matrix struct {
	Include []matrixTarget `yaml:"include"`
}

// matrixTarget is one cluster the manifests are applied to.
type matrixTarget struct {
	Region        string `yaml:"region"`
	Cluster       string `yaml:"cluster"`
	ResourceGroup string `yaml:"resourceGroup"`
}

type step struct {
	Name string            `yaml:"name"`
	If   string            `yaml:"if,omitempty"`
	Uses string            `yaml:"uses,omitempty"`
	With map[string]string `yaml:"with,omitempty"`
	Run  string            `yaml:"run,omitempty"`
}

var (
	checkoutStep = step{Name: "Checkout", Uses: "actions/checkout@v4"}
	loginStep    = step{
		Name: "Azure login (OIDC)",
		Uses: "azure/login@v2",
		With: map[string]string{
			"client-id":       "${{ secrets.AZURE_CLIENT_ID }}",
			"tenant-id":       "${{ secrets.AZURE_TENANT_ID }}",
			"subscription-id": "${{ secrets.AZURE_SUBSCRIPTION_ID }}",
		},
	}
)

// Workflow renders the GitHub Actions workflow that plans and applies the
// generated templates.
func Workflow(cfg config.Config) string {
	wf := workflow{
		Name: "Deploy AKS (" + naming.ClusterOrDefault(cfg) + ")",
		On: workflowTriggers{
			Push: pushTrigger{
				Branches: []string{"main"},
				Paths:    []string{TerraformFile, BicepFile, ARMFile, ManifestFile, WorkflowFile},
			},
		},
		Permissions: map[string]string{
			"id-token": "write",
			"contents": "read",
		},
		Env: workflowEnv{
			SubscriptionID: cfg.SubscriptionID,
			ClusterName:    naming.ClusterOrDefault(cfg),
			ResourceGroup:  naming.ResourceGroup(cfg),
			Location:       naming.Region(cfg),
		},
		Jobs: workflowJobs{
			Terraform: terraformJob(),
			Bicep:     bicepJob(),
			Manifests: manifestsJob(cfg),
		},
	}
	return generatedHeader + marshalYAML(wf)
}

func terraformJob() job {
	return job{
		Name:   "Terraform",
		RunsOn: "ubuntu-latest",
		Env: map[string]string{
			"ARM_USE_OIDC":  "true",
			"ARM_CLIENT_ID": "${{ secrets.AZURE_CLIENT_ID }}",
			"ARM_TENANT_ID": "${{ secrets.AZURE_TENANT_ID }}",
		},
		Steps: []step{
			checkoutStep,
			loginStep,
			{Name: "Setup Terraform", Uses: "hashicorp/setup-terraform@v3"},
			{Name: "Terraform init", Run: "terraform init"},
			{Name: "Terraform fmt", Run: "terraform fmt -check"},
			{Name: "Terraform validate", Run: "terraform validate"},
			{Name: "Terraform plan", Run: "terraform plan -out=tfplan"},
			{
				Name: "Terraform apply",
				If:   "github.ref == 'refs/heads/main' && github.event_name == 'push'",
				Run:  "terraform apply -auto-approve tfplan",
			},
		},
	}
}

func bicepJob() job {
	return job{
		Name:   "Bicep what-if",
		RunsOn: "ubuntu-latest",
		Steps: []step{
			checkoutStep,
			loginStep,
			{Name: "Bicep build", Run: "az bicep build --file " + BicepFile},
			{
				Name: "What-if",
				Run:  "az deployment group what-if --resource-group \"$RESOURCE_GROUP\" --template-file " + BicepFile,
			},
		},
	}
}

func manifestsJob(cfg config.Config) job {
	return job{
		Name:   "Apply manifests (${{ matrix.region }})",
		RunsOn: "ubuntu-latest",
		Needs:  "terraform",
		Strategy: &strategy{
			FailFast: false,
			Matrix:   matrix{Include: matrixTargets(cfg)},
		},
		Steps: []step{
			checkoutStep,
			loginStep,
			{
				Name: "Set AKS context",
				Uses: "azure/aks-set-context@v4",
				With: map[string]string{
					"resource-group": "${{ matrix.resourceGroup }}",
					"cluster-name":   "${{ matrix.cluster }}",
				},
			},
			{Name: "Apply manifests", Run: "kubectl apply -f " + ManifestFile},
		},
	}
}

// matrixTargets lists the primary cluster then each secondary in order.
func matrixTargets(cfg config.Config) []matrixTarget {
	targets := []matrixTarget{{
		Region:        naming.Region(cfg),
		Cluster:       naming.ClusterOrDefault(cfg),
		ResourceGroup: naming.ResourceGroup(cfg),
	}}
	for _, region := range secondaryRegions(cfg) {
		targets = append(targets, matrixTarget{
			Region:        region,
			Cluster:       naming.SecondaryCluster(cfg, region),
			ResourceGroup: naming.SecondaryResourceGroup(cfg, region),
		})
	}
	return targets
}

// marshalYAML returns v as YAML, or a single comment line naming the
// encoding error.
func marshalYAML(v any) string {
	out, err := encodeYAML(v)
	if err != nil {
		return "# failed to render workflow: " + commentText(err.Error()) + "\n"
	}
	return out
}

func encodeYAML(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("closing yaml encoder: %w", err)
	}
	return buf.String(), nil
}
