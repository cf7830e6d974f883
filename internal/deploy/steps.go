// Package deploy simulates a cluster rollout as a fixed sequence of timed
// steps. Nothing is provisioned.
package deploy

import "time"

// Step is one stage of the simulated rollout.
type Step struct {
	ID       string
	Label    string
	Duration time.Duration
}

// Steps is the fixed rollout sequence.
var Steps = []Step{
	{ID: "validate", Label: "Validating Azure credentials...", Duration: 1200 * time.Millisecond},
	{ID: "rg", Label: "Creating Resource Group...", Duration: 1500 * time.Millisecond},
	{ID: "law", Label: "Provisioning Log Analytics Workspace...", Duration: 2000 * time.Millisecond},
	{ID: "aks_init", Label: "Initiating AKS cluster deployment...", Duration: 1000 * time.Millisecond},
	{ID: "control_plane", Label: "Provisioning control plane (this takes a few minutes)...", Duration: 4000 * time.Millisecond},
	{ID: "node_pool", Label: "Scaling node pool...", Duration: 3000 * time.Millisecond},
	{ID: "addons", Label: "Configuring add-ons...", Duration: 2000 * time.Millisecond},
	{ID: "network", Label: "Applying network policies...", Duration: 1000 * time.Millisecond},
	{ID: "rbac", Label: "Setting up RBAC and identities...", Duration: 1500 * time.Millisecond},
	{ID: "finalize", Label: "Finalizing deployment...", Duration: 1000 * time.Millisecond},
}

// TotalDuration is the unscaled length of the rollout.
func TotalDuration() time.Duration {
	var total time.Duration
	for _, s := range Steps {
		total += s.Duration
	}
	return total
}
