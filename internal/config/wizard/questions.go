package wizard

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/pricing"
	"github.com/imamik/akswiz/internal/readiness"
	"github.com/imamik/akswiz/internal/session"
)

// Review destinations other than a step name.
const (
	destinationSave   = "save"
	destinationCancel = "cancel"
)

// groupsFor returns the form groups shown for step. A nil result means the
// step has nothing to ask during init.
func groupsFor(step session.Step, a *Answers, cfg config.Config) []*huh.Group {
	switch step {
	case session.StepWelcome:
		return welcomeGroups()
	case session.StepAssessment:
		return assessmentGroups(a)
	case session.StepBasics:
		return basicsGroups(a)
	case session.StepNodes:
		return nodeGroups(a, cfg)
	case session.StepNetworking:
		return networkingGroups(a)
	case session.StepSecurity:
		return securityGroups(a)
	case session.StepMonitoring:
		return monitoringGroups(a)
	case session.StepWorkloads:
		return workloadGroups(a)
	case session.StepPods:
		return podGroups(a)
	case session.StepStorage:
		return storageGroups(a)
	case session.StepAddons:
		return addonGroups(a)
	case session.StepMultiRegion:
		return multiRegionGroups(a)
	case session.StepReview:
		return reviewGroups(a, cfg)
	}
	return nil
}

func welcomeGroups() []*huh.Group {
	return []*huh.Group{
		huh.NewGroup(
			huh.NewNote().
				Title("AKS Configuration Wizard").
				Description("Answer a few questions to build a cluster configuration.\n" +
					"Templates are written later with `akswiz generate`."),
		),
	}
}

func assessmentGroups(a *Answers) []*huh.Group {
	fields := make([]huh.Field, 0, len(readiness.Questions))
	for _, q := range readiness.Questions {
		fields = append(fields, huh.NewSelect[readiness.Answer]().
			Title(q.Text).
			Description(q.Hint).
			Options(AnswerOptions...).
			Value(a.Readiness[q.ID]))
	}
	return []*huh.Group{huh.NewGroup(fields...).Title("Readiness Assessment")}
}

func basicsGroups(a *Answers) []*huh.Group {
	return []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Subscription ID").
				Value(&a.SubscriptionID).
				Validate(required),
			huh.NewInput().
				Title("Resource Group").
				Placeholder("rg-aks-prod").
				Value(&a.ResourceGroupName).
				Validate(required),
			huh.NewInput().
				Title("Cluster Name").
				Description("1-63 letters, digits or hyphens").
				Placeholder("my-aks-cluster").
				Value(&a.ClusterName).
				Validate(validateClusterName),
			huh.NewSelect[string]().
				Title("Region").
				Options(RegionOptions()...).
				Value(&a.Region),
			huh.NewInput().
				Title("Kubernetes Version").
				Description("A trailing .x follows the latest patch").
				Value(&a.KubernetesVersion).
				Validate(validateVersion),
			huh.NewSelect[config.Mode]().
				Title("Mode").
				Options(EnumOptions(config.Mode("").Values())...).
				Value(&a.Mode),
		).Title("Basics"),
	}
}

func nodeGroups(a *Answers, cfg config.Config) []*huh.Group {
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("System Pool VM Size").
				Options(VMSizeOptions(a.SystemVMSize)...).
				Value(&a.SystemVMSize),
			huh.NewConfirm().
				Title("Enable Autoscaling?").
				Value(&a.SystemAutoScaling),
		).Title("System Node Pool"),
		huh.NewGroup(
			huh.NewInput().
				Title("Node Count").
				Value(&a.SystemNodeCount).
				Validate(intBetween(config.MinFixedNodes, config.MaxFixedNodes)),
		).WithHideFunc(func() bool { return a.SystemAutoScaling }),
		huh.NewGroup(
			huh.NewInput().
				Title("Min Nodes").
				Value(&a.SystemMinNodes).
				Validate(intBetween(config.MinAutoScaleNode, config.MaxAutoScaleNode)),
			huh.NewInput().
				Title("Max Nodes").
				Value(&a.SystemMaxNodes).
				Validate(intBetween(config.MinAutoScaleNode, config.MaxAutoScaleNode)),
		).WithHideFunc(func() bool { return !a.SystemAutoScaling }),
	}

	if len(cfg.UserNodePools) > 0 {
		opts := make([]huh.Option[int], len(cfg.UserNodePools))
		for i, p := range cfg.UserNodePools {
			opts[i] = huh.NewOption(fmt.Sprintf("%s (%s x%d)", p.Name, p.VMSize, p.EffectiveNodeCount()), i)
		}
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Remove User Pools").
				Description("Select pools to remove").
				Options(opts...).
				Value(&a.RemoveUserPools),
		).Title("User Node Pools"))
	}

	groups = append(groups,
		huh.NewGroup(
			huh.NewConfirm().
				Title("Add a User Node Pool?").
				Description("User pools run application workloads").
				Value(&a.AddUserPool),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Pool Name").
				Value(&a.UserPoolName).
				Validate(required),
			huh.NewSelect[string]().
				Title("VM Size").
				Options(VMSizeOptions(a.UserPoolVMSize)...).
				Value(&a.UserPoolVMSize),
			huh.NewInput().
				Title("Node Count").
				Value(&a.UserPoolNodeCount).
				Validate(intBetween(config.MinFixedNodes, config.MaxFixedNodes)),
		).Title("New User Pool").WithHideFunc(func() bool { return !a.AddUserPool }),
	)
	return groups
}

func networkingGroups(a *Answers) []*huh.Group {
	return []*huh.Group{
		huh.NewGroup(
			huh.NewSelect[config.NetworkPlugin]().
				Title("Network Plugin").
				Options(EnumOptions(config.NetworkPlugin("").Values())...).
				Value(&a.NetworkPlugin),
			huh.NewInput().
				Title("DNS Prefix").
				Description("Leave empty to derive it from the cluster name").
				Value(&a.DNSPrefix),
			huh.NewInput().
				Title("Service CIDR").
				Value(&a.ServiceCIDR),
			huh.NewInput().
				Title("Docker Bridge CIDR").
				Value(&a.DockerBridgeCIDR),
			huh.NewSelect[config.LoadBalancerSKU]().
				Title("Load Balancer SKU").
				Options(EnumOptions(config.LoadBalancerSKU("").Values())...).
				Value(&a.LoadBalancerSKU),
			huh.NewSelect[config.Ingress]().
				Title("Ingress Controller").
				Options(EnumOptions(config.Ingress("").Values())...).
				Value(&a.Ingress),
			huh.NewConfirm().
				Title("Enable Service Mesh?").
				Value(&a.EnableServiceMesh),
		).Title("Networking"),
	}
}

func securityGroups(a *Answers) []*huh.Group {
	return []*huh.Group{
		huh.NewGroup(
			huh.NewConfirm().Title("Enable Kubernetes RBAC?").Value(&a.EnableRBAC),
			huh.NewConfirm().Title("Enable Azure AD Integration?").Value(&a.EnableAzureAD),
		).Title("Security"),
		huh.NewGroup(
			huh.NewInput().
				Title("Azure AD Tenant ID").
				Value(&a.AzureADTenantID).
				Validate(required),
		).WithHideFunc(func() bool { return !a.EnableAzureAD }),
		huh.NewGroup(
			huh.NewConfirm().Title("Enable Workload Identity?").Value(&a.EnablePodIdentity),
			huh.NewSelect[config.NetworkPolicy]().
				Title("Network Policy").
				Options(EnumOptions(config.NetworkPolicy("").Values())...).
				Value(&a.NetworkPolicy),
			huh.NewSelect[config.AutoUpgradeChannel]().
				Title("Auto-upgrade Channel").
				Options(EnumOptions(config.AutoUpgradeChannel("").Values())...).
				Value(&a.AutoUpgradeChannel),
			huh.NewConfirm().Title("Enable Image Scanning (Defender)?").Value(&a.EnableImageScanning),
			huh.NewSelect[config.PodSecurityLevel]().
				Title("Pod Security Level").
				Options(EnumOptions(config.PodSecurityLevel("").Values())...).
				Value(&a.PodSecurityLevel),
		),
	}
}

func monitoringGroups(a *Answers) []*huh.Group {
	return []*huh.Group{
		huh.NewGroup(
			huh.NewConfirm().Title("Enable Container Insights?").Value(&a.EnableContainerInsights),
			huh.NewConfirm().Title("Enable Managed Prometheus?").Value(&a.EnablePrometheus),
			huh.NewConfirm().Title("Enable Azure Monitor Metrics?").Value(&a.EnableAzureMonitor),
			huh.NewConfirm().Title("Enable Alerts?").Value(&a.EnableAlerts),
			huh.NewConfirm().Title("Enable Diagnostic Settings?").Value(&a.EnableDiagnosticSettings),
		).Title("Monitoring"),
		huh.NewGroup(
			huh.NewInput().
				Title("Log Analytics Workspace ID").
				Description("Leave empty to create a workspace").
				Value(&a.LogAnalyticsWorkspaceID),
		).WithHideFunc(func() bool { return !a.EnableContainerInsights }),
	}
}

func workloadGroups(a *Answers) []*huh.Group {
	return []*huh.Group{
		huh.NewGroup(
			huh.NewSelect[config.WorkloadType]().
				Title("Workload Type").
				Options(EnumOptions(config.WorkloadType("").Values())...).
				Value(&a.WorkloadType),
			huh.NewSelect[config.TrafficLevel]().
				Title("Traffic Level").
				Options(EnumOptions(config.TrafficLevel("").Values())...).
				Value(&a.TrafficLevel),
			huh.NewConfirm().Title("Enable Horizontal Pod Autoscaler?").Value(&a.EnableHPA),
		).Title("Workloads"),
		huh.NewGroup(
			huh.NewInput().
				Title("Target CPU Utilization (%)").
				Value(&a.TargetCPUUtilization).
				Validate(validateUtilization),
			huh.NewInput().
				Title("Target Memory Utilization (%)").
				Value(&a.TargetMemoryUtilization).
				Validate(validateUtilization),
		).WithHideFunc(func() bool { return !a.EnableHPA }),
		huh.NewGroup(
			huh.NewConfirm().Title("Enable Vertical Pod Autoscaler?").Value(&a.EnableVPA),
			huh.NewConfirm().Title("Enable Monitoring Integration?").Value(&a.EnableMonitoringIntegration),
		),
	}
}

func podGroups(a *Answers) []*huh.Group {
	return []*huh.Group{
		huh.NewGroup(
			huh.NewInput().Title("CPU Request").Value(&a.CPURequest).Validate(validateQuantity),
			huh.NewInput().Title("CPU Limit").Value(&a.CPULimit).Validate(validateQuantity),
			huh.NewInput().Title("Memory Request").Value(&a.MemoryRequest).Validate(validateQuantity),
			huh.NewInput().Title("Memory Limit").Value(&a.MemoryLimit).Validate(validateQuantity),
		).Title("Pod Resources"),
		huh.NewGroup(
			huh.NewSelect[config.AffinityMode]().
				Title("Node Affinity").
				Options(EnumOptions(config.AffinityMode("").Values())...).
				Value(&a.NodeAffinity),
		).Title("Scheduling"),
		huh.NewGroup(
			huh.NewInput().Title("Node Selector Key").Placeholder("agentpool").Value(&a.NodeSelectorKey),
			huh.NewInput().Title("Node Selector Value").Placeholder("userpool1").Value(&a.NodeSelectorValue),
		).WithHideFunc(func() bool { return a.NodeAffinity == config.AffinityNone }),
		huh.NewGroup(
			huh.NewSelect[config.AffinityMode]().
				Title("Pod Anti-affinity").
				Options(EnumOptions(config.AffinityMode("").Values())...).
				Value(&a.PodAntiAffinity),
		),
		huh.NewGroup(
			huh.NewInput().Title("Topology Key").Value(&a.TopologyKey),
		).WithHideFunc(func() bool { return a.PodAntiAffinity == config.AffinityNone }),
		huh.NewGroup(
			huh.NewConfirm().Title("Use Host Network?").Value(&a.HostNetwork),
			huh.NewSelect[config.DNSPolicy]().
				Title("DNS Policy").
				Options(EnumOptions(config.DNSPolicy("").Values())...).
				Value(&a.DNSPolicy),
		),
	}
}

func storageGroups(a *Answers) []*huh.Group {
	return []*huh.Group{
		huh.NewGroup(
			huh.NewConfirm().Title("Enable Persistent Volumes?").Value(&a.EnablePersistentVolumes),
			huh.NewSelect[config.StorageClass]().
				Title("Storage Class").
				Options(EnumOptions(config.StorageClass("").Values())...).
				Value(&a.StorageClass),
			huh.NewConfirm().Title("Enable Backup?").Value(&a.EnableBackup),
		).Title("Storage"),
	}
}

func addonGroups(a *Answers) []*huh.Group {
	return []*huh.Group{
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Add-ons").
				Description("Space to toggle, enter to confirm").
				Options(AddonOptions()...).
				Value(&a.EnabledAddons),
		).Title("Add-ons"),
		huh.NewGroup(
			huh.NewInput().
				Title("Container Registry Name").
				Value(&a.ContainerRegistryName).
				Validate(required),
		).WithHideFunc(func() bool { return !slices.Contains(a.EnabledAddons, AddonACR) }),
	}
}

func multiRegionGroups(a *Answers) []*huh.Group {
	return []*huh.Group{
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable Multi-Region?").
				Description("Replicate the cluster into secondary regions").
				Value(&a.MultiRegionEnabled),
		).Title("Multi-Region"),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Secondary Regions").
				Options(SecondaryRegionOptions(a.Region)...).
				Value(&a.SecondaryRegions),
			huh.NewConfirm().Title("Enable Front Door?").Value(&a.EnableFrontDoor),
			huh.NewConfirm().Title("Enable API Management?").Value(&a.EnableAPIM),
		).WithHideFunc(func() bool { return !a.MultiRegionEnabled }),
		huh.NewGroup(
			huh.NewSelect[config.FrontDoorSKU]().
				Title("Front Door SKU").
				Options(EnumOptions(config.FrontDoorSKU("").Values())...).
				Value(&a.FrontDoorSKU),
			huh.NewConfirm().Title("Enable WAF?").Value(&a.EnableWAF),
			huh.NewConfirm().Title("Enable Health Probes?").Value(&a.EnableHealthProbes),
		).Title("Front Door").WithHideFunc(func() bool { return !a.MultiRegionEnabled || !a.EnableFrontDoor }),
		huh.NewGroup(
			huh.NewSelect[config.APIMSKU]().
				Title("API Management SKU").
				Options(EnumOptions(config.APIMSKU("").Values())...).
				Value(&a.APIMSKU),
			huh.NewInput().
				Title("Publisher Email").
				Value(&a.APIMPublisherEmail),
		).Title("API Management").WithHideFunc(func() bool { return !a.MultiRegionEnabled || !a.EnableAPIM }),
	}
}

func reviewGroups(a *Answers, cfg config.Config) []*huh.Group {
	a.Destination = destinationSave
	return []*huh.Group{
		huh.NewGroup(
			huh.NewNote().
				Title("Review").
				Description(ReviewSummary(cfg)),
			huh.NewSelect[string]().
				Title("Next").
				Options(reviewOptions()...).
				Value(&a.Destination),
		),
	}
}

// reviewOptions offers saving, jumping back to an editable step, or
// leaving without saving.
func reviewOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("Save configuration", destinationSave)}
	for _, st := range session.Steps {
		if st == session.StepReview {
			break
		}
		if st == session.StepWelcome {
			continue
		}
		opts = append(opts, huh.NewOption("Edit "+st.Title(), string(st)))
	}
	return append(opts, huh.NewOption("Quit without saving", destinationCancel))
}

// ReviewSummary renders the validation results and the cost estimate.
func ReviewSummary(cfg config.Config) string {
	var sb strings.Builder
	results := config.Checks(cfg)
	for _, r := range results {
		mark := "✓"
		if !r.OK {
			mark = "✗"
			if r.Severity == config.SeverityAdvisory {
				mark = "!"
			}
		}
		fmt.Fprintf(&sb, "%s %s", mark, r.Label)
		if !r.OK {
			sb.WriteString(": " + r.Message)
		}
		sb.WriteString("\n")
	}
	est := pricing.NewCalculator().Calculate(cfg)
	fmt.Fprintf(&sb, "\nEstimated cost: $%d/month ($%d/year)", est.Total, est.AnnualCost())
	if !config.RequiredPassed(results) {
		sb.WriteString("\nRequired checks are failing; `akswiz generate` will refuse this configuration.")
	}
	return sb.String()
}

// Validators

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errRequired
	}
	return nil
}

func validateClusterName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errRequired
	}
	if !config.ValidClusterName(name) {
		return errClusterNameInvalid
	}
	return nil
}

func validateVersion(v string) error {
	if !config.ValidKubernetesVersion(v) {
		return errVersionInvalid
	}
	return nil
}

func validateQuantity(s string) error {
	if _, err := resource.ParseQuantity(strings.TrimSpace(s)); err != nil {
		return errQuantityInvalid
	}
	return nil
}

func validateUtilization(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errNotANumber
	}
	if n < 30 || n > 90 || n%5 != 0 {
		return errUtilizationInvalid
	}
	return nil
}

func intBetween(lo, hi int) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return errNotANumber
		}
		if n < lo || n > hi {
			return fmt.Errorf("%w: %d-%d", errOutOfRange, lo, hi)
		}
		return nil
	}
}
