package wizard

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/readiness"
	"github.com/imamik/akswiz/internal/session"
	"github.com/imamik/akswiz/internal/util/ptr"
)

// Answers holds the values bound to the wizard forms. Numeric fields are
// strings because huh inputs edit text; they are parsed when a step's
// patch is built.
type Answers struct {
	// Readiness
	Readiness map[string]*readiness.Answer

	// Basics
	SubscriptionID    string
	ResourceGroupName string
	ClusterName       string
	Region            string
	KubernetesVersion string
	Mode              config.Mode

	// Node pools
	SystemVMSize      string
	SystemNodeCount   string
	SystemAutoScaling bool
	SystemMinNodes    string
	SystemMaxNodes    string
	AddUserPool       bool
	UserPoolName      string
	UserPoolVMSize    string
	UserPoolNodeCount string
	RemoveUserPools   []int

	// Networking
	NetworkPlugin     config.NetworkPlugin
	DNSPrefix         string
	ServiceCIDR       string
	DockerBridgeCIDR  string
	LoadBalancerSKU   config.LoadBalancerSKU
	Ingress           config.Ingress
	EnableServiceMesh bool

	// Security
	EnableRBAC          bool
	EnableAzureAD       bool
	AzureADTenantID     string
	EnablePodIdentity   bool
	NetworkPolicy       config.NetworkPolicy
	AutoUpgradeChannel  config.AutoUpgradeChannel
	EnableImageScanning bool
	PodSecurityLevel    config.PodSecurityLevel

	// Monitoring
	EnableContainerInsights  bool
	EnablePrometheus         bool
	EnableAzureMonitor       bool
	EnableAlerts             bool
	EnableDiagnosticSettings bool
	LogAnalyticsWorkspaceID  string

	// Workloads
	WorkloadType                config.WorkloadType
	TrafficLevel                config.TrafficLevel
	EnableHPA                   bool
	TargetCPUUtilization        string
	TargetMemoryUtilization     string
	EnableVPA                   bool
	EnableMonitoringIntegration bool

	// Pods
	CPURequest        string
	CPULimit          string
	MemoryRequest     string
	MemoryLimit       string
	NodeAffinity      config.AffinityMode
	NodeSelectorKey   string
	NodeSelectorValue string
	PodAntiAffinity   config.AffinityMode
	TopologyKey       string
	HostNetwork       bool
	DNSPolicy         config.DNSPolicy

	// Storage
	EnablePersistentVolumes bool
	StorageClass            config.StorageClass
	EnableBackup            bool

	// Add-ons
	EnabledAddons         []string
	ContainerRegistryName string

	// Multi-region
	MultiRegionEnabled bool
	SecondaryRegions   []string
	EnableFrontDoor    bool
	FrontDoorSKU       config.FrontDoorSKU
	EnableWAF          bool
	EnableHealthProbes bool
	EnableAPIM         bool
	APIMSKU            config.APIMSKU
	APIMPublisherEmail string

	// Review
	Destination string
}

// FromConfig seeds the answers with the values of cfg.
func FromConfig(cfg config.Config) *Answers {
	sys := cfg.SystemNodePool
	a := &Answers{
		Readiness: make(map[string]*readiness.Answer, len(readiness.Questions)),

		SubscriptionID:    cfg.SubscriptionID,
		ResourceGroupName: cfg.ResourceGroupName,
		ClusterName:       cfg.ClusterName,
		Region:            cfg.Region,
		KubernetesVersion: cfg.KubernetesVersion,
		Mode:              cfg.Mode,

		SystemVMSize:      sys.VMSize,
		SystemNodeCount:   strconv.Itoa(sys.NodeCount),
		SystemAutoScaling: sys.EnableAutoScaling,
		SystemMinNodes:    strconv.Itoa(sys.MinNodes),
		SystemMaxNodes:    strconv.Itoa(sys.MaxNodes),

		NetworkPlugin:     cfg.Networking.NetworkPlugin,
		DNSPrefix:         cfg.Networking.DNSPrefix,
		ServiceCIDR:       cfg.Networking.ServiceCIDR,
		DockerBridgeCIDR:  cfg.Networking.DockerBridgeCIDR,
		LoadBalancerSKU:   cfg.Networking.LoadBalancerSKU,
		Ingress:           cfg.Networking.Ingress,
		EnableServiceMesh: cfg.Networking.EnableServiceMesh,

		EnableRBAC:          cfg.Security.EnableRBAC,
		EnableAzureAD:       cfg.Security.EnableAzureAD,
		AzureADTenantID:     cfg.Security.AzureADTenantID,
		EnablePodIdentity:   cfg.Security.EnablePodIdentity,
		NetworkPolicy:       cfg.Security.NetworkPolicy,
		AutoUpgradeChannel:  cfg.Security.AutoUpgradeChannel,
		EnableImageScanning: cfg.Security.EnableImageScanning,
		PodSecurityLevel:    cfg.Security.PodSecurityLevel,

		EnableContainerInsights:  cfg.Monitoring.EnableContainerInsights,
		EnablePrometheus:         cfg.Monitoring.EnablePrometheus,
		EnableAzureMonitor:       cfg.Monitoring.EnableAzureMonitor,
		EnableAlerts:             cfg.Monitoring.EnableAlerts,
		EnableDiagnosticSettings: cfg.Monitoring.EnableDiagnosticSettings,
		LogAnalyticsWorkspaceID:  cfg.Monitoring.LogAnalyticsWorkspaceID,

		WorkloadType:                cfg.Workload.WorkloadType,
		TrafficLevel:                cfg.Workload.TrafficLevel,
		EnableHPA:                   cfg.Workload.EnableHPA,
		TargetCPUUtilization:        strconv.Itoa(cfg.Workload.TargetCPUUtilization),
		TargetMemoryUtilization:     strconv.Itoa(cfg.Workload.TargetMemoryUtilization),
		EnableVPA:                   cfg.Workload.EnableVPA,
		EnableMonitoringIntegration: cfg.Workload.EnableMonitoringIntegration,

		CPURequest:        cfg.Pod.CPURequest,
		CPULimit:          cfg.Pod.CPULimit,
		MemoryRequest:     cfg.Pod.MemoryRequest,
		MemoryLimit:       cfg.Pod.MemoryLimit,
		NodeAffinity:      cfg.Pod.NodeAffinity,
		NodeSelectorKey:   cfg.Pod.NodeSelectorKey,
		NodeSelectorValue: cfg.Pod.NodeSelectorValue,
		PodAntiAffinity:   cfg.Pod.PodAntiAffinity,
		TopologyKey:       cfg.Pod.TopologyKey,
		HostNetwork:       cfg.Pod.HostNetwork,
		DNSPolicy:         cfg.Pod.DNSPolicy,

		EnablePersistentVolumes: cfg.Storage.EnablePersistentVolumes,
		StorageClass:            cfg.Storage.StorageClass,
		EnableBackup:            cfg.Storage.EnableBackup,

		EnabledAddons:         addonKeys(cfg.Addons),
		ContainerRegistryName: cfg.Addons.ContainerRegistryName,

		MultiRegionEnabled: cfg.MultiRegion.Enabled,
		SecondaryRegions:   slices.Clone(cfg.MultiRegion.SecondaryRegions),
		EnableFrontDoor:    cfg.MultiRegion.EnableFrontDoor,
		FrontDoorSKU:       cfg.MultiRegion.FrontDoorSKU,
		EnableWAF:          cfg.MultiRegion.EnableWAF,
		EnableHealthProbes: cfg.MultiRegion.EnableHealthProbes,
		EnableAPIM:         cfg.MultiRegion.EnableAPIM,
		APIMSKU:            cfg.MultiRegion.APIMSKU,
		APIMPublisherEmail: cfg.MultiRegion.APIMPublisherEmail,
	}
	for _, q := range readiness.Questions {
		ans := readiness.Unanswered
		a.Readiness[q.ID] = &ans
	}
	a.resetUserPool(len(cfg.UserNodePools))
	return a
}

// resetUserPool prepares the "add user pool" fields for the next pool.
func (a *Answers) resetUserPool(existing int) {
	next := config.NewUserPool(existing)
	a.AddUserPool = false
	a.UserPoolName = next.Name
	a.UserPoolVMSize = next.VMSize
	a.UserPoolNodeCount = strconv.Itoa(next.NodeCount)
	a.RemoveUserPools = nil
}

// ReadinessAnswers returns the questionnaire answers collected so far.
func (a *Answers) ReadinessAnswers() readiness.Answers {
	out := make(readiness.Answers, len(a.Readiness))
	for id, ans := range a.Readiness {
		if ans != nil {
			out[id] = *ans
		}
	}
	return out
}

func addonKeys(ad config.Addons) []string {
	var keys []string
	for _, k := range []struct {
		key string
		on  bool
	}{
		{AddonHTTPRouting, ad.EnableHTTPApplicationRouting},
		{AddonAzurePolicy, ad.EnableAzurePolicy},
		{AddonKeyVault, ad.EnableKeyVaultProvider},
		{AddonKEDA, ad.EnableKEDA},
		{AddonDapr, ad.EnableDapr},
		{AddonACR, ad.EnableACRIntegration},
	} {
		if k.on {
			keys = append(keys, k.key)
		}
	}
	return keys
}

// Patch builds the partial update produced by one step. Steps without
// editable fields return an empty patch.
func (a *Answers) Patch(step session.Step) (config.Patch, error) {
	switch step {
	case session.StepAssessment:
		if mode, ok := readiness.Recommend(a.ReadinessAnswers()); ok {
			return config.Patch{Mode: &mode}, nil
		}
		return config.Patch{}, nil

	case session.StepBasics:
		return config.Patch{
			SubscriptionID:    ptr.To(strings.TrimSpace(a.SubscriptionID)),
			ResourceGroupName: ptr.To(strings.TrimSpace(a.ResourceGroupName)),
			ClusterName:       ptr.To(strings.TrimSpace(a.ClusterName)),
			Region:            ptr.To(a.Region),
			KubernetesVersion: ptr.To(strings.TrimSpace(a.KubernetesVersion)),
			Mode:              ptr.To(a.Mode),
		}, nil

	case session.StepNodes:
		count, err := parseInt("system node count", a.SystemNodeCount)
		if err != nil {
			return config.Patch{}, err
		}
		minNodes, err := parseInt("system min nodes", a.SystemMinNodes)
		if err != nil {
			return config.Patch{}, err
		}
		maxNodes, err := parseInt("system max nodes", a.SystemMaxNodes)
		if err != nil {
			return config.Patch{}, err
		}
		return config.Patch{SystemNodePool: &config.NodePoolPatch{
			VMSize:            ptr.To(a.SystemVMSize),
			NodeCount:         &count,
			EnableAutoScaling: ptr.To(a.SystemAutoScaling),
			MinNodes:          &minNodes,
			MaxNodes:          &maxNodes,
		}}, nil

	case session.StepNetworking:
		return config.Patch{Networking: &config.NetworkingPatch{
			NetworkPlugin:     ptr.To(a.NetworkPlugin),
			DNSPrefix:         ptr.To(strings.TrimSpace(a.DNSPrefix)),
			ServiceCIDR:       ptr.To(strings.TrimSpace(a.ServiceCIDR)),
			DockerBridgeCIDR:  ptr.To(strings.TrimSpace(a.DockerBridgeCIDR)),
			LoadBalancerSKU:   ptr.To(a.LoadBalancerSKU),
			Ingress:           ptr.To(a.Ingress),
			EnableServiceMesh: ptr.To(a.EnableServiceMesh),
		}}, nil

	case session.StepSecurity:
		return config.Patch{Security: &config.SecurityPatch{
			EnableRBAC:          ptr.To(a.EnableRBAC),
			EnableAzureAD:       ptr.To(a.EnableAzureAD),
			AzureADTenantID:     ptr.To(strings.TrimSpace(a.AzureADTenantID)),
			EnablePodIdentity:   ptr.To(a.EnablePodIdentity),
			NetworkPolicy:       ptr.To(a.NetworkPolicy),
			AutoUpgradeChannel:  ptr.To(a.AutoUpgradeChannel),
			EnableImageScanning: ptr.To(a.EnableImageScanning),
			PodSecurityLevel:    ptr.To(a.PodSecurityLevel),
		}}, nil

	case session.StepMonitoring:
		return config.Patch{Monitoring: &config.MonitoringPatch{
			EnableContainerInsights:  ptr.To(a.EnableContainerInsights),
			EnablePrometheus:         ptr.To(a.EnablePrometheus),
			EnableAzureMonitor:       ptr.To(a.EnableAzureMonitor),
			EnableAlerts:             ptr.To(a.EnableAlerts),
			EnableDiagnosticSettings: ptr.To(a.EnableDiagnosticSettings),
			LogAnalyticsWorkspaceID:  ptr.To(strings.TrimSpace(a.LogAnalyticsWorkspaceID)),
		}}, nil

	case session.StepWorkloads:
		cpu, err := parseInt("target CPU utilization", a.TargetCPUUtilization)
		if err != nil {
			return config.Patch{}, err
		}
		mem, err := parseInt("target memory utilization", a.TargetMemoryUtilization)
		if err != nil {
			return config.Patch{}, err
		}
		return config.Patch{Workload: &config.WorkloadPatch{
			WorkloadType:                ptr.To(a.WorkloadType),
			TrafficLevel:                ptr.To(a.TrafficLevel),
			EnableHPA:                   ptr.To(a.EnableHPA),
			TargetCPUUtilization:        &cpu,
			TargetMemoryUtilization:     &mem,
			EnableVPA:                   ptr.To(a.EnableVPA),
			EnableMonitoringIntegration: ptr.To(a.EnableMonitoringIntegration),
		}}, nil

	case session.StepPods:
		return config.Patch{Pod: &config.PodPolicyPatch{
			CPURequest:        ptr.To(strings.TrimSpace(a.CPURequest)),
			CPULimit:          ptr.To(strings.TrimSpace(a.CPULimit)),
			MemoryRequest:     ptr.To(strings.TrimSpace(a.MemoryRequest)),
			MemoryLimit:       ptr.To(strings.TrimSpace(a.MemoryLimit)),
			NodeAffinity:      ptr.To(a.NodeAffinity),
			NodeSelectorKey:   ptr.To(strings.TrimSpace(a.NodeSelectorKey)),
			NodeSelectorValue: ptr.To(strings.TrimSpace(a.NodeSelectorValue)),
			PodAntiAffinity:   ptr.To(a.PodAntiAffinity),
			TopologyKey:       ptr.To(strings.TrimSpace(a.TopologyKey)),
			HostNetwork:       ptr.To(a.HostNetwork),
			DNSPolicy:         ptr.To(a.DNSPolicy),
		}}, nil

	case session.StepStorage:
		return config.Patch{Storage: &config.StoragePatch{
			EnablePersistentVolumes: ptr.To(a.EnablePersistentVolumes),
			StorageClass:            ptr.To(a.StorageClass),
			EnableBackup:            ptr.To(a.EnableBackup),
		}}, nil

	case session.StepAddons:
		on := func(key string) *bool { return ptr.To(slices.Contains(a.EnabledAddons, key)) }
		return config.Patch{Addons: &config.AddonsPatch{
			EnableHTTPApplicationRouting: on(AddonHTTPRouting),
			EnableAzurePolicy:            on(AddonAzurePolicy),
			EnableKeyVaultProvider:       on(AddonKeyVault),
			EnableKEDA:                   on(AddonKEDA),
			EnableDapr:                   on(AddonDapr),
			EnableACRIntegration:         on(AddonACR),
			ContainerRegistryName:        ptr.To(strings.TrimSpace(a.ContainerRegistryName)),
		}}, nil

	case session.StepMultiRegion:
		regions := slices.DeleteFunc(slices.Clone(a.SecondaryRegions), func(r string) bool { return r == a.Region })
		if regions == nil {
			regions = []string{}
		}
		return config.Patch{MultiRegion: &config.MultiRegionPatch{
			Enabled:            ptr.To(a.MultiRegionEnabled),
			SecondaryRegions:   &regions,
			EnableFrontDoor:    ptr.To(a.EnableFrontDoor),
			FrontDoorSKU:       ptr.To(a.FrontDoorSKU),
			EnableWAF:          ptr.To(a.EnableWAF),
			EnableHealthProbes: ptr.To(a.EnableHealthProbes),
			EnableAPIM:         ptr.To(a.EnableAPIM),
			APIMSKU:            ptr.To(a.APIMSKU),
			APIMPublisherEmail: ptr.To(strings.TrimSpace(a.APIMPublisherEmail)),
		}}, nil
	}
	return config.Patch{}, nil
}

// ApplyStep applies the answers of one step to cfg. Node pool additions
// and removals are applied after the patch, and the pool fields are reset
// so that revisiting the step does not repeat them.
func (a *Answers) ApplyStep(cfg config.Config, step session.Step) (config.Config, error) {
	p, err := a.Patch(step)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", step.Title(), err)
	}
	out := config.Apply(cfg, p)

	if step == session.StepAssessment {
		a.Mode = out.Mode
	}
	if step == session.StepNodes {
		// Remove from the highest index so earlier indexes stay valid.
		remove := slices.Clone(a.RemoveUserPools)
		slices.Sort(remove)
		for i := len(remove) - 1; i >= 0; i-- {
			if out, err = config.RemoveUserPool(out, remove[i]); err != nil {
				return cfg, err
			}
		}
		if a.AddUserPool {
			pool := config.NewUserPool(len(out.UserNodePools))
			count, err := parseInt("user pool node count", a.UserPoolNodeCount)
			if err != nil {
				return cfg, err
			}
			if name := strings.TrimSpace(a.UserPoolName); name != "" {
				pool.Name = name
			}
			pool.VMSize = a.UserPoolVMSize
			pool.NodeCount = count
			out = config.AddUserPool(out, pool)
		}
		a.resetUserPool(len(out.UserNodePools))
	}
	return out, nil
}

func parseInt(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, errNotANumber)
	}
	return n, nil
}
