package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Patch is a partial Config. Every non-nil field overwrites the matching
// Config field when applied; nil fields leave it untouched. The field set is
// closed: PatchFromMap rejects keys that have no field here.
type Patch struct {
	SubscriptionID    *string `yaml:"subscriptionId"`
	ResourceGroupName *string `yaml:"resourceGroupName"`
	ClusterName       *string `yaml:"clusterName"`
	Region            *string `yaml:"region"`
	KubernetesVersion *string `yaml:"kubernetesVersion"`
	Mode              *Mode   `yaml:"mode"`

	SystemNodePool *NodePoolPatch `yaml:"systemNodePool"`
	UserNodePools  *[]NodePool    `yaml:"userNodePools"`

	Networking  *NetworkingPatch  `yaml:"networking"`
	Security    *SecurityPatch    `yaml:"security"`
	Monitoring  *MonitoringPatch  `yaml:"monitoring"`
	Storage     *StoragePatch     `yaml:"storage"`
	Workload    *WorkloadPatch    `yaml:"workload"`
	Pod         *PodPolicyPatch   `yaml:"pod"`
	Addons      *AddonsPatch      `yaml:"addons"`
	MultiRegion *MultiRegionPatch `yaml:"multiRegion"`
}

// NodePoolPatch is a partial NodePool. Mode is accepted so that written
// documents load back, but the system pool always stays System.
type NodePoolPatch struct {
	Name              *string   `yaml:"name"`
	VMSize            *string   `yaml:"vmSize"`
	NodeCount         *int      `yaml:"nodeCount"`
	EnableAutoScaling *bool     `yaml:"enableAutoScaling"`
	MinNodes          *int      `yaml:"minNodes"`
	MaxNodes          *int      `yaml:"maxNodes"`
	Mode              *PoolMode `yaml:"mode"`
}

// NetworkingPatch is a partial Networking.
type NetworkingPatch struct {
	NetworkPlugin     *NetworkPlugin   `yaml:"networkPlugin"`
	DNSPrefix         *string          `yaml:"dnsPrefix"`
	ServiceCIDR       *string          `yaml:"serviceCidr"`
	DockerBridgeCIDR  *string          `yaml:"dockerBridgeCidr"`
	LoadBalancerSKU   *LoadBalancerSKU `yaml:"loadBalancerSku"`
	Ingress           *Ingress         `yaml:"ingress"`
	EnableServiceMesh *bool            `yaml:"enableServiceMesh"`
}

// SecurityPatch is a partial Security.
type SecurityPatch struct {
	EnableRBAC          *bool               `yaml:"enableRbac"`
	EnableAzureAD       *bool               `yaml:"enableAzureAd"`
	AzureADTenantID     *string             `yaml:"azureAdTenantId"`
	EnablePodIdentity   *bool               `yaml:"enablePodIdentity"`
	NetworkPolicy       *NetworkPolicy      `yaml:"networkPolicy"`
	AutoUpgradeChannel  *AutoUpgradeChannel `yaml:"autoUpgradeChannel"`
	EnableImageScanning *bool               `yaml:"enableImageScanning"`
	PodSecurityLevel    *PodSecurityLevel   `yaml:"podSecurityLevel"`
}

// MonitoringPatch is a partial Monitoring.
type MonitoringPatch struct {
	EnableContainerInsights  *bool   `yaml:"enableContainerInsights"`
	EnablePrometheus         *bool   `yaml:"enablePrometheus"`
	EnableAzureMonitor       *bool   `yaml:"enableAzureMonitor"`
	EnableAlerts             *bool   `yaml:"enableAlerts"`
	EnableDiagnosticSettings *bool   `yaml:"enableDiagnosticSettings"`
	LogAnalyticsWorkspaceID  *string `yaml:"logAnalyticsWorkspaceId"`
}

// StoragePatch is a partial Storage.
type StoragePatch struct {
	EnablePersistentVolumes *bool         `yaml:"enablePersistentVolumes"`
	StorageClass            *StorageClass `yaml:"storageClass"`
	EnableBackup            *bool         `yaml:"enableBackup"`
}

// WorkloadPatch is a partial Workload.
type WorkloadPatch struct {
	WorkloadType                *WorkloadType `yaml:"workloadType"`
	TrafficLevel                *TrafficLevel `yaml:"trafficLevel"`
	EnableHPA                   *bool         `yaml:"enableHpa"`
	TargetCPUUtilization        *int          `yaml:"targetCpuUtilization"`
	TargetMemoryUtilization     *int          `yaml:"targetMemoryUtilization"`
	EnableVPA                   *bool         `yaml:"enableVpa"`
	EnableMonitoringIntegration *bool         `yaml:"enableMonitoringIntegration"`
}

// PodPolicyPatch is a partial PodPolicy.
type PodPolicyPatch struct {
	CPURequest        *string       `yaml:"cpuRequest"`
	CPULimit          *string       `yaml:"cpuLimit"`
	MemoryRequest     *string       `yaml:"memoryRequest"`
	MemoryLimit       *string       `yaml:"memoryLimit"`
	NodeAffinity      *AffinityMode `yaml:"nodeAffinity"`
	NodeSelectorKey   *string       `yaml:"nodeSelectorKey"`
	NodeSelectorValue *string       `yaml:"nodeSelectorValue"`
	PodAntiAffinity   *AffinityMode `yaml:"podAntiAffinity"`
	TopologyKey       *string       `yaml:"topologyKey"`
	HostNetwork       *bool         `yaml:"hostNetwork"`
	DNSPolicy         *DNSPolicy    `yaml:"dnsPolicy"`
}

// AddonsPatch is a partial Addons.
type AddonsPatch struct {
	EnableHTTPApplicationRouting *bool   `yaml:"enableHttpApplicationRouting"`
	EnableAzurePolicy            *bool   `yaml:"enableAzurePolicy"`
	EnableKeyVaultProvider       *bool   `yaml:"enableKeyVaultProvider"`
	EnableKEDA                   *bool   `yaml:"enableKeda"`
	EnableDapr                   *bool   `yaml:"enableDapr"`
	EnableACRIntegration         *bool   `yaml:"enableAcrIntegration"`
	ContainerRegistryName        *string `yaml:"containerRegistryName"`
}

// MultiRegionPatch is a partial MultiRegion.
type MultiRegionPatch struct {
	Enabled            *bool         `yaml:"enabled"`
	SecondaryRegions   *[]string     `yaml:"secondaryRegions"`
	EnableFrontDoor    *bool         `yaml:"enableFrontDoor"`
	FrontDoorSKU       *FrontDoorSKU `yaml:"frontDoorSku"`
	EnableWAF          *bool         `yaml:"enableWaf"`
	EnableHealthProbes *bool         `yaml:"enableHealthProbes"`
	EnableAPIM         *bool         `yaml:"enableApim"`
	APIMSKU            *APIMSKU      `yaml:"apimSku"`
	APIMPublisherEmail *string       `yaml:"apimPublisherEmail"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Apply returns a copy of cfg with every field set in p overwritten.
// cfg itself is never modified.
func Apply(cfg Config, p Patch) Config {
	out := cfg.Clone()

	set(&out.SubscriptionID, p.SubscriptionID)
	set(&out.ResourceGroupName, p.ResourceGroupName)
	set(&out.ClusterName, p.ClusterName)
	set(&out.Region, p.Region)
	set(&out.KubernetesVersion, p.KubernetesVersion)
	set(&out.Mode, p.Mode)

	if sp := p.SystemNodePool; sp != nil {
		set(&out.SystemNodePool.Name, sp.Name)
		set(&out.SystemNodePool.VMSize, sp.VMSize)
		set(&out.SystemNodePool.NodeCount, sp.NodeCount)
		set(&out.SystemNodePool.EnableAutoScaling, sp.EnableAutoScaling)
		set(&out.SystemNodePool.MinNodes, sp.MinNodes)
		set(&out.SystemNodePool.MaxNodes, sp.MaxNodes)
	}
	if p.UserNodePools != nil {
		pools := make([]NodePool, len(*p.UserNodePools))
		for i, pool := range *p.UserNodePools {
			pool.Mode = PoolModeUser
			pools[i] = pool
		}
		out.UserNodePools = pools
	}

	if n := p.Networking; n != nil {
		set(&out.Networking.NetworkPlugin, n.NetworkPlugin)
		set(&out.Networking.DNSPrefix, n.DNSPrefix)
		set(&out.Networking.ServiceCIDR, n.ServiceCIDR)
		set(&out.Networking.DockerBridgeCIDR, n.DockerBridgeCIDR)
		set(&out.Networking.LoadBalancerSKU, n.LoadBalancerSKU)
		set(&out.Networking.Ingress, n.Ingress)
		set(&out.Networking.EnableServiceMesh, n.EnableServiceMesh)
	}

	if s := p.Security; s != nil {
		set(&out.Security.EnableRBAC, s.EnableRBAC)
		set(&out.Security.EnableAzureAD, s.EnableAzureAD)
		set(&out.Security.AzureADTenantID, s.AzureADTenantID)
		set(&out.Security.EnablePodIdentity, s.EnablePodIdentity)
		set(&out.Security.NetworkPolicy, s.NetworkPolicy)
		set(&out.Security.AutoUpgradeChannel, s.AutoUpgradeChannel)
		set(&out.Security.EnableImageScanning, s.EnableImageScanning)
		set(&out.Security.PodSecurityLevel, s.PodSecurityLevel)
	}

	if m := p.Monitoring; m != nil {
		set(&out.Monitoring.EnableContainerInsights, m.EnableContainerInsights)
		set(&out.Monitoring.EnablePrometheus, m.EnablePrometheus)
		set(&out.Monitoring.EnableAzureMonitor, m.EnableAzureMonitor)
		set(&out.Monitoring.EnableAlerts, m.EnableAlerts)
		set(&out.Monitoring.EnableDiagnosticSettings, m.EnableDiagnosticSettings)
		set(&out.Monitoring.LogAnalyticsWorkspaceID, m.LogAnalyticsWorkspaceID)
	}

	if s := p.Storage; s != nil {
		set(&out.Storage.EnablePersistentVolumes, s.EnablePersistentVolumes)
		set(&out.Storage.StorageClass, s.StorageClass)
		set(&out.Storage.EnableBackup, s.EnableBackup)
	}

	if w := p.Workload; w != nil {
		set(&out.Workload.WorkloadType, w.WorkloadType)
		set(&out.Workload.TrafficLevel, w.TrafficLevel)
		set(&out.Workload.EnableHPA, w.EnableHPA)
		set(&out.Workload.TargetCPUUtilization, w.TargetCPUUtilization)
		set(&out.Workload.TargetMemoryUtilization, w.TargetMemoryUtilization)
		set(&out.Workload.EnableVPA, w.EnableVPA)
		set(&out.Workload.EnableMonitoringIntegration, w.EnableMonitoringIntegration)
	}

	if pp := p.Pod; pp != nil {
		set(&out.Pod.CPURequest, pp.CPURequest)
		set(&out.Pod.CPULimit, pp.CPULimit)
		set(&out.Pod.MemoryRequest, pp.MemoryRequest)
		set(&out.Pod.MemoryLimit, pp.MemoryLimit)
		set(&out.Pod.NodeAffinity, pp.NodeAffinity)
		set(&out.Pod.NodeSelectorKey, pp.NodeSelectorKey)
		set(&out.Pod.NodeSelectorValue, pp.NodeSelectorValue)
		set(&out.Pod.PodAntiAffinity, pp.PodAntiAffinity)
		set(&out.Pod.TopologyKey, pp.TopologyKey)
		set(&out.Pod.HostNetwork, pp.HostNetwork)
		set(&out.Pod.DNSPolicy, pp.DNSPolicy)
	}

	if a := p.Addons; a != nil {
		set(&out.Addons.EnableHTTPApplicationRouting, a.EnableHTTPApplicationRouting)
		set(&out.Addons.EnableAzurePolicy, a.EnableAzurePolicy)
		set(&out.Addons.EnableKeyVaultProvider, a.EnableKeyVaultProvider)
		set(&out.Addons.EnableKEDA, a.EnableKEDA)
		set(&out.Addons.EnableDapr, a.EnableDapr)
		set(&out.Addons.EnableACRIntegration, a.EnableACRIntegration)
		set(&out.Addons.ContainerRegistryName, a.ContainerRegistryName)
	}

	if m := p.MultiRegion; m != nil {
		set(&out.MultiRegion.Enabled, m.Enabled)
		if m.SecondaryRegions != nil {
			out.MultiRegion.SecondaryRegions = append([]string{}, (*m.SecondaryRegions)...)
		}
		set(&out.MultiRegion.EnableFrontDoor, m.EnableFrontDoor)
		set(&out.MultiRegion.FrontDoorSKU, m.FrontDoorSKU)
		set(&out.MultiRegion.EnableWAF, m.EnableWAF)
		set(&out.MultiRegion.EnableHealthProbes, m.EnableHealthProbes)
		set(&out.MultiRegion.EnableAPIM, m.EnableAPIM)
		set(&out.MultiRegion.APIMSKU, m.APIMSKU)
		set(&out.MultiRegion.APIMPublisherEmail, m.APIMPublisherEmail)
	}

	return out
}

// PatchFromMap decodes a nested map into a Patch. Keys follow the YAML
// field names; unknown keys are an error. Scalar strings are converted to
// the target type, so values coming from the command line are accepted.
func PatchFromMap(raw map[string]any) (Patch, error) {
	var p Patch
	if len(raw) == 0 {
		return p, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		TagName:          "yaml",
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return p, fmt.Errorf("failed to create patch decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return p, fmt.Errorf("failed to decode patch: %w", err)
	}
	if err := p.validateEnums(); err != nil {
		return Patch{}, err
	}
	return p, nil
}

type enumValue interface {
	IsValid() bool
}

func checkEnum[T enumValue](errs *[]error, field string, v *T) {
	if v != nil && !(*v).IsValid() {
		*errs = append(*errs, fmt.Errorf("%w: %s=%v", ErrInvalidValue, field, *v))
	}
}

// validateEnums rejects enum values outside their declared set.
func (p Patch) validateEnums() error {
	var errs []error
	checkEnum(&errs, "mode", p.Mode)
	if n := p.Networking; n != nil {
		checkEnum(&errs, "networking.networkPlugin", n.NetworkPlugin)
		checkEnum(&errs, "networking.loadBalancerSku", n.LoadBalancerSKU)
		checkEnum(&errs, "networking.ingress", n.Ingress)
	}
	if s := p.Security; s != nil {
		checkEnum(&errs, "security.networkPolicy", s.NetworkPolicy)
		checkEnum(&errs, "security.autoUpgradeChannel", s.AutoUpgradeChannel)
		checkEnum(&errs, "security.podSecurityLevel", s.PodSecurityLevel)
	}
	if s := p.Storage; s != nil {
		checkEnum(&errs, "storage.storageClass", s.StorageClass)
	}
	if w := p.Workload; w != nil {
		checkEnum(&errs, "workload.workloadType", w.WorkloadType)
		checkEnum(&errs, "workload.trafficLevel", w.TrafficLevel)
	}
	if pp := p.Pod; pp != nil {
		checkEnum(&errs, "pod.nodeAffinity", pp.NodeAffinity)
		checkEnum(&errs, "pod.podAntiAffinity", pp.PodAntiAffinity)
		checkEnum(&errs, "pod.dnsPolicy", pp.DNSPolicy)
	}
	if m := p.MultiRegion; m != nil {
		checkEnum(&errs, "multiRegion.frontDoorSku", m.FrontDoorSKU)
		checkEnum(&errs, "multiRegion.apimSku", m.APIMSKU)
	}
	return errors.Join(errs...)
}

// ParseSetFlags converts "dotted.key=value" pairs into the nested map
// accepted by PatchFromMap. A value containing commas becomes a list.
func ParseSetFlags(pairs []string) (map[string]any, error) {
	root := map[string]any{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSetFlag, pair)
		}
		parts := strings.Split(strings.TrimSpace(key), ".")
		for _, part := range parts {
			if part == "" {
				return nil, fmt.Errorf("%w: %q", ErrEmptyPatchKey, pair)
			}
		}

		node := root
		for i, part := range parts[:len(parts)-1] {
			existing, set := node[part]
			if !set {
				child := map[string]any{}
				node[part] = child
				node = child
				continue
			}
			child, ok := existing.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: %q is already set to a value", ErrSetFlagConflict, strings.Join(parts[:i+1], "."))
			}
			node = child
		}
		leaf := parts[len(parts)-1]
		if _, nested := node[leaf].(map[string]any); nested {
			return nil, fmt.Errorf("%w: %q already has nested keys", ErrSetFlagConflict, strings.Join(parts, "."))
		}
		node[leaf] = parseSetValue(value)
	}
	return root, nil
}

func parseSetValue(value string) any {
	if !strings.Contains(value, ",") {
		return value
	}
	var list []any
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if list == nil {
		return []any{}
	}
	return list
}
