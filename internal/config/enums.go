package config

import "slices"

// Mode is the managed-service operating tier.
type Mode string

const (
	// ModeAutomatic lets the platform manage node pools, upgrades and networking.
	ModeAutomatic Mode = "Automatic"
	// ModeStandard gives full control over cluster configuration.
	ModeStandard Mode = "Standard"
)

// Values returns all valid modes.
func (Mode) Values() []Mode { return []Mode{ModeAutomatic, ModeStandard} }

// IsValid returns true if the mode is known.
func (m Mode) IsValid() bool { return slices.Contains(m.Values(), m) }

// PoolMode distinguishes the system pool from user pools.
type PoolMode string

const (
	PoolModeSystem PoolMode = "System"
	PoolModeUser   PoolMode = "User"
)

// NetworkPlugin is the CNI plugin.
type NetworkPlugin string

const (
	NetworkPluginAzure   NetworkPlugin = "azure"
	NetworkPluginKubenet NetworkPlugin = "kubenet"
)

// Values returns all valid network plugins.
func (NetworkPlugin) Values() []NetworkPlugin {
	return []NetworkPlugin{NetworkPluginAzure, NetworkPluginKubenet}
}

// IsValid returns true if the plugin is known.
func (p NetworkPlugin) IsValid() bool { return slices.Contains(p.Values(), p) }

// LoadBalancerSKU is the load balancer tier.
type LoadBalancerSKU string

const (
	LoadBalancerStandard LoadBalancerSKU = "Standard"
	LoadBalancerBasic    LoadBalancerSKU = "Basic"
)

// Values returns all valid load balancer SKUs.
func (LoadBalancerSKU) Values() []LoadBalancerSKU {
	return []LoadBalancerSKU{LoadBalancerStandard, LoadBalancerBasic}
}

// IsValid returns true if the SKU is known.
func (s LoadBalancerSKU) IsValid() bool { return slices.Contains(s.Values(), s) }

// Ingress is the ingress controller choice.
type Ingress string

const (
	IngressNone          Ingress = "none"
	IngressNginx         Ingress = "nginx"
	IngressAppGateway    Ingress = "appgw"
	IngressWebAppRouting Ingress = "webapprouting"
)

// Values returns all valid ingress choices.
func (Ingress) Values() []Ingress {
	return []Ingress{IngressNone, IngressNginx, IngressAppGateway, IngressWebAppRouting}
}

// IsValid returns true if the ingress choice is known.
func (i Ingress) IsValid() bool { return slices.Contains(i.Values(), i) }

// NetworkPolicy is the network policy engine.
type NetworkPolicy string

const (
	NetworkPolicyNone   NetworkPolicy = "None"
	NetworkPolicyAzure  NetworkPolicy = "azure"
	NetworkPolicyCalico NetworkPolicy = "calico"
)

// Values returns all valid network policies.
func (NetworkPolicy) Values() []NetworkPolicy {
	return []NetworkPolicy{NetworkPolicyNone, NetworkPolicyAzure, NetworkPolicyCalico}
}

// IsValid returns true if the policy is known.
func (p NetworkPolicy) IsValid() bool { return slices.Contains(p.Values(), p) }

// Enabled reports whether a policy engine is selected.
func (p NetworkPolicy) Enabled() bool { return p != "" && p != NetworkPolicyNone }

// AutoUpgradeChannel is the cluster auto-upgrade channel.
type AutoUpgradeChannel string

const (
	UpgradeNone      AutoUpgradeChannel = "none"
	UpgradePatch     AutoUpgradeChannel = "patch"
	UpgradeStable    AutoUpgradeChannel = "stable"
	UpgradeRapid     AutoUpgradeChannel = "rapid"
	UpgradeNodeImage AutoUpgradeChannel = "node-image"
)

// Values returns all valid upgrade channels.
func (AutoUpgradeChannel) Values() []AutoUpgradeChannel {
	return []AutoUpgradeChannel{UpgradeNone, UpgradePatch, UpgradeStable, UpgradeRapid, UpgradeNodeImage}
}

// IsValid returns true if the channel is known.
func (c AutoUpgradeChannel) IsValid() bool { return slices.Contains(c.Values(), c) }

// Enabled reports whether automatic upgrades are configured.
func (c AutoUpgradeChannel) Enabled() bool { return c != "" && c != UpgradeNone }

// PodSecurityLevel is the pod-security-admission enforcement level.
type PodSecurityLevel string

const (
	PodSecurityPrivileged PodSecurityLevel = "privileged"
	PodSecurityBaseline   PodSecurityLevel = "baseline"
	PodSecurityRestricted PodSecurityLevel = "restricted"
)

// Values returns all valid pod security levels.
func (PodSecurityLevel) Values() []PodSecurityLevel {
	return []PodSecurityLevel{PodSecurityPrivileged, PodSecurityBaseline, PodSecurityRestricted}
}

// IsValid returns true if the level is known.
func (l PodSecurityLevel) IsValid() bool { return slices.Contains(l.Values(), l) }

// StorageClass is the default storage class choice.
type StorageClass string

const (
	StorageClassDefault    StorageClass = "default"
	StorageClassAzureDisk  StorageClass = "azuredisk"
	StorageClassAzureFile  StorageClass = "azurefile"
	StorageClassPremiumSSD StorageClass = "premium-ssd"
)

// Values returns all valid storage classes.
func (StorageClass) Values() []StorageClass {
	return []StorageClass{StorageClassDefault, StorageClassAzureDisk, StorageClassAzureFile, StorageClassPremiumSSD}
}

// IsValid returns true if the storage class is known.
func (s StorageClass) IsValid() bool { return slices.Contains(s.Values(), s) }

// WorkloadType is the workload category.
type WorkloadType string

const (
	WorkloadGeneral          WorkloadType = "general"
	WorkloadMemoryIntensive  WorkloadType = "memory-intensive"
	WorkloadComputeIntensive WorkloadType = "compute-intensive"
	WorkloadGPUHeavy         WorkloadType = "gpu-heavy"
	WorkloadIOIntensive      WorkloadType = "io-intensive"
)

// Values returns all valid workload types.
func (WorkloadType) Values() []WorkloadType {
	return []WorkloadType{WorkloadGeneral, WorkloadMemoryIntensive, WorkloadComputeIntensive, WorkloadGPUHeavy, WorkloadIOIntensive}
}

// IsValid returns true if the workload type is known.
func (w WorkloadType) IsValid() bool { return slices.Contains(w.Values(), w) }

// TrafficLevel is the expected traffic profile.
type TrafficLevel string

const (
	TrafficLow    TrafficLevel = "low"
	TrafficMedium TrafficLevel = "medium"
	TrafficHigh   TrafficLevel = "high"
	TrafficBurst  TrafficLevel = "burst"
)

// Values returns all valid traffic levels.
func (TrafficLevel) Values() []TrafficLevel {
	return []TrafficLevel{TrafficLow, TrafficMedium, TrafficHigh, TrafficBurst}
}

// IsValid returns true if the traffic level is known.
func (t TrafficLevel) IsValid() bool { return slices.Contains(t.Values(), t) }

// AffinityMode is used for both node affinity and pod anti-affinity.
type AffinityMode string

const (
	AffinityNone      AffinityMode = "none"
	AffinityPreferred AffinityMode = "preferred"
	AffinityRequired  AffinityMode = "required"
)

// Values returns all valid affinity modes.
func (AffinityMode) Values() []AffinityMode {
	return []AffinityMode{AffinityNone, AffinityPreferred, AffinityRequired}
}

// IsValid returns true if the affinity mode is known.
func (a AffinityMode) IsValid() bool { return slices.Contains(a.Values(), a) }

// DNSPolicy is the pod DNS policy.
type DNSPolicy string

const (
	DNSClusterFirst            DNSPolicy = "ClusterFirst"
	DNSClusterFirstWithHostNet DNSPolicy = "ClusterFirstWithHostNet"
	DNSDefault                 DNSPolicy = "Default"
	DNSNone                    DNSPolicy = "None"
)

// Values returns all valid DNS policies.
func (DNSPolicy) Values() []DNSPolicy {
	return []DNSPolicy{DNSClusterFirst, DNSClusterFirstWithHostNet, DNSDefault, DNSNone}
}

// IsValid returns true if the DNS policy is known.
func (d DNSPolicy) IsValid() bool { return slices.Contains(d.Values(), d) }

// FrontDoorSKU is the global routing tier.
type FrontDoorSKU string

const (
	FrontDoorStandard FrontDoorSKU = "Standard_AzureFrontDoor"
	FrontDoorPremium  FrontDoorSKU = "Premium_AzureFrontDoor"
)

// Values returns all valid Front Door SKUs.
func (FrontDoorSKU) Values() []FrontDoorSKU {
	return []FrontDoorSKU{FrontDoorStandard, FrontDoorPremium}
}

// IsValid returns true if the SKU is known.
func (s FrontDoorSKU) IsValid() bool { return slices.Contains(s.Values(), s) }

// APIMSKU is the API gateway tier.
type APIMSKU string

const (
	APIMDeveloper APIMSKU = "Developer"
	APIMBasic     APIMSKU = "Basic"
	APIMStandard  APIMSKU = "Standard"
	APIMPremium   APIMSKU = "Premium"
)

// Values returns all valid API gateway SKUs.
func (APIMSKU) Values() []APIMSKU {
	return []APIMSKU{APIMDeveloper, APIMBasic, APIMStandard, APIMPremium}
}

// IsValid returns true if the SKU is known.
func (s APIMSKU) IsValid() bool { return slices.Contains(s.Values(), s) }
