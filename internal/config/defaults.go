package config

// Default values applied by Default.
const (
	DefaultRegion            = "eastus"
	DefaultKubernetesVersion = "1.29.x"
	DefaultVMSize            = "Standard_D2s_v3"
	DefaultServiceCIDR       = "10.0.0.0/16"
	DefaultDockerBridgeCIDR  = "172.17.0.1/16"
	DefaultTopologyKey       = "kubernetes.io/hostname"
	DefaultSystemPoolName    = "system"
)

// Default returns the configuration every wizard session starts from.
func Default() Config {
	return Config{
		Region:            DefaultRegion,
		KubernetesVersion: DefaultKubernetesVersion,
		Mode:              ModeStandard,
		SystemNodePool: NodePool{
			Name:      DefaultSystemPoolName,
			VMSize:    DefaultVMSize,
			NodeCount: 3,
			MinNodes:  1,
			MaxNodes:  5,
			Mode:      PoolModeSystem,
		},
		UserNodePools: []NodePool{},
		Networking: Networking{
			NetworkPlugin:    NetworkPluginAzure,
			ServiceCIDR:      DefaultServiceCIDR,
			DockerBridgeCIDR: DefaultDockerBridgeCIDR,
			LoadBalancerSKU:  LoadBalancerStandard,
			Ingress:          IngressNone,
		},
		Security: Security{
			EnableRBAC:         true,
			NetworkPolicy:      NetworkPolicyNone,
			AutoUpgradeChannel: UpgradePatch,
			PodSecurityLevel:   PodSecurityBaseline,
		},
		Monitoring: Monitoring{
			EnableContainerInsights: true,
		},
		Storage: Storage{
			StorageClass: StorageClassDefault,
		},
		Workload: Workload{
			WorkloadType:            WorkloadGeneral,
			TrafficLevel:            TrafficMedium,
			TargetCPUUtilization:    70,
			TargetMemoryUtilization: 80,
		},
		Pod: PodPolicy{
			CPURequest:      "250m",
			CPULimit:        "500m",
			MemoryRequest:   "256Mi",
			MemoryLimit:     "512Mi",
			NodeAffinity:    AffinityNone,
			PodAntiAffinity: AffinityNone,
			TopologyKey:     DefaultTopologyKey,
			DNSPolicy:       DNSClusterFirst,
		},
		MultiRegion: MultiRegion{
			SecondaryRegions:   []string{},
			FrontDoorSKU:       FrontDoorStandard,
			EnableHealthProbes: true,
			APIMSKU:            APIMDeveloper,
		},
	}
}

// RegionOption is a selectable cloud region.
type RegionOption struct {
	Value string
	Label string
}

// Regions contains the regions offered by the wizard.
var Regions = []RegionOption{
	{Value: "eastus", Label: "East US"},
	{Value: "eastus2", Label: "East US 2"},
	{Value: "westus", Label: "West US"},
	{Value: "westus2", Label: "West US 2"},
	{Value: "westus3", Label: "West US 3"},
	{Value: "centralus", Label: "Central US"},
	{Value: "northeurope", Label: "North Europe"},
	{Value: "westeurope", Label: "West Europe"},
	{Value: "uksouth", Label: "UK South"},
	{Value: "ukwest", Label: "UK West"},
	{Value: "francecentral", Label: "France Central"},
	{Value: "germanywestcentral", Label: "Germany West Central"},
	{Value: "swedencentral", Label: "Sweden Central"},
	{Value: "eastasia", Label: "East Asia"},
	{Value: "southeastasia", Label: "Southeast Asia"},
	{Value: "japaneast", Label: "Japan East"},
	{Value: "japanwest", Label: "Japan West"},
	{Value: "australiaeast", Label: "Australia East"},
	{Value: "australiasoutheast", Label: "Australia Southeast"},
	{Value: "brazilsouth", Label: "Brazil South"},
	{Value: "canadacentral", Label: "Canada Central"},
	{Value: "canadaeast", Label: "Canada East"},
	{Value: "southafricanorth", Label: "South Africa North"},
	{Value: "uaenorth", Label: "UAE North"},
}

// VMSizes contains the machine sizes offered for node pools.
var VMSizes = []string{
	"Standard_D2s_v3",
	"Standard_D4s_v3",
	"Standard_D8s_v3",
	"Standard_D16s_v3",
	"Standard_E4s_v3",
	"Standard_E8s_v3",
	"Standard_F4s_v2",
	"Standard_F8s_v2",
	"Standard_B2ms",
	"Standard_B4ms",
}

// RegionLabel returns the display label for a region code, or the code
// itself when it is not in Regions.
func RegionLabel(code string) string {
	for _, r := range Regions {
		if r.Value == code {
			return r.Label
		}
	}
	return code
}
