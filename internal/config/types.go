package config

// Config is the canonical in-memory representation of all wizard choices.
// It is a value type: every edit produces a new Config (see Apply,
// AddUserPool and RemoveUserPool) and generators receive their own copy.
type Config struct {
	// Identity
	SubscriptionID    string `yaml:"subscriptionId"`
	ResourceGroupName string `yaml:"resourceGroupName"`
	ClusterName       string `yaml:"clusterName"`
	Region            string `yaml:"region"`
	KubernetesVersion string `yaml:"kubernetesVersion"`
	Mode              Mode   `yaml:"mode"`

	// Node pools
	SystemNodePool NodePool   `yaml:"systemNodePool"`
	UserNodePools  []NodePool `yaml:"userNodePools"`

	Networking  Networking  `yaml:"networking"`
	Security    Security    `yaml:"security"`
	Monitoring  Monitoring  `yaml:"monitoring"`
	Storage     Storage     `yaml:"storage"`
	Workload    Workload    `yaml:"workload"`
	Pod         PodPolicy   `yaml:"pod"`
	Addons      Addons      `yaml:"addons"`
	MultiRegion MultiRegion `yaml:"multiRegion"`
}

// NodePool is a named group of machines sharing a size and scaling policy.
// Exactly one of NodeCount or the MinNodes/MaxNodes range is in effect,
// selected by EnableAutoScaling.
type NodePool struct {
	Name              string   `yaml:"name"`
	VMSize            string   `yaml:"vmSize"`
	NodeCount         int      `yaml:"nodeCount"`
	EnableAutoScaling bool     `yaml:"enableAutoScaling"`
	MinNodes          int      `yaml:"minNodes"`
	MaxNodes          int      `yaml:"maxNodes"`
	Mode              PoolMode `yaml:"mode"`
}

// Networking holds cluster network settings. CIDRs are free text.
type Networking struct {
	NetworkPlugin     NetworkPlugin   `yaml:"networkPlugin"`
	DNSPrefix         string          `yaml:"dnsPrefix"`
	ServiceCIDR       string          `yaml:"serviceCidr"`
	DockerBridgeCIDR  string          `yaml:"dockerBridgeCidr"`
	LoadBalancerSKU   LoadBalancerSKU `yaml:"loadBalancerSku"`
	Ingress           Ingress         `yaml:"ingress"`
	EnableServiceMesh bool            `yaml:"enableServiceMesh"`
}

// Security holds identity, policy and upgrade settings.
type Security struct {
	EnableRBAC          bool               `yaml:"enableRbac"`
	EnableAzureAD       bool               `yaml:"enableAzureAd"`
	AzureADTenantID     string             `yaml:"azureAdTenantId"`
	EnablePodIdentity   bool               `yaml:"enablePodIdentity"`
	NetworkPolicy       NetworkPolicy      `yaml:"networkPolicy"`
	AutoUpgradeChannel  AutoUpgradeChannel `yaml:"autoUpgradeChannel"`
	EnableImageScanning bool               `yaml:"enableImageScanning"`
	PodSecurityLevel    PodSecurityLevel   `yaml:"podSecurityLevel"`
}

// Monitoring holds observability toggles. An empty LogAnalyticsWorkspaceID
// means the generators synthesize a workspace.
type Monitoring struct {
	EnableContainerInsights  bool   `yaml:"enableContainerInsights"`
	EnablePrometheus         bool   `yaml:"enablePrometheus"`
	EnableAzureMonitor       bool   `yaml:"enableAzureMonitor"`
	EnableAlerts             bool   `yaml:"enableAlerts"`
	EnableDiagnosticSettings bool   `yaml:"enableDiagnosticSettings"`
	LogAnalyticsWorkspaceID  string `yaml:"logAnalyticsWorkspaceId"`
}

// Storage holds persistent volume settings.
type Storage struct {
	EnablePersistentVolumes bool         `yaml:"enablePersistentVolumes"`
	StorageClass            StorageClass `yaml:"storageClass"`
	EnableBackup            bool         `yaml:"enableBackup"`
}

// Workload describes the expected application profile.
type Workload struct {
	WorkloadType                WorkloadType `yaml:"workloadType"`
	TrafficLevel                TrafficLevel `yaml:"trafficLevel"`
	EnableHPA                   bool         `yaml:"enableHpa"`
	TargetCPUUtilization        int          `yaml:"targetCpuUtilization"`
	TargetMemoryUtilization     int          `yaml:"targetMemoryUtilization"`
	EnableVPA                   bool         `yaml:"enableVpa"`
	EnableMonitoringIntegration bool         `yaml:"enableMonitoringIntegration"`
}

// PodPolicy holds pod-level scheduling and resource settings.
// Resource strings are free-form quantities.
type PodPolicy struct {
	CPURequest        string       `yaml:"cpuRequest"`
	CPULimit          string       `yaml:"cpuLimit"`
	MemoryRequest     string       `yaml:"memoryRequest"`
	MemoryLimit       string       `yaml:"memoryLimit"`
	NodeAffinity      AffinityMode `yaml:"nodeAffinity"`
	NodeSelectorKey   string       `yaml:"nodeSelectorKey"`
	NodeSelectorValue string       `yaml:"nodeSelectorValue"`
	PodAntiAffinity   AffinityMode `yaml:"podAntiAffinity"`
	TopologyKey       string       `yaml:"topologyKey"`
	HostNetwork       bool         `yaml:"hostNetwork"`
	DNSPolicy         DNSPolicy    `yaml:"dnsPolicy"`
}

// Addons holds the managed extension toggles.
type Addons struct {
	EnableHTTPApplicationRouting bool   `yaml:"enableHttpApplicationRouting"`
	EnableAzurePolicy            bool   `yaml:"enableAzurePolicy"`
	EnableKeyVaultProvider       bool   `yaml:"enableKeyVaultProvider"`
	EnableKEDA                   bool   `yaml:"enableKeda"`
	EnableDapr                   bool   `yaml:"enableDapr"`
	EnableACRIntegration         bool   `yaml:"enableAcrIntegration"`
	ContainerRegistryName        string `yaml:"containerRegistryName"`
}

// MultiRegion describes optional secondary clusters, global routing and an
// API gateway. SecondaryRegions keeps insertion order.
type MultiRegion struct {
	Enabled            bool         `yaml:"enabled"`
	SecondaryRegions   []string     `yaml:"secondaryRegions"`
	EnableFrontDoor    bool         `yaml:"enableFrontDoor"`
	FrontDoorSKU       FrontDoorSKU `yaml:"frontDoorSku"`
	EnableWAF          bool         `yaml:"enableWaf"`
	EnableHealthProbes bool         `yaml:"enableHealthProbes"`
	EnableAPIM         bool         `yaml:"enableApim"`
	APIMSKU            APIMSKU      `yaml:"apimSku"`
	APIMPublisherEmail string       `yaml:"apimPublisherEmail"`
}

// FrontDoorActive reports whether a global routing layer is generated.
func (m MultiRegion) FrontDoorActive() bool {
	return m.Enabled && m.EnableFrontDoor
}

// APIMActive reports whether an API gateway is generated.
func (m MultiRegion) APIMActive() bool {
	return m.Enabled && m.EnableAPIM
}

// ActiveSecondaryRegions returns the secondary regions in effect, or nil
// when multi-region is disabled.
func (m MultiRegion) ActiveSecondaryRegions() []string {
	if !m.Enabled {
		return nil
	}
	return m.SecondaryRegions
}

// AllPools returns the system pool followed by the user pools.
func (c Config) AllPools() []NodePool {
	pools := make([]NodePool, 0, 1+len(c.UserNodePools))
	pools = append(pools, c.SystemNodePool)
	return append(pools, c.UserNodePools...)
}
