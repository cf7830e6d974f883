package testing

import (
	"github.com/imamik/akswiz/internal/config"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder whose identity fields are
// filled in so that every required check passes.
func NewConfigBuilder() *ConfigBuilder {
	cfg := config.Default()
	cfg.SubscriptionID = "00000000-0000-0000-0000-000000000000"
	cfg.ResourceGroupName = "test-rg"
	cfg.ClusterName = "test-cluster"
	return &ConfigBuilder{cfg: cfg}
}

// WithClusterName sets the cluster name.
func (b *ConfigBuilder) WithClusterName(name string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.ClusterName = name
	return newBuilder
}

// WithResourceGroup sets the resource group name.
func (b *ConfigBuilder) WithResourceGroup(name string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.ResourceGroupName = name
	return newBuilder
}

// WithRegion sets the primary region.
func (b *ConfigBuilder) WithRegion(region string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Region = region
	return newBuilder
}

// WithSystemPool sets the system pool size and fixed count.
func (b *ConfigBuilder) WithSystemPool(vmSize string, count int) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.SystemNodePool.VMSize = vmSize
	newBuilder.cfg.SystemNodePool.NodeCount = count
	newBuilder.cfg.SystemNodePool.EnableAutoScaling = false
	return newBuilder
}

// WithSystemAutoscale switches the system pool to an autoscaling range.
func (b *ConfigBuilder) WithSystemAutoscale(minNodes, maxNodes int) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.SystemNodePool.EnableAutoScaling = true
	newBuilder.cfg.SystemNodePool.MinNodes = minNodes
	newBuilder.cfg.SystemNodePool.MaxNodes = maxNodes
	return newBuilder
}

// WithUserPool appends a fixed-size user pool.
func (b *ConfigBuilder) WithUserPool(name, vmSize string, count int) *ConfigBuilder {
	pool := config.NewUserPool(len(b.cfg.UserNodePools))
	pool.Name = name
	pool.VMSize = vmSize
	pool.NodeCount = count
	return &ConfigBuilder{cfg: config.AddUserPool(b.cfg, pool)}
}

// WithAutoscaleUserPool appends an autoscaling user pool.
func (b *ConfigBuilder) WithAutoscaleUserPool(name, vmSize string, minNodes, maxNodes int) *ConfigBuilder {
	pool := config.NewUserPool(len(b.cfg.UserNodePools))
	pool.Name = name
	pool.VMSize = vmSize
	pool.EnableAutoScaling = true
	pool.MinNodes = minNodes
	pool.MaxNodes = maxNodes
	return &ConfigBuilder{cfg: config.AddUserPool(b.cfg, pool)}
}

// WithWorkload sets the workload profile category and traffic level.
func (b *ConfigBuilder) WithWorkload(workload config.WorkloadType, traffic config.TrafficLevel) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Workload.WorkloadType = workload
	newBuilder.cfg.Workload.TrafficLevel = traffic
	return newBuilder
}

// WithHPA enables the horizontal autoscaler with the given targets.
func (b *ConfigBuilder) WithHPA(cpu, memory int) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Workload.EnableHPA = true
	newBuilder.cfg.Workload.TargetCPUUtilization = cpu
	newBuilder.cfg.Workload.TargetMemoryUtilization = memory
	return newBuilder
}

// WithVPA enables the vertical autoscaler.
func (b *ConfigBuilder) WithVPA() *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Workload.EnableVPA = true
	return newBuilder
}

// WithAzureAD enables Azure AD integration with the given tenant.
func (b *ConfigBuilder) WithAzureAD(tenantID string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Security.EnableAzureAD = true
	newBuilder.cfg.Security.AzureADTenantID = tenantID
	return newBuilder
}

// WithACR enables registry integration.
func (b *ConfigBuilder) WithACR(registry string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Addons.EnableACRIntegration = true
	newBuilder.cfg.Addons.ContainerRegistryName = registry
	return newBuilder
}

// WithMultiRegion enables multi-region with the given secondary regions.
func (b *ConfigBuilder) WithMultiRegion(regions ...string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.MultiRegion.Enabled = true
	newBuilder.cfg.MultiRegion.SecondaryRegions = append([]string{}, regions...)
	return newBuilder
}

// WithFrontDoor enables Front Door with the given SKU and WAF setting.
func (b *ConfigBuilder) WithFrontDoor(sku config.FrontDoorSKU, waf bool) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.MultiRegion.EnableFrontDoor = true
	newBuilder.cfg.MultiRegion.FrontDoorSKU = sku
	newBuilder.cfg.MultiRegion.EnableWAF = waf
	return newBuilder
}

// WithAPIM enables API Management with the given SKU.
func (b *ConfigBuilder) WithAPIM(sku config.APIMSKU, email string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.MultiRegion.EnableAPIM = true
	newBuilder.cfg.MultiRegion.APIMSKU = sku
	newBuilder.cfg.MultiRegion.APIMPublisherEmail = email
	return newBuilder
}

// With applies an arbitrary edit to a copy of the config.
func (b *ConfigBuilder) With(edit func(*config.Config)) *ConfigBuilder {
	newBuilder := b.clone()
	edit(&newBuilder.cfg)
	return newBuilder
}

// Build returns the constructed config.
func (b *ConfigBuilder) Build() config.Config {
	return b.cfg.Clone()
}

// clone creates a deep copy of the builder for immutability.
func (b *ConfigBuilder) clone() *ConfigBuilder {
	return &ConfigBuilder{cfg: b.cfg.Clone()}
}

// MinimalConfig returns a config that passes every required check.
func MinimalConfig() config.Config {
	return NewConfigBuilder().Build()
}
