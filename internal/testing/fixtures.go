package testing

import (
	"github.com/imamik/akswiz/internal/config"
)

// DemoConfig is the shared generator fixture: cluster "demo" in eastus with
// a single fixed user pool of Standard_D4s_v3 nodes.
func DemoConfig() config.Config {
	return NewConfigBuilder().
		WithClusterName("demo").
		WithResourceGroup("demo-rg").
		WithRegion("eastus").
		WithUserPool("pool1", "Standard_D4s_v3", 3).
		Build()
}

// FullConfig returns a config with every optional feature switched on.
func FullConfig() config.Config {
	return NewConfigBuilder().
		WithClusterName("prod").
		WithResourceGroup("prod-rg").
		WithRegion("eastus").
		WithUserPool("apps", "Standard_E4s_v3", 2).
		WithAutoscaleUserPool("batch", "Standard_F8s_v2", 2, 8).
		WithWorkload(config.WorkloadMemoryIntensive, config.TrafficHigh).
		WithHPA(70, 80).
		WithVPA().
		WithAzureAD("11111111-1111-1111-1111-111111111111").
		WithACR("prodacr").
		WithMultiRegion("westeurope", "southeastasia").
		WithFrontDoor(config.FrontDoorPremium, true).
		WithAPIM(config.APIMStandard, "ops@example.com").
		With(func(c *config.Config) {
			c.Networking.Ingress = config.IngressAppGateway
			c.Networking.EnableServiceMesh = true
			c.Security.NetworkPolicy = config.NetworkPolicyCalico
			c.Security.PodSecurityLevel = config.PodSecurityRestricted
			c.Monitoring.EnablePrometheus = true
			c.Monitoring.EnableAzureMonitor = true
			c.Monitoring.EnableAlerts = true
			c.Monitoring.EnableDiagnosticSettings = true
			c.Storage.EnablePersistentVolumes = true
			c.Storage.StorageClass = config.StorageClassPremiumSSD
			c.Storage.EnableBackup = true
			c.Workload.EnableMonitoringIntegration = true
			c.Pod.NodeAffinity = config.AffinityRequired
			c.Pod.NodeSelectorKey = "workload"
			c.Pod.NodeSelectorValue = "apps"
			c.Pod.PodAntiAffinity = config.AffinityPreferred
			c.Addons.EnableHTTPApplicationRouting = true
			c.Addons.EnableAzurePolicy = true
			c.Addons.EnableKeyVaultProvider = true
			c.Addons.EnableKEDA = true
			c.Addons.EnableDapr = true
		}).
		Build()
}

// EmptyConfig returns Default() with nothing filled in. Generators must
// still produce output for it.
func EmptyConfig() config.Config {
	return config.Default()
}
