package templates

import (
	"fmt"
	"strings"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/util/labels"
	"github.com/imamik/akswiz/internal/util/naming"
)

// BicepFile is the bundle file name of the Bicep output.
const BicepFile = "main.bicep"

// Resource API versions shared by the Bicep and ARM outputs.
const (
	managedClusterAPIVersion = "2023-01-01"
	managedClusterType       = "Microsoft.ContainerService/managedClusters"
	roleAssignmentAPIVersion = "2022-04-01"
	acrPullRoleID            = "7f951dda-4ed3-4680-a7ca-43fe172d538d"
)

// Bicep renders the Bicep deployment for cfg.
func Bicep(cfg config.Config) string {
	return joinFragments(
		bicepParams(cfg),
		bicepWorkspace(cfg),
		bicepCluster(cfg),
		bicepOutputs(cfg),
		bicepACR(cfg),
		bicepExtensions(cfg),
		bicepFrontDoor(cfg),
		bicepSecondaryClusters(cfg),
		bicepAPIM(cfg),
	)
}

func bicepParams(cfg config.Config) string {
	var f bicepFile
	f.param("clusterName", "string", "The name of the AKS cluster", bstr(naming.ClusterOrDefault(cfg)))
	f.blank()
	f.param("location", "string", "The Azure region for deployment", bstr(naming.Region(cfg)))
	f.blank()
	f.param("dnsPrefix", "string", "DNS prefix for the cluster", bstr(naming.DNSPrefix(cfg)))
	f.blank()
	f.param("kubernetesVersion", "string", "Kubernetes version", bstr(naming.KubernetesVersion(cfg)))
	f.blank()
	f.param("systemNodeVmSize", "string", "VM size for system node pool", bstr(vmSize(cfg.SystemNodePool)))
	if cfg.Security.EnableAzureAD {
		f.blank()
		f.param("tenantId", "string", "Azure AD tenant ID", bstr(cfg.Security.AzureADTenantID))
	}
	return f.String()
}

func bicepWorkspace(cfg config.Config) string {
	if !needsWorkspace(cfg) {
		return ""
	}
	var f bicepFile
	f.resource(&bresource{
		Symbol: "logAnalyticsWorkspace",
		Type:   "Microsoft.OperationalInsights/workspaces@2022-10-01",
		Body: bobj{
			{Key: "name", Val: bstr(naming.LogAnalyticsWorkspace(cfg))},
			{Key: "location", Val: braw("location")},
			{Key: "properties", Val: bobj{
				{Key: "sku", Val: bobj{{Key: "name", Val: bstr("PerGB2018")}}},
				{Key: "retentionInDays", Val: bint(30)},
			}},
		},
	})
	return f.String()
}

func bicepCluster(cfg config.Config) string {
	props := bobj{
		{Key: "kubernetesVersion", Val: braw("kubernetesVersion")},
		{Key: "dnsPrefix", Val: braw("dnsPrefix")},
		{Key: "enableRBAC", Val: bbool(cfg.Security.EnableRBAC)},
	}
	if cfg.Security.AutoUpgradeChannel.Enabled() {
		props = append(props, bprop{Key: "autoUpgradeProfile", Val: bobj{
			{Key: "upgradeChannel", Val: bstr(string(cfg.Security.AutoUpgradeChannel))},
		}})
	}
	if azureADActive(cfg) {
		props = append(props, bprop{Key: "aadProfile", Val: bobj{
			{Key: "managed", Val: bbool(true)},
			{Key: "tenantID", Val: braw("tenantId")},
			{Key: "enableAzureRBAC", Val: bbool(true)},
		}})
	}
	if cfg.Security.EnablePodIdentity {
		props = append(props,
			bprop{Key: "oidcIssuerProfile", Val: bobj{{Key: "enabled", Val: bbool(true)}}},
			bprop{Key: "securityProfile", Val: bobj{
				{Key: "workloadIdentity", Val: bobj{{Key: "enabled", Val: bbool(true)}}},
			}},
		)
	}

	pools := barr{bicepAgentPool(cfg.SystemNodePool, config.PoolModeSystem, braw("systemNodeVmSize"))}
	for _, p := range cfg.UserNodePools {
		pools = append(pools, bicepAgentPool(p, config.PoolModeUser, bstr(vmSize(p))))
	}
	props = append(props,
		bprop{Key: "agentPoolProfiles", Val: pools},
		bprop{Key: "networkProfile", Val: bicepNetworkProfile(cfg, true)},
	)
	if addons := bicepAddonProfiles(cfg); len(addons) > 0 {
		props = append(props, bprop{Key: "addonProfiles", Val: addons})
	}
	if cfg.Networking.EnableServiceMesh {
		props = append(props, bprop{Key: "serviceMeshProfile", Val: bobj{{Key: "mode", Val: bstr("Istio")}}})
	}
	if cfg.Networking.Ingress == config.IngressWebAppRouting {
		props = append(props, bprop{Key: "ingressProfile", Val: bobj{
			{Key: "webAppRouting", Val: bobj{{Key: "enabled", Val: bbool(true)}}},
		}})
	}
	if cfg.Addons.EnableKEDA || cfg.Workload.EnableVPA {
		var was bobj
		if cfg.Addons.EnableKEDA {
			was = append(was, bprop{Key: "keda", Val: bobj{{Key: "enabled", Val: bbool(true)}}})
		}
		if cfg.Workload.EnableVPA {
			was = append(was, bprop{Key: "verticalPodAutoscaler", Val: bobj{{Key: "enabled", Val: bbool(true)}}})
		}
		props = append(props, bprop{Key: "workloadAutoScalerProfile", Val: was})
	}

	var f bicepFile
	f.resource(&bresource{
		Symbol: "aksCluster",
		Type:   managedClusterType + "@" + managedClusterAPIVersion,
		Body: bobj{
			{Key: "name", Val: braw("clusterName")},
			{Key: "location", Val: braw("location")},
			{Key: "identity", Val: bobj{{Key: "type", Val: bstr("SystemAssigned")}}},
			{Key: "properties", Val: props},
			{Key: "tags", Val: bicepTags(labels.NewTagBuilder().Build())},
		},
	})
	return f.String()
}

func bicepAgentPool(p config.NodePool, mode config.PoolMode, size bexpr) bobj {
	pool := bobj{
		{Key: "name", Val: bstr(poolName(p))},
		{Key: "mode", Val: bstr(string(mode))},
		{Key: "vmSize", Val: size},
		{Key: "enableAutoScaling", Val: bbool(p.EnableAutoScaling)},
	}
	if p.EnableAutoScaling {
		pool = append(pool,
			bprop{Key: "minCount", Val: bint(p.MinNodes)},
			bprop{Key: "maxCount", Val: bint(p.MaxNodes)},
		)
	} else {
		pool = append(pool, bprop{Key: "count", Val: bint(p.NodeCount)})
	}
	return append(pool,
		bprop{Key: "osType", Val: bstr("Linux")},
		bprop{Key: "type", Val: bstr("VirtualMachineScaleSets")},
	)
}

// bicepNetworkProfile renders the network profile. Secondary clusters omit
// the network policy.
func bicepNetworkProfile(cfg config.Config, withPolicy bool) bobj {
	np := bobj{
		{Key: "networkPlugin", Val: bstr(networkPlugin(cfg))},
		{Key: "loadBalancerSku", Val: bstr(strings.ToLower(loadBalancerSKU(cfg)))},
		{Key: "serviceCidr", Val: bstr(cfg.Networking.ServiceCIDR)},
		{Key: "dockerBridgeCidr", Val: bstr(cfg.Networking.DockerBridgeCIDR)},
	}
	if withPolicy && cfg.Security.NetworkPolicy.Enabled() {
		np = append(np, bprop{Key: "networkPolicy", Val: bstr(string(cfg.Security.NetworkPolicy))})
	}
	return np
}

func bicepAddonProfiles(cfg config.Config) bobj {
	enabled := bprop{Key: "enabled", Val: bbool(true)}
	var addons bobj
	if cfg.Monitoring.EnableContainerInsights {
		var ws bexpr = braw("logAnalyticsWorkspace.id")
		if id := strings.TrimSpace(cfg.Monitoring.LogAnalyticsWorkspaceID); id != "" {
			ws = bstr(id)
		}
		addons = append(addons, bprop{Key: "omsagent", Val: bobj{
			enabled,
			{Key: "config", Val: bobj{{Key: "logAnalyticsWorkspaceResourceID", Val: ws}}},
		}})
	}
	if cfg.Addons.EnableHTTPApplicationRouting {
		addons = append(addons, bprop{Key: "httpApplicationRouting", Val: bobj{enabled}})
	}
	if cfg.Addons.EnableAzurePolicy {
		addons = append(addons, bprop{Key: "azurepolicy", Val: bobj{enabled}})
	}
	if cfg.Addons.EnableKeyVaultProvider {
		addons = append(addons, bprop{Key: "azureKeyvaultSecretsProvider", Val: bobj{
			enabled,
			{Key: "config", Val: bobj{{Key: "enableSecretRotation", Val: bstr("true")}}},
		}})
	}
	if cfg.Networking.Ingress == config.IngressAppGateway {
		addons = append(addons, bprop{Key: "ingressApplicationGateway", Val: bobj{
			enabled,
			{Key: "config", Val: bobj{
				{Key: "applicationGatewayName", Val: bstr(naming.AppGateway(cfg))},
				{Key: "subnetCIDR", Val: bstr(appGatewaySubnet)},
			}},
		}})
	}
	return addons
}

func bicepOutputs(_ config.Config) string {
	var f bicepFile
	f.output("clusterName", "string", "aksCluster.name")
	f.output("controlPlaneFQDN", "string", "aksCluster.properties.fqdn")
	return f.String()
}

func bicepACR(cfg config.Config) string {
	if !acrActive(cfg) {
		return ""
	}
	var f bicepFile
	f.comment("Grant AcrPull role to the cluster managed identity")
	f.resource(&bresource{
		Symbol: "acrPullRole",
		Type:   "Microsoft.Authorization/roleAssignments@" + roleAssignmentAPIVersion,
		Body: bobj{
			{Key: "name", Val: braw(fmt.Sprintf("guid(aksCluster.id, '%s')", acrPullRoleID))},
			{Key: "scope", Val: braw(fmt.Sprintf("resourceId('Microsoft.ContainerRegistry/registries', %s)", bstr(cfg.Addons.ContainerRegistryName).render(0)))},
			{Key: "properties", Val: bobj{
				{Key: "roleDefinitionId", Val: braw(fmt.Sprintf("subscriptionResourceId('Microsoft.Authorization/roleDefinitions', '%s')", acrPullRoleID))},
				{Key: "principalId", Val: braw("aksCluster.properties.identityProfile.kubeletidentity.objectId")},
				{Key: "principalType", Val: bstr("ServicePrincipal")},
			}},
		},
	})
	return f.String()
}

func bicepExtensions(cfg config.Config) string {
	if !cfg.Addons.EnableDapr {
		return ""
	}
	var f bicepFile
	f.resource(&bresource{
		Symbol: "daprExtension",
		Type:   "Microsoft.KubernetesConfiguration/extensions@2023-05-01",
		Body: bobj{
			{Key: "name", Val: bstr("dapr")},
			{Key: "scope", Val: braw("aksCluster")},
			{Key: "properties", Val: bobj{
				{Key: "extensionType", Val: bstr("Microsoft.Dapr")},
				{Key: "autoUpgradeMinorVersion", Val: bbool(true)},
			}},
		},
	})
	return f.String()
}

func bicepFrontDoor(cfg config.Config) string {
	if !cfg.MultiRegion.FrontDoorActive() {
		return ""
	}
	mr := cfg.MultiRegion
	sku := frontDoorSKU(cfg)

	var f bicepFile
	f.comment("Azure Front Door")

	if mr.EnableWAF {
		ruleSets := barr{}
		if sku == string(config.FrontDoorPremium) {
			for _, rs := range managedRuleSets {
				ruleSets = append(ruleSets, bobj{
					{Key: "ruleSetType", Val: bstr(rs.Type)},
					{Key: "ruleSetVersion", Val: bstr(rs.Version)},
				})
			}
		}
		f.resource(&bresource{
			Symbol: "wafPolicy",
			Type:   "Microsoft.Network/FrontDoorWebApplicationFirewallPolicies@2022-05-01",
			Body: bobj{
				{Key: "name", Val: bstr(naming.WAFPolicy(cfg))},
				{Key: "location", Val: bstr("global")},
				{Key: "sku", Val: bobj{{Key: "name", Val: bstr(sku)}}},
				{Key: "properties", Val: bobj{
					{Key: "policySettings", Val: bobj{
						{Key: "enabledState", Val: bstr("Enabled")},
						{Key: "mode", Val: bstr("Prevention")},
					}},
					{Key: "managedRules", Val: bobj{{Key: "managedRuleSets", Val: ruleSets}}},
				}},
			},
		})
		f.blank()
	}

	groupProps := bobj{
		{Key: "loadBalancingSettings", Val: bobj{
			{Key: "sampleSize", Val: bint(4)},
			{Key: "successfulSamplesRequired", Val: bint(3)},
			{Key: "additionalLatencyInMilliseconds", Val: bint(50)},
		}},
	}
	if mr.EnableHealthProbes {
		groupProps = append(groupProps, bprop{Key: "healthProbeSettings", Val: bobj{
			{Key: "probePath", Val: bstr("/healthz")},
			{Key: "probeRequestType", Val: bstr("HEAD")},
			{Key: "probeProtocol", Val: bstr("Https")},
			{Key: "probeIntervalInSeconds", Val: bint(30)},
		}})
	}

	originItems := barr{}
	for _, o := range origins(cfg) {
		originItems = append(originItems, bcommented{
			Comment: "Replace hostName with the ingress address for " + o.Region,
			Val: bobj{
				{Key: "name", Val: bstr(naming.FrontDoorOrigin(o.Region))},
				{Key: "hostName", Val: bstr(naming.OriginHost(o.Region))},
				{Key: "priority", Val: bint(o.Priority)},
				{Key: "weight", Val: bint(o.Weight)},
			},
		})
	}

	profile := bobj{
		{Key: "name", Val: bstr(naming.FrontDoorProfile(cfg))},
		{Key: "location", Val: bstr("global")},
		{Key: "sku", Val: bobj{{Key: "name", Val: bstr(sku)}}},
		{Key: "tags", Val: bicepTags(labels.NewTagBuilder().Build())},
		{Resource: &bresource{
			Symbol: "defaultEndpoint",
			Type:   "afdEndpoints",
			Body: bobj{
				{Key: "name", Val: bstr(naming.FrontDoorEndpoint(cfg))},
				{Key: "location", Val: bstr("global")},
				{Key: "properties", Val: bobj{{Key: "enabledState", Val: bstr("Enabled")}}},
			},
		}},
		{Resource: &bresource{
			Symbol: "originGroup",
			Type:   "originGroups",
			Body: bobj{
				{Key: "name", Val: bstr("aks-origin-group")},
				{Key: "properties", Val: groupProps},
				{Resource: &bresource{
					Symbol: "origins",
					Type:   "origins",
					Body: bfor{
						Var:   "origin",
						Items: originItems,
						Body: bobj{
							{Key: "name", Val: braw("origin.name")},
							{Key: "properties", Val: bobj{
								{Key: "hostName", Val: braw("origin.hostName")},
								{Key: "httpPort", Val: bint(80)},
								{Key: "httpsPort", Val: bint(443)},
								{Key: "originHostHeader", Val: braw("origin.hostName")},
								{Key: "priority", Val: braw("origin.priority")},
								{Key: "weight", Val: braw("origin.weight")},
								{Key: "enabledState", Val: bstr("Enabled")},
							}},
						},
					},
				}},
			},
		}},
		{Resource: &bresource{
			Symbol: "defaultRoute",
			Type:   "routes",
			Body: bobj{
				{Key: "name", Val: bstr("default-route")},
				{Key: "dependsOn", Val: barr{braw("originGroup::origins")}},
				{Key: "properties", Val: bobj{
					{Key: "originGroup", Val: bobj{{Key: "id", Val: braw("originGroup.id")}}},
					{Key: "supportedProtocols", Val: barr{bstr("Http"), bstr("Https")}},
					{Key: "patternsToMatch", Val: barr{bstr("/*")}},
					{Key: "forwardingProtocol", Val: bstr("HttpsOnly")},
					{Key: "httpsRedirect", Val: bstr("Enabled")},
					{Key: "linkToDefaultDomain", Val: bstr("Enabled")},
				}},
			},
		}},
	}
	if mr.EnableWAF {
		profile = append(profile, bprop{Resource: &bresource{
			Symbol: "securityPolicy",
			Type:   "securityPolicies",
			Body: bobj{
				{Key: "name", Val: bstr("security-policy")},
				{Key: "properties", Val: bobj{
					{Key: "parameters", Val: bobj{
						{Key: "type", Val: bstr("WebApplicationFirewall")},
						{Key: "wafPolicy", Val: bobj{{Key: "id", Val: braw("wafPolicy.id")}}},
						{Key: "associations", Val: barr{bobj{
							{Key: "domains", Val: barr{bobj{{Key: "id", Val: braw("defaultEndpoint.id")}}}},
							{Key: "patternsToMatch", Val: barr{bstr("/*")}},
						}}},
					}},
				}},
			},
		}})
	}

	f.resource(&bresource{
		Symbol: "frontDoorProfile",
		Type:   "Microsoft.Cdn/profiles@2023-05-01",
		Body:   profile,
	})
	f.blank()
	f.output("frontDoorEndpointHostname", "string", "frontDoorProfile::defaultEndpoint.properties.hostName")
	return f.String()
}

func bicepSecondaryClusters(cfg config.Config) string {
	regions := secondaryRegions(cfg)
	if len(regions) == 0 {
		return ""
	}
	var f bicepFile
	f.comment("Secondary region AKS clusters")
	for _, region := range regions {
		f.resource(&bresource{
			Symbol: "aksCluster_" + naming.RegionSuffix(region),
			Type:   managedClusterType + "@" + managedClusterAPIVersion,
			Body: bobj{
				{Key: "name", Val: bstr(naming.SecondaryCluster(cfg, region))},
				{Key: "location", Val: bstr(region)},
				{Key: "identity", Val: bobj{{Key: "type", Val: bstr("SystemAssigned")}}},
				{Key: "properties", Val: bobj{
					{Key: "kubernetesVersion", Val: braw("kubernetesVersion")},
					{Key: "dnsPrefix", Val: bstr(naming.SecondaryDNSPrefix(cfg, region))},
					{Key: "enableRBAC", Val: bbool(cfg.Security.EnableRBAC)},
					{Key: "agentPoolProfiles", Val: barr{bicepAgentPool(cfg.SystemNodePool, config.PoolModeSystem, braw("systemNodeVmSize"))}},
					{Key: "networkProfile", Val: bicepNetworkProfile(cfg, false)},
				}},
				{Key: "tags", Val: bicepTags(labels.NewTagBuilder().WithRegion(region).Build())},
			},
		})
		f.blank()
	}
	for _, region := range regions {
		suffix := naming.RegionSuffix(region)
		f.output("clusterName_"+suffix, "string", "aksCluster_"+suffix+".name")
	}
	return f.String()
}

func bicepAPIM(cfg config.Config) string {
	if !cfg.MultiRegion.APIMActive() {
		return ""
	}
	var f bicepFile
	f.comment("Azure API Management")
	f.resource(&bresource{
		Symbol: "apimService",
		Type:   "Microsoft.ApiManagement/service@2024-05-01",
		Body: bobj{
			{Key: "name", Val: bstr(naming.APIManagement(cfg))},
			{Key: "location", Val: braw("location")},
			{Key: "sku", Val: bobj{
				{Key: "name", Val: bstr(apimSKU(cfg))},
				{Key: "capacity", Val: bint(1)},
			}},
			{Key: "properties", Val: bobj{
				{Key: "publisherEmail", Val: bstr(naming.APIMPublisherEmail(cfg))},
				{Key: "publisherName", Val: bstr(naming.APIMPublisherName(cfg))},
			}},
			{Key: "tags", Val: bicepTags(labels.NewTagBuilder().Build())},
		},
	})
	f.blank()
	f.output("apimGatewayUrl", "string", "apimService.properties.gatewayUrl")
	f.output("apimPortalUrl", "string", "apimService.properties.developerPortalUrl")
	return f.String()
}

func bicepTags(tags map[string]string) bobj {
	out := make(bobj, 0, len(tags))
	for _, k := range labels.Keys(tags) {
		out = append(out, bprop{Key: k, Val: bstr(tags[k])})
	}
	return out
}
