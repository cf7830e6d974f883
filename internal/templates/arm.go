package templates

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice"
	"github.com/google/uuid"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/util/labels"
	"github.com/imamik/akswiz/internal/util/naming"
)

// ARMFile is the bundle file name of the ARM template output.
const ARMFile = "azuredeploy.json"

const (
	armSchema          = "https://schema.management.azure.com/schemas/2019-04-01/deploymentTemplate.json#"
	armContentVersion  = "1.0.0.0"
	workspaceType      = "Microsoft.OperationalInsights/workspaces"
	workspaceAPI       = "2022-10-01"
	roleAssignmentType = "Microsoft.Authorization/roleAssignments"
)

// roleAssignmentNamespace seeds the deterministic role assignment names.
var roleAssignmentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/imamik/akswiz/role-assignments"))

type armTemplate struct {
	Schema         string               `json:"$schema"`
	ContentVersion string               `json:"contentVersion"`
	Resources      []armResource        `json:"resources"`
	Outputs        map[string]armOutput `json:"outputs"`
}

type armResource struct {
	Type       string             `json:"type"`
	APIVersion string             `json:"apiVersion"`
	Name       string             `json:"name"`
	Location   string             `json:"location,omitempty"`
	Scope      string             `json:"scope,omitempty"`
	DependsOn  []string           `json:"dependsOn,omitempty"`
	Identity   any                `json:"identity,omitempty"`
	Properties any                `json:"properties"`
	Tags       map[string]*string `json:"tags,omitempty"`
}

type armOutput struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// ARM renders an ARM deployment template with the primary and secondary
// managed clusters.
func ARM(cfg config.Config) string {
	tpl := armTemplate{
		Schema:         armSchema,
		ContentVersion: armContentVersion,
		Outputs: map[string]armOutput{
			"controlPlaneFQDN": {
				Type:  "string",
				Value: fmt.Sprintf("[reference(%s).fqdn]", clusterResourceID(naming.ClusterOrDefault(cfg))),
			},
		},
	}

	var dependsOn []string
	if needsWorkspace(cfg) {
		tpl.Resources = append(tpl.Resources, armResource{
			Type:       workspaceType,
			APIVersion: workspaceAPI,
			Name:       naming.LogAnalyticsWorkspace(cfg),
			Location:   naming.Region(cfg),
			Properties: map[string]any{
				"sku":             map[string]string{"name": "PerGB2018"},
				"retentionInDays": 30,
			},
		})
		dependsOn = []string{fmt.Sprintf("[resourceId('%s', '%s')]", workspaceType, naming.LogAnalyticsWorkspace(cfg))}
	}

	primary := armCluster(cfg)
	tpl.Resources = append(tpl.Resources, clusterResource(naming.ClusterOrDefault(cfg), primary, dependsOn))

	if acrActive(cfg) {
		tpl.Resources = append(tpl.Resources, armACR(cfg))
	}

	for _, region := range secondaryRegions(cfg) {
		name := naming.SecondaryCluster(cfg, region)
		tpl.Resources = append(tpl.Resources, clusterResource(name, armSecondaryCluster(cfg, region), nil))
		tpl.Outputs["clusterName_"+naming.RegionSuffix(region)] = armOutput{Type: "string", Value: name}
	}

	return renderJSON(tpl)
}

// renderJSON returns v as indented JSON. When encoding fails the result is
// still a JSON document, holding only the error.
func renderJSON(v any) string {
	out, err := encodeJSON(v)
	if err != nil {
		msg, _ := json.Marshal(err.Error()) // a plain string always encodes
		return "{\n  \"error\": " + string(msg) + "\n}\n"
	}
	return out
}

func encodeJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding json: %w", err)
	}
	return string(data) + "\n", nil
}

func clusterResource(name string, mc armcontainerservice.ManagedCluster, dependsOn []string) armResource {
	return armResource{
		Type:       managedClusterType,
		APIVersion: managedClusterAPIVersion,
		Name:       name,
		Location:   *mc.Location,
		DependsOn:  dependsOn,
		Identity:   mc.Identity,
		Properties: mc.Properties,
		Tags:       mc.Tags,
	}
}

func clusterResourceID(name string) string {
	return fmt.Sprintf("resourceId('%s', '%s')", managedClusterType, name)
}

// armCluster builds the primary managed cluster.
func armCluster(cfg config.Config) armcontainerservice.ManagedCluster {
	pools := []*armcontainerservice.ManagedClusterAgentPoolProfile{
		armAgentPool(cfg.SystemNodePool, armcontainerservice.AgentPoolModeSystem),
	}
	for _, p := range cfg.UserNodePools {
		pools = append(pools, armAgentPool(p, armcontainerservice.AgentPoolModeUser))
	}

	props := &armcontainerservice.ManagedClusterProperties{
		KubernetesVersion: to.Ptr(naming.KubernetesVersion(cfg)),
		DNSPrefix:         to.Ptr(naming.DNSPrefix(cfg)),
		EnableRBAC:        to.Ptr(cfg.Security.EnableRBAC),
		AgentPoolProfiles: pools,
		NetworkProfile:    armNetworkProfile(cfg, true),
	}
	if cfg.Security.AutoUpgradeChannel.Enabled() {
		props.AutoUpgradeProfile = &armcontainerservice.ManagedClusterAutoUpgradeProfile{
			UpgradeChannel: to.Ptr(armcontainerservice.UpgradeChannel(cfg.Security.AutoUpgradeChannel)),
		}
	}
	if azureADActive(cfg) {
		props.AADProfile = &armcontainerservice.ManagedClusterAADProfile{
			Managed:         to.Ptr(true),
			TenantID:        to.Ptr(cfg.Security.AzureADTenantID),
			EnableAzureRBAC: to.Ptr(true),
		}
	}
	if addons := armAddonProfiles(cfg); len(addons) > 0 {
		props.AddonProfiles = addons
	}

	return armcontainerservice.ManagedCluster{
		Location: to.Ptr(naming.Region(cfg)),
		Identity: &armcontainerservice.ManagedClusterIdentity{
			Type: to.Ptr(armcontainerservice.ResourceIdentityTypeSystemAssigned),
		},
		Properties: props,
		Tags:       armTags(labels.NewTagBuilder().Build()),
	}
}

// armSecondaryCluster replicates the system pool into region.
func armSecondaryCluster(cfg config.Config, region string) armcontainerservice.ManagedCluster {
	return armcontainerservice.ManagedCluster{
		Location: to.Ptr(region),
		Identity: &armcontainerservice.ManagedClusterIdentity{
			Type: to.Ptr(armcontainerservice.ResourceIdentityTypeSystemAssigned),
		},
		Properties: &armcontainerservice.ManagedClusterProperties{
			KubernetesVersion: to.Ptr(naming.KubernetesVersion(cfg)),
			DNSPrefix:         to.Ptr(naming.SecondaryDNSPrefix(cfg, region)),
			EnableRBAC:        to.Ptr(cfg.Security.EnableRBAC),
			AgentPoolProfiles: []*armcontainerservice.ManagedClusterAgentPoolProfile{
				armAgentPool(cfg.SystemNodePool, armcontainerservice.AgentPoolModeSystem),
			},
			NetworkProfile: armNetworkProfile(cfg, false),
		},
		Tags: armTags(labels.NewTagBuilder().WithRegion(region).Build()),
	}
}

func armAgentPool(p config.NodePool, mode armcontainerservice.AgentPoolMode) *armcontainerservice.ManagedClusterAgentPoolProfile {
	pool := &armcontainerservice.ManagedClusterAgentPoolProfile{
		Name:              to.Ptr(poolName(p)),
		VMSize:            to.Ptr(vmSize(p)),
		Mode:              to.Ptr(mode),
		OSType:            to.Ptr(armcontainerservice.OSTypeLinux),
		Type:              to.Ptr(armcontainerservice.AgentPoolTypeVirtualMachineScaleSets),
		EnableAutoScaling: to.Ptr(p.EnableAutoScaling),
	}
	if p.EnableAutoScaling {
		pool.MinCount = to.Ptr(int32(p.MinNodes))
		pool.MaxCount = to.Ptr(int32(p.MaxNodes))
	} else {
		pool.Count = to.Ptr(int32(p.NodeCount))
	}
	return pool
}

func armNetworkProfile(cfg config.Config, withPolicy bool) *armcontainerservice.NetworkProfile {
	np := &armcontainerservice.NetworkProfile{
		NetworkPlugin:    to.Ptr(armcontainerservice.NetworkPlugin(networkPlugin(cfg))),
		LoadBalancerSKU:  to.Ptr(armcontainerservice.LoadBalancerSKU(strings.ToLower(loadBalancerSKU(cfg)))),
		ServiceCidr:      to.Ptr(cfg.Networking.ServiceCIDR),
		DockerBridgeCidr: to.Ptr(cfg.Networking.DockerBridgeCIDR),
	}
	if withPolicy && cfg.Security.NetworkPolicy.Enabled() {
		np.NetworkPolicy = to.Ptr(armcontainerservice.NetworkPolicy(cfg.Security.NetworkPolicy))
	}
	return np
}

func armAddonProfiles(cfg config.Config) map[string]*armcontainerservice.ManagedClusterAddonProfile {
	addons := map[string]*armcontainerservice.ManagedClusterAddonProfile{}
	if cfg.Monitoring.EnableContainerInsights {
		ws := strings.TrimSpace(cfg.Monitoring.LogAnalyticsWorkspaceID)
		if ws == "" {
			ws = fmt.Sprintf("[resourceId('%s', '%s')]", workspaceType, naming.LogAnalyticsWorkspace(cfg))
		}
		addons["omsagent"] = &armcontainerservice.ManagedClusterAddonProfile{
			Enabled: to.Ptr(true),
			Config:  map[string]*string{"logAnalyticsWorkspaceResourceID": to.Ptr(ws)},
		}
	}
	if cfg.Addons.EnableHTTPApplicationRouting {
		addons["httpApplicationRouting"] = &armcontainerservice.ManagedClusterAddonProfile{Enabled: to.Ptr(true)}
	}
	if cfg.Addons.EnableAzurePolicy {
		addons["azurepolicy"] = &armcontainerservice.ManagedClusterAddonProfile{Enabled: to.Ptr(true)}
	}
	if cfg.Addons.EnableKeyVaultProvider {
		addons["azureKeyvaultSecretsProvider"] = &armcontainerservice.ManagedClusterAddonProfile{
			Enabled: to.Ptr(true),
			Config:  map[string]*string{"enableSecretRotation": to.Ptr("true")},
		}
	}
	if cfg.Networking.Ingress == config.IngressAppGateway {
		addons["ingressApplicationGateway"] = &armcontainerservice.ManagedClusterAddonProfile{
			Enabled: to.Ptr(true),
			Config: map[string]*string{
				"applicationGatewayName": to.Ptr(naming.AppGateway(cfg)),
				"subnetCIDR":             to.Ptr(appGatewaySubnet),
			},
		}
	}
	return addons
}

// armACR grants AcrPull on the registry to the kubelet identity. The
// assignment name is a name-based GUID so repeated renders agree.
func armACR(cfg config.Config) armResource {
	cluster := naming.ClusterOrDefault(cfg)
	scope := "Microsoft.ContainerRegistry/registries/" + cfg.Addons.ContainerRegistryName
	name := uuid.NewSHA1(roleAssignmentNamespace, []byte(strings.Join([]string{scope, cluster, acrPullRoleID}, "|")))
	return armResource{
		Type:       roleAssignmentType,
		APIVersion: roleAssignmentAPIVersion,
		Name:       name.String(),
		Scope:      scope,
		DependsOn:  []string{"[" + clusterResourceID(cluster) + "]"},
		Properties: map[string]string{
			"roleDefinitionId": fmt.Sprintf("[subscriptionResourceId('Microsoft.Authorization/roleDefinitions', '%s')]", acrPullRoleID),
			"principalId":      fmt.Sprintf("[reference(%s, '%s').identityProfile.kubeletidentity.objectId]", clusterResourceID(cluster), managedClusterAPIVersion),
			"principalType":    "ServicePrincipal",
		},
	}
}

func armTags(tags map[string]string) map[string]*string {
	out := make(map[string]*string, len(tags))
	for k, v := range tags {
		out[k] = to.Ptr(v)
	}
	return out
}
