package templates

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/util/labels"
	"github.com/imamik/akswiz/internal/util/naming"
)

// TerraformFile is the bundle file name of the Terraform output.
const TerraformFile = "main.tf"

const azurermVersion = "~> 3.0"

// Terraform renders the azurerm configuration for cfg.
func Terraform(cfg config.Config) string {
	src := joinFragments(
		tfProvider(cfg),
		tfResourceGroup(cfg),
		tfWorkspace(cfg),
		tfCluster(cfg),
		tfUserPools(cfg),
		tfACR(cfg),
		tfExtensions(cfg),
		tfFrontDoor(cfg),
		tfSecondaryClusters(cfg),
		tfAPIM(cfg),
		tfOutputs(cfg),
	)
	return string(hclwrite.Format([]byte(src)))
}

func tfProvider(cfg config.Config) string {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	tf := root.AppendNewBlock("terraform", nil).Body()
	providers := tf.AppendNewBlock("required_providers", nil).Body()
	providers.SetAttributeValue("azurerm", cty.ObjectVal(map[string]cty.Value{
		"source":  cty.StringVal("hashicorp/azurerm"),
		"version": cty.StringVal(azurermVersion),
	}))
	root.AppendNewline()

	provider := root.AppendNewBlock("provider", []string{"azurerm"}).Body()
	provider.AppendNewBlock("features", nil)
	provider.SetAttributeValue("subscription_id", cty.StringVal(cfg.SubscriptionID))
	return string(f.Bytes())
}

func tfResourceGroup(cfg config.Config) string {
	f := hclwrite.NewEmptyFile()
	rg := f.Body().AppendNewBlock("resource", []string{"azurerm_resource_group", "aks_rg"}).Body()
	rg.SetAttributeValue("name", cty.StringVal(naming.ResourceGroup(cfg)))
	rg.SetAttributeValue("location", cty.StringVal(naming.Region(cfg)))
	return string(f.Bytes())
}

func tfWorkspace(cfg config.Config) string {
	if !needsWorkspace(cfg) {
		return ""
	}
	f := hclwrite.NewEmptyFile()
	law := f.Body().AppendNewBlock("resource", []string{"azurerm_log_analytics_workspace", "aks_law"}).Body()
	law.SetAttributeValue("name", cty.StringVal(naming.LogAnalyticsWorkspace(cfg)))
	law.SetAttributeRaw("location", ref("azurerm_resource_group.aks_rg.location"))
	law.SetAttributeRaw("resource_group_name", ref("azurerm_resource_group.aks_rg.name"))
	law.SetAttributeValue("sku", cty.StringVal("PerGB2018"))
	law.SetAttributeValue("retention_in_days", cty.NumberIntVal(30))
	return string(f.Bytes())
}

func tfCluster(cfg config.Config) string {
	f := hclwrite.NewEmptyFile()
	aks := f.Body().AppendNewBlock("resource", []string{"azurerm_kubernetes_cluster", "aks"}).Body()
	aks.SetAttributeValue("name", cty.StringVal(naming.ClusterOrDefault(cfg)))
	aks.SetAttributeRaw("location", ref("azurerm_resource_group.aks_rg.location"))
	aks.SetAttributeRaw("resource_group_name", ref("azurerm_resource_group.aks_rg.name"))
	aks.SetAttributeValue("dns_prefix", cty.StringVal(naming.DNSPrefix(cfg)))
	aks.SetAttributeValue("kubernetes_version", cty.StringVal(naming.KubernetesVersion(cfg)))

	if cfg.Security.EnableRBAC {
		aks.SetAttributeValue("role_based_access_control_enabled", cty.True)
	}
	if cfg.Security.AutoUpgradeChannel.Enabled() {
		aks.SetAttributeValue("automatic_channel_upgrade", cty.StringVal(string(cfg.Security.AutoUpgradeChannel)))
	}
	if cfg.Addons.EnableHTTPApplicationRouting {
		aks.SetAttributeValue("http_application_routing_enabled", cty.True)
	}
	if cfg.Addons.EnableAzurePolicy {
		aks.SetAttributeValue("azure_policy_enabled", cty.True)
	}
	if cfg.Security.EnablePodIdentity {
		aks.SetAttributeValue("oidc_issuer_enabled", cty.True)
		aks.SetAttributeValue("workload_identity_enabled", cty.True)
	}
	aks.AppendNewline()

	pool := aks.AppendNewBlock("default_node_pool", nil).Body()
	pool.SetAttributeValue("name", cty.StringVal(poolName(cfg.SystemNodePool)))
	pool.SetAttributeValue("vm_size", cty.StringVal(vmSize(cfg.SystemNodePool)))
	tfScaling(pool, cfg.SystemNodePool)
	aks.AppendNewline()

	aks.AppendNewBlock("identity", nil).Body().SetAttributeValue("type", cty.StringVal("SystemAssigned"))
	aks.AppendNewline()

	network := aks.AppendNewBlock("network_profile", nil).Body()
	network.SetAttributeValue("network_plugin", cty.StringVal(networkPlugin(cfg)))
	network.SetAttributeValue("load_balancer_sku", cty.StringVal(strings.ToLower(loadBalancerSKU(cfg))))
	network.SetAttributeValue("service_cidr", cty.StringVal(cfg.Networking.ServiceCIDR))
	network.SetAttributeValue("docker_bridge_cidr", cty.StringVal(cfg.Networking.DockerBridgeCIDR))
	if cfg.Security.NetworkPolicy.Enabled() {
		network.SetAttributeValue("network_policy", cty.StringVal(string(cfg.Security.NetworkPolicy)))
	}

	tfAzureAD(aks, cfg)
	tfAddonBlocks(aks, cfg)

	aks.AppendNewline()
	aks.SetAttributeValue("tags", tfTags(labels.NewTagBuilder().Build()))
	return string(f.Bytes())
}

// tfAzureAD nests the managed AAD integration inside the cluster resource.
func tfAzureAD(aks *hclwrite.Body, cfg config.Config) {
	if !azureADActive(cfg) {
		return
	}
	aks.AppendNewline()
	comment(aks, "Azure AD RBAC")
	aad := aks.AppendNewBlock("azure_active_directory_role_based_access_control", nil).Body()
	aad.SetAttributeValue("managed", cty.True)
	aad.SetAttributeValue("tenant_id", cty.StringVal(cfg.Security.AzureADTenantID))
	aad.SetAttributeValue("azure_rbac_enabled", cty.True)
}

func tfAddonBlocks(aks *hclwrite.Body, cfg config.Config) {
	if cfg.Monitoring.EnableContainerInsights {
		aks.AppendNewline()
		oms := aks.AppendNewBlock("oms_agent", nil).Body()
		if id := strings.TrimSpace(cfg.Monitoring.LogAnalyticsWorkspaceID); id != "" {
			oms.SetAttributeValue("log_analytics_workspace_id", cty.StringVal(id))
		} else {
			oms.SetAttributeRaw("log_analytics_workspace_id", ref("azurerm_log_analytics_workspace.aks_law.id"))
		}
	}
	if cfg.Addons.EnableKeyVaultProvider {
		aks.AppendNewline()
		kv := aks.AppendNewBlock("key_vault_secrets_provider", nil).Body()
		kv.SetAttributeValue("secret_rotation_enabled", cty.True)
	}
	if cfg.Networking.EnableServiceMesh {
		aks.AppendNewline()
		mesh := aks.AppendNewBlock("service_mesh_profile", nil).Body()
		mesh.SetAttributeValue("mode", cty.StringVal("Istio"))
	}
	switch cfg.Networking.Ingress {
	case config.IngressAppGateway:
		aks.AppendNewline()
		agw := aks.AppendNewBlock("ingress_application_gateway", nil).Body()
		agw.SetAttributeValue("gateway_name", cty.StringVal(naming.AppGateway(cfg)))
		agw.SetAttributeValue("subnet_cidr", cty.StringVal(appGatewaySubnet))
	case config.IngressWebAppRouting:
		aks.AppendNewline()
		war := aks.AppendNewBlock("web_app_routing", nil).Body()
		war.SetAttributeValue("dns_zone_ids", cty.ListValEmpty(cty.String))
	}
	if cfg.Addons.EnableKEDA || cfg.Workload.EnableVPA {
		aks.AppendNewline()
		was := aks.AppendNewBlock("workload_autoscaler_profile", nil).Body()
		if cfg.Addons.EnableKEDA {
			was.SetAttributeValue("keda_enabled", cty.True)
		}
		if cfg.Workload.EnableVPA {
			was.SetAttributeValue("vertical_pod_autoscaler_enabled", cty.True)
		}
	}
}

func tfUserPools(cfg config.Config) string {
	if len(cfg.UserNodePools) == 0 {
		return ""
	}
	f := hclwrite.NewEmptyFile()
	root := f.Body()
	for i, p := range cfg.UserNodePools {
		if i > 0 {
			root.AppendNewline()
		}
		pool := root.AppendNewBlock("resource", []string{"azurerm_kubernetes_cluster_node_pool", fmt.Sprintf("user_%d", i+1)}).Body()
		pool.SetAttributeRaw("kubernetes_cluster_id", ref("azurerm_kubernetes_cluster.aks.id"))
		pool.SetAttributeValue("name", cty.StringVal(p.Name))
		pool.SetAttributeValue("vm_size", cty.StringVal(vmSize(p)))
		pool.SetAttributeValue("mode", cty.StringVal(string(config.PoolModeUser)))
		tfScaling(pool, p)
	}
	return string(f.Bytes())
}

func tfACR(cfg config.Config) string {
	if !acrActive(cfg) {
		return ""
	}
	f := hclwrite.NewEmptyFile()
	root := f.Body()
	comment(root, "Grant AcrPull role to the cluster's kubelet identity")
	ra := root.AppendNewBlock("resource", []string{"azurerm_role_assignment", "acr_pull"}).Body()
	ra.SetAttributeRaw("principal_id", ref("azurerm_kubernetes_cluster.aks.kubelet_identity[0].object_id"))
	ra.SetAttributeValue("role_definition_name", cty.StringVal("AcrPull"))
	ra.SetAttributeValue("scope", cty.StringVal(naming.RegistryScope(cfg)))
	ra.SetAttributeValue("skip_service_principal_aad_check", cty.True)
	return string(f.Bytes())
}

// tfExtensions installs cluster extensions that have no first-class
// cluster argument.
func tfExtensions(cfg config.Config) string {
	if !cfg.Addons.EnableDapr {
		return ""
	}
	f := hclwrite.NewEmptyFile()
	ext := f.Body().AppendNewBlock("resource", []string{"azurerm_kubernetes_cluster_extension", "dapr"}).Body()
	ext.SetAttributeValue("name", cty.StringVal("dapr"))
	ext.SetAttributeRaw("cluster_id", ref("azurerm_kubernetes_cluster.aks.id"))
	ext.SetAttributeValue("extension_type", cty.StringVal("Microsoft.Dapr"))
	return string(f.Bytes())
}

func tfFrontDoor(cfg config.Config) string {
	if !cfg.MultiRegion.FrontDoorActive() {
		return ""
	}
	mr := cfg.MultiRegion
	sku := frontDoorSKU(cfg)
	all := origins(cfg)

	f := hclwrite.NewEmptyFile()
	root := f.Body()
	comment(root, "Azure Front Door")

	profile := root.AppendNewBlock("resource", []string{"azurerm_cdn_frontdoor_profile", "afd"}).Body()
	profile.SetAttributeValue("name", cty.StringVal(naming.FrontDoorProfile(cfg)))
	profile.SetAttributeRaw("resource_group_name", ref("azurerm_resource_group.aks_rg.name"))
	profile.SetAttributeValue("sku_name", cty.StringVal(sku))
	profile.AppendNewline()
	profile.SetAttributeValue("tags", tfTags(labels.NewTagBuilder().Build()))
	root.AppendNewline()

	endpoint := root.AppendNewBlock("resource", []string{"azurerm_cdn_frontdoor_endpoint", "afd_endpoint"}).Body()
	endpoint.SetAttributeValue("name", cty.StringVal(naming.FrontDoorEndpoint(cfg)))
	endpoint.SetAttributeRaw("cdn_frontdoor_profile_id", ref("azurerm_cdn_frontdoor_profile.afd.id"))
	endpoint.SetAttributeValue("enabled", cty.True)
	root.AppendNewline()

	group := root.AppendNewBlock("resource", []string{"azurerm_cdn_frontdoor_origin_group", "aks_origins"}).Body()
	group.SetAttributeValue("name", cty.StringVal("aks-origin-group"))
	group.SetAttributeRaw("cdn_frontdoor_profile_id", ref("azurerm_cdn_frontdoor_profile.afd.id"))
	group.AppendNewline()
	lb := group.AppendNewBlock("load_balancing", nil).Body()
	lb.SetAttributeValue("sample_size", cty.NumberIntVal(4))
	lb.SetAttributeValue("successful_samples_required", cty.NumberIntVal(3))
	lb.SetAttributeValue("additional_latency_in_milliseconds", cty.NumberIntVal(50))
	if mr.EnableHealthProbes {
		group.AppendNewline()
		probe := group.AppendNewBlock("health_probe", nil).Body()
		probe.SetAttributeValue("interval_in_seconds", cty.NumberIntVal(30))
		probe.SetAttributeValue("path", cty.StringVal("/healthz"))
		probe.SetAttributeValue("protocol", cty.StringVal("Https"))
		probe.SetAttributeValue("request_type", cty.StringVal("HEAD"))
	}

	originRefs := make([]hclwrite.Tokens, 0, len(all))
	for _, o := range all {
		label := "aks_" + naming.RegionSuffix(o.Region)
		root.AppendNewline()
		comment(root, fmt.Sprintf("Replace host_name and origin_host_header with the ingress address for %s", o.Region))
		ob := root.AppendNewBlock("resource", []string{"azurerm_cdn_frontdoor_origin", label}).Body()
		ob.SetAttributeValue("name", cty.StringVal(naming.FrontDoorOrigin(o.Region)))
		ob.SetAttributeRaw("cdn_frontdoor_origin_group_id", ref("azurerm_cdn_frontdoor_origin_group.aks_origins.id"))
		ob.SetAttributeValue("enabled", cty.True)
		ob.SetAttributeValue("host_name", cty.StringVal(naming.OriginHost(o.Region)))
		ob.SetAttributeValue("http_port", cty.NumberIntVal(80))
		ob.SetAttributeValue("https_port", cty.NumberIntVal(443))
		ob.SetAttributeValue("origin_host_header", cty.StringVal(naming.OriginHost(o.Region)))
		ob.SetAttributeValue("priority", cty.NumberIntVal(int64(o.Priority)))
		ob.SetAttributeValue("weight", cty.NumberIntVal(int64(o.Weight)))
		originRefs = append(originRefs, ref("azurerm_cdn_frontdoor_origin."+label+".id"))
	}
	root.AppendNewline()

	route := root.AppendNewBlock("resource", []string{"azurerm_cdn_frontdoor_route", "default_route"}).Body()
	route.SetAttributeValue("name", cty.StringVal("default-route"))
	route.SetAttributeRaw("cdn_frontdoor_endpoint_id", ref("azurerm_cdn_frontdoor_endpoint.afd_endpoint.id"))
	route.SetAttributeRaw("cdn_frontdoor_origin_group_id", ref("azurerm_cdn_frontdoor_origin_group.aks_origins.id"))
	route.SetAttributeRaw("cdn_frontdoor_origin_ids", hclwrite.TokensForTuple(originRefs))
	route.SetAttributeValue("enabled", cty.True)
	route.SetAttributeValue("forwarding_protocol", cty.StringVal("HttpsOnly"))
	route.SetAttributeValue("https_redirect_enabled", cty.True)
	route.SetAttributeValue("patterns_to_match", cty.ListVal([]cty.Value{cty.StringVal("/*")}))
	route.SetAttributeValue("supported_protocols", cty.ListVal([]cty.Value{cty.StringVal("Http"), cty.StringVal("Https")}))
	route.SetAttributeValue("link_to_default_domain", cty.True)

	if mr.EnableWAF {
		root.AppendNewline()
		comment(root, "Web Application Firewall Policy")
		waf := root.AppendNewBlock("resource", []string{"azurerm_cdn_frontdoor_firewall_policy", "waf"}).Body()
		waf.SetAttributeValue("name", cty.StringVal(naming.WAFPolicy(cfg)))
		waf.SetAttributeRaw("resource_group_name", ref("azurerm_resource_group.aks_rg.name"))
		waf.SetAttributeValue("sku_name", cty.StringVal(sku))
		waf.SetAttributeValue("enabled", cty.True)
		waf.SetAttributeValue("mode", cty.StringVal("Prevention"))
		if sku == string(config.FrontDoorPremium) {
			for _, rs := range managedRuleSets {
				waf.AppendNewline()
				rule := waf.AppendNewBlock("managed_rule", nil).Body()
				rule.SetAttributeValue("type", cty.StringVal(rs.Type))
				rule.SetAttributeValue("version", cty.StringVal(rs.Version))
				rule.SetAttributeValue("action", cty.StringVal("Block"))
			}
		}
		root.AppendNewline()

		sp := root.AppendNewBlock("resource", []string{"azurerm_cdn_frontdoor_security_policy", "waf_policy"}).Body()
		sp.SetAttributeValue("name", cty.StringVal("waf-security-policy"))
		sp.SetAttributeRaw("cdn_frontdoor_profile_id", ref("azurerm_cdn_frontdoor_profile.afd.id"))
		sp.AppendNewline()
		fw := sp.AppendNewBlock("security_policies", nil).Body().AppendNewBlock("firewall", nil).Body()
		fw.SetAttributeRaw("cdn_frontdoor_firewall_policy_id", ref("azurerm_cdn_frontdoor_firewall_policy.waf.id"))
		fw.AppendNewline()
		assoc := fw.AppendNewBlock("association", nil).Body()
		assoc.AppendNewBlock("domain", nil).Body().SetAttributeRaw("cdn_frontdoor_domain_id", ref("azurerm_cdn_frontdoor_endpoint.afd_endpoint.id"))
		assoc.SetAttributeValue("patterns_to_match", cty.ListVal([]cty.Value{cty.StringVal("/*")}))
	}
	root.AppendNewline()

	out := root.AppendNewBlock("output", []string{"frontdoor_endpoint"}).Body()
	out.SetAttributeRaw("value", ref("azurerm_cdn_frontdoor_endpoint.afd_endpoint.host_name"))
	return string(f.Bytes())
}

func tfSecondaryClusters(cfg config.Config) string {
	regions := secondaryRegions(cfg)
	if len(regions) == 0 {
		return ""
	}
	f := hclwrite.NewEmptyFile()
	root := f.Body()
	for i, region := range regions {
		suffix := naming.RegionSuffix(region)
		rgLabel := "aks_rg_" + suffix
		aksLabel := "aks_" + suffix

		if i > 0 {
			root.AppendNewline()
		}
		comment(root, "Secondary AKS cluster: "+region)
		rg := root.AppendNewBlock("resource", []string{"azurerm_resource_group", rgLabel}).Body()
		rg.SetAttributeValue("name", cty.StringVal(naming.SecondaryResourceGroup(cfg, region)))
		rg.SetAttributeValue("location", cty.StringVal(region))
		root.AppendNewline()

		aks := root.AppendNewBlock("resource", []string{"azurerm_kubernetes_cluster", aksLabel}).Body()
		aks.SetAttributeValue("name", cty.StringVal(naming.SecondaryCluster(cfg, region)))
		aks.SetAttributeRaw("location", ref("azurerm_resource_group."+rgLabel+".location"))
		aks.SetAttributeRaw("resource_group_name", ref("azurerm_resource_group."+rgLabel+".name"))
		aks.SetAttributeValue("dns_prefix", cty.StringVal(naming.SecondaryDNSPrefix(cfg, region)))
		aks.SetAttributeValue("kubernetes_version", cty.StringVal(naming.KubernetesVersion(cfg)))
		aks.AppendNewline()

		pool := aks.AppendNewBlock("default_node_pool", nil).Body()
		pool.SetAttributeValue("name", cty.StringVal(poolName(cfg.SystemNodePool)))
		pool.SetAttributeValue("vm_size", cty.StringVal(vmSize(cfg.SystemNodePool)))
		tfScaling(pool, cfg.SystemNodePool)
		aks.AppendNewline()

		aks.AppendNewBlock("identity", nil).Body().SetAttributeValue("type", cty.StringVal("SystemAssigned"))
		aks.AppendNewline()
		aks.SetAttributeValue("tags", tfTags(labels.NewTagBuilder().WithRegion(region).Build()))
		root.AppendNewline()

		out := root.AppendNewBlock("output", []string{"cluster_endpoint_" + suffix}).Body()
		out.SetAttributeRaw("value", ref("azurerm_kubernetes_cluster."+aksLabel+".kube_config[0].host"))
	}
	return string(f.Bytes())
}

func tfAPIM(cfg config.Config) string {
	if !cfg.MultiRegion.APIMActive() {
		return ""
	}
	f := hclwrite.NewEmptyFile()
	root := f.Body()
	comment(root, "Azure API Management")
	apim := root.AppendNewBlock("resource", []string{"azurerm_api_management", "apim"}).Body()
	apim.SetAttributeValue("name", cty.StringVal(naming.APIManagement(cfg)))
	apim.SetAttributeRaw("location", ref("azurerm_resource_group.aks_rg.location"))
	apim.SetAttributeRaw("resource_group_name", ref("azurerm_resource_group.aks_rg.name"))
	apim.SetAttributeValue("publisher_name", cty.StringVal(naming.APIMPublisherName(cfg)))
	apim.SetAttributeValue("publisher_email", cty.StringVal(naming.APIMPublisherEmail(cfg)))
	apim.SetAttributeValue("sku_name", cty.StringVal(apimSKU(cfg)+"_1"))
	apim.AppendNewline()
	apim.SetAttributeValue("tags", tfTags(labels.NewTagBuilder().Build()))
	root.AppendNewline()

	gw := root.AppendNewBlock("output", []string{"apim_gateway_url"}).Body()
	gw.SetAttributeRaw("value", ref("azurerm_api_management.apim.gateway_url"))
	root.AppendNewline()
	portal := root.AppendNewBlock("output", []string{"apim_portal_url"}).Body()
	portal.SetAttributeRaw("value", ref("azurerm_api_management.apim.developer_portal_url"))
	return string(f.Bytes())
}

func tfOutputs(_ config.Config) string {
	f := hclwrite.NewEmptyFile()
	root := f.Body()
	kc := root.AppendNewBlock("output", []string{"kube_config"}).Body()
	kc.SetAttributeRaw("value", ref("azurerm_kubernetes_cluster.aks.kube_config_raw"))
	kc.SetAttributeValue("sensitive", cty.True)
	root.AppendNewline()
	ep := root.AppendNewBlock("output", []string{"cluster_endpoint"}).Body()
	ep.SetAttributeRaw("value", ref("azurerm_kubernetes_cluster.aks.kube_config[0].host"))
	return string(f.Bytes())
}

func tfScaling(pool *hclwrite.Body, p config.NodePool) {
	pool.SetAttributeValue("enable_auto_scaling", cty.BoolVal(p.EnableAutoScaling))
	if p.EnableAutoScaling {
		pool.SetAttributeValue("min_count", cty.NumberIntVal(int64(p.MinNodes)))
		pool.SetAttributeValue("max_count", cty.NumberIntVal(int64(p.MaxNodes)))
		return
	}
	pool.SetAttributeValue("node_count", cty.NumberIntVal(int64(p.NodeCount)))
}

func tfTags(tags map[string]string) cty.Value {
	vals := make(map[string]cty.Value, len(tags))
	for k, v := range tags {
		vals[k] = cty.StringVal(v)
	}
	return cty.ObjectVal(vals)
}

// ref is a raw reference expression such as azurerm_resource_group.aks_rg.name.
func ref(expr string) hclwrite.Tokens {
	return hclwrite.Tokens{{Type: hclsyntax.TokenIdent, Bytes: []byte(expr)}}
}

func comment(body *hclwrite.Body, text string) {
	body.AppendUnstructuredTokens(hclwrite.Tokens{
		{Type: hclsyntax.TokenComment, Bytes: []byte("# " + commentText(text) + "\n")},
	})
}
