package templates

import (
	"strings"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/util/naming"
)

// Front Door origin weights.
const (
	primaryOriginWeight   = 1000
	secondaryOriginWeight = 500
)

// origin is one Front Door backend.
type origin struct {
	Region   string
	Priority int
	Weight   int
}

// origins returns the primary region followed by the secondaries in list
// order. The primary has priority 1; each secondary's priority is its
// 1-based position in the combined list.
func origins(cfg config.Config) []origin {
	regions := append([]string{naming.Region(cfg)}, secondaryRegions(cfg)...)
	out := make([]origin, len(regions))
	for i, r := range regions {
		w := secondaryOriginWeight
		if i == 0 {
			w = primaryOriginWeight
		}
		out[i] = origin{Region: r, Priority: i + 1, Weight: w}
	}
	return out
}

// secondaryRegions returns the regions that get a replicated cluster. Blank
// entries and regions whose name suffix is already taken (by the primary or
// an earlier secondary) are skipped, so forced output has no duplicate
// resource names.
func secondaryRegions(cfg config.Config) []string {
	active := cfg.MultiRegion.ActiveSecondaryRegions()
	if len(active) == 0 {
		return nil
	}
	seen := map[string]bool{naming.RegionSuffix(naming.Region(cfg)): true}
	out := make([]string, 0, len(active))
	for _, r := range active {
		key := naming.RegionSuffix(r)
		if strings.TrimSpace(r) == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// commentText flattens text onto one line so user-supplied values cannot
// break out of a generated comment.
func commentText(text string) string {
	return strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(text)
}

// joinFragments concatenates the non-empty fragments, one blank line apart.
func joinFragments(fragments ...string) string {
	var sb strings.Builder
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(f)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Enum fallbacks keep the generators total over partially filled configs.

func networkPlugin(cfg config.Config) string {
	if cfg.Networking.NetworkPlugin == "" {
		return string(config.NetworkPluginAzure)
	}
	return string(cfg.Networking.NetworkPlugin)
}

func loadBalancerSKU(cfg config.Config) string {
	if cfg.Networking.LoadBalancerSKU == "" {
		return string(config.LoadBalancerStandard)
	}
	return string(cfg.Networking.LoadBalancerSKU)
}

func frontDoorSKU(cfg config.Config) string {
	if cfg.MultiRegion.FrontDoorSKU == "" {
		return string(config.FrontDoorStandard)
	}
	return string(cfg.MultiRegion.FrontDoorSKU)
}

func apimSKU(cfg config.Config) string {
	if cfg.MultiRegion.APIMSKU == "" {
		return string(config.APIMDeveloper)
	}
	return string(cfg.MultiRegion.APIMSKU)
}

func podSecurityLevel(cfg config.Config) string {
	if cfg.Security.PodSecurityLevel == "" {
		return string(config.PodSecurityBaseline)
	}
	return string(cfg.Security.PodSecurityLevel)
}

func poolName(p config.NodePool) string {
	if p.Name == "" {
		return config.DefaultSystemPoolName
	}
	return p.Name
}

func vmSize(p config.NodePool) string {
	if p.VMSize == "" {
		return config.DefaultVMSize
	}
	return p.VMSize
}

// needsWorkspace reports whether a Log Analytics workspace is synthesized.
func needsWorkspace(cfg config.Config) bool {
	return cfg.Monitoring.EnableContainerInsights && strings.TrimSpace(cfg.Monitoring.LogAnalyticsWorkspaceID) == ""
}

func azureADActive(cfg config.Config) bool {
	return cfg.Security.EnableAzureAD && strings.TrimSpace(cfg.Security.AzureADTenantID) != ""
}

func acrActive(cfg config.Config) bool {
	return cfg.Addons.EnableACRIntegration && strings.TrimSpace(cfg.Addons.ContainerRegistryName) != ""
}

// appGatewaySubnet is the subnet the managed Application Gateway ingress
// creates when no existing gateway is referenced.
const appGatewaySubnet = "10.225.0.0/16"

// managedRuleSet is a WAF rule set enabled on Premium Front Door.
type managedRuleSet struct {
	Type    string
	Version string
}

var managedRuleSets = []managedRuleSet{
	{Type: "Microsoft_DefaultRuleSet", Version: "2.1"},
	{Type: "Microsoft_BotManagerRuleSet", Version: "1.0"},
}
