package naming

import (
	"fmt"
	"strings"

	"github.com/imamik/akswiz/internal/config"
)

// Fallbacks used when the configuration leaves a name empty.
const (
	DefaultCluster        = "aks"
	DefaultDNSPrefix      = "my-aks"
	DefaultPublisherName  = "AKS-Wizard"
	DefaultPublisherEmail = "admin@contoso.com"
)

func ClusterOrDefault(cfg config.Config) string {
	if name := strings.TrimSpace(cfg.ClusterName); name != "" {
		return name
	}
	return DefaultCluster
}

func ResourceGroup(cfg config.Config) string {
	if rg := strings.TrimSpace(cfg.ResourceGroupName); rg != "" {
		return rg
	}
	return fmt.Sprintf("%s-rg", ClusterOrDefault(cfg))
}

// DNSPrefix returns the configured prefix, else the cluster name, else
// DefaultDNSPrefix.
func DNSPrefix(cfg config.Config) string {
	if p := strings.TrimSpace(cfg.Networking.DNSPrefix); p != "" {
		return p
	}
	if name := strings.TrimSpace(cfg.ClusterName); name != "" {
		return name
	}
	return DefaultDNSPrefix
}

// Region returns the configured region, else config.DefaultRegion.
func Region(cfg config.Config) string {
	if r := strings.TrimSpace(cfg.Region); r != "" {
		return r
	}
	return config.DefaultRegion
}

// KubernetesVersion returns the version string for templates. A trailing
// ".x" wildcard is dropped so the platform picks the latest patch.
func KubernetesVersion(cfg config.Config) string {
	v := strings.TrimSpace(cfg.KubernetesVersion)
	if v == "" {
		v = config.DefaultKubernetesVersion
	}
	return strings.TrimSuffix(v, ".x")
}

func AppGateway(cfg config.Config) string {
	return fmt.Sprintf("%s-appgw", ClusterOrDefault(cfg))
}

// RegistryScope is the resource ID of the container registry granted to
// the kubelet identity.
func RegistryScope(cfg config.Config) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.ContainerRegistry/registries/%s",
		cfg.SubscriptionID, ResourceGroup(cfg), cfg.Addons.ContainerRegistryName)
}

func LogAnalyticsWorkspace(cfg config.Config) string {
	return fmt.Sprintf("%s-law", ClusterOrDefault(cfg))
}

func FrontDoorProfile(cfg config.Config) string {
	return fmt.Sprintf("%s-afd", ClusterOrDefault(cfg))
}

func FrontDoorEndpoint(cfg config.Config) string {
	return fmt.Sprintf("%s-endpoint", FrontDoorProfile(cfg))
}

// WAFPolicy is the profile name reduced to letters and digits plus "waf".
// Firewall policy names may not contain hyphens.
func WAFPolicy(cfg config.Config) string {
	return alphanumeric(FrontDoorProfile(cfg)) + "waf"
}

func FrontDoorOrigin(region string) string {
	return fmt.Sprintf("aks-origin-%s", region)
}

// OriginHost is the placeholder origin host name for a region's ingress.
func OriginHost(region string) string {
	return fmt.Sprintf("replace-with-ingress-ip-%s.nip.io", region)
}

func APIManagement(cfg config.Config) string {
	return fmt.Sprintf("%s-apim", ClusterOrDefault(cfg))
}

func APIMPublisherName(cfg config.Config) string {
	if name := strings.TrimSpace(cfg.ClusterName); name != "" {
		return name
	}
	return DefaultPublisherName
}

func APIMPublisherEmail(cfg config.Config) string {
	if email := strings.TrimSpace(cfg.MultiRegion.APIMPublisherEmail); email != "" {
		return email
	}
	return DefaultPublisherEmail
}

func SecondaryCluster(cfg config.Config, region string) string {
	return fmt.Sprintf("%s-%s", ClusterOrDefault(cfg), region)
}

func SecondaryResourceGroup(cfg config.Config, region string) string {
	return fmt.Sprintf("%s-%s", ResourceGroup(cfg), region)
}

func SecondaryDNSPrefix(cfg config.Config, region string) string {
	return fmt.Sprintf("%s-%s", DNSPrefix(cfg), region)
}

// RegionSuffix turns a region code into an identifier-safe suffix.
func RegionSuffix(region string) string {
	return config.RegionSuffix(region)
}

func alphanumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if isAlnum(r) {
			return r
		}
		return -1
	}, s)
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
