package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// clusterNameRegex validates the cluster name format: 1-63 alphanumerics or hyphens.
var clusterNameRegex = regexp.MustCompile(`^[a-zA-Z0-9-]{1,63}$`)

// Severity separates checks that block generation from recommendations.
type Severity string

const (
	// SeverityRequired checks must pass before templates are generated.
	SeverityRequired Severity = "required"
	// SeverityAdvisory checks are recommendations and never block generation.
	SeverityAdvisory Severity = "advisory"
)

// CheckResult is the outcome of one validation rule.
type CheckResult struct {
	Label    string   `json:"label"`
	OK       bool     `json:"ok"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

type rule struct {
	label    string
	severity Severity
	message  string
	pass     func(Config) bool
}

// rules is evaluated in order. Each predicate reads only the fields its
// label names.
var rules = []rule{
	{
		label:    "Subscription ID",
		severity: SeverityRequired,
		message:  "Subscription ID is required",
		pass:     func(c Config) bool { return strings.TrimSpace(c.SubscriptionID) != "" },
	},
	{
		label:    "Resource Group Name",
		severity: SeverityRequired,
		message:  "Resource group name is required",
		pass:     func(c Config) bool { return strings.TrimSpace(c.ResourceGroupName) != "" },
	},
	{
		label:    "Cluster Name",
		severity: SeverityRequired,
		message:  "Cluster name is required",
		pass:     func(c Config) bool { return strings.TrimSpace(c.ClusterName) != "" },
	},
	{
		label:    "Cluster name format",
		severity: SeverityRequired,
		message:  "Cluster name must be 1-63 alphanumeric characters and hyphens",
		// An empty name is reported by the required-name rule only.
		pass: func(c Config) bool {
			return strings.TrimSpace(c.ClusterName) == "" || ValidClusterName(c.ClusterName)
		},
	},
	{
		label:    "RBAC enabled",
		severity: SeverityAdvisory,
		message:  "RBAC is strongly recommended",
		pass:     func(c Config) bool { return c.Security.EnableRBAC },
	},
	{
		label:    "Azure AD integration",
		severity: SeverityRequired,
		message:  "Tenant ID is required when Azure AD is enabled",
		pass: func(c Config) bool {
			return !c.Security.EnableAzureAD || strings.TrimSpace(c.Security.AzureADTenantID) != ""
		},
	},
	{
		label:    "Standard Load Balancer",
		severity: SeverityAdvisory,
		message:  "Basic SKU is not recommended for production",
		pass:     func(c Config) bool { return c.Networking.LoadBalancerSKU == LoadBalancerStandard },
	},
	{
		label:    "Container Insights",
		severity: SeverityAdvisory,
		message:  "Monitoring is recommended",
		pass:     func(c Config) bool { return c.Monitoring.EnableContainerInsights },
	},
	{
		label:    "Container registry",
		severity: SeverityRequired,
		message:  "Registry name is required when ACR integration is enabled",
		pass: func(c Config) bool {
			return !c.Addons.EnableACRIntegration || strings.TrimSpace(c.Addons.ContainerRegistryName) != ""
		},
	},
	{
		label:    "Node pool sizing",
		severity: SeverityRequired,
		message: fmt.Sprintf("Fixed pools need %d-%d nodes; autoscaling needs %d <= min <= max <= %d",
			MinFixedNodes, MaxFixedNodes, MinAutoScaleNode, MaxAutoScaleNode),
		pass: func(c Config) bool {
			for _, p := range c.AllPools() {
				if !p.SizingValid() {
					return false
				}
			}
			return true
		},
	},
	{
		label:    "Kubernetes version",
		severity: SeverityRequired,
		message:  "Kubernetes version must look like 1.29, 1.29.x or 1.29.2",
		pass:     func(c Config) bool { return ValidKubernetesVersion(c.KubernetesVersion) },
	},
	{
		label:    "Secondary regions",
		severity: SeverityRequired,
		message:  "Secondary regions must be set and distinct from each other and from the primary region",
		// Regions are compared by RegionSuffix since generated names embed it.
		pass: func(c Config) bool {
			seen := map[string]bool{RegionSuffix(c.Region): true}
			for _, r := range c.MultiRegion.ActiveSecondaryRegions() {
				key := RegionSuffix(r)
				if strings.TrimSpace(r) == "" || seen[key] {
					return false
				}
				seen[key] = true
			}
			return true
		},
	},
	{
		label:    "HPA targets",
		severity: SeverityRequired,
		message:  "HPA utilization targets must be between 30 and 90 in steps of 5",
		pass: func(c Config) bool {
			if !c.Workload.EnableHPA {
				return true
			}
			return validUtilization(c.Workload.TargetCPUUtilization) && validUtilization(c.Workload.TargetMemoryUtilization)
		},
	},
}

// Checks evaluates every validation rule against cfg. Rules are independent;
// a failing rule never prevents later rules from running.
func Checks(cfg Config) []CheckResult {
	results := make([]CheckResult, 0, len(rules))
	for _, r := range rules {
		results = append(results, CheckResult{
			Label:    r.label,
			OK:       r.pass(cfg),
			Message:  r.message,
			Severity: r.severity,
		})
	}
	return results
}

// Passed reports whether every check passed, advisory ones included.
func Passed(results []CheckResult) bool {
	for _, r := range results {
		if !r.OK {
			return false
		}
	}
	return true
}

// RequiredPassed reports whether every required check passed.
func RequiredPassed(results []CheckResult) bool {
	for _, r := range results {
		if r.Severity == SeverityRequired && !r.OK {
			return false
		}
	}
	return true
}

// Failures returns the failing checks of the given severity.
func Failures(results []CheckResult, severity Severity) []CheckResult {
	var out []CheckResult
	for _, r := range results {
		if !r.OK && r.Severity == severity {
			out = append(out, r)
		}
	}
	return out
}

// ValidClusterName reports whether name matches the cluster name format.
func ValidClusterName(name string) bool {
	return clusterNameRegex.MatchString(name)
}

// ValidKubernetesVersion reports whether v is a usable version string.
// A trailing "x" wildcard is accepted.
func ValidKubernetesVersion(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	normalized := strings.ReplaceAll(strings.ToLower(v), ".x", ".0")
	_, err := semver.StrictNewVersion(padVersion(normalized))
	return err == nil
}

// padVersion turns "1.29" into "1.29.0" so strict parsing accepts it.
func padVersion(v string) string {
	if strings.Count(v, ".") == 1 {
		return v + ".0"
	}
	return v
}

func validUtilization(v int) bool {
	return v >= 30 && v <= 90 && v%5 == 0
}

// RegionSuffix turns a region code into an identifier-safe suffix. Characters
// outside [A-Za-z0-9] become underscores.
func RegionSuffix(region string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, region)
}
