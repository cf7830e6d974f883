package wizard

import (
	"github.com/charmbracelet/huh"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/readiness"
)

// Addon keys offered by the add-ons step.
const (
	AddonHTTPRouting = "http_routing"
	AddonAzurePolicy = "azure_policy"
	AddonKeyVault    = "keyvault"
	AddonKEDA        = "keda"
	AddonDapr        = "dapr"
	AddonACR         = "acr"
)

// AddonOption represents a managed extension that can be enabled.
type AddonOption struct {
	Key         string
	Label       string
	Description string
}

// Addons contains the extensions shown in the add-ons step.
var Addons = []AddonOption{
	{Key: AddonHTTPRouting, Label: "HTTP application routing", Description: "Managed ingress for development clusters"},
	{Key: AddonAzurePolicy, Label: "Azure Policy", Description: "Enforce governance policies in the cluster"},
	{Key: AddonKeyVault, Label: "Key Vault secrets provider", Description: "Mount Key Vault secrets as volumes"},
	{Key: AddonKEDA, Label: "KEDA", Description: "Event-driven autoscaling"},
	{Key: AddonDapr, Label: "Dapr", Description: "Distributed application runtime"},
	{Key: AddonACR, Label: "Container registry integration", Description: "Grant the cluster pull access to a registry"},
}

// enumLabels is keyed by typed enum values, so equal strings of different
// enum types keep separate labels.
var enumLabels = map[any]string{
	config.ModeAutomatic:          "Automatic (managed node pools and upgrades)",
	config.ModeStandard:           "Standard (full control)",
	config.NetworkPluginAzure:     "Azure CNI",
	config.IngressNone:            "None",
	config.IngressNginx:           "NGINX",
	config.IngressAppGateway:      "Application Gateway",
	config.IngressWebAppRouting:   "Web app routing",
	config.NetworkPolicyCalico:    "Calico",
	config.StorageClassPremiumSSD: "Premium SSD",
	config.AffinityNone:           "None",
	config.FrontDoorStandard:      "Standard",
	config.FrontDoorPremium:       "Premium (WAF managed rules)",
}

// label returns the display label of an enum value.
func label[T ~string](v T) string {
	if l, ok := enumLabels[v]; ok {
		return l
	}
	return string(v)
}

// EnumOptions converts enum values into select options, keeping order.
func EnumOptions[T ~string](values []T) []huh.Option[T] {
	opts := make([]huh.Option[T], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(label(v), v)
	}
	return opts
}

// RegionOptions returns the selectable regions, labelled "Name (code)".
func RegionOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(config.Regions))
	for i, r := range config.Regions {
		opts[i] = huh.NewOption(r.Label+" ("+r.Value+")", r.Value)
	}
	return opts
}

// SecondaryRegionOptions returns every region except primary.
func SecondaryRegionOptions(primary string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(config.Regions))
	for _, r := range config.Regions {
		if r.Value == primary {
			continue
		}
		opts = append(opts, huh.NewOption(r.Label+" ("+r.Value+")", r.Value))
	}
	return opts
}

// VMSizeOptions returns the selectable machine sizes. A current value that
// is not in the list is kept as the first option.
func VMSizeOptions(current string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(config.VMSizes)+1)
	known := false
	for _, s := range config.VMSizes {
		if s == current {
			known = true
		}
	}
	if current != "" && !known {
		opts = append(opts, huh.NewOption(current+" (current)", current))
	}
	for _, s := range config.VMSizes {
		opts = append(opts, huh.NewOption(s, s))
	}
	return opts
}

// AddonOptions returns the add-on multi-select options.
func AddonOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(Addons))
	for i, a := range Addons {
		opts[i] = huh.NewOption(a.Label+" - "+a.Description, a.Key)
	}
	return opts
}

// AnswerOptions are the choices for a readiness question.
var AnswerOptions = []huh.Option[readiness.Answer]{
	huh.NewOption("Yes", readiness.Yes),
	huh.NewOption("No", readiness.No),
}
