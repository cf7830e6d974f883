package labels

import (
	"sort"
)

// Azure tag keys.
const (
	TagEnvironment = "Environment"
	TagManagedBy   = "ManagedBy"
	TagRegion      = "Region"
)

// Tag values.
const (
	EnvironmentProduction = "Production"
	ManagedByWizard       = "AKS-Wizard"
)

// Kubernetes label keys.
const (
	KeyApp                = "app"
	KeyPartOf             = "app.kubernetes.io/part-of"
	KeyManagedBy          = "app.kubernetes.io/managed-by"
	KeyPodSecurityEnforce = "pod-security.kubernetes.io/enforce"
)

// TagBuilder provides a fluent interface for building Azure resource tags.
type TagBuilder struct {
	tags map[string]string
}

// NewTagBuilder creates a builder with the environment and managed-by tags
// pre-set.
func NewTagBuilder() *TagBuilder {
	return &TagBuilder{
		tags: map[string]string{
			TagEnvironment: EnvironmentProduction,
			TagManagedBy:   ManagedByWizard,
		},
	}
}

// WithRegion adds a region tag. Secondary clusters carry one.
func (tb *TagBuilder) WithRegion(region string) *TagBuilder {
	tb.tags[TagRegion] = region
	return tb
}

// Merge adds all tags from the provided map.
func (tb *TagBuilder) Merge(extra map[string]string) *TagBuilder {
	for k, v := range extra {
		tb.tags[k] = v
	}
	return tb
}

// Build returns a copy of the tags map.
func (tb *TagBuilder) Build() map[string]string {
	result := make(map[string]string, len(tb.tags))
	for k, v := range tb.tags {
		result[k] = v
	}
	return result
}

// Keys returns tag keys in emission order: Environment, ManagedBy, Region,
// then anything else alphabetically.
func Keys(tags map[string]string) []string {
	rank := map[string]int{TagEnvironment: 0, TagManagedBy: 1, TagRegion: 2}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, iok := rank[keys[i]]
		rj, jok := rank[keys[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

// App returns the selector labels for an application workload.
func App(name string) map[string]string {
	return map[string]string{KeyApp: name}
}

// Namespace returns the labels for an application namespace: the pod
// security enforcement level and the owning cluster.
func Namespace(cluster, podSecurityLevel string) map[string]string {
	return map[string]string{
		KeyPodSecurityEnforce: podSecurityLevel,
		KeyPartOf:             cluster,
		KeyManagedBy:          ManagedByWizard,
	}
}
