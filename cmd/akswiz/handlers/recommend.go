package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/recommend"
)

type recommendation struct {
	Workload    config.WorkloadType          `json:"workload"`
	Traffic     config.TrafficLevel          `json:"traffic"`
	VMSizes     []recommend.VMRecommendation `json:"vmSizes"`
	Resources   recommend.ResourcePreset     `json:"resources"`
	Replicas    int32                        `json:"replicas"`
	MinReplicas int32                        `json:"minReplicas"`
	MaxReplicas int32                        `json:"maxReplicas"`
}

// Recommend prints VM size suggestions and a resource preset for a
// workload profile.
func Recommend(_ context.Context, workload, traffic string, jsonOutput bool) error {
	w := config.WorkloadType(workload)
	if !w.IsValid() {
		return fmt.Errorf("%w: workload %q (valid: %s)", config.ErrInvalidValue, workload, joinValues(w.Values()))
	}
	t := config.TrafficLevel(traffic)
	if !t.IsValid() {
		return fmt.Errorf("%w: traffic %q (valid: %s)", config.ErrInvalidValue, traffic, joinValues(t.Values()))
	}

	rec := recommendation{
		Workload:  w,
		Traffic:   t,
		VMSizes:   recommend.VMSizes(w),
		Resources: recommend.Resources(w, t),
		Replicas:  recommend.Replicas(t),
	}
	rec.MinReplicas, rec.MaxReplicas = recommend.HPABounds(t)

	if jsonOutput {
		b, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Println(string(b))
		return nil
	}

	fmt.Print(renderRecommendation(rec))
	return nil
}

func renderRecommendation(rec recommendation) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  akswiz recommend: %s / %s traffic", rec.Workload, rec.Traffic)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("  VM Sizes"))
	b.WriteString("\n")
	for _, vm := range rec.VMSizes {
		fmt.Fprintf(&b, "    %-22s %s\n", vm.SKU, vm.Description)
		b.WriteString(dimStyle.Render("      " + vm.Reason))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Container Resources"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "    Requests:  cpu %s, memory %s\n", rec.Resources.CPURequest, rec.Resources.MemoryRequest)
	fmt.Fprintf(&b, "    Limits:    cpu %s, memory %s\n", rec.Resources.CPULimit, rec.Resources.MemoryLimit)
	fmt.Fprintf(&b, "    Replicas:  %d (autoscale %d-%d)\n", rec.Replicas, rec.MinReplicas, rec.MaxReplicas)
	b.WriteString("\n")
	return b.String()
}

func joinValues[T ~string](values []T) string {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = string(v)
	}
	return strings.Join(s, ", ")
}
