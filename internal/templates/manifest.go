package templates

import (
	"fmt"
	"strings"

	appsv1 "k8s.io/api/apps/v1"
	autoscalingv2 "k8s.io/api/autoscaling/v2"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/yaml"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/recommend"
	"github.com/imamik/akswiz/internal/util/labels"
	"github.com/imamik/akswiz/internal/util/naming"
	"github.com/imamik/akswiz/internal/util/ptr"
)

// ManifestFile is the bundle file name of the Kubernetes manifest.
const ManifestFile = "resources.yaml"

// Names of the example workload objects.
const (
	AppName       = "my-app"
	AppImage      = "my-registry/my-app:latest"
	appNamespace  = AppName
	limitsName    = AppName + "-limits"
	hpaName       = AppName + "-hpa"
	vpaName       = AppName + "-vpa"
	metricsPort   = "8080"
	metricsPath   = "/metrics"
	gpuResource   = corev1.ResourceName("nvidia.com/gpu")
	affinityScore = 100
)

// Manifest renders the example workload manifests sized by the
// recommendation presets for the configured workload profile.
func Manifest(cfg config.Config) string {
	objs := []runtime.Object{manifestNamespace(cfg)}
	if lr := manifestLimitRange(cfg); lr != nil {
		objs = append(objs, lr)
	}
	objs = append(objs, manifestDeployment(cfg))
	if cfg.Workload.EnableHPA {
		objs = append(objs, manifestHPA(cfg))
	}
	if cfg.Workload.EnableVPA {
		objs = append(objs, manifestVPA(cfg))
	}

	var sb strings.Builder
	sb.WriteString(manifestHeader(cfg))
	for _, obj := range objs {
		sb.WriteString("---\n")
		sb.WriteString(cleanYAML(obj))
	}
	return sb.String()
}

func manifestHeader(cfg config.Config) string {
	pools := make([]string, 0, 1+len(cfg.UserNodePools))
	for _, p := range cfg.AllPools() {
		pools = append(pools, fmt.Sprintf("%s=%s", poolName(p), vmSize(p)))
	}
	lines := []string{
		"# Resource Configuration",
		strings.TrimSuffix(generatedHeader, "\n"),
		fmt.Sprintf("# Cluster: %s (%s)", naming.ClusterOrDefault(cfg), naming.Region(cfg)),
		"# Node pools: " + strings.Join(pools, ", "),
		fmt.Sprintf("# Workload: %s | Traffic: %s", workloadType(cfg), trafficLevel(cfg)),
	}
	for i, l := range lines {
		lines[i] = commentText(l)
	}
	return strings.Join(lines, "\n") + "\n"
}

func manifestNamespace(cfg config.Config) *corev1.Namespace {
	return &corev1.Namespace{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Namespace"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   appNamespace,
			Labels: labels.Namespace(naming.ClusterOrDefault(cfg), podSecurityLevel(cfg)),
		},
	}
}

// manifestLimitRange sets namespace defaults from the pod policy. It is
// omitted unless all four quantities parse.
func manifestLimitRange(cfg config.Config) *corev1.LimitRange {
	pod := cfg.Pod
	quantities := make([]resource.Quantity, 4)
	for i, s := range []string{pod.CPURequest, pod.MemoryRequest, pod.CPULimit, pod.MemoryLimit} {
		q, err := resource.ParseQuantity(strings.TrimSpace(s))
		if err != nil {
			return nil
		}
		quantities[i] = q
	}
	return &corev1.LimitRange{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "LimitRange"},
		ObjectMeta: metav1.ObjectMeta{Name: limitsName, Namespace: appNamespace},
		Spec: corev1.LimitRangeSpec{
			Limits: []corev1.LimitRangeItem{{
				Type: corev1.LimitTypeContainer,
				DefaultRequest: corev1.ResourceList{
					corev1.ResourceCPU:    quantities[0],
					corev1.ResourceMemory: quantities[1],
				},
				Default: corev1.ResourceList{
					corev1.ResourceCPU:    quantities[2],
					corev1.ResourceMemory: quantities[3],
				},
			}},
		},
	}
}

func manifestDeployment(cfg config.Config) *appsv1.Deployment {
	preset := recommend.Resources(workloadType(cfg), trafficLevel(cfg))
	res := corev1.ResourceRequirements{
		Requests: corev1.ResourceList{
			corev1.ResourceCPU:    resource.MustParse(preset.CPURequest),
			corev1.ResourceMemory: resource.MustParse(preset.MemoryRequest),
		},
		Limits: corev1.ResourceList{
			corev1.ResourceCPU:    resource.MustParse(preset.CPULimit),
			corev1.ResourceMemory: resource.MustParse(preset.MemoryLimit),
		},
	}
	if cfg.Workload.WorkloadType == config.WorkloadGPUHeavy {
		res.Limits[gpuResource] = resource.MustParse("1")
	}

	podMeta := metav1.ObjectMeta{Labels: labels.App(AppName)}
	if cfg.Workload.EnableMonitoringIntegration {
		podMeta.Annotations = map[string]string{
			"prometheus.io/scrape": "true",
			"prometheus.io/port":   metricsPort,
			"prometheus.io/path":   metricsPath,
		}
	}

	spec := corev1.PodSpec{
		Containers: []corev1.Container{{
			Name:      AppName,
			Image:     AppImage,
			Resources: res,
		}},
		HostNetwork: cfg.Pod.HostNetwork,
		DNSPolicy:   corev1.DNSPolicy(cfg.Pod.DNSPolicy),
		Affinity:    podAffinity(cfg.Pod),
	}

	return &appsv1.Deployment{
		TypeMeta:   metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: metav1.ObjectMeta{Name: AppName, Namespace: appNamespace, Labels: labels.App(AppName)},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(recommend.Replicas(trafficLevel(cfg))),
			Selector: &metav1.LabelSelector{MatchLabels: labels.App(AppName)},
			Template: corev1.PodTemplateSpec{ObjectMeta: podMeta, Spec: spec},
		},
	}
}

// podAffinity returns nil when neither node affinity nor pod
// anti-affinity is configured.
func podAffinity(pod config.PodPolicy) *corev1.Affinity {
	var aff corev1.Affinity
	key := strings.TrimSpace(pod.NodeSelectorKey)

	if key != "" && pod.NodeAffinity != "" && pod.NodeAffinity != config.AffinityNone {
		req := corev1.NodeSelectorRequirement{Key: key, Operator: corev1.NodeSelectorOpExists}
		if v := strings.TrimSpace(pod.NodeSelectorValue); v != "" {
			req.Operator = corev1.NodeSelectorOpIn
			req.Values = []string{v}
		}
		term := corev1.NodeSelectorTerm{MatchExpressions: []corev1.NodeSelectorRequirement{req}}
		aff.NodeAffinity = &corev1.NodeAffinity{}
		if pod.NodeAffinity == config.AffinityRequired {
			aff.NodeAffinity.RequiredDuringSchedulingIgnoredDuringExecution = &corev1.NodeSelector{
				NodeSelectorTerms: []corev1.NodeSelectorTerm{term},
			}
		} else {
			aff.NodeAffinity.PreferredDuringSchedulingIgnoredDuringExecution = []corev1.PreferredSchedulingTerm{
				{Weight: affinityScore, Preference: term},
			}
		}
	}

	if pod.PodAntiAffinity != "" && pod.PodAntiAffinity != config.AffinityNone {
		topology := strings.TrimSpace(pod.TopologyKey)
		if topology == "" {
			topology = config.DefaultTopologyKey
		}
		term := corev1.PodAffinityTerm{
			LabelSelector: &metav1.LabelSelector{MatchLabels: labels.App(AppName)},
			TopologyKey:   topology,
		}
		aff.PodAntiAffinity = &corev1.PodAntiAffinity{}
		if pod.PodAntiAffinity == config.AffinityRequired {
			aff.PodAntiAffinity.RequiredDuringSchedulingIgnoredDuringExecution = []corev1.PodAffinityTerm{term}
		} else {
			aff.PodAntiAffinity.PreferredDuringSchedulingIgnoredDuringExecution = []corev1.WeightedPodAffinityTerm{
				{Weight: affinityScore, PodAffinityTerm: term},
			}
		}
	}

	if aff.NodeAffinity == nil && aff.PodAntiAffinity == nil {
		return nil
	}
	return &aff
}

func manifestHPA(cfg config.Config) *autoscalingv2.HorizontalPodAutoscaler {
	minR, maxR := recommend.HPABounds(trafficLevel(cfg))
	metric := func(name corev1.ResourceName, target int) autoscalingv2.MetricSpec {
		return autoscalingv2.MetricSpec{
			Type: autoscalingv2.ResourceMetricSourceType,
			Resource: &autoscalingv2.ResourceMetricSource{
				Name: name,
				Target: autoscalingv2.MetricTarget{
					Type:               autoscalingv2.UtilizationMetricType,
					AverageUtilization: ptr.To(int32(target)),
				},
			},
		}
	}
	return &autoscalingv2.HorizontalPodAutoscaler{
		TypeMeta:   metav1.TypeMeta{APIVersion: "autoscaling/v2", Kind: "HorizontalPodAutoscaler"},
		ObjectMeta: metav1.ObjectMeta{Name: hpaName, Namespace: appNamespace},
		Spec: autoscalingv2.HorizontalPodAutoscalerSpec{
			ScaleTargetRef: autoscalingv2.CrossVersionObjectReference{
				APIVersion: "apps/v1",
				Kind:       "Deployment",
				Name:       AppName,
			},
			MinReplicas: ptr.To(minR),
			MaxReplicas: maxR,
			Metrics: []autoscalingv2.MetricSpec{
				metric(corev1.ResourceCPU, cfg.Workload.TargetCPUUtilization),
				metric(corev1.ResourceMemory, cfg.Workload.TargetMemoryUtilization),
			},
		},
	}
}

// manifestVPA is unstructured: the VPA types live outside k8s.io/api.
func manifestVPA(cfg config.Config) *unstructured.Unstructured {
	preset := recommend.Resources(workloadType(cfg), trafficLevel(cfg))
	return &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": "autoscaling.k8s.io/v1",
		"kind":       "VerticalPodAutoscaler",
		"metadata": map[string]any{
			"name":      vpaName,
			"namespace": appNamespace,
		},
		"spec": map[string]any{
			"targetRef": map[string]any{
				"apiVersion": "apps/v1",
				"kind":       "Deployment",
				"name":       AppName,
			},
			"updatePolicy": map[string]any{"updateMode": "Auto"},
			"resourcePolicy": map[string]any{
				"containerPolicies": []any{
					map[string]any{
						"containerName": AppName,
						"minAllowed":    map[string]any{"cpu": preset.CPURequest, "memory": preset.MemoryRequest},
						"maxAllowed":    map[string]any{"cpu": preset.CPULimit, "memory": preset.MemoryLimit},
					},
				},
			},
		},
	}}
}

// cleanYAML converts obj to unstructured form, prunes nulls, empty maps
// and status, and marshals the result.
func cleanYAML(obj runtime.Object) string {
	var m map[string]any
	if u, ok := obj.(*unstructured.Unstructured); ok {
		m = u.Object
	} else {
		var err error
		if m, err = runtime.DefaultUnstructuredConverter.ToUnstructured(obj); err != nil {
			return ""
		}
	}
	pruneMap(m)
	unstructured.RemoveNestedField(m, "metadata", "creationTimestamp")
	unstructured.RemoveNestedField(m, "spec", "template", "metadata", "creationTimestamp")
	delete(m, "status")

	data, err := yaml.Marshal(m)
	if err != nil {
		return ""
	}
	return string(data)
}

// pruneMap recursively drops nil values and empty maps in place. Empty
// slices are kept.
func pruneMap(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, val := range x {
			cleaned := pruneMap(val)
			switch cv := cleaned.(type) {
			case nil:
				delete(x, k)
			case map[string]any:
				if len(cv) == 0 {
					delete(x, k)
				} else {
					x[k] = cv
				}
			default:
				x[k] = cv
			}
		}
		return x
	case []any:
		for i, it := range x {
			x[i] = pruneMap(it)
		}
		return x
	default:
		return x
	}
}

func workloadType(cfg config.Config) config.WorkloadType {
	if cfg.Workload.WorkloadType == "" {
		return config.WorkloadGeneral
	}
	return cfg.Workload.WorkloadType
}

func trafficLevel(cfg config.Config) config.TrafficLevel {
	if cfg.Workload.TrafficLevel == "" {
		return config.TrafficMedium
	}
	return cfg.Workload.TrafficLevel
}
