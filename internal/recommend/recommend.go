// Package recommend maps a workload profile to VM size suggestions,
// container resource presets, and replica bounds.
package recommend

import (
	"github.com/imamik/akswiz/internal/config"
)

// VMRecommendation is a suggested machine size.
type VMRecommendation struct {
	SKU         string `json:"sku"`
	Description string `json:"description"`
	Reason      string `json:"reason"`
}

var vmSizes = map[config.WorkloadType][]VMRecommendation{
	config.WorkloadGeneral: {
		{SKU: "Standard_D4s_v3", Description: "4 vCPU, 16 GiB RAM", Reason: "Balanced compute/memory for most workloads"},
		{SKU: "Standard_D8s_v3", Description: "8 vCPU, 32 GiB RAM", Reason: "Scale-up option for heavier general workloads"},
	},
	config.WorkloadMemoryIntensive: {
		{SKU: "Standard_E4s_v3", Description: "4 vCPU, 32 GiB RAM", Reason: "High memory-to-CPU ratio for in-memory caches or analytics"},
		{SKU: "Standard_E8s_v3", Description: "8 vCPU, 64 GiB RAM", Reason: "Large in-memory datasets and memory-heavy databases"},
	},
	config.WorkloadComputeIntensive: {
		{SKU: "Standard_F4s_v2", Description: "4 vCPU, 8 GiB RAM", Reason: "High CPU frequency for batch processing and simulations"},
		{SKU: "Standard_F8s_v2", Description: "8 vCPU, 16 GiB RAM", Reason: "CPU-bound workloads needing higher parallelism"},
	},
	config.WorkloadGPUHeavy: {
		{SKU: "Standard_NC4as_T4_v3", Description: "4 vCPU, 28 GiB RAM, 1x T4 GPU", Reason: "GPU acceleration for ML inference and graphics workloads"},
		{SKU: "Standard_NC6s_v3", Description: "6 vCPU, 112 GiB RAM, 1x V100 GPU", Reason: "High-performance GPU for model training"},
	},
	config.WorkloadIOIntensive: {
		{SKU: "Standard_L4s", Description: "4 vCPU, 32 GiB RAM, 678 GiB NVMe SSD", Reason: "Local NVMe storage for high-throughput I/O workloads"},
		{SKU: "Standard_L8s_v3", Description: "8 vCPU, 64 GiB RAM, 1.92 TB NVMe SSD", Reason: "Large local SSD for data-intensive applications"},
	},
}

// VMSizes returns two VM size suggestions for the workload type. Unknown
// types get the general suggestions.
func VMSizes(w config.WorkloadType) []VMRecommendation {
	recs, ok := vmSizes[w]
	if !ok {
		recs = vmSizes[config.WorkloadGeneral]
	}
	return append([]VMRecommendation(nil), recs...)
}

// ResourcePreset holds container requests and limits as quantity strings.
type ResourcePreset struct {
	CPURequest    string `json:"cpuRequest"`
	MemoryRequest string `json:"memoryRequest"`
	CPULimit      string `json:"cpuLimit"`
	MemoryLimit   string `json:"memoryLimit"`
}

// presetRow is one traffic level. The heavy columns apply to
// memory-intensive (memory) or compute/GPU (CPU limit) workloads.
type presetRow struct {
	cpuRequest                  string
	memRequestHeavy, memRequest string
	cpuLimitHeavy, cpuLimit     string
	memLimitHeavy, memLimit     string
}

var presets = map[config.TrafficLevel]presetRow{
	config.TrafficLow:    {"100m", "512Mi", "128Mi", "500m", "250m", "1Gi", "256Mi"},
	config.TrafficMedium: {"250m", "1Gi", "256Mi", "1", "500m", "2Gi", "512Mi"},
	config.TrafficHigh:   {"500m", "2Gi", "512Mi", "2", "1", "4Gi", "1Gi"},
	config.TrafficBurst:  {"1", "4Gi", "1Gi", "4", "2", "8Gi", "2Gi"},
}

// Resources returns the request/limit preset for a workload type at a
// traffic level. Memory-intensive workloads get more memory; compute and GPU
// workloads get higher CPU limits. Unknown traffic levels use medium.
func Resources(w config.WorkloadType, t config.TrafficLevel) ResourcePreset {
	row, ok := presets[t]
	if !ok {
		row = presets[config.TrafficMedium]
	}
	isMemory := w == config.WorkloadMemoryIntensive
	isCompute := w == config.WorkloadComputeIntensive || w == config.WorkloadGPUHeavy

	p := ResourcePreset{
		CPURequest:    row.cpuRequest,
		MemoryRequest: row.memRequest,
		CPULimit:      row.cpuLimit,
		MemoryLimit:   row.memLimit,
	}
	if isMemory {
		p.MemoryRequest = row.memRequestHeavy
		p.MemoryLimit = row.memLimitHeavy
	}
	if isCompute {
		p.CPULimit = row.cpuLimitHeavy
	}
	return p
}

// Replicas returns the suggested deployment replica count.
func Replicas(t config.TrafficLevel) int32 {
	switch t {
	case config.TrafficLow:
		return 1
	case config.TrafficBurst:
		return 4
	default:
		return 2
	}
}

// HPABounds returns the autoscaler replica range for a traffic level.
func HPABounds(t config.TrafficLevel) (minReplicas, maxReplicas int32) {
	minReplicas = 2
	if t == config.TrafficLow {
		minReplicas = 1
	}
	switch t {
	case config.TrafficBurst:
		maxReplicas = 20
	case config.TrafficHigh:
		maxReplicas = 10
	default:
		maxReplicas = 5
	}
	return minReplicas, maxReplicas
}
