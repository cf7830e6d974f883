// Package pricing estimates the monthly cost of an AKS configuration.
package pricing

import (
	"fmt"

	"github.com/imamik/akswiz/internal/config"
)

// DefaultVMPrice is the monthly price used for VM sizes missing from the
// price table.
const DefaultVMPrice = 100

// Fixed monthly surcharges in USD.
const (
	ContainerInsightsPrice = 30
	PrometheusPrice        = 20
	AzureMonitorPrice      = 10
	AlertsPrice            = 5
	DiagnosticsPrice       = 5

	AzurePolicyPrice = 5

	PremiumSSDPrice   = 40
	AzureDiskPrice    = 20
	AzureFilePrice    = 15
	DefaultDiskPrice  = 10
	FrontDoorPremium  = 330
	FrontDoorStandard = 35
)

// Prices holds the VM price table in USD per node per month.
type Prices struct {
	VMSizes   map[string]int `json:"vmSizes"`
	DefaultVM int            `json:"defaultVmPrice"`
}

// DefaultPrices returns the built-in price table.
func DefaultPrices() *Prices {
	return &Prices{
		VMSizes: map[string]int{
			"Standard_D2s_v3":  70,
			"Standard_D4s_v3":  140,
			"Standard_D8s_v3":  280,
			"Standard_D16s_v3": 560,
			"Standard_E4s_v3":  175,
			"Standard_E8s_v3":  350,
			"Standard_F4s_v2":  120,
			"Standard_F8s_v2":  240,
			"Standard_B2ms":    55,
			"Standard_B4ms":    110,
		},
		DefaultVM: DefaultVMPrice,
	}
}

// VMPrice returns the monthly price of one node of the given size.
func (p *Prices) VMPrice(size string) int {
	if price, ok := p.VMSizes[size]; ok {
		return price
	}
	if p.DefaultVM > 0 {
		return p.DefaultVM
	}
	return DefaultVMPrice
}

// Calculator computes cost estimates from a configuration.
type Calculator struct {
	prices *Prices
}

// NewCalculator creates a calculator with the built-in prices.
func NewCalculator() *Calculator {
	return &Calculator{prices: DefaultPrices()}
}

// NewCalculatorWithPrices creates a calculator with custom prices.
func NewCalculatorWithPrices(prices *Prices) *Calculator {
	if prices == nil {
		prices = DefaultPrices()
	}
	return &Calculator{prices: prices}
}

// Estimate is a monthly cost breakdown. Total is the exact sum of the
// component fields.
type Estimate struct {
	ClusterName string
	Region      string
	Items       []LineItem

	SystemPool  int
	UserPools   int
	Monitoring  int
	Addons      int
	Storage     int
	MultiRegion int
	Total       int
}

// LineItem is a single display row of an estimate.
type LineItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitType    string `json:"unit_type,omitempty"`
	UnitPrice   int    `json:"unit_price"`
	Total       int    `json:"total"`
}

// AnnualCost returns the estimated yearly cost.
func (e *Estimate) AnnualCost() int {
	return e.Total * 12
}

// Calculate computes the estimate. It never fails: unknown VM sizes use the
// default price and unknown storage classes the default disk price.
func (c *Calculator) Calculate(cfg config.Config) *Estimate {
	e := &Estimate{
		ClusterName: cfg.ClusterName,
		Region:      cfg.Region,
	}

	sys := cfg.SystemNodePool
	sysItem := c.poolItem("System pool", sys)
	e.SystemPool = sysItem.Total
	e.Items = append(e.Items, sysItem)

	for _, pool := range cfg.UserNodePools {
		item := c.poolItem(fmt.Sprintf("Pool %s", pool.Name), pool)
		e.UserPools += item.Total
		e.Items = append(e.Items, item)
	}

	mon := cfg.Monitoring
	for _, s := range []struct {
		on    bool
		desc  string
		price int
	}{
		{mon.EnableContainerInsights, "Container Insights", ContainerInsightsPrice},
		{mon.EnablePrometheus, "Managed Prometheus", PrometheusPrice},
		{mon.EnableAzureMonitor, "Azure Monitor", AzureMonitorPrice},
		{mon.EnableAlerts, "Alerts", AlertsPrice},
		{mon.EnableDiagnosticSettings, "Diagnostic settings", DiagnosticsPrice},
	} {
		if s.on {
			e.Monitoring += s.price
			e.Items = append(e.Items, flatItem(s.desc, s.price))
		}
	}

	if cfg.Addons.EnableAzurePolicy {
		e.Addons += AzurePolicyPrice
		e.Items = append(e.Items, flatItem("Azure Policy", AzurePolicyPrice))
	}

	if cfg.Storage.EnablePersistentVolumes {
		e.Storage = storagePrice(cfg.Storage.StorageClass)
		e.Items = append(e.Items, flatItem(fmt.Sprintf("Storage (%s)", cfg.Storage.StorageClass), e.Storage))
	}

	if cfg.MultiRegion.Enabled {
		secondaries := len(cfg.MultiRegion.SecondaryRegions)
		if secondaries > 0 {
			item := LineItem{
				Description: "Secondary clusters",
				Quantity:    secondaries,
				UnitType:    "cluster",
				UnitPrice:   e.SystemPool,
				Total:       secondaries * e.SystemPool,
			}
			e.MultiRegion += item.Total
			e.Items = append(e.Items, item)
		}
		if cfg.MultiRegion.EnableFrontDoor {
			price := FrontDoorStandard
			if cfg.MultiRegion.FrontDoorSKU == config.FrontDoorPremium {
				price = FrontDoorPremium
			}
			e.MultiRegion += price
			e.Items = append(e.Items, flatItem("Front Door", price))
		}
	}

	e.Total = e.SystemPool + e.UserPools + e.Monitoring + e.Addons + e.Storage + e.MultiRegion
	return e
}

func (c *Calculator) poolItem(desc string, pool config.NodePool) LineItem {
	n := pool.EffectiveNodeCount()
	unit := c.prices.VMPrice(pool.VMSize)
	return LineItem{
		Description: desc,
		Quantity:    n,
		UnitType:    pool.VMSize,
		UnitPrice:   unit,
		Total:       n * unit,
	}
}

func flatItem(desc string, price int) LineItem {
	return LineItem{Description: desc, Quantity: 1, UnitPrice: price, Total: price}
}

func storagePrice(class config.StorageClass) int {
	switch class {
	case config.StorageClassPremiumSSD:
		return PremiumSSDPrice
	case config.StorageClassAzureDisk:
		return AzureDiskPrice
	case config.StorageClassAzureFile:
		return AzureFilePrice
	default:
		return DefaultDiskPrice
	}
}
