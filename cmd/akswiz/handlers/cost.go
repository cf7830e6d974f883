package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/akswiz/internal/logging"
	"github.com/imamik/akswiz/internal/pricing"
)

// priceSheetFetcher downloads a VM price sheet.
type priceSheetFetcher interface {
	FetchPrices(ctx context.Context) (*pricing.Prices, error)
}

// newPriceClient creates a price sheet client - can be replaced in tests.
var newPriceClient = func(url string) priceSheetFetcher {
	return pricing.NewClient(url)
}

// Cost prints the monthly cost estimate of the configuration. With a
// prices URL the VM prices come from that sheet instead of the built-in
// table.
func Cost(ctx context.Context, configPath string, sets []string, jsonOutput bool, pricesURL string) error {
	log := logging.FromContext(ctx).WithName("cost")

	cfg, err := loadConfig(configPath, sets)
	if err != nil {
		return err
	}

	calc := pricing.NewCalculator()
	if pricesURL != "" {
		prices, err := newPriceClient(pricesURL).FetchPrices(ctx)
		if err != nil {
			return err
		}
		log.V(1).Info("using price sheet", "url", pricesURL, "vmSizes", len(prices.VMSizes))
		calc = pricing.NewCalculatorWithPrices(prices)
	}

	estimate := calc.Calculate(cfg)
	formatter := pricing.NewFormatter()

	switch {
	case jsonOutput:
		fmt.Println(formatter.FormatJSON(estimate))
	case isInteractiveTTY():
		fmt.Print(renderCostSummary(estimate))
	default:
		fmt.Print(formatter.Format(estimate))
	}
	return nil
}
