package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/akswiz/internal/pricing"
	testutil "github.com/imamik/akswiz/internal/testing"
)

type fakePriceSheet struct {
	prices *pricing.Prices
	err    error
}

func (f fakePriceSheet) FetchPrices(context.Context) (*pricing.Prices, error) {
	return f.prices, f.err
}

func stubPriceClient(t *testing.T, f fakePriceSheet) *string {
	t.Helper()
	orig := newPriceClient
	t.Cleanup(func() { newPriceClient = orig })

	var gotURL string
	newPriceClient = func(url string) priceSheetFetcher {
		gotURL = url
		return f
	}
	return &gotURL
}

func TestCost_JSON(t *testing.T) {
	noDefaultConfig(t)
	path := writeTestConfig(t, testutil.DemoConfig())

	var err error
	out := captureOutput(func() { err = Cost(testutil.TestContext(t), path, nil, true, "") })
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "demo", got["cluster_name"])

	want := pricing.NewCalculator().Calculate(testutil.DemoConfig())
	assert.EqualValues(t, want.Total, got["total"])
	assert.EqualValues(t, want.AnnualCost(), got["annual"])
}

func TestCost_OutputByTerminal(t *testing.T) {
	noDefaultConfig(t)
	path := writeTestConfig(t, testutil.DemoConfig())

	t.Run("plain", func(t *testing.T) {
		setTTY(t, false)
		out := captureOutput(func() { require.NoError(t, Cost(testutil.TestContext(t), path, nil, false, "")) })
		estimate := pricing.NewCalculator().Calculate(testutil.DemoConfig())
		assert.Equal(t, pricing.NewFormatter().Format(estimate), out)
	})

	t.Run("styled", func(t *testing.T) {
		setTTY(t, true)
		out := captureOutput(func() { require.NoError(t, Cost(testutil.TestContext(t), path, nil, false, "")) })
		assert.Contains(t, out, "akswiz cost: demo")
		assert.Contains(t, out, "Monthly")
		assert.Contains(t, out, "Annual")
	})
}

func TestCost_PriceSheet(t *testing.T) {
	noDefaultConfig(t)
	path := writeTestConfig(t, testutil.DemoConfig())

	t.Run("uses fetched prices", func(t *testing.T) {
		prices := pricing.DefaultPrices()
		prices.VMSizes["Standard_D4s_v3"] = 1000
		gotURL := stubPriceClient(t, fakePriceSheet{prices: prices})

		var err error
		out := captureOutput(func() { err = Cost(testutil.TestContext(t), path, nil, true, "https://prices.example.com/sheet.json") })
		require.NoError(t, err)
		assert.Equal(t, "https://prices.example.com/sheet.json", *gotURL)

		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		want := pricing.NewCalculatorWithPrices(prices).Calculate(testutil.DemoConfig())
		assert.EqualValues(t, want.Total, got["total"])
		assert.NotEqualValues(t, pricing.NewCalculator().Calculate(testutil.DemoConfig()).Total, got["total"])
	})

	t.Run("fetch failure", func(t *testing.T) {
		stubPriceClient(t, fakePriceSheet{err: errors.New("connection refused")})
		err := Cost(testutil.TestContext(t), path, nil, true, "https://prices.example.com/sheet.json")
		require.ErrorContains(t, err, "connection refused")
	})
}
