package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/imamik/akswiz/internal/util/retry"
)

// Client fetches a VM price sheet over HTTP. The sheet is a JSON object of
// the form {"vmSizes": {"Standard_D4s_v3": 140}, "defaultVmPrice": 100}.
type Client struct {
	url        string
	httpClient *http.Client
	retry      []retry.Option
}

// NewClient creates a pricing client for the given sheet URL. Server errors
// and dropped connections are retried according to opts.
func NewClient(url string, opts ...retry.Option) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retry: opts,
	}
}

// FetchPrices downloads and parses the price sheet.
func (c *Client) FetchPrices(ctx context.Context) (*Prices, error) {
	var body []byte
	err := retry.Do(ctx, func(ctx context.Context) error {
		b, err := c.fetch(ctx)
		if err != nil {
			return err
		}
		body = b
		return nil
	}, c.retry...)
	if err != nil {
		return nil, err
	}
	return parsePriceSheet(body)
}

// fetch makes one request. Only 5xx and 429 responses and transport
// errors are retryable.
func (c *Client) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, retry.Permanent(fmt.Errorf("failed to fetch pricing: %w", err))
		}
		return nil, fmt.Errorf("failed to fetch pricing: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("pricing endpoint returned status %d", resp.StatusCode)
		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			return nil, err
		}
		return nil, retry.Permanent(err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// parsePriceSheet decodes a price sheet. Entries with a non-positive price
// are ignored and a missing default uses DefaultVMPrice.
func parsePriceSheet(data []byte) (*Prices, error) {
	var sheet Prices
	if err := json.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("failed to parse price sheet: %w", err)
	}

	prices := &Prices{
		VMSizes:   make(map[string]int, len(sheet.VMSizes)),
		DefaultVM: sheet.DefaultVM,
	}
	for size, price := range sheet.VMSizes {
		if price > 0 {
			prices.VMSizes[size] = price
		}
	}
	if prices.DefaultVM <= 0 {
		prices.DefaultVM = DefaultVMPrice
	}
	return prices, nil
}
