// Package finnhub provides a price provider backed by the Finnhub quote API.
package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/ndewijer/Investment-Club-Backend/internal/config"
)

// quote is the subset of the /api/v1/quote response we use. C is the current price.
type quote struct {
	C float64 `json:"c"`
}

// Client looks up current prices on Finnhub.
type Client struct {
	client *resty.Client
	apiKey string
}

// New creates a Finnhub client. It returns nil when no API key is configured.
func New(cfg config.PriceConfig) *Client {
	key := strings.TrimSpace(cfg.FinnhubAPIKey)
	if key == "" {
		return nil
	}

	client := resty.New().
		SetDebug(cfg.Debug).
		SetTimeout(cfg.RequestTimeout).
		SetBaseURL(strings.TrimRight(cfg.FinnhubURL, "/")).
		SetHeader("Accept", "application/json")

	return &Client{client: client, apiKey: key}
}

// Name identifies the provider in logs.
func (c *Client) Name() string {
	return "finnhub"
}

// FetchSingle returns the current price for symbol. Finnhub reports unknown
// symbols with a zero price, which is returned as ok=false.
func (c *Client) FetchSingle(ctx context.Context, symbol string) (float64, bool, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol": symbol,
			"token":  c.apiKey,
		}).
		Get("/api/v1/quote")
	if err != nil {
		return 0, false, fmt.Errorf("finnhub request for %s: %w", symbol, err)
	}
	if !resp.IsSuccess() {
		return 0, false, fmt.Errorf("finnhub request for %s: status %d", symbol, resp.StatusCode())
	}

	var q quote
	if err := json.Unmarshal(resp.Body(), &q); err != nil {
		return 0, false, fmt.Errorf("failed to decode finnhub quote: %w", err)
	}

	return q.C, q.C > 0, nil
}
