// Package yahoo provides price providers backed by the Yahoo Finance chart and quote APIs.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/ndewijer/Investment-Club-Backend/internal/config"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	chartPath = "/v8/finance/chart/"
	quotePath = "/v7/finance/quote"
)

// Symbol maps a canonical ledger symbol to the Yahoo ticker.
// Symbols that already carry an exchange suffix are used as is.
func Symbol(symbol, suffix string) string {
	if suffix == "" || strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + suffix
}

func newClient(cfg config.PriceConfig) *resty.Client {
	return resty.New().
		SetDebug(cfg.Debug).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")
}

// ChartProvider fetches one symbol's regularMarketPrice from the chart API,
// either directly or through a proxy URL template.
type ChartProvider struct {
	client   *resty.Client
	name     string
	baseURL  string
	template string
	suffix   string
}

// NewChartProviders returns the direct chart provider followed by one provider per
// configured proxy template, in configuration order.
// A template must contain "{url}", which is replaced by the escaped chart URL.
func NewChartProviders(cfg config.PriceConfig) []*ChartProvider {
	client := newClient(cfg)
	base := strings.TrimRight(cfg.YahooURL, "/")

	providers := []*ChartProvider{{
		client:  client,
		name:    "yahoo",
		baseURL: base,
		suffix:  cfg.YahooSymbolSuffix,
	}}

	for i, tmpl := range cfg.YahooProxyTemplates {
		tmpl = strings.TrimSpace(tmpl)
		if tmpl == "" {
			continue
		}
		providers = append(providers, &ChartProvider{
			client:   client,
			name:     fmt.Sprintf("yahoo-proxy-%d", i+1),
			baseURL:  base,
			template: tmpl,
			suffix:   cfg.YahooSymbolSuffix,
		})
	}

	return providers
}

// Name identifies the provider in logs.
func (p *ChartProvider) Name() string {
	return p.name
}

// requestURL returns the URL to call for a Yahoo ticker, applying the proxy template if set.
func (p *ChartProvider) requestURL(ticker string) string {
	chartURL := p.baseURL + chartPath + url.PathEscape(ticker)
	if p.template == "" {
		return chartURL
	}
	return strings.ReplaceAll(p.template, "{url}", url.QueryEscape(chartURL))
}

// FetchSingle returns the current market price for symbol.
// ok is false when Yahoo answered without a positive regularMarketPrice.
func (p *ChartProvider) FetchSingle(ctx context.Context, symbol string) (float64, bool, error) {
	ticker := Symbol(symbol, p.suffix)

	resp, err := p.client.R().
		SetContext(ctx).
		Get(p.requestURL(ticker))
	if err != nil {
		return 0, false, fmt.Errorf("yahoo request for %s: %w", ticker, err)
	}
	if !resp.IsSuccess() {
		return 0, false, fmt.Errorf("yahoo request for %s: status %d", ticker, resp.StatusCode())
	}

	body, err := unwrapProxy(resp.Body())
	if err != nil {
		return 0, false, fmt.Errorf("yahoo proxy response for %s: %w", ticker, err)
	}

	return parseChartPrice(body)
}

// unwrapProxy returns the upstream body from an allorigins-style envelope,
// or data unchanged when it is not wrapped.
func unwrapProxy(data []byte) ([]byte, error) {
	var env proxyEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if env.Contents == nil {
		return data, nil
	}
	if env.Status != nil && env.Status.HTTPCode >= 300 {
		return nil, fmt.Errorf("upstream status %d", env.Status.HTTPCode)
	}
	return []byte(*env.Contents), nil
}

func parseChartPrice(data []byte) (float64, bool, error) {
	var chart chartResponse
	if err := json.Unmarshal(data, &chart); err != nil {
		return 0, false, fmt.Errorf("failed to decode chart response: %w", err)
	}
	if chart.Chart.Error != nil {
		return 0, false, fmt.Errorf("yahoo error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return 0, false, nil
	}

	price := chart.Chart.Result[0].Meta.RegularMarketPrice
	return price, price > 0, nil
}

// QuoteProvider fetches many symbols at once from the v7 quote API.
type QuoteProvider struct {
	client *resty.Client
	suffix string
}

// NewQuoteProvider creates the batch provider.
func NewQuoteProvider(cfg config.PriceConfig) *QuoteProvider {
	return &QuoteProvider{
		client: newClient(cfg).SetBaseURL(strings.TrimRight(cfg.YahooURL, "/")),
		suffix: cfg.YahooSymbolSuffix,
	}
}

// Name identifies the provider in logs.
func (p *QuoteProvider) Name() string {
	return "yahoo-quote"
}

// FetchBatch returns prices keyed by the canonical symbols that were requested.
func (p *QuoteProvider) FetchBatch(ctx context.Context, symbols []string) (map[string]float64, error) {
	if len(symbols) == 0 {
		return map[string]float64{}, nil
	}

	byTicker := make(map[string]string, len(symbols))
	tickers := make([]string, 0, len(symbols))
	for _, s := range symbols {
		t := Symbol(s, p.suffix)
		byTicker[t] = s
		tickers = append(tickers, t)
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("symbols", strings.Join(tickers, ",")).
		Get(quotePath)
	if err != nil {
		return nil, fmt.Errorf("yahoo quote request: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("yahoo quote request: status %d", resp.StatusCode())
	}

	var quotes quoteResponse
	if err := json.Unmarshal(resp.Body(), &quotes); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}
	if quotes.QuoteResponse.Error != nil {
		return nil, errors.New("yahoo quote error: " + quotes.QuoteResponse.Error.Description)
	}

	prices := make(map[string]float64, len(quotes.QuoteResponse.Result))
	for _, q := range quotes.QuoteResponse.Result {
		symbol, ok := byTicker[q.Symbol]
		if !ok || q.RegularMarketPrice <= 0 {
			continue
		}
		prices[symbol] = q.RegularMarketPrice
	}
	return prices, nil
}
