package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ndewijer/Investment-Club-Backend/internal/model"
)

// MockSingleProvider is a configurable single-symbol price provider.
// Symbols without a configured price or error return ok=false.
type MockSingleProvider struct {
	name    string
	prices  map[string]float64
	errs    map[string]error
	latency time.Duration

	mu    sync.Mutex
	calls map[string]int
}

// NewMockSingleProvider creates an empty provider named name.
func NewMockSingleProvider(name string) *MockSingleProvider {
	return &MockSingleProvider{
		name:   name,
		prices: make(map[string]float64),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

// WithPrice configures the price returned for symbol.
func (m *MockSingleProvider) WithPrice(symbol string, price float64) *MockSingleProvider {
	m.prices[symbol] = price
	return m
}

// WithError configures the error returned for symbol.
func (m *MockSingleProvider) WithError(symbol string, err error) *MockSingleProvider {
	m.errs[symbol] = err
	return m
}

// WithLatency delays every answer by d unless the context ends first.
func (m *MockSingleProvider) WithLatency(d time.Duration) *MockSingleProvider {
	m.latency = d
	return m
}

// Name identifies the provider.
func (m *MockSingleProvider) Name() string {
	return m.name
}

// Calls returns how often symbol was requested.
func (m *MockSingleProvider) Calls(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol]
}

// FetchSingle returns the configured answer for symbol.
func (m *MockSingleProvider) FetchSingle(ctx context.Context, symbol string) (float64, bool, error) {
	m.mu.Lock()
	m.calls[symbol]++
	m.mu.Unlock()

	if err := sleepCtx(ctx, m.latency); err != nil {
		return 0, false, err
	}
	if err, ok := m.errs[symbol]; ok {
		return 0, false, err
	}
	price, ok := m.prices[symbol]
	return price, ok && price > 0, nil
}

// MockBatchProvider is a configurable batch price provider.
type MockBatchProvider struct {
	name   string
	prices map[string]float64
	err    error

	mu    sync.Mutex
	calls int
}

// NewMockBatchProvider creates an empty batch provider named name.
func NewMockBatchProvider(name string) *MockBatchProvider {
	return &MockBatchProvider{name: name, prices: make(map[string]float64)}
}

// WithPrice configures the price returned for symbol.
func (m *MockBatchProvider) WithPrice(symbol string, price float64) *MockBatchProvider {
	m.prices[symbol] = price
	return m
}

// WithError makes every call fail with err.
func (m *MockBatchProvider) WithError(err error) *MockBatchProvider {
	m.err = err
	return m
}

// Name identifies the provider.
func (m *MockBatchProvider) Name() string {
	return m.name
}

// CallCount returns the number of FetchBatch calls.
func (m *MockBatchProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// FetchBatch returns configured prices for the requested symbols.
func (m *MockBatchProvider) FetchBatch(_ context.Context, symbols []string) (map[string]float64, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]float64)
	for _, s := range symbols {
		if p, ok := m.prices[s]; ok {
			out[s] = p
		}
	}
	return out, nil
}

// MockPriceFetcher is a PriceFetcher that records requested symbols.
type MockPriceFetcher struct {
	Prices map[string]float64

	mu        sync.Mutex
	Requested [][]string
}

// NewMockPriceFetcher returns a fetcher answering from prices.
func NewMockPriceFetcher(prices map[string]float64) *MockPriceFetcher {
	return &MockPriceFetcher{Prices: prices}
}

// Fetch returns the known prices among symbols.
func (m *MockPriceFetcher) Fetch(_ context.Context, symbols []string) map[string]float64 {
	m.mu.Lock()
	m.Requested = append(m.Requested, append([]string(nil), symbols...))
	m.mu.Unlock()

	out := make(map[string]float64)
	for _, s := range symbols {
		if p, ok := m.Prices[s]; ok {
			out[s] = p
		}
	}
	return out
}

// ErrCacheUnavailable is returned by FailingPriceCache.
var ErrCacheUnavailable = errors.New("price cache unavailable")

// FailingPriceCache fails reads, and writes too when FailWrites is set.
// Successful writes are kept in Written.
type FailingPriceCache struct {
	FailWrites bool
	Written    map[string]float64
}

// GetCachedPrices always fails.
func (c *FailingPriceCache) GetCachedPrices(context.Context) (map[string]model.PriceQuote, error) {
	return nil, ErrCacheUnavailable
}

// UpsertPrices records prices unless FailWrites is set.
func (c *FailingPriceCache) UpsertPrices(_ context.Context, prices map[string]float64, _ time.Time) error {
	if c.FailWrites {
		return ErrCacheUnavailable
	}
	if c.Written == nil {
		c.Written = make(map[string]float64)
	}
	for k, v := range prices {
		c.Written[k] = v
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
