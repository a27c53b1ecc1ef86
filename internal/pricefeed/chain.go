package pricefeed

import (
	"context"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Investment-Club-Backend/internal/valuation"
)

// Chain tries batch providers first and falls back to single-symbol providers
// in priority order for whatever is still missing.
type Chain struct {
	batch   []BatchProvider
	single  []SingleProvider
	timeout time.Duration
	delay   time.Duration
}

// NewChain creates a Chain. timeout bounds every individual provider call;
// delay is waited between successive single-symbol calls.
func NewChain(batch []BatchProvider, single []SingleProvider, timeout, delay time.Duration) *Chain {
	return &Chain{
		batch:   batch,
		single:  single,
		timeout: timeout,
		delay:   delay,
	}
}

// Providers lists provider names in the order they are tried.
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.batch)+len(c.single))
	for _, p := range c.batch {
		names = append(names, p.Name())
	}
	for _, p := range c.single {
		names = append(names, p.Name())
	}
	return names
}

// Fetch returns a usable price for as many symbols as possible.
//
// A provider failure only affects the symbols it was asked about; it is logged
// and the next provider is tried. Symbols no provider could price are absent
// from the result. Fetch stops early when ctx is cancelled and returns what it has.
func (c *Chain) Fetch(ctx context.Context, symbols []string) map[string]float64 {
	prices := make(map[string]float64, len(symbols))
	pending := uniqueSorted(symbols)

	for _, p := range c.batch {
		if len(pending) == 0 || ctx.Err() != nil {
			break
		}

		got, err := c.fetchBatch(ctx, p, pending)
		if err != nil {
			log.Warn().Err(err).Str("provider", p.Name()).Int("symbols", len(pending)).Msg("batch price lookup failed")
			continue
		}
		for _, symbol := range pending {
			if price, ok := got[symbol]; ok && valuation.IsUsablePrice(price) {
				prices[symbol] = price
			}
		}
		pending = slices.DeleteFunc(pending, func(s string) bool {
			_, ok := prices[s]
			return ok
		})
	}

	calls := 0
	for _, symbol := range pending {
		for _, p := range c.single {
			if calls > 0 && !c.wait(ctx) {
				return prices
			}
			calls++

			price, ok, err := c.fetchSingle(ctx, p, symbol)
			if err != nil {
				log.Warn().Err(err).Str("provider", p.Name()).Str("symbol", symbol).Msg("price lookup failed")
				continue
			}
			if ok && valuation.IsUsablePrice(price) {
				prices[symbol] = price
				break
			}
			log.Debug().Str("provider", p.Name()).Str("symbol", symbol).Msg("no quote from provider")
		}

		if _, ok := prices[symbol]; !ok {
			log.Warn().Str("symbol", symbol).Msg("no price found from any provider")
		}
	}

	return prices
}

func (c *Chain) fetchBatch(ctx context.Context, p BatchProvider, symbols []string) (map[string]float64, error) {
	ctx, cancel := c.attemptContext(ctx)
	defer cancel()
	return p.FetchBatch(ctx, symbols)
}

func (c *Chain) fetchSingle(ctx context.Context, p SingleProvider, symbol string) (float64, bool, error) {
	ctx, cancel := c.attemptContext(ctx)
	defer cancel()
	return p.FetchSingle(ctx, symbol)
}

func (c *Chain) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// wait sleeps for the configured delay and reports false if ctx ended first.
func (c *Chain) wait(ctx context.Context) bool {
	if c.delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(c.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func uniqueSorted(symbols []string) []string {
	out := slices.Clone(symbols)
	slices.Sort(out)
	return slices.Compact(out)
}
