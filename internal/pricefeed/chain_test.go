package pricefeed_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/Investment-Club-Backend/internal/config"
	"github.com/ndewijer/Investment-Club-Backend/internal/pricefeed"
	"github.com/ndewijer/Investment-Club-Backend/internal/testutil"
)

func TestChain_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("batch provider answers first", func(t *testing.T) {
		batch := testutil.NewMockBatchProvider("batch").WithPrice("INFY", 1500)
		single := testutil.NewMockSingleProvider("single").WithPrice("INFY", 1).WithPrice("TCS", 3500)

		chain := pricefeed.NewChain(
			[]pricefeed.BatchProvider{batch},
			[]pricefeed.SingleProvider{single},
			time.Second, 0,
		)

		prices := chain.Fetch(ctx, []string{"INFY", "TCS"})

		if prices["INFY"] != 1500 {
			t.Errorf("Expected INFY from batch provider 1500, got %f", prices["INFY"])
		}
		if prices["TCS"] != 3500 {
			t.Errorf("Expected TCS from fallback 3500, got %f", prices["TCS"])
		}
		if got := single.Calls("INFY"); got != 0 {
			t.Errorf("Expected no single lookup for INFY, got %d", got)
		}
	})

	t.Run("falls through providers in priority order", func(t *testing.T) {
		first := testutil.NewMockSingleProvider("first").WithError("INFY", errors.New("status 429"))
		second := testutil.NewMockSingleProvider("second").WithPrice("INFY", 0)
		third := testutil.NewMockSingleProvider("third").WithPrice("INFY", 1490.5)
		fourth := testutil.NewMockSingleProvider("fourth").WithPrice("INFY", 9999)

		chain := pricefeed.NewChain(nil, []pricefeed.SingleProvider{first, second, third, fourth}, time.Second, 0)

		prices := chain.Fetch(ctx, []string{"INFY"})

		if prices["INFY"] != 1490.5 {
			t.Errorf("Expected price from third provider, got %f", prices["INFY"])
		}
		if fourth.Calls("INFY") != 0 {
			t.Error("Expected chain to stop at first usable price")
		}
	})

	t.Run("failing batch provider does not abort cycle", func(t *testing.T) {
		batch := testutil.NewMockBatchProvider("batch").WithError(errors.New("connection reset"))
		single := testutil.NewMockSingleProvider("single").WithPrice("INFY", 10).WithPrice("TCS", 20)

		chain := pricefeed.NewChain([]pricefeed.BatchProvider{batch}, []pricefeed.SingleProvider{single}, time.Second, 0)

		prices := chain.Fetch(ctx, []string{"TCS", "INFY", "TCS"})

		if len(prices) != 2 {
			t.Errorf("Expected 2 prices, got %v", prices)
		}
		if single.Calls("TCS") != 1 {
			t.Errorf("Expected duplicate symbols to be looked up once, got %d", single.Calls("TCS"))
		}
	})

	t.Run("symbols without any quote are absent", func(t *testing.T) {
		single := testutil.NewMockSingleProvider("single").WithPrice("INFY", 10)

		chain := pricefeed.NewChain(nil, []pricefeed.SingleProvider{single}, time.Second, 0)

		prices := chain.Fetch(ctx, []string{"INFY", "UNKNOWN"})

		if _, ok := prices["UNKNOWN"]; ok {
			t.Error("Expected UNKNOWN to be absent")
		}
		if prices["INFY"] != 10 {
			t.Errorf("Expected INFY 10, got %f", prices["INFY"])
		}
	})

	t.Run("applies per attempt timeout", func(t *testing.T) {
		slow := testutil.NewMockSingleProvider("slow").WithPrice("INFY", 10).WithLatency(time.Second)
		fast := testutil.NewMockSingleProvider("fast").WithPrice("INFY", 11)

		chain := pricefeed.NewChain(nil, []pricefeed.SingleProvider{slow, fast}, 20*time.Millisecond, 0)

		start := time.Now()
		prices := chain.Fetch(ctx, []string{"INFY"})

		if prices["INFY"] != 11 {
			t.Errorf("Expected fallback price 11, got %f", prices["INFY"])
		}
		if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
			t.Errorf("Expected timeout to cut slow provider short, took %s", elapsed)
		}
	})

	t.Run("waits between single lookups", func(t *testing.T) {
		single := testutil.NewMockSingleProvider("single").WithPrice("A", 1).WithPrice("B", 2).WithPrice("C", 3)

		chain := pricefeed.NewChain(nil, []pricefeed.SingleProvider{single}, time.Second, 30*time.Millisecond)

		start := time.Now()
		chain.Fetch(ctx, []string{"A", "B", "C"})

		if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
			t.Errorf("Expected at least two delays, took %s", elapsed)
		}
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		single := testutil.NewMockSingleProvider("single").WithPrice("A", 1).WithPrice("B", 2)
		chain := pricefeed.NewChain(nil, []pricefeed.SingleProvider{single}, time.Second, time.Hour)

		cctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		prices := chain.Fetch(cctx, []string{"A", "B"})

		if prices["A"] != 1 {
			t.Errorf("Expected A before cancellation, got %v", prices)
		}
		if _, ok := prices["B"]; ok {
			t.Error("Expected B to be skipped after cancellation")
		}
	})
}

func TestFromConfig(t *testing.T) {
	base := config.PriceConfig{
		RequestTimeout:      time.Second,
		YahooURL:            "https://query1.finance.yahoo.com",
		YahooProxyTemplates: []string{"https://api.allorigins.win/get?url={url}"},
		YahooSymbolSuffix:   ".NS",
		FinnhubURL:          "https://finnhub.io",
	}

	t.Run("skips finnhub without key", func(t *testing.T) {
		cfg := base
		cfg.Providers = []string{"finnhub", "yahoo"}

		chain, err := pricefeed.FromConfig(cfg)
		if err != nil {
			t.Fatalf("FromConfig() returned unexpected error: %v", err)
		}

		want := []string{"yahoo", "yahoo-proxy-1"}
		got := chain.Providers()
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("Expected providers %v, got %v", want, got)
		}
	})

	t.Run("orders finnhub first when keyed", func(t *testing.T) {
		cfg := base
		cfg.Providers = []string{"finnhub", "yahoo"}
		cfg.FinnhubAPIKey = "key"
		cfg.YahooBatchEnabled = true

		chain, err := pricefeed.FromConfig(cfg)
		if err != nil {
			t.Fatalf("FromConfig() returned unexpected error: %v", err)
		}

		got := chain.Providers()
		if len(got) != 4 || got[0] != "yahoo-quote" || got[1] != "finnhub" {
			t.Errorf("Expected batch then finnhub first, got %v", got)
		}
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		cfg := base
		cfg.Providers = []string{"bloomberg"}

		if _, err := pricefeed.FromConfig(cfg); err == nil {
			t.Error("Expected error for unknown provider, got nil")
		}
	})
}
