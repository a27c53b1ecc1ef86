package app_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ndewijer/Investment-Club-Backend/internal/app"
	"github.com/ndewijer/Investment-Club-Backend/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("wires services on a file database", func(t *testing.T) {
		cfg := &config.Config{
			Database: config.DatabaseConfig{
				Driver: config.DriverSQLite,
				DSN:    filepath.Join(t.TempDir(), "club.db"),
			},
			Prices: config.PriceConfig{
				StaleAfter:     time.Minute,
				RequestTimeout: time.Second,
				Providers:      []string{"finnhub", "yahoo"},
				Cache:          config.PriceCacheSQL,
				YahooURL:       "http://127.0.0.1:1",
			},
		}

		a, err := app.New(context.Background(), cfg)
		if err != nil {
			t.Fatalf("New() returned unexpected error: %v", err)
		}
		defer a.Close()

		if err := a.Services.System.CheckHealth(context.Background()); err != nil {
			t.Errorf("Expected healthy database, got %v", err)
		}
		if _, err := a.Services.Dashboard.GetMemberShares(context.Background()); err != nil {
			t.Errorf("Expected migrated schema, got %v", err)
		}
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		cfg := &config.Config{
			Database: config.DatabaseConfig{
				Driver: config.DriverSQLite,
				DSN:    filepath.Join(t.TempDir(), "club.db"),
			},
			Prices: config.PriceConfig{Providers: []string{"bloomberg"}, Cache: config.PriceCacheSQL},
		}

		if _, err := app.New(context.Background(), cfg); err == nil {
			t.Error("Expected error for unknown provider, got nil")
		}
	})
}
