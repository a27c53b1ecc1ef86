package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}

		if cfg.Server.Addr != "localhost:5001" {
			t.Errorf("Expected addr localhost:5001, got %s", cfg.Server.Addr)
		}
		if cfg.Database.Driver != DriverSQLite {
			t.Errorf("Expected sqlite driver, got %s", cfg.Database.Driver)
		}
		if cfg.Prices.StaleAfter != 5*time.Minute {
			t.Errorf("Expected 5m staleness threshold, got %s", cfg.Prices.StaleAfter)
		}
		if len(cfg.Prices.Providers) != 2 || cfg.Prices.Providers[0] != "finnhub" {
			t.Errorf("Expected default provider order [finnhub yahoo], got %v", cfg.Prices.Providers)
		}
		if len(cfg.CORS.AllowedOrigins) != 2 {
			t.Errorf("Expected 2 default origins, got %v", cfg.CORS.AllowedOrigins)
		}
	})

	t.Run("reads environment overrides", func(t *testing.T) {
		t.Setenv("SERVER_HOST", "0.0.0.0")
		t.Setenv("SERVER_PORT", "8080")
		t.Setenv("PRICE_STALE_AFTER", "90s")
		t.Setenv("PRICE_PROVIDERS", "yahoo")
		t.Setenv("YAHOO_PROXY_TEMPLATES", "https://a.example/get?url={url},https://b.example/{url}")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}

		if cfg.Server.Addr != "0.0.0.0:8080" {
			t.Errorf("Expected addr 0.0.0.0:8080, got %s", cfg.Server.Addr)
		}
		if cfg.Prices.StaleAfter != 90*time.Second {
			t.Errorf("Expected 90s, got %s", cfg.Prices.StaleAfter)
		}
		if len(cfg.Prices.Providers) != 1 || cfg.Prices.Providers[0] != "yahoo" {
			t.Errorf("Expected [yahoo], got %v", cfg.Prices.Providers)
		}
		if len(cfg.Prices.YahooProxyTemplates) != 2 {
			t.Errorf("Expected 2 proxy templates, got %v", cfg.Prices.YahooProxyTemplates)
		}
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mysql")

		if _, err := Load(); err == nil {
			t.Error("Expected error for unsupported driver, got nil")
		}
	})

	t.Run("rejects invalid schedule", func(t *testing.T) {
		t.Setenv("PRICE_SYNC_SCHEDULE", "every minute please")

		if _, err := Load(); err == nil {
			t.Error("Expected error for invalid schedule, got nil")
		}
	})
}
