package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Supported price cache backends.
const (
	PriceCacheSQL   = "sql"
	PriceCacheRedis = "redis"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Log       LogConfig
	Auth      AuthConfig
	Prices    PriceConfig
	Redis     RedisConfig
	Dashboard DashboardConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `env:"SERVER_PORT" envDefault:"5001"`
	Host string `env:"SERVER_HOST" envDefault:"localhost"`
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration.
// Driver is either "sqlite" (DSN is a file path) or "pgx" (DSN is a Postgres connection string).
type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite"`
	DSN    string `env:"DB_DSN" envDefault:"./data/investment_club.db"`
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost"`
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AuthConfig holds the Fernet keys shared with the identity provider.
// The first key is used to mint tokens, all keys are accepted for verification.
type AuthConfig struct {
	FernetKeys []string      `env:"AUTH_FERNET_KEYS" envSeparator:","`
	TokenTTL   time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"12h"`
}

// PriceConfig holds the price sync policy and the provider chain configuration.
type PriceConfig struct {
	StaleAfter     time.Duration `env:"PRICE_STALE_AFTER" envDefault:"5m"`
	SyncSchedule   string        `env:"PRICE_SYNC_SCHEDULE" envDefault:"@every 1m"`
	RequestTimeout time.Duration `env:"PRICE_REQUEST_TIMEOUT" envDefault:"8s"`
	FallbackDelay  time.Duration `env:"PRICE_FALLBACK_DELAY" envDefault:"200ms"`
	Providers      []string      `env:"PRICE_PROVIDERS" envSeparator:"," envDefault:"finnhub,yahoo"`
	Cache          string        `env:"PRICE_CACHE" envDefault:"sql"`
	Debug          bool          `env:"PRICE_API_DEBUG" envDefault:"false"`

	FinnhubAPIKey string `env:"FINNHUB_API_KEY"`
	FinnhubURL    string `env:"FINNHUB_URL" envDefault:"https://finnhub.io"`

	YahooURL            string   `env:"YAHOO_URL" envDefault:"https://query1.finance.yahoo.com"`
	YahooProxyTemplates []string `env:"YAHOO_PROXY_TEMPLATES" envSeparator:","`
	YahooSymbolSuffix   string   `env:"YAHOO_SYMBOL_SUFFIX" envDefault:".NS"`
	YahooBatchEnabled   bool     `env:"YAHOO_BATCH_ENABLED" envDefault:"false"`
}

// RedisConfig is only used when PRICE_CACHE=redis.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	Key      string `env:"REDIS_PRICE_KEY" envDefault:"investment_club:prices"`
}

// DashboardConfig controls the background recomputation of the group snapshot.
type DashboardConfig struct {
	RefreshSchedule string `env:"DASHBOARD_REFRESH_SCHEDULE" envDefault:"@every 1m"`
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	switch c.Prices.Cache {
	case PriceCacheSQL, PriceCacheRedis:
	default:
		return fmt.Errorf("unsupported PRICE_CACHE %q", c.Prices.Cache)
	}

	if c.Prices.StaleAfter <= 0 {
		return fmt.Errorf("PRICE_STALE_AFTER must be positive, got %s", c.Prices.StaleAfter)
	}

	if _, err := cron.ParseStandard(c.Prices.SyncSchedule); err != nil {
		return fmt.Errorf("invalid PRICE_SYNC_SCHEDULE: %w", err)
	}
	if _, err := cron.ParseStandard(c.Dashboard.RefreshSchedule); err != nil {
		return fmt.Errorf("invalid DASHBOARD_REFRESH_SCHEDULE: %w", err)
	}

	return nil
}
