// Package app wires configuration, storage, price providers and services together.
// It is shared by the HTTP server and the admin CLI.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Investment-Club-Backend/internal/api"
	"github.com/ndewijer/Investment-Club-Backend/internal/config"
	"github.com/ndewijer/Investment-Club-Backend/internal/database"
	"github.com/ndewijer/Investment-Club-Backend/internal/pricecache"
	"github.com/ndewijer/Investment-Club-Backend/internal/pricefeed"
	"github.com/ndewijer/Investment-Club-Backend/internal/repository"
	"github.com/ndewijer/Investment-Club-Backend/internal/service"
)

// App holds the long-lived dependencies of a process.
type App struct {
	Config   *config.Config
	DB       *sqlx.DB
	Services api.Services

	redis *redis.Client
}

// New opens the database, applies migrations, selects the price cache and builds every service.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("connected to database")

	if err := database.Migrate(ctx, db.DB, cfg.Database.Driver); err != nil {
		db.Close()
		return nil, err
	}

	a := &App{Config: cfg, DB: db}

	cache, err := a.priceCache(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	chain, err := pricefeed.FromConfig(cfg.Prices)
	if err != nil {
		a.Close()
		return nil, err
	}
	log.Info().Strs("providers", chain.Providers()).Msg("price provider chain configured")

	// Create repositories
	memberRepo := repository.NewMemberRepository(db)
	contributionRepo := repository.NewContributionRepository(db)
	holdingRepo := repository.NewHoldingRepository(db)

	// Create services
	dashboardService := service.NewDashboardService(contributionRepo, holdingRepo, cache)
	priceSyncService := service.NewPriceSyncService(holdingRepo, cache, chain, cfg.Prices.StaleAfter)
	a.Services = api.Services{
		System:       service.NewSystemService(db, priceSyncService, dashboardService),
		Contribution: service.NewContributionService(contributionRepo, memberRepo),
		Holding:      service.NewHoldingService(db, holdingRepo),
		Member:       service.NewMemberService(db, memberRepo),
		Dashboard:    dashboardService,
		PriceSync:    priceSyncService,
		Report:       service.NewReportService(dashboardService, memberRepo),
	}

	return a, nil
}

func (a *App) priceCache(ctx context.Context) (service.PriceCache, error) {
	if a.Config.Prices.Cache != config.PriceCacheRedis {
		return repository.NewPriceRepository(a.DB), nil
	}

	client, err := pricecache.NewRedisClient(ctx, a.Config.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis price cache: %w", err)
	}
	a.redis = client
	return pricecache.NewRedisCache(client, a.Config.Redis.Key), nil
}

// Close releases the database and, when used, the Redis connection.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis connection")
		}
	}
	if err := a.DB.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close database")
	}
}
