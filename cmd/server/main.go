package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Investment-Club-Backend/internal/api"
	"github.com/ndewijer/Investment-Club-Backend/internal/app"
	"github.com/ndewijer/Investment-Club-Backend/internal/auth"
	"github.com/ndewijer/Investment-Club-Backend/internal/config"
	"github.com/ndewijer/Investment-Club-Backend/internal/logging"
	"github.com/ndewijer/Investment-Club-Backend/internal/scheduler"
	"github.com/ndewijer/Investment-Club-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Setup(cfg.Log)

	log.Info().Str("version", version.Version).Msg("starting investment club backend")

	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise application")
	}
	defer a.Close()

	codec, err := auth.NewCodec(cfg.Auth)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure token verification")
	}

	// Background jobs
	sched := scheduler.New()
	err = sched.AddJob("price-sync", cfg.Prices.SyncSchedule, func(ctx context.Context) error {
		a.Services.PriceSync.Sync(ctx)
		return nil
	}, true)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to schedule price sync")
	}
	err = sched.AddJob("dashboard-refresh", cfg.Dashboard.RefreshSchedule, a.Services.Dashboard.Refresh, true)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to schedule dashboard refresh")
	}
	sched.Start()

	// Create router
	router := api.NewRouter(a.Services, codec, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	sched.Stop(10 * time.Second)

	log.Info().Msg("server exited")
}
