package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ndewijer/Investment-Club-Backend/internal/database"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
	"github.com/ndewijer/Investment-Club-Backend/internal/version"
)

// HealthReport summarizes the state of the ledger database and the background jobs.
type HealthReport struct {
	DatabaseErr   error
	PriceSync     model.SyncState
	LastPriceSync *time.Time
	Dashboard     model.LoadState
}

// Healthy reports whether the ledger can be served. A failed dashboard refresh or
// a stalled price sync degrade the numbers but do not make the service unhealthy.
func (h HealthReport) Healthy() bool {
	return h.DatabaseErr == nil
}

// SystemService reports liveness of the service and its background jobs.
type SystemService struct {
	db        *sqlx.DB
	priceSync *PriceSyncService
	dashboard *DashboardService
}

// NewSystemService creates a new SystemService. priceSync and dashboard may be nil,
// in which case their section of the report stays empty.
func NewSystemService(db *sqlx.DB, priceSync *PriceSyncService, dashboard *DashboardService) *SystemService {
	return &SystemService{
		db:        db,
		priceSync: priceSync,
		dashboard: dashboard,
	}
}

// CheckHealth pings the ledger database.
func (s *SystemService) CheckHealth(ctx context.Context) error {
	return database.HealthCheck(ctx, s.db)
}

// Report gathers the database state together with the price sync and dashboard state.
func (s *SystemService) Report(ctx context.Context) HealthReport {
	report := HealthReport{DatabaseErr: s.CheckHealth(ctx)}

	if s.priceSync != nil {
		status := s.priceSync.Status()
		report.PriceSync = status.State
		if status.LastSync != nil {
			finished := status.LastSync.FinishedAt
			report.LastPriceSync = &finished
		}
	}
	if s.dashboard != nil {
		report.Dashboard = s.dashboard.Snapshot().Status
	}

	return report
}

// CheckVersion returns the running build version.
func (s *SystemService) CheckVersion() string {
	return version.Version
}
