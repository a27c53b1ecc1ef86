package testutil

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ndewijer/Investment-Club-Backend/internal/repository"
	"github.com/ndewijer/Investment-Club-Backend/internal/service"
)

func NewTestContributionService(t *testing.T, db *sqlx.DB) *service.ContributionService {
	t.Helper()

	return service.NewContributionService(
		repository.NewContributionRepository(db),
		repository.NewMemberRepository(db),
	)
}

func NewTestHoldingService(t *testing.T, db *sqlx.DB) *service.HoldingService {
	t.Helper()

	return service.NewHoldingService(db, repository.NewHoldingRepository(db))
}

func NewTestMemberService(t *testing.T, db *sqlx.DB) *service.MemberService {
	t.Helper()

	return service.NewMemberService(db, repository.NewMemberRepository(db))
}

// NewTestDashboardService uses the SQL price cache unless cache is non-nil.
func NewTestDashboardService(t *testing.T, db *sqlx.DB, cache service.PriceCache) *service.DashboardService {
	t.Helper()

	if cache == nil {
		cache = repository.NewPriceRepository(db)
	}
	return service.NewDashboardService(
		repository.NewContributionRepository(db),
		repository.NewHoldingRepository(db),
		cache,
	)
}

// NewTestPriceSyncService uses the SQL price cache unless cache is non-nil.
func NewTestPriceSyncService(t *testing.T, db *sqlx.DB, cache service.PriceCache, fetcher service.PriceFetcher, staleAfter time.Duration) *service.PriceSyncService {
	t.Helper()

	if cache == nil {
		cache = repository.NewPriceRepository(db)
	}
	return service.NewPriceSyncService(repository.NewHoldingRepository(db), cache, fetcher, staleAfter)
}

func NewTestReportService(t *testing.T, db *sqlx.DB) *service.ReportService {
	t.Helper()

	return service.NewReportService(
		NewTestDashboardService(t, db, nil),
		repository.NewMemberRepository(db),
	)
}

// NewTestSystemService wires a SystemService with SQL-backed price sync and dashboard
// services. The price sync service has no providers, so its cycles never update.
func NewTestSystemService(t *testing.T, db *sqlx.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(
		db,
		NewTestPriceSyncService(t, db, nil, NewMockPriceFetcher(nil), time.Minute),
		NewTestDashboardService(t, db, nil),
	)
}

// MakeID generates a UUID string for use in tests.
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a unique uppercase ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("INFY")
//	// Returns: "INFY1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
