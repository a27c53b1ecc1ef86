package service

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Investment-Club-Backend/internal/model"
	"github.com/ndewijer/Investment-Club-Backend/internal/repository"
	"github.com/ndewijer/Investment-Club-Backend/internal/valuation"
)

// PriceSyncService refreshes stale cached quotes for symbols the club currently holds.
//
// A cycle moves Idle -> Checking -> Idle when nothing is stale, or
// Idle -> Checking -> Fetching -> Reconciling -> Idle otherwise.
// Cycles are not transactional and overlapping cycles are not coordinated;
// the cache upsert is last-write-wins.
type PriceSyncService struct {
	holdingRepo *repository.HoldingRepository
	cache       PriceCache
	fetcher     PriceFetcher
	staleAfter  time.Duration
	now         func() time.Time

	state    atomic.Value
	lastSync atomic.Pointer[model.PriceSyncResult]
}

// NewPriceSyncService creates a new PriceSyncService.
func NewPriceSyncService(
	holdingRepo *repository.HoldingRepository,
	cache PriceCache,
	fetcher PriceFetcher,
	staleAfter time.Duration,
) *PriceSyncService {
	s := &PriceSyncService{
		holdingRepo: holdingRepo,
		cache:       cache,
		fetcher:     fetcher,
		staleAfter:  staleAfter,
		now:         time.Now,
	}
	s.state.Store(model.SyncIdle)
	return s
}

// WithClock replaces the time source. It is intended for tests.
func (s *PriceSyncService) WithClock(now func() time.Time) *PriceSyncService {
	s.now = now
	return s
}

// Status reports the current state and the last completed cycle.
func (s *PriceSyncService) Status() model.PriceSyncStatus {
	return model.PriceSyncStatus{
		State:    s.state.Load().(model.SyncState),
		LastSync: s.lastSync.Load(),
	}
}

// GetPrices returns the cached quotes.
func (s *PriceSyncService) GetPrices(ctx context.Context) (map[string]model.PriceQuote, error) {
	return s.cache.GetCachedPrices(ctx)
}

// Sync runs one cycle and reports whether any quote was written.
// It never returns an error: ledger, cache and provider failures are logged and
// end the cycle early or leave individual symbols without a fresh quote.
func (s *PriceSyncService) Sync(ctx context.Context) bool {
	defer s.state.Store(model.SyncIdle)

	result := model.PriceSyncResult{StartedAt: s.now().UTC()}
	defer func() {
		result.FinishedAt = s.now().UTC()
		s.lastSync.Store(&result)
	}()

	s.state.Store(model.SyncChecking)

	symbols, err := s.heldSymbols(ctx)
	if err != nil {
		log.Error().Err(err).Msg("price sync could not read holdings")
		return false
	}
	result.Checked = len(symbols)

	stale := s.staleSymbols(ctx, symbols)
	result.Stale = stale
	if len(stale) == 0 {
		log.Debug().Int("symbols", len(symbols)).Msg("all cached prices are fresh")
		return false
	}

	s.state.Store(model.SyncFetching)
	prices := s.fetcher.Fetch(ctx, stale)
	for _, symbol := range stale {
		if _, ok := prices[symbol]; !ok {
			result.Missing = append(result.Missing, symbol)
		}
	}
	if len(prices) == 0 {
		log.Warn().Strs("symbols", stale).Msg("no prices obtained for stale symbols")
		return false
	}

	s.state.Store(model.SyncReconciling)
	if err := s.cache.UpsertPrices(ctx, prices, s.now().UTC()); err != nil {
		log.Error().Err(err).Msg("failed to persist prices")
		return false
	}

	for symbol := range prices {
		result.Updated = append(result.Updated, symbol)
	}
	slices.Sort(result.Updated)

	log.Info().
		Int("updated", len(result.Updated)).
		Strs("missing", result.Missing).
		Msg("price sync completed")

	return true
}

// heldSymbols returns the symbols of open positions.
func (s *PriceSyncService) heldSymbols(ctx context.Context) ([]string, error) {
	txs, err := s.holdingRepo.ListHoldingTransactions(ctx, "")
	if err != nil {
		return nil, err
	}
	return valuation.OpenSymbols(valuation.BuildPositions(txs)), nil
}

// staleSymbols returns the symbols whose quote is missing or older than the threshold.
// If the cache cannot be read every symbol is considered stale.
func (s *PriceSyncService) staleSymbols(ctx context.Context, symbols []string) []string {
	if len(symbols) == 0 {
		return nil
	}

	cached, err := s.cache.GetCachedPrices(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("price cache unavailable, treating all symbols as stale")
		return slices.Clone(symbols)
	}

	now := s.now()
	var stale []string
	for _, symbol := range symbols {
		q, ok := cached[symbol]
		if !ok || q.IsStale(now, s.staleAfter) {
			stale = append(stale, symbol)
		}
	}
	return stale
}
