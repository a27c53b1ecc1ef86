package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Investment-Club-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
	"github.com/ndewijer/Investment-Club-Backend/internal/repository"
	"github.com/ndewijer/Investment-Club-Backend/internal/valuation"
)

// DashboardService computes group valuations and member shares from the ledger and cached prices.
type DashboardService struct {
	contributionRepo *repository.ContributionRepository
	holdingRepo      *repository.HoldingRepository
	priceCache       PriceCache

	snapshot atomic.Pointer[model.DashboardSnapshot]
}

// NewDashboardService creates a new DashboardService. Its snapshot starts in the loading state.
func NewDashboardService(
	contributionRepo *repository.ContributionRepository,
	holdingRepo *repository.HoldingRepository,
	priceCache PriceCache,
) *DashboardService {
	s := &DashboardService{
		contributionRepo: contributionRepo,
		holdingRepo:      holdingRepo,
		priceCache:       priceCache,
	}
	s.snapshot.Store(&model.DashboardSnapshot{Status: model.StateLoading})
	return s
}

// ledger is everything a valuation is computed from.
type ledger struct {
	contributions []model.Contribution
	holdings      []model.HoldingTransaction
	prices        valuation.Prices
}

// loadLedger reads contributions, holdings and prices concurrently.
// A contribution or holding read failure fails the whole load so no valuation is
// computed from partial data. A price cache failure only drops quotes, which the
// valuation already tolerates.
func (s *DashboardService) loadLedger(ctx context.Context) (ledger, error) {
	var l ledger
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.contributionRepo.ListContributions(gctx, "")
		if err != nil {
			return err
		}
		l.contributions = make([]model.Contribution, 0, len(rows))
		for _, r := range rows {
			l.contributions = append(l.contributions, r.Contribution)
		}
		return nil
	})

	g.Go(func() error {
		rows, err := s.holdingRepo.ListHoldingTransactions(gctx, "")
		if err != nil {
			return err
		}
		l.holdings = rows
		return nil
	})

	g.Go(func() error {
		quotes, err := s.priceCache.GetCachedPrices(gctx)
		if err != nil {
			log.Warn().Err(err).Msg("price cache unavailable, valuing positions at average cost")
			return nil
		}
		l.prices = make(valuation.Prices, len(quotes))
		for symbol, q := range quotes {
			l.prices[symbol] = q.Price
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return ledger{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToLoadLedger, err)
	}
	return l, nil
}

// ComputeGroup returns the group valuation and the contributions it was computed from.
func (s *DashboardService) ComputeGroup(ctx context.Context) (model.GroupValuation, []model.Contribution, error) {
	l, err := s.loadLedger(ctx)
	if err != nil {
		return model.GroupValuation{}, nil, err
	}

	positions := valuation.BuildPositions(l.holdings)
	return valuation.Aggregate(positions, l.prices, l.contributions), l.contributions, nil
}

// GetDashboard computes the group valuation and memberID's share of it.
func (s *DashboardService) GetDashboard(ctx context.Context, memberID string) (model.Dashboard, error) {
	group, contributions, err := s.ComputeGroup(ctx)
	if err != nil {
		return model.Dashboard{}, err
	}

	return model.Dashboard{
		Status:     model.StateComputed,
		ComputedAt: time.Now().UTC(),
		Group:      group,
		Personal:   valuation.Apportion(memberID, contributions, group.TotalCapital, group.TotalCurrentValue),
	}, nil
}

// GetMemberShares computes every contributing member's share.
func (s *DashboardService) GetMemberShares(ctx context.Context) ([]model.MemberShare, error) {
	group, contributions, err := s.ComputeGroup(ctx)
	if err != nil {
		return nil, err
	}
	return valuation.ApportionAll(contributions, group), nil
}

// Refresh recomputes the group snapshot. On failure the snapshot moves to the
// failed state and no longer carries numbers.
func (s *DashboardService) Refresh(ctx context.Context) error {
	group, _, err := s.ComputeGroup(ctx)
	now := time.Now().UTC()

	if err != nil {
		s.snapshot.Store(&model.DashboardSnapshot{
			Status:     model.StateFailed,
			ComputedAt: &now,
			Error:      err.Error(),
		})
		return err
	}

	s.snapshot.Store(&model.DashboardSnapshot{
		Status:     model.StateComputed,
		ComputedAt: &now,
		Group:      &group,
	})
	return nil
}

// Snapshot returns the most recent background valuation.
func (s *DashboardService) Snapshot() model.DashboardSnapshot {
	return *s.snapshot.Load()
}
