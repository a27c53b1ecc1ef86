package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Club-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
	"github.com/ndewijer/Investment-Club-Backend/internal/repository"
	"github.com/ndewijer/Investment-Club-Backend/internal/validation"
	"github.com/ndewijer/Investment-Club-Backend/internal/valuation"
)

// HoldingService handles the holding transaction ledger and per-symbol positions.
type HoldingService struct {
	db          *sqlx.DB
	holdingRepo *repository.HoldingRepository
}

// NewHoldingService creates a new HoldingService with the provided repository dependencies.
func NewHoldingService(db *sqlx.DB, holdingRepo *repository.HoldingRepository) *HoldingService {
	return &HoldingService{
		db:          db,
		holdingRepo: holdingRepo,
	}
}

// ListHoldingTransactions returns the ledger in insertion order, optionally for one symbol.
func (s *HoldingService) ListHoldingTransactions(ctx context.Context, symbol string) ([]model.HoldingTransaction, error) {
	if symbol != "" {
		symbol = validation.NormalizeSymbol(symbol)
	}
	return s.holdingRepo.ListHoldingTransactions(ctx, symbol)
}

// GetHoldingTransaction retrieves a single transaction by its ID.
func (s *HoldingService) GetHoldingTransaction(ctx context.Context, id string) (model.HoldingTransaction, error) {
	return s.holdingRepo.GetHoldingTransaction(ctx, id)
}

// CreateHoldingTransaction appends a buy or sell to the ledger.
// The request must already be validated.
func (s *HoldingService) CreateHoldingTransaction(ctx context.Context, req request.CreateHoldingRequest) (*model.HoldingTransaction, error) {
	t, err := holdingFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.holdingRepo.InsertHoldingTransaction(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create holding transaction: %w", err)
	}

	return t, nil
}

// ReplaceHoldingTransaction edits a transaction by deleting it and inserting the
// replacement in one database transaction. The replacement keeps the original
// ledger sequence so same-date ordering is unaffected by the edit.
func (s *HoldingService) ReplaceHoldingTransaction(ctx context.Context, id string, req request.CreateHoldingRequest) (*model.HoldingTransaction, error) {
	replacement, err := holdingFromRequest(req)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	repo := s.holdingRepo.WithTx(tx)

	existing, err := repo.GetHoldingTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := repo.DeleteHoldingTransaction(ctx, id); err != nil {
		return nil, err
	}

	replacement.Seq = existing.Seq
	if err := repo.InsertHoldingTransaction(ctx, replacement); err != nil {
		return nil, fmt.Errorf("failed to replace holding transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return replacement, nil
}

// DeleteHoldingTransaction removes a transaction from the ledger.
func (s *HoldingService) DeleteHoldingTransaction(ctx context.Context, id string) error {
	return s.holdingRepo.DeleteHoldingTransaction(ctx, id)
}

// GetPositions folds the whole ledger into one position per symbol.
func (s *HoldingService) GetPositions(ctx context.Context) ([]model.SymbolPosition, error) {
	txs, err := s.holdingRepo.ListHoldingTransactions(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToLoadLedger, err)
	}
	return valuation.BuildPositions(txs), nil
}

// GetPosition folds one symbol's history.
// Returns apperrors.ErrHoldingNotFound when the symbol has no transactions.
func (s *HoldingService) GetPosition(ctx context.Context, symbol string) (model.SymbolPosition, error) {
	symbol = validation.NormalizeSymbol(symbol)

	txs, err := s.holdingRepo.ListHoldingTransactions(ctx, symbol)
	if err != nil {
		return model.SymbolPosition{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToLoadLedger, err)
	}
	if len(txs) == 0 {
		return model.SymbolPosition{}, apperrors.ErrHoldingNotFound
	}

	return valuation.FoldPosition(symbol, txs), nil
}

func holdingFromRequest(req request.CreateHoldingRequest) (*model.HoldingTransaction, error) {
	date, err := validation.ParseOptionalDate(req.Date)
	if err != nil {
		return nil, err
	}

	return &model.HoldingTransaction{
		Symbol:        validation.NormalizeSymbol(req.Symbol),
		DisplaySymbol: req.DisplaySymbol,
		Name:          req.Name,
		Quantity:      req.Quantity.InexactFloat64(),
		UnitPrice:     req.UnitPrice.InexactFloat64(),
		Date:          date,
		AssetType:     model.AssetType(req.AssetType),
	}, nil
}
