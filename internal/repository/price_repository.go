package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ndewijer/Investment-Club-Backend/internal/model"
)

// PriceRepository is the SQL-backed price cache stored in the price_quote table.
type PriceRepository struct {
	db *sqlx.DB
}

// NewPriceRepository creates a new PriceRepository with the provided database connection.
func NewPriceRepository(db *sqlx.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

type priceRow struct {
	Symbol     string  `db:"symbol"`
	Price      float64 `db:"price"`
	ObservedAt string  `db:"observed_at"`
}

// GetCachedPrices returns every cached quote keyed by symbol.
func (r *PriceRepository) GetCachedPrices(ctx context.Context) (map[string]model.PriceQuote, error) {
	var rows []priceRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT symbol, price, observed_at FROM price_quote`); err != nil {
		return nil, fmt.Errorf("failed to query price_quote table: %w", err)
	}

	quotes := make(map[string]model.PriceQuote, len(rows))
	for _, row := range rows {
		observedAt, err := ParseTime(row.ObservedAt)
		if err != nil {
			return nil, err
		}
		quotes[row.Symbol] = model.PriceQuote{Symbol: row.Symbol, Price: row.Price, ObservedAt: observedAt}
	}
	return quotes, nil
}

// UpsertPrices stores prices observed at observedAt, replacing any existing quote per symbol.
// Concurrent writers are not coordinated; the last write for a symbol wins.
func (r *PriceRepository) UpsertPrices(ctx context.Context, prices map[string]float64, observedAt time.Time) error {
	if len(prices) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := tx.Rebind(`
		INSERT INTO price_quote (symbol, price, observed_at)
		VALUES (?, ?, ?)
		ON CONFLICT (symbol) DO UPDATE SET price = excluded.price, observed_at = excluded.observed_at
	`)

	ts := formatTimestamp(observedAt)
	for symbol, price := range prices {
		if _, err := tx.ExecContext(ctx, query, symbol, price, ts); err != nil {
			return fmt.Errorf("failed to upsert price for %s: %w", symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit prices: %w", err)
	}
	return nil
}
