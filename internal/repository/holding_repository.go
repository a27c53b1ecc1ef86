package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ndewijer/Investment-Club-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
)

// HoldingRepository provides data access methods for the holding_transaction table.
// Rows are append-only; seq records insertion order for same-date tie breaking.
type HoldingRepository struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sqlx.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

func (r *HoldingRepository) WithTx(tx *sqlx.Tx) *HoldingRepository {
	return &HoldingRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *HoldingRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

type holdingRow struct {
	ID            string         `db:"id"`
	Seq           int64          `db:"seq"`
	Symbol        string         `db:"symbol"`
	DisplaySymbol sql.NullString `db:"display_symbol"`
	Name          sql.NullString `db:"name"`
	Quantity      float64        `db:"quantity"`
	UnitPrice     float64        `db:"unit_price"`
	Date          sql.NullString `db:"date"`
	AssetType     string         `db:"asset_type"`
	CreatedAt     string         `db:"created_at"`
}

func (row holdingRow) toModel() (model.HoldingTransaction, error) {
	date, err := parseNullDate(row.Date)
	if err != nil {
		return model.HoldingTransaction{}, err
	}
	createdAt, err := ParseTime(row.CreatedAt)
	if err != nil {
		return model.HoldingTransaction{}, err
	}
	return model.HoldingTransaction{
		ID:            row.ID,
		Seq:           row.Seq,
		Symbol:        row.Symbol,
		DisplaySymbol: row.DisplaySymbol.String,
		Name:          row.Name.String,
		Quantity:      row.Quantity,
		UnitPrice:     row.UnitPrice,
		Date:          date,
		AssetType:     model.AssetType(row.AssetType),
		CreatedAt:     createdAt,
	}, nil
}

const holdingSelect = `
	SELECT id, seq, symbol, display_symbol, name, quantity, unit_price, date, asset_type, created_at
	FROM holding_transaction
`

// ListHoldingTransactions returns the holding ledger in insertion order.
// A non-empty symbol restricts the result to that symbol.
func (r *HoldingRepository) ListHoldingTransactions(ctx context.Context, symbol string) ([]model.HoldingTransaction, error) {
	q := r.getQuerier()
	query := holdingSelect
	var args []any
	if symbol != "" {
		query += ` WHERE symbol = ?`
		args = append(args, symbol)
	}
	query += ` ORDER BY seq ASC`

	var rows []holdingRow
	if err := sqlx.SelectContext(ctx, q, &rows, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query holding_transaction table: %w", err)
	}

	txs := make([]model.HoldingTransaction, 0, len(rows))
	for _, row := range rows {
		t, err := row.toModel()
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, nil
}

// GetHoldingTransaction retrieves one holding transaction by ID.
// Returns apperrors.ErrHoldingNotFound if it does not exist.
func (r *HoldingRepository) GetHoldingTransaction(ctx context.Context, id string) (model.HoldingTransaction, error) {
	q := r.getQuerier()

	var row holdingRow
	err := sqlx.GetContext(ctx, q, &row, q.Rebind(holdingSelect+` WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.HoldingTransaction{}, apperrors.ErrHoldingNotFound
	}
	if err != nil {
		return model.HoldingTransaction{}, fmt.Errorf("failed to query holding transaction: %w", err)
	}
	return row.toModel()
}

// InsertHoldingTransaction appends a transaction to the ledger.
// ID and CreatedAt are always assigned. Seq is assigned as the next sequence number
// unless the caller already set one.
func (r *HoldingRepository) InsertHoldingTransaction(ctx context.Context, t *model.HoldingTransaction) error {
	t.ID = uuid.New().String()
	t.CreatedAt = time.Now().UTC()

	q := r.getQuerier()
	if t.Seq == 0 {
		var next int64
		err := sqlx.GetContext(ctx, q, &next, `SELECT COALESCE(MAX(seq), 0) + 1 FROM holding_transaction`)
		if err != nil {
			return fmt.Errorf("failed to allocate holding sequence: %w", err)
		}
		t.Seq = next
	}

	query := q.Rebind(`
		INSERT INTO holding_transaction
			(id, seq, symbol, display_symbol, name, quantity, unit_price, date, asset_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := q.ExecContext(ctx, query,
		t.ID,
		t.Seq,
		t.Symbol,
		nullString(t.DisplaySymbol),
		nullString(t.Name),
		t.Quantity,
		t.UnitPrice,
		formatNullDate(t.Date),
		string(t.AssetType),
		formatTimestamp(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert holding transaction: %w", err)
	}
	return nil
}

// DeleteHoldingTransaction removes a transaction from the ledger.
// Returns apperrors.ErrHoldingNotFound if no row was deleted.
func (r *HoldingRepository) DeleteHoldingTransaction(ctx context.Context, id string) error {
	q := r.getQuerier()
	result, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM holding_transaction WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete holding transaction: %w", err)
	}
	return checkAffected(result, apperrors.ErrHoldingNotFound)
}
