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

// ContributionRepository provides data access methods for the contribution table.
type ContributionRepository struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

// NewContributionRepository creates a new ContributionRepository with the provided database connection.
func NewContributionRepository(db *sqlx.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

func (r *ContributionRepository) WithTx(tx *sqlx.Tx) *ContributionRepository {
	return &ContributionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *ContributionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

type contributionRow struct {
	ID          string         `db:"id"`
	MemberID    string         `db:"member_id"`
	Amount      float64        `db:"amount"`
	Date        string         `db:"date"`
	Kind        string         `db:"kind"`
	CreatedAt   string         `db:"created_at"`
	MemberName  sql.NullString `db:"full_name"`
	MemberEmail sql.NullString `db:"email"`
}

func (row contributionRow) toModel() (model.ContributionResponse, error) {
	date, err := ParseTime(row.Date)
	if err != nil {
		return model.ContributionResponse{}, err
	}
	createdAt, err := ParseTime(row.CreatedAt)
	if err != nil {
		return model.ContributionResponse{}, err
	}
	return model.ContributionResponse{
		Contribution: model.Contribution{
			ID:        row.ID,
			MemberID:  row.MemberID,
			Amount:    row.Amount,
			Date:      date,
			Kind:      model.ContributionKind(row.Kind),
			CreatedAt: createdAt,
		},
		MemberName:  row.MemberName.String,
		MemberEmail: row.MemberEmail.String,
	}, nil
}

const contributionSelect = `
	SELECT c.id, c.member_id, c.amount, c.date, c.kind, c.created_at, m.full_name, m.email
	FROM contribution c
	LEFT JOIN member m ON c.member_id = m.id
`

// ListContributions returns every contribution with member details, newest date first.
// A non-empty memberID restricts the result to that member.
func (r *ContributionRepository) ListContributions(ctx context.Context, memberID string) ([]model.ContributionResponse, error) {
	q := r.getQuerier()
	query := contributionSelect
	var args []any
	if memberID != "" {
		query += ` WHERE c.member_id = ?`
		args = append(args, memberID)
	}
	query += ` ORDER BY c.date DESC, c.created_at DESC`

	var rows []contributionRow
	if err := sqlx.SelectContext(ctx, q, &rows, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query contribution table: %w", err)
	}

	contributions := make([]model.ContributionResponse, 0, len(rows))
	for _, row := range rows {
		c, err := row.toModel()
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, c)
	}
	return contributions, nil
}

// GetContribution retrieves one contribution by ID.
// Returns apperrors.ErrContributionNotFound if it does not exist.
func (r *ContributionRepository) GetContribution(ctx context.Context, id string) (model.ContributionResponse, error) {
	q := r.getQuerier()

	var row contributionRow
	err := sqlx.GetContext(ctx, q, &row, q.Rebind(contributionSelect+` WHERE c.id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ContributionResponse{}, apperrors.ErrContributionNotFound
	}
	if err != nil {
		return model.ContributionResponse{}, fmt.Errorf("failed to query contribution: %w", err)
	}
	return row.toModel()
}

// InsertContribution stores a new contribution, assigning its ID and CreatedAt.
func (r *ContributionRepository) InsertContribution(ctx context.Context, c *model.Contribution) error {
	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC()

	q := r.getQuerier()
	query := q.Rebind(`
		INSERT INTO contribution (id, member_id, amount, date, kind, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)

	_, err := q.ExecContext(ctx, query,
		c.ID,
		c.MemberID,
		c.Amount,
		formatDate(c.Date),
		string(c.Kind),
		formatTimestamp(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert contribution: %w", err)
	}
	return nil
}

// DeleteContribution removes a contribution.
// Returns apperrors.ErrContributionNotFound if no row was deleted.
func (r *ContributionRepository) DeleteContribution(ctx context.Context, id string) error {
	q := r.getQuerier()
	result, err := q.ExecContext(ctx, q.Rebind(`DELETE FROM contribution WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete contribution: %w", err)
	}
	return checkAffected(result, apperrors.ErrContributionNotFound)
}
