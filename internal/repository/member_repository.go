package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ndewijer/Investment-Club-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
)

// MemberRepository provides data access methods for the member table.
type MemberRepository struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

// NewMemberRepository creates a new MemberRepository with the provided database connection.
func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) WithTx(tx *sqlx.Tx) *MemberRepository {
	return &MemberRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *MemberRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

type memberRow struct {
	ID         string `db:"id"`
	FullName   string `db:"full_name"`
	Email      string `db:"email"`
	Role       string `db:"role"`
	IsApproved bool   `db:"is_approved"`
	CreatedAt  string `db:"created_at"`
}

func (row memberRow) toModel() (model.Member, error) {
	createdAt, err := ParseTime(row.CreatedAt)
	if err != nil {
		return model.Member{}, err
	}
	return model.Member{
		ID:         row.ID,
		FullName:   row.FullName,
		Email:      row.Email,
		Role:       model.Role(row.Role),
		IsApproved: row.IsApproved,
		CreatedAt:  createdAt,
	}, nil
}

// GetMembers returns all members, newest first.
func (r *MemberRepository) GetMembers(ctx context.Context) ([]model.Member, error) {
	q := r.getQuerier()
	query := q.Rebind(`
		SELECT id, full_name, email, role, is_approved, created_at
		FROM member
		ORDER BY created_at DESC
	`)

	var rows []memberRow
	if err := sqlx.SelectContext(ctx, q, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query member table: %w", err)
	}

	members := make([]model.Member, 0, len(rows))
	for _, row := range rows {
		m, err := row.toModel()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

// GetMember retrieves a single member by ID.
// Returns apperrors.ErrMemberNotFound if no member exists.
func (r *MemberRepository) GetMember(ctx context.Context, id string) (model.Member, error) {
	q := r.getQuerier()
	query := q.Rebind(`
		SELECT id, full_name, email, role, is_approved, created_at
		FROM member
		WHERE id = ?
	`)

	var row memberRow
	err := sqlx.GetContext(ctx, q, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Member{}, apperrors.ErrMemberNotFound
	}
	if err != nil {
		return model.Member{}, fmt.Errorf("failed to query member: %w", err)
	}
	return row.toModel()
}

// CountMembers returns the number of registered members.
func (r *MemberRepository) CountMembers(ctx context.Context) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.getQuerier(), &count, `SELECT COUNT(*) FROM member`); err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

// InsertMember creates a member profile. CreatedAt is set when zero.
func (r *MemberRepository) InsertMember(ctx context.Context, m *model.Member) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	q := r.getQuerier()
	query := q.Rebind(`
		INSERT INTO member (id, full_name, email, role, is_approved, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)

	_, err := q.ExecContext(ctx, query,
		m.ID,
		m.FullName,
		m.Email,
		string(m.Role),
		m.IsApproved,
		formatTimestamp(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// UpdateFullName changes a member's display name.
func (r *MemberRepository) UpdateFullName(ctx context.Context, id, fullName string) error {
	q := r.getQuerier()
	result, err := q.ExecContext(ctx, q.Rebind(`UPDATE member SET full_name = ? WHERE id = ?`), fullName, id)
	if err != nil {
		return fmt.Errorf("failed to update member name: %w", err)
	}
	return checkAffected(result, apperrors.ErrMemberNotFound)
}

// SetApproval approves or revokes a member.
func (r *MemberRepository) SetApproval(ctx context.Context, id string, approved bool) error {
	q := r.getQuerier()
	result, err := q.ExecContext(ctx, q.Rebind(`UPDATE member SET is_approved = ? WHERE id = ?`), approved, id)
	if err != nil {
		return fmt.Errorf("failed to update member approval: %w", err)
	}
	return checkAffected(result, apperrors.ErrMemberNotFound)
}

// SetRole changes a member's role.
func (r *MemberRepository) SetRole(ctx context.Context, id string, role model.Role) error {
	q := r.getQuerier()
	result, err := q.ExecContext(ctx, q.Rebind(`UPDATE member SET role = ? WHERE id = ?`), string(role), id)
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	return checkAffected(result, apperrors.ErrMemberNotFound)
}
