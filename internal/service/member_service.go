package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Club-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Club-Backend/internal/auth"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
	"github.com/ndewijer/Investment-Club-Backend/internal/repository"
)

// MemberService handles member profiles, approval and roles.
type MemberService struct {
	db         *sqlx.DB
	memberRepo *repository.MemberRepository
}

// NewMemberService creates a new MemberService with the provided repository dependencies.
func NewMemberService(db *sqlx.DB, memberRepo *repository.MemberRepository) *MemberService {
	return &MemberService{
		db:         db,
		memberRepo: memberRepo,
	}
}

// ListMembers returns all members, newest first.
func (s *MemberService) ListMembers(ctx context.Context) ([]model.Member, error) {
	return s.memberRepo.GetMembers(ctx)
}

// GetMember retrieves a member by ID.
func (s *MemberService) GetMember(ctx context.Context, id string) (model.Member, error) {
	return s.memberRepo.GetMember(ctx, id)
}

// Register creates the profile for the authenticated caller.
// The first member of a club becomes an approved admin; everyone after that
// starts as a member pending approval.
// Returns apperrors.ErrDuplicateEntry if the caller is already registered.
func (s *MemberService) Register(ctx context.Context, session *auth.Session, req request.RegisterMemberRequest) (model.Member, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Member{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	repo := s.memberRepo.WithTx(tx)

	if _, err := repo.GetMember(ctx, session.UserID); err == nil {
		return model.Member{}, apperrors.ErrDuplicateEntry
	} else if !errors.Is(err, apperrors.ErrMemberNotFound) {
		return model.Member{}, err
	}

	count, err := repo.CountMembers(ctx)
	if err != nil {
		return model.Member{}, err
	}

	member := model.Member{
		ID:       session.UserID,
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.TrimSpace(req.Email),
		Role:     model.RoleMember,
	}
	if count == 0 {
		member.Role = model.RoleAdmin
		member.IsApproved = true
	}

	if err := repo.InsertMember(ctx, &member); err != nil {
		return model.Member{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Member{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return member, nil
}

// UpdateProfile changes the caller's own display name.
func (s *MemberService) UpdateProfile(ctx context.Context, id string, req request.UpdateProfileRequest) (model.Member, error) {
	if err := s.memberRepo.UpdateFullName(ctx, id, strings.TrimSpace(req.FullName)); err != nil {
		return model.Member{}, err
	}
	return s.memberRepo.GetMember(ctx, id)
}

// SetApproval approves or revokes targetID. Admins cannot change their own approval.
func (s *MemberService) SetApproval(ctx context.Context, actorID, targetID string, approved bool) (model.Member, error) {
	if actorID == targetID {
		return model.Member{}, apperrors.ErrSelfModification
	}
	if err := s.memberRepo.SetApproval(ctx, targetID, approved); err != nil {
		return model.Member{}, err
	}
	return s.memberRepo.GetMember(ctx, targetID)
}

// SetRole changes targetID's role. Admins cannot change their own role.
func (s *MemberService) SetRole(ctx context.Context, actorID, targetID string, role model.Role) (model.Member, error) {
	if actorID == targetID {
		return model.Member{}, apperrors.ErrSelfModification
	}
	if err := s.memberRepo.SetRole(ctx, targetID, role); err != nil {
		return model.Member{}, err
	}
	return s.memberRepo.GetMember(ctx, targetID)
}
