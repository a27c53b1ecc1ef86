package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
	"github.com/ndewijer/Investment-Club-Backend/internal/repository"
	"github.com/ndewijer/Investment-Club-Backend/internal/validation"
)

// ContributionService handles the contribution ledger.
type ContributionService struct {
	contributionRepo *repository.ContributionRepository
	memberRepo       *repository.MemberRepository
}

// NewContributionService creates a new ContributionService with the provided repository dependencies.
func NewContributionService(
	contributionRepo *repository.ContributionRepository,
	memberRepo *repository.MemberRepository,
) *ContributionService {
	return &ContributionService{
		contributionRepo: contributionRepo,
		memberRepo:       memberRepo,
	}
}

// ListContributions returns all contributions, or only memberID's when it is non-empty.
func (s *ContributionService) ListContributions(ctx context.Context, memberID string) ([]model.ContributionResponse, error) {
	return s.contributionRepo.ListContributions(ctx, memberID)
}

// GetContribution retrieves a single contribution by its ID.
func (s *ContributionService) GetContribution(ctx context.Context, id string) (model.ContributionResponse, error) {
	return s.contributionRepo.GetContribution(ctx, id)
}

// CreateContribution records a contribution for an existing member.
// Returns apperrors.ErrMemberNotFound when the member does not exist.
// The request must already be validated.
func (s *ContributionService) CreateContribution(ctx context.Context, req request.CreateContributionRequest) (*model.Contribution, error) {
	memberID := strings.TrimSpace(req.MemberID)
	if _, err := s.memberRepo.GetMember(ctx, memberID); err != nil {
		return nil, err
	}

	date, err := validation.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	contribution := &model.Contribution{
		MemberID: memberID,
		Amount:   req.Amount.InexactFloat64(),
		Date:     date,
		Kind:     model.ContributionKind(req.Kind),
	}

	if err := s.contributionRepo.InsertContribution(ctx, contribution); err != nil {
		return nil, fmt.Errorf("failed to create contribution: %w", err)
	}

	return contribution, nil
}

// DeleteContribution removes a contribution.
func (s *ContributionService) DeleteContribution(ctx context.Context, id string) error {
	return s.contributionRepo.DeleteContribution(ctx, id)
}
