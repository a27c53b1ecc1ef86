package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
)

// ValidContributionKind contains the allowed contribution kinds.
var ValidContributionKind = map[string]bool{
	string(model.ContributionCash): true, string(model.ContributionInvested): true,
}

// ValidateCreateContribution validates a contribution creation request.
//
// Required fields:
//   - memberId: non-empty
//   - amount: non-zero
//   - date: YYYY-MM-DD
//   - kind: cash or invested
func ValidateCreateContribution(req request.CreateContributionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.MemberID) == "" {
		errors["memberId"] = "memberId is required"
	}

	if req.Amount.IsZero() {
		errors["amount"] = "amount must be non-zero"
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := ParseDate(req.Date); err != nil {
		errors["date"] = "date must be in YYYY-MM-DD format"
	}

	if strings.TrimSpace(req.Kind) == "" {
		errors["kind"] = "kind is required"
	} else if !ValidContributionKind[req.Kind] {
		errors["kind"] = fmt.Sprintf("invalid kind: %s", req.Kind)
	}

	return fieldErrors(errors)
}
