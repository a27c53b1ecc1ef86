package request

import "github.com/shopspring/decimal"

// Amounts accept either a JSON number or a numeric string.
type CreateContributionRequest struct {
	MemberID string          `json:"memberId"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"`
	Kind     string          `json:"kind"`
}
