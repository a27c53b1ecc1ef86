package model

import "time"

// ContributionKind distinguishes plain cash installments from capital contributed as assets.
type ContributionKind string

const (
	ContributionCash     ContributionKind = "cash"
	ContributionInvested ContributionKind = "invested"
)

// Contribution is capital a member puts into the pool.
type Contribution struct {
	ID        string           `json:"id"`
	MemberID  string           `json:"memberId"`
	Amount    float64          `json:"amount"`
	Date      time.Time        `json:"date"`
	Kind      ContributionKind `json:"kind"`
	CreatedAt time.Time        `json:"createdAt,omitempty"`
}

// ContributionResponse is a contribution enriched with the member's name for listings.
type ContributionResponse struct {
	Contribution
	MemberName  string `json:"memberName"`
	MemberEmail string `json:"memberEmail"`
}
