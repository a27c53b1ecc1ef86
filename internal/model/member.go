package model

import "time"

// Role is the authorization role of a club member.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Member is a club member profile. ID is the identity provider's stable user identifier.
type Member struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
}

// IsAdmin reports whether the member holds the admin role.
func (m Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// MemberShare is one member's proportional claim on the pooled fund.
// ShareFraction is based on lifetime cumulative contributions only; contribution timing is ignored.
type MemberShare struct {
	MemberID           string  `json:"memberId"`
	ContributedCapital float64 `json:"contributedCapital"`
	ShareFraction      float64 `json:"shareFraction"`
	CurrentValue       float64 `json:"currentValue"`
	Profit             float64 `json:"profit"`
}
