package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ndewijer/Investment-Club-Backend/internal/model"
	"github.com/ndewijer/Investment-Club-Backend/internal/repository"
)

// MemberBuilder provides a fluent interface for creating test members.
//
// Example usage:
//
//	admin := testutil.NewMember().Admin().Build(t, db)
//	pending := testutil.NewMember().WithName("Ravi").Pending().Build(t, db)
type MemberBuilder struct {
	member model.Member
}

// NewMember creates a MemberBuilder for an approved member with a unique ID and email.
func NewMember() *MemberBuilder {
	suffix := randomAlphanumeric(6)
	return &MemberBuilder{member: model.Member{
		ID:         MakeID(),
		FullName:   "Member " + suffix,
		Email:      "member-" + suffix + "@example.com",
		Role:       model.RoleMember,
		IsApproved: true,
	}}
}

// WithID sets a custom ID.
func (b *MemberBuilder) WithID(id string) *MemberBuilder {
	b.member.ID = id
	return b
}

// WithName sets a custom full name.
func (b *MemberBuilder) WithName(name string) *MemberBuilder {
	b.member.FullName = name
	return b
}

// Admin makes the member an approved admin.
func (b *MemberBuilder) Admin() *MemberBuilder {
	b.member.Role = model.RoleAdmin
	b.member.IsApproved = true
	return b
}

// Pending marks the member as awaiting approval.
func (b *MemberBuilder) Pending() *MemberBuilder {
	b.member.IsApproved = false
	return b
}

// Build creates the member in the database and returns it.
func (b *MemberBuilder) Build(t *testing.T, db *sqlx.DB) model.Member {
	t.Helper()

	m := b.member
	if err := repository.NewMemberRepository(db).InsertMember(context.Background(), &m); err != nil {
		t.Fatalf("Failed to create test member: %v", err)
	}
	return m
}

// ContributionBuilder provides a fluent interface for creating test contributions.
//
// Example usage:
//
//	testutil.NewContribution(member.ID, 5000).OnDate("2024-01-10").Build(t, db)
type ContributionBuilder struct {
	contribution model.Contribution
}

// NewContribution creates a cash contribution dated 2024-01-01.
func NewContribution(memberID string, amount float64) *ContributionBuilder {
	return &ContributionBuilder{contribution: model.Contribution{
		MemberID: memberID,
		Amount:   amount,
		Date:     MustDate("2024-01-01"),
		Kind:     model.ContributionCash,
	}}
}

// OnDate sets the contribution date (YYYY-MM-DD).
func (b *ContributionBuilder) OnDate(date string) *ContributionBuilder {
	b.contribution.Date = MustDate(date)
	return b
}

// Invested marks the contribution as capital contributed in kind.
func (b *ContributionBuilder) Invested() *ContributionBuilder {
	b.contribution.Kind = model.ContributionInvested
	return b
}

// Build creates the contribution in the database and returns it.
func (b *ContributionBuilder) Build(t *testing.T, db *sqlx.DB) model.Contribution {
	t.Helper()

	c := b.contribution
	if err := repository.NewContributionRepository(db).InsertContribution(context.Background(), &c); err != nil {
		t.Fatalf("Failed to create test contribution: %v", err)
	}
	return c
}

// HoldingBuilder provides a fluent interface for creating test holding transactions.
//
// Example usage:
//
//	testutil.NewHolding("INFY", 10, 1500).OnDate("2024-02-01").Build(t, db)
//	testutil.NewHolding("INFY", -4, 1650).OnDate("2024-03-01").Build(t, db)
type HoldingBuilder struct {
	holding model.HoldingTransaction
}

// NewHolding creates a dated stock transaction. Negative quantities are sells.
func NewHolding(symbol string, quantity, unitPrice float64) *HoldingBuilder {
	d := MustDate("2024-01-01")
	return &HoldingBuilder{holding: model.HoldingTransaction{
		Symbol:    symbol,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Date:      &d,
		AssetType: model.AssetStock,
	}}
}

// OnDate sets the transaction date (YYYY-MM-DD).
func (b *HoldingBuilder) OnDate(date string) *HoldingBuilder {
	d := MustDate(date)
	b.holding.Date = &d
	return b
}

// Undated clears the transaction date.
func (b *HoldingBuilder) Undated() *HoldingBuilder {
	b.holding.Date = nil
	return b
}

// WithLabels sets the name and display symbol.
func (b *HoldingBuilder) WithLabels(name, displaySymbol string) *HoldingBuilder {
	b.holding.Name = name
	b.holding.DisplaySymbol = displaySymbol
	return b
}

// Fund marks the transaction as a mutual fund.
func (b *HoldingBuilder) Fund() *HoldingBuilder {
	b.holding.AssetType = model.AssetFund
	return b
}

// Build appends the transaction to the ledger and returns it.
func (b *HoldingBuilder) Build(t *testing.T, db *sqlx.DB) model.HoldingTransaction {
	t.Helper()

	h := b.holding
	if err := repository.NewHoldingRepository(db).InsertHoldingTransaction(context.Background(), &h); err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}
	return h
}

// CreatePrice stores a cached quote observed at observedAt.
func CreatePrice(t *testing.T, db *sqlx.DB, symbol string, price float64, observedAt time.Time) {
	t.Helper()

	err := repository.NewPriceRepository(db).UpsertPrices(context.Background(), map[string]float64{symbol: price}, observedAt)
	if err != nil {
		t.Fatalf("Failed to create test price: %v", err)
	}
}

// MustDate parses a YYYY-MM-DD date and panics on malformed input.
func MustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
