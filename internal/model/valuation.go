package model

import "time"

// GroupValuation holds the group-level totals derived from the ledger and current prices.
type GroupValuation struct {
	TotalCapital         float64             `json:"totalCapital"`
	CashBalance          float64             `json:"cashBalance"`
	InvestedAmount       float64             `json:"investedAmount"`
	CurrentHoldingsValue float64             `json:"currentHoldingsValue"`
	TotalCurrentValue    float64             `json:"totalCurrentValue"`
	TotalProfit          float64             `json:"totalProfit"`
	Positions            []PositionValuation `json:"positions"`
}

// LoadState tells the presentation layer whether numbers can be trusted.
type LoadState string

const (
	StateLoading  LoadState = "loading"
	StateComputed LoadState = "computed"
	StateFailed   LoadState = "failed"
)

// Dashboard is the group valuation together with the caller's share.
type Dashboard struct {
	Status     LoadState      `json:"status"`
	ComputedAt time.Time      `json:"computedAt"`
	Group      GroupValuation `json:"group"`
	Personal   MemberShare    `json:"personal"`
}

// DashboardSnapshot is the state of the periodically refreshed group valuation.
// Group is nil unless Status is StateComputed.
type DashboardSnapshot struct {
	Status     LoadState       `json:"status"`
	ComputedAt *time.Time      `json:"computedAt,omitempty"`
	Error      string          `json:"error,omitempty"`
	Group      *GroupValuation `json:"group,omitempty"`
}
