package model

import "time"

// PriceQuote is a cached market price for a symbol.
type PriceQuote struct {
	Symbol     string    `json:"symbol"`
	Price      float64   `json:"price"`
	ObservedAt time.Time `json:"observedAt"`
}

// IsStale reports whether the quote is older than maxAge at now.
func (q PriceQuote) IsStale(now time.Time, maxAge time.Duration) bool {
	return now.Sub(q.ObservedAt) > maxAge
}

// SyncState is the position of the price sync cycle state machine.
type SyncState string

const (
	SyncIdle        SyncState = "idle"
	SyncChecking    SyncState = "checking"
	SyncFetching    SyncState = "fetching"
	SyncReconciling SyncState = "reconciling"
)

// PriceSyncResult describes one completed sync cycle.
type PriceSyncResult struct {
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Checked    int       `json:"checked"`
	Stale      []string  `json:"stale"`
	Updated    []string  `json:"updated"`
	Missing    []string  `json:"missing"`
}

// DidUpdate reports whether the cycle persisted at least one new quote.
func (r PriceSyncResult) DidUpdate() bool {
	return len(r.Updated) > 0
}

// PriceSyncStatus is the observable state of the price sync scheduler.
type PriceSyncStatus struct {
	State    SyncState        `json:"state"`
	LastSync *PriceSyncResult `json:"lastSync,omitempty"`
}
