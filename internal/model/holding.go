package model

import "time"

// AssetType is the kind of instrument a holding transaction refers to.
type AssetType string

const (
	AssetStock AssetType = "stock"
	AssetFund  AssetType = "fund"
)

// HoldingTransaction is one buy (positive quantity) or sell (negative quantity) of a symbol.
// Date is nil when the ledger row has no date; such rows sort before all dated rows.
// DisplaySymbol is a UI alias and never affects computation.
type HoldingTransaction struct {
	ID            string     `json:"id"`
	Seq           int64      `json:"seq"`
	Symbol        string     `json:"symbol"`
	DisplaySymbol string     `json:"displaySymbol,omitempty"`
	Name          string     `json:"name,omitempty"`
	Quantity      float64    `json:"quantity"`
	UnitPrice     float64    `json:"unitPrice"`
	Date          *time.Time `json:"date"`
	AssetType     AssetType  `json:"assetType"`
	CreatedAt     time.Time  `json:"createdAt,omitempty"`
}

// IsBuy reports whether the transaction adds units.
func (t HoldingTransaction) IsBuy() bool {
	return t.Quantity > 0
}
