package request

import "github.com/shopspring/decimal"

// CreateHoldingRequest records a buy (positive quantity) or sell (negative quantity).
// It is also the body of an edit, which replaces the transaction.
type CreateHoldingRequest struct {
	Symbol        string          `json:"symbol"`
	DisplaySymbol string          `json:"displaySymbol"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Date          string          `json:"date"`
	AssetType     string          `json:"assetType"`
}
