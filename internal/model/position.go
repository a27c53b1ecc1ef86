package model

// SymbolPosition is the result of folding one symbol's transaction history in date order.
// It is derived on every read and never persisted.
type SymbolPosition struct {
	Symbol         string  `json:"symbol"`
	DisplaySymbol  string  `json:"displaySymbol,omitempty"`
	Name           string  `json:"name,omitempty"`
	Quantity       float64 `json:"quantity"`
	CostBasis      float64 `json:"costBasis"`
	RealizedProfit float64 `json:"realizedProfit"`
	AvgPrice       float64 `json:"avgPrice"`
}

// Label returns the alias shown to users, falling back to the canonical symbol.
func (p SymbolPosition) Label() string {
	if p.DisplaySymbol != "" {
		return p.DisplaySymbol
	}
	return p.Symbol
}

// PositionValuation is a SymbolPosition priced against the current market.
// HasQuote is false when CurrentPrice fell back to AvgPrice because no quote was available.
type PositionValuation struct {
	SymbolPosition
	CurrentPrice     float64 `json:"currentPrice"`
	HasQuote         bool    `json:"hasQuote"`
	CurrentValue     float64 `json:"currentValue"`
	UnrealizedProfit float64 `json:"unrealizedProfit"`
	TotalProfit      float64 `json:"totalProfit"`
}
