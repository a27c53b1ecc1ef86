package valuation

import (
	"math"

	"github.com/ndewijer/Investment-Club-Backend/internal/model"
)

// Prices maps a symbol to its latest known market price.
type Prices map[string]float64

// Lookup returns the price for symbol when one is present and usable.
// Zero, negative and non-finite prices are treated as absent.
func (p Prices) Lookup(symbol string) (float64, bool) {
	price, ok := p[symbol]
	if !ok || !IsUsablePrice(price) {
		return 0, false
	}
	return price, true
}

// IsUsablePrice reports whether price can be used for valuation.
func IsUsablePrice(price float64) bool {
	return price > 0 && !math.IsInf(price, 0) && !math.IsNaN(price)
}

// TotalCapital sums the amount of every contribution.
func TotalCapital(contributions []model.Contribution) float64 {
	var total float64
	for _, c := range contributions {
		total += c.Amount
	}
	return total
}

// Aggregate combines positions, current prices and contributions into group totals.
//
// Open positions (quantity > 0) are valued at their quote, or at their average price
// when no quote exists, so a missing quote never shows a market return.
// Cash is capital put in, minus cost tied up in open positions, plus all realized profit.
// Closed and anomalous positions contribute their realized profit only.
func Aggregate(positions []model.SymbolPosition, prices Prices, contributions []model.Contribution) model.GroupValuation {
	group := model.GroupValuation{
		TotalCapital: TotalCapital(contributions),
		Positions:    make([]model.PositionValuation, 0, len(positions)),
	}

	var realized float64
	for _, p := range positions {
		realized += p.RealizedProfit
		pv := model.PositionValuation{SymbolPosition: p, TotalProfit: p.RealizedProfit}

		quote, hasQuote := prices.Lookup(p.Symbol)
		pv.HasQuote = hasQuote
		if hasQuote {
			pv.CurrentPrice = quote
		}

		if p.Quantity > 0 {
			if !hasQuote {
				pv.CurrentPrice = p.AvgPrice
			}
			pv.CurrentValue = pv.CurrentPrice * p.Quantity
			pv.UnrealizedProfit = pv.CurrentValue - p.CostBasis
			pv.TotalProfit = pv.UnrealizedProfit + p.RealizedProfit

			group.InvestedAmount += p.CostBasis
			group.CurrentHoldingsValue += pv.CurrentValue
		}

		group.Positions = append(group.Positions, pv)
	}

	group.CashBalance = group.TotalCapital - group.InvestedAmount + realized
	group.TotalCurrentValue = group.CashBalance + group.CurrentHoldingsValue
	group.TotalProfit = group.TotalCurrentValue - group.TotalCapital

	return group
}
