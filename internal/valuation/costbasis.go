// Package valuation turns the club ledger into positions, group totals and member shares.
// Everything in this package is a pure function of its inputs.
package valuation

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/ndewijer/Investment-Club-Backend/internal/model"
)

// QuantityEpsilon is the magnitude below which a folded quantity is treated as exactly zero.
const QuantityEpsilon = 1e-4

// SortTransactions orders transactions chronologically in place.
// Transactions without a date sort before every dated transaction.
// Same-date transactions are ordered by ledger sequence, and by input order when no sequence is set.
func SortTransactions(txs []model.HoldingTransaction) {
	slices.SortStableFunc(txs, func(a, b model.HoldingTransaction) int {
		if c := dateOrMin(a.Date).Compare(dateOrMin(b.Date)); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})
}

func dateOrMin(d *time.Time) time.Time {
	if d == nil {
		return time.Time{}
	}
	return *d
}

// FoldPosition computes the position of a single symbol from its transaction history.
//
// The input may be in any order; it is copied and sorted chronologically before folding.
// Buys add to quantity and cost basis. Sells against a held position realize
// (sell price - weighted average cost) per unit and release that cost from the basis.
// Sells against a zero or negative position are a ledger anomaly: the full proceeds
// count as realized profit and quantity goes negative. No error is ever returned.
//
// After folding, a quantity within QuantityEpsilon of zero snaps quantity and cost basis to 0.
// Name and DisplaySymbol carry the latest non-empty values seen and never affect numbers.
func FoldPosition(symbol string, txs []model.HoldingTransaction) model.SymbolPosition {
	ordered := slices.Clone(txs)
	SortTransactions(ordered)

	pos := model.SymbolPosition{Symbol: symbol}
	var quantity, costBasis, realized float64

	for _, tx := range ordered {
		if tx.Name != "" {
			pos.Name = tx.Name
		}
		if tx.DisplaySymbol != "" {
			pos.DisplaySymbol = tx.DisplaySymbol
		}

		switch {
		case tx.Quantity > 0:
			quantity += tx.Quantity
			costBasis += tx.Quantity * tx.UnitPrice
		case tx.Quantity < 0:
			sellQty := math.Abs(tx.Quantity)
			if quantity > 0 {
				avgCost := costBasis / quantity
				costOfSold := sellQty * avgCost
				realized += sellQty*tx.UnitPrice - costOfSold
				costBasis -= costOfSold
			} else {
				realized += sellQty * tx.UnitPrice
			}
			quantity -= sellQty
		}
	}

	if math.Abs(quantity) < QuantityEpsilon {
		quantity = 0
		costBasis = 0
	}

	pos.Quantity = quantity
	pos.CostBasis = costBasis
	pos.RealizedProfit = realized
	if quantity > 0 {
		pos.AvgPrice = costBasis / quantity
	}

	return pos
}

// BuildPositions groups a mixed ledger by symbol and folds each group.
// The result is sorted by symbol so repeated calls produce identical output.
func BuildPositions(txs []model.HoldingTransaction) []model.SymbolPosition {
	groups := make(map[string][]model.HoldingTransaction)
	for _, tx := range txs {
		groups[tx.Symbol] = append(groups[tx.Symbol], tx)
	}

	positions := make([]model.SymbolPosition, 0, len(groups))
	for symbol, group := range groups {
		positions = append(positions, FoldPosition(symbol, group))
	}

	slices.SortFunc(positions, func(a, b model.SymbolPosition) int {
		return cmp.Compare(a.Symbol, b.Symbol)
	})

	return positions
}

// OpenSymbols returns the symbols of positions that currently hold units.
func OpenSymbols(positions []model.SymbolPosition) []string {
	var symbols []string
	for _, p := range positions {
		if p.Quantity > 0 {
			symbols = append(symbols, p.Symbol)
		}
	}
	return symbols
}
