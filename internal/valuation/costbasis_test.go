package valuation_test

import (
	"math"
	"testing"
	"time"

	"github.com/ndewijer/Investment-Club-Backend/internal/model"
	"github.com/ndewijer/Investment-Club-Backend/internal/valuation"
)

const tolerance = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func day(s string) *time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &d
}

func tx(qty, price float64, date *time.Time) model.HoldingTransaction {
	return model.HoldingTransaction{Symbol: "INFY", Quantity: qty, UnitPrice: price, Date: date, AssetType: model.AssetStock}
}

func TestFoldPosition(t *testing.T) {
	t.Run("single buy", func(t *testing.T) {
		pos := valuation.FoldPosition("INFY", []model.HoldingTransaction{
			tx(10, 100, day("2024-01-01")),
		})

		if pos.Quantity != 10 {
			t.Errorf("Expected quantity 10, got %f", pos.Quantity)
		}
		if pos.CostBasis != 1000 {
			t.Errorf("Expected cost basis 1000, got %f", pos.CostBasis)
		}
		if pos.AvgPrice != 100 {
			t.Errorf("Expected avg price 100, got %f", pos.AvgPrice)
		}
		if pos.RealizedProfit != 0 {
			t.Errorf("Expected realized profit 0, got %f", pos.RealizedProfit)
		}
	})

	t.Run("partial sell realizes against average cost", func(t *testing.T) {
		pos := valuation.FoldPosition("INFY", []model.HoldingTransaction{
			tx(10, 100, day("2024-01-01")),
			tx(-4, 150, day("2024-02-01")),
		})

		if !approxEqual(pos.Quantity, 6) {
			t.Errorf("Expected quantity 6, got %f", pos.Quantity)
		}
		if !approxEqual(pos.CostBasis, 600) {
			t.Errorf("Expected cost basis 600, got %f", pos.CostBasis)
		}
		if !approxEqual(pos.RealizedProfit, 200) {
			t.Errorf("Expected realized profit 200, got %f", pos.RealizedProfit)
		}
	})

	t.Run("sell without prior buys degrades gracefully", func(t *testing.T) {
		pos := valuation.FoldPosition("INFY", []model.HoldingTransaction{
			tx(-5, 80, day("2024-01-01")),
		})

		if pos.Quantity != -5 {
			t.Errorf("Expected quantity -5, got %f", pos.Quantity)
		}
		if pos.RealizedProfit != 400 {
			t.Errorf("Expected realized profit 400, got %f", pos.RealizedProfit)
		}
		if pos.AvgPrice != 0 {
			t.Errorf("Expected avg price 0 for negative position, got %f", pos.AvgPrice)
		}
	})

	t.Run("sorts by date before folding", func(t *testing.T) {
		// Sell listed first but dated after the buy.
		pos := valuation.FoldPosition("INFY", []model.HoldingTransaction{
			tx(-4, 150, day("2024-02-01")),
			tx(10, 100, day("2024-01-01")),
		})

		if !approxEqual(pos.Quantity, 6) || !approxEqual(pos.RealizedProfit, 200) {
			t.Errorf("Expected quantity 6 and profit 200, got %f and %f", pos.Quantity, pos.RealizedProfit)
		}
	})

	t.Run("missing date sorts first", func(t *testing.T) {
		pos := valuation.FoldPosition("INFY", []model.HoldingTransaction{
			tx(-5, 120, day("2024-01-01")),
			tx(10, 100, nil),
		})

		if !approxEqual(pos.Quantity, 5) {
			t.Errorf("Expected quantity 5, got %f", pos.Quantity)
		}
		if !approxEqual(pos.RealizedProfit, 100) {
			t.Errorf("Expected realized profit 100, got %f", pos.RealizedProfit)
		}
	})

	t.Run("same date ties keep ledger sequence", func(t *testing.T) {
		sell := tx(-10, 50, day("2024-03-01"))
		sell.Seq = 2
		buy := tx(10, 100, day("2024-03-01"))
		buy.Seq = 1

		pos := valuation.FoldPosition("INFY", []model.HoldingTransaction{sell, buy})

		if pos.Quantity != 0 {
			t.Errorf("Expected quantity 0, got %f", pos.Quantity)
		}
		if !approxEqual(pos.RealizedProfit, -500) {
			t.Errorf("Expected realized loss -500 from buy-then-sell, got %f", pos.RealizedProfit)
		}
	})

	t.Run("same date ties do not change quantity or cost", func(t *testing.T) {
		a := tx(10, 100, day("2024-03-01"))
		b := tx(5, 130, day("2024-03-01"))

		first := valuation.FoldPosition("INFY", []model.HoldingTransaction{a, b})
		second := valuation.FoldPosition("INFY", []model.HoldingTransaction{b, a})

		if first.Quantity != second.Quantity || !approxEqual(first.CostBasis, second.CostBasis) {
			t.Errorf("Expected identical position, got %+v and %+v", first, second)
		}
	})

	t.Run("snaps rounding drift to zero", func(t *testing.T) {
		pos := valuation.FoldPosition("INFY", []model.HoldingTransaction{
			tx(0.1, 100, day("2024-01-01")),
			tx(0.2, 100, day("2024-01-02")),
			tx(-0.30001, 120, day("2024-01-03")),
		})

		if pos.Quantity != 0 {
			t.Errorf("Expected snapped quantity 0, got %v", pos.Quantity)
		}
		if pos.CostBasis != 0 {
			t.Errorf("Expected snapped cost basis 0, got %v", pos.CostBasis)
		}
	})

	t.Run("labels follow latest non-empty values", func(t *testing.T) {
		first := tx(1, 10, day("2024-01-01"))
		first.Name = "Infosys"
		first.DisplaySymbol = "INFY.NS"
		second := tx(1, 10, day("2024-01-02"))
		second.Name = "Infosys Ltd"

		pos := valuation.FoldPosition("INFY", []model.HoldingTransaction{first, second})

		if pos.Name != "Infosys Ltd" {
			t.Errorf("Expected name Infosys Ltd, got %s", pos.Name)
		}
		if pos.DisplaySymbol != "INFY.NS" {
			t.Errorf("Expected display symbol INFY.NS, got %s", pos.DisplaySymbol)
		}
	})

	t.Run("does not reorder caller slice", func(t *testing.T) {
		txs := []model.HoldingTransaction{
			tx(-1, 150, day("2024-02-01")),
			tx(10, 100, day("2024-01-01")),
		}
		valuation.FoldPosition("INFY", txs)

		if txs[0].Quantity != -1 {
			t.Error("Expected input slice order to be preserved")
		}
	})
}

func TestFoldPosition_BuyOnly(t *testing.T) {
	txs := []model.HoldingTransaction{
		tx(3, 101.5, day("2024-01-03")),
		tx(7, 99.25, day("2024-01-01")),
		tx(0.5, 110, nil),
		tx(12, 87.75, day("2024-06-30")),
	}

	var wantQty, wantCost float64
	for _, tx := range txs {
		wantQty += tx.Quantity
		wantCost += tx.Quantity * tx.UnitPrice
	}

	pos := valuation.FoldPosition("INFY", txs)

	if !approxEqual(pos.Quantity, wantQty) {
		t.Errorf("Expected quantity %f, got %f", wantQty, pos.Quantity)
	}
	if !approxEqual(pos.CostBasis, wantCost) {
		t.Errorf("Expected cost basis %f, got %f", wantCost, pos.CostBasis)
	}
	if pos.RealizedProfit != 0 {
		t.Errorf("Expected realized profit 0, got %f", pos.RealizedProfit)
	}
}

func TestFoldPosition_CoveredSells(t *testing.T) {
	// Buy 10 @ 100, buy 10 @ 200 (avg 150), sell 5 @ 180, buy 5 @ 120 (avg 142.5), sell 10 @ 160.
	txs := []model.HoldingTransaction{
		tx(10, 100, day("2024-01-01")),
		tx(10, 200, day("2024-01-02")),
		tx(-5, 180, day("2024-01-03")),
		tx(5, 120, day("2024-01-04")),
		tx(-10, 160, day("2024-01-05")),
	}

	pos := valuation.FoldPosition("INFY", txs)

	wantRealized := 5*(180-150.0) + 10*(160-142.5)
	if !approxEqual(pos.RealizedProfit, wantRealized) {
		t.Errorf("Expected realized profit %f, got %f", wantRealized, pos.RealizedProfit)
	}
	if !approxEqual(pos.Quantity, 10) {
		t.Errorf("Expected quantity 10, got %f", pos.Quantity)
	}
	if !approxEqual(pos.CostBasis, 1425) {
		t.Errorf("Expected cost basis 1425, got %f", pos.CostBasis)
	}

	// Recomputing from scratch gives the same answer.
	again := valuation.FoldPosition("INFY", txs)
	if again != pos {
		t.Errorf("Expected idempotent fold, got %+v then %+v", pos, again)
	}
}

func TestBuildPositions(t *testing.T) {
	ledger := []model.HoldingTransaction{
		{Symbol: "TCS", Quantity: 2, UnitPrice: 3000, Date: day("2024-01-01")},
		{Symbol: "INFY", Quantity: 10, UnitPrice: 100, Date: day("2024-01-01")},
		{Symbol: "TCS", Quantity: -2, UnitPrice: 3500, Date: day("2024-02-01")},
	}

	positions := valuation.BuildPositions(ledger)

	if len(positions) != 2 {
		t.Fatalf("Expected 2 positions, got %d", len(positions))
	}
	if positions[0].Symbol != "INFY" || positions[1].Symbol != "TCS" {
		t.Errorf("Expected positions sorted by symbol, got %s, %s", positions[0].Symbol, positions[1].Symbol)
	}
	if positions[1].Quantity != 0 || positions[1].RealizedProfit != 1000 {
		t.Errorf("Expected closed TCS with profit 1000, got %+v", positions[1])
	}

	open := valuation.OpenSymbols(positions)
	if len(open) != 1 || open[0] != "INFY" {
		t.Errorf("Expected open symbols [INFY], got %v", open)
	}
}
