package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Club-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
	"github.com/ndewijer/Investment-Club-Backend/internal/testutil"
)

func holdingRequest(symbol string, qty, price float64, date string) request.CreateHoldingRequest {
	return request.CreateHoldingRequest{
		Symbol:    symbol,
		Quantity:  decimal.NewFromFloat(qty),
		UnitPrice: decimal.NewFromFloat(price),
		Date:      date,
		AssetType: string(model.AssetStock),
	}
}

// TestHoldingService_CreateHoldingTransaction tests appending to the ledger.
//
// WHY: Symbols are entered by hand. They must be normalized so "infy" and
// "INFY" fold into the same position.
func TestHoldingService_CreateHoldingTransaction(t *testing.T) {
	t.Run("normalizes the symbol and assigns a sequence", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		// Execute
		first, err := svc.CreateHoldingTransaction(context.Background(), holdingRequest(" infy ", 10, 1500, "2024-01-05"))
		if err != nil {
			t.Fatalf("CreateHoldingTransaction() returned unexpected error: %v", err)
		}
		second, err := svc.CreateHoldingTransaction(context.Background(), holdingRequest("INFY", -2, 1600, "2024-01-06"))
		if err != nil {
			t.Fatalf("CreateHoldingTransaction() returned unexpected error: %v", err)
		}

		// Assert
		if first.Symbol != "INFY" {
			t.Errorf("Expected symbol INFY, got %q", first.Symbol)
		}
		if second.Seq <= first.Seq {
			t.Errorf("Expected increasing seq, got %d then %d", first.Seq, second.Seq)
		}
	})

	t.Run("accepts a transaction without a date", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		// Execute
		tx, err := svc.CreateHoldingTransaction(context.Background(), holdingRequest("TCS", 1, 3000, ""))

		// Assert
		if err != nil {
			t.Fatalf("CreateHoldingTransaction() returned unexpected error: %v", err)
		}
		if tx.Date != nil {
			t.Errorf("Expected nil date, got %v", tx.Date)
		}
	})
}

// TestHoldingService_ReplaceHoldingTransaction tests editing a transaction.
//
// WHY: An edit must not move the transaction to the end of same-date ties,
// otherwise correcting a typo would change the realized profit of later sells.
func TestHoldingService_ReplaceHoldingTransaction(t *testing.T) {
	t.Run("keeps the original sequence", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)
		original := testutil.NewHolding("INFY", 10, 100).OnDate("2024-01-01").Build(t, db)
		testutil.NewHolding("INFY", -5, 150).OnDate("2024-01-01").Build(t, db)

		// Execute
		replaced, err := svc.ReplaceHoldingTransaction(context.Background(), original.ID, holdingRequest("INFY", 10, 120, "2024-01-01"))

		// Assert
		if err != nil {
			t.Fatalf("ReplaceHoldingTransaction() returned unexpected error: %v", err)
		}
		if replaced.Seq != original.Seq {
			t.Errorf("Expected seq %d to be kept, got %d", original.Seq, replaced.Seq)
		}

		pos, err := svc.GetPosition(context.Background(), "INFY")
		if err != nil {
			t.Fatalf("GetPosition() returned unexpected error: %v", err)
		}
		// Buy 10 @ 120 then sell 5 @ 150: realized 5 * 30.
		if !approxEqual(pos.RealizedProfit, 150) {
			t.Errorf("Expected realized profit 150, got %f", pos.RealizedProfit)
		}
		if !approxEqual(pos.Quantity, 5) {
			t.Errorf("Expected quantity 5, got %f", pos.Quantity)
		}
	})

	t.Run("unknown ID returns ErrHoldingNotFound", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		// Execute
		_, err := svc.ReplaceHoldingTransaction(context.Background(), testutil.MakeID(), holdingRequest("INFY", 1, 1, "2024-01-01"))

		// Assert
		if !errors.Is(err, apperrors.ErrHoldingNotFound) {
			t.Errorf("Expected ErrHoldingNotFound, got %v", err)
		}
	})
}

// TestHoldingService_GetPositions tests folding the ledger into positions.
//
// WHY: Positions drive every valuation. Same-date buys and sells must fold in
// the order they were recorded.
func TestHoldingService_GetPositions(t *testing.T) {
	t.Run("folds each symbol independently", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)
		testutil.NewHolding("INFY", 10, 100).OnDate("2024-01-01").Build(t, db)
		testutil.NewHolding("INFY", 10, 200).OnDate("2024-02-01").Build(t, db)
		testutil.NewHolding("TCS", 4, 50).OnDate("2024-01-01").Build(t, db)
		testutil.NewHolding("TCS", -4, 75).OnDate("2024-03-01").Build(t, db)

		// Execute
		positions, err := svc.GetPositions(context.Background())

		// Assert
		if err != nil {
			t.Fatalf("GetPositions() returned unexpected error: %v", err)
		}
		if len(positions) != 2 {
			t.Fatalf("Expected 2 positions, got %d", len(positions))
		}
		infy, tcs := positions[0], positions[1]
		if infy.Symbol != "INFY" || !approxEqual(infy.AvgPrice, 150) {
			t.Errorf("Expected INFY avg 150, got %s avg %f", infy.Symbol, infy.AvgPrice)
		}
		if tcs.Quantity != 0 || !approxEqual(tcs.RealizedProfit, 100) {
			t.Errorf("Expected closed TCS with realized 100, got qty %f realized %f", tcs.Quantity, tcs.RealizedProfit)
		}
	})

	t.Run("unknown symbol returns ErrHoldingNotFound", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		// Execute
		_, err := svc.GetPosition(context.Background(), "NOPE")

		// Assert
		if !errors.Is(err, apperrors.ErrHoldingNotFound) {
			t.Errorf("Expected ErrHoldingNotFound, got %v", err)
		}
	})

	t.Run("closed database returns ErrFailedToLoadLedger", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)
		db.Close()

		// Execute
		_, err := svc.GetPositions(context.Background())

		// Assert
		if !errors.Is(err, apperrors.ErrFailedToLoadLedger) {
			t.Errorf("Expected ErrFailedToLoadLedger, got %v", err)
		}
	})
}
