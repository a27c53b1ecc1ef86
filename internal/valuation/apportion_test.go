package valuation_test

import (
	"math"
	"testing"

	"github.com/ndewijer/Investment-Club-Backend/internal/model"
	"github.com/ndewijer/Investment-Club-Backend/internal/valuation"
)

func TestApportion(t *testing.T) {
	t.Run("no capital recorded", func(t *testing.T) {
		share := valuation.Apportion("a", nil, 0, 0)

		if share.ShareFraction != 0 || share.CurrentValue != 0 || share.Profit != 0 {
			t.Errorf("Expected zero share, got %+v", share)
		}
	})

	t.Run("two members split proportionally", func(t *testing.T) {
		contributions := []model.Contribution{
			{MemberID: "a", Amount: 4000},
			{MemberID: "b", Amount: 4000},
			{MemberID: "a", Amount: 2000},
		}

		a := valuation.Apportion("a", contributions, 10000, 12000)
		b := valuation.Apportion("b", contributions, 10000, 12000)

		if !approxEqual(a.ShareFraction, 0.6) || !approxEqual(b.ShareFraction, 0.4) {
			t.Errorf("Expected shares 0.6 and 0.4, got %f and %f", a.ShareFraction, b.ShareFraction)
		}
		if !approxEqual(a.CurrentValue, 7200) || !approxEqual(b.CurrentValue, 4800) {
			t.Errorf("Expected values 7200 and 4800, got %f and %f", a.CurrentValue, b.CurrentValue)
		}
		if !approxEqual(a.Profit, 1200) {
			t.Errorf("Expected profit 1200, got %f", a.Profit)
		}
	})

	t.Run("member without contributions", func(t *testing.T) {
		share := valuation.Apportion("c", []model.Contribution{{MemberID: "a", Amount: 100}}, 100, 150)

		if share.ShareFraction != 0 || share.Profit != 0 {
			t.Errorf("Expected zero share, got %+v", share)
		}
	})
}

func TestApportionAll(t *testing.T) {
	contributions := []model.Contribution{
		{MemberID: "m3", Amount: 333.33},
		{MemberID: "m1", Amount: 1000},
		{MemberID: "m2", Amount: 0.01},
		{MemberID: "m3", Amount: 1234.56},
		{MemberID: "m1", Amount: 77.7},
	}
	group := model.GroupValuation{
		TotalCapital:      valuation.TotalCapital(contributions),
		TotalCurrentValue: 4321,
	}

	shares := valuation.ApportionAll(contributions, group)

	if len(shares) != 3 {
		t.Fatalf("Expected 3 shares, got %d", len(shares))
	}
	if shares[0].MemberID != "m1" {
		t.Errorf("Expected shares sorted by member, got %s first", shares[0].MemberID)
	}

	var sum, value float64
	for _, s := range shares {
		sum += s.ShareFraction
		value += s.CurrentValue
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("Expected share fractions to sum to 1, got %.12f", sum)
	}
	if math.Abs(value-group.TotalCurrentValue) > 1e-6 {
		t.Errorf("Expected values to sum to %f, got %f", group.TotalCurrentValue, value)
	}
}
