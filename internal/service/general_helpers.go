package service

import "github.com/shopspring/decimal"

// amountPlaces is the number of decimals exported monetary figures carry.
const amountPlaces = 2

// round rounds value half away from zero to amountPlaces decimals.
// Valuations are computed unrounded; rounding is only applied to exported figures.
//
//	round(123.456789)  // 123.46
//	round(-0.005)      // -0.01
func round(value float64) float64 {
	return decimal.NewFromFloat(value).Round(amountPlaces).InexactFloat64()
}
