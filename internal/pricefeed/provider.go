// Package pricefeed fetches current market prices through an ordered chain of providers.
package pricefeed

import "context"

// BatchProvider looks up many symbols in one call.
// Symbols missing from the returned map have no quote from this provider.
type BatchProvider interface {
	Name() string
	FetchBatch(ctx context.Context, symbols []string) (map[string]float64, error)
}

// SingleProvider looks up one symbol per call.
// ok is false when the provider answered but has no usable quote for symbol.
type SingleProvider interface {
	Name() string
	FetchSingle(ctx context.Context, symbol string) (price float64, ok bool, err error)
}
