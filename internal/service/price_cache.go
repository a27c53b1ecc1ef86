package service

import (
	"context"
	"time"

	"github.com/ndewijer/Investment-Club-Backend/internal/model"
)

// PriceCache is the persisted quote cache shared by every server instance.
// It is implemented by repository.PriceRepository and pricecache.RedisCache.
type PriceCache interface {
	GetCachedPrices(ctx context.Context) (map[string]model.PriceQuote, error)
	UpsertPrices(ctx context.Context, prices map[string]float64, observedAt time.Time) error
}

// PriceFetcher obtains current prices for symbols. Symbols it cannot price are absent.
// It is implemented by pricefeed.Chain.
type PriceFetcher interface {
	Fetch(ctx context.Context, symbols []string) map[string]float64
}
