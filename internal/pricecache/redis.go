// Package pricecache holds the Redis-backed price cache.
// The SQL-backed cache lives in the repository package.
package pricecache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Investment-Club-Backend/internal/config"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
)

// entry is the JSON stored per symbol in the cache hash.
type entry struct {
	Price      float64   `json:"price"`
	ObservedAt time.Time `json:"observed_at"`
}

// RedisCache stores every quote as one field of a single Redis hash.
type RedisCache struct {
	redis *redis.Client
	key   string
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Info().Str("addr", cfg.Addr).Str("pong", pong).Msg("redis connected")

	return rdb, nil
}

// NewRedisCache creates a cache that stores quotes in the hash named key.
func NewRedisCache(client *redis.Client, key string) *RedisCache {
	return &RedisCache{redis: client, key: key}
}

// GetCachedPrices returns every cached quote keyed by symbol.
// Fields that cannot be decoded are skipped and will be treated as missing.
func (r *RedisCache) GetCachedPrices(ctx context.Context) (map[string]model.PriceQuote, error) {
	fields, err := r.redis.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed on redis.HGetAll: %w", err)
	}

	return DecodeQuotes(fields), nil
}

// UpsertPrices writes all prices in one pipeline. The last write per symbol wins.
func (r *RedisCache) UpsertPrices(ctx context.Context, prices map[string]float64, observedAt time.Time) error {
	if len(prices) == 0 {
		return nil
	}

	values, err := EncodeQuotes(prices, observedAt)
	if err != nil {
		return err
	}

	pipe := r.redis.Pipeline()
	pipe.HSet(ctx, r.key, values)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed on pipe.Exec: %w", err)
	}

	return nil
}

// EncodeQuotes converts prices into hash field values.
func EncodeQuotes(prices map[string]float64, observedAt time.Time) (map[string]any, error) {
	values := make(map[string]any, len(prices))
	for symbol, price := range prices {
		data, err := json.Marshal(entry{Price: price, ObservedAt: observedAt.UTC()})
		if err != nil {
			return nil, fmt.Errorf("can't marshal quote for %s: %w", symbol, err)
		}
		values[symbol] = string(data)
	}
	return values, nil
}

// DecodeQuotes converts hash fields back into quotes.
func DecodeQuotes(fields map[string]string) map[string]model.PriceQuote {
	quotes := make(map[string]model.PriceQuote, len(fields))
	for symbol, raw := range fields {
		var e entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			log.Warn().Err(err).Str("symbol", symbol).Msg("can't unmarshal cached quote")
			continue
		}
		quotes[symbol] = model.PriceQuote{Symbol: symbol, Price: e.Price, ObservedAt: e.ObservedAt}
	}
	return quotes
}
