package rediscache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// rateTTL bounds staleness if the underlying rate table is ever refreshed
const rateTTL = 24 * time.Hour

// RateCache caches exchange rates in Redis, keyed per currency pair
type RateCache struct {
	client *redis.Client
}

// NewRateCache creates a RateCache against the given Redis address
func NewRateCache(addr string) *RateCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RateCache{client: rdb}
}

// Ping verifies connectivity
func (c *RateCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool
func (c *RateCache) Close() error {
	return c.client.Close()
}

// Get returns a cached rate if present
func (c *RateCache) Get(from, to string) (decimal.Decimal, bool) {
	val, err := c.client.Get(context.Background(), rateKey(from, to)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("Rate cache read failed")
		}
		return decimal.Decimal{}, false
	}

	rate, err := decimal.NewFromString(val)
	if err != nil {
		// Corrupt entry: treat as a miss so the static table repopulates it
		return decimal.Decimal{}, false
	}
	return rate, true
}

// Set stores a rate
func (c *RateCache) Set(from, to string, rate decimal.Decimal) error {
	return c.client.Set(context.Background(), rateKey(from, to), rate.String(), rateTTL).Err()
}

func rateKey(from, to string) string {
	return fmt.Sprintf("rate:%s:%s", from, to)
}
