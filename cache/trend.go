package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ManuelFernandezG/manny-map-sub000/schema"
)

// TrendCardCache is a short-TTL cache-aside for the map-card trend shape.
// A nil cache (redis not configured) is valid: every lookup misses and
// every store is a no-op, so callers always fall back to recomputing.
type TrendCardCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewTrendCardCache(rdb *goredis.Client, ttl time.Duration) *TrendCardCache {
	return &TrendCardCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func cardKey(locationID string, hour int) string {
	return fmt.Sprintf("trend-card:%s:%d", locationID, hour)
}

func (c *TrendCardCache) Get(ctx context.Context, locationID string, hour int) (*schema.TrendCard, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, cardKey(locationID, hour)).Bytes()
	if err != nil {
		return nil, false
	}

	var card schema.TrendCard
	if err := json.Unmarshal(raw, &card); err != nil {
		// corrupt entry; let the caller recompute and overwrite it
		return nil, false
	}
	return &card, true
}

func (c *TrendCardCache) Set(ctx context.Context, locationID string, hour int, card schema.TrendCard) error {
	if c == nil || c.rdb == nil {
		return nil
	}

	raw, err := json.Marshal(card)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cardKey(locationID, hour), raw, c.ttl).Err()
}
