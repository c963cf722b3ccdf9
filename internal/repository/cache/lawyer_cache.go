// Package cache holds read-through caches in front of the directory tables.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"lawpro-be/internal/entity"

	"github.com/redis/go-redis/v9"
)

// LawyerCache stores directory query results. Implementations must treat
// every failure as a miss.
type LawyerCache interface {
	Get(ctx context.Context, key string) ([]*entity.Lawyer, bool)
	Set(ctx context.Context, key string, lawyers []*entity.Lawyer)
}

// Place kinds used in cache keys. A city query matches county or city
// columns, so it must not share an entry with a county query.
const (
	PlaceCounty = "county"
	PlaceCity   = "city"
)

// LawyerKey builds the cache key for one directory lookup. placeKind is
// empty when no place is part of the query.
func LawyerKey(granularity, placeKind, place, state string, limit int) string {
	return fmt.Sprintf("lawyers:%s:%s:%s:%s:%d",
		granularity,
		placeKind,
		strings.ToLower(strings.TrimSpace(place)),
		strings.ToLower(strings.TrimSpace(state)),
		limit,
	)
}

type RedisLawyerCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisLawyerCache(rdb *redis.Client, ttl time.Duration) *RedisLawyerCache {
	return &RedisLawyerCache{rdb: rdb, ttl: ttl}
}

func (c *RedisLawyerCache) Get(ctx context.Context, key string) ([]*entity.Lawyer, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var lawyers []*entity.Lawyer
	if err := json.Unmarshal(raw, &lawyers); err != nil {
		return nil, false
	}
	return lawyers, true
}

func (c *RedisLawyerCache) Set(ctx context.Context, key string, lawyers []*entity.Lawyer) {
	raw, err := json.Marshal(lawyers)
	if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, key, raw, c.ttl).Err()
}
