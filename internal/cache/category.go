package cache

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCategoryTTL is how long resolved category ids stay cached.
// Categories are effectively append-only in an ingestion feed, so a
// generous TTL is safe.
const DefaultCategoryTTL = 1 * time.Hour

const categoryKeyPrefix = "category:name:"

// CategoryCache caches category name→id lookups in Valkey so repeated
// feeds naming the same categories skip the database round trip. Every
// operation is best-effort: a cache failure is logged and treated as a
// miss, never surfaced to the resolver.
type CategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCategoryCache returns a category cache backed by the given client.
// A nil client yields a cache whose lookups always miss, which lets the
// service run without Valkey.
func NewCategoryCache(client *redis.Client, ttl time.Duration) *CategoryCache {
	return &CategoryCache{client: client, ttl: ttl}
}

// Get returns the cached id for a category name, or false on a miss.
func (c *CategoryCache) Get(ctx context.Context, name string) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	val, err := c.client.Get(ctx, categoryKeyPrefix+name).Result()
	if err == redis.Nil {
		return 0, false
	}
	if err != nil {
		slog.Debug("category cache get failed", "name", name, "error", err)
		return 0, false
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Set stores the id for a category name.
func (c *CategoryCache) Set(ctx context.Context, name string, id int64) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, categoryKeyPrefix+name, strconv.FormatInt(id, 10), c.ttl).Err(); err != nil {
		slog.Debug("category cache set failed", "name", name, "error", err)
	}
}
