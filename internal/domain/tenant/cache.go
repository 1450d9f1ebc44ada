package tenant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const cacheTTL = 5 * time.Minute

// Cache is a redis-backed read-through cache for tenant lookups. A nil
// client disables caching entirely (redis is optional in development).
type Cache struct {
	client *redis.Client
}

// NewCache creates a tenant cache over the given redis client.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func cacheKey(id uuid.UUID) string {
	return "tenant:" + id.String()
}

// Get returns the cached tenant and whether it was present.
func (c *Cache) Get(ctx context.Context, id uuid.UUID) (*Tenant, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		return nil, false
	}

	var t Tenant
	if err := json.Unmarshal(raw, &t); err != nil {
		log.Warn().Err(err).Str("tenant_id", id.String()).Msg("corrupt tenant cache entry, dropping")
		c.client.Del(ctx, cacheKey(id))
		return nil, false
	}
	return &t, true
}

// Set stores the tenant for the cache TTL. Failures are logged, not fatal.
func (c *Cache) Set(ctx context.Context, t *Tenant) {
	if c == nil || c.client == nil || t == nil {
		return
	}

	raw, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(t.ID), raw, cacheTTL).Err(); err != nil {
		log.Warn().Err(err).Str("tenant_id", t.ID.String()).Msg("tenant cache set failed")
	}
}

// Invalidate removes the cached tenant. Called on every status change so
// the ledger never sees a stale active/inactive flag for longer than one
// in-flight request.
func (c *Cache) Invalidate(ctx context.Context, id uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		log.Warn().Err(err).Str("tenant_id", id.String()).Msg("tenant cache invalidation failed")
	}
}
