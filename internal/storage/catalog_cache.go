package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/franciscosanchezn/pizzeria-orders-api/internal/models"
)

const catalogKey = "catalog:active"

// CatalogCache is a best-effort Redis cache of the active catalog. A miss or
// a Redis failure is never an error for the caller; the catalog service
// falls back to the database.
type CatalogCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewCatalogCache creates a CatalogCache backed by client, expiring entries
// after ttl
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{Client: client, TTL: ttl}
}

type cachedCatalog struct {
	Pizzas []models.Pizza `json:"pizzas"`
	Extras []models.Extra `json:"extras"`
}

// Get returns the cached active catalog. The bool is false on a miss or any
// Redis/decoding failure.
func (c *CatalogCache) Get(ctx context.Context) ([]models.Pizza, []models.Extra, bool) {
	data, err := c.Client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).Warn("catalog cache read failed, falling back to database")
		}
		return nil, nil, false
	}

	var cached cachedCatalog
	if err := json.Unmarshal(data, &cached); err != nil {
		logrus.WithError(err).Warn("catalog cache entry is corrupt, falling back to database")
		return nil, nil, false
	}
	return cached.Pizzas, cached.Extras, true
}

// Set stores the active catalog with the configured TTL
func (c *CatalogCache) Set(ctx context.Context, pizzas []models.Pizza, extras []models.Extra) {
	data, err := json.Marshal(cachedCatalog{Pizzas: pizzas, Extras: extras})
	if err != nil {
		logrus.WithError(err).Warn("failed to encode catalog for cache")
		return
	}
	if err := c.Client.Set(ctx, catalogKey, data, c.TTL).Err(); err != nil {
		logrus.WithError(err).Warn("catalog cache write failed")
	}
}

// Invalidate drops the cached catalog, forcing the next read through to the
// database
func (c *CatalogCache) Invalidate(ctx context.Context) {
	if err := c.Client.Del(ctx, catalogKey).Err(); err != nil {
		logrus.WithError(err).Warn("catalog cache invalidation failed")
	}
}
