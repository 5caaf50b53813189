package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultOverviewTTL = 24 * time.Hour

// OverviewCache stores generated document overviews.
// Key format: overview:<document_id>
type OverviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOverviewCache wraps client. A non-positive ttl falls back to one day.
func NewOverviewCache(client *redis.Client, ttl time.Duration) *OverviewCache {
	if ttl <= 0 {
		ttl = defaultOverviewTTL
	}
	return &OverviewCache{client: client, ttl: ttl}
}

// Get returns the cached overview of documentID, if any.
func (c *OverviewCache) Get(ctx context.Context, documentID string) (string, bool, error) {
	text, err := c.client.Get(ctx, c.key(documentID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("overview cache get: %w", err)
	}
	return text, true, nil
}

// Set stores text for documentID; it expires after the cache ttl.
func (c *OverviewCache) Set(ctx context.Context, documentID, text string) error {
	if err := c.client.Set(ctx, c.key(documentID), text, c.ttl).Err(); err != nil {
		return fmt.Errorf("overview cache set: %w", err)
	}
	return nil
}

func (c *OverviewCache) key(documentID string) string {
	return "overview:" + documentID
}
