package universities

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"time"

	"github.com/user/unidirectory-go/cache"
	"github.com/user/unidirectory-go/listquery"
	"github.com/user/unidirectory-go/logging"
)

const cacheKeyPrefix = "unis:v1:"

// JSONCache is the cache surface CachedRepository needs. Misses return cache.ErrNotFound.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CachedRepository is a read-through cache in front of a Repository.
// Cache failures are logged and the call falls through to the wrapped repository.
type CachedRepository struct {
	next  Repository
	cache JSONCache
	ttl   time.Duration
}

// NewCachedRepository wraps next.
func NewCachedRepository(next Repository, c JSONCache, ttl time.Duration) *CachedRepository {
	return &CachedRepository{next: next, cache: c, ttl: ttl}
}

func cacheKey(kind, raw string) string {
	sum := sha1.Sum([]byte(raw))
	return cacheKeyPrefix + kind + ":" + hex.EncodeToString(sum[:])
}

// Count implements Repository.
func (c *CachedRepository) Count(ctx context.Context, filter listquery.Filter) (int64, error) {
	key := cacheKey("count", listquery.Query{Filter: filter}.Key())
	var total int64
	if c.get(ctx, key, &total) {
		return total, nil
	}
	total, err := c.next.Count(ctx, filter)
	if err != nil {
		return 0, err
	}
	c.set(ctx, key, total)
	return total, nil
}

// List implements Repository.
func (c *CachedRepository) List(ctx context.Context, q listquery.Query) ([]University, error) {
	key := cacheKey("list", q.Key())
	var items []University
	if c.get(ctx, key, &items) {
		return items, nil
	}
	items, err := c.next.List(ctx, q)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, items)
	return items, nil
}

func (c *CachedRepository) get(ctx context.Context, key string, dest interface{}) bool {
	err := c.cache.GetJSON(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrNotFound) {
		logging.FromContext(ctx).Warn("search cache read failed", logging.Fields{"key": key, "error": err.Error()})
	}
	return false
}

func (c *CachedRepository) set(ctx context.Context, key string, value interface{}) {
	if err := c.cache.SetJSON(ctx, key, value, c.ttl); err != nil {
		logging.FromContext(ctx).Warn("search cache write failed", logging.Fields{"key": key, "error": err.Error()})
	}
}
