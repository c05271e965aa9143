package searchcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchproxy/internal/db"
	"github.com/kailas-cloud/searchproxy/internal/domain"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/kind"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/query"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/result"
)

var cacheKeyPrefix = domain.KeyPrefix + "search_cache:"

// store is the consumer interface for the search cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Searcher is the decorated search contract.
type Searcher interface {
	Search(ctx context.Context, q query.Query) (result.Set, error)
}

// CachedSearcher caches normalized search results in a key-value store.
type CachedSearcher struct {
	inner      Searcher
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner Searcher,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSearcher {
	return &CachedSearcher{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Search returns cached results or calls the inner searcher.
// Empty result sets are never written, so a transient engine outage is not cached.
func (c *CachedSearcher) Search(ctx context.Context, q query.Query) (result.Set, error) {
	key := cacheKey(q)

	if set, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return set, nil
	}

	c.incCache("miss")

	set, err := c.inner.Search(ctx, q)
	if err != nil {
		return result.Set{}, fmt.Errorf("search: %w", err)
	}

	if set.Len() > 0 {
		c.putToCache(ctx, key, set)
	}
	return set, nil
}

func (c *CachedSearcher) incCache(outcome string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(outcome).Inc()
	}
}

// cacheKey hashes kind, limit and text; the separator cannot appear in a validated kind.
func cacheKey(q query.Query) string {
	d := xxhash.New()
	_, _ = d.WriteString(string(q.Kind()))
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(strconv.Itoa(q.Limit()))
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(q.Text())
	return cacheKeyPrefix + strconv.FormatUint(d.Sum64(), 16)
}

func (c *CachedSearcher) getFromCache(ctx context.Context, key string) (result.Set, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached search results", zap.String("key", key), zap.Error(err))
		}
		return result.Set{}, false
	}
	if len(data) == 0 {
		return result.Set{}, false
	}

	var cached cachedSet
	if err := json.Unmarshal(data, &cached); err != nil {
		c.logger.Warn("Failed to parse cached search results", zap.String("key", key), zap.Error(err))
		return result.Set{}, false
	}
	if !kind.Kind(cached.Kind).IsValid() {
		return result.Set{}, false
	}

	return cached.toDomain(), true
}

func (c *CachedSearcher) putToCache(ctx context.Context, key string, set result.Set) {
	data, err := json.Marshal(fromDomain(set))
	if err != nil {
		c.logger.Warn("Failed to encode search results", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache search results", zap.String("key", key), zap.Error(err))
	}
}
