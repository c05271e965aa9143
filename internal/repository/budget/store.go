package budget

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/searchproxy/internal/db"
)

// store is the consumer interface for budget operations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Store keeps answer counters as integer keys that expire after their period.
//
// Keys look like searchproxy:budget:{provider}:{daily|monthly}:{date}[:requests].
// The period segment picks the TTL; anything else is kept for the monthly TTL.
type Store struct {
	store    store
	dailyTTL time.Duration
	monthTTL time.Duration
}

// New creates a budget store. dailyTTL should outlive one UTC day (48h),
// monthTTL one calendar month (62 days).
func New(s store, dailyTTL, monthTTL time.Duration) *Store {
	return &Store{store: s, dailyTTL: dailyTTL, monthTTL: monthTTL}
}

// IncrBy adds val to a counter. The expiry is attached on first write only (EXPIRE NX),
// so a counter never outlives its period by more than the TTL.
func (s *Store) IncrBy(ctx context.Context, key string, val int64) error {
	if err := s.store.IncrBy(ctx, key, val); err != nil {
		return fmt.Errorf("increment counter %s: %w", key, err)
	}
	if err := s.store.Expire(ctx, key, s.ttlFor(key), true); err != nil {
		return fmt.Errorf("expire counter %s: %w", key, err)
	}
	return nil
}

// Get reads a counter. A missing key reads as zero.
func (s *Store) Get(ctx context.Context, key string) (int64, error) {
	raw, err := s.store.Get(ctx, key)
	switch {
	case errors.Is(err, db.ErrKeyNotFound):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("read counter %s: %w", key, err)
	}

	n, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("counter %s holds %q: %w", key, raw, err)
	}
	return n, nil
}

func (s *Store) ttlFor(key string) time.Duration {
	if slices.Contains(strings.Split(key, ":"), "daily") {
		return s.dailyTTL
	}
	return s.monthTTL
}
