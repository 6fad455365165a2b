package budget

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/homechef/internal/db"
)

// DefaultRetention keeps a counter readable for a while after its period closes.
const DefaultRetention = 24 * time.Hour

// fallbackTTL applies to keys whose period cannot be parsed.
const fallbackTTL = 62 * 24 * time.Hour

// store is the consumer interface for budget operations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrByWithTTL(ctx context.Context, key string, val int64, ttl time.Duration) (int64, error)
}

// Store persists token counters in the KV store. Keys end in their period,
// "...:daily:2006-01-02" or "...:monthly:2006-01", and expire once that period
// is over plus the retention window.
type Store struct {
	store     store
	retention time.Duration
	now       func() time.Time
}

// New creates a budget store. Non-positive retention uses DefaultRetention.
func New(s store, retention time.Duration) *Store {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Store{
		store:     s,
		retention: retention,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// IncrBy adds val to the counter. The expiry is fixed by the first increment of the period.
func (s *Store) IncrBy(ctx context.Context, key string, val int64) error {
	if _, err := s.store.IncrByWithTTL(ctx, key, val, s.ttlForKey(key)); err != nil {
		return fmt.Errorf("budget incr %s: %w", key, err)
	}
	return nil
}

// Get returns the counter value, 0 if the key does not exist.
func (s *Store) Get(ctx context.Context, key string) (int64, error) {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("budget get %s: %w", key, err)
	}

	val, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("budget get %s: %w", key, errors.Join(db.ErrNotInteger, err))
	}
	return val, nil
}

// ttlForKey returns the time left in the key's period plus retention.
func (s *Store) ttlForKey(key string) time.Duration {
	end, ok := periodEnd(key)
	if !ok {
		return fallbackTTL
	}
	ttl := end.Sub(s.now()) + s.retention
	if ttl < time.Second {
		return time.Second
	}
	return ttl
}

// periodEnd parses the trailing "<kind>:<stamp>" of a budget key.
func periodEnd(key string) (time.Time, bool) {
	i := strings.LastIndexByte(key, ':')
	if i <= 0 {
		return time.Time{}, false
	}
	rest, stamp := key[:i], key[i+1:]
	kind := rest[strings.LastIndexByte(rest, ':')+1:]

	switch kind {
	case "daily":
		day, err := time.Parse(time.DateOnly, stamp)
		if err != nil {
			return time.Time{}, false
		}
		return day.AddDate(0, 0, 1), true
	case "monthly":
		month, err := time.Parse("2006-01", stamp)
		if err != nil {
			return time.Time{}, false
		}
		return month.AddDate(0, 1, 0), true
	default:
		return time.Time{}, false
	}
}
