package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/kailas-cloud/homechef/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store implements db.Store in process memory on top of go-cache.
// Values are kept as byte slices; counters are stored as their decimal text
// so Get behaves the same as against Redis.
type Store struct {
	mu    sync.Mutex // serializes read-modify-write in IncrByWithTTL
	items *gocache.Cache
}

// NewStore creates an in-memory store. Expired keys are swept every cleanupInterval.
func NewStore(cleanupInterval time.Duration) *Store {
	return &Store{items: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close drops all keys.
func (s *Store) Close() { s.items.Flush() }

// WaitForReady returns immediately.
func (s *Store) WaitForReady(context.Context, time.Duration) error { return nil }

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.items.Get(key)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	b, _ := v.([]byte)
	return append([]byte(nil), b...), nil
}

// SetWithTTL stores a value with an expiration.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.items.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

// IncrByWithTTL adds val to the integer at key, creating it at 0 first.
// ttl is set only when the key has no expiry yet.
func (s *Store) IncrByWithTTL(_ context.Context, key string, val int64, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cur int64
	var expiresAt time.Time
	if v, exp, ok := s.items.GetWithExpiration(key); ok {
		n, err := strconv.ParseInt(string(v.([]byte)), 10, 64)
		if err != nil {
			return 0, &db.Error{Op: db.OpIncrBy, Err: db.ErrNotInteger}
		}
		cur = n
		expiresAt = exp
	}

	keep := ttl
	if keep <= 0 {
		keep = gocache.NoExpiration
	}
	if !expiresAt.IsZero() {
		keep = time.Until(expiresAt)
	}

	cur += val
	s.items.Set(key, []byte(strconv.FormatInt(cur, 10)), keep)
	return cur, nil
}
