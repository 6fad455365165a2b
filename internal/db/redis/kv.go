package redis

import (
	"context"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/homechef/internal/db"
)

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.do(ctx, s.b().Get().Key(key).Build()).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// SetWithTTL stores a binary value with an expiration. A non-positive ttl stores
// it without expiry, matching the memory driver.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	set := s.b().Set().Key(key).Value(rueidis.BinaryString(value))
	cmd := set.Build()
	if ttl > 0 {
		cmd = set.ExSeconds(expireSeconds(ttl)).Build()
	}
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// IncrByWithTTL pipelines INCRBY and EXPIRE NX in one round trip.
// A non-positive ttl leaves the counter without expiry.
func (s *Store) IncrByWithTTL(ctx context.Context, key string, val int64, ttl time.Duration) (int64, error) {
	if ttl <= 0 {
		n, err := s.do(ctx, s.b().Incrby().Key(key).Increment(val).Build()).AsInt64()
		if err != nil {
			return 0, &db.Error{Op: db.OpIncrBy, Err: err}
		}
		return n, nil
	}

	results := s.client.DoMulti(ctx,
		s.b().Incrby().Key(key).Increment(val).Build(),
		s.b().Expire().Key(key).Seconds(expireSeconds(ttl)).Nx().Build(),
	)

	n, err := results[0].AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpIncrBy, Err: err}
	}
	if err := results[1].Error(); err != nil {
		return n, &db.Error{Op: db.OpExpire, Err: err}
	}
	return n, nil
}

// expireSeconds rounds a positive ttl up to whole seconds; Redis rejects EX 0.
func expireSeconds(ttl time.Duration) int64 {
	sec := int64((ttl + time.Second - 1) / time.Second)
	if sec < 1 {
		return 1
	}
	return sec
}
