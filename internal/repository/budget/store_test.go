package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/homechef/internal/db"
)

type incrCall struct {
	key string
	val int64
	ttl time.Duration
}

type mockStore struct {
	values  map[string][]byte
	getErr  error
	incrErr error
	incrs   []incrCall
}

func newMockStore() *mockStore {
	return &mockStore{values: map[string][]byte{}}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) IncrByWithTTL(_ context.Context, key string, val int64, ttl time.Duration) (int64, error) {
	if m.incrErr != nil {
		return 0, m.incrErr
	}
	m.incrs = append(m.incrs, incrCall{key: key, val: val, ttl: ttl})
	return val, nil
}

func fixedStore(ms *mockStore, now time.Time) *Store {
	s := New(ms, 6*time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func TestIncrBy_ExpiresAfterPeriodEnd(t *testing.T) {
	ms := newMockStore()
	now := time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC)
	s := fixedStore(ms, now)
	ctx := context.Background()

	if err := s.IncrBy(ctx, "homechef:budget:gemini:daily:2026-10-14", 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.IncrBy(ctx, "homechef:budget:gemini:monthly:2026-10", 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ms.incrs) != 2 {
		t.Fatalf("expected 2 increments, got %d", len(ms.incrs))
	}
	// 6h left in the day + 6h retention.
	if ms.incrs[0].ttl != 12*time.Hour {
		t.Errorf("daily ttl = %v, want 12h", ms.incrs[0].ttl)
	}
	// 17 days and 6h to November + 6h retention.
	if want := 17*24*time.Hour + 12*time.Hour; ms.incrs[1].ttl != want {
		t.Errorf("monthly ttl = %v, want %v", ms.incrs[1].ttl, want)
	}
	if ms.incrs[0].val != 100 {
		t.Errorf("val = %d, want 100", ms.incrs[0].val)
	}
}

func TestIncrBy_DecemberRollsIntoNextYear(t *testing.T) {
	ms := newMockStore()
	s := fixedStore(ms, time.Date(2026, 12, 31, 12, 0, 0, 0, time.UTC))

	if err := s.IncrBy(context.Background(), "homechef:budget:gemini:monthly:2026-12", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.incrs[0].ttl != 18*time.Hour {
		t.Errorf("ttl = %v, want 18h", ms.incrs[0].ttl)
	}
}

func TestIncrBy_UnparseableKeyUsesFallback(t *testing.T) {
	for _, key := range []string{"counter", "k:daily:yesterday", "k:weekly:2026-42"} {
		ms := newMockStore()
		s := fixedStore(ms, time.Now())

		if err := s.IncrBy(context.Background(), key, 1); err != nil {
			t.Fatalf("%s: unexpected error: %v", key, err)
		}
		if ms.incrs[0].ttl != fallbackTTL {
			t.Errorf("%s: ttl = %v, want fallback", key, ms.incrs[0].ttl)
		}
	}
}

func TestIncrBy_ClosedPeriodKeepsMinimumTTL(t *testing.T) {
	ms := newMockStore()
	s := fixedStore(ms, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC))

	if err := s.IncrBy(context.Background(), "homechef:budget:gemini:daily:2026-10-14", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.incrs[0].ttl != time.Second {
		t.Errorf("ttl = %v, want 1s floor", ms.incrs[0].ttl)
	}
}

func TestIncrBy_Error(t *testing.T) {
	ms := newMockStore()
	ms.incrErr = errors.New("down")
	s := New(ms, time.Hour)

	if err := s.IncrBy(context.Background(), "k:daily:2026-10-14", 1); !errors.Is(err, ms.incrErr) {
		t.Errorf("expected wrapped incr error, got %v", err)
	}
}

func TestNew_DefaultRetention(t *testing.T) {
	if s := New(newMockStore(), 0); s.retention != DefaultRetention {
		t.Errorf("retention = %v, want %v", s.retention, DefaultRetention)
	}
}

func TestGet(t *testing.T) {
	ms := newMockStore()
	ms.values["present"] = []byte("1234")
	ms.values["garbage"] = []byte("sate")
	s := New(ms, time.Hour)
	ctx := context.Background()

	v, err := s.Get(ctx, "present")
	if err != nil || v != 1234 {
		t.Errorf("Get(present) = %d, %v", v, err)
	}

	v, err = s.Get(ctx, "absent")
	if err != nil || v != 0 {
		t.Errorf("Get(absent) = %d, %v; want 0, nil", v, err)
	}

	if _, err := s.Get(ctx, "garbage"); !errors.Is(err, db.ErrNotInteger) {
		t.Errorf("expected ErrNotInteger, got %v", err)
	}

	ms.getErr = errors.New("timeout")
	if _, err := s.Get(ctx, "present"); !errors.Is(err, ms.getErr) {
		t.Errorf("expected wrapped get error, got %v", err)
	}
}
