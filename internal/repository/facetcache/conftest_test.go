package facetcache

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/partsdex/internal/db"
	"github.com/kailas-cloud/partsdex/internal/domain"
	"github.com/kailas-cloud/partsdex/internal/domain/search/query"
)

// mockInner counts calls per method and returns canned values.
type mockInner struct {
	mu        sync.Mutex
	values    []string
	yearRange domain.YearRange
	err       error
	calls     map[string]int
}

func (m *mockInner) inc(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[name]++
}

func (m *mockInner) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockInner) Search(_ context.Context, _ query.Compiled) ([]domain.Record, error) {
	m.inc("Search")
	return nil, m.err
}

func (m *mockInner) GetByID(_ context.Context, _ string) (*domain.Record, error) {
	m.inc("GetByID")
	return nil, m.err
}

func (m *mockInner) DistinctMakes(_ context.Context, _ query.Compiled) ([]string, error) {
	m.inc("DistinctMakes")
	return m.values, m.err
}

func (m *mockInner) DistinctModels(_ context.Context, _ query.Compiled) ([]string, error) {
	m.inc("DistinctModels")
	return m.values, m.err
}

func (m *mockInner) DistinctCategories(_ context.Context, _ query.Compiled) ([]string, error) {
	m.inc("DistinctCategories")
	return m.values, m.err
}

func (m *mockInner) YearRange(_ context.Context, _ query.Compiled) (domain.YearRange, error) {
	m.inc("YearRange")
	return m.yearRange, m.err
}

func (m *mockInner) Suggest(_ context.Context, _ query.Suggestion, _ int) ([]string, error) {
	m.inc("Suggest")
	return m.values, m.err
}

// memStore is an in-memory KV store; getErr and setErr simulate backend failures.
type memStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (s *memStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	s.ttls[key] = ttl
	return nil
}

func newTestRepo(t *testing.T, in *mockInner) (*Repo, *memStore) {
	t.Helper()
	ms := newMemStore()
	return New(in, ms, time.Minute, nil, zap.NewNop()), ms
}
