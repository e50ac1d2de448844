// Package facetcache caches facet lookups (makes, models, categories, year ranges)
// in a key-value store. Product searches and suggestions pass through uncached.
package facetcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/partsdex/internal/db"
	"github.com/kailas-cloud/partsdex/internal/domain"
	"github.com/kailas-cloud/partsdex/internal/domain/search/query"
)

// KeyPrefix namespaces every cache entry.
const KeyPrefix = "partsdex:facet:"

// Facet labels used in keys and metrics.
const (
	facetMakes      = "makes"
	facetModels     = "models"
	facetCategories = "categories"
	facetYears      = "years"
)

// store is the consumer interface for the cache backend (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// inner is the repository being decorated.
type inner interface {
	Search(ctx context.Context, q query.Compiled) ([]domain.Record, error)
	GetByID(ctx context.Context, id string) (*domain.Record, error)
	DistinctMakes(ctx context.Context, q query.Compiled) ([]string, error)
	DistinctModels(ctx context.Context, q query.Compiled) ([]string, error)
	DistinctCategories(ctx context.Context, q query.Compiled) ([]string, error)
	YearRange(ctx context.Context, q query.Compiled) (domain.YearRange, error)
	Suggest(ctx context.Context, s query.Suggestion, limit int) ([]string, error)
}

// Repo is a read-through caching decorator over a catalog repository.
// Cache failures are logged and fall back to the inner repository.
type Repo struct {
	inner      inner
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
	group      singleflight.Group
}

// New creates a caching decorator.
// cacheTotal is a counter vec with labels "facet" and "result" ("hit"/"miss"), passed explicitly.
func New(
	in inner,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Repo {
	return &Repo{
		inner:      in,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Search is not cached.
func (r *Repo) Search(ctx context.Context, q query.Compiled) ([]domain.Record, error) {
	recs, err := r.inner.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return recs, nil
}

// GetByID is not cached.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Record, error) {
	rec, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get by id: %w", err)
	}
	return rec, nil
}

// Suggest is not cached.
func (r *Repo) Suggest(ctx context.Context, s query.Suggestion, limit int) ([]string, error) {
	out, err := r.inner.Suggest(ctx, s, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return out, nil
}

// DistinctMakes returns cached makes or loads them.
func (r *Repo) DistinctMakes(ctx context.Context, q query.Compiled) ([]string, error) {
	return cached(ctx, r, facetMakes, q, r.inner.DistinctMakes)
}

// DistinctModels returns cached raw model values or loads them.
func (r *Repo) DistinctModels(ctx context.Context, q query.Compiled) ([]string, error) {
	return cached(ctx, r, facetModels, q, r.inner.DistinctModels)
}

// DistinctCategories returns cached categories or loads them.
func (r *Repo) DistinctCategories(ctx context.Context, q query.Compiled) ([]string, error) {
	return cached(ctx, r, facetCategories, q, r.inner.DistinctCategories)
}

// YearRange returns a cached year range or loads it.
func (r *Repo) YearRange(ctx context.Context, q query.Compiled) (domain.YearRange, error) {
	return cached(ctx, r, facetYears, q, r.inner.YearRange)
}

func cached[T any](
	ctx context.Context,
	r *Repo,
	facet string,
	q query.Compiled,
	load func(context.Context, query.Compiled) (T, error),
) (T, error) {
	key := cacheKey(facet, q)

	var v T
	if r.getFromCache(ctx, key, &v) {
		r.incCache(facet, "hit")
		return v, nil
	}
	r.incCache(facet, "miss")

	// Concurrent misses for the same key share one store query.
	res, err, _ := r.group.Do(key, func() (any, error) {
		loaded, err := load(ctx, q)
		if err != nil {
			return nil, err
		}
		r.putToCache(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("load %s: %w", facet, err)
	}
	return res.(T), nil
}

func (r *Repo) incCache(facet, result string) {
	if r.cacheTotal != nil {
		r.cacheTotal.WithLabelValues(facet, result).Inc()
	}
}

func (r *Repo) getFromCache(ctx context.Context, key string, dst any) bool {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			r.logger.Warn("Failed to get cached facet", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Warn("Failed to parse cached facet", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (r *Repo) putToCache(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		r.logger.Warn("Failed to encode facet", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.store.SetWithTTL(ctx, key, data, r.ttl); err != nil {
		r.logger.Warn("Failed to cache facet", zap.String("key", key), zap.Error(err))
	}
}

// cacheKey identifies a facet query by its clauses, bound values and ordering.
func cacheKey(facet string, q query.Compiled) string {
	var sb strings.Builder
	sb.WriteString(q.String())
	for _, a := range q.Args() {
		fmt.Fprintf(&sb, "|%v", a)
	}
	for _, k := range q.Order() {
		fmt.Fprintf(&sb, "|%d:%s:%s:%t", k.Kind(), k.Field(), k.Term(), k.Desc())
	}
	h := sha256.Sum256([]byte(sb.String()))
	return KeyPrefix + facet + ":" + hex.EncodeToString(h[:])
}
