package db

import (
	"context"
	"time"

	"github.com/kailas-cloud/partsdex/internal/domain"
)

// Store is the catalog database facade: a read-only, pooled SQL connection.
type Store interface {
	Pinger
	Querier
	Close() error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Statement is a rendered, parameterized query. Values never appear in SQL.
type Statement struct {
	Op   string // operation name for logs and metrics
	SQL  string
	Args []any
}

// Querier executes parameterized read queries.
// Rows come back as records whose columns follow the select list order.
type Querier interface {
	Query(ctx context.Context, stmt Statement) ([]domain.Record, error)
}

// KVStore provides the key-value operations used by caches.
type KVStore interface {
	Pinger
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close()
}
