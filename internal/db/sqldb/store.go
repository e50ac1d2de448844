package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kailas-cloud/partsdex/internal/db"
	"github.com/kailas-cloud/partsdex/internal/domain"
	"github.com/kailas-cloud/partsdex/internal/metrics"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// PoolConfig bounds the connection pool. A query waits for a free connection
// until its context or the query timeout expires.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	QueryTimeout    time.Duration
}

// Store implements db.Store over a database/sql pool.
type Store struct {
	db           *sql.DB
	dialect      Dialect
	queryTimeout time.Duration
}

// Open wraps an opened *sql.DB and applies pool limits.
func Open(conn *sql.DB, d Dialect, pool PoolConfig) *Store {
	if pool.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	return &Store{db: conn, dialect: d, queryTimeout: pool.QueryTimeout}
}

// Dialect returns the SQL dialect of the underlying driver.
func (s *Store) Dialect() Dialect { return s.dialect }

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close closes the pool.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close pool: %w", err)
	}
	return nil
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.Ping(ctx); err == nil {
		return nil
	}

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Query runs stmt on one pooled connection and returns every row.
// On failure no partial rows are returned.
func (s *Store) Query(ctx context.Context, stmt db.Statement) (recs []domain.Record, err error) {
	start := time.Now()
	defer func() { metrics.ObserveQuery(stmt.Op, time.Since(start), err) }()

	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	rows, err := s.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, &db.Error{Op: stmt.Op, Err: err}
	}
	defer func() { _ = rows.Close() }()

	recs, err = scanRecords(rows)
	if err != nil {
		return nil, &db.Error{Op: stmt.Op, Err: err}
	}
	return recs, nil
}

func scanRecords(rows *sql.Rows) ([]domain.Record, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	var recs []domain.Record
	for rows.Next() {
		vals := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		cols := make([]domain.Column, len(names))
		for i, name := range names {
			cols[i] = domain.Column{Name: name, Value: normalize(vals[i])}
		}
		recs = append(recs, domain.NewRecord(cols))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return recs, nil
}

// normalize converts driver byte slices to text so rows encode as JSON strings.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
