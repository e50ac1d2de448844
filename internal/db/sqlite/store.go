// Package sqlite opens the catalog store on an embedded SQLite file.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/kailas-cloud/partsdex/internal/db/sqldb"
)

// Config holds parameters for a SQLite store.
type Config struct {
	Path string
	Pool sqldb.PoolConfig
}

// DSN renders the driver data source name. The database is opened read-only
// unless it has to be created by migrations first.
func (c Config) DSN() string {
	return fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", c.Path)
}

// NewStore opens a pooled SQLite store.
func NewStore(cfg Config) (*sqldb.Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	conn, err := sql.Open("sqlite", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	return sqldb.Open(conn, sqldb.SQLite, cfg.Pool), nil
}
