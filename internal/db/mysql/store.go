// Package mysql opens the catalog store on MySQL.
package mysql

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/kailas-cloud/partsdex/internal/db/sqldb"
)

// Config holds connection parameters for a MySQL store.
type Config struct {
	Addr     string
	User     string
	Password string
	Database string
	Params   map[string]string
	Pool     sqldb.PoolConfig
}

// DSN renders the driver data source name.
func (c Config) DSN() string {
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = c.Addr
	mc.User = c.User
	mc.Passwd = c.Password
	mc.DBName = c.Database
	mc.Timeout = 5 * time.Second
	mc.Params = c.Params
	return mc.FormatDSN()
}

// NewStore opens a pooled MySQL store. The connection is established lazily;
// use WaitForReady to block until the server answers.
func NewStore(cfg Config) (*sqldb.Store, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("addr is required")
	}
	if cfg.Database == "" {
		return nil, fmt.Errorf("database is required")
	}

	conn, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}
	return sqldb.Open(conn, sqldb.MySQL, cfg.Pool), nil
}
