package partsdex

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "mysql" or "sqlite"
	addr     string
	user     string
	password string
	database string
	path     string
	table    string

	suggestionLimit int
	rankedModels    bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithMySQL configures the client to read from a MySQL database.
func WithMySQL(addr, user, password, database string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "mysql"
		c.addr = addr
		c.user = user
		c.password = password
		c.database = database
	})
}

// WithSQLite configures the client to read from a SQLite file. The file is opened read-only.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "sqlite"
		c.path = path
	})
}

// WithTable overrides the catalog table name. Default: "dataweb".
func WithTable(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.table = name
	})
}

// WithSuggestionLimit caps the number of suggestions. Default: 10.
func WithSuggestionLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.suggestionLimit = n
	})
}

// WithRankedModels orders filtered model lists by match position instead of alphabetically.
func WithRankedModels() Option {
	return optionFunc(func(c *clientConfig) {
		c.rankedModels = true
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
