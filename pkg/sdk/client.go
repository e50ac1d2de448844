package partsdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/partsdex/internal/db"
	dbMySQL "github.com/kailas-cloud/partsdex/internal/db/mysql"
	"github.com/kailas-cloud/partsdex/internal/db/sqldb"
	dbSQLite "github.com/kailas-cloud/partsdex/internal/db/sqlite"
	"github.com/kailas-cloud/partsdex/internal/domain"
	"github.com/kailas-cloud/partsdex/internal/domain/search/criteria"
	catalogrepo "github.com/kailas-cloud/partsdex/internal/repository/catalog"
	cataloguc "github.com/kailas-cloud/partsdex/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/partsdex/internal/usecase/health"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can swap the use-cases.
type catalogUseCase interface {
	SearchProducts(ctx context.Context, c criteria.Criteria) ([]domain.Record, error)
	GetProduct(ctx context.Context, id string) (*domain.Record, error)
	ListMakes(ctx context.Context, term string) ([]string, error)
	ListModels(ctx context.Context, mk, term string) ([]string, error)
	ListCategories(ctx context.Context) ([]string, error)
	YearRange(ctx context.Context, mk string) (domain.YearRange, error)
	Suggestions(ctx context.Context, term string) ([]string, error)
}

type sqlStore interface {
	db.Store
	Dialect() sqldb.Dialect
}

// Client is the partsdex SDK entry point.
type Client struct {
	store     db.Store
	catalog   catalogUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and connects to the catalog database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{table: db.DefaultTable}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("partsdex: database required (use WithMySQL or WithSQLite)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("partsdex: database not ready: %w", err)
	}

	c, err := wireClient(store, cfg, obs)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (sqlStore, error) {
	switch cfg.driver {
	case "mysql":
		s, err := dbMySQL.NewStore(dbMySQL.Config{
			Addr:     cfg.addr,
			User:     cfg.user,
			Password: cfg.password,
			Database: cfg.database,
		})
		if err != nil {
			return nil, fmt.Errorf("partsdex: create mysql store: %w", err)
		}
		return s, nil
	case "sqlite":
		s, err := dbSQLite.NewStore(dbSQLite.Config{Path: cfg.path})
		if err != nil {
			return nil, fmt.Errorf("partsdex: create sqlite store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("partsdex: unknown driver %q", cfg.driver)
	}
}

func wireClient(store sqlStore, cfg *clientConfig, obs *observer) (*Client, error) {
	renderer, err := sqldb.NewRenderer(store.Dialect(), db.DefaultSchema().WithTable(cfg.table))
	if err != nil {
		return nil, fmt.Errorf("partsdex: %w", err)
	}

	svc := cataloguc.New(catalogrepo.New(store, renderer)).
		WithSuggestionLimit(cfg.suggestionLimit).
		WithRankedModels(cfg.rankedModels)

	return &Client{
		store:     store,
		catalog:   svc,
		healthSvc: healthuc.New(store, nil),
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
