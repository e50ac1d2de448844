package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/partsdex/internal/config"
	"github.com/kailas-cloud/partsdex/internal/db"
	dbMySQL "github.com/kailas-cloud/partsdex/internal/db/mysql"
	dbRedis "github.com/kailas-cloud/partsdex/internal/db/redis"
	"github.com/kailas-cloud/partsdex/internal/db/sqldb"
	dbSQLite "github.com/kailas-cloud/partsdex/internal/db/sqlite"
	logpkg "github.com/kailas-cloud/partsdex/internal/logger"
	"github.com/kailas-cloud/partsdex/internal/metrics"
	catalogrepo "github.com/kailas-cloud/partsdex/internal/repository/catalog"
	"github.com/kailas-cloud/partsdex/internal/repository/facetcache"
	chiTransport "github.com/kailas-cloud/partsdex/internal/transport/chi"
	cataloguc "github.com/kailas-cloud/partsdex/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/partsdex/internal/usecase/health"
	"github.com/kailas-cloud/partsdex/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the catalog HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return serve(env)
	},
}

func serve(env string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting partsdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("db_table", cfg.Database.Table),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	store, err := openStore(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register store and cache metrics explicitly (no init())
	metrics.RegisterStoreMetrics()

	renderer, err := sqldb.NewRenderer(store.Dialect(), db.DefaultSchema().WithTable(cfg.Database.Table))
	if err != nil {
		logger.Fatal("Invalid catalog schema", zap.Error(err))
	}

	var repo cataloguc.Repository = catalogrepo.New(store, renderer)

	// Pass a nil interface, not a typed nil pointer, when the cache is off.
	var cachePinger healthuc.Pinger
	if cfg.Cache.Enabled {
		cache, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cache.Close()

		if err := cache.Ping(ctx); err != nil {
			logger.Warn("Cache not reachable, lookups will fall back to the database", zap.Error(err))
		}
		repo = facetcache.New(repo, cache, time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.FacetCacheTotal, logger)
		cachePinger = cache
	}

	catalogSvc := cataloguc.New(repo).
		WithSuggestionLimit(cfg.Catalog.SuggestionLimit).
		WithRankedModels(cfg.Catalog.RankSplitModels)
	healthSvc := healthuc.New(store, cachePinger)

	server := chiTransport.NewServer(catalogSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}).Handler)
	r.Use(chiTransport.APIKeyMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// openStore opens the catalog database for the configured driver.
func openStore(cfg config.DatabaseConfig) (*sqldb.Store, error) {
	pool := sqldb.PoolConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetimeSec) * time.Second,
		QueryTimeout:    time.Duration(cfg.QueryTimeoutSec) * time.Second,
	}

	switch cfg.Driver {
	case "mysql":
		s, err := dbMySQL.NewStore(dbMySQL.Config{
			Addr:     cfg.Addr(),
			User:     cfg.User,
			Password: cfg.Password,
			Database: cfg.Name,
			Params:   cfg.Params,
			Pool:     pool,
		})
		if err != nil {
			return nil, fmt.Errorf("mysql store: %w", err)
		}
		return s, nil
	case "sqlite":
		s, err := dbSQLite.NewStore(dbSQLite.Config{Path: cfg.Path, Pool: pool})
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", db.ErrUnknownDialect, cfg.Driver)
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
