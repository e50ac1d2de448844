package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/partsdex/internal/config"
	dbMySQL "github.com/kailas-cloud/partsdex/internal/db/mysql"
	"github.com/kailas-cloud/partsdex/internal/db/migrations"
	logpkg "github.com/kailas-cloud/partsdex/internal/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the catalog table schema",
}

func init() {
	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return runMigrations(func(r *migrations.Runner) error { return r.Up() })
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert all migrations",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return runMigrations(func(r *migrations.Runner) error { return r.Down() })
			},
		},
	)
}

func runMigrations(apply func(*migrations.Runner) error) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	var url string
	switch cfg.Database.Driver {
	case "mysql":
		url = migrations.MySQLURL(dbMySQL.Config{
			Addr:     cfg.Database.Addr(),
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Database: cfg.Database.Name,
			Params:   cfg.Database.Params,
		}.DSN())
	case "sqlite":
		url = migrations.SQLiteURL(cfg.Database.Path)
	}

	runner, err := migrations.New(cfg.Database.Driver, url)
	if err != nil {
		return err
	}
	defer func() {
		if err := runner.Close(); err != nil {
			logger.Warn("Failed to close migration runner", zap.Error(err))
		}
	}()

	if err := apply(runner); err != nil {
		return err
	}

	v, dirty, ok, err := runner.Version()
	if err != nil {
		return err
	}
	if !ok {
		logger.Info("Schema has no migrations applied", zap.String("driver", cfg.Database.Driver))
		return nil
	}
	logger.Info("Schema migrated",
		zap.String("driver", cfg.Database.Driver),
		zap.Uint("version", v),
		zap.Bool("dirty", dirty),
	)
	return nil
}
