package main

import (
	"context"
	"fmt"

	"medication-adherence/internal/adapters/storage/postgres"
	"medication-adherence/internal/adapters/storage/sqlite"
	"medication-adherence/internal/config"
	"medication-adherence/internal/platform/logger"
	"medication-adherence/internal/router"
)

// openStorage arma el backend según STORAGE_DRIVER. El func devuelto cierra conexiones.
func openStorage(ctx context.Context, cfg *config.Config, log logger.Logger) (*router.Storage, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		db, err := postgres.Open(cfg.DatabaseURL, postgres.Options{
			MaxOpenConns: cfg.DBMaxOpenConns,
			MaxIdleConns: cfg.DBMaxIdleConns,
		})
		if err != nil {
			return nil, nil, err
		}
		if cfg.MigrationsAuto {
			n, err := postgres.NewMigrator(db).Up(ctx)
			if err != nil {
				_ = db.Close()
				return nil, nil, fmt.Errorf("migrations: %w", err)
			}
			log.Info("migrations applied", map[string]any{"count": n})
		}
		s := postgres.NewStore(db)
		return &router.Storage{
			Tx:          s,
			Medications: s.Medications(),
			Doses:       s.Doses(),
			Ping:        s.Ping,
		}, func() { _ = db.Close() }, nil

	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return &router.Storage{
			Tx:          s,
			Medications: s.Medications(),
			Doses:       s.Doses(),
			Ping:        s.Ping,
		}, func() { _ = s.Close() }, nil

	case config.DriverMemory:
		log.Warn("in-memory storage: data is lost on restart", nil)
		return router.MemoryStorage(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
