// Package app opens the backing stores shared by the server and the CLI.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"emotiguide/internal/config"
	"emotiguide/internal/db"
	"emotiguide/internal/kv"
	"emotiguide/internal/repository"
)

// OpenStore returns the key-value store selected by STORE_DRIVER and a
// function releasing its connections.
func OpenStore(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (kv.Store, func() error, error) {
	switch cfg.StoreDriver {
	case "redis":
		store := kv.NewRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		log.Infow("using redis store", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return store, store.Close, nil

	case "sqlite", "mysql":
		var (
			gormDB *gorm.DB
			err    error
		)
		if cfg.StoreDriver == "sqlite" {
			gormDB, err = db.NewSQLite(cfg.SQLitePath)
		} else {
			gormDB, err = db.NewMySQL(cfg.MySQLDSN)
		}
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("database handle: %w", err)
		}
		if err := db.Migrate(gormDB); err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		log.Infow("using sql store", "driver", cfg.StoreDriver)
		return repository.NewKVRepository(gormDB), sqlDB.Close, nil

	case "memory":
		log.Warnw("using in-memory store, state is lost on exit")
		return kv.NewMemory(), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unsupported STORE_DRIVER: %s", cfg.StoreDriver)
}
