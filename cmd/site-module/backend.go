package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/api/handlers"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/config"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/database"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/repository"
)

// backend — открытое хранилище записей и связанные с ним ресурсы.
type backend struct {
	store   repository.RecordStore
	checker handlers.ReadinessChecker
	// pgDB — адаптер пула PostgreSQL для topologymetrics; nil для других бэкендов
	pgDB    *sql.DB
	closers []func()
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// memoryChecker — проверка готовности хранилища в памяти.
type memoryChecker struct{}

func (memoryChecker) CheckReady() (string, string) {
	return "ok", "хранилище в памяти"
}

// migrateBackend применяет миграции выбранного бэкенда.
// Redis и memory не имеют схемы.
func migrateBackend(cfg *config.Config, logger *slog.Logger) error {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		return database.Migrate(cfg, logger)
	case config.BackendSQLite:
		return database.MigrateSQLite(cfg.SQLitePath, logger)
	default:
		logger.Info("Бэкенд не требует миграций", slog.String("backend", cfg.StoreBackend))
		return nil
	}
}

// openBackend подключается к хранилищу записей, выбранному в конфигурации.
func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend, error) {
	b := &backend{}

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := database.Connect(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, pool.Close)
		// Адаптер pgxpool → *sql.DB: topologymetrics проверяет PostgreSQL через тот же пул
		b.pgDB = stdlib.OpenDBFromPool(pool)
		b.closers = append(b.closers, func() { _ = b.pgDB.Close() })
		b.store = repository.NewPostgresStore(pool)
		b.checker = database.NewReadinessChecker(pool)

	case config.BackendSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			b.closers = append(b.closers, func() { _ = sqlDB.Close() })
		}
		b.store = repository.NewSQLiteStore(db)
		b.checker = database.NewSQLiteReadinessChecker(db)

	case config.BackendRedis:
		client, err := database.ConnectRedis(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		b.store = repository.NewRedisStore(client, cfg.RedisPrefix)
		b.checker = database.NewRedisReadinessChecker(client)

	case config.BackendMemory:
		logger.Warn("Хранилище записей в памяти: данные теряются при перезапуске")
		b.store = repository.NewMemoryStore()
		b.checker = memoryChecker{}

	default:
		return nil, fmt.Errorf("неизвестный бэкенд хранилища: %q", cfg.StoreBackend)
	}

	logger.Info("Хранилище записей готово", slog.String("backend", cfg.StoreBackend))
	return b, nil
}
