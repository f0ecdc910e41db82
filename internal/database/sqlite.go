package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenSQLite открывает файл SQLite через gorm.
// TranslateError включён: нарушение уникальности приходит как gorm.ErrDuplicatedKey.
func OpenSQLite(path string, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_busy_timeout=5000"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия SQLite %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения *sql.DB: %w", err)
	}
	// SQLite допускает одного писателя
	sqlDB.SetMaxOpenConns(1)

	logger.Info("SQLite открыта", slog.String("path", path))
	return db, nil
}

// MigrateSQLite применяет SQL-миграции SQLite из embedded FS.
func MigrateSQLite(path string, logger *slog.Logger) error {
	return runMigrations("migrations/sqlite", "sqlite3://"+path, logger)
}

// SQLiteReadinessChecker — проверка готовности SQLite.
type SQLiteReadinessChecker struct {
	db *gorm.DB
}

// NewSQLiteReadinessChecker создаёт проверку готовности SQLite.
func NewSQLiteReadinessChecker(db *gorm.DB) *SQLiteReadinessChecker {
	return &SQLiteReadinessChecker{db: db}
}

// CheckReady выполняет ping базы.
func (c *SQLiteReadinessChecker) CheckReady() (status string, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	sqlDB, err := c.db.DB()
	if err != nil {
		return "fail", fmt.Sprintf("SQLite недоступна: %v", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return "fail", fmt.Sprintf("SQLite недоступна: %v", err)
	}
	return "ok", "подключение активно"
}
