package database

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/config"
)

var expectedTables = []string{"users", "logos", "site_settings", "subscribers"}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestDB запускает PostgreSQL в Docker-контейнере через testcontainers.
func setupTestDB(t *testing.T) *config.Config {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Пропуск интеграционного теста: TEST_INTEGRATION не установлена")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("backbencher_test"),
		postgres.WithUsername("backbencher"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Не удалось запустить PostgreSQL контейнер: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Ошибка остановки контейнера: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Не удалось получить host контейнера: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Не удалось получить port контейнера: %v", err)
	}
	portNum, _ := strconv.Atoi(port.Port())

	return &config.Config{
		StoreBackend: config.BackendPostgres,
		DBHost:       host,
		DBPort:       portNum,
		DBName:       "backbencher_test",
		DBUser:       "backbencher",
		DBPassword:   "test-password",
		DBSSLMode:    "disable",
	}
}

// TestMigrate проверяет применение миграций PostgreSQL и их идемпотентность.
func TestMigrate(t *testing.T) {
	cfg := setupTestDB(t)
	logger := testLogger()

	if err := Migrate(cfg, logger); err != nil {
		t.Fatalf("Migrate() вернул ошибку: %v", err)
	}
	// Повторное применение — без ошибки (ErrNoChange)
	if err := Migrate(cfg, logger); err != nil {
		t.Fatalf("Повторный Migrate() вернул ошибку: %v", err)
	}

	ctx := context.Background()
	pool, err := Connect(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("Connect() вернул ошибку: %v", err)
	}
	defer pool.Close()

	for _, table := range expectedTables {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = $1
			)`, table).Scan(&exists)
		if err != nil {
			t.Fatalf("Ошибка проверки таблицы %s: %v", table, err)
		}
		if !exists {
			t.Errorf("Таблица %s не создана", table)
		}
	}

	// Singleton-таблицы принимают только ключ current
	if _, err := pool.Exec(ctx, `INSERT INTO logos (id) VALUES ('second')`); err == nil {
		t.Error("logos принял ключ, отличный от current")
	}

	status, msg := NewReadinessChecker(pool).CheckReady()
	if status != "ok" {
		t.Errorf("CheckReady() status = %q, message = %q; ожидали ok", status, msg)
	}
}

// TestMigrateSQLite проверяет миграции SQLite и проверку готовности.
func TestMigrateSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.db")
	logger := testLogger()

	if err := MigrateSQLite(path, logger); err != nil {
		t.Fatalf("MigrateSQLite() вернул ошибку: %v", err)
	}
	if err := MigrateSQLite(path, logger); err != nil {
		t.Fatalf("Повторный MigrateSQLite() вернул ошибку: %v", err)
	}

	db, err := OpenSQLite(path, logger)
	if err != nil {
		t.Fatalf("OpenSQLite() вернул ошибку: %v", err)
	}

	for _, table := range expectedTables {
		if !db.Migrator().HasTable(table) {
			t.Errorf("Таблица %s не создана", table)
		}
	}

	status, msg := NewSQLiteReadinessChecker(db).CheckReady()
	if status != "ok" {
		t.Errorf("CheckReady() status = %q, message = %q; ожидали ok", status, msg)
	}
}
