// Пакет config — загрузка и валидация конфигурации Site Module
// из переменных окружения (и опционального .env файла).
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Поддерживаемые бэкенды хранилища записей.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config содержит все параметры конфигурации Site Module.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Окружение: development или production
	Env string
	// Префикс публичного API
	APIPrefix string
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string
	// Файл логов с ротацией (опционально)
	LogFile string
	// Максимальный размер файла логов до ротации, МБ
	LogMaxSizeMB int
	// Количество хранимых архивов логов
	LogMaxBackups int

	// --- Хранилище записей ---

	// Бэкенд: postgres, sqlite, redis, memory
	StoreBackend string

	// Хост PostgreSQL
	DBHost string
	// Порт PostgreSQL
	DBPort int
	// Имя базы данных
	DBName string
	// Имя пользователя PostgreSQL
	DBUser string
	// Пароль пользователя PostgreSQL
	DBPassword string
	// Режим SSL: disable, require, verify-ca, verify-full
	DBSSLMode string

	// Путь к файлу SQLite
	SQLitePath string

	// Адрес Redis (host:port)
	RedisAddr string
	// Пароль Redis
	RedisPassword string
	// Номер базы Redis
	RedisDB int
	// Префикс ключей Redis
	RedisPrefix string

	// --- Вложения ---

	// Корневой каталог файлов вложений
	UploadDir string
	// Максимальный размер одного вложения, байт
	MaxUploadSize int64
	// URL-префикс, под которым раздаются файлы вложений
	UploadURLPrefix string

	// --- Keycloak (опционально) ---

	// URL Keycloak; пустое значение отключает интеграцию
	KeycloakURL string
	// Имя realm в Keycloak
	KeycloakRealm string
	// Client ID для доступа к Keycloak Admin API
	KeycloakClientID string
	// Client Secret для доступа к Keycloak Admin API
	KeycloakClientSecret string

	// --- Фоновые задачи ---

	// TTL кэша настроек сайта
	SettingsCacheTTL time.Duration
	// Интервал сборки осиротевших файлов (0 — отключено)
	OrphanGCInterval time.Duration
	// Минимальный возраст файла, после которого он считается осиротевшим
	OrphanGCMinAge time.Duration
	// Группа сервиса в topologymetrics
	DephealthGroup string
	// Интервал проверки зависимостей topologymetrics
	DephealthCheckInterval time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
// Перед разбором подгружается файл SM_ENV_FILE (по умолчанию .env), если он есть;
// уже заданные переменные окружения имеют приоритет.
func Load() (*Config, error) {
	if err := loadDotenv(getEnvDefault("SM_ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	cfg := &Config{}
	var err error

	// --- Сервер ---

	// SM_PORT — порт HTTP-сервера (по умолчанию 8000)
	cfg.Port, err = getEnvInt("SM_PORT", 8000)
	if err != nil {
		return nil, fmt.Errorf("SM_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("SM_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// SM_ENV — окружение (по умолчанию development)
	cfg.Env = getEnvDefault("SM_ENV", "development")
	if cfg.Env != "development" && cfg.Env != "production" {
		return nil, fmt.Errorf("SM_ENV: недопустимое значение %q, допустимые: development, production", cfg.Env)
	}

	// SM_API_PREFIX — префикс API (по умолчанию /bb/v1)
	cfg.APIPrefix = "/" + strings.Trim(getEnvDefault("SM_API_PREFIX", "/bb/v1"), "/")

	// SM_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("SM_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("SM_LOG_LEVEL: %w", err)
	}

	// SM_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("SM_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("SM_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// SM_LOG_FILE — файл логов (опционально)
	cfg.LogFile = getEnvDefault("SM_LOG_FILE", "")

	cfg.LogMaxSizeMB, err = getEnvInt("SM_LOG_MAX_SIZE_MB", 100)
	if err != nil {
		return nil, fmt.Errorf("SM_LOG_MAX_SIZE_MB: %w", err)
	}

	cfg.LogMaxBackups, err = getEnvInt("SM_LOG_MAX_BACKUPS", 3)
	if err != nil {
		return nil, fmt.Errorf("SM_LOG_MAX_BACKUPS: %w", err)
	}

	// --- Хранилище записей ---

	// SM_STORE_BACKEND — бэкенд (по умолчанию postgres)
	cfg.StoreBackend = strings.ToLower(getEnvDefault("SM_STORE_BACKEND", BackendPostgres))
	switch cfg.StoreBackend {
	case BackendPostgres:
		if err := loadPostgres(cfg); err != nil {
			return nil, err
		}
	case BackendSQLite:
		cfg.SQLitePath = getEnvDefault("SM_SQLITE_PATH", "site.db")
	case BackendRedis:
		cfg.RedisAddr, err = getEnvRequired("SM_REDIS_ADDR")
		if err != nil {
			return nil, err
		}
		cfg.RedisPassword = getEnvDefault("SM_REDIS_PASSWORD", "")
		cfg.RedisDB, err = getEnvInt("SM_REDIS_DB", 0)
		if err != nil {
			return nil, fmt.Errorf("SM_REDIS_DB: %w", err)
		}
		cfg.RedisPrefix = getEnvDefault("SM_REDIS_PREFIX", "sm")
	case BackendMemory:
	default:
		return nil, fmt.Errorf("SM_STORE_BACKEND: недопустимое значение %q, допустимые: postgres, sqlite, redis, memory", cfg.StoreBackend)
	}

	// --- Вложения ---

	// SM_UPLOAD_DIR — каталог вложений (по умолчанию ./uploads)
	cfg.UploadDir = getEnvDefault("SM_UPLOAD_DIR", "./uploads")

	// SM_MAX_UPLOAD_SIZE — лимит размера вложения (по умолчанию 5 MiB)
	cfg.MaxUploadSize, err = getEnvInt64("SM_MAX_UPLOAD_SIZE", 5<<20)
	if err != nil {
		return nil, fmt.Errorf("SM_MAX_UPLOAD_SIZE: %w", err)
	}
	if cfg.MaxUploadSize <= 0 {
		return nil, fmt.Errorf("SM_MAX_UPLOAD_SIZE: значение должно быть положительным, получено %d", cfg.MaxUploadSize)
	}

	// SM_UPLOAD_URL_PREFIX — URL-префикс раздачи файлов (по умолчанию /uploads)
	cfg.UploadURLPrefix = "/" + strings.Trim(getEnvDefault("SM_UPLOAD_URL_PREFIX", "/uploads"), "/")

	// --- Keycloak ---

	cfg.KeycloakURL = strings.TrimRight(getEnvDefault("SM_KEYCLOAK_URL", ""), "/")
	cfg.KeycloakRealm = getEnvDefault("SM_KEYCLOAK_REALM", "backbencher")
	if cfg.KeycloakURL != "" {
		cfg.KeycloakClientID, err = getEnvRequired("SM_KEYCLOAK_CLIENT_ID")
		if err != nil {
			return nil, err
		}
		cfg.KeycloakClientSecret, err = getEnvRequired("SM_KEYCLOAK_CLIENT_SECRET")
		if err != nil {
			return nil, err
		}
	}

	// --- Фоновые задачи ---

	cfg.SettingsCacheTTL, err = getEnvDuration("SM_SETTINGS_CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("SM_SETTINGS_CACHE_TTL: %w", err)
	}

	cfg.OrphanGCInterval, err = getEnvDuration("SM_ORPHAN_GC_INTERVAL", time.Hour)
	if err != nil {
		return nil, fmt.Errorf("SM_ORPHAN_GC_INTERVAL: %w", err)
	}

	cfg.OrphanGCMinAge, err = getEnvDuration("SM_ORPHAN_GC_MIN_AGE", 10*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("SM_ORPHAN_GC_MIN_AGE: %w", err)
	}

	cfg.DephealthGroup = getEnvDefault("SM_DEPHEALTH_GROUP", "backbencher")

	cfg.DephealthCheckInterval, err = getEnvDuration("SM_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("SM_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- Graceful shutdown ---

	cfg.ShutdownTimeout, err = getEnvDuration("SM_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("SM_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// loadPostgres читает параметры подключения к PostgreSQL.
func loadPostgres(cfg *Config) error {
	var err error

	cfg.DBHost, err = getEnvRequired("SM_DB_HOST")
	if err != nil {
		return err
	}

	cfg.DBPort, err = getEnvInt("SM_DB_PORT", 5432)
	if err != nil {
		return fmt.Errorf("SM_DB_PORT: %w", err)
	}

	cfg.DBName, err = getEnvRequired("SM_DB_NAME")
	if err != nil {
		return err
	}

	cfg.DBUser, err = getEnvRequired("SM_DB_USER")
	if err != nil {
		return err
	}

	cfg.DBPassword, err = getEnvRequired("SM_DB_PASSWORD")
	if err != nil {
		return err
	}

	cfg.DBSSLMode = getEnvDefault("SM_DB_SSL_MODE", "disable")
	validSSLModes := map[string]bool{
		"disable": true, "require": true, "verify-ca": true, "verify-full": true,
	}
	if !validSSLModes[cfg.DBSSLMode] {
		return fmt.Errorf("SM_DB_SSL_MODE: недопустимое значение %q, допустимые: disable, require, verify-ca, verify-full", cfg.DBSSLMode)
	}
	return nil
}

// IsProduction сообщает, нужно ли скрывать внутренние детали ошибок.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DatabaseDSN возвращает строку подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// DatabaseURL возвращает URL PostgreSQL без учётных данных для лейблов topologymetrics.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%d/%s?sslmode=%s", c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
// При заданном SM_LOG_FILE записи дублируются в файл с ротацией по размеру.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			Compress:   true,
		})
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// loadDotenv подгружает переменные из файла, отсутствие файла не ошибка.
func loadDotenv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("SM_ENV_FILE: не удалось прочитать %q: %w", path, err)
	}
	return nil
}

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvInt64 — как getEnvInt, но для размеров в байтах.
func getEnvInt64(key string, defaultVal int64) (int64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
