package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TestRedisStore запускается при заданном TEST_REDIS_ADDR (например, localhost:6379).
// Каждый подтест использует собственный префикс ключей.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("Пропуск интеграционного теста: TEST_REDIS_ADDR не установлена")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("Redis недоступен: %v", err)
	}

	runStoreContract(t, func(t *testing.T) RecordStore {
		prefix := "sm-test-" + uuid.New().String()[:8]
		t.Cleanup(func() {
			keys, _ := client.Keys(ctx, prefix+":*").Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		})
		return NewRedisStore(client, prefix)
	}, contractOptions{})
}
