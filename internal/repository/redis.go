package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
)

// redisStore — документное хранилище записей на Redis.
// Экземпляр — hash {prefix}:{table}:rec:{key}, поле hash — столбец,
// значение — JSON. Множество {prefix}:{table}:index перечисляет ключи.
// Изменения выполняются оптимистично через WATCH + MULTI.
type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore создаёт хранилище записей поверх клиента Redis.
func NewRedisStore(client *redis.Client, prefix string) RecordStore {
	return &redisStore{client: client, prefix: prefix}
}

func (r *redisStore) recordKey(s *model.Schema, key string) string {
	return fmt.Sprintf("%s:%s:rec:%s", r.prefix, s.Table, key)
}

func (r *redisStore) indexKey(s *model.Schema) string {
	return fmt.Sprintf("%s:%s:index", r.prefix, s.Table)
}

// Fetch возвращает экземпляр по ключу.
func (r *redisStore) Fetch(ctx context.Context, s *model.Schema, key string) (model.Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	h, err := r.client.HGetAll(ctx, r.recordKey(s, key)).Result()
	if err != nil {
		return nil, persistenceError("получения", s, key, err)
	}
	if len(h) == 0 {
		return nil, ErrNotFound
	}
	return decodeHash(s, key, h)
}

// Insert создаёт экземпляр, если ключ свободен.
func (r *redisStore) Insert(ctx context.Context, s *model.Schema, key string, fields model.Fields) (model.Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	values, err := redisValues(s, fields)
	if err != nil {
		return nil, err
	}
	values[s.Key.Column] = mustJSON(key)

	rk := r.recordKey(s, key)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, rk).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, rk, values)
			pipe.SAdd(ctx, r.indexKey(s), key)
			return nil
		})
		return err
	}, rk)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, ErrConflict
		}
		return nil, persistenceError("создания", s, key, err)
	}
	return r.Fetch(ctx, s, key)
}

// PartialSet записывает переданные поля hash, если экземпляр существует.
func (r *redisStore) PartialSet(ctx context.Context, s *model.Schema, key string, fields model.Fields) (model.Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	values, err := redisValues(s, fields)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return r.Fetch(ctx, s, key)
	}

	rk := r.recordKey(s, key)
	var h map[string]string
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, rk).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		var get *redis.MapStringStringCmd
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, rk, values)
			get = pipe.HGetAll(ctx, rk)
			return nil
		})
		if err != nil {
			return err
		}
		h = get.Val()
		return nil
	}, rk)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistenceError("обновления", s, key, err)
	}
	return decodeHash(s, key, h)
}

// Delete удаляет экземпляр и его ключ из индекса.
func (r *redisStore) Delete(ctx context.Context, s *model.Schema, key string) (int64, error) {
	if err := ValidateKey(key); err != nil {
		return 0, err
	}
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, r.recordKey(s, key))
		pipe.SRem(ctx, r.indexKey(s), key)
		return nil
	})
	if err != nil {
		return 0, persistenceError("удаления", s, key, err)
	}
	return del.Val(), nil
}

// List читает все экземпляры по индексу и сортирует их в памяти.
func (r *redisStore) List(ctx context.Context, s *model.Schema, order Order) ([]model.Fields, error) {
	keys, err := r.client.SMembers(ctx, r.indexKey(s)).Result()
	if err != nil {
		return nil, persistenceError("получения списка", s, "", err)
	}

	cmds := make([]*redis.MapStringStringCmd, len(keys))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, key := range keys {
			cmds[i] = pipe.HGetAll(ctx, r.recordKey(s, key))
		}
		return nil
	})
	if err != nil {
		return nil, persistenceError("получения списка", s, "", err)
	}

	recs := make([]model.Fields, 0, len(keys))
	for i, cmd := range cmds {
		h := cmd.Val()
		// Индекс может пережить запись при сбое между командами
		if len(h) == 0 {
			continue
		}
		rec, err := decodeHash(s, keys[i], h)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := sortRecords(s, recs, order); err != nil {
		return nil, err
	}
	return recs, nil
}

// redisValues кодирует значения столбцов в JSON.
func redisValues(s *model.Schema, fields model.Fields) (map[string]any, error) {
	cols, vals, err := columnValues(s, fields)
	if err != nil {
		return nil, err
	}
	values := make(map[string]any, len(cols))
	for i, col := range cols {
		v := vals[i]
		if t, ok := v.(time.Time); ok {
			v = t.UTC().Format(time.RFC3339Nano)
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: столбец %s: %w", ErrPersistence, col, err)
		}
		values[col] = string(data)
	}
	return values, nil
}

// decodeHash собирает экземпляр из hash Redis.
func decodeHash(s *model.Schema, key string, h map[string]string) (model.Fields, error) {
	var decodeErr error
	rec, err := decodeRecord(s, func(col string) any {
		if col == s.Key.Column {
			return key
		}
		raw, ok := h[col]
		if !ok {
			return nil
		}
		dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			decodeErr = err
			return nil
		}
		return v
	})
	if decodeErr != nil {
		return nil, persistenceError("декодирования", s, key, decodeErr)
	}
	return rec, err
}

func mustJSON(v string) string {
	data, _ := json.Marshal(v)
	return string(data)
}
