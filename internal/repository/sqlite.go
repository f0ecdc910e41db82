package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
)

// sqliteStore — реализация RecordStore на встроенной SQLite через gorm.
// Схема ресурса описывает столбцы, поэтому работа идёт с map, без моделей gorm.
// JSON-поля хранятся текстом.
type sqliteStore struct {
	db *gorm.DB
}

// NewSQLiteStore создаёт хранилище записей поверх gorm-соединения.
// Соединение должно быть открыто с TranslateError, чтобы дубликаты
// распознавались как gorm.ErrDuplicatedKey.
func NewSQLiteStore(db *gorm.DB) RecordStore {
	return &sqliteStore{db: db}
}

// Fetch возвращает экземпляр по ключу.
func (r *sqliteStore) Fetch(ctx context.Context, s *model.Schema, key string) (model.Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	return r.fetch(r.db.WithContext(ctx), s, key)
}

func (r *sqliteStore) fetch(db *gorm.DB, s *model.Schema, key string) (model.Fields, error) {
	var rows []map[string]any
	err := db.Table(s.Table).
		Select(columnNames(s)).
		Where(keyEq(s, key)).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, persistenceError("получения", s, key, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return decodeRecord(s, func(col string) any { return rows[0][col] })
}

// Insert создаёт экземпляр в транзакции и возвращает сохранённое состояние.
func (r *sqliteStore) Insert(ctx context.Context, s *model.Schema, key string, fields model.Fields) (model.Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	values, err := sqliteValues(s, fields)
	if err != nil {
		return nil, err
	}
	values[s.Key.Column] = key

	var rec model.Fields
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(s.Table).Create(values).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return persistenceError("создания", s, key, err)
		}
		var err error
		rec, err = r.fetch(tx, s, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// PartialSet обновляет только переданные столбцы.
func (r *sqliteStore) PartialSet(ctx context.Context, s *model.Schema, key string, fields model.Fields) (model.Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	values, err := sqliteValues(s, fields)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return r.Fetch(ctx, s, key)
	}

	var rec model.Fields
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Table(s.Table).Where(keyEq(s, key)).Updates(values)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return persistenceError("обновления", s, key, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		var err error
		rec, err = r.fetch(tx, s, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete удаляет экземпляр по ключу.
func (r *sqliteStore) Delete(ctx context.Context, s *model.Schema, key string) (int64, error) {
	if err := ValidateKey(key); err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).
		Exec("DELETE FROM ? WHERE ? = ?", clause.Table{Name: s.Table}, clause.Column{Name: s.Key.Column}, key)
	if res.Error != nil {
		return 0, persistenceError("удаления", s, key, res.Error)
	}
	return res.RowsAffected, nil
}

// List возвращает все экземпляры. NULL сортируется последним, как в PostgreSQL.
func (r *sqliteStore) List(ctx context.Context, s *model.Schema, order Order) ([]model.Fields, error) {
	f, err := orderField(s, order)
	if err != nil {
		return nil, err
	}

	direction := "ASC"
	if order.Desc {
		direction = "DESC"
	}
	col := clause.Column{Name: f.Column}

	var rows []map[string]any
	err = r.db.WithContext(ctx).Table(s.Table).
		Select(columnNames(s)).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:  "? IS NULL, ? " + direction + ", ?",
			Vars: []any{col, col, clause.Column{Name: s.Key.Column}},
		}}).
		Find(&rows).Error
	if err != nil {
		return nil, persistenceError("получения списка", s, "", err)
	}

	recs := make([]model.Fields, 0, len(rows))
	for _, row := range rows {
		rec, err := decodeRecord(s, func(col string) any { return row[col] })
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// sqliteValues переводит поля в значения столбцов, JSON сериализуется в текст.
func sqliteValues(s *model.Schema, fields model.Fields) (map[string]any, error) {
	cols, vals, err := columnValues(s, fields)
	if err != nil {
		return nil, err
	}
	values := make(map[string]any, len(cols))
	for i, col := range cols {
		v := vals[i]
		if m, ok := v.(map[string]any); ok {
			data, err := json.Marshal(m)
			if err != nil {
				return nil, fmt.Errorf("%w: столбец %s: %w", ErrPersistence, col, err)
			}
			v = string(data)
		}
		values[col] = v
	}
	return values, nil
}

func columnNames(s *model.Schema) []string {
	all := s.AllFields()
	cols := make([]string, len(all))
	for i, f := range all {
		cols[i] = f.Column
	}
	return cols
}

func keyEq(s *model.Schema, key string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: s.Key.Column}, Value: key}
}
