// Пакет repository — адаптер хранилища записей ресурсов.
// Операции выражены через схему ресурса (model.Schema), бэкенды
// взаимозаменяемы: PostgreSQL (pgx), SQLite (gorm), Redis, память.
package repository

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
)

// Ошибки слоя репозиториев.
var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
	// ErrConflict — конфликт уникальности (дублирующийся ресурс).
	ErrConflict = errors.New("конфликт — запись уже существует")
	// ErrInvalidKey — некорректный ключ идентичности.
	ErrInvalidKey = errors.New("некорректный ключ")
	// ErrPersistence — ошибка бэкенда хранилища.
	ErrPersistence = errors.New("ошибка хранилища")
)

// maxKeyLength — максимальная длина ключа идентичности.
const maxKeyLength = 255

// Order — порядок сортировки списка.
type Order struct {
	// Field — имя поля API
	Field string
	Desc  bool
}

// RecordStore — операции над экземплярами ресурса по ключу.
// Бизнес-правил здесь нет: только перевод в запросы бэкенда.
type RecordStore interface {
	// Fetch возвращает экземпляр по ключу. Если не найден — ErrNotFound.
	Fetch(ctx context.Context, s *model.Schema, key string) (model.Fields, error)
	// Insert создаёт экземпляр. Дубликат ключа или уникального поля — ErrConflict.
	Insert(ctx context.Context, s *model.Schema, key string, fields model.Fields) (model.Fields, error)
	// PartialSet записывает ровно переданные поля, остальные не меняются.
	// Возвращает обновлённый экземпляр; если ключа нет — ErrNotFound.
	PartialSet(ctx context.Context, s *model.Schema, key string, fields model.Fields) (model.Fields, error)
	// Delete удаляет экземпляр и возвращает число удалённых записей.
	Delete(ctx context.Context, s *model.Schema, key string) (int64, error)
	// List возвращает все экземпляры в заданном порядке.
	List(ctx context.Context, s *model.Schema, order Order) ([]model.Fields, error)
}

// DBTX — интерфейс для выполнения SQL-запросов.
// Реализуется как *pgxpool.Pool, так и pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ValidateKey проверяет ключ идентичности.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: пустой ключ", ErrInvalidKey)
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("%w: длина %d превышает %d", ErrInvalidKey, len(key), maxKeyLength)
	}
	for _, r := range key {
		if unicode.IsControl(r) || r == '/' || r == '\\' {
			return fmt.Errorf("%w: недопустимый символ %q", ErrInvalidKey, r)
		}
	}
	return nil
}

// persistenceError оборачивает ошибку бэкенда как ErrPersistence.
func persistenceError(op string, s *model.Schema, key string, err error) error {
	if key == "" {
		return fmt.Errorf("%w: ошибка %s %s: %w", ErrPersistence, op, s.Table, err)
	}
	return fmt.Errorf("%w: ошибка %s %s[%s]: %w", ErrPersistence, op, s.Table, key, err)
}

// isUniqueViolation проверяет, является ли ошибка нарушением уникальности PostgreSQL.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// columnValues переводит поля API в значения столбцов. Ключ пропускается.
func columnValues(s *model.Schema, fields model.Fields) ([]string, []any, error) {
	cols := make([]string, 0, len(fields))
	vals := make([]any, 0, len(fields))
	for _, f := range s.Fields {
		v, ok := fields[f.Name]
		if !ok {
			continue
		}
		cols = append(cols, f.Column)
		vals = append(vals, v)
	}
	for name := range fields {
		if name == s.Key.Name {
			continue
		}
		if _, ok := s.Field(name); !ok {
			return nil, nil, fmt.Errorf("%w: неизвестное поле %q ресурса %s", ErrPersistence, name, s.Resource)
		}
	}
	return cols, vals, nil
}

// decodeRecord собирает экземпляр из значений столбцов, приводя типы по схеме.
func decodeRecord(s *model.Schema, column func(col string) any) (model.Fields, error) {
	rec := make(model.Fields, len(s.Fields)+1)
	for _, f := range s.AllFields() {
		v, err := f.Coerce(column(f.Column))
		if err != nil {
			return nil, fmt.Errorf("%w: столбец %s.%s: %w", ErrPersistence, s.Table, f.Column, err)
		}
		rec[f.Name] = v
	}
	return rec, nil
}

// orderField возвращает поле сортировки; пустой Order — сортировка по ключу.
func orderField(s *model.Schema, order Order) (model.Field, error) {
	if order.Field == "" {
		return s.Key, nil
	}
	f, ok := s.Field(order.Field)
	if !ok {
		return model.Field{}, fmt.Errorf("%w: неизвестное поле сортировки %q", ErrPersistence, order.Field)
	}
	return f, nil
}

// sortRecords сортирует экземпляры в памяти (для бэкендов без ORDER BY).
// nil всегда идёт последним, при равенстве — по ключу.
func sortRecords(s *model.Schema, recs []model.Fields, order Order) error {
	f, err := orderField(s, order)
	if err != nil {
		return err
	}
	slices.SortStableFunc(recs, func(a, b model.Fields) int {
		av, bv := a[f.Name], b[f.Name]
		var c int
		switch {
		case av == nil && bv == nil:
			c = 0
		case av == nil:
			return 1
		case bv == nil:
			return -1
		default:
			c = compareValues(av, bv)
			if order.Desc {
				c = -c
			}
		}
		if c == 0 {
			c = cmp.Compare(a.String(s.Key.Name), b.String(s.Key.Name))
		}
		return c
	})
	return nil
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return cmp.Compare(av, bv)
	case int64:
		bv, _ := b.(int64)
		return cmp.Compare(av, bv)
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Compare(bv)
	case bool:
		bv, _ := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	}
	return 0
}
