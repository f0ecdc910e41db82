package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
)

// pgStore — реализация RecordStore на PostgreSQL.
// SQL собирается по схеме ресурса, идентификаторы экранируются pgx.Identifier.
type pgStore struct {
	db DBTX
}

// NewPostgresStore создаёт хранилище записей поверх пула или транзакции pgx.
func NewPostgresStore(db DBTX) RecordStore {
	return &pgStore{db: db}
}

// Fetch возвращает экземпляр по ключу.
func (r *pgStore) Fetch(ctx context.Context, s *model.Schema, key string) (model.Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1`,
		selectList(s), ident(s.Table), ident(s.Key.Column))

	rec, err := r.queryOne(ctx, s, query, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, persistenceError("получения", s, key, err)
	}
	return rec, nil
}

// Insert создаёт экземпляр (INSERT ... RETURNING).
func (r *pgStore) Insert(ctx context.Context, s *model.Schema, key string, fields model.Fields) (model.Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	cols, vals, err := columnValues(s, fields)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(cols)+1)
	placeholders := make([]string, 0, len(cols)+1)
	names = append(names, ident(s.Key.Column))
	placeholders = append(placeholders, "$1")
	for i, c := range cols {
		names = append(names, ident(c))
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
		RETURNING %s`,
		ident(s.Table), strings.Join(names, ", "), strings.Join(placeholders, ", "), selectList(s))

	rec, err := r.queryOne(ctx, s, query, append([]any{key}, vals...)...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, persistenceError("создания", s, key, err)
	}
	return rec, nil
}

// PartialSet обновляет только переданные столбцы (UPDATE ... RETURNING).
func (r *pgStore) PartialSet(ctx context.Context, s *model.Schema, key string, fields model.Fields) (model.Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	cols, vals, err := columnValues(s, fields)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return r.Fetch(ctx, s, key)
	}

	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", ident(c), i+1)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE %s = $%d
		RETURNING %s`,
		ident(s.Table), strings.Join(sets, ", "), ident(s.Key.Column), len(cols)+1, selectList(s))

	rec, err := r.queryOne(ctx, s, query, append(vals, key)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, persistenceError("обновления", s, key, err)
	}
	return rec, nil
}

// Delete удаляет экземпляр по ключу.
func (r *pgStore) Delete(ctx context.Context, s *model.Schema, key string) (int64, error) {
	if err := ValidateKey(key); err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, ident(s.Table), ident(s.Key.Column))
	tag, err := r.db.Exec(ctx, query, key)
	if err != nil {
		return 0, persistenceError("удаления", s, key, err)
	}
	return tag.RowsAffected(), nil
}

// List возвращает все экземпляры с сортировкой на стороне БД.
func (r *pgStore) List(ctx context.Context, s *model.Schema, order Order) ([]model.Fields, error) {
	f, err := orderField(s, order)
	if err != nil {
		return nil, err
	}
	direction := "ASC"
	if order.Desc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY %s %s NULLS LAST, %s`,
		selectList(s), ident(s.Table), ident(f.Column), direction, ident(s.Key.Column))

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, persistenceError("получения списка", s, "", err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, persistenceError("сканирования", s, "", err)
	}

	recs := make([]model.Fields, 0, len(maps))
	for _, m := range maps {
		rec, err := decodeRecord(s, func(col string) any { return m[col] })
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// queryOne выполняет запрос, возвращающий одну строку, и декодирует её.
func (r *pgStore) queryOne(ctx context.Context, s *model.Schema, query string, args ...any) (model.Fields, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	return decodeRecord(s, func(col string) any { return m[col] })
}

// selectList возвращает экранированный список столбцов схемы.
func selectList(s *model.Schema) string {
	all := s.AllFields()
	cols := make([]string, len(all))
	for i, f := range all {
		cols[i] = ident(f.Column)
	}
	return strings.Join(cols, ", ")
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
