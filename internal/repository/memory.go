package repository

import (
	"context"
	"maps"
	"sync"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
)

// memoryStore — RecordStore в памяти процесса (SM_STORE_BACKEND=memory, тесты).
// Данные теряются при перезапуске.
type memoryStore struct {
	mu     sync.RWMutex
	tables map[string]map[string]model.Fields
}

// NewMemoryStore создаёт пустое хранилище записей в памяти.
func NewMemoryStore() RecordStore {
	return &memoryStore{tables: make(map[string]map[string]model.Fields)}
}

// Fetch возвращает копию экземпляра по ключу.
func (m *memoryStore) Fetch(_ context.Context, s *model.Schema, key string) (model.Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.tables[s.Table][key]
	if !ok {
		return nil, ErrNotFound
	}
	return copyRecord(rec), nil
}

// Insert создаёт экземпляр; недостающие поля схемы заполняются nil.
func (m *memoryStore) Insert(_ context.Context, s *model.Schema, key string, fields model.Fields) (model.Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if _, _, err := columnValues(s, fields); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	table := m.tables[s.Table]
	if table == nil {
		table = make(map[string]model.Fields)
		m.tables[s.Table] = table
	}
	if _, exists := table[key]; exists {
		return nil, ErrConflict
	}

	rec := make(model.Fields, len(s.Fields)+1)
	for _, f := range s.Fields {
		rec[f.Name] = nil
	}
	for name, v := range fields {
		rec[name] = copyValue(v)
	}
	rec[s.Key.Name] = key
	table[key] = rec
	return copyRecord(rec), nil
}

// PartialSet перезаписывает только переданные поля.
func (m *memoryStore) PartialSet(_ context.Context, s *model.Schema, key string, fields model.Fields) (model.Fields, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if _, _, err := columnValues(s, fields); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.tables[s.Table][key]
	if !ok {
		return nil, ErrNotFound
	}
	for name, v := range fields {
		if name == s.Key.Name {
			continue
		}
		rec[name] = copyValue(v)
	}
	return copyRecord(rec), nil
}

// Delete удаляет экземпляр.
func (m *memoryStore) Delete(_ context.Context, s *model.Schema, key string) (int64, error) {
	if err := ValidateKey(key); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tables[s.Table][key]; !ok {
		return 0, nil
	}
	delete(m.tables[s.Table], key)
	return 1, nil
}

// List возвращает копии всех экземпляров в заданном порядке.
func (m *memoryStore) List(_ context.Context, s *model.Schema, order Order) ([]model.Fields, error) {
	m.mu.RLock()
	recs := make([]model.Fields, 0, len(m.tables[s.Table]))
	for _, rec := range m.tables[s.Table] {
		recs = append(recs, copyRecord(rec))
	}
	m.mu.RUnlock()

	if err := sortRecords(s, recs, order); err != nil {
		return nil, err
	}
	return recs, nil
}

func copyRecord(rec model.Fields) model.Fields {
	out := make(model.Fields, len(rec))
	for k, v := range rec {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	if m, ok := v.(map[string]any); ok {
		return maps.Clone(m)
	}
	return v
}
