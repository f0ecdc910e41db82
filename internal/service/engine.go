// engine.go — движок частичных обновлений ресурсов с вложениями.
//
// Порядок операции обновления:
//  1. Валидация дельты по схеме ресурса и проверка вложений
//  2. Блокировка ключа, чтение текущего экземпляра
//  3. Запись новых файлов вложений (stage)
//  4. Запись изменённых полей в хранилище (partial set / insert)
//  5. Успех — удаление заменённых файлов; ошибка — удаление новых файлов
//
// Сбой между шагами 3 и 4 оставляет только новый файл-сироту,
// который удаляет OrphanGCService; ссылка на удалённый файл не возникает.
//
// При удалении запись удаляется раньше своих файлов, а не после них и не
// атомарно с ними. Ошибка удаления файла оставляет сироту для OrphanGCService,
// но не запись со ссылкой на отсутствующий файл.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/repository"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/storage/attachment"
)

// Prometheus метрики движка
var (
	attachmentsStagedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sm_attachments_staged_total",
		Help: "Количество записанных файлов вложений",
	}, []string{"resource"})

	attachmentsReleasedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sm_attachments_released_total",
		Help: "Количество удалённых файлов вложений по причине",
	}, []string{"resource", "reason"})

	attachmentReleaseErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sm_attachment_release_errors_total",
		Help: "Количество ошибок удаления файлов вложений",
	}, []string{"resource"})

	updateRollbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sm_update_rollbacks_total",
		Help: "Количество откатов записанных вложений при неуспешном обновлении",
	}, []string{"resource"})
)

// Mutation — запрос на изменение экземпляра ресурса.
type Mutation struct {
	// Delta — поля из запроса клиента, проходят валидацию схемы
	Delta map[string]any
	// Set — поля, выставляемые сервисом; не ограничены списком изменяемых
	Set model.Fields
	// Attachments — новые файлы по имени поля слота
	Attachments map[string]attachment.Payload
	// Compute вычисляет дополнительную дельту по текущему состоянию
	// под блокировкой ключа; current == nil при создании
	Compute func(current model.Fields) (map[string]any, error)
}

// Result — результат изменения.
type Result struct {
	Record model.Fields
	// Created — экземпляр был создан этой операцией
	Created bool
}

type applyMode int

const (
	// modeUpdate — обновление; для singleton — создание при отсутствии
	modeUpdate applyMode = iota
	// modeCreate — создание; существующий экземпляр — конфликт
	modeCreate
)

// Engine — движок частичных обновлений.
type Engine struct {
	store  repository.RecordStore
	files  *attachment.Store
	locks  *keyLocks
	now    func() time.Time
	logger *slog.Logger
}

// NewEngine создаёт движок над хранилищем записей и хранилищем вложений.
func NewEngine(store repository.RecordStore, files *attachment.Store, logger *slog.Logger) *Engine {
	return &Engine{
		store: store,
		files: files,
		locks: newKeyLocks(),
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
		logger: logger.With(slog.String("component", "engine")),
	}
}

// Get возвращает экземпляр по ключу.
func (e *Engine) Get(ctx context.Context, s *model.Schema, key string) (model.Fields, error) {
	rec, err := e.store.Fetch(ctx, s, e.resolveKey(s, key))
	if err != nil {
		return nil, storeError(err)
	}
	return rec, nil
}

// List возвращает все экземпляры ресурса.
func (e *Engine) List(ctx context.Context, s *model.Schema, order repository.Order) ([]model.Fields, error) {
	recs, err := e.store.List(ctx, s, order)
	if err != nil {
		return nil, storeError(err)
	}
	return recs, nil
}

// Create создаёт экземпляр с ключом key.
// Поля схемы без значений берутся из значений по умолчанию.
func (e *Engine) Create(ctx context.Context, s *model.Schema, key string, m Mutation) (Result, error) {
	return e.apply(ctx, s, e.resolveKey(s, key), m, modeCreate)
}

// Update частично обновляет экземпляр. Для ресурса с Cardinality Many
// отсутствующий ключ — ErrNotFound; singleton создаётся из значений
// по умолчанию и дельты.
func (e *Engine) Update(ctx context.Context, s *model.Schema, key string, m Mutation) (Result, error) {
	return e.apply(ctx, s, e.resolveKey(s, key), m, modeUpdate)
}

// Delete удаляет экземпляр и затем его файлы вложений.
// Ошибка удаления файла не отменяет удаление записи: файл убирает сборщик.
func (e *Engine) Delete(ctx context.Context, s *model.Schema, key string) (model.Fields, error) {
	key = e.resolveKey(s, key)
	if err := repository.ValidateKey(key); err != nil {
		return nil, storeError(err)
	}

	unlock, err := e.locks.acquire(ctx, lockKey(s, key))
	if err != nil {
		return nil, err
	}
	defer unlock()

	current, err := e.store.Fetch(ctx, s, key)
	if err != nil {
		return nil, storeError(err)
	}

	n, err := e.store.Delete(ctx, s, key)
	if err != nil {
		return nil, storeError(err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	scope := newStagingScope(e.files, s.Resource, e.logger)
	for _, ref := range s.References(current) {
		scope.supersede(ref)
	}
	scope.commit()
	scope.close()

	e.logger.Debug("Экземпляр удалён",
		slog.String("resource", s.Resource),
		slog.String("key", key),
	)
	return current, nil
}

// apply — общая реализация Create и Update.
func (e *Engine) apply(ctx context.Context, s *model.Schema, key string, m Mutation, mode applyMode) (Result, error) {
	if err := repository.ValidateKey(key); err != nil {
		return Result{}, storeError(err)
	}
	delta, err := s.ValidateDelta(m.Delta)
	if err != nil {
		return Result{}, validationError(err)
	}
	if err := checkAttachments(s, m.Attachments); err != nil {
		return Result{}, err
	}

	unlock, err := e.locks.acquire(ctx, lockKey(s, key))
	if err != nil {
		return Result{}, err
	}
	defer unlock()

	current, err := e.store.Fetch(ctx, s, key)
	create := false
	switch {
	case err == nil:
		if mode == modeCreate {
			return Result{}, ErrConflict
		}
	case errors.Is(err, repository.ErrNotFound):
		if mode == modeUpdate && s.Cardinality != model.Singleton {
			return Result{}, ErrNotFound
		}
		create = true
		current = nil
	default:
		return Result{}, storeError(err)
	}

	if m.Compute != nil {
		raw, err := m.Compute(current)
		if err != nil {
			return Result{}, err
		}
		computed, err := s.ValidateDelta(raw)
		if err != nil {
			return Result{}, validationError(err)
		}
		for k, v := range computed {
			delta[k] = v
		}
	}

	now := e.now()
	if prev, ok := current[s.UpdatedAt].(time.Time); ok && !now.After(prev) {
		now = prev.Add(time.Microsecond)
	}

	changes := make(model.Fields, len(delta)+len(m.Set)+len(m.Attachments)+2)
	for k, v := range delta {
		changes[k] = v
	}
	for k, v := range m.Set {
		changes[k] = v
	}
	changes[s.UpdatedAt] = now

	var fields model.Fields
	if create {
		fields = s.NewDefaults()
		for k, v := range changes {
			fields[k] = v
		}
		fields[s.CreatedAt] = now
		if err := model.RequirePresent(fields, requiredFields(s)...); err != nil {
			return Result{}, validationError(err)
		}
	}

	scope := newStagingScope(e.files, s.Resource, e.logger)
	defer scope.close()

	for _, field := range sortedKeys(m.Attachments) {
		slot, _ := s.Slot(field)
		ref, err := scope.stage(slot, key, m.Attachments[field])
		if err != nil {
			return Result{}, fileError(err)
		}
		if create {
			fields[field] = ref
		} else {
			changes[field] = ref
			if old, ok := current[field].(string); ok {
				scope.supersede(old)
			}
		}
	}

	var rec model.Fields
	if create {
		rec, err = e.store.Insert(ctx, s, key, fields)
	} else {
		rec, err = e.store.PartialSet(ctx, s, key, changes)
	}
	if err != nil {
		e.logger.Warn("Запись экземпляра не выполнена, новые вложения будут удалены",
			slog.String("resource", s.Resource),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		if errors.Is(err, repository.ErrConflict) {
			return Result{}, ErrConflict
		}
		// Экземпляр исчез между чтением и записью — это тоже ошибка записи
		return Result{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	scope.commit()

	e.logger.Debug("Экземпляр сохранён",
		slog.String("resource", s.Resource),
		slog.String("key", key),
		slog.Bool("created", create),
		slog.Int("attachments", len(m.Attachments)),
	)
	return Result{Record: rec, Created: create}, nil
}

// resolveKey подставляет фиксированный ключ для singleton-ресурсов.
func (e *Engine) resolveKey(s *model.Schema, key string) string {
	if s.Cardinality == model.Singleton {
		return s.SingletonKey
	}
	return key
}

// checkAttachments проверяет слоты, размер и MIME-типы вложений до записи файлов.
func checkAttachments(s *model.Schema, atts map[string]attachment.Payload) error {
	for field, p := range atts {
		slot, ok := s.Slot(field)
		if !ok {
			return validationError(&model.FieldError{Field: field, Code: model.CodeUnknownSlot, Reason: "неизвестный слот вложения"})
		}
		if p.Size() == 0 {
			return validationError(&model.FieldError{Field: slot.Part, Code: model.CodeEmptyFile, Reason: "пустой файл"})
		}
		if s.MaxPayload > 0 && p.Size() > s.MaxPayload {
			return fmt.Errorf("%w: %s: %d байт при лимите %d", ErrPayloadTooLarge, slot.Part, p.Size(), s.MaxPayload)
		}
		if !slot.Accepts(p.ContentType) {
			return validationError(&model.FieldError{
				Field:   slot.Part,
				Code:    model.CodeContentType,
				Reason:  fmt.Sprintf("недопустимый тип файла %q", p.ContentType),
				Allowed: slot.AllowedTypes,
			})
		}
	}
	return nil
}

// requiredFields возвращает обязательные поля схемы.
func requiredFields(s *model.Schema) []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

func lockKey(s *model.Schema, key string) string {
	return s.Resource + "/" + key
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
