// site_settings.go — сервис настроек сайта (singleton).
// Чтения обслуживаются через LRU-кэш с TTL; любая запись инвалидирует кэш.
// Чтение, начатое до записи, не кладёт в кэш устаревшее значение: запись
// увеличивает поколение кэша, а чтение кэширует результат только при
// неизменном поколении.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
)

// Prometheus-метрики кэша настроек.
var (
	settingsCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sm_settings_cache_hits_total",
		Help: "Общее количество попаданий в кэш настроек сайта.",
	})
	settingsCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sm_settings_cache_misses_total",
		Help: "Общее количество промахов кэша настроек сайта.",
	})
)

// Поля статуса сайта.
const (
	fieldMaintenanceMode    = "maintenance_mode"
	fieldAllowRegistrations = "allow_registrations"
)

// seoFields — поля настроек, отдаваемые для SEO.
var seoFields = []string{"site_name", "site_description", "site_url", "contact_email"}

// SiteStatus — режим обслуживания и регистрация.
type SiteStatus struct {
	MaintenanceMode    bool `json:"maintenance_mode"`
	AllowRegistrations bool `json:"allow_registrations"`
}

// cachedSettings — запись кэша; found == false кэширует отсутствие настроек.
type cachedSettings struct {
	rec   model.Fields
	found bool
}

// SiteSettingsService — сервис настроек сайта.
type SiteSettingsService struct {
	engine *Engine
	schema *model.Schema
	cache  *expirable.LRU[string, cachedSettings]
	logger *slog.Logger

	// mu защищает generation и связку «проверка поколения + Add»
	mu         sync.Mutex
	generation uint64
}

// NewSiteSettingsService создаёт сервис настроек.
// ttl — время жизни записи кэша; 0 отключает истечение по времени.
func NewSiteSettingsService(engine *Engine, schema *model.Schema, ttl time.Duration, logger *slog.Logger) *SiteSettingsService {
	return &SiteSettingsService{
		engine: engine,
		schema: schema,
		cache:  expirable.NewLRU[string, cachedSettings](1, nil, ttl),
		logger: logger.With(slog.String("service", "site_settings")),
	}
}

// Schema возвращает схему ресурса.
func (s *SiteSettingsService) Schema() *model.Schema {
	return s.schema
}

// Get возвращает сохранённые настройки; found == false, если их нет.
func (s *SiteSettingsService) Get(ctx context.Context) (model.Fields, bool, error) {
	if c, ok := s.cache.Get(s.schema.SingletonKey); ok {
		settingsCacheHitsTotal.Inc()
		return c.rec.Clone(), c.found, nil
	}
	settingsCacheMissesTotal.Inc()

	gen := s.currentGeneration()
	rec, err := s.engine.Get(ctx, s.schema, s.schema.SingletonKey)
	switch {
	case errors.Is(err, ErrNotFound):
		s.cacheIfCurrent(gen, cachedSettings{})
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	s.cacheIfCurrent(gen, cachedSettings{rec: rec.Clone(), found: true})
	return rec, true, nil
}

func (s *SiteSettingsService) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// cacheIfCurrent кэширует прочитанное значение, если с момента чтения не было записи.
func (s *SiteSettingsService) cacheIfCurrent(gen uint64, c cachedSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return
	}
	s.cache.Add(s.schema.SingletonKey, c)
}

// invalidate сбрасывает кэш и отбраковывает незавершённые чтения.
func (s *SiteSettingsService) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.cache.Purge()
}

// Effective возвращает сохранённые настройки или значения по умолчанию.
func (s *SiteSettingsService) Effective(ctx context.Context) (model.Fields, bool, error) {
	rec, found, err := s.Get(ctx)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return model.DefaultSiteSettings(), false, nil
	}
	return rec, true, nil
}

// Replace сохраняет настройки целиком: текстовые поля обязательны.
func (s *SiteSettingsService) Replace(ctx context.Context, delta map[string]any) (Result, error) {
	if err := model.RequirePresent(model.Fields(delta), seoFields...); err != nil {
		return Result{}, validationError(err)
	}
	return s.write(ctx, delta)
}

// Patch обновляет переданные поля; отсутствующие настройки создаются
// из значений по умолчанию.
func (s *SiteSettingsService) Patch(ctx context.Context, delta map[string]any) (Result, error) {
	return s.write(ctx, delta)
}

// UpdateStatus обновляет только maintenance_mode и allow_registrations.
func (s *SiteSettingsService) UpdateStatus(ctx context.Context, delta map[string]any) (Result, error) {
	status := make(map[string]any, 2)
	for _, name := range []string{fieldMaintenanceMode, fieldAllowRegistrations} {
		if v, ok := delta[name]; ok {
			status[name] = v
		}
	}
	if len(status) == 0 {
		return Result{}, validationError(&model.FieldError{
			Field:   fieldMaintenanceMode,
			Code:    model.CodeRequired,
			Reason:  "требуется maintenance_mode или allow_registrations",
			Allowed: []string{fieldMaintenanceMode, fieldAllowRegistrations},
		})
	}
	return s.write(ctx, status)
}

// Status возвращает режим обслуживания и регистрации.
func (s *SiteSettingsService) Status(ctx context.Context) (SiteStatus, error) {
	rec, _, err := s.Effective(ctx)
	if err != nil {
		return SiteStatus{}, err
	}
	maintenance, _ := rec[fieldMaintenanceMode].(bool)
	registrations, _ := rec[fieldAllowRegistrations].(bool)
	return SiteStatus{MaintenanceMode: maintenance, AllowRegistrations: registrations}, nil
}

// Reset возвращает настройки к значениям по умолчанию.
func (s *SiteSettingsService) Reset(ctx context.Context) (Result, error) {
	res, err := s.write(ctx, model.DefaultSiteSettings())
	if err != nil {
		return Result{}, err
	}
	s.logger.Info("Настройки сброшены к значениям по умолчанию")
	return res, nil
}

// Delete удаляет настройки. Повторное удаление — ErrNotFound.
func (s *SiteSettingsService) Delete(ctx context.Context) (model.Fields, error) {
	defer s.invalidate()
	rec, err := s.engine.Delete(ctx, s.schema, s.schema.SingletonKey)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Настройки удалены")
	return rec, nil
}

// SEO возвращает поля настроек для SEO-метаданных.
func (s *SiteSettingsService) SEO(ctx context.Context) (model.Fields, error) {
	rec, _, err := s.Effective(ctx)
	if err != nil {
		return nil, err
	}
	out := make(model.Fields, len(seoFields))
	for _, name := range seoFields {
		out[name] = rec[name]
	}
	return out, nil
}

// write выполняет upsert через Engine и инвалидирует кэш.
func (s *SiteSettingsService) write(ctx context.Context, delta map[string]any) (Result, error) {
	defer s.invalidate()
	res, err := s.engine.Update(ctx, s.schema, s.schema.SingletonKey, Mutation{Delta: delta})
	if err != nil {
		return Result{}, err
	}
	s.logger.Info("Настройки сохранены", slog.Bool("created", res.Created))
	return res, nil
}
