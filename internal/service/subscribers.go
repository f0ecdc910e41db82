// subscribers.go — сервис подписчиков рассылки.
// Email уникален среди подписчиков: проверка выполняется под мьютексом сервиса
// для бэкендов без уникального индекса (redis, memory).
package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/repository"
)

// recentWindow — окно «новых» подписчиков в статистике.
const recentWindow = 7 * 24 * time.Hour

// SubscriberStats — сводная статистика подписчиков.
type SubscriberStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Recent   int `json:"recent"`
}

// SubscriberService — сервис подписчиков.
type SubscriberService struct {
	engine *Engine
	schema *model.Schema
	logger *slog.Logger

	emailMu sync.Mutex // сериализует изменения email
}

// NewSubscriberService создаёт сервис подписчиков.
func NewSubscriberService(engine *Engine, schema *model.Schema, logger *slog.Logger) *SubscriberService {
	return &SubscriberService{
		engine: engine,
		schema: schema,
		logger: logger.With(slog.String("service", "subscribers")),
	}
}

// Schema возвращает схему ресурса.
func (s *SubscriberService) Schema() *model.Schema {
	return s.schema
}

// List возвращает подписчиков, новые первыми.
func (s *SubscriberService) List(ctx context.Context) ([]model.Fields, error) {
	return s.engine.List(ctx, s.schema, repository.Order{Field: "subscribed_at", Desc: true})
}

// Get возвращает подписчика по id.
func (s *SubscriberService) Get(ctx context.Context, id string) (model.Fields, error) {
	return s.engine.Get(ctx, s.schema, id)
}

// Create добавляет подписчика. Повторный email — ErrConflict.
func (s *SubscriberService) Create(ctx context.Context, delta map[string]any) (model.Fields, error) {
	delta = normalizeEmail(delta)
	if err := model.RequirePresent(model.Fields(delta), "email"); err != nil {
		return nil, validationError(err)
	}

	s.emailMu.Lock()
	defer s.emailMu.Unlock()

	if err := s.checkEmailFree(ctx, "", delta["email"]); err != nil {
		return nil, err
	}
	id := uuid.New().String()
	res, err := s.engine.Create(ctx, s.schema, id, Mutation{Delta: delta})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Подписчик добавлен", slog.String("id", id))
	return res.Record, nil
}

// Update частично обновляет подписчика.
func (s *SubscriberService) Update(ctx context.Context, id string, delta map[string]any) (model.Fields, error) {
	delta = normalizeEmail(delta)
	if email, ok := delta["email"]; ok {
		s.emailMu.Lock()
		defer s.emailMu.Unlock()
		if err := s.checkEmailFree(ctx, id, email); err != nil {
			return nil, err
		}
	}
	res, err := s.engine.Update(ctx, s.schema, id, Mutation{Delta: delta})
	if err != nil {
		return nil, err
	}
	return res.Record, nil
}

// Toggle инвертирует is_active под блокировкой ключа.
func (s *SubscriberService) Toggle(ctx context.Context, id string) (model.Fields, error) {
	res, err := s.engine.Update(ctx, s.schema, id, Mutation{
		Compute: func(current model.Fields) (map[string]any, error) {
			active, _ := current["is_active"].(bool)
			return map[string]any{"is_active": !active}, nil
		},
	})
	if err != nil {
		return nil, err
	}
	return res.Record, nil
}

// Delete удаляет подписчика.
func (s *SubscriberService) Delete(ctx context.Context, id string) (model.Fields, error) {
	rec, err := s.engine.Delete(ctx, s.schema, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Подписчик удалён", slog.String("id", id))
	return rec, nil
}

// Stats возвращает сводную статистику.
func (s *SubscriberService) Stats(ctx context.Context) (SubscriberStats, error) {
	recs, err := s.engine.List(ctx, s.schema, repository.Order{})
	if err != nil {
		return SubscriberStats{}, err
	}
	since := s.engine.now().Add(-recentWindow)
	stats := SubscriberStats{Total: len(recs)}
	for _, rec := range recs {
		if active, _ := rec["is_active"].(bool); active {
			stats.Active++
		} else {
			stats.Inactive++
		}
		if ts, ok := rec["subscribed_at"].(time.Time); ok && !ts.Before(since) {
			stats.Recent++
		}
	}
	return stats, nil
}

// checkEmailFree проверяет, что email не занят другим подписчиком.
func (s *SubscriberService) checkEmailFree(ctx context.Context, selfID string, email any) error {
	addr, ok := email.(string)
	if !ok || addr == "" {
		return nil
	}
	recs, err := s.engine.List(ctx, s.schema, repository.Order{})
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if rec.String("email") == addr && rec.String("id") != selfID {
			return ErrConflict
		}
	}
	return nil
}

// normalizeEmail приводит email к нижнему регистру без пробелов.
func normalizeEmail(delta map[string]any) map[string]any {
	email, ok := delta["email"].(string)
	if !ok {
		return delta
	}
	out := make(map[string]any, len(delta))
	for k, v := range delta {
		out[k] = v
	}
	out["email"] = strings.ToLower(strings.TrimSpace(email))
	return out
}
