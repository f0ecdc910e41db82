// logo.go — сервис логотипа сайта (singleton).
// Повторная загрузка заменяет файл существующего экземпляра.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/repository"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/storage/attachment"
)

// LogoStats — статистика логотипа.
type LogoStats struct {
	HasLogo    bool `json:"hasLogo"`
	TotalLogos int  `json:"totalLogos"`
}

// LogoService — сервис логотипа.
type LogoService struct {
	engine *Engine
	schema *model.Schema
	logger *slog.Logger
}

// NewLogoService создаёт сервис логотипа.
func NewLogoService(engine *Engine, schema *model.Schema, logger *slog.Logger) *LogoService {
	return &LogoService{
		engine: engine,
		schema: schema,
		logger: logger.With(slog.String("service", "logo")),
	}
}

// Schema возвращает схему ресурса.
func (s *LogoService) Schema() *model.Schema {
	return s.schema
}

// Upload создаёт логотип или заменяет файл существующего.
func (s *LogoService) Upload(ctx context.Context, file *attachment.Payload) (Result, error) {
	if file == nil {
		slot := s.schema.Slots[0]
		return Result{}, validationError(&model.FieldError{Field: slot.Part, Code: model.CodeFileRequired, Reason: "файл обязателен"})
	}
	res, err := s.engine.Update(ctx, s.schema, s.schema.SingletonKey, Mutation{
		Attachments: map[string]attachment.Payload{"url": *file},
	})
	if err != nil {
		return Result{}, err
	}
	s.logger.Info("Логотип загружен",
		slog.String("url", res.Record.String("url")),
		slog.Bool("created", res.Created),
	)
	return res, nil
}

// Get возвращает логотип; found == false, если логотип не загружен.
func (s *LogoService) Get(ctx context.Context) (model.Fields, bool, error) {
	rec, err := s.engine.Get(ctx, s.schema, s.schema.SingletonKey)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

// Delete удаляет логотип и его файл. Повторное удаление — ErrNotFound.
func (s *LogoService) Delete(ctx context.Context) (model.Fields, error) {
	rec, err := s.engine.Delete(ctx, s.schema, s.schema.SingletonKey)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Логотип удалён")
	return rec, nil
}

// Stats возвращает статистику логотипа.
func (s *LogoService) Stats(ctx context.Context) (LogoStats, error) {
	recs, err := s.engine.List(ctx, s.schema, repository.Order{})
	if err != nil {
		return LogoStats{}, err
	}
	return LogoStats{HasLogo: len(recs) > 0, TotalLogos: len(recs)}, nil
}
