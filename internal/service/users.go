// users.go — сервис профилей пользователей.
// Изменения профиля и вложений (profileImage, coverPhoto) идут через Engine;
// удаление дополнительно удаляет пользователя в Identity Provider (рекомендательно).
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/keycloak"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/repository"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/storage/attachment"
)

// advisoryFailuresTotal — неуспешные рекомендательные вызовы внешних систем.
var advisoryFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sm_advisory_failures_total",
	Help: "Количество неуспешных рекомендательных вызовов внешних систем",
}, []string{"operation"})

// IdentityProvider — внешний провайдер идентичности, выдающий uid.
type IdentityProvider interface {
	DeleteUser(ctx context.Context, id string) error
}

// UserDeletion — результат удаления пользователя.
type UserDeletion struct {
	// Record — удалённый профиль
	Record model.Fields
	// Advisory — ошибка удаления в Identity Provider (ErrAdvisory), nil при успехе
	Advisory error
}

// UserService — сервис профилей пользователей.
type UserService struct {
	engine *Engine
	schema *model.Schema
	idp    IdentityProvider
	logger *slog.Logger
}

// NewUserService создаёт сервис пользователей.
// idp может быть nil, если Identity Provider не настроен.
func NewUserService(engine *Engine, schema *model.Schema, idp IdentityProvider, logger *slog.Logger) *UserService {
	return &UserService{
		engine: engine,
		schema: schema,
		idp:    idp,
		logger: logger.With(slog.String("service", "users")),
	}
}

// Schema возвращает схему ресурса.
func (s *UserService) Schema() *model.Schema {
	return s.schema
}

// List возвращает профили, новые первыми.
func (s *UserService) List(ctx context.Context) ([]model.Fields, error) {
	return s.engine.List(ctx, s.schema, repository.Order{Field: "createdAt", Desc: true})
}

// Get возвращает профиль по uid.
func (s *UserService) Get(ctx context.Context, uid string) (model.Fields, error) {
	return s.engine.Get(ctx, s.schema, uid)
}

// Create создаёт профиль. uid, name и email обязательны.
func (s *UserService) Create(ctx context.Context, uid string, delta map[string]any, files map[string]attachment.Payload) (model.Fields, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, validationError(&model.FieldError{Field: "uid", Code: model.CodeRequired, Reason: "обязательное поле"})
	}
	res, err := s.engine.Create(ctx, s.schema, uid, Mutation{Delta: delta, Attachments: files})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Профиль создан", slog.String("uid", uid))
	return res.Record, nil
}

// Update частично обновляет профиль и заменяет переданные вложения.
func (s *UserService) Update(ctx context.Context, uid string, delta map[string]any, files map[string]attachment.Payload) (model.Fields, error) {
	res, err := s.engine.Update(ctx, s.schema, uid, Mutation{Delta: delta, Attachments: files})
	if err != nil {
		return nil, err
	}
	return res.Record, nil
}

// Replace заменяет текстовую часть профиля: name и email обязательны,
// отсутствующие age и privacySettings сбрасываются.
func (s *UserService) Replace(ctx context.Context, uid string, delta map[string]any, files map[string]attachment.Payload) (model.Fields, error) {
	if err := model.RequirePresent(model.Fields(delta), "name", "email"); err != nil {
		return nil, validationError(err)
	}
	full := make(map[string]any, len(delta)+2)
	for k, v := range delta {
		full[k] = v
	}
	if _, ok := full["age"]; !ok {
		full["age"] = nil
	}
	if v, ok := full["privacySettings"]; !ok || v == nil {
		full["privacySettings"] = model.DefaultPrivacySettings()
	}
	return s.Update(ctx, uid, full, files)
}

// TouchLastLogin выставляет lastLogin в текущее время.
func (s *UserService) TouchLastLogin(ctx context.Context, uid string) (model.Fields, error) {
	res, err := s.engine.Update(ctx, s.schema, uid, Mutation{
		Set: model.Fields{"lastLogin": s.engine.now()},
	})
	if err != nil {
		return nil, err
	}
	return res.Record, nil
}

// UpdatePrivacy заменяет настройки приватности профиля.
func (s *UserService) UpdatePrivacy(ctx context.Context, uid string, privacy any) (model.Fields, error) {
	if privacy == nil {
		return nil, validationError(&model.FieldError{Field: "privacySettings", Code: model.CodeRequired, Reason: "обязательное поле"})
	}
	return s.Update(ctx, uid, map[string]any{"privacySettings": privacy}, nil)
}

// Delete удаляет профиль и его вложения, затем пользователя в Identity Provider.
// Ошибка Identity Provider не отменяет локальное удаление и возвращается в Advisory.
func (s *UserService) Delete(ctx context.Context, uid string) (UserDeletion, error) {
	rec, err := s.engine.Delete(ctx, s.schema, uid)
	if err != nil {
		return UserDeletion{}, err
	}
	out := UserDeletion{Record: rec}

	if s.idp == nil {
		out.Advisory = fmt.Errorf("%w: Identity Provider не настроен", ErrAdvisory)
		s.logger.Info("Профиль удалён", slog.String("uid", uid))
		return out, nil
	}

	// Отсутствие пользователя в Identity Provider считается успехом
	if err := s.idp.DeleteUser(ctx, uid); err != nil && !errors.Is(err, keycloak.ErrNotFound) {
		out.Advisory = fmt.Errorf("%w: %w", ErrAdvisory, err)
		advisoryFailuresTotal.WithLabelValues("idp_delete_user").Inc()
		s.logger.Warn("Пользователь не удалён в Identity Provider",
			slog.String("uid", uid),
			slog.String("error", err.Error()),
		)
	}
	s.logger.Info("Профиль удалён", slog.String("uid", uid))
	return out, nil
}
