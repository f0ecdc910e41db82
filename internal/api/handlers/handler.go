// handler.go — основной обработчик API, реализующий generated.ServerInterface.
// Объединяет доменные обработчики и делегирует запросы в сервисный слой.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	apierrors "github.com/moshiurrahmandeap11/backbencher-Server/internal/api/errors"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/api/generated"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/service"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/storage/attachment"
)

// Options — параметры обработчика API.
type Options struct {
	// MaxUploadSize — лимит одного файла вложения в байтах
	MaxUploadSize int64
	// Production — скрывать внутренние детали ошибок
	Production bool
	// APIPrefix — префикс ресурсных маршрутов, подставляется в servers контракта
	APIPrefix string
}

// APIHandler — основной обработчик API Site Module.
type APIHandler struct {
	health      *HealthHandler
	users       *service.UserService
	logo        *service.LogoService
	settings    *service.SiteSettingsService
	subscribers *service.SubscriberService
	files       *attachment.Store
	opts        Options
	spec        func() (*openapi3.T, error)
	logger      *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	health *HealthHandler,
	users *service.UserService,
	logo *service.LogoService,
	settings *service.SiteSettingsService,
	subscribers *service.SubscriberService,
	files *attachment.Store,
	opts Options,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		health:      health,
		users:       users,
		logo:        logo,
		settings:    settings,
		subscribers: subscribers,
		files:       files,
		opts:        opts,
		spec:        sync.OnceValues(func() (*openapi3.T, error) { return loadSpec(opts.APIPrefix) }),
		logger:      logger.With(slog.String("component", "api_handler")),
	}
}

// HealthLive — проверка liveness (делегируется в HealthHandler).
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — проверка readiness (делегируется в HealthHandler).
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики (делегируется в HealthHandler).
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeSuccess записывает успешный ответ в конверте {success, message, data}.
func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, generated.SuccessEnvelope{Success: true, Message: message, Data: data})
}

// writeServiceError переводит ошибку сервисного слоя в HTTP-ответ.
// resource — имя ресурса в сообщении ("User", "Logo", ...).
func (h *APIHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		apierrors.ValidationError(w, validationMessage(err))
	case errors.Is(err, service.ErrInvalidKey):
		apierrors.InvalidKey(w, "Invalid "+resource+" identifier")
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, resource+" not found")
	case errors.Is(err, service.ErrConflict):
		apierrors.Conflict(w, resource+" already exists")
	case errors.Is(err, service.ErrPayloadTooLarge):
		apierrors.PayloadTooLarge(w, fmt.Sprintf("File exceeds maximum size of %d bytes", h.opts.MaxUploadSize))
	case errors.Is(err, service.ErrIO):
		h.logError(r, err, resource)
		apierrors.IOFailure(w, h.detail("Failed to store attachment", err))
	case errors.Is(err, service.ErrPersistence):
		h.logError(r, err, resource)
		apierrors.PersistenceFailure(w, h.detail("Failed to save "+resource, err))
	default:
		h.logError(r, err, resource)
		apierrors.InternalError(w, h.detail("Internal server error", err))
	}
}

// detail добавляет текст ошибки к сообщению вне production.
func (h *APIHandler) detail(message string, err error) string {
	if h.opts.Production {
		return message
	}
	return message + ": " + err.Error()
}

func (h *APIHandler) logError(r *http.Request, err error, resource string) {
	h.logger.Error("Ошибка обработки запроса",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("resource", resource),
		slog.String("error", err.Error()),
	)
}

// handleParamError — ErrorHandlerFunc для ошибок разбора path-параметров.
func (h *APIHandler) handleParamError(w http.ResponseWriter, r *http.Request, err error) {
	var paramErr *generated.InvalidParamFormatError
	if errors.As(err, &paramErr) {
		apierrors.InvalidKey(w, fmt.Sprintf("Invalid path parameter %q", paramErr.ParamName))
		return
	}
	apierrors.ValidationError(w, "Invalid request parameters")
}

// validationMessage формирует публичное сообщение об ошибке валидации.
// Текст ошибки сервисного слоя в ответ не попадает.
func validationMessage(err error) string {
	var fe *model.FieldError
	if !errors.As(err, &fe) {
		return "Invalid request body"
	}
	return fmt.Sprintf("Invalid value for field %q: %s", fe.Field, fieldReason(fe))
}

// fieldReason — причина ошибки поля для ответа API.
func fieldReason(fe *model.FieldError) string {
	allowed := strings.Join(fe.Allowed, ", ")
	switch fe.Code {
	case model.CodeRequired:
		if allowed != "" {
			return "one of " + allowed + " is required"
		}
		return "field is required"
	case model.CodeNull:
		return "must not be null"
	case model.CodeEmpty:
		return "must not be empty"
	case model.CodeEnum:
		return "must be one of: " + allowed
	case model.CodeEmail:
		return "must be a valid email address"
	case model.CodeURL:
		return "must be a valid http:// or https:// URL"
	case model.CodeType:
		return "has an invalid type"
	case model.CodeJSONObject:
		return "must be a JSON object"
	case model.CodeUnknownSlot:
		return "is not an attachment field"
	case model.CodeEmptyFile:
		return "file is empty"
	case model.CodeFileRequired:
		return "file is required"
	case model.CodeContentType:
		if allowed != "" {
			return "file type must be one of: " + allowed
		}
		return "file type is not allowed"
	default:
		return "invalid value"
	}
}

var _ generated.ServerInterface = (*APIHandler)(nil)
