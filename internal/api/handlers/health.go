// health.go — обработчики health endpoints Site Module.
// /health/live — проверка liveness (процесс жив)
// /health/ready — проверка readiness (хранилище записей + Keycloak, если настроен)
// /metrics — Prometheus метрики
package handlers

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/config"
)

// ReadinessChecker — интерфейс проверки готовности зависимости.
type ReadinessChecker interface {
	// CheckReady возвращает статус ("ok", "degraded", "fail") и сообщение.
	CheckReady() (status string, message string)
}

// Статусы проверок готовности.
const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusFail     = "fail"
	statusSkipped  = "skipped"
)

const serviceName = "site-module"

// dependency — зависимость, проверяемая при readiness.
type dependency struct {
	name    string
	checker ReadinessChecker
	// advisory — сбой зависимости понижает статус только до degraded
	advisory bool
}

// HealthHandler — обработчик health endpoints.
type HealthHandler struct {
	deps        []dependency
	promHandler http.Handler
}

// NewHealthHandler создаёт обработчик health endpoints.
// storeChecker — хранилище записей, без него сервис не готов.
// kcChecker — Keycloak; nil означает, что интеграция не настроена.
func NewHealthHandler(storeChecker, kcChecker ReadinessChecker) *HealthHandler {
	return &HealthHandler{
		deps: []dependency{
			{name: "record_store", checker: storeChecker},
			{name: "keycloak", checker: kcChecker, advisory: true},
		},
		promHandler: promhttp.Handler(),
	}
}

// healthCheckResult — результат проверки одной зависимости.
type healthCheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// healthResponse — ответ проверок liveness и readiness.
type healthResponse struct {
	Status    string                       `json:"status"`
	Timestamp string                       `json:"timestamp"`
	Version   string                       `json:"version"`
	Service   string                       `json:"service"`
	Checks    map[string]healthCheckResult `json:"checks,omitempty"`
}

func newHealthResponse() healthResponse {
	return healthResponse{
		Status:    statusOK,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   serviceName,
	}
}

// HealthLive — проверка liveness. 200, пока процесс отвечает.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newHealthResponse())
}

// HealthReady — проверка readiness: 200 для ok и degraded, 503 для fail.
func (h *HealthHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	resp := newHealthResponse()
	resp.Checks = make(map[string]healthCheckResult, len(h.deps))

	effective := make([]string, 0, len(h.deps))
	for _, d := range h.deps {
		result := d.check()
		resp.Checks[d.name] = result

		status := result.Status
		if d.advisory && status == statusFail {
			status = statusDegraded
		}
		effective = append(effective, status)
	}
	resp.Status = overallStatus(effective...)

	code := http.StatusOK
	if resp.Status == statusFail {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

func (d dependency) check() healthCheckResult {
	if d.checker == nil {
		if d.advisory {
			return healthCheckResult{Status: statusSkipped, Message: "не настроен"}
		}
		return healthCheckResult{Status: statusFail, Message: "не инициализирован"}
	}
	status, msg := d.checker.CheckReady()
	return healthCheckResult{Status: status, Message: msg}
}

// GetMetrics — Prometheus метрики.
func (h *HealthHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.promHandler.ServeHTTP(w, r)
}

// overallStatus сворачивает статусы зависимостей: fail сильнее degraded,
// skipped не влияет на итог.
func overallStatus(statuses ...string) string {
	result := statusOK
	for _, s := range statuses {
		switch s {
		case statusFail:
			return statusFail
		case statusDegraded:
			result = statusDegraded
		}
	}
	return result
}
