// routes.go — монтирование маршрутов Site Module.
// Ресурсные маршруты берутся из generated.HandlerWithOptions (api/openapi.yaml),
// служебные (health, metrics, вложения, контракт) регистрируются здесь.
package handlers

import (
	"github.com/go-chi/chi/v5"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/api/generated"
)

// RouteOptions — префиксы, под которыми монтируются маршруты.
type RouteOptions struct {
	// APIPrefix — префикс ресурсных маршрутов, например /bb/v1
	APIPrefix string
	// UploadURLPrefix — префикс раздачи файлов вложений, например /uploads
	UploadURLPrefix string
}

// HandlerFromMux регистрирует все маршруты APIHandler на роутере.
func HandlerFromMux(h *APIHandler, r chi.Router, opts RouteOptions) {
	r.Get("/health/live", h.HealthLive)
	r.Get("/health/ready", h.HealthReady)
	r.Get("/metrics", h.GetMetrics)
	r.Get(opts.UploadURLPrefix+"/*", h.ServeUpload)
	r.Get(opts.APIPrefix+"/openapi.json", h.GetOpenAPISpec)

	generated.HandlerWithOptions(h, generated.ChiServerOptions{
		BaseURL:          opts.APIPrefix,
		BaseRouter:       r,
		ErrorHandlerFunc: h.handleParamError,
	})
}
