// openapi.go — GET {APIPrefix}/openapi.json: встроенный контракт API.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	apierrors "github.com/moshiurrahmandeap11/backbencher-Server/internal/api/errors"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/api/generated"
)

// loadSpec загружает встроенную спецификацию и подставляет фактический префикс API.
func loadSpec(apiPrefix string) (*openapi3.T, error) {
	spec, err := generated.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("загрузка OpenAPI-спецификации: %w", err)
	}
	if apiPrefix != "" {
		spec.Servers = openapi3.Servers{{URL: apiPrefix}}
	}
	return spec, nil
}

// GetOpenAPISpec — контракт API в формате JSON.
func (h *APIHandler) GetOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	spec, err := h.spec()
	if err != nil {
		h.logError(r, err, "OpenAPI")
		apierrors.InternalError(w, "Failed to load API specification")
		return
	}
	writeJSON(w, http.StatusOK, spec)
}
