// logo.go — обработчики /logos endpoints (singleton-логотип).
package handlers

import (
	"net/http"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/storage/attachment"
)

const resourceLogo = "Logo"

// GetLogo — GET /logos. Отсутствие логотипа — 200 с data: null.
func (h *APIHandler) GetLogo(w http.ResponseWriter, r *http.Request) {
	logo, found, err := h.logo.Get(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, resourceLogo)
		return
	}
	if !found {
		writeSuccess(w, http.StatusOK, "No logo found", nil)
		return
	}
	writeSuccess(w, http.StatusOK, "Logo fetched successfully", logo)
}

// UploadLogo — POST /logos. Файл в части формы "logo".
// 201 при первой загрузке, 200 при замене.
func (h *APIHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseMutation(w, r, h.logo.Schema())
	if err != nil {
		h.writeServiceError(w, r, err, resourceLogo)
		return
	}

	var file *attachment.Payload
	if p, ok := req.Files["url"]; ok {
		file = &p
	}
	res, err := h.logo.Upload(r.Context(), file)
	if err != nil {
		h.writeServiceError(w, r, err, resourceLogo)
		return
	}

	if res.Created {
		writeSuccess(w, http.StatusCreated, "Logo uploaded successfully", res.Record)
		return
	}
	writeSuccess(w, http.StatusOK, "Logo replaced successfully", res.Record)
}

// DeleteLogo — DELETE /logos.
func (h *APIHandler) DeleteLogo(w http.ResponseWriter, r *http.Request) {
	if _, err := h.logo.Delete(r.Context()); err != nil {
		h.writeServiceError(w, r, err, resourceLogo)
		return
	}
	writeSuccess(w, http.StatusOK, "Logo deleted successfully", nil)
}

// GetLogoStats — GET /logos/stats.
func (h *APIHandler) GetLogoStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.logo.Stats(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, resourceLogo)
		return
	}
	writeSuccess(w, http.StatusOK, "Logo statistics fetched successfully", stats)
}
