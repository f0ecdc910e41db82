// site_settings.go — обработчики /site-settings и /seo endpoints.
package handlers

import (
	"net/http"
)

const resourceSettings = "Site settings"

// GetSiteSettings — GET /site-settings.
// Без сохранённых настроек возвращаются значения по умолчанию.
func (h *APIHandler) GetSiteSettings(w http.ResponseWriter, r *http.Request) {
	settings, found, err := h.settings.Effective(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, resourceSettings)
		return
	}
	message := "Site settings fetched successfully"
	if !found {
		message = "Default site settings"
	}
	writeSuccess(w, http.StatusOK, message, settings)
}

// ReplaceSiteSettings — PUT /site-settings.
func (h *APIHandler) ReplaceSiteSettings(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeJSONBody(w, r)
	if err != nil {
		h.writeServiceError(w, r, err, resourceSettings)
		return
	}
	res, err := h.settings.Replace(r.Context(), fields)
	if err != nil {
		h.writeServiceError(w, r, err, resourceSettings)
		return
	}
	writeSuccess(w, http.StatusOK, "Site settings updated successfully", res.Record)
}

// PatchSiteSettings — PATCH /site-settings.
func (h *APIHandler) PatchSiteSettings(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeJSONBody(w, r)
	if err != nil {
		h.writeServiceError(w, r, err, resourceSettings)
		return
	}
	res, err := h.settings.Patch(r.Context(), fields)
	if err != nil {
		h.writeServiceError(w, r, err, resourceSettings)
		return
	}
	writeSuccess(w, http.StatusOK, "Site settings updated successfully", res.Record)
}

// UpdateSiteStatus — PATCH /site-settings/status.
func (h *APIHandler) UpdateSiteStatus(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeJSONBody(w, r)
	if err != nil {
		h.writeServiceError(w, r, err, resourceSettings)
		return
	}
	res, err := h.settings.UpdateStatus(r.Context(), fields)
	if err != nil {
		h.writeServiceError(w, r, err, resourceSettings)
		return
	}
	writeSuccess(w, http.StatusOK, "Site status updated successfully", res.Record)
}

// GetSiteStatus — GET /site-settings/status.
func (h *APIHandler) GetSiteStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.settings.Status(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, resourceSettings)
		return
	}
	writeSuccess(w, http.StatusOK, "Site status fetched successfully", status)
}

// GetMaintenanceStatus — GET /site-settings/maintenance-status.
func (h *APIHandler) GetMaintenanceStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.settings.Status(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, resourceSettings)
		return
	}
	writeSuccess(w, http.StatusOK, "Maintenance status fetched successfully", map[string]bool{
		"maintenance_mode": status.MaintenanceMode,
	})
}

// ResetSiteSettings — POST /site-settings/reset.
func (h *APIHandler) ResetSiteSettings(w http.ResponseWriter, r *http.Request) {
	res, err := h.settings.Reset(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, resourceSettings)
		return
	}
	writeSuccess(w, http.StatusOK, "Site settings reset to default", res.Record)
}

// DeleteSiteSettings — DELETE /site-settings.
func (h *APIHandler) DeleteSiteSettings(w http.ResponseWriter, r *http.Request) {
	if _, err := h.settings.Delete(r.Context()); err != nil {
		h.writeServiceError(w, r, err, resourceSettings)
		return
	}
	writeSuccess(w, http.StatusOK, "Site settings deleted successfully", nil)
}

// GetSEO — GET /seo.
func (h *APIHandler) GetSEO(w http.ResponseWriter, r *http.Request) {
	seo, err := h.settings.SEO(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, resourceSettings)
		return
	}
	writeSuccess(w, http.StatusOK, "SEO settings fetched successfully", seo)
}
