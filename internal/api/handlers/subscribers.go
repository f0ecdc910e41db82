// subscribers.go — обработчики /subscribers endpoints.
package handlers

import (
	"net/http"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/api/generated"
)

const resourceSubscriber = "Subscriber"

// ListSubscribers — GET /subscribers.
func (h *APIHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.subscribers.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, resourceSubscriber)
		return
	}
	writeSuccess(w, http.StatusOK, "Subscribers fetched successfully", subs)
}

// GetSubscriber — GET /subscribers/{id}.
func (h *APIHandler) GetSubscriber(w http.ResponseWriter, r *http.Request, id generated.SubscriberId) {
	sub, err := h.subscribers.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, resourceSubscriber)
		return
	}
	writeSuccess(w, http.StatusOK, "Subscriber fetched successfully", sub)
}

// CreateSubscriber — POST /subscribers.
func (h *APIHandler) CreateSubscriber(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeJSONBody(w, r)
	if err != nil {
		h.writeServiceError(w, r, err, resourceSubscriber)
		return
	}
	sub, err := h.subscribers.Create(r.Context(), fields)
	if err != nil {
		h.writeServiceError(w, r, err, resourceSubscriber)
		return
	}
	writeSuccess(w, http.StatusCreated, "Subscribed successfully", sub)
}

// UpdateSubscriber — PUT /subscribers/{id}.
func (h *APIHandler) UpdateSubscriber(w http.ResponseWriter, r *http.Request, id generated.SubscriberId) {
	fields, err := decodeJSONBody(w, r)
	if err != nil {
		h.writeServiceError(w, r, err, resourceSubscriber)
		return
	}
	sub, err := h.subscribers.Update(r.Context(), id, fields)
	if err != nil {
		h.writeServiceError(w, r, err, resourceSubscriber)
		return
	}
	writeSuccess(w, http.StatusOK, "Subscriber updated successfully", sub)
}

// ToggleSubscriber — PATCH /subscribers/{id}/toggle.
func (h *APIHandler) ToggleSubscriber(w http.ResponseWriter, r *http.Request, id generated.SubscriberId) {
	sub, err := h.subscribers.Toggle(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, resourceSubscriber)
		return
	}
	status := "deactivated"
	if active, _ := sub["is_active"].(bool); active {
		status = "activated"
	}
	writeSuccess(w, http.StatusOK, "Subscription "+status+" successfully", sub)
}

// DeleteSubscriber — DELETE /subscribers/{id}.
func (h *APIHandler) DeleteSubscriber(w http.ResponseWriter, r *http.Request, id generated.SubscriberId) {
	if _, err := h.subscribers.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, resourceSubscriber)
		return
	}
	writeSuccess(w, http.StatusOK, "Subscriber deleted successfully", nil)
}

// GetSubscriberStats — GET /subscribers/stats/summary.
func (h *APIHandler) GetSubscriberStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.subscribers.Stats(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, resourceSubscriber)
		return
	}
	writeSuccess(w, http.StatusOK, "Statistics fetched successfully", stats)
}
