// users.go — обработчики /users endpoints.
// Профили пользователей: список, получение, создание, частичное и полное
// обновление, lastLogin, privacySettings, удаление.
package handlers

import (
	"net/http"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/api/generated"
)

const resourceUser = "User"

// ListUsers — GET /users.
func (h *APIHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, resourceUser)
		return
	}
	writeSuccess(w, http.StatusOK, "Users fetched successfully", users)
}

// GetUser — GET /users/{uid}.
func (h *APIHandler) GetUser(w http.ResponseWriter, r *http.Request, uid generated.UserUid) {
	user, err := h.users.Get(r.Context(), uid)
	if err != nil {
		h.writeServiceError(w, r, err, resourceUser)
		return
	}
	writeSuccess(w, http.StatusOK, "User fetched successfully", user)
}

// CreateUser — POST /users.
// uid, name и email обязательны; profileImage и coverPhoto — необязательные файлы.
func (h *APIHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseMutation(w, r, h.users.Schema())
	if err != nil {
		h.writeServiceError(w, r, err, resourceUser)
		return
	}
	uid, _ := req.Fields["uid"].(string)

	user, err := h.users.Create(r.Context(), uid, req.Fields, req.Files)
	if err != nil {
		h.writeServiceError(w, r, err, resourceUser)
		return
	}
	writeSuccess(w, http.StatusCreated, "User created successfully", user)
}

// PatchUser — PATCH /users/{uid}. Частичное обновление профиля и вложений.
func (h *APIHandler) PatchUser(w http.ResponseWriter, r *http.Request, uid generated.UserUid) {
	req, err := h.parseMutation(w, r, h.users.Schema())
	if err != nil {
		h.writeServiceError(w, r, err, resourceUser)
		return
	}

	user, err := h.users.Update(r.Context(), uid, req.Fields, req.Files)
	if err != nil {
		h.writeServiceError(w, r, err, resourceUser)
		return
	}
	writeSuccess(w, http.StatusOK, "User updated successfully", user)
}

// ReplaceUser — PUT /users/{uid}. Полная замена текстовой части профиля.
func (h *APIHandler) ReplaceUser(w http.ResponseWriter, r *http.Request, uid generated.UserUid) {
	req, err := h.parseMutation(w, r, h.users.Schema())
	if err != nil {
		h.writeServiceError(w, r, err, resourceUser)
		return
	}

	user, err := h.users.Replace(r.Context(), uid, req.Fields, req.Files)
	if err != nil {
		h.writeServiceError(w, r, err, resourceUser)
		return
	}
	writeSuccess(w, http.StatusOK, "User updated successfully", user)
}

// TouchLastLogin — PATCH /users/{uid}/last-login.
func (h *APIHandler) TouchLastLogin(w http.ResponseWriter, r *http.Request, uid generated.UserUid) {
	user, err := h.users.TouchLastLogin(r.Context(), uid)
	if err != nil {
		h.writeServiceError(w, r, err, resourceUser)
		return
	}
	writeSuccess(w, http.StatusOK, "Last login updated successfully", user)
}

// UpdatePrivacy — PATCH /users/{uid}/privacy.
func (h *APIHandler) UpdatePrivacy(w http.ResponseWriter, r *http.Request, uid generated.UserUid) {
	fields, err := decodeJSONBody(w, r)
	if err != nil {
		h.writeServiceError(w, r, err, resourceUser)
		return
	}

	user, err := h.users.UpdatePrivacy(r.Context(), uid, fields["privacySettings"])
	if err != nil {
		h.writeServiceError(w, r, err, resourceUser)
		return
	}
	writeSuccess(w, http.StatusOK, "Privacy settings updated", user)
}

// DeleteUser — DELETE /users/{uid}.
// Сообщение содержит оговорку, если пользователь не удалён в Identity Provider.
func (h *APIHandler) DeleteUser(w http.ResponseWriter, r *http.Request, uid generated.UserUid) {
	out, err := h.users.Delete(r.Context(), uid)
	if err != nil {
		h.writeServiceError(w, r, err, resourceUser)
		return
	}

	message := "User deleted successfully"
	if out.Advisory != nil {
		message = "User deleted locally; identity provider account was not removed"
	}
	writeSuccess(w, http.StatusOK, message, out.Record)
}
