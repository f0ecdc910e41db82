// files.go — раздача файлов вложений: GET /uploads/*.
// Путь проверяется хранилищем вложений: выход за корень и symlink не раздаются.
package handlers

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/moshiurrahmandeap11/backbencher-Server/internal/api/errors"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/storage/attachment"
)

// ServeUpload — GET /uploads/*.
func (h *APIHandler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	ref := "/" + chi.URLParam(r, "*")

	f, info, err := h.files.Open(ref)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, attachment.ErrOutsideRoot) {
			apierrors.NotFound(w, "File not found")
			return
		}
		h.logger.Error("Ошибка открытия файла вложения",
			slog.String("ref", ref),
			slog.String("error", err.Error()),
		)
		apierrors.IOFailure(w, "Failed to read file")
		return
	}
	defer f.Close()

	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
