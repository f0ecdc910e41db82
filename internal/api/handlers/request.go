// request.go — разбор тела запроса: JSON, multipart/form-data, urlencoded.
// Файлы multipart сопоставляются слотам схемы по имени части формы.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/service"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/storage/attachment"
)

const (
	// maxJSONBody — лимит тела JSON-запроса.
	maxJSONBody = 1 << 20
	// multipartMemory — часть multipart-формы, хранимая в памяти.
	multipartMemory = 8 << 20
)

// mutationRequest — поля и файлы из тела запроса.
type mutationRequest struct {
	Fields map[string]any
	// Files — вложения по имени поля слота
	Files map[string]attachment.Payload
}

// parseMutation разбирает тело запроса для ресурса со схемой s.
// Ошибки оборачивают service.ErrValidation или service.ErrPayloadTooLarge.
func (h *APIHandler) parseMutation(w http.ResponseWriter, r *http.Request, s *model.Schema) (mutationRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		return h.parseMultipart(w, r, s)
	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
		if err := r.ParseForm(); err != nil {
			return mutationRequest{}, bodyError(err)
		}
		fields := make(map[string]any, len(r.PostForm))
		for name, values := range r.PostForm {
			if len(values) > 0 {
				fields[name] = values[0]
			}
		}
		return mutationRequest{Fields: fields}, nil
	default:
		fields, err := decodeJSONBody(w, r)
		if err != nil {
			return mutationRequest{}, err
		}
		return mutationRequest{Fields: fields}, nil
	}
}

// parseMultipart читает текстовые поля и файлы слотов.
// Части с неизвестными именами игнорируются.
func (h *APIHandler) parseMultipart(w http.ResponseWriter, r *http.Request, s *model.Schema) (mutationRequest, error) {
	limit := h.opts.MaxUploadSize*int64(max(len(s.Slots), 1)) + maxJSONBody
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return mutationRequest{}, bodyError(err)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	req := mutationRequest{
		Fields: make(map[string]any, len(r.MultipartForm.Value)),
		Files:  make(map[string]attachment.Payload),
	}
	for name, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			req.Fields[name] = values[0]
		}
	}
	for part, headers := range r.MultipartForm.File {
		slot, ok := s.SlotByPart(part)
		if !ok || len(headers) == 0 {
			continue
		}
		p, err := h.readFile(headers[0])
		if err != nil {
			return mutationRequest{}, err
		}
		req.Files[slot.Field] = p
	}
	return req, nil
}

// readFile буферизует файл части формы не больше MaxUploadSize байт.
func (h *APIHandler) readFile(fh *multipart.FileHeader) (attachment.Payload, error) {
	if fh.Size > h.opts.MaxUploadSize {
		return attachment.Payload{}, fmt.Errorf("%w: %s: %d байт", service.ErrPayloadTooLarge, fh.Filename, fh.Size)
	}
	f, err := fh.Open()
	if err != nil {
		return attachment.Payload{}, fmt.Errorf("%w: чтение файла %s: %w", service.ErrValidation, fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.opts.MaxUploadSize+1))
	if err != nil {
		return attachment.Payload{}, fmt.Errorf("%w: чтение файла %s: %w", service.ErrValidation, fh.Filename, err)
	}
	if int64(len(data)) > h.opts.MaxUploadSize {
		return attachment.Payload{}, fmt.Errorf("%w: %s", service.ErrPayloadTooLarge, fh.Filename)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return attachment.Payload{Filename: fh.Filename, ContentType: contentType, Data: data}, nil
}

// decodeJSONBody декодирует JSON-объект; пустое тело — пустая дельта.
// Числа сохраняются как json.Number для точного приведения к int.
func decodeJSONBody(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		return nil, bodyError(err)
	}
	fields := make(map[string]any)
	if len(bytes.TrimSpace(body)) == 0 {
		return fields, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: некорректный JSON: %w", service.ErrValidation, err)
	}
	return fields, nil
}

// bodyError переводит ошибку чтения тела в ошибку сервисного слоя.
func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: тело запроса больше %d байт", service.ErrPayloadTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: некорректное тело запроса: %w", service.ErrValidation, err)
}
