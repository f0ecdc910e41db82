// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import (
	"errors"
	"fmt"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/repository"
)

var (
	// ErrNotFound — ресурс не найден.
	ErrNotFound = errors.New("ресурс не найден")
	// ErrConflict — конфликт (дублирующийся ресурс).
	ErrConflict = errors.New("конфликт — ресурс уже существует")
	// ErrValidation — ошибка валидации входных данных.
	ErrValidation = errors.New("ошибка валидации")
	// ErrInvalidKey — некорректный ключ идентичности.
	ErrInvalidKey = errors.New("некорректный ключ")
	// ErrPayloadTooLarge — вложение превышает лимит размера.
	ErrPayloadTooLarge = errors.New("вложение превышает допустимый размер")
	// ErrIO — ошибка записи или удаления файла вложения.
	ErrIO = errors.New("ошибка файлового хранилища")
	// ErrPersistence — ошибка хранилища записей.
	ErrPersistence = errors.New("ошибка хранилища записей")
	// ErrAdvisory — рекомендательный вызов внешней системы не выполнен.
	ErrAdvisory = errors.New("рекомендательная операция не выполнена")
)

// validationError оборачивает ошибку поля в ErrValidation.
func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

// storeError переводит ошибку хранилища записей в ошибку сервисного слоя.
func storeError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict
	case errors.Is(err, repository.ErrInvalidKey):
		return fmt.Errorf("%w: %w", ErrInvalidKey, err)
	case errors.Is(err, model.ErrValidation):
		return validationError(err)
	default:
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
}

// fileError переводит ошибку хранилища вложений в ошибку сервисного слоя.
func fileError(err error) error {
	return fmt.Errorf("%w: %w", ErrIO, err)
}
