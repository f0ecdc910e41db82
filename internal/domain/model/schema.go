// Пакет model — схемы ресурсов сайта и типизированная валидация
// частичных обновлений (field delta).
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrValidation — базовая ошибка валидации полей.
var ErrValidation = errors.New("validation failed")

// FieldErrorCode — машиночитаемая причина ошибки поля.
type FieldErrorCode string

const (
	CodeRequired     FieldErrorCode = "required"
	CodeNull         FieldErrorCode = "null"
	CodeEmpty        FieldErrorCode = "empty"
	CodeEnum         FieldErrorCode = "enum"
	CodeEmail        FieldErrorCode = "email"
	CodeURL          FieldErrorCode = "url"
	CodeType         FieldErrorCode = "type"
	CodeJSONObject   FieldErrorCode = "json_object"
	CodeUnknownSlot  FieldErrorCode = "unknown_slot"
	CodeEmptyFile    FieldErrorCode = "empty_file"
	CodeFileRequired FieldErrorCode = "file_required"
	CodeContentType  FieldErrorCode = "content_type"
)

// FieldError описывает ошибку валидации конкретного поля.
// Reason — текст для логов, публичное сообщение строится по Code.
type FieldError struct {
	Field  string
	Code   FieldErrorCode
	Reason string
	// Allowed — допустимые значения (CodeEnum, CodeContentType, CodeRequired для альтернатив)
	Allowed []string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("поле %q: %s", e.Field, e.Reason)
}

// Unwrap позволяет сравнивать ошибку с ErrValidation через errors.Is.
func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// Fields — экземпляр ресурса или дельта: имя поля API → значение.
// Значения приводятся к каноническим типам: string, int64, bool,
// time.Time (UTC), map[string]any или nil.
type Fields map[string]any

// Clone возвращает поверхностную копию.
func (f Fields) Clone() Fields {
	return maps.Clone(f)
}

// String возвращает строковое значение поля или пустую строку.
func (f Fields) String(name string) string {
	s, _ := f[name].(string)
	return s
}

// Kind — тип значения поля.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindTime
	KindJSON
)

// Format — формат строкового поля, проверяемый при обновлении.
type Format int

const (
	FormatNone Format = iota
	FormatEmail
	FormatURL
)

// Cardinality — число экземпляров ресурса.
type Cardinality int

const (
	// Many — произвольное число экземпляров (users, subscribers).
	Many Cardinality = iota
	// Singleton — не более одного экземпляра (logo, site settings).
	Singleton
)

// Field — описание поля ресурса.
type Field struct {
	// Name — имя поля в API
	Name string
	// Column — имя столбца в хранилище
	Column string
	Kind   Kind
	Format Format
	// Enum — допустимые значения (пусто — без ограничений)
	Enum []string
	// Updatable — поле можно менять через дельту
	Updatable bool
	// Required — поле не может быть пустым или null
	Required bool
}

// Slot — слот вложения. Значение поля Field — путь к файлу или nil.
type Slot struct {
	// Field — имя поля записи, хранящего ссылку
	Field string
	// Part — имя части multipart-формы
	Part string
	// Dir — подкаталог хранилища вложений
	Dir string
	// Discriminator — метка слота в имени файла
	Discriminator string
	// AllowedTypes — допустимые префиксы MIME-типа (пусто — любые)
	AllowedTypes []string
}

// Accepts сообщает, допустим ли MIME-тип для слота.
func (s Slot) Accepts(contentType string) bool {
	if len(s.AllowedTypes) == 0 {
		return true
	}
	for _, prefix := range s.AllowedTypes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}

// Schema — конфигурация ресурса.
type Schema struct {
	// Resource — имя ресурса (users, logo, site_settings, subscribers)
	Resource string
	// Table — таблица / коллекция
	Table string
	// Key — поле ключа идентичности
	Key Field
	// Fields — все поля, кроме ключа
	Fields []Field
	// Slots — слоты вложений
	Slots       []Slot
	Cardinality Cardinality
	// SingletonKey — фиксированный ключ единственного экземпляра
	SingletonKey string
	// CreatedAt, UpdatedAt — имена полей временных меток
	CreatedAt string
	UpdatedAt string
	// Defaults возвращает новые значения по умолчанию при создании
	Defaults func() Fields
	// MaxPayload — лимит размера одного вложения, байт
	MaxPayload int64
}

// Field возвращает описание поля по имени API (включая ключ).
func (s *Schema) Field(name string) (Field, bool) {
	if name == s.Key.Name {
		return s.Key, true
	}
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Slot возвращает слот по имени поля записи.
func (s *Schema) Slot(field string) (Slot, bool) {
	for _, sl := range s.Slots {
		if sl.Field == field {
			return sl, true
		}
	}
	return Slot{}, false
}

// SlotByPart возвращает слот по имени части multipart-формы.
func (s *Schema) SlotByPart(part string) (Slot, bool) {
	for _, sl := range s.Slots {
		if sl.Part == part {
			return sl, true
		}
	}
	return Slot{}, false
}

// AllFields возвращает ключ и все поля схемы.
func (s *Schema) AllFields() []Field {
	all := make([]Field, 0, len(s.Fields)+1)
	all = append(all, s.Key)
	return append(all, s.Fields...)
}

// NewDefaults возвращает значения по умолчанию: все поля nil,
// поверх — Defaults схемы.
func (s *Schema) NewDefaults() Fields {
	out := make(Fields, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Name] = nil
	}
	if s.Defaults != nil {
		maps.Copy(out, s.Defaults())
	}
	return out
}

// References возвращает непустые ссылки на вложения экземпляра.
func (s *Schema) References(rec Fields) []string {
	var refs []string
	for _, sl := range s.Slots {
		if ref, ok := rec[sl.Field].(string); ok && ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}

// ValidateDelta проверяет сырую дельту и возвращает типизированную.
// Неизвестные и неизменяемые поля отбрасываются без ошибки;
// значения приводятся к типу поля, формат и перечисления проверяются.
func (s *Schema) ValidateDelta(raw map[string]any) (Fields, error) {
	delta := make(Fields, len(raw))
	for name, value := range raw {
		f, ok := s.Field(name)
		if !ok || !f.Updatable {
			continue
		}
		v, err := f.Coerce(value)
		if err != nil {
			return nil, err
		}
		if err := f.Check(v); err != nil {
			return nil, err
		}
		delta[name] = v
	}
	return delta, nil
}

// RequirePresent проверяет, что перечисленные поля присутствуют и не пусты.
func RequirePresent(fields Fields, names ...string) error {
	for _, name := range names {
		v, ok := fields[name]
		if !ok || v == nil {
			return &FieldError{Field: name, Code: CodeRequired, Reason: "обязательное поле"}
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			return &FieldError{Field: name, Code: CodeRequired, Reason: "обязательное поле"}
		}
	}
	return nil
}

// Check проверяет приведённое значение на формат, перечисление и обязательность.
func (f Field) Check(v any) error {
	if v == nil {
		if f.Required {
			return &FieldError{Field: f.Name, Code: CodeNull, Reason: "не может быть null"}
		}
		return nil
	}
	s, isStr := v.(string)
	if !isStr {
		return nil
	}
	if f.Required && strings.TrimSpace(s) == "" {
		return &FieldError{Field: f.Name, Code: CodeEmpty, Reason: "не может быть пустым"}
	}
	if len(f.Enum) > 0 && !slices.Contains(f.Enum, s) {
		return &FieldError{
			Field:   f.Name,
			Code:    CodeEnum,
			Reason:  fmt.Sprintf("допустимые значения: %s", strings.Join(f.Enum, ", ")),
			Allowed: f.Enum,
		}
	}
	switch f.Format {
	case FormatEmail:
		if err := validate.Var(s, "required,email"); err != nil {
			return &FieldError{Field: f.Name, Code: CodeEmail, Reason: "некорректный email"}
		}
	case FormatURL:
		if err := validate.Var(s, "required,url"); err != nil ||
			!(strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")) {
			return &FieldError{Field: f.Name, Code: CodeURL, Reason: "некорректный URL, ожидается http:// или https://"}
		}
	}
	return nil
}

// Coerce приводит значение из JSON, multipart-формы или хранилища
// к каноническому типу поля.
func (f Field) Coerce(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch f.Kind {
	case KindString:
		switch t := v.(type) {
		case string:
			return t, nil
		case []byte:
			return string(t), nil
		}
	case KindInt:
		switch t := v.(type) {
		case int:
			return int64(t), nil
		case int32:
			return int64(t), nil
		case int64:
			return t, nil
		case float64:
			if t == float64(int64(t)) {
				return int64(t), nil
			}
		case json.Number:
			if n, err := t.Int64(); err == nil {
				return n, nil
			}
		case string:
			if strings.TrimSpace(t) == "" {
				return nil, nil
			}
			if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
				return n, nil
			}
		}
	case KindBool:
		switch t := v.(type) {
		case bool:
			return t, nil
		case int64:
			return t != 0, nil
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
				return b, nil
			}
		}
	case KindTime:
		switch t := v.(type) {
		case time.Time:
			return t.UTC(), nil
		case string:
			if ts, err := parseTime(t); err == nil {
				return ts, nil
			}
		}
	case KindJSON:
		switch t := v.(type) {
		case map[string]any:
			return t, nil
		case string:
			return decodeJSONObject(f.Name, []byte(t))
		case []byte:
			return decodeJSONObject(f.Name, t)
		}
	}
	return nil, &FieldError{Field: f.Name, Code: CodeType, Reason: fmt.Sprintf("недопустимое значение %v", v)}
}

var validate = validator.New()

// timeLayouts — форматы времени, встречающиеся в API и в хранилищах.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("некорректное время: %q", s)
}

func decodeJSONObject(name string, data []byte) (any, error) {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, &FieldError{Field: name, Code: CodeJSONObject, Reason: "ожидается JSON-объект"}
	}
	return obj, nil
}
