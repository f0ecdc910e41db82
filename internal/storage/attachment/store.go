// Пакет attachment — файловое хранилище вложений записей.
// Файлы размещаются в подкаталогах слотов под корнем хранилища
// и адресуются ссылками вида /<slotDir>/<key>-<slot>-<token><ext>.
package attachment

import (
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrIO — ошибка записи или удаления файла.
	ErrIO = errors.New("attachment io failure")
	// ErrOutsideRoot — ссылка указывает за пределы корня хранилища.
	ErrOutsideRoot = errors.New("attachment path outside root")
	// ErrNotFile — ссылка указывает на каталог или специальный файл.
	ErrNotFile = errors.New("attachment reference is not a file")
)

// stagePrefix — префикс временных файлов незавершённой записи.
const stagePrefix = ".stage-"

// Payload — буферизованное содержимое загруженного файла.
type Payload struct {
	// Filename — исходное имя файла (используется расширение)
	Filename string
	// ContentType — MIME-тип из заголовка части формы
	ContentType string
	Data        []byte
}

// Size возвращает размер содержимого в байтах.
func (p Payload) Size() int64 {
	return int64(len(p.Data))
}

// Store — управление файлами вложений на диске.
type Store struct {
	// root — абсолютный корень хранилища с раскрытыми symlink
	root string
}

// New создаёт Store. Корневой каталог создаётся при необходимости.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("%w: не удалось создать каталог вложений %s: %w", ErrIO, root, err)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return &Store{root: resolved}, nil
}

// Root возвращает корень хранилища.
func (s *Store) Root() string {
	return s.root
}

// Stage записывает payload в новый файл каталога slotDir и возвращает ссылку на него.
// Существующие файлы никогда не перезаписываются: итоговое имя занимается
// через hard link, который завершается ошибкой при совпадении имён.
func (s *Store) Stage(slotDir, identityKey, discriminator string, p Payload) (string, error) {
	dir, err := s.slotPath(slotDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("%w: не удалось создать каталог %s: %w", ErrIO, slotDir, err)
	}

	tmp, err := os.CreateTemp(dir, stagePrefix+"*")
	if err != nil {
		return "", fmt.Errorf("%w: ошибка создания временного файла: %w", ErrIO, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(p.Data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: ошибка записи данных: %w", ErrIO, err)
	}
	// fsync для гарантии записи на диск
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: ошибка fsync: %w", ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: ошибка закрытия файла: %w", ErrIO, err)
	}

	ext := extension(p.Filename, p.ContentType)
	for range 3 {
		name := fileName(identityKey, discriminator, ext)
		err := os.Link(tmpPath, filepath.Join(dir, name))
		if err == nil {
			return path.Join("/", filepath.ToSlash(filepath.Clean(slotDir)), name), nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: ошибка публикации файла: %w", ErrIO, err)
		}
	}
	return "", fmt.Errorf("%w: не удалось подобрать уникальное имя файла", ErrIO)
}

// Release удаляет файл по ссылке. Отсутствующий файл не считается ошибкой.
// Symlink удаляется сам, без перехода по нему; каталоги не удаляются.
func (s *Store) Release(ref string) error {
	full, err := s.resolve(ref)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	info, err := os.Lstat(full)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("%w: %w", ErrIO, err)
	case !info.Mode().IsRegular() && info.Mode()&fs.ModeSymlink == 0:
		return fmt.Errorf("%w: %s", ErrNotFile, ref)
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: ошибка удаления файла %s: %w", ErrIO, ref, err)
	}
	return nil
}

// Exists проверяет наличие обычного файла по ссылке.
func (s *Store) Exists(ref string) bool {
	full, err := s.resolve(ref)
	if err != nil {
		return false
	}
	info, err := os.Lstat(full)
	return err == nil && info.Mode().IsRegular()
}

// Open открывает файл вложения для чтения. Symlink и каталоги не раздаются.
func (s *Store) Open(ref string) (*os.File, fs.FileInfo, error) {
	full, err := s.resolve(ref)
	if err != nil {
		return nil, nil, err
	}
	info, err := os.Lstat(full)
	if err != nil {
		return nil, nil, err
	}
	if !info.Mode().IsRegular() || strings.HasPrefix(info.Name(), stagePrefix) {
		return nil, nil, fs.ErrNotExist
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, nil, err
	}
	return f, info, nil
}

// Walk обходит файлы каталога слота, передавая ссылку и информацию о файле.
// Отсутствующий каталог не ошибка. Временные файлы Stage передаются тоже:
// по ним сборщик мусора находит брошенные записи.
func (s *Store) Walk(slotDir string, fn func(ref string, info fs.FileInfo) error) error {
	dir, err := s.slotPath(slotDir)
	if err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: ошибка чтения каталога %s: %w", ErrIO, slotDir, err)
	}
	prefix := path.Join("/", filepath.ToSlash(filepath.Clean(slotDir)))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if err := fn(path.Join(prefix, e.Name()), info); err != nil {
			return err
		}
	}
	return nil
}

// slotPath возвращает абсолютный путь каталога слота внутри корня.
func (s *Store) slotPath(slotDir string) (string, error) {
	rel, err := relative(slotDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, rel), nil
}

// resolve переводит ссылку в абсолютный путь, проверяя, что файл
// лежит внутри корня и после раскрытия symlink в родительских каталогах.
func (s *Store) resolve(ref string) (string, error) {
	rel, err := relative(ref)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.root, rel)

	parent, err := filepath.EvalSymlinks(filepath.Dir(full))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	if !within(s.root, parent) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, ref)
	}
	return filepath.Join(parent, filepath.Base(full)), nil
}

// relative нормализует ссылку в относительный путь без выхода за корень.
func relative(ref string) (string, error) {
	if strings.ContainsRune(ref, 0) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, ref)
	}
	rel := filepath.Clean(filepath.FromSlash(strings.TrimLeft(ref, "/")))
	if rel == "." || filepath.IsAbs(rel) || rel == ".." ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, ref)
	}
	return rel, nil
}

func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// fileName формирует имя файла: {key}-{slot}-{timestamp}{uuid}{ext}.
// Пример: u1-profile-20260221150405a1b2c3d4.png
func fileName(identityKey, discriminator, ext string) string {
	key := sanitize(identityKey)
	if len(key) > 64 {
		key = key[:64]
	}
	ts := time.Now().UTC().Format("20060102150405")
	token := uuid.New().String()[:8]
	return fmt.Sprintf("%s-%s-%s%s%s", key, sanitize(discriminator), ts, token, ext)
}

// extension возвращает расширение исходного файла либо выводит его из MIME-типа.
func extension(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	clean := sanitizeExt(ext)
	if clean != "" {
		return clean
	}
	if contentType != "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			return sanitizeExt(exts[0])
		}
	}
	return ""
}

func sanitizeExt(ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" || len(ext) > 10 {
		return ""
	}
	for _, r := range ext {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return ""
		}
	}
	return "." + ext
}

// sanitize оставляет только латинские буквы, цифры, дефис и подчёркивание.
func sanitize(s string) string {
	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '-' || r == '_' {
			result.WriteRune(r)
		}
	}
	if result.Len() == 0 {
		return "file"
	}
	return result.String()
}
