package service

import (
	"log/slog"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/storage/attachment"
)

// stagingScope отслеживает файлы одной операции обновления.
// close вызывается через defer: после commit удаляются заменённые файлы,
// без commit — все файлы, записанные в этой операции.
type stagingScope struct {
	files    *attachment.Store
	resource string
	logger   *slog.Logger

	staged     []string
	superseded []string
	committed  bool
}

func newStagingScope(files *attachment.Store, resource string, logger *slog.Logger) *stagingScope {
	return &stagingScope{files: files, resource: resource, logger: logger}
}

// stage записывает новый файл слота.
func (sc *stagingScope) stage(slot model.Slot, key string, p attachment.Payload) (string, error) {
	ref, err := sc.files.Stage(slot.Dir, key, slot.Discriminator, p)
	if err != nil {
		return "", err
	}
	sc.staged = append(sc.staged, ref)
	attachmentsStagedTotal.WithLabelValues(sc.resource).Inc()
	return ref, nil
}

// supersede помечает старый файл к удалению после успешной записи.
func (sc *stagingScope) supersede(ref string) {
	if ref != "" {
		sc.superseded = append(sc.superseded, ref)
	}
}

// commit фиксирует, что запись с новыми ссылками сохранена.
func (sc *stagingScope) commit() {
	sc.committed = true
}

// close освобождает файлы в зависимости от исхода операции.
func (sc *stagingScope) close() {
	if sc.committed {
		sc.release(sc.superseded, "superseded")
		return
	}
	if len(sc.staged) > 0 {
		updateRollbacksTotal.WithLabelValues(sc.resource).Inc()
	}
	sc.release(sc.staged, "rollback")
}

func (sc *stagingScope) release(refs []string, reason string) {
	for _, ref := range refs {
		if err := sc.files.Release(ref); err != nil {
			// Файл останется сиротой до следующего прохода сборщика
			attachmentReleaseErrorsTotal.WithLabelValues(sc.resource).Inc()
			sc.logger.Warn("Не удалось удалить файл вложения",
				slog.String("ref", ref),
				slog.String("reason", reason),
				slog.String("error", err.Error()),
			)
			continue
		}
		attachmentsReleasedTotal.WithLabelValues(sc.resource, reason).Inc()
	}
}
