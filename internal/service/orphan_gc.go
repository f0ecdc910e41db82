// orphan_gc.go — сервис фоновой очистки файлов вложений без ссылок.
//
// Сирота появляется, если процесс упал между записью файла вложения и
// записью экземпляра. GC:
//  1. Собирает ссылки всех живых экземпляров ресурсов со слотами
//  2. Обходит каталоги слотов и удаляет файлы без ссылок старше minAge
//
// minAge защищает файлы операций, которые ещё не дошли до записи экземпляра.
// Запускается как горутина с периодическим тикером (SM_ORPHAN_GC_INTERVAL).
package service

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/repository"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/storage/attachment"
)

// Prometheus метрики GC
var (
	// gcRunsTotal — количество запусков GC.
	gcRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sm_orphan_gc_runs_total",
		Help: "Общее количество запусков GC вложений",
	})

	// gcOrphansDeletedTotal — количество удалённых файлов-сирот.
	gcOrphansDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sm_orphan_gc_files_deleted_total",
		Help: "Общее количество файлов-сирот, удалённых GC",
	})

	// gcDurationSeconds — длительность выполнения GC.
	gcDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sm_orphan_gc_duration_seconds",
		Help:    "Длительность выполнения GC вложений в секундах",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
	})
)

// GCResult — результат одного запуска GC.
type GCResult struct {
	// Scanned — количество просмотренных файлов
	Scanned int
	// DeletedCount — количество удалённых файлов-сирот
	DeletedCount int
	// Errors — количество ошибок при обработке файлов
	Errors int
	// Duration — длительность выполнения
	Duration time.Duration
}

// OrphanGCService — сервис очистки файлов-сирот.
type OrphanGCService struct {
	store    repository.RecordStore
	files    *attachment.Store
	schemas  []*model.Schema
	interval time.Duration
	minAge   time.Duration
	now      func() time.Time
	logger   *slog.Logger

	mu     sync.Mutex // защита от параллельного запуска RunOnce
	cancel context.CancelFunc
	done   chan struct{}
}

// NewOrphanGCService создаёт сервис GC по схемам ресурсов.
// Схемы без слотов вложений пропускаются.
func NewOrphanGCService(
	store repository.RecordStore,
	files *attachment.Store,
	schemas []*model.Schema,
	interval, minAge time.Duration,
	logger *slog.Logger,
) *OrphanGCService {
	var withSlots []*model.Schema
	for _, s := range schemas {
		if len(s.Slots) > 0 {
			withSlots = append(withSlots, s)
		}
	}
	return &OrphanGCService{
		store:    store,
		files:    files,
		schemas:  withSlots,
		interval: interval,
		minAge:   minAge,
		now:      time.Now,
		logger:   logger.With(slog.String("component", "orphan_gc")),
	}
}

// Start запускает фоновую горутину GC с периодическим тикером.
// Вызывается один раз при старте приложения.
func (gc *OrphanGCService) Start(ctx context.Context) {
	gcCtx, cancel := context.WithCancel(ctx)
	gc.cancel = cancel
	gc.done = make(chan struct{})

	go gc.run(gcCtx)

	gc.logger.Info("GC вложений запущен",
		slog.String("interval", gc.interval.String()),
		slog.String("min_age", gc.minAge.String()),
	)
}

// Stop останавливает фоновый процесс GC и ждёт завершения текущего прохода.
func (gc *OrphanGCService) Stop() {
	if gc.cancel == nil {
		return
	}
	gc.cancel()
	<-gc.done
	gc.logger.Info("GC вложений остановлен")
}

// run — основной цикл фоновой горутины.
func (gc *OrphanGCService) run(ctx context.Context) {
	defer close(gc.done)

	// Первый запуск — сразу после старта
	gc.RunOnce(ctx)

	ticker := time.NewTicker(gc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			gc.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет один проход GC.
// Потокобезопасен: использует mutex для защиты от параллельного запуска.
func (gc *OrphanGCService) RunOnce(ctx context.Context) *GCResult {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	start := time.Now()
	result := &GCResult{}

	gc.logger.Debug("GC вложений начат")

	cutoff := gc.now().Add(-gc.minAge)
	for _, s := range gc.schemas {
		if err := gc.sweep(ctx, s, cutoff, result); err != nil {
			gc.logger.Error("GC: ошибка обработки ресурса",
				slog.String("resource", s.Resource),
				slog.String("error", err.Error()),
			)
			result.Errors++
		}
	}

	result.Duration = time.Since(start)

	gcRunsTotal.Inc()
	gcOrphansDeletedTotal.Add(float64(result.DeletedCount))
	gcDurationSeconds.Observe(result.Duration.Seconds())

	gc.logger.Info("GC вложений завершён",
		slog.Int("scanned", result.Scanned),
		slog.Int("deleted", result.DeletedCount),
		slog.Int("errors", result.Errors),
		slog.Duration("duration", result.Duration),
	)

	return result
}

// sweep удаляет файлы-сироты в каталогах слотов одного ресурса.
func (gc *OrphanGCService) sweep(ctx context.Context, s *model.Schema, cutoff time.Time, result *GCResult) error {
	recs, err := gc.store.List(ctx, s, repository.Order{})
	if err != nil {
		return fmt.Errorf("список экземпляров: %w", err)
	}
	referenced := make(map[string]struct{})
	for _, rec := range recs {
		for _, ref := range s.References(rec) {
			referenced[ref] = struct{}{}
		}
	}

	for _, slot := range s.Slots {
		err := gc.files.Walk(slot.Dir, func(ref string, info fs.FileInfo) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result.Scanned++
			if _, ok := referenced[ref]; ok || info.ModTime().After(cutoff) {
				return nil
			}
			if err := gc.files.Release(ref); err != nil {
				gc.logger.Error("GC: ошибка удаления файла",
					slog.String("ref", ref),
					slog.String("error", err.Error()),
				)
				result.Errors++
				return nil
			}
			gc.logger.Debug("GC: файл-сирота удалён",
				slog.String("resource", s.Resource),
				slog.String("ref", ref),
			)
			result.DeletedCount++
			return nil
		})
		if err != nil {
			return fmt.Errorf("обход каталога %s: %w", slot.Dir, err)
		}
	}
	return nil
}
