package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
)

func newSubscriberService(t *testing.T) (*SubscriberService, *engineFixture) {
	t.Helper()
	f := newEngineFixture(t)
	return NewSubscriberService(f.engine, model.SubscriberSchema(), testLogger()), f
}

func TestSubscriberService_CreateNormalizesEmail(t *testing.T) {
	svc, _ := newSubscriberService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, map[string]any{"email": "  Reader@Example.COM "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec["email"] != "reader@example.com" {
		t.Errorf("email = %v", rec["email"])
	}
	if rec["is_active"] != true {
		t.Errorf("is_active = %v, ожидалось true", rec["is_active"])
	}
	if rec.String("id") == "" {
		t.Error("id не сгенерирован")
	}

	if _, err := svc.Create(ctx, map[string]any{"email": "reader@example.com"}); !errors.Is(err, ErrConflict) {
		t.Errorf("повторный email: ожидалась ErrConflict, получено %v", err)
	}
}

func TestSubscriberService_CreateValidation(t *testing.T) {
	svc, _ := newSubscriberService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		delta map[string]any
	}{
		{name: "без email", delta: map[string]any{}},
		{name: "некорректный email", delta: map[string]any{"email": "nope"}},
		{name: "пустой email", delta: map[string]any{"email": "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tt.delta); !errors.Is(err, ErrValidation) {
				t.Errorf("ожидалась ErrValidation, получено %v", err)
			}
		})
	}
}

func TestSubscriberService_UpdateEmailConflict(t *testing.T) {
	svc, _ := newSubscriberService(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, map[string]any{"email": "a@example.com"})
	if _, err := svc.Create(ctx, map[string]any{"email": "b@example.com"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(ctx, a.String("id"), map[string]any{"email": "B@example.com"}); !errors.Is(err, ErrConflict) {
		t.Errorf("ожидалась ErrConflict, получено %v", err)
	}
	// Свой email не конфликтует
	if _, err := svc.Update(ctx, a.String("id"), map[string]any{"email": "a@example.com", "is_active": false}); err != nil {
		t.Errorf("Update своим email: %v", err)
	}
	if _, err := svc.Update(ctx, "missing", map[string]any{"is_active": false}); !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено %v", err)
	}
}

func TestSubscriberService_ToggleAndStats(t *testing.T) {
	svc, f := newSubscriberService(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	f.engine.now = func() time.Time { return now.Add(-30 * 24 * time.Hour) }
	old, err := svc.Create(ctx, map[string]any{"email": "old@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	f.engine.now = func() time.Time { return now }
	if _, err := svc.Create(ctx, map[string]any{"email": "new@example.com"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	toggled, err := svc.Toggle(ctx, old.String("id"))
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if toggled["is_active"] != false {
		t.Errorf("is_active = %v после переключения", toggled["is_active"])
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := SubscriberStats{Total: 2, Active: 1, Inactive: 1, Recent: 1}
	if stats != want {
		t.Errorf("Stats() = %+v, ожидалось %+v", stats, want)
	}

	recs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 || recs[0]["email"] != "new@example.com" {
		t.Errorf("List() порядок: %v", recs)
	}

	if _, err := svc.Delete(ctx, old.String("id")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Toggle(ctx, old.String("id")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Toggle удалённого: ожидалась ErrNotFound, получено %v", err)
	}
}
