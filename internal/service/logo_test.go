package service

import (
	"context"
	"errors"
	"testing"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/storage/attachment"
)

func TestLogoService_Lifecycle(t *testing.T) {
	f := newEngineFixture(t)
	svc := NewLogoService(f.engine, f.logo, testLogger())
	ctx := context.Background()

	if _, found, err := svc.Get(ctx); err != nil || found {
		t.Fatalf("Get() пустого логотипа = found %v, err %v", found, err)
	}
	stats, err := svc.Stats(ctx)
	if err != nil || stats.HasLogo || stats.TotalLogos != 0 {
		t.Fatalf("Stats() = %+v, %v", stats, err)
	}

	first := png("one.png")
	res, err := svc.Upload(ctx, &first)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !res.Created {
		t.Error("первая загрузка должна создать логотип")
	}

	rec, found, err := svc.Get(ctx)
	if err != nil || !found {
		t.Fatalf("Get() = found %v, err %v", found, err)
	}
	if rec["url"] != res.Record["url"] {
		t.Errorf("url = %v, ожидался %v", rec["url"], res.Record["url"])
	}

	stats, _ = svc.Stats(ctx)
	if !stats.HasLogo || stats.TotalLogos != 1 {
		t.Errorf("Stats() = %+v", stats)
	}

	if _, err := svc.Delete(ctx); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if f.files.Exists(rec.String("url")) {
		t.Error("файл логотипа не удалён")
	}
	if _, err := svc.Delete(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("повторный Delete: ожидалась ErrNotFound, получено %v", err)
	}
}

func TestLogoService_UploadRequiresFile(t *testing.T) {
	f := newEngineFixture(t)
	svc := NewLogoService(f.engine, f.logo, testLogger())

	if _, err := svc.Upload(context.Background(), nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("ожидалась ErrValidation, получено %v", err)
	}
	pdf := attachment.Payload{Filename: "logo.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}
	if _, err := svc.Upload(context.Background(), &pdf); !errors.Is(err, ErrValidation) {
		t.Fatalf("ожидалась ErrValidation для PDF, получено %v", err)
	}
}
