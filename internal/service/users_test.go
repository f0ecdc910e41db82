package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/keycloak"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/storage/attachment"
)

// fakeIDP — Identity Provider с заданной ошибкой удаления.
type fakeIDP struct {
	err     error
	deleted []string
}

func (f *fakeIDP) DeleteUser(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func newUserService(t *testing.T, idp IdentityProvider) (*UserService, *engineFixture) {
	t.Helper()
	f := newEngineFixture(t)
	return NewUserService(f.engine, f.users, idp, testLogger()), f
}

func TestUserService_CreateRequiresUID(t *testing.T) {
	svc, _ := newUserService(t, nil)

	_, err := svc.Create(context.Background(), "  ", map[string]any{"name": "Ana", "email": "a@x.com"}, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("ожидалась ErrValidation, получено %v", err)
	}
}

func TestUserService_CreateWithFiles(t *testing.T) {
	svc, f := newUserService(t, nil)

	rec, err := svc.Create(context.Background(), "u1",
		map[string]any{"name": "Ana", "email": "a@x.com", "age": "31"},
		map[string]attachment.Payload{"coverPhoto": png("c.png")},
	)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec["age"] != int64(31) {
		t.Errorf("age = %#v, ожидалось 31", rec["age"])
	}
	if ref, _ := rec["coverPhoto"].(string); !f.files.Exists(ref) {
		t.Errorf("coverPhoto %q не существует", ref)
	}
	if rec["profileImage"] != nil {
		t.Errorf("profileImage = %v", rec["profileImage"])
	}
}

func TestUserService_Replace(t *testing.T) {
	svc, _ := newUserService(t, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "u1", map[string]any{
		"name": "Ana", "email": "a@x.com", "age": 30,
		"privacySettings": map[string]any{"email": "private"},
	}, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Replace(ctx, "u1", map[string]any{"name": "Ann"}, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("Replace без email: ожидалась ErrValidation, получено %v", err)
	}

	rec, err := svc.Replace(ctx, "u1", map[string]any{"name": "Ann", "email": "ann@x.com"}, nil)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if rec["age"] != nil {
		t.Errorf("age = %v, ожидался сброс", rec["age"])
	}
	privacy, _ := rec["privacySettings"].(map[string]any)
	if privacy["email"] != "public" {
		t.Errorf("privacySettings = %v, ожидались значения по умолчанию", privacy)
	}
}

func TestUserService_TouchLastLogin(t *testing.T) {
	svc, f := newUserService(t, nil)
	f.createUser(t, "u1")

	rec, err := svc.TouchLastLogin(context.Background(), "u1")
	if err != nil {
		t.Fatalf("TouchLastLogin: %v", err)
	}
	if _, ok := rec["lastLogin"].(time.Time); !ok {
		t.Errorf("lastLogin = %v", rec["lastLogin"])
	}
	if _, err := svc.TouchLastLogin(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено %v", err)
	}
}

func TestUserService_UpdatePrivacy(t *testing.T) {
	svc, f := newUserService(t, nil)
	f.createUser(t, "u1")
	ctx := context.Background()

	if _, err := svc.UpdatePrivacy(ctx, "u1", nil); !errors.Is(err, ErrValidation) {
		t.Errorf("ожидалась ErrValidation, получено %v", err)
	}
	if _, err := svc.UpdatePrivacy(ctx, "u1", "not-an-object"); !errors.Is(err, ErrValidation) {
		t.Errorf("ожидалась ErrValidation для строки, получено %v", err)
	}
	rec, err := svc.UpdatePrivacy(ctx, "u1", map[string]any{"age": "private"})
	if err != nil {
		t.Fatalf("UpdatePrivacy: %v", err)
	}
	if privacy := rec["privacySettings"].(map[string]any); privacy["age"] != "private" {
		t.Errorf("privacySettings = %v", privacy)
	}
}

func TestUserService_DeleteAdvisory(t *testing.T) {
	tests := []struct {
		name         string
		idp          IdentityProvider
		wantAdvisory bool
	}{
		{name: "idp удалил", idp: &fakeIDP{}},
		{name: "пользователь уже отсутствует в idp", idp: &fakeIDP{err: keycloak.ErrNotFound}},
		{name: "idp недоступен", idp: &fakeIDP{err: errors.New("connection refused")}, wantAdvisory: true},
		{name: "idp не настроен", idp: nil, wantAdvisory: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, f := newUserService(t, tt.idp)
			f.createUser(t, "u1")

			out, err := svc.Delete(context.Background(), "u1")
			if err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if (out.Advisory != nil) != tt.wantAdvisory {
				t.Errorf("Advisory = %v, ожидалось наличие: %v", out.Advisory, tt.wantAdvisory)
			}
			if out.Advisory != nil && !errors.Is(out.Advisory, ErrAdvisory) {
				t.Errorf("Advisory не оборачивает ErrAdvisory: %v", out.Advisory)
			}
			if out.Record["uid"] != "u1" {
				t.Errorf("Record = %v", out.Record)
			}
			if _, err := svc.Get(context.Background(), "u1"); !errors.Is(err, ErrNotFound) {
				t.Errorf("профиль не удалён: %v", err)
			}
		})
	}
}

func TestUserService_DeleteMissingSkipsIDP(t *testing.T) {
	idp := &fakeIDP{}
	svc, _ := newUserService(t, idp)

	if _, err := svc.Delete(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ожидалась ErrNotFound, получено %v", err)
	}
	if len(idp.deleted) != 0 {
		t.Errorf("idp вызван для отсутствующего профиля: %v", idp.deleted)
	}
}

func TestUserService_ListNewestFirst(t *testing.T) {
	svc, f := newUserService(t, nil)
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	step := 0
	f.engine.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Minute)
	}
	for _, uid := range []string{"a", "b", "c"} {
		f.createUser(t, uid)
	}

	recs, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var got []string
	for _, rec := range recs {
		got = append(got, rec.String("uid"))
	}
	if len(got) != 3 || got[0] != "c" || got[2] != "a" {
		t.Errorf("порядок = %v, ожидался [c b a]", got)
	}
}
