package keycloak

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// setupMockKeycloak создаёт mock HTTP-сервер Keycloak.
// tokenHandler обрабатывает запросы на получение токена.
// adminHandler обрабатывает запросы к Admin REST API.
func setupMockKeycloak(t *testing.T, tokenHandler, adminHandler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/realms/backbencher/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
		if tokenHandler != nil {
			tokenHandler(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tokenResponse{
			AccessToken: "test-access-token",
			ExpiresIn:   300,
		})
	})

	mux.HandleFunc("/admin/realms/backbencher", func(w http.ResponseWriter, r *http.Request) {
		if adminHandler != nil {
			adminHandler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/admin/realms/backbencher/", func(w http.ResponseWriter, r *http.Request) {
		if adminHandler != nil {
			adminHandler(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := New(
		server.URL,
		"backbencher",
		"site-module",
		"test-secret",
		server.Client(),
		testLogger(),
	)

	return server, client
}

// TestClient_TokenCaching проверяет кэширование токена.
func TestClient_TokenCaching(t *testing.T) {
	var tokenRequests atomic.Int32

	_, client := setupMockKeycloak(t,
		func(w http.ResponseWriter, r *http.Request) {
			tokenRequests.Add(1)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(tokenResponse{
				AccessToken: "cached-token",
				ExpiresIn:   300,
			})
		},
		nil,
	)

	ctx := context.Background()
	for range 3 {
		token, err := client.tokens.Token(ctx)
		if err != nil {
			t.Fatalf("Ошибка получения токена: %v", err)
		}
		if token != "cached-token" {
			t.Errorf("ожидался cached-token, получен %s", token)
		}
	}

	if n := tokenRequests.Load(); n != 1 {
		t.Errorf("ожидался 1 запрос токена, было %d", n)
	}
}

// TestClient_TokenRefresh проверяет обновление истёкшего токена.
func TestClient_TokenRefresh(t *testing.T) {
	_, client := setupMockKeycloak(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(tokenResponse{
				AccessToken: "refreshed-token",
				ExpiresIn:   300,
			})
		},
		nil,
	)

	client.tokens.token = "old-token"
	client.tokens.expiresAt = time.Now().Add(-time.Second)

	token, err := client.tokens.Token(context.Background())
	if err != nil {
		t.Fatalf("Ошибка обновления токена: %v", err)
	}
	if token != "refreshed-token" {
		t.Errorf("ожидался refreshed-token, получен %s", token)
	}
}

// TestClient_TokenError проверяет ошибку Client Credentials flow.
func TestClient_TokenError(t *testing.T) {
	_, client := setupMockKeycloak(t,
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"invalid_client"}`))
		},
		nil,
	)

	if err := client.DeleteUser(context.Background(), "u1"); err == nil {
		t.Fatal("ожидалась ошибка при невалидных credentials")
	}
}

// TestClient_DeleteUser проверяет удаление пользователя.
func TestClient_DeleteUser(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantErr    bool
		wantNotFnd bool
	}{
		{name: "удалён", status: http.StatusNoContent},
		{name: "отсутствует", status: http.StatusNotFound, wantErr: true, wantNotFnd: true},
		{name: "ошибка сервера", status: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMethod, gotPath, gotAuth string
			_, client := setupMockKeycloak(t, nil, func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotPath = r.URL.Path
				gotAuth = r.Header.Get("Authorization")
				w.WriteHeader(tt.status)
			})

			err := client.DeleteUser(context.Background(), "user-42")
			if (err != nil) != tt.wantErr {
				t.Fatalf("DeleteUser() error = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrNotFound) != tt.wantNotFnd {
				t.Errorf("errors.Is(ErrNotFound) = %v, ожидалось %v", !tt.wantNotFnd, tt.wantNotFnd)
			}
			if gotMethod != http.MethodDelete {
				t.Errorf("метод = %s, ожидался DELETE", gotMethod)
			}
			if gotPath != "/admin/realms/backbencher/users/user-42" {
				t.Errorf("путь = %s", gotPath)
			}
			if gotAuth != "Bearer test-access-token" {
				t.Errorf("Authorization = %q", gotAuth)
			}
		})
	}
}

// TestClient_GetUser проверяет получение пользователя.
func TestClient_GetUser(t *testing.T) {
	_, client := setupMockKeycloak(t, nil, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/realms/backbencher/users/u1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(User{ID: "u1", Username: "ana", Email: "a@x.com", Enabled: true})
	})

	user, err := client.GetUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if user.Username != "ana" || user.Email != "a@x.com" {
		t.Errorf("получен %+v", user)
	}

	if _, err := client.GetUser(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидалась ErrNotFound, получено %v", err)
	}
}

// TestClient_CheckReady проверяет readiness по realm info.
func TestClient_CheckReady(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus string
	}{
		{
			name: "realm доступен",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(Realm{Name: "backbencher", Enabled: true})
			},
			wantStatus: "ok",
		},
		{
			name: "realm отключён",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(Realm{Name: "backbencher", Enabled: false})
			},
			wantStatus: "degraded",
		},
		{
			name: "keycloak недоступен",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			wantStatus: "fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := setupMockKeycloak(t, nil, tt.handler)

			status, msg := client.CheckReady()
			if status != tt.wantStatus {
				t.Errorf("CheckReady() = %s (%s), ожидался %s", status, msg, tt.wantStatus)
			}
		})
	}
}

// TestClient_RetryOnUnauthorized проверяет повтор запроса со свежим токеном после 401.
func TestClient_RetryOnUnauthorized(t *testing.T) {
	var tokenRequests, adminRequests atomic.Int32

	_, client := setupMockKeycloak(t,
		func(w http.ResponseWriter, r *http.Request) {
			n := tokenRequests.Add(1)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(tokenResponse{AccessToken: fmt.Sprintf("token-%d", n), ExpiresIn: 300})
		},
		func(w http.ResponseWriter, r *http.Request) {
			adminRequests.Add(1)
			if r.Header.Get("Authorization") != "Bearer token-2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		},
	)

	if err := client.DeleteUser(context.Background(), "u1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if n := tokenRequests.Load(); n != 2 {
		t.Errorf("запросов токена = %d, ожидалось 2", n)
	}
	if n := adminRequests.Load(); n != 2 {
		t.Errorf("запросов Admin API = %d, ожидалось 2", n)
	}
}

// TestClient_UnauthorizedTwice проверяет, что повтор выполняется только один раз.
func TestClient_UnauthorizedTwice(t *testing.T) {
	var adminRequests atomic.Int32
	_, client := setupMockKeycloak(t, nil, func(w http.ResponseWriter, r *http.Request) {
		adminRequests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := client.DeleteUser(context.Background(), "u1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("ожидалась APIError 401, получено %v", err)
	}
	if n := adminRequests.Load(); n != 2 {
		t.Errorf("запросов Admin API = %d, ожидалось 2", n)
	}
}

func TestAPIError_Is(t *testing.T) {
	if !errors.Is(&APIError{Status: http.StatusNotFound}, ErrNotFound) {
		t.Error("404 должен сопоставляться с ErrNotFound")
	}
	if errors.Is(&APIError{Status: http.StatusForbidden}, ErrNotFound) {
		t.Error("403 не должен сопоставляться с ErrNotFound")
	}
}
