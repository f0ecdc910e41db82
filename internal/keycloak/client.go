// client.go — операции Admin REST API: пользователи и состояние realm.
package keycloak

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound — объект отсутствует в Keycloak (HTTP 404).
var ErrNotFound = errors.New("объект Keycloak не найден")

// maxErrorBody — сколько байт тела ответа попадает в текст ошибки.
const maxErrorBody = 512

// APIError — неуспешный ответ Keycloak.
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Keycloak %s: статус %d: %s", e.Op, e.Status, e.Body)
}

// Is сопоставляет 404 с ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

func newAPIError(op string, resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}

// Client — клиент Admin REST API одного realm.
type Client struct {
	adminURL   string
	realm      string
	tokens     *tokenSource
	httpClient *http.Client
	logger     *slog.Logger
}

// New создаёт клиент. httpClient == nil — клиент с таймаутом 30s.
func New(baseURL, realm, clientID, clientSecret string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	base := strings.TrimRight(baseURL, "/")
	escaped := url.PathEscape(realm)

	return &Client{
		adminURL: base + "/admin/realms/" + escaped,
		realm:    realm,
		tokens: &tokenSource{
			endpoint:     base + "/realms/" + escaped + "/protocol/openid-connect/token",
			clientID:     clientID,
			clientSecret: clientSecret,
			httpClient:   httpClient,
			now:          time.Now,
		},
		httpClient: httpClient,
		logger:     logger.With(slog.String("component", "keycloak_client")),
	}
}

// do выполняет авторизованный запрос к Admin API. При 401 токен
// сбрасывается и запрос повторяется один раз.
func (c *Client) do(ctx context.Context, op, method, path string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.adminURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if resp.StatusCode != http.StatusUnauthorized || attempt > 0 {
			return resp, nil
		}
		resp.Body.Close()
		c.tokens.Invalidate()
		c.logger.Debug("Keycloak отклонил токен, повторный запрос", slog.String("op", op))
	}
}

// getJSON выполняет GET и декодирует ответ 200 в target.
func (c *Client) getJSON(ctx context.Context, op, path string, target any) error {
	resp, err := c.do(ctx, op, http.MethodGet, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return newAPIError(op, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%s: декодирование ответа: %w", op, err)
	}
	return nil
}

// GetUser возвращает пользователя по ID.
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "GetUser", "/users/"+url.PathEscape(id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser удаляет пользователя. Отсутствующий пользователь — ErrNotFound.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	resp, err := c.do(ctx, "DeleteUser", http.MethodDelete, "/users/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return newAPIError("DeleteUser", resp)
	}
	c.logger.Info("Пользователь удалён в Keycloak", slog.String("id", id))
	return nil
}

// RealmInfo возвращает состояние realm.
func (c *Client) RealmInfo(ctx context.Context) (*Realm, error) {
	var realm Realm
	if err := c.getJSON(ctx, "RealmInfo", "", &realm); err != nil {
		return nil, err
	}
	return &realm, nil
}

// CheckReady реализует handlers.ReadinessChecker.
// Отключённый realm — degraded: удаление в Keycloak рекомендательное.
func (c *Client) CheckReady() (string, string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	realm, err := c.RealmInfo(ctx)
	if err != nil {
		return "fail", fmt.Sprintf("Keycloak недоступен: %v", err)
	}
	if !realm.Enabled {
		return "degraded", fmt.Sprintf("realm %s отключён", realm.Name)
	}
	return "ok", fmt.Sprintf("realm %s доступен", realm.Name)
}
