package keycloak

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// tokenRefreshMargin — токен обновляется заранее, до фактического истечения.
const tokenRefreshMargin = 30 * time.Second

// tokenSource выдаёт access token сервисного аккаунта и кэширует его.
type tokenSource struct {
	endpoint     string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	now          func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// Token возвращает кэшированный токен или запрашивает новый.
func (ts *tokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != "" && ts.now().Add(tokenRefreshMargin).Before(ts.expiresAt) {
		return ts.token, nil
	}

	tok, err := ts.fetch(ctx)
	if err != nil {
		return "", err
	}
	ts.token = tok.AccessToken
	ts.expiresAt = ts.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return ts.token, nil
}

// Invalidate сбрасывает кэш, например после 401 от Admin API.
func (ts *tokenSource) Invalidate() {
	ts.mu.Lock()
	ts.token = ""
	ts.expiresAt = time.Time{}
	ts.mu.Unlock()
}

func (ts *tokenSource) fetch(ctx context.Context) (tokenResponse, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {ts.clientID},
		"client_secret": {ts.clientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return tokenResponse{}, fmt.Errorf("запрос токена: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return tokenResponse{}, fmt.Errorf("запрос токена Keycloak: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return tokenResponse{}, newAPIError("token", resp)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return tokenResponse{}, fmt.Errorf("декодирование токена Keycloak: %w", err)
	}
	if tok.AccessToken == "" {
		return tokenResponse{}, errors.New("Keycloak вернул пустой access_token")
	}
	return tok, nil
}
