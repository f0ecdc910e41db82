// Пакет keycloak — клиент Keycloak Admin REST API для удаления пользователей сайта.
package keycloak

// tokenResponse — ответ token endpoint на client_credentials.
type tokenResponse struct {
	AccessToken string `json:"access_token"` //nolint:gosec // G117: поле OAuth2
	ExpiresIn   int    `json:"expires_in"`
}

// User — учётная запись в realm. ID совпадает с uid профиля.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Enabled  bool   `json:"enabled"`
}

// Realm — краткое описание realm для readiness.
type Realm struct {
	Name    string `json:"realm"`
	Enabled bool   `json:"enabled"`
}
