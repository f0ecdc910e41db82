package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/moshiurrahmandeap11/backbencher-Server/internal/domain/model"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/repository"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/service"
	"github.com/moshiurrahmandeap11/backbencher-Server/internal/storage/attachment"
)

const testMaxUpload = 64

// staticChecker — ReadinessChecker с фиксированным ответом.
type staticChecker struct {
	status  string
	message string
}

func (c staticChecker) CheckReady() (string, string) { return c.status, c.message }

type testAPI struct {
	router http.Handler
	files  *attachment.Store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	return newTestAPIWithChecker(t, staticChecker{status: "ok"})
}

func newTestAPIWithChecker(t *testing.T, storeChecker ReadinessChecker) *testAPI {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	files, err := attachment.New(t.TempDir())
	if err != nil {
		t.Fatalf("attachment.New: %v", err)
	}
	engine := service.NewEngine(repository.NewMemoryStore(), files, logger)

	h := NewAPIHandler(
		NewHealthHandler(storeChecker, nil),
		service.NewUserService(engine, model.UserSchema(testMaxUpload), nil, logger),
		service.NewLogoService(engine, model.LogoSchema(testMaxUpload), logger),
		service.NewSiteSettingsService(engine, model.SiteSettingsSchema(), time.Minute, logger),
		service.NewSubscriberService(engine, model.SubscriberSchema(), logger),
		files,
		Options{MaxUploadSize: testMaxUpload, APIPrefix: "/bb/v1"},
		logger,
	)

	router := chi.NewRouter()
	HandlerFromMux(h, router, RouteOptions{APIPrefix: "/bb/v1", UploadURLPrefix: "/uploads"})
	return &testAPI{router: router, files: files}
}

// envelope — общий вид ответа API.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (a *testAPI) do(t *testing.T, method, path, contentType string, body io.Reader) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("ответ не JSON: %v: %s", err, rec.Body.String())
		}
	}
	return rec, env
}

func (a *testAPI) doJSON(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return a.do(t, method, path, "application/json", strings.NewReader(body))
}

// multipartBody собирает форму из текстовых полей и файлов (часть → содержимое).
func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte, contentType string) (string, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("WriteField: %v", err)
		}
	}
	for part, data := range files {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="`+part+`"; filename="`+part+`.png"`)
		hdr.Set("Content-Type", contentType)
		w, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		_, _ = w.Write(data)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return mw.FormDataContentType(), &buf
}

func decodeData(t *testing.T, env envelope) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("data не объект: %v: %s", err, env.Data)
	}
	return out
}

func TestUsers_CreateGetConflict(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.doJSON(t, http.MethodPost, "/bb/v1/users", `{"uid":"u1","name":"Ann","email":"ann@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: статус %d, ожидался 201: %s", rec.Code, rec.Body.String())
	}
	user := decodeData(t, env)
	if user["role"] != model.RoleUser {
		t.Errorf("role = %v, ожидался %q", user["role"], model.RoleUser)
	}
	if user["profileImage"] != nil {
		t.Errorf("profileImage = %v, ожидался null", user["profileImage"])
	}

	rec, env = api.doJSON(t, http.MethodPost, "/bb/v1/users", `{"uid":"u1","name":"Ann","email":"ann@example.com"}`)
	if rec.Code != http.StatusConflict || env.Error.Code != "CONFLICT" {
		t.Errorf("повторное создание: статус %d код %q, ожидался 409 CONFLICT", rec.Code, env.Error.Code)
	}

	rec, env = api.do(t, http.MethodGet, "/bb/v1/users/u1", "", nil)
	if rec.Code != http.StatusOK || decodeData(t, env)["name"] != "Ann" {
		t.Errorf("get: статус %d, тело %s", rec.Code, rec.Body.String())
	}

	rec, env = api.do(t, http.MethodGet, "/bb/v1/users/missing", "", nil)
	if rec.Code != http.StatusNotFound || env.Error.Code != "NOT_FOUND" {
		t.Errorf("get missing: статус %d код %q", rec.Code, env.Error.Code)
	}
}

func TestUsers_PatchValidationAndUnknownFields(t *testing.T) {
	api := newTestAPI(t)
	api.doJSON(t, http.MethodPost, "/bb/v1/users", `{"uid":"u1","name":"Ann","email":"ann@example.com"}`)

	rec, env := api.doJSON(t, http.MethodPatch, "/bb/v1/users/u1", `{"email":"not-an-email"}`)
	if rec.Code != http.StatusBadRequest || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("некорректный email: статус %d код %q", rec.Code, env.Error.Code)
	}

	rec, env = api.doJSON(t, http.MethodPatch, "/bb/v1/users/u1", `{"name":"Bob","nickname":"bobby","uid":"other"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: статус %d: %s", rec.Code, rec.Body.String())
	}
	user := decodeData(t, env)
	if user["name"] != "Bob" || user["uid"] != "u1" {
		t.Errorf("user = %v, ожидались name=Bob uid=u1", user)
	}
	if _, ok := user["nickname"]; ok {
		t.Error("неизвестное поле попало в запись")
	}

	rec, env = api.doJSON(t, http.MethodPatch, "/bb/v1/users/u1", `{broken`)
	if rec.Code != http.StatusBadRequest || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("битый JSON: статус %d код %q", rec.Code, env.Error.Code)
	}

	rec, _ = api.doJSON(t, http.MethodPatch, "/bb/v1/users/missing", `{"name":"X"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("patch missing: статус %d, ожидался 404", rec.Code)
	}
}

func TestUsers_InvalidKey(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(t, http.MethodGet, "/bb/v1/users/"+strings.Repeat("k", 300), "", nil)
	if rec.Code != http.StatusBadRequest || env.Error.Code != "INVALID_KEY" {
		t.Errorf("длинный ключ: статус %d код %q, ожидался 400 INVALID_KEY", rec.Code, env.Error.Code)
	}
}

func TestUsers_MultipartAttachmentServedAndReplaced(t *testing.T) {
	api := newTestAPI(t)
	api.doJSON(t, http.MethodPost, "/bb/v1/users", `{"uid":"u1","name":"Ann","email":"ann@example.com"}`)

	ct, body := multipartBody(t, map[string]string{"name": "Ann B"}, map[string][]byte{"profileImage": []byte("\x89PNG-one")}, "image/png")
	rec, env := api.do(t, http.MethodPatch, "/bb/v1/users/u1", ct, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch multipart: статус %d: %s", rec.Code, rec.Body.String())
	}
	user := decodeData(t, env)
	first, _ := user["profileImage"].(string)
	if first == "" || user["name"] != "Ann B" {
		t.Fatalf("user = %v", user)
	}

	rec, _ = api.do(t, http.MethodGet, "/uploads"+first, "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "\x89PNG-one" {
		t.Errorf("раздача файла: статус %d тело %q", rec.Code, rec.Body.String())
	}

	ct, body = multipartBody(t, nil, map[string][]byte{"profileImage": []byte("\x89PNG-two")}, "image/png")
	rec, env = api.do(t, http.MethodPatch, "/bb/v1/users/u1", ct, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("замена файла: статус %d: %s", rec.Code, rec.Body.String())
	}
	second, _ := decodeData(t, env)["profileImage"].(string)
	if second == "" || second == first {
		t.Errorf("profileImage = %q, ожидалась новая ссылка", second)
	}
	if api.files.Exists(first) {
		t.Errorf("старый файл %s не освобождён", first)
	}
	if !api.files.Exists(second) {
		t.Errorf("новый файл %s отсутствует", second)
	}
}

func TestUsers_AttachmentRejected(t *testing.T) {
	api := newTestAPI(t)
	api.doJSON(t, http.MethodPost, "/bb/v1/users", `{"uid":"u1","name":"Ann","email":"ann@example.com"}`)

	ct, body := multipartBody(t, nil, map[string][]byte{"coverPhoto": []byte("plain text")}, "text/plain")
	rec, env := api.do(t, http.MethodPatch, "/bb/v1/users/u1", ct, body)
	if rec.Code != http.StatusBadRequest || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("не-изображение: статус %d код %q", rec.Code, env.Error.Code)
	}

	ct, body = multipartBody(t, nil, map[string][]byte{"coverPhoto": bytes.Repeat([]byte("x"), testMaxUpload+1)}, "image/png")
	rec, env = api.do(t, http.MethodPatch, "/bb/v1/users/u1", ct, body)
	if rec.Code != http.StatusRequestEntityTooLarge || env.Error.Code != "PAYLOAD_TOO_LARGE" {
		t.Errorf("большой файл: статус %d код %q", rec.Code, env.Error.Code)
	}

	rec, env = api.do(t, http.MethodGet, "/bb/v1/users/u1", "", nil)
	if rec.Code != http.StatusOK || decodeData(t, env)["coverPhoto"] != nil {
		t.Errorf("отклонённое вложение изменило запись: %s", rec.Body.String())
	}
}

func TestUsers_ReplacePrivacyLastLoginDelete(t *testing.T) {
	api := newTestAPI(t)
	api.doJSON(t, http.MethodPost, "/bb/v1/users", `{"uid":"u1","name":"Ann","email":"ann@example.com","age":30}`)

	rec, _ := api.doJSON(t, http.MethodPut, "/bb/v1/users/u1", `{"name":"Ann"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("PUT без email: статус %d, ожидался 400", rec.Code)
	}

	rec, env := api.doJSON(t, http.MethodPut, "/bb/v1/users/u1", `{"name":"Ann","email":"ann@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT: статус %d: %s", rec.Code, rec.Body.String())
	}
	if age := decodeData(t, env)["age"]; age != nil {
		t.Errorf("age = %v, ожидался null после замены", age)
	}

	rec, _ = api.doJSON(t, http.MethodPatch, "/bb/v1/users/u1/privacy", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("privacy без privacySettings: статус %d, ожидался 400", rec.Code)
	}
	rec, env = api.doJSON(t, http.MethodPatch, "/bb/v1/users/u1/privacy", `{"privacySettings":{"email":"private"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("privacy: статус %d: %s", rec.Code, rec.Body.String())
	}
	privacy, _ := decodeData(t, env)["privacySettings"].(map[string]any)
	if privacy["email"] != "private" {
		t.Errorf("privacySettings = %v", privacy)
	}

	rec, env = api.do(t, http.MethodPatch, "/bb/v1/users/u1/last-login", "", nil)
	if rec.Code != http.StatusOK || decodeData(t, env)["lastLogin"] == nil {
		t.Errorf("last-login: статус %d тело %s", rec.Code, rec.Body.String())
	}

	rec, env = api.do(t, http.MethodDelete, "/bb/v1/users/u1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: статус %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(env.Message, "identity provider") {
		t.Errorf("сообщение %q без оговорки об Identity Provider", env.Message)
	}

	rec, _ = api.do(t, http.MethodGet, "/bb/v1/users/u1", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("после удаления: статус %d, ожидался 404", rec.Code)
	}
}

func TestUsers_ListOrderedByCreation(t *testing.T) {
	api := newTestAPI(t)
	for _, uid := range []string{"a", "b", "c"} {
		api.doJSON(t, http.MethodPost, "/bb/v1/users", `{"uid":"`+uid+`","name":"N","email":"`+uid+`@example.com"}`)
		time.Sleep(2 * time.Millisecond)
	}

	rec, env := api.do(t, http.MethodGet, "/bb/v1/users", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: статус %d", rec.Code)
	}
	var users []map[string]any
	if err := json.Unmarshal(env.Data, &users); err != nil {
		t.Fatalf("data: %v", err)
	}
	if len(users) != 3 || users[0]["uid"] != "c" || users[2]["uid"] != "a" {
		t.Errorf("порядок = %v, ожидался c, b, a", users)
	}
}

func TestLogo_Lifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(t, http.MethodGet, "/bb/v1/logos", "", nil)
	if rec.Code != http.StatusOK || env.Message != "No logo found" || string(env.Data) != "null" {
		t.Errorf("пустой логотип: статус %d сообщение %q data %s", rec.Code, env.Message, env.Data)
	}

	rec, env = api.doJSON(t, http.MethodPost, "/bb/v1/logos", `{}`)
	if rec.Code != http.StatusBadRequest || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("без файла: статус %d код %q", rec.Code, env.Error.Code)
	}

	ct, body := multipartBody(t, nil, map[string][]byte{"logo": []byte("\x89PNG-1")}, "image/png")
	rec, env = api.do(t, http.MethodPost, "/bb/v1/logos", ct, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("первая загрузка: статус %d: %s", rec.Code, rec.Body.String())
	}
	first, _ := decodeData(t, env)["url"].(string)

	ct, body = multipartBody(t, nil, map[string][]byte{"logo": []byte("\x89PNG-2")}, "image/png")
	rec, env = api.do(t, http.MethodPost, "/bb/v1/logos", ct, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("замена: статус %d: %s", rec.Code, rec.Body.String())
	}
	second, _ := decodeData(t, env)["url"].(string)
	if first == second || api.files.Exists(first) || !api.files.Exists(second) {
		t.Errorf("замена логотипа: first=%q (exists=%v) second=%q (exists=%v)",
			first, api.files.Exists(first), second, api.files.Exists(second))
	}

	rec, env = api.do(t, http.MethodGet, "/bb/v1/logos/stats", "", nil)
	stats := decodeData(t, env)
	if rec.Code != http.StatusOK || stats["hasLogo"] != true {
		t.Errorf("stats: статус %d тело %s", rec.Code, rec.Body.String())
	}

	rec, _ = api.do(t, http.MethodDelete, "/bb/v1/logos", "", nil)
	if rec.Code != http.StatusOK || api.files.Exists(second) {
		t.Errorf("delete: статус %d, файл существует=%v", rec.Code, api.files.Exists(second))
	}
	rec, _ = api.do(t, http.MethodDelete, "/bb/v1/logos", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("повторный delete: статус %d, ожидался 404", rec.Code)
	}
}

func TestSiteSettings_DefaultsAndStatus(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(t, http.MethodGet, "/bb/v1/site-settings", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: статус %d", rec.Code)
	}
	defaults := model.DefaultSiteSettings()
	if decodeData(t, env)["site_name"] != defaults["site_name"] {
		t.Errorf("site_name по умолчанию не отдан: %s", env.Data)
	}

	rec, _ = api.doJSON(t, http.MethodPut, "/bb/v1/site-settings", `{"site_name":"Only name"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("PUT без обязательных полей: статус %d, ожидался 400", rec.Code)
	}

	rec, _ = api.doJSON(t, http.MethodPatch, "/bb/v1/site-settings/status", `{"maintenance_mode":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status: статус %d: %s", rec.Code, rec.Body.String())
	}

	rec, env = api.do(t, http.MethodGet, "/bb/v1/site-settings/maintenance-status", "", nil)
	if rec.Code != http.StatusOK || decodeData(t, env)["maintenance_mode"] != true {
		t.Errorf("maintenance-status: статус %d тело %s", rec.Code, rec.Body.String())
	}

	rec, env = api.doJSON(t, http.MethodPatch, "/bb/v1/site-settings", `{"site_name":"Renamed"}`)
	if rec.Code != http.StatusOK || decodeData(t, env)["maintenance_mode"] != true {
		t.Errorf("patch сбросил maintenance_mode: %s", rec.Body.String())
	}

	rec, env = api.do(t, http.MethodGet, "/bb/v1/seo", "", nil)
	if rec.Code != http.StatusOK || decodeData(t, env)["site_name"] != "Renamed" {
		t.Errorf("seo: статус %d тело %s", rec.Code, rec.Body.String())
	}

	rec, env = api.do(t, http.MethodPost, "/bb/v1/site-settings/reset", "", nil)
	if rec.Code != http.StatusOK || decodeData(t, env)["site_name"] != defaults["site_name"] {
		t.Errorf("reset: статус %d тело %s", rec.Code, rec.Body.String())
	}

	rec, _ = api.do(t, http.MethodDelete, "/bb/v1/site-settings", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete: статус %d", rec.Code)
	}
	rec, _ = api.do(t, http.MethodDelete, "/bb/v1/site-settings", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("повторный delete: статус %d, ожидался 404", rec.Code)
	}
}

func TestSubscribers_Lifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.doJSON(t, http.MethodPost, "/bb/v1/subscribers", `{"email":"Reader@Example.com "}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: статус %d: %s", rec.Code, rec.Body.String())
	}
	sub := decodeData(t, env)
	id, _ := sub["id"].(string)
	if sub["email"] != "reader@example.com" || sub["is_active"] != true {
		t.Errorf("subscriber = %v", sub)
	}

	rec, env = api.doJSON(t, http.MethodPost, "/bb/v1/subscribers", `{"email":"reader@example.com"}`)
	if rec.Code != http.StatusConflict || env.Error.Code != "CONFLICT" {
		t.Errorf("дубликат email: статус %d код %q", rec.Code, env.Error.Code)
	}

	rec, env = api.do(t, http.MethodPatch, "/bb/v1/subscribers/"+id+"/toggle", "", nil)
	if rec.Code != http.StatusOK || decodeData(t, env)["is_active"] != false {
		t.Errorf("toggle: статус %d тело %s", rec.Code, rec.Body.String())
	}

	rec, env = api.do(t, http.MethodGet, "/bb/v1/subscribers/stats/summary", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: статус %d", rec.Code)
	}
	stats := decodeData(t, env)
	if stats["total"] != float64(1) || stats["inactive"] != float64(1) {
		t.Errorf("stats = %v", stats)
	}

	rec, _ = api.do(t, http.MethodDelete, "/bb/v1/subscribers/"+id, "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete: статус %d", rec.Code)
	}
	rec, _ = api.do(t, http.MethodGet, "/bb/v1/subscribers/"+id, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("после удаления: статус %d, ожидался 404", rec.Code)
	}
}

func TestServeUpload_Containment(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{
		"/uploads/profiles/missing.png",
		"/uploads/../../etc/passwd",
		"/uploads/%2e%2e/%2e%2e/etc/passwd",
	} {
		rec, _ := api.do(t, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s: статус %d, ожидался 404", path, rec.Code)
		}
	}
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rec, _ := api.do(t, http.MethodGet, "/health/live", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("live: статус %d", rec.Code)
	}

	rec, _ = api.do(t, http.MethodGet, "/health/ready", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"skipped"`) {
		t.Errorf("ready: статус %d тело %s", rec.Code, rec.Body.String())
	}

	failing := newTestAPIWithChecker(t, staticChecker{status: "fail", message: "нет соединения"})
	rec, _ = failing.do(t, http.MethodGet, "/health/ready", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready при недоступном хранилище: статус %d, ожидался 503", rec.Code)
	}
}

func TestOverallStatus(t *testing.T) {
	tests := []struct {
		statuses []string
		want     string
	}{
		{[]string{"ok", "ok"}, "ok"},
		{[]string{"ok", "degraded"}, "degraded"},
		{[]string{"fail", "degraded"}, "fail"},
	}
	for _, tt := range tests {
		if got := overallStatus(tt.statuses...); got != tt.want {
			t.Errorf("overallStatus(%v) = %q, ожидалось %q", tt.statuses, got, tt.want)
		}
	}
}

func TestHealthReady_KeycloakFailureIsDegraded(t *testing.T) {
	h := NewHealthHandler(staticChecker{status: "ok"}, staticChecker{status: "fail", message: "timeout"})

	rec := httptest.NewRecorder()
	h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("статус %d, ожидался 200", rec.Code)
	}
	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if resp.Status != statusDegraded {
		t.Errorf("status = %q, ожидался degraded", resp.Status)
	}
	if resp.Checks["keycloak"].Status != statusFail {
		t.Errorf("checks.keycloak = %+v", resp.Checks["keycloak"])
	}
}
