package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveillance-map/be/config"
	"surveillance-map/be/models"
	"surveillance-map/be/services"
	"surveillance-map/be/store"
)

type testServer struct {
	router  *gin.Engine
	auth    *services.AuthService
	backend *switchableBackend
	cfg     *config.Config
}

// switchableBackend lets a test make saves fail.
type switchableBackend struct {
	store.Backend
	failSave bool
}

func (b *switchableBackend) Save(ctx context.Context, cameras []models.Camera) error {
	if b.failSave {
		return errors.New("read-only file system")
	}
	return b.Backend.Save(ctx, cameras)
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	cfg := config.Load()
	cfg.Admin = config.AdminConfig{Username: "admin", Password: "admin123"}
	cfg.JWT = config.JWTConfig{Secret: "integration-secret", Expiry: "24h"}
	cfg.Server.StaticDir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Server.StaticDir, "index.html"), []byte("<h1>map</h1>"), 0o644))

	backend := &switchableBackend{Backend: store.NewFileBackend(filepath.Join(t.TempDir(), "cameras.json"))}
	auth, err := services.NewAuthService(cfg.Admin, cfg.JWT)
	require.NoError(t, err)
	hub := services.NewHub()

	router, err := setupRouter(routerDeps{
		cfg:     cfg,
		auth:    auth,
		cameras: services.NewCameraService(backend, hub),
		hub:     hub,
	})
	require.NoError(t, err)
	return &testServer{router: router, auth: auth, backend: backend, cfg: cfg}
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

func (s *testServer) login(t *testing.T) string {
	w, body := s.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	return body["token"].(string)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	_, err := time.Parse(time.RFC3339Nano, body["timestamp"].(string))
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"admin","password":"admin123"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, map[string]any{"username": "admin", "role": "god"}, body["user"])

	w, body = s.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"admin","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, map[string]any{"error": "Invalid credentials"}, body)

	w, body = s.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"nobody","password":"admin123"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, map[string]any{"error": "Invalid credentials"}, body)

	w, body = s.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username and password required", body["error"])
}

func TestVerify(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	w, body := s.do(t, http.MethodGet, "/api/auth/verify", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, map[string]any{"username": "admin", "role": "god"}, body["user"])

	w, _ = s.do(t, http.MethodGet, "/api/auth/verify", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body = s.do(t, http.MethodGet, "/api/auth/verify", token+"x", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Invalid or expired token", body["error"])

	w, _ = s.do(t, http.MethodPost, "/api/auth/logout", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body = s.do(t, http.MethodPost, "/api/auth/logout", token, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
}

func TestMutatingRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	expiredAuth, err := services.NewAuthService(s.cfg.Admin, s.cfg.JWT)
	require.NoError(t, err)
	expiredAuth.WithClock(func() time.Time { return time.Now().Add(-48 * time.Hour) })
	expired, _, err := expiredAuth.Issue(models.User{Username: "admin", Role: models.RolePrivileged})
	require.NoError(t, err)

	routes := []struct{ method, path, body string }{
		{http.MethodPost, "/api/cameras", `{"lat":-31.95,"lng":115.86,"type":"Traffic"}`},
		{http.MethodPut, "/api/cameras/USER-1", `{"owner":"City"}`},
		{http.MethodDelete, "/api/cameras/USER-1", ""},
	}
	for _, r := range routes {
		w, body := s.do(t, r.method, r.path, "", r.body)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", r.method, r.path)
		assert.Equal(t, "Access token required", body["error"])

		w, body = s.do(t, r.method, r.path, expired, r.body)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", r.method, r.path)
		assert.Equal(t, "Invalid or expired token", body["error"])

		w, _ = s.do(t, r.method, r.path, "eyJhbGciOiJIUzI1NiJ9.e30.tampered", r.body)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", r.method, r.path)
	}

	viewer, _, err := s.auth.Issue(models.User{Username: "guest", Role: "viewer"})
	require.NoError(t, err)
	w, body := s.do(t, http.MethodPost, "/api/cameras", viewer, `{"lat":1,"lng":2,"type":"x"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "God account required", body["error"])
}

func TestCameraLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	w, body := s.do(t, http.MethodPost, "/api/cameras", token, `{"lat":-31.95,"lng":115.86,"type":"Traffic","id":"MINE"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, body["success"])
	created := body["camera"].(map[string]any)
	id := created["id"].(string)
	assert.True(t, strings.HasPrefix(id, "USER-"), id)
	assert.Equal(t, "admin", created["created_by"])
	assert.Equal(t, "User Submitted", created["data_source"])
	assert.NotEmpty(t, created["created_at"])

	w, body = s.do(t, http.MethodGet, "/api/cameras/"+id, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, body)

	w, body = s.do(t, http.MethodPut, "/api/cameras/"+id, token, `{"owner":"City","id":"OTHER"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := body["camera"].(map[string]any)
	assert.Equal(t, id, updated["id"])
	assert.Equal(t, "City", updated["owner"])
	assert.Equal(t, -31.95, updated["lat"])
	assert.Equal(t, 115.86, updated["lng"])
	assert.Equal(t, "Traffic", updated["type"])
	assert.Equal(t, "admin", updated["updated_by"])
	assert.NotEmpty(t, updated["updated_at"])

	w, body = s.do(t, http.MethodGet, "/api/cameras", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["total"])
	assert.Len(t, body["cameras"], 1)

	w, body = s.do(t, http.MethodDelete, "/api/cameras/"+id, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"success": true, "message": "Camera deleted"}, body)

	w, body = s.do(t, http.MethodDelete, "/api/cameras/"+id, token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Camera not found", body["error"])
}

func TestCameraErrors(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	w, body := s.do(t, http.MethodGet, "/api/cameras/UNKNOWN", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, map[string]any{"error": "Camera not found"}, body)

	w, body = s.do(t, http.MethodPut, "/api/cameras/UNKNOWN", token, `{"owner":"City"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Camera not found", body["error"])

	w, body = s.do(t, http.MethodPost, "/api/cameras", token, `{"lat":-31.95,"type":"Traffic"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields: lat, lng, type", body["error"])

	w, body = s.do(t, http.MethodPost, "/api/cameras", token, `{"lat":-31.95,"lng":115.86,"type":"Traffic","direction":400}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "direction must be a bearing between 0 and 359", body["error"])

	w, _ = s.do(t, http.MethodPost, "/api/cameras", token, `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = s.do(t, http.MethodGet, "/api/nope", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", body["error"])
}

func TestPersistenceFailures(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t)

	_, body := s.do(t, http.MethodPost, "/api/cameras", token, `{"lat":-31.95,"lng":115.86,"type":"Traffic"}`)
	id := body["camera"].(map[string]any)["id"].(string)

	s.backend.failSave = true

	w, body := s.do(t, http.MethodPost, "/api/cameras", token, `{"lat":1,"lng":2,"type":"Traffic"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to save camera", body["error"])

	w, body = s.do(t, http.MethodPut, "/api/cameras/"+id, token, `{"owner":"City"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to update camera", body["error"])

	w, body = s.do(t, http.MethodDelete, "/api/cameras/"+id, token, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to delete camera", body["error"])
}

func TestStaticAssetsAndMetrics(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>map</h1>")

	s.do(t, http.MethodGet, "/api/cameras", "", "")
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "camera_registry_http_requests_total")
}

func TestOriginMatcher(t *testing.T) {
	assert.True(t, originMatcher([]string{"*"})("https://anything.example"))

	match := originMatcher([]string{"http://localhost:5173/", "https://map.example.org"})
	assert.True(t, match("http://localhost:5173"))
	assert.True(t, match("https://map.example.org"))
	assert.False(t, match("https://evil.example"))
}
