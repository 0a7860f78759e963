package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveillance-map/be/models"
	"surveillance-map/be/services"
)

type stubVerifier map[string]*services.Claims

func (s stubVerifier) Verify(token string) (*services.Claims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, services.ErrTokenInvalid
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	verifier := stubVerifier{
		"god-token":    {Username: "admin", Role: models.RolePrivileged},
		"viewer-token": {Username: "guest", Role: "viewer"},
	}
	r := gin.New()
	r.POST("/mutate", AuthMiddleware(verifier), RequireRole(models.RolePrivileged), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentUsername(c)})
	})
	return r
}

func doMutate(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	req, err := http.NewRequest(http.MethodPost, "/mutate", nil)
	require.NoError(t, err)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	newTestRouter().ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"no header", "", http.StatusUnauthorized, `{"error":"Access token required"}`},
		{"bare scheme", "Bearer", http.StatusUnauthorized, `{"error":"Access token required"}`},
		{"wrong scheme", "Basic YWRtaW46YWRtaW4xMjM=", http.StatusUnauthorized, `{"error":"Access token required"}`},
		{"bad token", "Bearer tampered", http.StatusForbidden, `{"error":"Invalid or expired token"}`},
		{"wrong role", "Bearer viewer-token", http.StatusForbidden, `{"error":"God account required"}`},
		{"privileged", "Bearer god-token", http.StatusOK, `{"user":"admin"}`},
		{"lowercase scheme", "bearer god-token", http.StatusOK, `{"user":"admin"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doMutate(t, tc.header)
			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "", bearerToken("Bearer a b"))
	assert.Equal(t, "", bearerToken(""))
}
