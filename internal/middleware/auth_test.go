package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/lumina-api/internal/models"
)

const testSecret = "middleware-secret"

type fakeSessions struct {
	user *models.SessionUser
}

func (f *fakeSessions) CurrentUser(ctx context.Context) (*models.SessionUser, error) {
	if f.user == nil {
		return nil, assert.AnError
	}
	return f.user, nil
}

func signToken(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()
	claims := Claims{
		UserID:   "admin",
		Username: "Administrator",
		Role:     models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthRouter(sessions SessionLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", Auth(testSecret, sessions), RequireAdmin(), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c))
	})
	return r
}

func TestAuth(t *testing.T) {
	valid := signToken(t, testSecret, time.Now().Add(time.Hour))
	admin := models.AdminUser()

	tests := []struct {
		name     string
		header   string
		query    string
		sessions SessionLookup
		status   int
	}{
		{name: "bearer token", header: "Bearer " + valid, status: http.StatusOK},
		{name: "token query parameter", query: "?token=" + valid, status: http.StatusOK},
		{name: "missing token", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, status: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + signToken(t, "other", time.Now().Add(time.Hour)), status: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signToken(t, testSecret, time.Now().Add(-time.Hour)), status: http.StatusUnauthorized},
		{name: "live session", header: "Bearer " + valid, sessions: &fakeSessions{user: &admin}, status: http.StatusOK},
		{name: "ended session", header: "Bearer " + valid, sessions: &fakeSessions{}, status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/private"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			newAuthRouter(tt.sessions).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code, w.Body.String())
			if tt.status == http.StatusOK {
				assert.Equal(t, "admin", w.Body.String())
			}
		})
	}
}

func TestAuth_ExpiredMessage(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, time.Now().Add(-time.Minute)))
	newAuthRouter(nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token has expired")
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		origins []string
		origin  string
		allowed string
	}{
		{name: "listed origin", origins: []string{"http://localhost:5173"}, origin: "http://localhost:5173", allowed: "http://localhost:5173"},
		{name: "wildcard", origins: []string{"*"}, origin: "http://example.com", allowed: "*"},
		{name: "unlisted origin", origins: []string{"http://localhost:5173"}, origin: "http://evil.test", allowed: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(tt.origins))
			r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Origin", tt.origin)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.allowed, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
