package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agenda-marketplace/internal/logging"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserID(c), "business": BusinessID(c), "role": Role(c)})
	})
	r.GET("/owner", AuthMiddleware(testSecret), RequireRole(RoleOwner), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := authRouter()
	exp := time.Now().Add(time.Hour).Unix()

	t.Run("valid token", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{"sub": 3, "businessId": 9, "role": "owner", "exp": exp}, testSecret)
		w := doGet(r, "/me", tok)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":3,"business":9,"role":"owner"}`, w.Body.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := doGet(r, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "missing_authorization_header")
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{"sub": 3, "businessId": 9, "exp": exp}, "other")
		w := doGet(r, "/me", tok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_token")
	})

	t.Run("expired", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{"sub": 3, "businessId": 9, "exp": time.Now().Add(-time.Minute).Unix()}, testSecret)
		assert.Equal(t, http.StatusUnauthorized, doGet(r, "/me", tok).Code)
	})

	t.Run("missing business claim", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{"sub": 3, "exp": exp}, testSecret)
		w := doGet(r, "/me", tok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_token_payload")
	})

	t.Run("role defaults to employee", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{"sub": 3, "businessId": 9, "exp": exp}, testSecret)
		w := doGet(r, "/me", tok)
		assert.Contains(t, w.Body.String(), `"role":"employee"`)
	})
}

func TestRequireRole(t *testing.T) {
	r := authRouter()
	exp := time.Now().Add(time.Hour).Unix()

	owner := signToken(t, jwt.MapClaims{"sub": 1, "businessId": 1, "role": "owner", "exp": exp}, testSecret)
	employee := signToken(t, jwt.MapClaims{"sub": 2, "businessId": 1, "role": "employee", "exp": exp}, testSecret)

	assert.Equal(t, http.StatusNoContent, doGet(r, "/owner", owner).Code)
	assert.Equal(t, http.StatusForbidden, doGet(r, "/owner", employee).Code)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

type stubLimiter struct {
	allow bool
	err   error
}

func (s stubLimiter) Allow(context.Context, string) (bool, error) { return s.allow, s.err }

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		limiter Limiter
		want    int
	}{
		{"allowed", stubLimiter{allow: true}, http.StatusOK},
		{"blocked", stubLimiter{allow: false}, http.StatusTooManyRequests},
		{"limiter down fails open", stubLimiter{err: errors.New("redis down")}, http.StatusOK},
		{"no limiter", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", RateLimit(tt.limiter, logging.Discard()), func(c *gin.Context) { c.Status(http.StatusOK) })
			assert.Equal(t, tt.want, doGet(r, "/x", "").Code)
		})
	}
}
