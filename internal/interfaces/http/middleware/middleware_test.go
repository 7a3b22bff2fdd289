package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listings/backend/internal/infrastructure/auth"
	"github.com/listings/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows requests within limit", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute)
		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("client1"), "request %d should be allowed", i+1)
		}
		assert.False(t, limiter.Allow("client1"))
	})

	t.Run("separate limits per client", func(t *testing.T) {
		limiter := NewRateLimiter(1, time.Minute)
		assert.True(t, limiter.Allow("clientA"))
		assert.False(t, limiter.Allow("clientA"))
		assert.True(t, limiter.Allow("clientB"))
	})

	t.Run("resets after window", func(t *testing.T) {
		limiter := NewRateLimiter(1, 50*time.Millisecond)
		assert.True(t, limiter.Allow("client2"))
		assert.False(t, limiter.Allow("client2"))
		time.Sleep(60 * time.Millisecond)
		assert.True(t, limiter.Allow("client2"))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newEngine(RateLimit(NewRateLimiter(1, time.Minute)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
}

func TestBodyLimitRejectsLargeBody(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(10))
	r.POST("/upload", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(strings.Repeat("x", 50)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	r := newEngine(RequestID())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDKey))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDKey, "req-abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-abc", w.Header().Get(RequestIDKey))
}

func TestCORSPreflight(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://app.example.com"}
	r := gin.New()
	r.Use(CORSWithConfig(cfg))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

type stubBanChecker struct{ banned map[string]bool }

func (s stubBanChecker) IsBanned(ip string) bool { return s.banned[ip] }

func TestIPBanBlocksBannedAddress(t *testing.T) {
	r := newEngine(IPBan(stubBanChecker{banned: map[string]bool{"203.0.113.7": true}}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "198.51.100.1:1234"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAuth(t *testing.T) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "middleware-test-secret",
		Expiration: time.Hour,
		Issuer:     "listings-test",
	})
	adminID := uuid.New()

	r := gin.New()
	r.Use(AdminAuth(jwtService))
	r.GET("/me", func(c *gin.Context) {
		id, ok := GetAdminID(c)
		require.True(t, ok)
		c.String(http.StatusOK, id.String())
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+"not-a-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
	})

	t.Run("valid token", func(t *testing.T) {
		token, _, err := jwtService.GenerateToken(adminID, "alice")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, adminID.String(), w.Body.String())
	})
}
