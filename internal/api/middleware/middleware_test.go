package middleware

import (
	"Creatr/internal/pkg/logger"
	"Creatr/internal/pkg/security"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newEngine(mw ...gin.HandlerFunc) (*gin.Engine, *security.Identity, *string) {
	gin.SetMode(gin.TestMode)
	var (
		got     security.Identity
		traceID string
	)
	r := gin.New()
	r.Use(mw...)
	r.GET("/x", func(c *gin.Context) {
		if id := GetIdentity(c); id != nil {
			got = *id
		}
		traceID = logger.TraceID(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r, &got, &traceID
}

func TestAuthMiddleware(t *testing.T) {
	security.Setup("mw-secret", "creatr-test")
	r, got, _ := newEngine(AuthMiddleware())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Contains(t, w.Body.String(), `"code":401`)

	tok, err := security.GenerateToken(&security.Identity{Subject: "sub-1", Email: "a@b.c"}, time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "sub-1", got.Subject)
	require.Equal(t, "a@b.c", got.Email)
}

func TestTraceMiddleware(t *testing.T) {
	r, _, traceID := newEngine(TraceMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(TraceHeader, "trace-abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "trace-abc", *traceID)
	require.Equal(t, "trace-abc", w.Header().Get(TraceHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NotEmpty(t, *traceID)
	require.Equal(t, *traceID, w.Header().Get(TraceHeader))
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	r, _, _ := newEngine(rl.Middleware())

	hit := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = ip + ":4000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, hit("10.0.0.1"))
	require.Equal(t, http.StatusOK, hit("10.0.0.1"))
	require.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1"))
	require.Equal(t, http.StatusOK, hit("10.0.0.2"))
	require.Equal(t, 2, rl.Len())
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.limiterFor("a")
	rl.limiterFor("b")
	now = now.Add(rl.idle + time.Second)
	rl.limiterFor("c")

	require.Equal(t, 1, rl.Len())
}

func TestRateLimiter_SweepsAtMostEveryHalfIdle(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	start := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	now := start
	rl.now = func() time.Time { return now }

	rl.limiterFor("a")
	now = start.Add(rl.idle / 4)
	rl.limiterFor("b")

	now = start.Add(rl.idle + time.Second)
	rl.limiterFor("c")
	require.Equal(t, 2, rl.Len())

	// b 已超过 idle，但距上次清理不足 idle/2
	now = now.Add(rl.idle / 4)
	for i := 0; i < 100; i++ {
		rl.limiterFor("spray-" + strconv.Itoa(i))
	}
	require.Equal(t, 102, rl.Len())

	now = now.Add(rl.idle / 4)
	rl.limiterFor("d")
	require.Equal(t, 102, rl.Len())
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	for i := 0; i < 100; i++ {
		require.True(t, rl.limiterFor("a").Allow())
	}
}
