//go:build integration

package integration

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bissquit/course-garden/internal/pkg/httputil"
	"github.com/bissquit/course-garden/internal/pkg/ratelimit"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimit_RedisSharedAcrossInstances(t *testing.T) {
	client, err := ratelimit.NewRedisClient(t.Context(), testRedisAddr, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cfg := ratelimit.Config{Requests: 2, Window: time.Minute}
	scope := "login-" + uuid.NewString()[:8]
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Two replicas sharing one Redis.
	replicas := []http.Handler{
		httputil.RateLimitMiddleware(ratelimit.NewRedis(client, cfg), scope)(ok),
		httputil.RateLimitMiddleware(ratelimit.NewRedis(client, cfg), scope)(ok),
	}

	hit := func(h http.Handler) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "203.0.113.7:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, hit(replicas[0]).Code)
	assert.Equal(t, http.StatusNoContent, hit(replicas[1]).Code)

	rec := hit(replicas[0])
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())

	assert.Equal(t, http.StatusTooManyRequests, hit(replicas[1]).Code)
}
