package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("allows requests under limit", func(t *testing.T) {
		limiter := NewRateLimiter()

		for i := 0; i < 5; i++ {
			q := limiter.Check(ctx, "10.0.0.1", 10)
			assert.True(t, q.Allowed)
			assert.Equal(t, 10-i-1, q.Remaining)
		}
	})

	t.Run("blocks requests over limit", func(t *testing.T) {
		limiter := NewRateLimiter()

		for i := 0; i < 5; i++ {
			limiter.Check(ctx, "10.0.0.2", 5)
		}

		q := limiter.Check(ctx, "10.0.0.2", 5)
		assert.False(t, q.Allowed)
		assert.Equal(t, 0, q.Remaining)
	})

	t.Run("tracks clients separately", func(t *testing.T) {
		limiter := NewRateLimiter()

		for i := 0; i < 5; i++ {
			limiter.Check(ctx, "10.0.0.3", 5)
		}

		assert.True(t, limiter.Check(ctx, "10.0.0.4", 5).Allowed)
	})

	t.Run("window slides", func(t *testing.T) {
		limiter := NewRateLimiter()
		now := time.Now()
		limiter.now = func() time.Time { return now }

		first := limiter.Check(ctx, "10.0.0.5", 1)
		assert.Equal(t, now.Add(rateWindow), first.ResetAt)

		now = now.Add(10 * time.Second)
		blocked := limiter.Check(ctx, "10.0.0.5", 1)
		assert.False(t, blocked.Allowed)
		assert.Equal(t, first.ResetAt, blocked.ResetAt)

		now = now.Add(rateWindow)
		assert.True(t, limiter.Check(ctx, "10.0.0.5", 1).Allowed)
	})

	t.Run("sweep forgets idle keys", func(t *testing.T) {
		limiter := NewRateLimiter()
		now := time.Now()
		limiter.now = func() time.Time { return now }

		limiter.Check(ctx, "10.0.0.6", 5)
		now = now.Add(2 * sweepInterval)
		limiter.Check(ctx, "10.0.0.7", 5)

		_, kept := limiter.hits["10.0.0.6"]
		assert.False(t, kept)
		assert.Len(t, limiter.hits, 1)
	})
}

func TestRedisRateLimiter(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	limiter := NewRedisRateLimiter(client)

	t.Run("counts across calls", func(t *testing.T) {
		q := limiter.Check(ctx, "10.0.0.1", 2)
		assert.True(t, q.Allowed)
		assert.Equal(t, 1, q.Remaining)

		q = limiter.Check(ctx, "10.0.0.1", 2)
		assert.True(t, q.Allowed)
		assert.Equal(t, 0, q.Remaining)

		q = limiter.Check(ctx, "10.0.0.1", 2)
		assert.False(t, q.Allowed)
		assert.Equal(t, 0, q.Remaining)
		assert.True(t, mr.Exists("jobfinder:ratelimit:10.0.0.1"))
	})

	t.Run("allows when redis is unavailable", func(t *testing.T) {
		down := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
		t.Cleanup(func() { down.Close() })

		q := NewRedisRateLimiter(down).Check(ctx, "10.0.0.9", 3)
		assert.True(t, q.Allowed)
		assert.Equal(t, 2, q.Remaining)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("sets rate limit headers", func(t *testing.T) {
		handler := NewRateLimitMiddleware(nil, 100).Handler(ok)

		req := httptest.NewRequest("GET", "/dashboard", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "100", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "99", rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
	})

	t.Run("returns 429 when rate limited", func(t *testing.T) {
		handler := NewRateLimitMiddleware(NewRateLimiter(), 2).Handler(ok)

		for i := 0; i < 2; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		retry, err := strconv.Atoi(rec.Header().Get("Retry-After"))
		require.NoError(t, err)
		assert.InDelta(t, 60, retry, 1)
		assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")
	})

	t.Run("zero limit disables", func(t *testing.T) {
		handler := NewRateLimitMiddleware(nil, 0).Handler(ok)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	})

	t.Run("negative limit uses default", func(t *testing.T) {
		handler := NewRateLimitMiddleware(nil, -1).Handler(ok)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, "300", rec.Header().Get("X-RateLimit-Limit"))
	})
}
