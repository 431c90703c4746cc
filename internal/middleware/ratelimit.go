package middleware

import (
	"context"
	"math"
	"net"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jobfinder/dashboard-go/internal/config"
	apperrors "github.com/jobfinder/dashboard-go/internal/errors"
)

const (
	rateWindow     = time.Minute
	sweepInterval  = time.Minute
	maxTrackedKeys = 10000
)

// Quota is the outcome of one rate limit check.
type Quota struct {
	Allowed   bool
	Remaining int
	// ResetAt is when the oldest counted request leaves the window.
	ResetAt time.Time
}

// Limiter counts requests per key in a sliding one-minute window.
type Limiter interface {
	Check(ctx context.Context, key string, limit int) Quota
}

// RateLimiter is a process-local Limiter. Each key keeps the sorted
// arrival times of its requests inside the window.
type RateLimiter struct {
	mu        sync.Mutex
	hits      map[string][]time.Time
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		hits:      make(map[string][]time.Time),
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (rl *RateLimiter) Check(_ context.Context, key string, limit int) Quota {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	hits := inWindow(rl.hits[key], now)
	q := Quota{ResetAt: now.Add(rateWindow)}
	if len(hits) > 0 {
		q.ResetAt = hits[0].Add(rateWindow)
	}

	if len(hits) < limit {
		hits = append(hits, now)
		q.Allowed = true
		q.Remaining = limit - len(hits)
	}
	rl.hits[key] = hits
	return q
}

// inWindow drops the arrivals older than the window ending at now.
func inWindow(hits []time.Time, now time.Time) []time.Time {
	start := now.Add(-rateWindow)
	i, _ := slices.BinarySearchFunc(hits, start, func(t, target time.Time) int {
		if t.After(target) {
			return 1
		}
		return -1
	})
	return hits[i:]
}

// sweep forgets idle keys, and arbitrary ones when too many are tracked.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < sweepInterval {
		return
	}
	rl.lastSweep = now

	for key, hits := range rl.hits {
		if len(inWindow(hits, now)) == 0 {
			delete(rl.hits, key)
		}
	}
	for key := range rl.hits {
		if len(rl.hits) <= maxTrackedKeys {
			break
		}
		delete(rl.hits, key)
	}
}

// RateLimitMiddleware limits requests per client IP. A limit of zero
// disables it.
type RateLimitMiddleware struct {
	limiter Limiter
	limit   int
	now     func() time.Time
}

func NewRateLimitMiddleware(limiter Limiter, limit int) *RateLimitMiddleware {
	if limiter == nil {
		limiter = NewRateLimiter()
	}
	if limit < 0 {
		limit = config.DefaultRateLimitPerMin
	}
	return &RateLimitMiddleware{limiter: limiter, limit: limit, now: time.Now}
}

func (m *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	if m.limit == 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		q := m.limiter.Check(r.Context(), ip, m.limit)

		h := w.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(m.limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(q.Remaining))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(q.ResetAt.Unix(), 10))

		if !q.Allowed {
			retry := int(math.Ceil(q.ResetAt.Sub(m.now()).Seconds()))
			log.Warn().Str("ip", ip).Str("path", r.URL.Path).Int("retry_after", retry).Msg("rate limit exceeded")
			h.Set("Retry-After", strconv.Itoa(max(retry, 1)))
			writeError(w, http.StatusTooManyRequests, apperrors.ErrCodeRateLimitExceeded, "Too many requests. Please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP expects chi's RealIP to have run first.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
