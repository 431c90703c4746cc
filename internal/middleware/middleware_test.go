package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "job_finder_token"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("page"))
	})
}

func TestEdgeGuard(t *testing.T) {
	handler := NewEdgeGuard(cookieName).Handler(okHandler())

	tests := []struct {
		name         string
		path         string
		withCookie   bool
		wantStatus   int
		wantLocation string
	}{
		{"protected without marker", "/dashboard", false, http.StatusTemporaryRedirect, "/login?from=%2Fdashboard"},
		{"nested protected without marker", "/dashboard/jobs/42", false, http.StatusTemporaryRedirect, "/login?from=%2Fdashboard%2Fjobs%2F42"},
		{"double slash protected without marker", "//dashboard", false, http.StatusTemporaryRedirect, "/login?from=%2Fdashboard"},
		{"trailing slash protected without marker", "/dashboard/", false, http.StatusTemporaryRedirect, "/login?from=%2Fdashboard"},
		{"dot segments protected without marker", "/assets/../dashboard/jobs", false, http.StatusTemporaryRedirect, "/login?from=%2Fdashboard%2Fjobs"},
		{"double slash login with marker", "//login", true, http.StatusTemporaryRedirect, "/dashboard"},
		{"protected with marker", "/dashboard/jobs", true, http.StatusOK, ""},
		{"login with marker", "/login", true, http.StatusTemporaryRedirect, "/dashboard"},
		{"register with marker", "/register", true, http.StatusTemporaryRedirect, "/dashboard"},
		{"login without marker", "/login", false, http.StatusOK, ""},
		{"prefix lookalike is public", "/dashboards", false, http.StatusOK, ""},
		{"public page", "/", false, http.StatusOK, ""},
		{"asset", "/assets/app.js", true, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.withCookie {
				req.AddCookie(&http.Cookie{Name: cookieName, Value: "opaque"})
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
		})
	}

	t.Run("empty cookie counts as no marker", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: ""})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	})
}

func TestSecurityHeaders(t *testing.T) {
	t.Run("development", func(t *testing.T) {
		handler := NewSecurityHeadersMiddleware(false, "http://localhost:3000").Handler(okHandler())
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
		assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "connect-src 'self' http://localhost:3000;")
		assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
	})

	t.Run("production adds HSTS", func(t *testing.T) {
		handler := NewSecurityHeadersMiddleware(true, "").Handler(okHandler())
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
		assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "connect-src 'self';")
	})
}

func TestBodyLimit(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	t.Run("rejects declared oversize body", func(t *testing.T) {
		handler := NewBodyLimitMiddleware(8).Handler(echo)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/", strings.NewReader("0123456789")))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Contains(t, rec.Body.String(), "Request body too large")
	})

	t.Run("caps undeclared body", func(t *testing.T) {
		handler := NewBodyLimitMiddleware(8).Handler(echo)
		req := httptest.NewRequest("POST", "/", strings.NewReader("0123456789"))
		req.ContentLength = -1
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("allows small body", func(t *testing.T) {
		handler := NewBodyLimitMiddleware(0).Handler(echo)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/", strings.NewReader("{}")))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = original })

	handler := chimiddleware.RequestID(RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("missing"))
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/nope", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/nope", entry["path"])
	assert.Equal(t, 404.0, entry["status"])
	assert.Equal(t, 7.0, entry["bytes"])
	assert.NotEmpty(t, entry["request_id"])
}
