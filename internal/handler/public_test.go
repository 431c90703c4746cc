package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobfinder/dashboard-go/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		APIURL:          "https://api.example.com",
		APIPrefix:       "/api",
		JWTCookieName:   "job_finder_token",
		TokenExpiryDays: 7,
		AppEnv:          "production",
		SiteURL:         "https://jobs.example.com",
		EnableAnalytics: true,
	}
}

func TestPublicHandler(t *testing.T) {
	h := NewPublicHandler(testConfig())
	h.now = func() time.Time { return time.UnixMilli(1700000000000) }
	pages := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("page " + r.URL.Path))
	})
	router := h.Routes(pages)

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","timestamp":1700000000000}`, rec.Body.String())
	})

	t.Run("config json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/config.json", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

		var body PublicConfig
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "https://api.example.com", body.APIURL)
		assert.Equal(t, "job_finder_token", body.CookieName)
		assert.Equal(t, 7, body.TokenExpiryDays)
		assert.True(t, body.Features.Analytics)
		assert.False(t, body.Features.Notifications)
	})

	t.Run("home redirects to dashboard", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, config.RouteDashboard, rec.Header().Get("Location"))
	})

	t.Run("logout clears cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/logout", nil)
		req.AddCookie(&http.Cookie{Name: "job_finder_token", Value: "opaque"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, config.RouteLogin, rec.Header().Get("Location"))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "job_finder_token", cookies[0].Name)
		assert.Equal(t, -1, cookies[0].MaxAge)
		assert.True(t, cookies[0].Secure)
	})

	t.Run("other paths go to pages", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/dashboard/jobs", nil))

		assert.Equal(t, "page /dashboard/jobs", rec.Body.String())
	})
}
