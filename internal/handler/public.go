package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jobfinder/dashboard-go/internal/audit"
	"github.com/jobfinder/dashboard-go/internal/config"
	"github.com/jobfinder/dashboard-go/internal/token"
)

// PublicConfig is what the dashboard bundle reads at startup.
type PublicConfig struct {
	APIURL          string          `json:"apiUrl"`
	APIPrefix       string          `json:"apiPrefix"`
	CookieName      string          `json:"cookieName"`
	TokenExpiryDays int             `json:"tokenExpiryDays"`
	SiteURL         string          `json:"siteUrl"`
	Features        config.Features `json:"features"`
}

type PublicHandler struct {
	cfg *config.Config
	now func() time.Time
}

func NewPublicHandler(cfg *config.Config) *PublicHandler {
	return &PublicHandler{cfg: cfg, now: time.Now}
}

// Routes serves the fixed endpoints and hands everything else to pages.
func (h *PublicHandler) Routes(pages http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/health", h.Health)
	r.Get("/config.json", h.Config)
	r.Get("/", h.Home)
	r.Get("/logout", h.Logout)
	r.NotFound(pages.ServeHTTP)
	return r
}

func (h *PublicHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": h.now().UnixMilli(),
	})
}

func (h *PublicHandler) Config(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, PublicConfig{
		APIURL:          h.cfg.APIURL,
		APIPrefix:       h.cfg.APIPrefix,
		CookieName:      h.cfg.JWTCookieName,
		TokenExpiryDays: h.cfg.TokenExpiryDays,
		SiteURL:         h.cfg.SiteURL,
		Features:        h.cfg.Features(),
	})
}

func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, config.RouteDashboard, http.StatusFound)
}

// Logout drops the session cookie and sends the browser to the login page.
func (h *PublicHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token.FromRequest(r, h.cfg.JWTCookieName) != "" {
		audit.LogFromRequest(r, audit.Event{Type: audit.EventLogout})
	}
	token.ClearCookie(w, h.cfg.JWTCookieName, h.cfg.IsProduction())
	http.Redirect(w, r, config.RouteLogin, http.StatusFound)
}
