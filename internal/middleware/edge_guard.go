package middleware

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/jobfinder/dashboard-go/internal/audit"
	"github.com/jobfinder/dashboard-go/internal/config"
	"github.com/jobfinder/dashboard-go/internal/token"
)

// EdgeGuard redirects page requests by the presence of the session cookie.
// It never checks whether the token is still valid.
type EdgeGuard struct {
	cookieName string
	protected  []string
	authOnly   []string
}

func NewEdgeGuard(cookieName string) *EdgeGuard {
	return &EdgeGuard{
		cookieName: cookieName,
		protected:  config.ProtectedRoutes,
		authOnly:   config.AuthRoutes,
	}
}

func (g *EdgeGuard) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Match on the path the static handler will actually serve.
		clean := path.Clean("/" + r.URL.Path)
		hasMarker := token.FromRequest(r, g.cookieName) != ""

		if !hasMarker && matchesAny(clean, g.protected) {
			target := config.RouteLogin + "?" + url.Values{"from": {clean}}.Encode()
			g.redirect(w, r, target)
			return
		}

		if hasMarker && matchesAny(clean, g.authOnly) {
			g.redirect(w, r, config.RouteDashboard)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (g *EdgeGuard) redirect(w http.ResponseWriter, r *http.Request, target string) {
	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventGuardRedirect,
		Route:   target,
		Details: map[string]interface{}{"from": r.URL.Path},
	})
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

// matchesAny reports whether path is one of prefixes or below one of them.
func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, strings.TrimRight(p, "/")+"/") {
			return true
		}
	}
	return false
}
