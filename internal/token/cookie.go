package token

import (
	"net/http"
	"time"
)

// Cookie builds the session-marker cookie the dashboard reads. It is not
// HttpOnly because the browser bundle attaches the bearer header itself.
func Cookie(name, value string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearCookie expires the marker immediately.
func ClearCookie(w http.ResponseWriter, name string, secure bool) {
	c := Cookie(name, "", 0, secure)
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

// FromRequest returns the marker value, or "" when absent.
func FromRequest(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
