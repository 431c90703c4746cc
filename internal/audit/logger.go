// Package audit records security-relevant session changes as structured
// log entries tagged audit=security.
package audit

import (
	"context"
	"net"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type EventType string

const (
	EventLoginSuccess    EventType = "login_success"
	EventLoginFailure    EventType = "login_failure"
	EventRegisterSuccess EventType = "register_success"
	EventRegisterFailure EventType = "register_failure"
	EventLogout          EventType = "logout"
	EventSessionRestored EventType = "session_restored"
	EventSessionCleared  EventType = "session_cleared"
	EventAuthFailure     EventType = "auth_failure"
	EventGuardRedirect   EventType = "guard_redirect"
)

type Event struct {
	Type      EventType
	UserID    string
	Email     string
	Route     string
	IP        string
	UserAgent string
	RequestID string
	Details   map[string]interface{}
}

// Log writes event at info level. Empty fields are omitted.
func Log(ctx context.Context, event Event) {
	e := log.Info().Str("audit", "security").Str("event_type", string(event.Type)).Timestamp()
	for key, value := range map[string]string{
		"user_id":    event.UserID,
		"email":      event.Email,
		"route":      event.Route,
		"ip":         event.IP,
		"user_agent": event.UserAgent,
		"request_id": event.RequestID,
	} {
		if value != "" {
			e = e.Str(key, value)
		}
	}
	if len(event.Details) > 0 {
		e = e.Fields(event.Details)
	}
	e.Msg("security audit event")
}

// LogFromRequest fills the client fields of event from r.
func LogFromRequest(r *http.Request, event Event) {
	event.IP = clientIP(r)
	event.UserAgent = r.UserAgent()
	event.RequestID = chimiddleware.GetReqID(r.Context())
	Log(r.Context(), event)
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// peer address without its port.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
