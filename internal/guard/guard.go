// Package guard decides what a protected view renders for the current
// session and sends anonymous users to the login route.
package guard

import (
	"context"
	"sync"

	"github.com/jobfinder/dashboard-go/internal/audit"
	"github.com/jobfinder/dashboard-go/internal/config"
	"github.com/jobfinder/dashboard-go/internal/nav"
	"github.com/jobfinder/dashboard-go/internal/session"
)

type Decision int

const (
	// RenderPlaceholder is shown while the session is still resolving.
	RenderPlaceholder Decision = iota
	// RenderNothing is returned once the user is known to be anonymous.
	RenderNothing
	RenderContent
)

func (d Decision) String() string {
	switch d {
	case RenderPlaceholder:
		return "placeholder"
	case RenderNothing:
		return "nothing"
	case RenderContent:
		return "content"
	default:
		return "unknown"
	}
}

// Sessions is the part of the session store a guard reads.
type Sessions interface {
	Snapshot() session.Snapshot
	Subscribe(fn func(session.Snapshot)) func()
}

type Guard struct {
	sessions  Sessions
	navigator nav.Navigator

	mu          sync.Mutex
	last        session.State
	unsubscribe func()
}

// New watches sessions until Close. The login redirect fires once for
// every transition into the anonymous state.
func New(ctx context.Context, sessions Sessions, navigator nav.Navigator) *Guard {
	if navigator == nil {
		navigator = nav.Discard
	}
	g := &Guard{
		sessions:  sessions,
		navigator: navigator,
		last:      session.StateUninitialized,
	}
	g.unsubscribe = sessions.Subscribe(func(snap session.Snapshot) {
		g.observe(ctx, snap.State)
	})
	g.observe(ctx, sessions.Snapshot().State)
	return g
}

func (g *Guard) observe(ctx context.Context, state session.State) {
	g.mu.Lock()
	entered := state == session.StateAnonymous && g.last != session.StateAnonymous
	g.last = state
	g.mu.Unlock()

	if entered {
		audit.Log(ctx, audit.Event{Type: audit.EventGuardRedirect, Route: config.RouteLogin})
		g.navigator.Navigate(ctx, config.RouteLogin)
	}
}

func (g *Guard) Decision() Decision {
	return Decide(g.sessions.Snapshot())
}

// Decide maps a session snapshot to what a protected view renders.
func Decide(snap session.Snapshot) Decision {
	switch {
	case snap.Loading():
		return RenderPlaceholder
	case snap.IsAuthenticated():
		return RenderContent
	default:
		return RenderNothing
	}
}

// Close stops watching the session.
func (g *Guard) Close() {
	if g.unsubscribe != nil {
		g.unsubscribe()
	}
}
