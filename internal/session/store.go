// Package session holds the process-wide authentication state: who is
// logged in and whether that is still being checked.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jobfinder/dashboard-go/internal/audit"
	"github.com/jobfinder/dashboard-go/internal/config"
	apperrors "github.com/jobfinder/dashboard-go/internal/errors"
	"github.com/jobfinder/dashboard-go/internal/model"
	"github.com/jobfinder/dashboard-go/internal/nav"
)

type State int

const (
	StateUninitialized State = iota
	StateChecking
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the session.
type Snapshot struct {
	State State
	User  *model.User
	Error string
}

func (s Snapshot) IsAuthenticated() bool {
	return s.State == StateAuthenticated && s.User != nil
}

// Loading reports whether the session is not yet resolved.
func (s Snapshot) Loading() bool {
	return s.State == StateUninitialized || s.State == StateChecking
}

// AuthAPI is the auth resource the store drives.
type AuthAPI interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResult, error)
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResult, error)
	Me(ctx context.Context) (*model.User, error)
	Logout(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
}

// Store is safe for concurrent use; overlapping mutations resolve as last
// write wins.
type Store struct {
	auth      AuthAPI
	navigator nav.Navigator

	mu        sync.Mutex
	snap      Snapshot
	listeners map[int]func(Snapshot)
	nextID    int
}

func NewStore(auth AuthAPI, navigator nav.Navigator) *Store {
	if navigator == nil {
		navigator = nav.Discard
	}
	return &Store{
		auth:      auth,
		navigator: navigator,
		listeners: map[int]func(Snapshot){},
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Subscribe calls fn after every change. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) set(update func(*Snapshot)) {
	s.mu.Lock()
	prev := s.snap
	update(&s.snap)
	next := s.snap
	listeners := make([]func(Snapshot), 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	s.mu.Unlock()

	if prev.State == next.State && prev.User == next.User && prev.Error == next.Error {
		return
	}
	for _, fn := range listeners {
		fn(next)
	}
}

// Init resolves the session from the persisted token. A failed check
// leaves the token in place; only a 401 clears it.
func (s *Store) Init(ctx context.Context) {
	s.CheckAuth(ctx)
}

func (s *Store) CheckAuth(ctx context.Context) {
	s.set(func(snap *Snapshot) { snap.State = StateChecking })

	if !s.auth.IsAuthenticated(ctx) {
		s.set(func(snap *Snapshot) {
			snap.State = StateAnonymous
			snap.User = nil
		})
		return
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		switch {
		case apperrors.IsUnauthorized(err):
			log.Info().Msg("stored session rejected")
		case apperrors.IsNetwork(err):
			log.Warn().Err(err).Msg("auth check failed, backend unreachable")
		default:
			log.Error().Err(err).Msg("auth check failed")
		}
		s.set(func(snap *Snapshot) {
			snap.State = StateAnonymous
			snap.User = nil
		})
		return
	}

	audit.Log(ctx, audit.Event{Type: audit.EventSessionRestored, UserID: user.ID, Email: user.Email})
	s.set(func(snap *Snapshot) {
		snap.State = StateAuthenticated
		snap.User = user
	})
}

func (s *Store) Login(ctx context.Context, req model.LoginRequest) model.Result {
	return s.authenticate(ctx, req.Email, config.MsgLoginFailed, audit.EventLoginSuccess, audit.EventLoginFailure,
		func() (*model.AuthResult, error) { return s.auth.Login(ctx, req) })
}

func (s *Store) Register(ctx context.Context, req model.RegisterRequest) model.Result {
	return s.authenticate(ctx, req.Email, config.MsgRegisterFailed, audit.EventRegisterSuccess, audit.EventRegisterFailure,
		func() (*model.AuthResult, error) { return s.auth.Register(ctx, req) })
}

func (s *Store) authenticate(
	ctx context.Context,
	email, fallback string,
	okEvent, failEvent audit.EventType,
	call func() (*model.AuthResult, error),
) model.Result {
	s.set(func(snap *Snapshot) {
		snap.State = StateChecking
		snap.Error = ""
	})

	res, err := call()
	if err != nil {
		msg := apperrors.MessageOf(err, fallback)
		audit.Log(ctx, audit.Event{Type: failEvent, Email: email, Details: map[string]interface{}{"reason": msg}})
		s.set(func(snap *Snapshot) {
			snap.State = StateAnonymous
			snap.User = nil
			snap.Error = msg
		})
		return model.Failed(msg)
	}

	user := res.User
	if user == nil {
		user = &model.User{}
	}

	audit.Log(ctx, audit.Event{Type: okEvent, UserID: user.ID, Email: email})
	s.set(func(snap *Snapshot) {
		snap.State = StateAuthenticated
		snap.User = user
	})
	s.navigator.Navigate(ctx, config.RouteDashboard)
	return model.OK()
}

// Logout ends the session whatever the server answers.
func (s *Store) Logout(ctx context.Context) {
	user := s.Snapshot().User
	s.set(func(snap *Snapshot) { snap.State = StateChecking })

	if err := s.auth.Logout(ctx); err != nil {
		log.Error().Err(err).Msg("logout failed")
	}

	event := audit.Event{Type: audit.EventLogout}
	if user != nil {
		event.UserID = user.ID
	}
	audit.Log(ctx, event)

	s.set(func(snap *Snapshot) {
		snap.State = StateAnonymous
		snap.User = nil
	})
	s.navigator.Navigate(ctx, config.RouteLogin)
}

// Invalidate drops the user after the API client saw a 401.
func (s *Store) Invalidate(ctx context.Context) {
	if s.Snapshot().State == StateAnonymous {
		return
	}
	audit.Log(ctx, audit.Event{Type: audit.EventSessionCleared})
	s.set(func(snap *Snapshot) {
		snap.State = StateAnonymous
		snap.User = nil
	})
}

// UpdateUser merges patch into the current user locally. It is a no-op
// while nobody is logged in.
func (s *Store) UpdateUser(patch model.UserPatch) {
	s.set(func(snap *Snapshot) {
		if snap.User == nil {
			return
		}
		merged := patch.Apply(*snap.User)
		snap.User = &merged
	})
}
