package view

import (
	"context"
	"net/url"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jobfinder/dashboard-go/internal/config"
	apperrors "github.com/jobfinder/dashboard-go/internal/errors"
	"github.com/jobfinder/dashboard-go/internal/model"
)

// Opener sends the user to the Upwork authorization page.
type Opener interface {
	Open(ctx context.Context, authURL string) error
}

type OpenerFunc func(ctx context.Context, authURL string) error

func (f OpenerFunc) Open(ctx context.Context, authURL string) error {
	return f(ctx, authURL)
}

// Confirmer asks the user a yes/no question.
type Confirmer func(question string) bool

const disconnectQuestion = "Are you sure you want to disconnect your Upwork account?"

type SettingsState struct {
	Upwork        *model.UpworkStatus
	Loading       bool
	Connecting    bool
	Syncing       bool
	Disconnecting bool
}

// IsUpworkConnected is false until the status is known.
func (s SettingsState) IsUpworkConnected() bool {
	return s.Upwork != nil && s.Upwork.Connected
}

// Settings manages the Upwork account connection.
type Settings struct {
	api     UpworkAPI
	notify  Notifier
	opener  Opener
	confirm Confirmer

	mu    sync.Mutex
	state SettingsState
}

func NewSettings(api UpworkAPI, notifier Notifier, opener Opener, confirm Confirmer) *Settings {
	if confirm == nil {
		confirm = func(string) bool { return true }
	}
	return &Settings{
		api:     api,
		notify:  orDiscard(notifier),
		opener:  opener,
		confirm: confirm,
		state:   SettingsState{Loading: true},
	}
}

func (s *Settings) State() SettingsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Settings) update(fn func(*SettingsState)) {
	s.mu.Lock()
	fn(&s.state)
	s.mu.Unlock()
}

func (s *Settings) CheckStatus(ctx context.Context) {
	s.update(func(st *SettingsState) { st.Loading = true })
	defer s.update(func(st *SettingsState) { st.Loading = false })

	status, err := s.api.Status(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to check upwork status")
		s.notify.Error("Error", config.MsgUpworkStatusFail)
		return
	}
	s.update(func(st *SettingsState) { st.Upwork = status })
}

// HandleOAuthCallback reads the upwork and message parameters the OAuth
// flow appends to the settings URL. It reports whether they were present.
func (s *Settings) HandleOAuthCallback(ctx context.Context, query url.Values) bool {
	switch query.Get("upwork") {
	case "connected":
		s.notify.Success("Success!", "Your Upwork account has been connected successfully.")
		s.CheckStatus(ctx)
		return true
	case "error":
		msg := query.Get("message")
		if msg == "" {
			msg = "Failed to connect to Upwork. Please try again."
		}
		s.notify.Error("Connection Failed", msg)
		return true
	default:
		return false
	}
}

// Connect fetches the authorization URL and hands it to the opener.
func (s *Settings) Connect(ctx context.Context) model.Result {
	s.update(func(st *SettingsState) { st.Connecting = true })
	defer s.update(func(st *SettingsState) { st.Connecting = false })

	if err := s.connect(ctx); err != nil {
		log.Error().Err(err).Msg("failed to get upwork connection url")
		msg := apperrors.MessageOf(err, "Failed to connect to Upwork. Please try again.")
		s.notify.Error("Error", msg)
		return model.Failed(msg)
	}
	return model.OK()
}

func (s *Settings) connect(ctx context.Context) error {
	data, err := s.api.ConnectURL(ctx)
	if err != nil {
		return err
	}
	if data == nil || data.AuthURL == "" {
		return apperrors.New(apperrors.ErrCodeServer, "No authorization URL received")
	}
	if s.opener == nil {
		return apperrors.Internal("No way to open the authorization URL")
	}
	return s.opener.Open(ctx, data.AuthURL)
}

// Disconnect asks for confirmation first. Declining is a successful no-op.
func (s *Settings) Disconnect(ctx context.Context) model.Result {
	if !s.confirm(disconnectQuestion) {
		return model.OK()
	}

	s.update(func(st *SettingsState) { st.Disconnecting = true })
	defer s.update(func(st *SettingsState) { st.Disconnecting = false })

	if err := s.api.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("failed to disconnect upwork")
		msg := apperrors.MessageOf(err, "Failed to disconnect Upwork. Please try again.")
		s.notify.Error("Error", msg)
		return model.Failed(msg)
	}

	s.update(func(st *SettingsState) { st.Upwork = &model.UpworkStatus{Connected: false} })
	s.notify.Success("Success", "Your Upwork account has been disconnected.")
	return model.OK()
}

func (s *Settings) Sync(ctx context.Context) model.Result {
	s.update(func(st *SettingsState) { st.Syncing = true })
	defer s.update(func(st *SettingsState) { st.Syncing = false })

	if _, err := s.api.Sync(ctx); err != nil {
		log.Error().Err(err).Msg("failed to sync upwork profile")
		msg := apperrors.MessageOf(err, "Failed to sync profile. Please try again.")
		s.notify.Error("Error", msg)
		return model.Failed(msg)
	}

	s.notify.Success("Success", "Your Upwork profile has been synced successfully.")
	return model.OK()
}
