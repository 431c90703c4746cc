package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jobfinder/dashboard-go/internal/model"
)

type AuthService struct {
	api        API
	expiryDays int
}

func NewAuthService(api API, expiryDays int) *AuthService {
	return &AuthService{api: api, expiryDays: expiryDays}
}

// Register creates an account. data = {user, token}; the token is persisted
// before returning.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResult, error) {
	return s.authenticate(ctx, "/auth/register", req)
}

// Login authenticates. data = {user, token}; the token is persisted before
// returning.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResult, error) {
	return s.authenticate(ctx, "/auth/login", req)
}

func (s *AuthService) authenticate(ctx context.Context, path string, body any) (*model.AuthResult, error) {
	resp, err := s.api.Post(ctx, path, body)
	if err != nil {
		return nil, err
	}

	var result model.AuthResult
	env, err := unwrap(resp, "", &result)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	// Without a user key the payload itself is the user.
	if result.User == nil && !isNull(env.Data) {
		var user model.User
		if err := decodeData(env.Data, "", &user); err != nil {
			return nil, fmt.Errorf("%s: decode user: %w", path, err)
		}
		result.User = &user
	}

	if result.Token != "" {
		if err := s.api.SetToken(ctx, result.Token, s.expiryDays); err != nil {
			return nil, fmt.Errorf("persist token: %w", err)
		}
	}
	return &result, nil
}

// Me fetches the current user. data = {user}, tolerating a bare user.
func (s *AuthService) Me(ctx context.Context) (*model.User, error) {
	resp, err := s.api.Get(ctx, "/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var user model.User
	if _, err := unwrap(resp, "user", &user); err != nil {
		return nil, fmt.Errorf("/auth/me: %w", err)
	}
	return &user, nil
}

// Logout invalidates the session server-side. The local token is removed
// whatever the outcome of the call.
func (s *AuthService) Logout(ctx context.Context) error {
	defer func() {
		if err := s.api.RemoveToken(ctx); err != nil {
			log.Error().Err(err).Msg("failed to remove auth token on logout")
		}
	}()

	_, err := s.api.Post(ctx, "/auth/logout", nil)
	return err
}

// IsAuthenticated reports token presence only.
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	return s.api.GetToken(ctx) != ""
}
