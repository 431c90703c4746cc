package service

import (
	"context"
	"fmt"

	"github.com/jobfinder/dashboard-go/internal/model"
)

type UpworkService struct {
	api API
}

func NewUpworkService(api API) *UpworkService {
	return &UpworkService{api: api}
}

// ConnectURL obtains the OAuth authorization URL. data = {authUrl}.
func (s *UpworkService) ConnectURL(ctx context.Context) (*model.UpworkConnect, error) {
	resp, err := s.api.Get(ctx, "/upwork/connect", nil)
	if err != nil {
		return nil, err
	}

	var out model.UpworkConnect
	if _, err := unwrap(resp, "", &out); err != nil {
		return nil, fmt.Errorf("/upwork/connect: %w", err)
	}
	return &out, nil
}

// Sync triggers a profile sync. data = {skills, hourly_rate, bio}.
func (s *UpworkService) Sync(ctx context.Context) (*model.UpworkProfile, error) {
	resp, err := s.api.Post(ctx, "/upwork/sync", nil)
	if err != nil {
		return nil, err
	}

	var out model.UpworkProfile
	if _, err := unwrap(resp, "", &out); err != nil {
		return nil, fmt.Errorf("/upwork/sync: %w", err)
	}
	return &out, nil
}

// Disconnect revokes the integration. data = null.
func (s *UpworkService) Disconnect(ctx context.Context) error {
	_, err := s.api.Post(ctx, "/upwork/disconnect", nil)
	return err
}

// Status reports the connection. data = {connected}; absent data means
// not connected.
func (s *UpworkService) Status(ctx context.Context) (*model.UpworkStatus, error) {
	resp, err := s.api.Get(ctx, "/upwork/status", nil)
	if err != nil {
		return nil, err
	}

	var out model.UpworkStatus
	if _, err := unwrap(resp, "", &out); err != nil {
		return nil, fmt.Errorf("/upwork/status: %w", err)
	}
	return &out, nil
}
