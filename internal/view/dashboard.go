package view

import (
	"context"
	"maps"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jobfinder/dashboard-go/internal/config"
	apperrors "github.com/jobfinder/dashboard-go/internal/errors"
	"github.com/jobfinder/dashboard-go/internal/model"
)

type DashboardState struct {
	Stats   model.JobStats
	Total   int
	Loading bool
	Error   string
}

// Dashboard holds the per-status job counts.
type Dashboard struct {
	api JobsAPI

	mu    sync.Mutex
	state DashboardState
}

func NewDashboard(api JobsAPI) *Dashboard {
	return &Dashboard{
		api:   api,
		state: DashboardState{Loading: true, Stats: model.JobStats{StatusCounts: map[model.JobStatus]int{}}},
	}
}

func (d *Dashboard) State() DashboardState {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.state
	s.Stats.StatusCounts = maps.Clone(d.state.Stats.StatusCounts)
	return s
}

func (d *Dashboard) Fetch(ctx context.Context) {
	d.mu.Lock()
	d.state.Loading = true
	d.state.Error = ""
	d.mu.Unlock()

	stats, err := d.api.Stats(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Loading = false
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch stats")
		d.state.Error = apperrors.MessageOf(err, config.MsgServerError)
		return
	}
	d.state.Stats = *stats
	d.state.Total = stats.Total()
}
