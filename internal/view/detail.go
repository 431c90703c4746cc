package view

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/jobfinder/dashboard-go/internal/config"
	apperrors "github.com/jobfinder/dashboard-go/internal/errors"
	"github.com/jobfinder/dashboard-go/internal/model"
)

type DetailState struct {
	ID      string
	Job     *model.Job
	Loading bool
	Error   string
}

// JobDetail shows one job. Concurrent fetches of the same id share one
// request, and a response is dropped when a newer fetch, a mutation or an
// id change happened after it started.
type JobDetail struct {
	api    JobsAPI
	flight singleflight.Group

	mu    sync.Mutex
	state DetailState
	gen   uint64
}

func NewJobDetail(api JobsAPI, id string) *JobDetail {
	return &JobDetail{
		api:   api,
		state: DetailState{ID: id, Loading: id != ""},
	}
}

func (d *JobDetail) State() DetailState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// SetID switches the view to another job and clears what was shown.
func (d *JobDetail) SetID(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state.ID == id {
		return
	}
	d.gen++
	d.state = DetailState{ID: id, Loading: id != ""}
}

// begin marks a new fetch and returns its generation.
func (d *JobDetail) begin() (string, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.state.Loading = true
	d.state.Error = ""
	return d.state.ID, d.gen
}

func (d *JobDetail) current(gen uint64) bool {
	return gen == d.gen
}

// Fetch is a no-op without an id.
func (d *JobDetail) Fetch(ctx context.Context) {
	id, gen := d.begin()
	if id == "" {
		d.mu.Lock()
		d.state.Loading = false
		d.mu.Unlock()
		return
	}

	v, err, _ := d.flight.Do(id, func() (any, error) {
		return d.api.Get(ctx, id)
	})

	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.current(gen) {
		return
	}
	d.state.Loading = false

	if err != nil {
		log.Error().Err(err).Str("job_id", id).Msg("failed to fetch job")
		d.state.Error = apperrors.MessageOf(err, config.MsgServerError)
		return
	}
	d.state.Job = v.(*model.Job)
}

func (d *JobDetail) Refresh(ctx context.Context) {
	d.Fetch(ctx)
}

func (d *JobDetail) UpdateStatus(ctx context.Context, status model.JobStatus) model.Result {
	return d.mutate(func(id string) (*model.Job, error) {
		return d.api.UpdateStatus(ctx, id, status)
	})
}

// UpdateJob edits notes and tags.
func (d *JobDetail) UpdateJob(ctx context.Context, update model.JobUpdate) model.Result {
	return d.mutate(func(id string) (*model.Job, error) {
		return d.api.Update(ctx, id, update)
	})
}

// mutate leaves the view untouched on failure, so a fetch in flight still
// lands. On success it supersedes that fetch unless the id changed meanwhile.
func (d *JobDetail) mutate(call func(id string) (*model.Job, error)) model.Result {
	d.mu.Lock()
	id := d.state.ID
	d.mu.Unlock()

	job, err := call(id)
	if err != nil {
		return model.Failed(apperrors.MessageOf(err, config.MsgServerError))
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state.ID == id {
		d.gen++
		d.state.Job = job
		d.state.Loading = false
	}
	return model.OK()
}
