package view

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jobfinder/dashboard-go/internal/config"
	apperrors "github.com/jobfinder/dashboard-go/internal/errors"
	"github.com/jobfinder/dashboard-go/internal/model"
)

type JobsState struct {
	Jobs    []model.Job
	Loading bool
	Error   string
	Filters model.JobFilters
	Meta    model.Pagination
}

// JobsList is the paginated, filterable job list. Only the response of the
// latest fetch is applied.
type JobsList struct {
	api    JobsAPI
	notify Notifier

	mu    sync.Mutex
	state JobsState
	gen   uint64
}

// NewJobsList starts from page 1, DefaultPageSize, best match first, with
// initial merged on top. Nothing is loaded until Fetch.
func NewJobsList(api JobsAPI, notifier Notifier, initial model.FilterUpdate) *JobsList {
	filters := model.DefaultJobFilters(config.DefaultPageSize).Apply(initial)
	return &JobsList{
		api:    api,
		notify: orDiscard(notifier),
		state: JobsState{
			Jobs:    []model.Job{},
			Loading: true,
			Filters: filters,
			Meta:    model.Pagination{Page: 1, Limit: filters.Limit},
		},
	}
}

func (l *JobsList) State() JobsState {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.state
	s.Jobs = append([]model.Job(nil), l.state.Jobs...)
	return s
}

// Fetch loads the page described by the current filters. A failure keeps
// the jobs already shown.
func (l *JobsList) Fetch(ctx context.Context) {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	filters := l.state.Filters
	l.state.Loading = true
	l.state.Error = ""
	l.mu.Unlock()

	list, err := l.api.List(ctx, filters)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return
	}
	l.state.Loading = false

	if err != nil {
		log.Error().Err(err).Msg("failed to fetch jobs")
		l.state.Error = apperrors.MessageOf(err, config.MsgServerError)
		return
	}

	l.state.Jobs = list.Jobs
	if list.Pagination != (model.Pagination{}) {
		l.state.Meta = list.Pagination
	}
}

// UpdateFilters merges u and reloads. The page resets to 1 unless u sets it.
func (l *JobsList) UpdateFilters(ctx context.Context, u model.FilterUpdate) {
	l.mu.Lock()
	l.state.Filters = l.state.Filters.Apply(u)
	l.mu.Unlock()
	l.Fetch(ctx)
}

// NextPage reports whether it moved.
func (l *JobsList) NextPage(ctx context.Context) bool {
	l.mu.Lock()
	page := l.state.Filters.Page
	last := l.state.Meta.TotalPages
	l.mu.Unlock()

	if page >= last {
		return false
	}
	return l.setPage(ctx, page+1)
}

func (l *JobsList) PrevPage(ctx context.Context) bool {
	l.mu.Lock()
	page := l.state.Filters.Page
	l.mu.Unlock()

	if page <= 1 {
		return false
	}
	return l.setPage(ctx, page-1)
}

// GoToPage ignores pages outside 1..TotalPages.
func (l *JobsList) GoToPage(ctx context.Context, page int) bool {
	l.mu.Lock()
	last := l.state.Meta.TotalPages
	l.mu.Unlock()

	if page < 1 || page > last {
		return false
	}
	return l.setPage(ctx, page)
}

func (l *JobsList) setPage(ctx context.Context, page int) bool {
	l.mu.Lock()
	l.state.Filters = l.state.Filters.WithPage(page)
	l.mu.Unlock()
	l.Fetch(ctx)
	return true
}

func (l *JobsList) Refresh(ctx context.Context) {
	l.Fetch(ctx)
}

// UpdateStatus changes one job's status and mirrors the result into the
// list without reloading it.
func (l *JobsList) UpdateStatus(ctx context.Context, id string, status model.JobStatus) model.Result {
	updated, err := l.api.UpdateStatus(ctx, id, status)
	if err != nil {
		msg := apperrors.MessageOf(err, "Failed to update job status")
		l.notify.Error("Error", msg)
		return model.Failed(msg)
	}

	l.mu.Lock()
	for i := range l.state.Jobs {
		if l.state.Jobs[i].ID != id {
			continue
		}
		if updated != nil && updated.ID == id {
			l.state.Jobs[i] = *updated
		} else {
			l.state.Jobs[i].Status = status
		}
	}
	l.mu.Unlock()

	l.notify.Success("Success", fmt.Sprintf("Job status updated to %s", status))
	return model.OK()
}
