package service

import (
	"context"
	"fmt"
	"net/url"

	apperrors "github.com/jobfinder/dashboard-go/internal/errors"
	"github.com/jobfinder/dashboard-go/internal/model"
)

type JobService struct {
	api API
}

func NewJobService(api API) *JobService {
	return &JobService{api: api}
}

func jobPath(id string) string {
	return "/jobs/" + url.PathEscape(id)
}

// List returns one page of jobs. data = [job...], meta = pagination.
func (s *JobService) List(ctx context.Context, filters model.JobFilters) (*model.JobList, error) {
	resp, err := s.api.Get(ctx, "/jobs", filters.Values())
	if err != nil {
		return nil, err
	}

	var jobs []model.Job
	env, err := unwrap(resp, "jobs", &jobs)
	if err != nil {
		return nil, fmt.Errorf("/jobs: %w", err)
	}
	if jobs == nil {
		jobs = []model.Job{}
	}

	return &model.JobList{
		Jobs:       jobs,
		Pagination: env.Meta.Page(),
		Message:    env.Message,
	}, nil
}

// Get fetches one job. data = {job}, tolerating a bare job.
func (s *JobService) Get(ctx context.Context, id string) (*model.Job, error) {
	if id == "" {
		return nil, apperrors.MissingRequired("job id")
	}
	resp, err := s.api.Get(ctx, jobPath(id), nil)
	if err != nil {
		return nil, err
	}

	var job model.Job
	if _, err := unwrap(resp, "job", &job); err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return &job, nil
}

// Stats fetches aggregate counts. data = {stats}, tolerating bare stats.
func (s *JobService) Stats(ctx context.Context) (*model.JobStats, error) {
	resp, err := s.api.Get(ctx, "/jobs/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats model.JobStats
	if _, err := unwrap(resp, "stats", &stats); err != nil {
		return nil, fmt.Errorf("/jobs/stats: %w", err)
	}
	if stats.StatusCounts == nil {
		stats.StatusCounts = map[model.JobStatus]int{}
	}
	return &stats, nil
}

// UpdateStatus changes only the status field. data = {job}.
func (s *JobService) UpdateStatus(ctx context.Context, id string, status model.JobStatus) (*model.Job, error) {
	if id == "" {
		return nil, apperrors.MissingRequired("job id")
	}
	if !status.IsValid() {
		return nil, apperrors.InvalidInput("status", fmt.Sprintf("%q is not a job status", status))
	}

	resp, err := s.api.Put(ctx, jobPath(id)+"/status", map[string]model.JobStatus{"status": status})
	if err != nil {
		return nil, err
	}

	var job model.Job
	if _, err := unwrap(resp, "job", &job); err != nil {
		return nil, fmt.Errorf("update job %s status: %w", id, err)
	}
	return &job, nil
}

// Update changes notes and tags. data = {job}.
func (s *JobService) Update(ctx context.Context, id string, update model.JobUpdate) (*model.Job, error) {
	if id == "" {
		return nil, apperrors.MissingRequired("job id")
	}
	resp, err := s.api.Put(ctx, jobPath(id), update)
	if err != nil {
		return nil, err
	}

	var job model.Job
	if _, err := unwrap(resp, "job", &job); err != nil {
		return nil, fmt.Errorf("update job %s: %w", id, err)
	}
	return &job, nil
}

// Delete removes or archives a job. The backend answers 204.
func (s *JobService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.MissingRequired("job id")
	}
	_, err := s.api.Delete(ctx, jobPath(id))
	return err
}
