package view

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jobfinder/dashboard-go/internal/errors"
	"github.com/jobfinder/dashboard-go/internal/model"
)

func TestJobDetailFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("loads job", func(t *testing.T) {
		api := &mockJobs{GetFunc: func(_ context.Context, id string) (*model.Job, error) {
			return &model.Job{ID: id, Title: "Go developer"}, nil
		}}
		d := NewJobDetail(api, "j1")
		assert.True(t, d.State().Loading)

		d.Fetch(ctx)

		st := d.State()
		assert.False(t, st.Loading)
		require.NotNil(t, st.Job)
		assert.Equal(t, "Go developer", st.Job.Title)
	})

	t.Run("no id does nothing", func(t *testing.T) {
		d := NewJobDetail(&mockJobs{}, "")
		d.Fetch(ctx)
		assert.False(t, d.State().Loading)
		assert.Nil(t, d.State().Job)
	})

	t.Run("failure keeps last job and sets error", func(t *testing.T) {
		calls := 0
		api := &mockJobs{GetFunc: func(_ context.Context, id string) (*model.Job, error) {
			calls++
			if calls == 1 {
				return &model.Job{ID: id}, nil
			}
			return nil, apperrors.HTTP(http.StatusNotFound, "Job not found", nil)
		}}
		d := NewJobDetail(api, "j1")
		d.Fetch(ctx)
		d.Refresh(ctx)

		st := d.State()
		assert.Equal(t, "Job not found", st.Error)
		assert.NotNil(t, st.Job)
	})
}

func TestJobDetailCollapsesConcurrentFetches(t *testing.T) {
	ctx := context.Background()
	var calls atomic.Int32
	release := make(chan struct{})

	api := &mockJobs{GetFunc: func(_ context.Context, id string) (*model.Job, error) {
		calls.Add(1)
		<-release
		return &model.Job{ID: id}, nil
	}}
	d := NewJobDetail(api, "j1")

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Fetch(ctx)
		}()
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "j1", d.State().Job.ID)
	assert.False(t, d.State().Loading)
}

func TestJobDetailDiscardsSupersededResponse(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	started := make(chan struct{})

	api := &mockJobs{GetFunc: func(_ context.Context, id string) (*model.Job, error) {
		if id == "old" {
			close(started)
			<-release
		}
		return &model.Job{ID: id}, nil
	}}
	d := NewJobDetail(api, "old")

	done := make(chan struct{})
	go func() {
		d.Fetch(ctx)
		close(done)
	}()
	<-started

	d.SetID("new")
	d.Fetch(ctx)
	close(release)
	<-done

	st := d.State()
	assert.Equal(t, "new", st.ID)
	assert.Equal(t, "new", st.Job.ID)
}

func TestJobDetailMutations(t *testing.T) {
	ctx := context.Background()

	t.Run("update status replaces job", func(t *testing.T) {
		api := &mockJobs{
			GetFunc: func(_ context.Context, id string) (*model.Job, error) {
				return &model.Job{ID: id, Status: model.JobStatusNew}, nil
			},
			UpdateStatusFunc: func(_ context.Context, id string, status model.JobStatus) (*model.Job, error) {
				return &model.Job{ID: id, Status: status}, nil
			},
		}
		d := NewJobDetail(api, "j1")
		d.Fetch(ctx)

		res := d.UpdateStatus(ctx, model.JobStatusInterviewing)

		assert.True(t, res.Success)
		assert.Equal(t, model.JobStatusInterviewing, d.State().Job.Status)
	})

	t.Run("update job sends notes and tags", func(t *testing.T) {
		api := &mockJobs{UpdateFunc: func(_ context.Context, id string, u model.JobUpdate) (*model.Job, error) {
			require.NotNil(t, u.Notes)
			return &model.Job{ID: id, Notes: *u.Notes, Tags: *u.Tags}, nil
		}}
		d := NewJobDetail(api, "j1")
		notes := "call client friday"
		tags := []string{"priority"}

		res := d.UpdateJob(ctx, model.JobUpdate{Notes: &notes, Tags: &tags})

		assert.True(t, res.Success)
		assert.Equal(t, notes, d.State().Job.Notes)
		assert.Equal(t, tags, d.State().Job.Tags)
	})

	t.Run("failure returns message and keeps job", func(t *testing.T) {
		api := &mockJobs{
			GetFunc: func(_ context.Context, id string) (*model.Job, error) {
				return &model.Job{ID: id, Status: model.JobStatusNew}, nil
			},
			UpdateStatusFunc: func(context.Context, string, model.JobStatus) (*model.Job, error) {
				return nil, apperrors.HTTP(http.StatusBadRequest, "Invalid status transition", nil)
			},
		}
		d := NewJobDetail(api, "j1")
		d.Fetch(ctx)

		res := d.UpdateStatus(ctx, model.JobStatusHired)

		assert.Equal(t, model.Failed("Invalid status transition"), res)
		assert.Equal(t, model.JobStatusNew, d.State().Job.Status)
	})

	t.Run("mutation wins over in-flight fetch", func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		api := &mockJobs{
			GetFunc: func(_ context.Context, id string) (*model.Job, error) {
				close(started)
				<-release
				return &model.Job{ID: id, Status: model.JobStatusNew}, nil
			},
			UpdateStatusFunc: func(_ context.Context, id string, status model.JobStatus) (*model.Job, error) {
				return &model.Job{ID: id, Status: status}, nil
			},
		}
		d := NewJobDetail(api, "j1")

		done := make(chan struct{})
		go func() {
			d.Fetch(ctx)
			close(done)
		}()
		<-started

		d.UpdateStatus(ctx, model.JobStatusApplied)
		close(release)
		<-done

		assert.Equal(t, model.JobStatusApplied, d.State().Job.Status)
		assert.False(t, d.State().Loading)
	})

	t.Run("failed mutation lets in-flight fetch land", func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		api := &mockJobs{
			GetFunc: func(_ context.Context, id string) (*model.Job, error) {
				close(started)
				<-release
				return &model.Job{ID: id, Status: model.JobStatusNew}, nil
			},
			UpdateStatusFunc: func(context.Context, string, model.JobStatus) (*model.Job, error) {
				return nil, apperrors.HTTP(http.StatusInternalServerError, "boom", nil)
			},
		}
		d := NewJobDetail(api, "j1")

		done := make(chan struct{})
		go func() {
			d.Fetch(ctx)
			close(done)
		}()
		<-started

		res := d.UpdateStatus(ctx, model.JobStatusApplied)
		close(release)
		<-done

		assert.False(t, res.Success)
		st := d.State()
		assert.False(t, st.Loading)
		require.NotNil(t, st.Job)
		assert.Equal(t, model.JobStatusNew, st.Job.Status)
	})

	t.Run("mutation result dropped after id change", func(t *testing.T) {
		var d *JobDetail
		api := &mockJobs{
			UpdateStatusFunc: func(_ context.Context, id string, status model.JobStatus) (*model.Job, error) {
				d.SetID("j2")
				return &model.Job{ID: id, Status: status}, nil
			},
		}
		d = NewJobDetail(api, "j1")

		res := d.UpdateStatus(ctx, model.JobStatusApplied)

		assert.True(t, res.Success)
		assert.Equal(t, "j2", d.State().ID)
		assert.Nil(t, d.State().Job)
	})
}
