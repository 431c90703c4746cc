// Package view holds the data layer behind each dashboard screen. A view
// owns local state for one screen, loads it through the resource services
// and turns failures into messages instead of errors.
package view

import (
	"context"

	"github.com/jobfinder/dashboard-go/internal/model"
)

// JobsAPI is the job resource as the views use it.
type JobsAPI interface {
	List(ctx context.Context, filters model.JobFilters) (*model.JobList, error)
	Get(ctx context.Context, id string) (*model.Job, error)
	Stats(ctx context.Context) (*model.JobStats, error)
	UpdateStatus(ctx context.Context, id string, status model.JobStatus) (*model.Job, error)
	Update(ctx context.Context, id string, update model.JobUpdate) (*model.Job, error)
}

type UpworkAPI interface {
	Status(ctx context.Context) (*model.UpworkStatus, error)
	ConnectURL(ctx context.Context) (*model.UpworkConnect, error)
	Sync(ctx context.Context) (*model.UpworkProfile, error)
	Disconnect(ctx context.Context) error
}

// Notifier shows transient feedback. *notify.Center satisfies it.
type Notifier interface {
	Success(title, description string) string
	Error(title, description string) string
}

type discardNotifier struct{}

func (discardNotifier) Success(string, string) string { return "" }
func (discardNotifier) Error(string, string) string   { return "" }

func orDiscard(n Notifier) Notifier {
	if n == nil {
		return discardNotifier{}
	}
	return n
}
