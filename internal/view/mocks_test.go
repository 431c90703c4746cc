package view

import (
	"context"
	"sync"

	"github.com/jobfinder/dashboard-go/internal/model"
)

type mockJobs struct {
	ListFunc         func(ctx context.Context, filters model.JobFilters) (*model.JobList, error)
	GetFunc          func(ctx context.Context, id string) (*model.Job, error)
	StatsFunc        func(ctx context.Context) (*model.JobStats, error)
	UpdateStatusFunc func(ctx context.Context, id string, status model.JobStatus) (*model.Job, error)
	UpdateFunc       func(ctx context.Context, id string, update model.JobUpdate) (*model.Job, error)
}

func (m *mockJobs) List(ctx context.Context, filters model.JobFilters) (*model.JobList, error) {
	return m.ListFunc(ctx, filters)
}

func (m *mockJobs) Get(ctx context.Context, id string) (*model.Job, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockJobs) Stats(ctx context.Context) (*model.JobStats, error) {
	return m.StatsFunc(ctx)
}

func (m *mockJobs) UpdateStatus(ctx context.Context, id string, status model.JobStatus) (*model.Job, error) {
	return m.UpdateStatusFunc(ctx, id, status)
}

func (m *mockJobs) Update(ctx context.Context, id string, update model.JobUpdate) (*model.Job, error) {
	return m.UpdateFunc(ctx, id, update)
}

type mockUpwork struct {
	StatusFunc     func(ctx context.Context) (*model.UpworkStatus, error)
	ConnectURLFunc func(ctx context.Context) (*model.UpworkConnect, error)
	SyncFunc       func(ctx context.Context) (*model.UpworkProfile, error)
	DisconnectFunc func(ctx context.Context) error
}

func (m *mockUpwork) Status(ctx context.Context) (*model.UpworkStatus, error) {
	return m.StatusFunc(ctx)
}

func (m *mockUpwork) ConnectURL(ctx context.Context) (*model.UpworkConnect, error) {
	return m.ConnectURLFunc(ctx)
}

func (m *mockUpwork) Sync(ctx context.Context) (*model.UpworkProfile, error) {
	return m.SyncFunc(ctx)
}

func (m *mockUpwork) Disconnect(ctx context.Context) error {
	return m.DisconnectFunc(ctx)
}

type toast struct {
	kind, title, description string
}

type recordingNotifier struct {
	mu     sync.Mutex
	toasts []toast
}

func (n *recordingNotifier) Success(title, description string) string {
	n.add("success", title, description)
	return ""
}

func (n *recordingNotifier) Error(title, description string) string {
	n.add("error", title, description)
	return ""
}

func (n *recordingNotifier) add(kind, title, description string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, toast{kind, title, description})
}

func (n *recordingNotifier) all() []toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]toast(nil), n.toasts...)
}
