package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"enigmaCrackerBackend/internal/core/domain"
	"enigmaCrackerBackend/internal/port"
)

type MockNotifier struct {
	mock.Mock
}

var _ port.Notifier = (*MockNotifier)(nil)

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) NotifyFound(ctx context.Context, event domain.FoundEvent) bool {
	args := m.Called(ctx, event)
	return args.Bool(0)
}

type MockRepository struct {
	mock.Mock
}

var _ port.Repository = (*MockRepository)(nil)

func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

func (m *MockRepository) SaveJob(ctx context.Context, job *domain.CrackingJob) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockRepository) UpdateJob(ctx context.Context, job *domain.CrackingJob) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockRepository) DeleteJob(ctx context.Context, jobID string) error {
	return m.Called(ctx, jobID).Error(0)
}

func (m *MockRepository) GetJob(ctx context.Context, jobID string) (*domain.CrackingJob, error) {
	args := m.Called(ctx, jobID)
	if job, ok := args.Get(0).(*domain.CrackingJob); ok {
		return job, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) ListJobs(ctx context.Context, filter port.JobFilter) ([]domain.CrackingJob, error) {
	args := m.Called(ctx, filter)
	if jobs, ok := args.Get(0).([]domain.CrackingJob); ok {
		return jobs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) SaveMetrics(ctx context.Context, jobID string, metrics *domain.ResourceMetrics) error {
	return m.Called(ctx, jobID, metrics).Error(0)
}
