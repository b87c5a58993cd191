package db

import (
	"context"
	"sort"
	"sync"

	"enigmaCrackerBackend/internal/core/domain"
	"enigmaCrackerBackend/internal/port"
)

// memoryRepository keeps job records for the lifetime of the process. Jobs
// are copied in and out so callers never share a record with the store.
type memoryRepository struct {
	mu      sync.RWMutex
	jobs    map[string]domain.CrackingJob
	metrics map[string][]domain.ResourceMetrics
}

func NewMemoryRepository() port.Repository {
	return &memoryRepository{
		jobs:    make(map[string]domain.CrackingJob),
		metrics: make(map[string][]domain.ResourceMetrics),
	}
}

func (r *memoryRepository) SaveJob(ctx context.Context, job *domain.CrackingJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = *job
	return nil
}

func (r *memoryRepository) UpdateJob(ctx context.Context, job *domain.CrackingJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; !ok {
		return domain.ErrJobNotFound
	}
	r.jobs[job.ID] = *job
	return nil
}

func (r *memoryRepository) GetJob(ctx context.Context, jobID string) (*domain.CrackingJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return &job, nil
}

func (r *memoryRepository) DeleteJob(ctx context.Context, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[jobID]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, jobID)
	delete(r.metrics, jobID)
	return nil
}

// ListJobs returns matching jobs, newest first.
func (r *memoryRepository) ListJobs(ctx context.Context, filter port.JobFilter) ([]domain.CrackingJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	jobs := make([]domain.CrackingJob, 0, len(r.jobs))
	for _, job := range r.jobs {
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		if filter.Level != 0 && job.Level != filter.Level {
			continue
		}
		if filter.StartDate > 0 && job.StartTime.Unix() < filter.StartDate {
			continue
		}
		if filter.EndDate > 0 && job.StartTime.Unix() > filter.EndDate {
			continue
		}
		jobs = append(jobs, job)
	}
	r.mu.RUnlock()

	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].StartTime.Equal(jobs[j].StartTime) {
			return jobs[i].ID < jobs[j].ID
		}
		return jobs[i].StartTime.After(jobs[j].StartTime)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(jobs) {
			return []domain.CrackingJob{}, nil
		}
		jobs = jobs[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(jobs) {
		jobs = jobs[:filter.Limit]
	}
	return jobs, nil
}

func (r *memoryRepository) SaveMetrics(ctx context.Context, jobID string, metrics *domain.ResourceMetrics) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[jobID]; !ok {
		return domain.ErrJobNotFound
	}
	r.metrics[jobID] = append(r.metrics[jobID], *metrics)
	return nil
}

// MetricsHistory returns every sample saved for a job. It is not part of
// port.Repository.
func MetricsHistory(repo port.Repository, jobID string) []domain.ResourceMetrics {
	r, ok := repo.(*memoryRepository)
	if !ok {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.ResourceMetrics(nil), r.metrics[jobID]...)
}
