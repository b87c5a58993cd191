package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enigmaCrackerBackend/internal/core/domain"
	"enigmaCrackerBackend/internal/port"
)

func TestMemoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	job := &domain.CrackingJob{ID: "a", Level: domain.LevelEasy, Status: domain.StatusRunning, StartTime: time.Now()}
	require.NoError(t, repo.SaveJob(ctx, job))

	// Stored records are copies.
	job.Status = domain.StatusFailed
	got, err := repo.GetJob(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRunning, got.Status)

	got.Status = domain.StatusComplete
	got.FoundCode = "<1,2,3><A,B,C><I>"
	require.NoError(t, repo.UpdateJob(ctx, got))
	again, err := repo.GetJob(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "<1,2,3><A,B,C><I>", again.FoundCode)

	require.NoError(t, repo.SaveMetrics(ctx, "a", &domain.ResourceMetrics{TotalAttempts: 10}))
	assert.Len(t, MetricsHistory(repo, "a"), 1)

	require.NoError(t, repo.DeleteJob(ctx, "a"))
	_, err = repo.GetJob(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
	assert.ErrorIs(t, repo.UpdateJob(ctx, got), domain.ErrJobNotFound)
	assert.ErrorIs(t, repo.DeleteJob(ctx, "a"), domain.ErrJobNotFound)
	assert.ErrorIs(t, repo.SaveMetrics(ctx, "a", &domain.ResourceMetrics{}), domain.ErrJobNotFound)
}

func TestMemoryRepository_ListJobs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		status := domain.StatusComplete
		if i%2 == 1 {
			status = domain.StatusExhausted
		}
		require.NoError(t, repo.SaveJob(ctx, &domain.CrackingJob{
			ID:        fmt.Sprintf("job-%d", i),
			Level:     domain.TaskLevel(i%3 + 1),
			Status:    status,
			StartTime: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	tests := []struct {
		name   string
		filter port.JobFilter
		want   []string
	}{
		{"all newest first", port.JobFilter{}, []string{"job-5", "job-4", "job-3", "job-2", "job-1", "job-0"}},
		{"by status", port.JobFilter{Status: domain.StatusExhausted}, []string{"job-5", "job-3", "job-1"}},
		{"by level", port.JobFilter{Level: domain.LevelMedium}, []string{"job-4", "job-1"}},
		{"paged", port.JobFilter{Limit: 2, Offset: 1}, []string{"job-4", "job-3"}},
		{"offset past end", port.JobFilter{Offset: 10}, []string{}},
		{"since", port.JobFilter{StartDate: base.Add(4 * time.Minute).Unix()}, []string{"job-5", "job-4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := repo.ListJobs(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]string, 0, len(jobs))
			for _, j := range jobs {
				ids = append(ids, j.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestMemoryRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := NewMemoryRepository()
	assert.ErrorIs(t, repo.SaveJob(ctx, &domain.CrackingJob{ID: "x"}), context.Canceled)
	_, err := repo.ListJobs(ctx, port.JobFilter{})
	assert.ErrorIs(t, err, context.Canceled)
}
