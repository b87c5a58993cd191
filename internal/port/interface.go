package port

import (
	"context"
	"time"

	"enigmaCrackerBackend/internal/core/algorithm"
	"enigmaCrackerBackend/internal/core/domain"
	"enigmaCrackerBackend/internal/core/session"
)

// CrackRequest is everything a crack job needs. Template supplies the machine
// and, when Task.Space is nil, the code the level's default space is built
// around; it is never stepped by the job. Zero Agents, MissionSize or
// Timeout take the service defaults.
type CrackRequest struct {
	JobID       string
	Task        domain.SearchTask
	Template    *session.Session
	Dictionary  *algorithm.Dictionary
	Agents      int
	MissionSize int64
	Timeout     time.Duration

	// Notifier overrides the service notifier for this request, for example
	// with a competition participant.
	Notifier Notifier
}

type CrackingService interface {
	Crack(ctx context.Context, req CrackRequest) (*domain.CrackResult, error)
	StartCracking(ctx context.Context, req CrackRequest) (*domain.CrackingJob, error)
	StopCracking(ctx context.Context, jobID string) error
	GetJobStatus(ctx context.Context, jobID string) (*domain.CrackingJob, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]domain.CrackingJob, error)
	GetStatistics(ctx context.Context, jobID string) (*domain.ResourceMetrics, error)
}

type Repository interface {
	SaveJob(ctx context.Context, job *domain.CrackingJob) error
	UpdateJob(ctx context.Context, job *domain.CrackingJob) error
	DeleteJob(ctx context.Context, jobID string) error
	GetJob(ctx context.Context, jobID string) (*domain.CrackingJob, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]domain.CrackingJob, error)
	SaveMetrics(ctx context.Context, jobID string, metrics *domain.ResourceMetrics) error
}

// Notifier carries the single found event of a task outward. NotifyFound
// reports false when the claim is refused because another searcher already
// won.
type Notifier interface {
	NotifyFound(ctx context.Context, event domain.FoundEvent) bool
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, event domain.FoundEvent) bool

func (f NotifierFunc) NotifyFound(ctx context.Context, event domain.FoundEvent) bool {
	return f(ctx, event)
}

type JobFilter struct {
	Status    domain.JobStatus
	Level     domain.TaskLevel
	StartDate int64
	EndDate   int64
	Limit     int
	Offset    int
}
