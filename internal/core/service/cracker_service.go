package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"enigmaCrackerBackend/internal/core/algorithm"
	"enigmaCrackerBackend/internal/core/domain"
	"enigmaCrackerBackend/internal/core/session"
	"enigmaCrackerBackend/internal/pkg/concurrency"
	"enigmaCrackerBackend/internal/pkg/logging"
	"enigmaCrackerBackend/internal/pkg/metrics"
	"enigmaCrackerBackend/internal/port"
)

const (
	DefaultAgents         = 4
	DefaultMissionSize    = 1000
	DefaultTimeout        = 30 * time.Minute
	MetricsUpdateInterval = time.Second

	// MaxAgents is the most agents a single request may ask for.
	MaxAgents = 1024

	reportCategory = "jobs"
)

const instrumentationName = "enigmaCrackerBackend/internal/core/service"

var tracer = otel.Tracer(instrumentationName)

type CrackingService struct {
	repo       port.Repository
	notifier   port.Notifier
	metrics    *metrics.Collector
	reporter   *metrics.Reporter
	logger     *zap.Logger
	activeJobs sync.Map
	counters   counters

	agents      int
	maxAgents   int
	missionSize int64
	timeout     time.Duration
}

var _ port.CrackingService = (*CrackingService)(nil)

type Option func(*CrackingService)

// WithNotifier sets the notifier used by requests that bring none.
func WithNotifier(n port.Notifier) Option {
	return func(s *CrackingService) {
		s.notifier = n
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *CrackingService) {
		s.logger = logging.OrNop(logger)
	}
}

// WithReporter appends a summary of every finished job to r.
func WithReporter(r *metrics.Reporter) Option {
	return func(s *CrackingService) {
		s.reporter = r
	}
}

// WithDefaults overrides the agent count, mission size and timeout used when
// a request leaves them zero. Non-positive values keep the built-in default.
func WithDefaults(agents int, missionSize int64, timeout time.Duration) Option {
	return func(s *CrackingService) {
		if agents > 0 {
			s.agents = agents
		}
		if missionSize > 0 {
			s.missionSize = missionSize
		}
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithMaxAgents caps the agents a job actually runs with. Requests asking for
// more are scaled down, not rejected. The cap never exceeds MaxAgents.
func WithMaxAgents(n int) Option {
	return func(s *CrackingService) {
		if n > 0 && n <= MaxAgents {
			s.maxAgents = n
		}
	}
}

func NewCrackingService(repo port.Repository, opts ...Option) *CrackingService {
	s := &CrackingService{
		repo:        repo,
		metrics:     metrics.NewCollector(MetricsUpdateInterval),
		logger:      zap.NewNop(),
		agents:      DefaultAgents,
		maxAgents:   MaxAgents,
		missionSize: DefaultMissionSize,
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.counters = newCounters(otel.Meter(instrumentationName))
	return s
}

type counters struct {
	jobs     metric.Int64Counter
	attempts metric.Int64Counter
}

func newCounters(meter metric.Meter) counters {
	jobs, err := meter.Int64Counter("enigma.crack.jobs",
		metric.WithDescription("Finished crack jobs by status."),
		metric.WithUnit("{job}"))
	if err != nil {
		jobs = noop.Int64Counter{}
	}
	attempts, err := meter.Int64Counter("enigma.crack.attempts",
		metric.WithDescription("Candidate codes tried."),
		metric.WithUnit("{candidate}"))
	if err != nil {
		attempts = noop.Int64Counter{}
	}
	return counters{jobs: jobs, attempts: attempts}
}

// plan is a validated request, ready to run.
type plan struct {
	job      *domain.CrackingJob
	searcher *algorithm.BruteForce
	base     *session.Session
	chunks   []algorithm.Chunk
	notifier port.Notifier
	agents   int
	deadline time.Time
}

type activeJob struct {
	cancel  context.CancelFunc
	stopped atomic.Bool
}

// Crack runs a crack job to completion. Running out of time or being
// cancelled is an exhausted outcome, not an error.
func (s *CrackingService) Crack(ctx context.Context, req port.CrackRequest) (*domain.CrackResult, error) {
	p, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	// A caller that is already done still gets its job recorded, and the run
	// below ends it as exhausted.
	if err := s.repo.SaveJob(context.WithoutCancel(ctx), p.job); err != nil {
		return nil, err
	}
	runCtx, active := s.register(ctx, p)
	return s.run(runCtx, p, active)
}

// StartCracking validates and registers the job, then runs it in the
// background. The job outlives ctx; use StopCracking to end it early.
func (s *CrackingService) StartCracking(ctx context.Context, req port.CrackRequest) (*domain.CrackingJob, error) {
	p, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)
	if err := s.repo.SaveJob(ctx, p.job); err != nil {
		return nil, err
	}
	snapshot := *p.job

	runCtx, active := s.register(ctx, p)
	go func() {
		if _, err := s.run(runCtx, p, active); err != nil {
			s.logger.Error("crack job failed", zap.String("job", p.job.ID), zap.Error(err))
		}
	}()
	return &snapshot, nil
}

// StopCracking cancels a running job. The job still finishes its bookkeeping
// and ends in the STOPPED state.
func (s *CrackingService) StopCracking(ctx context.Context, jobID string) error {
	v, ok := s.activeJobs.Load(jobID)
	if !ok {
		return domain.ErrJobNotFound
	}
	active := v.(*activeJob)
	active.stopped.Store(true)
	active.cancel()
	s.logger.Info("crack job stop requested", zap.String("job", jobID))
	return nil
}

func (s *CrackingService) GetJobStatus(ctx context.Context, jobID string) (*domain.CrackingJob, error) {
	return s.repo.GetJob(ctx, jobID)
}

func (s *CrackingService) ListJobs(ctx context.Context, filter port.JobFilter) ([]domain.CrackingJob, error) {
	return s.repo.ListJobs(ctx, filter)
}

// GetStatistics returns live metrics for a running job and the final metrics
// of a finished one.
func (s *CrackingService) GetStatistics(ctx context.Context, jobID string) (*domain.ResourceMetrics, error) {
	if m := s.metrics.GetMetrics(jobID); m != nil {
		return m, nil
	}
	job, err := s.repo.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	m := job.ResourceMetrics
	return &m, nil
}

func (s *CrackingService) prepare(req port.CrackRequest) (*plan, error) {
	if req.Template == nil || !req.Template.Ready() {
		return nil, domain.ErrNoMachineLoaded
	}
	if req.Dictionary == nil || req.Dictionary.Len() == 0 {
		return nil, domain.ErrEmptyDictionary
	}
	task := req.Task
	if !task.Level.Valid() {
		return nil, &domain.SettingsError{Field: "Level", Reason: fmt.Sprintf("unknown task level %d", task.Level)}
	}
	if task.Ciphertext == "" {
		return nil, &domain.SettingsError{Field: "Ciphertext", Reason: "nothing to decipher"}
	}

	catalog := req.Template.Catalog()
	if _, err := catalog.Alphabet().Indices(task.Ciphertext); err != nil {
		return nil, err
	}

	var space domain.CandidateSpace
	if task.Space != nil {
		space = *task.Space
	} else {
		space = algorithm.SpaceForLevel(task.Level, catalog, req.Template.RotorIDs(), req.Template.ReflectorID())
	}
	if err := checkSpace(catalog.RotorCount(), space, req.Template); err != nil {
		return nil, err
	}

	keyspace, err := algorithm.NewKeyspace(space, catalog.Alphabet().Size())
	if err != nil {
		return nil, err
	}

	if req.Agents > MaxAgents {
		return nil, &domain.SettingsError{Field: "Agents", Reason: fmt.Sprintf("at most %d agents, got %d", MaxAgents, req.Agents)}
	}
	agents := req.Agents
	if agents <= 0 {
		agents = s.agents
	}
	missionSize := req.MissionSize
	if missionSize <= 0 {
		missionSize = s.missionSize
	}
	deadline := task.Deadline
	if deadline.IsZero() {
		timeout := req.Timeout
		if timeout <= 0 {
			timeout = s.timeout
		}
		deadline = time.Now().Add(timeout)
	}

	notifier := req.Notifier
	if notifier == nil {
		notifier = s.notifier
	}

	jobID := req.JobID
	if jobID == "" {
		jobID = uuid.NewString()
	}

	chunks := keyspace.Partition(missionSize)
	agents = min(agents, s.maxAgents, len(chunks))
	return &plan{
		job: &domain.CrackingJob{
			ID:         jobID,
			Ciphertext: task.Ciphertext,
			Level:      task.Level,
			Status:     domain.StatusPending,
			StartTime:  time.Now(),
			Candidates: keyspace.Size(),
			Chunks:     len(chunks),
			Agents:     agents,
		},
		searcher: algorithm.NewBruteForce(keyspace, algorithm.NewScorer(task.Level, req.Dictionary), task.Ciphertext),
		base:     req.Template.Clone(session.WithoutStatistics()),
		chunks:   chunks,
		notifier: notifier,
		agents:   agents,
		deadline: deadline,
	}, nil
}

// checkSpace makes sure every rotor set and reflector of space can be
// assembled on the machine, so workers never fail half way.
func checkSpace(rotorCount int, space domain.CandidateSpace, template *session.Session) error {
	probe := template.Clone(session.WithoutStatistics())
	zeros := make([]int, rotorCount)
	for _, set := range space.RotorSets {
		if len(set) != rotorCount {
			return &domain.SettingsError{Field: "Space", Reason: fmt.Sprintf("rotor set %v does not hold %d rotors", set, rotorCount)}
		}
		for _, refl := range space.Reflectors {
			if err := probe.SetRotors(set, zeros, refl); err != nil {
				return err
			}
		}
	}
	return nil
}

// register makes the job stoppable before it starts running.
func (s *CrackingService) register(ctx context.Context, p *plan) (context.Context, *activeJob) {
	ctx, cancel := context.WithDeadline(ctx, p.deadline)
	active := &activeJob{cancel: cancel}
	s.activeJobs.Store(p.job.ID, active)
	return ctx, active
}

func (s *CrackingService) run(ctx context.Context, p *plan, active *activeJob) (*domain.CrackResult, error) {
	job := p.job
	defer active.cancel()

	ctx, span := tracer.Start(ctx, "crack", trace.WithAttributes(
		attribute.String("enigma.job.id", job.ID),
		attribute.String("enigma.job.level", job.Level.String()),
		attribute.Int64("enigma.job.candidates", job.Candidates),
		attribute.Int("enigma.job.agents", p.agents),
	))
	defer span.End()

	job.Status = domain.StatusRunning
	if err := s.repo.UpdateJob(context.WithoutCancel(ctx), job); err != nil {
		s.logger.Error("failed to update job", zap.String("job", job.ID), zap.Error(err))
	}

	s.metrics.StartCollection(job.ID)
	fields := []zap.Field{
		zap.String("job", job.ID),
		zap.Stringer("level", job.Level),
		zap.Int64("candidates", job.Candidates),
		zap.Int("chunks", job.Chunks),
		zap.Int("agents", p.agents),
	}
	if total, available, err := metrics.SystemMemory(); err == nil {
		fields = append(fields, zap.Uint64("hostMemoryMb", total), zap.Uint64("hostAvailableMb", available))
	}
	s.logger.Info("crack job started", fields...)

	var (
		flag     concurrency.FoundFlag
		winner   *algorithm.Hit
		attempts int64
		runErr   error
	)

	perf := metrics.CapturePerformance(func() {
		pool := concurrency.NewWorkerPool(p.agents, p.agents)
		pool.Start(ctx)

		go func() {
			defer pool.Stop()
			for _, chunk := range p.chunks {
				if flag.IsSet() {
					return
				}
				task := concurrency.Task{
					ID:       fmt.Sprintf("%s/%d", job.ID, chunk.Index),
					JobID:    job.ID,
					Function: s.mission(p, chunk, &flag, &winner),
				}
				if err := pool.Submit(ctx, task); err != nil {
					return
				}
			}
		}()

		for res := range pool.Results() {
			attempts += res.Attempts
			if res.Error != nil && !errors.Is(res.Error, context.Canceled) && !errors.Is(res.Error, context.DeadlineExceeded) {
				if runErr == nil {
					runErr = res.Error
				}
				flag.Stop()
			}
			s.metrics.UpdateAttempts(job.ID, attempts, pool.GetMetrics().ActiveThreads)
		}
	})

	s.activeJobs.Delete(job.ID)
	final := s.metrics.StopCollection(job.ID)
	if final == nil {
		final = &domain.ResourceMetrics{}
	}
	final.TotalAttempts = attempts
	if secs := perf.Duration.Seconds(); secs > 0 {
		final.AttemptsPerSec = int64(float64(attempts) / secs)
	}
	final.ActiveThreads = 0
	final.LastUpdated = time.Now()

	result := &domain.CrackResult{
		JobID:      job.ID,
		Outcome:    domain.OutcomeExhausted,
		Level:      job.Level,
		Candidates: job.Candidates,
		Attempts:   attempts,
		TimeTaken:  perf.Duration,
	}

	job.EndTime = time.Now()
	job.AttemptCount = attempts
	job.ResourceMetrics = *final
	switch {
	case runErr != nil:
		job.Status = domain.StatusFailed
		job.ErrorMessage = runErr.Error()
	case winner != nil:
		job.Status = domain.StatusComplete
		job.FoundCode = winner.Code
		job.Plaintext = winner.Plaintext
		result.Outcome = domain.OutcomeFound
		result.Code = winner.Code
		result.Plaintext = winner.Plaintext
	case active.stopped.Load():
		job.Status = domain.StatusStopped
	default:
		job.Status = domain.StatusExhausted
	}

	s.finalizeJob(context.WithoutCancel(ctx), job, perf)

	span.SetAttributes(
		attribute.String("enigma.job.status", string(job.Status)),
		attribute.Int64("enigma.job.attempts", attempts),
	)
	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
		return nil, runErr
	}
	return result, nil
}

// mission searches one chunk on its own session clone. A hit is only a win
// once the flag and the notifier both accept it.
func (s *CrackingService) mission(p *plan, chunk algorithm.Chunk, flag *concurrency.FoundFlag, winner **algorithm.Hit) func(context.Context) (string, int64, error) {
	sess := p.base.Clone(session.WithoutStatistics())
	jobID := p.job.ID

	return func(ctx context.Context) (string, int64, error) {
		hit, attempts, err := p.searcher.Search(ctx, sess, chunk, flag.IsSet)
		if err != nil || hit == nil {
			return "", attempts, err
		}

		event := domain.FoundEvent{
			JobID:     jobID,
			Found:     true,
			Code:      hit.Code,
			Plaintext: hit.Plaintext,
			FoundAt:   time.Now(),
		}
		won := flag.Claim(func() bool {
			if p.notifier != nil && !p.notifier.NotifyFound(ctx, event) {
				return false
			}
			*winner = hit
			return true
		})
		if !won {
			s.logger.Debug("candidate discarded", zap.String("job", jobID), zap.String("code", hit.Code))
			return "", attempts, nil
		}

		s.logger.Info("code found",
			zap.String("job", jobID),
			zap.Int("chunk", chunk.Index),
			zap.String("code", hit.Code),
			zap.String("plaintext", hit.Plaintext),
		)
		return hit.Code, attempts, nil
	}
}

func (s *CrackingService) finalizeJob(ctx context.Context, job *domain.CrackingJob, perf *metrics.PerformanceMetrics) {
	status := metric.WithAttributes(attribute.String("status", string(job.Status)))
	s.counters.jobs.Add(ctx, 1, status)
	s.counters.attempts.Add(ctx, job.AttemptCount, status)

	if err := s.repo.UpdateJob(ctx, job); err != nil {
		s.logger.Error("failed to update job", zap.String("job", job.ID), zap.Error(err))
	}
	if err := s.repo.SaveMetrics(ctx, job.ID, &job.ResourceMetrics); err != nil {
		s.logger.Error("failed to save job metrics", zap.String("job", job.ID), zap.Error(err))
	}

	if s.reporter != nil {
		s.reporter.Record(reportCategory, map[string]interface{}{
			"job":       job.ID,
			"status":    job.Status,
			"level":     job.Level,
			"attempts":  job.AttemptCount,
			"code":      job.FoundCode,
			"metrics":   job.ResourceMetrics,
			"duration":  perf.Duration.String(),
			"gcCycles":  perf.GCCycles,
			"allocated": perf.MemoryUsage,
		})
		if err := s.reporter.Flush(); err != nil {
			s.logger.Warn("failed to flush metrics report", zap.Error(err))
		}
	}

	s.logger.Info("crack job finished",
		zap.String("job", job.ID),
		zap.String("status", string(job.Status)),
		zap.Int64("attempts", job.AttemptCount),
		zap.Object("performance", perf),
	)
}
