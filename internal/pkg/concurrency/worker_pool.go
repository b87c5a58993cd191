package concurrency

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"enigmaCrackerBackend/internal/core/domain"
)

type WorkerPool struct {
	workers    []*Worker
	tasks      chan Task
	results    chan Result
	numWorkers int
	metrics    *PoolMetrics
	startedAt  time.Time
	wg         sync.WaitGroup
	stop       chan struct{}
	stopOnce   sync.Once
}

type Worker struct {
	id        int
	tasks     chan Task
	results   chan Result
	metrics   *WorkerMetrics
	isWorking atomic.Bool
}

// Task is one unit of work. Function must honour ctx; it runs on the worker
// goroutine.
type Task struct {
	ID       string
	JobID    string
	Function func(ctx context.Context) (value string, attempts int64, err error)
	Timeout  time.Duration
}

type Result struct {
	TaskID   string
	JobID    string
	Value    string
	Attempts int64
	Error    error
	Duration time.Duration
	WorkerID int
}

type PoolMetrics struct {
	ActiveWorkers  int
	CompletedTasks int64
	FailedTasks    int64
	Attempts       int64
	TotalDuration  time.Duration
	AverageLatency time.Duration
	mu             sync.RWMutex
}

type WorkerMetrics struct {
	TasksCompleted int64
	TasksFailed    int64
	Attempts       int64
	TotalDuration  time.Duration
	LastActive     time.Time
	mu             sync.RWMutex
}

func NewWorkerPool(numWorkers int, queueSize int) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	pool := &WorkerPool{
		workers:    make([]*Worker, numWorkers),
		tasks:      make(chan Task, queueSize),
		results:    make(chan Result, queueSize),
		numWorkers: numWorkers,
		metrics:    &PoolMetrics{},
		stop:       make(chan struct{}),
	}

	for i := 0; i < numWorkers; i++ {
		pool.workers[i] = &Worker{
			id:      i,
			tasks:   pool.tasks,
			results: pool.results,
			metrics: &WorkerMetrics{
				LastActive: time.Now(),
			},
		}
	}

	return pool
}

func (p *WorkerPool) Size() int {
	return p.numWorkers
}

func (p *WorkerPool) Start(ctx context.Context) {
	p.startedAt = time.Now()
	for _, worker := range p.workers {
		p.wg.Add(1)
		go worker.start(ctx, &p.wg)
	}

	go p.collectMetrics(ctx)
}

// Submit queues a task. It gives up and returns the context error when ctx
// is done before the queue has room.
func (p *WorkerPool) Submit(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Results delivers one Result per executed task and is closed by Stop. The
// caller must keep draining it while tasks are running.
func (p *WorkerPool) Results() <-chan Result {
	return p.results
}

// Stop closes the queue, waits for the workers to finish and closes Results.
// Only the goroutine that submits tasks may call it.
func (p *WorkerPool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
		close(p.tasks)
		p.wg.Wait()
		p.updatePoolMetrics()
		close(p.results)
	})
}

func (p *WorkerPool) GetMetrics() domain.ResourceMetrics {
	p.metrics.mu.RLock()
	defer p.metrics.mu.RUnlock()

	return domain.ResourceMetrics{
		ActiveThreads:  p.metrics.ActiveWorkers,
		AttemptsPerSec: p.attemptsPerSecond(),
		TotalAttempts:  p.metrics.Attempts,
		LastUpdated:    time.Now(),
	}
}

func (p *WorkerPool) Snapshot() PoolMetrics {
	p.metrics.mu.RLock()
	defer p.metrics.mu.RUnlock()
	return PoolMetrics{
		ActiveWorkers:  p.metrics.ActiveWorkers,
		CompletedTasks: p.metrics.CompletedTasks,
		FailedTasks:    p.metrics.FailedTasks,
		Attempts:       p.metrics.Attempts,
		TotalDuration:  p.metrics.TotalDuration,
		AverageLatency: p.metrics.AverageLatency,
	}
}

func (w *Worker) start(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-w.tasks:
			if !ok {
				return
			}

			w.isWorking.Store(true)
			startTime := time.Now()

			taskCtx, cancel := ctx, context.CancelFunc(func() {})
			if task.Timeout > 0 {
				taskCtx, cancel = context.WithTimeout(ctx, task.Timeout)
			}
			value, attempts, err := task.Function(taskCtx)
			cancel()

			duration := time.Since(startTime)
			w.updateMetrics(err == nil, attempts, duration)
			w.isWorking.Store(false)

			w.results <- Result{
				TaskID:   task.ID,
				JobID:    task.JobID,
				Value:    value,
				Attempts: attempts,
				Error:    err,
				Duration: duration,
				WorkerID: w.id,
			}
		}
	}
}

func (w *Worker) updateMetrics(success bool, attempts int64, duration time.Duration) {
	w.metrics.mu.Lock()
	defer w.metrics.mu.Unlock()

	if success {
		w.metrics.TasksCompleted++
	} else {
		w.metrics.TasksFailed++
	}
	w.metrics.Attempts += attempts
	w.metrics.TotalDuration += duration
	w.metrics.LastActive = time.Now()
}

func (p *WorkerPool) collectMetrics(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stop:
			return
		case <-ticker.C:
			p.updatePoolMetrics()
		}
	}
}

func (p *WorkerPool) updatePoolMetrics() {
	activeWorkers := 0
	var totalCompleted, totalFailed, attempts int64
	var totalDuration time.Duration

	for _, worker := range p.workers {
		worker.metrics.mu.RLock()
		totalCompleted += worker.metrics.TasksCompleted
		totalFailed += worker.metrics.TasksFailed
		attempts += worker.metrics.Attempts
		totalDuration += worker.metrics.TotalDuration
		worker.metrics.mu.RUnlock()

		if worker.isWorking.Load() {
			activeWorkers++
		}
	}

	p.metrics.mu.Lock()
	p.metrics.ActiveWorkers = activeWorkers
	p.metrics.CompletedTasks = totalCompleted
	p.metrics.FailedTasks = totalFailed
	p.metrics.Attempts = attempts
	p.metrics.TotalDuration = totalDuration
	if n := totalCompleted + totalFailed; n > 0 {
		p.metrics.AverageLatency = totalDuration / time.Duration(n)
	}
	p.metrics.mu.Unlock()
}

// attemptsPerSecond is measured against wall time since Start. Callers hold
// p.metrics.mu.
func (p *WorkerPool) attemptsPerSecond() int64 {
	elapsed := time.Since(p.startedAt).Seconds()
	if p.startedAt.IsZero() || elapsed <= 0 {
		return 0
	}
	return int64(float64(p.metrics.Attempts) / elapsed)
}
