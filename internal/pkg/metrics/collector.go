package metrics

import (
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"enigmaCrackerBackend/internal/core/domain"
)

// Collector samples process resources for every running crack job.
type Collector struct {
	mu             sync.RWMutex
	metrics        map[string]*jobMetrics
	updateInterval time.Duration
}

type jobMetrics struct {
	domain.ResourceMetrics
	startedAt time.Time
	done      chan struct{}
}

func NewCollector(interval time.Duration) *Collector {
	if interval <= 0 {
		interval = time.Second
	}
	return &Collector{
		metrics:        make(map[string]*jobMetrics),
		updateInterval: interval,
	}
}

func (c *Collector) StartCollection(jobID string) {
	now := time.Now()
	jm := &jobMetrics{
		ResourceMetrics: domain.ResourceMetrics{LastUpdated: now},
		startedAt:       now,
		done:            make(chan struct{}),
	}

	c.mu.Lock()
	if old, ok := c.metrics[jobID]; ok {
		close(old.done)
	}
	c.metrics[jobID] = jm
	c.mu.Unlock()

	go c.collect(jobID, jm)
}

// StopCollection ends sampling and returns the last sample, or nil for an
// unknown job.
func (c *Collector) StopCollection(jobID string) *domain.ResourceMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	jm, ok := c.metrics[jobID]
	if !ok {
		return nil
	}
	close(jm.done)
	delete(c.metrics, jobID)
	last := jm.ResourceMetrics
	return &last
}

// GetMetrics returns a copy of the latest sample.
func (c *Collector) GetMetrics(jobID string) *domain.ResourceMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if jm, exists := c.metrics[jobID]; exists {
		m := jm.ResourceMetrics
		return &m
	}
	return nil
}

func (c *Collector) collect(jobID string, jm *jobMetrics) {
	ticker := time.NewTicker(c.updateInterval)
	defer ticker.Stop()

	for {
		c.sample(jobID, jm)
		select {
		case <-jm.done:
			return
		case <-ticker.C:
		}
	}
}

func (c *Collector) sample(jobID string, jm *jobMetrics) {
	cpuUsage := GetCPUUsage()
	used := GetMemoryUsage()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.metrics[jobID] != jm {
		return
	}
	jm.CPUUsage = cpuUsage
	jm.MemoryUsageMB = int64(used / 1024 / 1024)
	jm.LastUpdated = time.Now()
}

// UpdateAttempts records the job's progress as reported by its worker pool.
func (c *Collector) UpdateAttempts(jobID string, attempts int64, activeThreads int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if jm, exists := c.metrics[jobID]; exists {
		jm.TotalAttempts = attempts
		jm.ActiveThreads = activeThreads
		if secs := time.Since(jm.startedAt).Seconds(); secs > 0 {
			jm.AttemptsPerSec = int64(float64(attempts) / secs)
		}
	}
}

// GetCPUUsage is the system wide CPU load since the previous call, in percent.
// The collector's ticker paces the measurement.
func GetCPUUsage() float64 {
	usage, err := cpu.Percent(0, false)
	if err != nil || len(usage) == 0 {
		return 0
	}
	return usage[0]
}

// GetMemoryUsage is the heap in use by this process, in bytes.
func GetMemoryUsage() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

// SystemMemory reports total and available host memory in megabytes.
func SystemMemory() (totalMB, availableMB uint64, err error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, 0, err
	}
	return vm.Total / 1024 / 1024, vm.Available / 1024 / 1024, nil
}
