package metrics

import (
	"runtime"
	"time"

	"go.uber.org/zap/zapcore"
)

type PerformanceMetrics struct {
	StartTime    time.Time     `json:"startTime"`
	EndTime      time.Time     `json:"endTime"`
	Duration     time.Duration `json:"duration"`
	MemoryUsage  uint64        `json:"memoryUsage"`
	AllocObjects uint64        `json:"allocObjects"`
	GCCycles     uint32        `json:"gcCycles"`
}

// CapturePerformance runs fn and measures its wall time, bytes and objects
// allocated, and completed GC cycles. The figures are process wide.
func CapturePerformance(fn func()) *PerformanceMetrics {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	startAlloc := stats.TotalAlloc
	startMallocs := stats.Mallocs
	startGC := stats.NumGC

	metrics := &PerformanceMetrics{
		StartTime: time.Now(),
	}

	fn()

	runtime.ReadMemStats(&stats)
	metrics.EndTime = time.Now()
	metrics.Duration = metrics.EndTime.Sub(metrics.StartTime)
	metrics.MemoryUsage = stats.TotalAlloc - startAlloc
	metrics.AllocObjects = stats.Mallocs - startMallocs
	metrics.GCCycles = stats.NumGC - startGC

	return metrics
}

func (p *PerformanceMetrics) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddDuration("duration", p.Duration)
	enc.AddUint64("allocBytes", p.MemoryUsage)
	enc.AddUint64("allocObjects", p.AllocObjects)
	enc.AddUint32("gcCycles", p.GCCycles)
	return nil
}
