package metrics

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Lifecycle(t *testing.T) {
	c := NewCollector(10 * time.Millisecond)
	c.StartCollection("job-1")

	require.Eventually(t, func() bool {
		m := c.GetMetrics("job-1")
		return m != nil && m.MemoryUsageMB >= 0 && m.CPUUsage >= 0
	}, time.Second, 5*time.Millisecond)

	c.UpdateAttempts("job-1", 500, 3)
	m := c.GetMetrics("job-1")
	require.NotNil(t, m)
	assert.Equal(t, int64(500), m.TotalAttempts)
	assert.Equal(t, 3, m.ActiveThreads)

	last := c.StopCollection("job-1")
	require.NotNil(t, last)
	assert.Equal(t, int64(500), last.TotalAttempts)
	assert.Nil(t, c.GetMetrics("job-1"))
	assert.Nil(t, c.StopCollection("job-1"))

	// Updates for unknown jobs are ignored.
	c.UpdateAttempts("job-1", 1, 1)
	assert.Nil(t, c.GetMetrics("job-1"))
}

func TestCollector_RestartReplacesSampler(t *testing.T) {
	c := NewCollector(5 * time.Millisecond)
	c.StartCollection("job")
	c.UpdateAttempts("job", 10, 1)
	c.StartCollection("job")

	m := c.GetMetrics("job")
	require.NotNil(t, m)
	assert.Equal(t, int64(0), m.TotalAttempts)
	c.StopCollection("job")
}

func TestSystemMemory(t *testing.T) {
	total, available, err := SystemMemory()
	if err != nil {
		t.Skipf("host memory not readable: %v", err)
	}
	assert.Greater(t, total, uint64(0))
	assert.LessOrEqual(t, available, total)
	assert.Greater(t, GetMemoryUsage(), uint64(0))
}

func TestCapturePerformance(t *testing.T) {
	var sink [][]byte
	p := CapturePerformance(func() {
		for i := 0; i < 100; i++ {
			sink = append(sink, make([]byte, 1024))
		}
		time.Sleep(5 * time.Millisecond)
	})
	assert.Len(t, sink, 100)
	assert.GreaterOrEqual(t, p.Duration, 5*time.Millisecond)
	assert.GreaterOrEqual(t, p.MemoryUsage, uint64(100*1024))
	assert.GreaterOrEqual(t, p.AllocObjects, uint64(100))
	assert.True(t, p.EndTime.After(p.StartTime))
}

func TestReporter_FlushWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewWriterReporter(&buf)
	r.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	r.Record("jobs", map[string]string{"id": "a"})
	r.Record("jobs", map[string]string{"id": "b"})
	assert.Equal(t, 2, r.Pending("jobs"))
	require.NoError(t, r.Flush())
	assert.Equal(t, 0, r.Pending("jobs"))

	var doc map[string][]struct {
		Timestamp time.Time         `json:"timestamp"`
		Data      map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc["jobs"], 2)
	assert.Equal(t, "b", doc["jobs"][1].Data["id"])

	buf.Reset()
	require.NoError(t, r.Flush())
	assert.Empty(t, buf.String(), "nothing buffered, nothing written")
}

func TestReporter_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	r, err := NewReporter(path)
	require.NoError(t, err)
	r.Record("jobs", "done")
	require.NoError(t, r.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"done"`)

	_, err = NewReporter(filepath.Join(t.TempDir(), "missing", "report.json"))
	assert.Error(t, err)
}

func TestGetCPUUsage(t *testing.T) {
	GetCPUUsage()
	time.Sleep(20 * time.Millisecond)
	usage := GetCPUUsage()
	assert.GreaterOrEqual(t, usage, 0.0)
	assert.LessOrEqual(t, usage, 100.0)
}
