package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Reporter buffers records by category and appends them to its sink as one
// JSON document per Flush.
type Reporter struct {
	mu      sync.Mutex
	sink    io.Writer
	closer  io.Closer
	metrics map[string][]interface{}
	now     func() time.Time
}

// NewReporter appends to the file at logPath, creating it if needed.
func NewReporter(logPath string) (*Reporter, error) {
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open metrics report: %w", err)
	}
	r := NewWriterReporter(file)
	r.closer = file
	return r, nil
}

// NewWriterReporter reports to w. Close does not close w.
func NewWriterReporter(w io.Writer) *Reporter {
	return &Reporter{
		sink:    w,
		metrics: make(map[string][]interface{}),
		now:     time.Now,
	}
}

func (r *Reporter) Record(category string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := map[string]interface{}{
		"timestamp": r.now(),
		"data":      data,
	}

	r.metrics[category] = append(r.metrics[category], entry)
}

// Pending is the number of buffered records in category.
func (r *Reporter) Pending(category string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.metrics[category])
}

func (r *Reporter) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.metrics) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(r.metrics, "", "  ")
	if err != nil {
		return err
	}

	if _, err := r.sink.Write(append(data, '\n')); err != nil {
		return err
	}

	r.metrics = make(map[string][]interface{})
	return nil
}

func (r *Reporter) Close() error {
	if err := r.Flush(); err != nil {
		return fmt.Errorf("failed to flush metrics: %w", err)
	}
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
