package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Reporter accumulates timestamped metric records by category and appends
// them as JSON to a log file on Flush.
type Reporter struct {
	mu      sync.Mutex
	logFile *os.File
	pending map[string][]interface{}
}

func NewReporter(logPath string) (*Reporter, error) {
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	return &Reporter{
		logFile: file,
		pending: make(map[string][]interface{}),
	}, nil
}

func (r *Reporter) Record(category string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := map[string]interface{}{
		"timestamp": time.Now(),
		"data":      data,
	}

	r.pending[category] = append(r.pending[category], entry)
}

func (r *Reporter) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.pending) == 0 {
		return nil
	}

	data, err := json.MarshalIndent(r.pending, "", "  ")
	if err != nil {
		return err
	}

	if _, err := r.logFile.Write(append(data, '\n')); err != nil {
		return err
	}

	r.pending = make(map[string][]interface{})
	return nil
}

func (r *Reporter) Close() error {
	if err := r.Flush(); err != nil {
		return fmt.Errorf("failed to flush metrics: %w", err)
	}
	return r.logFile.Close()
}
