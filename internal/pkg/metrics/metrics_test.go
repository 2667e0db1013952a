package metrics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCollector_SessionLifecycle(t *testing.T) {
	c := NewCollector(10 * time.Millisecond)

	c.StartCollection("s1")
	defer c.StopCollection("s1")

	time.Sleep(20 * time.Millisecond)
	c.UpdateAttempts("s1", 1000, 4)

	m, ok := c.GetMetrics("s1")
	if !ok {
		t.Fatal("expected metrics for running session")
	}
	if m.TotalAttempts != 1000 {
		t.Errorf("total attempts = %d, want 1000", m.TotalAttempts)
	}
	if m.ActiveWorkers != 4 {
		t.Errorf("active workers = %d, want 4", m.ActiveWorkers)
	}
	if m.AttemptsPerSec <= 0 {
		t.Errorf("attempts per sec = %d, want positive", m.AttemptsPerSec)
	}
}

func TestCollector_StopCollection(t *testing.T) {
	c := NewCollector(10 * time.Millisecond)

	c.StartCollection("s1")
	c.StopCollection("s1")

	if _, ok := c.GetMetrics("s1"); ok {
		t.Error("expected no metrics after stop")
	}

	// Updates for unknown sessions are dropped, not panics.
	c.UpdateAttempts("s1", 10, 1)
}

func TestReporter_RecordAndFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.log")

	r, err := NewReporter(path)
	if err != nil {
		t.Fatalf("NewReporter: %v", err)
	}

	r.Record("attack", map[string]interface{}{"attempts": 42})
	r.Record("attack", map[string]interface{}{"attempts": 99})
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var decoded map[string][]map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal flushed metrics: %v", err)
	}
	if len(decoded["attack"]) != 2 {
		t.Errorf("attack records = %d, want 2", len(decoded["attack"]))
	}

	// A flush with nothing pending must not append another document.
	if err := r.Flush(); err != nil {
		t.Fatalf("empty Flush: %v", err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(after) != len(data) {
		t.Errorf("file grew on empty flush: %d -> %d bytes", len(data), len(after))
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestCapturePerformance(t *testing.T) {
	perf := CapturePerformance(func() {
		buf := make([]byte, 1<<20)
		_ = buf[0]
	})

	if perf.BytesAlloc < 1<<20 {
		t.Errorf("bytes allocated = %d, want at least %d", perf.BytesAlloc, 1<<20)
	}
	if perf.EndTime.Before(perf.StartTime) {
		t.Error("end time precedes start time")
	}
	if perf.Duration < 0 {
		t.Errorf("duration = %v, want non-negative", perf.Duration)
	}
}
