package metrics

import (
	"context"
	"testing"
	"time"
)

func TestNewCollectorDisabledByDefault(t *testing.T) {
	c, err := NewCollector(nil)
	if err != nil {
		t.Fatalf("NewCollector(nil) error = %v, want nil", err)
	}
	if c.config.Enabled {
		t.Errorf("nil config should disable metrics")
	}
	// Recording against a disabled collector must never touch nil vectors.
	c.RecordOperation("read", time.Millisecond, true)
	c.RecordArchiveCacheHit()
	c.RecordArchiveCacheMiss()
}

func TestNewCollectorFillsDefaults(t *testing.T) {
	c, err := NewCollector(&Config{Enabled: true})
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	if c.config.Port == 0 {
		t.Errorf("Port default was not filled in")
	}
	if c.config.Path != "/metrics" {
		t.Errorf("Path = %q, want /metrics", c.config.Path)
	}
	if c.config.Namespace != "botwfs" {
		t.Errorf("Namespace = %q, want botwfs", c.config.Namespace)
	}
}

func TestRecordOperationTracksCountAndErrors(t *testing.T) {
	c, err := NewCollector(&Config{Enabled: true, Port: 19293})
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	c.RecordOperation("read", 5*time.Millisecond, true)
	c.RecordOperation("read", 15*time.Millisecond, false)

	m := c.operations["read"]
	if m == nil {
		t.Fatalf("no metrics recorded for %q", "read")
	}
	if m.Count != 2 {
		t.Errorf("Count = %d, want 2", m.Count)
	}
	if m.Errors != 1 {
		t.Errorf("Errors = %d, want 1", m.Errors)
	}
	if m.AvgDuration != 10*time.Millisecond {
		t.Errorf("AvgDuration = %v, want 10ms", m.AvgDuration)
	}
}

func TestStartStopDisabledCollectorIsNoop(t *testing.T) {
	c, err := NewCollector(&Config{Enabled: false})
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	if err := c.Start(context.Background()); err != nil {
		t.Errorf("Start on disabled collector: %v", err)
	}
	if err := c.Stop(context.Background()); err != nil {
		t.Errorf("Stop on disabled collector: %v", err)
	}
}
