package metrics

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records per-operation counts/durations and archive-cache
// hit/miss counts, and serves them on an HTTP endpoint when enabled.
type Collector struct {
	mu       sync.RWMutex
	config   *Config
	registry *prometheus.Registry

	operationCounter  *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	cacheRequests     *prometheus.CounterVec

	operations map[string]*OperationMetrics
	lastReset  time.Time

	server *http.Server
}

// Config represents metrics configuration
type Config struct {
	Enabled   bool   `yaml:"enabled"`
	Port      int    `yaml:"port"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
}

// OperationMetrics tracks in-process metrics for a specific operation name,
// mirrored onto the Prometheus vectors so the debug endpoint can show a
// human-readable summary without scraping /metrics.
type OperationMetrics struct {
	Count         int64
	TotalDuration time.Duration
	Errors        int64
	LastOperation time.Time
	AvgDuration   time.Duration
}

// NewCollector creates a new metrics collector. A nil config disables
// metrics entirely; every recording method becomes a no-op.
func NewCollector(config *Config) (*Collector, error) {
	if config == nil {
		config = &Config{Enabled: false}
	}
	if !config.Enabled {
		return &Collector{config: config}, nil
	}
	if config.Port == 0 {
		config.Port = 9293
	}
	if config.Path == "" {
		config.Path = "/metrics"
	}
	if config.Namespace == "" {
		config.Namespace = "botwfs"
	}

	registry := prometheus.NewRegistry()
	c := &Collector{
		config:     config,
		registry:   registry,
		operations: make(map[string]*OperationMetrics),
		lastReset:  time.Now(),
	}

	c.initMetrics()
	if err := c.registerMetrics(); err != nil {
		return nil, fmt.Errorf("metrics: register: %w", err)
	}
	return c, nil
}

// Start starts the metrics collection server. A no-op when disabled.
func (c *Collector) Start(ctx context.Context) error {
	if !c.config.Enabled {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(c.config.Path, promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", c.healthHandler)
	mux.HandleFunc("/debug/operations", c.debugOperationsHandler)

	c.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", c.config.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := c.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("metrics: server error: %v\n", err)
		}
	}()
	return nil
}

// Stop stops the metrics collection server.
func (c *Collector) Stop(ctx context.Context) error {
	if c.server != nil {
		return c.server.Shutdown(ctx)
	}
	return nil
}

// RecordOperation records one filesystem operation's outcome and duration.
// A nil Collector is a no-op, so callers that construct a FileSystem without
// metrics enabled don't need a disabled Collector just to satisfy this call.
func (c *Collector) RecordOperation(operation string, duration time.Duration, success bool) {
	if c == nil || !c.config.Enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	m, exists := c.operations[operation]
	if !exists {
		m = &OperationMetrics{}
		c.operations[operation] = m
	}
	m.Count++
	m.TotalDuration += duration
	if !success {
		m.Errors++
	}
	m.LastOperation = time.Now()
	m.AvgDuration = time.Duration(int64(m.TotalDuration) / m.Count)

	status := "success"
	if !success {
		status = "error"
	}
	c.operationCounter.With(prometheus.Labels{"operation": operation, "status": status}).Inc()
	c.operationDuration.With(prometheus.Labels{"operation": operation}).Observe(duration.Seconds())
}

// RecordArchiveCacheHit records one archiveCache.getOrParse call that found
// an already-parsed archive.
func (c *Collector) RecordArchiveCacheHit() {
	if c == nil || !c.config.Enabled {
		return
	}
	c.cacheRequests.With(prometheus.Labels{"outcome": "hit"}).Inc()
}

// RecordArchiveCacheMiss records one archiveCache.getOrParse call that had
// to open and parse the archive itself.
func (c *Collector) RecordArchiveCacheMiss() {
	if c == nil || !c.config.Enabled {
		return
	}
	c.cacheRequests.With(prometheus.Labels{"outcome": "miss"}).Inc()
}

// Snapshot returns a copy of the current per-operation counts, for tests
// and for anything that wants the numbers without scraping /metrics.
func (c *Collector) Snapshot() map[string]OperationMetrics {
	if c == nil || !c.config.Enabled {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]OperationMetrics, len(c.operations))
	for name, m := range c.operations {
		out[name] = *m
	}
	return out
}

func (c *Collector) initMetrics() {
	c.operationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: c.config.Namespace,
			Name:      "operations_total",
			Help:      "Total number of filesystem operations.",
		},
		[]string{"operation", "status"},
	)
	c.operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: c.config.Namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of filesystem operations in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16),
		},
		[]string{"operation"},
	)
	c.cacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: c.config.Namespace,
			Name:      "archive_cache_requests_total",
			Help:      "Archive-cache lookups, by hit or miss.",
		},
		[]string{"outcome"},
	)
}

func (c *Collector) registerMetrics() error {
	for _, m := range []prometheus.Collector{c.operationCounter, c.operationDuration, c.cacheRequests} {
		if err := c.registry.Register(m); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collector) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

func (c *Collector) debugOperationsHandler(w http.ResponseWriter, r *http.Request) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	w.Header().Set("Content-Type", "text/plain")
	writef := func(format string, args ...interface{}) { _, _ = fmt.Fprintf(w, format, args...) }

	writef("botwfs operations summary\n")
	writef("uptime: %v\n\n", time.Since(c.lastReset))

	if len(c.operations) == 0 {
		writef("no operations recorded.\n")
		return
	}

	writef("%-16s %10s %10s %14s\n", "operation", "count", "errors", "avg_duration")
	for name, op := range c.operations {
		writef("%-16s %10d %10d %14v\n", name, op.Count, op.Errors, op.AvgDuration)
	}
}
