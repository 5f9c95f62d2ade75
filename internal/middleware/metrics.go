package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics stores application metrics
type Metrics struct {
	requestsTotal      atomic.Uint64
	requestsInProgress atomic.Int64
	requestsSuccess    atomic.Uint64
	requestsFailed     atomic.Uint64
	analysesTotal      atomic.Uint64
	analysesRunning    atomic.Int64

	mu         sync.Mutex
	failures   map[string]uint64
	startTime  time.Time
	extraGauge map[string]func() int64
}

func NewMetrics() *Metrics {
	return &Metrics{
		failures:   make(map[string]uint64),
		startTime:  time.Now(),
		extraGauge: make(map[string]func() int64),
	}
}

// AnalysisStarted increments the running gauge; the returned func records the outcome.
func (m *Metrics) AnalysisStarted() func(failureKind string) {
	m.analysesTotal.Add(1)
	m.analysesRunning.Add(1)
	return func(kind string) {
		m.analysesRunning.Add(-1)
		if kind == "" {
			return
		}
		m.mu.Lock()
		m.failures[kind]++
		m.mu.Unlock()
	}
}

// Gauge registers a value read at snapshot time, e.g. live sessions.
func (m *Metrics) Gauge(name string, read func() int64) {
	m.mu.Lock()
	m.extraGauge[name] = read
	m.mu.Unlock()
}

// Snapshot returns current metrics
func (m *Metrics) Snapshot() map[string]interface{} {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	m.mu.Lock()
	failures := make(map[string]uint64, len(m.failures))
	for k, v := range m.failures {
		failures[k] = v
	}
	gauges := make(map[string]int64, len(m.extraGauge))
	for k, read := range m.extraGauge {
		gauges[k] = read()
	}
	m.mu.Unlock()

	return map[string]interface{}{
		"requests_total":       m.requestsTotal.Load(),
		"requests_in_progress": m.requestsInProgress.Load(),
		"requests_success":     m.requestsSuccess.Load(),
		"requests_failed":      m.requestsFailed.Load(),
		"analyses_total":       m.analysesTotal.Load(),
		"analyses_running":     m.analysesRunning.Load(),
		"analyses_failed":      failures,
		"gauges":               gauges,
		"uptime_seconds":       time.Since(m.startTime).Seconds(),
		"memory": map[string]interface{}{
			"alloc_bytes":       mem.Alloc,
			"total_alloc_bytes": mem.TotalAlloc,
			"sys_bytes":         mem.Sys,
			"num_gc":            mem.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	}
}

// Middleware tracks request metrics
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.requestsTotal.Add(1)
		m.requestsInProgress.Add(1)
		defer m.requestsInProgress.Add(-1)

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode >= 200 && wrapped.statusCode < 400 {
			m.requestsSuccess.Add(1)
		} else {
			m.requestsFailed.Add(1)
		}
	})
}

// Handler returns metrics as JSON
func (m *Metrics) Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m.Snapshot())
}
