package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte("body"))
	})
}

func TestHealthHandler(t *testing.T) {
	checks := map[string]HealthChecker{
		"analyzer":  ReadyFunc(func() bool { return true }),
		"telemetry": CheckFunc(func(context.Context) error { return errors.New("sink down") }),
	}
	rec := httptest.NewRecorder()
	HealthHandler(checks)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var status HealthStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, "unhealthy", status.Status)
	assert.Equal(t, "healthy", status.Checks["analyzer"].Status)
	assert.Equal(t, "sink down", status.Checks["telemetry"].Message)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestPingChecker_AppliesTimeout(t *testing.T) {
	p := PingChecker{Timeout: 10 * time.Millisecond, Target: pingerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})}
	assert.ErrorIs(t, p.Check(context.Background()), context.DeadlineExceeded)
}

func TestReadinessHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	ReadinessHandler(ReadyFunc(func() bool { return false }))(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_ready")

	rec = httptest.NewRecorder()
	ReadinessHandler(ReadyFunc(func() bool { return true }))(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	rec := httptest.NewRecorder()
	Logging(logger)(okHandler(http.StatusBadGateway)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/analyze", nil))

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "status=502")
	assert.Contains(t, out, "path=/api/v1/analyze")
	assert.Contains(t, out, "bytes=4")
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	h := m.Middleware(okHandler(http.StatusOK))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	m.Middleware(okHandler(http.StatusNotFound)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	done := m.AnalysisStarted()
	assert.Equal(t, int64(1), m.Snapshot()["analyses_running"])
	done("malformed_response")
	m.AnalysisStarted()("")
	m.Gauge("sessions", func() int64 { return 3 })

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap["requests_total"])
	assert.Equal(t, uint64(1), snap["requests_success"])
	assert.Equal(t, uint64(1), snap["requests_failed"])
	assert.Equal(t, uint64(2), snap["analyses_total"])
	assert.Equal(t, int64(0), snap["analyses_running"])
	assert.Equal(t, map[string]uint64{"malformed_response": 1}, snap["analyses_failed"])
	assert.Equal(t, map[string]int64{"sessions": 3}, snap["gauges"])

	rec := httptest.NewRecorder()
	m.Handler(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(rec.Body.String(), "requests_total"))
}

func TestTokenBucket(t *testing.T) {
	tb := NewTokenBucket(2, 1)
	now := tb.lastRefill
	assert.True(t, tb.allowAt(now))
	assert.True(t, tb.allowAt(now))
	assert.False(t, tb.allowAt(now))
	assert.True(t, tb.allowAt(now.Add(1500*time.Millisecond)))
}

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(1, 0)
	h := rl.Middleware(okHandler(http.StatusOK))

	req := func(ip string) int {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", nil)
		r.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec.Code
	}
	assert.Equal(t, http.StatusOK, req("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, req("10.0.0.1"))
	assert.Equal(t, http.StatusOK, req("10.0.0.2"))
}

func TestRateLimiter_Prune(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.Allow("a")
	assert.Equal(t, 0, rl.Prune(time.Now(), time.Minute))
	assert.Equal(t, 1, rl.Prune(time.Now().Add(2*time.Minute), time.Minute))
}

func TestRateLimiter_RunStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewRateLimiter(1, 1).Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestValidateIDs(t *testing.T) {
	assert.NoError(t, ValidateSessionID(uuid.NewString()))
	assert.Error(t, ValidateSessionID(""))
	assert.Error(t, ValidateRecordID("not-a-uuid"))
}

func TestSanitizeURLInput(t *testing.T) {
	s, err := SanitizeURLInput("  https://x.com/a\x00\x07  ")
	require.NoError(t, err)
	assert.Equal(t, "https://x.com/a", s)

	_, err = SanitizeURLInput("https://" + strings.Repeat("a", maxURLLength))
	assert.Error(t, err)
}
