package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	domain "github.com/bryanwahyu/videomaster/internal/domain/telemetry"
)

const (
	defaultBuffer   = 256
	defaultInterval = 10 * time.Second
	maxBatch        = 100
)

// Service buffers events in memory and flushes them to a Sink in batches.
// Track never blocks; when the buffer is full the event is dropped.
type Service struct {
	sink     domain.Sink
	events   chan domain.Event
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	dropped atomic.Int64
	written atomic.Int64

	mu      sync.Mutex
	started bool
	stopped bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func New(sink domain.Sink, bufferSize int, flushInterval time.Duration, logger *slog.Logger) *Service {
	if sink == nil {
		sink = NopSink{}
	}
	if bufferSize <= 0 {
		bufferSize = defaultBuffer
	}
	if flushInterval <= 0 {
		flushInterval = defaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sink:     sink,
		events:   make(chan domain.Event, bufferSize),
		interval: flushInterval,
		logger:   logger,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Init starts the flush loop. Calling it twice is a no-op.
func (s *Service) Init(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	go s.loop(loopCtx)
}

func (s *Service) Track(e domain.Event) {
	if e.At.IsZero() {
		e.At = s.now()
	}
	select {
	case s.events <- e:
	default:
		s.dropped.Add(1)
	}
}

func (s *Service) Dropped() int64 { return s.dropped.Load() }

func (s *Service) Written() int64 { return s.written.Load() }

// Ping reports the sink health when the sink supports it.
func (s *Service) Ping(ctx context.Context) error {
	if p, ok := s.sink.(domain.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Shutdown drains buffered events, flushes them and closes the sink.
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	started := s.started
	if started {
		s.cancel()
	}
	s.mu.Unlock()

	if started {
		select {
		case <-s.done:
		case <-ctx.Done():
			s.sink.Close()
			return ctx.Err()
		}
	} else {
		s.flush(ctx, s.drain(nil))
	}
	return s.sink.Close()
}

func (s *Service) loop(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var batch []domain.Event
	for {
		select {
		case e := <-s.events:
			batch = append(batch, e)
			if len(batch) >= maxBatch {
				s.flush(ctx, batch)
				batch = nil
			}
		case <-ticker.C:
			s.flush(ctx, batch)
			batch = nil
		case <-ctx.Done():
			s.flush(context.Background(), s.drain(batch))
			return
		}
	}
}

func (s *Service) drain(batch []domain.Event) []domain.Event {
	for {
		select {
		case e := <-s.events:
			batch = append(batch, e)
		default:
			return batch
		}
	}
}

func (s *Service) flush(ctx context.Context, batch []domain.Event) {
	if len(batch) == 0 {
		return
	}
	if err := s.sink.Write(ctx, batch); err != nil {
		s.logger.Warn("telemetry flush failed", "events", len(batch), "err", err)
		return
	}
	s.written.Add(int64(len(batch)))
}
