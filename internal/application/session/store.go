package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/videomaster/internal/domain/telemetry"
)

// Store keeps live sessions in memory. Nothing survives a restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	deps     Deps
	ttl      time.Duration
}

// NewStore; ttl <= 0 disables the idle sweep.
func NewStore(deps Deps, ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		deps:     deps.withDefaults(),
		ttl:      ttl,
	}
}

// Create starts a fresh, empty session.
func (st *Store) Create(locale string) *Session {
	s := newSession(uuid.NewString(), locale, st.deps)

	st.mu.Lock()
	st.sessions[s.id] = s
	st.mu.Unlock()

	s.track(telemetry.EventSessionStarted, map[string]string{"locale": locale})
	return s
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes sessions idle longer than the ttl. Sessions with a call in
// flight are never removed.
func (st *Store) Sweep(now time.Time) int {
	if st.ttl <= 0 {
		return 0
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.idleSince(now) > st.ttl {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	if st.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep(st.deps.Clock.Now())
		}
	}
}
