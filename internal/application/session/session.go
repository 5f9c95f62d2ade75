package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/videomaster/internal/application"
	"github.com/bryanwahyu/videomaster/internal/application/deeplink"
	"github.com/bryanwahyu/videomaster/internal/domain/analysis"
	domain "github.com/bryanwahyu/videomaster/internal/domain/session"
	"github.com/bryanwahyu/videomaster/internal/domain/telemetry"
	"github.com/bryanwahyu/videomaster/internal/i18n"
)

var (
	// ErrSubmissionInFlight is returned, and nothing else happens, while the
	// session already has an analysis outstanding.
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrRecordNotFound     = errors.New("record not found")
)

// DefaultThumbnailPattern is a stand-in image seeded with the record id.
const DefaultThumbnailPattern = "https://picsum.photos/seed/%s/400/225"

// Analyzer is the orchestrator as the session sees it.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (analysis.Result, error)
}

// Deps are shared by every session of a store.
type Deps struct {
	Analyzer         Analyzer
	Clock            application.Clock
	Texts            *i18n.Localization
	Tracker          telemetry.Tracker
	ThumbnailPattern string
}

func (d Deps) withDefaults() Deps {
	if d.Clock == nil {
		d.Clock = application.SystemClock{}
	}
	if d.Texts == nil {
		d.Texts = i18n.NewLocalization(i18n.Arabic)
	}
	if d.Tracker == nil {
		d.Tracker = nopTracker{}
	}
	if d.ThumbnailPattern == "" {
		d.ThumbnailPattern = DefaultThumbnailPattern
	}
	return d
}

// Session owns one page's record list and its single-flight flag.
type Session struct {
	id     string
	locale string
	deps   Deps

	mu       sync.Mutex
	loading  bool
	records  []domain.DisplayRecord
	failure  *domain.Failure
	lastSeen time.Time
}

func newSession(id, locale string, deps Deps) *Session {
	deps = deps.withDefaults()
	return &Session{id: id, locale: locale, deps: deps, lastSeen: deps.Clock.Now()}
}

func (s *Session) ID() string     { return s.id }
func (s *Session) Locale() string { return s.locale }

// Submit runs one analysis and prepends the resulting record. While another
// submission is outstanding it returns ErrSubmissionInFlight without side effects.
func (s *Session) Submit(ctx context.Context, rawURL string) (domain.DisplayRecord, error) {
	if !s.begin() {
		return domain.DisplayRecord{}, ErrSubmissionInFlight
	}
	return s.run(ctx, rawURL)
}

// Start claims the single-flight slot now and runs the submission in the
// background. It reports false when the slot was taken.
func (s *Session) Start(rawURL string) bool {
	if !s.begin() {
		return false
	}
	go func() {
		// background context, the page request that started it is already gone
		_, _ = s.run(context.Background(), rawURL)
	}()
	return true
}

func (s *Session) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	s.lastSeen = s.deps.Clock.Now()
	return true
}

func (s *Session) run(ctx context.Context, rawURL string) (domain.DisplayRecord, error) {
	s.track(telemetry.EventAnalysisSubmitted, nil)

	res, err := s.deps.Analyzer.Analyze(ctx, rawURL)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	now := s.deps.Clock.Now()
	s.lastSeen = now

	if err != nil {
		kind := analysis.KindOf(err)
		if kind == "" {
			kind = analysis.KindAnalyzerFailure
		}
		s.failure = &domain.Failure{Kind: kind, Message: s.messageFor(err), At: now}
		s.track(telemetry.EventAnalysisFailed, map[string]string{"kind": string(kind)})
		return domain.DisplayRecord{}, err
	}

	id := uuid.NewString()
	rec := domain.DisplayRecord{
		ID:                   domain.RecordID(id),
		SourceURL:            strings.TrimSpace(rawURL),
		CreatedAt:            now,
		ThumbnailPlaceholder: fmt.Sprintf(s.deps.ThumbnailPattern, id),
		Result:               res,
	}
	s.records = append([]domain.DisplayRecord{rec}, s.records...)
	s.failure = nil
	s.track(telemetry.EventAnalysisSucceeded, map[string]string{"platform": string(res.Platform)})
	return rec, nil
}

// messageFor picks the localized text for a failed submission.
func (s *Session) messageFor(err error) string {
	key := i18n.KeyErrAnalyzer
	switch analysis.KindOf(err) {
	case analysis.KindInvalidInput:
		key = i18n.KeyErrInvalidInput
	case analysis.KindMissingCredential:
		key = i18n.KeyErrCredential
	case analysis.KindMalformedResponse:
		key = i18n.KeyErrMalformed
	case analysis.KindAnalyzerFailure:
		if errors.Is(err, analysis.ErrQuotaExceeded) {
			key = i18n.KeyErrQuota
		}
	}
	return s.deps.Texts.Text(s.locale, key)
}

// Remove drops one record by identity. Order of the rest is unchanged.
func (s *Session) Remove(id domain.RecordID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.deps.Clock.Now()
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i:i], s.records[i+1:]...)
			s.track(telemetry.EventRecordRemoved, nil)
			return true
		}
	}
	return false
}

// Records returns a copy, most recent first.
func (s *Session) Records() []domain.DisplayRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.DisplayRecord{}, s.records...)
}

// Record looks one record up by identity.
func (s *Session) Record(id domain.RecordID) (domain.DisplayRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return domain.DisplayRecord{}, false
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastFailure is the outcome of the latest rejected submission, cleared by
// the next success.
func (s *Session) LastFailure() *domain.Failure {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure == nil {
		return nil
	}
	f := *s.failure
	return &f
}

func (s *Session) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := domain.Snapshot{
		ID:      s.id,
		Loading: s.loading,
		Records: append([]domain.DisplayRecord{}, s.records...),
	}
	if s.failure != nil {
		f := *s.failure
		snap.Failure = &f
	}
	return snap
}

// ShareLink builds the deep link that re-creates a record's analysis.
func (s *Session) ShareLink(base *url.URL, id domain.RecordID) (string, error) {
	rec, ok := s.Record(id)
	if !ok {
		return "", ErrRecordNotFound
	}
	s.track(telemetry.EventShareLinkCreated, nil)
	return deeplink.ShareLink(base, rec.SourceURL), nil
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return 0
	}
	return now.Sub(s.lastSeen)
}

func (s *Session) track(name string, props map[string]string) {
	s.deps.Tracker.Track(telemetry.Event{Name: name, SessionID: s.id, Props: props, At: s.deps.Clock.Now()})
}

type nopTracker struct{}

func (nopTracker) Track(telemetry.Event) {}
