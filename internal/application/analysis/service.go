package analysis

import (
	"context"
	"time"

	domain "github.com/bryanwahyu/videomaster/internal/domain/analysis"
)

const defaultLanguage = "Arabic"

// Options tune how the orchestrator talks to the analyzer.
type Options struct {
	// Language the download guidance is written in, as an English name.
	Language string
	// WebSearch lets the analyzer ground its answer in live search results.
	WebSearch bool
	// Timeout bounds the single analyzer call. Zero means no bound.
	Timeout time.Duration
}

// Service is the analysis orchestrator. It holds no per-call state and is
// safe for concurrent use.
type Service struct {
	analyzer domain.Analyzer
	opts     Options
}

func NewService(analyzer domain.Analyzer, opts Options) *Service {
	if opts.Language == "" {
		opts.Language = defaultLanguage
	}
	return &Service{analyzer: analyzer, opts: opts}
}

// Ready reports whether Analyze can reach the network at all.
func (s *Service) Ready() bool {
	return s.analyzer != nil && s.analyzer.HasCredential()
}

// Analyze validate → prompt → single call → parse. No retries.
func (s *Service) Analyze(ctx context.Context, rawURL string) (domain.Result, error) {
	req, err := domain.NewRequest(rawURL)
	if err != nil {
		return domain.Result{}, err
	}
	if !s.Ready() {
		return domain.Result{}, domain.MissingCredential("no analyzer credential configured")
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	resp, err := s.analyzer.Generate(ctx, s.prompt(req))
	if err != nil {
		return domain.Result{}, domain.AnalyzerFailure(err)
	}
	return Parse(resp)
}

func (s *Service) prompt(req domain.Request) domain.Prompt {
	return domain.Prompt{
		// search-grounded calls lose native JSON mode, so the schema goes inline
		System:      SystemPrompt(domain.VideoSchema, s.opts.WebSearch),
		Instruction: UserPrompt(req.URL, s.opts.Language),
		Schema:      domain.VideoSchema,
		WebSearch:   s.opts.WebSearch,
	}
}
