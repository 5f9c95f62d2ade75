package httpserver

import (
	"context"

	appsession "github.com/bryanwahyu/videomaster/internal/application/session"
	"github.com/bryanwahyu/videomaster/internal/domain/analysis"
	"github.com/bryanwahyu/videomaster/internal/middleware"
)

type metered struct {
	next    appsession.Analyzer
	metrics *middleware.Metrics
}

// Metered counts analyses and their failure kinds in m.
func Metered(next appsession.Analyzer, m *middleware.Metrics) appsession.Analyzer {
	return metered{next: next, metrics: m}
}

func (a metered) Analyze(ctx context.Context, rawURL string) (analysis.Result, error) {
	done := a.metrics.AnalysisStarted()
	res, err := a.next.Analyze(ctx, rawURL)
	kind := ""
	if err != nil {
		kind = string(analysis.KindOf(err))
		if kind == "" {
			kind = string(analysis.KindAnalyzerFailure)
		}
	}
	done(kind)
	return res, err
}
