// Package ai selects the analyzer adapter for a provider name.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/bryanwahyu/videomaster/internal/domain/analysis"
	"github.com/bryanwahyu/videomaster/internal/infra/ai/gemini"
	"github.com/bryanwahyu/videomaster/internal/infra/ai/openai"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// New builds the analyzer for provider. An empty apiKey is allowed; the
// result then reports no credential.
func New(ctx context.Context, provider, apiKey, model, baseURL string) (analysis.Analyzer, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderGemini:
		return gemini.NewClient(ctx, apiKey, model, baseURL)
	case ProviderOpenAI:
		return openai.NewClient(apiKey, model, baseURL), nil
	default:
		return nil, fmt.Errorf("unknown analyzer provider %q", provider)
	}
}
