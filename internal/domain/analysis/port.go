package analysis

import "context"

// Prompt is what the orchestrator hands to an Analyzer.
type Prompt struct {
	System      string
	Instruction string
	Schema      Schema
	WebSearch   bool
}

// Response is the raw analyzer answer. Citations travel beside the text,
// never inside it.
type Response struct {
	Text      string
	Citations []Citation
}

// Analyzer port (external generative-AI backend)
type Analyzer interface {
	HasCredential() bool
	Generate(ctx context.Context, p Prompt) (Response, error)
}
