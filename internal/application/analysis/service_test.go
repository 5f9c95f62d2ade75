package analysis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/videomaster/internal/domain/analysis"
)

type stubAnalyzer struct {
	mu         sync.Mutex
	credential bool
	resp       domain.Response
	err        error
	calls      int
	last       domain.Prompt
}

func (s *stubAnalyzer) HasCredential() bool { return s.credential }

func (s *stubAnalyzer) Generate(ctx context.Context, p domain.Prompt) (domain.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = p
	return s.resp, s.err
}

func newStub(text string) *stubAnalyzer {
	return &stubAnalyzer{credential: true, resp: domain.Response{Text: text}}
}

const validJSON = `{"platform":"TikTok","title":"T","summary":"S","downloadInstructions":"D","tags":["a","b"]}`

func TestAnalyze_InvalidInputMakesNoCall(t *testing.T) {
	inputs := []string{"", "   ", "\t\n", "ftp://example.com/v", "example.com/video", "javascript:alert(1)", "https://", "http//x.com"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			stub := newStub(validJSON)
			svc := NewService(stub, Options{})

			_, err := svc.Analyze(context.Background(), in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)
			assert.Equal(t, 0, stub.calls)
		})
	}
}

func TestAnalyze_MissingCredential(t *testing.T) {
	stub := newStub(validJSON)
	stub.credential = false
	svc := NewService(stub, Options{})

	_, err := svc.Analyze(context.Background(), "https://www.tiktok.com/@u/video/1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingCredential))
	assert.Equal(t, 0, stub.calls)

	_, err = NewService(nil, Options{}).Analyze(context.Background(), "https://x.com/1")
	assert.Equal(t, domain.KindMissingCredential, domain.KindOf(err))
}

func TestAnalyze_Success(t *testing.T) {
	stub := newStub(validJSON)
	svc := NewService(stub, Options{})

	res, err := svc.Analyze(context.Background(), "https://www.tiktok.com/@u/video/1")
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformTikTok, res.Platform)
	assert.Equal(t, "T", res.Title)
	assert.Equal(t, "S", res.Summary)
	assert.Equal(t, "D", res.DownloadInstructions)
	assert.Equal(t, []string{"a", "b"}, res.Tags)
	assert.NotNil(t, res.Citations)
	assert.Empty(t, res.Citations)
	assert.Nil(t, res.DownloadLink)
	assert.Equal(t, 1, stub.calls)
}

func TestAnalyze_PromptCarriesURLAndLanguage(t *testing.T) {
	stub := newStub(validJSON)
	svc := NewService(stub, Options{Language: "English", WebSearch: true})

	_, err := svc.Analyze(context.Background(), "  https://youtu.be/abc  ")
	require.NoError(t, err)
	assert.Contains(t, stub.last.Instruction, "https://youtu.be/abc")
	assert.Contains(t, stub.last.Instruction, "instructions in English")
	assert.True(t, stub.last.WebSearch)
	assert.Contains(t, stub.last.System, `"downloadInstructions"`)
	assert.Equal(t, domain.VideoSchema, stub.last.Schema)
}

func TestAnalyze_DefaultLanguageIsArabic(t *testing.T) {
	stub := newStub(validJSON)
	_, err := NewService(stub, Options{}).Analyze(context.Background(), "https://youtu.be/abc")
	require.NoError(t, err)
	assert.Contains(t, stub.last.Instruction, "instructions in Arabic")
	assert.NotContains(t, stub.last.System, "Schema (example")
}

func TestAnalyze_UnknownPlatform(t *testing.T) {
	stub := newStub(`{"platform":"Snapchat","title":"T","summary":"S","downloadInstructions":"D"}`)
	res, err := NewService(stub, Options{}).Analyze(context.Background(), "https://snapchat.com/x")
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformUnknown, res.Platform)
	assert.NotNil(t, res.Tags)
	assert.Empty(t, res.Tags)
}

func TestAnalyze_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"non-JSON", "Sorry, I cannot help with that."},
		{"empty", ""},
		{"missing title", `{"platform":"TikTok","summary":"S","downloadInstructions":"D"}`},
		{"blank summary", `{"platform":"TikTok","title":"T","summary":"  ","downloadInstructions":"D"}`},
		{"missing instructions", `{"platform":"TikTok","title":"T","summary":"S"}`},
		{"array document", `[{"title":"T"}]`},
		{"null document", `null`},
		{"trailing data", validJSON + ` and more`},
		{"wrong tag type", `{"title":"T","summary":"S","downloadInstructions":"D","tags":[1,2]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(newStub(tt.text), Options{}).Analyze(context.Background(), "https://x.com/1")
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedResponse), "got %v", err)
		})
	}
}

func TestAnalyze_AnalyzerFailureKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	stub := &stubAnalyzer{credential: true, err: cause}

	_, err := NewService(stub, Options{}).Analyze(context.Background(), "https://x.com/1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAnalyzerFailure))
	assert.True(t, errors.Is(err, cause))

	stub.err = domain.ErrQuotaExceeded
	_, err = NewService(stub, Options{}).Analyze(context.Background(), "https://x.com/1")
	assert.True(t, errors.Is(err, domain.ErrQuotaExceeded))
}

type slowAnalyzer struct{}

func (slowAnalyzer) HasCredential() bool { return true }

func (slowAnalyzer) Generate(ctx context.Context, p domain.Prompt) (domain.Response, error) {
	<-ctx.Done()
	return domain.Response{}, ctx.Err()
}

func TestAnalyze_TimeoutBoundsCall(t *testing.T) {
	svc := NewService(slowAnalyzer{}, Options{Timeout: 20 * time.Millisecond})
	_, err := svc.Analyze(context.Background(), "https://x.com/1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAnalyzerFailure))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestAnalyze_CitationsAttached(t *testing.T) {
	stub := newStub(validJSON)
	stub.resp.Citations = []domain.Citation{{Label: "TikTok", URI: "https://tiktok.com"}, {URI: "https://example.com/a"}}

	res, err := NewService(stub, Options{WebSearch: true}).Analyze(context.Background(), "https://x.com/1")
	require.NoError(t, err)
	require.Len(t, res.Citations, 2)
	assert.Equal(t, domain.Citation{Label: "TikTok", URI: "https://tiktok.com"}, res.Citations[0])
	assert.Equal(t, "https://example.com/a", res.Citations[1].Label)
}
