package analysis

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"https://www.tiktok.com/@u/video/1", "https://www.tiktok.com/@u/video/1", true},
		{"  HTTP://youtu.be/x  ", "HTTP://youtu.be/x", true},
		{"", "", false},
		{"   ", "", false},
		{"www.tiktok.com/video", "", false},
		{"ftp://example.com/a", "", false},
		{"https://", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			req, err := NewRequest(tt.raw)
			if !tt.ok {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.URL)
		})
	}
}

func TestParsePlatform(t *testing.T) {
	assert.Equal(t, PlatformTikTok, ParsePlatform(" tiktok "))
	assert.Equal(t, PlatformYouTube, ParsePlatform("YouTube"))
	assert.Equal(t, PlatformTwitter, ParsePlatform("X"))
	assert.Equal(t, PlatformInstagram, ParsePlatform("INSTAGRAM"))
	assert.Equal(t, PlatformUnknown, ParsePlatform("Vimeo"))
	assert.Equal(t, PlatformUnknown, ParsePlatform(""))
}

func TestErrorKinds(t *testing.T) {
	cause := fmt.Errorf("%w: 429 from provider", ErrQuotaExceeded)
	err := AnalyzerFailure(cause)

	assert.True(t, errors.Is(err, ErrAnalyzerFailure))
	assert.False(t, errors.Is(err, ErrMalformedResponse))
	assert.True(t, errors.Is(err, ErrQuotaExceeded))
	assert.Equal(t, KindAnalyzerFailure, KindOf(err))
	assert.Equal(t, KindAnalyzerFailure, KindOf(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, cause, e.Err)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "invalid_input: url is required", InvalidInput("url is required").Error())
	assert.Equal(t, "malformed_response: bad json: eof", MalformedResponse("bad json", errors.New("eof")).Error())
	assert.Equal(t, "analyzer_failure: boom", AnalyzerFailure(errors.New("boom")).Error())
}

func TestVideoSchema(t *testing.T) {
	assert.Equal(t, []string{"platform", "title", "summary", "downloadInstructions"}, VideoSchema.RequiredNames())
	assert.Len(t, VideoSchema.Fields, 8)
}
