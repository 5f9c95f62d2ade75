package deeplink

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Aliases(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
		ok    bool
	}{
		{"none", "", "", false},
		{"url", "url=https%3A%2F%2Fx.com%2F1", "https://x.com/1", true},
		{"v", "v=https://youtu.be/a", "https://youtu.be/a", true},
		{"link", "link=https://tiktok.com/x", "https://tiktok.com/x", true},
		{"url wins over v", "v=second&url=first", "first", true},
		{"v wins over link", "link=third&v=second", "second", true},
		{"blank url skipped", "url=%20&link=third", "third", true},
		{"other params ignored", "q=1", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			got, ok := Parse(q)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShareLink_RoundTrip(t *testing.T) {
	base, err := url.Parse("https://videomaster.example/")
	require.NoError(t, err)

	sources := []string{
		"https://x.com/1",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
		"https://www.tiktok.com/@user/video/123?lang=ar#frag",
		"https://example.com/مرحبا?a=b c",
	}
	for _, src := range sources {
		link := ShareLink(base, src)
		u, err := url.Parse(link)
		require.NoError(t, err)
		got, ok := Parse(u.Query())
		require.True(t, ok, link)
		assert.Equal(t, src, got)
	}

	assert.Equal(t, "https://videomaster.example/?url=https%3A%2F%2Fx.com%2F1", ShareLink(base, "https://x.com/1"))
}

func TestShareLink_ReplacesExistingDeepLink(t *testing.T) {
	base, _ := url.Parse("https://videomaster.example/?v=old&lang=en")
	link := ShareLink(base, "https://x.com/1")
	u, _ := url.Parse(link)
	assert.Equal(t, "en", u.Query().Get("lang"))
	assert.Empty(t, u.Query().Get("v"))
	assert.Equal(t, "https://x.com/1", u.Query().Get("url"))
}

func TestStrip(t *testing.T) {
	u, _ := url.Parse("https://videomaster.example/?url=a&v=b&link=c&lang=en#top")
	assert.Equal(t, "https://videomaster.example/?lang=en", Strip(u).String())
	// input untouched
	assert.Equal(t, "a", u.Query().Get("url"))

	u, _ = url.Parse("/?url=a")
	assert.Equal(t, "/", Strip(u).String())
}
