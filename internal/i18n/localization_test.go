package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiate(t *testing.T) {
	l := NewLocalization(Arabic)

	tests := []struct {
		header string
		want   string
	}{
		{"", Arabic},
		{"en-US,en;q=0.9", English},
		{"ar-EG", Arabic},
		{"fr-FR", Arabic},
		{"fr-FR,en;q=0.5", English},
		{"not a header;;", Arabic},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Negotiate(tt.header))
		})
	}
}

func TestFallback(t *testing.T) {
	assert.Equal(t, English, NewLocalization(English).Fallback())
	assert.Equal(t, Arabic, NewLocalization("de").Fallback())
}

func TestText(t *testing.T) {
	l := NewLocalization(Arabic)

	assert.Equal(t, "Video Master", l.Text(English, KeyAppTitle))
	assert.Equal(t, "فيديو ماستر", l.Text(Arabic, KeyAppTitle))
	// unknown locale falls back
	assert.Equal(t, "فيديو ماستر", l.Text("de", KeyAppTitle))
	// unknown key returns itself
	assert.Equal(t, "nope", l.Text(English, "nope"))
	assert.NotEqual(t, l.Text(English, KeyErrInvalidInput), l.Text(English, KeyErrAnalyzer))
}

func TestStatusMessagesAreCopies(t *testing.T) {
	l := NewLocalization(Arabic)
	msgs := l.StatusMessages(English)
	assert.NotEmpty(t, msgs)
	msgs[0] = "changed"
	assert.NotEqual(t, "changed", l.StatusMessages(English)[0])
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Arabic", LanguageName("ar"))
	assert.Equal(t, "English", LanguageName("en"))
	assert.Equal(t, "Arabic", LanguageName("!!"))
}

func TestDir(t *testing.T) {
	l := NewLocalization(Arabic)
	assert.Equal(t, "rtl", l.Dir(Arabic))
	assert.Equal(t, "ltr", l.Dir(English))
}
