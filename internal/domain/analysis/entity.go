package analysis

import (
	"net/url"
	"strings"
)

// Request is the immutable input of one analysis.
type Request struct {
	URL string
}

// Citation is a search-grounded source attached to a result.
type Citation struct {
	Label string `json:"label"`
	URI   string `json:"uri"`
}

// Result is the normalized description of a video link.
type Result struct {
	Platform             Platform   `json:"platform"`
	Title                string     `json:"title"`
	Summary              string     `json:"summary"`
	Tags                 []string   `json:"tags"`
	DownloadInstructions string     `json:"download_instructions"`
	DownloadLink         *string    `json:"download_link,omitempty"`
	BestQuality          string     `json:"best_quality,omitempty"`
	SuggestedFileName    string     `json:"suggested_file_name,omitempty"`
	Citations            []Citation `json:"citations"`
}

// NewRequest validates raw and returns a Request for it. Only absolute
// http(s) URLs with a host are accepted.
func NewRequest(raw string) (Request, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Request{}, InvalidInput("url is required")
	}
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return Request{}, InvalidInput("url must start with http:// or https://")
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return Request{}, InvalidInput("url has no host")
	}
	return Request{URL: trimmed}, nil
}
