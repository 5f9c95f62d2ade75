// Package deeplink reads and builds the query parameters that pre-populate
// an analysis on page load.
package deeplink

import (
	"net/url"
	"strings"
)

// ShareParam is the parameter share links are written with.
const ShareParam = "url"

// Params are the accepted aliases, in precedence order.
var Params = []string{"url", "v", "link"}

// Parse returns the first non-blank alias value.
func Parse(q url.Values) (string, bool) {
	for _, p := range Params {
		if v := strings.TrimSpace(q.Get(p)); v != "" {
			return v, true
		}
	}
	return "", false
}

// Strip returns a copy of u without any deep-link parameter, so the visible
// address can be replaced after the auto-submission.
func Strip(u *url.URL) *url.URL {
	out := *u
	q := out.Query()
	for _, p := range Params {
		q.Del(p)
	}
	out.RawQuery = q.Encode()
	out.Fragment = ""
	return &out
}

// ShareLink re-encodes source as the deep-link parameter of base. Other
// query parameters on base are kept.
func ShareLink(base *url.URL, source string) string {
	out := Strip(base)
	q := out.Query()
	q.Set(ShareParam, source)
	out.RawQuery = q.Encode()
	return out.String()
}
