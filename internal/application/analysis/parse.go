package analysis

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	domain "github.com/bryanwahyu/videomaster/internal/domain/analysis"
)

// payload mirrors the response schema. Pointers tell absent from empty.
type payload struct {
	Platform             *string  `json:"platform"`
	Title                *string  `json:"title"`
	Summary              *string  `json:"summary"`
	BestQuality          *string  `json:"bestQuality"`
	DownloadInstructions *string  `json:"downloadInstructions"`
	Tags                 []string `json:"tags"`
	DownloadLink         *string  `json:"downloadLink"`
	SuggestedFileName    *string  `json:"suggestedFileName"`
}

// Parse validates an analyzer response and normalizes it into a Result.
// Every failure is a MalformedResponse.
func Parse(resp domain.Response) (domain.Result, error) {
	text := stripCodeFence(strings.TrimSpace(resp.Text))
	if text == "" {
		return domain.Result{}, domain.MalformedResponse("empty response", nil)
	}

	dec := json.NewDecoder(strings.NewReader(text))
	var p payload
	if err := dec.Decode(&p); err != nil {
		return domain.Result{}, domain.MalformedResponse("response is not a JSON object", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.Result{}, domain.MalformedResponse("trailing data after JSON object", nil)
	}

	required := []struct {
		name string
		v    *string
	}{
		{"title", p.Title},
		{"summary", p.Summary},
		{"downloadInstructions", p.DownloadInstructions},
	}
	for _, r := range required {
		if r.v == nil || strings.TrimSpace(*r.v) == "" {
			return domain.Result{}, domain.MalformedResponse("missing required field "+r.name, nil)
		}
	}

	res := domain.Result{
		Platform:             domain.ParsePlatform(deref(p.Platform)),
		Title:                strings.TrimSpace(*p.Title),
		Summary:              strings.TrimSpace(*p.Summary),
		DownloadInstructions: strings.TrimSpace(*p.DownloadInstructions),
		BestQuality:          strings.TrimSpace(deref(p.BestQuality)),
		SuggestedFileName:    strings.TrimSpace(deref(p.SuggestedFileName)),
		Tags:                 make([]string, 0, len(p.Tags)),
		Citations:            make([]domain.Citation, 0, len(resp.Citations)),
	}
	if link := strings.TrimSpace(deref(p.DownloadLink)); link != "" {
		res.DownloadLink = &link
	}
	for _, t := range p.Tags {
		if t = strings.TrimSpace(t); t != "" {
			res.Tags = append(res.Tags, t)
		}
	}
	for _, c := range resp.Citations {
		if c.Label == "" {
			c.Label = c.URI
		}
		res.Citations = append(res.Citations, c)
	}
	return res, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// stripCodeFence removes one enclosing ``` fence, which search-grounded
// responses tend to add.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	body := strings.TrimSuffix(s, "```")
	nl := strings.IndexByte(body, '\n')
	if nl < 0 {
		return s
	}
	return strings.TrimSpace(body[nl+1:])
}
