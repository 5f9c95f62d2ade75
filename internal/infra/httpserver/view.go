package httpserver

import (
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/bryanwahyu/videomaster/internal/domain/analysis"
	domain "github.com/bryanwahyu/videomaster/internal/domain/session"
	"github.com/bryanwahyu/videomaster/internal/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

type texts struct {
	locale string
	l      *i18n.Localization
}

func (t texts) T(key string) string { return t.l.Text(t.locale, key) }

type card struct {
	ID                   string
	SourceURL            string
	Platform             analysis.Platform
	Title                string
	Summary              string
	Tags                 []string
	DownloadInstructions string
	DownloadLink         string
	BestQuality          string
	SuggestedFileName    string
	Thumbnail            string
	Citations            []analysis.Citation
	CreatedAt            time.Time
}

type PanelView struct {
	texts
	SessionID string
	Loading   bool
	Status    string
	Failure   *domain.Failure
	Cards     []card
}

type pageView struct {
	PanelView
	Lang             string
	Dir              string
	Prefill          string
	HasDeepLink      bool
	CleanURL         string
	StatusMessages   []string
	StatusIntervalMS int64
}

func (r *Router) panel(locale string, snap domain.Snapshot) PanelView {
	v := PanelView{
		texts:     texts{locale: locale, l: r.texts},
		SessionID: snap.ID,
		Loading:   snap.Loading,
		Failure:   snap.Failure,
		Cards:     make([]card, 0, len(snap.Records)),
	}
	if msgs := r.texts.StatusMessages(locale); len(msgs) > 0 {
		v.Status = msgs[0]
	}
	for _, rec := range snap.Records {
		v.Cards = append(v.Cards, r.card(rec))
	}
	return v
}

func (r *Router) card(rec domain.DisplayRecord) card {
	c := card{
		ID:                   string(rec.ID),
		SourceURL:            rec.SourceURL,
		Platform:             rec.Platform,
		Title:                rec.Title,
		Summary:              rec.Summary,
		Tags:                 displayTags(rec.Tags, r.tagLimit),
		DownloadInstructions: rec.DownloadInstructions,
		BestQuality:          rec.BestQuality,
		SuggestedFileName:    rec.SuggestedFileName,
		Thumbnail:            rec.ThumbnailPlaceholder,
		Citations:            rec.Citations,
		CreatedAt:            rec.CreatedAt,
	}
	if rec.DownloadLink != nil {
		c.DownloadLink = *rec.DownloadLink
	}
	return c
}

// displayTags removes case-insensitive duplicates keeping first spelling, then caps at limit.
// A limit <= 0 keeps everything.
func displayTags(tags []string, limit int) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(strings.TrimPrefix(tag, "#"))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
