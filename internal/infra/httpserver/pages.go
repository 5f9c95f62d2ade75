package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/videomaster/internal/application/deeplink"
	appsession "github.com/bryanwahyu/videomaster/internal/application/session"
	"github.com/bryanwahyu/videomaster/internal/domain/analysis"
	domain "github.com/bryanwahyu/videomaster/internal/domain/session"
	"github.com/bryanwahyu/videomaster/internal/domain/telemetry"
	"github.com/bryanwahyu/videomaster/internal/i18n"
	"github.com/bryanwahyu/videomaster/internal/middleware"
)

// GET /
// Every page load gets a fresh session. A deep link starts exactly one submission.
func (r *Router) handleIndex(w http.ResponseWriter, req *http.Request) error {
	locale := r.locale(req)
	sess := r.store.Create(locale)

	src, hasLink := deeplink.Parse(req.URL.Query())
	if hasLink {
		r.tracker.Track(telemetry.Event{Name: telemetry.EventDeepLinkOpened, SessionID: sess.ID()})
		src = middleware.SanitizeString(src)
		sess.Start(src)
	}

	view := pageView{
		PanelView:        r.panel(locale, sess.Snapshot()),
		Lang:             locale,
		Dir:              r.texts.Dir(locale),
		HasDeepLink:      hasLink,
		CleanURL:         deeplink.Strip(req.URL).String(),
		StatusMessages:   r.texts.StatusMessages(locale),
		StatusIntervalMS: r.statusInterval.Milliseconds(),
	}
	if hasLink {
		view.Prefill = src
	}
	if view.CleanURL == "" {
		view.CleanURL = "/"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	return r.tmpl.ExecuteTemplate(w, "index", view)
}

// POST /sessions/{sid}/submissions
// Blocks until the analysis ends. A failure is shown inside the panel.
func (r *Router) handlePageSubmit(w http.ResponseWriter, req *http.Request) error {
	sess, err := r.session(req)
	if err != nil {
		return err
	}
	if err := req.ParseForm(); err != nil {
		return r.rejectInput(w, sess)
	}
	raw, err := middleware.SanitizeURLInput(req.PostForm.Get("url"))
	if err != nil {
		return r.rejectInput(w, sess)
	}

	if _, err := sess.Submit(req.Context(), raw); errors.Is(err, appsession.ErrSubmissionInFlight) {
		w.WriteHeader(http.StatusConflict)
		return nil
	}
	return r.renderPanel(w, sess)
}

// rejectInput answers 400 with the current panel and an invalid input banner.
// The session itself is left as it was.
func (r *Router) rejectInput(w http.ResponseWriter, sess *appsession.Session) error {
	view := r.panel(sess.Locale(), sess.Snapshot())
	view.Failure = &domain.Failure{
		Kind:    analysis.KindInvalidInput,
		Message: r.texts.Text(sess.Locale(), i18n.KeyErrInvalidInput),
		At:      time.Now().UTC(),
	}
	return r.writePanel(w, http.StatusBadRequest, view)
}

// GET /sessions/{sid}/panel
func (r *Router) handlePanel(w http.ResponseWriter, req *http.Request) error {
	sess, err := r.session(req)
	if err != nil {
		return err
	}
	return r.renderPanel(w, sess)
}

// POST /sessions/{sid}/records/{id}/delete
func (r *Router) handlePageDelete(w http.ResponseWriter, req *http.Request) error {
	sess, err := r.session(req)
	if err != nil {
		return err
	}
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateRecordID(id); err != nil {
		return appsession.ErrRecordNotFound
	}
	if !sess.Remove(domain.RecordID(id)) {
		return appsession.ErrRecordNotFound
	}
	return r.renderPanel(w, sess)
}

func (r *Router) renderPanel(w http.ResponseWriter, sess *appsession.Session) error {
	return r.writePanel(w, http.StatusOK, r.panel(sess.Locale(), sess.Snapshot()))
}

func (r *Router) writePanel(w http.ResponseWriter, status int, view PanelView) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Panel", "true")
	w.Header().Set("X-Loading", strconv.FormatBool(view.Loading))
	w.WriteHeader(status)
	return r.tmpl.ExecuteTemplate(w, "panel", view)
}
