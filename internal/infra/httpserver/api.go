package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/videomaster/internal/application/deeplink"
	appsession "github.com/bryanwahyu/videomaster/internal/application/session"
	"github.com/bryanwahyu/videomaster/internal/domain/analysis"
	domain "github.com/bryanwahyu/videomaster/internal/domain/session"
	"github.com/bryanwahyu/videomaster/internal/domain/telemetry"
	"github.com/bryanwahyu/videomaster/internal/middleware"
)

type urlBody struct {
	URL string `json:"url"`
}

func decodeURL(w http.ResponseWriter, req *http.Request) (string, error) {
	var body urlBody
	if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, 16<<10)).Decode(&body); err != nil {
		return "", errBadRequest
	}
	raw, err := middleware.SanitizeURLInput(body.URL)
	if err != nil {
		return "", errBadRequest
	}
	return raw, nil
}

// POST /api/v1/analyze
// Body: {"url": "<video link>"}
// Stateless: nothing is recorded in any session.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	raw, err := decodeURL(w, req)
	if err != nil {
		return err
	}
	res, err := r.analyzer.Analyze(req.Context(), raw)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, res)
}

// GET /api/v1/sessions/{sid}
func (r *Router) handleSnapshot(w http.ResponseWriter, req *http.Request) error {
	sess, err := r.session(req)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, sess.Snapshot())
}

// POST /api/v1/sessions/{sid}/submissions
// Body: {"url": "<video link>"}
func (r *Router) handleSubmit(w http.ResponseWriter, req *http.Request) error {
	sess, err := r.session(req)
	if err != nil {
		return err
	}
	raw, err := decodeURL(w, req)
	if err != nil {
		return err
	}
	rec, err := sess.Submit(req.Context(), raw)
	if errors.Is(err, appsession.ErrSubmissionInFlight) {
		return writeJSON(w, http.StatusConflict, map[string]bool{"ignored": true})
	}
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, rec)
}

// DELETE /api/v1/sessions/{sid}/records/{id}
func (r *Router) handleRemove(w http.ResponseWriter, req *http.Request) error {
	sess, err := r.session(req)
	if err != nil {
		return err
	}
	id := chi.URLParam(req, "id")
	if middleware.ValidateRecordID(id) != nil || !sess.Remove(domain.RecordID(id)) {
		return appsession.ErrRecordNotFound
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GET /api/v1/sessions/{sid}/records/{id}/share
func (r *Router) handleRecordShare(w http.ResponseWriter, req *http.Request) error {
	sess, err := r.session(req)
	if err != nil {
		return err
	}
	link, err := sess.ShareLink(r.baseURL(req), domain.RecordID(chi.URLParam(req, "id")))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]string{"share_url": link})
}

// GET /api/v1/share?url=<video link>
func (r *Router) handleShare(w http.ResponseWriter, req *http.Request) error {
	raw, err := middleware.SanitizeURLInput(req.URL.Query().Get("url"))
	if err != nil {
		return errBadRequest
	}
	vr, err := analysis.NewRequest(raw)
	if err != nil {
		return err
	}
	r.tracker.Track(telemetry.Event{Name: telemetry.EventShareLinkCreated})
	return writeJSON(w, http.StatusOK, map[string]string{"share_url": deeplink.ShareLink(r.baseURL(req), vr.URL)})
}
