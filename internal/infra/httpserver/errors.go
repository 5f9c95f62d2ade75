package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	appsession "github.com/bryanwahyu/videomaster/internal/application/session"
	"github.com/bryanwahyu/videomaster/internal/domain/analysis"
	"github.com/bryanwahyu/videomaster/internal/i18n"
)

var (
	errSessionNotFound = errors.New("session not found")
	errBadRequest      = errors.New("bad request")
)

const (
	kindNotFound = "not_found"
	kindBusy     = "busy"
	kindInternal = "internal"
)

type errorBody struct {
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// classify maps an error to its HTTP status, kind and text key.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, errSessionNotFound):
		return http.StatusNotFound, kindNotFound, i18n.KeyErrSessionNotFound
	case errors.Is(err, appsession.ErrRecordNotFound):
		return http.StatusNotFound, kindNotFound, i18n.KeyErrRecordNotFound
	case errors.Is(err, appsession.ErrSubmissionInFlight):
		return http.StatusConflict, kindBusy, i18n.KeyErrBusy
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, string(analysis.KindInvalidInput), i18n.KeyErrInvalidInput
	}
	switch analysis.KindOf(err) {
	case analysis.KindInvalidInput:
		return http.StatusBadRequest, string(analysis.KindInvalidInput), i18n.KeyErrInvalidInput
	case analysis.KindMissingCredential:
		return http.StatusServiceUnavailable, string(analysis.KindMissingCredential), i18n.KeyErrCredential
	case analysis.KindMalformedResponse:
		return http.StatusBadGateway, string(analysis.KindMalformedResponse), i18n.KeyErrMalformed
	case analysis.KindAnalyzerFailure:
		if errors.Is(err, analysis.ErrQuotaExceeded) {
			return http.StatusTooManyRequests, string(analysis.KindAnalyzerFailure), i18n.KeyErrQuota
		}
		return http.StatusBadGateway, string(analysis.KindAnalyzerFailure), i18n.KeyErrAnalyzer
	}
	return http.StatusInternalServerError, kindInternal, i18n.KeyErrAnalyzer
}

func (r *Router) writeError(w http.ResponseWriter, req *http.Request, err error) {
	status, kind, key := classify(err)
	if status >= http.StatusInternalServerError {
		r.logger.Error("request failed", "path", req.URL.Path, "status", status, "err", err)
	}
	writeJSON(w, status, errorBody{
		Error:   http.StatusText(status),
		Kind:    kind,
		Message: r.texts.Text(r.errorLocale(req), key),
	})
}

type noticeView struct {
	Kind    string
	Message string
}

// writeNotice is writeError for page routes. It answers with an HTML fragment
// the page script shows next to the panel instead of swapping it in.
func (r *Router) writeNotice(w http.ResponseWriter, req *http.Request, err error) {
	status, kind, key := classify(err)
	if status >= http.StatusInternalServerError {
		r.logger.Error("request failed", "path", req.URL.Path, "status", status, "err", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Panel", "false")
	w.WriteHeader(status)
	if err := r.tmpl.ExecuteTemplate(w, "notice", noticeView{
		Kind:    kind,
		Message: r.texts.Text(r.errorLocale(req), key),
	}); err != nil {
		r.logger.Error("render notice", "err", err)
	}
}

// errorLocale prefers the locale of the session named in the path.
func (r *Router) errorLocale(req *http.Request) string {
	if sess, err := r.session(req); err == nil {
		return sess.Locale()
	}
	return r.locale(req)
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
