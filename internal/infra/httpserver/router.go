package httpserver

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	appsession "github.com/bryanwahyu/videomaster/internal/application/session"
	"github.com/bryanwahyu/videomaster/internal/domain/telemetry"
	"github.com/bryanwahyu/videomaster/internal/i18n"
	"github.com/bryanwahyu/videomaster/internal/middleware"
)

// Options wires the router. Store and Analyzer are required.
type Options struct {
	Store    *appsession.Store
	Analyzer appsession.Analyzer
	Ready    func() bool
	Texts    *i18n.Localization
	Tracker  telemetry.Tracker
	Metrics  *middleware.Metrics
	Limiter  *middleware.RateLimiter
	Health   map[string]middleware.HealthChecker
	Logger   *slog.Logger

	// PublicURL is the base of share links. When nil it is derived from the request.
	PublicURL      *url.URL
	CORSOrigins    []string
	TagLimit       int
	StatusInterval time.Duration
}

type Router struct {
	store          *appsession.Store
	analyzer       appsession.Analyzer
	texts          *i18n.Localization
	tracker        telemetry.Tracker
	logger         *slog.Logger
	publicURL      *url.URL
	tagLimit       int
	statusInterval time.Duration
	tmpl           *template.Template
}

func NewRouter(opts Options) http.Handler {
	if opts.Texts == nil {
		opts.Texts = i18n.NewLocalization(i18n.Arabic)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = middleware.NewMetrics()
	}
	if opts.Ready == nil {
		opts.Ready = func() bool { return true }
	}
	if opts.Tracker == nil {
		opts.Tracker = nopTracker{}
	}
	if opts.StatusInterval <= 0 {
		opts.StatusInterval = 1500 * time.Millisecond
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	r := &Router{
		store:          opts.Store,
		analyzer:       opts.Analyzer,
		texts:          opts.Texts,
		tracker:        opts.Tracker,
		logger:         opts.Logger,
		publicURL:      opts.PublicURL,
		tagLimit:       opts.TagLimit,
		statusInterval: opts.StatusInterval,
		tmpl:           parseTemplates(),
	}

	limit := func(next http.Handler) http.Handler { return next }
	if opts.Limiter != nil {
		limit = opts.Limiter.Middleware
	}

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.Logging(opts.Logger))
	mux.Use(chimw.Recoverer)
	mux.Use(opts.Metrics.Middleware)

	mux.Get("/health", middleware.HealthHandler(opts.Health))
	mux.Get("/ready", middleware.ReadinessHandler(middleware.ReadyFunc(opts.Ready)))
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", opts.Metrics.Handler)

	mux.Get("/", r.wrap(r.handleIndex))
	mux.Route("/sessions/{sid}", func(rt chi.Router) {
		rt.With(limit).Post("/submissions", r.wrapPage(r.handlePageSubmit))
		rt.Get("/panel", r.wrapPage(r.handlePanel))
		rt.Post("/records/{id}/delete", r.wrapPage(r.handlePageDelete))
	})

	mux.Route("/api/v1", func(rt chi.Router) {
		rt.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "Accept-Language"},
			MaxAge:         300,
		}))
		rt.With(limit).Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/share", r.wrap(r.handleShare))
		rt.Route("/sessions/{sid}", func(rt chi.Router) {
			rt.Get("/", r.wrap(r.handleSnapshot))
			rt.With(limit).Post("/submissions", r.wrap(r.handleSubmit))
			rt.Delete("/records/{id}", r.wrap(r.handleRemove))
			rt.Get("/records/{id}/share", r.wrap(r.handleRecordShare))
		})
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			r.writeError(w, req, err)
		}
	}
}

func (r *Router) wrapPage(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			r.writeNotice(w, req, err)
		}
	}
}

// session resolves {sid} or fails with errSessionNotFound.
func (r *Router) session(req *http.Request) (*appsession.Session, error) {
	sid := chi.URLParam(req, "sid")
	if err := middleware.ValidateSessionID(sid); err != nil {
		return nil, errSessionNotFound
	}
	s, ok := r.store.Get(sid)
	if !ok {
		return nil, errSessionNotFound
	}
	return s, nil
}

// baseURL is the configured public URL or the address the request came in on.
func (r *Router) baseURL(req *http.Request) *url.URL {
	if r.publicURL != nil {
		return r.publicURL
	}
	scheme := "http"
	if req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return &url.URL{Scheme: scheme, Host: req.Host, Path: "/"}
}

func (r *Router) locale(req *http.Request) string {
	return r.texts.Negotiate(req.Header.Get("Accept-Language"))
}

type nopTracker struct{}

func (nopTracker) Track(telemetry.Event) {}
