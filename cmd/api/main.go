package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bryanwahyu/videomaster/internal/application"
	appanalysis "github.com/bryanwahyu/videomaster/internal/application/analysis"
	appsession "github.com/bryanwahyu/videomaster/internal/application/session"
	"github.com/bryanwahyu/videomaster/internal/config"
	domtelemetry "github.com/bryanwahyu/videomaster/internal/domain/telemetry"
	"github.com/bryanwahyu/videomaster/internal/i18n"
	"github.com/bryanwahyu/videomaster/internal/infra/ai"
	mysqlp "github.com/bryanwahyu/videomaster/internal/infra/db/mysql"
	"github.com/bryanwahyu/videomaster/internal/infra/db/postgres"
	"github.com/bryanwahyu/videomaster/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/videomaster/internal/infra/storage"
	"github.com/bryanwahyu/videomaster/internal/infra/telemetry"
	"github.com/bryanwahyu/videomaster/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("config load error", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// analyzer
	analyzer, err := ai.New(ctx, cfg.Analyzer.Provider, cfg.Analyzer.APIKey, cfg.Analyzer.Model, cfg.Analyzer.BaseURL)
	if err != nil {
		slog.Error("analyzer init error", "err", err)
		os.Exit(1)
	}
	if !analyzer.HasCredential() {
		slog.Warn("no analyzer api key configured, submissions will fail", "provider", cfg.Analyzer.Provider)
	}
	svc := appanalysis.NewService(analyzer, appanalysis.Options{
		Language:  i18n.LanguageName(cfg.UI.Locale),
		WebSearch: cfg.Analyzer.WebSearch,
		Timeout:   cfg.Analyzer.Timeout,
	})

	// telemetry
	tele := telemetry.New(newSink(ctx, cfg, logger), cfg.Telemetry.BufferSize, cfg.Telemetry.FlushInterval, logger)
	tele.Init(ctx)

	metrics := middleware.NewMetrics()
	metered := httpserver.Metered(svc, metrics)

	texts := i18n.NewLocalization(cfg.UI.Locale)
	store := appsession.NewStore(appsession.Deps{
		Analyzer:         metered,
		Clock:            application.SystemClock{},
		Texts:            texts,
		Tracker:          tele,
		ThumbnailPattern: cfg.UI.ThumbnailPattern,
	}, cfg.Session.IdleTTL)
	go store.Run(ctx, cfg.Session.SweepInterval)
	metrics.Gauge("sessions", func() int64 { return int64(store.Len()) })
	metrics.Gauge("telemetry_dropped", tele.Dropped)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate)
	go limiter.Run(ctx, 5*time.Minute)

	var publicURL *url.URL
	if cfg.Server.PublicURL != "" {
		if publicURL, err = url.Parse(cfg.Server.PublicURL); err != nil {
			slog.Error("invalid server.publicURL", "err", err)
			os.Exit(1)
		}
	}

	handler := httpserver.NewRouter(httpserver.Options{
		Store:    store,
		Analyzer: metered,
		Ready:    svc.Ready,
		Texts:    texts,
		Tracker:  tele,
		Metrics:  metrics,
		Limiter:  limiter,
		Health: map[string]middleware.HealthChecker{
			"analyzer":  middleware.ReadyFunc(svc.Ready),
			"telemetry": middleware.PingChecker{Target: tele},
		},
		Logger:         logger,
		PublicURL:      publicURL,
		CORSOrigins:    cfg.Server.CORSOrigins,
		TagLimit:       cfg.UI.TagLimit,
		StatusInterval: cfg.UI.StatusInterval,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout(cfg.Analyzer.Timeout),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", addr, "provider", cfg.Analyzer.Provider, "telemetry", cfg.Telemetry.Sink)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		slog.Error("shutdown error", "err", err)
	}
	if err := tele.Shutdown(ctx2); err != nil {
		slog.Error("telemetry shutdown error", "err", err)
	}
}

// newSink connects the configured telemetry sink. Connection failures fall
// back to the log sink so the page keeps working.
func newSink(ctx context.Context, cfg *config.Config, logger *slog.Logger) domtelemetry.Sink {
	fallback := telemetry.LogSink{Logger: logger}
	switch cfg.Telemetry.Sink {
	case config.SinkNone:
		return telemetry.NopSink{}
	case config.SinkMySQL:
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			slog.Warn("mysql connect error, logging telemetry instead", "err", err)
			return fallback
		}
		repo := mysqlp.NewEventRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			slog.Warn("mysql migrate error", "err", err)
		}
		return repo
	case config.SinkPostgres:
		db, err := postgres.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			slog.Warn("postgres connect error, logging telemetry instead", "err", err)
			return fallback
		}
		repo := postgres.NewEventRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			slog.Warn("postgres migrate error", "err", err)
		}
		return repo
	case config.SinkMinio:
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			slog.Warn("minio init error, logging telemetry instead", "err", err)
			return fallback
		}
		return store
	default:
		return fallback
	}
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// writeTimeout outlasts the analyzer call, since a synchronous submission
// holds its response open until the analyzer returns.
func writeTimeout(analyzer time.Duration) time.Duration {
	if analyzer <= 0 {
		return 0
	}
	return analyzer + 15*time.Second
}
