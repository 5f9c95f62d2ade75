package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	appanalysis "github.com/bryanwahyu/videomaster/internal/application/analysis"
	"github.com/bryanwahyu/videomaster/internal/application/status"
	"github.com/bryanwahyu/videomaster/internal/config"
	"github.com/bryanwahyu/videomaster/internal/domain/analysis"
	"github.com/bryanwahyu/videomaster/internal/i18n"
	"github.com/bryanwahyu/videomaster/internal/infra/ai"
)

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "config.yaml"), "Path to config file")
	urlFlag := flag.String("url", "", "Video link to analyze")
	provider := flag.String("provider", "", "Analyzer provider (gemini, openai)")
	apiKey := flag.String("key", "", "Analyzer API key")
	model := flag.String("model", "", "Model name")
	web := flag.Bool("web", false, "Ground the analysis with web search")
	locale := flag.String("locale", "", "Locale for instructions and status messages (ar, en)")
	timeout := flag.Duration("timeout", 0, "Analyzer timeout (0 keeps the configured value)")
	quiet := flag.Bool("quiet", false, "Do not print status messages")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config load error", "err", err)
		os.Exit(1)
	}
	if *provider != "" {
		cfg.Analyzer.Provider = *provider
	}
	if *apiKey != "" {
		cfg.Analyzer.APIKey = *apiKey
	}
	if *model != "" {
		cfg.Analyzer.Model = *model
	}
	if *web {
		cfg.Analyzer.WebSearch = true
	}
	if *locale != "" {
		cfg.UI.Locale = *locale
	}
	if *timeout > 0 {
		cfg.Analyzer.Timeout = *timeout
	}

	target := *urlFlag
	if target == "" && flag.NArg() > 0 {
		target = flag.Arg(0)
	}
	if target == "" {
		slog.Error("Usage: analyze -url <LINK>")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	analyzer, err := ai.New(ctx, cfg.Analyzer.Provider, cfg.Analyzer.APIKey, cfg.Analyzer.Model, cfg.Analyzer.BaseURL)
	if err != nil {
		slog.Error("analyzer init error", "err", err)
		os.Exit(1)
	}
	svc := appanalysis.NewService(analyzer, appanalysis.Options{
		Language:  i18n.LanguageName(cfg.UI.Locale),
		WebSearch: cfg.Analyzer.WebSearch,
		Timeout:   cfg.Analyzer.Timeout,
	})

	texts := i18n.NewLocalization(cfg.UI.Locale)
	tickCtx, stopTick := context.WithCancel(ctx)
	if !*quiet {
		seq := status.NewSequence(texts.StatusMessages(texts.Fallback()))
		go func() {
			for msg := range seq.Tick(tickCtx, cfg.UI.StatusInterval) {
				fmt.Fprintf(os.Stderr, "\r\033[K%s", msg)
			}
		}()
	}

	start := time.Now()
	res, err := svc.Analyze(ctx, target)
	stopTick()
	if !*quiet {
		fmt.Fprint(os.Stderr, "\r\033[K")
	}
	if err != nil {
		slog.Error("analysis failed", "kind", analysis.KindOf(err), "quota", errors.Is(err, analysis.ErrQuotaExceeded), "err", err)
		os.Exit(1)
	}
	slog.Debug("analysis done", "took", time.Since(start))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(res); err != nil {
		slog.Error("encode result", "err", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
