package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-tzcatalog/components/timezones"
	"github.com/goliatone/go-tzcatalog/pkg/config"
	"github.com/goliatone/go-tzcatalog/pkg/locale"
	"github.com/goliatone/go-tzcatalog/pkg/logging"
	"github.com/goliatone/go-tzcatalog/pkg/page"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context, env *environment, args []string) error {
	fs := env.flagSet("serve")
	addr := fs.String("addr", "", "listen address (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := env.load()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler, err := newServer(env, cfg, logger, reg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           logging.Middleware(logger)(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening",
			zap.String("addr", cfg.Addr),
			zap.String("env", cfg.Env),
			zap.Bool("development", cfg.BaseURL().IsDevelopment()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newServer wires the catalog API, its OpenAPI document, the selector page,
// metrics and a health check onto one mux.
func newServer(env *environment, cfg config.Config, logger *zap.Logger, reg *prometheus.Registry) (http.Handler, error) {
	metrics, err := timezones.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	fns, err := env.catalogOptions(cfg)
	if err != nil {
		return nil, err
	}
	fns = append(fns, timezones.WithObserver(timezones.Observers(metrics, logging.CatalogObserver(logger))))
	component := timezones.New(fns...)

	// Fail fast on an unusable reference list.
	if report := component.Report(); len(report.Catalog) == 0 {
		return nil, fmt.Errorf("empty catalog: %v", report.Err())
	}

	mux := http.NewServeMux()
	routes, err := component.RegisterRoutes(mux, cfg.BasePath)
	if err != nil {
		return nil, err
	}

	provider, err := env.localeProvider(cfg)
	if err != nil {
		return nil, err
	}
	tr, err := locale.NewTranslator()
	if err != nil {
		return nil, err
	}
	tr.OnMissing = func(tag language.Tag, id string, err error) {
		logger.Debug("missing translation", zap.String("locale", tag.String()), zap.String("id", id), zap.Error(err))
	}
	renderer, err := page.New()
	if err != nil {
		return nil, err
	}
	pageHandler, err := page.NewHandler(page.HandlerConfig{
		Component:  component,
		Renderer:   renderer,
		Translator: tr,
		Locale:     provider,
		BaseURL:    cfg.BaseURL(),
		BasePath:   cfg.BasePath,
		HelpHTML:   cfg.HelpHTML,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	mux.Handle(pagePattern(cfg.BasePath), pageHandler)

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	logger.Debug("routes registered",
		zap.String("catalog", routes.Catalog),
		zap.String("openapi", routes.OpenAPI),
		zap.String("page", pagePattern(cfg.BasePath)),
	)
	return mux, nil
}

func pagePattern(basePath string) string {
	base := strings.Trim(strings.TrimSpace(basePath), "/")
	if base == "" {
		return "/{$}"
	}
	return "/" + base
}
