// Package app assembles the application: configuration, logging,
// services, router and HTTP server lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"esteirarank/internal/config"
	"esteirarank/internal/infrastructure"
	"esteirarank/internal/services"
	handlers "esteirarank/internal/transport/http"
)

// Application is the dependency container for the server binary.
type Application struct {
	Config   *config.Config
	Logger   *slog.Logger
	Router   *chi.Mux
	Server   *http.Server
	Pipeline *services.PipelineService
	Rankings *services.RankingService
}

// NewApplication loads configuration and wires every component.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.Int("port", cfg.Server.Port),
		slog.String("data_dir", cfg.Paths.DataDir),
		slog.Bool("headless", cfg.Portal.Headless))

	rankings := services.NewRankingService(cfg, logger)
	pipeline := services.NewPipelineService(cfg, logger, rankings)

	app := &Application{
		Config:   cfg,
		Logger:   logger,
		Pipeline: pipeline,
		Rankings: rankings,
	}
	app.Router = app.buildRouter()
	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

func (a *Application) buildRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(a.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	rankingHandler := handlers.NewRankingHandler(a.Pipeline, a.Rankings, a.Logger)
	healthHandler := handlers.NewHealthHandler(a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HealthCheck)
		r.Mount("/", rankingHandler.Routes())
	})
	return r
}

// requestLogger emits one structured line per request with the chi
// request ID, mirroring the infrastructure log format.
func (a *Application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		a.Logger.InfoContext(r.Context(), "http request",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			slog.Duration("duration", time.Since(start)))
	})
}

// Run starts the HTTP server and blocks until shutdown completes. The
// server stops on SIGINT/SIGTERM or when ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Logger.Info("endpoints available",
		slog.String("trigger", "POST /api/pipeline/run"),
		slog.String("monthly", "GET /api/ranking/monthly"),
		slog.String("daily", "GET /api/ranking/daily"),
		slog.String("health", "GET /api/health"))

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	infrastructure.CloseLogFile()
	return nil
}
