// Package http contains the HTTP handlers exposing the pipeline trigger
// and the ranking reports.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "esteirarank/internal/errors"
	"esteirarank/internal/services"
	"esteirarank/pkg/contracts/domain"
)

// PipelineRunner triggers a full extraction and aggregation run.
type PipelineRunner interface {
	Run(ctx context.Context) (*services.RunResult, error)
}

// RankingReader serves the persisted ranking artifacts.
type RankingReader interface {
	GetDaily(ctx context.Context) (*domain.RankingReport, error)
	GetMonthly(ctx context.Context) (*domain.RankingReport, error)
}

// RankingHandler handles ranking-related HTTP requests.
type RankingHandler struct {
	pipeline PipelineRunner
	rankings RankingReader
	errors   *apierrors.ErrorHandler
	logger   *slog.Logger
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(pipeline PipelineRunner, rankings RankingReader, logger *slog.Logger) *RankingHandler {
	return &RankingHandler{
		pipeline: pipeline,
		rankings: rankings,
		errors:   apierrors.NewErrorHandler(logger),
		logger:   logger.With(slog.String("handler", "ranking")),
	}
}

// Routes mounts the handler's endpoints.
func (h *RankingHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/pipeline/run", h.RunPipeline)
	r.Get("/ranking/monthly", h.GetMonthly)
	r.Get("/ranking/daily", h.GetDaily)
	return r
}

// RunPipeline handles POST /api/pipeline/run. The run is synchronous:
// the response is written only after extraction and aggregation finish
// or fail.
func (h *RankingHandler) RunPipeline(w http.ResponseWriter, r *http.Request) {
	result, err := h.pipeline.Run(r.Context())
	if err != nil {
		h.errors.HandleError(w, r, apierrors.ErrPipelineExecution(err))
		return
	}
	render.JSON(w, r, result)
}

// GetMonthly handles GET /api/ranking/monthly.
func (h *RankingHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, domain.FamilyMonthly, h.rankings.GetMonthly)
}

// GetDaily handles GET /api/ranking/daily.
func (h *RankingHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, domain.FamilyDaily, h.rankings.GetDaily)
}

func (h *RankingHandler) serveReport(w http.ResponseWriter, r *http.Request, family string, load func(context.Context) (*domain.RankingReport, error)) {
	report, err := load(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrNotGenerated) {
			h.errors.HandleError(w, r, apierrors.NotFoundError(family+" ranking"))
			return
		}
		h.errors.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, report)
}
