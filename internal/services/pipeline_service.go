package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"esteirarank/internal/config"
	"esteirarank/internal/scrape"
)

// Extractor runs the browser extraction sequence. Satisfied by
// scrape.Session; tests substitute a fake.
type Extractor interface {
	Run(ctx context.Context) error
}

// RankingGenerator rebuilds the ranking artifacts from the exports.
type RankingGenerator interface {
	GenerateAll(ctx context.Context) error
}

// RunResult describes the outcome of one pipeline run.
type RunResult struct {
	RunID     string    `json:"run_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	StartedAt time.Time `json:"started_at"`
	// Duration is the elapsed wall time in time.Duration string form
	// ("1m32.5s"); raw nanoseconds are useless to the dashboard.
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

// PipelineService orchestrates the full run: extraction first, then
// aggregation. The two phases share one deadline.
type PipelineService struct {
	cfg       *config.Config
	logger    *slog.Logger
	extractor Extractor
	rankings  RankingGenerator
}

// NewPipelineService wires the pipeline with the real extractor.
func NewPipelineService(cfg *config.Config, logger *slog.Logger, rankings RankingGenerator) *PipelineService {
	return &PipelineService{
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "pipeline_service")),
		extractor: scrape.NewSession(cfg, logger),
		rankings:  rankings,
	}
}

// NewPipelineServiceWith wires the pipeline with an explicit extractor.
func NewPipelineServiceWith(cfg *config.Config, logger *slog.Logger, extractor Extractor, rankings RankingGenerator) *PipelineService {
	return &PipelineService{
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "pipeline_service")),
		extractor: extractor,
		rankings:  rankings,
	}
}

// Run executes extraction and aggregation under the pipeline timeout.
// A failure in either phase is reported in the result rather than
// panicking the caller; the error is also returned for transport-level
// mapping.
func (s *PipelineService) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}
	logger := s.logger.With(slog.String("run_id", result.RunID))

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.Server.PipelineTimeout)
	defer cancel()

	logger.InfoContext(runCtx, "pipeline run starting")

	err := s.extractor.Run(runCtx)
	if err == nil {
		err = s.rankings.GenerateAll(runCtx)
	}

	elapsed := time.Since(result.StartedAt)
	result.Duration = elapsed.String()
	if err != nil {
		result.Message = "pipeline run failed"
		result.Error = err.Error()
		logger.ErrorContext(runCtx, "pipeline run failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", elapsed))
		return result, err
	}

	result.Success = true
	result.Message = "rankings generated"
	logger.InfoContext(runCtx, "pipeline run finished",
		slog.Duration("duration", elapsed))
	return result, nil
}
