// Package services implements the application use cases: running the
// extraction pipeline and building, persisting and serving the ranking
// reports.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"esteirarank/internal/aggregation"
	"esteirarank/internal/businessdays"
	"esteirarank/internal/config"
	"esteirarank/internal/files"
	"esteirarank/internal/tabular"
	"esteirarank/pkg/contracts/domain"
)

// ErrNotGenerated is returned when a ranking artifact has not been
// produced yet.
var ErrNotGenerated = errors.New("ranking not generated yet")

// RankingService builds the two ranking reports from the scenario
// exports and persists them as JSON artifacts. Reads are served from the
// artifacts, never recomputed.
type RankingService struct {
	cfg    *config.Config
	logger *slog.Logger
	files  *files.Manager
	now    func() time.Time
}

// NewRankingService creates the ranking service.
func NewRankingService(cfg *config.Config, logger *slog.Logger) *RankingService {
	return &RankingService{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "ranking_service")),
		files:  files.NewManager(""),
		now:    time.Now,
	}
}

// GenerateAll rebuilds both report families from the current exports.
// The daily report is always rebuilt; the monthly report is skipped
// without error when its source export is empty, leaving any previous
// artifact in place.
func (s *RankingService) GenerateAll(ctx context.Context) error {
	if err := s.generateDaily(ctx); err != nil {
		return fmt.Errorf("daily ranking: %w", err)
	}
	if err := s.generateMonthly(ctx); err != nil {
		return fmt.Errorf("monthly ranking: %w", err)
	}
	return nil
}

// GetDaily loads the persisted daily report.
func (s *RankingService) GetDaily(ctx context.Context) (*domain.RankingReport, error) {
	return s.loadArtifact(ctx, domain.FamilyDaily)
}

// GetMonthly loads the persisted monthly report.
func (s *RankingService) GetMonthly(ctx context.Context) (*domain.RankingReport, error) {
	return s.loadArtifact(ctx, domain.FamilyMonthly)
}

// generateDaily folds the three daily exports into one aggregate and
// ranks both sides. Supervisors get the average-ticket column.
func (s *RankingService) generateDaily(ctx context.Context) error {
	agg := aggregation.NewAggregator(s.aggregationConfig())

	sources := []struct {
		category aggregation.Category
		folder   string
		scenario string
	}{
		{aggregation.CategoryGeneral, "geral", "Json_vendasGeralHoje"},
		{aggregation.CategoryCompleted, "concluida", "Json_vendaConcluidaHoje"},
		{aggregation.CategoryPending, "pendente", "Json_vendaPendenteHoje"},
	}
	for _, src := range sources {
		rows, err := s.readExport(src.folder, src.scenario)
		if err != nil {
			return err
		}
		agg.Add(src.category, rows)
	}

	report := &domain.RankingReport{
		Supervisors: aggregation.BuildRanking(
			aggregation.Daily(agg.Supervisors()),
			aggregation.Options{AverageTicket: true},
		),
		Salespeople: aggregation.BuildRanking(
			aggregation.Daily(agg.Sellers()),
			aggregation.Options{},
		),
	}
	return s.persistArtifact(ctx, domain.FamilyDaily, report)
}

// generateMonthly ranks the flat completed sums of the monthly export.
// Salespeople get a percent-of-goal column computed against the monthly
// goal pro-rated by elapsed weekdays. An empty source export leaves the
// previous artifact untouched.
func (s *RankingService) generateMonthly(ctx context.Context) error {
	rows, err := s.readExport("concluida", "Json_vendaConcluidaMensal")
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		s.logger.InfoContext(ctx, "monthly export empty, keeping previous artifact")
		return nil
	}

	agg := aggregation.NewAggregator(s.aggregationConfig())
	agg.Add(aggregation.CategoryCompleted, rows)

	goal := businessdays.ProRate(s.cfg.Ranking.MonthlyGoal, s.now())

	report := &domain.RankingReport{
		Supervisors: aggregation.BuildRanking(
			aggregation.Monthly(agg.Supervisors()),
			aggregation.Options{},
		),
		Salespeople: aggregation.BuildRanking(
			aggregation.Monthly(agg.Sellers()),
			aggregation.Options{GoalPercent: true, Goal: goal},
		),
	}
	return s.persistArtifact(ctx, domain.FamilyMonthly, report)
}

// readExport loads one scenario export and reduces its rows to the
// three configured columns.
func (s *RankingService) readExport(folder, scenario string) ([]aggregation.RawRow, error) {
	path := s.cfg.ExportPath(folder, scenario)
	rows, err := tabular.ReadFile(path, s.logger)
	if err != nil {
		return nil, err
	}

	cols := s.cfg.Ranking.Columns
	raw := make([]aggregation.RawRow, 0, len(rows))
	for _, row := range rows {
		raw = append(raw, aggregation.RawRow{
			Agent:    row[cols.Agent],
			Team:     row[cols.Team],
			RawValue: row[cols.Value],
		})
	}
	return raw, nil
}

func (s *RankingService) aggregationConfig() aggregation.Config {
	return aggregation.Config{
		Exclusions:      s.cfg.Ranking.Exclusions,
		TeamSupervisors: s.cfg.Ranking.TeamSupervisors,
		MonthlyGoal:     s.cfg.Ranking.MonthlyGoal,
	}
}

func (s *RankingService) persistArtifact(ctx context.Context, family string, report *domain.RankingReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s ranking: %w", family, err)
	}

	path := s.cfg.ArtifactPath(family)
	if err := s.files.WriteFile(path, data); err != nil {
		return fmt.Errorf("persist %s ranking: %w", family, err)
	}

	s.logger.InfoContext(ctx, "ranking artifact written",
		slog.String("family", family),
		slog.String("path", path),
		slog.Int("supervisors", len(report.Supervisors)),
		slog.Int("salespeople", len(report.Salespeople)))
	return nil
}

func (s *RankingService) loadArtifact(ctx context.Context, family string) (*domain.RankingReport, error) {
	path := s.cfg.ArtifactPath(family)
	data, err := s.files.ReadFile(path)
	if err != nil {
		s.logger.DebugContext(ctx, "ranking artifact missing",
			slog.String("family", family),
			slog.String("path", path))
		return nil, ErrNotGenerated
	}

	var report domain.RankingReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode %s ranking artifact: %w", family, err)
	}
	return &report, nil
}
