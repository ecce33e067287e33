package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"

	"esteirarank/internal/config"
	"esteirarank/internal/files"
)

// Login page selectors.
const (
	selLoginUser   = `#exten`
	selLoginPass   = `#password`
	selLoginSubmit = `#button-sigin`
)

const brDateLayout = "02/01/2006"

// widgetDriver is the filter-page surface the session drives, in the
// order the portal expects. Satisfied by Widgets; tests use a fake.
type widgetDriver interface {
	SelectDateKind(ctx context.Context, desired string) error
	FillDateRange(ctx context.Context, start, end string) error
	SelectAllTeams(ctx context.Context) error
	SelectStages(ctx context.Context, desired []string) error
}

// Session runs the full extraction sequence against one browser
// instance: login once, then every configured scenario in order. Any
// scenario failure aborts the run; the browser is torn down regardless.
type Session struct {
	cfg     *config.Config
	logger  *slog.Logger
	widgets widgetDriver
	files   *files.Manager
	now     func() time.Time
}

// NewSession creates a session for the given configuration.
func NewSession(cfg *config.Config, logger *slog.Logger) *Session {
	return &Session{
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "scrape_session")),
		widgets: NewWidgets(cfg.Scrape, logger),
		files:   files.NewManager(cfg.Paths.DataDir),
		now:     time.Now,
	}
}

// Run launches the browser, authenticates and executes all scenarios.
func (s *Session) Run(ctx context.Context) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.cfg.Portal.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(1366, 768),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	start := s.now()
	s.logger.InfoContext(ctx, "extraction run starting",
		slog.Bool("headless", s.cfg.Portal.Headless),
		slog.Int("scenarios", len(config.Scenarios())))

	if err := s.login(browserCtx); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	for _, scenario := range config.Scenarios() {
		s.logger.InfoContext(ctx, "running extraction scenario",
			slog.String("scenario", scenario.Name),
			slog.String("period", string(scenario.Period)))
		if err := s.runScenario(browserCtx, scenario); err != nil {
			return fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
	}

	s.logger.InfoContext(ctx, "extraction run finished",
		slog.Duration("elapsed", s.now().Sub(start)))
	return nil
}

// login navigates to the portal and submits the credentials. Completion
// is detected by the sign-in form leaving the page.
func (s *Session) login(ctx context.Context) error {
	s.logger.Info("authenticating against portal")
	return runWithin(ctx, s.cfg.Scrape.NavTimeout,
		chromedp.Navigate(s.cfg.Portal.URL),
		chromedp.WaitVisible(selLoginUser, chromedp.ByQuery),
		chromedp.SendKeys(selLoginUser, s.cfg.Portal.Username, chromedp.ByQuery),
		chromedp.SendKeys(selLoginPass, s.cfg.Portal.Password, chromedp.ByQuery),
		chromedp.Click(selLoginSubmit, chromedp.ByQuery),
		chromedp.WaitNotPresent(selLoginSubmit, chromedp.ByQuery),
	)
}

// runScenario loads the filter page, configures every widget for the
// scenario and hands off to the export step. Stage selection runs last
// because the stage menu overlaps the submit button while open.
func (s *Session) runScenario(ctx context.Context, scenario config.Scenario) error {
	if err := runWithin(ctx, s.cfg.Scrape.NavTimeout,
		chromedp.Navigate(s.cfg.Portal.FilterURL),
		chromedp.WaitVisible(selDateDisplay, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("open filter page: %w", err)
	}

	if err := s.applyFilters(ctx, scenario); err != nil {
		return err
	}

	return s.exportAndDownload(ctx, scenario)
}

// applyFilters configures every widget for the scenario. The stage step
// runs even for an empty stage list: its clearing toggle must still
// undo the widget's all-selected default before the form is submitted.
func (s *Session) applyFilters(ctx context.Context, scenario config.Scenario) error {
	if err := s.widgets.SelectDateKind(ctx, string(scenario.DateFilter)); err != nil {
		return err
	}

	start, end := DateRange(scenario.Period, s.now())
	if err := s.widgets.FillDateRange(ctx, start, end); err != nil {
		return err
	}

	if err := s.widgets.SelectAllTeams(ctx); err != nil {
		return err
	}

	return s.widgets.SelectStages(ctx, scenario.Stages)
}

// DateRange returns the start and end dates typed into the filter, in
// dd/mm/yyyy form. Daily scenarios use today for both ends; monthly
// scenarios start at the first day of the current month.
func DateRange(period config.PeriodKind, now time.Time) (start, end string) {
	end = now.Format(brDateLayout)
	if period == config.PeriodMonthly {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first.Format(brDateLayout), end
	}
	return end, end
}
