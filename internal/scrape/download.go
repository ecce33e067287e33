package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"

	"esteirarank/internal/config"
)

// exportAndDownload submits the configured filter, routes browser
// downloads into the scenario's folder, triggers the spreadsheet
// export and renames the downloaded file to the scenario's canonical
// name. The portal emits no download-complete event, so a fixed wait
// stands in for one; if no file appears the scenario is treated as an
// empty result, not an error.
func (s *Session) exportAndDownload(ctx context.Context, scenario config.Scenario) error {
	dir := s.cfg.ExportDir(scenario.Folder)
	if err := s.files.EnsureDirectory(scenario.Folder); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve export dir: %w", err)
	}

	if err := runWithin(ctx, s.cfg.Scrape.NavTimeout,
		chromedp.Click(selSubmit, chromedp.ByQuery),
		chromedp.WaitVisible(selExport, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("submit filter: %w", err)
	}

	if err := chromedp.Run(ctx,
		browser.SetDownloadBehavior(browser.SetDownloadBehaviorBehaviorAllow).
			WithDownloadPath(absDir),
		chromedp.Click(selExport, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("trigger export: %w", err)
	}

	s.logger.Info("export triggered, waiting for download",
		slog.String("dir", dir),
		slog.Duration("wait", s.cfg.Scrape.DownloadWait))

	if err := chromedp.Run(ctx, chromedp.Sleep(s.cfg.Scrape.DownloadWait)); err != nil {
		return err
	}

	newest, ok := s.files.NewestFile(scenario.Folder)
	if !ok {
		s.logger.Warn("no export file appeared, treating scenario as empty",
			slog.String("scenario", scenario.Name),
			slog.String("dir", dir))
		return nil
	}

	target := scenario.Name + ".csv"
	if newest == target {
		return nil
	}
	if err := s.files.MoveFile(
		filepath.Join(scenario.Folder, newest),
		filepath.Join(scenario.Folder, target),
	); err != nil {
		return fmt.Errorf("rename export: %w", err)
	}

	s.logger.Info("export saved",
		slog.String("scenario", scenario.Name),
		slog.String("file", filepath.Join(dir, target)))
	return nil
}
