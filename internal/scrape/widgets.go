// Package scrape drives the back office's filter UI through a headless
// browser and retrieves the spreadsheet exports. The interaction
// sequence is scenario-specific and order-dependent; it is not a
// general-purpose automation layer.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"esteirarank/internal/config"
)

// Filter page selectors.
const (
	selDateDisplay = `#select2-tipodata-container`
	selDateOpener  = `span[aria-labelledby="select2-tipodata-container"]`
	selDateOptions = `.select2-results__option`

	selStartDate = `#data_inicial`
	selEndDate   = `#data_final`

	selStageButton    = `#etapa + .btn-group button`
	selStageMenu      = `ul.multiselect-container.dropdown-menu`
	selStageSelectAll = `#etapa ~ .btn-group li.multiselect-all a`
	selStageOptions   = `#etapa ~ .btn-group ul.multiselect-container li:not(.multiselect-all):not(.multiselect-filter)`

	selTeamButton    = `#cod_equipe ~ .btn-group button`
	selTeamGroup     = `#cod_equipe ~ .btn-group`
	selTeamSelectAll = `#cod_equipe ~ .btn-group li.multiselect-all`
	selTeamAllLabel  = `#cod_equipe ~ .btn-group li.multiselect-all label`

	selSubmit = `button[name="enviarfiltro"]`
	selExport = `button[data-original-title="Extrair Excel"]`
)

// Widgets implements the per-control interaction state machines. Every
// bounded wait that expires is a fatal error for the whole run.
type Widgets struct {
	timings config.ScrapeConfig
	logger  *slog.Logger
}

// NewWidgets creates the widget driver.
func NewWidgets(timings config.ScrapeConfig, logger *slog.Logger) *Widgets {
	return &Widgets{
		timings: timings,
		logger:  logger.With(slog.String("component", "widgets")),
	}
}

// SelectDateKind drives the date-type dropdown to the desired label.
// The widget ignores synthetic click events, so the option is activated
// by dispatching a mouseover/mousedown/mouseup sequence against the
// matching list item. Completion is confirmed by polling the displayed
// title until it matches, within the widget timeout.
func (w *Widgets) SelectDateKind(ctx context.Context, desired string) error {
	var title string
	var found bool
	if err := chromedp.Run(ctx,
		chromedp.WaitVisible(selDateDisplay, chromedp.ByQuery),
		chromedp.AttributeValue(selDateDisplay, "title", &title, &found, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("read date filter state: %w", err)
	}

	current := strings.Join(strings.Fields(title), " ")
	if current == desired {
		w.logger.Debug("date filter already selected", slog.String("kind", desired))
		return nil
	}

	w.logger.Debug("changing date filter",
		slog.String("from", current),
		slog.String("to", desired))

	var dispatched bool
	if err := w.runBounded(ctx,
		chromedp.Click(selDateOpener, chromedp.ByQuery),
		chromedp.WaitVisible(selDateOptions, chromedp.ByQuery),
		chromedp.Evaluate(activateDateOptionScript(desired), &dispatched),
	); err != nil {
		return fmt.Errorf("open date filter dropdown: %w", err)
	}
	if !dispatched {
		return fmt.Errorf("date filter option %q not found in dropdown", desired)
	}

	var confirmed bool
	if err := chromedp.Run(ctx, chromedp.Poll(
		dateTitleMatchesExpr(desired),
		&confirmed,
		chromedp.WithPollingTimeout(w.timings.WidgetTimeout),
	)); err != nil {
		return fmt.Errorf("date filter did not update to %q: %w", desired, err)
	}
	return nil
}

// FillDateRange replaces the values of both date fields. The existing
// text is selected with a triple click and deleted before typing; no
// completion wait is needed because the value set is synchronous.
func (w *Widgets) FillDateRange(ctx context.Context, start, end string) error {
	fields := []struct {
		sel   string
		value string
	}{
		{selStartDate, start},
		{selEndDate, end},
	}
	for _, field := range fields {
		if err := w.replaceFieldText(ctx, field.sel, field.value); err != nil {
			return fmt.Errorf("fill date field %s: %w", field.sel, err)
		}
	}
	w.logger.Debug("date range filled",
		slog.String("start", start),
		slog.String("end", end))
	return nil
}

func (w *Widgets) replaceFieldText(ctx context.Context, sel, value string) error {
	var nodes []*cdp.Node
	if err := w.runBounded(ctx,
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.Nodes(sel, &nodes, chromedp.ByQuery),
	); err != nil {
		return err
	}
	if len(nodes) == 0 {
		return fmt.Errorf("field %s not found", sel)
	}
	return chromedp.Run(ctx,
		chromedp.MouseClickNode(nodes[0], chromedp.ClickCount(3)),
		chromedp.KeyEvent(kb.Backspace),
		chromedp.SendKeys(sel, value, chromedp.ByQuery),
	)
}

// SelectStages configures the stage multi-select to exactly the desired
// labels. The widget has no "clear" affordance, so "select all" is
// toggled twice to reach a fully-deselected baseline before the wanted
// options are clicked one by one, each click paced by the settle delay.
// The menu is closed by re-clicking the opening button.
func (w *Widgets) SelectStages(ctx context.Context, desired []string) error {
	if err := w.runBounded(ctx,
		chromedp.Click(selStageButton, chromedp.ByQuery),
		chromedp.WaitVisible(selStageMenu, chromedp.ByQuery),
		chromedp.WaitVisible(selStageSelectAll, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("open stage menu: %w", err)
	}

	// Two toggles leave every option deselected no matter the prior
	// state, assuming the widget starts from its all-selected default.
	if err := chromedp.Run(ctx,
		chromedp.Click(selStageSelectAll, chromedp.ByQuery),
		chromedp.Click(selStageSelectAll, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("clear stage selection: %w", err)
	}

	var labels []string
	if err := chromedp.Run(ctx, chromedp.Evaluate(stageLabelsScript, &labels)); err != nil {
		return fmt.Errorf("list stage options: %w", err)
	}

	wanted := make(map[string]struct{}, len(desired))
	for _, label := range desired {
		wanted[label] = struct{}{}
	}

	for i, label := range labels {
		if _, ok := wanted[strings.TrimSpace(label)]; !ok {
			continue
		}
		w.logger.Debug("selecting stage", slog.String("stage", label))
		var clicked bool
		if err := chromedp.Run(ctx,
			chromedp.Evaluate(clickStageOptionScript(i), &clicked),
			chromedp.Sleep(w.timings.SettleDelay),
		); err != nil {
			return fmt.Errorf("select stage %q: %w", label, err)
		}
		if !clicked {
			return fmt.Errorf("stage option %q disappeared while selecting", label)
		}
	}

	if err := chromedp.Run(ctx, chromedp.Click(selStageButton, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("close stage menu: %w", err)
	}
	return nil
}

// SelectAllTeams makes sure the team multi-select has its "all teams"
// toggle active. The toggle is only clicked when not already active so
// a repeat visit can't deselect everything. The menu-open state is
// confirmed by polling for the widget's open class within the widget
// timeout; the menu is closed by clicking outside the control.
func (w *Widgets) SelectAllTeams(ctx context.Context) error {
	var opened bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(clickSelectorScript(selTeamButton), &opened)); err != nil {
		return fmt.Errorf("open team menu: %w", err)
	}
	if !opened {
		return fmt.Errorf("team menu button %s not found", selTeamButton)
	}

	var open bool
	if err := chromedp.Run(ctx, chromedp.Poll(
		teamMenuOpenExpr,
		&open,
		chromedp.WithPollingTimeout(w.timings.WidgetTimeout),
	)); err != nil {
		return fmt.Errorf("team menu did not open: %w", err)
	}

	if err := w.runBounded(ctx, chromedp.WaitVisible(selTeamSelectAll, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("team select-all option not visible: %w", err)
	}

	var active bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(teamAllActiveExpr, &active)); err != nil {
		return fmt.Errorf("read team selection state: %w", err)
	}

	if active {
		w.logger.Debug("all teams already selected")
	} else {
		w.logger.Debug("activating all-teams toggle")
		var clicked bool
		if err := chromedp.Run(ctx, chromedp.Evaluate(clickSelectorScript(selTeamAllLabel), &clicked)); err != nil {
			return fmt.Errorf("activate all-teams toggle: %w", err)
		}
		if !clicked {
			return fmt.Errorf("all-teams toggle %s not found", selTeamAllLabel)
		}
	}

	if err := chromedp.Run(ctx, chromedp.Click(`body`, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("close team menu: %w", err)
	}
	return nil
}

// runBounded runs actions under the widget timeout so a stuck wait
// turns into an error instead of hanging the scenario.
func (w *Widgets) runBounded(ctx context.Context, actions ...chromedp.Action) error {
	bctx, cancel := context.WithTimeout(ctx, w.timings.WidgetTimeout)
	defer cancel()
	return chromedp.Run(bctx, actions...)
}

// runWithin is runBounded with an explicit deadline, used for page
// navigations that outlive the widget timeout.
func runWithin(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	bctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return chromedp.Run(bctx, actions...)
}

func activateDateOptionScript(label string) string {
	return fmt.Sprintf(`(() => {
		const xpath = "//li[contains(@class,'select2-results__option') and normalize-space() = '%s']";
		const el = document.evaluate(xpath, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
		if (!el) return false;
		for (const type of ['mouseover', 'mousedown', 'mouseup']) {
			el.dispatchEvent(new MouseEvent(type, {view: window, bubbles: true, cancelable: true}));
		}
		return true;
	})()`, label)
}

func dateTitleMatchesExpr(label string) string {
	return fmt.Sprintf(
		`document.querySelector('%s')?.getAttribute('title').trim().replace(/\s+/g, ' ') === '%s'`,
		selDateDisplay, label)
}

const stageLabelsScript = `Array.from(
	document.querySelectorAll("#etapa ~ .btn-group ul.multiselect-container li:not(.multiselect-all):not(.multiselect-filter)")
).map(li => li.innerText.trim())`

func clickStageOptionScript(index int) string {
	return fmt.Sprintf(`(() => {
		const items = document.querySelectorAll("#etapa ~ .btn-group ul.multiselect-container li:not(.multiselect-all):not(.multiselect-filter)");
		const el = items[%d];
		if (!el) return false;
		(el.querySelector('label') || el).click();
		return true;
	})()`, index)
}

func clickSelectorScript(sel string) string {
	return fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el) return false;
		el.click();
		return true;
	})()`, sel)
}

const teamMenuOpenExpr = `document.querySelector("#cod_equipe ~ .btn-group")?.classList.contains('open') === true`

const teamAllActiveExpr = `document.querySelector("#cod_equipe ~ .btn-group li.multiselect-all")?.classList.contains('active') === true`
