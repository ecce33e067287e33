// Package aggregation turns raw export rows into ranked leaderboards for
// salespeople and supervisors. The aggregator applies the exclusion and
// team-to-supervisor rules; the ranking builder sorts and formats the
// result for persistence.
package aggregation

import (
	"strings"

	"esteirarank/internal/currency"
)

// Category identifies which export a row came from and therefore which
// aggregate field it contributes to.
type Category int

const (
	CategoryGeneral Category = iota
	CategoryCompleted
	CategoryPending
)

// RawRow is one record from an export, already reduced to the three
// fields the aggregation cares about. RawValue is the untouched cell
// text; parsing happens here so malformed cells degrade to zero.
type RawRow struct {
	Agent    string
	Team     string
	RawValue string
}

// PersonAggregate accumulates the three per-category totals for one
// person. Created on first contribution, never removed.
type PersonAggregate struct {
	Name           string
	TotalSales     float64
	CompletedSales float64
	PendingSales   float64
}

// Config carries the fixed aggregation rules. It is injected immutable
// configuration, not process state, so tests can supply their own.
type Config struct {
	// Exclusions lists agent names that never rank as salespeople.
	// Matching is case-insensitive.
	Exclusions []string
	// TeamSupervisors maps an exact team name to the supervisor who
	// accrues that team's sales. Several team spellings may map to the
	// same supervisor.
	TeamSupervisors map[string]string
	// MonthlyGoal is the full-month sales target per salesperson, in
	// whole currency units. Pro-rated by elapsed weekdays at ranking
	// time.
	MonthlyGoal float64
}

// Aggregator folds export rows into the two aggregate maps. Insertion
// order is preserved so that ranking tie-breaks are reproducible across
// runs of the same inputs.
type Aggregator struct {
	cfg             Config
	excluded        map[string]struct{}
	supervisorNames map[string]struct{}

	sellers     []*PersonAggregate
	sellerIdx   map[string]*PersonAggregate
	supervisors []*PersonAggregate
	superIdx    map[string]*PersonAggregate
}

// NewAggregator builds an aggregator for a single run.
func NewAggregator(cfg Config) *Aggregator {
	a := &Aggregator{
		cfg:             cfg,
		excluded:        make(map[string]struct{}, len(cfg.Exclusions)),
		supervisorNames: make(map[string]struct{}, len(cfg.TeamSupervisors)),
		sellerIdx:       make(map[string]*PersonAggregate),
		superIdx:        make(map[string]*PersonAggregate),
	}
	for _, name := range cfg.Exclusions {
		a.excluded[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}
	for _, supervisor := range cfg.TeamSupervisors {
		a.supervisorNames[strings.ToLower(strings.TrimSpace(supervisor))] = struct{}{}
	}
	return a
}

// Add folds one export's rows into the aggregates under the given
// category. Rows with an empty agent or team after trimming are
// skipped. A row's value accrues to the salesperson unless the agent is
// excluded or is itself a supervisor display name; it accrues to the
// mapped supervisor whenever the team is a known key, regardless of the
// agent's exclusion status.
func (a *Aggregator) Add(category Category, rows []RawRow) {
	for _, row := range rows {
		agent := strings.TrimSpace(row.Agent)
		team := strings.TrimSpace(row.Team)
		if agent == "" || team == "" {
			continue
		}

		value := currency.Parse(row.RawValue)
		lower := strings.ToLower(agent)

		if _, skip := a.excluded[lower]; !skip {
			if _, isSupervisor := a.supervisorNames[lower]; !isSupervisor {
				a.accrue(&a.sellers, a.sellerIdx, agent, category, value)
			}
		}

		if supervisor, ok := a.cfg.TeamSupervisors[team]; ok {
			a.accrue(&a.supervisors, a.superIdx, strings.TrimSpace(supervisor), category, value)
		}
	}
}

func (a *Aggregator) accrue(list *[]*PersonAggregate, idx map[string]*PersonAggregate, name string, category Category, value float64) {
	agg, ok := idx[name]
	if !ok {
		agg = &PersonAggregate{Name: name}
		idx[name] = agg
		*list = append(*list, agg)
	}
	switch category {
	case CategoryGeneral:
		agg.TotalSales += value
	case CategoryCompleted:
		agg.CompletedSales += value
	case CategoryPending:
		agg.PendingSales += value
	}
}

// Sellers returns the salespeople aggregates in insertion order.
func (a *Aggregator) Sellers() []PersonAggregate { return copyAggregates(a.sellers) }

// Supervisors returns the supervisor aggregates in insertion order.
func (a *Aggregator) Supervisors() []PersonAggregate { return copyAggregates(a.supervisors) }

func copyAggregates(list []*PersonAggregate) []PersonAggregate {
	out := make([]PersonAggregate, len(list))
	for i, agg := range list {
		out[i] = *agg
	}
	return out
}
