package aggregation

import (
	"fmt"
	"sort"

	"esteirarank/internal/currency"
	"esteirarank/pkg/contracts/domain"
)

// Variant selects which aggregate shape a ranking is built from. The
// daily family carries the full three-field aggregate; the monthly
// family only ranks the flat completed-sales sum.
type Variant struct {
	monthly bool
	people  []PersonAggregate
}

// Daily wraps daily three-field aggregates for ranking.
func Daily(people []PersonAggregate) Variant {
	return Variant{people: people}
}

// Monthly wraps flat completed-sum aggregates for ranking. Only the
// CompletedSales field of each aggregate is consulted.
func Monthly(people []PersonAggregate) Variant {
	return Variant{monthly: true, people: people}
}

// Options control the per-side extras of a ranking.
type Options struct {
	// GoalPercent adds the percent-of-goal column (monthly salespeople
	// only). When Goal is zero the column still appears as the literal
	// "0,00%" sentinel.
	GoalPercent bool
	// Goal is the pro-rated target the percent column is computed
	// against.
	Goal float64
	// AverageTicket adds totalSales divided by the assumed daily
	// capacity of 8 contracts (daily supervisors only).
	AverageTicket bool
}

// averageTicketDivisor is the assumed number of contracts a team closes
// per day.
const averageTicketDivisor = 8

// BuildRanking sorts the aggregates strictly descending by completed
// sales and assigns 1-based positions. Ties keep the aggregation
// insertion order. The result is freshly built on every call.
func BuildRanking(v Variant, opts Options) []domain.RankingEntry {
	people := make([]PersonAggregate, len(v.people))
	copy(people, v.people)

	sort.SliceStable(people, func(i, j int) bool {
		return people[i].CompletedSales > people[j].CompletedSales
	})

	entries := make([]domain.RankingEntry, 0, len(people))
	for i, person := range people {
		entry := domain.RankingEntry{
			Position:       fmt.Sprintf("%dº", i+1),
			Name:           person.Name,
			CompletedSales: currency.Format(person.CompletedSales),
		}

		if !v.monthly {
			entry.TotalSales = currency.Format(person.TotalSales)
			entry.PendingSales = currency.Format(person.PendingSales)
		}

		if opts.AverageTicket {
			ticket := 0.0
			if person.TotalSales > 0 {
				ticket = person.TotalSales / averageTicketDivisor
			}
			entry.AverageTicket = currency.Format(ticket)
		}

		if opts.GoalPercent {
			if opts.Goal > 0 {
				entry.PercentOfGoal = currency.FormatPercent(person.CompletedSales / opts.Goal * 100)
			} else {
				entry.PercentOfGoal = "0,00%"
			}
		}

		entries = append(entries, entry)
	}
	return entries
}
