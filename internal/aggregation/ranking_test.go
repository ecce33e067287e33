package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRankingOrderAndTies(t *testing.T) {
	people := []PersonAggregate{
		{Name: "A", CompletedSales: 500},
		{Name: "B", CompletedSales: 1500},
		{Name: "C", CompletedSales: 1500},
	}

	entries := BuildRanking(Daily(people), Options{})
	require.Len(t, entries, 3)

	// B and C tie ahead of A; the tie keeps insertion order.
	assert.Equal(t, "1º", entries[0].Position)
	assert.Equal(t, "B", entries[0].Name)
	assert.Equal(t, "2º", entries[1].Position)
	assert.Equal(t, "C", entries[1].Name)
	assert.Equal(t, "3º", entries[2].Position)
	assert.Equal(t, "A", entries[2].Name)
}

func TestBuildRankingDailyFields(t *testing.T) {
	people := []PersonAggregate{
		{Name: "MARIA", TotalSales: 1500, CompletedSales: 750, PendingSales: 250},
	}

	entries := BuildRanking(Daily(people), Options{})
	require.Len(t, entries, 1)
	assert.Equal(t, "R$ 1.500,00", entries[0].TotalSales)
	assert.Equal(t, "R$ 750,00", entries[0].CompletedSales)
	assert.Equal(t, "R$ 250,00", entries[0].PendingSales)
	assert.Empty(t, entries[0].AverageTicket)
	assert.Empty(t, entries[0].PercentOfGoal)
}

func TestBuildRankingAverageTicket(t *testing.T) {
	people := []PersonAggregate{
		{Name: "DIEGO", TotalSales: 800, CompletedSales: 800},
		{Name: "NAUALLY", TotalSales: 0, CompletedSales: 0},
	}

	entries := BuildRanking(Daily(people), Options{AverageTicket: true})
	require.Len(t, entries, 2)
	assert.Equal(t, "R$ 100,00", entries[0].AverageTicket)
	// Zero total keeps the ticket at zero instead of dividing.
	assert.Equal(t, "R$ 0,00", entries[1].AverageTicket)
}

func TestBuildRankingMonthlyOmitsDailyFields(t *testing.T) {
	people := []PersonAggregate{
		{Name: "MARIA", CompletedSales: 112500},
	}

	entries := BuildRanking(Monthly(people), Options{GoalPercent: true, Goal: 450000})
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].TotalSales)
	assert.Empty(t, entries[0].PendingSales)
	assert.Equal(t, "R$ 112.500,00", entries[0].CompletedSales)
	assert.Equal(t, "25,00%", entries[0].PercentOfGoal)
}

func TestBuildRankingZeroGoalSentinel(t *testing.T) {
	people := []PersonAggregate{
		{Name: "MARIA", CompletedSales: 100},
		{Name: "ANA", CompletedSales: 50},
	}

	entries := BuildRanking(Monthly(people), Options{GoalPercent: true, Goal: 0})
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, "0,00%", entry.PercentOfGoal)
	}

	// Supervisors are built without the option and never carry the field.
	noGoal := BuildRanking(Monthly(people), Options{})
	for _, entry := range noGoal {
		assert.Empty(t, entry.PercentOfGoal)
	}
}

func TestBuildRankingDoesNotMutateInput(t *testing.T) {
	people := []PersonAggregate{
		{Name: "A", CompletedSales: 1},
		{Name: "B", CompletedSales: 2},
	}
	BuildRanking(Daily(people), Options{})
	assert.Equal(t, "A", people[0].Name)
	assert.Equal(t, "B", people[1].Name)
}
