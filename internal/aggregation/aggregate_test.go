package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Exclusions: []string{"JOCI KELLY MENDES DE SOUZA"},
		TeamSupervisors: map[string]string{
			"ROBSON PAULINO JUNIOR": "DIEGO JIMINEZ RIBEIRO",
			"Robson Paulino Junior": "NAUALLY CHRYSTHINNA SANTOS FABRI",
			"KAROL FERNANDA FORTES": "KAROL FERNANDA FORTES",
		},
		MonthlyGoal: 450000,
	}
}

func TestAggregatorAdd(t *testing.T) {
	agg := NewAggregator(testConfig())
	agg.Add(CategoryGeneral, []RawRow{
		{Agent: "MARIA SILVA", Team: "ROBSON PAULINO JUNIOR", RawValue: "R$ 1.000,00"},
		{Agent: "MARIA SILVA", Team: "ROBSON PAULINO JUNIOR", RawValue: "R$ 500,00"},
	})
	agg.Add(CategoryCompleted, []RawRow{
		{Agent: "MARIA SILVA", Team: "ROBSON PAULINO JUNIOR", RawValue: "R$ 750,00"},
	})
	agg.Add(CategoryPending, []RawRow{
		{Agent: "MARIA SILVA", Team: "ROBSON PAULINO JUNIOR", RawValue: "R$ 250,00"},
	})

	sellers := agg.Sellers()
	require.Len(t, sellers, 1)
	assert.Equal(t, "MARIA SILVA", sellers[0].Name)
	assert.Equal(t, 1500.0, sellers[0].TotalSales)
	assert.Equal(t, 750.0, sellers[0].CompletedSales)
	assert.Equal(t, 250.0, sellers[0].PendingSales)

	supervisors := agg.Supervisors()
	require.Len(t, supervisors, 1)
	assert.Equal(t, "DIEGO JIMINEZ RIBEIRO", supervisors[0].Name)
	assert.Equal(t, 1500.0, supervisors[0].TotalSales)
}

func TestAggregatorExclusionIsCaseInsensitive(t *testing.T) {
	agg := NewAggregator(testConfig())
	agg.Add(CategoryCompleted, []RawRow{
		{Agent: "Joci Kelly Mendes de Souza", Team: "ROBSON PAULINO JUNIOR", RawValue: "R$ 900,00"},
	})

	// Excluded agents never rank as salespeople, but their team's value
	// still accrues to the mapped supervisor.
	assert.Empty(t, agg.Sellers())
	supervisors := agg.Supervisors()
	require.Len(t, supervisors, 1)
	assert.Equal(t, "DIEGO JIMINEZ RIBEIRO", supervisors[0].Name)
	assert.Equal(t, 900.0, supervisors[0].CompletedSales)
}

func TestAggregatorSupervisorNameNeverRanksAsSeller(t *testing.T) {
	agg := NewAggregator(testConfig())
	agg.Add(CategoryCompleted, []RawRow{
		{Agent: "diego jiminez ribeiro", Team: "EQUIPE X", RawValue: "R$ 100,00"},
	})
	assert.Empty(t, agg.Sellers())
}

func TestAggregatorTeamKeyIsExact(t *testing.T) {
	agg := NewAggregator(testConfig())
	// The two spellings are distinct map keys mapping to different
	// supervisors; an unknown-case spelling maps to nobody.
	agg.Add(CategoryCompleted, []RawRow{
		{Agent: "A", Team: "ROBSON PAULINO JUNIOR", RawValue: "100,00"},
		{Agent: "B", Team: "Robson Paulino Junior", RawValue: "200,00"},
		{Agent: "C", Team: "robson paulino junior", RawValue: "400,00"},
	})

	supervisors := agg.Supervisors()
	require.Len(t, supervisors, 2)
	assert.Equal(t, "DIEGO JIMINEZ RIBEIRO", supervisors[0].Name)
	assert.Equal(t, 100.0, supervisors[0].CompletedSales)
	assert.Equal(t, "NAUALLY CHRYSTHINNA SANTOS FABRI", supervisors[1].Name)
	assert.Equal(t, 200.0, supervisors[1].CompletedSales)
}

func TestAggregatorSkipsRowsMissingNames(t *testing.T) {
	agg := NewAggregator(testConfig())
	agg.Add(CategoryGeneral, []RawRow{
		{Agent: "", Team: "ROBSON PAULINO JUNIOR", RawValue: "100,00"},
		{Agent: "   ", Team: "ROBSON PAULINO JUNIOR", RawValue: "100,00"},
		{Agent: "MARIA", Team: "", RawValue: "100,00"},
		{Agent: "MARIA", Team: "EQUIPE Y", RawValue: "100,00"},
	})
	sellers := agg.Sellers()
	require.Len(t, sellers, 1)
	assert.Equal(t, 100.0, sellers[0].TotalSales)
}

func TestAggregatorMalformedValueCountsAsZero(t *testing.T) {
	agg := NewAggregator(testConfig())
	agg.Add(CategoryCompleted, []RawRow{
		{Agent: "MARIA", Team: "KAROL FERNANDA FORTES", RawValue: "not a number"},
		{Agent: "MARIA", Team: "KAROL FERNANDA FORTES", RawValue: "R$ 50,00"},
	})
	sellers := agg.Sellers()
	require.Len(t, sellers, 1)
	assert.Equal(t, 50.0, sellers[0].CompletedSales)
}

func TestAggregatorSelfSupervisedTeam(t *testing.T) {
	// A supervisor who is their own team accrues as supervisor but not
	// as salesperson.
	agg := NewAggregator(testConfig())
	agg.Add(CategoryCompleted, []RawRow{
		{Agent: "KAROL FERNANDA FORTES", Team: "KAROL FERNANDA FORTES", RawValue: "300,00"},
	})
	assert.Empty(t, agg.Sellers())
	supervisors := agg.Supervisors()
	require.Len(t, supervisors, 1)
	assert.Equal(t, 300.0, supervisors[0].CompletedSales)
}

func TestAggregatorPreservesInsertionOrder(t *testing.T) {
	agg := NewAggregator(testConfig())
	agg.Add(CategoryGeneral, []RawRow{
		{Agent: "ZULEIDE", Team: "EQUIPE A", RawValue: "1,00"},
		{Agent: "ANA", Team: "EQUIPE A", RawValue: "1,00"},
		{Agent: "ZULEIDE", Team: "EQUIPE A", RawValue: "1,00"},
	})
	sellers := agg.Sellers()
	require.Len(t, sellers, 2)
	assert.Equal(t, "ZULEIDE", sellers[0].Name)
	assert.Equal(t, "ANA", sellers[1].Name)
}
