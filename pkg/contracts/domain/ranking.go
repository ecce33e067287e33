package domain

// RankingEntry is one row of a persisted ranking artifact. All monetary
// fields are pt-BR formatted currency strings; numeric precision is kept
// upstream and only formatted at this boundary.
//
// The JSON field names match the artifact layout consumed by the
// dashboard frontend (ranking "1º", "2º", ...).
type RankingEntry struct {
	Position       string `json:"ranking"`
	Name           string `json:"nome"`
	TotalSales     string `json:"totalDeVendas,omitempty"`
	CompletedSales string `json:"vendasConcluidas"`
	PendingSales   string `json:"vendasPendentes,omitempty"`
	AverageTicket  string `json:"ticketMedio,omitempty"`
	PercentOfGoal  string `json:"porcentagem,omitempty"`
}

// RankingReport is the artifact persisted for one report family
// (daily or monthly). Each successful run fully replaces the previous
// artifact of the same family.
type RankingReport struct {
	Supervisors []RankingEntry `json:"supervisores"`
	Salespeople []RankingEntry `json:"vendedores"`
}

// Report family identifiers used as keys in trigger responses.
const (
	FamilyDaily   = "hoje"
	FamilyMonthly = "mensal"
)
