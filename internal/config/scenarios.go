package config

// DateFilterKind is the label shown by the filter page's date-type
// dropdown.
type DateFilterKind string

const (
	DateFilterRegistration DateFilterKind = "Data Cadastro"
	DateFilterPayment      DateFilterKind = "Data Pagamento"
)

// PeriodKind selects the date range typed into the filter fields.
type PeriodKind string

const (
	PeriodDaily   PeriodKind = "diario"
	PeriodMonthly PeriodKind = "mensal"
)

// Scenario is one configured filter combination driving one export.
// The list is fixed configuration, not runtime input; its order only
// matters for reuse of the shared browser session.
type Scenario struct {
	Name       string         `validate:"required"`
	Stages     []string       // empty means no stage filter
	DateFilter DateFilterKind `validate:"required"`
	Period     PeriodKind     `validate:"required,oneof=diario mensal"`
	Folder     string         `validate:"required"`
}

// Scenarios returns the ordered extraction sequence. The monthly
// completed export runs first, then the three daily exports.
func Scenarios() []Scenario {
	return []Scenario{
		{
			Name:       "Json_vendaConcluidaMensal",
			Stages:     nil,
			DateFilter: DateFilterPayment,
			Period:     PeriodMonthly,
			Folder:     "concluida",
		},
		{
			Name:       "Json_vendasGeralHoje",
			Stages:     []string{"Andamento", "Pendente", "Pago"},
			DateFilter: DateFilterRegistration,
			Period:     PeriodDaily,
			Folder:     "geral",
		},
		{
			Name:       "Json_vendaConcluidaHoje",
			Stages:     []string{"Andamento", "Pago"},
			DateFilter: DateFilterRegistration,
			Period:     PeriodDaily,
			Folder:     "concluida",
		},
		{
			Name:       "Json_vendaPendenteHoje",
			Stages:     []string{"Pendente"},
			DateFilter: DateFilterRegistration,
			Period:     PeriodDaily,
			Folder:     "pendente",
		},
	}
}
