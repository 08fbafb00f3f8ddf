package importer

import "github.com/shopspring/decimal"

// ParsedPlan is the content of a validated worksheet before catalog
// matching.
type ParsedPlan struct {
	Total      decimal.Decimal
	Monthly    map[string]decimal.Decimal
	Activities []*ParsedActivity
}

// TaskCount is the number of tasks across all activities.
func (p *ParsedPlan) TaskCount() int {
	n := 0
	for _, a := range p.Activities {
		n += len(a.Tasks)
	}
	return n
}

type ParsedActivity struct {
	Row         int
	Description string
	Ordinal     int
	Total       decimal.Decimal
	Tasks       []*ParsedTask
}

// ParsedTask is one costed row. Row is 1-based. Monthly is keyed by month
// header label. DeclaredTotal is the sheet's own row sum and is only kept
// for diagnostics.
type ParsedTask struct {
	Row           int
	Name          string
	DetailText    string
	CodeText      string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	RowTotal      decimal.Decimal
	Monthly       map[string]decimal.Decimal
	DeclaredTotal decimal.NullDecimal
}

// Total is always quantity times unit price, whatever the sheet declared.
func (t *ParsedTask) Total() decimal.Decimal {
	return t.Quantity.Mul(t.UnitPrice)
}
