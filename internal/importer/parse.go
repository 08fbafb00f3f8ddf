package importer

import (
	"github.com/shopspring/decimal"

	"github.com/alexanderramin/poa/internal/domain"
)

// unitPricePlaces is the rounding applied when the unit price is derived
// from the row total.
const unitPricePlaces = 4

// ParseSheet walks a validated layout and builds the plan tree. The only
// fatal conditions are non-numeric values where amounts are required.
func ParseSheet(l *Layout) (*ParsedPlan, error) {
	s := l.Sheet
	plan := &ParsedPlan{Monthly: make(map[string]decimal.Decimal)}
	var current *ParsedActivity

	for row := firstDataRow; row < s.NumRows(); row++ {
		class := ClassifyRow(s, row, current != nil)
		switch class.Kind {
		case RowGrandTotal:
			readGrandTotal(l, row, plan)
			return plan, nil

		case RowActivityMarker:
			total, err := activityTotal(s, row)
			if err != nil {
				return nil, err
			}
			if total.IsZero() {
				current = nil
				continue
			}
			current = &ParsedActivity{
				Row:         row + 1,
				Description: s.Cell(row, colDescription).Trimmed(),
				Ordinal:     class.Ordinal,
				Total:       total,
			}
			plan.Activities = append(plan.Activities, current)

		case RowTaskCandidate:
			task, err := parseTask(l, row)
			if err != nil {
				return nil, err
			}
			if task != nil {
				current.Tasks = append(current.Tasks, task)
			}
		}
	}
	return plan, nil
}

func readGrandTotal(l *Layout, row int, plan *ParsedPlan) {
	s := l.Sheet
	total, ok := s.Cell(row, colActivityTot).Decimal()
	if !ok || total.IsZero() {
		return
	}
	plan.Total = total
	for _, h := range l.Months {
		v, ok := s.Cell(row, h.Column).Decimal()
		if !ok || v.IsZero() {
			continue
		}
		plan.Monthly[h.Label] = plan.Monthly[h.Label].Add(v)
	}
}

// activityTotal returns zero for blank cells.
func activityTotal(s *Sheet, row int) (decimal.Decimal, error) {
	c := s.Cell(row, colActivityTot)
	if c.IsBlank() {
		return decimal.Zero, nil
	}
	v, ok := c.Decimal()
	if !ok {
		return decimal.Zero, rowParseError(row, colActivityTot, c)
	}
	return v, nil
}

// parseTask returns nil for rows that are not costed tasks.
func parseTask(l *Layout, row int) (*ParsedTask, error) {
	s := l.Sheet
	name := s.Cell(row, colDescription).Trimmed()
	if name == "" {
		return nil, nil
	}
	rowTotal, ok := s.Cell(row, colTotal).Decimal()
	if !ok || rowTotal.IsZero() {
		return nil, nil
	}

	quantity := decimal.NewFromInt(1)
	if c := s.Cell(row, colQuantity); !c.IsBlank() {
		v, ok := c.Decimal()
		if !ok {
			return nil, rowParseError(row, colQuantity, c)
		}
		quantity = v
	}

	var unitPrice decimal.Decimal
	if c := s.Cell(row, colUnitPrice); !c.IsBlank() {
		v, ok := c.Decimal()
		if !ok {
			return nil, rowParseError(row, colUnitPrice, c)
		}
		unitPrice = v
	} else if !quantity.IsZero() {
		unitPrice = rowTotal.Div(quantity).Round(unitPricePlaces)
	}

	monthly := make(map[string]decimal.Decimal)
	for _, h := range l.Months {
		c := s.Cell(row, h.Column)
		if c.IsBlank() {
			continue
		}
		v, ok := c.Decimal()
		if !ok {
			return nil, rowParseError(row, h.Column, c)
		}
		monthly[h.Label] = monthly[h.Label].Add(v)
	}

	task := &ParsedTask{
		Row:        row + 1,
		Name:       name,
		DetailText: s.Cell(row, colDetail).Trimmed(),
		CodeText:   s.Cell(row, colCode).Trimmed(),
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		RowTotal:   rowTotal,
		Monthly:    monthly,
	}
	if v, ok := s.Cell(row, colDeclaredSum).Decimal(); ok {
		task.DeclaredTotal = decimal.NewNullDecimal(v)
	}
	return task, nil
}

func rowParseError(row, col int, c Cell) error {
	return &domain.RowParseError{Row: row + 1, Column: columnName(col), Value: c.String()}
}

// Parse reads, validates and parses one sheet of an uploaded workbook.
func Parse(fileName string, content []byte, sheet string) (*Layout, *ParsedPlan, error) {
	s, err := ReadSheet(fileName, content, sheet)
	if err != nil {
		return nil, nil, err
	}
	layout, err := ValidateLayout(s)
	if err != nil {
		return nil, nil, err
	}
	plan, err := ParseSheet(layout)
	if err != nil {
		return nil, nil, err
	}
	return layout, plan, nil
}
