package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/poa/internal/domain"
)

// Template coordinates, 0-based.
const (
	headerRow       = 7
	activityHdrRow  = 6
	colDescription  = 3
	colDetail       = 4
	colCode         = 6
	colQuantity     = 7
	colUnitPrice    = 8
	colTotal        = 9
	colActivityTot  = 10
	colFirstMonth   = 11
	colLastMonth    = 22
	colDeclaredSum  = 23
	monthColumns    = colLastMonth - colFirstMonth + 1
	firstDataRow    = headerRow
	grandTotalLabel = "TOTAL PRESUPUESTO"
)

// headerDateLayouts are the textual forms accepted for month headers.
var headerDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	time.RFC3339,
}

// MonthHeader is one of the twelve month columns. Label is the header as
// written in the sheet; monthly values are keyed by it.
type MonthHeader struct {
	Column int
	Label  string
	Month  domain.Month
}

// Layout is a worksheet that passed validation.
type Layout struct {
	Sheet  *Sheet
	Months []MonthHeader
}

// MonthOf resolves a header label to its canonical month.
func (l *Layout) MonthOf(label string) (domain.Month, bool) {
	for _, h := range l.Months {
		if h.Label == label {
			return h.Month, true
		}
	}
	return "", false
}

type textRule struct {
	row, col int
	want     string
	prefix   bool
}

var textRules = []textRule{
	{row: headerRow, col: colDetail, want: "DESCRIPCIÓN O DETALLE"},
	{row: headerRow, col: colCode, want: "ITEM PRESUPUESTARIO"},
	{row: headerRow, col: colQuantity, want: "CANTIDAD", prefix: true},
	{row: headerRow, col: colUnitPrice, want: "PRECIO UNITARIO"},
	{row: headerRow, col: colTotal, want: "TOTAL"},
	{row: activityHdrRow, col: colActivityTot, want: "TOTAL POR ACTIVIDAD"},
	{row: headerRow, col: colDeclaredSum, want: "SUMAN"},
}

// ValidateLayout checks the fixed template and collects every violation
// into one *domain.LayoutMismatchError.
func ValidateLayout(s *Sheet) (*Layout, error) {
	var violations []string

	for _, rule := range textRules {
		if msg := rule.check(s.Cell(rule.row, rule.col)); msg != "" {
			violations = append(violations, fmt.Sprintf("%s: %s", cellName(rule.row, rule.col), msg))
		}
	}

	months := make([]MonthHeader, 0, monthColumns)
	for col := colFirstMonth; col <= colLastMonth; col++ {
		c := s.Cell(headerRow, col)
		t, ok := headerDate(c)
		if !ok {
			violations = append(violations, fmt.Sprintf("%s: expected a date, found %q", cellName(headerRow, col), c.Trimmed()))
			continue
		}
		months = append(months, MonthHeader{
			Column: col,
			Label:  headerLabel(c),
			Month:  domain.MonthOf(t.Month()),
		})
	}

	if len(violations) > 0 {
		return nil, &domain.LayoutMismatchError{Violations: violations}
	}
	return &Layout{Sheet: s, Months: months}, nil
}

func (r textRule) check(c Cell) string {
	got := strings.TrimSpace(c.String())
	upper := strings.ToUpper(got)
	if r.prefix {
		if strings.HasPrefix(upper, r.want) {
			return ""
		}
		return fmt.Sprintf("expected a header starting with %q, found %q", r.want, got)
	}
	if strings.EqualFold(got, r.want) {
		return ""
	}
	return fmt.Sprintf("expected %q, found %q", r.want, got)
}

func headerDate(c Cell) (time.Time, bool) {
	switch c.Kind {
	case CellDate:
		return c.Date, true
	case CellText:
		s := strings.TrimSpace(c.Text)
		for _, layout := range headerDateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func headerLabel(c Cell) string {
	if c.Kind == CellDate {
		return c.Date.Format("2006-01-02")
	}
	return strings.TrimSpace(c.Text)
}

// cellName renders a 0-based position as an A1 reference.
func cellName(row, col int) string {
	return columnName(col) + fmt.Sprint(row+1)
}

func columnName(col int) string {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return fmt.Sprintf("col%d", col+1)
	}
	return name
}
