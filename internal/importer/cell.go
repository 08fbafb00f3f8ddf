package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellDate
)

// Cell is one worksheet value. Only the field matching Kind is set.
type Cell struct {
	Kind   CellKind
	Text   string
	Number decimal.Decimal
	Date   time.Time
}

func TextCell(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

func NumberCell(d decimal.Decimal) Cell { return Cell{Kind: CellNumber, Number: d} }

func DateCell(t time.Time) Cell { return Cell{Kind: CellDate, Date: t} }

// IsBlank reports whether the cell is empty or whitespace-only text.
func (c Cell) IsBlank() bool {
	return c.Kind == CellEmpty || (c.Kind == CellText && strings.TrimSpace(c.Text) == "")
}

// Decimal returns the numeric value of number cells and of text cells
// holding a plain decimal literal.
func (c Cell) Decimal() (decimal.Decimal, bool) {
	switch c.Kind {
	case CellNumber:
		return c.Number, true
	case CellText:
		d, err := decimal.NewFromString(strings.TrimSpace(c.Text))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}
	return decimal.Zero, false
}

// String renders the cell the way it is shown in error messages.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return c.Number.String()
	case CellDate:
		return c.Date.Format("2006-01-02")
	}
	return ""
}

// Trimmed is the trimmed textual form of the cell.
func (c Cell) Trimmed() string {
	return strings.TrimSpace(c.String())
}

// minColumns is the width every row is padded to (A through X).
const minColumns = 24

// Sheet is a rectangular view of one worksheet; missing cells read as empty.
type Sheet struct {
	Name string
	Rows [][]Cell
}

// NewSheet pads every row to the template width.
func NewSheet(name string, rows [][]Cell) *Sheet {
	for i, r := range rows {
		if len(r) < minColumns {
			padded := make([]Cell, minColumns)
			copy(padded, r)
			rows[i] = padded
		}
	}
	return &Sheet{Name: name, Rows: rows}
}

// Cell returns the cell at the 0-based position, or an empty cell.
func (s *Sheet) Cell(row, col int) Cell {
	if row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Rows[row]) {
		return Cell{}
	}
	return s.Rows[row][col]
}

func (s *Sheet) NumRows() int { return len(s.Rows) }
