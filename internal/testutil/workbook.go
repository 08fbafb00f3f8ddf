package testutil

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// PlanSheetName is the sheet name used by NewPlanSheet.
const PlanSheetName = "POA"

// TaskRow is one costed row written by SheetBuilder.Task. Nil fields leave
// the cell blank. Months is keyed by calendar month number.
type TaskRow struct {
	Name     any
	Detail   any
	Code     any
	Quantity any
	Price    any
	Total    any
	Months   map[int]any
	Declared any
}

// SheetBuilder writes worksheets in the plan template.
type SheetBuilder struct {
	t     *testing.T
	f     *excelize.File
	sheet string
	row   int
}

// NewPlanSheet returns a workbook whose sheet already carries a valid
// header block for year 2025. Data rows start at row 9.
func NewPlanSheet(t *testing.T) *SheetBuilder {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })
	if err := f.SetSheetName("Sheet1", PlanSheetName); err != nil {
		t.Fatalf("renaming sheet: %v", err)
	}
	b := &SheetBuilder{t: t, f: f, sheet: PlanSheetName, row: 9}

	b.Set("D8", "ACTIVIDADES")
	b.Set("E8", "DESCRIPCIÓN O DETALLE")
	b.Set("G8", "ITEM PRESUPUESTARIO")
	b.Set("H8", "CANTIDAD (Meses de contrato)")
	b.Set("I8", "PRECIO UNITARIO")
	b.Set("J8", "TOTAL")
	b.Set("K7", "TOTAL POR ACTIVIDAD")
	b.Set("X8", "SUMAN")
	for m := 1; m <= 12; m++ {
		b.SetAt(7, 10+m, time.Date(2025, time.Month(m), 1, 0, 0, 0, 0, time.UTC))
	}
	return b
}

// TextMonthHeaders replaces the date headers with "YYYY-MM-DD" strings.
func (b *SheetBuilder) TextMonthHeaders() *SheetBuilder {
	for m := 1; m <= 12; m++ {
		b.SetAt(7, 10+m, time.Date(2025, time.Month(m), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02"))
	}
	return b
}

// MonthHeaderFormat applies a custom number format to the month headers.
func (b *SheetBuilder) MonthHeaderFormat(code string) *SheetBuilder {
	b.t.Helper()
	style, err := b.f.NewStyle(&excelize.Style{CustomNumFmt: &code})
	if err != nil {
		b.t.Fatalf("creating number format %q: %v", code, err)
	}
	if err := b.f.SetCellStyle(b.sheet, "L8", "W8", style); err != nil {
		b.t.Fatalf("styling month headers: %v", err)
	}
	return b
}

// Set writes v at an A1 reference.
func (b *SheetBuilder) Set(cell string, v any) *SheetBuilder {
	b.t.Helper()
	if err := b.f.SetCellValue(b.sheet, cell, v); err != nil {
		b.t.Fatalf("setting %s: %v", cell, err)
	}
	return b
}

// SetAt writes v at a 0-based position.
func (b *SheetBuilder) SetAt(row, col int, v any) *SheetBuilder {
	b.t.Helper()
	if v == nil {
		return b
	}
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		b.t.Fatalf("cell name: %v", err)
	}
	return b.Set(cell, v)
}

// Activity writes a "(n) description" marker row with its total in K.
func (b *SheetBuilder) Activity(description string, total any) *SheetBuilder {
	r := b.row - 1
	b.SetAt(r, 3, description)
	b.SetAt(r, 10, total)
	b.row++
	return b
}

func (b *SheetBuilder) Task(tr TaskRow) *SheetBuilder {
	r := b.row - 1
	b.SetAt(r, 3, tr.Name)
	b.SetAt(r, 4, tr.Detail)
	b.SetAt(r, 6, tr.Code)
	b.SetAt(r, 7, tr.Quantity)
	b.SetAt(r, 8, tr.Price)
	b.SetAt(r, 9, tr.Total)
	for m, v := range tr.Months {
		b.SetAt(r, 10+m, v)
	}
	b.SetAt(r, 23, tr.Declared)
	b.row++
	return b
}

// GrandTotal writes the closing "TOTAL PRESUPUESTO" row.
func (b *SheetBuilder) GrandTotal(total any, months map[int]any) *SheetBuilder {
	r := b.row - 1
	b.SetAt(r, 3, "TOTAL PRESUPUESTO")
	b.SetAt(r, 10, total)
	for m, v := range months {
		b.SetAt(r, 10+m, v)
	}
	b.row++
	return b
}

// Blank skips one row.
func (b *SheetBuilder) Blank() *SheetBuilder {
	b.row++
	return b
}

// Row returns the 1-based number of the next row to be written.
func (b *SheetBuilder) Row() int { return b.row }

// AddSheet creates an extra empty sheet.
func (b *SheetBuilder) AddSheet(name string) *SheetBuilder {
	b.t.Helper()
	if _, err := b.f.NewSheet(name); err != nil {
		b.t.Fatalf("adding sheet: %v", err)
	}
	return b
}

func (b *SheetBuilder) Bytes() []byte {
	b.t.Helper()
	buf, err := b.f.WriteToBuffer()
	if err != nil {
		b.t.Fatalf("writing workbook: %v", err)
	}
	return buf.Bytes()
}
