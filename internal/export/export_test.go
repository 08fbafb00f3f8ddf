package export

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/poa/internal/domain"
	"github.com/alexanderramin/poa/internal/report"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleReport() *report.Report {
	return &report.Report{
		Year:          "2025",
		Category:      domain.CategoryResearch,
		CategoryLabel: "Proyecto de Investigación",
		PlanCount:     2,
		GrandTotal:    d("700"),
		ProjectTypes:  []report.ProjectTypeCount{{Code: "PIS", Name: "Semilla", PlanCount: 2}},
		Months:        []domain.Month{domain.January, domain.March},
		Activities: []report.ActivityGroup{
			{
				Description: "(1) Compras",
				Ordinal:     1,
				Total:       d("700"),
				Tasks: []report.TaskLine{
					{
						Name: "1.1 Servicios profesionales", BudgetItemCode: "730606",
						Quantity: d("2"), Total: d("200"),
						Monthly: []report.MonthAmount{{Month: domain.March, Amount: d("200")}},
					},
					{
						Name: "1.2 Equipos", BudgetItemCode: "840104",
						Quantity: d("1"), Total: d("500"),
						Monthly: []report.MonthAmount{{Month: domain.January, Amount: d("500")}},
					},
				},
			},
		},
		MonthlySummary: []report.MonthAmount{
			{Month: domain.January, Amount: d("500")},
			{Month: domain.March, Amount: d("200")},
		},
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$200.00", FormatMoney(d("200")))
	assert.Equal(t, "$0.10", FormatMoney(d("0.1")))
	assert.Equal(t, "$1234.57", FormatMoney(d("1234.565")))
	assert.Equal(t, "$0.00", FormatMoney(decimal.Zero))
}

func findRow(t *testing.T, rows [][]string, first string) []string {
	t.Helper()
	for _, r := range rows {
		if len(r) > 0 && r[0] == first {
			return r
		}
	}
	t.Fatalf("no row starting with %q", first)
	return nil
}

func TestXLSX_Layout(t *testing.T) {
	data, err := XLSX(sampleReport())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{XLSXSheetName}, f.GetSheetList())
	rows, err := f.GetRows(XLSXSheetName)
	require.NoError(t, err)

	assert.Equal(t, "Año: 2025", rows[0][0])
	assert.Equal(t, "Tipo de Proyecto: Proyecto de Investigación", rows[1][0])
	assert.Equal(t, "Total de POAs: 2", rows[2][0])
	assert.Equal(t, "Total general: $700.00", rows[3][0])

	assert.Equal(t, []string{"PIS", "Semilla", "2"}, findRow(t, rows, "PIS"))
	findRow(t, rows, "Actividad: (1) Compras")
	assert.Equal(t, []string{"Tarea", "Item Presupuestario", "Cantidad", "Total Tarea", "Enero", "Marzo"}, findRow(t, rows, "Tarea"))
	assert.Equal(t,
		[]string{"1.1 Servicios profesionales", "730606", "2", "$200.00", "$0.00", "$200.00"},
		findRow(t, rows, "1.1 Servicios profesionales"))

	findRow(t, rows, "RESUMEN MENSUAL")
	assert.Equal(t, []string{"$500.00", "$200.00"}, findRow(t, rows, "$500.00"))

	merged, err := f.GetMergeCells(XLSXSheetName)
	require.NoError(t, err)
	var activityMerge bool
	for _, m := range merged {
		if m.GetCellValue() == "Actividad: (1) Compras" {
			activityMerge = true
			assert.Equal(t, "F", string(m.GetEndAxis()[0]))
		}
	}
	assert.True(t, activityMerge)
}

func TestXLSX_EmptyReport(t *testing.T) {
	data, err := XLSX(&report.Report{Year: "2030", CategoryLabel: "Proyecto de Transferencia"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(XLSXSheetName, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Total general: $0.00", v)
}

func TestPDF_RendersDocument(t *testing.T) {
	data, err := PDF(sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPDF_BreaksLongReportsAcrossPages(t *testing.T) {
	small, err := PDF(sampleReport())
	require.NoError(t, err)

	r := sampleReport()
	base := r.Activities[0]
	for i := 2; i <= 40; i++ {
		a := base
		a.Description = fmt.Sprintf("(%d) Actividad con una descripción larga número %d", i, i)
		r.Activities = append(r.Activities, a)
	}

	data, err := PDF(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Greater(t, len(data), len(small))
}

func TestTaskColumnWidths_FitPage(t *testing.T) {
	widths := taskColumnWidths(12)
	require.Len(t, widths, 16)
	total := 0.0
	for _, w := range widths {
		total += w
	}
	assert.LessOrEqual(t, total, float64(PDFPageWidth-2*pdfMargin))
}
