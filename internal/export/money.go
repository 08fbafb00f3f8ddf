// Package export renders reports as spreadsheet and PDF documents.
package export

import (
	"github.com/shopspring/decimal"

	"github.com/alexanderramin/poa/internal/domain"
	"github.com/alexanderramin/poa/internal/report"
)

// Default file names offered for rendered reports.
const (
	XLSXFileName = "reporte-poa.xlsx"
	PDFFileName  = "reporte-poa.pdf"
)

// FormatMoney renders an amount as "$1234.50".
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func taskHeaders(months []domain.Month) []string {
	headers := []string{"Tarea", "Item Presupuestario", "Cantidad", "Total Tarea"}
	for _, m := range months {
		headers = append(headers, m.Title())
	}
	return headers
}

func taskCells(t report.TaskLine, months []domain.Month) []string {
	cells := []string{t.Name, t.BudgetItemCode, t.Quantity.String(), FormatMoney(t.Total)}
	for _, m := range months {
		cells = append(cells, FormatMoney(t.Amount(m)))
	}
	return cells
}

func monthTitles(months []domain.Month) []string {
	out := make([]string, len(months))
	for i, m := range months {
		out[i] = m.Title()
	}
	return out
}

func summaryCells(r *report.Report) []string {
	out := make([]string, len(r.Months))
	for i, m := range r.Months {
		out[i] = FormatMoney(r.SummaryAmount(m))
	}
	return out
}

func metadataLines(r *report.Report) []string {
	return []string{
		"Año: " + r.Year,
		"Tipo de Proyecto: " + r.CategoryLabel,
		"Total de POAs: " + itoa(r.PlanCount),
		"Total general: " + FormatMoney(r.GrandTotal),
	}
}
