package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/poa/internal/domain"
	"github.com/alexanderramin/poa/internal/export"
	"github.com/alexanderramin/poa/internal/report"
)

// ImportSummary describes a finished import.
type ImportSummary struct {
	PlanCode           string
	FileName           string
	Sheet              string
	Activities         int
	Tasks              int
	Allocations        int
	ReplacedActivities int64
}

func FormatImportSummary(s ImportSummary) string {
	pairs := [][2]string{
		{"Plan", s.PlanCode},
		{"File", fmt.Sprintf("%s (%s)", s.FileName, s.Sheet)},
		{"Activities", strconv.Itoa(s.Activities)},
		{"Tasks", strconv.Itoa(s.Tasks)},
		{"Allocations", strconv.Itoa(s.Allocations)},
	}
	if s.ReplacedActivities > 0 {
		pairs = append(pairs, [2]string{"Replaced", fmt.Sprintf("%d activities", s.ReplacedActivities)})
	}
	return RenderBox("Import complete", KeyValues(pairs)) + "\n"
}

// FormatConfirmation is shown when an import needs explicit confirmation.
func FormatConfirmation(message string) string {
	return StyleYellow.Render("Confirmation required") + "\n" + message + "\n" +
		Dim("Re-run with --confirm to replace the existing activities.") + "\n"
}

// FormatReport prints the report metadata followed by one table per
// activity group and the monthly summary.
func FormatReport(r *report.Report) string {
	var b strings.Builder
	b.WriteString(Header(r.CategoryLabel + " " + r.Year))
	b.WriteString("\n")
	b.WriteString(KeyValues([][2]string{
		{"Plans", strconv.Itoa(r.PlanCount)},
		{"Grand total", export.FormatMoney(r.GrandTotal)},
	}))
	b.WriteString("\n\n")

	if len(r.ProjectTypes) > 0 {
		rows := make([][]string, 0, len(r.ProjectTypes))
		for _, pt := range r.ProjectTypes {
			rows = append(rows, []string{pt.Code, pt.Name, strconv.Itoa(pt.PlanCount)})
		}
		b.WriteString(RenderTable([]string{"Type", "Name", "Plans"}, rows, 2))
		b.WriteString("\n")
	}

	if len(r.Activities) == 0 {
		b.WriteString(Dim("No activities with a positive total."))
		b.WriteString("\n")
		return b.String()
	}

	headers := []string{"Task", "Code", "Quantity", "Total"}
	for _, m := range r.Months {
		headers = append(headers, m.Title())
	}
	amountCols := make([]int, 0, len(headers)-2)
	for i := 2; i < len(headers); i++ {
		amountCols = append(amountCols, i)
	}

	for _, g := range r.Activities {
		b.WriteString(Bold(fmt.Sprintf("%s  %s", g.Description, export.FormatMoney(g.Total))))
		b.WriteString("\n")
		rows := make([][]string, 0, len(g.Tasks))
		for _, t := range g.Tasks {
			row := []string{t.Name, t.BudgetItemCode, t.Quantity.String(), export.FormatMoney(t.Total)}
			for _, m := range r.Months {
				row = append(row, export.FormatMoney(t.Amount(m)))
			}
			rows = append(rows, row)
		}
		b.WriteString(RenderTable(headers, rows, amountCols...))
		b.WriteString("\n")
	}

	summary := make([]string, 0, len(r.Months))
	monthHeaders := make([]string, 0, len(r.Months))
	cols := make([]int, 0, len(r.Months))
	for i, m := range r.Months {
		monthHeaders = append(monthHeaders, m.Title())
		summary = append(summary, export.FormatMoney(r.SummaryAmount(m)))
		cols = append(cols, i)
	}
	b.WriteString(Header("Monthly summary"))
	b.WriteString("\n")
	b.WriteString(RenderTable(monthHeaders, [][]string{summary}, cols...))
	return b.String()
}

// FormatLoadLogs renders audit entries as a table, newest first.
func FormatLoadLogs(entries []*domain.LoadLogEntry) string {
	if len(entries) == 0 {
		return Dim("No load entries found.") + "\n"
	}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.LoadedAt.Local().Format("2006-01-02 15:04"),
			e.PlanCode,
			e.ProjectTitle,
			e.Actor,
			e.Message,
		})
	}
	return RenderTable([]string{"Loaded at", "Plan", "Project", "Actor", "Message"}, rows)
}
