// Package report groups persisted budget tasks across plans into the
// annual category report rendered by the export package.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/alexanderramin/poa/internal/domain"
)

// MoneyPlaces is the rounding applied to monthly amounts.
const MoneyPlaces = 2

type Report struct {
	Year           string             `json:"year"`
	Category       domain.Category    `json:"category"`
	CategoryLabel  string             `json:"category_label"`
	PlanCount      int                `json:"plan_count"`
	GrandTotal     decimal.Decimal    `json:"grand_total"`
	ProjectTypes   []ProjectTypeCount `json:"project_types"`
	Months         []domain.Month     `json:"months"`
	Activities     []ActivityGroup    `json:"activities"`
	MonthlySummary []MonthAmount      `json:"monthly_summary"`
}

type ProjectTypeCount struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	PlanCount int    `json:"plan_count"`
}

// ActivityGroup merges every activity sharing one exact description.
type ActivityGroup struct {
	Description string          `json:"description"`
	Ordinal     int             `json:"ordinal"`
	Total       decimal.Decimal `json:"total"`
	Tasks       []TaskLine      `json:"tasks"`
}

// TaskLine merges the tasks of a group that point at one task detail.
type TaskLine struct {
	Name           string          `json:"name"`
	TaskDetailID   string          `json:"task_detail_id"`
	BudgetItemCode string          `json:"budget_item_code"`
	Quantity       decimal.Decimal `json:"quantity"`
	Total          decimal.Decimal `json:"total"`
	Monthly        []MonthAmount   `json:"monthly"`
}

type MonthAmount struct {
	Month  domain.Month    `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// Amount returns the value for m, or zero.
func (t TaskLine) Amount(m domain.Month) decimal.Decimal {
	return amountOf(t.Monthly, m)
}

// SummaryAmount returns the report-wide value for m, or zero.
func (r *Report) SummaryAmount(m domain.Month) decimal.Decimal {
	return amountOf(r.MonthlySummary, m)
}

func amountOf(amounts []MonthAmount, m domain.Month) decimal.Decimal {
	for _, a := range amounts {
		if a.Month == m {
			return a.Amount
		}
	}
	return decimal.Zero
}

// TaskCount is the number of task lines across all groups.
func (r *Report) TaskCount() int {
	n := 0
	for _, a := range r.Activities {
		n += len(a.Tasks)
	}
	return n
}
