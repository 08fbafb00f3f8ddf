package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Activity struct {
	ID          string
	PlanID      string
	Description string
	Total       decimal.Decimal
	Balance     decimal.Decimal
	Position    int
	CreatedAt   time.Time
}

// Ordinal returns the leading "(n)" number of the description.
func (a *Activity) Ordinal() (int, bool) {
	return ExtractOrdinal(a.Description)
}

type Task struct {
	ID           string
	ActivityID   string
	TaskDetailID string
	Name         string
	DetailText   string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	Total        decimal.Decimal
	Balance      decimal.Decimal
	Position     int
	CreatedAt    time.Time
}

// NewTask builds a task whose total and balance are derived from
// quantity and unit price.
func NewTask(activityID, detailID, name, detailText string, quantity, unitPrice decimal.Decimal, position int) *Task {
	total := quantity.Mul(unitPrice)
	return &Task{
		ActivityID:   activityID,
		TaskDetailID: detailID,
		Name:         name,
		DetailText:   detailText,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		Total:        total,
		Balance:      total,
		Position:     position,
	}
}

// MonthlyAllocation is the planned disbursement of a task in one month.
// Allocations of a task are not required to add up to the task total.
type MonthlyAllocation struct {
	ID     string
	TaskID string
	Month  Month
	Amount decimal.Decimal
}

// BudgetItemCode is a chart-of-accounts entry. Code values repeat across
// rows; Description tells the variants apart.
type BudgetItemCode struct {
	ID          string
	Code        string
	Description string
}

// TaskDetail is a canonical catalog description under one BudgetItemCode.
type TaskDetail struct {
	ID               string
	BudgetItemCodeID string
	Name             string
	Description      string
}
