package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is an annual operating budget plan (POA) for one project.
type Plan struct {
	ID             string
	ProjectID      string
	PeriodID       string
	PlanTypeID     string
	Code           string
	Year           string
	Status         PlanStatus
	AssignedBudget decimal.Decimal
	CreatedAt      time.Time
}

type Project struct {
	ID            string
	Code          string
	Title         string
	ProjectTypeID string
}

// ProjectType is the fine-grained project classification (PIIF, PVIF, ...).
// Reports group these into coarse categories, see Category.
type ProjectType struct {
	ID   string
	Code string
	Name string
}

// PlanType drives which TaskDetail entries a plan may use.
type PlanType struct {
	ID   string
	Code string
	Name string
}
