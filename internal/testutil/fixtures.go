package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexanderramin/poa/internal/domain"
)

// Seeded reference data. Plans belong to year 2025.
const (
	SeedPlanTypeID = "plt-pis"

	SeedResearchProjectID = "prj-research"
	SeedOutreachProjectID = "prj-outreach"

	SeedResearchPlanID   = "plan-research"
	SeedResearchPlanCode = "POA-PIS-001-2025"
	SeedOutreachPlanID   = "plan-outreach"
	SeedOutreachPlanCode = "POA-PVIF-001-2025"

	SeedFeesCodeID    = "bic-fees"
	SeedPrintCodeID   = "bic-print"
	SeedPrintCodeAlt  = "bic-print-alt"
	SeedFeesDetailID  = "det-fees"
	SeedPrintDetailID = "det-print"
	SeedPosterID      = "det-poster"
)

// Seed inserts project types for every category, one research and one
// outreach project each with a 2025 plan, and a small budget item catalog:
//
//	730606 Honorarios      -> "Servicios profesionales"
//	730204 Edición         -> "Impresión de material"
//	730204 Publicaciones   -> "Afiches"
func Seed(t *testing.T, database *sql.DB) {
	t.Helper()
	created := "2025-01-01T00:00:00.000000Z"
	stmts := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO project_types (id, code, name) VALUES
			('pt-piif', 'PIIF', 'Investigación institucional'),
			('pt-pis', 'PIS', 'Investigación semilla'),
			('pt-pigr', 'PIGR', 'Investigación grupal'),
			('pt-pim', 'PIM', 'Investigación multidisciplinaria'),
			('pt-pvif', 'PVIF', 'Vinculación'),
			('pt-ptt', 'PTT', 'Transferencia tecnológica')`, nil},
		{`INSERT INTO plan_types (id, code, name) VALUES (?, 'PIS', 'POA semilla')`, []any{SeedPlanTypeID}},
		{`INSERT INTO projects (id, code, title, project_type_id) VALUES
			(?, 'PIS-001', 'Sensores de humedad', 'pt-pis'),
			(?, 'PVIF-001', 'Huertos comunitarios', 'pt-pvif')`,
			[]any{SeedResearchProjectID, SeedOutreachProjectID}},
		{`INSERT INTO plans (id, project_id, plan_type_id, code, year, status, assigned_budget, created_at) VALUES
			(?, ?, ?, ?, '2025', 'approved', '20000', ?),
			(?, ?, NULL, ?, '2025', 'draft', '5000', ?)`,
			[]any{SeedResearchPlanID, SeedResearchProjectID, SeedPlanTypeID, SeedResearchPlanCode, created,
				SeedOutreachPlanID, SeedOutreachProjectID, SeedOutreachPlanCode, created}},
		{`INSERT INTO budget_item_codes (id, code, description) VALUES
			(?, '730606', 'Honorarios'),
			(?, '730204', 'Edición'),
			(?, '730204', 'Publicaciones')`,
			[]any{SeedFeesCodeID, SeedPrintCodeID, SeedPrintCodeAlt}},
		{`INSERT INTO task_details (id, budget_item_code_id, name) VALUES
			(?, ?, 'Servicios profesionales'),
			(?, ?, 'Impresión de material'),
			(?, ?, 'Afiches')`,
			[]any{SeedFeesDetailID, SeedFeesCodeID, SeedPrintDetailID, SeedPrintCodeID, SeedPosterID, SeedPrintCodeAlt}},
	}
	for _, s := range stmts {
		if _, err := database.Exec(s.query, s.args...); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}
}

// Activity options
type ActivityOption func(*domain.Activity)

func WithActivityTotal(total string) ActivityOption {
	return func(a *domain.Activity) {
		a.Total = decimal.RequireFromString(total)
		a.Balance = a.Total
	}
}

func WithPosition(n int) ActivityOption {
	return func(a *domain.Activity) {
		a.Position = n
	}
}

func NewTestActivity(planID, description string, opts ...ActivityOption) *domain.Activity {
	a := &domain.Activity{
		ID:          uuid.New().String(),
		PlanID:      planID,
		Description: description,
		Total:       decimal.NewFromInt(100),
		Balance:     decimal.NewFromInt(100),
		CreatedAt:   time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Task options
type TaskOption func(*domain.Task)

// WithCost sets quantity and unit price and derives total and balance.
func WithCost(quantity, unitPrice string) TaskOption {
	return func(t *domain.Task) {
		t.Quantity = decimal.RequireFromString(quantity)
		t.UnitPrice = decimal.RequireFromString(unitPrice)
		t.Total = t.Quantity.Mul(t.UnitPrice)
		t.Balance = t.Total
	}
}

func WithTaskPosition(n int) TaskOption {
	return func(t *domain.Task) {
		t.Position = n
	}
}

func NewTestTask(activityID, detailID, name string, opts ...TaskOption) *domain.Task {
	t := domain.NewTask(activityID, detailID, name, "", decimal.NewFromInt(1), decimal.NewFromInt(50), 0)
	t.ID = uuid.New().String()
	t.CreatedAt = time.Now().UTC()
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestAllocation(taskID string, month domain.Month, amount string) *domain.MonthlyAllocation {
	return &domain.MonthlyAllocation{
		ID:     uuid.New().String(),
		TaskID: taskID,
		Month:  month,
		Amount: decimal.RequireFromString(amount),
	}
}
