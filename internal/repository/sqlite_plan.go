package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/poa/internal/db"
	"github.com/alexanderramin/poa/internal/domain"
)

type SQLitePlanRepo struct {
	db db.DBTX
}

func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

const planColumns = `id, project_id, period_id, plan_type_id, code, year, status, assigned_budget, created_at`

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	var planTypeID any
	if p.PlanTypeID != "" {
		planTypeID = p.PlanTypeID
	}
	stamp(&p.CreatedAt)
	status := p.Status
	if status == "" {
		status = domain.PlanDraft
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plans (`+planColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.ProjectID,
		p.PeriodID,
		planTypeID,
		p.Code,
		p.Year,
		string(status),
		p.AssignedBudget.String(),
		formatTimestamp(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE id = ?`, id)
	return scanPlan(row)
}

func (r *SQLitePlanRepo) GetByCode(ctx context.Context, code string) (*domain.Plan, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE code = ?`, code)
	return scanPlan(row)
}

// ListForReport returns the plans of year whose project has one of the
// given type codes, ordered by plan code.
func (r *SQLitePlanRepo) ListForReport(ctx context.Context, year string, projectTypeCodes []string) ([]ReportPlan, error) {
	if len(projectTypeCodes) == 0 {
		return nil, nil
	}
	query := `SELECT pl.id, pl.code, pt.code, pt.name
		FROM plans pl
		JOIN projects pr ON pr.id = pl.project_id
		JOIN project_types pt ON pt.id = pr.project_type_id
		WHERE pl.year = ? AND pt.code IN (` + placeholders(len(projectTypeCodes)) + `)
		ORDER BY pl.code, pl.id`
	args := append([]any{year}, stringArgs(projectTypeCodes)...)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing report plans: %w", err)
	}
	defer rows.Close()

	var out []ReportPlan
	for rows.Next() {
		var rp ReportPlan
		if err := rows.Scan(&rp.PlanID, &rp.PlanCode, &rp.ProjectTypeCode, &rp.ProjectTypeName); err != nil {
			return nil, fmt.Errorf("scanning report plan: %w", err)
		}
		out = append(out, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating report plans: %w", err)
	}
	return out, nil
}

func scanPlan(row *sql.Row) (*domain.Plan, error) {
	var p domain.Plan
	var planTypeID sql.NullString
	var status, createdAt string
	err := row.Scan(&p.ID, &p.ProjectID, &p.PeriodID, &planTypeID, &p.Code, &p.Year,
		&status, &p.AssignedBudget, &createdAt)
	if err != nil {
		return nil, notFound(err, "plan")
	}
	p.PlanTypeID = planTypeID.String
	p.Status = domain.PlanStatus(status)
	if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing plan created_at: %w", err)
	}
	return &p, nil
}
