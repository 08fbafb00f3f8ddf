package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/poa/internal/db"
	"github.com/alexanderramin/poa/internal/domain"
)

// SQLiteCatalogRepo stores budget item codes and task details. Listings
// follow insertion order, which is the order the matcher tries candidates in.
type SQLiteCatalogRepo struct {
	db db.DBTX
}

func NewSQLiteCatalogRepo(conn db.DBTX) *SQLiteCatalogRepo {
	return &SQLiteCatalogRepo{db: conn}
}

func (r *SQLiteCatalogRepo) CreateCode(ctx context.Context, c *domain.BudgetItemCode) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budget_item_codes (id, code, description) VALUES (?, ?, ?)`,
		c.ID, c.Code, c.Description)
	if err != nil {
		return fmt.Errorf("inserting budget item code: %w", err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) FindCode(ctx context.Context, code, description string) (*domain.BudgetItemCode, error) {
	var c domain.BudgetItemCode
	err := r.db.QueryRowContext(ctx,
		`SELECT id, code, description FROM budget_item_codes WHERE code = ? AND description = ?`,
		code, description).Scan(&c.ID, &c.Code, &c.Description)
	if err != nil {
		return nil, notFound(err, "budget item code")
	}
	return &c, nil
}

func (r *SQLiteCatalogRepo) ListCodesByValue(ctx context.Context, code string) ([]*domain.BudgetItemCode, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, code, description FROM budget_item_codes WHERE code = ? ORDER BY rowid`, code)
	if err != nil {
		return nil, fmt.Errorf("listing budget item codes: %w", err)
	}
	defer rows.Close()

	var out []*domain.BudgetItemCode
	for rows.Next() {
		var c domain.BudgetItemCode
		if err := rows.Scan(&c.ID, &c.Code, &c.Description); err != nil {
			return nil, fmt.Errorf("scanning budget item code: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget item codes: %w", err)
	}
	return out, nil
}

func (r *SQLiteCatalogRepo) CreateDetail(ctx context.Context, d *domain.TaskDetail) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO task_details (id, budget_item_code_id, name, description) VALUES (?, ?, ?, ?)`,
		d.ID, d.BudgetItemCodeID, d.Name, d.Description)
	if err != nil {
		return fmt.Errorf("inserting task detail: %w", err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) FindDetail(ctx context.Context, codeID, name string) (*domain.TaskDetail, error) {
	var d domain.TaskDetail
	err := r.db.QueryRowContext(ctx,
		`SELECT id, budget_item_code_id, name, description FROM task_details
		WHERE budget_item_code_id = ? AND name = ? ORDER BY rowid LIMIT 1`,
		codeID, name).Scan(&d.ID, &d.BudgetItemCodeID, &d.Name, &d.Description)
	if err != nil {
		return nil, notFound(err, "task detail")
	}
	return &d, nil
}

func (r *SQLiteCatalogRepo) ListDetailsByCode(ctx context.Context, codeID string) ([]*domain.TaskDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, budget_item_code_id, name, description FROM task_details
		WHERE budget_item_code_id = ? ORDER BY rowid`, codeID)
	if err != nil {
		return nil, fmt.Errorf("listing task details: %w", err)
	}
	defer rows.Close()

	var out []*domain.TaskDetail
	for rows.Next() {
		var d domain.TaskDetail
		if err := rows.Scan(&d.ID, &d.BudgetItemCodeID, &d.Name, &d.Description); err != nil {
			return nil, fmt.Errorf("scanning task detail: %w", err)
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task details: %w", err)
	}
	return out, nil
}

func (r *SQLiteCatalogRepo) LinkPlanType(ctx context.Context, planTypeID, detailID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO plan_type_task_details (plan_type_id, task_detail_id) VALUES (?, ?)`,
		planTypeID, detailID)
	if err != nil {
		return fmt.Errorf("linking task detail to plan type: %w", err)
	}
	return nil
}
