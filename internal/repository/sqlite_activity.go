package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/poa/internal/db"
	"github.com/alexanderramin/poa/internal/domain"
)

type SQLiteActivityRepo struct {
	db db.DBTX
}

func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

const activityColumns = `id, plan_id, description, total, balance, position, created_at`

func (r *SQLiteActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	stamp(&a.CreatedAt)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO activities (`+activityColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.PlanID,
		a.Description,
		a.Total.String(),
		a.Balance.String(),
		a.Position,
		formatTimestamp(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE plan_id = ? ORDER BY position, created_at`, planID)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	return scanActivities(rows)
}

func (r *SQLiteActivityRepo) CountByPlan(ctx context.Context, planID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities WHERE plan_id = ?`, planID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting activities: %w", err)
	}
	return n, nil
}

// DeleteByPlan removes every activity of the plan; tasks and allocations
// follow through ON DELETE CASCADE.
func (r *SQLiteActivityRepo) DeleteByPlan(ctx context.Context, planID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE plan_id = ?`, planID)
	if err != nil {
		return 0, fmt.Errorf("deleting plan activities: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteActivityRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM activities WHERE id IN (`+placeholders(len(ids))+`)`, stringArgs(ids)...)
	if err != nil {
		return 0, fmt.Errorf("deleting activities: %w", err)
	}
	return res.RowsAffected()
}

// ListPositiveByPlans returns activities with a total above zero, in plan
// order as given and sheet position within each plan.
func (r *SQLiteActivityRepo) ListPositiveByPlans(ctx context.Context, planIDs []string) ([]*domain.Activity, error) {
	if len(planIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT a.id, a.plan_id, a.description, a.total, a.balance, a.position, a.created_at
		FROM activities a
		JOIN plans pl ON pl.id = a.plan_id
		WHERE a.plan_id IN (`+placeholders(len(planIDs))+`) AND CAST(a.total AS REAL) > 0
		ORDER BY pl.code, pl.id, a.position, a.created_at`, stringArgs(planIDs)...)
	if err != nil {
		return nil, fmt.Errorf("listing report activities: %w", err)
	}
	return scanActivities(rows)
}

func scanActivities(rows *sql.Rows) ([]*domain.Activity, error) {
	defer rows.Close()
	var out []*domain.Activity
	for rows.Next() {
		var a domain.Activity
		var createdAt string
		if err := rows.Scan(&a.ID, &a.PlanID, &a.Description, &a.Total, &a.Balance, &a.Position, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		t, err := parseTimestamp(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing activity created_at: %w", err)
		}
		a.CreatedAt = t
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return out, nil
}
