package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/poa/internal/db"
	"github.com/alexanderramin/poa/internal/domain"
)

type SQLiteAllocationRepo struct {
	db db.DBTX
}

func NewSQLiteAllocationRepo(conn db.DBTX) *SQLiteAllocationRepo {
	return &SQLiteAllocationRepo{db: conn}
}

func (r *SQLiteAllocationRepo) Create(ctx context.Context, a *domain.MonthlyAllocation) error {
	if !a.Month.Valid() {
		return fmt.Errorf("inserting allocation: invalid month %q", a.Month)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO monthly_allocations (id, task_id, month, amount) VALUES (?, ?, ?, ?)`,
		a.ID, a.TaskID, string(a.Month), a.Amount.String())
	if err != nil {
		return fmt.Errorf("inserting allocation: %w", err)
	}
	return nil
}

func (r *SQLiteAllocationRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.MonthlyAllocation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, task_id, month, amount FROM monthly_allocations WHERE task_id = ?`, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	return scanAllocations(rows)
}

func (r *SQLiteAllocationRepo) ListByTasks(ctx context.Context, taskIDs []string) ([]*domain.MonthlyAllocation, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, task_id, month, amount FROM monthly_allocations
		WHERE task_id IN (`+placeholders(len(taskIDs))+`)`, stringArgs(taskIDs)...)
	if err != nil {
		return nil, fmt.Errorf("listing report allocations: %w", err)
	}
	return scanAllocations(rows)
}

// scanAllocations returns allocations in calendar order per task.
func scanAllocations(rows *sql.Rows) ([]*domain.MonthlyAllocation, error) {
	defer rows.Close()
	var out []*domain.MonthlyAllocation
	for rows.Next() {
		var a domain.MonthlyAllocation
		var month string
		if err := rows.Scan(&a.ID, &a.TaskID, &month, &a.Amount); err != nil {
			return nil, fmt.Errorf("scanning allocation: %w", err)
		}
		a.Month = domain.Month(month)
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating allocations: %w", err)
	}
	sortByMonth(out)
	return out, nil
}

func sortByMonth(allocs []*domain.MonthlyAllocation) {
	slices.SortStableFunc(allocs, func(a, b *domain.MonthlyAllocation) int {
		if a.TaskID != b.TaskID {
			return strings.Compare(a.TaskID, b.TaskID)
		}
		return a.Month.Index() - b.Month.Index()
	})
}
