package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/poa/internal/db"
	"github.com/alexanderramin/poa/internal/domain"
)

type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, activity_id, task_detail_id, name, detail_text, quantity, unit_price, total, balance, position, created_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	stamp(&t.CreatedAt)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.ActivityID,
		t.TaskDetailID,
		t.Name,
		t.DetailText,
		t.Quantity.String(),
		t.UnitPrice.String(),
		t.Total.String(),
		t.Balance.String(),
		t.Position,
		formatTimestamp(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) ListByActivity(ctx context.Context, activityID string) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE activity_id = ? ORDER BY position, created_at`, activityID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var out []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return out, nil
}

// ListPositiveByActivities returns tasks with a total above zero, in the
// order of activityIDs and sheet position within each activity.
func (r *SQLiteTaskRepo) ListPositiveByActivities(ctx context.Context, activityIDs []string) ([]ReportTask, error) {
	if len(activityIDs) == 0 {
		return nil, nil
	}
	query := `SELECT t.id, t.activity_id, t.task_detail_id, t.name, t.detail_text, t.quantity,
			t.unit_price, t.total, t.balance, t.position, t.created_at, c.code
		FROM tasks t
		JOIN task_details d ON d.id = t.task_detail_id
		JOIN budget_item_codes c ON c.id = d.budget_item_code_id
		WHERE t.activity_id IN (` + placeholders(len(activityIDs)) + `) AND CAST(t.total AS REAL) > 0
		ORDER BY t.position, t.created_at`
	rows, err := r.db.QueryContext(ctx, query, stringArgs(activityIDs)...)
	if err != nil {
		return nil, fmt.Errorf("listing report tasks: %w", err)
	}
	defer rows.Close()

	byActivity := make(map[string][]ReportTask)
	for rows.Next() {
		var rt ReportTask
		var createdAt string
		t := &rt.Task
		if err := rows.Scan(&t.ID, &t.ActivityID, &t.TaskDetailID, &t.Name, &t.DetailText, &t.Quantity,
			&t.UnitPrice, &t.Total, &t.Balance, &t.Position, &createdAt, &rt.BudgetItemCode); err != nil {
			return nil, fmt.Errorf("scanning report task: %w", err)
		}
		if t.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, fmt.Errorf("parsing task created_at: %w", err)
		}
		byActivity[t.ActivityID] = append(byActivity[t.ActivityID], rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating report tasks: %w", err)
	}

	var out []ReportTask
	for _, id := range activityIDs {
		out = append(out, byActivity[id]...)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(s rowScanner) (*domain.Task, error) {
	var t domain.Task
	var createdAt string
	if err := s.Scan(&t.ID, &t.ActivityID, &t.TaskDetailID, &t.Name, &t.DetailText, &t.Quantity,
		&t.UnitPrice, &t.Total, &t.Balance, &t.Position, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	ts, err := parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing task created_at: %w", err)
	}
	t.CreatedAt = ts
	return &t, nil
}
