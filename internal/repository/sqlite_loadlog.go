package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/poa/internal/db"
	"github.com/alexanderramin/poa/internal/domain"
)

type SQLiteLoadLogRepo struct {
	db db.DBTX
}

func NewSQLiteLoadLogRepo(conn db.DBTX) *SQLiteLoadLogRepo {
	return &SQLiteLoadLogRepo{db: conn}
}

func (r *SQLiteLoadLogRepo) Create(ctx context.Context, l *domain.LoadLog) error {
	stamp(&l.LoadedAt)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO load_logs (id, plan_id, actor, loaded_at, message, file_name, sheet)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.PlanID, l.Actor, formatTimestamp(l.LoadedAt), l.Message, l.FileName, l.Sheet)
	if err != nil {
		return fmt.Errorf("inserting load log: %w", err)
	}
	return nil
}

// List returns entries newest first. filter.To includes the whole day.
func (r *SQLiteLoadLogRepo) List(ctx context.Context, filter LoadLogFilter) ([]*domain.LoadLogEntry, error) {
	var where []string
	var args []any
	if filter.From != nil {
		where = append(where, "l.loaded_at >= ?")
		args = append(args, formatTimestamp(startOfDay(*filter.From)))
	}
	if filter.To != nil {
		where = append(where, "l.loaded_at < ?")
		args = append(args, formatTimestamp(startOfDay(*filter.To).AddDate(0, 0, 1)))
	}

	query := `SELECT l.id, l.plan_id, l.actor, l.loaded_at, l.message, l.file_name, l.sheet,
			pl.code, pr.title
		FROM load_logs l
		JOIN plans pl ON pl.id = l.plan_id
		JOIN projects pr ON pr.id = pl.project_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY l.loaded_at DESC, l.rowid DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing load logs: %w", err)
	}
	defer rows.Close()

	var out []*domain.LoadLogEntry
	for rows.Next() {
		var e domain.LoadLogEntry
		var loadedAt string
		if err := rows.Scan(&e.ID, &e.PlanID, &e.Actor, &loadedAt, &e.Message, &e.FileName, &e.Sheet,
			&e.PlanCode, &e.ProjectTitle); err != nil {
			return nil, fmt.Errorf("scanning load log: %w", err)
		}
		if e.LoadedAt, err = parseTimestamp(loadedAt); err != nil {
			return nil, fmt.Errorf("parsing load log loaded_at: %w", err)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating load logs: %w", err)
	}
	return out, nil
}
