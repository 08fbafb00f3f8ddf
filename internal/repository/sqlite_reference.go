package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/poa/internal/db"
	"github.com/alexanderramin/poa/internal/domain"
)

type SQLiteProjectTypeRepo struct {
	db db.DBTX
}

func NewSQLiteProjectTypeRepo(conn db.DBTX) *SQLiteProjectTypeRepo {
	return &SQLiteProjectTypeRepo{db: conn}
}

func (r *SQLiteProjectTypeRepo) Create(ctx context.Context, pt *domain.ProjectType) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_types (id, code, name) VALUES (?, ?, ?)`,
		pt.ID, pt.Code, pt.Name)
	if err != nil {
		return fmt.Errorf("inserting project type: %w", err)
	}
	return nil
}

func (r *SQLiteProjectTypeRepo) GetByCode(ctx context.Context, code string) (*domain.ProjectType, error) {
	var pt domain.ProjectType
	err := r.db.QueryRowContext(ctx,
		`SELECT id, code, name FROM project_types WHERE code = ?`, code).
		Scan(&pt.ID, &pt.Code, &pt.Name)
	if err != nil {
		return nil, notFound(err, "project type")
	}
	return &pt, nil
}

func (r *SQLiteProjectTypeRepo) List(ctx context.Context) ([]*domain.ProjectType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, code, name FROM project_types ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("listing project types: %w", err)
	}
	defer rows.Close()

	var out []*domain.ProjectType
	for rows.Next() {
		var pt domain.ProjectType
		if err := rows.Scan(&pt.ID, &pt.Code, &pt.Name); err != nil {
			return nil, fmt.Errorf("scanning project type: %w", err)
		}
		out = append(out, &pt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project types: %w", err)
	}
	return out, nil
}

type SQLitePlanTypeRepo struct {
	db db.DBTX
}

func NewSQLitePlanTypeRepo(conn db.DBTX) *SQLitePlanTypeRepo {
	return &SQLitePlanTypeRepo{db: conn}
}

func (r *SQLitePlanTypeRepo) Create(ctx context.Context, pt *domain.PlanType) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plan_types (id, code, name) VALUES (?, ?, ?)`,
		pt.ID, pt.Code, pt.Name)
	if err != nil {
		return fmt.Errorf("inserting plan type: %w", err)
	}
	return nil
}

func (r *SQLitePlanTypeRepo) GetByCode(ctx context.Context, code string) (*domain.PlanType, error) {
	var pt domain.PlanType
	err := r.db.QueryRowContext(ctx,
		`SELECT id, code, name FROM plan_types WHERE code = ?`, code).
		Scan(&pt.ID, &pt.Code, &pt.Name)
	if err != nil {
		return nil, notFound(err, "plan type")
	}
	return &pt, nil
}

type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (id, code, title, project_type_id) VALUES (?, ?, ?, ?)`,
		p.ID, p.Code, p.Title, p.ProjectTypeID)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return r.get(ctx, `SELECT id, code, title, project_type_id FROM projects WHERE id = ?`, id)
}

func (r *SQLiteProjectRepo) GetByCode(ctx context.Context, code string) (*domain.Project, error) {
	return r.get(ctx, `SELECT id, code, title, project_type_id FROM projects WHERE code = ?`, code)
}

func (r *SQLiteProjectRepo) get(ctx context.Context, query string, arg string) (*domain.Project, error) {
	var p domain.Project
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&p.ID, &p.Code, &p.Title, &p.ProjectTypeID)
	if err != nil {
		return nil, notFound(err, "project")
	}
	return &p, nil
}
