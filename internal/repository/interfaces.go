package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/poa/internal/domain"
)

// ReportPlan is a plan selected for a report together with the type of
// the project that owns it.
type ReportPlan struct {
	PlanID          string
	PlanCode        string
	ProjectTypeCode string
	ProjectTypeName string
}

// ReportTask is a task joined with the budget item code of its catalog entry.
type ReportTask struct {
	Task           domain.Task
	BudgetItemCode string
}

// LoadLogFilter bounds a load audit listing. To is inclusive of the whole day.
type LoadLogFilter struct {
	From *time.Time
	To   *time.Time
}

type ProjectTypeRepo interface {
	Create(ctx context.Context, pt *domain.ProjectType) error
	GetByCode(ctx context.Context, code string) (*domain.ProjectType, error)
	List(ctx context.Context) ([]*domain.ProjectType, error)
}

type PlanTypeRepo interface {
	Create(ctx context.Context, pt *domain.PlanType) error
	GetByCode(ctx context.Context, code string) (*domain.PlanType, error)
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByCode(ctx context.Context, code string) (*domain.Project, error)
}

type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	GetByCode(ctx context.Context, code string) (*domain.Plan, error)
	ListForReport(ctx context.Context, year string, projectTypeCodes []string) ([]ReportPlan, error)
}

type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	ListByPlan(ctx context.Context, planID string) ([]*domain.Activity, error)
	CountByPlan(ctx context.Context, planID string) (int, error)
	DeleteByPlan(ctx context.Context, planID string) (int64, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	ListPositiveByPlans(ctx context.Context, planIDs []string) ([]*domain.Activity, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	ListByActivity(ctx context.Context, activityID string) ([]*domain.Task, error)
	ListPositiveByActivities(ctx context.Context, activityIDs []string) ([]ReportTask, error)
}

type AllocationRepo interface {
	Create(ctx context.Context, a *domain.MonthlyAllocation) error
	ListByTask(ctx context.Context, taskID string) ([]*domain.MonthlyAllocation, error)
	ListByTasks(ctx context.Context, taskIDs []string) ([]*domain.MonthlyAllocation, error)
}

// CatalogRepo holds budget item codes and their task details.
type CatalogRepo interface {
	CreateCode(ctx context.Context, c *domain.BudgetItemCode) error
	FindCode(ctx context.Context, code, description string) (*domain.BudgetItemCode, error)
	ListCodesByValue(ctx context.Context, code string) ([]*domain.BudgetItemCode, error)
	CreateDetail(ctx context.Context, d *domain.TaskDetail) error
	FindDetail(ctx context.Context, codeID, name string) (*domain.TaskDetail, error)
	ListDetailsByCode(ctx context.Context, codeID string) ([]*domain.TaskDetail, error)
	LinkPlanType(ctx context.Context, planTypeID, detailID string) error
}

type LoadLogRepo interface {
	Create(ctx context.Context, l *domain.LoadLog) error
	List(ctx context.Context, filter LoadLogFilter) ([]*domain.LoadLogEntry, error)
}
