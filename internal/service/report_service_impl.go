package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/poa/internal/domain"
	"github.com/alexanderramin/poa/internal/report"
	"github.com/alexanderramin/poa/internal/repository"
)

type reportService struct {
	plans       repository.PlanRepo
	activities  repository.ActivityRepo
	tasks       repository.TaskRepo
	allocations repository.AllocationRepo
	observer    UseCaseObserver
}

func NewReportService(
	plans repository.PlanRepo,
	activities repository.ActivityRepo,
	tasks repository.TaskRepo,
	allocations repository.AllocationRepo,
	observers ...UseCaseObserver,
) ReportService {
	return &reportService{
		plans:       plans,
		activities:  activities,
		tasks:       tasks,
		allocations: allocations,
		observer:    useCaseObserverOrNoop(observers),
	}
}

// Build loads the year's plans in the category and aggregates them. Each
// step only reads rows selected by the previous one, so an empty step
// short-circuits into an empty report.
func (s *reportService) Build(ctx context.Context, year, category string) (r *report.Report, err error) {
	fields := map[string]any{"year": year, "category": category}
	defer observe(ctx, s.observer, "build-report", time.Now().UTC(), fields, &err)

	var cat domain.Category
	cat, err = domain.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	in := report.Input{Year: year, Category: cat}

	var plans []repository.ReportPlan
	plans, err = s.plans.ListForReport(ctx, year, cat.TypeCodes())
	if err != nil {
		return nil, fmt.Errorf("loading plans: %w", err)
	}
	planIDs := make([]string, len(plans))
	for i, p := range plans {
		planIDs[i] = p.PlanID
		in.Plans = append(in.Plans, report.PlanRef{
			ID:              p.PlanID,
			ProjectTypeCode: p.ProjectTypeCode,
			ProjectTypeName: p.ProjectTypeName,
		})
	}

	in.Activities, err = s.activities.ListPositiveByPlans(ctx, planIDs)
	if err != nil {
		return nil, fmt.Errorf("loading activities: %w", err)
	}
	activityIDs := make([]string, len(in.Activities))
	for i, a := range in.Activities {
		activityIDs[i] = a.ID
	}

	var tasks []repository.ReportTask
	tasks, err = s.tasks.ListPositiveByActivities(ctx, activityIDs)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	taskIDs := make([]string, len(tasks))
	for i, t := range tasks {
		taskIDs[i] = t.Task.ID
		in.Tasks = append(in.Tasks, report.TaskRef{Task: t.Task, BudgetItemCode: t.BudgetItemCode})
	}

	in.Allocations, err = s.allocations.ListByTasks(ctx, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("loading allocations: %w", err)
	}

	r = report.Aggregate(in)
	fields["plans"] = r.PlanCount
	fields["activity_groups"] = len(r.Activities)
	return r, nil
}
