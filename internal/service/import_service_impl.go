package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexanderramin/poa/internal/db"
	"github.com/alexanderramin/poa/internal/domain"
	"github.com/alexanderramin/poa/internal/importer"
	"github.com/alexanderramin/poa/internal/matcher"
	"github.com/alexanderramin/poa/internal/repository"
)

// defaultActor is recorded in load logs when the request names no actor.
const defaultActor = "poa"

type importService struct {
	plans      repository.PlanRepo
	activities repository.ActivityRepo
	catalog    repository.CatalogRepo
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

// NewImportService builds the spreadsheet import flow. The repositories
// are used for reads outside transactions; writes go through uow.
func NewImportService(
	plans repository.PlanRepo,
	activities repository.ActivityRepo,
	catalog repository.CatalogRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ImportService {
	return &importService{
		plans:      plans,
		activities: activities,
		catalog:    catalog,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *importService) Import(ctx context.Context, req ImportRequest) (result *ImportResult, err error) {
	fields := map[string]any{
		"file":  req.FileName,
		"sheet": req.Sheet,
		"plan":  req.PlanID,
	}
	defer observe(ctx, s.observer, "import-plan", time.Now().UTC(), fields, &err)

	if err = importer.CheckExtension(req.FileName); err != nil {
		return nil, err
	}

	var plan *domain.Plan
	plan, err = s.resolvePlan(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	var existing int
	existing, err = s.activities.CountByPlan(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("checking existing activities: %w", err)
	}
	fields["existing_activities"] = existing

	var layout *importer.Layout
	var parsed *importer.ParsedPlan
	layout, parsed, err = importer.Parse(req.FileName, req.Content, req.Sheet)
	if err != nil {
		return nil, err
	}

	if existing > 0 && !req.Confirm {
		fields["requires_confirmation"] = true
		return &ImportResult{
			RequiresConfirmation: true,
			Message: fmt.Sprintf("plan %s already has %d activities; importing will delete them and their tasks. Confirm to continue.",
				plan.Code, existing),
			PlanID:             plan.ID,
			PlanCode:           plan.Code,
			ExistingActivities: existing,
		}, nil
	}

	tx := newImportTx(s.uow, plan, req)
	result = &ImportResult{PlanID: plan.ID, PlanCode: plan.Code, ExistingActivities: existing}
	if existing > 0 {
		result.ReplacedActivities, err = tx.replaceExisting(ctx)
		if err != nil {
			return nil, err
		}
	}

	if err = s.persist(ctx, tx, layout, parsed, result); err != nil {
		err = s.abort(ctx, tx, err)
		return nil, err
	}

	result.Message = fmt.Sprintf("Loaded %d activities, %d tasks and %d monthly allocations into plan %s",
		result.ActivityCount, result.TaskCount, result.AllocationCount, plan.Code)
	if err = tx.finish(ctx, result.Message); err != nil {
		err = s.abort(ctx, tx, err)
		return nil, err
	}

	fields["activities"] = result.ActivityCount
	fields["tasks"] = result.TaskCount
	fields["allocations"] = result.AllocationCount
	return result, nil
}

// resolvePlan looks the plan up by id, then by code.
func (s *importService) resolvePlan(ctx context.Context, ref string) (*domain.Plan, error) {
	plan, err := s.plans.GetByID(ctx, ref)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("loading plan: %w", err)
	}
	plan, err = s.plans.GetByCode(ctx, ref)
	if err == nil {
		return plan, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return nil, &domain.PlanNotFoundError{PlanID: ref}
	}
	return nil, fmt.Errorf("loading plan: %w", err)
}

// persist writes activities and tasks in sheet order. Catalog reads happen
// between checkpoints, never inside an open transaction.
func (s *importService) persist(ctx context.Context, tx *importTx, layout *importer.Layout, parsed *importer.ParsedPlan, result *ImportResult) error {
	m := matcher.New(s.catalog)
	for i, pa := range parsed.Activities {
		activity := &domain.Activity{
			ID:          uuid.New().String(),
			PlanID:      tx.plan.ID,
			Description: pa.Description,
			Total:       pa.Total,
			Balance:     pa.Total,
			Position:    i + 1,
		}
		if err := tx.addActivity(ctx, activity); err != nil {
			return err
		}
		result.ActivityCount++

		for j, pt := range pa.Tasks {
			match, err := m.Resolve(ctx, pt.CodeText, pt.Name)
			if err != nil {
				return err
			}
			task := domain.NewTask(activity.ID, match.Detail.ID, pt.Name, pt.DetailText, pt.Quantity, pt.UnitPrice, j+1)
			task.ID = uuid.New().String()
			allocs := allocationsFor(layout, task.ID, pt.Monthly)
			if err := tx.addTask(ctx, task, allocs); err != nil {
				return err
			}
			result.TaskCount++
			result.AllocationCount += len(allocs)
		}
	}
	return nil
}

// abort undoes the request's writes. The cause is returned as an
// ImportError only when the compensating delete succeeded.
func (s *importService) abort(ctx context.Context, tx *importTx, cause error) error {
	if err := tx.compensate(ctx, cause); err != nil {
		return fmt.Errorf("import failed: %w (removing partial data also failed: %v)", cause, err)
	}
	return &domain.ImportError{Cause: cause}
}

// allocationsFor maps header labels to canonical months, sums labels that
// resolve to the same month and returns allocations in calendar order.
func allocationsFor(layout *importer.Layout, taskID string, monthly map[string]decimal.Decimal) []*domain.MonthlyAllocation {
	byMonth := make(map[domain.Month]decimal.Decimal, len(monthly))
	for label, amount := range monthly {
		month, ok := layout.MonthOf(label)
		if !ok {
			continue
		}
		byMonth[month] = byMonth[month].Add(amount)
	}

	out := make([]*domain.MonthlyAllocation, 0, len(byMonth))
	for _, month := range domain.Months {
		amount, ok := byMonth[month]
		if !ok {
			continue
		}
		out = append(out, &domain.MonthlyAllocation{
			ID:     uuid.New().String(),
			TaskID: taskID,
			Month:  month,
			Amount: amount,
		})
	}
	return out
}
