package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/alexanderramin/poa/internal/db"
	"github.com/alexanderramin/poa/internal/domain"
	"github.com/alexanderramin/poa/internal/repository"
)

// importTx threads one import through its checkpoint commits. Every
// activity committed by the request is tracked so a failure can be undone
// with a compensating delete.
type importTx struct {
	uow      db.UnitOfWork
	plan     *domain.Plan
	fileName string
	sheet    string
	actor    string
	created  []string
}

func newImportTx(uow db.UnitOfWork, plan *domain.Plan, req ImportRequest) *importTx {
	actor := req.Actor
	if actor == "" {
		actor = defaultActor
	}
	return &importTx{
		uow:      uow,
		plan:     plan,
		fileName: req.FileName,
		sheet:    req.Sheet,
		actor:    actor,
	}
}

// replaceExisting deletes the plan's activities and records the
// replacement in one transaction.
func (t *importTx) replaceExisting(ctx context.Context) (int64, error) {
	var deleted int64
	err := t.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		n, err := repository.NewSQLiteActivityRepo(tx).DeleteByPlan(ctx, t.plan.ID)
		if err != nil {
			return err
		}
		deleted = n
		msg := fmt.Sprintf("Deleted %d existing activities of plan %s before loading %s", n, t.plan.Code, t.fileName)
		return t.writeLog(ctx, tx, msg)
	})
	if err != nil {
		return 0, fmt.Errorf("replacing existing activities: %w", err)
	}
	return deleted, nil
}

func (t *importTx) addActivity(ctx context.Context, a *domain.Activity) error {
	err := t.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteActivityRepo(tx).Create(ctx, a)
	})
	if err != nil {
		return fmt.Errorf("saving activity %q: %w", a.Description, err)
	}
	t.created = append(t.created, a.ID)
	return nil
}

// addTask commits a task together with its allocations.
func (t *importTx) addTask(ctx context.Context, task *domain.Task, allocs []*domain.MonthlyAllocation) error {
	err := t.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteTaskRepo(tx).Create(ctx, task); err != nil {
			return err
		}
		allocRepo := repository.NewSQLiteAllocationRepo(tx)
		for _, a := range allocs {
			if err := allocRepo.Create(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving task %q: %w", task.Name, err)
	}
	return nil
}

func (t *importTx) finish(ctx context.Context, message string) error {
	err := t.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return t.writeLog(ctx, tx, message)
	})
	if err != nil {
		return fmt.Errorf("recording import: %w", err)
	}
	return nil
}

// compensate deletes every activity created by this request (tasks and
// allocations cascade) and records the rollback.
func (t *importTx) compensate(ctx context.Context, cause error) error {
	ctx = context.WithoutCancel(ctx)
	return t.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		n, err := repository.NewSQLiteActivityRepo(tx).DeleteByIDs(ctx, t.created)
		if err != nil {
			return err
		}
		msg := fmt.Sprintf("Import of %s into plan %s failed, deleted %d activities created by it: %v",
			t.fileName, t.plan.Code, n, cause)
		return t.writeLog(ctx, tx, msg)
	})
}

func (t *importTx) writeLog(ctx context.Context, tx db.DBTX, message string) error {
	return repository.NewSQLiteLoadLogRepo(tx).Create(ctx, &domain.LoadLog{
		ID:       uuid.New().String(),
		PlanID:   t.plan.ID,
		Actor:    t.actor,
		Message:  message,
		FileName: t.fileName,
		Sheet:    t.sheet,
	})
}
