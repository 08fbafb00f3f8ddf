package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alexanderramin/poa/internal/catalog"
	"github.com/alexanderramin/poa/internal/db"
	"github.com/alexanderramin/poa/internal/domain"
	"github.com/alexanderramin/poa/internal/repository"
)

type catalogService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewCatalogService(uow db.UnitOfWork, observers ...UseCaseObserver) CatalogService {
	return &catalogService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// catalogTx holds the tx-scoped repositories and the ids resolved so far.
type catalogTx struct {
	projectTypes repository.ProjectTypeRepo
	planTypes    repository.PlanTypeRepo
	projects     repository.ProjectRepo
	plans        repository.PlanRepo
	codes        repository.CatalogRepo

	projectTypeIDs map[string]string
	planTypeIDs    map[string]string
	projectIDs     map[string]string
	result         CatalogResult
}

// Load creates the catalog entries that do not exist yet, matching by code
// (and by description for budget item codes). Everything is written in a
// single transaction.
func (s *catalogService) Load(ctx context.Context, c *catalog.Catalog) (result *CatalogResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "load-catalog", time.Now().UTC(), fields, &err)

	if err = c.Check(); err != nil {
		return nil, err
	}

	var ct *catalogTx
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		ct = &catalogTx{
			projectTypes:   repository.NewSQLiteProjectTypeRepo(tx),
			planTypes:      repository.NewSQLitePlanTypeRepo(tx),
			projects:       repository.NewSQLiteProjectRepo(tx),
			plans:          repository.NewSQLitePlanRepo(tx),
			codes:          repository.NewSQLiteCatalogRepo(tx),
			projectTypeIDs: make(map[string]string),
			planTypeIDs:    make(map[string]string),
			projectIDs:     make(map[string]string),
		}
		return ct.load(ctx, c)
	})
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	fields["created"] = ct.result
	return &ct.result, nil
}

func (ct *catalogTx) load(ctx context.Context, c *catalog.Catalog) error {
	for _, e := range c.ProjectTypes {
		if err := ct.projectType(ctx, e); err != nil {
			return err
		}
	}
	for _, e := range c.PlanTypes {
		if err := ct.planType(ctx, e); err != nil {
			return err
		}
	}
	for _, e := range c.Projects {
		if err := ct.project(ctx, e); err != nil {
			return err
		}
	}
	for _, e := range c.Plans {
		if err := ct.plan(ctx, e); err != nil {
			return err
		}
	}
	for _, e := range c.BudgetItems {
		if err := ct.budgetItem(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (ct *catalogTx) projectType(ctx context.Context, e catalog.TypeEntry) error {
	existing, err := ct.projectTypes.GetByCode(ctx, e.Code)
	if err == nil {
		ct.projectTypeIDs[e.Code] = existing.ID
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	pt := &domain.ProjectType{ID: uuid.New().String(), Code: e.Code, Name: e.Name}
	if err := ct.projectTypes.Create(ctx, pt); err != nil {
		return err
	}
	ct.projectTypeIDs[e.Code] = pt.ID
	ct.result.ProjectTypes++
	return nil
}

func (ct *catalogTx) planType(ctx context.Context, e catalog.TypeEntry) error {
	existing, err := ct.planTypes.GetByCode(ctx, e.Code)
	if err == nil {
		ct.planTypeIDs[e.Code] = existing.ID
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	pt := &domain.PlanType{ID: uuid.New().String(), Code: e.Code, Name: e.Name}
	if err := ct.planTypes.Create(ctx, pt); err != nil {
		return err
	}
	ct.planTypeIDs[e.Code] = pt.ID
	ct.result.PlanTypes++
	return nil
}

func (ct *catalogTx) project(ctx context.Context, e catalog.ProjectEntry) error {
	existing, err := ct.projects.GetByCode(ctx, e.Code)
	if err == nil {
		ct.projectIDs[e.Code] = existing.ID
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	p := &domain.Project{
		ID:            uuid.New().String(),
		Code:          e.Code,
		Title:         e.Title,
		ProjectTypeID: ct.projectTypeIDs[e.Type],
	}
	if err := ct.projects.Create(ctx, p); err != nil {
		return err
	}
	ct.projectIDs[e.Code] = p.ID
	ct.result.Projects++
	return nil
}

func (ct *catalogTx) plan(ctx context.Context, e catalog.PlanEntry) error {
	_, err := ct.plans.GetByCode(ctx, e.Code)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	p := &domain.Plan{
		ID:         e.ID,
		ProjectID:  ct.projectIDs[e.Project],
		PeriodID:   e.Period,
		PlanTypeID: ct.planTypeIDs[e.PlanType],
		Code:       e.Code,
		Year:       e.Year,
		Status:     domain.PlanStatus(e.Status),
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if e.AssignedBudget != "" {
		p.AssignedBudget = decimal.RequireFromString(e.AssignedBudget)
	}
	if err := ct.plans.Create(ctx, p); err != nil {
		return err
	}
	ct.result.Plans++
	return nil
}

func (ct *catalogTx) budgetItem(ctx context.Context, e catalog.BudgetItemEntry) error {
	code, err := ct.codes.FindCode(ctx, e.Code, e.Description)
	if errors.Is(err, domain.ErrNotFound) {
		code = &domain.BudgetItemCode{ID: uuid.New().String(), Code: e.Code, Description: e.Description}
		if err = ct.codes.CreateCode(ctx, code); err == nil {
			ct.result.Codes++
		}
	}
	if err != nil {
		return err
	}

	for _, d := range e.Details {
		detail, err := ct.codes.FindDetail(ctx, code.ID, d.Name)
		if errors.Is(err, domain.ErrNotFound) {
			detail = &domain.TaskDetail{
				ID:               uuid.New().String(),
				BudgetItemCodeID: code.ID,
				Name:             d.Name,
				Description:      d.Description,
			}
			if err = ct.codes.CreateDetail(ctx, detail); err == nil {
				ct.result.Details++
			}
		}
		if err != nil {
			return err
		}
		for _, pt := range d.PlanTypes {
			if err := ct.codes.LinkPlanType(ctx, ct.planTypeIDs[pt], detail.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
