package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/poa/internal/domain"
)

// Validate checks references and required fields. It returns every problem
// found.
func Validate(c *Catalog) []error {
	var errs []error

	projectTypes := make(map[string]bool)
	for i, pt := range c.ProjectTypes {
		errs = append(errs, validateType(fmt.Sprintf("project_types[%d]", i), pt, projectTypes)...)
	}
	planTypes := make(map[string]bool)
	for i, pt := range c.PlanTypes {
		errs = append(errs, validateType(fmt.Sprintf("plan_types[%d]", i), pt, planTypes)...)
	}

	projects := make(map[string]bool)
	for i, p := range c.Projects {
		field := fmt.Sprintf("projects[%d]", i)
		if p.Code == "" {
			errs = append(errs, fmt.Errorf("%s.code is required", field))
		} else if projects[p.Code] {
			errs = append(errs, fmt.Errorf("%s.code: duplicate %q", field, p.Code))
		}
		projects[p.Code] = true
		if p.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", field))
		}
		if !projectTypes[p.Type] {
			errs = append(errs, fmt.Errorf("%s.type: unknown project type %q", field, p.Type))
		}
	}

	for i, p := range c.Plans {
		errs = append(errs, validatePlan(fmt.Sprintf("plans[%d]", i), p, projects, planTypes)...)
	}

	for i, b := range c.BudgetItems {
		field := fmt.Sprintf("budget_items[%d]", i)
		if b.Code == "" {
			errs = append(errs, fmt.Errorf("%s.code is required", field))
		}
		for j, d := range b.Details {
			dfield := fmt.Sprintf("%s.details[%d]", field, j)
			if d.Name == "" {
				errs = append(errs, fmt.Errorf("%s.name is required", dfield))
			}
			for _, pt := range d.PlanTypes {
				if !planTypes[pt] {
					errs = append(errs, fmt.Errorf("%s.plan_types: unknown plan type %q", dfield, pt))
				}
			}
		}
	}

	return errs
}

func validateType(field string, t TypeEntry, seen map[string]bool) []error {
	var errs []error
	if t.Code == "" {
		errs = append(errs, fmt.Errorf("%s.code is required", field))
	} else if seen[t.Code] {
		errs = append(errs, fmt.Errorf("%s.code: duplicate %q", field, t.Code))
	}
	seen[t.Code] = true
	if t.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", field))
	}
	return errs
}

func validatePlan(field string, p PlanEntry, projects, planTypes map[string]bool) []error {
	var errs []error
	if p.Code == "" {
		errs = append(errs, fmt.Errorf("%s.code is required", field))
	}
	if !projects[p.Project] {
		errs = append(errs, fmt.Errorf("%s.project: unknown project %q", field, p.Project))
	}
	if p.Year == "" {
		errs = append(errs, fmt.Errorf("%s.year is required", field))
	}
	if p.PlanType != "" && !planTypes[p.PlanType] {
		errs = append(errs, fmt.Errorf("%s.plan_type: unknown plan type %q", field, p.PlanType))
	}
	if p.Status != "" && !domain.ValidPlanStatuses[p.Status] {
		errs = append(errs, fmt.Errorf("%s.status: invalid value %q", field, p.Status))
	}
	if p.AssignedBudget != "" {
		if _, err := decimal.NewFromString(p.AssignedBudget); err != nil {
			errs = append(errs, fmt.Errorf("%s.assigned_budget: invalid amount %q", field, p.AssignedBudget))
		}
	}
	return errs
}
