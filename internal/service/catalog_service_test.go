package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/poa/internal/catalog"
	"github.com/alexanderramin/poa/internal/repository"
	"github.com/alexanderramin/poa/internal/testutil"
)

const catalogYAML = `
project_types:
  - {code: PIS, name: Investigación semilla}
plan_types:
  - {code: PIS, name: POA semilla}
projects:
  - {code: PIS-010, title: Riego por goteo, type: PIS}
plans:
  - {id: plan-010, code: POA-PIS-010-2025, project: PIS-010, year: "2025", plan_type: PIS, assigned_budget: "1500.75"}
budget_items:
  - code: "730606"
    description: Honorarios
    details:
      - {name: Servicios profesionales, plan_types: [PIS]}
      - {name: Asistencia técnica}
`

func TestCatalogService_LoadIsIdempotent(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	c, err := catalog.Parse([]byte(catalogYAML))
	require.NoError(t, err)
	svc := NewCatalogService(testutil.NewTestUoW(database))

	first, err := svc.Load(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, CatalogResult{ProjectTypes: 1, PlanTypes: 1, Projects: 1, Plans: 1, Codes: 1, Details: 2}, *first)

	second, err := svc.Load(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, CatalogResult{}, *second)

	plan, err := repository.NewSQLitePlanRepo(database).GetByID(ctx, "plan-010")
	require.NoError(t, err)
	assert.Equal(t, "POA-PIS-010-2025", plan.Code)
	assert.Equal(t, "1500.75", plan.AssignedBudget.String())
	assert.Equal(t, 1, testutil.CountRows(t, database, "plan_type_task_details"))
}

func TestCatalogService_SeededCodesReused(t *testing.T) {
	database := seededDB(t)
	ctx := context.Background()
	c := &catalog.Catalog{
		BudgetItems: []catalog.BudgetItemEntry{{
			Code:        "730606",
			Description: "Honorarios",
			Details:     []catalog.DetailEntry{{Name: "Servicios profesionales"}, {Name: "Peritajes"}},
		}},
	}

	result, err := NewCatalogService(testutil.NewTestUoW(database)).Load(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Codes)
	assert.Equal(t, 1, result.Details)
}

func TestCatalogService_RejectsInvalidCatalog(t *testing.T) {
	database := testutil.NewTestDB(t)
	c := &catalog.Catalog{Projects: []catalog.ProjectEntry{{Code: "X", Title: "X", Type: "NOPE"}}}

	_, err := NewCatalogService(testutil.NewTestUoW(database)).Load(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown project type")
	assert.Zero(t, testutil.CountRows(t, database, "projects"))
}
