package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/poa/internal/domain"
	"github.com/alexanderramin/poa/internal/testutil"
)

func TestActivityRepo_CreateListCount(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.Seed(t, database)
	repo := NewSQLiteActivityRepo(database)
	ctx := context.Background()

	second := testutil.NewTestActivity(testutil.SeedResearchPlanID, "(2) Difusión", testutil.WithPosition(2))
	first := testutil.NewTestActivity(testutil.SeedResearchPlanID, "(1) Compras", testutil.WithPosition(1),
		testutil.WithActivityTotal("250.50"))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	list, err := repo.ListByPlan(ctx, testutil.SeedResearchPlanID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, "250.5", list[0].Total.String())

	n, err := repo.CountByPlan(ctx, testutil.SeedResearchPlanID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.CountByPlan(ctx, testutil.SeedOutreachPlanID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestActivityRepo_DeleteCascades(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.Seed(t, database)
	ctx := context.Background()
	activities := NewSQLiteActivityRepo(database)
	tasks := NewSQLiteTaskRepo(database)
	allocs := NewSQLiteAllocationRepo(database)

	a := testutil.NewTestActivity(testutil.SeedResearchPlanID, "(1) Compras")
	keep := testutil.NewTestActivity(testutil.SeedOutreachPlanID, "(1) Talleres")
	require.NoError(t, activities.Create(ctx, a))
	require.NoError(t, activities.Create(ctx, keep))
	task := testutil.NewTestTask(a.ID, testutil.SeedFeesDetailID, "1.1 Servicios profesionales")
	require.NoError(t, tasks.Create(ctx, task))
	require.NoError(t, allocs.Create(ctx, testutil.NewTestAllocation(task.ID, domain.May, "50")))

	n, err := activities.DeleteByPlan(ctx, testutil.SeedResearchPlanID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Zero(t, testutil.CountRows(t, database, "tasks"))
	assert.Zero(t, testutil.CountRows(t, database, "monthly_allocations"))
	assert.Equal(t, 1, testutil.CountRows(t, database, "activities"))

	n, err = activities.DeleteByIDs(ctx, []string{keep.ID, "unknown"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = activities.DeleteByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestActivityRepo_ListPositiveByPlans(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.Seed(t, database)
	repo := NewSQLiteActivityRepo(database)
	ctx := context.Background()

	outreach := testutil.NewTestActivity(testutil.SeedOutreachPlanID, "(1) Talleres", testutil.WithPosition(1))
	zero := testutil.NewTestActivity(testutil.SeedResearchPlanID, "(3) Sin fondos", testutil.WithPosition(3),
		testutil.WithActivityTotal("0"))
	research := testutil.NewTestActivity(testutil.SeedResearchPlanID, "(1) Compras", testutil.WithPosition(1),
		testutil.WithActivityTotal("0.01"))
	for _, a := range []*domain.Activity{outreach, zero, research} {
		require.NoError(t, repo.Create(ctx, a))
	}

	got, err := repo.ListPositiveByPlans(ctx, []string{testutil.SeedResearchPlanID, testutil.SeedOutreachPlanID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Ordered by plan code: POA-PIS-... before POA-PVIF-...
	assert.Equal(t, research.ID, got[0].ID)
	assert.Equal(t, outreach.ID, got[1].ID)

	got, err = repo.ListPositiveByPlans(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
