package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/poa/internal/domain"
	"github.com/alexanderramin/poa/internal/testutil"
)

func TestTaskRepo_CreateAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.Seed(t, database)
	ctx := context.Background()
	a := testutil.NewTestActivity(testutil.SeedResearchPlanID, "(1) Compras")
	require.NoError(t, NewSQLiteActivityRepo(database).Create(ctx, a))
	repo := NewSQLiteTaskRepo(database)

	task := testutil.NewTestTask(a.ID, testutil.SeedFeesDetailID, "1.1 Servicios profesionales",
		testutil.WithCost("3", "33.3333"), testutil.WithTaskPosition(1))
	require.NoError(t, repo.Create(ctx, task))

	list, err := repo.ListByActivity(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "99.9999", list[0].Total.String())
	assert.Equal(t, "33.3333", list[0].UnitPrice.String())
	assert.Equal(t, testutil.SeedFeesDetailID, list[0].TaskDetailID)

	bad := testutil.NewTestTask(a.ID, "missing-detail", "1.2 X")
	assert.Error(t, repo.Create(ctx, bad))
}

func TestTaskRepo_ListPositiveByActivities(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.Seed(t, database)
	ctx := context.Background()
	activities := NewSQLiteActivityRepo(database)
	repo := NewSQLiteTaskRepo(database)

	a1 := testutil.NewTestActivity(testutil.SeedResearchPlanID, "(1) Compras", testutil.WithPosition(1))
	a2 := testutil.NewTestActivity(testutil.SeedResearchPlanID, "(2) Difusión", testutil.WithPosition(2))
	require.NoError(t, activities.Create(ctx, a1))
	require.NoError(t, activities.Create(ctx, a2))

	printing := testutil.NewTestTask(a2.ID, testutil.SeedPrintDetailID, "2.1 Impresión de material", testutil.WithTaskPosition(1))
	fees := testutil.NewTestTask(a1.ID, testutil.SeedFeesDetailID, "1.1 Servicios profesionales", testutil.WithTaskPosition(1))
	free := testutil.NewTestTask(a1.ID, testutil.SeedFeesDetailID, "1.2 Voluntariado",
		testutil.WithCost("0", "10"), testutil.WithTaskPosition(2))
	for _, task := range []*domain.Task{printing, fees, free} {
		require.NoError(t, repo.Create(ctx, task))
	}

	got, err := repo.ListPositiveByActivities(ctx, []string{a1.ID, a2.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, fees.ID, got[0].Task.ID)
	assert.Equal(t, "730606", got[0].BudgetItemCode)
	assert.Equal(t, printing.ID, got[1].Task.ID)
	assert.Equal(t, "730204", got[1].BudgetItemCode)
}

func TestAllocationRepo(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.Seed(t, database)
	ctx := context.Background()
	a := testutil.NewTestActivity(testutil.SeedResearchPlanID, "(1) Compras")
	require.NoError(t, NewSQLiteActivityRepo(database).Create(ctx, a))
	task := testutil.NewTestTask(a.ID, testutil.SeedFeesDetailID, "1.1 Servicios profesionales")
	require.NoError(t, NewSQLiteTaskRepo(database).Create(ctx, task))
	repo := NewSQLiteAllocationRepo(database)

	for _, m := range []domain.Month{domain.December, domain.January, domain.July} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestAllocation(task.ID, m, "10.5")))
	}

	list, err := repo.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []domain.Month{domain.January, domain.July, domain.December},
		[]domain.Month{list[0].Month, list[1].Month, list[2].Month})

	err = repo.Create(ctx, testutil.NewTestAllocation(task.ID, domain.Month("january"), "1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid month")

	err = repo.Create(ctx, testutil.NewTestAllocation(task.ID, domain.January, "1"))
	assert.Error(t, err, "one allocation per task and month")

	byTasks, err := repo.ListByTasks(ctx, []string{task.ID})
	require.NoError(t, err)
	assert.Len(t, byTasks, 3)
}
