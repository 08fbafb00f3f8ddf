package service

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/poa/internal/db"
	"github.com/alexanderramin/poa/internal/repository"
	"github.com/alexanderramin/poa/internal/testutil"
)

func newImportServiceWith(database *sql.DB, uow db.UnitOfWork) ImportService {
	return NewImportService(
		repository.NewSQLitePlanRepo(database),
		repository.NewSQLiteActivityRepo(database),
		repository.NewSQLiteCatalogRepo(database),
		uow,
	)
}

func newReportService(database *sql.DB) ReportService {
	return NewReportService(
		repository.NewSQLitePlanRepo(database),
		repository.NewSQLiteActivityRepo(database),
		repository.NewSQLiteTaskRepo(database),
		repository.NewSQLiteAllocationRepo(database),
	)
}

// seededDB returns a database holding the standard reference data.
func seededDB(t *testing.T) *sql.DB {
	t.Helper()
	database := testutil.NewTestDB(t)
	testutil.Seed(t, database)
	return database
}

// twoActivitySheet has two activities with one matching task each:
//
//	(1) Contratación   -> 1.1 Servicios profesionales, 730606, 2 x 300, marzo 300 + abril 300
//	(2) Difusión       -> 2.1 Impresión de material,   730204, 1 x 150, junio 150
func twoActivitySheet(t *testing.T) []byte {
	t.Helper()
	return testutil.NewPlanSheet(t).
		Activity("(1) Contratación", 600).
		Task(testutil.TaskRow{
			Name: "1.1 Servicios profesionales", Code: 730606,
			Quantity: 2, Price: 300, Total: 600,
			Months: map[int]any{3: 300, 4: 300}, Declared: 600,
		}).
		Activity("(2) Difusión", 150).
		Task(testutil.TaskRow{
			Name: "2.1 Impresión de material", Detail: "Trípticos", Code: 730204,
			Quantity: 1, Price: 150, Total: 150,
			Months: map[int]any{6: 150},
		}).
		GrandTotal(750, map[int]any{3: 300, 4: 300, 6: 150}).
		Bytes()
}

func importRequest(content []byte, planID string) ImportRequest {
	return ImportRequest{
		FileName: "poa.xlsx",
		Content:  content,
		Sheet:    testutil.PlanSheetName,
		PlanID:   planID,
		Actor:    "tester",
	}
}
