package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/poa/internal/repository"
	"github.com/alexanderramin/poa/internal/report"
	"github.com/alexanderramin/poa/internal/service"
	"github.com/alexanderramin/poa/internal/testutil"
)

// testApp wires a full App backed by a seeded in-memory DB.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)
	testutil.Seed(t, db)
	uow := testutil.NewTestUoW(db)

	planRepo := repository.NewSQLitePlanRepo(db)
	activityRepo := repository.NewSQLiteActivityRepo(db)

	return &App{
		Import: service.NewImportService(planRepo, activityRepo, repository.NewSQLiteCatalogRepo(db), uow),
		Reports: service.NewReportService(planRepo, activityRepo,
			repository.NewSQLiteTaskRepo(db), repository.NewSQLiteAllocationRepo(db)),
		LoadLogs: service.NewLoadLogService(repository.NewSQLiteLoadLogRepo(db)),
		Catalog:  service.NewCatalogService(uow),
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeWorkbook(t *testing.T) string {
	t.Helper()
	content := testutil.NewPlanSheet(t).
		Activity("(1) Contratación", 600).
		Task(testutil.TaskRow{
			Name: "1.1 Servicios profesionales", Code: 730606,
			Quantity: 2, Price: 300, Total: 600,
			Months: map[int]any{2: 600},
		}).
		GrandTotal(600, map[int]any{2: 600}).
		Bytes()
	path := filepath.Join(t.TempDir(), "poa-2025.xlsx")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func importArgs(path string, extra ...string) []string {
	return append([]string{"import", path, "--sheet", testutil.PlanSheetName, "--plan", testutil.SeedResearchPlanCode}, extra...)
}

func TestImportCmd_Success(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, importArgs(writeWorkbook(t))...)
	require.NoError(t, err)
	assert.Contains(t, out, "IMPORT COMPLETE")
	assert.Contains(t, out, testutil.SeedResearchPlanCode)
	assert.Contains(t, out, "poa-2025.xlsx")
}

func TestImportCmd_ConfirmationNonInteractive(t *testing.T) {
	app := testApp(t)
	path := writeWorkbook(t)
	_, err := executeCmd(t, app, importArgs(path)...)
	require.NoError(t, err)

	out, err := executeCmd(t, app, importArgs(path)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Confirmation required")
	assert.Contains(t, out, "--confirm")

	out, err = executeCmd(t, app, importArgs(path, "--json")...)
	require.NoError(t, err)
	var result service.ImportResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.RequiresConfirmation)
	assert.Equal(t, 1, result.ExistingActivities)

	out, err = executeCmd(t, app, importArgs(path, "--confirm")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Replaced")
}

func TestImportCmd_InteractivePrompt(t *testing.T) {
	app := testApp(t)
	path := writeWorkbook(t)
	_, err := executeCmd(t, app, importArgs(path)...)
	require.NoError(t, err)

	app.IsInteractive = func() bool { return true }
	var asked string
	app.Confirm = func(title, description string) (bool, error) {
		asked = description
		return false, nil
	}
	out, err := executeCmd(t, app, importArgs(path)...)
	require.NoError(t, err)
	assert.Contains(t, asked, testutil.SeedResearchPlanCode)
	assert.Contains(t, out, "Import cancelled")

	app.Confirm = func(string, string) (bool, error) { return true, nil }
	out, err = executeCmd(t, app, importArgs(path)...)
	require.NoError(t, err)
	assert.Contains(t, out, "IMPORT COMPLETE")
}

func TestImportCmd_Errors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "import", "missing.xlsx", "--sheet", "POA", "--plan", "x")
	assert.ErrorContains(t, err, "reading workbook")

	path := writeWorkbook(t)
	_, err = executeCmd(t, app, "import", path, "--sheet", "Hoja9", "--plan", testutil.SeedResearchPlanID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sheet "Hoja9" does not exist`)

	_, err = executeCmd(t, app, "import", path, "--plan", testutil.SeedResearchPlanID)
	assert.ErrorContains(t, err, "sheet")
}

func TestReportCmd(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, importArgs(writeWorkbook(t))...)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "report", "--year", "2025", "--category", "Investigacion")
	require.NoError(t, err)
	assert.Contains(t, out, "PROYECTO DE INVESTIGACIÓN 2025")
	assert.Contains(t, out, "1.1 Servicios profesionales")
	assert.Contains(t, out, "$600.00")
	assert.Contains(t, out, "Febrero")

	out, err = executeCmd(t, app, "report", "--year", "2025", "--category", "Investigacion", "--json")
	require.NoError(t, err)
	var r report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 1, r.PlanCount)
	assert.Equal(t, "600", r.GrandTotal.String())

	_, err = executeCmd(t, app, "report", "--year", "2025", "--category", "Arte")
	assert.ErrorContains(t, err, "invalid project category")
}

func TestReportAndExportFiles(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, importArgs(writeWorkbook(t))...)
	require.NoError(t, err)
	dir := t.TempDir()

	xlsxPath := filepath.Join(dir, "r.xlsx")
	out, err := executeCmd(t, app, "report", "--year", "2025", "--category", "Investigacion", "--xlsx", xlsxPath)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+xlsxPath)
	assert.FileExists(t, xlsxPath)

	jsonOut, err := executeCmd(t, app, "report", "--year", "2025", "--category", "Investigacion", "--json")
	require.NoError(t, err)
	jsonPath := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonOut), 0o644))

	pdfPath := filepath.Join(dir, "r.pdf")
	_, err = executeCmd(t, app, "export", "pdf", "--in", jsonPath, "--out", pdfPath)
	require.NoError(t, err)
	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	_, err = executeCmd(t, app, "export", "xlsx", "--in", filepath.Join(dir, "nope.json"))
	assert.ErrorContains(t, err, "reading report")
}

func TestLogsCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "logs")
	require.NoError(t, err)
	assert.Contains(t, out, "No load entries found.")

	_, err = executeCmd(t, app, importArgs(writeWorkbook(t))...)
	require.NoError(t, err)

	out, err = executeCmd(t, app, "logs")
	require.NoError(t, err)
	assert.Contains(t, out, testutil.SeedResearchPlanCode)
	assert.Contains(t, out, "Loaded 1 activities")

	out, err = executeCmd(t, app, "logs", "--from", "not-a-date")
	require.NoError(t, err)
	assert.Contains(t, out, "No load entries found.")
}

func TestCatalogLoadCmd(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project_types:
  - {code: PTT, name: Transferencia tecnológica}
projects:
  - {code: PTT-001, title: Secador solar, type: PTT}
plans:
  - {code: POA-PTT-001-2025, project: PTT-001, year: "2025"}
`), 0o644))

	out, err := executeCmd(t, app, "catalog", "load", path)
	require.NoError(t, err)
	assert.Contains(t, out, "projects")
	assert.Contains(t, out, "plans")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("projects:\n  - {code: X, title: X, type: NOPE}\n"), 0o644))
	_, err = executeCmd(t, app, "catalog", "load", bad)
	assert.ErrorContains(t, err, "catalog validation failed")
}
