package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// Legacy .xls fixtures in testdata/:
//
//	poa_plan.xls     sheet "POA" holds the plan template with blank rows above
//	                 the header, January-June headers under date format 14,
//	                 July-December under "mmmm", amounts under a currency
//	                 format and every total as a formula with its cached
//	                 result. Its content matches the two-activity plan used
//	                 by the service tests. Sheet "Notas" is empty.
//	three_sheets.xls an Excel-saved workbook with two small sheets and an
//	                 empty third one.
const (
	XLSPlanFixture        = "poa_plan.xls"
	XLSThreeSheetsFixture = "three_sheets.xls"
)

// ReadFixture returns the bytes of a file in testutil/testdata.
func ReadFixture(t *testing.T, name string) []byte {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("locating testdata for %s", name)
	}
	data, err := os.ReadFile(filepath.Join(filepath.Dir(file), "testdata", name))
	if err != nil {
		t.Fatalf("reading fixture %s: %v", name, err)
	}
	return data
}
