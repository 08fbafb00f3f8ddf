package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/poa/internal/testutil"
)

func TestReadSheet_XLSSheetsWithMissingRows(t *testing.T) {
	content := testutil.ReadFixture(t, testutil.XLSThreeSheetsFixture)

	wb, err := OpenWorkbook("legacy.xls", content)
	require.NoError(t, err)
	assert.Equal(t, []string{"Test sheet 1", "Test sheet 2", "Sheet3"}, wb.SheetNames())

	for _, name := range wb.SheetNames() {
		_, err := wb.ReadSheet(name)
		require.NoError(t, err, "sheet %s", name)
	}

	s, err := wb.ReadSheet("Test sheet 1")
	require.NoError(t, err)
	assert.Equal(t, "Test1", s.Cell(0, 0).Text)
	assert.Equal(t, "Avocado", s.Cell(1, 0).Text)
	// Cells under a user-defined "GENERAL" format stay numbers.
	require.Equal(t, CellNumber, s.Cell(1, 1).Kind)
	assert.Equal(t, "1", s.Cell(1, 1).Number.String())
	assert.Equal(t, "5", s.Cell(2, 2).Number.String())
	// Row 4 holds formulas; their cached results are read.
	require.Equal(t, CellNumber, s.Cell(3, 1).Kind)
	assert.Equal(t, "4", s.Cell(3, 1).Number.String())
	assert.Equal(t, "7", s.Cell(3, 2).Number.String())
	assert.Equal(t, CellEmpty, s.Cell(2, 0).Kind)

	empty, err := wb.ReadSheet("Sheet3")
	require.NoError(t, err)
	assert.Zero(t, empty.NumRows())
}

func TestReadSheet_XLSPlanCells(t *testing.T) {
	content := testutil.ReadFixture(t, testutil.XLSPlanFixture)

	s, err := ReadSheet("poa.xls", content, testutil.PlanSheetName)
	require.NoError(t, err)

	for col := 0; col < minColumns; col++ {
		assert.Equal(t, CellEmpty, s.Cell(0, col).Kind)
		assert.Equal(t, CellEmpty, s.Cell(4, col).Kind)
	}
	assert.Equal(t, "PLAN OPERATIVO ANUAL 2025 – Proyecto de Investigación", s.Cell(1, 1).Text)
	assert.Equal(t, "SUMAN", s.Cell(7, 23).Text)

	jan := s.Cell(7, 11)
	require.Equal(t, CellDate, jan.Kind)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), jan.Date)
	jul := s.Cell(7, 17)
	require.Equal(t, CellDate, jul.Kind)
	assert.Equal(t, time.July, jul.Date.Month())

	activityTotal := s.Cell(8, 10)
	require.Equal(t, CellNumber, activityTotal.Kind)
	assert.Equal(t, "600", activityTotal.Number.String())
	assert.Equal(t, "600", s.Cell(9, 9).Number.String())
	assert.Equal(t, "300", s.Cell(9, 8).Number.String())
	assert.Equal(t, "300", s.Cell(9, 13).Number.String())
	assert.Equal(t, "730204", s.Cell(12, 6).Number.String())
	assert.Equal(t, "Trípticos", s.Cell(12, 4).Text)

	stringResult := s.Cell(13, 2)
	require.Equal(t, CellText, stringResult.Kind)
	assert.Equal(t, "Total", stringResult.Text)

	_, err = ReadSheet("poa.xls", content, "Notas")
	require.NoError(t, err)
}

func TestParse_XLSPlan(t *testing.T) {
	content := testutil.ReadFixture(t, testutil.XLSPlanFixture)

	layout, plan, err := Parse("poa.xls", content, testutil.PlanSheetName)
	require.NoError(t, err)
	require.Len(t, layout.Months, 12)
	assert.Equal(t, "2025-01-01", layout.Months[0].Label)
	assert.Equal(t, "2025-12-01", layout.Months[11].Label)

	require.Len(t, plan.Activities, 2)
	first := plan.Activities[0]
	assert.Equal(t, "(1) Contratación", first.Description)
	assert.Equal(t, 1, first.Ordinal)
	assert.True(t, first.Total.Equal(dec("600")))
	require.Len(t, first.Tasks, 1)
	task := first.Tasks[0]
	assert.Equal(t, 10, task.Row)
	assert.Equal(t, "1.1 Servicios profesionales", task.Name)
	assert.Equal(t, "730606", task.CodeText)
	assert.True(t, task.Quantity.Equal(dec("2")))
	assert.True(t, task.UnitPrice.Equal(dec("300")))
	assert.True(t, task.RowTotal.Equal(dec("600")))
	assert.Len(t, task.Monthly, 2)
	assert.True(t, task.Monthly["2025-03-01"].Equal(dec("300")))
	assert.True(t, task.Monthly["2025-04-01"].Equal(dec("300")))

	second := plan.Activities[1]
	assert.Equal(t, 2, second.Ordinal)
	require.Len(t, second.Tasks, 1)
	assert.Equal(t, "Trípticos", second.Tasks[0].DetailText)
	assert.True(t, second.Tasks[0].Monthly["2025-06-01"].Equal(dec("150")))

	assert.True(t, plan.Total.Equal(dec("750")))
	assert.True(t, plan.Monthly["2025-03-01"].Equal(dec("300")))
	assert.Equal(t, 2, plan.TaskCount())
}

func TestOpenWorkbook_XLSRejectsNonCompoundFile(t *testing.T) {
	_, err := OpenWorkbook("poa.xls", []byte("plain text, not a workbook"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening xls workbook")
}

func TestRKValue(t *testing.T) {
	assert.Equal(t, 730204.0, rkValue(730204<<2|0x02))
	negative := int32(-3)
	assert.Equal(t, -3.0, rkValue(uint32(negative<<2)|0x02))
	assert.Equal(t, 1.5, rkValue(150<<2|0x03))
	assert.Equal(t, 1.0, rkValue(0x3FF00000))
}
