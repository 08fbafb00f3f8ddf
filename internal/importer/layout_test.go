package importer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/poa/internal/domain"
	"github.com/alexanderramin/poa/internal/testutil"
)

func readTestSheet(t *testing.T, b *testutil.SheetBuilder) *Sheet {
	t.Helper()
	s, err := ReadSheet("plan.xlsx", b.Bytes(), testutil.PlanSheetName)
	require.NoError(t, err)
	return s
}

func TestValidateLayout_ValidTemplate(t *testing.T) {
	s := readTestSheet(t, testutil.NewPlanSheet(t))

	layout, err := ValidateLayout(s)
	require.NoError(t, err)
	require.Len(t, layout.Months, 12)
	assert.Equal(t, domain.January, layout.Months[0].Month)
	assert.Equal(t, "2025-01-01", layout.Months[0].Label)
	assert.Equal(t, domain.December, layout.Months[11].Month)
	assert.Equal(t, 22, layout.Months[11].Column)
}

func TestValidateLayout_TextDateHeaders(t *testing.T) {
	s := readTestSheet(t, testutil.NewPlanSheet(t).TextMonthHeaders())

	layout, err := ValidateLayout(s)
	require.NoError(t, err)
	m, ok := layout.MonthOf("2025-03-01")
	require.True(t, ok)
	assert.Equal(t, domain.March, m)
}

func TestValidateLayout_CaseInsensitiveAndPrefix(t *testing.T) {
	b := testutil.NewPlanSheet(t).
		Set("E8", "  descripción o detalle ").
		Set("H8", "Cantidad")
	_, err := ValidateLayout(readTestSheet(t, b))
	require.NoError(t, err)
}

func TestValidateLayout_CollectsEveryViolation(t *testing.T) {
	b := testutil.NewPlanSheet(t).
		Set("E8", "DESCRIPCION").
		Set("K7", "TOTAL").
		Set("M8", "febrero")

	_, err := ValidateLayout(readTestSheet(t, b))
	var mismatch *domain.LayoutMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Len(t, mismatch.Violations, 3)
	assert.Contains(t, mismatch.Violations[0], "E8")
	assert.Contains(t, mismatch.Violations[1], "K7")
	assert.Contains(t, mismatch.Violations[2], "M8")
	assert.Contains(t, err.Error(), "(3 problems)")
}

func TestValidateLayout_ShortSheetFailsEveryCheck(t *testing.T) {
	s := NewSheet("empty", [][]Cell{{TextCell("hola")}})

	_, err := ValidateLayout(s)
	var mismatch *domain.LayoutMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Len(t, mismatch.Violations, len(textRules)+monthColumns)
}

func TestHeaderDate_AcceptedForms(t *testing.T) {
	for _, s := range []string{"2025-04-01", "01/04/2025", "2025-04-01 00:00:00", "01/04/2025 00:00:00", "2025-04-01T00:00:00Z"} {
		d, ok := headerDate(TextCell(s))
		require.True(t, ok, s)
		assert.Equal(t, time.April, d.Month(), s)
	}
	_, ok := headerDate(NumberCell(decimal.NewFromInt(45658)))
	assert.False(t, ok, "plain numbers are not dates")
}

func TestIsDateFormatCode_Layout(t *testing.T) {
	assert.True(t, isDateFormatCode("dd/mm/yyyy"))
	assert.True(t, isDateFormatCode(`[$-409]mmm\-yy`))
	assert.False(t, isDateFormatCode(`#,##0.00 "days"`))
	assert.False(t, isDateFormatCode("hh:mm"))
}
