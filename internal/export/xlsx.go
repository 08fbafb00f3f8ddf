package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/poa/internal/report"
)

// XLSXSheetName is the single sheet of the rendered workbook.
const XLSXSheetName = "Reporte POA"

func itoa(n int) string { return strconv.Itoa(n) }

type xlsxStyles struct {
	bold, boldWrap, header, subheader, border int
}

func newXLSXStyles(f *excelize.File) (*xlsxStyles, error) {
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	grid := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	styles := []*excelize.Style{
		{Font: &excelize.Font{Bold: true}, Alignment: center},
		{Font: &excelize.Font{Bold: true}, Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}},
		{Font: &excelize.Font{Bold: true}, Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1}, Border: grid},
		{Font: &excelize.Font{Bold: true}, Fill: excelize.Fill{Type: "pattern", Color: []string{"#F2F2F2"}, Pattern: 1}, Border: grid},
		{Border: grid},
	}
	ids := make([]int, len(styles))
	for i, style := range styles {
		id, err := f.NewStyle(style)
		if err != nil {
			return nil, fmt.Errorf("creating xlsx style: %w", err)
		}
		ids[i] = id
	}
	return &xlsxStyles{bold: ids[0], boldWrap: ids[1], header: ids[2], subheader: ids[3], border: ids[4]}, nil
}

type xlsxWriter struct {
	f   *excelize.File
	row int
}

func (w *xlsxWriter) writeRow(values []string, style int) error {
	if len(values) == 0 {
		return nil
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	start, _ := excelize.CoordinatesToCellName(1, w.row)
	end, _ := excelize.CoordinatesToCellName(len(values), w.row)
	if err := w.f.SetSheetRow(XLSXSheetName, start, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", w.row, err)
	}
	if err := w.f.SetCellStyle(XLSXSheetName, start, end, style); err != nil {
		return fmt.Errorf("styling row %d: %w", w.row, err)
	}
	return nil
}

func (w *xlsxWriter) mergedTitle(text string, width int, style int) error {
	start, _ := excelize.CoordinatesToCellName(1, w.row)
	end, _ := excelize.CoordinatesToCellName(max(width, 1), w.row)
	if start != end {
		if err := w.f.MergeCell(XLSXSheetName, start, end); err != nil {
			return fmt.Errorf("merging %s:%s: %w", start, end, err)
		}
	}
	if err := w.f.SetCellValue(XLSXSheetName, start, text); err != nil {
		return fmt.Errorf("writing %s: %w", start, err)
	}
	return w.f.SetCellStyle(XLSXSheetName, start, end, style)
}

// XLSX renders the report as a one-sheet workbook.
func XLSX(r *report.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", XLSXSheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}
	widths := map[string]float64{"A": 62.33, "B": 22, "C": 13.5, "D": 12}
	for col, width := range widths {
		if err := f.SetColWidth(XLSXSheetName, col, col, width); err != nil {
			return nil, fmt.Errorf("setting width of %s: %w", col, err)
		}
	}

	styles, err := newXLSXStyles(f)
	if err != nil {
		return nil, err
	}
	w := &xlsxWriter{f: f, row: 1}

	for _, line := range metadataLines(r) {
		if err := w.writeRow([]string{line}, styles.bold); err != nil {
			return nil, err
		}
		w.row++
	}
	w.row++

	if err := w.mergedTitle("Tipos de proyecto encontrados", 3, styles.bold); err != nil {
		return nil, err
	}
	w.row++
	if err := w.writeRow([]string{"Código Tipo", "Nombre", "Cantidad de POAs"}, styles.header); err != nil {
		return nil, err
	}
	w.row++
	for _, pt := range r.ProjectTypes {
		if err := w.writeRow([]string{pt.Code, pt.Name, itoa(pt.PlanCount)}, styles.border); err != nil {
			return nil, err
		}
		w.row++
	}
	w.row += 2

	headers := taskHeaders(r.Months)
	for _, a := range r.Activities {
		if err := w.mergedTitle("Actividad: "+a.Description, len(headers), styles.boldWrap); err != nil {
			return nil, err
		}
		w.row++
		if err := w.writeRow(headers, styles.subheader); err != nil {
			return nil, err
		}
		w.row++
		for _, t := range a.Tasks {
			if err := w.writeRow(taskCells(t, r.Months), styles.border); err != nil {
				return nil, err
			}
			w.row++
		}
		w.row++
	}

	w.row++
	if err := w.writeRow([]string{"RESUMEN MENSUAL"}, styles.bold); err != nil {
		return nil, err
	}
	w.row++
	if err := w.writeRow(monthTitles(r.Months), styles.header); err != nil {
		return nil, err
	}
	w.row++
	if err := w.writeRow(summaryCells(r), styles.border); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
