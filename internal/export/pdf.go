package export

import (
	"bytes"
	"fmt"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/alexanderramin/poa/internal/report"
)

// PDF page geometry in points.
const (
	PDFPageWidth  = 1500
	PDFPageHeight = 900
	pdfMargin     = 36
	pdfFontSize   = 9
	pdfLineHeight = 11
	pdfCellPad    = 3
)

const (
	fontRegular = "go-regular"
	fontBold    = "go-bold"
)

type pdfWriter struct {
	pdf *gopdf.GoPdf
	y   float64
}

// PDF renders the report on 1500x900pt pages with bordered tables.
func PDF(r *report.Report) ([]byte, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: gopdf.Rect{W: PDFPageWidth, H: PDFPageHeight}})
	if err := pdf.AddTTFFontData(fontRegular, goregular.TTF); err != nil {
		return nil, fmt.Errorf("loading regular font: %w", err)
	}
	if err := pdf.AddTTFFontData(fontBold, gobold.TTF); err != nil {
		return nil, fmt.Errorf("loading bold font: %w", err)
	}
	pdf.SetLineWidth(0.5)
	pdf.AddPage()
	w := &pdfWriter{pdf: pdf, y: pdfMargin}

	for _, line := range metadataLines(r) {
		if err := w.text(line, fontBold, 11); err != nil {
			return nil, err
		}
	}
	w.space(12)

	if err := w.text("Tipos de proyecto encontrados", fontBold, 14); err != nil {
		return nil, err
	}
	typeRows := make([][]string, 0, len(r.ProjectTypes))
	for _, pt := range r.ProjectTypes {
		typeRows = append(typeRows, []string{pt.Code, pt.Name, itoa(pt.PlanCount)})
	}
	if err := w.table([]string{"Código Tipo", "Nombre", "Cantidad de POAs"}, typeRows, []float64{120, 320, 120}); err != nil {
		return nil, err
	}
	w.space(16)

	headers := taskHeaders(r.Months)
	widths := taskColumnWidths(len(r.Months))
	for _, a := range r.Activities {
		if err := w.text("Actividad: "+a.Description, fontBold, 10); err != nil {
			return nil, err
		}
		rows := make([][]string, 0, len(a.Tasks))
		for _, t := range a.Tasks {
			rows = append(rows, taskCells(t, r.Months))
		}
		if err := w.table(headers, rows, widths); err != nil {
			return nil, err
		}
		w.space(12)
	}

	if err := w.text("RESUMEN MENSUAL", fontBold, 14); err != nil {
		return nil, err
	}
	if len(r.Months) > 0 {
		summaryWidths := make([]float64, len(r.Months))
		for i := range summaryWidths {
			summaryWidths[i] = widths[4]
		}
		if err := w.table(monthTitles(r.Months), [][]string{summaryCells(r)}, summaryWidths); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// taskColumnWidths gives the four fixed columns their width and shares the
// rest of the printable width between month columns.
func taskColumnWidths(months int) []float64 {
	widths := []float64{320, 120, 80, 100}
	if months == 0 {
		return append(widths, 0)
	}
	used := 0.0
	for _, w := range widths {
		used += w
	}
	monthWidth := min(80, (PDFPageWidth-2*pdfMargin-used)/float64(months))
	for i := 0; i < months; i++ {
		widths = append(widths, monthWidth)
	}
	return widths
}

func (w *pdfWriter) space(h float64) {
	w.y += h
}

func (w *pdfWriter) ensure(h float64) {
	if w.y+h > PDFPageHeight-pdfMargin {
		w.pdf.AddPage()
		w.y = pdfMargin
	}
}

func (w *pdfWriter) text(s, font string, size float64) error {
	lh := size * 1.3
	w.ensure(lh)
	if err := w.pdf.SetFont(font, "", size); err != nil {
		return fmt.Errorf("setting font: %w", err)
	}
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.SetXY(pdfMargin, w.y)
	if err := w.pdf.Cell(nil, s); err != nil {
		return fmt.Errorf("writing text: %w", err)
	}
	w.y += lh
	return nil
}

// table draws a bordered grid; the header row is repeated after page breaks.
func (w *pdfWriter) table(headers []string, rows [][]string, widths []float64) error {
	if err := w.row(headers, widths, true); err != nil {
		return err
	}
	for _, r := range rows {
		h, err := w.rowHeight(r, widths, false)
		if err != nil {
			return err
		}
		if w.y+h > PDFPageHeight-pdfMargin {
			w.pdf.AddPage()
			w.y = pdfMargin
			if err := w.row(headers, widths, true); err != nil {
				return err
			}
		}
		if err := w.row(r, widths, false); err != nil {
			return err
		}
	}
	return nil
}

func (w *pdfWriter) cellFont(header bool) error {
	font := fontRegular
	if header {
		font = fontBold
	}
	return w.pdf.SetFont(font, "", pdfFontSize)
}

func (w *pdfWriter) splitCell(text string, width float64) ([]string, error) {
	if text == "" {
		return []string{""}, nil
	}
	lines, err := w.pdf.SplitText(text, width-2*pdfCellPad)
	if err != nil {
		return nil, fmt.Errorf("wrapping %q: %w", text, err)
	}
	return lines, nil
}

func (w *pdfWriter) rowHeight(cells []string, widths []float64, header bool) (float64, error) {
	if err := w.cellFont(header); err != nil {
		return 0, fmt.Errorf("setting font: %w", err)
	}
	maxLines := 1
	for i, c := range cells {
		lines, err := w.splitCell(c, widths[i])
		if err != nil {
			return 0, err
		}
		maxLines = max(maxLines, len(lines))
	}
	return float64(maxLines)*pdfLineHeight + 2*pdfCellPad, nil
}

func (w *pdfWriter) row(cells []string, widths []float64, header bool) error {
	h, err := w.rowHeight(cells, widths, header)
	if err != nil {
		return err
	}
	w.ensure(h)

	x := float64(pdfMargin)
	for i, c := range cells {
		style := "D"
		if header {
			w.pdf.SetFillColor(217, 217, 217)
			style = "FD"
		}
		w.pdf.SetStrokeColor(0, 0, 0)
		w.pdf.RectFromUpperLeftWithStyle(x, w.y, widths[i], h, style)

		lines, err := w.splitCell(c, widths[i])
		if err != nil {
			return err
		}
		w.pdf.SetTextColor(0, 0, 0)
		for n, line := range lines {
			if line == "" {
				continue
			}
			w.pdf.SetXY(x+pdfCellPad, w.y+pdfCellPad+float64(n)*pdfLineHeight)
			if err := w.pdf.Cell(nil, line); err != nil {
				return fmt.Errorf("writing cell: %w", err)
			}
		}
		x += widths[i]
	}
	w.y += h
	return nil
}
