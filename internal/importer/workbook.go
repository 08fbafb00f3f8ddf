package importer

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/poa/internal/domain"
)

// Workbook is an opened spreadsheet file.
type Workbook interface {
	SheetNames() []string
	ReadSheet(name string) (*Sheet, error)
}

// CheckExtension accepts .xls and .xlsx file names in any case.
func CheckExtension(fileName string) error {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xls":
		return nil
	}
	return &domain.UnsupportedFileTypeError{FileName: fileName}
}

// OpenWorkbook picks a reader by file extension.
func OpenWorkbook(fileName string, content []byte) (Workbook, error) {
	if err := CheckExtension(fileName); err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(fileName), ".xls") {
		return openXLS(content)
	}
	return openXLSX(content)
}

// ReadSheet opens the workbook and reads one sheet.
func ReadSheet(fileName string, content []byte, sheet string) (*Sheet, error) {
	wb, err := OpenWorkbook(fileName, content)
	if err != nil {
		return nil, err
	}
	return wb.ReadSheet(sheet)
}

func sheetNotFound(name string, available []string) error {
	return &domain.SheetNotFoundError{Sheet: name, Available: available}
}

type xlsxWorkbook struct {
	f          *excelize.File
	dateStyles map[int]bool
}

func openXLSX(content []byte) (*xlsxWorkbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("opening xlsx workbook: %w", err)
	}
	return &xlsxWorkbook{f: f, dateStyles: make(map[int]bool)}, nil
}

func (w *xlsxWorkbook) SheetNames() []string {
	return w.f.GetSheetList()
}

func (w *xlsxWorkbook) ReadSheet(name string) (*Sheet, error) {
	names := w.SheetNames()
	if !slices.Contains(names, name) {
		return nil, sheetNotFound(name, names)
	}

	raw, err := w.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}

	rows := make([][]Cell, len(raw))
	for r, values := range raw {
		cells := make([]Cell, len(values))
		for c, v := range values {
			cell, err := w.cell(name, r, c, v)
			if err != nil {
				return nil, err
			}
			cells[c] = cell
		}
		rows[r] = cells
	}
	return NewSheet(name, rows), nil
}

// cell tags a raw value. Numbers stored under a date number format become
// date cells.
func (w *xlsxWorkbook) cell(sheet string, row, col int, raw string) (Cell, error) {
	if strings.TrimSpace(raw) == "" {
		return Cell{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return TextCell(raw), nil
	}

	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return Cell{}, fmt.Errorf("resolving cell name: %w", err)
	}
	styleID, err := w.f.GetCellStyle(sheet, axis)
	if err != nil {
		return Cell{}, fmt.Errorf("reading style of %s: %w", axis, err)
	}
	isDate, err := w.isDateStyle(styleID)
	if err != nil {
		return Cell{}, err
	}
	if isDate {
		t, err := excelize.ExcelDateToTime(d.InexactFloat64(), false)
		if err == nil {
			return DateCell(t), nil
		}
	}
	return NumberCell(d), nil
}

func (w *xlsxWorkbook) isDateStyle(styleID int) (bool, error) {
	if v, ok := w.dateStyles[styleID]; ok {
		return v, nil
	}
	style, err := w.f.GetStyle(styleID)
	if err != nil {
		return false, fmt.Errorf("reading style %d: %w", styleID, err)
	}
	isDate := isBuiltinDateFormat(style.NumFmt)
	if style.CustomNumFmt != nil {
		isDate = isDateFormatCode(*style.CustomNumFmt)
	}
	w.dateStyles[styleID] = isDate
	return isDate, nil
}

func isBuiltinDateFormat(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 27 && id <= 36) ||
		(id >= 45 && id <= 47) || (id >= 50 && id <= 58)
}

// isDateFormatCode reports whether a custom number format renders a
// calendar date. Quoted literals, escaped characters and bracketed
// sections are ignored. An m run is minutes when it follows h or precedes
// s, and months otherwise.
func isDateFormatCode(code string) bool {
	plain := []rune(strings.ToLower(formatTokens(code)))
	for i, r := range plain {
		switch r {
		case 'd', 'y':
			return true
		case 'm':
			if !isMinuteToken(plain, i) {
				return true
			}
		}
	}
	return false
}

// formatTokens drops the parts of a number format that never hold date
// or time tokens.
func formatTokens(code string) string {
	var b strings.Builder
	inQuote, inBracket, skip := false, false, false
	for _, r := range code {
		switch {
		case skip:
			skip = false
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '\\', r == '_', r == '*':
			skip = true
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isMinuteToken(plain []rune, i int) bool {
	start, end := i, i
	for start > 0 && plain[start-1] == 'm' {
		start--
	}
	for end < len(plain)-1 && plain[end+1] == 'm' {
		end++
	}
	for j := start - 1; j >= 0; j-- {
		if unicode.IsLetter(plain[j]) {
			if plain[j] == 'h' {
				return true
			}
			break
		}
	}
	for j := end + 1; j < len(plain); j++ {
		if unicode.IsLetter(plain[j]) {
			return plain[j] == 's'
		}
	}
	return false
}
