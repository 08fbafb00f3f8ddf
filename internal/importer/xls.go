package importer

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf16"

	"github.com/extrame/ole2"
	"github.com/extrame/xls"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Legacy workbooks are read in two passes. extrame/xls resolves sheet names
// and shared-string labels. Every other cell comes straight from the BIFF8
// records: the library renders formulas as the literal "FormulaCol" and
// numbers under date or custom formats as partial dates.

// BIFF8 record identifiers.
const (
	recFormula    = 0x0006
	recEOF        = 0x000A
	recDateMode   = 0x0022
	recBoundSheet = 0x0085
	recMulRK      = 0x00BD
	recRString    = 0x00D6
	recXF         = 0x00E0
	recLabelSST   = 0x00FD
	recNumber     = 0x0203
	recLabel      = 0x0204
	recBoolErr    = 0x0205
	recString     = 0x0207
	recRK         = 0x027E
	recFormat     = 0x041E
	recBOF        = 0x0809

	biff8Version = 0x0600
)

var cellErrors = map[byte]string{
	0x00: "#NULL!",
	0x07: "#DIV/0!",
	0x0F: "#VALUE!",
	0x17: "#REF!",
	0x1D: "#NAME?",
	0x24: "#NUM!",
	0x2A: "#N/A",
}

type xlsWorkbook struct {
	book  *xls.WorkBook
	biff  *biffBook
	names []string
}

func openXLS(content []byte) (*xlsWorkbook, error) {
	stream, err := workbookStream(content)
	if err != nil {
		return nil, fmt.Errorf("opening xls workbook: %w", err)
	}
	biff, err := parseBIFFGlobals(stream)
	if err != nil {
		return nil, fmt.Errorf("opening xls workbook: %w", err)
	}

	book, err := openXLSBook(content)
	if err != nil {
		return nil, fmt.Errorf("opening xls workbook: %w", err)
	}
	names := make([]string, book.NumSheets())
	for i := range names {
		s, err := xlsSheet(book, i)
		if err != nil {
			return nil, fmt.Errorf("opening xls workbook: %w", err)
		}
		names[i] = s.Name
	}
	if len(names) != len(biff.sheets) {
		return nil, fmt.Errorf("opening xls workbook: found %d sheet records, expected %d", len(biff.sheets), len(names))
	}
	return &xlsWorkbook{book: book, biff: biff, names: names}, nil
}

func (w *xlsWorkbook) SheetNames() []string {
	return append([]string(nil), w.names...)
}

func (w *xlsWorkbook) ReadSheet(name string) (*Sheet, error) {
	idx := -1
	for i, n := range w.names {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, sheetNotFound(name, w.SheetNames())
	}

	grid, err := w.biff.readSheet(idx)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}
	if len(grid.labels) > 0 {
		ws, err := xlsSheet(w.book, idx)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", name, err)
		}
		for _, p := range grid.labels {
			text, err := labelText(ws, p.row, p.col)
			if err != nil {
				return nil, fmt.Errorf("reading sheet %q: %w", name, err)
			}
			grid.set(p.row, p.col, TextCell(text))
		}
	}
	return NewSheet(name, grid.rows), nil
}

// openXLSBook guards the library parser, which panics on some malformed
// records instead of returning an error.
func openXLSBook(content []byte) (book *xls.WorkBook, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoding workbook: %v", r)
		}
	}()
	book, err = xls.OpenReader(bytes.NewReader(content), "utf-8")
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, errors.New("no Workbook stream in file")
	}
	return book, nil
}

func xlsSheet(book *xls.WorkBook, idx int) (ws *xls.WorkSheet, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoding sheet %d: %v", idx, r)
		}
	}()
	ws = book.GetSheet(idx)
	if ws == nil {
		return nil, fmt.Errorf("sheet %d is missing", idx)
	}
	return ws, nil
}

// labelText reads a string cell through the library. WorkSheet.Row
// dereferences rows that have no records, so it is only called at
// positions where a label record was seen.
func labelText(ws *xls.WorkSheet, row, col int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading text of %s: %v", cellName(row, col), r)
		}
	}()
	r := ws.Row(row)
	if r == nil {
		return "", nil
	}
	return r.Col(col), nil
}

// workbookStream extracts the BIFF stream from the compound document.
func workbookStream(content []byte) (stream []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decoding compound document: %v", r)
		}
	}()
	doc, err := ole2.Open(bytes.NewReader(content), "utf-8")
	if err != nil {
		return nil, err
	}
	dir, err := doc.ListDir()
	if err != nil {
		return nil, fmt.Errorf("listing compound document: %w", err)
	}
	var book, root *ole2.File
	for _, f := range dir {
		if f.Bsize < 2 {
			continue
		}
		switch f.Name() {
		case "Workbook", "Book":
			book = f
		case "Root Entry":
			root = f
		}
	}
	if book == nil || root == nil {
		return nil, errors.New("no Workbook stream in file")
	}
	stream, err = io.ReadAll(io.LimitReader(doc.OpenFile(book, root), int64(book.Size)))
	if err != nil {
		return nil, fmt.Errorf("reading Workbook stream: %w", err)
	}
	return stream, nil
}

type biffRecord struct {
	id   uint16
	body []byte
}

// nextRecord decodes the record at pos. ok is false at the end of the
// stream.
func nextRecord(stream []byte, pos int) (rec biffRecord, next int, ok bool, err error) {
	if pos+4 > len(stream) {
		return biffRecord{}, pos, false, nil
	}
	id := binary.LittleEndian.Uint16(stream[pos:])
	size := int(binary.LittleEndian.Uint16(stream[pos+2:]))
	end := pos + 4 + size
	if end > len(stream) {
		return biffRecord{}, pos, false, fmt.Errorf("record 0x%04X at offset %d overruns the stream", id, pos)
	}
	return biffRecord{id: id, body: stream[pos+4 : end]}, end, true, nil
}

func (r biffRecord) need(n int) error {
	if len(r.body) < n {
		return fmt.Errorf("record 0x%04X is %d bytes, expected at least %d", r.id, len(r.body), n)
	}
	return nil
}

func (r biffRecord) u16(off int) uint16 { return binary.LittleEndian.Uint16(r.body[off:]) }
func (r biffRecord) u32(off int) uint32 { return binary.LittleEndian.Uint32(r.body[off:]) }

// biffBook holds the workbook globals needed to tag cells.
type biffBook struct {
	stream    []byte
	date1904  bool
	xfFormats []uint16
	formats   map[uint16]string
	sheets    []int
}

func parseBIFFGlobals(stream []byte) (*biffBook, error) {
	b := &biffBook{stream: stream, formats: make(map[uint16]string)}

	rec, pos, ok, err := nextRecord(stream, 0)
	if err != nil {
		return nil, err
	}
	if !ok || rec.id != recBOF || rec.need(2) != nil {
		return nil, errors.New("workbook stream does not start with a BOF record")
	}
	if v := rec.u16(0); v != biff8Version {
		return nil, fmt.Errorf("unsupported BIFF version 0x%04X: save the file as Excel 97-2003 or .xlsx", v)
	}

	for {
		rec, pos, ok, err = nextRecord(stream, pos)
		if err != nil {
			return nil, err
		}
		if !ok || rec.id == recEOF {
			return b, nil
		}
		switch rec.id {
		case recDateMode:
			if err := rec.need(2); err != nil {
				return nil, err
			}
			b.date1904 = rec.u16(0) == 1
		case recXF:
			if err := rec.need(4); err != nil {
				return nil, err
			}
			b.xfFormats = append(b.xfFormats, rec.u16(2))
		case recFormat:
			if err := rec.need(2); err != nil {
				return nil, err
			}
			code, _, err := unicodeString(rec.body[2:])
			if err != nil {
				return nil, fmt.Errorf("format record: %w", err)
			}
			b.formats[rec.u16(0)] = code
		case recBoundSheet:
			if err := rec.need(4); err != nil {
				return nil, err
			}
			b.sheets = append(b.sheets, int(rec.u32(0)))
		}
	}
}

// isDateXF reports whether cells formatted with the XF at index render as
// dates.
func (b *biffBook) isDateXF(xf uint16) bool {
	if int(xf) >= len(b.xfFormats) {
		return false
	}
	id := b.xfFormats[xf]
	if code, ok := b.formats[id]; ok {
		return isDateFormatCode(code)
	}
	return isBuiltinDateFormat(int(id))
}

func (b *biffBook) numberCell(xf uint16, v float64) Cell {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return TextCell("#NUM!")
	}
	if b.isDateXF(xf) {
		if t, err := excelize.ExcelDateToTime(v, b.date1904); err == nil {
			return DateCell(t)
		}
	}
	return NumberCell(decimal.NewFromFloat(v))
}

type cellPos struct{ row, col int }

// biffGrid collects the cells of one sheet. labels are shared-string
// positions whose text still has to be resolved.
type biffGrid struct {
	rows   [][]Cell
	labels []cellPos
}

func (g *biffGrid) set(row, col int, c Cell) {
	for len(g.rows) <= row {
		g.rows = append(g.rows, nil)
	}
	if len(g.rows[row]) <= col {
		grown := make([]Cell, col+1)
		copy(grown, g.rows[row])
		g.rows[row] = grown
	}
	g.rows[row][col] = c
}

func (b *biffBook) readSheet(idx int) (*biffGrid, error) {
	if idx < 0 || idx >= len(b.sheets) {
		return nil, fmt.Errorf("sheet %d out of range", idx)
	}
	rec, pos, ok, err := nextRecord(b.stream, b.sheets[idx])
	if err != nil {
		return nil, err
	}
	if !ok || rec.id != recBOF {
		return nil, fmt.Errorf("sheet %d does not start with a BOF record", idx)
	}

	g := &biffGrid{}
	// A FORMULA with a string result is followed by a STRING record.
	var pending *cellPos
	for {
		rec, pos, ok, err = nextRecord(b.stream, pos)
		if err != nil {
			return nil, err
		}
		if !ok || rec.id == recEOF {
			return g, nil
		}

		switch rec.id {
		case recNumber:
			if err := rec.need(14); err != nil {
				return nil, err
			}
			v := math.Float64frombits(binary.LittleEndian.Uint64(rec.body[6:]))
			g.set(int(rec.u16(0)), int(rec.u16(2)), b.numberCell(rec.u16(4), v))

		case recRK:
			if err := rec.need(10); err != nil {
				return nil, err
			}
			g.set(int(rec.u16(0)), int(rec.u16(2)), b.numberCell(rec.u16(4), rkValue(rec.u32(6))))

		case recMulRK:
			if err := rec.need(12); err != nil {
				return nil, err
			}
			row, first := int(rec.u16(0)), int(rec.u16(2))
			n := (len(rec.body) - 6) / 6
			for i := 0; i < n; i++ {
				off := 4 + i*6
				g.set(row, first+i, b.numberCell(rec.u16(off), rkValue(rec.u32(off+2))))
			}

		case recFormula:
			if err := rec.need(14); err != nil {
				return nil, err
			}
			row, col := int(rec.u16(0)), int(rec.u16(2))
			result := rec.body[6:14]
			pending = nil
			if result[6] != 0xFF || result[7] != 0xFF {
				v := math.Float64frombits(binary.LittleEndian.Uint64(result))
				g.set(row, col, b.numberCell(rec.u16(4), v))
				continue
			}
			switch result[0] {
			case 0:
				pending = &cellPos{row: row, col: col}
			case 1:
				g.set(row, col, boolCell(result[2]))
			case 2:
				g.set(row, col, errorCell(result[2]))
			default:
				g.set(row, col, Cell{})
			}

		case recString:
			if pending == nil {
				continue
			}
			text, _, err := unicodeString(rec.body)
			if err != nil {
				return nil, fmt.Errorf("formula result at %s: %w", cellName(pending.row, pending.col), err)
			}
			g.set(pending.row, pending.col, TextCell(text))
			pending = nil

		case recLabelSST:
			if err := rec.need(10); err != nil {
				return nil, err
			}
			p := cellPos{row: int(rec.u16(0)), col: int(rec.u16(2))}
			g.set(p.row, p.col, Cell{})
			g.labels = append(g.labels, p)

		case recLabel, recRString:
			if err := rec.need(6); err != nil {
				return nil, err
			}
			row, col := int(rec.u16(0)), int(rec.u16(2))
			text, _, err := unicodeString(rec.body[6:])
			if err != nil {
				return nil, fmt.Errorf("label at %s: %w", cellName(row, col), err)
			}
			g.set(row, col, TextCell(text))

		case recBoolErr:
			if err := rec.need(8); err != nil {
				return nil, err
			}
			c := boolCell(rec.body[6])
			if rec.body[7] == 1 {
				c = errorCell(rec.body[6])
			}
			g.set(int(rec.u16(0)), int(rec.u16(2)), c)
		}
	}
}

func boolCell(v byte) Cell {
	if v != 0 {
		return TextCell("TRUE")
	}
	return TextCell("FALSE")
}

func errorCell(code byte) Cell {
	if s, ok := cellErrors[code]; ok {
		return TextCell(s)
	}
	return TextCell("#ERROR!")
}

// rkValue decodes the compressed RK number encoding.
func rkValue(rk uint32) float64 {
	var v float64
	if rk&0x02 != 0 {
		v = float64(int32(rk) >> 2)
	} else {
		v = math.Float64frombits(uint64(rk&0xFFFFFFFC) << 32)
	}
	if rk&0x01 != 0 {
		v /= 100
	}
	return v
}

// unicodeString decodes an XLUnicodeString: a 16-bit character count, a
// flags byte and the characters, either one byte each or UTF-16LE. It
// returns the number of bytes consumed.
func unicodeString(b []byte) (string, int, error) {
	if len(b) < 3 {
		return "", 0, errors.New("string header is truncated")
	}
	n := int(binary.LittleEndian.Uint16(b))
	wide := b[2]&0x01 != 0
	data := b[3:]
	if !wide {
		if len(data) < n {
			return "", 0, errors.New("string is truncated")
		}
		runes := make([]rune, n)
		for i := 0; i < n; i++ {
			runes[i] = rune(data[i])
		}
		return string(runes), 3 + n, nil
	}
	if len(data) < 2*n {
		return "", 0, errors.New("string is truncated")
	}
	units := make([]uint16, n)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(data[2*i:])
	}
	return string(utf16.Decode(units)), 3 + 2*n, nil
}
