package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is wrapped by repositories when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// LayoutMismatchError reports every template violation found in a worksheet.
type LayoutMismatchError struct {
	Violations []string
}

func (e *LayoutMismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "worksheet does not match the expected layout (%d problems):", len(e.Violations))
	for _, v := range e.Violations {
		b.WriteString("\n  - ")
		b.WriteString(v)
	}
	return b.String()
}

type SheetNotFoundError struct {
	Sheet     string
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q does not exist in the workbook\n\navailable sheets:\n%s",
		e.Sheet, strings.Join(e.Available, "\n"))
}

type UnsupportedFileTypeError struct {
	FileName string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file %q: expected .xls or .xlsx", e.FileName)
}

type PlanNotFoundError struct {
	PlanID string
}

func (e *PlanNotFoundError) Error() string {
	return fmt.Sprintf("plan %s not found", e.PlanID)
}

// RowParseError marks a non-numeric value in a month column. Row is 1-based
// as shown by spreadsheet programs.
type RowParseError struct {
	Row    int
	Column string
	Value  string
}

func (e *RowParseError) Error() string {
	return fmt.Sprintf("row %d: invalid value %q in %s%d (expected a number)", e.Row, e.Value, e.Column, e.Row)
}

type BudgetCodeNotFoundError struct {
	Code        string
	Description string
}

func (e *BudgetCodeNotFoundError) Error() string {
	return fmt.Sprintf("budget item code %q not found (task %q)", e.Code, e.Description)
}

type TaskDetailNotFoundError struct {
	Code        string
	Description string
}

func (e *TaskDetailNotFoundError) Error() string {
	return fmt.Sprintf("no task detail matches %q under budget item code %q", e.Description, e.Code)
}

type InvalidCategoryError struct {
	Category string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid project category %q (expected Investigacion, Vinculacion or Transferencia)", e.Category)
}

// ImportError wraps a fatal import failure after any partial writes have
// been removed.
type ImportError struct {
	Cause error
}

func (e *ImportError) Error() string {
	return "nothing was saved to the database: " + e.Cause.Error()
}

func (e *ImportError) Unwrap() error { return e.Cause }
