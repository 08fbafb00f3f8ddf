package importer

import (
	"strings"

	"github.com/alexanderramin/poa/internal/domain"
)

type RowKind int

const (
	RowSkip RowKind = iota
	RowGrandTotal
	RowActivityMarker
	RowTaskCandidate
)

func (k RowKind) String() string {
	switch k {
	case RowGrandTotal:
		return "grand_total"
	case RowActivityMarker:
		return "activity_marker"
	case RowTaskCandidate:
		return "task_candidate"
	}
	return "skip"
}

// RowClass is the classification of one data row. Ordinal is set for
// activity markers only.
type RowClass struct {
	Kind    RowKind
	Ordinal int
}

// ClassifyRow applies the classification order: grand total, activity
// marker, then task candidate while an activity is open.
func ClassifyRow(s *Sheet, row int, activityOpen bool) RowClass {
	desc := s.Cell(row, colDescription)
	text := strings.TrimSpace(desc.String())

	if desc.Kind == CellText && strings.Contains(strings.ToUpper(text), grandTotalLabel) {
		return RowClass{Kind: RowGrandTotal}
	}
	if n, ok := domain.ExtractOrdinal(text); ok && desc.Kind == CellText {
		return RowClass{Kind: RowActivityMarker, Ordinal: n}
	}
	if activityOpen {
		return RowClass{Kind: RowTaskCandidate}
	}
	return RowClass{Kind: RowSkip}
}
