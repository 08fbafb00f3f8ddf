// Package matcher resolves free-text task names from uploaded sheets to
// canonical catalog task details.
package matcher

import (
	"context"
	"fmt"

	"github.com/alexanderramin/poa/internal/domain"
)

// Catalog is the read side of the budget item catalog.
type Catalog interface {
	ListCodesByValue(ctx context.Context, code string) ([]*domain.BudgetItemCode, error)
	ListDetailsByCode(ctx context.Context, codeID string) ([]*domain.TaskDetail, error)
}

// Match is a resolved task.
type Match struct {
	Code   *domain.BudgetItemCode
	Detail *domain.TaskDetail
	// Name is the task name without its "n.n " prefix.
	Name string
}

// Matcher memoizes catalog lookups. Use one Matcher per import request.
type Matcher struct {
	catalog Catalog
	codes   map[string][]*domain.BudgetItemCode
	details map[string][]*domain.TaskDetail
}

func New(catalog Catalog) *Matcher {
	return &Matcher{
		catalog: catalog,
		codes:   make(map[string][]*domain.BudgetItemCode),
		details: make(map[string][]*domain.TaskDetail),
	}
}

// Resolve finds the first task detail, over every budget item code equal to
// codeText in catalog order, whose normalized name equals the normalized
// task name.
func (m *Matcher) Resolve(ctx context.Context, codeText, taskName string) (*Match, error) {
	bare := domain.StripTaskPrefix(taskName)

	codes, err := m.codesFor(ctx, codeText)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return nil, &domain.BudgetCodeNotFoundError{Code: codeText, Description: bare}
	}

	want := Normalize(bare)
	for _, code := range codes {
		details, err := m.detailsFor(ctx, code.ID)
		if err != nil {
			return nil, err
		}
		for _, d := range details {
			if Normalize(d.Name) == want {
				return &Match{Code: code, Detail: d, Name: bare}, nil
			}
		}
	}
	return nil, &domain.TaskDetailNotFoundError{Code: codeText, Description: bare}
}

func (m *Matcher) codesFor(ctx context.Context, code string) ([]*domain.BudgetItemCode, error) {
	if cached, ok := m.codes[code]; ok {
		return cached, nil
	}
	codes, err := m.catalog.ListCodesByValue(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("loading budget item codes %q: %w", code, err)
	}
	m.codes[code] = codes
	return codes, nil
}

func (m *Matcher) detailsFor(ctx context.Context, codeID string) ([]*domain.TaskDetail, error) {
	if cached, ok := m.details[codeID]; ok {
		return cached, nil
	}
	details, err := m.catalog.ListDetailsByCode(ctx, codeID)
	if err != nil {
		return nil, fmt.Errorf("loading task details: %w", err)
	}
	m.details[codeID] = details
	return details, nil
}
