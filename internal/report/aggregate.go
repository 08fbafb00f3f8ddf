package report

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/alexanderramin/poa/internal/domain"
)

// PlanRef is a plan selected for the report.
type PlanRef struct {
	ID              string
	ProjectTypeCode string
	ProjectTypeName string
}

// TaskRef is a positive task with the code of its catalog entry.
type TaskRef struct {
	Task           domain.Task
	BudgetItemCode string
}

// Input is everything Aggregate reads. Activities and Tasks are expected
// to hold positive totals only, in plan order and sheet position.
type Input struct {
	Year        string
	Category    domain.Category
	Plans       []PlanRef
	Activities  []*domain.Activity
	Tasks       []TaskRef
	Allocations []*domain.MonthlyAllocation
}

type taskAcc struct {
	name     string
	code     string
	detailID string
	quantity decimal.Decimal
	total    decimal.Decimal
	monthly  map[domain.Month]decimal.Decimal
}

type groupAcc struct {
	description string
	total       decimal.Decimal
	tasks       []*taskAcc
	byDetail    map[string]*taskAcc
}

// Aggregate groups activities by description and tasks by task detail,
// numbers task lines and computes monthly totals.
func Aggregate(in Input) *Report {
	r := &Report{
		Year:           in.Year,
		Category:       in.Category,
		CategoryLabel:  in.Category.Label(),
		GrandTotal:     decimal.Zero,
		Months:         []domain.Month{},
		Activities:     []ActivityGroup{},
		MonthlySummary: []MonthAmount{},
	}

	planHasActivity := make(map[string]bool)
	var groups []*groupAcc
	groupByDesc := make(map[string]*groupAcc)
	groupOfActivity := make(map[string]*groupAcc)
	for _, a := range in.Activities {
		planHasActivity[a.PlanID] = true
		g, ok := groupByDesc[a.Description]
		if !ok {
			g = &groupAcc{description: a.Description, byDetail: make(map[string]*taskAcc)}
			groupByDesc[a.Description] = g
			groups = append(groups, g)
		}
		g.total = g.total.Add(a.Total)
		groupOfActivity[a.ID] = g
	}

	allocsByTask := make(map[string][]*domain.MonthlyAllocation)
	for _, al := range in.Allocations {
		allocsByTask[al.TaskID] = append(allocsByTask[al.TaskID], al)
	}

	seenMonth := make(map[domain.Month]bool)
	for _, tr := range in.Tasks {
		g, ok := groupOfActivity[tr.Task.ActivityID]
		if !ok {
			continue
		}
		acc, ok := g.byDetail[tr.Task.TaskDetailID]
		if !ok {
			acc = &taskAcc{
				name:     domain.StripNamePrefix(tr.Task.Name),
				code:     tr.BudgetItemCode,
				detailID: tr.Task.TaskDetailID,
				monthly:  make(map[domain.Month]decimal.Decimal),
			}
			g.byDetail[tr.Task.TaskDetailID] = acc
			g.tasks = append(g.tasks, acc)
		}
		acc.quantity = acc.quantity.Add(tr.Task.Quantity)
		acc.total = acc.total.Add(tr.Task.Total)
		for _, al := range allocsByTask[tr.Task.ID] {
			acc.monthly[al.Month] = acc.monthly[al.Month].Add(al.Amount)
			seenMonth[al.Month] = true
		}
	}

	for _, m := range domain.Months {
		if seenMonth[m] {
			r.Months = append(r.Months, m)
		}
	}

	summary := make(map[domain.Month]decimal.Decimal)
	for _, g := range groups {
		ordinal := domain.OrdinalOrDefault(g.description)
		group := ActivityGroup{
			Description: g.description,
			Ordinal:     ordinal,
			Total:       g.total,
			Tasks:       []TaskLine{},
		}
		for k, acc := range g.tasks {
			line := TaskLine{
				Name:           fmt.Sprintf("%d.%d %s", ordinal, k+1, acc.name),
				TaskDetailID:   acc.detailID,
				BudgetItemCode: acc.code,
				Quantity:       acc.quantity,
				Total:          acc.total,
				Monthly:        []MonthAmount{},
			}
			for _, m := range r.Months {
				v, ok := acc.monthly[m]
				if !ok {
					continue
				}
				v = v.Round(MoneyPlaces)
				line.Monthly = append(line.Monthly, MonthAmount{Month: m, Amount: v})
				summary[m] = summary[m].Add(v)
			}
			group.Tasks = append(group.Tasks, line)
		}
		r.Activities = append(r.Activities, group)
		r.GrandTotal = r.GrandTotal.Add(g.total)
	}

	slices.SortStableFunc(r.Activities, func(a, b ActivityGroup) int {
		return a.Ordinal - b.Ordinal
	})

	for _, m := range r.Months {
		r.MonthlySummary = append(r.MonthlySummary, MonthAmount{Month: m, Amount: summary[m]})
	}

	r.ProjectTypes, r.PlanCount = countPlans(in.Category, in.Plans, planHasActivity)
	return r
}

// countPlans counts plans with at least one positive activity, overall and
// per project type in category order.
func countPlans(c domain.Category, plans []PlanRef, active map[string]bool) ([]ProjectTypeCount, int) {
	counts := make(map[string]*ProjectTypeCount)
	total := 0
	for _, p := range plans {
		if !active[p.ID] {
			continue
		}
		total++
		pc, ok := counts[p.ProjectTypeCode]
		if !ok {
			pc = &ProjectTypeCount{Code: p.ProjectTypeCode, Name: p.ProjectTypeName}
			counts[p.ProjectTypeCode] = pc
		}
		pc.PlanCount++
	}

	out := []ProjectTypeCount{}
	for _, code := range c.TypeCodes() {
		if pc, ok := counts[code]; ok {
			out = append(out, *pc)
		}
	}
	return out, total
}
