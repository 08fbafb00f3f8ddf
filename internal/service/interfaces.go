package service

import (
	"context"

	"github.com/alexanderramin/poa/internal/catalog"
	"github.com/alexanderramin/poa/internal/domain"
	"github.com/alexanderramin/poa/internal/report"
)

// ImportRequest is one spreadsheet upload. PlanID accepts a plan id or a
// plan code.
type ImportRequest struct {
	FileName string
	Content  []byte
	Sheet    string
	PlanID   string
	Confirm  bool
	Actor    string
}

// ImportResult describes a finished import, or a replace that is waiting
// for confirmation when RequiresConfirmation is set.
type ImportResult struct {
	RequiresConfirmation bool   `json:"requires_confirmation"`
	Message              string `json:"message"`
	PlanID               string `json:"plan_id"`
	PlanCode             string `json:"plan_code"`
	ExistingActivities   int    `json:"existing_activities,omitempty"`
	ReplacedActivities   int64  `json:"replaced_activities,omitempty"`
	ActivityCount        int    `json:"activity_count"`
	TaskCount            int    `json:"task_count"`
	AllocationCount      int    `json:"allocation_count"`
}

type ImportService interface {
	Import(ctx context.Context, req ImportRequest) (*ImportResult, error)
}

type ReportService interface {
	Build(ctx context.Context, year, category string) (*report.Report, error)
}

type LoadLogService interface {
	// List accepts YYYY-MM-DD bounds; empty means unbounded. A malformed
	// bound yields an empty listing.
	List(ctx context.Context, from, to string) ([]*domain.LoadLogEntry, error)
}

// CatalogResult counts the rows a catalog load created. Rows already
// present are left untouched.
type CatalogResult struct {
	ProjectTypes int `json:"project_types"`
	PlanTypes    int `json:"plan_types"`
	Projects     int `json:"projects"`
	Plans        int `json:"plans"`
	Codes        int `json:"budget_item_codes"`
	Details      int `json:"task_details"`
}

type CatalogService interface {
	Load(ctx context.Context, c *catalog.Catalog) (*CatalogResult, error)
}
