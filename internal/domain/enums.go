package domain

type PlanStatus string

const (
	PlanDraft    PlanStatus = "draft"
	PlanApproved PlanStatus = "approved"
	PlanInReform PlanStatus = "in_reform"
	PlanClosed   PlanStatus = "closed"
)

// ValidPlanStatuses is the canonical set of accepted plan status strings.
var ValidPlanStatuses = map[string]bool{
	"draft": true, "approved": true, "in_reform": true, "closed": true,
}

// Category is the coarse project classification used by reports.
type Category string

const (
	CategoryResearch Category = "Investigacion"
	CategoryOutreach Category = "Vinculacion"
	CategoryTransfer Category = "Transferencia"
)

var categoryTypeCodes = map[Category][]string{
	CategoryResearch: {"PIIF", "PIS", "PIGR", "PIM"},
	CategoryOutreach: {"PVIF"},
	CategoryTransfer: {"PTT"},
}

var categoryLabels = map[Category]string{
	CategoryResearch: "Proyecto de Investigación",
	CategoryOutreach: "Proyecto de Vinculación",
	CategoryTransfer: "Proyecto de Transferencia",
}

// ParseCategory validates a category name as sent by report requests.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryTypeCodes[c]; !ok {
		return "", &InvalidCategoryError{Category: s}
	}
	return c, nil
}

// TypeCodes returns the project type codes belonging to the category.
func (c Category) TypeCodes() []string {
	codes := categoryTypeCodes[c]
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}

// Label is the human readable category name.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}
