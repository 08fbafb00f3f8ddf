// Package catalog loads the reference data an installation needs before
// plans can be imported: project and plan types, projects, plans and the
// budget item catalog.
package catalog

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the top-level YAML document.
type Catalog struct {
	ProjectTypes []TypeEntry       `yaml:"project_types"`
	PlanTypes    []TypeEntry       `yaml:"plan_types"`
	Projects     []ProjectEntry    `yaml:"projects"`
	Plans        []PlanEntry       `yaml:"plans"`
	BudgetItems  []BudgetItemEntry `yaml:"budget_items"`
}

type TypeEntry struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type ProjectEntry struct {
	Code  string `yaml:"code"`
	Title string `yaml:"title"`
	Type  string `yaml:"type"`
}

// PlanEntry references its project and plan type by code. ID is optional;
// a random one is assigned when empty.
type PlanEntry struct {
	ID             string `yaml:"id,omitempty"`
	Code           string `yaml:"code"`
	Project        string `yaml:"project"`
	Year           string `yaml:"year"`
	PlanType       string `yaml:"plan_type,omitempty"`
	Period         string `yaml:"period,omitempty"`
	Status         string `yaml:"status,omitempty"`
	AssignedBudget string `yaml:"assigned_budget,omitempty"`
}

// BudgetItemEntry is one code/description variant with its task details.
type BudgetItemEntry struct {
	Code        string        `yaml:"code"`
	Description string        `yaml:"description"`
	Details     []DetailEntry `yaml:"details"`
}

type DetailEntry struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	PlanTypes   []string `yaml:"plan_types,omitempty"`
}

// Parse decodes a catalog and rejects unknown keys.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.Check(); err != nil {
		return nil, err
	}
	return &c, nil
}

func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

// Check runs Validate and folds the problems into one error.
func (c *Catalog) Check() error {
	if errs := Validate(c); len(errs) > 0 {
		return formatValidationErrors(errs)
	}
	return nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("catalog validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
