package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for project import.
type ImportSchema struct {
	Project ProjectImport `json:"project"`
	Tasks   []TaskImport  `json:"tasks"`
}

// ProjectImport defines the project-level fields in the import file.
type ProjectImport struct {
	Name  string `json:"name"`
	OrgID string `json:"org_id,omitempty"`
}

// TaskImport defines a task in the import file. Refs are file-local
// identifiers used only to express the parent hierarchy; real IDs are
// assigned on conversion.
type TaskImport struct {
	Ref       string   `json:"ref"`
	ParentRef *string  `json:"parent_ref,omitempty"`
	Title     string   `json:"title"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Column    string   `json:"column,omitempty"`
	Color     string   `json:"color,omitempty"`
	Assignees []string `json:"assignees,omitempty"`
	Order     int      `json:"order,omitempty"`
}

// LoadImportSchema reads and parses a project import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
