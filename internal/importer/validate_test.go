package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func validSchema() *ImportSchema {
	return &ImportSchema{
		Project: ProjectImport{Name: "Launch", OrgID: "org-1"},
		Tasks: []TaskImport{
			{Ref: "phase", Title: "Phase 1", StartDate: "2026-01-05", EndDate: "2026-01-16"},
			{Ref: "design", ParentRef: strPtr("phase"), Title: "Design", StartDate: "2026-01-05", EndDate: "2026-01-09", Column: "in_progress"},
		},
	}
}

func TestValidateImportSchemaAccepts(t *testing.T) {
	errs := ValidateImportSchema(validSchema())
	assert.Empty(t, errs)
}

func TestValidateImportSchemaRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *ImportSchema)
		wantErr string
	}{
		{
			name:    "missing project name",
			mutate:  func(s *ImportSchema) { s.Project.Name = "" },
			wantErr: "project.name is required",
		},
		{
			name:    "missing task ref",
			mutate:  func(s *ImportSchema) { s.Tasks[0].Ref = "" },
			wantErr: "ref is required",
		},
		{
			name: "duplicate ref",
			mutate: func(s *ImportSchema) {
				s.Tasks[1].Ref = "phase"
				s.Tasks[1].ParentRef = nil
			},
			wantErr: "duplicate ref",
		},
		{
			name:    "missing title",
			mutate:  func(s *ImportSchema) { s.Tasks[1].Title = "" },
			wantErr: "title is required",
		},
		{
			name:    "bad date format",
			mutate:  func(s *ImportSchema) { s.Tasks[0].StartDate = "05/01/2026" },
			wantErr: "invalid date format",
		},
		{
			name:    "missing end date",
			mutate:  func(s *ImportSchema) { s.Tasks[0].EndDate = "" },
			wantErr: "end_date is required",
		},
		{
			name: "inverted dates",
			mutate: func(s *ImportSchema) {
				s.Tasks[1].StartDate = "2026-01-09"
				s.Tasks[1].EndDate = "2026-01-05"
			},
			wantErr: "precedes start_date",
		},
		{
			name:    "unknown column",
			mutate:  func(s *ImportSchema) { s.Tasks[1].Column = "backlog" },
			wantErr: "invalid value",
		},
		{
			name:    "self parent",
			mutate:  func(s *ImportSchema) { s.Tasks[0].ParentRef = strPtr("phase") },
			wantErr: "cannot be its own parent",
		},
		{
			name:    "forward parent ref",
			mutate:  func(s *ImportSchema) { s.Tasks[0].ParentRef = strPtr("design") },
			wantErr: "must appear earlier",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			schema := validSchema()
			tc.mutate(schema)
			errs := ValidateImportSchema(schema)
			if assert.NotEmpty(t, errs) {
				found := false
				for _, err := range errs {
					if strings.Contains(err.Error(), tc.wantErr) {
						found = true
						break
					}
				}
				assert.True(t, found, "expected an error containing %q, got %v", tc.wantErr, errs)
			}
		})
	}
}
