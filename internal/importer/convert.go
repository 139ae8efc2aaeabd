package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielbloch/gantry/internal/domain"
)

// ImportedProject bundles the domain objects produced from one import
// file, ready for persistence.
type ImportedProject struct {
	Project *domain.Project
	Tasks   []*domain.Task
}

// Convert transforms a validated ImportSchema into domain objects ready
// for persistence. Call ValidateImportSchema first; Convert assumes the
// schema is valid.
func Convert(schema *ImportSchema) (*ImportedProject, error) {
	now := time.Now().UTC()

	project := &domain.Project{
		ID:        uuid.New().String(),
		OrgID:     schema.Project.OrgID,
		Name:      schema.Project.Name,
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	refMap := make(map[string]string) // ref -> UUID

	tasks := make([]*domain.Task, 0, len(schema.Tasks))
	for i, t := range schema.Tasks {
		realID := uuid.New().String()
		refMap[t.Ref] = realID

		var parentID *string
		if t.ParentRef != nil && *t.ParentRef != "" {
			pid, ok := refMap[*t.ParentRef]
			if !ok {
				return nil, fmt.Errorf("tasks[%d].parent_ref: unresolved ref %q", i, *t.ParentRef)
			}
			parentID = &pid
		}

		start, err := time.Parse("2006-01-02", t.StartDate)
		if err != nil {
			return nil, fmt.Errorf("tasks[%d].start_date: %w", i, err)
		}
		end, err := time.Parse("2006-01-02", t.EndDate)
		if err != nil {
			return nil, fmt.Errorf("tasks[%d].end_date: %w", i, err)
		}

		column := t.Column
		if column == "" {
			column = string(domain.ColumnTodo)
		}

		order := t.Order
		if order == 0 {
			order = i
		}

		tasks = append(tasks, &domain.Task{
			ID:          realID,
			ProjectID:   project.ID,
			ParentID:    parentID,
			Title:       t.Title,
			ColumnID:    domain.TaskColumn(column),
			Color:       t.Color,
			StartDate:   domain.DateOnly(start),
			EndDate:     domain.DateOnly(end),
			AssigneeIDs: t.Assignees,
			OrderIndex:  order,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	return &ImportedProject{Project: project, Tasks: tasks}, nil
}
