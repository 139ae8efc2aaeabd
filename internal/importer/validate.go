package importer

import (
	"fmt"
	"time"

	"github.com/danielbloch/gantry/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before
// conversion. Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateProject(&schema.Project)...)

	taskRefs := make(map[string]bool)
	errs = append(errs, validateTasks(schema.Tasks, taskRefs)...)

	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}

	return errs
}

func validateTasks(tasks []TaskImport, taskRefs map[string]bool) []error {
	var errs []error

	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		if t.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if taskRefs[t.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, t.Ref))
		} else {
			taskRefs[t.Ref] = true
		}

		if t.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}

		start, startErrs := validateDate(prefix+".start_date", t.StartDate)
		end, endErrs := validateDate(prefix+".end_date", t.EndDate)
		errs = append(errs, startErrs...)
		errs = append(errs, endErrs...)
		if len(startErrs) == 0 && len(endErrs) == 0 && end.Before(start) {
			errs = append(errs, fmt.Errorf("%s: end_date %q precedes start_date %q", prefix, t.EndDate, t.StartDate))
		}

		if t.Column != "" && !domain.ValidTaskColumns[t.Column] {
			errs = append(errs, fmt.Errorf("%s.column: invalid value %q", prefix, t.Column))
		}

		// Parents must appear earlier in the list; this also rules out
		// parent cycles inside the file.
		if t.ParentRef != nil && *t.ParentRef != "" {
			if *t.ParentRef == t.Ref {
				errs = append(errs, fmt.Errorf("%s.parent_ref: task cannot be its own parent", prefix))
			} else if !taskRefs[*t.ParentRef] {
				errs = append(errs, fmt.Errorf("%s.parent_ref: ref %q not found (must appear earlier in tasks list)", prefix, *t.ParentRef))
			}
		}
	}

	return errs
}

func validateDate(field, dateStr string) (time.Time, []error) {
	if dateStr == "" {
		return time.Time{}, []error{fmt.Errorf("%s is required", field)}
	}
	d, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, dateStr)}
	}
	return d, nil
}
