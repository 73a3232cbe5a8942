package task

import (
	"strings"

	"github.com/twiced-technology-gmbh/taskboard/internal/clierr"
)

// ValidateRequired returns an InvalidInput error when value is blank.
func ValidateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return clierr.Newf(clierr.InvalidInput, "%s is required", field).
			WithDetails(map[string]any{"field": field})
	}
	return nil
}

// ValidateDraft checks the fields the task form requires.
// Status and priority may be left empty; the board fills in its defaults.
func ValidateDraft(d Draft) error {
	if err := ValidateRequired("title", d.Title); err != nil {
		return err
	}
	if d.Status != "" && !d.Status.Valid() {
		_, err := ParseStatus(string(d.Status))
		return err
	}
	if d.Priority != "" && !d.Priority.Valid() {
		_, err := ParsePriority(string(d.Priority))
		return err
	}
	return nil
}

// TaskNotFound returns a CLIError for a missing task ID.
func TaskNotFound(id string) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task %q not found", id).
		WithDetails(map[string]any{"id": id})
}
