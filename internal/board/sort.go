package board

import (
	"sort"
	"strings"

	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

// ValidSortFields returns the list of valid --sort field names.
func ValidSortFields() []string {
	return []string{"title", "status", "priority", "project"}
}

// Sort orders a flat task listing by the given field. Status and priority
// use board order rather than alphabetical order. Sorting is stable, so
// ties keep their collection order.
func Sort(tasks []task.Task, field string, reverse bool) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if reverse {
			return compareTasks(tasks[j], tasks[i], field)
		}
		return compareTasks(tasks[i], tasks[j], field)
	})
}

func compareTasks(a, b task.Task, field string) bool {
	switch field {
	case "title":
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	case "status":
		return statusIndex(a.Status) < statusIndex(b.Status)
	case "priority":
		return a.Priority.Rank() < b.Priority.Rank()
	case "project":
		return a.ProjectID < b.ProjectID
	default:
		return false
	}
}

func statusIndex(s task.Status) int {
	for i, v := range task.Statuses {
		if v == s {
			return i
		}
	}
	return len(task.Statuses)
}
