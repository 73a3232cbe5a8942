// Package board holds the in-memory board state and the pure functions that
// filter, group and sort its tasks.
package board

import (
	"strings"

	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

// FilterOptions defines which tasks to include in a flat listing.
type FilterOptions struct {
	Statuses   []task.Status
	Priorities []task.Priority
	ProjectID  string
	Tag        string
	Search     string // case-insensitive substring match across title, description and comments
}

// Filter returns tasks matching all specified criteria (AND logic), in input order.
func Filter(tasks []task.Task, opts FilterOptions) []task.Task {
	var result []task.Task
	for _, t := range tasks {
		if matchesFilter(t, opts) {
			result = append(result, t)
		}
	}
	return result
}

func matchesFilter(t task.Task, opts FilterOptions) bool {
	if len(opts.Statuses) > 0 && !contains(opts.Statuses, t.Status) {
		return false
	}
	if len(opts.Priorities) > 0 && !contains(opts.Priorities, t.Priority) {
		return false
	}
	if opts.ProjectID != "" && t.ProjectID != opts.ProjectID {
		return false
	}
	if opts.Tag != "" && !t.HasTag(opts.Tag) {
		return false
	}
	return Matches(t, opts.Search)
}

// Matches performs case-insensitive substring matching across title,
// description and comment content. An empty query matches every task.
func Matches(t task.Task, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, c := range t.Comments {
		if strings.Contains(strings.ToLower(c.Content), q) {
			return true
		}
	}
	return false
}

// FilterProjects returns projects whose name contains query (case-insensitive).
func FilterProjects(projects []task.Project, query string) []task.Project {
	q := strings.ToLower(query)
	var result []task.Project
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Name), q) {
			result = append(result, p)
		}
	}
	return result
}

// FilterTags returns tags whose name contains query (case-insensitive).
func FilterTags(tags []task.Tag, query string) []task.Tag {
	q := strings.ToLower(query)
	var result []task.Tag
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t.Name), q) {
			result = append(result, t)
		}
	}
	return result
}

func contains[T comparable](slice []T, item T) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
