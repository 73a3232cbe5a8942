package board

import (
	"strings"

	"github.com/twiced-technology-gmbh/taskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

// GroupBy selects how the board splits tasks into columns.
type GroupBy string

// Grouping modes.
const (
	GroupByStatus   GroupBy = "status"
	GroupByPriority GroupBy = "priority"
	GroupByProject  GroupBy = "project"
)

// Bucket is one column of the board view.
type Bucket struct {
	// Key is the status value, priority value, or project ID the bucket collects.
	Key   string      `json:"key"`
	Label string      `json:"label"`
	Tasks []task.Task `json:"tasks"`
}

// Group filters tasks by query and splits the survivors into ordered buckets.
//
// Status and priority modes always yield three buckets in fixed order.
// Project mode yields one bucket per project in collection order; tasks whose
// ProjectID matches no project appear in no bucket. Tasks keep their
// collection order within a bucket. An unknown mode yields no buckets.
func Group(tasks []task.Task, projects []task.Project, groupBy GroupBy, query string) []Bucket {
	var buckets []Bucket
	switch groupBy {
	case GroupByStatus:
		buckets = make([]Bucket, 0, len(task.Statuses))
		for _, s := range task.Statuses {
			buckets = append(buckets, Bucket{Key: string(s), Label: s.Label(), Tasks: []task.Task{}})
		}
	case GroupByPriority:
		buckets = make([]Bucket, 0, len(task.Priorities))
		for _, p := range task.Priorities {
			buckets = append(buckets, Bucket{Key: string(p), Label: p.Label(), Tasks: []task.Task{}})
		}
	case GroupByProject:
		buckets = make([]Bucket, 0, len(projects))
		for _, p := range projects {
			buckets = append(buckets, Bucket{Key: p.ID, Label: p.Name, Tasks: []task.Task{}})
		}
	default:
		return []Bucket{}
	}

	for _, t := range tasks {
		if !Matches(t, query) {
			continue
		}
		key := groupKey(t, groupBy)
		// A task lands in the first bucket with its key.
		for i := range buckets {
			if buckets[i].Key == key {
				buckets[i].Tasks = append(buckets[i].Tasks, t.Clone())
				break
			}
		}
	}
	return buckets
}

func groupKey(t task.Task, groupBy GroupBy) string {
	switch groupBy {
	case GroupByStatus:
		return string(t.Status)
	case GroupByPriority:
		return string(t.Priority)
	default:
		return t.ProjectID
	}
}

// ValidGroupByFields returns the list of valid --group-by field names.
func ValidGroupByFields() []string {
	return []string{string(GroupByStatus), string(GroupByPriority), string(GroupByProject)}
}

// ParseGroupBy validates a user-supplied grouping mode.
func ParseGroupBy(input string) (GroupBy, error) {
	g := GroupBy(strings.ToLower(strings.TrimSpace(input)))
	for _, f := range ValidGroupByFields() {
		if string(g) == f {
			return g, nil
		}
	}
	return "", clierr.Newf(clierr.InvalidGroupBy, "invalid group-by field %q", input).
		WithDetails(map[string]any{
			"field":   input,
			"allowed": ValidGroupByFields(),
		})
}

// Next cycles to the following grouping mode (status, priority, project).
func (g GroupBy) Next() GroupBy {
	switch g {
	case GroupByStatus:
		return GroupByPriority
	case GroupByPriority:
		return GroupByProject
	default:
		return GroupByStatus
	}
}
