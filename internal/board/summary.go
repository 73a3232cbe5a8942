package board

import "github.com/twiced-technology-gmbh/taskboard/internal/task"

// BucketCount holds the task count of one bucket.
type BucketCount struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Overview is the aggregate board header.
type Overview struct {
	BoardName  string        `json:"board_name"`
	GroupBy    GroupBy       `json:"group_by"`
	Query      string        `json:"query,omitempty"`
	TotalTasks int           `json:"total_tasks"`
	Unfinished int           `json:"unfinished"`
	Buckets    []BucketCount `json:"buckets"`
}

// Summarize computes the board header for a grouped view. Total and
// unfinished counts cover every task, not just the ones the query kept.
func Summarize(boardName string, groupBy GroupBy, query string, tasks []task.Task, buckets []Bucket) Overview {
	counts := make([]BucketCount, 0, len(buckets))
	for _, b := range buckets {
		counts = append(counts, BucketCount{Key: b.Key, Label: b.Label, Count: len(b.Tasks)})
	}
	return Overview{
		BoardName:  boardName,
		GroupBy:    groupBy,
		Query:      query,
		TotalTasks: len(tasks),
		Unfinished: countUnfinished(tasks),
		Buckets:    counts,
	}
}

// TagUsage counts how many tasks reference each tag by name (case-insensitive).
func TagUsage(tags []task.Tag, tasks []task.Task) map[string]int {
	usage := make(map[string]int, len(tags))
	for _, tag := range tags {
		for _, t := range tasks {
			if t.HasTag(tag.Name) {
				usage[tag.ID]++
			}
		}
	}
	return usage
}

// ProjectUsage counts the tasks assigned to each project ID.
func ProjectUsage(tasks []task.Task) map[string]int {
	usage := make(map[string]int)
	for _, t := range tasks {
		if t.ProjectID != "" {
			usage[t.ProjectID]++
		}
	}
	return usage
}
