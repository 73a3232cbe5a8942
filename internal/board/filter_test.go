package board

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

func TestMatches(t *testing.T) {
	tk := task.Task{
		Title:       "Implement authentication",
		Description: "Add user login",
		Comments:    []task.Comment{{Content: "Blocked on OAuth keys"}},
	}
	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"AUTHENTICATION", true},
		{"user log", true},
		{"oauth", true},
		{"zzz", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Matches(tk, tt.query), tt.query)
	}
}

func TestMatchesIgnoresTags(t *testing.T) {
	tk := task.Task{Title: "x", Tags: []string{"Security"}}
	assert.False(t, Matches(tk, "security"))
}

func TestFilterOptions(t *testing.T) {
	seed := sampleSeed()
	seed.Tasks[1].Tags = []string{"Design"}

	assert.Equal(t, []string{"c"}, ids(Filter(seed.Tasks, FilterOptions{Statuses: []task.Status{task.StatusDone}})))
	assert.Equal(t, []string{"a", "c"}, ids(Filter(seed.Tasks, FilterOptions{Priorities: []task.Priority{task.PriorityHigh, task.PriorityLow}})))
	assert.Equal(t, []string{"a", "b"}, ids(Filter(seed.Tasks, FilterOptions{ProjectID: "1"})))
	assert.Equal(t, []string{"b"}, ids(Filter(seed.Tasks, FilterOptions{Tag: "design"})))
	assert.Equal(t, []string{"a", "b", "c"}, ids(Filter(seed.Tasks, FilterOptions{})))
	assert.Empty(t, Filter(seed.Tasks, FilterOptions{ProjectID: "1", Search: "docs"}))
}

func TestFilterProjectsAndTags(t *testing.T) {
	projects := []task.Project{{ID: "1", Name: "Project A"}, {ID: "2", Name: "Home"}}
	assert.Equal(t, []task.Project{{ID: "2", Name: "Home"}}, FilterProjects(projects, "HOM"))
	assert.Len(t, FilterProjects(projects, ""), 2)

	tags := []task.Tag{{ID: "1", Name: "Frontend"}, {ID: "2", Name: "Security"}}
	assert.Equal(t, []task.Tag{{ID: "2", Name: "Security"}}, FilterTags(tags, "secu"))
	assert.Empty(t, FilterTags(tags, "zzz"))
}

func TestSort(t *testing.T) {
	tasks := sampleSeed().Tasks

	Sort(tasks, "title", false)
	assert.Equal(t, []string{"c", "a", "b"}, ids(tasks))

	Sort(tasks, "priority", false)
	assert.Equal(t, []string{"a", "b", "c"}, ids(tasks))

	Sort(tasks, "status", false)
	assert.Equal(t, []string{"b", "a", "c"}, ids(tasks))

	Sort(tasks, "status", true)
	assert.Equal(t, []string{"c", "a", "b"}, ids(tasks))
}
