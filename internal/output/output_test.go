package output

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/taskboard/internal/board"
	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

func TestMain(m *testing.M) {
	DisableColor()
	os.Exit(m.Run())
}

func fixture() ([]task.Task, []task.Project, []task.Tag) {
	projects := []task.Project{{ID: "1", Name: "Project A"}}
	tags := []task.Tag{{ID: "1", Name: "Frontend", Color: "#9b87f5"}}
	tasks := []task.Task{
		{
			ID: "1", Title: "Implement authentication", Description: "Add **login**",
			Status: task.StatusInProgress, Priority: task.PriorityHigh, ProjectID: "1",
			Tags:     []string{"Frontend"},
			SubTasks: []task.SubTask{{ID: "1", Title: "Setup", Completed: true}, {ID: "2", Title: "Form"}},
			Comments: []task.Comment{{ID: "c", Content: "started", Author: "alice", CreatedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)}},
		},
		{ID: "0b6a2f4e-1111-2222-3333-444455556666", Title: "Orphan", Status: task.StatusDone, Priority: task.PriorityLow},
	}
	return tasks, projects, tags
}

func TestDetect(t *testing.T) {
	t.Setenv(EnvVar, "")
	assert.Equal(t, FormatTable, Detect(false, false, false))
	assert.Equal(t, FormatJSON, Detect(true, true, true))
	assert.Equal(t, FormatCompact, Detect(false, true, true))

	t.Setenv(EnvVar, "json")
	assert.Equal(t, FormatJSON, Detect(false, false, false))
	t.Setenv(EnvVar, "oneline")
	assert.Equal(t, FormatCompact, Detect(false, false, false))
	assert.Equal(t, FormatTable, Detect(false, true, false))
}

func TestTaskTable(t *testing.T) {
	tasks, projects, _ := fixture()
	var buf bytes.Buffer
	TaskTable(&buf, tasks, projects)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "in_progress")
	assert.Contains(t, lines[1], "Project A")
	assert.Contains(t, lines[1], "1/2")
	assert.Contains(t, lines[2], "0b6a2f4e")
	assert.NotContains(t, lines[2], "1111")
}

func TestTaskDetail(t *testing.T) {
	tasks, projects, tags := fixture()
	var buf bytes.Buffer
	TaskDetail(&buf, tasks[0], projects, tags)

	out := buf.String()
	assert.Contains(t, out, "Implement authentication")
	assert.Contains(t, out, "Project A")
	assert.Contains(t, out, "login")
	assert.Contains(t, out, "Subtasks (1/2)")
	assert.Contains(t, out, "[x] Setup")
	assert.Contains(t, out, "[ ] Form")
	assert.Contains(t, out, "alice 2026-01-02 03:04")
}

func TestBoardTable(t *testing.T) {
	tasks, projects, _ := fixture()
	buckets := board.Group(tasks, projects, board.GroupByStatus, "")
	ov := board.Summarize("Demo", board.GroupByStatus, "", tasks, buckets)

	var buf bytes.Buffer
	BoardTable(&buf, ov, buckets)
	out := buf.String()
	assert.Contains(t, out, "Unfinished Tasks: 1")
	assert.Contains(t, out, "Not Started (0)")
	assert.Contains(t, out, "In Progress (1)")
	assert.Contains(t, out, "Done (1)")
	assert.Less(t, strings.Index(out, "Not Started"), strings.Index(out, "Done"))
}

func TestBoardCompact(t *testing.T) {
	tasks, projects, _ := fixture()
	buckets := board.Group(tasks, projects, board.GroupByProject, "")
	ov := board.Summarize("Demo", board.GroupByProject, "", tasks, buckets)

	var buf bytes.Buffer
	BoardCompact(&buf, ov, buckets)
	assert.Equal(t,
		"Demo (2 tasks, 1 unfinished)\nProject A: 1\n  #1 [in_progress/high] Implement authentication 1/2 (Frontend)\n",
		buf.String())
}

func TestTagAndProjectTables(t *testing.T) {
	tasks, projects, tags := fixture()
	var buf bytes.Buffer
	TagTable(&buf, tags, board.TagUsage(tags, tasks))
	assert.Contains(t, buf.String(), "#9b87f5")
	assert.Contains(t, buf.String(), "Frontend")

	buf.Reset()
	ProjectCompact(&buf, projects, board.ProjectUsage(tasks))
	assert.Equal(t, "#1 Project A (1 tasks)\n", buf.String())
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, "TASK_NOT_FOUND", "task \"x\" not found", map[string]any{"id": "x"})
	assert.JSONEq(t, `{"error":"task \"x\" not found","code":"TASK_NOT_FOUND","details":{"id":"x"}}`, buf.String())
}

func TestMarkdownFallsBackOnEmpty(t *testing.T) {
	var md Markdown
	assert.Empty(t, md.Render("   ", 40))
	assert.Contains(t, md.Render("# Heading", 40), "Heading")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "1", ShortID("1"))
	assert.Equal(t, "0b6a2f4e", ShortID("0b6a2f4e-1111"))
}
