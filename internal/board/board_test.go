package board

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/taskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return "id-" + strconv.Itoa(n)
	}
}

var fixedNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func newTestBoard(seed Seed) *Board {
	return New(seed, Options{
		IDGenerator: seqIDs(),
		Clock:       func() time.Time { return fixedNow },
		Author:      "alice",
	})
}

func sampleSeed() Seed {
	return Seed{
		Projects: []task.Project{{ID: "1", Name: "Project A"}, {ID: "2", Name: "Project B"}},
		Tags:     []task.Tag{{ID: "t1", Name: "Frontend", Color: "#9b87f5"}, {ID: "t2", Name: "Design", Color: "#22c55e"}},
		Tasks: []task.Task{
			{ID: "a", Title: "Auth", Status: task.StatusInProgress, Priority: task.PriorityHigh, ProjectID: "1"},
			{ID: "b", Title: "Design update", Status: task.StatusNotStarted, Priority: task.PriorityMedium, ProjectID: "1"},
			{ID: "c", Title: "API Docs", Status: task.StatusDone, Priority: task.PriorityLow, ProjectID: "2"},
		},
	}
}

func TestCreateTaskAssignsDistinctIDs(t *testing.T) {
	b := New(Seed{}, Options{})
	seen := make(map[string]bool)
	for i := range 50 {
		created, err := b.CreateTask(task.Draft{Title: "Task " + strconv.Itoa(i)})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.False(t, seen[created.ID], "duplicate id %s", created.ID)
		seen[created.ID] = true
	}
	assert.Len(t, b.Tasks(), 50)
}

func TestCreateTaskAppendsInOrder(t *testing.T) {
	b := newTestBoard(sampleSeed())
	created, err := b.CreateTask(task.Draft{Title: "  New  "})
	require.NoError(t, err)

	tasks := b.Tasks()
	require.Len(t, tasks, 4)
	assert.Equal(t, created.ID, tasks[3].ID)
	assert.Equal(t, "New", tasks[3].Title)
}

func TestCreateTaskDefaults(t *testing.T) {
	b := newTestBoard(Seed{})
	created, err := b.CreateTask(task.Draft{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, task.StatusNotStarted, created.Status)
	assert.Equal(t, task.PriorityLow, created.Priority)
	assert.Empty(t, created.ProjectID)
	assert.Empty(t, created.Comments)
}

func TestCreateTaskKeepsDraftedSubtasksAndComment(t *testing.T) {
	b := newTestBoard(Seed{})
	created, err := b.CreateTask(task.Draft{
		Title:    "Ship",
		Status:   task.StatusInProgress,
		Priority: task.PriorityHigh,
		Tags:     []string{"Frontend"},
		SubTasks: []string{"write", " ", "review"},
		Comment:  "kick off",
	})
	require.NoError(t, err)

	require.Len(t, created.SubTasks, 2)
	assert.Equal(t, "write", created.SubTasks[0].Title)
	assert.False(t, created.SubTasks[0].Completed)
	require.Len(t, created.Comments, 1)
	assert.Equal(t, task.Comment{ID: created.Comments[0].ID, Content: "kick off", CreatedAt: fixedNow, Author: "alice"}, created.Comments[0])
	assert.Equal(t, []string{"Frontend"}, created.Tags)
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	b := newTestBoard(sampleSeed())
	_, err := b.CreateTask(task.Draft{Title: ""})
	require.Error(t, err)
	assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))
	assert.Len(t, b.Tasks(), 3)
}

func TestTaskLookup(t *testing.T) {
	b := newTestBoard(sampleSeed())
	got, err := b.Task("c")
	require.NoError(t, err)
	assert.Equal(t, "API Docs", got.Title)

	_, err = b.Task("nope")
	assert.Equal(t, clierr.TaskNotFound, clierr.CodeOf(err))
}

func TestCollectionsAreCopies(t *testing.T) {
	b := newTestBoard(sampleSeed())
	tasks := b.Tasks()
	tasks[0].Title = "mutated"
	projects := b.Projects()
	projects[0].Name = "mutated"

	got, err := b.Task("a")
	require.NoError(t, err)
	assert.Equal(t, "Auth", got.Title)
	assert.Equal(t, "Project A", b.Projects()[0].Name)
}

func TestProjectCRUD(t *testing.T) {
	b := newTestBoard(sampleSeed())

	projects, err := b.AddProject("Project C")
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "Project C", projects[2].Name)

	projects, err = b.EditProject("1", "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", projects[0].Name)

	projects = b.DeleteProject("2")
	require.Len(t, projects, 2)
	assert.Equal(t, "1", projects[0].ID)
	assert.Equal(t, "Project C", projects[1].Name)
}

func TestDeleteProjectPreservesOrder(t *testing.T) {
	b := newTestBoard(Seed{Projects: []task.Project{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}}})
	got := b.DeleteProject("2")
	assert.Equal(t, []task.Project{{ID: "1"}, {ID: "3"}, {ID: "4"}}, got)
}

func TestUnknownIDIsNoOp(t *testing.T) {
	b := newTestBoard(sampleSeed())
	before := b.Projects()

	after, err := b.EditProject("missing", "x")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, before, b.DeleteProject("missing"))

	tags, err := b.EditTag("missing", "x", "#000000")
	require.NoError(t, err)
	assert.Equal(t, sampleSeed().Tags, tags)
	assert.Equal(t, sampleSeed().Tags, b.DeleteTag("missing"))
}

func TestBlankNamesRejected(t *testing.T) {
	b := newTestBoard(sampleSeed())
	_, err := b.AddProject("  ")
	assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))
	_, err = b.EditProject("1", "")
	assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))
	_, err = b.AddTag("", "#fff")
	assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))
	assert.Equal(t, sampleSeed().Projects, b.Projects())
}

func TestTagCRUD(t *testing.T) {
	b := newTestBoard(sampleSeed())

	tags, err := b.AddTag("Urgent", "")
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, DefaultTagColor, tags[2].Color)

	tags, err = b.EditTag("t1", "UI", "#000000")
	require.NoError(t, err)
	assert.Equal(t, task.Tag{ID: "t1", Name: "UI", Color: "#000000"}, tags[0])

	tags = b.DeleteTag("t2")
	require.Len(t, tags, 2)
	assert.Equal(t, "t1", tags[0].ID)
	assert.Equal(t, "Urgent", tags[1].Name)
}

func TestDeleteTagDoesNotCascade(t *testing.T) {
	seed := sampleSeed()
	seed.Tasks[0].Tags = []string{"Frontend"}
	b := newTestBoard(seed)
	b.DeleteTag("t1")

	got, err := b.Task("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"Frontend"}, got.Tags)
}

func TestReplaceCollections(t *testing.T) {
	b := newTestBoard(sampleSeed())
	b.ReplaceProjects([]task.Project{{ID: "9", Name: "Only"}})
	b.ReplaceTags(nil)
	assert.Equal(t, []task.Project{{ID: "9", Name: "Only"}}, b.Projects())
	assert.Empty(t, b.Tags())
}

func TestUnfinished(t *testing.T) {
	b := newTestBoard(sampleSeed())
	assert.Equal(t, 2, b.Unfinished())
}

func TestMutationsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	b := New(Seed{}, Options{IDGenerator: seqIDs(), Logger: logger})

	_, err := b.AddProject("Alpha")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "add-project")
	assert.Contains(t, buf.String(), "Alpha")
}

func TestTagByName(t *testing.T) {
	b := newTestBoard(sampleSeed())
	tag, ok := b.TagByName("frontend")
	require.True(t, ok)
	assert.Equal(t, "t1", tag.ID)
	_, ok = b.TagByName("missing")
	assert.False(t, ok)
}
