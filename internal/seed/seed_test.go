package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/taskboard/internal/board"
	"github.com/twiced-technology-gmbh/taskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

func TestSample(t *testing.T) {
	d := Sample()
	require.Len(t, d.Projects, 4)
	require.Len(t, d.Tags, 7)
	require.Len(t, d.Tasks, 3)

	auth := d.Tasks[0]
	assert.Equal(t, "Implement authentication", auth.Title)
	assert.Equal(t, task.StatusInProgress, auth.Status)
	assert.Equal(t, task.PriorityHigh, auth.Priority)
	assert.Equal(t, []string{"Frontend", "Security"}, auth.Tags)
	done, total := auth.SubTaskProgress()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, total)

	assert.Equal(t, "#b45309", d.Tags[6].Color)
}

func TestSampleGroupedByStatus(t *testing.T) {
	d := Sample()
	buckets := board.Group(d.Tasks, d.Projects, board.GroupByStatus, "")
	require.Len(t, buckets, 3)
	assert.Equal(t, "Design system update", buckets[0].Tasks[0].Title)
	assert.Equal(t, "Implement authentication", buckets[1].Tasks[0].Title)
	assert.Equal(t, "API Documentation", buckets[2].Tasks[0].Title)
}

func TestParseDefaults(t *testing.T) {
	d, err := Parse(strings.NewReader("tasks:\n  - id: x\n    title: Bare\n"))
	require.NoError(t, err)
	assert.Equal(t, task.StatusNotStarted, d.Tasks[0].Status)
	assert.Equal(t, task.PriorityLow, d.Tasks[0].Priority)
}

func TestParseEmpty(t *testing.T) {
	d, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, d.Tasks)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"unknown field":    "tasks:\n  - id: x\n    title: t\n    assignee: bob\n",
		"bad status":       "tasks:\n  - id: x\n    title: t\n    status: later\n",
		"duplicate id":     "projects:\n  - id: \"1\"\n    name: A\n  - id: \"1\"\n    name: B\n",
		"missing id":       "tags:\n  - name: A\n",
		"missing title":    "tasks:\n  - id: x\n",
		"not yaml mapping": "- just\n- a list\n",
	}
	for name, input := range tests {
		_, err := Parse(strings.NewReader(input))
		require.Error(t, err, name)
		assert.Equal(t, clierr.InvalidSeed, clierr.CodeOf(err), name)
	}
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "seed.yml")
	require.NoError(t, Write(path, Sample()))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Sample(), got)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Equal(t, clierr.InvalidSeed, clierr.CodeOf(err))
}

func TestLoadAddsPathToDetails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("tasks:\n  - id: x\n"), 0o600))

	_, err := Load(path)
	var ce *clierr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, path, ce.Details["path"])
}
