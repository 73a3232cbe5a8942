package task

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/taskboard/internal/clierr"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
	}{
		{"not_started", StatusNotStarted},
		{"In Progress", StatusInProgress},
		{"in-progress", StatusInProgress},
		{" DONE ", StatusDone},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseStatus("blocked")
	require.Error(t, err)
	assert.Equal(t, clierr.InvalidStatus, clierr.CodeOf(err))
}

func TestParsePriority(t *testing.T) {
	got, err := ParsePriority("High")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, got)

	_, err = ParsePriority("urgent")
	assert.Equal(t, clierr.InvalidPriority, clierr.CodeOf(err))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Not Started", StatusNotStarted.Label())
	assert.Equal(t, "In Progress", StatusInProgress.Label())
	assert.Equal(t, "Done", StatusDone.Label())
	assert.Equal(t, "High", PriorityHigh.Label())
	assert.Equal(t, "Medium", PriorityMedium.Label())
	assert.Equal(t, "Low", PriorityLow.Label())
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Less(t, PriorityMedium.Rank(), PriorityLow.Rank())
	assert.Equal(t, len(Priorities), Priority("bogus").Rank())
	assert.False(t, Priority("bogus").Valid())
}

func TestDecodeRejectsUnknownEnums(t *testing.T) {
	var tk Task
	require.NoError(t, yaml.Unmarshal([]byte("id: a\ntitle: x\nstatus: done\npriority: high\n"), &tk))
	assert.Equal(t, StatusDone, tk.Status)
	assert.Equal(t, PriorityHigh, tk.Priority)

	assert.Error(t, yaml.Unmarshal([]byte("status: later\n"), &tk))
	assert.Error(t, json.Unmarshal([]byte(`{"priority":"urgent"}`), &tk))

	require.NoError(t, json.Unmarshal([]byte(`{"status":"in_progress"}`), &tk))
	assert.Equal(t, StatusInProgress, tk.Status)
}

func TestSubTaskProgress(t *testing.T) {
	tk := Task{SubTasks: []SubTask{
		{ID: "1", Title: "a", Completed: true},
		{ID: "2", Title: "b"},
	}}
	done, total := tk.SubTaskProgress()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, total)
}

func TestHasTag(t *testing.T) {
	tk := Task{Tags: []string{"Frontend", "Security"}}
	assert.True(t, tk.HasTag("security"))
	assert.False(t, tk.HasTag("Design"))
}

func TestCloneIsDeep(t *testing.T) {
	orig := Task{Tags: []string{"a"}, SubTasks: []SubTask{{ID: "1"}}}
	c := orig.Clone()
	c.Tags[0] = "b"
	c.SubTasks[0].Completed = true
	assert.Equal(t, "a", orig.Tags[0])
	assert.False(t, orig.SubTasks[0].Completed)
}

func TestValidateDraft(t *testing.T) {
	err := ValidateDraft(Draft{Title: "   "})
	assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))

	assert.NoError(t, ValidateDraft(Draft{Title: "Write docs"}))

	err = ValidateDraft(Draft{Title: "x", Status: "later"})
	assert.Equal(t, clierr.InvalidStatus, clierr.CodeOf(err))
}
