package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/taskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/taskboard/internal/output"
	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Long: `Displays full details of a single task including its markdown description,
subtasks and comments. ID may be any unique prefix of the task ID.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	if err := task.ValidateRequired("task ID", args[0]); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	state, err := loadBoard(cfg)
	if err != nil {
		return err
	}

	t, err := findTask(state.Tasks(), strings.TrimSpace(args[0]))
	if err != nil {
		return err
	}

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	if format == output.FormatCompact {
		output.TaskDetailCompact(os.Stdout, t)
		return nil
	}

	output.TaskDetail(os.Stdout, t, state.Projects(), state.Tags())
	return nil
}

// findTask resolves ref as an exact ID first, then as a unique ID prefix.
func findTask(tasks []task.Task, ref string) (task.Task, error) {
	var matches []task.Task
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return task.Task{}, task.TaskNotFound(ref)
	case 1:
		return matches[0], nil
	}
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	return task.Task{}, clierr.Newf(clierr.InvalidInput, "task ID prefix %q is ambiguous", ref).
		WithDetails(map[string]any{"matches": ids})
}
