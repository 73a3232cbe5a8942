package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/taskboard/internal/board"
	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}
	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t task.Task) {
	line := formatTaskLine(t)
	if t.ProjectID != "" {
		line += " project:" + t.ProjectID
	}
	fmt.Fprintln(w, line)

	if t.Description != "" {
		for _, l := range strings.Split(t.Description, "\n") {
			fmt.Fprintln(w, "  "+l)
		}
	}
	for _, s := range t.SubTasks {
		mark := "-"
		if s.Completed {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %s\n", mark, s.Title)
	}
	for _, c := range t.Comments {
		fmt.Fprintf(w, "  > %s (%s)\n", c.Content, c.Author)
	}
}

// BoardCompact renders a grouped board view in compact format.
func BoardCompact(w io.Writer, ov board.Overview, buckets []board.Bucket) {
	fmt.Fprintf(w, "%s (%d tasks, %d unfinished)\n", ov.BoardName, ov.TotalTasks, ov.Unfinished)
	for _, b := range buckets {
		fmt.Fprintf(w, "%s: %d\n", b.Label, len(b.Tasks))
		for _, t := range b.Tasks {
			fmt.Fprintln(w, "  "+formatTaskLine(t))
		}
	}
}

// ProjectCompact renders projects one per line.
func ProjectCompact(w io.Writer, projects []task.Project, usage map[string]int) {
	if len(projects) == 0 {
		fmt.Fprintln(os.Stderr, "No projects found.")
		return
	}
	for _, p := range projects {
		fmt.Fprintf(w, "#%s %s (%d tasks)\n", p.ID, p.Name, usage[p.ID])
	}
}

// TagCompact renders tags one per line.
func TagCompact(w io.Writer, tags []task.Tag, usage map[string]int) {
	if len(tags) == 0 {
		fmt.Fprintln(os.Stderr, "No tags found.")
		return
	}
	for _, t := range tags {
		fmt.Fprintf(w, "#%s %s %s (%d tasks)\n", t.ID, t.Name, t.Color, usage[t.ID])
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t task.Task) string {
	line := "#" + ShortID(t.ID) + " [" + string(t.Status) + "/" + string(t.Priority) + "] " + t.Title
	if done, total := t.SubTaskProgress(); total > 0 {
		line += " " + strconv.Itoa(done) + "/" + strconv.Itoa(total)
	}
	if len(t.Tags) > 0 {
		line += " (" + strings.Join(t.Tags, ", ") + ")"
	}
	return line
}
