package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/twiced-technology-gmbh/taskboard/internal/board"
	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

const (
	idWidth     = 8
	detailWidth = 80
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle  = lipgloss.NewStyle().Bold(true)

	// Status colors aligned with TUI column-header palette.
	statusStyles = map[string]lipgloss.Style{
		string(task.StatusNotStarted): lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		string(task.StatusInProgress): lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		string(task.StatusDone):       lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}

	// Priority colors matching TUI priority palette.
	priorityStyles = map[string]lipgloss.Style{
		string(task.PriorityHigh):   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		string(task.PriorityMedium): lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		string(task.PriorityLow):    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	tagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))

	colorEnabled  = true
	markdownStyle = "dark"
)

// DisableColor strips all styling from table output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	titleStyle = lipgloss.NewStyle()
	statusStyles = map[string]lipgloss.Style{}
	priorityStyles = map[string]lipgloss.Style{}
	tagStyle = lipgloss.NewStyle()
	colorEnabled = false
	markdownStyle = "notty"
}

// ColorEnabled reports whether DisableColor has not been called.
func ColorEnabled() bool { return colorEnabled }

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []task.Task, projects []task.Project) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	statusW, prioW, titleW, projW, tagsW := 8, 10, 5, 9, 6
	for _, t := range tasks {
		statusW = max(statusW, len(t.Status)+pad)
		prioW = max(prioW, len(t.Priority)+pad)
		titleW = max(titleW, min(len(t.Title)+pad, 50)) //nolint:mnd // max title column width
		projW = max(projW, min(len(projectName(projects, t.ProjectID))+pad, 24)) //nolint:mnd // max project column width
		tagsW = max(tagsW, min(len(strings.Join(t.Tags, ","))+pad, 30))          //nolint:mnd // max tags column width
	}
	idW := idWidth + pad

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %-*s %s",
		idW, "ID", statusW, "STATUS", prioW, "PRIORITY",
		titleW, "TITLE", projW, "PROJECT", tagsW, "TAGS", "SUBTASKS")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, t := range tasks {
		project := projectName(projects, t.ProjectID)
		if project == "" {
			project = dimStyle.Render("--")
		}
		tags := strings.Join(t.Tags, ",")
		if tags == "" {
			tags = dimStyle.Render("--")
		} else {
			tags = tagStyle.Render(truncate(tags, 28)) //nolint:mnd // tags column width minus pad
		}

		row := fmt.Sprintf("%s %s %s %s %s %s %s",
			padRight(ShortID(t.ID), idW),
			padRight(styledValue(string(t.Status), statusStyles), statusW),
			padRight(styledValue(string(t.Priority), priorityStyles), prioW),
			padRight(truncate(t.Title, 48), titleW), //nolint:mnd // title column width minus pad
			padRight(project, projW),
			padRight(tags, tagsW),
			progress(t))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail. The description is
// rendered as markdown.
func TaskDetail(w io.Writer, t task.Task, projects []task.Project, tags []task.Tag) {
	fmt.Fprintln(w, titleStyle.Render(t.Title))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(t.Title)))

	printField(w, "ID", t.ID)
	printField(w, "Status", styledValue(string(t.Status), statusStyles))
	printField(w, "Priority", styledValue(string(t.Priority), priorityStyles))
	printField(w, "Project", stringOrDash(projectName(projects, t.ProjectID)))
	if len(t.Tags) > 0 {
		printField(w, "Tags", renderTags(t.Tags, tags))
	} else {
		printField(w, "Tags", dimStyle.Render("--"))
	}
	if len(t.Files) > 0 {
		printField(w, "Files", strings.Join(t.Files, ", "))
	}

	if t.Description != "" {
		var md Markdown
		fmt.Fprintln(w)
		fmt.Fprintln(w, md.Render(t.Description, detailWidth))
	}

	if len(t.SubTasks) > 0 {
		done, total := t.SubTaskProgress()
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Subtasks (%d/%d)", done, total)))
		for _, s := range t.SubTasks {
			box := "[ ]"
			if s.Completed {
				box = "[x]"
			}
			fmt.Fprintf(w, "  %s %s\n", box, s.Title)
		}
	}

	if len(t.Comments) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("Comments"))
		for _, c := range t.Comments {
			meta := c.Author + " " + c.CreatedAt.Format("2006-01-02 15:04")
			fmt.Fprintf(w, "  %s\n    %s\n", dimStyle.Render(meta), c.Content)
		}
	}
}

// BoardTable renders a grouped board view: a header line followed by one
// section per bucket.
func BoardTable(w io.Writer, ov board.Overview, buckets []board.Bucket) {
	fmt.Fprintln(w, titleStyle.Render(ov.BoardName))
	header := fmt.Sprintf("Unfinished Tasks: %d  Total: %d  Grouped by: %s", ov.Unfinished, ov.TotalTasks, ov.GroupBy)
	if ov.Query != "" {
		header += "  Search: " + strconv.Quote(ov.Query)
	}
	fmt.Fprintln(w, dimStyle.Render(header))

	if len(buckets) == 0 {
		fmt.Fprintln(os.Stderr, "No columns to show.")
		return
	}

	for _, b := range buckets {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s (%d)", b.Label, len(b.Tasks))))
		if len(b.Tasks) == 0 {
			fmt.Fprintln(w, "  "+dimStyle.Render("--"))
			continue
		}
		for _, t := range b.Tasks {
			line := fmt.Sprintf("  %s %s %s",
				padRight(ShortID(t.ID), idWidth),
				padRight(styledValue(string(t.Priority), priorityStyles), 8), //nolint:mnd // priority column width
				t.Title)
			if _, total := t.SubTaskProgress(); total > 0 {
				line += " " + dimStyle.Render(progress(t))
			}
			if len(t.Tags) > 0 {
				line += " " + tagStyle.Render("("+strings.Join(t.Tags, ", ")+")")
			}
			fmt.Fprintln(w, line)
		}
	}
}

// ProjectTable renders projects with their task counts.
func ProjectTable(w io.Writer, projects []task.Project, usage map[string]int) {
	if len(projects) == 0 {
		fmt.Fprintln(os.Stderr, "No projects found.")
		return
	}
	const pad = 2
	nameW := 6
	for _, p := range projects {
		nameW = max(nameW, lipgloss.Width(p.Name)+pad)
	}
	idW := idWidth + pad
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-*s %-*s %s", idW, "ID", nameW, "NAME", "TASKS")))
	for _, p := range projects {
		fmt.Fprintf(w, "%s %s %d\n", padRight(ShortID(p.ID), idW), padRight(p.Name, nameW), usage[p.ID])
	}
}

// TagTable renders tags with their colors and task counts.
func TagTable(w io.Writer, tags []task.Tag, usage map[string]int) {
	if len(tags) == 0 {
		fmt.Fprintln(os.Stderr, "No tags found.")
		return
	}
	const pad = 2
	nameW := 6
	for _, t := range tags {
		nameW = max(nameW, lipgloss.Width(t.Name)+pad)
	}
	idW := idWidth + pad
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-*s %-*s %-9s %s", idW, "ID", nameW, "NAME", "COLOR", "TASKS")))
	for _, t := range tags {
		fmt.Fprintf(w, "%s %s %s %d\n",
			padRight(ShortID(t.ID), idW),
			padRight(TagStyle(t.Color).Render(t.Name), nameW),
			padRight(t.Color, 9), //nolint:mnd // "#rrggbb" plus pad
			usage[t.ID])
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// TagStyle returns the foreground style for a tag color. Invalid or empty
// colors, and disabled color output, yield the plain tag style.
func TagStyle(color string) lipgloss.Style {
	if !colorEnabled || !validHexColor(color) {
		return tagStyle
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// ShortID truncates long IDs (UUIDs) to their first eight characters.
func ShortID(id string) string {
	if len(id) > idWidth {
		return id[:idWidth]
	}
	return id
}

func renderTags(names []string, tags []task.Tag) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		color := ""
		for _, t := range tags {
			if strings.EqualFold(t.Name, n) {
				color = t.Color
				break
			}
		}
		parts = append(parts, TagStyle(color).Render(n))
	}
	return strings.Join(parts, ", ")
}

func progress(t task.Task) string {
	done, total := t.SubTaskProgress()
	if total == 0 {
		return ""
	}
	return strconv.Itoa(done) + "/" + strconv.Itoa(total)
}

func projectName(projects []task.Project, id string) string {
	for _, p := range projects {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}

func validHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' { //nolint:mnd // "#rrggbb"
		return false
	}
	for _, c := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return false
		}
	}
	return true
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func stringOrDash(s string) string {
	if s == "" {
		return dimStyle.Render("--")
	}
	return s
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
