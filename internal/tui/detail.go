package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/taskboard/internal/output"
	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

// viewDetail renders the full record of the selected task.
func (b *Board) viewDetail() string {
	t, err := b.state.Task(b.detailID)
	if err != nil {
		return dialogStyle.Render(errorStyle.Render(err.Error()) + "\n\n" + dimStyle.Render("esc:back"))
	}

	width := max(b.width-dialogPadX*2-2, 20) //nolint:mnd // border
	rows := []string{titleBarStyle.Render(t.Title), ""}

	meta := fmt.Sprintf("%s  %s  %s",
		t.Status.Label(),
		priorityStyle(string(t.Priority)).Render(t.Priority.Label()),
		dimStyle.Render("#"+output.ShortID(t.ID)))
	if p, ok := b.state.Project(t.ProjectID); ok {
		meta += "  " + labelStyle.Render("project: ") + p.Name
	}
	rows = append(rows, meta)

	if len(t.Tags) > 0 {
		rows = append(rows, b.renderTagList(t.Tags))
	}

	if desc := b.markdown.Render(t.Description, width); desc != "" {
		rows = append(rows, "", desc)
	}

	if len(t.SubTasks) > 0 {
		done, total := t.SubTaskProgress()
		rows = append(rows, "", labelStyle.Render(fmt.Sprintf("Subtasks %d/%d", done, total)))
		for _, s := range t.SubTasks {
			mark := "[ ]"
			if s.Completed {
				mark = "[x]"
			}
			rows = append(rows, "  "+mark+" "+s.Title)
		}
	}

	if len(t.Comments) > 0 {
		rows = append(rows, "", labelStyle.Render("Comments"))
		for _, c := range t.Comments {
			rows = append(rows, commentLine(c))
		}
	}

	if len(t.Files) > 0 {
		rows = append(rows, "", labelStyle.Render("Files"))
		for _, f := range t.Files {
			rows = append(rows, "  "+f)
		}
	}

	rows = append(rows, "", dimStyle.Render("esc:back"))
	return dialogStyle.Width(b.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...)) //nolint:mnd // border
}

func (b *Board) renderTagList(names []string) string {
	parts := make([]string, len(names))
	for i, name := range names {
		color := ""
		if tag, ok := b.state.TagByName(name); ok {
			color = tag.Color
		}
		parts[i] = tagStyle(name, color).Render(name)
	}
	return strings.Join(parts, " ")
}

func commentLine(c task.Comment) string {
	header := dimStyle.Render(fmt.Sprintf("  %s, %s", c.Author, c.CreatedAt.Format("2006-01-02 15:04")))
	return header + "\n    " + c.Content
}
