package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/taskboard/internal/board"
	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

// Task form fields, in focus order.
const (
	fieldTitle = iota
	fieldDescription
	fieldStatus
	fieldPriority
	fieldProject
	fieldTags
	fieldSubTasks
	fieldComment
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title", "Description", "Status", "Priority", "Project", "Tags", "Subtasks", "Comment",
}

// taskForm collects a task.Draft. Status and priority cycle with left/right;
// project and tag fields are search boxes over the board's collections.
type taskForm struct {
	state *board.Board
	keys  keyMap
	focus int
	err   error

	title       textinput.Model
	description textarea.Model
	status      int
	priority    int

	projectSearch textinput.Model
	projectIdx    int // index into the filtered list; -1 means no project
	projectID     string

	tagSearch textinput.Model
	tagIdx    int
	tags      []string

	subTaskInput textinput.Model
	subTasks     []string

	comment textinput.Model
}

func newTaskForm(state *board.Board, preset task.Draft) taskForm {
	f := taskForm{
		state:      state,
		keys:       defaultKeyMap(),
		projectIdx: -1,
		projectID:  preset.ProjectID,
		tags:       append([]string(nil), preset.Tags...),
	}

	f.title = textinput.New()
	f.title.Placeholder = "Task title"
	f.title.CharLimit = 200

	f.description = textarea.New()
	f.description.Placeholder = "Description (markdown)"
	f.description.ShowLineNumbers = false
	f.description.SetHeight(3) //nolint:mnd // description rows

	f.projectSearch = textinput.New()
	f.projectSearch.Placeholder = "Search projects..."
	f.tagSearch = textinput.New()
	f.tagSearch.Placeholder = "Search tags..."
	f.subTaskInput = textinput.New()
	f.subTaskInput.Placeholder = "Add subtask, enter to append"
	f.comment = textinput.New()
	f.comment.Placeholder = "Comment (optional)"

	status := preset.Status
	if status == "" {
		status = state.DefaultStatus()
	}
	f.status = indexOf(task.Statuses, status)
	priority := preset.Priority
	if priority == "" {
		priority = state.DefaultPriority()
	}
	f.priority = indexOf(task.Priorities, priority)

	f.applyFocus()
	return f
}

// Draft returns the form's current input as a draft.
func (f *taskForm) Draft() task.Draft {
	return task.Draft{
		Title:       f.title.Value(),
		Description: f.description.Value(),
		Status:      task.Statuses[f.status],
		Priority:    task.Priorities[f.priority],
		ProjectID:   f.projectID,
		Tags:        append([]string(nil), f.tags...),
		SubTasks:    append([]string(nil), f.subTasks...),
		Comment:     f.comment.Value(),
	}
}

// formResult tells the board what the form wants after a key press.
type formResult int

const (
	formEditing formResult = iota
	formCanceled
	formSubmitted
)

func (f *taskForm) update(msg tea.KeyMsg) (formResult, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Back):
		return formCanceled, nil
	case key.Matches(msg, f.keys.Save):
		if err := task.ValidateDraft(f.Draft()); err != nil {
			f.err = err
			f.focus = fieldTitle
			f.applyFocus()
			return formEditing, nil
		}
		return formSubmitted, nil
	case key.Matches(msg, f.keys.Next):
		f.focus = (f.focus + 1) % fieldCount
		f.applyFocus()
		return formEditing, nil
	case key.Matches(msg, f.keys.Prev):
		f.focus = (f.focus + fieldCount - 1) % fieldCount
		f.applyFocus()
		return formEditing, nil
	}

	switch f.focus {
	case fieldStatus:
		f.status = cycle(f.status, len(task.Statuses), msg.String())
		return formEditing, nil
	case fieldPriority:
		f.priority = cycle(f.priority, len(task.Priorities), msg.String())
		return formEditing, nil
	case fieldProject:
		return formEditing, f.updateProject(msg)
	case fieldTags:
		return formEditing, f.updateTags(msg)
	case fieldSubTasks:
		return formEditing, f.updateSubTasks(msg)
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		if msg.String() == "enter" {
			f.focus = fieldDescription
			f.applyFocus()
			return formEditing, nil
		}
		f.title, cmd = f.title.Update(msg)
		f.err = nil
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldComment:
		f.comment, cmd = f.comment.Update(msg)
	}
	return formEditing, cmd
}

func (f *taskForm) updateProject(msg tea.KeyMsg) tea.Cmd {
	matches := board.FilterProjects(f.state.Projects(), f.projectSearch.Value())
	switch msg.String() {
	case "left", "right":
		// -1 is the "no project" slot ahead of the matches.
		f.projectIdx = cycle(f.projectIdx+1, len(matches)+1, msg.String()) - 1
		f.projectID = ""
		if f.projectIdx >= 0 {
			f.projectID = matches[f.projectIdx].ID
		}
		return nil
	}
	var cmd tea.Cmd
	f.projectSearch, cmd = f.projectSearch.Update(msg)
	f.projectIdx = -1
	return cmd
}

func (f *taskForm) updateTags(msg tea.KeyMsg) tea.Cmd {
	matches := board.FilterTags(f.state.Tags(), f.tagSearch.Value())
	switch msg.String() {
	case "left", "right":
		if len(matches) > 0 {
			f.tagIdx = cycle(f.tagIdx, len(matches), msg.String())
		}
		return nil
	case "enter":
		if f.tagIdx < len(matches) {
			f.toggleTag(matches[f.tagIdx].Name)
		}
		return nil
	}
	var cmd tea.Cmd
	f.tagSearch, cmd = f.tagSearch.Update(msg)
	f.tagIdx = 0
	return cmd
}

func (f *taskForm) toggleTag(name string) {
	for i, t := range f.tags {
		if strings.EqualFold(t, name) {
			f.tags = append(f.tags[:i:i], f.tags[i+1:]...)
			return
		}
	}
	f.tags = append(f.tags, name)
}

func (f *taskForm) updateSubTasks(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		if title := strings.TrimSpace(f.subTaskInput.Value()); title != "" {
			f.subTasks = append(f.subTasks, title)
			f.subTaskInput.Reset()
		}
		return nil
	case "backspace":
		if f.subTaskInput.Value() == "" && len(f.subTasks) > 0 {
			f.subTasks = f.subTasks[:len(f.subTasks)-1]
			return nil
		}
	}
	var cmd tea.Cmd
	f.subTaskInput, cmd = f.subTaskInput.Update(msg)
	return cmd
}

func (f *taskForm) applyFocus() {
	f.title.Blur()
	f.description.Blur()
	f.projectSearch.Blur()
	f.tagSearch.Blur()
	f.subTaskInput.Blur()
	f.comment.Blur()
	switch f.focus {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.description.Focus()
	case fieldProject:
		f.projectSearch.Focus()
	case fieldTags:
		f.tagSearch.Focus()
	case fieldSubTasks:
		f.subTaskInput.Focus()
	case fieldComment:
		f.comment.Focus()
	}
}

func (f *taskForm) setWidth(w int) {
	inner := max(w-dialogPadX*2-4, 20) //nolint:mnd // border + label gutter
	f.title.Width = inner
	f.description.SetWidth(inner)
	f.projectSearch.Width = inner
	f.tagSearch.Width = inner
	f.subTaskInput.Width = inner
	f.comment.Width = inner
}

func (f *taskForm) view() string {
	var rows []string
	rows = append(rows, titleBarStyle.Render("New task"), "")

	for i := range fieldCount {
		label := labelStyle.Render(fieldLabels[i])
		if i == f.focus {
			label = focusedStyle.Render("> " + fieldLabels[i])
		}
		rows = append(rows, label, f.fieldView(i), "")
	}

	if f.err != nil {
		rows = append(rows, errorStyle.Render(f.err.Error()), "")
	}
	rows = append(rows, dimStyle.Render("tab:next shift+tab:prev ←/→:choose enter:add/toggle ctrl+s:save esc:cancel"))
	return dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (f *taskForm) fieldView(i int) string {
	switch i {
	case fieldTitle:
		return f.title.View()
	case fieldDescription:
		return f.description.View()
	case fieldStatus:
		return choiceView(task.Statuses[f.status].Label())
	case fieldPriority:
		p := task.Priorities[f.priority]
		return choiceView(priorityStyle(string(p)).Render(p.Label()))
	case fieldProject:
		name := dimStyle.Render("(none)")
		if p, ok := f.state.Project(f.projectID); ok {
			name = p.Name
		}
		return f.projectSearch.View() + "\n" + choiceView(name)
	case fieldTags:
		return f.tagSearch.View() + "\n" + f.tagChoices()
	case fieldSubTasks:
		lines := make([]string, 0, len(f.subTasks)+1)
		for _, s := range f.subTasks {
			lines = append(lines, "  [ ] "+s)
		}
		lines = append(lines, f.subTaskInput.View())
		return strings.Join(lines, "\n")
	case fieldComment:
		return f.comment.View()
	}
	return ""
}

func (f *taskForm) tagChoices() string {
	matches := board.FilterTags(f.state.Tags(), f.tagSearch.Value())
	if len(matches) == 0 {
		return dimStyle.Render("  no matching tags")
	}
	parts := make([]string, 0, len(matches))
	for i, t := range matches {
		mark := " "
		for _, sel := range f.tags {
			if strings.EqualFold(sel, t.Name) {
				mark = "x"
				break
			}
		}
		item := fmt.Sprintf("[%s] %s", mark, tagStyle(t.Name, t.Color).Render(t.Name))
		if f.focus == fieldTags && i == f.tagIdx {
			item = focusedStyle.Render(">") + item
		}
		parts = append(parts, item)
	}
	return "  " + strings.Join(parts, "  ")
}

func choiceView(s string) string {
	return "  ‹ " + s + " ›"
}

// cycle moves idx left or right within [0, n), wrapping at both ends.
func cycle(idx, n int, dir string) int {
	if n <= 0 {
		return 0
	}
	switch dir {
	case "left", "h":
		return (idx + n - 1) % n
	case "right", "l":
		return (idx + 1) % n
	}
	return idx
}

func indexOf[T comparable](list []T, v T) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return 0
}
