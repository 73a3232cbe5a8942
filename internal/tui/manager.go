package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/taskboard/internal/board"
)

// managerKind selects which collection a manager edits.
type managerKind int

const (
	manageProjects managerKind = iota
	manageTags
)

func (k managerKind) noun() string {
	if k == manageTags {
		return "tag"
	}
	return "project"
}

// managerMode is the sub-state of the manager dialog.
type managerMode int

const (
	modeList managerMode = iota
	modeEdit
	modeConfirmDelete
)

// entry is a project or tag as the manager lists it.
type entry struct {
	id    string
	name  string
	color string
}

// manager is the searchable list dialog for projects and tags.
type manager struct {
	state  *board.Board
	kind   managerKind
	keys   keyMap
	mode   managerMode
	cursor int
	err    error

	search textinput.Model

	// Edit form. editID is empty while adding.
	editID   string
	name     textinput.Model
	color    textinput.Model
	focusIdx int
}

func newManager(state *board.Board, kind managerKind) manager {
	m := manager{state: state, kind: kind, keys: defaultKeyMap()}

	m.search = textinput.New()
	m.search.Placeholder = fmt.Sprintf("Search %ss...", kind.noun())
	m.search.Focus()

	m.name = textinput.New()
	m.name.Placeholder = "Name"
	m.name.CharLimit = 100
	m.color = textinput.New()
	m.color.Placeholder = state.TagColor()
	m.color.CharLimit = 7 //nolint:mnd // "#rrggbb"
	return m
}

// entries returns the collection filtered by the search box.
func (m *manager) entries() []entry {
	query := m.search.Value()
	if m.kind == manageTags {
		tags := board.FilterTags(m.state.Tags(), query)
		out := make([]entry, len(tags))
		for i, t := range tags {
			out[i] = entry{id: t.ID, name: t.Name, color: t.Color}
		}
		return out
	}
	projects := board.FilterProjects(m.state.Projects(), query)
	out := make([]entry, len(projects))
	for i, p := range projects {
		out[i] = entry{id: p.ID, name: p.Name}
	}
	return out
}

func (m *manager) selected() (entry, bool) {
	list := m.entries()
	if m.cursor < 0 || m.cursor >= len(list) {
		return entry{}, false
	}
	return list[m.cursor], true
}

// update handles a key press and reports whether the dialog should close.
func (m *manager) update(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch m.mode {
	case modeEdit:
		return false, m.updateEdit(msg)
	case modeConfirmDelete:
		m.updateConfirm(msg)
		return false, nil
	}
	return m.updateList(msg)
}

func (m *manager) updateList(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		return true, nil
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return false, nil
	case "down":
		if m.cursor < len(m.entries())-1 {
			m.cursor++
		}
		return false, nil
	case "ctrl+n":
		return false, m.startEdit(entry{})
	case "enter", "ctrl+e":
		if e, ok := m.selected(); ok {
			return false, m.startEdit(e)
		}
		return false, m.startEdit(entry{name: m.search.Value()})
	case "ctrl+d":
		if _, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
		}
		return false, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	return false, cmd
}

func (m *manager) startEdit(e entry) tea.Cmd {
	m.mode = modeEdit
	m.editID = e.id
	m.err = nil
	m.name.SetValue(e.name)
	color := e.color
	if color == "" {
		color = m.state.TagColor()
	}
	m.color.SetValue(color)
	m.focusIdx = 0
	m.applyFocus()
	return textinput.Blink
}

func (m *manager) fieldCount() int {
	if m.kind == manageTags {
		return 2 //nolint:mnd // name + color
	}
	return 1
}

func (m *manager) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeList
		m.err = nil
		m.search.Focus()
		return nil
	case key.Matches(msg, m.keys.Save), msg.String() == "enter":
		m.save()
		return nil
	case key.Matches(msg, m.keys.Next):
		m.focusIdx = (m.focusIdx + 1) % m.fieldCount()
		m.applyFocus()
		return nil
	case key.Matches(msg, m.keys.Prev):
		m.focusIdx = (m.focusIdx + m.fieldCount() - 1) % m.fieldCount()
		m.applyFocus()
		return nil
	}

	var cmd tea.Cmd
	if m.focusIdx == 0 {
		m.name, cmd = m.name.Update(msg)
	} else {
		m.color, cmd = m.color.Update(msg)
	}
	return cmd
}

func (m *manager) save() {
	name := m.name.Value()
	var err error
	switch {
	case m.kind == manageTags && m.editID == "":
		_, err = m.state.AddTag(name, m.color.Value())
	case m.kind == manageTags:
		_, err = m.state.EditTag(m.editID, name, m.color.Value())
	case m.editID == "":
		_, err = m.state.AddProject(name)
	default:
		_, err = m.state.EditProject(m.editID, name)
	}
	if err != nil {
		m.err = err
		return
	}
	m.mode = modeList
	m.err = nil
	m.search.Focus()
	m.clampCursor()
}

func (m *manager) updateConfirm(msg tea.KeyMsg) {
	switch msg.String() {
	case "y", "Y":
		if e, ok := m.selected(); ok {
			if m.kind == manageTags {
				m.state.DeleteTag(e.id)
			} else {
				m.state.DeleteProject(e.id)
			}
		}
		m.mode = modeList
		m.clampCursor()
	case "n", "N", keyEsc:
		m.mode = modeList
	}
}

func (m *manager) clampCursor() {
	if n := len(m.entries()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *manager) applyFocus() {
	m.search.Blur()
	m.name.Blur()
	m.color.Blur()
	if m.focusIdx == 0 {
		m.name.Focus()
	} else {
		m.color.Focus()
	}
}

func (m *manager) view() string {
	noun := m.kind.noun()
	switch m.mode {
	case modeEdit:
		return m.viewEdit(noun)
	case modeConfirmDelete:
		e, _ := m.selected()
		content := errorStyle.Render(fmt.Sprintf("Delete %s?", noun)) + "\n\n" +
			"  " + e.name + "\n\n" +
			dimStyle.Render("y:yes  n:no")
		return dialogStyle.Render(content)
	}

	rows := []string{titleBarStyle.Render(strings.ToUpper(noun[:1]) + noun[1:] + "s"), "", m.search.View(), ""}
	list := m.entries()
	if len(list) == 0 {
		rows = append(rows, dimStyle.Render(fmt.Sprintf("  no %ss found", noun)))
	}
	for i, e := range list {
		line := e.name
		if m.kind == manageTags {
			line = tagStyle(e.name, e.color).Render("● ") + e.name + dimStyle.Render("  "+e.color)
		}
		if i == m.cursor {
			line = focusedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	rows = append(rows, "", dimStyle.Render("↑/↓:move enter:edit ctrl+n:new ctrl+d:delete esc:close"))
	return dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *manager) viewEdit(noun string) string {
	title := "New " + noun
	if m.editID != "" {
		title = "Edit " + noun
	}
	rows := []string{titleBarStyle.Render(title), "", labelStyle.Render("Name"), m.name.View()}
	if m.kind == manageTags {
		rows = append(rows, "", labelStyle.Render("Color"), m.color.View())
	}
	if m.err != nil {
		rows = append(rows, "", errorStyle.Render(m.err.Error()))
	}
	rows = append(rows, "", dimStyle.Render("tab:next enter/ctrl+s:save esc:back"))
	return dialogStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
