// Package tui implements the interactive kanban board.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/taskboard/internal/board"
	"github.com/twiced-technology-gmbh/taskboard/internal/config"
	"github.com/twiced-technology-gmbh/taskboard/internal/output"
	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

// view represents the current screen state.
type view int

const (
	viewBoard view = iota
	viewSearch
	viewForm
	viewDetail
	viewManager
)

// Key and layout constants.
const (
	keyEsc = "esc"

	boardChrome = 2 // blank line + status bar below the column area
	errorChrome = 1 // extra line when an error is displayed
)

// Board is the top-level bubbletea model.
type Board struct {
	cfg     *config.Config
	state   *board.Board
	keys    keyMap
	groupBy board.GroupBy
	query   string

	columns   []column
	activeCol int
	activeRow int
	view      view
	width     int
	height    int
	err       error

	search   textinput.Model
	form     taskForm
	manager  manager
	detailID string
	markdown output.Markdown
}

// column is one bucket of the current view.
type column struct {
	bucket    board.Bucket
	scrollOff int // first visible row index
}

// NewBoard creates a Board model over state, using cfg for the board name,
// the initial grouping and the card layout.
func NewBoard(cfg *config.Config, state *board.Board) *Board {
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search title, description, comments"

	groupBy := cfg.Defaults.GroupBy
	if groupBy == "" {
		groupBy = config.DefaultGroupBy
	}
	b := &Board{
		cfg:     cfg,
		state:   state,
		keys:    defaultKeyMap(),
		groupBy: groupBy,
		search:  search,
	}
	b.refresh()
	return b
}

// GroupBy returns the active grouping mode.
func (b *Board) GroupBy() board.GroupBy { return b.groupBy }

// Query returns the active search query.
func (b *Board) Query() string { return b.query }

// Columns returns the buckets currently on screen.
func (b *Board) Columns() []board.Bucket {
	out := make([]board.Bucket, len(b.columns))
	for i, c := range b.columns {
		out[i] = c.bucket
	}
	return out
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		if b.view == viewForm {
			b.form.setWidth(b.width)
		}
		b.ensureVisible()
		return b, nil
	}
	return b, nil
}

// View implements tea.Model.
func (b *Board) View() string {
	if b.width == 0 {
		return "Loading..."
	}

	switch b.view {
	case viewForm:
		return b.form.view()
	case viewDetail:
		return b.viewDetail()
	case viewManager:
		return b.manager.view()
	default:
		return b.viewBoard()
	}
}

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys.
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return b, tea.Quit
	}

	switch b.view {
	case viewBoard:
		return b.handleBoardKey(msg)
	case viewSearch:
		return b.handleSearchKey(msg)
	case viewForm:
		return b.handleFormKey(msg)
	case viewDetail:
		if msg.String() == keyEsc || msg.String() == "q" || msg.String() == "enter" {
			b.view = viewBoard
		}
		return b, nil
	case viewManager:
		closed, cmd := b.manager.update(msg)
		if closed {
			b.view = viewBoard
			b.refresh()
		}
		return b, cmd
	}
	return b, nil
}

func (b *Board) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Quit), msg.String() == keyEsc:
		if msg.String() == keyEsc && b.query != "" {
			b.setQuery("")
			return b, nil
		}
		return b, tea.Quit
	case key.Matches(msg, b.keys.Left):
		if b.activeCol > 0 {
			b.activeCol--
			b.clampRow()
		}
	case key.Matches(msg, b.keys.Right):
		if b.activeCol < len(b.columns)-1 {
			b.activeCol++
			b.clampRow()
		}
	case key.Matches(msg, b.keys.Down):
		col := b.currentColumn()
		if col != nil && b.activeRow < len(col.bucket.Tasks)-1 {
			b.activeRow++
			b.ensureVisible()
		}
	case key.Matches(msg, b.keys.Up):
		if b.activeRow > 0 {
			b.activeRow--
			b.ensureVisible()
		}
	case key.Matches(msg, b.keys.GroupBy):
		b.groupBy = b.groupBy.Next()
		b.activeCol, b.activeRow = 0, 0
		b.refresh()
	case key.Matches(msg, b.keys.Search):
		b.view = viewSearch
		b.search.SetValue(b.query)
		b.search.CursorEnd()
		return b, b.search.Focus()
	case key.Matches(msg, b.keys.New):
		return b, b.openForm()
	case key.Matches(msg, b.keys.Open):
		if t := b.selectedTask(); t != nil {
			b.detailID = t.ID
			b.view = viewDetail
		}
	case key.Matches(msg, b.keys.Projects):
		b.manager = newManager(b.state, manageProjects)
		b.view = viewManager
		return b, textinput.Blink
	case key.Matches(msg, b.keys.Tags):
		b.manager = newManager(b.state, manageTags)
		b.view = viewManager
		return b, textinput.Blink
	}
	return b, nil
}

func (b *Board) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		b.search.Blur()
		b.view = viewBoard
		return b, nil
	case keyEsc:
		b.search.Blur()
		b.search.Reset()
		b.setQuery("")
		b.view = viewBoard
		return b, nil
	}
	var cmd tea.Cmd
	b.search, cmd = b.search.Update(msg)
	b.setQuery(b.search.Value())
	return b, cmd
}

func (b *Board) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := b.form.update(msg)
	switch result {
	case formCanceled:
		b.view = viewBoard
	case formSubmitted:
		if _, err := b.state.CreateTask(b.form.Draft()); err != nil {
			b.form.err = err
			return b, nil
		}
		b.err = nil
		b.view = viewBoard
		b.refresh()
	}
	return b, cmd
}

// openForm starts the task form, presetting the field the board is grouped by
// from the active column.
func (b *Board) openForm() tea.Cmd {
	var preset task.Draft
	if col := b.currentColumn(); col != nil {
		switch b.groupBy {
		case board.GroupByStatus:
			preset.Status = task.Status(col.bucket.Key)
		case board.GroupByPriority:
			preset.Priority = task.Priority(col.bucket.Key)
		case board.GroupByProject:
			preset.ProjectID = col.bucket.Key
		}
	}
	b.form = newTaskForm(b.state, preset)
	b.form.setWidth(b.width)
	b.view = viewForm
	return textinput.Blink
}

func (b *Board) setQuery(q string) {
	b.query = q
	b.activeRow = 0
	b.refresh()
}

// refresh recomputes the columns from the board state, keeping each
// column's scroll offset when the bucket keys are unchanged.
func (b *Board) refresh() {
	buckets := b.state.View(b.groupBy, b.query)
	prev := make(map[string]int, len(b.columns))
	for _, c := range b.columns {
		prev[c.bucket.Key] = c.scrollOff
	}
	b.columns = make([]column, len(buckets))
	for i, bucket := range buckets {
		b.columns[i] = column{bucket: bucket, scrollOff: prev[bucket.Key]}
	}
	if b.activeCol >= len(b.columns) {
		b.activeCol = max(len(b.columns)-1, 0)
	}
	b.clampRow()
}

func (b *Board) currentColumn() *column {
	if b.activeCol >= 0 && b.activeCol < len(b.columns) {
		return &b.columns[b.activeCol]
	}
	return nil
}

func (b *Board) selectedTask() *task.Task {
	col := b.currentColumn()
	if col == nil || len(col.bucket.Tasks) == 0 {
		return nil
	}
	if b.activeRow >= 0 && b.activeRow < len(col.bucket.Tasks) {
		return &col.bucket.Tasks[b.activeRow]
	}
	return nil
}

func (b *Board) clampRow() {
	col := b.currentColumn()
	if col == nil || len(col.bucket.Tasks) == 0 {
		b.activeRow = 0
		return
	}
	if b.activeRow >= len(col.bucket.Tasks) {
		b.activeRow = len(col.bucket.Tasks) - 1
	}
	b.ensureVisible()
}

// chromeHeight returns the number of lines consumed by non-card elements below
// the column area.
func (b *Board) chromeHeight() int {
	h := boardChrome
	if b.err != nil {
		h += errorChrome
	}
	return h
}

// visibleCardsForColumn returns the number of cards that fit in the column,
// accounting for the "↑ N more" / "↓ N more" indicator lines.
func (b *Board) visibleCardsForColumn(col *column, width int) int {
	budget := b.height - b.chromeHeight()
	if budget < 1 {
		return 1
	}

	// Always need 1 line for column header.
	avail := budget - 1
	if col.scrollOff > 0 {
		avail--
	}

	n := b.fitCardsInHeight(col, avail, width)
	if col.scrollOff+n < len(col.bucket.Tasks) {
		n = max(b.fitCardsInHeight(col, avail-1, width), 1)
	}
	return n
}

// ensureVisible adjusts the active column's scroll offset so the
// selected row is within the visible window.
func (b *Board) ensureVisible() {
	col := b.currentColumn()
	if col == nil || b.height == 0 {
		return
	}
	w := b.columnWidth()

	for range len(col.bucket.Tasks) + 1 {
		maxVis := b.visibleCardsForColumn(col, w)

		switch {
		case b.activeRow >= col.scrollOff+maxVis:
			col.scrollOff = b.activeRow - maxVis + 1
		case b.activeRow < col.scrollOff:
			col.scrollOff = b.activeRow
		default:
			return
		}
	}
}

func (b *Board) fitCardsInHeight(col *column, avail, width int) int {
	if len(col.bucket.Tasks) == 0 || avail < 1 {
		return 1
	}

	used := 0
	count := 0
	for i := col.scrollOff; i < len(col.bucket.Tasks); i++ {
		cardLines := b.cardHeight(&col.bucket.Tasks[i], width)
		if count > 0 && used+cardLines > avail {
			break
		}
		count++
		used += cardLines
		if used >= avail {
			break
		}
	}
	return max(count, 1)
}

// --- View rendering ---

func (b *Board) viewBoard() string {
	if len(b.columns) == 0 {
		empty := "No columns to show."
		if b.groupBy == board.GroupByProject {
			empty = "No projects. Press p to add one."
		}
		return lipgloss.JoinVertical(lipgloss.Left, empty, "", b.renderStatusBar())
	}

	colWidth := b.columnWidth()
	renderedCols := make([]string, len(b.columns))
	for i := range b.columns {
		renderedCols[i] = b.renderColumn(i, &b.columns[i], colWidth)
	}
	boardView := lipgloss.JoinHorizontal(lipgloss.Top, renderedCols...)

	// Clamp from the bottom (keeping headers at the top) and pad if needed.
	targetHeight := b.height - b.chromeHeight()
	if targetHeight > 0 {
		actual := strings.Count(boardView, "\n") + 1
		if actual > targetHeight {
			viewLines := strings.SplitN(boardView, "\n", targetHeight+1)
			boardView = strings.Join(viewLines[:targetHeight], "\n")
		} else if actual < targetHeight {
			boardView += strings.Repeat("\n", targetHeight-actual)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, boardView, "", b.renderStatusBar())
}

func (b *Board) columnWidth() int {
	if b.width == 0 || len(b.columns) == 0 {
		return 30 //nolint:mnd // default column width
	}
	const maxColWidth = 60
	return min(b.width/len(b.columns), maxColWidth)
}

func (b *Board) renderColumn(colIdx int, col *column, width int) string {
	const headerPad = 2
	headerText := fmt.Sprintf("%s (%d)", col.bucket.Label, len(col.bucket.Tasks))
	headerText = truncate(headerText, width-headerPad)

	header := columnHeaderStyle.Width(width).Render(headerText)
	if colIdx == b.activeCol {
		header = activeColumnHeaderStyle.Width(width).Render(headerText)
	}

	tasks := col.bucket.Tasks
	maxVis := b.visibleCardsForColumn(col, width)
	start := min(col.scrollOff, len(tasks))
	end := min(start+maxVis, len(tasks))

	parts := []string{header}
	if start > 0 {
		parts = append(parts, dimStyle.Width(width).Render(truncate(fmt.Sprintf("  ↑ %d more", start), width)))
	}
	if len(tasks) == 0 {
		parts = append(parts, dimStyle.Width(width).Render("  (empty)"))
	}
	for rowIdx := start; rowIdx < end; rowIdx++ {
		active := colIdx == b.activeCol && rowIdx == b.activeRow
		parts = append(parts, b.renderCard(&tasks[rowIdx], active, width))
	}
	if end < len(tasks) {
		indicator := fmt.Sprintf("  ↓ %d more", len(tasks)-end)
		parts = append(parts, dimStyle.Width(width).Render(truncate(indicator, width)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (b *Board) renderCard(t *task.Task, active bool, width int) string {
	content := strings.Join(b.cardContentLines(t, width), "\n")

	style := cardStyle
	if len(t.Tags) > 0 {
		color := ""
		if tag, ok := b.state.TagByName(t.Tags[0]); ok {
			color = tag.Color
		}
		style = cardStyle.BorderForeground(tagStyle(t.Tags[0], color).GetForeground())
	}
	if active {
		style = activeCardStyle
	}
	return style.Width(width - 2).Render(content) //nolint:mnd // border width
}

func (b *Board) cardHeight(t *task.Task, width int) int {
	return len(b.cardContentLines(t, width)) + 2 //nolint:mnd // top and bottom borders
}

func (b *Board) cardContentLines(t *task.Task, width int) []string {
	const cardChrome = 4 // border (2) + padding (2)
	cardWidth := max(width-cardChrome, 1)

	var lines []string
	for _, line := range wrapTitle(t.Title, cardWidth, b.cfg.TitleLines()) {
		lines = append(lines, titleBarStyle.Render(line))
	}

	if n := b.cfg.BodyLines(); n > 0 && strings.TrimSpace(t.Description) != "" {
		for _, line := range wrapTitle(strings.Join(strings.Fields(t.Description), " "), cardWidth, n) {
			lines = append(lines, dimStyle.Render(line))
		}
	}

	if len(t.Tags) > 0 {
		lines = append(lines, truncateStyled(b.renderTagList(t.Tags), cardWidth))
	}

	meta := priorityStyle(string(t.Priority)).Render(t.Priority.Label())
	if b.groupBy != board.GroupByStatus {
		meta += dimStyle.Render(" · " + t.Status.Label())
	}
	if done, total := t.SubTaskProgress(); total > 0 {
		meta += dimStyle.Render(fmt.Sprintf(" · %d/%d", done, total))
	}
	if n := len(t.Comments); n > 0 {
		meta += dimStyle.Render(fmt.Sprintf(" · %d💬", n))
	}
	lines = append(lines, meta)
	return lines
}

// truncateStyled cuts an already-styled line to width cells.
func truncateStyled(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

func (b *Board) renderStatusBar() string {
	if b.view == viewSearch {
		return b.search.View()
	}

	status := fmt.Sprintf(" %s | Unfinished Tasks: %d | by %s", b.cfg.Board.Name, b.state.Unfinished(), b.groupBy)
	if b.query != "" {
		status += fmt.Sprintf(" | /%s", b.query)
	}
	status += " | " + helpLine(b.keys.New, b.keys.Open, b.keys.Search, b.keys.GroupBy,
		b.keys.Projects, b.keys.Tags, b.keys.Quit)
	status = truncate(status, b.width)

	if b.err != nil {
		errStr := errorStyle.Render(truncate("Error: "+b.err.Error(), b.width))
		return errStr + "\n" + statusBarStyle.Render(status)
	}
	return statusBarStyle.Render(status)
}
