package board

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

// Default values applied when the caller leaves Options fields empty.
const (
	DefaultTagColor = "#9b87f5"
	DefaultAuthor   = "user"
)

// Seed is the initial content of a board.
type Seed struct {
	Projects []task.Project
	Tasks    []task.Task
	Tags     []task.Tag
}

// Options configures a Board.
type Options struct {
	IDGenerator func() string
	Clock       func() time.Time
	Logger      *log.Logger

	// Author is stamped on comments created through the task form.
	Author   string
	TagColor string
	Status   task.Status
	Priority task.Priority
}

// Board is the single owner of a session's tasks, projects and tags.
// It is not safe for concurrent use.
type Board struct {
	tasks    []task.Task
	projects []task.Project
	tags     []task.Tag

	newID func() string
	now   func() time.Time
	log   *log.Logger

	author   string
	tagColor string
	status   task.Status
	priority task.Priority
}

// New creates a board holding copies of the seed collections.
func New(seed Seed, opts Options) *Board {
	b := &Board{
		tasks:    cloneTasks(seed.Tasks),
		projects: append([]task.Project(nil), seed.Projects...),
		tags:     append([]task.Tag(nil), seed.Tags...),
		newID:    opts.IDGenerator,
		now:      opts.Clock,
		log:      opts.Logger,
		author:   opts.Author,
		tagColor: opts.TagColor,
		status:   opts.Status,
		priority: opts.Priority,
	}
	if b.newID == nil {
		b.newID = uuid.NewString
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.log == nil {
		b.log = log.New(io.Discard)
	}
	if b.author == "" {
		b.author = DefaultAuthor
	}
	if b.tagColor == "" {
		b.tagColor = DefaultTagColor
	}
	if !b.status.Valid() {
		b.status = task.StatusNotStarted
	}
	if !b.priority.Valid() {
		b.priority = task.PriorityLow
	}
	return b
}

// CreateTask commits a draft as a new task with a fresh ID and appends it.
// Drafted subtasks are kept; the drafted comment is added when non-empty.
func (b *Board) CreateTask(d task.Draft) (task.Task, error) {
	if err := task.ValidateDraft(d); err != nil {
		return task.Task{}, err
	}

	t := task.Task{
		ID:          b.newID(),
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		Status:      d.Status,
		Priority:    d.Priority,
		ProjectID:   d.ProjectID,
		Tags:        append([]string(nil), d.Tags...),
	}
	if t.Status == "" {
		t.Status = b.status
	}
	if t.Priority == "" {
		t.Priority = b.priority
	}
	for _, title := range d.SubTasks {
		if strings.TrimSpace(title) == "" {
			continue
		}
		t.SubTasks = append(t.SubTasks, task.SubTask{ID: b.newID(), Title: strings.TrimSpace(title)})
	}
	if strings.TrimSpace(d.Comment) != "" {
		t.Comments = append(t.Comments, task.Comment{
			ID:        b.newID(),
			Content:   strings.TrimSpace(d.Comment),
			CreatedAt: b.now(),
			Author:    b.author,
		})
	}

	b.tasks = append(b.tasks, t)
	b.logMutation("create-task", t.ID, t.Title)
	return t.Clone(), nil
}

// Tasks returns a copy of the task collection in insertion order.
func (b *Board) Tasks() []task.Task { return cloneTasks(b.tasks) }

// Projects returns a copy of the project collection.
func (b *Board) Projects() []task.Project { return append([]task.Project(nil), b.projects...) }

// Tags returns a copy of the tag collection.
func (b *Board) Tags() []task.Tag { return append([]task.Tag(nil), b.tags...) }

// Task returns the task with the given ID.
func (b *Board) Task(id string) (task.Task, error) {
	for _, t := range b.tasks {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return task.Task{}, task.TaskNotFound(id)
}

// Project returns the project with the given ID, if any.
func (b *Board) Project(id string) (task.Project, bool) {
	for _, p := range b.projects {
		if p.ID == id {
			return p, true
		}
	}
	return task.Project{}, false
}

// TagByName returns the tag with the given name (case-insensitive), if any.
func (b *Board) TagByName(name string) (task.Tag, bool) {
	for _, t := range b.tags {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return task.Tag{}, false
}

// View returns the filtered, bucketed view of the current tasks.
func (b *Board) View(groupBy GroupBy, query string) []Bucket {
	return Group(b.tasks, b.projects, groupBy, query)
}

// Unfinished counts tasks whose status is not done.
func (b *Board) Unfinished() int {
	return countUnfinished(b.tasks)
}

// ReplaceProjects swaps in a new project collection. Last writer wins.
func (b *Board) ReplaceProjects(list []task.Project) {
	b.projects = append([]task.Project(nil), list...)
	b.logMutation("replace-projects", "", pluralCount(len(list), "project"))
}

// ReplaceTags swaps in a new tag collection. Last writer wins.
func (b *Board) ReplaceTags(list []task.Tag) {
	b.tags = append([]task.Tag(nil), list...)
	b.logMutation("replace-tags", "", pluralCount(len(list), "tag"))
}

// AddProject appends a project and returns the new collection.
func (b *Board) AddProject(name string) ([]task.Project, error) {
	if err := task.ValidateRequired("project name", name); err != nil {
		return b.Projects(), err
	}
	p := task.Project{ID: b.newID(), Name: strings.TrimSpace(name)}
	b.projects = append(b.projects, p)
	b.logMutation("add-project", p.ID, p.Name)
	return b.Projects(), nil
}

// EditProject renames a project. An unknown ID leaves the collection unchanged.
func (b *Board) EditProject(id, name string) ([]task.Project, error) {
	if err := task.ValidateRequired("project name", name); err != nil {
		return b.Projects(), err
	}
	for i := range b.projects {
		if b.projects[i].ID == id {
			b.projects[i].Name = strings.TrimSpace(name)
			b.logMutation("edit-project", id, b.projects[i].Name)
			break
		}
	}
	return b.Projects(), nil
}

// DeleteProject removes a project. Tasks that referenced it keep their
// ProjectID and drop out of the project view.
func (b *Board) DeleteProject(id string) []task.Project {
	for i, p := range b.projects {
		if p.ID == id {
			b.projects = append(b.projects[:i:i], b.projects[i+1:]...)
			b.logMutation("delete-project", id, p.Name)
			break
		}
	}
	return b.Projects()
}

// AddTag appends a tag and returns the new collection. A blank color
// falls back to the board default.
func (b *Board) AddTag(name, color string) ([]task.Tag, error) {
	if err := task.ValidateRequired("tag name", name); err != nil {
		return b.Tags(), err
	}
	t := task.Tag{ID: b.newID(), Name: strings.TrimSpace(name), Color: b.colorOrDefault(color)}
	b.tags = append(b.tags, t)
	b.logMutation("add-tag", t.ID, t.Name)
	return b.Tags(), nil
}

// EditTag updates a tag's name and color. An unknown ID leaves the collection unchanged.
func (b *Board) EditTag(id, name, color string) ([]task.Tag, error) {
	if err := task.ValidateRequired("tag name", name); err != nil {
		return b.Tags(), err
	}
	for i := range b.tags {
		if b.tags[i].ID == id {
			b.tags[i].Name = strings.TrimSpace(name)
			b.tags[i].Color = b.colorOrDefault(color)
			b.logMutation("edit-tag", id, b.tags[i].Name)
			break
		}
	}
	return b.Tags(), nil
}

// DeleteTag removes a tag. Tasks keep the tag name.
func (b *Board) DeleteTag(id string) []task.Tag {
	for i, t := range b.tags {
		if t.ID == id {
			b.tags = append(b.tags[:i:i], b.tags[i+1:]...)
			b.logMutation("delete-tag", id, t.Name)
			break
		}
	}
	return b.Tags()
}

// TagColor returns the default color for new tags.
func (b *Board) TagColor() string { return b.tagColor }

// DefaultStatus returns the status given to drafts that leave it empty.
func (b *Board) DefaultStatus() task.Status { return b.status }

// DefaultPriority returns the priority given to drafts that leave it empty.
func (b *Board) DefaultPriority() task.Priority { return b.priority }

func (b *Board) colorOrDefault(color string) string {
	if c := strings.TrimSpace(color); c != "" {
		return c
	}
	return b.tagColor
}

func cloneTasks(in []task.Task) []task.Task {
	if in == nil {
		return nil
	}
	out := make([]task.Task, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}

func countUnfinished(tasks []task.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Status != task.StatusDone {
			n++
		}
	}
	return n
}
