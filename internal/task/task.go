// Package task defines the board entities: tasks and the projects, tags,
// subtasks and comments they reference.
package task

import "time"

// Task is a single card on the board.
type Task struct {
	ID          string    `yaml:"id" json:"id"`
	Title       string    `yaml:"title" json:"title"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Status      Status    `yaml:"status" json:"status"`
	Priority    Priority  `yaml:"priority" json:"priority"`
	ProjectID   string    `yaml:"project_id,omitempty" json:"project_id,omitempty"`
	Tags        []string  `yaml:"tags,omitempty" json:"tags,omitempty"`
	SubTasks    []SubTask `yaml:"subtasks,omitempty" json:"subtasks,omitempty"`
	Comments    []Comment `yaml:"comments,omitempty" json:"comments,omitempty"`

	// Files holds attachment references. They are stored, never interpreted.
	Files []string `yaml:"files,omitempty" json:"files,omitempty"`
}

// SubTask is a checklist item owned by a task.
type SubTask struct {
	ID        string `yaml:"id" json:"id"`
	Title     string `yaml:"title" json:"title"`
	Completed bool   `yaml:"completed,omitempty" json:"completed"`
}

// Comment is a note attached to a task.
type Comment struct {
	ID        string    `yaml:"id" json:"id"`
	Content   string    `yaml:"content" json:"content"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
	Author    string    `yaml:"author" json:"author"`
}

// Project groups tasks. Tasks reference a project through Task.ProjectID.
type Project struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Tag is a colored label. Tasks reference tags by name.
type Tag struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color" json:"color"`
}

// Draft is unsaved task input collected by the task form.
type Draft struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
	ProjectID   string
	Tags        []string
	SubTasks    []string
	Comment     string
}

// SubTaskProgress returns the number of completed subtasks and the total.
func (t Task) SubTaskProgress() (done, total int) {
	for _, s := range t.SubTasks {
		if s.Completed {
			done++
		}
	}
	return done, len(t.SubTasks)
}

// HasTag reports whether the task carries the named tag (case-insensitive).
func (t Task) HasTag(name string) bool {
	for _, tag := range t.Tags {
		if equalFold(tag, name) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	c.Tags = append([]string(nil), t.Tags...)
	c.SubTasks = append([]SubTask(nil), t.SubTasks...)
	c.Comments = append([]Comment(nil), t.Comments...)
	c.Files = append([]string(nil), t.Files...)
	return c
}
