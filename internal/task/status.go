package task

import (
	"strings"

	"github.com/twiced-technology-gmbh/taskboard/internal/clierr"
)

// Status is the workflow state of a task.
type Status string

// Statuses in board order.
const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Statuses lists every status in column order.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusDone}

// Label returns the column heading for the status.
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// UnmarshalText rejects unknown statuses. It backs both YAML and JSON decoding.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus accepts a status value ("in_progress") or its label ("In Progress"),
// case-insensitively.
func ParseStatus(input string) (Status, error) {
	norm := normalize(input)
	for _, s := range Statuses {
		if norm == string(s) {
			return s, nil
		}
	}
	return "", clierr.Newf(clierr.InvalidStatus, "invalid status %q", input).
		WithDetails(map[string]any{
			"status":  input,
			"allowed": Statuses,
		})
}

// Priority is the urgency of a task.
type Priority string

// Priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Label returns the column heading for the priority.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	}
	return string(p)
}

// Rank orders priorities from most urgent (0) to least urgent.
// Unknown priorities sort last.
func (p Priority) Rank() int {
	for i, v := range Priorities {
		if v == p {
			return i
		}
	}
	return len(Priorities)
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return p.Rank() < len(Priorities)
}

// UnmarshalText rejects unknown priorities.
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePriority accepts a priority value or label, case-insensitively.
func ParsePriority(input string) (Priority, error) {
	norm := normalize(input)
	for _, p := range Priorities {
		if norm == string(p) {
			return p, nil
		}
	}
	return "", clierr.Newf(clierr.InvalidPriority, "invalid priority %q", input).
		WithDetails(map[string]any{
			"priority": input,
			"allowed":  Priorities,
		})
}

// normalize maps "In Progress" and "in-progress" to "in_progress".
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
