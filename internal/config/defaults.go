// Package config handles board configuration.
package config

import (
	"github.com/twiced-technology-gmbh/taskboard/internal/board"
	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

const (
	// DefaultDir is the default board directory name.
	DefaultDir = "taskboard"
	// DefaultBoardName is used when no config file exists.
	DefaultBoardName = "Kanban Board"
	// DefaultSeedFile is the fixture file written by init.
	DefaultSeedFile = "seed.yml"
	// DefaultGroupBy is the initial column grouping.
	DefaultGroupBy = board.GroupByStatus
	// DefaultStatus is the default status for new tasks.
	DefaultStatus = task.StatusNotStarted
	// DefaultPriority is the default priority for new tasks.
	DefaultPriority = task.PriorityLow
	// DefaultTagColor is the preset color of the tag form.
	DefaultTagColor = board.DefaultTagColor
	// DefaultAuthor is stamped on comments created from the task form.
	DefaultAuthor = board.DefaultAuthor
	// DefaultLogLevel is the minimum level written to stderr.
	DefaultLogLevel = "warn"
	// DefaultTitleLines is the default number of title lines in TUI cards.
	DefaultTitleLines = 2

	// ConfigFileName is the name of the config file within the board directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2
)
