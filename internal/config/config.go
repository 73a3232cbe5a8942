package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/taskboard/internal/board"
	"github.com/twiced-technology-gmbh/taskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

const fileMode = 0o600

// Sentinel errors.
var (
	ErrNotFound = errors.New("no board found (run 'taskboard init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the board configuration.
type Config struct {
	Version  int            `yaml:"version"`
	Board    BoardConfig    `yaml:"board"`
	Seed     string         `yaml:"seed,omitempty"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Log      LogConfig      `yaml:"log,omitempty"`
	TUI      TUIConfig      `yaml:"tui,omitempty"`

	// dir is the absolute path to the board directory (not serialized).
	dir string `yaml:"-"`
}

// BoardConfig holds board metadata.
type BoardConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// DefaultsConfig holds default values for the board view and new records.
type DefaultsConfig struct {
	GroupBy  board.GroupBy `yaml:"group_by"`
	Status   task.Status   `yaml:"status"`
	Priority task.Priority `yaml:"priority"`
	TagColor string        `yaml:"tag_color"`
	Author   string        `yaml:"author"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// TUIConfig holds TUI-specific display settings.
type TUIConfig struct {
	TitleLines int `yaml:"title_lines,omitempty"`
	BodyLines  int `yaml:"body_lines,omitempty"`
}

// NewDefault creates a Config with default values.
func NewDefault(name string) *Config {
	return &Config{
		Version: CurrentVersion,
		Board:   BoardConfig{Name: name},
		Defaults: DefaultsConfig{
			GroupBy:  DefaultGroupBy,
			Status:   DefaultStatus,
			Priority: DefaultPriority,
			TagColor: DefaultTagColor,
			Author:   DefaultAuthor,
		},
		Log: LogConfig{Level: DefaultLogLevel},
		TUI: TUIConfig{TitleLines: DefaultTitleLines},
	}
}

// Dir returns the absolute path to the board directory. It is empty for
// an unsaved default config.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the board directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// SeedPath returns the fixture path, resolving a relative seed against the
// board directory. It returns "" when the built-in sample should be used.
func (c *Config) SeedPath() string {
	if c.Seed == "" {
		return ""
	}
	if filepath.IsAbs(c.Seed) || c.dir == "" {
		return c.Seed
	}
	return filepath.Join(c.dir, c.Seed)
}

// TitleLines returns the configured number of title lines for TUI cards.
// Returns DefaultTitleLines if the value is unset (zero).
func (c *Config) TitleLines() int {
	if c.TUI.TitleLines == 0 {
		return DefaultTitleLines
	}
	return c.TUI.TitleLines
}

// BodyLines returns the configured number of description preview lines for
// TUI cards. Returns 0 (disabled) if the value is unset.
func (c *Config) BodyLines() int {
	return c.TUI.BodyLines
}

// LogLevel returns the parsed log level, falling back to DefaultLogLevel.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil || c.Log.Level == "" {
		lvl, _ = log.ParseLevel(DefaultLogLevel)
	}
	return lvl
}

// BoardOptions returns the board options derived from the defaults section.
func (c *Config) BoardOptions() board.Options {
	return board.Options{
		Author:   c.Defaults.Author,
		TagColor: c.Defaults.TagColor,
		Status:   c.Defaults.Status,
		Priority: c.Defaults.Priority,
	}
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Board.Name == "" {
		return fmt.Errorf("%w: board.name is required", ErrInvalid)
	}
	if _, err := board.ParseGroupBy(string(c.Defaults.GroupBy)); err != nil {
		return fmt.Errorf("%w: defaults.group_by: %w", ErrInvalid, err)
	}
	if !c.Defaults.Status.Valid() {
		return fmt.Errorf("%w: default status %q is not a known status", ErrInvalid, c.Defaults.Status)
	}
	if !c.Defaults.Priority.Valid() {
		return fmt.Errorf("%w: default priority %q is not a known priority", ErrInvalid, c.Defaults.Priority)
	}
	if c.Defaults.TagColor == "" {
		return fmt.Errorf("%w: defaults.tag_color is required", ErrInvalid)
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
		}
	}
	return c.validateTUI()
}

func (c *Config) validateTUI() error {
	const minTitleLines, maxTitleLines = 1, 3
	if c.TUI.TitleLines != 0 && (c.TUI.TitleLines < minTitleLines || c.TUI.TitleLines > maxTitleLines) {
		return fmt.Errorf("%w: tui.title_lines must be between %d and %d",
			ErrInvalid, minTitleLines, maxTitleLines)
	}
	const maxBodyLines = 2
	if c.TUI.BodyLines < 0 || c.TUI.BodyLines > maxBodyLines {
		return fmt.Errorf("%w: tui.body_lines must be between 0 and %d", ErrInvalid, maxBodyLines)
	}
	return nil
}

// Init creates a new board directory with a default config file.
func Init(dir, name string) (*Config, error) {
	const dirMode = 0o750

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if _, err := os.Stat(filepath.Join(absDir, ConfigFileName)); err == nil {
		return nil, clierr.Newf(clierr.BoardAlreadyExists, "board already exists in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}

	cfg := NewDefault(name)
	cfg.SetDir(absDir)
	cfg.Seed = DefaultSeedFile

	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating board directory: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to its config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates a config from the given board directory.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing config: %w", ErrInvalid, err)
	}
	cfg.dir = absDir

	oldVersion := cfg.Version
	if err := migrate(&cfg); err != nil {
		return nil, err
	}
	if cfg.Version != oldVersion {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("saving migrated config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindDir walks upward from startDir looking for a board directory
// containing config.yml. Returns the absolute path to the board directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		candidate := filepath.Join(dir, DefaultDir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Join(dir, DefaultDir), nil
		}

		// Also check if we're inside the board directory itself.
		candidate = filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.BoardNotFound,
				"no board found (run 'taskboard init' to create one)")
		}
		dir = parent
	}
}
