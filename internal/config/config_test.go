package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/taskboard/internal/board"
	"github.com/twiced-technology-gmbh/taskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

func TestNewDefaultIsValid(t *testing.T) {
	cfg := NewDefault("Demo")
	require.NoError(t, cfg.Validate())
	assert.Equal(t, board.GroupByStatus, cfg.Defaults.GroupBy)
	assert.Equal(t, task.StatusNotStarted, cfg.Defaults.Status)
	assert.Equal(t, task.PriorityLow, cfg.Defaults.Priority)
	assert.Equal(t, "#9b87f5", cfg.Defaults.TagColor)
	assert.Equal(t, log.WarnLevel, cfg.LogLevel())
	assert.Empty(t, cfg.SeedPath())
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*Config){
		"version":     func(c *Config) { c.Version = 99 },
		"name":        func(c *Config) { c.Board.Name = "" },
		"group by":    func(c *Config) { c.Defaults.GroupBy = "assignee" },
		"status":      func(c *Config) { c.Defaults.Status = "later" },
		"priority":    func(c *Config) { c.Defaults.Priority = "urgent" },
		"tag color":   func(c *Config) { c.Defaults.TagColor = "" },
		"log level":   func(c *Config) { c.Log.Level = "loud" },
		"title lines": func(c *Config) { c.TUI.TitleLines = 9 },
		"body lines":  func(c *Config) { c.TUI.BodyLines = -1 },
	}
	for name, mutate := range tests {
		cfg := NewDefault("Demo")
		mutate(cfg)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalid, name)
	}
}

func TestInitLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), DefaultDir)
	cfg, err := Init(dir, "Demo")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultSeedFile), cfg.SeedPath())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestInitRefusesExistingBoard(t *testing.T) {
	dir := t.TempDir()
	_, err := Init(dir, "Demo")
	require.NoError(t, err)

	_, err = Init(dir, "Again")
	assert.Equal(t, clierr.BoardAlreadyExists, clierr.CodeOf(err))
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMigratesV1(t *testing.T) {
	dir := t.TempDir()
	v1 := "version: 1\nboard:\n  name: Old\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(v1), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, DefaultTagColor, cfg.Defaults.TagColor)
	assert.Equal(t, DefaultStatus, cfg.Defaults.Status)

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "version: 2")
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 7\nboard:\n  name: x\n"), 0o600))
	_, err := Load(dir)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestFindDir(t *testing.T) {
	root := t.TempDir()
	boardDir := filepath.Join(root, DefaultDir)
	_, err := Init(boardDir, "Demo")
	require.NoError(t, err)

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	got, err := FindDir(nested)
	require.NoError(t, err)
	assert.Equal(t, boardDir, got)

	got, err = FindDir(boardDir)
	require.NoError(t, err)
	assert.Equal(t, boardDir, got)
}

func TestSeedPathAbsolute(t *testing.T) {
	cfg := NewDefault("Demo")
	cfg.SetDir("/boards/demo")
	cfg.Seed = "/tmp/fixture.yml"
	assert.Equal(t, "/tmp/fixture.yml", cfg.SeedPath())
	cfg.Seed = "fixture.yml"
	assert.Equal(t, filepath.Join("/boards/demo", "fixture.yml"), cfg.SeedPath())
}

func TestBoardOptions(t *testing.T) {
	cfg := NewDefault("Demo")
	cfg.Defaults.Author = "alice"
	opts := cfg.BoardOptions()
	assert.Equal(t, "alice", opts.Author)
	assert.Equal(t, task.PriorityLow, opts.Priority)
}
