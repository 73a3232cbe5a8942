// Package seed loads the fixture data a board session starts from.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/taskboard/internal/board"
	"github.com/twiced-technology-gmbh/taskboard/internal/clierr"
	"github.com/twiced-technology-gmbh/taskboard/internal/task"
)

const fileMode = 0o600

//go:embed sample.yml
var sampleYAML []byte

// Data is the on-disk shape of a fixture file.
type Data struct {
	Projects []task.Project `yaml:"projects"`
	Tags     []task.Tag     `yaml:"tags"`
	Tasks    []task.Task    `yaml:"tasks"`
}

// Board converts the fixture into a board seed.
func (d Data) Board() board.Seed {
	return board.Seed{Projects: d.Projects, Tasks: d.Tasks, Tags: d.Tags}
}

// SampleYAML returns the raw bytes of the built-in sample fixture.
func SampleYAML() []byte {
	return bytes.Clone(sampleYAML)
}

// Sample returns the built-in sample fixture.
func Sample() Data {
	d, err := Parse(bytes.NewReader(sampleYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded sample fixture: %v", err))
	}
	return d
}

// Load reads and validates a fixture file.
func Load(path string) (Data, error) {
	f, err := os.Open(path) //nolint:gosec // seed path from user config
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Data{}, clierr.Newf(clierr.InvalidSeed, "seed file %s not found", path).
				WithDetails(map[string]any{"path": path})
		}
		return Data{}, fmt.Errorf("opening seed: %w", err)
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return Data{}, withPath(err, path)
	}
	return d, nil
}

// Parse decodes a fixture. Unknown fields are rejected and missing task
// statuses and priorities fall back to not_started and low.
func Parse(r io.Reader) (Data, error) {
	var d Data
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return Data{}, clierr.Newf(clierr.InvalidSeed, "parsing seed: %v", err)
	}
	for i := range d.Tasks {
		if d.Tasks[i].Status == "" {
			d.Tasks[i].Status = task.StatusNotStarted
		}
		if d.Tasks[i].Priority == "" {
			d.Tasks[i].Priority = task.PriorityLow
		}
	}
	if err := d.Validate(); err != nil {
		return Data{}, err
	}
	return d, nil
}

// Validate checks that every record has an ID, IDs are unique per
// collection, and tasks have titles. References between records are not checked.
func (d Data) Validate() error {
	if err := uniqueIDs("project", len(d.Projects), func(i int) string { return d.Projects[i].ID }); err != nil {
		return err
	}
	if err := uniqueIDs("tag", len(d.Tags), func(i int) string { return d.Tags[i].ID }); err != nil {
		return err
	}
	if err := uniqueIDs("task", len(d.Tasks), func(i int) string { return d.Tasks[i].ID }); err != nil {
		return err
	}
	for _, t := range d.Tasks {
		if err := task.ValidateRequired("title", t.Title); err != nil {
			return clierr.Newf(clierr.InvalidSeed, "task %q has no title", t.ID).
				WithDetails(map[string]any{"id": t.ID})
		}
	}
	return nil
}

// Write saves a fixture to path, creating the parent directory.
func Write(path string, d Data) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshaling seed: %w", err)
	}
	return WriteRaw(path, data)
}

// WriteRaw writes pre-encoded fixture bytes to path.
func WriteRaw(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating seed directory: %w", err)
	}
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return fmt.Errorf("writing seed: %w", err)
	}
	return nil
}

func uniqueIDs(kind string, n int, id func(int) string) error {
	seen := make(map[string]bool, n)
	for i := range n {
		v := id(i)
		if v == "" {
			return clierr.Newf(clierr.InvalidSeed, "%s #%d has no id", kind, i+1).
				WithDetails(map[string]any{"kind": kind, "index": i})
		}
		if seen[v] {
			return clierr.Newf(clierr.InvalidSeed, "duplicate %s id %q", kind, v).
				WithDetails(map[string]any{"kind": kind, "id": v})
		}
		seen[v] = true
	}
	return nil
}

func withPath(err error, path string) error {
	var ce *clierr.Error
	if errors.As(err, &ce) {
		if ce.Details == nil {
			ce.Details = map[string]any{}
		}
		ce.Details["path"] = path
		return ce
	}
	return err
}
