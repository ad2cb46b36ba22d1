package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/danuaemx/bin-packing-optimizer/internal/engine"
	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// Project bundles a packing problem with its solver parameters and the
// last result, so a run can be revisited or repeated later.
type Project struct {
	Name       string                    `json:"name"`
	Notes      string                    `json:"notes,omitempty"`
	CreatedAt  time.Time                 `json:"created_at"`
	UpdatedAt  time.Time                 `json:"updated_at"`
	Problem    model.PackingProblem      `json:"problem"`
	Parameters engine.Config             `json:"parameters"`
	LastResult *model.OptimizationResult `json:"last_result,omitempty"`
}

// NewProject creates a named project with default solver parameters.
func NewProject(name string, problem model.PackingProblem) Project {
	now := time.Now()
	return Project{
		Name:       name,
		CreatedAt:  now,
		UpdatedAt:  now,
		Problem:    problem,
		Parameters: engine.DefaultConfig(),
	}
}

// SaveProject writes a project to a JSON file, creating parent
// directories as needed. The update timestamp is refreshed on save.
func SaveProject(path string, p Project) error {
	if p.Name == "" {
		return errors.New("project has no name")
	}
	p.UpdatedAt = time.Now()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProject reads a project from a JSON file.
func LoadProject(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, err
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return Project{}, err
	}
	if p.Name == "" {
		return Project{}, errors.New("loaded project has no name")
	}
	return p, nil
}

// DefaultProjectsDir returns the default directory for saved projects.
func DefaultProjectsDir() string {
	return filepath.Join(DefaultConfigDir(), "projects")
}

// ListProjects returns the paths of all project files in a directory,
// sorted by file name. A missing directory yields an empty list.
func ListProjects(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}
