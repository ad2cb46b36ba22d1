package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/danuaemx/bin-packing-optimizer/internal/engine"
	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// ProblemTemplate is a reusable starting point: a problem skeleton plus
// the solver parameters that worked for it.
type ProblemTemplate struct {
	Name       string               `json:"name"`
	Problem    model.PackingProblem `json:"problem"`
	Parameters engine.Config        `json:"parameters"`
}

// TemplateStore holds all saved problem templates.
type TemplateStore struct {
	Templates []ProblemTemplate `json:"templates"`
}

// NewTemplateStore returns an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{Templates: []ProblemTemplate{}}
}

// DefaultTemplatePath returns the default file path for the templates
// store. This is located at ~/.binpack/templates.json.
func DefaultTemplatePath() (string, error) {
	dir := DefaultConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "templates.json"), nil
}

// SaveTemplates writes the template store to a JSON file.
func SaveTemplates(path string, store TemplateStore) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTemplates reads a template store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadTemplates(path string) (TemplateStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewTemplateStore(), nil
		}
		return TemplateStore{}, err
	}
	var store TemplateStore
	if err := json.Unmarshal(data, &store); err != nil {
		return TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []ProblemTemplate{}
	}
	return store, nil
}
