package project

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadTemplates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")

	store := NewTemplateStore()
	store.Templates = append(store.Templates, ProblemTemplate{
		Name:       "pallet-loading",
		Problem:    testProblem(),
		Parameters: DefaultAppConfig().DefaultParameters,
	})

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates returned error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates returned error: %v", err)
	}
	if len(loaded.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(loaded.Templates))
	}
	tpl := loaded.Templates[0]
	if tpl.Name != "pallet-loading" {
		t.Errorf("Name = %q, want %q", tpl.Name, "pallet-loading")
	}
	if len(tpl.Problem.Containers) != 1 {
		t.Errorf("problem not preserved: %+v", tpl.Problem)
	}
}

func TestLoadTemplates_MissingFileReturnsEmptyStore(t *testing.T) {
	store, err := LoadTemplates(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadTemplates returned error: %v", err)
	}
	if store.Templates == nil || len(store.Templates) != 0 {
		t.Errorf("expected empty store, got %+v", store)
	}
}
