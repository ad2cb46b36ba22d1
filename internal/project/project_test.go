package project

import (
	"path/filepath"
	"testing"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

func testProblem() model.PackingProblem {
	return model.PackingProblem{
		Packages:   []model.Package{model.NewPackage("a", []int{4}, 1, 3)},
		Containers: []model.Container{model.NewContainer("c1", []int{10}, false)},
	}
}

func TestSaveLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects", "demo.json")

	p := NewProject("demo", testProblem())
	p.Notes = "first trial"
	result := model.OptimizationResult{RunID: "r1", TotalEfficiency: 0.8}
	p.LastResult = &result

	if err := SaveProject(path, p); err != nil {
		t.Fatalf("SaveProject returned error: %v", err)
	}

	loaded, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject returned error: %v", err)
	}
	if loaded.Name != "demo" || loaded.Notes != "first trial" {
		t.Errorf("loaded project mismatch: %+v", loaded)
	}
	if len(loaded.Problem.Packages) != 1 {
		t.Errorf("problem not preserved: %+v", loaded.Problem)
	}
	if loaded.LastResult == nil || loaded.LastResult.RunID != "r1" {
		t.Errorf("last result not preserved: %+v", loaded.LastResult)
	}
	if loaded.Parameters.PopulationSize != 1000 {
		t.Errorf("parameters not preserved: %+v", loaded.Parameters)
	}
}

func TestSaveProject_RequiresName(t *testing.T) {
	p := NewProject("", testProblem())
	err := SaveProject(filepath.Join(t.TempDir(), "x.json"), p)
	if err == nil {
		t.Fatal("expected error for unnamed project")
	}
}

func TestLoadProject_MissingFile(t *testing.T) {
	_, err := LoadProject(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestListProjects(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b", "a"} {
		p := NewProject(name, testProblem())
		if err := SaveProject(filepath.Join(dir, name+".json"), p); err != nil {
			t.Fatalf("SaveProject returned error: %v", err)
		}
	}

	paths, err := ListProjects(dir)
	if err != nil {
		t.Fatalf("ListProjects returned error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 projects, got %v", paths)
	}

	empty, err := ListProjects(filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("ListProjects on missing dir returned error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty list, got %v", empty)
	}
}
