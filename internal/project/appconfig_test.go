package project

import (
	"path/filepath"
	"testing"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.DefaultParameters.PopulationSize != 1000 {
		t.Errorf("PopulationSize = %d, want 1000", cfg.DefaultParameters.PopulationSize)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestSaveLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := DefaultAppConfig()
	cfg.LogLevel = "debug"
	cfg.AddRecentProject("/tmp/a.json")

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig returned error: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig returned error: %v", err)
	}
	if loaded.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", loaded.LogLevel, "debug")
	}
	if len(loaded.RecentProjects) != 1 || loaded.RecentProjects[0] != "/tmp/a.json" {
		t.Errorf("RecentProjects = %v", loaded.RecentProjects)
	}
}

func TestLoadAppConfig_MissingFileReturnsDefaults(t *testing.T) {
	loaded, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadAppConfig returned error: %v", err)
	}
	if loaded.LogLevel != DefaultAppConfig().LogLevel {
		t.Errorf("expected defaults, got %+v", loaded)
	}
}

func TestAddRecentProject(t *testing.T) {
	cfg := DefaultAppConfig()

	cfg.AddRecentProject("/a")
	cfg.AddRecentProject("/b")
	cfg.AddRecentProject("/a")

	if len(cfg.RecentProjects) != 2 {
		t.Fatalf("expected 2 entries, got %v", cfg.RecentProjects)
	}
	if cfg.RecentProjects[0] != "/a" || cfg.RecentProjects[1] != "/b" {
		t.Errorf("unexpected order: %v", cfg.RecentProjects)
	}

	for i := 0; i < 15; i++ {
		cfg.AddRecentProject(filepath.Join("/p", string(rune('a'+i))))
	}
	if len(cfg.RecentProjects) != maxRecentProjects {
		t.Errorf("expected trim to %d, got %d", maxRecentProjects, len(cfg.RecentProjects))
	}
}
