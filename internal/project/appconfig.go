// Package project persists user-facing state between runs: application
// configuration, saved packing projects, the container and package
// catalog, problem templates, and full data backups. Everything is stored
// as JSON under the user's config directory.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/danuaemx/bin-packing-optimizer/internal/engine"
)

const maxRecentProjects = 10

// AppConfig holds user preferences that survive restarts.
type AppConfig struct {
	RecentProjects    []string      `json:"recent_projects"`
	LogLevel          string        `json:"log_level"`
	PrettyLogging     bool          `json:"pretty_logging"`
	DefaultParameters engine.Config `json:"default_parameters"`
}

// DefaultAppConfig returns the configuration used on first start.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		RecentProjects:    []string{},
		LogLevel:          "info",
		PrettyLogging:     true,
		DefaultParameters: engine.DefaultConfig(),
	}
}

// AddRecentProject puts path at the front of the recent list, dropping
// duplicates and trimming to the last ten entries.
func (c *AppConfig) AddRecentProject(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentProjects {
		recent = recent[:maxRecentProjects]
	}
	c.RecentProjects = recent
}

// DefaultConfigDir returns the default directory for application
// configuration. On all platforms this is ~/.binpack/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".binpack")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultAppConfig(), nil
		}
		return AppConfig{}, err
	}
	var config AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return AppConfig{}, err
	}
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}
