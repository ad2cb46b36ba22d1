package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// Catalog is the user's library of known container and package types,
// reusable across problems.
type Catalog struct {
	Containers []model.Container `json:"containers"`
	Packages   []model.Package   `json:"packages"`
}

// DefaultCatalog returns a starter catalog with common logistics
// container sizes.
func DefaultCatalog() Catalog {
	return Catalog{
		Containers: []model.Container{
			model.NewContainer("euro-pallet", []int{120, 80}, true),
			model.NewContainer("industrial-pallet", []int{120, 100}, true),
			model.NewContainer("container-20ft", []int{590, 235, 239}, true),
			model.NewContainer("container-40ft", []int{1203, 235, 239}, true),
		},
	}
}

// DefaultCatalogPath returns the default file path for the catalog file.
// This is located at ~/.binpack/catalog.json.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "catalog.json")
}

// SaveCatalog writes the catalog to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveCatalog(path string, cat Catalog) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCatalog reads the catalog from the specified JSON file.
// If the file does not exist, it returns the default catalog and saves it.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cat := DefaultCatalog()
			if saveErr := SaveCatalog(path, cat); saveErr != nil {
				return cat, saveErr
			}
			return cat, nil
		}
		return Catalog{}, err
	}
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// ImportCatalog merges a catalog file into an existing catalog.
// Containers with duplicate IDs and packages with duplicate names are
// skipped.
func ImportCatalog(path string, existing Catalog) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported Catalog
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}

	containerIDs := make(map[string]bool, len(existing.Containers))
	for _, c := range existing.Containers {
		containerIDs[c.ID] = true
	}
	packageNames := make(map[string]bool, len(existing.Packages))
	for _, p := range existing.Packages {
		packageNames[p.Name] = true
	}

	for _, c := range imported.Containers {
		if !containerIDs[c.ID] {
			existing.Containers = append(existing.Containers, c)
			containerIDs[c.ID] = true
		}
	}
	for _, p := range imported.Packages {
		if !packageNames[p.Name] {
			existing.Packages = append(existing.Packages, p)
			packageNames[p.Name] = true
		}
	}

	return existing, nil
}
