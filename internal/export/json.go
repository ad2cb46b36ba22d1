package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// ExportJSON writes the full optimization result as indented JSON. The
// output round-trips through LoadJSON.
func ExportJSON(path string, result model.OptimizationResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}
	return nil
}

// LoadJSON reads an optimization result previously written by ExportJSON.
func LoadJSON(path string) (model.OptimizationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.OptimizationResult{}, fmt.Errorf("failed to read result file: %w", err)
	}
	var result model.OptimizationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return model.OptimizationResult{}, fmt.Errorf("failed to parse result file: %w", err)
	}
	return result, nil
}
