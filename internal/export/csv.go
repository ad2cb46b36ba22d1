package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// ExportCSV writes a flat placement table, one row per placed package.
// Columns: container, container dimensions, package, rotation, position,
// placed dimensions, container utilization.
func ExportCSV(path string, result model.OptimizationResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"container", "container_dimensions", "package", "rotation", "position", "dimensions", "utilization"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, sol := range result.ContainerSolutions {
		util := strconv.FormatFloat(sol.UtilizationRate, 'f', 4, 64)
		for _, p := range sol.PlacedPackages {
			row := []string{
				sol.Container.ID,
				formatDims(sol.Container.Dimensions),
				model.BasePackageName(p.Name),
				p.Rotation,
				formatPosition(p.Position),
				formatDims(p.Dimensions),
				util,
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	w.Flush()
	return w.Error()
}
