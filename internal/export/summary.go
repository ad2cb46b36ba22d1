package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// Summary renders a plain-text report of an optimization run, suitable for
// terminals and log files.
func Summary(result model.OptimizationResult) string {
	var b strings.Builder

	b.WriteString("PACKING OPTIMIZATION REPORT\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	if result.RunID != "" {
		fmt.Fprintf(&b, "Run:                  %s\n", result.RunID)
	}
	fmt.Fprintf(&b, "Containers used:      %d\n", result.ContainersUsed())
	fmt.Fprintf(&b, "Total efficiency:     %.1f%%\n", result.TotalEfficiency*100)
	fmt.Fprintf(&b, "Best fitness:         %.4f\n", result.BestFitness)
	fmt.Fprintf(&b, "Packages placed:      %d\n", result.TotalPackagesPlaced())
	fmt.Fprintf(&b, "Generations:          %d\n", result.GenerationsCompleted)
	fmt.Fprintf(&b, "Optimization time:    %s\n", result.OptimizationTime.Round(timeRounding))

	for i, sol := range result.ContainerSolutions {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Container %d: %s %s  utilization %.1f%%\n",
			i+1, sol.Container.ID, formatDims(sol.Container.Dimensions), sol.UtilizationRate*100)
		for _, p := range sol.PlacedPackages {
			fmt.Fprintf(&b, "  %-20s %s at %s\n", p.Name, formatDims(p.Dimensions), formatPosition(p.Position))
		}
	}

	if result.TotalUnplaced() > 0 {
		b.WriteString("\nUnplaced packages:\n")
		for _, name := range sortedUnplacedNames(result) {
			if count := result.UnplacedPackages[name]; count > 0 {
				fmt.Fprintf(&b, "  %-20s %d\n", name, count)
			}
		}
	}

	if len(result.UnusedContainers) > 0 {
		b.WriteString("\nUnused containers:\n")
		for _, c := range result.UnusedContainers {
			fmt.Fprintf(&b, "  %s %s\n", c.ID, formatDims(c.Dimensions))
		}
	}

	return b.String()
}

// ExportSummary writes the plain-text report to a file.
func ExportSummary(path string, result model.OptimizationResult) error {
	if err := os.WriteFile(path, []byte(Summary(result)), 0o644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	return nil
}
