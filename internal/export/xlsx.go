package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// ExportXLSX writes an Excel workbook with three sheets: a run summary,
// the per-placement table, and the per-container breakdown.
func ExportXLSX(path string, result model.OptimizationResult) error {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	summaryRows := [][]interface{}{
		{"Run ID", result.RunID},
		{"Containers used", result.ContainersUsed()},
		{"Total efficiency", result.TotalEfficiency},
		{"Best fitness", result.BestFitness},
		{"Packages placed", result.TotalPackagesPlaced()},
		{"Unplaced packages", result.TotalUnplaced()},
		{"Generations", result.GenerationsCompleted},
		{"Optimization time", result.OptimizationTime.Round(timeRounding).String()},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	const placementSheet = "Placements"
	if _, err := f.NewSheet(placementSheet); err != nil {
		return fmt.Errorf("failed to create placements sheet: %w", err)
	}
	placementHeader := []interface{}{"Container", "Package", "Rotation", "Position", "Dimensions"}
	if err := f.SetSheetRow(placementSheet, "A1", &placementHeader); err != nil {
		return fmt.Errorf("failed to write placements header: %w", err)
	}
	rowNum := 2
	for _, sol := range result.ContainerSolutions {
		for _, p := range sol.PlacedPackages {
			row := []interface{}{
				sol.Container.ID,
				model.BasePackageName(p.Name),
				p.Rotation,
				formatPosition(p.Position),
				formatDims(p.Dimensions),
			}
			cell, _ := excelize.CoordinatesToCellName(1, rowNum)
			if err := f.SetSheetRow(placementSheet, cell, &row); err != nil {
				return fmt.Errorf("failed to write placement row: %w", err)
			}
			rowNum++
		}
	}

	const containerSheet = "Containers"
	if _, err := f.NewSheet(containerSheet); err != nil {
		return fmt.Errorf("failed to create containers sheet: %w", err)
	}
	containerHeader := []interface{}{"Container", "Dimensions", "Packages", "Utilization", "Used", "Capacity"}
	if err := f.SetSheetRow(containerSheet, "A1", &containerHeader); err != nil {
		return fmt.Errorf("failed to write containers header: %w", err)
	}
	for i, sol := range result.ContainerSolutions {
		row := []interface{}{
			sol.Container.ID,
			formatDims(sol.Container.Dimensions),
			sol.PackageCount(),
			sol.UtilizationRate,
			sol.UsedExtent(),
			sol.Container.Extent(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(containerSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write container row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
