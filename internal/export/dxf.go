package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// Horizontal gap between container outlines in drawing units.
const dxfContainerGap = 10.0

// ExportDXF writes a CAD drawing of a 2D packing layout. Containers are
// laid out left to right with their outlines on a CONTAINERS layer and
// every package rectangle on a PACKAGES layer.
func ExportDXF(path string, result model.OptimizationResult) error {
	if len(result.ContainerSolutions) == 0 {
		return fmt.Errorf("no container solutions to export")
	}
	for _, sol := range result.ContainerSolutions {
		if len(sol.Container.Dimensions) != 2 {
			return fmt.Errorf("DXF export supports 2D layouts only, container %q is %dD",
				sol.Container.ID, len(sol.Container.Dimensions))
		}
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer("CONTAINERS", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add containers layer: %w", err)
	}

	offsetX := 0.0
	offsets := make([]float64, len(result.ContainerSolutions))
	for i, sol := range result.ContainerSolutions {
		offsets[i] = offsetX
		w := float64(sol.Container.Dimensions[0])
		h := float64(sol.Container.Dimensions[1])
		drawRect(d, offsetX, 0, w, h)
		offsetX += w + dxfContainerGap
	}

	if _, err := d.AddLayer("PACKAGES", color.Green, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to add packages layer: %w", err)
	}

	for i, sol := range result.ContainerSolutions {
		for _, p := range sol.PlacedPackages {
			px := offsets[i] + float64(p.Position[0])
			py := float64(p.Position[1])
			drawRect(d, px, py, float64(p.Dimensions[0]), float64(p.Dimensions[1]))
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF drawing: %w", err)
	}
	return nil
}

// drawRect draws an axis-aligned closed rectangle as a lightweight polyline.
func drawRect(d *drawing.Drawing, x, y, w, h float64) {
	d.LwPolyline(true,
		[]float64{x, y},
		[]float64{x + w, y},
		[]float64{x + w, y + h},
		[]float64{x, y + h},
	)
}
