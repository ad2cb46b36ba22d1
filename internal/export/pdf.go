// Package export writes packing optimization results to various file
// formats: PDF reports, QR-coded package labels, CSV, JSON, Excel
// workbooks, DXF layout drawings, and interactive HTML charts.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// packageColor represents an RGB color for a placed package.
type packageColor struct {
	R, G, B int
}

var packageColors = []packageColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document for an optimization run. Each used
// container gets its own page: 1D and 2D layouts are rendered as scaled
// diagrams, 3D layouts as a placement table. A summary page closes the
// document.
func ExportPDF(path string, result model.OptimizationResult) error {
	if len(result.ContainerSolutions) == 0 {
		return fmt.Errorf("no container solutions to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, sol := range result.ContainerSolutions {
		pdf.AddPage()
		renderContainerPage(pdf, sol, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// renderContainerPage draws a single container solution on the current page.
func renderContainerPage(pdf *fpdf.Fpdf, sol model.ContainerSolution, num int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Container %d: %s %s", num, sol.Container.ID, formatDims(sol.Container.Dimensions))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Packages: %d | Used: %d | Capacity: %d | Utilization: %.1f%%",
		sol.PackageCount(), sol.UsedExtent(), sol.Container.Extent(), sol.UtilizationRate*100)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	switch len(sol.Container.Dimensions) {
	case 1:
		render1DDiagram(pdf, sol)
	case 2:
		render2DDiagram(pdf, sol)
	default:
		renderPlacementTable(pdf, sol)
	}
}

// render1DDiagram draws a 1D container as a horizontal bar with one segment
// per placed package.
func render1DDiagram(pdf *fpdf.Fpdf, sol model.ContainerSolution) {
	length := float64(sol.Container.Dimensions[0])
	drawWidth := pageWidth - marginLeft - marginRight
	scale := drawWidth / length

	barHeight := 30.0
	offsetY := drawAreaTop + 20

	pdf.SetFillColor(230, 230, 230)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(marginLeft, offsetY, length*scale, barHeight, "FD")

	for i, p := range sol.PlacedPackages {
		col := packageColors[i%len(packageColors)]
		px := marginLeft + float64(p.Position[0])*scale
		pw := float64(p.Dimensions[0]) * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, offsetY, pw, barHeight, "FD")

		if pw > 12 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, barHeight))
			pdf.SetTextColor(0, 0, 0)
			label := p.Name
			if pdf.GetStringWidth(label) < pw-2 {
				pdf.SetXY(px+(pw-pdf.GetStringWidth(label))/2, offsetY+barHeight/2-2)
				pdf.CellFormat(pdf.GetStringWidth(label), 4, label, "", 0, "C", false, 0, "")
			}
		}
	}

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	lengthLabel := fmt.Sprintf("%d units", sol.Container.Dimensions[0])
	pdf.SetXY(marginLeft+(length*scale-pdf.GetStringWidth(lengthLabel))/2, offsetY+barHeight+2)
	pdf.CellFormat(pdf.GetStringWidth(lengthLabel), 4, lengthLabel, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	drawPackageLegend(pdf, sol, offsetY+barHeight+10)
}

// render2DDiagram draws a 2D container layout to scale, one colored
// rectangle per placed package.
func render2DDiagram(pdf *fpdf.Fpdf, sol model.ContainerSolution) {
	cw := float64(sol.Container.Dimensions[0])
	ch := float64(sol.Container.Dimensions[1])

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/cw, drawHeight/ch)
	canvasW := cw * scale
	canvasH := ch * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(230, 230, 230)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range sol.PlacedPackages {
		col := packageColors[i%len(packageColors)]
		pw := float64(p.Dimensions[0]) * scale
		ph := float64(p.Dimensions[1]) * scale
		px := offsetX + float64(p.Position[0])*scale
		// The scan origin is the bottom-left corner; PDF y grows downward.
		py := offsetY + canvasH - float64(p.Position[1])*scale - ph

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Name
			dims := fmt.Sprintf("%dx%d", p.Dimensions[0], p.Dimensions[1])
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, sol.Container, scale, offsetX, offsetY, canvasW, canvasH)
	drawPackageLegend(pdf, sol, offsetY+canvasH+5)
}

// renderPlacementTable lists 3D placements row by row, since a flat diagram
// cannot show depth.
func renderPlacementTable(pdf *fpdf.Fpdf, sol model.ContainerSolution) {
	y := drawAreaTop + 5

	colWidths := []float64{70, 60, 60, 60}
	headers := []string{"Package", "Position", "Dimensions", "Orientation"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range sol.PlacedPackages {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		rowData := []string{
			p.Name,
			formatPosition(p.Position),
			formatDims(p.Dimensions),
			p.Rotation,
		}
		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}
}

// drawDimensionAnnotations adds axis length labels outside the container
// rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, container model.Container, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d", container.Dimensions[0])
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d", container.Dimensions[1])
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPackageLegend renders a compact legend of placed packages.
func drawPackageLegend(pdf *fpdf.Fpdf, sol model.ContainerSolution, startY float64) {
	if len(sol.PlacedPackages) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Packages placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range sol.PlacedPackages {
		col := packageColors[i%len(packageColors)]
		label := fmt.Sprintf("%s %s", p.Name, formatDims(p.Dimensions))
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final page with run-wide statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.OptimizationResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Optimization Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Run ID", result.RunID},
		{"Containers Used", fmt.Sprintf("%d", result.ContainersUsed())},
		{"Total Efficiency", fmt.Sprintf("%.1f%%", result.TotalEfficiency*100)},
		{"Best Fitness", fmt.Sprintf("%.4f", result.BestFitness)},
		{"Packages Placed", fmt.Sprintf("%d", result.TotalPackagesPlaced())},
		{"Unplaced Packages", fmt.Sprintf("%d", result.TotalUnplaced())},
		{"Generations", fmt.Sprintf("%d", result.GenerationsCompleted)},
		{"Optimization Time", result.OptimizationTime.Round(timeRounding).String()},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Container Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 60, 55, 40, 40, 50}
	headers := []string{"#", "Container", "Dimensions", "Packages", "Utilization", "Used / Capacity"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, sol := range result.ContainerSolutions {
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			sol.Container.ID,
			formatDims(sol.Container.Dimensions),
			fmt.Sprintf("%d", sol.PackageCount()),
			fmt.Sprintf("%.1f%%", sol.UtilizationRate*100),
			fmt.Sprintf("%d / %d", sol.UsedExtent(), sol.Container.Extent()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if result.TotalUnplaced() > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Packages", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for _, name := range sortedUnplacedNames(result) {
			count := result.UnplacedPackages[name]
			if count == 0 {
				continue
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- %s: %d", name, count), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	if len(result.UnusedContainers) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "Unused Containers", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		for _, c := range result.UnusedContainers {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- %s %s", c.ID, formatDims(c.Dimensions)), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by bin-packing-optimizer", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
