package export

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// ExportCharts writes an interactive HTML page with two charts: the
// fitness convergence curve over generations and the utilization of each
// used container.
func ExportCharts(path string, result model.OptimizationResult) error {
	if len(result.FitnessHistory) == 0 && len(result.ContainerSolutions) == 0 {
		return fmt.Errorf("nothing to chart")
	}

	page := components.NewPage()
	if len(result.FitnessHistory) > 0 {
		page.AddCharts(fitnessChart(result))
	}
	if len(result.ContainerSolutions) > 0 {
		page.AddCharts(utilizationChart(result))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	return page.Render(f)
}

// fitnessChart plots the best and average fitness per generation.
func fitnessChart(result model.OptimizationResult) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Fitness Convergence",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Generation",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Fitness",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	generations := make([]string, len(result.FitnessHistory))
	best := make([]opts.LineData, len(result.FitnessHistory))
	average := make([]opts.LineData, len(result.FitnessHistory))
	for i, g := range result.FitnessHistory {
		generations[i] = fmt.Sprintf("%d", g.Generation)
		best[i] = opts.LineData{Value: g.Best}
		average[i] = opts.LineData{Value: g.Average}
	}

	line.SetXAxis(generations).
		AddSeries("Best", best).
		AddSeries("Average", average).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)
	return line
}

// utilizationChart plots per-container utilization as a bar chart.
func utilizationChart(result model.OptimizationResult) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Container Utilization",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Utilization %",
		}))

	ids := make([]string, len(result.ContainerSolutions))
	values := make([]opts.BarData, len(result.ContainerSolutions))
	for i, sol := range result.ContainerSolutions {
		ids[i] = sol.Container.ID
		values[i] = opts.BarData{Value: sol.UtilizationRate * 100}
	}

	bar.SetXAxis(ids).AddSeries("Utilization", values)
	return bar
}
