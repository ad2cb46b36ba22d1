// Package analytics derives insights from optimization results: efficiency
// metrics, container and package usage breakdowns, algorithm performance,
// and tuning recommendations.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// EfficiencyMetrics summarizes utilization across used containers.
type EfficiencyMetrics struct {
	OverallEfficiency         float64 `json:"overall_efficiency"`
	AverageUtilization        float64 `json:"average_utilization"`
	UtilizationVariance       float64 `json:"utilization_variance"`
	UtilizationStdDev         float64 `json:"utilization_std"`
	BestContainerUtilization  float64 `json:"best_container_utilization"`
	WorstContainerUtilization float64 `json:"worst_container_utilization"`
}

// ContainerSpace reports extent accounting for one used container.
type ContainerSpace struct {
	ContainerID string  `json:"container_id"`
	UsedExtent  int     `json:"used_extent"`
	TotalExtent int     `json:"total_extent"`
	Utilization float64 `json:"utilization"`
	WastedSpace int     `json:"wasted_space"`
}

// SpaceUtilization aggregates extent usage across the whole run.
type SpaceUtilization struct {
	TotalUsed         int              `json:"total_used"`
	TotalAvailable    int              `json:"total_available"`
	GlobalUtilization float64          `json:"global_utilization"`
	TotalWasted       int              `json:"total_wasted"`
	Containers        []ContainerSpace `json:"containers"`
}

// TypeUsage groups used containers by their declared type.
type TypeUsage struct {
	Count              int     `json:"count"`
	AverageUtilization float64 `json:"average_utilization"`
}

// ContainerUsage reports how many of the available containers were used.
type ContainerUsage struct {
	TotalContainers  int                               `json:"total_containers"`
	UsedContainers   int                               `json:"used_containers"`
	UnusedContainers int                               `json:"unused_containers"`
	UsageRate        float64                           `json:"container_usage_rate"`
	ByType           map[model.ContainerType]TypeUsage `json:"container_types"`
}

// PackageStats describes placement outcomes for one package type.
type PackageStats struct {
	RequestedMin   int      `json:"requested_min"`
	RequestedMax   int      `json:"requested_max"`
	Placed         int      `json:"placed"`
	Unplaced       int      `json:"unplaced"`
	PlacementRate  float64  `json:"placement_rate"`
	ContainersUsed []string `json:"containers_used"`
	RotationsUsed  []string `json:"rotations_used"`
}

// PackageAnalysis aggregates placement outcomes across all package types.
type PackageAnalysis struct {
	TotalRequested       int                     `json:"total_packages_requested"`
	TotalPlaced          int                     `json:"total_packages_placed"`
	OverallPlacementRate float64                 `json:"overall_placement_rate"`
	Details              map[string]PackageStats `json:"package_details"`
}

// Performance captures how the search itself behaved.
type Performance struct {
	OptimizationTime      time.Duration `json:"optimization_time"`
	GenerationsCompleted  int           `json:"generations_completed"`
	BestFitness           float64       `json:"best_fitness"`
	TimePerGeneration     time.Duration `json:"time_per_generation"`
	InitialFitness        float64       `json:"initial_fitness"`
	FinalFitness          float64       `json:"final_fitness"`
	FitnessImprovement    float64       `json:"fitness_improvement"`
	ImprovementRate       float64       `json:"improvement_rate"`
	ConvergenceGeneration int           `json:"convergence_generation"`
}

// Report is the full analysis of one optimization run.
type Report struct {
	Efficiency      EfficiencyMetrics `json:"efficiency_metrics"`
	Space           SpaceUtilization  `json:"space_utilization"`
	Containers      ContainerUsage    `json:"container_analysis"`
	Packages        PackageAnalysis   `json:"package_analysis"`
	Performance     Performance       `json:"optimization_performance"`
	Recommendations []string          `json:"recommendations"`
}

// Analyze builds a full report from a result and the problem it solved.
func Analyze(result model.OptimizationResult, problem model.PackingProblem) Report {
	return Report{
		Efficiency:      efficiencyMetrics(result),
		Space:           spaceUtilization(result),
		Containers:      containerUsage(result),
		Packages:        packageAnalysis(result, problem),
		Performance:     performance(result),
		Recommendations: recommendations(result),
	}
}

func efficiencyMetrics(result model.OptimizationResult) EfficiencyMetrics {
	if len(result.ContainerSolutions) == 0 {
		return EfficiencyMetrics{}
	}

	best := result.ContainerSolutions[0].UtilizationRate
	worst := best
	sum := 0.0
	for _, sol := range result.ContainerSolutions {
		u := sol.UtilizationRate
		sum += u
		if u > best {
			best = u
		}
		if u < worst {
			worst = u
		}
	}
	mean := sum / float64(len(result.ContainerSolutions))

	variance := 0.0
	for _, sol := range result.ContainerSolutions {
		d := sol.UtilizationRate - mean
		variance += d * d
	}
	variance /= float64(len(result.ContainerSolutions))

	return EfficiencyMetrics{
		OverallEfficiency:         result.TotalEfficiency,
		AverageUtilization:        mean,
		UtilizationVariance:       variance,
		UtilizationStdDev:         math.Sqrt(variance),
		BestContainerUtilization:  best,
		WorstContainerUtilization: worst,
	}
}

func spaceUtilization(result model.OptimizationResult) SpaceUtilization {
	space := SpaceUtilization{}
	for _, sol := range result.ContainerSolutions {
		used := sol.UsedExtent()
		total := sol.Container.Extent()
		space.TotalUsed += used
		space.TotalAvailable += total
		space.Containers = append(space.Containers, ContainerSpace{
			ContainerID: sol.Container.ID,
			UsedExtent:  used,
			TotalExtent: total,
			Utilization: sol.UtilizationRate,
			WastedSpace: total - used,
		})
	}
	space.TotalWasted = space.TotalAvailable - space.TotalUsed
	if space.TotalAvailable > 0 {
		space.GlobalUtilization = float64(space.TotalUsed) / float64(space.TotalAvailable)
	}
	return space
}

func containerUsage(result model.OptimizationResult) ContainerUsage {
	usage := ContainerUsage{
		UsedContainers:   len(result.ContainerSolutions),
		UnusedContainers: len(result.UnusedContainers),
		ByType:           make(map[model.ContainerType]TypeUsage),
	}
	usage.TotalContainers = usage.UsedContainers + usage.UnusedContainers
	if usage.TotalContainers > 0 {
		usage.UsageRate = float64(usage.UsedContainers) / float64(usage.TotalContainers)
	}

	sums := make(map[model.ContainerType]float64)
	for _, sol := range result.ContainerSolutions {
		tu := usage.ByType[sol.Container.Type]
		tu.Count++
		usage.ByType[sol.Container.Type] = tu
		sums[sol.Container.Type] += sol.UtilizationRate
	}
	for t, tu := range usage.ByType {
		tu.AverageUtilization = sums[t] / float64(tu.Count)
		usage.ByType[t] = tu
	}
	return usage
}

func packageAnalysis(result model.OptimizationResult, problem model.PackingProblem) PackageAnalysis {
	analysis := PackageAnalysis{Details: make(map[string]PackageStats)}

	for _, pkg := range problem.Packages {
		analysis.Details[pkg.Name] = PackageStats{
			RequestedMin: pkg.MinQuantity,
			RequestedMax: pkg.MaxQuantity,
			Unplaced:     result.UnplacedPackages[pkg.Name],
		}
		analysis.TotalRequested += pkg.MaxQuantity
	}

	rotations := make(map[string]map[string]bool)
	for _, sol := range result.ContainerSolutions {
		for _, placed := range sol.PlacedPackages {
			base := model.BasePackageName(placed.Name)
			stats, ok := analysis.Details[base]
			if !ok {
				continue
			}
			stats.Placed++
			stats.ContainersUsed = append(stats.ContainersUsed, sol.Container.ID)
			if placed.Rotation != "" {
				if rotations[base] == nil {
					rotations[base] = make(map[string]bool)
				}
				rotations[base][placed.Rotation] = true
			}
			analysis.Details[base] = stats
			analysis.TotalPlaced++
		}
	}

	for name, stats := range analysis.Details {
		if stats.RequestedMax > 0 {
			stats.PlacementRate = float64(stats.Placed) / float64(stats.RequestedMax)
		}
		for rotation := range rotations[name] {
			stats.RotationsUsed = append(stats.RotationsUsed, rotation)
		}
		sort.Strings(stats.RotationsUsed)
		analysis.Details[name] = stats
	}

	if analysis.TotalRequested > 0 {
		analysis.OverallPlacementRate = float64(analysis.TotalPlaced) / float64(analysis.TotalRequested)
	}
	return analysis
}

func performance(result model.OptimizationResult) Performance {
	perf := Performance{
		OptimizationTime:     result.OptimizationTime,
		GenerationsCompleted: result.GenerationsCompleted,
		BestFitness:          result.BestFitness,
	}
	if result.GenerationsCompleted > 0 {
		perf.TimePerGeneration = result.OptimizationTime / time.Duration(result.GenerationsCompleted)
	}

	history := result.FitnessHistory
	if len(history) > 0 {
		perf.InitialFitness = history[0].Best
		perf.FinalFitness = history[len(history)-1].Best
		perf.FitnessImprovement = perf.FinalFitness - perf.InitialFitness
		if perf.InitialFitness > 0 {
			perf.ImprovementRate = perf.FitnessImprovement / perf.InitialFitness
		}
		perf.ConvergenceGeneration = convergencePoint(history)
	}
	return perf
}

// convergencePoint finds the generation after which the best fitness stops
// improving by more than 0.1% over a 10-generation window.
func convergencePoint(history []model.GenerationStats) int {
	if len(history) < 10 {
		return len(history)
	}

	const threshold = 0.001
	for i := 10; i < len(history); i++ {
		prev := history[i-10].Best
		if prev == 0 {
			continue
		}
		improvement := (history[i].Best - prev) / prev
		if math.Abs(improvement) < threshold {
			return i
		}
	}
	return len(history)
}

func recommendations(result model.OptimizationResult) []string {
	var recs []string

	if result.TotalEfficiency < 0.7 {
		recs = append(recs, "Consider increasing population size or generations for better optimization results.")
	}
	if result.TotalEfficiency < 0.5 {
		recs = append(recs, "Low efficiency detected. Review container sizes or package dimensions for better fit.")
	}

	unused := len(result.UnusedContainers)
	total := len(result.ContainerSolutions) + unused
	if total > 0 && float64(unused) > float64(total)*0.5 {
		recs = append(recs, "Many containers remain unused. Consider reducing the number of available containers.")
	}

	if m := efficiencyMetrics(result); m.UtilizationStdDev > 0.2 {
		recs = append(recs, "High variance in container utilization. Consider balancing package distribution.")
	}

	if unplaced := result.TotalUnplaced(); unplaced > 0 {
		recs = append(recs, fmt.Sprintf("%d packages could not be placed. Consider adding more containers or adjusting package quantities.", unplaced))
	}

	if len(recs) == 0 {
		recs = append(recs, "Optimization results look good! No major issues detected.")
	}
	return recs
}

// ResultSummary is one entry of a multi-run comparison.
type ResultSummary struct {
	Index             int           `json:"index"`
	Efficiency        float64       `json:"efficiency"`
	ContainersUsed    int           `json:"containers_used"`
	PackagesPlaced    int           `json:"packages_placed"`
	OptimizationTime  time.Duration `json:"optimization_time"`
	Generations       int           `json:"generations"`
	TimePerGeneration time.Duration `json:"time_per_generation"`
}

// Comparison ranks several runs of the same problem against each other.
type Comparison struct {
	ResultCount int             `json:"result_count"`
	Results     []ResultSummary `json:"results"`
	BestIndex   int             `json:"best_result_index"`
	WorstIndex  int             `json:"worst_result_index"`
}

// CompareResults compares runs by total efficiency. It errors on an empty
// input.
func CompareResults(results []model.OptimizationResult) (Comparison, error) {
	if len(results) == 0 {
		return Comparison{}, fmt.Errorf("no results to compare")
	}

	cmp := Comparison{ResultCount: len(results)}
	bestEfficiency := -1.0
	worstEfficiency := 2.0

	for i, result := range results {
		summary := ResultSummary{
			Index:            i,
			Efficiency:       result.TotalEfficiency,
			ContainersUsed:   result.ContainersUsed(),
			PackagesPlaced:   result.TotalPackagesPlaced(),
			OptimizationTime: result.OptimizationTime,
			Generations:      result.GenerationsCompleted,
		}
		if result.GenerationsCompleted > 0 {
			summary.TimePerGeneration = result.OptimizationTime / time.Duration(result.GenerationsCompleted)
		}
		cmp.Results = append(cmp.Results, summary)

		if result.TotalEfficiency > bestEfficiency {
			bestEfficiency = result.TotalEfficiency
			cmp.BestIndex = i
		}
		if result.TotalEfficiency < worstEfficiency {
			worstEfficiency = result.TotalEfficiency
			cmp.WorstIndex = i
		}
	}
	return cmp, nil
}
