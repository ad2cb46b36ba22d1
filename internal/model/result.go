package model

import "time"

// PlacedPackage is one concrete unit placed inside a container. Name carries
// the rotation suffix when a non-original orientation was used (for example
// "box_r90"); Rotation holds the same label, or is empty for the original
// orientation. Position and Dimensions match the problem's dimensionality.
type PlacedPackage struct {
	Name       string `json:"name"`
	Position   []int  `json:"position"`
	Dimensions []int  `json:"dimensions"`
	Rotation   string `json:"rotation,omitempty"`
}

// Extent returns the placed unit's length, area, or volume.
func (p PlacedPackage) Extent() int {
	extent := 1
	for _, d := range p.Dimensions {
		extent *= d
	}
	return extent
}

// ContainerSolution holds the placements decoded for a single used container.
type ContainerSolution struct {
	Container       Container       `json:"container"`
	PlacedPackages  []PlacedPackage `json:"placed_packages"`
	UtilizationRate float64         `json:"utilization_rate"`
}

// UsedExtent returns the summed extent of all placed packages.
func (s ContainerSolution) UsedExtent() int {
	total := 0
	for _, p := range s.PlacedPackages {
		total += p.Extent()
	}
	return total
}

// PackageCount returns the number of placed units.
func (s ContainerSolution) PackageCount() int {
	return len(s.PlacedPackages)
}

// TotalWeight returns the summed weight of the placed units, looked up by
// base package name in the given problem. Units whose package carries no
// weight contribute zero.
func (s ContainerSolution) TotalWeight(problem PackingProblem) float64 {
	byName := make(map[string]float64, len(problem.Packages))
	for _, pkg := range problem.Packages {
		byName[pkg.Name] = pkg.Weight
	}
	var total float64
	for _, p := range s.PlacedPackages {
		total += byName[BasePackageName(p.Name)]
	}
	return total
}

// GenerationStats records one generation's fitness statistics.
type GenerationStats struct {
	Generation int           `json:"generation"`
	Best       float64       `json:"best"`
	Average    float64       `json:"average"`
	StdDev     float64       `json:"std_dev"`
	Duration   time.Duration `json:"duration"`
}

// OptimizationResult is the value object produced once per run and owned by
// the caller afterwards. UnplacedPackages maps each package name to the
// quantity that found no home anywhere.
type OptimizationResult struct {
	RunID                string              `json:"run_id"`
	ContainerSolutions   []ContainerSolution `json:"container_solutions"`
	TotalEfficiency      float64             `json:"total_efficiency"`
	UnusedContainers     []Container         `json:"unused_containers"`
	UnplacedPackages     map[string]int      `json:"unplaced_packages"`
	OptimizationTime     time.Duration       `json:"optimization_time"`
	GenerationsCompleted int                 `json:"generations_completed"`
	BestFitness          float64             `json:"best_fitness"`
	FitnessHistory       []GenerationStats   `json:"fitness_history,omitempty"`
	Timestamp            time.Time           `json:"timestamp"`
}

// ContainersUsed returns the number of containers holding at least one unit.
func (r OptimizationResult) ContainersUsed() int {
	return len(r.ContainerSolutions)
}

// Feasible reports whether at least one container solution placed a package.
func (r OptimizationResult) Feasible() bool {
	for _, s := range r.ContainerSolutions {
		if len(s.PlacedPackages) > 0 {
			return true
		}
	}
	return false
}

// TotalPackagesPlaced returns the total placed unit count across containers.
func (r OptimizationResult) TotalPackagesPlaced() int {
	total := 0
	for _, s := range r.ContainerSolutions {
		total += s.PackageCount()
	}
	return total
}

// TotalExtentUsed returns the summed placed extent across all containers.
func (r OptimizationResult) TotalExtentUsed() int {
	total := 0
	for _, s := range r.ContainerSolutions {
		total += s.UsedExtent()
	}
	return total
}

// TotalExtentAvailable returns the summed capacity of the used containers.
func (r OptimizationResult) TotalExtentAvailable() int {
	total := 0
	for _, s := range r.ContainerSolutions {
		total += s.Container.Extent()
	}
	return total
}

// AverageUtilization returns the mean utilization rate over used containers,
// or 0 when none is used.
func (r OptimizationResult) AverageUtilization() float64 {
	if len(r.ContainerSolutions) == 0 {
		return 0
	}
	var sum float64
	for _, s := range r.ContainerSolutions {
		sum += s.UtilizationRate
	}
	return sum / float64(len(r.ContainerSolutions))
}

// TotalUnplaced returns the summed unplaced quantity across package types.
func (r OptimizationResult) TotalUnplaced() int {
	total := 0
	for _, q := range r.UnplacedPackages {
		total += q
	}
	return total
}

// OptimizationProgress is handed to the progress callback after each
// generation. EstimatedRemaining is zero until one generation has finished.
type OptimizationProgress struct {
	CurrentGeneration  int           `json:"current_generation"`
	TotalGenerations   int           `json:"total_generations"`
	BestFitness        float64       `json:"best_fitness"`
	AverageFitness     float64       `json:"average_fitness"`
	Elapsed            time.Duration `json:"elapsed"`
	EstimatedRemaining time.Duration `json:"estimated_remaining"`
}

// Percentage returns the completed fraction of the run as a percentage.
func (p OptimizationProgress) Percentage() float64 {
	if p.TotalGenerations == 0 {
		return 0
	}
	return float64(p.CurrentGeneration) / float64(p.TotalGenerations) * 100.0
}

// BasePackageName strips a rotation suffix ("_r90", "_rxy", "_rxz", "_ryz")
// from a placed package name, returning the package-type name it came from.
func BasePackageName(name string) string {
	for _, suffix := range []string{"_r90", "_rxy", "_rxz", "_ryz"} {
		if len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix {
			return name[:len(name)-len(suffix)]
		}
	}
	return name
}
