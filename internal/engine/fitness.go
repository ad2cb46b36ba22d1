package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// Evaluator decodes genomes into concrete packings and scores them. It is a
// pure function of (problem, genome); distinct genomes can be evaluated
// independently.
type Evaluator struct {
	problem model.PackingProblem
	layout  *GeneLayout
	placer  *Placer
	log     zerolog.Logger
}

// NewEvaluator wires an evaluator to a problem and its gene layout.
func NewEvaluator(problem model.PackingProblem, layout *GeneLayout, log zerolog.Logger) *Evaluator {
	return &Evaluator{
		problem: problem,
		layout:  layout,
		placer:  NewPlacer(problem),
		log:     log,
	}
}

// Decode turns a genome into an optimization result: per-container
// placements, utilization rates, unused containers, and the unplaced
// quantity per package type. A genome whose length does not match the layout
// is a programming defect and panics; genes outside their legal range return
// an error.
func (e *Evaluator) Decode(genome Genome) (model.OptimizationResult, error) {
	if len(genome.Genes) != e.layout.GeneCount() {
		panic(fmt.Sprintf("engine: genome length %d does not match gene layout %d",
			len(genome.Genes), e.layout.GeneCount()))
	}

	var solutions []model.ContainerSolution
	var unused []model.Container

	unplaced := make(map[string]int, len(e.problem.Packages))
	for _, pkg := range e.problem.Packages {
		unplaced[pkg.Name] = pkg.MaxQuantity
	}

	for c, container := range e.problem.Containers {
		usage := genome.Genes[e.layout.UsageIndex(c)]
		if usage != 0 && usage != 1 {
			return model.OptimizationResult{}, fmt.Errorf("container %s: usage gene %d out of range", container.ID, usage)
		}
		if usage == 0 {
			unused = append(unused, container)
			continue
		}

		requests := make([]PlacementRequest, len(e.problem.Packages))
		for p, pkg := range e.problem.Packages {
			quantity := genome.Genes[e.layout.QuantityIndex(c, p)]
			if quantity < pkg.MinQuantity || quantity > pkg.MaxQuantity {
				return model.OptimizationResult{}, fmt.Errorf("package %s: quantity gene %d outside [%d, %d]",
					pkg.Name, quantity, pkg.MinQuantity, pkg.MaxQuantity)
			}
			requests[p] = PlacementRequest{PackageIndex: p, Quantity: quantity}
		}

		placed, leftover := e.placer.Pack(container, requests)
		for p, req := range requests {
			count := req.Quantity - leftover[p]
			name := e.problem.Packages[p].Name
			if remaining := unplaced[name] - count; remaining > 0 {
				unplaced[name] = remaining
			} else {
				unplaced[name] = 0
			}
		}

		if len(placed) > 0 {
			solutions = append(solutions, model.ContainerSolution{
				Container:       container,
				PlacedPackages:  placed,
				UtilizationRate: Utilization(container, placed),
			})
		} else {
			unused = append(unused, container)
		}
	}

	var efficiency float64
	if len(solutions) > 0 {
		for _, s := range solutions {
			efficiency += s.UtilizationRate
		}
		efficiency /= float64(len(solutions))
	}

	return model.OptimizationResult{
		ContainerSolutions: solutions,
		TotalEfficiency:    efficiency,
		UnusedContainers:   unused,
		UnplacedPackages:   unplaced,
	}, nil
}

// Evaluate returns the genome's fitness, reusing the cache when valid.
// Fitness balances space efficiency against a container-count penalty. A
// genome that fails to decode scores 0 and the failure is logged, keeping
// the population well-formed.
func (e *Evaluator) Evaluate(genome *Genome) float64 {
	if fitness, ok := genome.Fitness(); ok {
		return fitness
	}

	result, err := e.Decode(*genome)
	if err != nil {
		e.log.Warn().Err(err).Msg("fitness evaluation failed")
		genome.SetFitness(0)
		return 0
	}

	penalty := 1.0 - float64(result.ContainersUsed())/float64(len(e.problem.Containers))*0.1
	fitness := result.TotalEfficiency * penalty
	genome.SetFitness(fitness)
	return fitness
}
