package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// tournamentSize is fixed: selection picks the fittest of three random
// individuals, with replacement, until the next population is full.
const tournamentSize = 3

// Config holds the genetic algorithm parameters. CrossoverProbability is
// used both as the per-pair mating probability and as the per-gene swap
// probability inside the uniform crossover.
type Config struct {
	PopulationSize       int
	Generations          int
	CrossoverProbability float64
	MutationProbability  float64
	Seed                 int64
}

// DefaultConfig returns the standard parameters. The fixed seed keeps
// repeated runs reproducible; callers wanting varied runs supply their own.
func DefaultConfig() Config {
	return Config{
		PopulationSize:       1000,
		Generations:          50,
		CrossoverProbability: 0.618,
		MutationProbability:  0.021,
		Seed:                 42,
	}
}

// ProgressFunc receives a progress record after each generation. It is
// called synchronously on the solver's goroutine and must not block.
type ProgressFunc func(model.OptimizationProgress)

// solver runs the generational loop for one problem. All randomness comes
// from the single seeded generator, so equal seeds yield equal results.
type solver struct {
	config   Config
	layout   *GeneLayout
	eval     *Evaluator
	rng      *rand.Rand
	log      zerolog.Logger
	progress ProgressFunc
}

func newSolver(problem model.PackingProblem, config Config, log zerolog.Logger, progress ProgressFunc) *solver {
	layout := NewGeneLayout(problem)
	return &solver{
		config:   config,
		layout:   layout,
		eval:     NewEvaluator(problem, layout, log),
		rng:      rand.New(rand.NewSource(config.Seed)),
		log:      log,
		progress: progress,
	}
}

// Run evolves the population for the configured generation count and decodes
// the best final individual. There is no elitism: the best individual
// survives only if re-selected. Cancellation is honored at generation
// boundaries; on cancel the best individual found so far is decoded and
// GenerationsCompleted reports the generations actually run.
func (s *solver) Run(ctx context.Context) (model.OptimizationResult, error) {
	start := time.Now()

	population := make([]Genome, s.config.PopulationSize)
	for i := range population {
		population[i] = s.layout.RandomGenome(s.rng)
		s.eval.Evaluate(&population[i])
	}

	var history []model.GenerationStats
	completed := 0

	for gen := 0; gen < s.config.Generations; gen++ {
		if ctx.Err() != nil {
			s.log.Info().Int("generation", gen).Msg("optimization cancelled")
			break
		}
		genStart := time.Now()

		offspring := s.selectOffspring(population)

		for i := 0; i+1 < len(offspring); i += 2 {
			if s.rng.Float64() < s.config.CrossoverProbability {
				s.crossover(&offspring[i], &offspring[i+1])
			}
		}

		for i := range offspring {
			if s.rng.Float64() < s.config.MutationProbability {
				idx := s.rng.Intn(s.layout.GeneCount())
				s.layout.MutateGene(&offspring[i], idx, s.rng)
				offspring[i].Invalidate()
			}
		}

		for i := range offspring {
			s.eval.Evaluate(&offspring[i])
		}

		population = offspring
		completed = gen + 1

		best, avg, std := populationStats(population)
		history = append(history, model.GenerationStats{
			Generation: gen,
			Best:       best,
			Average:    avg,
			StdDev:     std,
			Duration:   time.Since(genStart),
		})
		s.reportProgress(completed, best, avg, time.Since(start))
	}

	bestIdx := 0
	bestFitness := math.Inf(-1)
	for i := range population {
		if fitness, _ := population[i].Fitness(); fitness > bestFitness {
			bestFitness = fitness
			bestIdx = i
		}
	}

	result, err := s.eval.Decode(population[bestIdx])
	if err != nil {
		return model.OptimizationResult{}, fmt.Errorf("decoding best individual: %w", err)
	}

	result.OptimizationTime = time.Since(start)
	result.GenerationsCompleted = completed
	result.BestFitness = bestFitness
	result.FitnessHistory = history
	return result, nil
}

// selectOffspring refills the population by tournament selection with
// replacement, cloning each winner.
func (s *solver) selectOffspring(population []Genome) []Genome {
	offspring := make([]Genome, len(population))
	for i := range offspring {
		best := &population[s.rng.Intn(len(population))]
		bestFitness, _ := best.Fitness()
		for t := 1; t < tournamentSize; t++ {
			candidate := &population[s.rng.Intn(len(population))]
			if fitness, _ := candidate.Fitness(); fitness > bestFitness {
				best = candidate
				bestFitness = fitness
			}
		}
		offspring[i] = best.Clone()
	}
	return offspring
}

// crossover applies uniform gene-wise exchange: each gene swaps between the
// pair with the configured per-gene probability. Any swap invalidates both
// fitness caches.
func (s *solver) crossover(a, b *Genome) {
	swapped := false
	for i := range a.Genes {
		if s.rng.Float64() < s.config.CrossoverProbability {
			a.Genes[i], b.Genes[i] = b.Genes[i], a.Genes[i]
			swapped = true
		}
	}
	if swapped {
		a.Invalidate()
		b.Invalidate()
	}
}

func (s *solver) reportProgress(completed int, best, avg float64, elapsed time.Duration) {
	if s.progress == nil {
		return
	}
	var remaining time.Duration
	if completed > 0 {
		remaining = elapsed / time.Duration(completed) * time.Duration(s.config.Generations-completed)
	}
	s.progress(model.OptimizationProgress{
		CurrentGeneration:  completed,
		TotalGenerations:   s.config.Generations,
		BestFitness:        best,
		AverageFitness:     avg,
		Elapsed:            elapsed,
		EstimatedRemaining: remaining,
	})
}

func populationStats(population []Genome) (best, avg, std float64) {
	best = math.Inf(-1)
	for i := range population {
		fitness, _ := population[i].Fitness()
		if fitness > best {
			best = fitness
		}
		avg += fitness
	}
	avg /= float64(len(population))

	var variance float64
	for i := range population {
		fitness, _ := population[i].Fitness()
		variance += (fitness - avg) * (fitness - avg)
	}
	variance /= float64(len(population))
	return best, avg, math.Sqrt(variance)
}
