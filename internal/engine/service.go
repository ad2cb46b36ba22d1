package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// Service is the high-level entry point: it validates the problem and the
// algorithm parameters, gates on dimensionality, and runs the solver.
type Service struct {
	log zerolog.Logger
}

// NewService builds a service logging through the given logger.
func NewService(log zerolog.Logger) *Service {
	return &Service{log: log}
}

// ValidateConfig returns the list of out-of-range parameter violations.
func ValidateConfig(config Config) []string {
	var issues []string
	if config.PopulationSize <= 0 {
		issues = append(issues, "population size must be positive")
	}
	if config.PopulationSize > 0 && config.PopulationSize < 10 {
		issues = append(issues, "population size should be at least 10 for meaningful results")
	}
	if config.Generations <= 0 {
		issues = append(issues, "number of generations must be positive")
	}
	if config.CrossoverProbability < 0 || config.CrossoverProbability > 1 {
		issues = append(issues, "crossover probability must be between 0.0 and 1.0")
	}
	if config.MutationProbability < 0 || config.MutationProbability > 1 {
		issues = append(issues, "mutation probability must be between 0.0 and 1.0")
	}
	return issues
}

// Optimize solves a packing problem. Validation failures surface before any
// search starts; the solver itself degrades gracefully on pathological
// genomes and never aborts mid-run. The progress callback, when non-nil, is
// invoked synchronously after each generation.
func (s *Service) Optimize(ctx context.Context, problem model.PackingProblem, config Config, progress ProgressFunc) (model.OptimizationResult, error) {
	if err := problem.Validate(); err != nil {
		return model.OptimizationResult{}, err
	}
	if issues := ValidateConfig(config); len(issues) > 0 {
		return model.OptimizationResult{}, fmt.Errorf("%w: %s", model.ErrInvalidParameters, strings.Join(issues, "; "))
	}

	dims := problem.DimensionCount()
	if dims < 1 || dims > 3 {
		return model.OptimizationResult{}, fmt.Errorf("%w: %dD", model.ErrUnsupportedDimensionality, dims)
	}

	s.log.Info().
		Int("dimensions", dims).
		Int("packages", len(problem.Packages)).
		Int("containers", len(problem.Containers)).
		Int("population", config.PopulationSize).
		Int("generations", config.Generations).
		Msg("starting optimization")

	result, err := newSolver(problem, config, s.log, progress).Run(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("optimization failed")
		return model.OptimizationResult{}, err
	}

	result.RunID = uuid.New().String()
	result.Timestamp = time.Now()

	s.log.Info().
		Str("run_id", result.RunID).
		Float64("efficiency", result.TotalEfficiency).
		Int("containers_used", result.ContainersUsed()).
		Dur("elapsed", result.OptimizationTime).
		Msg("optimization completed")
	return result, nil
}

// AlgorithmInfo describes the configured search algorithm for display
// surfaces.
type AlgorithmInfo struct {
	Name       string   `json:"name"`
	Selection  string   `json:"selection"`
	Crossover  string   `json:"crossover"`
	Mutation   string   `json:"mutation"`
	Features   []string `json:"features"`
	Parameters Config   `json:"parameters"`
}

// DescribeAlgorithm returns a static description of the search algorithm
// under the given parameters.
func DescribeAlgorithm(config Config) AlgorithmInfo {
	return AlgorithmInfo{
		Name:      "genetic algorithm",
		Selection: fmt.Sprintf("tournament (size %d)", tournamentSize),
		Crossover: "uniform gene-wise exchange",
		Mutation:  "single-gene resample",
		Features: []string{
			"multi-container placement",
			"optional container activation",
			"rotation-aware decoding",
			"deterministic under a fixed seed",
		},
		Parameters: config,
	}
}

// EstimateDuration gives a rough wall-time estimate for a run, based on
// problem size. Useful for front-ends sizing progress indicators; never less
// than one second.
func EstimateDuration(problem model.PackingProblem, config Config) time.Duration {
	complexity := float64(len(problem.Packages)*len(problem.Containers)*problem.DimensionCount()) / 100.0
	seconds := 0.1 * complexity * float64(config.Generations) * float64(config.PopulationSize) / 1000.0
	if seconds < 1 {
		seconds = 1
	}
	return time.Duration(seconds * float64(time.Second))
}
