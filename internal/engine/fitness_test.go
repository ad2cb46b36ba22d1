package engine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

func newTestEvaluator(problem model.PackingProblem) (*Evaluator, *GeneLayout) {
	layout := NewGeneLayout(problem)
	return NewEvaluator(problem, layout, zerolog.Nop()), layout
}

func TestDecode_SingleContainer(t *testing.T) {
	problem := pack1DProblem()
	eval, _ := newTestEvaluator(problem)

	// Usage 1, quantity 2: both units fit.
	result, err := eval.Decode(Genome{Genes: []int{1, 2}})
	require.NoError(t, err)

	require.Len(t, result.ContainerSolutions, 1)
	sol := result.ContainerSolutions[0]
	assert.Equal(t, "c1", sol.Container.ID)
	assert.Len(t, sol.PlacedPackages, 2)
	assert.InDelta(t, 0.8, sol.UtilizationRate, 1e-9)
	assert.InDelta(t, 0.8, result.TotalEfficiency, 1e-9)
	assert.Equal(t, 1, result.UnplacedPackages["a"])
	assert.Empty(t, result.UnusedContainers)
}

func TestDecode_UnusedOptionalContainer(t *testing.T) {
	problem := model.PackingProblem{
		Packages: []model.Package{model.NewPackage("a", []int{4}, 1, 3)},
		Containers: []model.Container{
			model.NewContainer("c1", []int{10}, false),
			model.NewContainer("c2", []int{20}, true),
		},
	}
	eval, layout := newTestEvaluator(problem)

	genome := Genome{Genes: make([]int, layout.GeneCount())}
	genome.Genes[layout.UsageIndex(0)] = 1
	genome.Genes[layout.QuantityIndex(0, 0)] = 1
	genome.Genes[layout.UsageIndex(1)] = 0
	genome.Genes[layout.QuantityIndex(1, 0)] = 2

	result, err := eval.Decode(genome)
	require.NoError(t, err)
	require.Len(t, result.ContainerSolutions, 1)
	require.Len(t, result.UnusedContainers, 1)
	assert.Equal(t, "c2", result.UnusedContainers[0].ID)
}

func TestDecode_UsedButEmptyContainerCountsUnused(t *testing.T) {
	// A container whose usage bit is set but where nothing fits is reported
	// under unused containers, not as an empty solution.
	problem := model.PackingProblem{
		Packages:   []model.Package{model.NewPackage("wide", []int{9, 9}, 1, 2)},
		Containers: []model.Container{model.NewContainer("tiny", []int{3, 3}, true)},
	}
	eval, _ := newTestEvaluator(problem)

	result, err := eval.Decode(Genome{Genes: []int{1, 2}})
	require.NoError(t, err)
	assert.Empty(t, result.ContainerSolutions)
	require.Len(t, result.UnusedContainers, 1)
	assert.Equal(t, "tiny", result.UnusedContainers[0].ID)
	assert.Equal(t, 2, result.UnplacedPackages["wide"])
	assert.Zero(t, result.TotalEfficiency)
}

func TestDecode_GenomeLengthMismatchPanics(t *testing.T) {
	eval, _ := newTestEvaluator(pack1DProblem())
	assert.Panics(t, func() {
		_, _ = eval.Decode(Genome{Genes: []int{1}})
	})
}

func TestDecode_OutOfRangeQuantityErrors(t *testing.T) {
	eval, _ := newTestEvaluator(pack1DProblem())
	_, err := eval.Decode(Genome{Genes: []int{1, 99}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity gene")
}

func TestEvaluate_FitnessAndPenalty(t *testing.T) {
	problem := model.PackingProblem{
		Packages: []model.Package{model.NewPackage("a", []int{4}, 1, 3)},
		Containers: []model.Container{
			model.NewContainer("c1", []int{10}, false),
			model.NewContainer("c2", []int{20}, true),
		},
	}
	eval, layout := newTestEvaluator(problem)

	genome := Genome{Genes: make([]int, layout.GeneCount())}
	genome.Genes[layout.UsageIndex(0)] = 1
	genome.Genes[layout.QuantityIndex(0, 0)] = 2
	genome.Genes[layout.UsageIndex(1)] = 0
	genome.Genes[layout.QuantityIndex(1, 0)] = 1

	// Efficiency 0.8 with 1 of 2 containers used: penalty 1 - 0.5*0.1.
	fitness := eval.Evaluate(&genome)
	assert.InDelta(t, 0.8*0.95, fitness, 1e-9)

	cached, ok := genome.Fitness()
	assert.True(t, ok)
	assert.Equal(t, fitness, cached)
}

func TestEvaluate_DecodeFailureScoresZero(t *testing.T) {
	eval, _ := newTestEvaluator(pack1DProblem())
	genome := Genome{Genes: []int{1, 99}}
	assert.Zero(t, eval.Evaluate(&genome))

	// The failure is cached, not re-raised.
	fitness, ok := genome.Fitness()
	assert.True(t, ok)
	assert.Zero(t, fitness)
}
