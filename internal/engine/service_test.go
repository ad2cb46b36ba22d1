package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

func TestService_OptimizeEndToEnd(t *testing.T) {
	problem := model.PackingProblem{
		Packages:   []model.Package{model.NewPackage("a", []int{4}, 1, 3)},
		Containers: []model.Container{model.NewContainer("c1", []int{10}, false)},
	}
	svc := NewService(zerolog.Nop())

	result, err := svc.Optimize(context.Background(), problem, smallConfig(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.False(t, result.Timestamp.IsZero())
	assert.True(t, result.Feasible())
	assert.Equal(t, 5, result.GenerationsCompleted)
}

func TestService_MixedDimensionalityRejectedBeforeSearch(t *testing.T) {
	// 2D packages with 3D containers: rejected before any generation runs.
	problem := model.PackingProblem{
		Packages:   []model.Package{model.NewPackage("flat", []int{2, 3}, 1, 2)},
		Containers: []model.Container{model.NewContainer("cube", []int{9, 9, 9}, false)},
	}
	svc := NewService(zerolog.Nop())

	progressCalled := false
	_, err := svc.Optimize(context.Background(), problem, smallConfig(), func(model.OptimizationProgress) {
		progressCalled = true
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidProblem))
	assert.False(t, progressCalled)
}

func TestService_InvalidParameters(t *testing.T) {
	problem := model.PackingProblem{
		Packages:   []model.Package{model.NewPackage("a", []int{4}, 1, 3)},
		Containers: []model.Container{model.NewContainer("c1", []int{10}, false)},
	}
	svc := NewService(zerolog.Nop())

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"population too small", func(c *Config) { c.PopulationSize = 5 }},
		{"zero generations", func(c *Config) { c.Generations = 0 }},
		{"crossover above one", func(c *Config) { c.CrossoverProbability = 1.5 }},
		{"negative mutation", func(c *Config) { c.MutationProbability = -0.1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := smallConfig()
			tc.mutate(&cfg)
			_, err := svc.Optimize(context.Background(), problem, cfg, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidParameters))
		})
	}
}

func TestValidateConfig_Defaults(t *testing.T) {
	assert.Empty(t, ValidateConfig(DefaultConfig()))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1000, cfg.PopulationSize)
	assert.Equal(t, 50, cfg.Generations)
	assert.InDelta(t, 0.618, cfg.CrossoverProbability, 1e-9)
	assert.InDelta(t, 0.021, cfg.MutationProbability, 1e-9)
}

func TestDescribeAlgorithm(t *testing.T) {
	info := DescribeAlgorithm(DefaultConfig())
	assert.Equal(t, "genetic algorithm", info.Name)
	assert.Equal(t, "tournament (size 3)", info.Selection)
	assert.NotEmpty(t, info.Features)
	assert.Equal(t, DefaultConfig(), info.Parameters)
}

func TestEstimateDuration_Minimum(t *testing.T) {
	problem := model.PackingProblem{
		Packages:   []model.Package{model.NewPackage("a", []int{4}, 1, 3)},
		Containers: []model.Container{model.NewContainer("c1", []int{10}, false)},
	}
	estimate := EstimateDuration(problem, smallConfig())
	assert.GreaterOrEqual(t, estimate, time.Second)
}
