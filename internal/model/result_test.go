package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleResult() OptimizationResult {
	c1 := NewContainer("c1", []int{10}, false)
	c2 := NewContainer("c2", []int{20}, true)
	return OptimizationResult{
		ContainerSolutions: []ContainerSolution{
			{
				Container: c1,
				PlacedPackages: []PlacedPackage{
					{Name: "a", Position: []int{0}, Dimensions: []int{4}},
					{Name: "a", Position: []int{4}, Dimensions: []int{4}},
				},
				UtilizationRate: 0.8,
			},
		},
		TotalEfficiency:  0.8,
		UnusedContainers: []Container{c2},
		UnplacedPackages: map[string]int{"a": 1},
	}
}

func TestOptimizationResult_Totals(t *testing.T) {
	r := sampleResult()
	assert.Equal(t, 1, r.ContainersUsed())
	assert.Equal(t, 2, r.TotalPackagesPlaced())
	assert.Equal(t, 8, r.TotalExtentUsed())
	assert.Equal(t, 10, r.TotalExtentAvailable())
	assert.Equal(t, 1, r.TotalUnplaced())
	assert.InDelta(t, 0.8, r.AverageUtilization(), 1e-9)
	assert.True(t, r.Feasible())
}

func TestOptimizationResult_EmptyIsInfeasible(t *testing.T) {
	var r OptimizationResult
	assert.False(t, r.Feasible())
	assert.Zero(t, r.AverageUtilization())
}

func TestPlacedPackage_Extent(t *testing.T) {
	p := PlacedPackage{Name: "a", Position: []int{0, 0, 0}, Dimensions: []int{2, 3, 4}}
	assert.Equal(t, 24, p.Extent())
}

func TestContainerSolution_TotalWeight(t *testing.T) {
	pkg := NewPackage("a", []int{4}, 0, 3)
	pkg.Weight = 2.5
	problem := PackingProblem{
		Packages:   []Package{pkg},
		Containers: []Container{NewContainer("c1", []int{10}, false)},
	}
	sol := ContainerSolution{
		Container: problem.Containers[0],
		PlacedPackages: []PlacedPackage{
			{Name: "a", Position: []int{0}, Dimensions: []int{4}},
			{Name: "a_r90", Position: []int{4}, Dimensions: []int{4}, Rotation: "a_r90"},
		},
	}
	assert.InDelta(t, 5.0, sol.TotalWeight(problem), 1e-9)
}

func TestBasePackageName(t *testing.T) {
	assert.Equal(t, "box", BasePackageName("box"))
	assert.Equal(t, "box", BasePackageName("box_r90"))
	assert.Equal(t, "crate", BasePackageName("crate_rxz"))
	assert.Equal(t, "_r90", BasePackageName("_r90"))
}

func TestProgress_Percentage(t *testing.T) {
	p := OptimizationProgress{CurrentGeneration: 25, TotalGenerations: 50}
	assert.InDelta(t, 50.0, p.Percentage(), 1e-9)
	assert.Zero(t, OptimizationProgress{}.Percentage())
}
