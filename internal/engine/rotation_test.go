package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

func TestOrientationsFor_NoPermissions(t *testing.T) {
	problem := model.PackingProblem{
		Packages:   []model.Package{model.NewPackage("box", []int{2, 5}, 1, 1)},
		Containers: []model.Container{model.NewContainer("c", []int{10, 10}, false)},
	}
	orientations := OrientationsFor(problem, 0)
	// Always at least the original orientation, and first.
	require.Len(t, orientations, 1)
	assert.Equal(t, "box", orientations[0].Label)
	assert.Equal(t, []int{2, 5}, orientations[0].Dimensions)
}

func TestOrientationsFor_2DSwap(t *testing.T) {
	problem := model.PackingProblem{
		Packages:         []model.Package{model.NewPackage("box", []int{2, 5}, 1, 1)},
		Containers:       []model.Container{model.NewContainer("c", []int{10, 10}, false)},
		AllowedRotations: []model.RotationPermissions{{true}},
	}
	orientations := OrientationsFor(problem, 0)
	require.Len(t, orientations, 2)
	assert.Equal(t, "box_r90", orientations[1].Label)
	assert.Equal(t, []int{5, 2}, orientations[1].Dimensions)
}

func TestOrientationsFor_2DSquareSkipsSwap(t *testing.T) {
	problem := model.PackingProblem{
		Packages:         []model.Package{model.NewPackage("sq", []int{4, 4}, 1, 1)},
		Containers:       []model.Container{model.NewContainer("c", []int{10, 10}, false)},
		AllowedRotations: []model.RotationPermissions{{true}},
	}
	assert.Len(t, OrientationsFor(problem, 0), 1)
}

func TestOrientationsFor_3DAllSwaps(t *testing.T) {
	problem := model.PackingProblem{
		Packages:         []model.Package{model.NewPackage("crate", []int{1, 2, 3}, 1, 1)},
		Containers:       []model.Container{model.NewContainer("c", []int{10, 10, 10}, false)},
		AllowedRotations: []model.RotationPermissions{{true, true, true}},
	}
	orientations := OrientationsFor(problem, 0)
	require.Len(t, orientations, 4)
	assert.Equal(t, []int{1, 2, 3}, orientations[0].Dimensions)
	assert.Equal(t, "crate_rxy", orientations[1].Label)
	assert.Equal(t, []int{2, 1, 3}, orientations[1].Dimensions)
	assert.Equal(t, "crate_rxz", orientations[2].Label)
	assert.Equal(t, []int{3, 2, 1}, orientations[2].Dimensions)
	assert.Equal(t, "crate_ryz", orientations[3].Label)
	assert.Equal(t, []int{1, 3, 2}, orientations[3].Dimensions)
}

func TestOrientationsFor_3DEqualAxesSkipped(t *testing.T) {
	// XY swap is a no-op when x == y, so only XZ and YZ add orientations.
	problem := model.PackingProblem{
		Packages:         []model.Package{model.NewPackage("slab", []int{2, 2, 5}, 1, 1)},
		Containers:       []model.Container{model.NewContainer("c", []int{10, 10, 10}, false)},
		AllowedRotations: []model.RotationPermissions{{true, true, true}},
	}
	orientations := OrientationsFor(problem, 0)
	require.Len(t, orientations, 3)
	assert.Equal(t, "slab_rxz", orientations[1].Label)
	assert.Equal(t, "slab_ryz", orientations[2].Label)
}

func TestOrientationsFor_PartialPermissions3D(t *testing.T) {
	// Fewer than three flags in 3D grants nothing beyond the original.
	problem := model.PackingProblem{
		Packages:         []model.Package{model.NewPackage("crate", []int{1, 2, 3}, 1, 1)},
		Containers:       []model.Container{model.NewContainer("c", []int{10, 10, 10}, false)},
		AllowedRotations: []model.RotationPermissions{{true}},
	}
	assert.Len(t, OrientationsFor(problem, 0), 1)
}
