package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

func pack1DProblem() model.PackingProblem {
	return model.PackingProblem{
		Packages:   []model.Package{model.NewPackage("a", []int{4}, 1, 3)},
		Containers: []model.Container{model.NewContainer("c1", []int{10}, false)},
	}
}

func TestPack_1DExactFit(t *testing.T) {
	problem := pack1DProblem()
	placer := NewPlacer(problem)

	// Three units requested, only two fit: 2x4 = 8 <= 10 < 3x4 = 12.
	placed, leftover := placer.Pack(problem.Containers[0], []PlacementRequest{{PackageIndex: 0, Quantity: 3}})

	require.Len(t, placed, 2)
	assert.Equal(t, []int{0}, placed[0].Position)
	assert.Equal(t, []int{4}, placed[1].Position)
	assert.Equal(t, []int{1}, leftover)
	assert.InDelta(t, 0.8, Utilization(problem.Containers[0], placed), 1e-9)
}

func TestPack_1DCursorPersistsAcrossTypes(t *testing.T) {
	problem := model.PackingProblem{
		Packages: []model.Package{
			model.NewPackage("a", []int{6}, 1, 1),
			model.NewPackage("b", []int{3}, 1, 2),
		},
		Containers: []model.Container{model.NewContainer("c1", []int{10}, false)},
	}
	placer := NewPlacer(problem)

	placed, leftover := placer.Pack(problem.Containers[0], []PlacementRequest{
		{PackageIndex: 0, Quantity: 1},
		{PackageIndex: 1, Quantity: 2},
	})

	// a at 0..6, first b at 6..9; second b does not fit past the cursor.
	require.Len(t, placed, 2)
	assert.Equal(t, []int{6}, placed[1].Position)
	assert.Equal(t, []int{0, 1}, leftover)
}

func TestPack_2DCapacityBound(t *testing.T) {
	problem := model.PackingProblem{
		Packages:   []model.Package{model.NewPackage("sq", []int{5, 5}, 0, 5)},
		Containers: []model.Container{model.NewContainer("c1", []int{10, 10}, false)},
	}
	placer := NewPlacer(problem)

	placed, leftover := placer.Pack(problem.Containers[0], []PlacementRequest{{PackageIndex: 0, Quantity: 5}})

	// Four 5x5 squares tile the 10x10 container exactly; the fifth is left over.
	require.Len(t, placed, 4)
	assert.Equal(t, []int{1}, leftover)
	assert.InDelta(t, 1.0, Utilization(problem.Containers[0], placed), 1e-9)

	// Bottom-left scan: x advances before y.
	assert.Equal(t, []int{0, 0}, placed[0].Position)
	assert.Equal(t, []int{5, 0}, placed[1].Position)
	assert.Equal(t, []int{0, 5}, placed[2].Position)
	assert.Equal(t, []int{5, 5}, placed[3].Position)
}

func TestPack_3DScanOrder(t *testing.T) {
	problem := model.PackingProblem{
		Packages:   []model.Package{model.NewPackage("cube", []int{2, 2, 2}, 0, 3)},
		Containers: []model.Container{model.NewContainer("c1", []int{4, 2, 4}, false)},
	}
	placer := NewPlacer(problem)

	placed, leftover := placer.Pack(problem.Containers[0], []PlacementRequest{{PackageIndex: 0, Quantity: 3}})

	require.Len(t, placed, 3)
	assert.Equal(t, []int{0}, leftover)
	// Bottom-left-back: x fills first, then z (y is exhausted at 2).
	assert.Equal(t, []int{0, 0, 0}, placed[0].Position)
	assert.Equal(t, []int{2, 0, 0}, placed[1].Position)
	assert.Equal(t, []int{0, 0, 2}, placed[2].Position)
}

func TestPack_RotationFallback2D(t *testing.T) {
	// A 2x6 bar cannot stand in a 6x3 container, but its 90-degree swap can lie.
	problem := model.PackingProblem{
		Packages:         []model.Package{model.NewPackage("bar", []int{2, 6}, 1, 1)},
		Containers:       []model.Container{model.NewContainer("c1", []int{6, 3}, false)},
		AllowedRotations: []model.RotationPermissions{{true}},
	}
	placer := NewPlacer(problem)

	placed, leftover := placer.Pack(problem.Containers[0], []PlacementRequest{{PackageIndex: 0, Quantity: 1}})

	require.Len(t, placed, 1)
	assert.Equal(t, []int{0}, leftover)
	assert.Equal(t, "bar_r90", placed[0].Name)
	assert.Equal(t, "bar_r90", placed[0].Rotation)
	assert.Equal(t, []int{6, 2}, placed[0].Dimensions)
}

func TestPack_FailFastAbandonsRemainingUnits(t *testing.T) {
	// Once one unit of a type fails, the rest of that type is abandoned for
	// this container even if later gaps could have held smaller counts.
	problem := model.PackingProblem{
		Packages: []model.Package{
			model.NewPackage("big", []int{7, 7}, 0, 3),
			model.NewPackage("small", []int{3, 3}, 0, 2),
		},
		Containers: []model.Container{model.NewContainer("c1", []int{10, 10}, false)},
	}
	placer := NewPlacer(problem)

	placed, leftover := placer.Pack(problem.Containers[0], []PlacementRequest{
		{PackageIndex: 0, Quantity: 3},
		{PackageIndex: 1, Quantity: 2},
	})

	// One big fits; the second fails and the third is not attempted. The
	// small type still gets its turn afterwards.
	bigCount := 0
	smallCount := 0
	for _, p := range placed {
		switch model.BasePackageName(p.Name) {
		case "big":
			bigCount++
		case "small":
			smallCount++
		}
	}
	assert.Equal(t, 1, bigCount)
	assert.Equal(t, 2, smallCount)
	assert.Equal(t, []int{2, 0}, leftover)
}

func TestPack_NoOverlapAndInBounds(t *testing.T) {
	problem := model.PackingProblem{
		Packages: []model.Package{
			model.NewPackage("a", []int{3, 2}, 0, 6),
			model.NewPackage("b", []int{2, 2}, 0, 6),
		},
		Containers:       []model.Container{model.NewContainer("c1", []int{7, 5}, false)},
		AllowedRotations: []model.RotationPermissions{{true}, {true}},
	}
	placer := NewPlacer(problem)
	container := problem.Containers[0]

	placed, _ := placer.Pack(container, []PlacementRequest{
		{PackageIndex: 0, Quantity: 6},
		{PackageIndex: 1, Quantity: 6},
	})
	require.NotEmpty(t, placed)

	for i, p := range placed {
		for axis := range p.Position {
			assert.GreaterOrEqual(t, p.Position[axis], 0)
			assert.LessOrEqual(t, p.Position[axis]+p.Dimensions[axis], container.Dimensions[axis],
				"placement %d out of bounds on axis %d", i, axis)
		}
		for j := i + 1; j < len(placed); j++ {
			assert.False(t, boxesOverlap(p.Position, p.Dimensions, placed[j].Position, placed[j].Dimensions),
				"placements %d and %d overlap", i, j)
		}
	}

	util := Utilization(container, placed)
	assert.GreaterOrEqual(t, util, 0.0)
	assert.LessOrEqual(t, util, 1.0)
}

func TestPack_DeterministicDecode(t *testing.T) {
	problem := model.PackingProblem{
		Packages: []model.Package{
			model.NewPackage("a", []int{3, 2}, 0, 4),
			model.NewPackage("b", []int{2, 3}, 0, 4),
		},
		Containers:       []model.Container{model.NewContainer("c1", []int{8, 6}, false)},
		AllowedRotations: []model.RotationPermissions{{true}, {true}},
	}
	placer := NewPlacer(problem)
	requests := []PlacementRequest{
		{PackageIndex: 0, Quantity: 4},
		{PackageIndex: 1, Quantity: 3},
	}

	first, firstLeft := placer.Pack(problem.Containers[0], requests)
	second, secondLeft := placer.Pack(problem.Containers[0], requests)
	assert.Equal(t, first, second)
	assert.Equal(t, firstLeft, secondLeft)
}

func TestBoxesOverlap(t *testing.T) {
	// Touching boxes do not overlap; intersecting ones do.
	assert.False(t, boxesOverlap([]int{0, 0}, []int{5, 5}, []int{5, 0}, []int{5, 5}))
	assert.True(t, boxesOverlap([]int{0, 0}, []int{5, 5}, []int{4, 4}, []int{5, 5}))
	assert.False(t, boxesOverlap([]int{0, 0, 0}, []int{2, 2, 2}, []int{0, 0, 2}, []int{2, 2, 2}))
}
