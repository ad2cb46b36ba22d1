package engine

import (
	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// PlacementRequest asks the placer to fit a quantity of one package type.
type PlacementRequest struct {
	PackageIndex int
	Quantity     int
}

// Placer is the deterministic placement engine. A single procedure covers
// 1D, 2D, and 3D problems: 1D fills along a running cursor, 2D scans
// candidate positions bottom-left (x varying fastest, then y), and 3D scans
// bottom-left-back (x fastest, then y, then z). The first in-bounds,
// non-overlapping position wins.
type Placer struct {
	problem      model.PackingProblem
	orientations [][]Orientation
}

// NewPlacer precomputes the per-package orientation lists for a problem.
func NewPlacer(problem model.PackingProblem) *Placer {
	return &Placer{
		problem:      problem,
		orientations: allOrientations(problem),
	}
}

// Pack places the requested units into a single container, processing
// requests in order and orientations in generator order. When no position
// fits a unit in any orientation, the remaining units of that package type
// are abandoned for this container and the next request is processed.
// It returns the placements and the leftover count per request.
func (p *Placer) Pack(container model.Container, requests []PlacementRequest) ([]model.PlacedPackage, []int) {
	var placed []model.PlacedPackage
	leftover := make([]int, len(requests))

	// 1D placement never backtracks: the fill cursor persists across
	// package types within the container.
	cursor := 0

	for r, req := range requests {
		pkg := p.problem.Packages[req.PackageIndex]
		orientations := p.orientations[req.PackageIndex]

		for unit := 0; unit < req.Quantity; unit++ {
			ok := false
			for _, o := range orientations {
				var position []int
				if container.DimensionCount() == 1 {
					if cursor+o.Dimensions[0] > container.Dimensions[0] {
						continue
					}
					position = []int{cursor}
				} else {
					var found bool
					position, found = findPosition(placed, o.Dimensions, container.Dimensions)
					if !found {
						continue
					}
				}

				placement := model.PlacedPackage{
					Name:       o.Label,
					Position:   position,
					Dimensions: o.Dimensions,
				}
				if o.Rotated(pkg) {
					placement.Rotation = o.Label
				}
				placed = append(placed, placement)

				if container.DimensionCount() == 1 {
					cursor += o.Dimensions[0]
				}
				ok = true
				break
			}

			if !ok {
				leftover[r] = req.Quantity - unit
				break
			}
		}
	}

	return placed, leftover
}

// Utilization returns the used fraction of the container's extent for a set
// of placements, in [0, 1].
func Utilization(container model.Container, placed []model.PlacedPackage) float64 {
	if container.Extent() == 0 {
		return 0
	}
	used := 0
	for _, p := range placed {
		used += p.Extent()
	}
	return float64(used) / float64(container.Extent())
}

// findPosition scans candidate positions in the fixed deterministic order
// (last axis outermost, first axis innermost) and returns the first position
// where the box fits inside the container without overlapping any placed
// unit.
func findPosition(placed []model.PlacedPackage, dims, containerDims []int) ([]int, bool) {
	k := len(dims)
	limits := make([]int, k)
	for i := 0; i < k; i++ {
		limits[i] = containerDims[i] - dims[i]
		if limits[i] < 0 {
			return nil, false
		}
	}

	position := make([]int, k)
	for {
		if !overlapsAny(placed, position, dims) {
			result := make([]int, k)
			copy(result, position)
			return result, true
		}

		// Advance the first axis, carrying into the later ones. This walks
		// x fastest, then y, then z: the bottom-left(-back) scan order.
		axis := 0
		for axis < k {
			position[axis]++
			if position[axis] <= limits[axis] {
				break
			}
			position[axis] = 0
			axis++
		}
		if axis == k {
			return nil, false
		}
	}
}

// overlapsAny reports whether a box at the given position intersects any
// placed unit. Two boxes overlap iff their intervals intersect on every
// axis.
func overlapsAny(placed []model.PlacedPackage, position, dims []int) bool {
	for _, other := range placed {
		if boxesOverlap(position, dims, other.Position, other.Dimensions) {
			return true
		}
	}
	return false
}

func boxesOverlap(posA, dimsA, posB, dimsB []int) bool {
	for i := range posA {
		if posA[i]+dimsA[i] <= posB[i] || posB[i]+dimsB[i] <= posA[i] {
			return false
		}
	}
	return true
}
