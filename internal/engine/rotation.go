// Package engine implements the search core: the genome layout, the generic
// placement procedure, the fitness evaluator, the genetic algorithm loop,
// and the dispatch service tying them together.
package engine

import (
	"github.com/danuaemx/bin-packing-optimizer/internal/model"
)

// Orientation is one legal axis arrangement of a package. Label is the
// package name, suffixed for non-original orientations ("_r90" in 2D;
// "_rxy", "_rxz", "_ryz" in 3D).
type Orientation struct {
	Label      string
	Dimensions []int
}

// Rotated reports whether this is a non-original orientation.
func (o Orientation) Rotated(pkg model.Package) bool {
	return o.Label != pkg.Name
}

// OrientationsFor enumerates the legal orientations of the package at the
// given index, the original orientation always first. The order is
// significant: the placement engine tries orientations in exactly this
// order when fitting a unit.
func OrientationsFor(problem model.PackingProblem, packageIndex int) []Orientation {
	pkg := problem.Packages[packageIndex]
	orientations := []Orientation{{Label: pkg.Name, Dimensions: pkg.Dimensions}}

	if problem.AllowedRotations == nil || packageIndex >= len(problem.AllowedRotations) {
		return orientations
	}
	permissions := problem.AllowedRotations[packageIndex]
	dims := pkg.Dimensions

	switch len(dims) {
	case 2:
		if len(permissions) >= 1 && permissions[0] && dims[0] != dims[1] {
			orientations = append(orientations, Orientation{
				Label:      pkg.Name + "_r90",
				Dimensions: []int{dims[1], dims[0]},
			})
		}
	case 3:
		if len(permissions) < 3 {
			return orientations
		}
		x, y, z := dims[0], dims[1], dims[2]
		if permissions[0] && x != y {
			orientations = append(orientations, Orientation{
				Label:      pkg.Name + "_rxy",
				Dimensions: []int{y, x, z},
			})
		}
		if permissions[1] && x != z {
			orientations = append(orientations, Orientation{
				Label:      pkg.Name + "_rxz",
				Dimensions: []int{z, y, x},
			})
		}
		if permissions[2] && y != z {
			orientations = append(orientations, Orientation{
				Label:      pkg.Name + "_ryz",
				Dimensions: []int{x, z, y},
			})
		}
	}

	return orientations
}

// allOrientations precomputes the orientation list for every package once
// per problem; the placement engine indexes into it by package position.
func allOrientations(problem model.PackingProblem) [][]Orientation {
	orientations := make([][]Orientation, len(problem.Packages))
	for i := range problem.Packages {
		orientations[i] = OrientationsFor(problem, i)
	}
	return orientations
}
