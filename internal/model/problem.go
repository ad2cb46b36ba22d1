// Package model defines the value types for multi-dimensional bin packing:
// packages, containers, the problem definition, and the solution objects
// produced by the optimizer.
package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PackageType categorizes a package. The optimizer does not act on it;
// callers may post-filter results using the tag.
type PackageType string

const (
	PackageRegular PackageType = "regular"
	PackageFragile PackageType = "fragile"
	PackageHeavy   PackageType = "heavy"
	PackageLiquid  PackageType = "liquid"
)

// ContainerType categorizes a container.
type ContainerType string

const (
	ContainerStandard     ContainerType = "standard"
	ContainerRefrigerated ContainerType = "refrigerated"
	ContainerSpecial      ContainerType = "special"
)

// Objective names the optimization goal recorded on a problem.
type Objective string

const (
	ObjectiveMinimizeContainers Objective = "minimize_containers"
	ObjectiveMaximizeEfficiency Objective = "maximize_efficiency"
)

// Package represents one package type to be packed. Dimensions is an ordered
// tuple of 1 to 3 positive integers; every package in a problem must have the
// same dimensionality.
type Package struct {
	Name        string      `json:"name"`
	Dimensions  []int       `json:"dimensions"`
	MinQuantity int         `json:"min_quantity"`
	MaxQuantity int         `json:"max_quantity"`
	Type        PackageType `json:"type,omitempty"`
	Weight      float64     `json:"weight,omitempty"`
	Value       float64     `json:"value,omitempty"`
}

// NewPackage builds a package with the regular type tag.
func NewPackage(name string, dims []int, minQty, maxQty int) Package {
	return Package{
		Name:        name,
		Dimensions:  dims,
		MinQuantity: minQty,
		MaxQuantity: maxQty,
		Type:        PackageRegular,
	}
}

// Extent returns the package's length, area, or volume depending on its
// dimensionality.
func (p Package) Extent() int {
	extent := 1
	for _, d := range p.Dimensions {
		extent *= d
	}
	return extent
}

// DimensionCount returns the number of dimensions.
func (p Package) DimensionCount() int {
	return len(p.Dimensions)
}

// Container represents a packing target. Optional containers may be left
// unused by the optimizer; mandatory containers are always opened.
type Container struct {
	ID         string        `json:"id"`
	Dimensions []int         `json:"dimensions"`
	IsOptional bool          `json:"is_optional"`
	Type       ContainerType `json:"type,omitempty"`
	MaxWeight  float64       `json:"max_weight,omitempty"`
	Cost       float64       `json:"cost,omitempty"`
}

// NewContainer builds a container. An empty id gets a short random one.
func NewContainer(id string, dims []int, optional bool) Container {
	if id == "" {
		id = uuid.New().String()[:8]
	}
	return Container{
		ID:         id,
		Dimensions: dims,
		IsOptional: optional,
		Type:       ContainerStandard,
	}
}

// Extent returns the container's length, area, or volume.
func (c Container) Extent() int {
	extent := 1
	for _, d := range c.Dimensions {
		extent *= d
	}
	return extent
}

// DimensionCount returns the number of dimensions.
func (c Container) DimensionCount() int {
	return len(c.Dimensions)
}

// RotationPermissions holds the per-package axis-swap flags. For 2D problems
// a single flag (width/height swap) is meaningful; for 3D the three flags
// enable the XY, XZ, and YZ swaps independently.
type RotationPermissions []bool

// PackingProblem is the immutable problem definition handed to the optimizer.
// AllowedRotations, when non-nil, must carry one entry per package.
type PackingProblem struct {
	Packages         []Package             `json:"packages"`
	Containers       []Container           `json:"containers"`
	AllowedRotations []RotationPermissions `json:"allowed_rotations,omitempty"`
	Objective        Objective             `json:"objective,omitempty"`
}

// NewPackingProblem builds and validates a problem definition. It fails with
// an error wrapping ErrInvalidProblem when any structural invariant is
// violated.
func NewPackingProblem(packages []Package, containers []Container, rotations []RotationPermissions, objective Objective) (PackingProblem, error) {
	if objective == "" {
		objective = ObjectiveMinimizeContainers
	}
	problem := PackingProblem{
		Packages:         packages,
		Containers:       containers,
		AllowedRotations: rotations,
		Objective:        objective,
	}
	if err := problem.Validate(); err != nil {
		return PackingProblem{}, err
	}
	return problem, nil
}

// DimensionCount returns the dimensionality shared by all packages and
// containers, or 0 for an empty problem.
func (p PackingProblem) DimensionCount() int {
	if len(p.Packages) == 0 {
		return 0
	}
	return len(p.Packages[0].Dimensions)
}

// Validate checks the problem's structural invariants and returns an error
// wrapping ErrInvalidProblem listing every violation found.
func (p PackingProblem) Validate() error {
	if issues := ValidatePackingProblem(p); len(issues) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProblem, strings.Join(issues, "; "))
	}
	return nil
}

// ValidatePackage returns the list of structural violations for a package.
func ValidatePackage(pkg Package) []string {
	var issues []string
	if strings.TrimSpace(pkg.Name) == "" {
		issues = append(issues, "package name cannot be empty")
	}
	if n := len(pkg.Dimensions); n < 1 || n > 3 {
		issues = append(issues, "package dimensions must be 1D, 2D, or 3D")
	}
	for _, d := range pkg.Dimensions {
		if d <= 0 {
			issues = append(issues, "all package dimensions must be positive")
			break
		}
	}
	if pkg.MinQuantity < 0 {
		issues = append(issues, "minimum quantity cannot be negative")
	}
	if pkg.MaxQuantity < pkg.MinQuantity {
		issues = append(issues, "maximum quantity cannot be less than minimum quantity")
	}
	if pkg.Weight < 0 {
		issues = append(issues, "package weight cannot be negative")
	}
	if pkg.Value < 0 {
		issues = append(issues, "package value cannot be negative")
	}
	return issues
}

// ValidateContainer returns the list of structural violations for a container.
func ValidateContainer(c Container) []string {
	var issues []string
	if strings.TrimSpace(c.ID) == "" {
		issues = append(issues, "container id cannot be empty")
	}
	if n := len(c.Dimensions); n < 1 || n > 3 {
		issues = append(issues, "container dimensions must be 1D, 2D, or 3D")
	}
	for _, d := range c.Dimensions {
		if d <= 0 {
			issues = append(issues, "all container dimensions must be positive")
			break
		}
	}
	if c.MaxWeight < 0 {
		issues = append(issues, "maximum weight cannot be negative")
	}
	if c.Cost < 0 {
		issues = append(issues, "container cost cannot be negative")
	}
	return issues
}

// ValidatePackingProblem returns every structural violation in the problem:
// per-package and per-container issues, dimensional consistency across the
// whole problem, and rotation-permission shape.
func ValidatePackingProblem(p PackingProblem) []string {
	var issues []string

	if len(p.Packages) == 0 {
		issues = append(issues, "at least one package must be provided")
	}
	for i, pkg := range p.Packages {
		for _, issue := range ValidatePackage(pkg) {
			issues = append(issues, fmt.Sprintf("package %d: %s", i+1, issue))
		}
	}

	if len(p.Containers) == 0 {
		issues = append(issues, "at least one container must be provided")
	}
	for i, c := range p.Containers {
		for _, issue := range ValidateContainer(c) {
			issues = append(issues, fmt.Sprintf("container %d: %s", i+1, issue))
		}
	}

	if len(p.Packages) > 0 && len(p.Containers) > 0 {
		packageDims := make(map[int]bool)
		for _, pkg := range p.Packages {
			packageDims[len(pkg.Dimensions)] = true
		}
		containerDims := make(map[int]bool)
		for _, c := range p.Containers {
			containerDims[len(c.Dimensions)] = true
		}
		if len(packageDims) > 1 {
			issues = append(issues, "all packages must have the same number of dimensions")
		}
		if len(containerDims) > 1 {
			issues = append(issues, "all containers must have the same number of dimensions")
		}
		if len(packageDims) == 1 && len(containerDims) == 1 &&
			!containerDims[len(p.Packages[0].Dimensions)] {
			issues = append(issues, "packages and containers must have the same number of dimensions")
		}
	}

	if p.AllowedRotations != nil && len(p.AllowedRotations) != len(p.Packages) {
		issues = append(issues, "rotation permissions must be provided for all packages")
	}

	return issues
}
