package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPackingProblem_Valid(t *testing.T) {
	problem, err := NewPackingProblem(
		[]Package{NewPackage("box", []int{2, 3}, 1, 5)},
		[]Container{NewContainer("c1", []int{10, 10}, false)},
		nil, "",
	)
	require.NoError(t, err)
	assert.Equal(t, 2, problem.DimensionCount())
	assert.Equal(t, ObjectiveMinimizeContainers, problem.Objective)
}

func TestNewPackingProblem_EmptyPackages(t *testing.T) {
	_, err := NewPackingProblem(nil,
		[]Container{NewContainer("c1", []int{10}, false)}, nil, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidProblem))
}

func TestNewPackingProblem_EmptyContainers(t *testing.T) {
	_, err := NewPackingProblem(
		[]Package{NewPackage("box", []int{2}, 0, 1)}, nil, nil, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidProblem))
}

func TestNewPackingProblem_MixedDimensionality(t *testing.T) {
	// 2D packages with a 3D container must be rejected before any search.
	_, err := NewPackingProblem(
		[]Package{NewPackage("flat", []int{2, 3}, 1, 2)},
		[]Container{NewContainer("cube", []int{10, 10, 10}, false)},
		nil, "",
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidProblem))
	assert.Contains(t, err.Error(), "same number of dimensions")
}

func TestNewPackingProblem_RotationLengthMismatch(t *testing.T) {
	_, err := NewPackingProblem(
		[]Package{
			NewPackage("a", []int{2, 3}, 1, 2),
			NewPackage("b", []int{1, 1}, 0, 4),
		},
		[]Container{NewContainer("c1", []int{10, 10}, false)},
		[]RotationPermissions{{true}},
		"",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rotation permissions")
}

func TestValidatePackage(t *testing.T) {
	cases := []struct {
		name string
		pkg  Package
		want string
	}{
		{"empty name", NewPackage("  ", []int{2}, 0, 1), "name cannot be empty"},
		{"zero dimension", NewPackage("p", []int{0}, 0, 1), "must be positive"},
		{"too many dims", NewPackage("p", []int{1, 2, 3, 4}, 0, 1), "1D, 2D, or 3D"},
		{"negative min", NewPackage("p", []int{2}, -1, 1), "cannot be negative"},
		{"max below min", NewPackage("p", []int{2}, 3, 1), "less than minimum"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			issues := ValidatePackage(tc.pkg)
			require.NotEmpty(t, issues)
			found := false
			for _, issue := range issues {
				if strings.Contains(issue, tc.want) {
					found = true
				}
			}
			assert.True(t, found, "expected an issue containing %q, got %v", tc.want, issues)
		})
	}
}

func TestValidateContainer_NegativeCost(t *testing.T) {
	c := NewContainer("c1", []int{5}, false)
	c.Cost = -1
	issues := ValidateContainer(c)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "cost")
}

func TestNewContainer_GeneratesID(t *testing.T) {
	c := NewContainer("", []int{5, 5}, true)
	assert.Len(t, c.ID, 8)
	assert.True(t, c.IsOptional)
}

func TestExtent(t *testing.T) {
	assert.Equal(t, 6, NewPackage("p", []int{6}, 0, 1).Extent())
	assert.Equal(t, 12, NewPackage("p", []int{3, 4}, 0, 1).Extent())
	assert.Equal(t, 24, NewContainer("c", []int{2, 3, 4}, false).Extent())
}
