package model

import "errors"

// Sentinel errors surfaced before any search starts. Callers test them with
// errors.Is after unwrapping the descriptive message.
var (
	// ErrInvalidProblem marks structural violations in the problem definition.
	ErrInvalidProblem = errors.New("invalid packing problem")

	// ErrInvalidParameters marks out-of-range genetic algorithm configuration.
	ErrInvalidParameters = errors.New("invalid optimization parameters")

	// ErrUnsupportedDimensionality marks a problem dimensionality outside {1,2,3}.
	ErrUnsupportedDimensionality = errors.New("unsupported problem dimensionality")
)
