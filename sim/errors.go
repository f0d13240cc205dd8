package sim

import "errors"

// Domain errors for model construction and run configuration.
var (
	// ErrUnknownState indicates a state name or index that the model does not define.
	ErrUnknownState = errors.New("sim: unknown state")

	// ErrInvalidRunConfig indicates run parameters outside their valid range.
	ErrInvalidRunConfig = errors.New("sim: invalid run configuration")

	// ErrEmptyModel indicates a model without any discrete states.
	ErrEmptyModel = errors.New("sim: model has no states")
)
