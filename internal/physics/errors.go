package physics

import "errors"

// Domain errors for body construction and integration.
var (
	// ErrInvalidMass indicates a body with a non-positive mass.
	ErrInvalidMass = errors.New("physics: mass must be positive")

	// ErrDegenerate indicates coincident bodies or a non-finite state.
	ErrDegenerate = errors.New("physics: numerical degeneracy (coincident bodies or NaN/Inf state)")

	// ErrNoBodies indicates an empty body set where at least one is required.
	ErrNoBodies = errors.New("physics: no bodies")
)
