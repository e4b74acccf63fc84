package course

import "errors"

var (
	// ErrTooFewControlPoints is returned when a path is built from fewer than
	// two control points.
	ErrTooFewControlPoints = errors.New("at least 2 control points required")

	// ErrControlPointOrder is returned when control point x coordinates are
	// not strictly increasing.
	ErrControlPointOrder = errors.New("control point x coordinates must be strictly increasing")

	// ErrOutsideEnvelope signals a width query for a point that does not lie
	// between the path's start and end. It indicates a caller bug.
	ErrOutsideEnvelope = errors.New("point outside envelope range")

	// ErrPlacementExhausted is returned when a rejection-sampling loop hits
	// its retry cap. Build reacts by regenerating the whole hole.
	ErrPlacementExhausted = errors.New("placement retries exhausted")

	// ErrLayoutGeneration is returned when no valid hole could be generated
	// within the configured number of attempts.
	ErrLayoutGeneration = errors.New("hole layout generation failed")
)
