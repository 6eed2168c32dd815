package curve

import "errors"

var (
	// ErrDegenerateRange is returned when min-max scaling has a zero span.
	ErrDegenerateRange = errors.New("degenerate range")
	// ErrInsufficientPoints is returned when a spline has too few knots.
	ErrInsufficientPoints = errors.New("insufficient points")
	// ErrNonMonotonic is returned when x values do not strictly increase.
	ErrNonMonotonic = errors.New("x values not strictly increasing")
	// ErrLengthMismatch is returned when x and y series differ in length.
	ErrLengthMismatch = errors.New("length mismatch")
)
