package curve

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// SmoothSamples is the number of points Smooth resamples a curve onto.
const SmoothSamples = 100

// minSplinePoints is the fewest points a not-a-knot cubic can pass through.
const minSplinePoints = 4

// NewSpline fits a cubic spline with not-a-knot end conditions through every
// (xs[i], ys[i]). xs must strictly increase and hold at least four points.
func NewSpline(xs, ys []float64) (*interp.NotAKnotCubic, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: %d x values, %d y values", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) < minSplinePoints {
		return nil, fmt.Errorf("%w: cubic spline needs %d points, got %d", ErrInsufficientPoints, minSplinePoints, len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return nil, fmt.Errorf("%w: x[%d]=%g after x[%d]=%g", ErrNonMonotonic, i, xs[i], i-1, xs[i-1])
		}
	}
	var s interp.NotAKnotCubic
	if err := s.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("fit spline: %w", err)
	}
	return &s, nil
}

// Smooth fits a cubic spline through (xs, ys) and resamples it on
// SmoothSamples uniformly spaced points spanning [min(xs), max(xs)].
// The result is for display only.
func Smooth(xs, ys []float64) ([]Point, error) {
	spline, err := NewSpline(xs, ys)
	if err != nil {
		return nil, err
	}
	lo, hi := floats.Min(xs), floats.Max(xs)
	grid := floats.Span(make([]float64, SmoothSamples), lo, hi)
	grid[len(grid)-1] = hi
	out := make([]Point, len(grid))
	for i, x := range grid {
		out[i] = Point{X: x, Y: spline.Predict(x)}
	}
	return out, nil
}
