package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubic(x float64) float64 { return x*x*x - 2*x*x + 0.5*x - 3 }

func TestSmoothShape(t *testing.T) {
	t.Parallel()

	xs := []float64{0, 10, 20, 30, 40, 50, 60}
	ys := []float64{1, 3, 2, 5, 4, 6, 1}

	pts, err := Smooth(xs, ys)
	require.NoError(t, err)
	require.Len(t, pts, SmoothSamples)
	assert.Equal(t, 0.0, pts[0].X)
	assert.Equal(t, 60.0, pts[len(pts)-1].X)
	for i := 1; i < len(pts); i++ {
		assert.InDelta(t, 60.0/float64(SmoothSamples-1), pts[i].X-pts[i-1].X, 1e-9)
	}
	// the spline passes through the end samples
	assert.InDelta(t, 1.0, pts[0].Y, 1e-9)
	assert.InDelta(t, 1.0, pts[len(pts)-1].Y, 1e-9)
}

func TestSplineInterpolatesSamples(t *testing.T) {
	t.Parallel()

	xs := []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 40 * math.Sin(x*math.Pi/180*4)
	}

	s, err := NewSpline(xs, ys)
	require.NoError(t, err)
	for i, x := range xs {
		assert.InDelta(t, ys[i], s.Predict(x), 1e-9, "sample %d", i)
	}
}

func TestSplineReproducesCubics(t *testing.T) {
	t.Parallel()

	xs := []float64{-2, -1.5, 0, 0.25, 1, 2.5, 3}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = cubic(x)
	}

	pts, err := Smooth(xs, ys)
	require.NoError(t, err)
	for _, p := range pts {
		assert.InDelta(t, cubic(p.X), p.Y, 1e-8)
	}
}

func TestSplineMinimumPoints(t *testing.T) {
	t.Parallel()

	xs := []float64{0, 1, 2, 3}
	ys := []float64{cubic(0), cubic(1), cubic(2), cubic(3)}
	s, err := NewSpline(xs, ys)
	require.NoError(t, err)
	assert.InDelta(t, cubic(1.5), s.Predict(1.5), 1e-9)
}

func TestSmoothErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		xs   []float64
		ys   []float64
		want error
	}{
		{"three points", []float64{0, 1, 2}, []float64{0, 1, 0}, ErrInsufficientPoints},
		{"no points", nil, nil, ErrInsufficientPoints},
		{"repeated x", []float64{0, 1, 1, 2, 3}, []float64{0, 1, 2, 3, 4}, ErrNonMonotonic},
		{"descending x", []float64{4, 3, 2, 1}, []float64{0, 1, 2, 3}, ErrNonMonotonic},
		{"length mismatch", []float64{0, 1, 2, 3}, []float64{0, 1, 2}, ErrLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Smooth(tt.xs, tt.ys)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
