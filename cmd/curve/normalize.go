package curve

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Normalize linearly rescales values into [low, high] using min-max scaling,
// rounding each result to two decimals. The input is not modified.
func Normalize(values []float64, low, high float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no values", ErrDegenerateRange)
	}
	m, M := floats.Min(values), floats.Max(values)
	if M == m {
		return nil, fmt.Errorf("%w: all values equal %g", ErrDegenerateRange, m)
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = Round2(low + (v-m)/(M-m)*(high-low))
	}
	return out, nil
}
