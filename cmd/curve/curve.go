// Package curve builds the displayable curves of a valve-gear run:
// normalised and spline-smoothed displacement curves, derived valve opening
// curves and raw rocking-lever paths.
package curve

import (
	"fmt"
	"image/color"
	"math"
)

// Point is one (x, y) vertex of a curve.
type Point struct {
	X float64
	Y float64
}

// Style is how a renderer should draw a curve.
type Style struct {
	Color  color.RGBA
	Width  float64
	Dashed bool
}

// Hex returns the colour as "#rrggbb".
func (s Style) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", s.Color.R, s.Color.G, s.Color.B)
}

// Palette used by the original analyser: piston white, forward red,
// mid blue, reverse green.
var (
	White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Red   = color.RGBA{R: 0xff, A: 0xff}
	Blue  = color.RGBA{B: 0xff, A: 0xff}
	Green = color.RGBA{G: 0xff, A: 0xff}
)

// Curve is a named polyline. Curves are treated as immutable; rebuild one
// instead of editing its points.
type Curve struct {
	Name   string
	Points []Point
	Style  Style
}

// New copies xs and ys into a curve.
func New(name string, xs, ys []float64, style Style) (Curve, error) {
	if len(xs) != len(ys) {
		return Curve{}, fmt.Errorf("%s: %w: %d x values, %d y values", name, ErrLengthMismatch, len(xs), len(ys))
	}
	pts := make([]Point, len(xs))
	for i := range xs {
		pts[i] = Point{X: xs[i], Y: ys[i]}
	}
	return Curve{Name: name, Points: pts, Style: style}, nil
}

// Len is the number of points.
func (c Curve) Len() int { return len(c.Points) }

// XY returns the i-th point, satisfying gonum's plotter.XYer.
func (c Curve) XY(i int) (float64, float64) {
	return c.Points[i].X, c.Points[i].Y
}

// Xs returns a copy of the x values.
func (c Curve) Xs() []float64 {
	out := make([]float64, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.X
	}
	return out
}

// Ys returns a copy of the y values.
func (c Curve) Ys() []float64 {
	out := make([]float64, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Y
	}
	return out
}

// Bounds is an axis-aligned data rectangle.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Empty reports whether b encloses no point.
func (b Bounds) Empty() bool { return b.MinX > b.MaxX || b.MinY > b.MaxY }

// Union grows b to enclose o.
func (b Bounds) Union(o Bounds) Bounds {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return Bounds{
		MinX: math.Min(b.MinX, o.MinX), MaxX: math.Max(b.MaxX, o.MaxX),
		MinY: math.Min(b.MinY, o.MinY), MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// EmptyBounds encloses nothing; use it as the seed for Union.
func EmptyBounds() Bounds {
	return Bounds{MinX: math.Inf(1), MaxX: math.Inf(-1), MinY: math.Inf(1), MaxY: math.Inf(-1)}
}

// Bounds returns the data extent of c.
func (c Curve) Bounds() Bounds {
	b := EmptyBounds()
	for _, p := range c.Points {
		b.MinX = math.Min(b.MinX, p.X)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// BoundsOf returns the union of the extents of curves.
func BoundsOf(curves []Curve) Bounds {
	b := EmptyBounds()
	for _, c := range curves {
		b = b.Union(c.Bounds())
	}
	return b
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
