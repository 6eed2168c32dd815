package curve

import (
	"fmt"
	"math"

	"github.com/sumwatshade/valvegear/cmd/measure"
)

// Selector picks the plotted value of a sample.
type Selector func(measure.Sample) float64

// FieldSelector selects a scalar measurement column.
func FieldSelector(f measure.Field) Selector {
	return func(s measure.Sample) float64 { return s.Value(f) }
}

// Centred selects a column as displacement from reference.
func Centred(f measure.Field, reference float64) Selector {
	return func(s measure.Sample) float64 {
		return measure.CentrePosition(s.Value(f), reference)
	}
}

// Opening selects the port opening of a valve column: the centred
// displacement beyond the lap, never negative.
func Opening(f measure.Field, reference, lap float64) Selector {
	return func(s measure.Sample) float64 {
		return math.Max(0, math.Abs(measure.CentrePosition(s.Value(f), reference))-lap)
	}
}

// Build returns the raw polyline of sel against the angles of the same
// samples.
func Build(name string, samples []measure.Sample, sel Selector, style Style) Curve {
	pts := make([]Point, len(samples))
	for i, s := range samples {
		pts[i] = Point{X: s.Angle, Y: sel(s)}
	}
	return Curve{Name: name, Points: pts, Style: style}
}

// BuildSmoothed is Build followed by Smooth.
func BuildSmoothed(name string, samples []measure.Sample, sel Selector, style Style) (Curve, error) {
	raw := Build(name, samples, sel, style)
	return smoothCurve(raw)
}

func smoothCurve(c Curve) (Curve, error) {
	pts, err := Smooth(c.Xs(), c.Ys())
	if err != nil {
		return Curve{}, fmt.Errorf("%s: %w", c.Name, err)
	}
	return Curve{Name: c.Name, Points: pts, Style: c.Style}, nil
}

// Options tunes BuildFigures.
type Options struct {
	// PistonLow and PistonHigh bound the rescaled piston curve so it reads
	// at the same scale as the valve curves.
	PistonLow       float64
	PistonHigh      float64
	CentreReference float64
	Lap             float64
}

// DefaultOptions matches the analyser of the current model.
func DefaultOptions() Options {
	return Options{PistonLow: -3, PistonHigh: 3, CentreReference: measure.DefaultCentreReference}
}

// Figures is everything drawn for one measurement file.
type Figures struct {
	Displacement []Curve
	Opening      []Curve
	Paths        []Curve
}

type cutoff struct {
	label string
	field measure.Field
	color Style
}

var cutoffs = []cutoff{
	{"Fwd", measure.FieldCutoffFwd, Style{Color: Red, Width: 2}},
	{"Mid", measure.FieldCutoffMid, Style{Color: Blue, Width: 2}},
	{"Rev", measure.FieldCutoffRev, Style{Color: Green, Width: 2}},
}

// BuildFigures turns one file's samples into its displacement, opening and
// path curves. Every curve takes its angle axis from samples.
func BuildFigures(samples []measure.Sample, layout measure.Layout, opts Options) (Figures, error) {
	var fig Figures

	piston := Build("Piston Pos", samples, FieldSelector(measure.FieldPiston), Style{Color: White, Width: 2})
	scaled, err := Normalize(piston.Ys(), opts.PistonLow, opts.PistonHigh)
	if err != nil {
		return Figures{}, fmt.Errorf("%s: %w", piston.Name, err)
	}
	piston, err = New(piston.Name, piston.Xs(), scaled, piston.Style)
	if err != nil {
		return Figures{}, err
	}
	piston, err = smoothCurve(piston)
	if err != nil {
		return Figures{}, err
	}
	fig.Displacement = append(fig.Displacement, piston)

	for _, co := range cutoffs {
		if !layout.Has(co.field) {
			continue
		}
		c, err := BuildSmoothed("Valve Pos "+co.label, samples, Centred(co.field, opts.CentreReference), co.color)
		if err != nil {
			return Figures{}, err
		}
		fig.Displacement = append(fig.Displacement, c)

		style := co.color
		style.Dashed = true
		o, err := BuildSmoothed("Valve Opening "+co.label, samples, Opening(co.field, opts.CentreReference, opts.Lap), style)
		if err != nil {
			return Figures{}, err
		}
		fig.Opening = append(fig.Opening, o)
	}

	if layout.HasPaths() {
		fig.Paths = Paths(samples)
	}
	return fig, nil
}

// Paths returns the forward, mid and reverse rocking-lever end paths. The
// CAD tool's second axis becomes the plot x axis and its first axis the plot
// y axis. Points are not smoothed.
func Paths(samples []measure.Sample) []Curve {
	fields := []measure.Field{measure.FieldPathFwd, measure.FieldPathMid, measure.FieldPathRev}
	out := make([]Curve, len(fields))
	for i, f := range fields {
		pts := make([]Point, len(samples))
		for j, s := range samples {
			p := s.Point(f)
			pts[j] = Point{X: p.Second, Y: p.First}
		}
		out[i] = Curve{Name: cutoffs[i].label, Points: pts, Style: cutoffs[i].color}
	}
	return out
}
