// Package measure reads the per-angle measurements recorded by a valve-gear
// sweep: one CSV row per crank angle carrying piston and valve displacement
// plus the rocking-lever end position for each cutoff setting.
package measure

// Pair is a point in the CAD tool's 2-D cross-section coordinates. First is
// the tool's z axis and Second its x axis.
type Pair struct {
	First  float64
	Second float64
}

// Sample holds one parsed row. Distances are in millimetres, Angle in degrees.
type Sample struct {
	Angle     float64
	Piston    float64
	CutoffFwd float64
	CutoffMid float64
	CutoffRev float64
	PathFwd   Pair
	PathMid   Pair
	PathRev   Pair
}

// Field identifies one logical column of a measurement row.
type Field int

const (
	FieldAngle Field = iota
	FieldPiston
	FieldCutoffFwd
	FieldCutoffMid
	FieldCutoffRev
	FieldPathFwd
	FieldPathMid
	FieldPathRev
	numFields
)

var fieldNames = [numFields]string{
	"angle", "piston", "cutoff_fwd", "cutoff_mid", "cutoff_rev",
	"path_fwd", "path_mid", "path_rev",
}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return "unknown"
	}
	return fieldNames[f]
}

// IsPair reports whether the field holds a coordinate pair.
func (f Field) IsPair() bool {
	return f == FieldPathFwd || f == FieldPathMid || f == FieldPathRev
}

// Value returns a scalar field of s. Pair fields return 0.
func (s Sample) Value(f Field) float64 {
	switch f {
	case FieldAngle:
		return s.Angle
	case FieldPiston:
		return s.Piston
	case FieldCutoffFwd:
		return s.CutoffFwd
	case FieldCutoffMid:
		return s.CutoffMid
	case FieldCutoffRev:
		return s.CutoffRev
	}
	return 0
}

// Point returns a pair field of s. Scalar fields return the zero Pair.
func (s Sample) Point(f Field) Pair {
	switch f {
	case FieldPathFwd:
		return s.PathFwd
	case FieldPathMid:
		return s.PathMid
	case FieldPathRev:
		return s.PathRev
	}
	return Pair{}
}

func (s *Sample) set(f Field, v float64) {
	switch f {
	case FieldAngle:
		s.Angle = v
	case FieldPiston:
		s.Piston = v
	case FieldCutoffFwd:
		s.CutoffFwd = v
	case FieldCutoffMid:
		s.CutoffMid = v
	case FieldCutoffRev:
		s.CutoffRev = v
	}
}

func (s *Sample) setPoint(f Field, p Pair) {
	switch f {
	case FieldPathFwd:
		s.PathFwd = p
	case FieldPathMid:
		s.PathMid = p
	case FieldPathRev:
		s.PathRev = p
	}
}

// Layout maps every Field to a column index. A negative index marks a column
// the file does not carry.
type Layout [numFields]int

// DefaultLayout is the full eight-column sweep file.
var DefaultLayout = Layout{0, 1, 2, 3, 4, 5, 6, 7}

// DisplacementLayout is the older five-column file without path columns.
var DisplacementLayout = Layout{0, 1, 2, 3, 4, -1, -1, -1}

// Has reports whether the layout carries field f.
func (l Layout) Has(f Field) bool {
	return f >= 0 && f < numFields && l[f] >= 0
}

// HasPaths reports whether all three path columns are present.
func (l Layout) HasPaths() bool {
	return l.Has(FieldPathFwd) && l.Has(FieldPathMid) && l.Has(FieldPathRev)
}

// Width is the number of columns a row needs to satisfy the layout.
func (l Layout) Width() int {
	w := 0
	for _, col := range l {
		if col+1 > w {
			w = col + 1
		}
	}
	return w
}

// Angles returns the angle series of samples, in row order.
func Angles(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Angle
	}
	return out
}

// Values returns field f of every sample, in row order.
func Values(samples []Sample, f Field) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Value(f)
	}
	return out
}

// DefaultCentreReference is the valve mid position measured from the
// crankshaft centreline in the current model, in mm.
const DefaultCentreReference = 150.0

// CentrePosition converts an absolute CAD position into a displacement from
// the reference (mid) position.
func CentrePosition(v, reference float64) float64 {
	return v - reference
}
