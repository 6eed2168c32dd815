// Package sweep drives a CAD assembly through a full crank revolution for
// each cutoff setting and records the measurements as a sweep file.
package sweep

import "github.com/sumwatshade/valvegear/cmd/measure"

// Measurement names read from the CAD document.
const (
	MeasurePiston = "Constraint019"
	MeasureValve  = "Constraint020"
	// PointLeverEnd is the rocking-lever end position, read as a pair.
	PointLeverEnd = "RockingLeverEnd"
)

// CadSession is the part of the CAD host the sweep needs.
type CadSession interface {
	// SetActuatorAngle turns the driving crank to deg degrees.
	SetActuatorAngle(deg float64) error
	// SetCutoff sets the cutoff control angle in degrees.
	SetCutoff(deg float64) error
	// Recompute solves the assembly for the current inputs.
	Recompute() error
	// ReadMeasurement returns a distance measurement in mm.
	ReadMeasurement(name string) (float64, error)
	// ReadPoint returns a 2-D cross-section position in mm.
	ReadPoint(name string) (measure.Pair, error)
}
