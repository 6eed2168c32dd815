package sweep

import (
	"fmt"
	"math"

	"github.com/sumwatshade/valvegear/cmd/measure"
)

var _ CadSession = (*SimSession)(nil)

// SimSession is a kinematic stand-in for the CAD assembly: a slider-crank
// for the piston and a radius-link valve drive whose travel and lead follow
// the cutoff angle. Lengths are in mm.
type SimSession struct {
	CrankRadius  float64
	ConRodLength float64
	PistonOffset float64
	ValveCentre  float64
	ValveTravel  float64
	Lead         float64
	LeverZ       float64
	LeverX       float64
	LeverSwing   float64
	MidCutoff    float64
	CutoffSpan   float64

	angle  float64
	cutoff float64
	solved bool

	piston float64
	valve  float64
	lever  measure.Pair
}

// NewSimSession returns a session with proportions close to the model
// engine, valve centred on measure.DefaultCentreReference.
func NewSimSession() *SimSession {
	return &SimSession{
		CrankRadius:  38,
		ConRodLength: 190,
		PistonOffset: 60,
		ValveCentre:  measure.DefaultCentreReference,
		ValveTravel:  4,
		Lead:         0.8,
		LeverZ:       95,
		LeverX:       -20,
		LeverSwing:   12,
		MidCutoff:    80,
		CutoffSpan:   20,
		cutoff:       80,
	}
}

func (s *SimSession) SetActuatorAngle(deg float64) error {
	s.angle = deg
	s.solved = false
	return nil
}

func (s *SimSession) SetCutoff(deg float64) error {
	if deg <= 0 || deg >= 180 {
		return fmt.Errorf("cutoff %g deg out of range (0, 180)", deg)
	}
	s.cutoff = deg
	s.solved = false
	return nil
}

// Recompute solves piston, valve and lever positions for the current angle
// and cutoff.
func (s *SimSession) Recompute() error {
	theta := s.angle * math.Pi / 180
	sin, cos := math.Sin(theta), math.Cos(theta)

	throw := s.CrankRadius * sin
	if throw > s.ConRodLength {
		return fmt.Errorf("connecting rod %g mm shorter than crank throw", s.ConRodLength)
	}
	s.piston = s.PistonOffset + s.CrankRadius*cos + math.Sqrt(s.ConRodLength*s.ConRodLength-throw*throw)

	// link position: -1 full forward, 0 mid gear, +1 full reverse
	link := (s.cutoff - s.MidCutoff) / s.CutoffSpan
	s.valve = s.ValveCentre + s.Lead*cos - s.ValveTravel*link*sin
	s.lever = measure.Pair{
		First:  s.LeverZ + s.LeverSwing*link*sin,
		Second: s.LeverX + s.LeverSwing*cos,
	}
	s.solved = true
	return nil
}

func (s *SimSession) ReadMeasurement(name string) (float64, error) {
	if !s.solved {
		return 0, fmt.Errorf("read %s: assembly not recomputed", name)
	}
	switch name {
	case MeasurePiston:
		return s.piston, nil
	case MeasureValve:
		return s.valve, nil
	}
	return 0, fmt.Errorf("unknown measurement %q", name)
}

func (s *SimSession) ReadPoint(name string) (measure.Pair, error) {
	if !s.solved {
		return measure.Pair{}, fmt.Errorf("read %s: assembly not recomputed", name)
	}
	if name != PointLeverEnd {
		return measure.Pair{}, fmt.Errorf("unknown point %q", name)
	}
	return s.lever, nil
}
