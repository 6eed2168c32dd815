package sweep

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sumwatshade/valvegear/cmd/measure"
)

// Defaults of the original control panel.
const (
	DefaultStep      = 10.0
	DefaultCutoffFwd = 60.0
	DefaultCutoffMid = 80.0
	DefaultCutoffRev = 100.0
	JogStep          = 10.0
)

// ErrNoSession is returned when a runner has nothing to drive.
var ErrNoSession = errors.New("no CAD session")

// Cutoffs are the cutoff control angles of the forward, mid and reverse
// passes, in degrees.
type Cutoffs struct {
	Fwd float64
	Mid float64
	Rev float64
}

// DefaultCutoffs returns 60/80/100.
func DefaultCutoffs() Cutoffs {
	return Cutoffs{Fwd: DefaultCutoffFwd, Mid: DefaultCutoffMid, Rev: DefaultCutoffRev}
}

// Runner sweeps a session through a full revolution: one pass reading the
// piston, then one pass per cutoff reading the valve and the lever end.
type Runner struct {
	Session CadSession
	Cutoffs Cutoffs
	// Step is the crank increment in degrees. The sweep always includes
	// both 0 and 360.
	Step float64

	angle  float64
	cutoff float64 // zero until the runner sets one
}

// Reading is what the assembly measures at the runner's current position.
type Reading struct {
	Angle  float64
	Cutoff float64
	Piston float64
	Valve  float64
	Lever  measure.Pair
}

// NewRunner returns a runner with the default step and cutoffs.
func NewRunner(s CadSession) *Runner {
	return &Runner{Session: s, Cutoffs: DefaultCutoffs(), Step: DefaultStep}
}

// Angles returns the crank angles of one pass.
func (r *Runner) Angles() []float64 {
	step := r.Step
	if step <= 0 {
		step = DefaultStep
	}
	n := int(360/step + 0.5)
	out := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		a := float64(i) * step
		if a > 360 {
			a = 360
		}
		out = append(out, a)
	}
	if out[len(out)-1] != 360 {
		out = append(out, 360)
	}
	return out
}

// Angle returns the last angle the runner set.
func (r *Runner) Angle() float64 { return r.angle }

// SetAngle turns the crank to deg and solves the assembly.
func (r *Runner) SetAngle(deg float64) error {
	if r.Session == nil {
		return ErrNoSession
	}
	if err := r.Session.SetActuatorAngle(deg); err != nil {
		return fmt.Errorf("set angle %g: %w", deg, err)
	}
	if err := r.Session.Recompute(); err != nil {
		return fmt.Errorf("recompute at %g: %w", deg, err)
	}
	r.angle = deg
	return nil
}

// Jog moves the crank by delta degrees from the current angle.
func (r *Runner) Jog(delta float64) error {
	return r.SetAngle(r.angle + delta)
}

// Cutoff returns the last cutoff the runner set, or zero if it never set one.
func (r *Runner) Cutoff() float64 { return r.cutoff }

// SetCutoff moves the cutoff control to deg and solves the assembly at the
// current angle.
func (r *Runner) SetCutoff(deg float64) error {
	if r.Session == nil {
		return ErrNoSession
	}
	if err := r.Session.SetCutoff(deg); err != nil {
		return fmt.Errorf("set cutoff %g: %w", deg, err)
	}
	if err := r.Session.Recompute(); err != nil {
		return fmt.Errorf("recompute at cutoff %g: %w", deg, err)
	}
	r.cutoff = deg
	return nil
}

// Read returns the piston, valve and lever end positions of the last solve.
func (r *Runner) Read() (Reading, error) {
	if r.Session == nil {
		return Reading{}, ErrNoSession
	}
	rd := Reading{Angle: r.angle, Cutoff: r.cutoff}
	var err error
	if rd.Piston, err = r.Session.ReadMeasurement(MeasurePiston); err != nil {
		return Reading{}, err
	}
	if rd.Valve, err = r.Session.ReadMeasurement(MeasureValve); err != nil {
		return Reading{}, err
	}
	if rd.Lever, err = r.Session.ReadPoint(PointLeverEnd); err != nil {
		return Reading{}, err
	}
	return rd, nil
}

// Run performs the sweep. The context is checked before every angle; a
// cancelled sweep returns no samples.
func (r *Runner) Run(ctx context.Context) ([]measure.Sample, error) {
	if r.Session == nil {
		return nil, ErrNoSession
	}
	angles := r.Angles()
	samples := make([]measure.Sample, len(angles))
	for i, a := range angles {
		samples[i].Angle = a
	}

	log.Info().Int("angles", len(angles)).Msg("piston pass")
	err := r.pass(ctx, angles, func(i int) error {
		v, err := r.Session.ReadMeasurement(MeasurePiston)
		samples[i].Piston = v
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("piston pass: %w", err)
	}

	passes := []struct {
		name   string
		cutoff float64
		store  func(s *measure.Sample, valve float64, end measure.Pair)
	}{
		{"fwd", r.Cutoffs.Fwd, func(s *measure.Sample, v float64, p measure.Pair) { s.CutoffFwd, s.PathFwd = v, p }},
		{"mid", r.Cutoffs.Mid, func(s *measure.Sample, v float64, p measure.Pair) { s.CutoffMid, s.PathMid = v, p }},
		{"rev", r.Cutoffs.Rev, func(s *measure.Sample, v float64, p measure.Pair) { s.CutoffRev, s.PathRev = v, p }},
	}
	for _, p := range passes {
		if err := r.Session.SetCutoff(p.cutoff); err != nil {
			return nil, fmt.Errorf("%s cutoff %g: %w", p.name, p.cutoff, err)
		}
		r.cutoff = p.cutoff
		log.Info().Str("pass", p.name).Float64("cutoff", p.cutoff).Msg("cutoff pass")
		store := p.store
		err := r.pass(ctx, angles, func(i int) error {
			v, err := r.Session.ReadMeasurement(MeasureValve)
			if err != nil {
				return err
			}
			end, err := r.Session.ReadPoint(PointLeverEnd)
			if err != nil {
				return err
			}
			store(&samples[i], v, end)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%s pass: %w", p.name, err)
		}
	}
	return samples, nil
}

func (r *Runner) pass(ctx context.Context, angles []float64, read func(i int) error) error {
	for i, a := range angles {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.SetAngle(a); err != nil {
			return err
		}
		if err := read(i); err != nil {
			return fmt.Errorf("at %g deg: %w", a, err)
		}
	}
	return nil
}

// WriteFile stores samples as a sweep file named name (".csv" added when
// missing) under dir and returns its path. The file is written to a
// temporary name first and renamed into place.
func WriteFile(dir, name string, samples []measure.Sample) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("empty output name")
	}
	if filepath.Ext(name) != ".csv" {
		name += ".csv"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := measure.Encode(&buf, samples, measure.DefaultLayout); err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(name))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}
	log.Info().Str("file", path).Int("samples", len(samples)).Msg("sweep written")
	return path, nil
}
