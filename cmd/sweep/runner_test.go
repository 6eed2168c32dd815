package sweep

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumwatshade/valvegear/cmd/measure"
)

// fakeSession reports the crank angle as the piston position and encodes
// the cutoff into the valve reading so passes can be told apart.
type fakeSession struct {
	angle, cutoff float64
	calls         []string
	failAt        float64
	failOn        string
}

func (f *fakeSession) SetActuatorAngle(deg float64) error {
	f.angle = deg
	f.calls = append(f.calls, fmt.Sprintf("angle %g", deg))
	return nil
}

func (f *fakeSession) SetCutoff(deg float64) error {
	f.cutoff = deg
	f.calls = append(f.calls, fmt.Sprintf("cutoff %g", deg))
	return nil
}

func (f *fakeSession) Recompute() error { return nil }

func (f *fakeSession) ReadMeasurement(name string) (float64, error) {
	if name == f.failOn && f.angle == f.failAt {
		return 0, errors.New("solver diverged")
	}
	if name == MeasurePiston {
		return 100 + f.angle, nil
	}
	return f.cutoff*1000 + f.angle, nil
}

func (f *fakeSession) ReadPoint(string) (measure.Pair, error) {
	return measure.Pair{First: f.cutoff, Second: f.angle}, nil
}

func TestRunnerAngles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		step  float64
		count int
		last  float64
	}{
		{10, 37, 360},
		{0, 37, 360},
		{90, 5, 360},
		{7, 53, 360},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.step), func(t *testing.T) {
			r := &Runner{Step: tt.step}
			got := r.Angles()
			assert.Len(t, got, tt.count)
			assert.Equal(t, 0.0, got[0])
			assert.Equal(t, tt.last, got[len(got)-1])
		})
	}
}

func TestRunnerRun(t *testing.T) {
	t.Parallel()

	fs := &fakeSession{failAt: -1}
	r := NewRunner(fs)
	samples, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, samples, 37)

	s := samples[9]
	assert.Equal(t, 90.0, s.Angle)
	assert.Equal(t, 190.0, s.Piston)
	assert.Equal(t, 60090.0, s.CutoffFwd)
	assert.Equal(t, 80090.0, s.CutoffMid)
	assert.Equal(t, 100090.0, s.CutoffRev)
	assert.Equal(t, measure.Pair{First: 80, Second: 90}, s.PathMid)

	// piston pass first, then the cutoffs in order
	assert.Equal(t, "angle 0", fs.calls[0])
	assert.Equal(t, "cutoff 60", fs.calls[37])
	assert.Equal(t, "cutoff 80", fs.calls[75])
	assert.Equal(t, "cutoff 100", fs.calls[113])
	assert.Equal(t, 360.0, r.Angle())
	assert.Equal(t, 100.0, r.Cutoff())
}

func TestRunnerRunErrors(t *testing.T) {
	t.Parallel()

	t.Run("read failure names pass and angle", func(t *testing.T) {
		r := NewRunner(&fakeSession{failOn: MeasureValve, failAt: 120})
		_, err := r.Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fwd pass")
		assert.Contains(t, err.Error(), "120 deg")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		samples, err := NewRunner(&fakeSession{failAt: -1}).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, samples)
	})

	t.Run("no session", func(t *testing.T) {
		_, err := (&Runner{}).Run(context.Background())
		assert.ErrorIs(t, err, ErrNoSession)
	})
}

func TestRunnerJog(t *testing.T) {
	t.Parallel()

	fs := &fakeSession{}
	r := NewRunner(fs)
	require.NoError(t, r.SetAngle(30))
	require.NoError(t, r.Jog(JogStep))
	require.NoError(t, r.Jog(-JogStep))
	require.NoError(t, r.Jog(-JogStep))
	assert.Equal(t, 20.0, r.Angle())
	assert.Equal(t, 20.0, fs.angle)
}

func TestRunnerSetCutoffAndRead(t *testing.T) {
	t.Parallel()

	fs := &fakeSession{failAt: -1}
	r := NewRunner(fs)
	assert.Zero(t, r.Cutoff())
	require.NoError(t, r.SetAngle(40))
	require.NoError(t, r.SetCutoff(70))

	rd, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, Reading{
		Angle:  40,
		Cutoff: 70,
		Piston: 140,
		Valve:  70040,
		Lever:  measure.Pair{First: 70, Second: 40},
	}, rd)

	fs.failOn, fs.failAt = MeasureValve, 40
	_, err = r.Read()
	assert.Error(t, err)

	_, err = (&Runner{}).Read()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.ErrorIs(t, (&Runner{}).SetCutoff(80), ErrNoSession)
}

func TestSimSweepRoundTrip(t *testing.T) {
	t.Parallel()

	samples, err := NewRunner(NewSimSession()).Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, measure.Validate(samples))

	dir := t.TempDir()
	path, err := WriteFile(dir, "sim", samples)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sim.csv"), path)

	back, err := measure.ReadFile(path, measure.DefaultLayout)
	require.NoError(t, err)
	require.Len(t, back, len(samples))
	for i := range samples {
		assert.InDelta(t, samples[i].Piston, back[i].Piston, 0.006)
		assert.InDelta(t, samples[i].CutoffRev, back[i].CutoffRev, 0.006)
		assert.InDelta(t, samples[i].PathFwd.Second, back[i].PathFwd.Second, 0.006)
	}
}

func TestWriteFileRequiresName(t *testing.T) {
	t.Parallel()

	_, err := WriteFile(t.TempDir(), "  ", nil)
	assert.Error(t, err)
}
