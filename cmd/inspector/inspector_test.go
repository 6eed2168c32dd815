package inspector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumwatshade/valvegear/cmd/curve"
)

// newTestSurface draws x and y in [0, 100] onto 100x100 pixels, so one
// pixel is one data unit on both axes.
func newTestSurface(curves ...curve.Curve) *Surface {
	s := NewSurface(100, 100)
	s.SetView(curve.Bounds{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100})
	for _, c := range curves {
		s.AddCurve(c)
	}
	return s
}

var triangle = curve.Curve{Name: "valve", Points: []curve.Point{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 20, Y: 9}}}

func TestVerticalInspectorSnaps(t *testing.T) {
	t.Parallel()

	s := newTestSurface(triangle)
	in := New(Vertical, 0.5)
	in.Attach(s)

	in.SetPosition(10.4)
	labels := in.Labels()
	require.Len(t, labels, 1)
	assert.Equal(t, Label{Curve: "valve", X: 10, Y: 5, Text: "x=10, y=5"}, labels[0])
	assert.Equal(t, labels, s.Labels())

	in.SetPosition(50)
	assert.Empty(t, in.Labels())
	assert.Empty(t, s.Labels())
}

func TestHorizontalInspectorSnapsOnY(t *testing.T) {
	t.Parallel()

	s := newTestSurface(triangle)
	in := New(Horizontal, 0.5)
	in.Attach(s)

	in.SetPosition(8.7)
	require.Len(t, in.Labels(), 1)
	assert.Equal(t, 20.0, in.Labels()[0].X)
	assert.Equal(t, 9.0, in.Labels()[0].Y)

	in.SetPosition(10.4)
	assert.Empty(t, in.Labels())
	assert.Equal(t, []Line{{Orientation: Horizontal, Value: 10.4}}, s.Lines())
}

func TestInspectorLabelsEveryCurveWithinTolerance(t *testing.T) {
	t.Parallel()

	other := curve.Curve{Name: "piston", Points: []curve.Point{{X: 9.8, Y: -1.234}, {X: 30, Y: 2}}}
	far := curve.Curve{Name: "far", Points: []curve.Point{{X: 60, Y: 1}}}
	s := newTestSurface(triangle, other, far)

	in := New(Vertical, 1)
	in.Attach(s)
	in.SetPosition(10)

	labels := in.Labels()
	require.Len(t, labels, 2)
	assert.Equal(t, "valve", labels[0].Curve)
	assert.Equal(t, "piston", labels[1].Curve)
	assert.Equal(t, "x=9.8, y=-1.23", labels[1].Text)
}

func TestInspectorRecomputesLabels(t *testing.T) {
	t.Parallel()

	s := newTestSurface(triangle)
	in := New(Vertical, 0.5)
	in.Attach(s)

	for i := 0; i < 5; i++ {
		in.SetPosition(20)
	}
	assert.Len(t, s.Labels(), 1, "labels are replaced, not accumulated")
	assert.Len(t, s.Lines(), 1)
}

func TestInspectorNoCurves(t *testing.T) {
	t.Parallel()

	s := newTestSurface()
	in := New(Vertical, 0.5)
	in.Attach(s)
	in.SetPosition(10)
	assert.Empty(t, in.Labels())
}

func TestInspectorDetach(t *testing.T) {
	t.Parallel()

	s := newTestSurface(triangle)
	in := New(Vertical, 0.5)
	in.Attach(s)
	in.SetPosition(10)
	require.Len(t, s.Items(), 2)

	in.Detach()
	assert.Empty(t, s.Items())
	assert.False(t, in.Attached())

	in.Detach()
	in.SetPosition(20)
	assert.Empty(t, s.Items())
	assert.Equal(t, 10.0, in.Position(), "position is unchanged while detached")

	in.Attach(s)
	assert.Len(t, s.Lines(), 1)
	assert.Len(t, s.Labels(), 1)
}

func TestInspectorReattachMovesCharts(t *testing.T) {
	t.Parallel()

	a := newTestSurface(triangle)
	b := newTestSurface(triangle)
	in := New(Vertical, 0.5)
	in.Attach(a)
	in.Attach(b)
	assert.Empty(t, a.Items())
	assert.Len(t, b.Lines(), 1)
}

func TestInspectorDrag(t *testing.T) {
	t.Parallel()

	s := newTestSurface(triangle)
	in := New(Vertical, 0.5)
	in.Attach(s)
	in.SetPosition(40)

	assert.False(t, in.Press(60), "press away from the line")
	assert.Equal(t, Idle, in.State())

	in.Move(10)
	assert.Equal(t, 40.0, in.Position(), "move without a drag is ignored")

	require.True(t, in.Press(41))
	assert.Equal(t, Dragging, in.State())
	in.Move(20.2)
	assert.Equal(t, 20.2, in.Position())
	require.Len(t, in.Labels(), 1)

	in.Release()
	assert.Equal(t, Idle, in.State())
	in.Move(0)
	assert.Equal(t, 20.2, in.Position())
}

func TestInspectorCancelRestoresPosition(t *testing.T) {
	t.Parallel()

	s := newTestSurface(triangle)
	in := New(Vertical, 0.5)
	in.Attach(s)
	in.SetPosition(20)

	require.True(t, in.Press(20))
	in.Move(70)
	in.Cancel()
	assert.Equal(t, Idle, in.State())
	assert.Equal(t, 20.0, in.Position())
	assert.Len(t, s.Labels(), 1)
}

func TestInspectorZeroSizedChart(t *testing.T) {
	t.Parallel()

	s := NewSurface(0, 0)
	s.AddCurve(triangle)
	in := New(Vertical, 0.5)
	in.Attach(s)
	in.SetPosition(10)
	assert.Empty(t, in.Labels())
}
