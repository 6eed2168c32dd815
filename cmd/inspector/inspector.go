package inspector

import (
	"math"
	"strconv"

	"github.com/sumwatshade/valvegear/cmd/curve"
)

// Orientation selects the axis an inspector tracks.
type Orientation int

const (
	// Vertical lines sit at an x value and snap on x.
	Vertical Orientation = iota
	// Horizontal lines sit at a y value and snap on y.
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// State is the drag state of an inspector.
type State int

const (
	Idle State = iota
	Dragging
)

// DefaultTolerancePx is half the width of a 10 pixel sample symbol.
const DefaultTolerancePx = 5

// DefaultGrabPx is how close, in pixels, a press must land to pick up a line.
const DefaultGrabPx = 3

// Inspector is a draggable line that labels the nearest sample of every
// curve on its chart when that sample lies within TolerancePx of the line.
type Inspector struct {
	orientation Orientation
	// TolerancePx is the snap distance in pixels.
	TolerancePx float64
	// GrabPx is the pick-up distance for Press in pixels.
	GrabPx float64

	chart     Chart
	lineID    ItemID
	labelIDs  []ItemID
	labels    []Label
	pos       float64
	state     State
	dragStart float64
}

// New returns a detached inspector.
func New(o Orientation, tolerancePx float64) *Inspector {
	return &Inspector{orientation: o, TolerancePx: tolerancePx, GrabPx: DefaultGrabPx}
}

// Orientation returns the tracked axis.
func (in *Inspector) Orientation() Orientation { return in.orientation }

// Position returns the line position in data units.
func (in *Inspector) Position() float64 { return in.pos }

// State returns the drag state.
func (in *Inspector) State() State { return in.state }

// Attached reports whether the inspector is on a chart.
func (in *Inspector) Attached() bool { return in.chart != nil }

// Labels returns the labels currently shown.
func (in *Inspector) Labels() []Label {
	return append([]Label(nil), in.labels...)
}

// Attach places the inspector on c at its current position, detaching it
// from any previous chart first.
func (in *Inspector) Attach(c Chart) {
	if in.chart != nil {
		in.Detach()
	}
	in.chart = c
	in.lineID = c.AddItem(Line{Orientation: in.orientation, Value: in.pos})
	in.refresh()
}

// Detach removes the line and its labels from the chart. It is safe to call
// on a detached inspector.
func (in *Inspector) Detach() {
	if in.chart == nil {
		return
	}
	in.removeLabels()
	in.chart.RemoveItem(in.lineID)
	in.chart = nil
	in.lineID = ""
	in.state = Idle
}

// SetPosition moves the line to v and recomputes its labels. It does nothing
// while the inspector is detached.
func (in *Inspector) SetPosition(v float64) {
	if in.chart == nil {
		return
	}
	in.pos = v
	in.chart.RemoveItem(in.lineID)
	in.lineID = in.chart.AddItem(Line{Orientation: in.orientation, Value: v})
	in.refresh()
}

// Press starts a drag when v lies within GrabPx of the line. It reports
// whether the line was picked up.
func (in *Inspector) Press(v float64) bool {
	if in.chart == nil {
		return false
	}
	if math.Abs(v-in.pos) > in.GrabPx*in.pixel() {
		return false
	}
	in.state = Dragging
	in.dragStart = in.pos
	return true
}

// Move repositions the line while dragging.
func (in *Inspector) Move(v float64) {
	if in.state != Dragging {
		return
	}
	in.SetPosition(v)
}

// Release ends a drag, keeping the current position.
func (in *Inspector) Release() {
	in.state = Idle
}

// Cancel ends a drag and puts the line back where the drag started.
func (in *Inspector) Cancel() {
	if in.state != Dragging {
		return
	}
	in.state = Idle
	in.SetPosition(in.dragStart)
}

// pixel returns the data size of one pixel along the tracked axis.
func (in *Inspector) pixel() float64 {
	dx, dy := in.chart.PixelSize()
	if in.orientation == Horizontal {
		return dy
	}
	return dx
}

func (in *Inspector) axis(p curve.Point) float64 {
	if in.orientation == Horizontal {
		return p.Y
	}
	return p.X
}

// refresh replaces all labels with the nearest sample of every curve that
// lies within tolerance.
func (in *Inspector) refresh() {
	in.removeLabels()
	tol := in.TolerancePx * in.pixel()
	for _, c := range in.chart.Curves() {
		if len(c.Points) == 0 {
			continue
		}
		best, bestDiff := 0, math.Inf(1)
		for i, p := range c.Points {
			if d := math.Abs(in.axis(p) - in.pos); d < bestDiff {
				best, bestDiff = i, d
			}
		}
		if bestDiff < tol {
			in.addLabel(c.Name, c.Points[best])
		}
	}
}

func (in *Inspector) addLabel(name string, p curve.Point) {
	x, y := curve.Round2(p.X), curve.Round2(p.Y)
	l := Label{Curve: name, X: x, Y: y, Text: "x=" + formatCoord(x) + ", y=" + formatCoord(y)}
	in.labels = append(in.labels, l)
	in.labelIDs = append(in.labelIDs, in.chart.AddItem(l))
}

func (in *Inspector) removeLabels() {
	for _, id := range in.labelIDs {
		in.chart.RemoveItem(id)
	}
	in.labelIDs = nil
	in.labels = nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
