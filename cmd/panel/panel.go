// Package panel arranges the curves of one measurement file into the charts
// the viewer and the exporters show, each with its inspector lines attached.
package panel

import (
	"github.com/sumwatshade/valvegear/cmd/curve"
	"github.com/sumwatshade/valvegear/cmd/inspector"
)

// Panel is one chart and the inspectors attached to it.
type Panel struct {
	Name       string
	Surface    *inspector.Surface
	Inspectors []*inspector.Inspector
}

// Cursor places an inspector when a panel is built.
type Cursor struct {
	Orientation inspector.Orientation
	Position    float64
}

// Settings tunes how panels are built.
type Settings struct {
	TolerancePx float64
	// Width and Height are the initial drawing area in pixels or cells.
	Width  int
	Height int
}

// Build returns the displacement, valve opening and (when present) path
// panels for fig. title is usually the file name.
func Build(fig curve.Figures, title string, set Settings) []*Panel {
	panels := []*Panel{
		newPanel("displacement", title, "Crank Degrees", "Displacement From Mid Position", fig.Displacement, set,
			Cursor{Orientation: inspector.Vertical, Position: 0},
			Cursor{Orientation: inspector.Vertical, Position: 180}),
		newPanel("opening", title+" - Valve Opening", "Crank Degrees", "Port Opening (mm)", fig.Opening, set,
			Cursor{Orientation: inspector.Vertical, Position: 90}),
	}
	if len(fig.Paths) > 0 {
		p := newPanel("path", "Eccentric Rod End - Path", "x (mm)", "z (mm)", fig.Paths, set,
			Cursor{Orientation: inspector.Vertical, Position: 0},
			Cursor{Orientation: inspector.Horizontal, Position: 0})
		p.Surface.EqualAspect = true
		// start the lines inside the path rather than at the origin
		v := p.Surface.View()
		p.Inspectors[0].SetPosition((v.MinX + v.MaxX) / 2)
		p.Inspectors[1].SetPosition((v.MinY + v.MaxY) / 2)
		panels = append(panels, p)
	}
	return panels
}

func newPanel(name, title, xLabel, yLabel string, curves []curve.Curve, set Settings, cursors ...Cursor) *Panel {
	s := inspector.NewSurface(set.Width, set.Height)
	s.Title = title
	s.XLabel = xLabel
	s.YLabel = yLabel
	s.SetCurves(curves)

	p := &Panel{Name: name, Surface: s}
	for _, c := range cursors {
		in := inspector.New(c.Orientation, set.TolerancePx)
		in.Attach(s)
		in.SetPosition(c.Position)
		p.Inspectors = append(p.Inspectors, in)
	}
	return p
}

// Resize changes the drawing area and recomputes every inspector's labels
// for the new pixel size.
func (p *Panel) Resize(width, height int) {
	p.Surface.Resize(width, height)
	p.Refresh()
}

// Refresh recomputes inspector labels at their current positions.
func (p *Panel) Refresh() {
	for _, in := range p.Inspectors {
		in.SetPosition(in.Position())
	}
}

// Move sets the position of the i-th inspector. Out of range indexes are
// ignored.
func (p *Panel) Move(i int, v float64) {
	if i < 0 || i >= len(p.Inspectors) {
		return
	}
	p.Inspectors[i].SetPosition(v)
}

// Labels returns the labels of every inspector on the panel.
func (p *Panel) Labels() []inspector.Label {
	return p.Surface.Labels()
}
