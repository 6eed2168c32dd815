// Package inspector implements draggable reference lines that label the
// nearest plotted sample of every curve on a chart, together with the
// in-memory chart surface the terminal view and the exporters render from.
package inspector

import (
	"github.com/google/uuid"

	"github.com/sumwatshade/valvegear/cmd/curve"
)

// ItemID identifies an overlay item on a chart.
type ItemID string

// Item is an overlay drawn above the curves: a Line or a Label.
type Item interface {
	item()
}

// Line is an inspector line. Value is an x position for a vertical line and
// a y position for a horizontal one.
type Line struct {
	Orientation Orientation
	Value       float64
}

// Label marks a sample picked by an inspector.
type Label struct {
	Curve string
	X, Y  float64
	Text  string
}

func (Line) item()  {}
func (Label) item() {}

// Chart is what an inspector attaches to.
type Chart interface {
	Curves() []curve.Curve
	// PixelSize returns the data units covered by one on-screen pixel (or
	// terminal cell) along x and y.
	PixelSize() (dx, dy float64)
	AddItem(Item) ItemID
	RemoveItem(ItemID)
}

// Renderer accepts curves for display. Curves are replaced, never edited.
type Renderer interface {
	AddCurve(curve.Curve)
	Clear()
}

var (
	_ Chart    = (*Surface)(nil)
	_ Renderer = (*Surface)(nil)
)

// Surface is an in-memory chart: curves, overlay items, a data view and the
// pixel size of the area the view is drawn into.
type Surface struct {
	Title  string
	XLabel string
	YLabel string
	// EqualAspect asks renderers to use the same scale on both axes.
	EqualAspect bool

	curves   []curve.Curve
	items    map[ItemID]Item
	order    []ItemID
	view     curve.Bounds
	fixed    bool
	widthPx  int
	heightPx int
}

// NewSurface returns an empty surface drawn into width x height pixels.
func NewSurface(width, height int) *Surface {
	return &Surface{items: make(map[ItemID]Item), widthPx: width, heightPx: height}
}

// AddCurve appends c.
func (s *Surface) AddCurve(c curve.Curve) {
	s.curves = append(s.curves, c)
}

// Clear removes every curve. Overlay items stay; inspectors own them.
func (s *Surface) Clear() {
	s.curves = nil
}

// SetCurves replaces all curves.
func (s *Surface) SetCurves(curves []curve.Curve) {
	s.curves = append([]curve.Curve(nil), curves...)
}

// Curves returns the curves in insertion order.
func (s *Surface) Curves() []curve.Curve {
	return append([]curve.Curve(nil), s.curves...)
}

// SetView fixes the visible data range. A zero Bounds restores automatic
// fitting to the curves.
func (s *Surface) SetView(b curve.Bounds) {
	s.view = b
	s.fixed = b != (curve.Bounds{})
}

// View returns the visible data range: the fixed view if one was set,
// otherwise the extent of the curves.
func (s *Surface) View() curve.Bounds {
	if s.fixed {
		return s.view
	}
	b := curve.BoundsOf(s.curves)
	if b.Empty() {
		return curve.Bounds{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
	}
	if b.MaxX == b.MinX {
		b.MinX, b.MaxX = b.MinX-0.5, b.MaxX+0.5
	}
	if b.MaxY == b.MinY {
		b.MinY, b.MaxY = b.MinY-0.5, b.MaxY+0.5
	}
	return b
}

// Resize sets the pixel size of the drawing area.
func (s *Surface) Resize(width, height int) {
	s.widthPx, s.heightPx = width, height
}

// Size returns the pixel size of the drawing area.
func (s *Surface) Size() (width, height int) {
	return s.widthPx, s.heightPx
}

// PixelSize implements Chart. A surface with no drawing area has zero pixel
// size, so nothing is ever within tolerance of an inspector.
func (s *Surface) PixelSize() (dx, dy float64) {
	v := s.View()
	if s.widthPx > 0 {
		dx = (v.MaxX - v.MinX) / float64(s.widthPx)
	}
	if s.heightPx > 0 {
		dy = (v.MaxY - v.MinY) / float64(s.heightPx)
	}
	return dx, dy
}

// AddItem implements Chart.
func (s *Surface) AddItem(it Item) ItemID {
	if s.items == nil {
		s.items = make(map[ItemID]Item)
	}
	id := ItemID(uuid.NewString())
	s.items[id] = it
	s.order = append(s.order, id)
	return id
}

// RemoveItem implements Chart. Unknown IDs are ignored.
func (s *Surface) RemoveItem(id ItemID) {
	if _, ok := s.items[id]; !ok {
		return
	}
	delete(s.items, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Items returns the overlay items in the order they were added.
func (s *Surface) Items() []Item {
	out := make([]Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// Lines returns the inspector lines on the surface.
func (s *Surface) Lines() []Line {
	var out []Line
	for _, it := range s.Items() {
		if l, ok := it.(Line); ok {
			out = append(out, l)
		}
	}
	return out
}

// Labels returns the inspector labels on the surface.
func (s *Surface) Labels() []Label {
	var out []Label
	for _, it := range s.Items() {
		if l, ok := it.(Label); ok {
			out = append(out, l)
		}
	}
	return out
}
