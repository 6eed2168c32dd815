package plotview

import (
	"math"
	"strconv"
	"time"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sumwatshade/valvegear/cmd/curve"
	"github.com/sumwatshade/valvegear/cmd/inspector"
)

// xScale maps data x onto the chart's time axis in whole seconds, keeping
// three decimals of x.
const xScale = 1000

func xTime(x float64) time.Time {
	return time.Unix(int64(math.Round(x*xScale)), 0)
}

// geometry maps between data coordinates and canvas cells of one chart.
type geometry struct {
	view curve.Bounds
	// left is the canvas column of view.MinX; cols and rows are the size of
	// the plotting area, whose top row is canvas row 0.
	left int
	cols int
	rows int
}

func (g geometry) col(x float64) int {
	return g.left + int(math.Round(rel(x, g.view.MinX, g.view.MaxX)*float64(g.cols-1)))
}

func (g geometry) row(y float64) int {
	return int(math.Round((1 - rel(y, g.view.MinY, g.view.MaxY)) * float64(g.rows-1)))
}

func (g geometry) x(col int) float64 {
	if g.cols <= 1 {
		return g.view.MinX
	}
	return g.view.MinX + float64(col-g.left)/float64(g.cols-1)*(g.view.MaxX-g.view.MinX)
}

func (g geometry) y(row int) float64 {
	if g.rows <= 1 {
		return g.view.MaxY
	}
	return g.view.MaxY - float64(row)/float64(g.rows-1)*(g.view.MaxY-g.view.MinY)
}

// value converts a canvas cell into the data value tracked by orientation o.
func (g geometry) value(o inspector.Orientation, col, row int) float64 {
	if o == inspector.Horizontal {
		return g.y(row)
	}
	return g.x(col)
}

// step is the data size of one cell along the axis tracked by o.
func (g geometry) step(o inspector.Orientation) float64 {
	if o == inspector.Horizontal {
		if g.rows <= 1 {
			return 0
		}
		return (g.view.MaxY - g.view.MinY) / float64(g.rows-1)
	}
	if g.cols <= 1 {
		return 0
	}
	return (g.view.MaxX - g.view.MinX) / float64(g.cols-1)
}

// cells returns the number of cell steps across and down the plotting area.
// It is the pixel size handed to the surface, so one surface pixel is one
// step of the chart.
func (g geometry) cells() (across, down int) {
	return max(0, g.cols-1), max(0, g.rows-1)
}

func rel(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	r := (v - lo) / (hi - lo)
	return math.Max(0, math.Min(1, r))
}

// newChart sets up a chart of width x height cells over the surface's view.
// Curves are not drawn; see drawChart.
func newChart(s *inspector.Surface, width, height int) (*timeserieslinechart.Model, geometry) {
	v := s.View()
	lc := timeserieslinechart.New(width, height)
	lc.SetTimeRange(xTime(v.MinX), xTime(v.MaxX))
	lc.SetYRange(v.MinY, v.MaxY)
	lc.SetViewTimeAndYRange(xTime(v.MinX), xTime(v.MaxX), v.MinY, v.MaxY)
	lc.Model.XLabelFormatter = func(i int, t float64) string {
		return strconv.FormatFloat(t/xScale, 'f', 0, 64)
	}
	lc.Model.YLabelFormatter = func(i int, y float64) string {
		return strconv.FormatFloat(y, 'f', 1, 64)
	}
	// about six x labels across the graph
	lc.SetXStep(max(1, lc.GraphWidth()/6))

	left := lc.Model.Origin().X
	if lc.Model.YStep() > 0 {
		left++
	}
	return &lc, geometry{view: v, left: left, cols: lc.GraphWidth(), rows: lc.Model.Origin().Y}
}

func curveStyle(st curve.Style) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(st.Hex())).Faint(st.Dashed)
}
