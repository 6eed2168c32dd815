package plotview

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/sumwatshade/valvegear/cmd/inspector"
	"github.com/sumwatshade/valvegear/cmd/panel"
)

var (
	plotTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	focusTitleStyle  = plotTitleStyle.Underline(true)
	plotInfoStyle    = lipgloss.NewStyle().Faint(true)
	plotErrStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cursorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	idleCursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelMarkerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
)

// View renders every file's panels, files side by side.
func View(p *Plots) string {
	b := &strings.Builder{}
	if p == nil || (len(p.Files) == 0 && p.err == nil) {
		b.WriteString(plotTitleStyle.Render("Plots"))
		b.WriteString("\n")
		if p != nil && p.loading {
			b.WriteString(plotInfoStyle.Render("Loading..."))
		} else {
			b.WriteString(plotInfoStyle.Render("No file loaded. Pick one in the results tab or run `valvegear view <file>`."))
		}
		return b.String()
	}
	if p.err != nil {
		b.WriteString(plotErrStyle.Render("load error: " + p.err.Error()))
		b.WriteString("\n")
	}

	w, h := p.chartSize()
	idx := 0
	columns := make([]string, 0, len(p.Files))
	for _, f := range p.Files {
		var rendered []string
		for _, pn := range f.Panels {
			rendered = append(rendered, p.renderPanel(idx, pn, w, h))
			idx++
		}
		columns = append(columns, lipgloss.NewStyle().Width(w+2).Render(lipgloss.JoinVertical(lipgloss.Left, rendered...)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	return b.String()
}

func (p *Plots) renderPanel(idx int, pn *panel.Panel, w, h int) string {
	focused := idx == p.focus
	lc, g := newChart(pn.Surface, w, h)
	drawChart(lc, pn.Surface)
	for i, in := range pn.Inspectors {
		style := idleCursorStyle
		if focused && i == p.selected {
			style = cursorStyle
		}
		drawCursor(lc, g, in, style)
	}
	for _, l := range pn.Labels() {
		setCell(lc, canvas.Point{X: g.col(l.X), Y: g.row(l.Y)}, '●', labelMarkerStyle)
	}

	b := &strings.Builder{}
	title := pn.Surface.Title
	if focused {
		b.WriteString(focusTitleStyle.Render("▶ " + title))
	} else {
		b.WriteString(plotTitleStyle.Render("  " + title))
	}
	b.WriteString("\n")
	chart := lc.View()
	if p.zones != nil {
		chart = p.zones.Mark(zoneID(idx), chart)
	}
	b.WriteString(chart)
	b.WriteString("\n")
	b.WriteString(legend(pn))
	b.WriteString("\n")
	b.WriteString(labelLines(pn, focused, p.selected))
	return b.String()
}

// drawChart pushes every curve as its own data set and draws them.
func drawChart(lc *timeserieslinechart.Model, s *inspector.Surface) {
	for _, c := range s.Curves() {
		for _, pt := range c.Points {
			lc.PushDataSet(c.Name, timeserieslinechart.TimePoint{Time: xTime(pt.X), Value: pt.Y})
		}
		lc.SetDataSetStyle(c.Name, curveStyle(c.Style))
	}
	lc.DrawBrailleAll()
}

// drawCursor overlays an inspector line on the drawn chart.
func drawCursor(lc *timeserieslinechart.Model, g geometry, in *inspector.Inspector, style lipgloss.Style) {
	if in.Orientation() == inspector.Horizontal {
		row := g.row(in.Position())
		for x := g.left; x < g.left+g.cols; x++ {
			setCell(lc, canvas.Point{X: x, Y: row}, '─', style)
		}
		return
	}
	col := g.col(in.Position())
	for y := 0; y < g.rows; y++ {
		setCell(lc, canvas.Point{X: col, Y: y}, '│', style)
	}
}

func setCell(lc *timeserieslinechart.Model, p canvas.Point, r rune, style lipgloss.Style) {
	if p.X < 0 || p.X >= lc.Canvas.Width() || p.Y < 0 || p.Y >= lc.Canvas.Height() {
		return
	}
	lc.Canvas.SetCell(p, canvas.NewCellWithStyle(r, style))
}

func legend(pn *panel.Panel) string {
	var parts []string
	for _, c := range pn.Surface.Curves() {
		mark := "─"
		if c.Style.Dashed {
			mark = "┄"
		}
		parts = append(parts, curveStyle(c.Style).Render(mark)+" "+plotInfoStyle.Render(c.Name))
	}
	return strings.Join(parts, "  ")
}

// labelLines lists the labels of each inspector, one line per inspector.
func labelLines(pn *panel.Panel, focused bool, selected int) string {
	lines := make([]string, 0, len(pn.Inspectors))
	for i, in := range pn.Inspectors {
		head := fmt.Sprintf("%s %s @ %.2f", marker(focused && i == selected), in.Orientation(), in.Position())
		var texts []string
		for _, l := range in.Labels() {
			texts = append(texts, l.Curve+" "+l.Text)
		}
		if len(texts) == 0 {
			texts = append(texts, plotInfoStyle.Render("no sample within reach"))
		}
		lines = append(lines, head+": "+strings.Join(texts, " | "))
	}
	return strings.Join(lines, "\n")
}

func marker(selected bool) string {
	if selected {
		return cursorStyle.Render("▶")
	}
	return " "
}
