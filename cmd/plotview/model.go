// Package plotview shows the panels of one or two sweep files as terminal
// charts and lets the user move their inspector lines with keys or the mouse.
package plotview

import (
	"fmt"

	zone "github.com/lrstanley/bubblezone"

	"github.com/sumwatshade/valvegear/cmd/panel"
)

// Plots holds the loaded files and the focus and drag state of the view.
type Plots struct {
	Files    []*File
	paths    []string
	service  Service
	zones    *zone.Manager
	focus    int // index into panels()
	selected int // inspector of the focused panel
	dragging bool
	loading  bool
	err      error
	width    int
	height   int
}

// NewPlots returns an empty view loading files through svc. zones must be
// the manager that scans the program's final view.
func NewPlots(svc Service, zones *zone.Manager) *Plots {
	return &Plots{service: svc, zones: zones}
}

// panels returns every panel of every file, file by file.
func (p *Plots) panels() []*panel.Panel {
	var out []*panel.Panel
	for _, f := range p.Files {
		out = append(out, f.Panels...)
	}
	return out
}

func (p *Plots) focused() *panel.Panel {
	ps := p.panels()
	if p.focus < 0 || p.focus >= len(ps) {
		return nil
	}
	return ps[p.focus]
}

// zoneID names the mouse zone of the i-th panel.
func zoneID(i int) string { return fmt.Sprintf("plot-%d", i) }

// chartSize returns the chart size for the current pane size. Files sit side
// by side and each file's panels are stacked.
func (p *Plots) chartSize() (width, height int) {
	files := max(1, len(p.Files))
	rows := 1
	for _, f := range p.Files {
		rows = max(rows, len(f.Panels))
	}
	width = max(30, p.width/files-2)
	// title, legend and label lines around every chart
	height = max(8, (p.height-2)/rows-5)
	return width, height
}

// SetSize resizes every chart to fit a width x height pane and recomputes the
// inspector labels for the new cell size.
func (p *Plots) SetSize(width, height int) {
	p.width, p.height = width, height
	p.resize()
}

func (p *Plots) resize() {
	w, h := p.chartSize()
	for _, pn := range p.panels() {
		_, g := newChart(pn.Surface, w, h)
		pn.Resize(g.cells())
	}
}

// Paths returns the files currently shown or loading.
func (p *Plots) Paths() []string {
	return append([]string(nil), p.paths...)
}

// Err returns the error of the last load, if it failed.
func (p *Plots) Err() error { return p.err }
