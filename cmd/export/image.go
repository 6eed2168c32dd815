// Package export writes panels to image files with gonum/plot and to an
// interactive HTML page with go-echarts.
package export

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sumwatshade/valvegear/cmd/curve"
	"github.com/sumwatshade/valvegear/cmd/inspector"
)

var (
	black      = color.RGBA{A: 0xff}
	cursorGrey = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// SaveImage renders s with its inspector lines and labels to path. The image
// format follows the file extension (png, svg, pdf, ...).
func SaveImage(s *inspector.Surface, path string, width, height vg.Length) error {
	p, err := newPlot(s)
	if err != nil {
		return err
	}
	if s.EqualAspect {
		side := vg.Length(math.Min(float64(width), float64(height)))
		width, height = side, side
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func newPlot(s *inspector.Surface) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel
	p.Add(plotter.NewGrid())

	for _, c := range s.Curves() {
		if len(c.Points) == 0 {
			continue
		}
		line, err := plotter.NewLine(c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Name, err)
		}
		line.Color = lineColor(c.Style)
		line.Width = vg.Points(math.Max(1, c.Style.Width))
		if c.Style.Dashed {
			line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}
		p.Add(line)
		p.Legend.Add(c.Name, line)
	}

	v := view(s)
	p.X.Min, p.X.Max = v.MinX, v.MaxX
	p.Y.Min, p.Y.Max = v.MinY, v.MaxY

	for _, l := range s.Lines() {
		pts := plotter.XYs{{X: l.Value, Y: v.MinY}, {X: l.Value, Y: v.MaxY}}
		if l.Orientation == inspector.Horizontal {
			pts = plotter.XYs{{X: v.MinX, Y: l.Value}, {X: v.MaxX, Y: l.Value}}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = cursorGrey
		line.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(line)
	}

	if labels := s.Labels(); len(labels) > 0 {
		xys := make(plotter.XYs, len(labels))
		texts := make([]string, len(labels))
		for i, l := range labels {
			xys[i] = plotter.XY{X: l.X, Y: l.Y}
			texts[i] = l.Text
		}
		lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return nil, err
		}
		p.Add(lbl)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// view returns the data range to draw, squared up around its centre when the
// surface asks for equal axis scales.
func view(s *inspector.Surface) curve.Bounds {
	v := s.View()
	if !s.EqualAspect {
		return v
	}
	half := math.Max(v.MaxX-v.MinX, v.MaxY-v.MinY) / 2
	cx, cy := (v.MinX+v.MaxX)/2, (v.MinY+v.MaxY)/2
	return curve.Bounds{MinX: cx - half, MaxX: cx + half, MinY: cy - half, MaxY: cy + half}
}

// lineColor swaps white, which the terminal view draws on a dark
// background, for black on the white image background.
func lineColor(st curve.Style) color.Color {
	if st.Color == curve.White {
		return black
	}
	return st.Color
}
