package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/sumwatshade/valvegear/cmd/inspector"
)

// WriteHTML renders every surface as an interactive line chart on one page.
// The axis tooltip follows the pointer the way an inspector line does; the
// inspector lines and labels present on each surface are drawn as mark lines
// and mark points.
func WriteHTML(w io.Writer, title string, surfaces ...*inspector.Surface) error {
	page := components.NewPage()
	page.PageTitle = title
	for _, s := range surfaces {
		page.AddCharts(lineChart(s))
	}
	return page.Render(w)
}

// SaveHTML writes WriteHTML's output to path.
func SaveHTML(path, title string, surfaces ...*inspector.Surface) error {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, title, surfaces...); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func lineChart(s *inspector.Surface) *charts.Line {
	v := view(s)
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1000px", Height: "520px"}),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: s.XLabel, NameLocation: "middle", NameGap: 25, Min: v.MinX, Max: v.MaxX}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: s.YLabel, NameLocation: "middle", NameGap: 40, Min: v.MinY, Max: v.MaxY}),
	)

	labels := s.Labels()
	lines := s.Lines()
	for i, c := range s.Curves() {
		data := make([]opts.LineData, len(c.Points))
		for j, p := range c.Points {
			data[j] = opts.LineData{Value: []interface{}{p.X, p.Y}}
		}
		style := opts.LineStyle{Color: htmlColor(c.Style.Hex()), Width: float32(c.Style.Width)}
		if c.Style.Dashed {
			style.Type = "dashed"
		}
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(style),
		}
		if i == 0 {
			for _, l := range lines {
				if l.Orientation == inspector.Horizontal {
					seriesOpts = append(seriesOpts, charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{Name: "inspector", YAxis: l.Value}))
				} else {
					seriesOpts = append(seriesOpts, charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{Name: "inspector", XAxis: l.Value}))
				}
			}
		}
		for _, l := range labels {
			if l.Curve != c.Name {
				continue
			}
			seriesOpts = append(seriesOpts, charts.WithMarkPointNameCoordItemOpts(opts.MarkPointNameCoordItem{
				Name:       l.Text,
				Coordinate: []interface{}{l.X, l.Y},
				Value:      l.Text,
			}))
		}
		line.AddSeries(c.Name, data, seriesOpts...)
	}
	return line
}

// htmlColor keeps white curves visible on the default white page.
func htmlColor(hex string) string {
	if hex == "#ffffff" {
		return "#000000"
	}
	return hex
}
