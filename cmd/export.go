package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sumwatshade/valvegear/cmd/export"
	"github.com/sumwatshade/valvegear/cmd/inspector"
	"github.com/sumwatshade/valvegear/cmd/panel"
	"github.com/sumwatshade/valvegear/cmd/plotview"
)

var (
	exportFormat  string
	exportOut     string
	exportCursors []float64
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write a sweep's charts to image files or an HTML page",
	Long: `Builds the charts of a sweep file and writes them with their inspector
lines and labels. Image formats (png, svg, pdf) write one file per chart named
<out>-<chart>.<format>; html writes one interactive page.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := setupLogging(viper.GetViper(), false); err != nil {
			return err
		}
		v := viper.GetViper()
		f, err := plotview.NewService(curveOptions(v), panelSettings(v)).Load(args[0])
		if err != nil {
			return err
		}
		// --cursor moves the displacement chart's inspectors in order
		for i, pos := range exportCursors {
			f.Panels[0].Move(i, pos)
		}

		out := exportOut
		if out == "" {
			out = strings.TrimSuffix(args[0], filepath.Ext(args[0]))
		}
		paths, err := writeExport(f, out, strings.ToLower(exportFormat), v)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "png", "output format: png, svg, pdf or html")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path without extension (default: next to the input file)")
	exportCmd.Flags().Float64SliceVar(&exportCursors, "cursor", nil, "inspector positions on the displacement chart, in degrees")
	rootCmd.AddCommand(exportCmd)
}

func writeExport(f *plotview.File, out, format string, v *viper.Viper) ([]string, error) {
	switch format {
	case "html":
		path := out + ".html"
		if err := export.SaveHTML(path, f.Name, surfaces(f.Panels)...); err != nil {
			return nil, err
		}
		log.Info().Str("file", path).Msg("exported")
		return []string{path}, nil
	case "png", "svg", "pdf", "jpg", "jpeg", "tif", "tiff", "eps":
		w, h := exportSize(v)
		var paths []string
		for _, p := range f.Panels {
			path := fmt.Sprintf("%s-%s.%s", out, p.Name, format)
			if err := export.SaveImage(p.Surface, path, w, h); err != nil {
				return nil, err
			}
			log.Info().Str("file", path).Msg("exported")
			paths = append(paths, path)
		}
		return paths, nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

func surfaces(panels []*panel.Panel) []*inspector.Surface {
	out := make([]*inspector.Surface, len(panels))
	for i, p := range panels {
		out[i] = p.Surface
	}
	return out
}
