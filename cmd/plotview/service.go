package plotview

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sumwatshade/valvegear/cmd/curve"
	"github.com/sumwatshade/valvegear/cmd/measure"
	"github.com/sumwatshade/valvegear/cmd/panel"
)

// TitlePrefix starts the title of every displacement chart.
const TitlePrefix = "Firth Valve Gear - "

// File is one loaded sweep file and the panels built from it.
type File struct {
	Path    string
	Name    string
	Layout  measure.Layout
	Samples []measure.Sample
	Figures curve.Figures
	Panels  []*panel.Panel
}

// Service loads sweep files into panels.
type Service interface {
	Load(path string) (*File, error)
}

var _ Service = (*fileService)(nil)

type fileService struct {
	opts curve.Options
	set  panel.Settings
}

// NewService returns a loader building curves with opts and panels with set.
func NewService(opts curve.Options, set panel.Settings) Service {
	return &fileService{opts: opts, set: set}
}

// Load reads path, detecting whether it carries the path columns, and
// builds its figures and panels.
func (s *fileService) Load(path string) (*File, error) {
	samples, layout, err := measure.ReadFileDetect(path)
	if err != nil {
		return nil, err
	}
	fig, err := curve.BuildFigures(samples, layout, s.opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	f := &File{
		Path:    path,
		Name:    name,
		Layout:  layout,
		Samples: samples,
		Figures: fig,
		Panels:  panel.Build(fig, TitlePrefix+name, s.set),
	}
	log.Info().Str("file", path).Int("panels", len(f.Panels)).Bool("paths", layout.HasPaths()).Msg("figures built")
	return f, nil
}
