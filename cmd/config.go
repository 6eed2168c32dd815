package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"

	"github.com/sumwatshade/valvegear/cmd/curve"
	"github.com/sumwatshade/valvegear/cmd/inspector"
	"github.com/sumwatshade/valvegear/cmd/measure"
	"github.com/sumwatshade/valvegear/cmd/panel"
)

// Configuration keys.
const (
	keyResultsDir      = "results.dir"
	keyCentreReference = "curves.centre_reference"
	keyPistonLow       = "curves.piston_low"
	keyPistonHigh      = "curves.piston_high"
	keyLap             = "curves.lap"
	keyTolerancePx     = "inspector.tolerance_px"
	keyLogLevel        = "log.level"
	keyLogFile         = "log.file"
	keyExportWidth     = "export.width"
	keyExportHeight    = "export.height"
)

// setDefaults registers every default, rooting paths at home.
func setDefaults(v *viper.Viper, home string) {
	v.SetDefault(keyResultsDir, filepath.Join(home, ".valvegear", "results"))
	v.SetDefault(keyCentreReference, measure.DefaultCentreReference)
	v.SetDefault(keyPistonLow, -3.0)
	v.SetDefault(keyPistonHigh, 3.0)
	v.SetDefault(keyLap, 0.0)
	v.SetDefault(keyTolerancePx, inspector.DefaultTolerancePx)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFile, filepath.Join(home, ".valvegear", "valvegear.log"))
	// points; 72 per inch
	v.SetDefault(keyExportWidth, 720)
	v.SetDefault(keyExportHeight, 432)
}

func curveOptions(v *viper.Viper) curve.Options {
	return curve.Options{
		PistonLow:       v.GetFloat64(keyPistonLow),
		PistonHigh:      v.GetFloat64(keyPistonHigh),
		CentreReference: v.GetFloat64(keyCentreReference),
		Lap:             v.GetFloat64(keyLap),
	}
}

// panelSettings sizes panels for export; the terminal view resizes them.
func panelSettings(v *viper.Viper) panel.Settings {
	w, h := exportSize(v)
	return panel.Settings{
		TolerancePx: v.GetFloat64(keyTolerancePx),
		Width:       int(w.Points()),
		Height:      int(h.Points()),
	}
}

func exportSize(v *viper.Viper) (width, height vg.Length) {
	return vg.Points(v.GetFloat64(keyExportWidth)), vg.Points(v.GetFloat64(keyExportHeight))
}

// setupLogging points the global logger at stderr for batch commands, or at
// the log file while the terminal UI owns the screen. The returned closer
// releases the log file.
func setupLogging(v *viper.Viper, tui bool) (io.Closer, error) {
	level, err := zerolog.ParseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", keyLogLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	if !tui {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		return io.NopCloser(nil), nil
	}
	path := v.GetString(keyLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return f, nil
}
