package measure

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// ClosureTolerance is the largest difference, in mm, accepted between the
// 0 degree and 360 degree rows.
const ClosureTolerance = 0.01

// Decode parses every record of r. It does not validate the cycle; see
// Validate.
func Decode(r io.Reader, layout Layout) ([]Sample, error) {
	samples, _, err := decode(r, func(int) Layout { return layout })
	return samples, err
}

// DecodeDetect is Decode with the layout picked from the width of the first
// record by DetectLayout.
func DecodeDetect(r io.Reader) ([]Sample, Layout, error) {
	return decode(r, DetectLayout)
}

// decode reads r once. pick chooses the layout from the first record's
// width, or from zero when r is empty.
func decode(r io.Reader, pick func(width int) Layout) ([]Sample, Layout, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		samples []Sample
		layout  Layout
		picked  bool
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, layout, &ParseError{Line: pe.Line, Err: pe.Err}
			}
			return nil, layout, err
		}
		if !picked {
			layout, picked = pick(len(rec)), true
		}
		line, _ := cr.FieldPos(0)
		s, err := ParseRow(rec, layout, line)
		if err != nil {
			return nil, layout, err
		}
		samples = append(samples, s)
	}
	if !picked {
		layout = pick(0)
	}
	return samples, layout, nil
}

// ReadFile opens path, decodes it and validates the result. The file is
// closed on every return path.
func ReadFile(path string, layout Layout) ([]Sample, error) {
	samples, _, err := readFile(path, func(r io.Reader) ([]Sample, Layout, error) {
		samples, err := Decode(r, layout)
		return samples, layout, err
	})
	return samples, err
}

// ReadFileDetect is ReadFile with the layout taken from the width of the
// first record.
func ReadFileDetect(path string) ([]Sample, Layout, error) {
	return readFile(path, DecodeDetect)
}

func readFile(path string, dec func(io.Reader) ([]Sample, Layout, error)) ([]Sample, Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Layout{}, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	samples, layout, err := dec(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return nil, layout, fmt.Errorf("%s: %w", path, err)
		}
		return nil, layout, &IOError{Path: path, Err: err}
	}
	if err := Validate(samples); err != nil {
		return nil, layout, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("file", path).Int("samples", len(samples)).Msg("measurements loaded")
	return samples, layout, nil
}

// DetectLayout picks the layout matching a record of width columns: the full
// layout when the path columns are present, the displacement-only one
// otherwise.
func DetectLayout(width int) Layout {
	if width >= DefaultLayout.Width() {
		return DefaultLayout
	}
	return DisplacementLayout
}

// Validate checks that angles strictly ascend and, when the rows span a full
// 0 to 360 degree cycle, that the closing row repeats the opening one.
func Validate(samples []Sample) error {
	if len(samples) == 0 {
		return &DataIntegrityError{Reason: "no samples"}
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Angle <= samples[i-1].Angle {
			return &DataIntegrityError{
				Row:    i + 1,
				Field:  FieldAngle.String(),
				Reason: fmt.Sprintf("angle %g does not follow %g", samples[i].Angle, samples[i-1].Angle),
			}
		}
	}
	first, last := samples[0], samples[len(samples)-1]
	if first.Angle != 0 || last.Angle != 360 {
		return nil
	}
	row := len(samples)
	for f := FieldPiston; f < numFields; f++ {
		if f.IsPair() {
			a, b := first.Point(f), last.Point(f)
			if !closeEnough(a.First, b.First) || !closeEnough(a.Second, b.Second) {
				return &DataIntegrityError{
					Row:    row,
					Field:  f.String(),
					Reason: fmt.Sprintf("360 degree value [%g %g] differs from 0 degree value [%g %g]", b.First, b.Second, a.First, a.Second),
				}
			}
			continue
		}
		a, b := first.Value(f), last.Value(f)
		if !closeEnough(a, b) {
			return &DataIntegrityError{
				Row:    row,
				Field:  f.String(),
				Reason: fmt.Sprintf("360 degree value %g differs from 0 degree value %g", b, a),
			}
		}
	}
	return nil
}

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) <= ClosureTolerance
}

// Unit is the suffix written after every distance.
const Unit = " mm"

// Encode writes samples in the sweep file format. Columns absent from layout
// are left empty.
func Encode(w io.Writer, samples []Sample, layout Layout) error {
	cw := csv.NewWriter(w)
	width := layout.Width()
	for _, s := range samples {
		rec := make([]string, width)
		for f := FieldAngle; f < numFields; f++ {
			col := layout[f]
			if col < 0 {
				continue
			}
			switch {
			case f == FieldAngle:
				rec[col] = strconv.FormatFloat(s.Angle, 'f', -1, 64)
			case f.IsPair():
				p := s.Point(f)
				rec[col] = fmt.Sprintf("['%s', '%s']", formatDistance(p.First), formatDistance(p.Second))
			default:
				rec[col] = formatDistance(s.Value(f))
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatDistance(v float64) string {
	// avoid "-0.00" for values that round to zero
	if math.Abs(v) < 0.005 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 2, 64) + Unit
}
