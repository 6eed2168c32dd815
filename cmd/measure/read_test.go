package measure

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cycleCSV = `0,"300.00 mm","150.00 mm","150.50 mm","151.00 mm","['10.00 mm', '1.00 mm']","['11.00 mm', '2.00 mm']","['12.00 mm', '3.00 mm']"
"180","200.00 mm","155.00 mm","150.50 mm","146.00 mm","['20.00 mm', '1.50 mm']","['21.00 mm', '2.50 mm']","['22.00 mm', '3.50 mm']"
360,"300.00 mm","150.00 mm","150.50 mm","151.00 mm","['10.00 mm', '1.00 mm']","['11.00 mm', '2.00 mm']","['12.00 mm', '3.00 mm']"
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	samples, err := ReadFile(writeFile(t, cycleCSV), DefaultLayout)
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, []float64{0, 180, 360}, Angles(samples))
	assert.Equal(t, []float64{300, 200, 300}, Values(samples, FieldPiston))
	assert.Equal(t, Pair{First: 21, Second: 2.5}, samples[1].PathMid)
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), DefaultLayout)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadFileParseFailureReportsLine(t *testing.T) {
	t.Parallel()

	broken := strings.Replace(cycleCSV, `"155.00 mm"`, `"oops mm"`, 1)
	_, err := ReadFile(writeFile(t, broken), DefaultLayout)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, "cutoff_fwd", pe.Column)
}

func TestReadFileRejectsOpenCycle(t *testing.T) {
	t.Parallel()

	broken := strings.Replace(cycleCSV, `360,"300.00 mm"`, `360,"301.00 mm"`, 1)
	_, err := ReadFile(writeFile(t, broken), DefaultLayout)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataIntegrity)

	var de *DataIntegrityError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, 3, de.Row)
	assert.Equal(t, "piston", de.Field)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	closed := []Sample{
		{Angle: 0, Piston: 1, PathFwd: Pair{1, 2}},
		{Angle: 10, Piston: 2},
		{Angle: 360, Piston: 1.005, PathFwd: Pair{1, 2}},
	}

	tests := []struct {
		name    string
		samples []Sample
		field   string
		wantErr bool
	}{
		{"closed cycle", closed, "", false},
		{"partial sweep is not checked for closure", []Sample{{Angle: 0, Piston: 1}, {Angle: 90, Piston: 7}}, "", false},
		{"empty", nil, "", true},
		{"duplicate angle", []Sample{{Angle: 0}, {Angle: 10}, {Angle: 10}}, "angle", true},
		{"descending angle", []Sample{{Angle: 20}, {Angle: 10}}, "angle", true},
		{"path mismatch", []Sample{{Angle: 0, PathRev: Pair{1, 1}}, {Angle: 360, PathRev: Pair{1, 2}}}, "path_rev", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.samples)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDataIntegrity)
			var de *DataIntegrityError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.field, de.Field)
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	in := []Sample{
		{Angle: 0, Piston: 300, CutoffFwd: 150.25, CutoffMid: 150, CutoffRev: 149.75, PathFwd: Pair{10, -1}, PathMid: Pair{11, -2}, PathRev: Pair{12, -3}},
		{Angle: 10, Piston: 299.5, CutoffFwd: 151, CutoffMid: 150.5, CutoffRev: 149, PathFwd: Pair{10.5, -1.5}, PathMid: Pair{11.5, -2.5}, PathRev: Pair{12.5, -3.5}},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, in, DefaultLayout))
	assert.Contains(t, buf.String(), `"['10.00 mm', '-1.00 mm']"`)

	out, err := Decode(&buf, DefaultLayout)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("decoded samples mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFileDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		csv    string
		layout Layout
	}{
		{"full", cycleCSV, DefaultLayout},
		{"displacement only", "0,300.00 mm,150.00 mm,150.50 mm,151.00 mm\n360,300.00 mm,150.00 mm,150.50 mm,151.00 mm\n", DisplacementLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples, layout, err := ReadFileDetect(writeFile(t, tt.csv))
			require.NoError(t, err)
			assert.Equal(t, tt.layout, layout)
			assert.Equal(t, 360.0, samples[len(samples)-1].Angle)
		})
	}

	_, _, err := ReadFileDetect(filepath.Join(t.TempDir(), "none.csv"))
	assert.ErrorIs(t, err, ErrIO)
}

func TestDecodeDetectSinglePass(t *testing.T) {
	t.Parallel()

	r := strings.NewReader(cycleCSV)
	samples, layout, err := DecodeDetect(r)
	require.NoError(t, err)
	assert.Equal(t, DefaultLayout, layout)
	assert.Len(t, samples, 3)
	assert.Zero(t, r.Len(), "input read once")

	_, layout, err = DecodeDetect(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DisplacementLayout, layout)

	// the first record fixes the layout for the rest of the file
	_, _, err = DecodeDetect(strings.NewReader("0,1.00 mm,1.00 mm,1.00 mm,1.00 mm\n10,1.00 mm,1.00 mm\n"))
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
}
