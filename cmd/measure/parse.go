package measure

import (
	"strconv"
	"strings"
)

// UnitSuffixLen is the fixed width of the unit text the CAD tool appends to
// every distance, e.g. " mm".
const UnitSuffixLen = 3

// ParseRow turns one CSV record into a Sample according to layout. line is
// the 1-based line number used in error reports.
func ParseRow(row []string, layout Layout, line int) (Sample, error) {
	var s Sample
	for f := FieldAngle; f < numFields; f++ {
		col := layout[f]
		if col < 0 {
			continue
		}
		if col >= len(row) {
			return Sample{}, &ParseError{Line: line, Column: f.String(), Err: errMissingColumn}
		}
		raw := row[col]
		switch {
		case f == FieldAngle:
			v, err := parseNumber(raw)
			if err != nil {
				return Sample{}, &ParseError{Line: line, Column: f.String(), Value: raw, Err: err}
			}
			s.set(f, v)
		case f.IsPair():
			p, err := parsePair(raw)
			if err != nil {
				return Sample{}, &ParseError{Line: line, Column: f.String(), Value: raw, Err: err}
			}
			s.setPoint(f, p)
		default:
			v, err := parseDistance(raw)
			if err != nil {
				return Sample{}, &ParseError{Line: line, Column: f.String(), Value: raw, Err: err}
			}
			s.set(f, v)
		}
	}
	return s, nil
}

// trimField drops surrounding whitespace and quote characters.
func trimField(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

func parseNumber(raw string) (float64, error) {
	s := trimField(raw)
	if s == "" {
		return 0, errEmpty
	}
	return strconv.ParseFloat(s, 64)
}

func parseDistance(raw string) (float64, error) {
	s := trimField(raw)
	if s == "" {
		return 0, errEmpty
	}
	if len(s) <= UnitSuffixLen {
		return 0, errTooShort
	}
	s = strings.TrimSpace(s[:len(s)-UnitSuffixLen])
	return strconv.ParseFloat(s, 64)
}

// parsePair reads a bracketed literal such as "['12.00 mm', '-3.40 mm']".
func parsePair(raw string) (Pair, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Pair{}, errEmpty
	}
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return Pair{}, errNotPair
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != 2 {
		return Pair{}, errPairArity
	}
	first, err := parseDistance(parts[0])
	if err != nil {
		return Pair{}, err
	}
	second, err := parseDistance(parts[1])
	if err != nil {
		return Pair{}, err
	}
	return Pair{First: first, Second: second}, nil
}
