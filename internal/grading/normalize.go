package grading

import (
	"errors"
	"strconv"
	"strings"
)

// Normalize stores raw into field f of module i and returns the new list.
// l itself is never modified. Names are kept verbatim; numeric input is
// sanitized and clamped into the field's range, and editing weightExam
// also recomputes weightTd. Nothing here fails: an unknown index or field
// returns l unchanged and garbage input degrades to unset.
func Normalize(l List, i int, f Field, raw string) List {
	if !l.Has(i) {
		return l
	}
	out := l.clone()
	m := &out[i]
	switch f {
	case FieldName:
		m.Name = raw
	case FieldCoefficient:
		m.Coefficient = parseLoose(raw).clamp(MinCoefficient, MaxCoefficient)
	case FieldWeightExam:
		m.setWeightExam(parseLoose(raw))
	case FieldExam:
		m.Exam = parseLoose(raw).clamp(0, MaxScore)
	case FieldTD:
		m.TD = parseLoose(raw).clamp(0, MaxScore)
	default:
		return l
	}
	return out
}

// sanitize keeps ASCII digits and the first '.'.
func sanitize(s string) string {
	var b strings.Builder
	dot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !dot:
			dot = true
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseLoose(s string) Value {
	s = sanitize(s)
	if strings.Trim(s, ".") == "" {
		return Unset()
	}
	v, err := strconv.ParseFloat(s, 64)
	// out of range still yields ±Inf, which the clamp handles
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Unset()
	}
	return Of(v)
}
