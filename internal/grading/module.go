package grading

// Field identifies one column of a module record.
type Field string

const (
	FieldName        Field = "name"
	FieldCoefficient Field = "coefficient"
	FieldWeightExam  Field = "weightExam"
	FieldWeightTD    Field = "weightTd" // derived, never an edit target
	FieldExam        Field = "exam"
	FieldTD          Field = "td"
)

// Ranges of the numeric fields. All bounds are inclusive.
const (
	MinCoefficient = 1
	MaxCoefficient = 5
	MaxWeight      = 100
	MaxScore       = 20
	PassMark       = 10
)

// ParseField resolves an editable field identifier. weightTd is reported
// as not editable.
func ParseField(s string) (Field, bool) {
	switch f := Field(s); f {
	case FieldName, FieldCoefficient, FieldWeightExam, FieldExam, FieldTD:
		return f, true
	default:
		return "", false
	}
}

// Module is one row of input.
type Module struct {
	Name        string `json:"name"`
	Coefficient Value  `json:"coefficient"`
	WeightExam  Value  `json:"weightExam"`
	WeightTD    Value  `json:"weightTd"` // always 100 - WeightExam
	Exam        Value  `json:"exam"`
	TD          Value  `json:"td"`
}

// Complete reports whether the module contributes to the semester average.
func (m Module) Complete() bool {
	return m.Exam.IsSet() && m.TD.IsSet() &&
		m.WeightExam.IsSet() && m.WeightTD.IsSet() &&
		m.Coefficient.IsSet()
}

func (m *Module) setWeightExam(v Value) {
	m.WeightExam = v.clamp(0, MaxWeight)
	if w, ok := m.WeightExam.Get(); ok {
		m.WeightTD = Of(MaxWeight - w)
	} else {
		m.WeightTD = Unset()
	}
}

// List is the ordered sequence of modules. Position is the only identity.
type List []Module

// NewList returns a list holding exactly one blank module.
func NewList() List { return List{{}} }

// Has reports whether i addresses a module of l.
func (l List) Has(i int) bool { return i >= 0 && i < len(l) }

func (l List) clone() List {
	out := make(List, len(l), len(l)+1)
	copy(out, l)
	return out
}

// AddModule returns a copy of l with one blank module appended.
func AddModule(l List) List {
	return append(l.clone(), Module{})
}

// ClearModule returns a copy of l where module i keeps its name and has
// every numeric field unset. An unknown index returns l unchanged.
func ClearModule(l List, i int) List {
	if !l.Has(i) {
		return l
	}
	out := l.clone()
	out[i] = Module{Name: l[i].Name}
	return out
}
