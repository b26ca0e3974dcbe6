package grading

import (
	"math"
	"strconv"
)

// Outcome classifies a score against the pass mark.
type Outcome string

const (
	Pending Outcome = "pending" // not computable, never rendered as passed
	Passed  Outcome = "passed"
	Failed  Outcome = "failed"
)

// Classify compares v (on the /20 scale) against PassMark.
func Classify(v Value) Outcome {
	x, ok := v.Get()
	switch {
	case !ok:
		return Pending
	case x >= PassMark:
		return Passed
	default:
		return Failed
	}
}

// Round2 rounds half away from zero at two decimals.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// FormatAverage renders a module average as "14.40", or "-" when it is not
// computable.
func FormatAverage(v Value) string {
	x, ok := v.Get()
	if !ok {
		return "-"
	}
	return strconv.FormatFloat(x, 'f', 2, 64)
}

func rawAverage(exam, td, weightExam, weightTD Value) (float64, bool) {
	e, eok := exam.Get()
	t, tok := td.Get()
	we, weok := weightExam.Get()
	wt, wtok := weightTD.Get()
	if !eok || !tok || !weok || !wtok {
		return 0, false
	}
	return e*(we/100) + t*(wt/100), true
}

// ModuleAverage weighs the exam and TD scores by their percentages and
// rounds to two decimals. Any unset input makes the result unset.
func ModuleAverage(exam, td, weightExam, weightTD Value) Value {
	avg, ok := rawAverage(exam, td, weightExam, weightTD)
	if !ok {
		return Unset()
	}
	return Of(Round2(avg))
}

// Average is ModuleAverage over the fields of m.
func (m Module) Average() Value {
	return ModuleAverage(m.Exam, m.TD, m.WeightExam, m.WeightTD)
}

type aggregate struct {
	sum          float64
	coefficients float64
	counted      int
}

// aggregateList sums the unrounded averages of complete modules, weighted
// by coefficient.
func aggregateList(l List) aggregate {
	var agg aggregate
	for _, m := range l {
		if !m.Complete() {
			continue
		}
		avg, _ := rawAverage(m.Exam, m.TD, m.WeightExam, m.WeightTD)
		c, _ := m.Coefficient.Get()
		agg.sum += avg * c
		agg.coefficients += c
		agg.counted++
	}
	return agg
}

func (a aggregate) average() float64 {
	if a.coefficients <= 0 {
		return 0
	}
	return Round2(a.sum / a.coefficients)
}

// SemesterAverage is the coefficient-weighted mean of the complete modules,
// rounded to two decimals. It is 0 when no module is complete.
func SemesterAverage(l List) float64 {
	return aggregateList(l).average()
}

// FormatSemester renders a semester average with two decimals.
func FormatSemester(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
