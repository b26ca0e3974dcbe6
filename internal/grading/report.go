package grading

// Row is one module together with everything derived from it.
type Row struct {
	Index       int     `json:"index"`
	Module      Module  `json:"module"`
	Average     Value   `json:"average"`
	Display     string  `json:"display"`
	Outcome     Outcome `json:"outcome"`
	ExamOutcome Outcome `json:"examOutcome"`
	TDOutcome   Outcome `json:"tdOutcome"`
}

// Report is the full derived state of a list.
type Report struct {
	Rows            []Row   `json:"modules"`
	Semester        float64 `json:"semesterAverage"`
	SemesterDisplay string  `json:"semesterDisplay"`
	SemesterOutcome Outcome `json:"semesterOutcome"`
	Coefficients    float64 `json:"coefficients"` // sum over complete modules
	Counted         int     `json:"counted"`
}

// Evaluate recomputes the report of l from scratch.
func Evaluate(l List) Report {
	rows := make([]Row, 0, len(l))
	for i, m := range l {
		avg := m.Average()
		rows = append(rows, Row{
			Index:       i,
			Module:      m,
			Average:     avg,
			Display:     FormatAverage(avg),
			Outcome:     Classify(avg),
			ExamOutcome: Classify(m.Exam),
			TDOutcome:   Classify(m.TD),
		})
	}
	agg := aggregateList(l)
	sem := agg.average()
	return Report{
		Rows:            rows,
		Semester:        sem,
		SemesterDisplay: FormatSemester(sem),
		// the semester average is always defined, so 0.00 counts as failed
		SemesterOutcome: Classify(Of(sem)),
		Coefficients:    agg.coefficients,
		Counted:         agg.counted,
	}
}
