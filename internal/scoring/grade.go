// Package scoring implements the grade-boundary analysis engine: score
// normalization, boundary computation under several statistical methods,
// grade distribution and method impact comparison. It operates on in-memory
// score sets only and performs no I/O.
package scoring

import "fmt"

// Grade is a letter grade on the nine-point scale, A1 (best) to F9 (fail).
type Grade string

const (
	GradeA1 Grade = "A1"
	GradeB2 Grade = "B2"
	GradeB3 Grade = "B3"
	GradeC4 Grade = "C4"
	GradeC5 Grade = "C5"
	GradeC6 Grade = "C6"
	GradeD7 Grade = "D7"
	GradeE8 Grade = "E8"
	GradeF9 Grade = "F9"
)

// Scale lists all grades from best to worst. Boundary sets, distributions
// and impact reports follow this order.
var Scale = []Grade{
	GradeA1, GradeB2, GradeB3, GradeC4, GradeC5, GradeC6, GradeD7, GradeE8, GradeF9,
}

// Boundary is the minimum weighted total required for a grade.
type Boundary struct {
	Grade    Grade   `json:"grade"`
	MinScore float64 `json:"min_score"`
}

// BoundarySet holds one cutoff per grade in Scale order. Cutoffs are
// non-increasing from A1 to F9, and F9 is always 0 so every total maps to
// some grade.
type BoundarySet struct {
	Method     Method     `json:"method"`
	Boundaries []Boundary `json:"boundaries"`
}

// GradeFor returns the best grade whose cutoff the total meets.
func (bs *BoundarySet) GradeFor(total float64) Grade {
	for _, b := range bs.Boundaries {
		if total >= b.MinScore {
			return b.Grade
		}
	}
	return GradeF9
}

// rank returns the position of g on the scale, 0 being best. Unknown grades
// rank last.
func rank(g Grade) int {
	for i, s := range Scale {
		if s == g {
			return i
		}
	}
	return len(Scale) - 1
}

// newBoundarySet builds a BoundarySet from per-grade cutoffs for A1..E8
// (F9 is appended at 0), clamping each cutoff to [0,100] and enforcing the
// non-increasing invariant from A1 downward.
func newBoundarySet(method Method, cutoffs []float64) (*BoundarySet, error) {
	if len(cutoffs) != len(Scale)-1 {
		return nil, fmt.Errorf("expected %d cutoffs, got %d", len(Scale)-1, len(cutoffs))
	}

	bs := &BoundarySet{Method: method}
	prev := 100.0
	for i, c := range cutoffs {
		if c > prev {
			c = prev
		}
		if c < 0 {
			c = 0
		}
		c = round2(c)
		bs.Boundaries = append(bs.Boundaries, Boundary{Grade: Scale[i], MinScore: c})
		prev = c
	}
	bs.Boundaries = append(bs.Boundaries, Boundary{Grade: GradeF9, MinScore: 0})
	return bs, nil
}
