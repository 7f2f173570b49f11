package scoring

import (
	"fmt"

	"examapi/internal/model"
)

// IssueKind classifies a validation issue found while normalizing raw scores.
type IssueKind string

const (
	IssueMissingScore     IssueKind = "missing_score"
	IssueOutOfRange       IssueKind = "out_of_range"
	IssueUnknownCandidate IssueKind = "unknown_candidate"
)

// ValidationIssue flags a raw score that needs manual review. Issues never
// abort processing: the offending component contributes zero and the score
// row is marked invalid.
type ValidationIssue struct {
	ExamNumber string    `json:"exam_number"`
	Component  string    `json:"component"`
	Kind       IssueKind `json:"kind"`
	Detail     string    `json:"detail"`
}

// Normalize scales each raw component score to its configured weight
// (raw/max*weight), sums the weighted total and records any validation
// issues on the way. It mutates sc in place: normalized components, total
// and the Valid flag are always set, the total clamped to [0,100] and
// rounded to two decimals. The letter grade is left untouched; grading is
// a boundary-set concern.
func Normalize(sub *model.ExamSubject, sc *model.SubjectScore) []ValidationIssue {
	var issues []ValidationIssue

	sc.NormObjective, issues = normalizeComponent(sc.ExamNumber, "objective", sc.RawObjective, sub.MaxObjective, sub.ObjectiveWeight, issues)
	sc.NormEssay, issues = normalizeComponent(sc.ExamNumber, "essay", sc.RawEssay, sub.MaxEssay, sub.EssayWeight, issues)

	sc.NormPractical = 0
	if sub.HasPractical {
		sc.NormPractical, issues = normalizeComponent(sc.ExamNumber, "practical", sc.RawPractical, sub.MaxPractical, sub.PracticalWeight, issues)
	}

	total := sc.NormObjective + sc.NormEssay + sc.NormPractical
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}
	sc.Total = round2(total)
	sc.Valid = len(issues) == 0

	return issues
}

func normalizeComponent(examNumber, component string, raw *float64, max, weight float64, issues []ValidationIssue) (float64, []ValidationIssue) {
	if raw == nil {
		return 0, append(issues, ValidationIssue{
			ExamNumber: examNumber,
			Component:  component,
			Kind:       IssueMissingScore,
			Detail:     "no raw score recorded",
		})
	}
	if *raw < 0 || *raw > max {
		return 0, append(issues, ValidationIssue{
			ExamNumber: examNumber,
			Component:  component,
			Kind:       IssueOutOfRange,
			Detail:     fmt.Sprintf("raw score %.2f outside [0, %.2f]", *raw, max),
		})
	}
	if max == 0 {
		return 0, issues
	}
	return round2(*raw / max * weight), issues
}
