package model

import "time"

// SubjectScore is one candidate's result in one subject. Raw component
// scores are pointers: nil means the component was never captured, which is
// different from a recorded zero. Normalized values and the weighted total
// are derived by the scoring pipeline, never entered directly.
type SubjectScore struct {
	ID            string    `json:"id"`
	SubjectID     string    `json:"subject_id"`
	ExamNumber    string    `json:"exam_number"`
	RawObjective  *float64  `json:"raw_objective"`
	RawEssay      *float64  `json:"raw_essay"`
	RawPractical  *float64  `json:"raw_practical"`
	NormObjective float64   `json:"norm_objective"`
	NormEssay     float64   `json:"norm_essay"`
	NormPractical float64   `json:"norm_practical"`
	Total         float64   `json:"total"`
	Grade         string    `json:"grade"`
	Valid         bool      `json:"valid"`
	UpdatedAt     time.Time `json:"updated_at"`
}
