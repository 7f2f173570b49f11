package model

import "time"

// Examiner is a registered script marker. Capacity is the maximum number of
// scripts the examiner can take in one allocation round.
type Examiner struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	Capacity  int       `json:"capacity"`
	Venue     string    `json:"venue"`
	CreatedAt time.Time `json:"created_at"`
}

// Allocation assigns a number of scripts for a subject to an examiner.
type Allocation struct {
	ID         string    `json:"id"`
	SubjectID  string    `json:"subject_id"`
	ExaminerID string    `json:"examiner_id"`
	Scripts    int       `json:"scripts"`
	CreatedAt  time.Time `json:"created_at"`
}
