package model

import "time"

// Candidate represents a registered examination candidate.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Candidate struct {
	ID          string    `json:"id"`
	ExamNumber  string    `json:"exam_number"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      string    `json:"gender"`
	CentreCode  string    `json:"centre_code"`
	PhotoPath   string    `json:"photo_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
