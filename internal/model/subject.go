package model

import "time"

// ExamSubject holds the marking configuration for one examined subject:
// the maximum raw score obtainable per component and the weight (as a
// percentage of the final total) each component carries. Weights must sum
// to 100; PracticalWeight is 0 for subjects without a practical component.
type ExamSubject struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	MaxObjective    float64   `json:"max_objective"`
	MaxEssay        float64   `json:"max_essay"`
	MaxPractical    float64   `json:"max_practical"`
	ObjectiveWeight float64   `json:"objective_weight"`
	EssayWeight     float64   `json:"essay_weight"`
	PracticalWeight float64   `json:"practical_weight"`
	HasPractical    bool      `json:"has_practical"`
	CreatedAt       time.Time `json:"created_at"`
}
