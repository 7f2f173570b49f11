package repository

import (
	"context"

	"examapi/internal/model"
)

// ScoreRepository defines data access for per-candidate subject scores.
type ScoreRepository interface {
	// Upsert inserts or replaces the score row for (subject, exam number)
	// and returns the stored record.
	Upsert(ctx context.Context, sc *model.SubjectScore) (*model.SubjectScore, error)

	// FindBySubjectAndExamNumber returns one candidate's score in a subject.
	FindBySubjectAndExamNumber(ctx context.Context, subjectID, examNumber string) (*model.SubjectScore, error)

	// ListBySubject returns a paginated list of a subject's scores.
	ListBySubject(ctx context.Context, subjectID string, pq PageQuery) (*PageResult[model.SubjectScore], error)

	// TotalsBySubject returns the weighted totals of all valid scores in a
	// subject, the input to boundary analysis.
	TotalsBySubject(ctx context.Context, subjectID string) ([]float64, error)
}
