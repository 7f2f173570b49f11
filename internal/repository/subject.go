package repository

import (
	"context"

	"examapi/internal/model"
)

// SubjectRepository defines data access for exam subject configurations.
type SubjectRepository interface {
	// Create inserts a new subject configuration and returns the stored row.
	Create(ctx context.Context, s *model.ExamSubject) (*model.ExamSubject, error)

	// FindByID returns a subject by its ID.
	FindByID(ctx context.Context, id string) (*model.ExamSubject, error)

	// List returns a paginated list of subjects and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.ExamSubject], error)
}
