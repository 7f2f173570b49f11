package repository

import (
	"context"

	"examapi/internal/model"
)

// CandidateRepository defines data access for candidates using SQL queries only.
// No business logic here — strictly persistence operations.
type CandidateRepository interface {
	// Create inserts a new candidate record and returns the stored row.
	Create(ctx context.Context, c *model.Candidate) (*model.Candidate, error)

	// FindByID returns a candidate by its ID.
	FindByID(ctx context.Context, id string) (*model.Candidate, error)

	// FindByExamNumber returns a candidate by exam number.
	FindByExamNumber(ctx context.Context, examNumber string) (*model.Candidate, error)

	// List returns a paginated list of candidates and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Candidate], error)

	// UpdatePhotoPath sets the stored photo object key for a candidate.
	UpdatePhotoPath(ctx context.Context, id, path string) error

	// Delete removes a candidate by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
