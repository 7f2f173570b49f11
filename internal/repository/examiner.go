package repository

import (
	"context"

	"examapi/internal/model"
)

// ExaminerRepository defines data access for examiners and their script
// allocations.
type ExaminerRepository interface {
	// Create inserts a new examiner and returns the stored row.
	Create(ctx context.Context, e *model.Examiner) (*model.Examiner, error)

	// List returns a paginated list of examiners and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Examiner], error)

	// ListBySpecialty returns all examiners registered for a specialty,
	// largest capacity first.
	ListBySpecialty(ctx context.Context, specialty string) ([]model.Examiner, error)

	// CreateAllocation inserts one examiner-subject allocation row.
	CreateAllocation(ctx context.Context, a *model.Allocation) (*model.Allocation, error)

	// ListAllocationsBySubject returns all allocations for a subject.
	ListAllocationsBySubject(ctx context.Context, subjectID string) ([]model.Allocation, error)

	// DeleteAllocationsBySubject removes all allocations for a subject.
	DeleteAllocationsBySubject(ctx context.Context, subjectID string) error
}
