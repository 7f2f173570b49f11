package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"examapi/internal/model"
	"examapi/internal/repository"
)

var (
	ErrInvalidCapacity       = errors.New("capacity must be positive")
	ErrInvalidScriptCount    = errors.New("script count must be positive")
	ErrInsufficientExaminers = errors.New("combined examiner capacity cannot cover the scripts")
)

// ExaminerListResult is the service-level DTO for paginated examiners.
type ExaminerListResult struct {
	Items []model.Examiner `json:"data"`
	Total int              `json:"total"`
}

// AllocationService defines the use cases for examiner registration and
// script allocation.
type AllocationService interface {
	// RegisterExaminer creates an examiner record.
	RegisterExaminer(ctx context.Context, e *model.Examiner) (*model.Examiner, error)

	// ListExaminers returns examiners using limit/offset and a total count.
	ListExaminers(ctx context.Context, limit, offset int) (*ExaminerListResult, error)

	// Allocate distributes a subject's scripts over the examiners whose
	// specialty matches the subject code, filling the largest capacities
	// first. A fresh allocation round replaces any existing one.
	Allocate(ctx context.Context, subjectID string, scripts int) ([]model.Allocation, error)

	// ListAllocations returns the current allocation round for a subject.
	ListAllocations(ctx context.Context, subjectID string) ([]model.Allocation, error)

	// Deallocate clears the allocation round for a subject.
	Deallocate(ctx context.Context, subjectID string) error
}

type allocationService struct {
	examiners repository.ExaminerRepository
	subjects  repository.SubjectRepository
}

// NewAllocationService constructs a new AllocationService.
func NewAllocationService(examiners repository.ExaminerRepository, subjects repository.SubjectRepository) AllocationService {
	return &allocationService{examiners: examiners, subjects: subjects}
}

func (s *allocationService) RegisterExaminer(ctx context.Context, e *model.Examiner) (*model.Examiner, error) {
	if e.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	e.ID = uuid.New().String()
	e.CreatedAt = time.Now().UTC()

	stored, err := s.examiners.Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("register examiner: %w", err)
	}
	return stored, nil
}

func (s *allocationService) ListExaminers(ctx context.Context, limit, offset int) (*ExaminerListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.examiners.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ExaminerListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *allocationService) Allocate(ctx context.Context, subjectID string, scripts int) ([]model.Allocation, error) {
	if scripts <= 0 {
		return nil, ErrInvalidScriptCount
	}
	sub, err := s.subject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	pool, err := s.examiners.ListBySpecialty(ctx, sub.Code)
	if err != nil {
		return nil, err
	}

	// Plan the whole round before touching the database so an infeasible
	// request leaves the previous round intact.
	remaining := scripts
	now := time.Now().UTC()
	plan := make([]model.Allocation, 0, len(pool))
	for _, ex := range pool {
		if remaining == 0 {
			break
		}
		take := ex.Capacity
		if take > remaining {
			take = remaining
		}
		plan = append(plan, model.Allocation{
			ID:         uuid.New().String(),
			SubjectID:  subjectID,
			ExaminerID: ex.ID,
			Scripts:    take,
			CreatedAt:  now,
		})
		remaining -= take
	}
	if remaining > 0 {
		return nil, fmt.Errorf("%w: %d scripts unassigned", ErrInsufficientExaminers, remaining)
	}

	if err := s.examiners.DeleteAllocationsBySubject(ctx, subjectID); err != nil {
		return nil, fmt.Errorf("clear previous round: %w", err)
	}

	out := make([]model.Allocation, 0, len(plan))
	for i := range plan {
		stored, err := s.examiners.CreateAllocation(ctx, &plan[i])
		if err != nil {
			return nil, fmt.Errorf("store allocation: %w", err)
		}
		out = append(out, *stored)
	}
	return out, nil
}

func (s *allocationService) ListAllocations(ctx context.Context, subjectID string) ([]model.Allocation, error) {
	if _, err := s.subject(ctx, subjectID); err != nil {
		return nil, err
	}
	return s.examiners.ListAllocationsBySubject(ctx, subjectID)
}

func (s *allocationService) Deallocate(ctx context.Context, subjectID string) error {
	if _, err := s.subject(ctx, subjectID); err != nil {
		return err
	}
	return s.examiners.DeleteAllocationsBySubject(ctx, subjectID)
}

func (s *allocationService) subject(ctx context.Context, subjectID string) (*model.ExamSubject, error) {
	if subjectID == "" {
		return nil, ErrIDRequired
	}
	sub, err := s.subjects.FindByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return sub, nil
}
