package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"examapi/internal/model"
	"examapi/internal/repository"
)

var (
	ErrSubjectNotFound = errors.New("subject not found")
	ErrInvalidWeights  = errors.New("component weights must sum to 100")
	ErrInvalidMaxima   = errors.New("component maxima must be positive")
)

// SubjectListResult is the service-level DTO for paginated subjects.
type SubjectListResult struct {
	Items []model.ExamSubject `json:"data"`
	Total int                 `json:"total"`
}

// SubjectService defines the use cases for exam subject configuration.
type SubjectService interface {
	// Create validates and stores a subject configuration.
	Create(ctx context.Context, s *model.ExamSubject) (*model.ExamSubject, error)

	// Get returns a single subject by its ID.
	Get(ctx context.Context, id string) (*model.ExamSubject, error)

	// List returns subjects using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*SubjectListResult, error)
}

type subjectService struct {
	repo repository.SubjectRepository
}

// NewSubjectService constructs a new SubjectService.
func NewSubjectService(repo repository.SubjectRepository) SubjectService {
	return &subjectService{repo: repo}
}

func (s *subjectService) Create(ctx context.Context, sub *model.ExamSubject) (*model.ExamSubject, error) {
	if sub.MaxObjective <= 0 || sub.MaxEssay <= 0 {
		return nil, ErrInvalidMaxima
	}
	if sub.HasPractical && sub.MaxPractical <= 0 {
		return nil, ErrInvalidMaxima
	}
	if !sub.HasPractical {
		sub.MaxPractical = 0
		sub.PracticalWeight = 0
	}

	sum := sub.ObjectiveWeight + sub.EssayWeight + sub.PracticalWeight
	if math.Abs(sum-100) > 0.001 {
		return nil, fmt.Errorf("%w: got %.2f", ErrInvalidWeights, sum)
	}

	sub.ID = uuid.New().String()
	sub.CreatedAt = time.Now().UTC()

	stored, err := s.repo.Create(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}
	return stored, nil
}

func (s *subjectService) Get(ctx context.Context, id string) (*model.ExamSubject, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (s *subjectService) List(ctx context.Context, limit, offset int) (*SubjectListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &SubjectListResult{Items: res.Items, Total: res.Total}, nil
}
