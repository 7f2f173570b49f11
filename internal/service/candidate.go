package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"examapi/internal/model"
	"examapi/internal/repository"
	"examapi/internal/storage"
)

var (
	ErrIDRequired          = errors.New("id is required")
	ErrExamNumberRequired  = errors.New("exam number is required")
	ErrCandidateNotFound   = errors.New("candidate not found")
	ErrDuplicateExamNumber = errors.New("exam number already registered")
	ErrReaderNil           = errors.New("reader is nil")
)

// CandidateListResult is the service-level DTO for paginated candidates.
type CandidateListResult struct {
	Items []model.Candidate `json:"data"`
	Total int               `json:"total"`
}

// CandidateService defines the use cases for candidate registration.
type CandidateService interface {
	// Register creates a candidate record. The exam number must be unique.
	Register(ctx context.Context, c *model.Candidate) (*model.Candidate, error)

	// Get returns a single candidate by its ID.
	Get(ctx context.Context, id string) (*model.Candidate, error)

	// GetByExamNumber returns a single candidate by exam number.
	GetByExamNumber(ctx context.Context, examNumber string) (*model.Candidate, error)

	// List returns candidates using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*CandidateListResult, error)

	// UploadPhoto stores the passport photo in object storage and records its
	// key on the candidate; the object is removed again if the DB update fails.
	UploadPhoto(ctx context.Context, id string, r io.Reader, originalFilename string, contentType string, size int64) (*model.Candidate, error)

	// Delete removes a candidate by ID, including any stored photo.
	Delete(ctx context.Context, id string) error
}

type candidateService struct {
	store storage.Storage
	repo  repository.CandidateRepository
}

// NewCandidateService constructs a new CandidateService.
func NewCandidateService(store storage.Storage, repo repository.CandidateRepository) CandidateService {
	return &candidateService{store: store, repo: repo}
}

func (s *candidateService) Register(ctx context.Context, c *model.Candidate) (*model.Candidate, error) {
	if c.ExamNumber == "" {
		return nil, ErrExamNumberRequired
	}

	// Uniqueness check; the DB constraint is the backstop.
	if _, err := s.repo.FindByExamNumber(ctx, c.ExamNumber); err == nil {
		return nil, ErrDuplicateExamNumber
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC()

	stored, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("register candidate: %w", err)
	}
	return stored, nil
}

func (s *candidateService) Get(ctx context.Context, id string) (*model.Candidate, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *candidateService) GetByExamNumber(ctx context.Context, examNumber string) (*model.Candidate, error) {
	if examNumber == "" {
		return nil, ErrExamNumberRequired
	}
	c, err := s.repo.FindByExamNumber(ctx, examNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return c, nil
}

// List returns paginated candidates without exposing repository types.
func (s *candidateService) List(ctx context.Context, limit, offset int) (*CandidateListResult, error) {
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
	return &CandidateListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *candidateService) UploadPhoto(ctx context.Context, id string, r io.Reader, originalFilename string, contentType string, size int64) (*model.Candidate, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("candidates", c.ExamNumber+ext))

	_, err = s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"exam-number": c.ExamNumber,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload photo to storage: %w", err)
	}

	if err := s.repo.UpdatePhotoPath(ctx, id, key); err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("photo record failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("photo record failed: %w", err)
	}

	c.PhotoPath = key
	return c, nil
}

// Delete removes the candidate's stored photo first, then the record.
func (s *candidateService) Delete(ctx context.Context, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if c.PhotoPath != "" {
		if err := s.store.Delete(ctx, c.PhotoPath); err != nil {
			return fmt.Errorf("delete photo: %w", err)
		}
	}
	return s.repo.Delete(ctx, id)
}
