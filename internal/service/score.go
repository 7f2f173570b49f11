package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"examapi/internal/model"
	"examapi/internal/repository"
	"examapi/internal/scoring"
	"examapi/internal/storage"
)

var ErrScoreNotFound = errors.New("score not found")

// issuesPageSize bounds how many score rows are fetched per page when
// collecting validation issues.
const issuesPageSize = 500

// ScoreListResult is the service-level DTO for paginated subject scores.
type ScoreListResult struct {
	Items []model.SubjectScore `json:"data"`
	Total int                  `json:"total"`
}

// SheetUploadResult reports the outcome of a bulk score sheet upload.
// Rejected rows are skipped, never fatal; each carries at least one issue.
type SheetUploadResult struct {
	SheetPath string                    `json:"sheet_path"`
	Accepted  int                       `json:"accepted"`
	Rejected  int                       `json:"rejected"`
	Issues    []scoring.ValidationIssue `json:"issues"`
}

// ScoreService defines the use cases for score entry.
type ScoreService interface {
	// Enter records or replaces one candidate's raw scores in a subject.
	// The scoring pipeline derives the normalized components, total and
	// provisional grade; validation issues are returned alongside the stored
	// row, which is flagged invalid when any exist.
	Enter(ctx context.Context, subjectID, examNumber string, rawObjective, rawEssay, rawPractical *float64) (*model.SubjectScore, []scoring.ValidationIssue, error)

	// UploadSheet archives a CSV score sheet to object storage and upserts
	// its rows. Expected columns: exam_number, objective, essay, practical;
	// blank cells mean the component was not captured.
	UploadSheet(ctx context.Context, subjectID string, r io.Reader, originalFilename string, size int64) (*SheetUploadResult, error)

	// List returns a subject's scores using limit/offset and a total count.
	List(ctx context.Context, subjectID string, limit, offset int) (*ScoreListResult, error)

	// Issues returns the validation issues of every invalid score currently
	// stored for a subject.
	Issues(ctx context.Context, subjectID string) ([]scoring.ValidationIssue, error)
}

type scoreService struct {
	store      storage.Storage
	scores     repository.ScoreRepository
	subjects   repository.SubjectRepository
	candidates repository.CandidateRepository
	inv        Invalidator
}

// NewScoreService constructs a new ScoreService. inv may be nil when no
// analysis cache needs invalidating.
func NewScoreService(store storage.Storage, scores repository.ScoreRepository, subjects repository.SubjectRepository, candidates repository.CandidateRepository, inv Invalidator) ScoreService {
	return &scoreService{store: store, scores: scores, subjects: subjects, candidates: candidates, inv: inv}
}

func (s *scoreService) Enter(ctx context.Context, subjectID, examNumber string, rawObjective, rawEssay, rawPractical *float64) (*model.SubjectScore, []scoring.ValidationIssue, error) {
	if examNumber == "" {
		return nil, nil, ErrExamNumberRequired
	}
	sub, err := s.subject(ctx, subjectID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.candidates.FindByExamNumber(ctx, examNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrCandidateNotFound
		}
		return nil, nil, err
	}

	sc := &model.SubjectScore{
		ID:           uuid.New().String(),
		SubjectID:    subjectID,
		ExamNumber:   examNumber,
		RawObjective: rawObjective,
		RawEssay:     rawEssay,
		RawPractical: rawPractical,
		UpdatedAt:    time.Now().UTC(),
	}
	issues := s.pipeline(sub, sc)

	stored, err := s.scores.Upsert(ctx, sc)
	if err != nil {
		return nil, nil, fmt.Errorf("store score: %w", err)
	}
	s.invalidate(subjectID)
	return stored, issues, nil
}

func (s *scoreService) UploadSheet(ctx context.Context, subjectID string, r io.Reader, originalFilename string, size int64) (*SheetUploadResult, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	sub, err := s.subject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	// The sheet is both archived and parsed, so buffer it once.
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}

	key := filepath.ToSlash(filepath.Join("scoresheets", sub.Code+"-"+uuid.New().String()+filepath.Ext(originalFilename)))
	if _, err := s.store.Put(ctx, key, bytes.NewReader(raw), storage.PutObjectOptions{
		Size:        int64(len(raw)),
		ContentType: "text/csv",
		Metadata: map[string]string{
			"original-filename": originalFilename,
			"subject-id":        subjectID,
		},
	}); err != nil {
		return nil, fmt.Errorf("archive sheet to storage: %w", err)
	}

	result := &SheetUploadResult{SheetPath: key}
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1

	for line := 0; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse sheet line %d: %w", line+1, err)
		}
		if line == 0 && strings.EqualFold(strings.TrimSpace(record[0]), "exam_number") {
			continue // header row
		}
		issues := s.applyRow(ctx, sub, record)
		if len(issues) == 0 {
			result.Accepted++
		} else {
			result.Rejected++
			result.Issues = append(result.Issues, issues...)
		}
	}

	if result.Accepted > 0 {
		s.invalidate(subjectID)
	}
	return result, nil
}

// applyRow validates and upserts one sheet row. A row with any issue is
// skipped entirely and its issues returned.
func (s *scoreService) applyRow(ctx context.Context, sub *model.ExamSubject, record []string) []scoring.ValidationIssue {
	examNumber := strings.TrimSpace(record[0])
	if examNumber == "" {
		return []scoring.ValidationIssue{{
			Kind:   scoring.IssueUnknownCandidate,
			Detail: "row has no exam number",
		}}
	}

	if _, err := s.candidates.FindByExamNumber(ctx, examNumber); err != nil {
		return []scoring.ValidationIssue{{
			ExamNumber: examNumber,
			Kind:       scoring.IssueUnknownCandidate,
			Detail:     "no candidate registered under this exam number",
		}}
	}

	components := []string{"objective", "essay", "practical"}
	raws := make([]*float64, len(components))
	for i := range components {
		cell := ""
		if i+1 < len(record) {
			cell = strings.TrimSpace(record[i+1])
		}
		if cell == "" {
			continue // missing, handled by the pipeline
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return []scoring.ValidationIssue{{
				ExamNumber: examNumber,
				Component:  components[i],
				Kind:       scoring.IssueOutOfRange,
				Detail:     fmt.Sprintf("%q is not a number", cell),
			}}
		}
		raws[i] = &v
	}

	sc := &model.SubjectScore{
		ID:           uuid.New().String(),
		SubjectID:    sub.ID,
		ExamNumber:   examNumber,
		RawObjective: raws[0],
		RawEssay:     raws[1],
		RawPractical: raws[2],
		UpdatedAt:    time.Now().UTC(),
	}
	if issues := s.pipeline(sub, sc); len(issues) > 0 {
		return issues
	}

	if _, err := s.scores.Upsert(ctx, sc); err != nil {
		return []scoring.ValidationIssue{{
			ExamNumber: examNumber,
			Kind:       scoring.IssueOutOfRange,
			Detail:     fmt.Sprintf("store score: %v", err),
		}}
	}
	return nil
}

// pipeline normalizes the raw scores and assigns the provisional grade
// against the criterion boundaries. Invalid rows carry no grade.
func (s *scoreService) pipeline(sub *model.ExamSubject, sc *model.SubjectScore) []scoring.ValidationIssue {
	issues := scoring.Normalize(sub, sc)
	sc.Grade = ""
	if sc.Valid {
		if bs, err := scoring.CriterionBoundaries(); err == nil {
			sc.Grade = string(bs.GradeFor(sc.Total))
		}
	}
	return issues
}

func (s *scoreService) List(ctx context.Context, subjectID string, limit, offset int) (*ScoreListResult, error) {
	if _, err := s.subject(ctx, subjectID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.scores.ListBySubject(ctx, subjectID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ScoreListResult{Items: res.Items, Total: res.Total}, nil
}

// Issues re-runs the validation pipeline over every stored score flagged
// invalid and collects the findings.
func (s *scoreService) Issues(ctx context.Context, subjectID string) ([]scoring.ValidationIssue, error) {
	sub, err := s.subject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	issues := make([]scoring.ValidationIssue, 0)
	for offset := 0; ; offset += issuesPageSize {
		page, err := s.scores.ListBySubject(ctx, subjectID, repository.PageQuery{Limit: issuesPageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		for i := range page.Items {
			sc := page.Items[i]
			if sc.Valid {
				continue
			}
			issues = append(issues, scoring.Normalize(sub, &sc)...)
		}
		if offset+issuesPageSize >= page.Total {
			break
		}
	}
	return issues, nil
}

func (s *scoreService) subject(ctx context.Context, subjectID string) (*model.ExamSubject, error) {
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

func (s *scoreService) invalidate(subjectID string) {
	if s.inv != nil {
		s.inv.Invalidate(subjectID)
	}
}
