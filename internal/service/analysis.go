package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"examapi/internal/repository"
	"examapi/internal/scoring"
)

var ErrNoScoresForSubject = errors.New("subject has no valid scores to analyze")

// Invalidator drops cached analysis results for a subject. Score writes go
// through it so stale boundaries are never served.
type Invalidator interface {
	Invalidate(subjectID string)
}

// analysisCacheTTL bounds staleness even without explicit invalidation,
// e.g. when scores are loaded directly into the database.
const analysisCacheTTL = 5 * time.Minute

// ScoresAnalysisService runs the grade-boundary engine over a subject's
// stored scores.
type ScoresAnalysisService interface {
	// Analyze computes boundaries under the given method and grades the
	// subject's cohort against them.
	Analyze(ctx context.Context, subjectID string, method scoring.Method) (*scoring.Distribution, error)

	// Impact compares two boundary methods on the subject's cohort.
	Impact(ctx context.Context, subjectID string, base, alt scoring.Method) (*scoring.Impact, error)

	Invalidator
}

type analysisService struct {
	scores   repository.ScoreRepository
	subjects repository.SubjectRepository
	cache    *ttlCache
}

// NewScoresAnalysisService constructs a new ScoresAnalysisService.
func NewScoresAnalysisService(scores repository.ScoreRepository, subjects repository.SubjectRepository) ScoresAnalysisService {
	return &analysisService{
		scores:   scores,
		subjects: subjects,
		cache:    newTTLCache(analysisCacheTTL),
	}
}

func (s *analysisService) Analyze(ctx context.Context, subjectID string, method scoring.Method) (*scoring.Distribution, error) {
	key := subjectID + "/analyze/" + string(method)
	if v, ok := s.cache.get(key); ok {
		return v.(*scoring.Distribution), nil
	}

	totals, err := s.totals(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	dist, err := scoring.Analyze(method, totals)
	if err != nil {
		if errors.Is(err, scoring.ErrNoScores) {
			return nil, ErrNoScoresForSubject
		}
		return nil, err
	}

	s.cache.set(key, dist)
	return dist, nil
}

func (s *analysisService) Impact(ctx context.Context, subjectID string, base, alt scoring.Method) (*scoring.Impact, error) {
	key := subjectID + "/impact/" + string(base) + ":" + string(alt)
	if v, ok := s.cache.get(key); ok {
		return v.(*scoring.Impact), nil
	}

	totals, err := s.totals(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	imp, err := scoring.CompareMethods(totals, base, alt)
	if err != nil {
		if errors.Is(err, scoring.ErrNoScores) {
			return nil, ErrNoScoresForSubject
		}
		return nil, err
	}

	s.cache.set(key, imp)
	return imp, nil
}

// Invalidate drops every cached result for the subject.
func (s *analysisService) Invalidate(subjectID string) {
	s.cache.invalidatePrefix(subjectID + "/")
}

func (s *analysisService) totals(ctx context.Context, subjectID string) ([]float64, error) {
	if subjectID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.subjects.FindByID(ctx, subjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	totals, err := s.scores.TotalsBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return nil, ErrNoScoresForSubject
	}
	return totals, nil
}
