package mocks

import (
	"context"
	"io"

	"examapi/internal/model"
	"examapi/internal/scoring"
	"examapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockScoreService struct {
	mock.Mock
}

func (m *MockScoreService) Enter(ctx context.Context, subjectID, examNumber string, rawObjective, rawEssay, rawPractical *float64) (*model.SubjectScore, []scoring.ValidationIssue, error) {
	args := m.Called(ctx, subjectID, examNumber, rawObjective, rawEssay, rawPractical)
	var sc *model.SubjectScore
	if args.Get(0) != nil {
		sc = args.Get(0).(*model.SubjectScore)
	}
	var issues []scoring.ValidationIssue
	if args.Get(1) != nil {
		issues = args.Get(1).([]scoring.ValidationIssue)
	}
	return sc, issues, args.Error(2)
}

func (m *MockScoreService) UploadSheet(ctx context.Context, subjectID string, r io.Reader, originalFilename string, size int64) (*service.SheetUploadResult, error) {
	args := m.Called(ctx, subjectID, r, originalFilename, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SheetUploadResult), args.Error(1)
}

func (m *MockScoreService) List(ctx context.Context, subjectID string, limit, offset int) (*service.ScoreListResult, error) {
	args := m.Called(ctx, subjectID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScoreListResult), args.Error(1)
}

func (m *MockScoreService) Issues(ctx context.Context, subjectID string) ([]scoring.ValidationIssue, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scoring.ValidationIssue), args.Error(1)
}
