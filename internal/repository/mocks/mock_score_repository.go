package mocks

import (
	"context"

	"examapi/internal/model"
	"examapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) Upsert(ctx context.Context, sc *model.SubjectScore) (*model.SubjectScore, error) {
	args := m.Called(ctx, sc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubjectScore), args.Error(1)
}

func (m *MockScoreRepository) FindBySubjectAndExamNumber(ctx context.Context, subjectID, examNumber string) (*model.SubjectScore, error) {
	args := m.Called(ctx, subjectID, examNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SubjectScore), args.Error(1)
}

func (m *MockScoreRepository) ListBySubject(ctx context.Context, subjectID string, pq repository.PageQuery) (*repository.PageResult[model.SubjectScore], error) {
	args := m.Called(ctx, subjectID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.SubjectScore]), args.Error(1)
}

func (m *MockScoreRepository) TotalsBySubject(ctx context.Context, subjectID string) ([]float64, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}
