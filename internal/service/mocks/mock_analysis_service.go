package mocks

import (
	"context"

	"examapi/internal/scoring"

	"github.com/stretchr/testify/mock"
)

type MockScoresAnalysisService struct {
	mock.Mock
}

func (m *MockScoresAnalysisService) Analyze(ctx context.Context, subjectID string, method scoring.Method) (*scoring.Distribution, error) {
	args := m.Called(ctx, subjectID, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scoring.Distribution), args.Error(1)
}

func (m *MockScoresAnalysisService) Impact(ctx context.Context, subjectID string, base, alt scoring.Method) (*scoring.Impact, error) {
	args := m.Called(ctx, subjectID, base, alt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scoring.Impact), args.Error(1)
}

func (m *MockScoresAnalysisService) Invalidate(subjectID string) {
	m.Called(subjectID)
}
