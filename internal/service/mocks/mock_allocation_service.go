package mocks

import (
	"context"

	"examapi/internal/model"
	"examapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAllocationService struct {
	mock.Mock
}

func (m *MockAllocationService) RegisterExaminer(ctx context.Context, e *model.Examiner) (*model.Examiner, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Examiner), args.Error(1)
}

func (m *MockAllocationService) ListExaminers(ctx context.Context, limit, offset int) (*service.ExaminerListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExaminerListResult), args.Error(1)
}

func (m *MockAllocationService) Allocate(ctx context.Context, subjectID string, scripts int) ([]model.Allocation, error) {
	args := m.Called(ctx, subjectID, scripts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Allocation), args.Error(1)
}

func (m *MockAllocationService) ListAllocations(ctx context.Context, subjectID string) ([]model.Allocation, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Allocation), args.Error(1)
}

func (m *MockAllocationService) Deallocate(ctx context.Context, subjectID string) error {
	args := m.Called(ctx, subjectID)
	return args.Error(0)
}
