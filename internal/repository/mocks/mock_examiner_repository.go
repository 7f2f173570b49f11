package mocks

import (
	"context"

	"examapi/internal/model"
	"examapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockExaminerRepository struct {
	mock.Mock
}

func (m *MockExaminerRepository) Create(ctx context.Context, e *model.Examiner) (*model.Examiner, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Examiner), args.Error(1)
}

func (m *MockExaminerRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Examiner], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Examiner]), args.Error(1)
}

func (m *MockExaminerRepository) ListBySpecialty(ctx context.Context, specialty string) ([]model.Examiner, error) {
	args := m.Called(ctx, specialty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Examiner), args.Error(1)
}

func (m *MockExaminerRepository) CreateAllocation(ctx context.Context, a *model.Allocation) (*model.Allocation, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Allocation), args.Error(1)
}

func (m *MockExaminerRepository) ListAllocationsBySubject(ctx context.Context, subjectID string) ([]model.Allocation, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Allocation), args.Error(1)
}

func (m *MockExaminerRepository) DeleteAllocationsBySubject(ctx context.Context, subjectID string) error {
	args := m.Called(ctx, subjectID)
	return args.Error(0)
}
