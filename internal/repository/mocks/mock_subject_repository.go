package mocks

import (
	"context"

	"examapi/internal/model"
	"examapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockSubjectRepository struct {
	mock.Mock
}

func (m *MockSubjectRepository) Create(ctx context.Context, s *model.ExamSubject) (*model.ExamSubject, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExamSubject), args.Error(1)
}

func (m *MockSubjectRepository) FindByID(ctx context.Context, id string) (*model.ExamSubject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExamSubject), args.Error(1)
}

func (m *MockSubjectRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ExamSubject], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ExamSubject]), args.Error(1)
}
