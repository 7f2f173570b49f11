package mocks

import (
	"context"

	"examapi/internal/model"
	"examapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockSubjectService struct {
	mock.Mock
}

func (m *MockSubjectService) Create(ctx context.Context, s *model.ExamSubject) (*model.ExamSubject, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExamSubject), args.Error(1)
}

func (m *MockSubjectService) Get(ctx context.Context, id string) (*model.ExamSubject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExamSubject), args.Error(1)
}

func (m *MockSubjectService) List(ctx context.Context, limit, offset int) (*service.SubjectListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubjectListResult), args.Error(1)
}
