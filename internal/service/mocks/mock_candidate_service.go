package mocks

import (
	"context"
	"io"

	"examapi/internal/model"
	"examapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockCandidateService struct {
	mock.Mock
}

func (m *MockCandidateService) Register(ctx context.Context, c *model.Candidate) (*model.Candidate, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockCandidateService) Get(ctx context.Context, id string) (*model.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockCandidateService) GetByExamNumber(ctx context.Context, examNumber string) (*model.Candidate, error) {
	args := m.Called(ctx, examNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockCandidateService) List(ctx context.Context, limit, offset int) (*service.CandidateListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CandidateListResult), args.Error(1)
}

func (m *MockCandidateService) UploadPhoto(ctx context.Context, id string, r io.Reader, originalFilename string, contentType string, size int64) (*model.Candidate, error) {
	args := m.Called(ctx, id, r, originalFilename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Candidate), args.Error(1)
}

func (m *MockCandidateService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
