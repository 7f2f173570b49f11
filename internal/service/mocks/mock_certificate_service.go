package mocks

import (
	"context"
	"io"

	"examapi/internal/model"
	"examapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockCertificateService struct {
	mock.Mock
}

func (m *MockCertificateService) Issue(ctx context.Context, examNumber string, examYear int, pdf io.Reader, size int64) (*model.Certificate, error) {
	args := m.Called(ctx, examNumber, examYear, pdf, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Certificate), args.Error(1)
}

func (m *MockCertificateService) Confirm(ctx context.Context, number string) (*service.ConfirmationResult, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConfirmationResult), args.Error(1)
}

func (m *MockCertificateService) Revoke(ctx context.Context, number string) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}
