package mocks

import (
	"context"

	"examapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockCertificateRepository struct {
	mock.Mock
}

func (m *MockCertificateRepository) Create(ctx context.Context, c *model.Certificate) (*model.Certificate, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindByNumber(ctx context.Context, number string) (*model.Certificate, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) UpdateStatus(ctx context.Context, number, status string) error {
	args := m.Called(ctx, number, status)
	return args.Error(0)
}
