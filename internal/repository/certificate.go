package repository

import (
	"context"

	"examapi/internal/model"
)

// CertificateRepository defines data access for issued certificates.
type CertificateRepository interface {
	// Create inserts a new certificate record and returns the stored row.
	Create(ctx context.Context, c *model.Certificate) (*model.Certificate, error)

	// FindByNumber returns a certificate by its public certificate number.
	FindByNumber(ctx context.Context, number string) (*model.Certificate, error)

	// UpdateStatus sets the status of a certificate by number.
	UpdateStatus(ctx context.Context, number, status string) error
}
