package postgres

import (
	"context"
	"database/sql"

	"examapi/internal/model"
	"examapi/internal/repository"
)

// CertificatePostgres is a PostgreSQL implementation of repository.CertificateRepository.
type CertificatePostgres struct {
	db *sql.DB
}

// NewCertificatePostgres creates a new CertificatePostgres repository.
func NewCertificatePostgres(db *sql.DB) *CertificatePostgres {
	return &CertificatePostgres{db: db}
}

var _ repository.CertificateRepository = (*CertificatePostgres)(nil)

const certificateColumns = `id, number, exam_number, exam_year, status, pdf_path, created_at`

func scanCertificate(row interface{ Scan(...any) error }) (*model.Certificate, error) {
	var c model.Certificate
	if err := row.Scan(
		&c.ID,
		&c.Number,
		&c.ExamNumber,
		&c.ExamYear,
		&c.Status,
		&c.PDFPath,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new certificate row and returns the stored record.
func (r *CertificatePostgres) Create(ctx context.Context, c *model.Certificate) (*model.Certificate, error) {
	const q = `
		INSERT INTO certificates (id, number, exam_number, exam_year, status, pdf_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + certificateColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.Number,
		c.ExamNumber,
		c.ExamYear,
		c.Status,
		c.PDFPath,
		c.CreatedAt,
	)
	return scanCertificate(row)
}

// FindByNumber fetches a certificate by its public number.
func (r *CertificatePostgres) FindByNumber(ctx context.Context, number string) (*model.Certificate, error) {
	const q = `SELECT ` + certificateColumns + ` FROM certificates WHERE number = $1`
	return scanCertificate(r.db.QueryRowContext(ctx, q, number))
}

// UpdateStatus sets the status of a certificate by number.
func (r *CertificatePostgres) UpdateStatus(ctx context.Context, number, status string) error {
	const q = `UPDATE certificates SET status = $2 WHERE number = $1`
	res, err := r.db.ExecContext(ctx, q, number, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
