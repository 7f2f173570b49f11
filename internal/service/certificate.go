package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"examapi/internal/model"
	"examapi/internal/repository"
	"examapi/internal/storage"
)

var (
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrCertificateRevoked  = errors.New("certificate has been revoked")
)

// presignExpiry is how long a confirmation download link stays valid.
const presignExpiry = 15 * time.Minute

// ConfirmationResult is what a public certificate check returns: the
// certificate status, the identity it was issued to and a time-limited
// download URL for the stored document.
type ConfirmationResult struct {
	Number      string    `json:"number"`
	Status      string    `json:"status"`
	ExamNumber  string    `json:"exam_number"`
	ExamYear    int       `json:"exam_year"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DownloadURL string    `json:"download_url,omitempty"`
	CheckedAt   time.Time `json:"checked_at"`
}

// CertificateService defines the use cases for certificate issuance and
// confirmation.
type CertificateService interface {
	// Issue stores the certificate document and creates the record in
	// pending status; the stored object is removed if the DB insert fails.
	Issue(ctx context.Context, examNumber string, examYear int, pdf io.Reader, size int64) (*model.Certificate, error)

	// Confirm verifies a certificate by number. A pending certificate is
	// promoted to confirmed; a revoked one is rejected.
	Confirm(ctx context.Context, number string) (*ConfirmationResult, error)

	// Revoke marks a certificate revoked.
	Revoke(ctx context.Context, number string) error
}

type certificateService struct {
	store      storage.Storage
	certs      repository.CertificateRepository
	candidates repository.CandidateRepository
}

// NewCertificateService constructs a new CertificateService.
func NewCertificateService(store storage.Storage, certs repository.CertificateRepository, candidates repository.CandidateRepository) CertificateService {
	return &certificateService{store: store, certs: certs, candidates: candidates}
}

func (s *certificateService) Issue(ctx context.Context, examNumber string, examYear int, pdf io.Reader, size int64) (*model.Certificate, error) {
	if pdf == nil {
		return nil, ErrReaderNil
	}
	if examNumber == "" {
		return nil, ErrExamNumberRequired
	}
	if _, err := s.candidates.FindByExamNumber(ctx, examNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}

	number := certificateNumber(examYear)
	key := fmt.Sprintf("certificates/%s.pdf", number)

	if _, err := s.store.Put(ctx, key, pdf, storage.PutObjectOptions{
		Size:        size,
		ContentType: "application/pdf",
		Metadata: map[string]string{
			"exam-number": examNumber,
		},
	}); err != nil {
		return nil, fmt.Errorf("store certificate document: %w", err)
	}

	cert := &model.Certificate{
		ID:         uuid.New().String(),
		Number:     number,
		ExamNumber: examNumber,
		ExamYear:   examYear,
		Status:     model.CertificateStatusPending,
		PDFPath:    key,
		CreatedAt:  time.Now().UTC(),
	}
	stored, err := s.certs.Create(ctx, cert)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("certificate record failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("certificate record failed: %w", err)
	}
	return stored, nil
}

func (s *certificateService) Confirm(ctx context.Context, number string) (*ConfirmationResult, error) {
	cert, err := s.find(ctx, number)
	if err != nil {
		return nil, err
	}
	if cert.Status == model.CertificateStatusRevoked {
		return nil, ErrCertificateRevoked
	}

	cand, err := s.candidates.FindByExamNumber(ctx, cert.ExamNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}

	if cert.Status == model.CertificateStatusPending {
		if err := s.certs.UpdateStatus(ctx, number, model.CertificateStatusConfirmed); err != nil {
			return nil, fmt.Errorf("confirm certificate: %w", err)
		}
		cert.Status = model.CertificateStatusConfirmed
	}

	url, err := s.store.PresignGet(ctx, cert.PDFPath, presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign certificate document: %w", err)
	}

	return &ConfirmationResult{
		Number:      cert.Number,
		Status:      cert.Status,
		ExamNumber:  cert.ExamNumber,
		ExamYear:    cert.ExamYear,
		FirstName:   cand.FirstName,
		LastName:    cand.LastName,
		DownloadURL: url,
		CheckedAt:   time.Now().UTC(),
	}, nil
}

func (s *certificateService) Revoke(ctx context.Context, number string) error {
	if _, err := s.find(ctx, number); err != nil {
		return err
	}
	return s.certs.UpdateStatus(ctx, number, model.CertificateStatusRevoked)
}

func (s *certificateService) find(ctx context.Context, number string) (*model.Certificate, error) {
	if number == "" {
		return nil, ErrCertificateNotFound
	}
	cert, err := s.certs.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCertificateNotFound
		}
		return nil, err
	}
	return cert, nil
}

// certificateNumber builds a public certificate number: year plus an opaque
// unique suffix.
func certificateNumber(examYear int) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:12]
	return fmt.Sprintf("CERT-%d-%s", examYear, suffix)
}
