package model

import "time"

// Certificate statuses.
const (
	CertificateStatusPending   = "pending"
	CertificateStatusConfirmed = "confirmed"
	CertificateStatusRevoked   = "revoked"
)

// Certificate links an issued certificate document to a candidate. PDFPath
// is the object storage key of the stored certificate document.
type Certificate struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	ExamNumber string    `json:"exam_number"`
	ExamYear   int       `json:"exam_year"`
	Status     string    `json:"status"`
	PDFPath    string    `json:"pdf_path"`
	CreatedAt  time.Time `json:"created_at"`
}
