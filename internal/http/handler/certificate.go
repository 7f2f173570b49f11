package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"examapi/internal/service"
)

// IssueCertificate stores a certificate PDF (multipart field: pdf) with
// exam_number and exam_year form values, creating the record in pending
// status.
func IssueCertificate(svc service.CertificateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		examNumber := c.FormValue("exam_number")
		if examNumber == "" {
			return writeError(c, fiber.StatusBadRequest, "EXAM_NUMBER_REQUIRED", "exam number is required")
		}
		examYear, err := strconv.Atoi(c.FormValue("exam_year"))
		if err != nil || examYear < 1900 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_EXAM_YEAR", "invalid exam year")
		}

		fh, err := c.FormFile("pdf")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "pdf file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		cert, err := svc.Issue(c.UserContext(), examNumber, examYear, f, fh.Size)
		if err != nil {
			if errors.Is(err, service.ErrCandidateNotFound) {
				return writeError(c, fiber.StatusNotFound, "CANDIDATE_NOT_FOUND", "candidate not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(cert)
	}
}

// ConfirmCertificate verifies a certificate by number. A pending
// certificate is promoted to confirmed and the response carries a
// time-limited download URL for the stored document.
func ConfirmCertificate(svc service.CertificateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("number")
		if number == "" {
			return writeError(c, fiber.StatusBadRequest, "NUMBER_REQUIRED", "certificate number is required")
		}

		res, err := svc.Confirm(c.UserContext(), number)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrCertificateNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "certificate not found")
			case errors.Is(err, service.ErrCertificateRevoked):
				return writeError(c, fiber.StatusGone, "CERTIFICATE_REVOKED", "certificate has been revoked")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(res)
	}
}

// RevokeCertificate marks a certificate revoked.
func RevokeCertificate(svc service.CertificateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("number")
		if number == "" {
			return writeError(c, fiber.StatusBadRequest, "NUMBER_REQUIRED", "certificate number is required")
		}

		if err := svc.Revoke(c.UserContext(), number); err != nil {
			if errors.Is(err, service.ErrCertificateNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "certificate not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
