package handler

import (
	"database/sql"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"examapi/internal/model"
	"examapi/internal/scoring"
	"examapi/internal/service"
)

type enterScoreRequest struct {
	Objective *float64 `json:"objective"`
	Essay     *float64 `json:"essay"`
	Practical *float64 `json:"practical"`
}

// enterScoreResponse carries the stored row together with any validation
// issues; a row with issues is stored but flagged invalid.
type enterScoreResponse struct {
	Score  *model.SubjectScore       `json:"score"`
	Issues []scoring.ValidationIssue `json:"issues"`
}

// EnterScore records or replaces one candidate's raw component scores.
func EnterScore(svc service.ScoreService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjectID := c.Params("id")
		if _, err := uuid.Parse(subjectID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid subject id format")
		}
		examNumber := c.Params("examNumber")
		if examNumber == "" {
			return writeError(c, fiber.StatusBadRequest, "EXAM_NUMBER_REQUIRED", "exam number is required")
		}

		var req enterScoreRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}

		score, issues, err := svc.Enter(c.UserContext(), subjectID, examNumber, req.Objective, req.Essay, req.Practical)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSubjectNotFound):
				return writeError(c, fiber.StatusNotFound, "SUBJECT_NOT_FOUND", "subject not found")
			case errors.Is(err, service.ErrCandidateNotFound):
				return writeError(c, fiber.StatusNotFound, "CANDIDATE_NOT_FOUND", "candidate not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(enterScoreResponse{Score: score, Issues: issues})
	}
}

// UploadScoreSheet ingests a CSV score sheet (multipart field: sheet).
// Rejected rows are reported, never fatal.
func UploadScoreSheet(svc service.ScoreService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjectID := c.Params("id")
		if _, err := uuid.Parse(subjectID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid subject id format")
		}

		fh, err := c.FormFile("sheet")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "sheet file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		res, err := svc.UploadSheet(c.UserContext(), subjectID, f, fh.Filename, fh.Size)
		if err != nil {
			if errors.Is(err, service.ErrSubjectNotFound) {
				return writeError(c, fiber.StatusNotFound, "SUBJECT_NOT_FOUND", "subject not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// ListScores returns a subject's score page with limit & offset.
func ListScores(svc service.ScoreService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjectID := c.Params("id")
		if _, err := uuid.Parse(subjectID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid subject id format")
		}
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), subjectID, limit, offset)
		if err != nil {
			if errors.Is(err, service.ErrSubjectNotFound) || errors.Is(err, sql.ErrNoRows) {
				return writeError(c, fiber.StatusNotFound, "SUBJECT_NOT_FOUND", "subject not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// ListScoreIssues reports validation issues of the invalid scores stored
// for a subject.
func ListScoreIssues(svc service.ScoreService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjectID := c.Params("id")
		if _, err := uuid.Parse(subjectID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid subject id format")
		}

		issues, err := svc.Issues(c.UserContext(), subjectID)
		if err != nil {
			if errors.Is(err, service.ErrSubjectNotFound) {
				return writeError(c, fiber.StatusNotFound, "SUBJECT_NOT_FOUND", "subject not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"data": issues, "total": len(issues)})
	}
}
