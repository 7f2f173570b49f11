package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"examapi/internal/scoring"
	"examapi/internal/service"
)

// AnalyzeSubject runs the grade-boundary engine over a subject's cohort.
// The boundary method is selected with ?method=; percentile is the default.
func AnalyzeSubject(svc service.ScoresAnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjectID := c.Params("id")
		if _, err := uuid.Parse(subjectID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid subject id format")
		}

		method, err := scoring.ParseMethod(c.Query("method", string(scoring.MethodPercentile)))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "UNKNOWN_METHOD", "unknown scoring method")
		}

		dist, err := svc.Analyze(c.UserContext(), subjectID, method)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSubjectNotFound):
				return writeError(c, fiber.StatusNotFound, "SUBJECT_NOT_FOUND", "subject not found")
			case errors.Is(err, service.ErrNoScoresForSubject):
				return writeError(c, fiber.StatusNotFound, "NO_SCORES", "no valid scores recorded for subject")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(dist)
	}
}

// AnalysisImpact compares two boundary methods on the same cohort,
// selected with ?base= and ?alt=.
func AnalysisImpact(svc service.ScoresAnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjectID := c.Params("id")
		if _, err := uuid.Parse(subjectID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid subject id format")
		}

		base, err := scoring.ParseMethod(c.Query("base", string(scoring.MethodCriterion)))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "UNKNOWN_METHOD", "unknown base method")
		}
		alt, err := scoring.ParseMethod(c.Query("alt", string(scoring.MethodPercentile)))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "UNKNOWN_METHOD", "unknown alt method")
		}

		imp, err := svc.Impact(c.UserContext(), subjectID, base, alt)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSubjectNotFound):
				return writeError(c, fiber.StatusNotFound, "SUBJECT_NOT_FOUND", "subject not found")
			case errors.Is(err, service.ErrNoScoresForSubject):
				return writeError(c, fiber.StatusNotFound, "NO_SCORES", "no valid scores recorded for subject")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(imp)
	}
}
