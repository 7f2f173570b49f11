package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"examapi/internal/model"
	"examapi/internal/service"
)

type registerExaminerRequest struct {
	Name      string `json:"name" validate:"required"`
	Specialty string `json:"specialty" validate:"required"`
	Capacity  int    `json:"capacity" validate:"required,gt=0"`
	Venue     string `json:"venue"`
}

type allocateRequest struct {
	Scripts int `json:"scripts" validate:"required,gt=0"`
}

// RegisterExaminer creates an examiner record from a JSON body.
func RegisterExaminer(svc service.AllocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerExaminerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		if err := validate.Struct(&req); err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", "request body failed validation")
		}

		ex, err := svc.RegisterExaminer(c.UserContext(), &model.Examiner{
			Name:      req.Name,
			Specialty: req.Specialty,
			Capacity:  req.Capacity,
			Venue:     req.Venue,
		})
		if err != nil {
			if errors.Is(err, service.ErrInvalidCapacity) {
				return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_CAPACITY", "capacity must be positive")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(ex)
	}
}

// ListExaminers returns an examiner page with limit & offset.
func ListExaminers(svc service.AllocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.ListExaminers(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// AllocateScripts distributes a subject's scripts over matching examiners.
// A fresh allocation round replaces the previous one; an infeasible request
// leaves the previous round untouched.
func AllocateScripts(svc service.AllocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjectID := c.Params("id")
		if _, err := uuid.Parse(subjectID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid subject id format")
		}

		var req allocateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		if err := validate.Struct(&req); err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", "request body failed validation")
		}

		allocs, err := svc.Allocate(c.UserContext(), subjectID, req.Scripts)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSubjectNotFound):
				return writeError(c, fiber.StatusNotFound, "SUBJECT_NOT_FOUND", "subject not found")
			case errors.Is(err, service.ErrInvalidScriptCount):
				return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_SCRIPT_COUNT", "script count must be positive")
			case errors.Is(err, service.ErrInsufficientExaminers):
				return writeError(c, fiber.StatusConflict, "INSUFFICIENT_EXAMINERS", "not enough examiner capacity for subject")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": allocs, "total": len(allocs)})
	}
}

// ListAllocations returns the current allocation round for a subject.
func ListAllocations(svc service.AllocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjectID := c.Params("id")
		if _, err := uuid.Parse(subjectID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid subject id format")
		}

		allocs, err := svc.ListAllocations(c.UserContext(), subjectID)
		if err != nil {
			if errors.Is(err, service.ErrSubjectNotFound) {
				return writeError(c, fiber.StatusNotFound, "SUBJECT_NOT_FOUND", "subject not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"data": allocs, "total": len(allocs)})
	}
}

// Deallocate clears the allocation round for a subject.
func Deallocate(svc service.AllocationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjectID := c.Params("id")
		if _, err := uuid.Parse(subjectID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid subject id format")
		}

		if err := svc.Deallocate(c.UserContext(), subjectID); err != nil {
			if errors.Is(err, service.ErrSubjectNotFound) {
				return writeError(c, fiber.StatusNotFound, "SUBJECT_NOT_FOUND", "subject not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
