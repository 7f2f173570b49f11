package handler

import (
	"database/sql"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"examapi/internal/model"
	"examapi/internal/service"
)

type createSubjectRequest struct {
	Code            string  `json:"code" validate:"required,uppercase,min=2,max=6"`
	Name            string  `json:"name" validate:"required"`
	MaxObjective    float64 `json:"max_objective" validate:"required,gt=0"`
	MaxEssay        float64 `json:"max_essay" validate:"required,gt=0"`
	MaxPractical    float64 `json:"max_practical" validate:"gte=0"`
	ObjectiveWeight float64 `json:"objective_weight" validate:"gte=0,lte=100"`
	EssayWeight     float64 `json:"essay_weight" validate:"gte=0,lte=100"`
	PracticalWeight float64 `json:"practical_weight" validate:"gte=0,lte=100"`
	HasPractical    bool    `json:"has_practical"`
}

// CreateSubject stores a subject marking configuration.
func CreateSubject(svc service.SubjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createSubjectRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed request body")
		}
		if err := validate.Struct(&req); err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", "request body failed validation")
		}

		sub, err := svc.Create(c.UserContext(), &model.ExamSubject{
			Code:            req.Code,
			Name:            req.Name,
			MaxObjective:    req.MaxObjective,
			MaxEssay:        req.MaxEssay,
			MaxPractical:    req.MaxPractical,
			ObjectiveWeight: req.ObjectiveWeight,
			EssayWeight:     req.EssayWeight,
			PracticalWeight: req.PracticalWeight,
			HasPractical:    req.HasPractical,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidWeights):
				return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_WEIGHTS", "component weights must sum to 100")
			case errors.Is(err, service.ErrInvalidMaxima):
				return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_MAXIMA", "component maxima must be positive")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(sub)
	}
}

// GetSubject returns one subject by ID.
func GetSubject(svc service.SubjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		sub, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrSubjectNotFound) || errors.Is(err, sql.ErrNoRows) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "subject not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(sub)
	}
}

// ListSubjects returns a subject page with limit & offset.
func ListSubjects(svc service.SubjectService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}
