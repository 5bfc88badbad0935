package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/learnroute-api/internal/dto"
	"github.com/noah-isme/learnroute-api/internal/service"
	"github.com/noah-isme/learnroute-api/internal/utils"
	"github.com/noah-isme/learnroute-api/internal/validation"
)

// EnrollmentHandler exposes skill path enrolment endpoints.
type EnrollmentHandler struct {
	service   service.EnrollmentService
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewEnrollmentHandler constructs an enrolment handler.
func NewEnrollmentHandler(service service.EnrollmentService, validator *validation.Validator, logger zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "enrollment_handler").Logger(),
	}
}

// Register wires enrolment routes. Listing is per user only.
func (h *EnrollmentHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("/user/:userId", h.listByUser)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *EnrollmentHandler) create(c *fiber.Ctx) error {
	var req dto.EnrollmentCreateRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to create enrollment")
	}
	if err := h.validator.EnrollmentCreate(&req); err != nil {
		return respondError(c, h.logger, err, "Failed to create enrollment")
	}

	enrollment, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create enrollment")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "Enrollment created successfully", enrollment)
}

func (h *EnrollmentHandler) listByUser(c *fiber.Ctx) error {
	userID, ok := pathID(c, "userId")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid user ID format")
	}
	query, err := listQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.ListByUser(c.UserContext(), userID, query)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve enrollments")
	}
	return utils.SendPaginated(c, "Enrollments retrieved successfully", result.Items, toPagination(result.Pagination))
}

func (h *EnrollmentHandler) get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid enrollment ID format")
	}

	enrollment, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve enrollment")
	}
	return utils.SendSuccess(c, "Enrollment retrieved successfully", enrollment)
}

func (h *EnrollmentHandler) update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid enrollment ID format")
	}

	var req dto.EnrollmentUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to update enrollment")
	}
	if err := h.validator.EnrollmentUpdate(&req); err != nil {
		return respondError(c, h.logger, err, "Failed to update enrollment")
	}

	enrollment, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update enrollment")
	}
	return utils.SendSuccess(c, "Enrollment updated successfully", enrollment)
}

func (h *EnrollmentHandler) delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid enrollment ID format")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete enrollment")
	}
	return utils.SendSuccess(c, "Enrollment deleted successfully", nil)
}
