package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/learnroute-api/internal/dto"
	"github.com/noah-isme/learnroute-api/internal/service"
	"github.com/noah-isme/learnroute-api/internal/utils"
	"github.com/noah-isme/learnroute-api/internal/validation"
)

// ResourceStatusHandler exposes per user resource progress endpoints.
type ResourceStatusHandler struct {
	service   service.ResourceStatusService
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewResourceStatusHandler constructs a resource status handler.
func NewResourceStatusHandler(service service.ResourceStatusService, validator *validation.Validator, logger zerolog.Logger) *ResourceStatusHandler {
	return &ResourceStatusHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "resource_status_handler").Logger(),
	}
}

// Register wires resource status routes. Listing is per user only.
func (h *ResourceStatusHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("/user/:userId", h.listByUser)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *ResourceStatusHandler) create(c *fiber.Ctx) error {
	var req dto.ResourceStatusCreateRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to create resource status")
	}
	if err := h.validator.ResourceStatusCreate(&req); err != nil {
		return respondError(c, h.logger, err, "Failed to create resource status")
	}

	status, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create resource status")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "User resource status created successfully", status)
}

func (h *ResourceStatusHandler) listByUser(c *fiber.Ctx) error {
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
		return respondError(c, h.logger, err, "Failed to retrieve resource statuses")
	}
	return utils.SendPaginated(c, "User resource statuses retrieved successfully", result.Items, toPagination(result.Pagination))
}

func (h *ResourceStatusHandler) get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid resource status ID format")
	}

	status, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve resource status")
	}
	return utils.SendSuccess(c, "User resource status retrieved successfully", status)
}

func (h *ResourceStatusHandler) update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid resource status ID format")
	}

	var req dto.ResourceStatusUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to update resource status")
	}
	if err := h.validator.ResourceStatusUpdate(&req); err != nil {
		return respondError(c, h.logger, err, "Failed to update resource status")
	}

	status, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update resource status")
	}
	return utils.SendSuccess(c, "User resource status updated successfully", status)
}

func (h *ResourceStatusHandler) delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid resource status ID format")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete resource status")
	}
	return utils.SendSuccess(c, "User resource status deleted successfully", nil)
}
