package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/learnroute-api/internal/dto"
	"github.com/noah-isme/learnroute-api/internal/service"
	"github.com/noah-isme/learnroute-api/internal/utils"
	"github.com/noah-isme/learnroute-api/internal/validation"
)

// ActivityLogHandler exposes user activity log endpoints.
type ActivityLogHandler struct {
	service   service.ActivityLogService
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewActivityLogHandler constructs an activity log handler.
func NewActivityLogHandler(service service.ActivityLogService, validator *validation.Validator, logger zerolog.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "activity_log_handler").Logger(),
	}
}

// Register wires activity log routes.
func (h *ActivityLogHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *ActivityLogHandler) create(c *fiber.Ctx) error {
	var req dto.ActivityLogCreateRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to create activity log")
	}
	if err := h.validator.ActivityLogCreate(&req); err != nil {
		return respondError(c, h.logger, err, "Failed to create activity log")
	}

	entry, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create activity log")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "Activity log created successfully", entry)
}

func (h *ActivityLogHandler) list(c *fiber.Ctx) error {
	query, err := listQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	userID, ok := queryID(c, "userId")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid user ID format")
	}

	req := dto.ActivityLogListRequest{
		ListQuery: query,
		UserID:    userID,
		EventType: strings.TrimSpace(c.Query("eventType")),
	}
	result, err := h.service.List(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve activity logs")
	}
	return utils.SendPaginated(c, "Activity logs retrieved successfully", result.Items, toPagination(result.Pagination))
}

func (h *ActivityLogHandler) get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid activity log ID format")
	}

	entry, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve activity log")
	}
	return utils.SendSuccess(c, "Activity log retrieved successfully", entry)
}

func (h *ActivityLogHandler) update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid activity log ID format")
	}

	var req dto.ActivityLogUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to update activity log")
	}
	if err := h.validator.ActivityLogUpdate(&req); err != nil {
		return respondError(c, h.logger, err, "Failed to update activity log")
	}

	entry, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update activity log")
	}
	return utils.SendSuccess(c, "Activity log updated successfully", entry)
}

func (h *ActivityLogHandler) delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid activity log ID format")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete activity log")
	}
	return utils.SendSuccess(c, "Activity log deleted successfully", nil)
}
