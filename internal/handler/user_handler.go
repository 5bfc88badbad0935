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

// UserHandler exposes user account endpoints.
type UserHandler struct {
	service   service.UserService
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewUserHandler constructs a user handler.
func NewUserHandler(service service.UserService, validator *validation.Validator, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register wires user routes. createGuards run before sign up, typically a rate limiter.
func (h *UserHandler) Register(router fiber.Router, createGuards ...fiber.Handler) {
	router.Post("", guarded(createGuards, h.create)...)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *UserHandler) create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to create user")
	}
	if err := h.validator.UserCreate(&req); err != nil {
		return respondError(c, h.logger, err, "Failed to create user")
	}

	user, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create user")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "User created successfully", user)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	query, err := listQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	req := dto.UserListRequest{
		ListQuery: query,
		Role:      strings.ToLower(strings.TrimSpace(c.Query("role"))),
	}
	result, err := h.service.List(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve users")
	}
	return utils.SendPaginated(c, "Users retrieved successfully", result.Items, toPagination(result.Pagination))
}

func (h *UserHandler) get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid user ID format")
	}

	user, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve user")
	}
	return utils.SendSuccess(c, "User retrieved successfully", user)
}

func (h *UserHandler) update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid user ID format")
	}

	var req dto.UserUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to update user")
	}
	if err := h.validator.UserUpdate(&req); err != nil {
		return respondError(c, h.logger, err, "Failed to update user")
	}

	user, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update user")
	}
	return utils.SendSuccess(c, "User updated successfully", user)
}

func (h *UserHandler) delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid user ID format")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete user")
	}
	return utils.SendSuccess(c, "User deleted successfully", nil)
}
