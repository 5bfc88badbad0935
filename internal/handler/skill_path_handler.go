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

// SkillPathHandler exposes skill path catalog endpoints.
type SkillPathHandler struct {
	service   service.SkillPathService
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewSkillPathHandler constructs a skill path handler.
func NewSkillPathHandler(service service.SkillPathService, validator *validation.Validator, logger zerolog.Logger) *SkillPathHandler {
	return &SkillPathHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "skill_path_handler").Logger(),
	}
}

// Register wires skill path routes.
func (h *SkillPathHandler) Register(router fiber.Router, writeGuards ...fiber.Handler) {
	router.Post("", guarded(writeGuards, h.create)...)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Put("/:id", guarded(writeGuards, h.update)...)
	router.Delete("/:id", guarded(writeGuards, h.delete)...)
}

func (h *SkillPathHandler) create(c *fiber.Ctx) error {
	var req dto.SkillPathCreateRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to create skill path")
	}
	if err := h.validator.SkillPathCreate(&req); err != nil {
		return respondError(c, h.logger, err, "Failed to create skill path")
	}

	skillPath, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create skill path")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "SkillPath created successfully", skillPath)
}

func (h *SkillPathHandler) list(c *fiber.Ctx) error {
	query, err := listQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	isActive, err := parseQueryBool(c, "isActive")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "isActive must be a boolean")
	}

	req := dto.SkillPathListRequest{
		ListQuery: query,
		Level:     strings.ToLower(strings.TrimSpace(c.Query("level"))),
		IsActive:  isActive,
	}
	result, err := h.service.List(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve skill paths")
	}
	return utils.SendPaginated(c, "SkillPaths retrieved successfully", result.Items, toPagination(result.Pagination))
}

func (h *SkillPathHandler) get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid skill path ID format")
	}

	skillPath, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve skill path")
	}
	return utils.SendSuccess(c, "SkillPath retrieved successfully", skillPath)
}

func (h *SkillPathHandler) update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid skill path ID format")
	}

	var req dto.SkillPathUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to update skill path")
	}
	if err := h.validator.SkillPathUpdate(&req); err != nil {
		return respondError(c, h.logger, err, "Failed to update skill path")
	}

	skillPath, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update skill path")
	}
	return utils.SendSuccess(c, "SkillPath updated successfully", skillPath)
}

func (h *SkillPathHandler) delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid skill path ID format")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete skill path")
	}
	return utils.SendSuccess(c, "SkillPath deleted successfully", nil)
}
