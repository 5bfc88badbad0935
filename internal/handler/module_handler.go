package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/learnroute-api/internal/dto"
	"github.com/noah-isme/learnroute-api/internal/service"
	"github.com/noah-isme/learnroute-api/internal/utils"
	"github.com/noah-isme/learnroute-api/internal/validation"
)

// ModuleHandler exposes skill path module endpoints.
type ModuleHandler struct {
	service   service.ModuleService
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewModuleHandler constructs a module handler.
func NewModuleHandler(service service.ModuleService, validator *validation.Validator, logger zerolog.Logger) *ModuleHandler {
	return &ModuleHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "module_handler").Logger(),
	}
}

// Register wires module routes.
func (h *ModuleHandler) Register(router fiber.Router, writeGuards ...fiber.Handler) {
	router.Post("", guarded(writeGuards, h.create)...)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Put("/:id", guarded(writeGuards, h.update)...)
	router.Delete("/:id", guarded(writeGuards, h.delete)...)
}

func (h *ModuleHandler) create(c *fiber.Ctx) error {
	var req dto.ModuleCreateRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to create module")
	}
	if err := h.validator.ModuleCreate(&req); err != nil {
		return respondError(c, h.logger, err, "Failed to create module")
	}

	module, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create module")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "Module created successfully", module)
}

func (h *ModuleHandler) list(c *fiber.Ctx) error {
	query, err := listQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	isActive, err := parseQueryBool(c, "isActive")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "isActive must be a boolean")
	}
	skillPathID, ok := queryID(c, "skillPathId")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid skill path ID format")
	}

	req := dto.ModuleListRequest{ListQuery: query, SkillPathID: skillPathID, IsActive: isActive}
	result, err := h.service.List(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve modules")
	}
	return utils.SendPaginated(c, "Modules retrieved successfully", result.Items, toPagination(result.Pagination))
}

func (h *ModuleHandler) get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid module ID format")
	}

	module, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve module")
	}
	return utils.SendSuccess(c, "Module retrieved successfully", module)
}

func (h *ModuleHandler) update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid module ID format")
	}

	var req dto.ModuleUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to update module")
	}
	if err := h.validator.ModuleUpdate(&req); err != nil {
		return respondError(c, h.logger, err, "Failed to update module")
	}

	module, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update module")
	}
	return utils.SendSuccess(c, "Module updated successfully", module)
}

func (h *ModuleHandler) delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid module ID format")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete module")
	}
	return utils.SendSuccess(c, "Module deleted successfully", nil)
}
