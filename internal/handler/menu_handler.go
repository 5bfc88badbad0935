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

// MenuHandler exposes navigation menu endpoints.
type MenuHandler struct {
	service   service.MenuService
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewMenuHandler constructs a menu handler.
func NewMenuHandler(service service.MenuService, validator *validation.Validator, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "menu_handler").Logger(),
	}
}

// Register wires menu routes. writeGuards run before every mutating route.
func (h *MenuHandler) Register(router fiber.Router, writeGuards ...fiber.Handler) {
	router.Post("", guarded(writeGuards, h.create)...)
	router.Get("", h.list)
	router.Get("/hierarchy", h.hierarchy)
	router.Get("/:id", h.get)
	router.Put("/:id", guarded(writeGuards, h.update)...)
	router.Delete("/:id", guarded(writeGuards, h.delete)...)
}

func (h *MenuHandler) create(c *fiber.Ctx) error {
	var req dto.MenuCreateRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to create menu")
	}
	if err := h.validator.MenuCreate(&req); err != nil {
		return respondError(c, h.logger, err, "Failed to create menu")
	}

	menu, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create menu")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "Menu created successfully", menu)
}

func (h *MenuHandler) list(c *fiber.Ctx) error {
	query, err := listQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	isActive, err := parseQueryBool(c, "isActive")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "isActive must be a boolean")
	}

	req := dto.MenuListRequest{ListQuery: query, IsActive: isActive}
	if c.Context().QueryArgs().Has("parentId") {
		parent := strings.TrimSpace(c.Query("parentId"))
		if strings.EqualFold(parent, "null") {
			parent = ""
		}
		if parent != "" && !validation.ID(parent) {
			return utils.SendError(c, fiber.StatusBadRequest, "Invalid menu ID format")
		}
		req.ParentID = &parent
	}

	result, err := h.service.List(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve menus")
	}
	return utils.SendPaginated(c, "Menus retrieved successfully", result.Items, toPagination(result.Pagination))
}

func (h *MenuHandler) hierarchy(c *fiber.Ctx) error {
	tree, err := h.service.Hierarchy(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve menu hierarchy")
	}
	return utils.SendSuccess(c, "Menu hierarchy retrieved successfully", tree)
}

func (h *MenuHandler) get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid menu ID format")
	}

	menu, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve menu")
	}
	return utils.SendSuccess(c, "Menu retrieved successfully", menu)
}

func (h *MenuHandler) update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid menu ID format")
	}

	var req dto.MenuUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to update menu")
	}
	if err := h.validator.MenuUpdate(&req); err != nil {
		return respondError(c, h.logger, err, "Failed to update menu")
	}

	menu, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update menu")
	}
	return utils.SendSuccess(c, "Menu updated successfully", menu)
}

func (h *MenuHandler) delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid menu ID format")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete menu")
	}
	return utils.SendSuccess(c, "Menu deleted successfully", nil)
}
