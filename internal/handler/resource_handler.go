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

// ResourceHandler exposes learning resource endpoints.
type ResourceHandler struct {
	service   service.ResourceService
	validator *validation.Validator
	logger    zerolog.Logger
}

// NewResourceHandler constructs a resource handler.
func NewResourceHandler(service service.ResourceService, validator *validation.Validator, logger zerolog.Logger) *ResourceHandler {
	return &ResourceHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "resource_handler").Logger(),
	}
}

// Register wires resource routes.
func (h *ResourceHandler) Register(router fiber.Router, writeGuards ...fiber.Handler) {
	router.Post("", guarded(writeGuards, h.create)...)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Put("/:id", guarded(writeGuards, h.update)...)
	router.Delete("/:id", guarded(writeGuards, h.delete)...)
}

func (h *ResourceHandler) create(c *fiber.Ctx) error {
	var req dto.ResourceCreateRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to create resource")
	}
	if err := h.validator.ResourceCreate(&req); err != nil {
		return respondError(c, h.logger, err, "Failed to create resource")
	}

	resource, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create resource")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "Resource created successfully", resource)
}

func (h *ResourceHandler) list(c *fiber.Ctx) error {
	query, err := listQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	isActive, err := parseQueryBool(c, "isActive")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "isActive must be a boolean")
	}
	moduleID, ok := queryID(c, "moduleId")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid module ID format")
	}

	req := dto.ResourceListRequest{
		ListQuery:    query,
		ModuleID:     moduleID,
		ResourceType: strings.ToLower(strings.TrimSpace(c.Query("resourceType"))),
		IsActive:     isActive,
	}
	result, err := h.service.List(c.UserContext(), req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve resources")
	}
	return utils.SendPaginated(c, "Resources retrieved successfully", result.Items, toPagination(result.Pagination))
}

func (h *ResourceHandler) get(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid resource ID format")
	}

	resource, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to retrieve resource")
	}
	return utils.SendSuccess(c, "Resource retrieved successfully", resource)
}

func (h *ResourceHandler) update(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid resource ID format")
	}

	var req dto.ResourceUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "Failed to update resource")
	}
	if err := h.validator.ResourceUpdate(&req); err != nil {
		return respondError(c, h.logger, err, "Failed to update resource")
	}

	resource, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update resource")
	}
	return utils.SendSuccess(c, "Resource updated successfully", resource)
}

func (h *ResourceHandler) delete(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid resource ID format")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, err, "Failed to delete resource")
	}
	return utils.SendSuccess(c, "Resource deleted successfully", nil)
}
