package service

import (
	"context"
	"errors"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/learnroute-api/internal/dto"
	"github.com/noah-isme/learnroute-api/internal/models"
	"github.com/noah-isme/learnroute-api/internal/repository"
)

var resourceMessages = storeMessages{
	notFound:         "Resource not found",
	duplicate:        "Resource already exists",
	referenced:       "Resource is referenced by user statuses",
	missingReference: "Module not found",
}

var errModuleMissing = BadReference("Module not found")

// ResourceService manages the learning resources of a module.
type ResourceService interface {
	Create(ctx context.Context, req dto.ResourceCreateRequest) (dto.ResourceResponse, error)
	List(ctx context.Context, req dto.ResourceListRequest) (dto.ListResult[dto.ResourceResponse], error)
	Get(ctx context.Context, id string) (dto.ResourceResponse, error)
	Update(ctx context.Context, id string, req dto.ResourceUpdateRequest) (dto.ResourceResponse, error)
	Delete(ctx context.Context, id string) error
}

type resourceService struct {
	repo    repository.Repository[models.Resource]
	modules repository.Repository[models.Module]
	policy  *bluemonday.Policy
	logger  zerolog.Logger
}

// NewResourceService constructs the resource service.
func NewResourceService(repo repository.Repository[models.Resource], modules repository.Repository[models.Module], logger zerolog.Logger) ResourceService {
	return &resourceService{
		repo:    repo,
		modules: modules,
		policy:  newSanitizer(),
		logger:  logger.With().Str("component", "resource_service").Logger(),
	}
}

func (s *resourceService) Create(ctx context.Context, req dto.ResourceCreateRequest) (dto.ResourceResponse, error) {
	if err := s.ensureModule(ctx, req.ModuleID); err != nil {
		return dto.ResourceResponse{}, err
	}

	resource := models.Resource{
		ModuleID:        req.ModuleID,
		Title:           req.Title,
		ResourceType:    valueOr(req.ResourceType, models.ResourceTypeArticle),
		URL:             valueOr(req.URL, ""),
		Description:     sanitize(s.policy, valueOr(req.Description, "")),
		DurationMinutes: valueOr(req.DurationMinutes, 0),
		DisplayOrder:    valueOr(req.DisplayOrder, 0),
		IsActive:        valueOr(req.IsActive, true),
	}
	if err := s.repo.Create(ctx, &resource); err != nil {
		return dto.ResourceResponse{}, translateStoreError(err, resourceMessages, "create resource")
	}
	return s.Get(ctx, resource.ID)
}

func (s *resourceService) List(ctx context.Context, req dto.ResourceListRequest) (dto.ListResult[dto.ResourceResponse], error) {
	filter := repository.Filter{}
	if req.ModuleID != "" {
		filter["module_id"] = req.ModuleID
	}
	if req.ResourceType != "" {
		filter["resource_type"] = req.ResourceType
	}
	if req.IsActive != nil {
		filter["is_active"] = *req.IsActive
	}

	page, err := s.repo.FindMany(ctx, buildQuery(req.ListQuery, filter, repository.RelationModule))
	if err != nil {
		return dto.ListResult[dto.ResourceResponse]{}, translateStoreError(err, resourceMessages, "list resources")
	}
	return toListResult(page, dto.NewResourceResponse), nil
}

func (s *resourceService) Get(ctx context.Context, id string) (dto.ResourceResponse, error) {
	resource, err := s.repo.FindByID(ctx, id, repository.RelationModule)
	if err != nil {
		return dto.ResourceResponse{}, translateStoreError(err, resourceMessages, "get resource")
	}
	return dto.NewResourceResponse(resource), nil
}

func (s *resourceService) Update(ctx context.Context, id string, req dto.ResourceUpdateRequest) (dto.ResourceResponse, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.ResourceResponse{}, translateStoreError(err, resourceMessages, "get resource")
	}
	if req.ModuleID != nil && *req.ModuleID != current.ModuleID {
		if err := s.ensureModule(ctx, *req.ModuleID); err != nil {
			return dto.ResourceResponse{}, err
		}
	}

	resource, err := s.repo.UpdateByID(ctx, id, func(resource *models.Resource) error {
		if req.ModuleID != nil {
			resource.ModuleID = *req.ModuleID
		}
		if req.Title != nil {
			resource.Title = *req.Title
		}
		if req.ResourceType != nil {
			resource.ResourceType = *req.ResourceType
		}
		if req.URL != nil {
			resource.URL = *req.URL
		}
		if req.Description != nil {
			resource.Description = sanitize(s.policy, *req.Description)
		}
		if req.DurationMinutes != nil {
			resource.DurationMinutes = *req.DurationMinutes
		}
		if req.DisplayOrder != nil {
			resource.DisplayOrder = *req.DisplayOrder
		}
		if req.IsActive != nil {
			resource.IsActive = *req.IsActive
		}
		return nil
	}, repository.RelationModule)
	if err != nil {
		return dto.ResourceResponse{}, translateStoreError(err, resourceMessages, "update resource")
	}
	return dto.NewResourceResponse(resource), nil
}

func (s *resourceService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.DeleteByID(ctx, id); err != nil {
		return translateStoreError(err, resourceMessages, "delete resource")
	}
	return nil
}

func (s *resourceService) ensureModule(ctx context.Context, moduleID string) error {
	if _, err := s.modules.FindByID(ctx, moduleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errModuleMissing
		}
		return translateStoreError(err, moduleMessages, "get module")
	}
	return nil
}
