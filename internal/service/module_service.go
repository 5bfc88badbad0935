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

var moduleMessages = storeMessages{
	notFound:         "Module not found",
	duplicate:        "Module already exists",
	referenced:       "Cannot delete module with resources. Please delete or reassign resources first.",
	missingReference: "SkillPath not found",
}

var errSkillPathMissing = BadReference("SkillPath not found")

// ModuleService manages the modules of a skill path.
type ModuleService interface {
	Create(ctx context.Context, req dto.ModuleCreateRequest) (dto.ModuleResponse, error)
	List(ctx context.Context, req dto.ModuleListRequest) (dto.ListResult[dto.ModuleResponse], error)
	Get(ctx context.Context, id string) (dto.ModuleResponse, error)
	Update(ctx context.Context, id string, req dto.ModuleUpdateRequest) (dto.ModuleResponse, error)
	Delete(ctx context.Context, id string) error
}

type moduleService struct {
	repo       repository.Repository[models.Module]
	skillPaths repository.Repository[models.SkillPath]
	resources  repository.Repository[models.Resource]
	policy     *bluemonday.Policy
	logger     zerolog.Logger
}

// NewModuleService constructs the module service.
func NewModuleService(repo repository.Repository[models.Module], skillPaths repository.Repository[models.SkillPath], resources repository.Repository[models.Resource], logger zerolog.Logger) ModuleService {
	return &moduleService{
		repo:       repo,
		skillPaths: skillPaths,
		resources:  resources,
		policy:     newSanitizer(),
		logger:     logger.With().Str("component", "module_service").Logger(),
	}
}

func (s *moduleService) Create(ctx context.Context, req dto.ModuleCreateRequest) (dto.ModuleResponse, error) {
	if err := s.ensureSkillPath(ctx, req.SkillPathID); err != nil {
		return dto.ModuleResponse{}, err
	}

	module := models.Module{
		SkillPathID:  req.SkillPathID,
		Title:        req.Title,
		Description:  sanitize(s.policy, valueOr(req.Description, "")),
		DisplayOrder: valueOr(req.DisplayOrder, 1),
		IsActive:     valueOr(req.IsActive, true),
	}
	if err := s.repo.Create(ctx, &module); err != nil {
		return dto.ModuleResponse{}, translateStoreError(err, moduleMessages, "create module")
	}
	return s.Get(ctx, module.ID)
}

func (s *moduleService) List(ctx context.Context, req dto.ModuleListRequest) (dto.ListResult[dto.ModuleResponse], error) {
	filter := repository.Filter{}
	if req.SkillPathID != "" {
		filter["skill_path_id"] = req.SkillPathID
	}
	if req.IsActive != nil {
		filter["is_active"] = *req.IsActive
	}

	page, err := s.repo.FindMany(ctx, buildQuery(req.ListQuery, filter, repository.RelationSkillPath))
	if err != nil {
		return dto.ListResult[dto.ModuleResponse]{}, translateStoreError(err, moduleMessages, "list modules")
	}
	return toListResult(page, dto.NewModuleResponse), nil
}

func (s *moduleService) Get(ctx context.Context, id string) (dto.ModuleResponse, error) {
	module, err := s.repo.FindByID(ctx, id, repository.RelationSkillPath)
	if err != nil {
		return dto.ModuleResponse{}, translateStoreError(err, moduleMessages, "get module")
	}
	return dto.NewModuleResponse(module), nil
}

func (s *moduleService) Update(ctx context.Context, id string, req dto.ModuleUpdateRequest) (dto.ModuleResponse, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.ModuleResponse{}, translateStoreError(err, moduleMessages, "get module")
	}
	if req.SkillPathID != nil && *req.SkillPathID != current.SkillPathID {
		if err := s.ensureSkillPath(ctx, *req.SkillPathID); err != nil {
			return dto.ModuleResponse{}, err
		}
	}

	module, err := s.repo.UpdateByID(ctx, id, func(module *models.Module) error {
		if req.SkillPathID != nil {
			module.SkillPathID = *req.SkillPathID
		}
		if req.Title != nil {
			module.Title = *req.Title
		}
		if req.Description != nil {
			module.Description = sanitize(s.policy, *req.Description)
		}
		if req.DisplayOrder != nil {
			module.DisplayOrder = *req.DisplayOrder
		}
		if req.IsActive != nil {
			module.IsActive = *req.IsActive
		}
		return nil
	}, repository.RelationSkillPath)
	if err != nil {
		return dto.ModuleResponse{}, translateStoreError(err, moduleMessages, "update module")
	}
	return dto.NewModuleResponse(module), nil
}

func (s *moduleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return translateStoreError(err, moduleMessages, "get module")
	}

	inUse, err := s.resources.Exists(ctx, repository.Filter{"module_id": id})
	if err != nil {
		return translateStoreError(err, moduleMessages, "count resources")
	}
	if inUse {
		return Conflict(moduleMessages.referenced)
	}

	if _, err := s.repo.DeleteByID(ctx, id); err != nil {
		return translateStoreError(err, moduleMessages, "delete module")
	}
	return nil
}

func (s *moduleService) ensureSkillPath(ctx context.Context, skillPathID string) error {
	if _, err := s.skillPaths.FindByID(ctx, skillPathID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errSkillPathMissing
		}
		return translateStoreError(err, skillPathMessages, "get skill path")
	}
	return nil
}
