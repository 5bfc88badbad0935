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

var skillPathMessages = storeMessages{
	notFound:   "SkillPath not found",
	duplicate:  "Slug already exists",
	referenced: "Cannot delete skill path with modules. Please delete or reassign modules first.",
}

// SkillPathService manages skill paths.
type SkillPathService interface {
	Create(ctx context.Context, req dto.SkillPathCreateRequest) (dto.SkillPathResponse, error)
	List(ctx context.Context, req dto.SkillPathListRequest) (dto.ListResult[dto.SkillPathResponse], error)
	Get(ctx context.Context, id string) (dto.SkillPathResponse, error)
	Update(ctx context.Context, id string, req dto.SkillPathUpdateRequest) (dto.SkillPathResponse, error)
	Delete(ctx context.Context, id string) error
}

type skillPathService struct {
	repo    repository.Repository[models.SkillPath]
	modules repository.Repository[models.Module]
	policy  *bluemonday.Policy
	logger  zerolog.Logger
}

// NewSkillPathService constructs the skill path service.
func NewSkillPathService(repo repository.Repository[models.SkillPath], modules repository.Repository[models.Module], logger zerolog.Logger) SkillPathService {
	return &skillPathService{
		repo:    repo,
		modules: modules,
		policy:  newSanitizer(),
		logger:  logger.With().Str("component", "skill_path_service").Logger(),
	}
}

func (s *skillPathService) Create(ctx context.Context, req dto.SkillPathCreateRequest) (dto.SkillPathResponse, error) {
	slug := valueOr(req.Slug, "")
	if err := s.ensureSlugFree(ctx, slug, ""); err != nil {
		return dto.SkillPathResponse{}, err
	}

	path := models.SkillPath{
		Title:        req.Title,
		Slug:         slug,
		Description:  sanitize(s.policy, valueOr(req.Description, "")),
		Level:        valueOr(req.Level, models.LevelBeginner),
		DisplayOrder: valueOr(req.DisplayOrder, 0),
		IsActive:     valueOr(req.IsActive, true),
	}
	if err := s.repo.Create(ctx, &path); err != nil {
		return dto.SkillPathResponse{}, translateStoreError(err, skillPathMessages, "create skill path")
	}
	return dto.NewSkillPathResponse(path), nil
}

func (s *skillPathService) List(ctx context.Context, req dto.SkillPathListRequest) (dto.ListResult[dto.SkillPathResponse], error) {
	filter := repository.Filter{}
	if req.Level != "" {
		filter["level"] = req.Level
	}
	if req.IsActive != nil {
		filter["is_active"] = *req.IsActive
	}

	page, err := s.repo.FindMany(ctx, buildQuery(req.ListQuery, filter))
	if err != nil {
		return dto.ListResult[dto.SkillPathResponse]{}, translateStoreError(err, skillPathMessages, "list skill paths")
	}
	return toListResult(page, dto.NewSkillPathResponse), nil
}

func (s *skillPathService) Get(ctx context.Context, id string) (dto.SkillPathResponse, error) {
	path, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.SkillPathResponse{}, translateStoreError(err, skillPathMessages, "get skill path")
	}
	return dto.NewSkillPathResponse(path), nil
}

func (s *skillPathService) Update(ctx context.Context, id string, req dto.SkillPathUpdateRequest) (dto.SkillPathResponse, error) {
	if req.Slug != nil {
		if err := s.ensureSlugFree(ctx, *req.Slug, id); err != nil {
			return dto.SkillPathResponse{}, err
		}
	}

	path, err := s.repo.UpdateByID(ctx, id, func(path *models.SkillPath) error {
		if req.Title != nil {
			path.Title = *req.Title
		}
		if req.Slug != nil {
			path.Slug = *req.Slug
		}
		if req.Description != nil {
			path.Description = sanitize(s.policy, *req.Description)
		}
		if req.Level != nil {
			path.Level = *req.Level
		}
		if req.DisplayOrder != nil {
			path.DisplayOrder = *req.DisplayOrder
		}
		if req.IsActive != nil {
			path.IsActive = *req.IsActive
		}
		return nil
	})
	if err != nil {
		return dto.SkillPathResponse{}, translateStoreError(err, skillPathMessages, "update skill path")
	}
	return dto.NewSkillPathResponse(path), nil
}

func (s *skillPathService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return translateStoreError(err, skillPathMessages, "get skill path")
	}

	inUse, err := s.modules.Exists(ctx, repository.Filter{"skill_path_id": id})
	if err != nil {
		return translateStoreError(err, skillPathMessages, "count modules")
	}
	if inUse {
		return Conflict(skillPathMessages.referenced)
	}

	if _, err := s.repo.DeleteByID(ctx, id); err != nil {
		return translateStoreError(err, skillPathMessages, "delete skill path")
	}
	s.logger.Info().Str("skill_path_id", id).Msg("skill path deleted")
	return nil
}

func (s *skillPathService) ensureSlugFree(ctx context.Context, slug, ownerID string) error {
	existing, err := s.repo.FindOne(ctx, repository.Filter{"slug": slug})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return translateStoreError(err, skillPathMessages, "check slug")
	case existing.ID != ownerID:
		return Conflict(skillPathMessages.duplicate)
	}
	return nil
}
