package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/learnroute-api/internal/dto"
	"github.com/noah-isme/learnroute-api/internal/models"
	"github.com/noah-isme/learnroute-api/internal/observability"
	"github.com/noah-isme/learnroute-api/internal/repository"
)

const (
	menuHierarchyCacheKey = "menus:hierarchy:v1"
	maxAncestorHops       = 64
)

var menuMessages = storeMessages{
	notFound:         "Menu not found",
	duplicate:        "Menu already exists",
	referenced:       "Cannot delete menu with child items. Please delete or reassign children first.",
	missingReference: "Parent menu not found",
}

var (
	errParentNotFound   = BadReference("Parent menu not found")
	errSelfParent       = Conflict("Menu cannot be its own parent")
	errDescendantParent = Conflict("Menu cannot be moved under one of its own descendants")
	errMenuHasChildren  = Conflict(menuMessages.referenced)
)

// MenuService manages navigation menus and their hierarchy.
type MenuService interface {
	Create(ctx context.Context, req dto.MenuCreateRequest) (dto.MenuResponse, error)
	List(ctx context.Context, req dto.MenuListRequest) (dto.ListResult[dto.MenuResponse], error)
	Get(ctx context.Context, id string) (dto.MenuResponse, error)
	Hierarchy(ctx context.Context) ([]dto.MenuNode, error)
	Update(ctx context.Context, id string, req dto.MenuUpdateRequest) (dto.MenuResponse, error)
	Delete(ctx context.Context, id string) error
}

type menuService struct {
	repo   repository.Repository[models.Menu]
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewMenuService constructs the menu service. The cache is optional.
func NewMenuService(repo repository.Repository[models.Menu], cache *redis.Client, ttl time.Duration, logger zerolog.Logger) MenuService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &menuService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "menu_service").Logger(),
	}
}

func (s *menuService) Create(ctx context.Context, req dto.MenuCreateRequest) (dto.MenuResponse, error) {
	var parentID *string
	if req.ParentID.Present() {
		if err := s.ensureParent(ctx, req.ParentID.Value); err != nil {
			return dto.MenuResponse{}, err
		}
		parentID = req.ParentID.Pointer()
	}

	menu := models.Menu{
		Title:        req.Title,
		Path:         req.Path,
		ParentID:     parentID,
		DisplayOrder: valueOr(req.DisplayOrder, 1),
		IsActive:     valueOr(req.IsActive, true),
	}
	if req.Icon.Present() {
		menu.Icon = req.Icon.Pointer()
	}

	if err := s.repo.Create(ctx, &menu); err != nil {
		return dto.MenuResponse{}, translateStoreError(err, menuMessages, "create menu")
	}
	s.invalidate(ctx)

	return s.Get(ctx, menu.ID)
}

func (s *menuService) List(ctx context.Context, req dto.MenuListRequest) (dto.ListResult[dto.MenuResponse], error) {
	filter := repository.Filter{}
	if req.IsActive != nil {
		filter["is_active"] = *req.IsActive
	}
	if req.ParentID != nil {
		if *req.ParentID == "" {
			filter["parent_id"] = nil
		} else {
			filter["parent_id"] = *req.ParentID
		}
	}

	page, err := s.repo.FindMany(ctx, buildQuery(req.ListQuery, filter, repository.RelationParent))
	if err != nil {
		return dto.ListResult[dto.MenuResponse]{}, translateStoreError(err, menuMessages, "list menus")
	}
	return toListResult(page, dto.NewMenuResponse), nil
}

func (s *menuService) Get(ctx context.Context, id string) (dto.MenuResponse, error) {
	menu, err := s.repo.FindByID(ctx, id, repository.RelationParent)
	if err != nil {
		return dto.MenuResponse{}, translateStoreError(err, menuMessages, "get menu")
	}
	return dto.NewMenuResponse(menu), nil
}

func (s *menuService) Hierarchy(ctx context.Context) ([]dto.MenuNode, error) {
	if cached, ok := s.cachedHierarchy(ctx); ok {
		return cached, nil
	}

	menus, err := s.repo.FindAll(ctx, repository.Query{Sort: "displayOrder"})
	if err != nil {
		return nil, translateStoreError(err, menuMessages, "load menus")
	}
	forest := BuildMenuTree(menus, MaxMenuDepth)

	if s.cache != nil {
		if payload, err := json.Marshal(forest); err == nil {
			if err := s.cache.Set(ctx, menuHierarchyCacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store menu hierarchy cache")
			}
		}
	}
	return forest, nil
}

func (s *menuService) Update(ctx context.Context, id string, req dto.MenuUpdateRequest) (dto.MenuResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return dto.MenuResponse{}, translateStoreError(err, menuMessages, "get menu")
	}

	if req.ParentID.Present() {
		if req.ParentID.Value == id {
			return dto.MenuResponse{}, errSelfParent
		}
		if err := s.ensureParent(ctx, req.ParentID.Value); err != nil {
			return dto.MenuResponse{}, err
		}
		if err := s.ensureNotDescendant(ctx, id, req.ParentID.Value); err != nil {
			return dto.MenuResponse{}, err
		}
	}

	menu, err := s.repo.UpdateByID(ctx, id, func(menu *models.Menu) error {
		if req.Title != nil {
			menu.Title = *req.Title
		}
		if req.Path != nil {
			menu.Path = *req.Path
		}
		if req.Icon.Set {
			menu.Icon = req.Icon.Pointer()
		}
		if req.ParentID.Set {
			menu.ParentID = req.ParentID.Pointer()
		}
		if req.DisplayOrder != nil {
			menu.DisplayOrder = *req.DisplayOrder
		}
		if req.IsActive != nil {
			menu.IsActive = *req.IsActive
		}
		return nil
	}, repository.RelationParent)
	if err != nil {
		return dto.MenuResponse{}, translateStoreError(err, menuMessages, "update menu")
	}
	s.invalidate(ctx)

	return dto.NewMenuResponse(menu), nil
}

func (s *menuService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return translateStoreError(err, menuMessages, "get menu")
	}

	hasChildren, err := s.repo.Exists(ctx, repository.Filter{"parent_id": id})
	if err != nil {
		return translateStoreError(err, menuMessages, "count child menus")
	}
	if hasChildren {
		return errMenuHasChildren
	}

	if _, err := s.repo.DeleteByID(ctx, id); err != nil {
		return translateStoreError(err, menuMessages, "delete menu")
	}
	s.invalidate(ctx)
	return nil
}

func (s *menuService) ensureParent(ctx context.Context, parentID string) error {
	if _, err := s.repo.FindByID(ctx, parentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errParentNotFound
		}
		return translateStoreError(err, menuMessages, "get parent menu")
	}
	return nil
}

// ensureNotDescendant walks up from parentID and fails if it reaches id.
func (s *menuService) ensureNotDescendant(ctx context.Context, id, parentID string) error {
	cursor := parentID
	for hops := 0; hops < maxAncestorHops; hops++ {
		menu, err := s.repo.FindByID(ctx, cursor)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return translateStoreError(err, menuMessages, "walk menu ancestors")
		}
		if menu.ParentID == nil || *menu.ParentID == "" {
			return nil
		}
		if *menu.ParentID == id {
			return errDescendantParent
		}
		cursor = *menu.ParentID
	}
	return errDescendantParent
}

func (s *menuService) cachedHierarchy(ctx context.Context) ([]dto.MenuNode, bool) {
	if s.cache == nil {
		return nil, false
	}
	cached, err := s.cache.Get(ctx, menuHierarchyCacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("failed to read menu hierarchy cache")
		}
		observability.HierarchyCache().WithLabelValues("miss").Inc()
		return nil, false
	}

	var forest []dto.MenuNode
	if err := json.Unmarshal([]byte(cached), &forest); err != nil {
		s.logger.Warn().Err(err).Msg("discarding unreadable menu hierarchy cache")
		observability.HierarchyCache().WithLabelValues("miss").Inc()
		return nil, false
	}
	observability.HierarchyCache().WithLabelValues("hit").Inc()
	return forest, true
}

func (s *menuService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, menuHierarchyCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate menu hierarchy cache")
	}
}
