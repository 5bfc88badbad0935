package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/learnroute-api/internal/dto"
	"github.com/noah-isme/learnroute-api/internal/models"
	"github.com/noah-isme/learnroute-api/internal/repository"
)

var resourceStatusMessages = storeMessages{
	notFound:         "User resource status not found",
	duplicate:        "User already has a status for this resource",
	referenced:       "User resource status is referenced by other records",
	missingReference: "User or resource not found",
}

var errResourceMissing = BadReference("Resource not found")

// ResourceStatusService tracks per-user progress on resources.
type ResourceStatusService interface {
	Create(ctx context.Context, req dto.ResourceStatusCreateRequest) (dto.ResourceStatusResponse, error)
	ListByUser(ctx context.Context, userID string, query dto.ListQuery) (dto.ListResult[dto.ResourceStatusResponse], error)
	Get(ctx context.Context, id string) (dto.ResourceStatusResponse, error)
	Update(ctx context.Context, id string, req dto.ResourceStatusUpdateRequest) (dto.ResourceStatusResponse, error)
	Delete(ctx context.Context, id string) error
}

type resourceStatusService struct {
	repo      repository.Repository[models.UserResourceStatus]
	users     repository.Repository[models.User]
	resources repository.Repository[models.Resource]
	logger    zerolog.Logger
	now       func() time.Time
}

// NewResourceStatusService constructs the resource status service.
func NewResourceStatusService(repo repository.Repository[models.UserResourceStatus], users repository.Repository[models.User], resources repository.Repository[models.Resource], logger zerolog.Logger) ResourceStatusService {
	return &resourceStatusService{
		repo:      repo,
		users:     users,
		resources: resources,
		logger:    logger.With().Str("component", "resource_status_service").Logger(),
		now:       time.Now,
	}
}

func (s *resourceStatusService) Create(ctx context.Context, req dto.ResourceStatusCreateRequest) (dto.ResourceStatusResponse, error) {
	if err := ensureExists(ctx, s.users, req.UserID, errUserMissing, userMessages); err != nil {
		return dto.ResourceStatusResponse{}, err
	}
	if err := ensureExists(ctx, s.resources, req.ResourceID, errResourceMissing, resourceMessages); err != nil {
		return dto.ResourceStatusResponse{}, err
	}

	exists, err := s.repo.Exists(ctx, repository.Filter{"user_id": req.UserID, "resource_id": req.ResourceID})
	if err != nil {
		return dto.ResourceStatusResponse{}, translateStoreError(err, resourceStatusMessages, "check resource status")
	}
	if exists {
		return dto.ResourceStatusResponse{}, Conflict(resourceStatusMessages.duplicate)
	}

	status := models.UserResourceStatus{UserID: req.UserID, ResourceID: req.ResourceID}
	status.SetStatus(valueOr(req.Status, models.ResourceCompleted), s.now().UTC())

	if err := s.repo.Create(ctx, &status); err != nil {
		return dto.ResourceStatusResponse{}, translateStoreError(err, resourceStatusMessages, "create resource status")
	}
	return s.Get(ctx, status.ID)
}

func (s *resourceStatusService) ListByUser(ctx context.Context, userID string, query dto.ListQuery) (dto.ListResult[dto.ResourceStatusResponse], error) {
	page, err := s.repo.FindMany(ctx, buildQuery(query, repository.Filter{"user_id": userID}, repository.RelationResource))
	if err != nil {
		return dto.ListResult[dto.ResourceStatusResponse]{}, translateStoreError(err, resourceStatusMessages, "list resource statuses")
	}
	return toListResult(page, dto.NewResourceStatusResponse), nil
}

func (s *resourceStatusService) Get(ctx context.Context, id string) (dto.ResourceStatusResponse, error) {
	status, err := s.repo.FindByID(ctx, id, repository.RelationResource)
	if err != nil {
		return dto.ResourceStatusResponse{}, translateStoreError(err, resourceStatusMessages, "get resource status")
	}
	return dto.NewResourceStatusResponse(status), nil
}

func (s *resourceStatusService) Update(ctx context.Context, id string, req dto.ResourceStatusUpdateRequest) (dto.ResourceStatusResponse, error) {
	status, err := s.repo.UpdateByID(ctx, id, func(status *models.UserResourceStatus) error {
		next := status.Status
		if req.Status != nil {
			next = *req.Status
		}
		status.SetStatus(next, s.now().UTC())
		return nil
	}, repository.RelationResource)
	if err != nil {
		return dto.ResourceStatusResponse{}, translateStoreError(err, resourceStatusMessages, "update resource status")
	}
	return dto.NewResourceStatusResponse(status), nil
}

func (s *resourceStatusService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.DeleteByID(ctx, id); err != nil {
		return translateStoreError(err, resourceStatusMessages, "delete resource status")
	}
	return nil
}
