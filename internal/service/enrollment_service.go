package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/learnroute-api/internal/dto"
	"github.com/noah-isme/learnroute-api/internal/models"
	"github.com/noah-isme/learnroute-api/internal/repository"
)

var enrollmentMessages = storeMessages{
	notFound:         "Enrollment not found",
	duplicate:        "User is already enrolled in this skill path",
	referenced:       "Enrollment is referenced by other records",
	missingReference: "User or skill path not found",
}

var errUserMissing = BadReference("User not found")

// EnrollmentService manages user enrolments in skill paths.
type EnrollmentService interface {
	Create(ctx context.Context, req dto.EnrollmentCreateRequest) (dto.EnrollmentResponse, error)
	ListByUser(ctx context.Context, userID string, query dto.ListQuery) (dto.ListResult[dto.EnrollmentResponse], error)
	Get(ctx context.Context, id string) (dto.EnrollmentResponse, error)
	Update(ctx context.Context, id string, req dto.EnrollmentUpdateRequest) (dto.EnrollmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type enrollmentService struct {
	repo       repository.Repository[models.UserSkillEnrollment]
	users      repository.Repository[models.User]
	skillPaths repository.Repository[models.SkillPath]
	logger     zerolog.Logger
	now        func() time.Time
}

// NewEnrollmentService constructs the enrolment service.
func NewEnrollmentService(repo repository.Repository[models.UserSkillEnrollment], users repository.Repository[models.User], skillPaths repository.Repository[models.SkillPath], logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		repo:       repo,
		users:      users,
		skillPaths: skillPaths,
		logger:     logger.With().Str("component", "enrollment_service").Logger(),
		now:        time.Now,
	}
}

func (s *enrollmentService) Create(ctx context.Context, req dto.EnrollmentCreateRequest) (dto.EnrollmentResponse, error) {
	if err := ensureExists(ctx, s.users, req.UserID, errUserMissing, userMessages); err != nil {
		return dto.EnrollmentResponse{}, err
	}
	if err := ensureExists(ctx, s.skillPaths, req.SkillPathID, errSkillPathMissing, skillPathMessages); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	enrolled, err := s.repo.Exists(ctx, repository.Filter{"user_id": req.UserID, "skill_path_id": req.SkillPathID})
	if err != nil {
		return dto.EnrollmentResponse{}, translateStoreError(err, enrollmentMessages, "check enrollment")
	}
	if enrolled {
		return dto.EnrollmentResponse{}, Conflict(enrollmentMessages.duplicate)
	}

	now := s.now().UTC()
	enrollment := models.UserSkillEnrollment{
		UserID:          req.UserID,
		SkillPathID:     req.SkillPathID,
		ProgressPercent: valueOr(req.ProgressPercent, 0),
		StartedAt:       now,
	}
	enrollment.SetStatus(valueOr(req.Status, models.EnrollmentActive), now)

	if err := s.repo.Create(ctx, &enrollment); err != nil {
		return dto.EnrollmentResponse{}, translateStoreError(err, enrollmentMessages, "create enrollment")
	}
	s.logger.Info().Str("user_id", enrollment.UserID).Str("skill_path_id", enrollment.SkillPathID).Msg("user enrolled")
	return s.Get(ctx, enrollment.ID)
}

func (s *enrollmentService) ListByUser(ctx context.Context, userID string, query dto.ListQuery) (dto.ListResult[dto.EnrollmentResponse], error) {
	page, err := s.repo.FindMany(ctx, buildQuery(query, repository.Filter{"user_id": userID}, repository.RelationSkillPath))
	if err != nil {
		return dto.ListResult[dto.EnrollmentResponse]{}, translateStoreError(err, enrollmentMessages, "list enrollments")
	}
	return toListResult(page, dto.NewEnrollmentResponse), nil
}

func (s *enrollmentService) Get(ctx context.Context, id string) (dto.EnrollmentResponse, error) {
	enrollment, err := s.repo.FindByID(ctx, id, repository.RelationSkillPath)
	if err != nil {
		return dto.EnrollmentResponse{}, translateStoreError(err, enrollmentMessages, "get enrollment")
	}
	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *enrollmentService) Update(ctx context.Context, id string, req dto.EnrollmentUpdateRequest) (dto.EnrollmentResponse, error) {
	enrollment, err := s.repo.UpdateByID(ctx, id, func(enrollment *models.UserSkillEnrollment) error {
		if req.ProgressPercent != nil {
			enrollment.ProgressPercent = *req.ProgressPercent
		}
		if req.Status != nil {
			enrollment.SetStatus(*req.Status, s.now().UTC())
		}
		return nil
	}, repository.RelationSkillPath)
	if err != nil {
		return dto.EnrollmentResponse{}, translateStoreError(err, enrollmentMessages, "update enrollment")
	}
	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *enrollmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.DeleteByID(ctx, id); err != nil {
		return translateStoreError(err, enrollmentMessages, "delete enrollment")
	}
	return nil
}

// ensureExists maps a missing referenced record to missing and passes other store failures through.
func ensureExists[T any](ctx context.Context, repo repository.Repository[T], id string, missing *Error, msgs storeMessages) error {
	if _, err := repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return missing
		}
		return translateStoreError(err, msgs, "check reference")
	}
	return nil
}
