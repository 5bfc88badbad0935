package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	"github.com/noah-isme/learnroute-api/internal/dto"
	"github.com/noah-isme/learnroute-api/internal/models"
	"github.com/noah-isme/learnroute-api/internal/repository"
)

// DefaultActivitySubject is the broker subject activity events are published on.
const DefaultActivitySubject = "learnroute.activity.created"

var activityLogMessages = storeMessages{
	notFound:   "Activity log not found",
	duplicate:  "Activity log already exists",
	referenced: "Activity log is referenced by other records",
}

// EventPublisher delivers a payload to a broker subject. *nats.Conn satisfies it.
type EventPublisher interface {
	Publish(subject string, data []byte) error
}

// ActivityLogService records and queries user activity.
type ActivityLogService interface {
	Create(ctx context.Context, req dto.ActivityLogCreateRequest) (dto.ActivityLogResponse, error)
	List(ctx context.Context, req dto.ActivityLogListRequest) (dto.ListResult[dto.ActivityLogResponse], error)
	Get(ctx context.Context, id string) (dto.ActivityLogResponse, error)
	Update(ctx context.Context, id string, req dto.ActivityLogUpdateRequest) (dto.ActivityLogResponse, error)
	Delete(ctx context.Context, id string) error
}

type activityLogService struct {
	repo      repository.Repository[models.ActivityLog]
	publisher EventPublisher
	subject   string
	logger    zerolog.Logger
	tracer    trace.Tracer
}

type activityEvent struct {
	Activity dto.ActivityLogResponse `json:"activity"`
	SentAt   time.Time               `json:"sentAt"`
}

// NewActivityLogService constructs the activity log service. The publisher is optional.
func NewActivityLogService(repo repository.Repository[models.ActivityLog], publisher EventPublisher, subject string, logger zerolog.Logger) ActivityLogService {
	if subject == "" {
		subject = DefaultActivitySubject
	}
	return &activityLogService{
		repo:      repo,
		publisher: publisher,
		subject:   subject,
		logger:    logger.With().Str("component", "activity_log_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/learnroute-api/internal/service/activity_log"),
	}
}

func (s *activityLogService) Create(ctx context.Context, req dto.ActivityLogCreateRequest) (dto.ActivityLogResponse, error) {
	entry := models.ActivityLog{
		UserID:    req.UserID,
		EventType: req.EventType,
		Details:   datatypes.JSONMap(req.Details),
	}
	if entry.Details == nil {
		entry.Details = datatypes.JSONMap{}
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		return dto.ActivityLogResponse{}, translateStoreError(err, activityLogMessages, "create activity log")
	}

	response, err := s.Get(ctx, entry.ID)
	if err != nil {
		return dto.ActivityLogResponse{}, err
	}
	s.publish(ctx, response)
	return response, nil
}

func (s *activityLogService) List(ctx context.Context, req dto.ActivityLogListRequest) (dto.ListResult[dto.ActivityLogResponse], error) {
	filter := repository.Filter{}
	if req.UserID != "" {
		filter["user_id"] = req.UserID
	}
	if req.EventType != "" {
		filter["event_type"] = req.EventType
	}

	page, err := s.repo.FindMany(ctx, buildQuery(req.ListQuery, filter, repository.RelationUser))
	if err != nil {
		return dto.ListResult[dto.ActivityLogResponse]{}, translateStoreError(err, activityLogMessages, "list activity logs")
	}
	return toListResult(page, dto.NewActivityLogResponse), nil
}

func (s *activityLogService) Get(ctx context.Context, id string) (dto.ActivityLogResponse, error) {
	entry, err := s.repo.FindByID(ctx, id, repository.RelationUser)
	if err != nil {
		return dto.ActivityLogResponse{}, translateStoreError(err, activityLogMessages, "get activity log")
	}
	return dto.NewActivityLogResponse(entry), nil
}

func (s *activityLogService) Update(ctx context.Context, id string, req dto.ActivityLogUpdateRequest) (dto.ActivityLogResponse, error) {
	entry, err := s.repo.UpdateByID(ctx, id, func(entry *models.ActivityLog) error {
		if req.EventType != nil {
			entry.EventType = *req.EventType
		}
		if req.Details != nil {
			entry.Details = datatypes.JSONMap(req.Details)
		}
		return nil
	}, repository.RelationUser)
	if err != nil {
		return dto.ActivityLogResponse{}, translateStoreError(err, activityLogMessages, "update activity log")
	}
	return dto.NewActivityLogResponse(entry), nil
}

func (s *activityLogService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.DeleteByID(ctx, id); err != nil {
		return translateStoreError(err, activityLogMessages, "delete activity log")
	}
	return nil
}

// publish is best effort. A broker failure never fails the request.
func (s *activityLogService) publish(ctx context.Context, activity dto.ActivityLogResponse) {
	if s.publisher == nil {
		return
	}
	_, span := s.tracer.Start(ctx, "activity.publish", trace.WithAttributes(
		attribute.String("activity.event_type", activity.EventType),
		attribute.String("messaging.destination", s.subject),
	))
	defer span.End()

	payload, err := json.Marshal(activityEvent{Activity: activity, SentAt: time.Now().UTC()})
	if err != nil {
		span.RecordError(err)
		s.logger.Warn().Err(err).Msg("failed to encode activity event")
		return
	}
	if err := s.publisher.Publish(s.subject, payload); err != nil {
		span.RecordError(err)
		s.logger.Warn().Err(err).Str("subject", s.subject).Msg("failed to publish activity event")
	}
}
