package dto

import (
	"time"

	"github.com/noah-isme/learnroute-api/internal/models"
)

// ActivityLogCreateRequest records a user event.
type ActivityLogCreateRequest struct {
	UserID    string                 `json:"userId"`
	EventType string                 `json:"eventType"`
	Details   map[string]interface{} `json:"details"`
}

// ActivityLogUpdateRequest edits the event type or details of an entry.
type ActivityLogUpdateRequest struct {
	EventType *string                `json:"eventType"`
	Details   map[string]interface{} `json:"details"`
}

// ActivityLogListRequest filters the activity listing.
type ActivityLogListRequest struct {
	ListQuery
	UserID    string
	EventType string
}

// ActivityLogResponse is the public representation of an activity entry.
type ActivityLogResponse struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"userId"`
	User      *UserSummary           `json:"user,omitempty"`
	EventType string                 `json:"eventType"`
	Details   map[string]interface{} `json:"details"`
	CreatedAt time.Time              `json:"createdAt"`
}

// NewActivityLogResponse maps a stored activity entry with its populated user.
func NewActivityLogResponse(entry models.ActivityLog) ActivityLogResponse {
	details := map[string]interface{}(entry.Details)
	if details == nil {
		details = map[string]interface{}{}
	}
	return ActivityLogResponse{
		ID:        entry.ID,
		UserID:    entry.UserID,
		User:      newUserSummary(entry.User),
		EventType: entry.EventType,
		Details:   details,
		CreatedAt: entry.CreatedAt,
	}
}
