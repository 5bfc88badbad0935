package models

import "time"

// Resource statuses.
const (
	ResourceNotStarted = "not_started"
	ResourceInProgress = "in_progress"
	ResourceCompleted  = "completed"
)

// UserResourceStatus tracks a user's progress on one resource. A user has at most one per resource.
type UserResourceStatus struct {
	UUIDBase
	UserID      string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_resource_status_user_resource,priority:1" json:"userId" validate:"required,objectid"`
	User        *User      `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	ResourceID  string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_resource_status_user_resource,priority:2" json:"resourceId" validate:"required,objectid"`
	Resource    *Resource  `gorm:"foreignKey:ResourceID" json:"resource,omitempty" validate:"-"`
	Status      string     `gorm:"size:16;not null" json:"status" validate:"required,oneof=not_started in_progress completed"`
	CompletedAt *time.Time `json:"completedAt"`
	LastUpdated time.Time  `gorm:"not null" json:"lastUpdated"`
}

// SetStatus applies a status, keeps CompletedAt in step with it and refreshes LastUpdated.
func (s *UserResourceStatus) SetStatus(status string, now time.Time) {
	s.CompletedAt = completionTime(s.Status, s.CompletedAt, status, ResourceCompleted, now)
	s.Status = status
	s.LastUpdated = now
}
