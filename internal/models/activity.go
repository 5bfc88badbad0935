package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityLog captures a user event. Details is a free-form JSON object.
type ActivityLog struct {
	ID        string            `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string            `gorm:"type:varchar(36);not null;index:idx_activity_user_created,priority:1" json:"userId" validate:"required,objectid"`
	User      *User             `gorm:"foreignKey:UserID;constraint:-" json:"-" validate:"-"`
	EventType string            `gorm:"size:64;not null;index:idx_activity_event_created,priority:1" json:"eventType" validate:"required"`
	Details   datatypes.JSONMap `gorm:"type:json" json:"details"`
	CreatedAt time.Time         `gorm:"index:idx_activity_user_created,priority:2;index:idx_activity_event_created,priority:2" json:"createdAt"`
}

// BeforeCreate assigns a UUID when the caller did not provide one.
func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
