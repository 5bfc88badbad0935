package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDBase carries the identifier and timestamps shared by every stored entity.
type UUIDBase struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when the caller did not provide one.
func (b *UUIDBase) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// GetID exposes the identifier to generic helpers.
func (b UUIDBase) GetID() string {
	return b.ID
}

// NewID returns a fresh identifier in the store's encoding.
func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether value matches the identifier encoding used by the store.
func IsValidID(value string) bool {
	if len(value) != 36 {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}
