package models

// User roles.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User is a platform account. The password hash is never serialised.
type User struct {
	UUIDBase
	FullName     string `gorm:"size:160;not null" json:"fullName" validate:"required"`
	Email        string `gorm:"size:254;not null;uniqueIndex" json:"email" validate:"required,emailsimple"`
	PasswordHash string `gorm:"size:255;not null" json:"-" validate:"required"`
	Role         string `gorm:"size:16;not null;index" json:"role" validate:"required,oneof=student admin"`
}
