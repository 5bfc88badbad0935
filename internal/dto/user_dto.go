package dto

import (
	"time"

	"github.com/noah-isme/learnroute-api/internal/models"
)

// UserCreateRequest is the payload for creating a user. Password and PasswordHash are aliases.
type UserCreateRequest struct {
	FullName     string  `json:"fullName"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	PasswordHash string  `json:"passwordHash"`
	Role         *string `json:"role"`
}

// Secret returns whichever password field the client supplied.
func (r UserCreateRequest) Secret() string {
	if r.Password != "" {
		return r.Password
	}
	return r.PasswordHash
}

// UserUpdateRequest is a partial user update.
type UserUpdateRequest struct {
	FullName     *string `json:"fullName"`
	Email        *string `json:"email"`
	Role         *string `json:"role"`
	Password     *string `json:"password"`
	PasswordHash *string `json:"passwordHash"`
}

// UserListRequest filters the user listing.
type UserListRequest struct {
	ListQuery
	Role string
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse strips the password hash from a stored user.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// UserSummary is embedded when another entity populates its user reference.
type UserSummary struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func newUserSummary(user *models.User) *UserSummary {
	if user == nil {
		return nil
	}
	return &UserSummary{ID: user.ID, FullName: user.FullName, Email: user.Email, Role: user.Role}
}
