package dto

import (
	"time"

	"github.com/noah-isme/learnroute-api/internal/models"
)

// SkillPathCreateRequest is the payload for creating a skill path. Slug defaults to one derived from Title.
type SkillPathCreateRequest struct {
	Title        string  `json:"title"`
	Slug         *string `json:"slug"`
	Description  *string `json:"description"`
	Level        *string `json:"level"`
	DisplayOrder *int    `json:"displayOrder"`
	IsActive     *bool   `json:"isActive"`
}

// SkillPathUpdateRequest is a partial skill path update.
type SkillPathUpdateRequest struct {
	Title        *string `json:"title"`
	Slug         *string `json:"slug"`
	Description  *string `json:"description"`
	Level        *string `json:"level"`
	DisplayOrder *int    `json:"displayOrder"`
	IsActive     *bool   `json:"isActive"`
}

// SkillPathListRequest filters the skill path listing.
type SkillPathListRequest struct {
	ListQuery
	Level    string
	IsActive *bool
}

// SkillPathResponse is the public representation of a skill path.
type SkillPathResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Level        string    `json:"level"`
	DisplayOrder int       `json:"displayOrder"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewSkillPathResponse maps a stored skill path.
func NewSkillPathResponse(path models.SkillPath) SkillPathResponse {
	return SkillPathResponse{
		ID:           path.ID,
		Title:        path.Title,
		Slug:         path.Slug,
		Description:  path.Description,
		Level:        path.Level,
		DisplayOrder: path.DisplayOrder,
		IsActive:     path.IsActive,
		CreatedAt:    path.CreatedAt,
		UpdatedAt:    path.UpdatedAt,
	}
}

func newSkillPathPointer(path *models.SkillPath) *SkillPathResponse {
	if path == nil {
		return nil
	}
	response := NewSkillPathResponse(*path)
	return &response
}
