package dto

import (
	"time"

	"github.com/noah-isme/learnroute-api/internal/models"
)

// ModuleCreateRequest is the payload for creating a module.
type ModuleCreateRequest struct {
	SkillPathID  string  `json:"skillPathId"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"displayOrder"`
	IsActive     *bool   `json:"isActive"`
}

// ModuleUpdateRequest is a partial module update.
type ModuleUpdateRequest struct {
	SkillPathID  *string `json:"skillPathId"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"displayOrder"`
	IsActive     *bool   `json:"isActive"`
}

// ModuleListRequest filters the module listing.
type ModuleListRequest struct {
	ListQuery
	SkillPathID string
	IsActive    *bool
}

// ModuleResponse is the public representation of a module.
type ModuleResponse struct {
	ID           string             `json:"id"`
	SkillPathID  string             `json:"skillPathId"`
	SkillPath    *SkillPathResponse `json:"skillPath,omitempty"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	DisplayOrder int                `json:"displayOrder"`
	IsActive     bool               `json:"isActive"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// NewModuleResponse maps a stored module with its populated skill path.
func NewModuleResponse(module models.Module) ModuleResponse {
	return ModuleResponse{
		ID:           module.ID,
		SkillPathID:  module.SkillPathID,
		SkillPath:    newSkillPathPointer(module.SkillPath),
		Title:        module.Title,
		Description:  module.Description,
		DisplayOrder: module.DisplayOrder,
		IsActive:     module.IsActive,
		CreatedAt:    module.CreatedAt,
		UpdatedAt:    module.UpdatedAt,
	}
}
