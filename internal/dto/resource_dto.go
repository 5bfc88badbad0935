package dto

import (
	"time"

	"github.com/noah-isme/learnroute-api/internal/models"
)

// ResourceCreateRequest is the payload for creating a resource.
type ResourceCreateRequest struct {
	ModuleID        string  `json:"moduleId"`
	Title           string  `json:"title"`
	ResourceType    *string `json:"resourceType"`
	URL             *string `json:"url"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"durationMinutes"`
	DisplayOrder    *int    `json:"displayOrder"`
	IsActive        *bool   `json:"isActive"`
}

// ResourceUpdateRequest is a partial resource update.
type ResourceUpdateRequest struct {
	ModuleID        *string `json:"moduleId"`
	Title           *string `json:"title"`
	ResourceType    *string `json:"resourceType"`
	URL             *string `json:"url"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"durationMinutes"`
	DisplayOrder    *int    `json:"displayOrder"`
	IsActive        *bool   `json:"isActive"`
}

// ResourceListRequest filters the resource listing.
type ResourceListRequest struct {
	ListQuery
	ModuleID     string
	ResourceType string
	IsActive     *bool
}

// ResourceModule is the populated module reference on a resource.
type ResourceModule struct {
	ID          string `json:"id"`
	SkillPathID string `json:"skillPathId"`
	Title       string `json:"title"`
}

// ResourceResponse is the public representation of a resource.
type ResourceResponse struct {
	ID              string          `json:"id"`
	ModuleID        string          `json:"moduleId"`
	Module          *ResourceModule `json:"module,omitempty"`
	Title           string          `json:"title"`
	ResourceType    string          `json:"resourceType"`
	URL             string          `json:"url"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"durationMinutes"`
	DisplayOrder    int             `json:"displayOrder"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// NewResourceResponse maps a stored resource.
func NewResourceResponse(resource models.Resource) ResourceResponse {
	response := ResourceResponse{
		ID:              resource.ID,
		ModuleID:        resource.ModuleID,
		Title:           resource.Title,
		ResourceType:    resource.ResourceType,
		URL:             resource.URL,
		Description:     resource.Description,
		DurationMinutes: resource.DurationMinutes,
		DisplayOrder:    resource.DisplayOrder,
		IsActive:        resource.IsActive,
		CreatedAt:       resource.CreatedAt,
		UpdatedAt:       resource.UpdatedAt,
	}
	if resource.Module != nil {
		response.Module = &ResourceModule{
			ID:          resource.Module.ID,
			SkillPathID: resource.Module.SkillPathID,
			Title:       resource.Module.Title,
		}
	}
	return response
}
