package dto

import (
	"time"

	"github.com/noah-isme/learnroute-api/internal/models"
)

// ResourceStatusCreateRequest records a user's status on a resource. Status defaults to completed.
type ResourceStatusCreateRequest struct {
	UserID     string  `json:"userId"`
	ResourceID string  `json:"resourceId"`
	Status     *string `json:"status"`
}

// ResourceStatusUpdateRequest changes the status.
type ResourceStatusUpdateRequest struct {
	Status *string `json:"status"`
}

// ResourceStatusResponse is the public representation of a resource status.
type ResourceStatusResponse struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	ResourceID  string            `json:"resourceId"`
	Resource    *ResourceResponse `json:"resource,omitempty"`
	Status      string            `json:"status"`
	CompletedAt *time.Time        `json:"completedAt"`
	LastUpdated time.Time         `json:"lastUpdated"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// NewResourceStatusResponse maps a stored resource status with its populated resource.
func NewResourceStatusResponse(status models.UserResourceStatus) ResourceStatusResponse {
	response := ResourceStatusResponse{
		ID:          status.ID,
		UserID:      status.UserID,
		ResourceID:  status.ResourceID,
		Status:      status.Status,
		CompletedAt: status.CompletedAt,
		LastUpdated: status.LastUpdated,
		CreatedAt:   status.CreatedAt,
		UpdatedAt:   status.UpdatedAt,
	}
	if status.Resource != nil {
		resource := NewResourceResponse(*status.Resource)
		response.Resource = &resource
	}
	return response
}
