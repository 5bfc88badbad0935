package dto

import (
	"time"

	"github.com/noah-isme/learnroute-api/internal/models"
)

// MenuCreateRequest is the payload for creating a menu entry.
type MenuCreateRequest struct {
	Title        string           `json:"title"`
	Path         string           `json:"path"`
	Icon         Optional[string] `json:"icon"`
	ParentID     Optional[string] `json:"parentId"`
	DisplayOrder *int             `json:"displayOrder"`
	IsActive     *bool            `json:"isActive"`
}

// MenuUpdateRequest is a partial menu update. Icon and ParentID accept null to clear them.
type MenuUpdateRequest struct {
	Title        *string          `json:"title"`
	Path         *string          `json:"path"`
	Icon         Optional[string] `json:"icon"`
	ParentID     Optional[string] `json:"parentId"`
	DisplayOrder *int             `json:"displayOrder"`
	IsActive     *bool            `json:"isActive"`
}

// MenuListRequest filters the menu listing. A non-nil empty ParentID selects root menus.
type MenuListRequest struct {
	ListQuery
	IsActive *bool
	ParentID *string
}

// MenuResponse is the public representation of a menu entry.
type MenuResponse struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Path         string        `json:"path"`
	Icon         *string       `json:"icon"`
	ParentID     *string       `json:"parentId"`
	Parent       *MenuResponse `json:"parent,omitempty"`
	DisplayOrder int           `json:"displayOrder"`
	IsActive     bool          `json:"isActive"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// NewMenuResponse maps a stored menu, including a populated parent one level deep.
func NewMenuResponse(menu models.Menu) MenuResponse {
	response := menuResponse(menu)
	if menu.Parent != nil {
		parent := menuResponse(*menu.Parent)
		response.Parent = &parent
	}
	return response
}

func menuResponse(menu models.Menu) MenuResponse {
	return MenuResponse{
		ID:           menu.ID,
		Title:        menu.Title,
		Path:         menu.Path,
		Icon:         menu.Icon,
		ParentID:     menu.ParentID,
		DisplayOrder: menu.DisplayOrder,
		IsActive:     menu.IsActive,
		CreatedAt:    menu.CreatedAt,
		UpdatedAt:    menu.UpdatedAt,
	}
}

// MenuNode is a menu with its nested children.
type MenuNode struct {
	MenuResponse
	Children []MenuNode `json:"children"`
}
