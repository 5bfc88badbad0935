package models

// Resource types.
const (
	ResourceTypeVideo    = "video"
	ResourceTypeArticle  = "article"
	ResourceTypeDocument = "document"
	ResourceTypeExercise = "exercise"
	ResourceTypeLink     = "link"
)

// Resource is a single learning item inside a module.
type Resource struct {
	UUIDBase
	ModuleID        string  `gorm:"type:varchar(36);not null;index:idx_resource_module_order,priority:1" json:"moduleId" validate:"required,objectid"`
	Module          *Module `gorm:"foreignKey:ModuleID" json:"module,omitempty" validate:"-"`
	Title           string  `gorm:"size:200;not null" json:"title" validate:"required"`
	ResourceType    string  `gorm:"size:16;not null" json:"resourceType" validate:"required,oneof=video article document exercise link"`
	URL             string  `gorm:"size:500" json:"url"`
	Description     string  `gorm:"type:text" json:"description"`
	DurationMinutes int     `gorm:"not null" json:"durationMinutes" validate:"gte=0"`
	DisplayOrder    int     `gorm:"not null;index:idx_resource_module_order,priority:2" json:"displayOrder" validate:"gte=0"`
	IsActive        bool    `gorm:"not null" json:"isActive"`
}
