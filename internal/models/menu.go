package models

// Menu is a navigation entry. ParentID references another menu and is nil for root entries.
type Menu struct {
	UUIDBase
	Title        string  `gorm:"size:160;not null" json:"title" validate:"required"`
	Path         string  `gorm:"size:255;not null" json:"path" validate:"required,startswith=/"`
	Icon         *string `gorm:"size:80" json:"icon,omitempty"`
	ParentID     *string `gorm:"type:varchar(36);index:idx_menu_parent_order,priority:1" json:"parentId"`
	Parent       *Menu   `gorm:"foreignKey:ParentID" json:"parent,omitempty" validate:"-"`
	DisplayOrder int     `gorm:"not null;index:idx_menu_parent_order,priority:2" json:"displayOrder" validate:"gte=0"`
	IsActive     bool    `gorm:"not null" json:"isActive"`
}
