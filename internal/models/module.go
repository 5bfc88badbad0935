package models

// Module belongs to exactly one skill path.
type Module struct {
	UUIDBase
	SkillPathID  string     `gorm:"type:varchar(36);not null;index:idx_module_skill_path_order,priority:1" json:"skillPathId" validate:"required,objectid"`
	SkillPath    *SkillPath `gorm:"foreignKey:SkillPathID" json:"skillPath,omitempty" validate:"-"`
	Title        string     `gorm:"size:200;not null" json:"title" validate:"required"`
	Description  string     `gorm:"type:text" json:"description"`
	DisplayOrder int        `gorm:"not null;index:idx_module_skill_path_order,priority:2" json:"displayOrder" validate:"gte=0"`
	IsActive     bool       `gorm:"not null" json:"isActive"`
}
