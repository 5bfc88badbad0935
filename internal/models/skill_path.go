package models

// Skill path levels.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// SkillPath groups modules into a learning track users enrol in.
type SkillPath struct {
	UUIDBase
	Title        string `gorm:"size:200;not null" json:"title" validate:"required"`
	Slug         string `gorm:"size:200;not null;uniqueIndex" json:"slug" validate:"required"`
	Description  string `gorm:"type:text" json:"description"`
	Level        string `gorm:"size:16;not null" json:"level" validate:"required,oneof=beginner intermediate advanced"`
	DisplayOrder int    `gorm:"not null;index" json:"displayOrder" validate:"gte=0"`
	IsActive     bool   `gorm:"not null" json:"isActive"`
}
