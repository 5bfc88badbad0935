package repository

import (
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/noah-isme/learnroute-api/internal/models"
)

// Relations populated on read.
const (
	RelationParent    = "Parent"
	RelationSkillPath = "SkillPath"
	RelationModule    = "Module"
	RelationResource  = "Resource"
	RelationUser      = "User"
)

// NewUserStore constructs the user store.
func NewUserStore(db *gorm.DB, validate *validator.Validate) *Store[models.User] {
	return NewStore[models.User](db, validate, Options{
		Entity: "user",
		SortFields: map[string]string{
			"fullName":  "full_name",
			"email":     "email",
			"role":      "role",
			"createdAt": "created_at",
			"updatedAt": "updated_at",
		},
		DefaultSort:   "-createdAt",
		SearchColumns: []string{"full_name", "email"},
	})
}

// NewMenuStore constructs the menu store.
func NewMenuStore(db *gorm.DB, validate *validator.Validate) *Store[models.Menu] {
	return NewStore[models.Menu](db, validate, Options{
		Entity: "menu",
		SortFields: map[string]string{
			"title":        "title",
			"path":         "path",
			"displayOrder": "display_order",
			"createdAt":    "created_at",
			"updatedAt":    "updated_at",
		},
		DefaultSort:   "displayOrder",
		SearchColumns: []string{"title", "path"},
	})
}

// NewSkillPathStore constructs the skill path store.
func NewSkillPathStore(db *gorm.DB, validate *validator.Validate) *Store[models.SkillPath] {
	return NewStore[models.SkillPath](db, validate, Options{
		Entity: "skill_path",
		SortFields: map[string]string{
			"title":        "title",
			"slug":         "slug",
			"level":        "level",
			"displayOrder": "display_order",
			"createdAt":    "created_at",
			"updatedAt":    "updated_at",
		},
		DefaultSort:   "displayOrder",
		SearchColumns: []string{"title"},
	})
}

// NewModuleStore constructs the module store.
func NewModuleStore(db *gorm.DB, validate *validator.Validate) *Store[models.Module] {
	return NewStore[models.Module](db, validate, Options{
		Entity: "module",
		SortFields: map[string]string{
			"title":        "title",
			"displayOrder": "display_order",
			"createdAt":    "created_at",
			"updatedAt":    "updated_at",
		},
		DefaultSort:   "displayOrder",
		SearchColumns: []string{"title"},
	})
}

// NewResourceStore constructs the resource store.
func NewResourceStore(db *gorm.DB, validate *validator.Validate) *Store[models.Resource] {
	return NewStore[models.Resource](db, validate, Options{
		Entity: "resource",
		SortFields: map[string]string{
			"title":           "title",
			"resourceType":    "resource_type",
			"durationMinutes": "duration_minutes",
			"displayOrder":    "display_order",
			"createdAt":       "created_at",
			"updatedAt":       "updated_at",
		},
		DefaultSort:   "displayOrder",
		SearchColumns: []string{"title"},
	})
}

// NewEnrollmentStore constructs the enrolment store.
func NewEnrollmentStore(db *gorm.DB, validate *validator.Validate) *Store[models.UserSkillEnrollment] {
	return NewStore[models.UserSkillEnrollment](db, validate, Options{
		Entity: "enrollment",
		SortFields: map[string]string{
			"status":          "status",
			"progressPercent": "progress_percent",
			"startedAt":       "started_at",
			"completedAt":     "completed_at",
			"createdAt":       "created_at",
			"updatedAt":       "updated_at",
		},
		DefaultSort: "-createdAt",
	})
}

// NewResourceStatusStore constructs the resource status store.
func NewResourceStatusStore(db *gorm.DB, validate *validator.Validate) *Store[models.UserResourceStatus] {
	return NewStore[models.UserResourceStatus](db, validate, Options{
		Entity: "resource_status",
		SortFields: map[string]string{
			"status":      "status",
			"lastUpdated": "last_updated",
			"completedAt": "completed_at",
			"createdAt":   "created_at",
			"updatedAt":   "updated_at",
		},
		DefaultSort: "-lastUpdated",
	})
}

// NewActivityLogStore constructs the activity log store.
func NewActivityLogStore(db *gorm.DB, validate *validator.Validate) *Store[models.ActivityLog] {
	return NewStore[models.ActivityLog](db, validate, Options{
		Entity: "activity_log",
		SortFields: map[string]string{
			"eventType": "event_type",
			"createdAt": "created_at",
		},
		DefaultSort: "-createdAt",
	})
}

// AllModels lists every persisted model in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Menu{},
		&models.SkillPath{},
		&models.Module{},
		&models.Resource{},
		&models.UserSkillEnrollment{},
		&models.UserResourceStatus{},
		&models.ActivityLog{},
	}
}
