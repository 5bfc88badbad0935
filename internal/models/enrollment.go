package models

import "time"

// Enrollment statuses.
const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentAbandoned = "abandoned"
)

// UserSkillEnrollment records a user's enrolment in a skill path. A user has at most one per skill path.
type UserSkillEnrollment struct {
	UUIDBase
	UserID          string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_enrollment_user_skill_path,priority:1" json:"userId" validate:"required,objectid"`
	User            *User      `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	SkillPathID     string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_enrollment_user_skill_path,priority:2" json:"skillPathId" validate:"required,objectid"`
	SkillPath       *SkillPath `gorm:"foreignKey:SkillPathID" json:"skillPath,omitempty" validate:"-"`
	Status          string     `gorm:"size:16;not null" json:"status" validate:"required,oneof=active completed abandoned"`
	ProgressPercent float64    `gorm:"not null" json:"progressPercent" validate:"gte=0,lte=100"`
	StartedAt       time.Time  `gorm:"not null" json:"startedAt"`
	CompletedAt     *time.Time `json:"completedAt"`
}

// SetStatus applies a status and keeps CompletedAt in step with it.
func (e *UserSkillEnrollment) SetStatus(status string, now time.Time) {
	e.CompletedAt = completionTime(e.Status, e.CompletedAt, status, EnrollmentCompleted, now)
	e.Status = status
}

func completionTime(previous string, previousAt *time.Time, next, completed string, now time.Time) *time.Time {
	if next != completed {
		return nil
	}
	if previous == completed && previousAt != nil {
		return previousAt
	}
	at := now
	return &at
}
