package dto

import (
	"time"

	"github.com/noah-isme/learnroute-api/internal/models"
)

// EnrollmentCreateRequest enrols a user in a skill path.
type EnrollmentCreateRequest struct {
	UserID          string   `json:"userId"`
	SkillPathID     string   `json:"skillPathId"`
	Status          *string  `json:"status"`
	ProgressPercent *float64 `json:"progressPercent"`
}

// EnrollmentUpdateRequest changes progress and/or status.
type EnrollmentUpdateRequest struct {
	Status          *string  `json:"status"`
	ProgressPercent *float64 `json:"progressPercent"`
}

// EnrollmentResponse is the public representation of an enrolment.
type EnrollmentResponse struct {
	ID              string             `json:"id"`
	UserID          string             `json:"userId"`
	SkillPathID     string             `json:"skillPathId"`
	SkillPath       *SkillPathResponse `json:"skillPath,omitempty"`
	Status          string             `json:"status"`
	ProgressPercent float64            `json:"progressPercent"`
	StartedAt       time.Time          `json:"startedAt"`
	CompletedAt     *time.Time         `json:"completedAt"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// NewEnrollmentResponse maps a stored enrolment with its populated skill path.
func NewEnrollmentResponse(enrollment models.UserSkillEnrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:              enrollment.ID,
		UserID:          enrollment.UserID,
		SkillPathID:     enrollment.SkillPathID,
		SkillPath:       newSkillPathPointer(enrollment.SkillPath),
		Status:          enrollment.Status,
		ProgressPercent: enrollment.ProgressPercent,
		StartedAt:       enrollment.StartedAt,
		CompletedAt:     enrollment.CompletedAt,
		CreatedAt:       enrollment.CreatedAt,
		UpdatedAt:       enrollment.UpdatedAt,
	}
}
