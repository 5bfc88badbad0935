package validation

import "github.com/noah-isme/learnroute-api/internal/dto"

// EnrollmentCreate checks a new enrolment.
func (v *Validator) EnrollmentCreate(req *dto.EnrollmentCreateRequest) error {
	f := v.begin()
	userID := f.text("userId", req.UserID, "objectid")
	skillPathID := f.text("skillPathId", req.SkillPathID, "objectid")
	status := f.optionalText("status", lower(req.Status), enrollmentTags)
	f.optionalFloat("progressPercent", req.ProgressPercent, progressTags)
	if err := f.err(); err != nil {
		return err
	}
	req.UserID = userID
	req.SkillPathID = skillPathID
	req.Status = status
	return nil
}

// EnrollmentUpdate checks a progress or status change. At least one field is required.
func (v *Validator) EnrollmentUpdate(req *dto.EnrollmentUpdateRequest) error {
	f := v.begin()
	if req.Status == nil && req.ProgressPercent == nil {
		f.reject("status", "status or progressPercent is required")
	}
	status := f.optionalText("status", lower(req.Status), enrollmentTags)
	f.optionalFloat("progressPercent", req.ProgressPercent, progressTags)
	if err := f.err(); err != nil {
		return err
	}
	req.Status = status
	return nil
}

// ResourceStatusCreate checks a new resource status.
func (v *Validator) ResourceStatusCreate(req *dto.ResourceStatusCreateRequest) error {
	f := v.begin()
	userID := f.text("userId", req.UserID, "objectid")
	resourceID := f.text("resourceId", req.ResourceID, "objectid")
	status := f.optionalText("status", lower(req.Status), statusTags)
	if err := f.err(); err != nil {
		return err
	}
	req.UserID = userID
	req.ResourceID = resourceID
	req.Status = status
	return nil
}

// ResourceStatusUpdate checks a status change. The status field is required.
func (v *Validator) ResourceStatusUpdate(req *dto.ResourceStatusUpdateRequest) error {
	f := v.begin()
	var status string
	if req.Status == nil {
		f.reject("status", "is required")
	} else {
		status = f.text("status", *lower(req.Status), statusTags)
	}
	if err := f.err(); err != nil {
		return err
	}
	req.Status = &status
	return nil
}

// ActivityLogCreate checks a new activity entry.
func (v *Validator) ActivityLogCreate(req *dto.ActivityLogCreateRequest) error {
	f := v.begin()
	userID := f.text("userId", req.UserID, "objectid")
	eventType := f.text("eventType", req.EventType, "max=64")
	if err := f.err(); err != nil {
		return err
	}
	req.UserID = userID
	req.EventType = eventType
	return nil
}

// ActivityLogUpdate checks an edit of an activity entry.
func (v *Validator) ActivityLogUpdate(req *dto.ActivityLogUpdateRequest) error {
	f := v.begin()
	if req.EventType == nil && req.Details == nil {
		f.reject("eventType", "eventType or details is required")
	}
	eventType := f.optionalText("eventType", req.EventType, "max=64")
	if err := f.err(); err != nil {
		return err
	}
	req.EventType = eventType
	return nil
}
