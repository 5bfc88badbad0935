package validation

import (
	"strings"

	"github.com/noah-isme/learnroute-api/internal/dto"
)

// SkillPathCreate checks a new skill path. A missing slug is derived from the title.
func (v *Validator) SkillPathCreate(req *dto.SkillPathCreateRequest) error {
	f := v.begin()
	title := f.text("title", req.Title, "max=200")
	slug := f.optionalText("slug", lower(req.Slug), "slug,max=160")
	if slug == nil && title != "" {
		derived := Slugify(title)
		if derived == "" {
			f.reject("slug", "could not be derived from title")
		}
		slug = &derived
	}
	description := f.looseText("description", req.Description, "max=2000")
	level := f.optionalText("level", lower(req.Level), levelTags)
	f.optionalInt("displayOrder", req.DisplayOrder, orderTags)
	if err := f.err(); err != nil {
		return err
	}
	req.Title = title
	req.Slug = slug
	req.Description = description
	req.Level = level
	return nil
}

// SkillPathUpdate checks the fields present in a partial skill path update.
func (v *Validator) SkillPathUpdate(req *dto.SkillPathUpdateRequest) error {
	f := v.begin()
	title := f.optionalText("title", req.Title, "max=200")
	slug := f.optionalText("slug", lower(req.Slug), "slug,max=160")
	description := f.looseText("description", req.Description, "max=2000")
	level := f.optionalText("level", lower(req.Level), levelTags)
	f.optionalInt("displayOrder", req.DisplayOrder, orderTags)
	if err := f.err(); err != nil {
		return err
	}
	req.Title = title
	req.Slug = slug
	req.Description = description
	req.Level = level
	return nil
}

// ModuleCreate checks a new module.
func (v *Validator) ModuleCreate(req *dto.ModuleCreateRequest) error {
	f := v.begin()
	skillPathID := f.text("skillPathId", req.SkillPathID, "objectid")
	title := f.text("title", req.Title, "max=200")
	description := f.looseText("description", req.Description, "max=2000")
	f.optionalInt("displayOrder", req.DisplayOrder, orderTags)
	if err := f.err(); err != nil {
		return err
	}
	req.SkillPathID = skillPathID
	req.Title = title
	req.Description = description
	return nil
}

// ModuleUpdate checks the fields present in a partial module update.
func (v *Validator) ModuleUpdate(req *dto.ModuleUpdateRequest) error {
	f := v.begin()
	skillPathID := f.optionalText("skillPathId", req.SkillPathID, "objectid")
	title := f.optionalText("title", req.Title, "max=200")
	description := f.looseText("description", req.Description, "max=2000")
	f.optionalInt("displayOrder", req.DisplayOrder, orderTags)
	if err := f.err(); err != nil {
		return err
	}
	req.SkillPathID = skillPathID
	req.Title = title
	req.Description = description
	return nil
}

// ResourceCreate checks a new resource.
func (v *Validator) ResourceCreate(req *dto.ResourceCreateRequest) error {
	f := v.begin()
	moduleID := f.text("moduleId", req.ModuleID, "objectid")
	title := f.text("title", req.Title, "max=200")
	resourceType := f.optionalText("resourceType", lower(req.ResourceType), resourceTypeTags)
	url := f.looseText("url", req.URL, "url,max=500")
	description := f.looseText("description", req.Description, "max=2000")
	f.optionalInt("durationMinutes", req.DurationMinutes, orderTags)
	f.optionalInt("displayOrder", req.DisplayOrder, orderTags)
	if err := f.err(); err != nil {
		return err
	}
	req.ModuleID = moduleID
	req.Title = title
	req.ResourceType = resourceType
	req.URL = url
	req.Description = description
	return nil
}

// ResourceUpdate checks the fields present in a partial resource update.
func (v *Validator) ResourceUpdate(req *dto.ResourceUpdateRequest) error {
	f := v.begin()
	moduleID := f.optionalText("moduleId", req.ModuleID, "objectid")
	title := f.optionalText("title", req.Title, "max=200")
	resourceType := f.optionalText("resourceType", lower(req.ResourceType), resourceTypeTags)
	url := f.looseText("url", req.URL, "url,max=500")
	description := f.looseText("description", req.Description, "max=2000")
	f.optionalInt("durationMinutes", req.DurationMinutes, orderTags)
	f.optionalInt("displayOrder", req.DisplayOrder, orderTags)
	if err := f.err(); err != nil {
		return err
	}
	req.ModuleID = moduleID
	req.Title = title
	req.ResourceType = resourceType
	req.URL = url
	req.Description = description
	return nil
}

// Slugify lowercases value and joins its alphanumeric runs with single hyphens.
func Slugify(value string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(value) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}
