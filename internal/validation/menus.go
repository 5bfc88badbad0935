package validation

import "github.com/noah-isme/learnroute-api/internal/dto"

// MenuCreate checks a new menu entry.
func (v *Validator) MenuCreate(req *dto.MenuCreateRequest) error {
	f := v.begin()
	title := f.text("title", req.Title, "max=160")
	path := f.text("path", req.Path, "startswith=/,max=255")
	icon := f.nullableText("icon", req.Icon, "max=80")
	parentID := f.nullableText("parentId", req.ParentID, "objectid")
	f.optionalInt("displayOrder", req.DisplayOrder, orderTags)
	if err := f.err(); err != nil {
		return err
	}
	req.Title = title
	req.Path = path
	req.Icon = icon
	req.ParentID = parentID
	return nil
}

// MenuUpdate checks the fields present in a partial menu update.
func (v *Validator) MenuUpdate(req *dto.MenuUpdateRequest) error {
	f := v.begin()
	title := f.optionalText("title", req.Title, "max=160")
	path := f.optionalText("path", req.Path, "startswith=/,max=255")
	icon := f.nullableText("icon", req.Icon, "max=80")
	parentID := f.nullableText("parentId", req.ParentID, "objectid")
	f.optionalInt("displayOrder", req.DisplayOrder, orderTags)
	if err := f.err(); err != nil {
		return err
	}
	req.Title = title
	req.Path = path
	req.Icon = icon
	req.ParentID = parentID
	return nil
}
