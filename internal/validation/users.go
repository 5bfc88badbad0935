package validation

import (
	"strings"

	"github.com/noah-isme/learnroute-api/internal/dto"
)

// UserCreate checks a new user and lowercases the email.
func (v *Validator) UserCreate(req *dto.UserCreateRequest) error {
	f := v.begin()
	fullName := f.text("fullName", req.FullName, "min=2,max=120")
	email := strings.ToLower(f.text("email", req.Email, "emailsimple"))

	secretField := "password"
	if req.Password == "" && req.PasswordHash != "" {
		secretField = "passwordHash"
	}
	if f.check(secretField, req.Secret(), "notblank") {
		f.check(secretField, req.Secret(), "min=6,max=72")
	}

	role := f.optionalText("role", lower(req.Role), roleTags)
	if err := f.err(); err != nil {
		return err
	}
	req.FullName = fullName
	req.Email = email
	req.Role = role
	return nil
}

// UserUpdate checks the fields present in a partial update. Passwords are not updatable here.
func (v *Validator) UserUpdate(req *dto.UserUpdateRequest) error {
	f := v.begin()
	if req.PasswordHash != nil {
		f.reject("passwordHash", "cannot be updated through this endpoint")
	}
	if req.Password != nil {
		f.reject("password", "cannot be updated through this endpoint")
	}
	fullName := f.optionalText("fullName", req.FullName, "min=2,max=120")
	email := f.optionalText("email", lower(req.Email), "emailsimple")
	role := f.optionalText("role", lower(req.Role), roleTags)
	if err := f.err(); err != nil {
		return err
	}
	req.FullName = fullName
	req.Email = email
	req.Role = role
	return nil
}

func lower(value *string) *string {
	if value == nil {
		return nil
	}
	lowered := strings.ToLower(*value)
	return &lowered
}
