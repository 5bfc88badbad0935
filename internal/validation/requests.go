package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/learnroute-api/internal/dto"
	"github.com/noah-isme/learnroute-api/internal/models"
)

const (
	roleTags         = "oneof=" + models.RoleStudent + " " + models.RoleAdmin
	levelTags        = "oneof=" + models.LevelBeginner + " " + models.LevelIntermediate + " " + models.LevelAdvanced
	resourceTypeTags = "oneof=" + models.ResourceTypeVideo + " " + models.ResourceTypeArticle + " " + models.ResourceTypeDocument + " " + models.ResourceTypeExercise + " " + models.ResourceTypeLink
	enrollmentTags   = "oneof=" + models.EnrollmentActive + " " + models.EnrollmentCompleted + " " + models.EnrollmentAbandoned
	statusTags       = "oneof=" + models.ResourceNotStarted + " " + models.ResourceInProgress + " " + models.ResourceCompleted
	orderTags        = "gte=0"
	progressTags     = "gte=0,lte=100"
)

// Validator checks request payloads before they reach the services.
// Every check runs, so a failure reports all offending fields at once.
// Requests are normalised in place only when validation succeeds.
type Validator struct {
	engine *validator.Validate
}

// NewValidator builds a Validator on the shared engine.
func NewValidator() *Validator {
	return &Validator{engine: New()}
}

// Engine exposes the underlying validator so the store can reuse the custom tags.
func (v *Validator) Engine() *validator.Validate {
	return v.engine
}

type fields struct {
	engine *validator.Validate
	errs   Errors
}

func (v *Validator) begin() *fields {
	return &fields{engine: v.engine, errs: Errors{}}
}

// check validates one value and reports whether it passed. Only the first failure per field is kept.
func (f *fields) check(name string, value interface{}, tag string) bool {
	if _, failed := f.errs[name]; failed {
		return false
	}
	err := f.engine.Var(value, tag)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f.errs.Add(name, formatFieldError(verrs[0]))
	} else {
		f.errs.Add(name, "is invalid")
	}
	return false
}

func (f *fields) reject(name, message string) {
	f.errs.Add(name, message)
}

// text checks a mandatory string and returns it trimmed.
func (f *fields) text(name, raw, tag string) string {
	trimmed := strings.TrimSpace(raw)
	if f.check(name, trimmed, "notblank") && tag != "" {
		f.check(name, trimmed, tag)
	}
	return trimmed
}

// optionalText checks a string only when present. A present value must not be blank.
func (f *fields) optionalText(name string, raw *string, tag string) *string {
	if raw == nil {
		return nil
	}
	trimmed := f.text(name, *raw, tag)
	return &trimmed
}

// looseText accepts blank values and applies tag to non-blank ones.
func (f *fields) looseText(name string, raw *string, tag string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed != "" && tag != "" {
		f.check(name, trimmed, tag)
	}
	return &trimmed
}

func (f *fields) optionalInt(name string, value *int, tag string) {
	if value != nil {
		f.check(name, *value, tag)
	}
}

func (f *fields) optionalFloat(name string, value *float64, tag string) {
	if value != nil {
		f.check(name, *value, tag)
	}
}

// nullableText trims a nullable string. Blank values collapse to null.
func (f *fields) nullableText(name string, raw dto.Optional[string], tag string) dto.Optional[string] {
	if !raw.Present() {
		return raw
	}
	trimmed := strings.TrimSpace(raw.Value)
	if trimmed == "" {
		return dto.Null[string]()
	}
	if tag != "" {
		f.check(name, trimmed, tag)
	}
	return dto.Some(trimmed)
}

func (f *fields) err() error {
	return f.errs.Err()
}

// ID reports whether value is a well-formed identifier.
func ID(value string) bool {
	return models.IsValidID(value)
}
