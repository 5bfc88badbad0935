package service

import (
	"errors"
	"fmt"

	"github.com/noah-isme/learnroute-api/internal/repository"
	"github.com/noah-isme/learnroute-api/internal/validation"
)

// ErrorKind classifies failures that callers are expected to handle.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindBadReference
	KindUnauthorized
	KindForbidden
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindBadReference:
		return "bad_reference"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Error is a classified service failure. Message is safe to show to clients.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports a missing entity.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict reports a request that clashes with existing state.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// BadReference reports a request that points at an entity that does not exist.
func BadReference(message string) *Error {
	return &Error{Kind: KindBadReference, Message: message}
}

// Invalid reports field level validation failures.
func Invalid(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Fields: fields}
}

// IsKind reports whether err is a service error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var svcErr *Error
	return errors.As(err, &svcErr) && svcErr.Kind == kind
}

// storeMessages holds the client facing messages for one entity's store failures.
type storeMessages struct {
	notFound   string
	duplicate  string
	referenced string
	// missingReference applies when a write points at a row that no longer exists.
	missingReference string
}

// translateStoreError maps repository failures to service errors. Unknown errors are wrapped with op.
func translateStoreError(err error, msgs storeMessages, op string) error {
	if err == nil {
		return nil
	}

	var svcErr *Error
	if errors.As(err, &svcErr) {
		return err
	}

	var schemaErr *repository.SchemaError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return &Error{Kind: KindNotFound, Message: msgs.notFound, Err: err}
	case errors.Is(err, repository.ErrDuplicate):
		return &Error{Kind: KindConflict, Message: msgs.duplicate, Err: err}
	case errors.Is(err, repository.ErrMissingReference):
		message := msgs.missingReference
		if message == "" {
			message = "Referenced record not found"
		}
		return &Error{Kind: KindBadReference, Message: message, Err: err}
	case errors.Is(err, repository.ErrReferenced):
		return &Error{Kind: KindConflict, Message: msgs.referenced, Err: err}
	case errors.As(err, &schemaErr):
		return &Error{Kind: KindValidation, Message: "Validation failed", Fields: schemaErr.Fields, Err: err}
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return Invalid(fieldErrs)
	}
	return fmt.Errorf("%s: %w", op, err)
}
