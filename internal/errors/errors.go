package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AuthReason distinguishes a missing identity from a denied one.
type AuthReason string

const (
	ReasonUnauthenticated AuthReason = "unauthenticated"
	ReasonForbidden       AuthReason = "forbidden"
)

// IntegrityReason distinguishes duplicate keys, dangling references and
// deletes blocked by rows still pointing at the target.
type IntegrityReason string

const (
	ReasonConflict        IntegrityReason = "conflict"
	ReasonMissingRelation IntegrityReason = "missing_relation"
	ReasonReferenced      IntegrityReason = "referenced"
)

// Issue describes one field that failed validation.
type Issue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message,omitempty"`
}

// ValidationError is returned when input does not match its schema.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Message != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", is.Field, is.Message))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: failed %s", is.Field, is.Rule))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AuthorizationError is returned when the caller is missing or not allowed.
type AuthorizationError struct {
	Reason  AuthReason
	Message string
}

func (e *AuthorizationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Reason)
}

// IntegrityError is returned when the store rejects a write on a
// uniqueness or foreign-key constraint.
type IntegrityError struct {
	Reason   IntegrityReason
	Resource string
	Err      error
}

func (e *IntegrityError) Error() string {
	switch e.Reason {
	case ReasonConflict:
		return fmt.Sprintf("%s already exists", e.Resource)
	case ReasonReferenced:
		return fmt.Sprintf("%s is still referenced by other records", e.Resource)
	}
	return fmt.Sprintf("%s references a record that does not exist", e.Resource)
}

func (e *IntegrityError) Unwrap() error { return e.Err }

// NotFoundError is returned when a lookup by unique key finds no row.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// Invalid builds a ValidationError for a single field.
func Invalid(field, rule, message string) *ValidationError {
	return &ValidationError{Issues: []Issue{{Field: field, Rule: rule, Message: message}}}
}

// Unauthenticated is returned by protected operations called anonymously.
func Unauthenticated() *AuthorizationError {
	return &AuthorizationError{Reason: ReasonUnauthenticated, Message: "authentication required"}
}

// Forbidden is returned when the caller does not own the resource.
func Forbidden(message string) *AuthorizationError {
	return &AuthorizationError{Reason: ReasonForbidden, Message: message}
}

// Conflict wraps a duplicate-key failure.
func Conflict(resource string, err error) *IntegrityError {
	return &IntegrityError{Reason: ReasonConflict, Resource: resource, Err: err}
}

// MissingRelation wraps a foreign-key failure.
func MissingRelation(resource string, err error) *IntegrityError {
	return &IntegrityError{Reason: ReasonMissingRelation, Resource: resource, Err: err}
}

// Referenced wraps a foreign-key failure on delete.
func Referenced(resource string, err error) *IntegrityError {
	return &IntegrityError{Reason: ReasonReferenced, Resource: resource, Err: err}
}

// NotFound builds a NotFoundError.
func NotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsUnauthenticated reports whether err is an AuthorizationError for a missing identity.
func IsUnauthenticated(err error) bool {
	var target *AuthorizationError
	return errors.As(err, &target) && target.Reason == ReasonUnauthenticated
}

// IsForbidden reports whether err is an AuthorizationError for a denied caller.
func IsForbidden(err error) bool {
	var target *AuthorizationError
	return errors.As(err, &target) && target.Reason == ReasonForbidden
}

// IsConflict reports whether err is a duplicate-key IntegrityError.
func IsConflict(err error) bool {
	var target *IntegrityError
	return errors.As(err, &target) && target.Reason == ReasonConflict
}

// IsMissingRelation reports whether err is a foreign-key IntegrityError.
func IsMissingRelation(err error) bool {
	var target *IntegrityError
	return errors.As(err, &target) && target.Reason == ReasonMissingRelation
}

// IsReferenced reports whether err is an IntegrityError for a blocked delete.
func IsReferenced(err error) bool {
	var target *IntegrityError
	return errors.As(err, &target) && target.Reason == ReasonReferenced
}

// IsIntegrity reports whether err is any IntegrityError.
func IsIntegrity(err error) bool {
	var target *IntegrityError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error  string  `json:"error"`
	Code   string  `json:"code"`
	Issues []Issue `json:"issues,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Issues     []Issue
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:  e.Message,
		Code:   e.Code,
		Issues: e.Issues,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var (
		validationErr *ValidationError
		authErr       *AuthorizationError
		integrityErr  *IntegrityError
		notFoundErr   *NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		httpErr := NewHTTPError(http.StatusBadRequest, validationErr.Error(), "VALIDATION_ERROR")
		httpErr.Issues = validationErr.Issues
		return httpErr
	case errors.As(err, &authErr):
		if authErr.Reason == ReasonForbidden {
			return NewHTTPError(http.StatusForbidden, authErr.Error(), "FORBIDDEN")
		}
		return NewHTTPError(http.StatusUnauthorized, authErr.Error(), "UNAUTHENTICATED")
	case errors.As(err, &integrityErr):
		switch integrityErr.Reason {
		case ReasonConflict:
			return NewHTTPError(http.StatusConflict, integrityErr.Error(), "CONFLICT")
		case ReasonReferenced:
			return NewHTTPError(http.StatusConflict, integrityErr.Error(), "REFERENCED")
		}
		return NewHTTPError(http.StatusNotFound, integrityErr.Error(), "MISSING_RELATION")
	case errors.As(err, &notFoundErr):
		return NewHTTPError(http.StatusNotFound, notFoundErr.Error(), "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
