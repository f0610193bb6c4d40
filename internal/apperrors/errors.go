package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports input that fails shape or range checks. Always
// recoverable; callers get a 400.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func NewValidation(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// AuthError reports a missing/invalid token or an insufficient role.
// Forbidden distinguishes 403 from 401.
type AuthError struct {
	Msg       string
	Forbidden bool
}

func (e *AuthError) Error() string { return e.Msg }

func NewUnauthorized(msg string) error {
	return &AuthError{Msg: msg}
}

func NewForbidden(msg string) error {
	return &AuthError{Msg: msg, Forbidden: true}
}

// NotFoundError reports a missing record or route.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NewNotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// HTTPStatus maps an error to its HTTP status code and a stable error code
// for the response envelope. Unknown errors map to 500/internal_error.
func HTTPStatus(err error) (int, string) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, "validation_error"
	}

	var ae *AuthError
	if errors.As(err, &ae) {
		if ae.Forbidden {
			return http.StatusForbidden, "forbidden"
		}
		return http.StatusUnauthorized, "unauthorized"
	}

	var nfe *NotFoundError
	if errors.As(err, &nfe) {
		return http.StatusNotFound, "not_found"
	}

	return http.StatusInternalServerError, "internal_error"
}
